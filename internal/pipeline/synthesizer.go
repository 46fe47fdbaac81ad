// internal/pipeline/synthesizer.go
package pipeline

import (
	"context"

	commonerrors "github.com/ChinmayNakwa/Financial-AI-System/internal/common/errors"
	"github.com/ChinmayNakwa/Financial-AI-System/internal/common/logger"
	"github.com/ChinmayNakwa/Financial-AI-System/internal/models"
	"github.com/ChinmayNakwa/Financial-AI-System/internal/oracle"
)

// Synthesizer turns the vetted documents into the final grounded answer.
// Unlike retrieval and quality failures there is no degraded fallback here:
// if generation fails, the run fails.
type Synthesizer struct {
	oracle oracle.Oracle
	logger logger.Logger
}

func NewSynthesizer(orc oracle.Oracle, log logger.Logger) *Synthesizer {
	return &Synthesizer{
		oracle: orc,
		logger: log.With(map[string]interface{}{"component": "synthesizer"}),
	}
}

func (s *Synthesizer) Synthesize(ctx context.Context, docs []models.Document, question string) (string, error) {
	answer, err := s.oracle.Synthesize(ctx, docs, question)
	if err != nil {
		return "", commonerrors.NewSynthesisFailedError(err)
	}

	s.logger.Info("answer synthesized", map[string]interface{}{
		"documents": len(docs),
		"length":    len(answer),
	})
	return answer, nil
}

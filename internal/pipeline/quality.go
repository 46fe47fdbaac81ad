// internal/pipeline/quality.go
package pipeline

import (
	"context"
	"strings"
	"sync"

	commonerrors "github.com/ChinmayNakwa/Financial-AI-System/internal/common/errors"
	"github.com/ChinmayNakwa/Financial-AI-System/internal/common/logger"
	"github.com/ChinmayNakwa/Financial-AI-System/internal/common/metrics"
	"github.com/ChinmayNakwa/Financial-AI-System/internal/models"
	"github.com/ChinmayNakwa/Financial-AI-System/internal/oracle"
	"github.com/ChinmayNakwa/Financial-AI-System/internal/providers"
)

const minContentLength = 10

// errorIndicators mark content that is an error message rather than data.
// They only disqualify short payloads: a long report that merely mentions
// "failed" somewhere is still real data.
var errorIndicators = []string{"error", "failed", "could not", "unavailable", "exception"}

const shortErrorContentLimit = 200

// Gate filters retrieved documents before they can reach generation. Cheap
// deterministic checks run first; only survivors spend an oracle call on the
// full quality rubric.
type Gate struct {
	oracle    oracle.Oracle
	threshold float64
	logger    logger.Logger
}

func NewGate(orc oracle.Oracle, threshold float64, log logger.Logger) *Gate {
	return &Gate{
		oracle:    orc,
		threshold: threshold,
		logger:    log.With(map[string]interface{}{"component": "quality_gate"}),
	}
}

// Filter assesses all documents concurrently and returns the accepted ones in
// their original order. Every document, accepted or not, gets its verdict
// attached for observability.
func (g *Gate) Filter(ctx context.Context, docs []models.Document, question string) []models.Document {
	type outcome struct {
		doc      models.Document
		accepted bool
	}
	outcomes := make([]outcome, len(docs))

	var wg sync.WaitGroup
	for i, doc := range docs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assessed, accepted := g.assess(ctx, doc, question)
			outcomes[i] = outcome{doc: assessed, accepted: accepted}
		}()
	}
	wg.Wait()

	accepted := make([]models.Document, 0, len(docs))
	for _, o := range outcomes {
		if o.accepted {
			accepted = append(accepted, o.doc)
		}
	}

	g.logger.Info("quality filter complete", map[string]interface{}{
		"assessed": len(docs),
		"accepted": len(accepted),
	})
	return accepted
}

func (g *Gate) assess(ctx context.Context, doc models.Document, question string) (models.Document, bool) {
	if verdict, rejected := preFilter(doc.Content); rejected {
		doc.Quality = verdict
		metrics.DocumentsRejected.WithLabelValues(string(doc.Source), "prefilter").Inc()
		g.logger.Debug("document rejected by pre-filter", map[string]interface{}{
			"source": doc.Source,
			"issues": verdict.Issues,
		})
		return doc, false
	}

	verdict, err := g.oracle.AssessQuality(ctx, doc.Source, doc.Content, question)
	if err != nil {
		// An unreadable verdict rejects the document rather than failing
		// the run: losing one source is recoverable, hallucinating on
		// unvetted data is not.
		perr := commonerrors.NewQualityParseError(string(doc.Source), err)
		doc.Quality = &models.QualityVerdict{
			Confidence: 0,
			Issues:     []string{perr.Message + ": " + perr.Details},
		}
		metrics.DocumentsRejected.WithLabelValues(string(doc.Source), "assessment_error").Inc()
		g.logger.WithError(perr).Warn("quality assessment failed", map[string]interface{}{"source": doc.Source})
		return doc, false
	}

	doc.Quality = verdict
	if !verdict.IsRelevant || verdict.Confidence < g.threshold {
		metrics.DocumentsRejected.WithLabelValues(string(doc.Source), "verdict").Inc()
		g.logger.Debug("document rejected by verdict", map[string]interface{}{
			"source":     doc.Source,
			"relevant":   verdict.IsRelevant,
			"confidence": verdict.Confidence,
			"issues":     verdict.Issues,
		})
		return doc, false
	}

	return doc, true
}

// preFilter rejects obviously unusable content without consulting the oracle.
// The returned verdict explains the rejection; (nil, false) means the document
// must go on to the full assessment.
func preFilter(content string) (*models.QualityVerdict, bool) {
	trimmed := strings.TrimSpace(content)

	if len(trimmed) < minContentLength {
		return rejectionVerdict("content too short to be useful"), true
	}
	if providers.IsFailureSentinel(trimmed) {
		return rejectionVerdict("content is a retrieval failure notice"), true
	}
	if strings.Contains(trimmed, "No title - Unknown") {
		return rejectionVerdict("news results are missing titles and sources"), true
	}
	if len(trimmed) < shortErrorContentLimit {
		lowered := strings.ToLower(trimmed)
		for _, indicator := range errorIndicators {
			if strings.Contains(lowered, indicator) {
				return rejectionVerdict("content looks like an error message: " + indicator), true
			}
		}
	}

	return nil, false
}

func rejectionVerdict(issue string) *models.QualityVerdict {
	return &models.QualityVerdict{
		IsRecent:   false,
		IsReliable: false,
		IsRelevant: false,
		Confidence: 0,
		Issues:     []string{issue},
	}
}

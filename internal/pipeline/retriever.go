// internal/pipeline/retriever.go
package pipeline

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	commonerrors "github.com/ChinmayNakwa/Financial-AI-System/internal/common/errors"
	"github.com/ChinmayNakwa/Financial-AI-System/internal/common/logger"
	"github.com/ChinmayNakwa/Financial-AI-System/internal/common/metrics"
	"github.com/ChinmayNakwa/Financial-AI-System/internal/models"
	"github.com/ChinmayNakwa/Financial-AI-System/internal/providers"
)

// Retriever fans a routed query out to the selected providers concurrently.
// A failing provider never fails the stage: its slot carries a failure
// sentinel document instead, and the quality gate rejects it downstream.
type Retriever struct {
	registry      *providers.Registry
	maxConcurrent int
	logger        logger.Logger
}

func NewRetriever(registry *providers.Registry, maxConcurrent int, log logger.Logger) *Retriever {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &Retriever{
		registry:      registry,
		maxConcurrent: maxConcurrent,
		logger:        log.With(map[string]interface{}{"component": "retriever"}),
	}
}

// Retrieve fetches from every source named by the route, primary first and
// secondaries deduplicated in order. The returned slice has one document per
// distinct source, in source order regardless of completion order.
func (r *Retriever) Retrieve(ctx context.Context, route *models.RouteDecision, question string) []models.Document {
	sources := route.Sources()
	docs := make([]models.Document, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.maxConcurrent)

	for i, id := range sources {
		g.Go(func() error {
			docs[i] = r.fetchOne(gctx, id, question)
			return nil
		})
	}
	// Workers only record per-slot outcomes, so this cannot fail.
	_ = g.Wait()

	r.logger.Info("retrieval complete", map[string]interface{}{
		"sources":   sources,
		"documents": len(docs),
	})
	return docs
}

func (r *Retriever) fetchOne(ctx context.Context, id models.ProviderID, question string) models.Document {
	provider, ok := r.registry.Get(id)
	if !ok {
		err := commonerrors.NewUnknownProviderError(string(id))
		r.logger.WithError(err).Warn("provider not registered", map[string]interface{}{"provider": id})
		return models.Document{Source: id, Content: providers.FailureSentinel(id, err)}
	}

	fetchCtx, cancel := context.WithTimeout(ctx, r.registry.FetchTimeout())
	defer cancel()

	start := time.Now()
	content, err := provider.Fetch(fetchCtx, question)
	metrics.ProviderFetchDuration.WithLabelValues(string(id)).Observe(time.Since(start).Seconds())

	if err != nil {
		ferr := classifyFetchFailure(id, err)
		metrics.ProviderFetchFailures.WithLabelValues(string(id), string(ferr.Code)).Inc()
		r.logger.WithError(ferr).Warn("provider fetch failed", map[string]interface{}{
			"provider": id,
			"duration": time.Since(start).String(),
		})
		return models.Document{Source: id, Content: providers.FailureSentinel(id, err)}
	}

	r.logger.Debug("provider fetch succeeded", map[string]interface{}{
		"provider": id,
		"bytes":    len(content),
		"duration": time.Since(start).String(),
	})
	return models.Document{Source: id, Content: content}
}

// classifyFetchFailure separates timeouts from other upstream failures. The
// code labels the failure metric and the log; the sentinel document keeps
// the raw cause for the quality gate.
func classifyFetchFailure(id models.ProviderID, err error) *commonerrors.StandardError {
	if errors.Is(err, context.DeadlineExceeded) {
		return commonerrors.NewProviderTimeoutError(string(id))
	}
	return commonerrors.NewProviderFetchError(string(id), err)
}

// internal/pipeline/orchestrator.go
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	commonerrors "github.com/ChinmayNakwa/Financial-AI-System/internal/common/errors"
	"github.com/ChinmayNakwa/Financial-AI-System/internal/common/logger"
	"github.com/ChinmayNakwa/Financial-AI-System/internal/common/metrics"
	"github.com/ChinmayNakwa/Financial-AI-System/internal/common/observability"
	"github.com/ChinmayNakwa/Financial-AI-System/internal/models"
	"github.com/ChinmayNakwa/Financial-AI-System/internal/oracle"
	"github.com/ChinmayNakwa/Financial-AI-System/internal/providers"
)

// State names a stage of the pipeline state machine.
type State string

const (
	StateRoute         State = "ROUTE"
	StateRetrieve      State = "RETRIEVE"
	StateQualityFilter State = "QUALITY_FILTER"
	StateReconcile     State = "RECONCILE"
	StateGenerate      State = "GENERATE"
	StateEnd           State = "END"
)

// InsufficientDataAnswer is returned when the quality gate rejects every
// retrieved document. It is an answer, not an error: the pipeline worked,
// the data did not.
const InsufficientDataAnswer = "I could not find sufficient high-quality data to answer your question. " +
	"Please try rephrasing it, or ask about a specific company, economic indicator, or asset."

// Options tunes a pipeline run.
type Options struct {
	QualityThreshold     float64
	MaxSteps             int
	MaxConcurrentFetches int
}

// Orchestrator drives a question through the fixed state machine:
// ROUTE -> RETRIEVE -> QUALITY_FILTER -> {END | GENERATE | RECONCILE} -> END.
// The only branch point is after the quality gate, keyed on how many
// documents survived.
type Orchestrator struct {
	router      *Router
	retriever   *Retriever
	gate        *Gate
	reconciler  *Reconciler
	synthesizer *Synthesizer
	tracing     *observability.Tracing
	obs         *observability.Observability
	maxSteps    int
	logger      logger.Logger
}

func NewOrchestrator(orc oracle.Oracle, registry *providers.Registry, opts Options, tracing *observability.Tracing, obs *observability.Observability, log logger.Logger) *Orchestrator {
	if opts.MaxSteps < 1 {
		opts.MaxSteps = 10
	}
	if tracing == nil {
		tracing = observability.NewTracing("financial-ai-system", "")
	}
	if obs == nil {
		obs = &observability.Observability{}
	}
	return &Orchestrator{
		router:      NewRouter(orc, log),
		retriever:   NewRetriever(registry, opts.MaxConcurrentFetches, log),
		gate:        NewGate(orc, opts.QualityThreshold, log),
		reconciler:  NewReconciler(orc, log),
		synthesizer: NewSynthesizer(orc, log),
		tracing:     tracing,
		obs:         obs,
		maxSteps:    opts.MaxSteps,
		logger:      log.With(map[string]interface{}{"component": "orchestrator"}),
	}
}

// Answer runs the full pipeline for one question and returns the final
// answer. Routing and synthesis failures abort the run; retrieval, quality
// and reconciliation failures degrade inside their stages.
func (o *Orchestrator) Answer(ctx context.Context, question string) (string, error) {
	run := &models.PipelineState{
		RunID:    uuid.NewString(),
		Question: question,
	}
	log := o.logger.With(map[string]interface{}{"runId": run.RunID})
	log.Info("pipeline run started", map[string]interface{}{"question": question})

	runStart := time.Now()
	finish := func(outcome string) {
		metrics.PipelineRuns.WithLabelValues(outcome).Inc()
		o.obs.RecordRun(ctx, outcome)
		o.obs.RecordRunDuration(ctx, time.Since(runStart), outcome)
	}

	state := StateRoute
	for steps := 0; state != StateEnd; steps++ {
		if steps >= o.maxSteps {
			finish("error")
			return "", commonerrors.NewPipelineStepsExceededError(steps)
		}
		select {
		case <-ctx.Done():
			finish("error")
			return "", ctx.Err()
		default:
		}

		spanCtx, span := o.tracing.StartSpan(ctx, "pipeline."+string(state))
		start := time.Now()
		next, err := o.step(spanCtx, state, run, log)
		metrics.PipelineStateDuration.WithLabelValues(string(state)).Observe(time.Since(start).Seconds())
		span.End()

		if err != nil {
			finish("error")
			log.WithError(err).Error("pipeline run failed", map[string]interface{}{"state": state})
			return "", err
		}

		log.Debug("state transition", map[string]interface{}{
			"from":     state,
			"to":       next,
			"duration": time.Since(start).String(),
		})
		state = next
	}

	outcome := "answered"
	if run.FinalAnswer == InsufficientDataAnswer {
		outcome = "insufficient_data"
	}
	finish(outcome)
	log.Info("pipeline run finished", map[string]interface{}{"outcome": outcome})
	return run.FinalAnswer, nil
}

func (o *Orchestrator) step(ctx context.Context, state State, run *models.PipelineState, log logger.Logger) (State, error) {
	switch state {
	case StateRoute:
		route, err := o.router.Route(ctx, run.Question)
		if err != nil {
			return StateEnd, err
		}
		run.Route = route
		return StateRetrieve, nil

	case StateRetrieve:
		run.Documents = o.retriever.Retrieve(ctx, run.Route, run.Question)
		return StateQualityFilter, nil

	case StateQualityFilter:
		run.Documents = o.gate.Filter(ctx, run.Documents, run.Question)
		next := nextAfterFilter(len(run.Documents))
		if next == StateEnd {
			log.Warn("no documents passed the quality gate", nil)
			run.FinalAnswer = InsufficientDataAnswer
		}
		return next, nil

	case StateReconcile:
		run.Documents = o.reconciler.Reconcile(ctx, run.Documents, run.Question)
		return StateGenerate, nil

	case StateGenerate:
		answer, err := o.synthesizer.Synthesize(ctx, run.Documents, run.Question)
		if err != nil {
			return StateEnd, err
		}
		run.FinalAnswer = answer
		return StateEnd, nil

	default:
		return StateEnd, fmt.Errorf("unknown pipeline state: %s", state)
	}
}

// nextAfterFilter is the pipeline's single branch: nothing usable ends the
// run, one document skips straight to generation, several need to be
// cross-checked first.
func nextAfterFilter(accepted int) State {
	switch {
	case accepted == 0:
		return StateEnd
	case accepted == 1:
		return StateGenerate
	default:
		return StateReconcile
	}
}

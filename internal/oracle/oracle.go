// internal/oracle/oracle.go
// Package oracle abstracts the structured-completion service consulted for the
// four pipeline decisions: routing, quality assessment, reconciliation, and
// synthesis. The pipeline depends only on the Oracle interface, so the
// concrete vendor is swappable and tests substitute doubles.
package oracle

import (
	"context"

	"github.com/ChinmayNakwa/Financial-AI-System/internal/models"
)

// Task names label oracle calls in logs and metrics.
const (
	TaskRoute      = "route"
	TaskQuality    = "quality"
	TaskReconcile  = "reconcile"
	TaskSynthesize = "synthesize"
)

// Oracle is the decision service behind the pipeline's four structured calls.
type Oracle interface {
	// Route classifies the question and selects providers. An unusable reply
	// is an error; there is no default route.
	Route(ctx context.Context, question string) (*models.RouteDecision, error)

	// AssessQuality evaluates one retrieved document against the query.
	AssessQuality(ctx context.Context, source models.ProviderID, content, question string) (*models.QualityVerdict, error)

	// Reconcile compares core factual claims across documents. FinalValue is
	// never set on an inconsistent result.
	Reconcile(ctx context.Context, docs []models.Document, question string) (*models.ReconciliationResult, error)

	// Synthesize produces the final grounded answer strictly from docs.
	Synthesize(ctx context.Context, docs []models.Document, question string) (string, error)
}

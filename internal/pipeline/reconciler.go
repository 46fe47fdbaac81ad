// internal/pipeline/reconciler.go
package pipeline

import (
	"context"
	"strings"

	commonerrors "github.com/ChinmayNakwa/Financial-AI-System/internal/common/errors"
	"github.com/ChinmayNakwa/Financial-AI-System/internal/common/logger"
	"github.com/ChinmayNakwa/Financial-AI-System/internal/models"
	"github.com/ChinmayNakwa/Financial-AI-System/internal/oracle"
)

// Reconciler cross-checks documents from different providers when more than
// one survives the quality gate. It never fails the run: if reconciliation
// cannot be performed, the documents pass through untouched and synthesis
// works with the unreconciled set.
type Reconciler struct {
	oracle oracle.Oracle
	logger logger.Logger
}

func NewReconciler(orc oracle.Oracle, log logger.Logger) *Reconciler {
	return &Reconciler{
		oracle: orc,
		logger: log.With(map[string]interface{}{"component": "reconciler"}),
	}
}

// Reconcile compares the documents against each other. When they agree on a
// consolidated value, the whole set collapses into a single synthetic
// document so synthesis cannot reintroduce a discrepancy. Any other verdict
// leaves the list untouched: a disagreement reaches synthesis with every
// document intact so the answer can surface it, never resolved by quietly
// dropping a source.
func (r *Reconciler) Reconcile(ctx context.Context, docs []models.Document, question string) []models.Document {
	result, err := r.oracle.Reconcile(ctx, docs, question)
	if err != nil {
		rerr := commonerrors.NewReconciliationFailedError(err)
		r.logger.WithError(rerr).Warn("reconciliation failed, passing documents through", map[string]interface{}{
			"documents": len(docs),
		})
		return docs
	}

	r.logger.Info("reconciliation verdict", map[string]interface{}{
		"consistent":       result.Consistent,
		"consensusScore":   result.ConsensusScore,
		"reliableSources":  result.ReliableSources,
		"discrepancies":    result.Discrepancies,
		"hasConsolidation": result.FinalValue != "",
	})

	if result.Consistent && result.FinalValue != "" {
		return []models.Document{{
			Source:  reconciledSource(result.ReliableSources, docs),
			Content: result.FinalValue,
		}}
	}

	return docs
}

// reconciledSource tags the synthetic consensus document with the provider
// ids that contributed to it.
func reconciledSource(reliable []models.ProviderID, docs []models.Document) models.ProviderID {
	ids := reliable
	if len(ids) == 0 {
		ids = make([]models.ProviderID, 0, len(docs))
		for _, doc := range docs {
			ids = append(ids, doc.Source)
		}
	}
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, string(id))
	}
	return models.ProviderID("reconciled_from_" + strings.Join(parts, "+"))
}

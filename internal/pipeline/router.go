// internal/pipeline/router.go
package pipeline

import (
	"context"
	"fmt"

	commonerrors "github.com/ChinmayNakwa/Financial-AI-System/internal/common/errors"
	"github.com/ChinmayNakwa/Financial-AI-System/internal/common/logger"
	"github.com/ChinmayNakwa/Financial-AI-System/internal/models"
	"github.com/ChinmayNakwa/Financial-AI-System/internal/oracle"
)

// Router classifies the question and selects the providers to consult. There
// is deliberately no default route: guessing risks invoking the wrong paid
// API, so any unusable oracle reply is fatal for the run.
type Router struct {
	oracle oracle.Oracle
	logger logger.Logger
}

func NewRouter(orc oracle.Oracle, log logger.Logger) *Router {
	return &Router{
		oracle: orc,
		logger: log.With(map[string]interface{}{"component": "router"}),
	}
}

func (r *Router) Route(ctx context.Context, question string) (*models.RouteDecision, error) {
	route, err := r.oracle.Route(ctx, question)
	if err != nil {
		return nil, commonerrors.NewRoutingFailedError(err)
	}

	// The oracle schema already constrains these, but the oracle is an
	// injected interface; revalidate so a misbehaving implementation can
	// never route outside the catalog.
	if !models.IsKnownProvider(route.PrimaryDatasource) {
		return nil, commonerrors.NewInvalidRouteError(fmt.Sprintf("primary_datasource: %s", route.PrimaryDatasource))
	}
	for _, id := range route.SecondarySources {
		if !models.IsKnownProvider(id) {
			return nil, commonerrors.NewInvalidRouteError(fmt.Sprintf("secondary source: %s", id))
		}
	}
	if route.Confidence < 0 || route.Confidence > 1 {
		return nil, commonerrors.NewInvalidRouteError(fmt.Sprintf("confidence out of range: %f", route.Confidence))
	}

	r.logger.Info("query routed", map[string]interface{}{
		"primary":    route.PrimaryDatasource,
		"secondary":  route.SecondarySources,
		"queryType":  route.QueryType,
		"confidence": route.Confidence,
	})
	return route, nil
}

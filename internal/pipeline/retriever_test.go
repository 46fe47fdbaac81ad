// internal/pipeline/retriever_test.go
package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	commonerrors "github.com/ChinmayNakwa/Financial-AI-System/internal/common/errors"
	"github.com/ChinmayNakwa/Financial-AI-System/internal/common/logger"
	"github.com/ChinmayNakwa/Financial-AI-System/internal/common/metrics"
	"github.com/ChinmayNakwa/Financial-AI-System/internal/models"
	"github.com/ChinmayNakwa/Financial-AI-System/internal/providers"
)

func fetchFailures(provider string, code commonerrors.ErrorCode) float64 {
	return testutil.ToFloat64(metrics.ProviderFetchFailures.WithLabelValues(provider, string(code)))
}

func TestRetriever_OrderAndDedup(t *testing.T) {
	registry := testRegistry(
		&fakeProvider{id: models.ProviderYahooFinance, content: "Stock quote for AAPL (Yahoo Finance): current price 232.10 USD."},
		&fakeProvider{id: models.ProviderPolygon, content: "Technical indicators for AAPL: SMA(50) 229.80."},
		&fakeProvider{id: models.ProviderNewsAPI, content: "Latest financial news (NewsAPI):\n- Apple ships product - Reuters\n"},
	)
	retriever := NewRetriever(registry, 4, logger.NewTestLogger(t))

	// The primary repeated in the secondaries must be fetched once.
	route := &models.RouteDecision{
		PrimaryDatasource: models.ProviderYahooFinance,
		SecondarySources: []models.ProviderID{
			models.ProviderYahooFinance,
			models.ProviderNewsAPI,
			models.ProviderPolygon,
			models.ProviderNewsAPI,
		},
	}

	docs := retriever.Retrieve(context.Background(), route, "Apple stock")

	require.Len(t, docs, 3)
	assert.Equal(t, models.ProviderYahooFinance, docs[0].Source)
	assert.Equal(t, models.ProviderNewsAPI, docs[1].Source)
	assert.Equal(t, models.ProviderPolygon, docs[2].Source)
}

func TestRetriever_FailureBecomesSentinel(t *testing.T) {
	registry := testRegistry(
		&fakeProvider{id: models.ProviderYahooFinance, content: "Stock quote for AAPL (Yahoo Finance): current price 232.10 USD."},
		&fakeProvider{id: models.ProviderPolygon, err: errors.New("429 too many requests")},
	)
	retriever := NewRetriever(registry, 4, logger.NewTestLogger(t))

	route := &models.RouteDecision{
		PrimaryDatasource: models.ProviderYahooFinance,
		SecondarySources:  []models.ProviderID{models.ProviderPolygon},
	}

	before := fetchFailures("polygon_io", commonerrors.ErrCodeProviderFetchFailed)
	docs := retriever.Retrieve(context.Background(), route, "Apple stock")

	require.Len(t, docs, 2)
	assert.False(t, providers.IsFailureSentinel(docs[0].Content))
	assert.True(t, providers.IsFailureSentinel(docs[1].Content))
	assert.Contains(t, docs[1].Content, "polygon_io")
	assert.Contains(t, docs[1].Content, "429 too many requests")
	assert.Equal(t, before+1, fetchFailures("polygon_io", commonerrors.ErrCodeProviderFetchFailed))
}

func TestRetriever_UnregisteredProviderBecomesSentinel(t *testing.T) {
	registry := testRegistry(
		&fakeProvider{id: models.ProviderYahooFinance, content: "Stock quote for AAPL (Yahoo Finance): current price 232.10 USD."},
	)
	retriever := NewRetriever(registry, 4, logger.NewTestLogger(t))

	route := &models.RouteDecision{
		PrimaryDatasource: models.ProviderYahooFinance,
		SecondarySources:  []models.ProviderID{models.ProviderFRED},
	}

	docs := retriever.Retrieve(context.Background(), route, "Apple stock")

	require.Len(t, docs, 2)
	assert.True(t, providers.IsFailureSentinel(docs[1].Content))
	assert.Equal(t, models.ProviderFRED, docs[1].Source)
}

func TestRetriever_SlowProviderTimesOut(t *testing.T) {
	registry := providers.NewRegistryFromProviders(50*time.Millisecond,
		&fakeProvider{id: models.ProviderYahooFinance, content: "Stock quote for AAPL (Yahoo Finance): current price 232.10 USD."},
		&fakeProvider{id: models.ProviderTavily, content: "never returned", delay: 2 * time.Second},
	)
	retriever := NewRetriever(registry, 4, logger.NewTestLogger(t))

	route := &models.RouteDecision{
		PrimaryDatasource: models.ProviderYahooFinance,
		SecondarySources:  []models.ProviderID{models.ProviderTavily},
	}

	before := fetchFailures("tavily", commonerrors.ErrCodeProviderTimeout)
	start := time.Now()
	docs := retriever.Retrieve(context.Background(), route, "Apple stock")
	elapsed := time.Since(start)

	require.Len(t, docs, 2)
	assert.True(t, providers.IsFailureSentinel(docs[1].Content))
	assert.True(t, strings.Contains(docs[1].Content, "deadline exceeded"))
	assert.Less(t, elapsed, time.Second, "timeout must cut the slow provider off")
	assert.Equal(t, before+1, fetchFailures("tavily", commonerrors.ErrCodeProviderTimeout),
		"a timed-out fetch must be counted as a timeout, not a generic failure")
}

// internal/pipeline/quality_test.go
package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChinmayNakwa/Financial-AI-System/internal/common/logger"
	"github.com/ChinmayNakwa/Financial-AI-System/internal/models"
	"github.com/ChinmayNakwa/Financial-AI-System/internal/providers"
)

// ==========================
// Deterministic Pre-Filter
// ==========================

func TestPreFilter(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		rejected bool
	}{
		{
			name:     "empty content",
			content:  "",
			rejected: true,
		},
		{
			name:     "whitespace only",
			content:  "   \n\t  ",
			rejected: true,
		},
		{
			name:     "too short",
			content:  "AAPL 232",
			rejected: true,
		},
		{
			name:     "failure sentinel",
			content:  providers.FailureSentinel(models.ProviderYahooFinance, errors.New("connection refused")),
			rejected: true,
		},
		{
			name:     "malformed news digest",
			content:  "Latest financial news (NewsAPI):\n- No title - Unknown (2026-08-29)\n",
			rejected: true,
		},
		{
			name:     "short error message",
			content:  "An internal error occurred while processing the request.",
			rejected: true,
		},
		{
			name:     "short failure text",
			content:  "The upstream request failed with status 503.",
			rejected: true,
		},
		{
			name:    "long content mentioning failure keywords",
			content: "Quarterly report: revenue grew 12% despite a failed product launch in Q2. " + "Management attributed the error in prior guidance to currency effects. " + "Operating margin expanded to 31%, and the board approved a new buyback program covering 4% of shares outstanding.",
		},
		{
			name:    "normal stock quote",
			content: "Stock quote for AAPL (Yahoo Finance): current price 232.10 USD, previous close 230.50 USD.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict, rejected := preFilter(tt.content)
			assert.Equal(t, tt.rejected, rejected)
			if tt.rejected {
				require.NotNil(t, verdict)
				assert.False(t, verdict.IsRelevant)
				assert.Zero(t, verdict.Confidence)
				assert.NotEmpty(t, verdict.Issues)
			} else {
				assert.Nil(t, verdict)
			}
		})
	}
}

// preFilter must be pure: same content, same verdict, every time.
func TestPreFilter_Deterministic(t *testing.T) {
	content := "short err"
	for i := 0; i < 100; i++ {
		verdict, rejected := preFilter(content)
		require.True(t, rejected)
		require.Equal(t, []string{"content too short to be useful"}, verdict.Issues)
	}
}

// ==========================
// Gate Behavior
// ==========================

func TestGate_Filter_ThresholdAndRelevance(t *testing.T) {
	verdicts := map[models.ProviderID]*models.QualityVerdict{
		models.ProviderYahooFinance: {IsRecent: true, IsReliable: true, IsRelevant: true, Confidence: 0.9},
		models.ProviderPolygon:      {IsRecent: true, IsReliable: true, IsRelevant: true, Confidence: 0.3},
		models.ProviderNewsAPI:      {IsRecent: true, IsReliable: true, IsRelevant: false, Confidence: 0.9},
	}
	oracle := &stubOracle{
		qualityFn: func(ctx context.Context, source models.ProviderID, content, question string) (*models.QualityVerdict, error) {
			return verdicts[source], nil
		},
	}

	docs := []models.Document{
		{Source: models.ProviderYahooFinance, Content: "Stock quote for AAPL (Yahoo Finance): current price 232.10 USD."},
		{Source: models.ProviderPolygon, Content: "Technical indicators for AAPL: SMA(50) 229.80, RSI(14) 61.2."},
		{Source: models.ProviderNewsAPI, Content: "Latest financial news (NewsAPI):\n- Apple ships new product - Reuters (2026-08-29)\n"},
	}

	gate := NewGate(oracle, 0.5, logger.NewTestLogger(t))
	accepted := gate.Filter(context.Background(), docs, "What is Apple's stock price?")

	require.Len(t, accepted, 1)
	assert.Equal(t, models.ProviderYahooFinance, accepted[0].Source)
	require.NotNil(t, accepted[0].Quality)
	assert.Equal(t, 0.9, accepted[0].Quality.Confidence)
}

func TestGate_Filter_AssessmentErrorRejects(t *testing.T) {
	oracle := &stubOracle{
		qualityFn: func(ctx context.Context, source models.ProviderID, content, question string) (*models.QualityVerdict, error) {
			return nil, errors.New("malformed verdict JSON")
		},
	}

	docs := []models.Document{
		{Source: models.ProviderFRED, Content: "Economic data for Consumer Price Index (FRED series CPIAUCSL): latest value 321.5."},
	}

	gate := NewGate(oracle, 0.5, logger.NewTestLogger(t))
	accepted := gate.Filter(context.Background(), docs, "What is the inflation rate?")

	assert.Empty(t, accepted)

	// The attached verdict must record the parse failure with zero confidence.
	doc, ok := gate.assess(context.Background(), docs[0], "What is the inflation rate?")
	assert.False(t, ok)
	require.NotNil(t, doc.Quality)
	assert.Zero(t, doc.Quality.Confidence)
	require.NotEmpty(t, doc.Quality.Issues)
	assert.Contains(t, doc.Quality.Issues[0], "could not be parsed")
	assert.Contains(t, doc.Quality.Issues[0], "malformed verdict JSON")
}

func TestGate_Filter_PreservesOrder(t *testing.T) {
	oracle := &stubOracle{qualityFn: acceptAll}

	docs := []models.Document{
		{Source: models.ProviderYahooFinance, Content: "Stock quote for AAPL (Yahoo Finance): current price 232.10 USD."},
		{Source: models.ProviderPolygon, Content: "Technical indicators for AAPL: SMA(50) 229.80, RSI(14) 61.2."},
		{Source: models.ProviderNewsAPI, Content: "Latest financial news (NewsAPI):\n- Apple ships new product - Reuters (2026-08-29)\n"},
	}

	gate := NewGate(oracle, 0.5, logger.NewTestLogger(t))
	accepted := gate.Filter(context.Background(), docs, "Tell me about Apple")

	require.Len(t, accepted, 3)
	assert.Equal(t, models.ProviderYahooFinance, accepted[0].Source)
	assert.Equal(t, models.ProviderPolygon, accepted[1].Source)
	assert.Equal(t, models.ProviderNewsAPI, accepted[2].Source)
}

// internal/providers/yahoofinance_test.go
package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChinmayNakwa/Financial-AI-System/internal/common/config"
	commonhttp "github.com/ChinmayNakwa/Financial-AI-System/internal/common/http"
	"github.com/ChinmayNakwa/Financial-AI-System/internal/common/logger"
)

func newYahooForTest(t *testing.T, handler http.HandlerFunc) (*YahooFinance, *httptest.Server) {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	y := NewYahooFinance(
		config.ProviderEndpoint{BaseURL: server.URL},
		commonhttp.NewClient(2*time.Second),
		logger.NewTestLogger(t),
	)
	return y, server
}

func TestYahooFinance_Fetch_Success(t *testing.T) {
	y, _ := newYahooForTest(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v8/finance/chart/AAPL", r.URL.Path)
		assert.Equal(t, "1d", r.URL.Query().Get("interval"))
		assert.Equal(t, "5d", r.URL.Query().Get("range"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"chart": {
				"result": [{
					"meta": {
						"symbol": "AAPL",
						"currency": "USD",
						"regularMarketPrice": 232.10,
						"chartPreviousClose": 230.50,
						"regularMarketDayHigh": 233.00,
						"regularMarketDayLow": 229.80,
						"fiftyTwoWeekHigh": 260.10,
						"fiftyTwoWeekLow": 169.21
					}
				}],
				"error": null
			}
		}`))
	})

	content, err := y.Fetch(context.Background(), "What is Apple's stock price?")

	require.NoError(t, err)
	assert.Contains(t, content, "Stock quote for AAPL (Yahoo Finance)")
	assert.Contains(t, content, "Current price: 232.10 USD")
	assert.Contains(t, content, "52-week range: 169.21 - 260.10")
}

func TestYahooFinance_Fetch_NoTickerInQuery(t *testing.T) {
	y, _ := newYahooForTest(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request should be made without a ticker")
	})

	_, err := y.Fetch(context.Background(), "how is the economy doing")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not identify a stock ticker")
}

func TestYahooFinance_Fetch_UpstreamError(t *testing.T) {
	y, _ := newYahooForTest(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := y.Fetch(context.Background(), "What is Apple's stock price?")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
}

func TestYahooFinance_Fetch_ChartError(t *testing.T) {
	y, _ := newYahooForTest(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"chart": {"result": [], "error": {"description": "No data found, symbol may be delisted"}}}`))
	})

	_, err := y.Fetch(context.Background(), "What is Apple's stock price?")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "symbol may be delisted")
}

// internal/providers/yahoofinance.go
package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/ChinmayNakwa/Financial-AI-System/internal/common/config"
	commonhttp "github.com/ChinmayNakwa/Financial-AI-System/internal/common/http"
	"github.com/ChinmayNakwa/Financial-AI-System/internal/common/logger"
	"github.com/ChinmayNakwa/Financial-AI-System/internal/models"
)

const defaultYahooBaseURL = "https://query1.finance.yahoo.com"

// YahooFinance serves stock quotes and basic fundamentals.
type YahooFinance struct {
	baseURL string
	client  *commonhttp.Client
	logger  logger.Logger
}

func NewYahooFinance(cfg config.ProviderEndpoint, client *commonhttp.Client, log logger.Logger) *YahooFinance {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultYahooBaseURL
	}
	return &YahooFinance{
		baseURL: baseURL,
		client:  client,
		logger:  log.With(map[string]interface{}{"provider": models.ProviderYahooFinance}),
	}
}

func (y *YahooFinance) ID() models.ProviderID {
	return models.ProviderYahooFinance
}

type yahooChartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol               string  `json:"symbol"`
				Currency             string  `json:"currency"`
				RegularMarketPrice   float64 `json:"regularMarketPrice"`
				ChartPreviousClose   float64 `json:"chartPreviousClose"`
				RegularMarketDayHigh float64 `json:"regularMarketDayHigh"`
				RegularMarketDayLow  float64 `json:"regularMarketDayLow"`
				FiftyTwoWeekHigh     float64 `json:"fiftyTwoWeekHigh"`
				FiftyTwoWeekLow      float64 `json:"fiftyTwoWeekLow"`
			} `json:"meta"`
		} `json:"result"`
		Error *struct {
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func (y *YahooFinance) Fetch(ctx context.Context, query string) (string, error) {
	ticker := ExtractTicker(query)
	if ticker == "" {
		return "", fmt.Errorf("could not identify a stock ticker in the query")
	}

	url := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=5d", y.baseURL, ticker)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (financial-rag)")

	resp, err := y.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("yahoo finance returned status %d for %s", resp.StatusCode, ticker)
	}

	var chart yahooChartResponse
	if err := json.NewDecoder(resp.Body).Decode(&chart); err != nil {
		return "", fmt.Errorf("decode yahoo response: %w", err)
	}
	if chart.Chart.Error != nil {
		return "", fmt.Errorf("yahoo finance error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 {
		return "", fmt.Errorf("no quote data found for ticker %s", ticker)
	}

	meta := chart.Chart.Result[0].Meta
	change := 0.0
	if meta.ChartPreviousClose != 0 {
		change = (meta.RegularMarketPrice - meta.ChartPreviousClose) / meta.ChartPreviousClose * 100
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Stock quote for %s (Yahoo Finance):\n", meta.Symbol)
	fmt.Fprintf(&b, "Current price: %.2f %s (%.2f%% vs previous close %.2f)\n",
		meta.RegularMarketPrice, meta.Currency, change, meta.ChartPreviousClose)
	fmt.Fprintf(&b, "Day range: %.2f - %.2f\n", meta.RegularMarketDayLow, meta.RegularMarketDayHigh)
	fmt.Fprintf(&b, "52-week range: %.2f - %.2f\n", meta.FiftyTwoWeekLow, meta.FiftyTwoWeekHigh)

	y.logger.Debug("fetched quote", map[string]interface{}{"ticker": meta.Symbol})
	return b.String(), nil
}

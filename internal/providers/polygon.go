// internal/providers/polygon.go
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

const defaultPolygonBaseURL = "https://api.polygon.io"

// Polygon serves technical indicators (SMA, RSI) for equities.
type Polygon struct {
	baseURL string
	apiKey  string
	client  *commonhttp.Client
	logger  logger.Logger
}

func NewPolygon(cfg config.ProviderEndpoint, client *commonhttp.Client, log logger.Logger) *Polygon {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultPolygonBaseURL
	}
	return &Polygon{
		baseURL: baseURL,
		apiKey:  cfg.APIKey,
		client:  client,
		logger:  log.With(map[string]interface{}{"provider": models.ProviderPolygon}),
	}
}

func (p *Polygon) ID() models.ProviderID {
	return models.ProviderPolygon
}

type polygonIndicatorResponse struct {
	Results struct {
		Values []struct {
			Timestamp int64   `json:"timestamp"`
			Value     float64 `json:"value"`
		} `json:"values"`
	} `json:"results"`
	Status string `json:"status"`
}

func (p *Polygon) Fetch(ctx context.Context, query string) (string, error) {
	ticker := ExtractTicker(query)
	if ticker == "" {
		return "", fmt.Errorf("could not identify a stock ticker in the query")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Technical indicators for %s (Polygon.io):\n", ticker)

	sma, smaErr := p.fetchIndicator(ctx, "sma", ticker, 50)
	if smaErr == nil {
		fmt.Fprintf(&b, "50-day SMA: %.2f\n", sma)
	}
	rsi, rsiErr := p.fetchIndicator(ctx, "rsi", ticker, 14)
	if rsiErr == nil {
		fmt.Fprintf(&b, "14-day RSI: %.2f\n", rsi)
	}

	if smaErr != nil && rsiErr != nil {
		return "", fmt.Errorf("indicator fetch failed for %s: %v", ticker, smaErr)
	}

	p.logger.Debug("fetched indicators", map[string]interface{}{"ticker": ticker})
	return b.String(), nil
}

func (p *Polygon) fetchIndicator(ctx context.Context, indicator, ticker string, window int) (float64, error) {
	url := fmt.Sprintf("%s/v1/indicators/%s/%s?timespan=day&window=%d&series_type=close&limit=1&apiKey=%s",
		p.baseURL, indicator, ticker, window, p.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("polygon returned status %d", resp.StatusCode)
	}

	var out polygonIndicatorResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("decode polygon response: %w", err)
	}
	if len(out.Results.Values) == 0 {
		return 0, fmt.Errorf("no %s values returned", indicator)
	}
	return out.Results.Values[0].Value, nil
}

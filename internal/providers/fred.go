// internal/providers/fred.go
package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/ChinmayNakwa/Financial-AI-System/internal/common/config"
	commonhttp "github.com/ChinmayNakwa/Financial-AI-System/internal/common/http"
	"github.com/ChinmayNakwa/Financial-AI-System/internal/common/logger"
	"github.com/ChinmayNakwa/Financial-AI-System/internal/models"
)

const defaultFREDBaseURL = "https://api.stlouisfed.org"

// FRED serves US macroeconomic series from the Federal Reserve. A static
// keyword map resolves the series id, so common indicator questions never
// need a model call.
type FRED struct {
	baseURL string
	apiKey  string
	client  *commonhttp.Client
	logger  logger.Logger
}

func NewFRED(cfg config.ProviderEndpoint, client *commonhttp.Client, log logger.Logger) *FRED {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultFREDBaseURL
	}
	return &FRED{
		baseURL: baseURL,
		apiKey:  cfg.APIKey,
		client:  client,
		logger:  log.With(map[string]interface{}{"provider": models.ProviderFRED}),
	}
}

func (f *FRED) ID() models.ProviderID {
	return models.ProviderFRED
}

type fredObservationsResponse struct {
	Observations []struct {
		Date  string `json:"date"`
		Value string `json:"value"`
	} `json:"observations"`
}

func (f *FRED) Fetch(ctx context.Context, query string) (string, error) {
	series, label, ok := ResolveEconomicSeries(query)
	if !ok {
		return "", fmt.Errorf("no known economic series matched the query")
	}

	params := url.Values{}
	params.Set("series_id", series)
	params.Set("api_key", f.apiKey)
	params.Set("file_type", "json")
	params.Set("sort_order", "desc")
	params.Set("limit", "13")

	reqURL := fmt.Sprintf("%s/fred/series/observations?%s", f.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("FRED returned status %d for series %s", resp.StatusCode, series)
	}

	var obs fredObservationsResponse
	if err := json.NewDecoder(resp.Body).Decode(&obs); err != nil {
		return "", fmt.Errorf("decode FRED response: %w", err)
	}
	if len(obs.Observations) == 0 {
		return "", fmt.Errorf("no observations found for series %s", series)
	}

	latest := obs.Observations[0]
	latestValue, err := strconv.ParseFloat(latest.Value, 64)
	if err != nil {
		return "", fmt.Errorf("unparseable observation value %q for series %s", latest.Value, series)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "US economic data from FRED (%s, series %s):\n", label, series)
	fmt.Fprintf(&b, "Latest observation: %.2f on %s\n", latestValue, latest.Date)

	// Year-over-year change when a full year of monthly data is available.
	if len(obs.Observations) == 13 {
		if prior, err := strconv.ParseFloat(obs.Observations[12].Value, 64); err == nil && prior != 0 {
			yoy := (latestValue - prior) / prior * 100
			fmt.Fprintf(&b, "Year-over-year change: %.2f%% (from %.2f on %s)\n",
				yoy, prior, obs.Observations[12].Date)
		}
	}

	f.logger.Debug("fetched series", map[string]interface{}{"series": series, "date": latest.Date})
	return b.String(), nil
}

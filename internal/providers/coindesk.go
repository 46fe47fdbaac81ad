// internal/providers/coindesk.go
package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ChinmayNakwa/Financial-AI-System/internal/common/config"
	commonhttp "github.com/ChinmayNakwa/Financial-AI-System/internal/common/http"
	"github.com/ChinmayNakwa/Financial-AI-System/internal/common/logger"
	"github.com/ChinmayNakwa/Financial-AI-System/internal/models"
)

const defaultCoinDeskBaseURL = "https://data-api.coindesk.com"

// CoinDesk serves cryptocurrency tick data.
type CoinDesk struct {
	baseURL string
	apiKey  string
	client  *commonhttp.Client
	logger  logger.Logger
}

func NewCoinDesk(cfg config.ProviderEndpoint, client *commonhttp.Client, log logger.Logger) *CoinDesk {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultCoinDeskBaseURL
	}
	return &CoinDesk{
		baseURL: baseURL,
		apiKey:  cfg.APIKey,
		client:  client,
		logger:  log.With(map[string]interface{}{"provider": models.ProviderCoinDesk}),
	}
}

func (c *CoinDesk) ID() models.ProviderID {
	return models.ProviderCoinDesk
}

type coinDeskTickResponse struct {
	Data map[string]struct {
		Value               float64 `json:"VALUE"`
		CurrentDayChangePct float64 `json:"CURRENT_DAY_CHANGE_PERCENTAGE"`
		CurrentDayHigh      float64 `json:"CURRENT_DAY_HIGH"`
		CurrentDayLow       float64 `json:"CURRENT_DAY_LOW"`
	} `json:"Data"`
}

func (c *CoinDesk) Fetch(ctx context.Context, query string) (string, error) {
	instruments := ResolveInstruments(query)

	params := url.Values{}
	params.Set("market", "cadli")
	params.Set("instruments", strings.Join(instruments, ","))
	if c.apiKey != "" {
		params.Set("api_key", c.apiKey)
	}

	reqURL := fmt.Sprintf("%s/index/cc/v1/latest/tick?%s", c.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("coindesk returned status %d", resp.StatusCode)
	}

	var out coinDeskTickResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode coindesk response: %w", err)
	}
	if len(out.Data) == 0 {
		return "", fmt.Errorf("no tick data for instruments %s", strings.Join(instruments, ","))
	}

	var b strings.Builder
	b.WriteString("Cryptocurrency quotes (CoinDesk):\n")
	for _, instrument := range instruments {
		tick, ok := out.Data[instrument]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "%s: %.2f USD (%.2f%% today, day range %.2f - %.2f)\n",
			instrument, tick.Value, tick.CurrentDayChangePct, tick.CurrentDayLow, tick.CurrentDayHigh)
	}

	c.logger.Debug("fetched ticks", map[string]interface{}{"instruments": instruments})
	return b.String(), nil
}

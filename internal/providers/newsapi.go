// internal/providers/newsapi.go
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

const defaultNewsAPIBaseURL = "https://newsapi.org"

// NewsAPI serves recent financial news headlines.
type NewsAPI struct {
	baseURL string
	apiKey  string
	client  *commonhttp.Client
	logger  logger.Logger
}

func NewNewsAPI(cfg config.ProviderEndpoint, client *commonhttp.Client, log logger.Logger) *NewsAPI {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultNewsAPIBaseURL
	}
	return &NewsAPI{
		baseURL: baseURL,
		apiKey:  cfg.APIKey,
		client:  client,
		logger:  log.With(map[string]interface{}{"provider": models.ProviderNewsAPI}),
	}
}

func (n *NewsAPI) ID() models.ProviderID {
	return models.ProviderNewsAPI
}

type newsAPIResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Articles []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		PublishedAt string `json:"publishedAt"`
		URL         string `json:"url"`
		Source      struct {
			Name string `json:"name"`
		} `json:"source"`
	} `json:"articles"`
}

func (n *NewsAPI) Fetch(ctx context.Context, query string) (string, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("language", "en")
	params.Set("sortBy", "publishedAt")
	params.Set("pageSize", "5")

	reqURL := fmt.Sprintf("%s/v2/everything?%s", n.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("X-Api-Key", n.apiKey)

	resp, err := n.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("newsapi returned status %d", resp.StatusCode)
	}

	var out newsAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode newsapi response: %w", err)
	}
	if out.Status != "ok" {
		return "", fmt.Errorf("newsapi error: %s", out.Message)
	}
	if len(out.Articles) == 0 {
		return "", fmt.Errorf("no news articles found for the query")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Latest financial news (NewsAPI):\n")
	for _, a := range out.Articles {
		title := a.Title
		if title == "" {
			title = "No title"
		}
		source := a.Source.Name
		if source == "" {
			source = "Unknown"
		}
		fmt.Fprintf(&b, "- %s - %s (%s)\n", title, source, a.PublishedAt)
		if a.Description != "" {
			fmt.Fprintf(&b, "  %s\n", a.Description)
		}
	}

	n.logger.Debug("fetched news", map[string]interface{}{"articles": len(out.Articles)})
	return b.String(), nil
}

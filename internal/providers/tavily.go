// internal/providers/tavily.go
package providers

import (
	"bytes"
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

const defaultTavilyBaseURL = "https://api.tavily.com"

// Tavily serves general web search for broad or qualitative questions the
// specialized APIs cannot answer.
type Tavily struct {
	baseURL string
	apiKey  string
	client  *commonhttp.Client
	logger  logger.Logger
}

func NewTavily(cfg config.ProviderEndpoint, client *commonhttp.Client, log logger.Logger) *Tavily {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultTavilyBaseURL
	}
	return &Tavily{
		baseURL: baseURL,
		apiKey:  cfg.APIKey,
		client:  client,
		logger:  log.With(map[string]interface{}{"provider": models.ProviderTavily}),
	}
}

func (t *Tavily) ID() models.ProviderID {
	return models.ProviderTavily
}

type tavilyResponse struct {
	Answer  string `json:"answer"`
	Results []struct {
		Title   string `json:"title"`
		URL     string `json:"url"`
		Content string `json:"content"`
	} `json:"results"`
}

func (t *Tavily) Fetch(ctx context.Context, query string) (string, error) {
	if strings.TrimSpace(t.apiKey) == "" {
		return "", fmt.Errorf("tavily API key is missing")
	}

	payload, err := json.Marshal(map[string]interface{}{
		"query":          query,
		"api_key":        t.apiKey,
		"search_depth":   "basic",
		"include_answer": true,
		"max_results":    3,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+"/search", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("tavily returned status %d", resp.StatusCode)
	}

	var out tavilyResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode tavily response: %w", err)
	}
	if out.Answer == "" && len(out.Results) == 0 {
		return "", fmt.Errorf("tavily web search found no results")
	}

	var b strings.Builder
	if out.Answer != "" {
		fmt.Fprintf(&b, "Tavily Summary: %s\n\n", out.Answer)
	}
	if len(out.Results) > 0 {
		b.WriteString("Sources:\n")
		contexts := make([]string, 0, len(out.Results))
		for _, r := range out.Results {
			contexts = append(contexts, fmt.Sprintf("Title: %s\nURL: %s\nContent: %s", r.Title, r.URL, r.Content))
		}
		b.WriteString(strings.Join(contexts, "\n\n---\n\n"))
	}

	t.logger.Debug("fetched search results", map[string]interface{}{"results": len(out.Results)})
	return b.String(), nil
}

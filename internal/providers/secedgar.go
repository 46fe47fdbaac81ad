// internal/providers/secedgar.go
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

const defaultEdgarBaseURL = "https://efts.sec.gov"

// SECEdgar serves official filings via EDGAR full-text search. EDGAR rejects
// requests without an identifying User-Agent, so that comes from config.
type SECEdgar struct {
	baseURL   string
	userAgent string
	client    *commonhttp.Client
	logger    logger.Logger
}

func NewSECEdgar(cfg config.SECEdgarConfig, client *commonhttp.Client, log logger.Logger) *SECEdgar {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultEdgarBaseURL
	}
	return &SECEdgar{
		baseURL:   baseURL,
		userAgent: cfg.UserAgent,
		client:    client,
		logger:    log.With(map[string]interface{}{"provider": models.ProviderSECEdgar}),
	}
}

func (s *SECEdgar) ID() models.ProviderID {
	return models.ProviderSECEdgar
}

type edgarSearchResponse struct {
	Hits struct {
		Hits []struct {
			Source struct {
				DisplayNames []string `json:"display_names"`
				FormType     string   `json:"root_form"`
				FileDate     string   `json:"file_date"`
				FileDesc     string   `json:"file_description"`
			} `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

func (s *SECEdgar) Fetch(ctx context.Context, query string) (string, error) {
	params := url.Values{}
	params.Set("q", query)

	reqURL := fmt.Sprintf("%s/LATEST/search-index?%s", s.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("EDGAR returned status %d", resp.StatusCode)
	}

	var out edgarSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode EDGAR response: %w", err)
	}
	if len(out.Hits.Hits) == 0 {
		return "", fmt.Errorf("no SEC filings matched the query")
	}

	var b strings.Builder
	b.WriteString("Recent SEC filings (EDGAR full-text search):\n")
	max := len(out.Hits.Hits)
	if max > 5 {
		max = 5
	}
	for _, hit := range out.Hits.Hits[:max] {
		src := hit.Source
		name := "Unknown filer"
		if len(src.DisplayNames) > 0 {
			name = src.DisplayNames[0]
		}
		fmt.Fprintf(&b, "- %s filed %s on %s", name, src.FormType, src.FileDate)
		if src.FileDesc != "" {
			fmt.Fprintf(&b, " (%s)", src.FileDesc)
		}
		b.WriteString("\n")
	}

	s.logger.Debug("fetched filings", map[string]interface{}{"hits": len(out.Hits.Hits)})
	return b.String(), nil
}

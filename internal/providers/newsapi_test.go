// internal/providers/newsapi_test.go
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

func newNewsAPIForTest(t *testing.T, handler http.HandlerFunc) *NewsAPI {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewNewsAPI(
		config.ProviderEndpoint{BaseURL: server.URL, APIKey: "news-key"},
		commonhttp.NewClient(2*time.Second),
		logger.NewTestLogger(t),
	)
}

func TestNewsAPI_Fetch_Success(t *testing.T) {
	n := newNewsAPIForTest(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/everything", r.URL.Path)
		assert.Equal(t, "news-key", r.Header.Get("X-Api-Key"))
		assert.Equal(t, "5", r.URL.Query().Get("pageSize"))

		w.Write([]byte(`{
			"status": "ok",
			"articles": [
				{
					"title": "Apple rallies after earnings beat",
					"description": "Shares gained 4% in after-hours trading.",
					"publishedAt": "2026-08-29T21:00:00Z",
					"source": {"name": "Reuters"}
				}
			]
		}`))
	})

	content, err := n.Fetch(context.Background(), "Apple earnings news")

	require.NoError(t, err)
	assert.Contains(t, content, "Apple rallies after earnings beat - Reuters")
	assert.Contains(t, content, "Shares gained 4%")
}

// Articles stripped of title and source degrade to the exact text the quality
// pre-filter rejects downstream.
func TestNewsAPI_Fetch_MissingFieldsProduceRejectableDigest(t *testing.T) {
	n := newNewsAPIForTest(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"status": "ok",
			"articles": [
				{"title": "", "description": "", "publishedAt": "2026-08-29T21:00:00Z", "source": {"name": ""}}
			]
		}`))
	})

	content, err := n.Fetch(context.Background(), "Apple earnings news")

	require.NoError(t, err)
	assert.Contains(t, content, "No title - Unknown")
}

func TestNewsAPI_Fetch_APIError(t *testing.T) {
	n := newNewsAPIForTest(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "error", "message": "apiKeyInvalid"}`))
	})

	_, err := n.Fetch(context.Background(), "Apple earnings news")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "apiKeyInvalid")
}

func TestNewsAPI_Fetch_NoArticles(t *testing.T) {
	n := newNewsAPIForTest(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "ok", "articles": []}`))
	})

	_, err := n.Fetch(context.Background(), "obscure topic")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no news articles")
}

// internal/oracle/gemini_test.go
package oracle

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	commonerrors "github.com/ChinmayNakwa/Financial-AI-System/internal/common/errors"
	"github.com/ChinmayNakwa/Financial-AI-System/internal/common/logger"
	"github.com/ChinmayNakwa/Financial-AI-System/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

func newTestGemini(baseURL string) *Gemini {
	return NewGemini(&Config{
		BaseURL:     baseURL,
		Model:       "gemini-2.5-flash",
		APIKey:      "test-key",
		Timeout:     5 * time.Second,
		MaxRetries:  2,
		Temperature: 0.2,
	}, logger.NewNoOpLogger())
}

// geminiReply wraps text in the candidates envelope the API returns.
func geminiReply(text string) string {
	body := map[string]interface{}{
		"candidates": []map[string]interface{}{
			{
				"content": map[string]interface{}{
					"role":  "model",
					"parts": []map[string]string{{"text": text}},
				},
			},
		},
	}
	data, _ := json.Marshal(body)
	return string(data)
}

func replyServer(t *testing.T, text string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.URL.Path, ":generateContent")
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(geminiReply(text)))
	}))
}

// ==========================
// Routing
// ==========================

func TestGemini_Route_Success(t *testing.T) {
	server := replyServer(t, `{
		"primary_datasource": "yahoo_finance",
		"secondary_sources": ["polygon_io"],
		"query_type": "stock_price",
		"confidence": 0.95
	}`)
	defer server.Close()

	route, err := newTestGemini(server.URL).Route(context.Background(), "What is Apple's stock price?")

	require.NoError(t, err)
	assert.Equal(t, models.ProviderYahooFinance, route.PrimaryDatasource)
	assert.Equal(t, []models.ProviderID{models.ProviderPolygon}, route.SecondarySources)
	assert.Equal(t, models.QueryTypeStockPrice, route.QueryType)
	assert.Equal(t, 0.95, route.Confidence)
}

func TestGemini_Route_FencedReply(t *testing.T) {
	server := replyServer(t, "```json\n{\"primary_datasource\": \"fred\", \"secondary_sources\": [], \"query_type\": \"economic_data\", \"confidence\": 0.9}\n```")
	defer server.Close()

	route, err := newTestGemini(server.URL).Route(context.Background(), "What is the inflation rate?")

	require.NoError(t, err)
	assert.Equal(t, models.ProviderFRED, route.PrimaryDatasource)
}

func TestGemini_Route_UnknownProviderRejected(t *testing.T) {
	server := replyServer(t, `{
		"primary_datasource": "bloomberg_terminal",
		"secondary_sources": [],
		"query_type": "stock_price",
		"confidence": 0.95
	}`)
	defer server.Close()

	_, err := newTestGemini(server.URL).Route(context.Background(), "What is Apple's stock price?")

	require.Error(t, err)
	assert.Equal(t, commonerrors.ErrCodeOracleInvalidReply, commonerrors.GetErrorCode(err))
}

func TestGemini_Route_NonJSONReply(t *testing.T) {
	server := replyServer(t, "I cannot answer that.")
	defer server.Close()

	_, err := newTestGemini(server.URL).Route(context.Background(), "What is Apple's stock price?")

	require.Error(t, err)
	assert.Equal(t, commonerrors.ErrCodeOracleInvalidReply, commonerrors.GetErrorCode(err))
}

// ==========================
// Transport
// ==========================

func TestGemini_RetriesTransientFailure(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(geminiReply("The market closed higher today.")))
	}))
	defer server.Close()

	answer, err := newTestGemini(server.URL).Synthesize(context.Background(),
		[]models.Document{{Source: models.ProviderTavily, Content: "market data"}}, "How did the market do?")

	require.NoError(t, err)
	assert.Equal(t, "The market closed higher today.", answer)
	assert.Equal(t, int32(2), calls.Load())
}

func TestGemini_ExhaustedRetriesIsUnavailable(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := newTestGemini(server.URL).Synthesize(context.Background(),
		[]models.Document{{Source: models.ProviderTavily, Content: "market data"}}, "How did the market do?")

	require.Error(t, err)
	assert.Equal(t, commonerrors.ErrCodeOracleUnavailable, commonerrors.GetErrorCode(err))
	assert.Equal(t, int32(3), calls.Load(), "initial attempt plus two retries")
}

func TestGemini_TimeoutSurfacesAsOracleTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.Write([]byte(geminiReply("too late")))
	}))
	defer server.Close()

	g := NewGemini(&Config{
		BaseURL:    server.URL,
		Model:      "gemini-2.5-flash",
		APIKey:     "test-key",
		Timeout:    50 * time.Millisecond,
		MaxRetries: 0,
	}, logger.NewNoOpLogger())

	_, err := g.Synthesize(context.Background(),
		[]models.Document{{Source: models.ProviderTavily, Content: "market data"}}, "How did the market do?")

	require.Error(t, err)
	assert.Equal(t, commonerrors.ErrCodeOracleTimeout, commonerrors.GetErrorCode(err))
}

func TestGemini_EmptyCandidatesIsInvalidReply(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates": []}`))
	}))
	defer server.Close()

	_, err := newTestGemini(server.URL).Synthesize(context.Background(),
		[]models.Document{{Source: models.ProviderTavily, Content: "market data"}}, "How did the market do?")

	require.Error(t, err)
	assert.Equal(t, commonerrors.ErrCodeOracleInvalidReply, commonerrors.GetErrorCode(err))
}

// ==========================
// Quality and Reconciliation
// ==========================

func TestGemini_AssessQuality_TruncatesContent(t *testing.T) {
	var seenPrompt string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req geminiRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		seenPrompt = req.Contents[0].Parts[0].Text
		w.Write([]byte(geminiReply(`{"is_recent": true, "is_reliable": true, "is_relevant": true, "confidence": 0.8, "issues": []}`)))
	}))
	defer server.Close()

	long := strings.Repeat("x", qualityContentLimit+500)
	verdict, err := newTestGemini(server.URL).AssessQuality(context.Background(),
		models.ProviderYahooFinance, long, "Apple stock price")

	require.NoError(t, err)
	assert.True(t, verdict.IsRelevant)
	assert.Equal(t, 0.8, verdict.Confidence)
	assert.NotContains(t, seenPrompt, strings.Repeat("x", qualityContentLimit+1))
	assert.Contains(t, seenPrompt, "Original Query: Apple stock price")
}

func TestGemini_Reconcile_InconsistentClearsFinalValue(t *testing.T) {
	server := replyServer(t, `{
		"consistent": false,
		"consensus_score": 0.5,
		"reliable_sources": ["yahoo_finance"],
		"final_value": "should be discarded",
		"discrepancies": ["prices differ by 4%"]
	}`)
	defer server.Close()

	result, err := newTestGemini(server.URL).Reconcile(context.Background(), []models.Document{
		{Source: models.ProviderYahooFinance, Content: "AAPL at 232.10"},
		{Source: models.ProviderPolygon, Content: "AAPL at 241.50"},
	}, "Apple stock price")

	require.NoError(t, err)
	assert.False(t, result.Consistent)
	assert.Empty(t, result.FinalValue)
	assert.Equal(t, []models.ProviderID{models.ProviderYahooFinance}, result.ReliableSources)
}

// ==========================
// Synthesis Context
// ==========================

func TestBuildContext(t *testing.T) {
	docs := []models.Document{
		{Source: models.ProviderYahooFinance, Content: "AAPL at 232.10"},
		{Source: models.ProviderNewsAPI, Content: "Apple rallies after earnings"},
	}

	got := BuildContext(docs)

	want := "Source: yahoo_finance\nContent: AAPL at 232.10" +
		"\n\n---\n\n" +
		"Source: newsapi\nContent: Apple rallies after earnings"
	assert.Equal(t, want, got)
}

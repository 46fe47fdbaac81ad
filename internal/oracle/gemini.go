// internal/oracle/gemini.go
package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	commonerrors "github.com/ChinmayNakwa/Financial-AI-System/internal/common/errors"
	commonhttp "github.com/ChinmayNakwa/Financial-AI-System/internal/common/http"
	"github.com/ChinmayNakwa/Financial-AI-System/internal/common/logger"
	"github.com/ChinmayNakwa/Financial-AI-System/internal/common/metrics"
	"github.com/ChinmayNakwa/Financial-AI-System/internal/models"
)

const (
	// Quality checks see more of a document than reconciliation; the
	// reconciler only needs the headline facts from each source.
	qualityContentLimit   = 3000
	reconcileContentLimit = 1000
)

// Config holds the Gemini connection settings.
type Config struct {
	BaseURL     string
	Model       string
	APIKey      string
	Timeout     time.Duration
	MaxRetries  int
	Temperature float64
}

// Gemini implements Oracle against the Google generative language REST API.
type Gemini struct {
	config *Config
	client *commonhttp.Client
	logger logger.Logger
}

func NewGemini(config *Config, log logger.Logger) *Gemini {
	return &Gemini{
		config: config,
		// Transport timeout stays off; each call carries its own context deadline.
		client: commonhttp.NewClient(0),
		logger: log.With(map[string]interface{}{
			"component": "oracle",
			"model":     config.Model,
		}),
	}
}

// --- wire types ---

type geminiRequest struct {
	SystemInstruction *geminiContent    `json:"systemInstruction,omitempty"`
	Contents          []geminiContent   `json:"contents"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature      float64 `json:"temperature"`
	ResponseMIMEType string  `json:"responseMimeType,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// generate performs one structured-completion call with bounded retry and
// exponential backoff. jsonMode asks the model for an application/json reply.
func (g *Gemini) generate(ctx context.Context, task, system, user string, jsonMode bool) (string, error) {
	start := time.Now()
	text, err := g.doGenerate(ctx, task, system, user, jsonMode)
	metrics.OracleRequestDuration.WithLabelValues(task).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.OracleRequests.WithLabelValues(task, "error").Inc()
		return "", err
	}
	metrics.OracleRequests.WithLabelValues(task, "success").Inc()
	return text, nil
}

func (g *Gemini) doGenerate(ctx context.Context, task, system, user string, jsonMode bool) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.config.Timeout)
	defer cancel()

	reqBody := geminiRequest{
		SystemInstruction: &geminiContent{Parts: []geminiPart{{Text: system}}},
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: user}}},
		},
		GenerationConfig: &generationConfig{Temperature: g.config.Temperature},
	}
	if jsonMode {
		reqBody.GenerationConfig.ResponseMIMEType = "application/json"
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", commonerrors.NewOracleUnavailableError(task, err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		strings.TrimRight(g.config.BaseURL, "/"), g.config.Model, g.config.APIKey)

	var resp *http.Response
	var lastErr error

	for attempt := 0; attempt <= g.config.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(100*(1<<(attempt-1))) * time.Millisecond
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return "", commonerrors.NewOracleTimeoutError(task)
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return "", commonerrors.NewOracleUnavailableError(task, err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, lastErr = g.client.Do(req)
		if lastErr == nil {
			if resp.StatusCode == http.StatusOK {
				break
			}
			resp.Body.Close()
			lastErr = fmt.Errorf("status %d", resp.StatusCode)
			resp = nil
		}

		if ctx.Err() != nil {
			return "", commonerrors.NewOracleTimeoutError(task)
		}
	}

	if lastErr != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", commonerrors.NewOracleTimeoutError(task)
		}
		return "", commonerrors.NewOracleUnavailableError(task, lastErr)
	}
	if resp == nil {
		return "", commonerrors.NewOracleUnavailableError(task, fmt.Errorf("no successful response after retries"))
	}
	defer resp.Body.Close()

	var apiResponse geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return "", commonerrors.NewOracleUnavailableError(task, fmt.Errorf("decode error: %w", err))
	}

	if len(apiResponse.Candidates) == 0 || len(apiResponse.Candidates[0].Content.Parts) == 0 {
		return "", commonerrors.NewOracleInvalidReplyError(task, "empty candidate list")
	}

	var out strings.Builder
	for _, part := range apiResponse.Candidates[0].Content.Parts {
		out.WriteString(part.Text)
	}
	return out.String(), nil
}

// --- Oracle implementation ---

func (g *Gemini) Route(ctx context.Context, question string) (*models.RouteDecision, error) {
	reply, err := g.generate(ctx, TaskRoute, routerInstructions,
		fmt.Sprintf("Route this financial question: %s", question), true)
	if err != nil {
		return nil, err
	}

	raw, err := extractJSON(reply)
	if err != nil {
		return nil, commonerrors.NewOracleInvalidReplyError(TaskRoute, err.Error())
	}
	if _, err := validateAgainstSchema(raw, routeSchema()); err != nil {
		return nil, commonerrors.NewOracleInvalidReplyError(TaskRoute, err.Error())
	}

	var route models.RouteDecision
	if err := json.Unmarshal([]byte(raw), &route); err != nil {
		return nil, commonerrors.NewOracleInvalidReplyError(TaskRoute, err.Error())
	}

	g.logger.Info("route decision", map[string]interface{}{
		"primary":    route.PrimaryDatasource,
		"secondary":  route.SecondarySources,
		"queryType":  route.QueryType,
		"confidence": route.Confidence,
	})
	return &route, nil
}

func (g *Gemini) AssessQuality(ctx context.Context, source models.ProviderID, content, question string) (*models.QualityVerdict, error) {
	user := fmt.Sprintf("Source: %s\n\nContent:\n%s\n\nOriginal Query: %s\n\nAnalyze this content and return your assessment as JSON.",
		source, truncate(content, qualityContentLimit), question)

	reply, err := g.generate(ctx, TaskQuality, qualityInstructions, user, true)
	if err != nil {
		return nil, err
	}

	raw, err := extractJSON(reply)
	if err != nil {
		return nil, commonerrors.NewOracleInvalidReplyError(TaskQuality, err.Error())
	}
	if _, err := validateAgainstSchema(raw, qualitySchema()); err != nil {
		return nil, commonerrors.NewOracleInvalidReplyError(TaskQuality, err.Error())
	}

	var verdict models.QualityVerdict
	if err := json.Unmarshal([]byte(raw), &verdict); err != nil {
		return nil, commonerrors.NewOracleInvalidReplyError(TaskQuality, err.Error())
	}
	return &verdict, nil
}

func (g *Gemini) Reconcile(ctx context.Context, docs []models.Document, question string) (*models.ReconciliationResult, error) {
	var sources strings.Builder
	for i, doc := range docs {
		fmt.Fprintf(&sources, "Source %d (%s): %s\n", i+1, doc.Source, truncate(doc.Content, reconcileContentLimit))
	}
	user := fmt.Sprintf("Query: %s\n\nSources:\n%s", question, sources.String())

	reply, err := g.generate(ctx, TaskReconcile, reconcileInstructions, user, true)
	if err != nil {
		return nil, err
	}

	raw, err := extractJSON(reply)
	if err != nil {
		return nil, commonerrors.NewOracleInvalidReplyError(TaskReconcile, err.Error())
	}
	if _, err := validateAgainstSchema(raw, reconcileSchema()); err != nil {
		return nil, commonerrors.NewOracleInvalidReplyError(TaskReconcile, err.Error())
	}

	var result models.ReconciliationResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, commonerrors.NewOracleInvalidReplyError(TaskReconcile, err.Error())
	}

	// A resolved value only exists on agreement.
	if !result.Consistent {
		result.FinalValue = ""
	}
	return &result, nil
}

func (g *Gemini) Synthesize(ctx context.Context, docs []models.Document, question string) (string, error) {
	contextBlock := BuildContext(docs)
	user := fmt.Sprintf("CONTEXT:\n\n%s\n\nBased on the context above, please answer the following question: %s",
		contextBlock, question)

	reply, err := g.generate(ctx, TaskSynthesize, synthesisInstructions, user, false)
	if err != nil {
		return "", err
	}

	answer := strings.TrimSpace(reply)
	if answer == "" {
		return "", commonerrors.NewOracleInvalidReplyError(TaskSynthesize, "empty answer")
	}
	return answer, nil
}

// BuildContext renders documents into the source-labelled block the synthesis
// prompt expects.
func BuildContext(docs []models.Document) string {
	parts := make([]string, len(docs))
	for i, doc := range docs {
		parts[i] = fmt.Sprintf("Source: %s\nContent: %s", doc.Source, doc.Content)
	}
	return strings.Join(parts, "\n\n---\n\n")
}

// internal/common/errors/errors.go
// Package errors provides standardized error handling for the retrieval pipeline.
package errors

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Routing: no implicit default route exists, so these are fatal.
	ErrCodeRoutingFailed ErrorCode = "ROUTING_FAILED"
	ErrCodeInvalidRoute  ErrorCode = "INVALID_ROUTE"

	// Retrieval: a single provider failure is recovered as a rejected document.
	ErrCodeProviderFetchFailed ErrorCode = "PROVIDER_FETCH_FAILED"
	ErrCodeProviderTimeout     ErrorCode = "PROVIDER_TIMEOUT"
	ErrCodeUnknownProvider     ErrorCode = "UNKNOWN_PROVIDER"

	// Quality gate: an unparseable verdict is recovered as reject/confidence-0.
	ErrCodeQualityParseFailed ErrorCode = "QUALITY_PARSE_FAILED"

	// Reconciliation: recovered by falling back to the unreconciled documents.
	ErrCodeReconciliationFailed ErrorCode = "RECONCILIATION_FAILED"

	// Synthesis: fatal, surfaced as a generic failure.
	ErrCodeSynthesisFailed ErrorCode = "SYNTHESIS_FAILED"

	// Oracle transport.
	ErrCodeOracleTimeout         ErrorCode = "ORACLE_TIMEOUT"
	ErrCodeOracleUnavailable     ErrorCode = "ORACLE_UNAVAILABLE"
	ErrCodeOracleInvalidReply    ErrorCode = "ORACLE_INVALID_REPLY"
	ErrCodePipelineStepsExceeded ErrorCode = "PIPELINE_STEPS_EXCEEDED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	cause     error
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// Unwrap exposes the underlying cause for errors.Is/As chains.
func (e *StandardError) Unwrap() error {
	return e.cause
}

// GetErrorCode extracts the code from anywhere in an error chain. It returns
// the empty code when no StandardError is present.
func GetErrorCode(err error) ErrorCode {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr.Code
	}
	return ""
}

// ==========================
// 2. Error Constructors
// ==========================

// NewRoutingFailedError creates a fatal routing error (oracle unusable).
func NewRoutingFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeRoutingFailed,
		Message:   "Routing oracle call failed",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewInvalidRouteError creates a fatal error for an out-of-catalog route reply.
func NewInvalidRouteError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidRoute,
		Message:   "Routing oracle returned a value outside the provider catalog",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewProviderFetchError creates a recoverable per-provider fetch error.
func NewProviderFetchError(provider string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeProviderFetchFailed,
		Message:   fmt.Sprintf("Provider '%s' fetch failed", provider),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewProviderTimeoutError creates a recoverable per-provider timeout error.
func NewProviderTimeoutError(provider string) *StandardError {
	return &StandardError{
		Code:      ErrCodeProviderTimeout,
		Message:   fmt.Sprintf("Provider '%s' call exceeded timeout", provider),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewUnknownProviderError creates a non-retryable catalog membership error.
func NewUnknownProviderError(provider string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnknownProvider,
		Message:   "Provider not present in the catalog",
		Details:   fmt.Sprintf("provider: %s", provider),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewQualityParseError creates a recoverable verdict parse error. The gate
// maps it to reject-with-zero-confidence, never to accept.
func NewQualityParseError(provider string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeQualityParseFailed,
		Message:   fmt.Sprintf("Quality verdict for '%s' could not be parsed", provider),
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewReconciliationFailedError creates a recoverable reconciliation error.
func NewReconciliationFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeReconciliationFailed,
		Message:   "Reconciliation oracle call failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewSynthesisFailedError creates a fatal answer generation error.
func NewSynthesisFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSynthesisFailed,
		Message:   "Answer synthesis failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewOracleTimeoutError creates a retryable oracle timeout error.
func NewOracleTimeoutError(task string) *StandardError {
	return &StandardError{
		Code:      ErrCodeOracleTimeout,
		Message:   "Decision oracle call timed out",
		Details:   fmt.Sprintf("task: %s", task),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewOracleUnavailableError creates a retryable oracle transport error.
func NewOracleUnavailableError(task string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeOracleUnavailable,
		Message:   "Decision oracle unavailable",
		Details:   fmt.Sprintf("task: %s, error: %s", task, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewOracleInvalidReplyError creates a non-retryable structured-reply error.
func NewOracleInvalidReplyError(task, details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeOracleInvalidReply,
		Message:   "Decision oracle reply failed schema validation",
		Details:   fmt.Sprintf("task: %s, %s", task, details),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewPipelineStepsExceededError reports a run that hit the step budget.
func NewPipelineStepsExceededError(steps int) *StandardError {
	return &StandardError{
		Code:      ErrCodePipelineStepsExceeded,
		Message:   "Pipeline exceeded its step budget",
		Details:   fmt.Sprintf("steps: %d", steps),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// IsFatal reports whether the error must surface to the caller instead of
// degrading locally. Routing and synthesis failures make the final answer
// ungrounded, so they are fatal.
func IsFatal(err *StandardError) bool {
	switch err.Code {
	case ErrCodeRoutingFailed, ErrCodeInvalidRoute, ErrCodeSynthesisFailed, ErrCodePipelineStepsExceeded:
		return true
	}
	return false
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "ROUT"):
		return "ROUTING"
	case strings.Contains(codeStr, "PROVIDER"):
		return "RETRIEVAL"
	case strings.Contains(codeStr, "QUALITY"):
		return "QUALITY"
	case strings.Contains(codeStr, "RECONCIL"):
		return "RECONCILIATION"
	case strings.Contains(codeStr, "SYNTHESIS"):
		return "SYNTHESIS"
	case strings.Contains(codeStr, "ORACLE"):
		return "ORACLE"
	default:
		return "OTHER"
	}
}

// internal/providers/provider.go
// Package providers implements the fixed catalog of upstream data sources.
// Every provider satisfies the same contract: take the raw question, return a
// pre-formatted natural-language report. The pipeline never sees upstream
// JSON shapes.
package providers

import (
	"context"
	"fmt"
	"strings"

	"github.com/ChinmayNakwa/Financial-AI-System/internal/models"
)

// Provider is the single capability any data source must expose to plug into
// the retriever.
type Provider interface {
	ID() models.ProviderID
	Fetch(ctx context.Context, query string) (string, error)
}

const sentinelPrefix = "Could not retrieve data from"

// FailureSentinel renders the canonical degraded-fetch text. The quality
// gate's deterministic pre-filter recognizes it and rejects the document
// without consulting the oracle.
func FailureSentinel(id models.ProviderID, err error) string {
	return fmt.Sprintf("%s %s: %v", sentinelPrefix, id, err)
}

// IsFailureSentinel reports whether content is a degraded-fetch marker.
func IsFailureSentinel(content string) bool {
	return strings.HasPrefix(strings.TrimSpace(content), sentinelPrefix)
}

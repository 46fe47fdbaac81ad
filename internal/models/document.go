// internal/models/document.go
package models

// QualityVerdict is the quality gate's assessment of one retrieved document.
type QualityVerdict struct {
	IsRecent   bool     `json:"is_recent"`
	IsReliable bool     `json:"is_reliable"`
	IsRelevant bool     `json:"is_relevant"`
	Confidence float64  `json:"confidence"`
	Issues     []string `json:"issues"`
}

// Document is a provider-tagged text artifact scoped to one pipeline run.
// The quality gate attaches a verdict but never touches Content.
type Document struct {
	Source  ProviderID      `json:"source"`
	Content string          `json:"content"`
	Quality *QualityVerdict `json:"quality,omitempty"`
}

// ReconciliationResult records how well the surviving documents agree on the
// core facts. FinalValue is only ever set when Consistent is true.
type ReconciliationResult struct {
	Consistent      bool         `json:"consistent"`
	ConsensusScore  float64      `json:"consensus_score"`
	ReliableSources []ProviderID `json:"reliable_sources"`
	FinalValue      string       `json:"final_value,omitempty"`
	Discrepancies   []string     `json:"discrepancies"`
}

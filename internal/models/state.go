// internal/models/state.go
package models

// PipelineState is the envelope a single orchestrator run threads through its
// stages. It is owned exclusively by that run: never shared across requests
// and never persisted.
type PipelineState struct {
	RunID       string
	Question    string
	Route       *RouteDecision
	Documents   []Document
	FinalAnswer string
}

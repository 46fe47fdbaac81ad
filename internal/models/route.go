// internal/models/route.go
package models

// RouteDecision is the router's plan for a single question: which provider to
// hit first, which to consult for cross-validation, and how confident the
// routing oracle was. It is produced once per run and never mutated.
type RouteDecision struct {
	PrimaryDatasource ProviderID   `json:"primary_datasource"`
	SecondarySources  []ProviderID `json:"secondary_sources"`
	QueryType         QueryType    `json:"query_type"`
	Confidence        float64      `json:"confidence"`
}

// Sources returns the primary followed by the secondaries with duplicates
// removed, preserving order. This is the exact set the retriever fans out to.
func (r RouteDecision) Sources() []ProviderID {
	seen := make(map[ProviderID]bool, len(r.SecondarySources)+1)
	out := make([]ProviderID, 0, len(r.SecondarySources)+1)
	for _, id := range append([]ProviderID{r.PrimaryDatasource}, r.SecondarySources...) {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

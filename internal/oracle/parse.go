// internal/oracle/parse.go
package oracle

import (
	"errors"
	"regexp"
	"strings"
)

// jsonObjectPattern matches the first top-level JSON object in a reply,
// tolerating one level of nesting. Models occasionally wrap the object in
// prose or markdown fences despite the prompt forbidding it.
var jsonObjectPattern = regexp.MustCompile(`(?s)\{[^{}]*(?:\{[^{}]*\}[^{}]*)*\}`)

var errNoJSON = errors.New("no JSON object found in oracle reply")

// extractJSON pulls the JSON object out of a raw model reply.
func extractJSON(reply string) (string, error) {
	s := strings.TrimSpace(reply)

	// Strip markdown code fences first.
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if idx := strings.LastIndex(s, "```"); idx >= 0 {
			s = s[:idx]
		}
		s = strings.TrimSpace(s)
	}

	match := jsonObjectPattern.FindString(s)
	if match == "" {
		return "", errNoJSON
	}
	return match, nil
}

// truncate limits content sent to the oracle; long documents blow the token
// budget without improving the decisions.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

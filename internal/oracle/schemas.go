// internal/oracle/schemas.go
package oracle

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/ChinmayNakwa/Financial-AI-System/internal/models"
)

// Structured oracle replies are validated against these schemas before
// anything downstream trusts them. The provider and query-type enums come
// from the closed catalogs, so an out-of-enumeration routing reply fails
// here rather than reaching the retriever.

func routeSchema() map[string]interface{} {
	providerEnum := toInterfaceSlice(models.CatalogStrings())
	return map[string]interface{}{
		"type":     "object",
		"required": []interface{}{"primary_datasource", "query_type", "confidence"},
		"properties": map[string]interface{}{
			"primary_datasource": map[string]interface{}{
				"type": "string",
				"enum": providerEnum,
			},
			"secondary_sources": map[string]interface{}{
				"type": "array",
				"items": map[string]interface{}{
					"type": "string",
					"enum": providerEnum,
				},
			},
			"query_type": map[string]interface{}{
				"type": "string",
				"enum": toInterfaceSlice(models.QueryTypeStrings()),
			},
			"confidence": map[string]interface{}{
				"type":    "number",
				"minimum": 0,
				"maximum": 1,
			},
		},
	}
}

func qualitySchema() map[string]interface{} {
	return map[string]interface{}{
		"type":     "object",
		"required": []interface{}{"is_recent", "is_reliable", "is_relevant", "confidence"},
		"properties": map[string]interface{}{
			"is_recent":   map[string]interface{}{"type": "boolean"},
			"is_reliable": map[string]interface{}{"type": "boolean"},
			"is_relevant": map[string]interface{}{"type": "boolean"},
			"confidence": map[string]interface{}{
				"type":    "number",
				"minimum": 0,
				"maximum": 1,
			},
			"issues": map[string]interface{}{
				"type":  "array",
				"items": map[string]interface{}{"type": "string"},
			},
		},
	}
}

func reconcileSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":     "object",
		"required": []interface{}{"consistent", "consensus_score", "reliable_sources"},
		"properties": map[string]interface{}{
			"consistent": map[string]interface{}{"type": "boolean"},
			"consensus_score": map[string]interface{}{
				"type":    "number",
				"minimum": 0,
				"maximum": 1,
			},
			"reliable_sources": map[string]interface{}{
				"type": "array",
				"items": map[string]interface{}{
					"type": "string",
					"enum": toInterfaceSlice(models.CatalogStrings()),
				},
			},
			"final_value":   map[string]interface{}{"type": "string"},
			"discrepancies": map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "string"}},
		},
	}
}

// validateAgainstSchema unmarshals raw JSON and checks it against the schema.
func validateAgainstSchema(raw string, schema map[string]interface{}) (map[string]interface{}, error) {
	var data map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, fmt.Errorf("unmarshal reply: %w", err)
	}

	schemaLoader := gojsonschema.NewGoLoader(schema)
	documentLoader := gojsonschema.NewGoLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return nil, fmt.Errorf("reply validation failed: %s", strings.Join(errs, "; "))
	}

	return data, nil
}

func toInterfaceSlice(in []string) []interface{} {
	out := make([]interface{}, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}

package record

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// recordSchema validates the shape of a normalized record: every
// canonical key present, dates strictly YYYY-MM-DD, numbers numeric,
// nulls allowed everywhere, no extra keys. A validation failure means a
// pipeline bug, never bad input; the normalizer owns input tolerance.
var recordSchema = mustCompileSchema()

func mustCompileSchema() *jsonschema.Schema {
	props := make(map[string]any, len(Fields))
	required := make([]string, 0, len(Fields))

	for _, f := range Fields {
		switch f.Type {
		case TypeDate:
			props[f.Name] = map[string]any{
				"type":    []string{"string", "null"},
				"pattern": `^\d{4}-\d{2}-\d{2}$`,
			}
		case TypeNumber:
			props[f.Name] = map[string]any{
				"type": []string{"number", "null"},
			}
		default:
			props[f.Name] = map[string]any{
				"type": []string{"string", "null"},
			}
		}
		required = append(required, f.Name)
	}

	doc := map[string]any{
		"$schema":              "https://json-schema.org/draft/2020-12/schema",
		"type":                 "object",
		"additionalProperties": false,
		"properties":           props,
		"required":             required,
	}

	data, err := json.Marshal(doc)
	if err != nil {
		panic(err)
	}
	return jsonschema.MustCompileString("soilreport.json", string(data))
}

// Validate checks the record against the canonical schema.
func (r Record) Validate() error {
	if err := recordSchema.Validate(map[string]any(r)); err != nil {
		return fmt.Errorf("record schema violation: %w", err)
	}
	return nil
}

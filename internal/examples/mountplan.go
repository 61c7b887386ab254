package examples

import (
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// mountPlanSchema describes the documented mount plan shape: a session
// block with an optional orchestrator/context pair, and a modules list
// where each entry names a module id, an optional source, and an
// optional config map.
const mountPlanSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "session": {
      "type": "object",
      "properties": {
        "orchestrator": {"type": "string"},
        "context": {"type": "string"}
      },
      "additionalProperties": true
    },
    "modules": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "module": {"type": "string"},
          "source": {"type": "string"},
          "config": {"type": "object"}
        },
        "required": ["module"],
        "additionalProperties": false
      }
    }
  },
  "additionalProperties": true
}`

type mountPlanValidator struct {
	schema *gojsonschema.Schema
}

func newMountPlanValidator() (*mountPlanValidator, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(mountPlanSchema))
	if err != nil {
		return nil, fmt.Errorf("compiling mount plan schema: %w", err)
	}
	return &mountPlanValidator{schema: schema}, nil
}

// isMountPlan reports whether a parsed YAML document looks like a mount
// plan: a top-level mapping containing session or modules keys.
func isMountPlan(doc any) bool {
	m, ok := doc.(map[string]any)
	if !ok {
		return false
	}
	_, hasSession := m["session"]
	_, hasModules := m["modules"]
	return hasSession || hasModules
}

// validate returns schema violation messages, empty when valid.
func (v *mountPlanValidator) validate(doc any) []string {
	normalized := normalizeYAML(doc)
	raw, err := json.Marshal(normalized)
	if err != nil {
		return []string{fmt.Sprintf("cannot convert to JSON: %v", err)}
	}

	result, err := v.schema.Validate(gojsonschema.NewStringLoader(string(raw)))
	if err != nil {
		return []string{fmt.Sprintf("validation failed: %v", err)}
	}
	if result.Valid() {
		return nil
	}

	var msgs []string
	for _, e := range result.Errors() {
		msgs = append(msgs, fmt.Sprintf("%s: %s", e.Field(), e.Description()))
	}
	return msgs
}

// normalizeYAML rewrites map[any]any keys to strings so the document
// survives json.Marshal. yaml.v3 usually decodes into map[string]any
// already, but nested documents with non-scalar keys do not.
func normalizeYAML(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = normalizeYAML(item)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[fmt.Sprint(k)] = normalizeYAML(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = normalizeYAML(item)
		}
		return out
	default:
		return v
	}
}

// Package payload derives the submission payload from a raw value snapshot:
// strings are trimmed and dropped when empty, multiselects collapse to a
// comma-joined string, repeater items lose empty sub-fields and vanish when
// nothing survives, and calculated fields are coerced to numbers and always
// included. The result never maps a key to an empty string, empty list, or
// nil. Sanitize is idempotent: running it over an already-sanitized payload
// drops nothing further.
package payload

import (
	"strings"

	"github.com/goliatone/go-formflow/pkg/formula"
	"github.com/goliatone/go-formflow/pkg/schema"
)

// Sanitize transforms the value snapshot into a submission-ready payload using
// each key's field kind to pick the rule. Keys absent from kinds fall through
// to the generic value rules.
func Sanitize(values map[string]any, kinds map[string]schema.FieldKind) map[string]any {
	out := make(map[string]any, len(values))
	for key, value := range values {
		switch kinds[key] {
		case schema.FieldKindCalculated:
			// Always present, even at zero.
			out[key] = formula.Number(value)
		case schema.FieldKindMultiselect:
			if joined, ok := sanitizeMultiselect(value); ok {
				out[key] = joined
			}
		case schema.FieldKindRepeater:
			if items, ok := sanitizeRepeater(value); ok {
				out[key] = items
			}
		default:
			if clean, ok := sanitizeValue(value); ok {
				out[key] = clean
			}
		}
	}
	return out
}

func sanitizeMultiselect(value any) (string, bool) {
	var selections []string
	switch typed := value.(type) {
	case []string:
		selections = typed
	case []any:
		for _, entry := range typed {
			if s, ok := entry.(string); ok {
				selections = append(selections, s)
			}
		}
	case string:
		// Already joined by a previous pass.
		if strings.TrimSpace(typed) == "" {
			return "", false
		}
		return typed, true
	}
	if len(selections) == 0 {
		return "", false
	}
	return strings.Join(selections, ", "), true
}

func sanitizeRepeater(value any) ([]map[string]any, bool) {
	var items []map[string]any
	switch typed := value.(type) {
	case []map[string]any:
		items = typed
	case []any:
		for _, entry := range typed {
			if item, ok := entry.(map[string]any); ok {
				items = append(items, item)
			}
		}
	}

	var kept []map[string]any
	for _, item := range items {
		clean := make(map[string]any, len(item))
		for subKey, subValue := range item {
			if v, ok := sanitizeValue(subValue); ok {
				clean[subKey] = v
			}
		}
		if len(clean) > 0 {
			kept = append(kept, clean)
		}
	}
	if len(kept) == 0 {
		return nil, false
	}
	return kept, true
}

// sanitizeValue applies the generic rules: trim strings and drop empties,
// drop nils, pass every other shape through unchanged.
func sanitizeValue(value any) (any, bool) {
	switch typed := value.(type) {
	case nil:
		return nil, false
	case string:
		trimmed := strings.TrimSpace(typed)
		if trimmed == "" {
			return nil, false
		}
		return trimmed, true
	default:
		return value, true
	}
}

// Package formula computes calculated-field values from the live value store.
// Evaluation is pure and deterministic: the same formula and inputs always
// produce the same fixed-decimal string, which is required because the display
// layer and the submission payload derive the value independently and must
// agree. Missing or unparseable inputs contribute zero; Evaluate never fails.
package formula

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-formflow/pkg/schema"
)

// Lookup resolves a field key to its current value.
type Lookup func(key string) any

// Evaluate computes the formula's display value as a fixed-decimal string. A
// formula with an unset kind behaves as a sum; a ratio whose denominator
// resolves to zero yields the zero value at the configured precision.
func Evaluate(f *schema.Formula, get Lookup) string {
	decimals := f.DecimalPlaces()
	if f == nil || get == nil {
		return format(0, decimals)
	}

	switch f.Kind {
	case schema.FormulaKindRatio:
		return format(ratio(f, get), decimals)
	default:
		return format(sum(f, get), decimals)
	}
}

// Number parses an evaluator output (or any stored value) into a float64,
// defaulting to zero on failure. The payload sanitizer uses it to coerce
// calculated fields to numbers.
func Number(value any) float64 {
	return parse(value)
}

func sum(f *schema.Formula, get Lookup) float64 {
	var total float64
	for _, key := range f.Fields {
		total += parse(get(key))
	}
	for _, ref := range f.RepeaterFields {
		for _, item := range items(get(ref.Repeater)) {
			total += parse(item[ref.Field])
		}
	}
	return total
}

func ratio(f *schema.Formula, get Lookup) float64 {
	denominator := parse(get(f.DenominatorField))
	if denominator == 0 {
		return 0
	}
	var numerator float64
	for _, key := range f.NumeratorFields {
		numerator += parse(get(key))
	}
	return numerator / denominator * f.Scale()
}

func items(value any) []map[string]any {
	switch typed := value.(type) {
	case []map[string]any:
		return typed
	case []any:
		out := make([]map[string]any, 0, len(typed))
		for _, entry := range typed {
			if item, ok := entry.(map[string]any); ok {
				out = append(out, item)
			}
		}
		return out
	default:
		return nil
	}
}

func parse(value any) float64 {
	switch typed := value.(type) {
	case float64:
		return typed
	case float32:
		return float64(typed)
	case int:
		return float64(typed)
	case int64:
		return float64(typed)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(typed), 64)
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}

func format(value float64, decimals int) string {
	return strconv.FormatFloat(value, 'f', decimals, 64)
}

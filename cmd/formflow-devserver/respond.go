package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sort"
	"strings"

	"github.com/goliatone/go-formflow/pkg/schema"
)

// writeJSON marshals v as JSON and writes it with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("writeJSON encode error: %v", err)
	}
}

// writeError writes a structured JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// decodeJSON decodes the request body into v.
func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

// summarize renders the submitted payload as a markdown document in template
// declaration order, expanding repeater items into nested bullets. It stands
// in for the real generation pipeline during development.
func summarize(template schema.Template, formData map[string]any) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", template.Label)
	b.WriteString("## Submitted Details\n\n")

	seen := make(map[string]struct{}, len(formData))
	for _, field := range template.Fields() {
		value, ok := formData[field.Key]
		if !ok {
			continue
		}
		seen[field.Key] = struct{}{}
		writeValue(&b, field.Label, field, value)
	}

	// Any keys outside the template still get echoed, sorted for stability.
	var extras []string
	for key := range formData {
		if _, ok := seen[key]; !ok {
			extras = append(extras, key)
		}
	}
	sort.Strings(extras)
	for _, key := range extras {
		fmt.Fprintf(&b, "- %s: %v\n", key, formData[key])
	}

	b.WriteString("\n---\n\n*Generated by the formflow devserver; no lender analysis performed.*\n")
	return b.String()
}

func writeValue(b *strings.Builder, label string, field schema.Field, value any) {
	items, isList := value.([]any)
	if !isList || field.Kind != schema.FieldKindRepeater {
		fmt.Fprintf(b, "- %s: %s\n", label, displayValue(value, field.Suffix))
		return
	}

	subLabels := make(map[string]string, len(field.Fields))
	for _, sub := range field.Fields {
		subLabels[sub.Key] = sub.Label
	}
	for i, entry := range items {
		item, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		var parts []string
		for _, sub := range field.Fields {
			if v, ok := item[sub.Key]; ok {
				parts = append(parts, fmt.Sprintf("%s: %s", subLabels[sub.Key], displayValue(v, "")))
			}
		}
		if len(parts) > 0 {
			fmt.Fprintf(b, "- %s [%d]: %s\n", label, i+1, strings.Join(parts, ", "))
		}
	}
}

func displayValue(value any, suffix string) string {
	switch typed := value.(type) {
	case bool:
		if typed {
			return "Yes"
		}
		return "No"
	case float64:
		return fmt.Sprintf("%.2f%s", typed, suffix)
	default:
		return fmt.Sprintf("%v%s", typed, suffix)
	}
}

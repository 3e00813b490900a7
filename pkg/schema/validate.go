package schema

import "fmt"

// Validate checks the structural invariants a loaded template must satisfy:
// non-empty id, no field key repeated within the template, no repeater nested
// inside another repeater, unique sub-field keys per repeater, and a formula
// on every calculated field. The first violation is returned as a
// *SchemaError.
func Validate(t Template) error {
	if t.ID == "" {
		return &SchemaError{Reason: "missing template id"}
	}

	seen := make(map[string]struct{})
	for _, section := range t.Sections {
		for _, field := range section.Fields {
			if field.Key == "" {
				return &SchemaError{TemplateID: t.ID, Reason: fmt.Sprintf("field without key in section %q", section.Title)}
			}
			if _, dup := seen[field.Key]; dup {
				return &SchemaError{TemplateID: t.ID, Reason: fmt.Sprintf("duplicate field key %q", field.Key)}
			}
			seen[field.Key] = struct{}{}

			if err := validateField(t.ID, field); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateField(templateID string, field Field) error {
	switch field.Kind {
	case FieldKindCalculated:
		if field.Formula == nil {
			return &SchemaError{TemplateID: templateID, Reason: fmt.Sprintf("calculated field %q has no formula", field.Key)}
		}
	case FieldKindRepeater:
		subSeen := make(map[string]struct{})
		for _, sub := range field.Fields {
			if sub.Key == "" {
				return &SchemaError{TemplateID: templateID, Reason: fmt.Sprintf("repeater %q has a sub-field without key", field.Key)}
			}
			if _, dup := subSeen[sub.Key]; dup {
				return &SchemaError{TemplateID: templateID, Reason: fmt.Sprintf("repeater %q duplicates sub-field key %q", field.Key, sub.Key)}
			}
			subSeen[sub.Key] = struct{}{}
			if sub.Kind == FieldKindRepeater {
				return &SchemaError{TemplateID: templateID, Reason: fmt.Sprintf("repeater %q nests repeater %q", field.Key, sub.Key)}
			}
		}
	case FieldKindSelect, FieldKindMultiselect:
		if len(field.Options) == 0 {
			return &SchemaError{TemplateID: templateID, Reason: fmt.Sprintf("%s field %q has no options", field.Kind, field.Key)}
		}
	}
	return nil
}

package schema

import "fmt"

// SchemaError reports a structural defect in a template: duplicate keys,
// nested repeaters, or a calculated field without a formula. A template that
// produces one is excluded from the selectable set; loading does not abort.
type SchemaError struct {
	TemplateID string
	Reason     string
}

func (e *SchemaError) Error() string {
	if e.TemplateID == "" {
		return fmt.Sprintf("schema: invalid template: %s", e.Reason)
	}
	return fmt.Sprintf("schema: template %q: %s", e.TemplateID, e.Reason)
}

// NotFoundError reports a TemplateByID miss.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("schema: template %q not found", e.ID)
}

package schema

// Registry holds the validated template set for a session. Templates that fail
// Validate are excluded at construction so one malformed template cannot block
// the rest; their errors are reported back to the caller.
type Registry struct {
	ordered []Template
	byID    map[string]Template
}

// NewRegistry validates and indexes the supplied templates in order. The
// returned errors (each a *SchemaError) correspond to excluded templates.
func NewRegistry(templates []Template) (*Registry, []error) {
	reg := &Registry{byID: make(map[string]Template, len(templates))}

	var errs []error
	for _, t := range templates {
		if err := Validate(t); err != nil {
			errs = append(errs, err)
			continue
		}
		if _, exists := reg.byID[t.ID]; exists {
			errs = append(errs, &SchemaError{TemplateID: t.ID, Reason: "duplicate template id"})
			continue
		}
		reg.byID[t.ID] = t
		reg.ordered = append(reg.ordered, t)
	}
	return reg, errs
}

// Templates returns the selectable templates in load order.
func (r *Registry) Templates() []Template {
	if r == nil {
		return nil
	}
	return r.ordered
}

// Len reports the number of selectable templates.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.ordered)
}

// TemplateByID resolves a template, failing with *NotFoundError when the id is
// not in the loaded set.
func (r *Registry) TemplateByID(id string) (Template, error) {
	if r != nil {
		if t, ok := r.byID[id]; ok {
			return t, nil
		}
	}
	return Template{}, &NotFoundError{ID: id}
}

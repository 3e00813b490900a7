package schema

// FieldKind is the enumeration of input kinds a template may declare.
type FieldKind string

const (
	FieldKindText        FieldKind = "text"
	FieldKindTextarea    FieldKind = "textarea"
	FieldKindNumber      FieldKind = "number"
	FieldKindBoolean     FieldKind = "boolean"
	FieldKindDate        FieldKind = "date"
	FieldKindSelect      FieldKind = "select"
	FieldKindMultiselect FieldKind = "multiselect"
	FieldKindRepeater    FieldKind = "repeater"
	FieldKindCalculated  FieldKind = "calculated"
)

// Template is a named form schema: an ordered sequence of sections. Templates
// are immutable once loaded; consumers never mutate one in place.
type Template struct {
	ID       string    `json:"id" yaml:"id"`
	Label    string    `json:"label" yaml:"label"`
	Sections []Section `json:"sections" yaml:"sections"`
}

// Section groups an ordered run of fields under a title.
type Section struct {
	Title  string  `json:"title" yaml:"title"`
	Fields []Field `json:"fields" yaml:"fields"`
}

// Field models one input inside a template. The wire name for Kind is "type"
// to match the listing collaborator's payload. Kind-specific attributes are
// left zero for kinds that do not use them.
type Field struct {
	Key         string    `json:"key" yaml:"key"`
	Label       string    `json:"label" yaml:"label"`
	Kind        FieldKind `json:"type" yaml:"type"`
	Placeholder string    `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`

	// Select and multiselect.
	Options []string `json:"options,omitempty" yaml:"options,omitempty"`

	// Number bounds; for repeaters the same wire keys bound the item count.
	Min  *float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max  *float64 `json:"max,omitempty" yaml:"max,omitempty"`
	Step string   `json:"step,omitempty" yaml:"step,omitempty"`

	// NumberMode is a display hint ("int" suppresses decimal entry).
	NumberMode string `json:"number_mode,omitempty" yaml:"number_mode,omitempty"`

	// Repeater attributes.
	ItemLabel string  `json:"itemLabel,omitempty" yaml:"itemLabel,omitempty"`
	Fields    []Field `json:"fields,omitempty" yaml:"fields,omitempty"`

	// Calculated attributes.
	Formula *Formula `json:"formula,omitempty" yaml:"formula,omitempty"`
	Suffix  string   `json:"suffix,omitempty" yaml:"suffix,omitempty"`

	// ShowWhen hides the field until every referenced key holds the listed
	// value. Hidden fields keep their stored values.
	ShowWhen map[string]any `json:"show_when,omitempty" yaml:"show_when,omitempty"`
}

// MaxItems reports the repeater item ceiling, or 0 when unbounded.
func (f Field) MaxItems() int {
	if f.Kind != FieldKindRepeater || f.Max == nil {
		return 0
	}
	return int(*f.Max)
}

// MinItems reports the repeater item floor.
func (f Field) MinItems() int {
	if f.Kind != FieldKindRepeater || f.Min == nil {
		return 0
	}
	return int(*f.Min)
}

// TypeSubField returns the repeater sub-field that drives chip-based item
// creation: the one keyed "type" carrying options. Nil when the repeater is
// plain (index-addressed items only).
func (f Field) TypeSubField() *Field {
	if f.Kind != FieldKindRepeater {
		return nil
	}
	for i := range f.Fields {
		sub := &f.Fields[i]
		if sub.Key == "type" && len(sub.Options) > 0 {
			return sub
		}
	}
	return nil
}

// Visible evaluates the field's ShowWhen conditions against the supplied
// lookup. Fields without conditions are always visible.
func (f Field) Visible(lookup func(key string) any) bool {
	if len(f.ShowWhen) == 0 {
		return true
	}
	if lookup == nil {
		return false
	}
	for key, want := range f.ShowWhen {
		if lookup(key) != want {
			return false
		}
	}
	return true
}

// Fields returns every top-level field of the template in declaration order.
func (t Template) Fields() []Field {
	var out []Field
	for _, section := range t.Sections {
		out = append(out, section.Fields...)
	}
	return out
}

// FieldByKey finds a top-level field by its key.
func (t Template) FieldByKey(key string) (Field, bool) {
	for _, section := range t.Sections {
		for _, field := range section.Fields {
			if field.Key == key {
				return field, true
			}
		}
	}
	return Field{}, false
}

// FieldKinds maps every top-level field key to its kind. The payload sanitizer
// consumes this to pick per-kind rules without re-walking sections.
func (t Template) FieldKinds() map[string]FieldKind {
	kinds := make(map[string]FieldKind)
	for _, section := range t.Sections {
		for _, field := range section.Fields {
			kinds[field.Key] = field.Kind
		}
	}
	return kinds
}

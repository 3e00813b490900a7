package values

import (
	"fmt"

	"github.com/goliatone/go-formflow/pkg/schema"
)

// Item is one structured record inside a repeater's value list.
type Item = map[string]any

// Store holds the current value of every field in the active template. It is
// owned by a single goroutine (the form controller); no internal locking.
//
// Chip-driven repeaters additionally maintain a type-value index so the
// at-most-one-item-per-type invariant is structural rather than enforced by
// linear scans at every call site.
type Store struct {
	template schema.Template
	fields   map[string]schema.Field
	values   map[string]any

	// typed maps repeater key -> type value -> item position.
	typed map[string]map[string]int
}

// NewStore initializes a fresh store for the template: text, textarea, number,
// date, select, and calculated fields default to the empty string; boolean to
// false; multiselect to an empty string list; repeater to an empty item list.
// Repeater sub-field keys are not pre-seeded; items carry their own defaults
// when created.
func NewStore(template schema.Template) *Store {
	s := &Store{
		template: template,
		fields:   make(map[string]schema.Field),
		values:   make(map[string]any),
		typed:    make(map[string]map[string]int),
	}
	for _, field := range template.Fields() {
		s.fields[field.Key] = field
		s.values[field.Key] = defaultValue(field.Kind)
		if field.Kind == schema.FieldKindRepeater && field.TypeSubField() != nil {
			s.typed[field.Key] = make(map[string]int)
		}
	}
	return s
}

// Template returns the template the store was initialized from.
func (s *Store) Template() schema.Template {
	return s.template
}

// Field resolves the schema field backing a key.
func (s *Store) Field(key string) (schema.Field, bool) {
	f, ok := s.fields[key]
	return f, ok
}

// Get returns the current value for key, or the kind-default when the key is
// known but unset. Unknown keys yield nil.
func (s *Store) Get(key string) any {
	if v, ok := s.values[key]; ok {
		return v
	}
	if f, ok := s.fields[key]; ok {
		return defaultValue(f.Kind)
	}
	return nil
}

// Set replaces a field's value wholesale. Repeater item edits go through
// SetItem so sibling items survive.
func (s *Store) Set(key string, value any) error {
	field, ok := s.fields[key]
	if !ok {
		return fmt.Errorf("values: unknown field %q", key)
	}
	if field.Kind == schema.FieldKindCalculated {
		return fmt.Errorf("values: field %q is calculated and not editable", key)
	}
	s.values[key] = value
	if field.Kind == schema.FieldKindRepeater {
		s.reindexTyped(field)
	}
	return nil
}

// Items returns the repeater's current item list.
func (s *Store) Items(key string) []Item {
	items, _ := s.values[key].([]Item)
	return items
}

// SetItem replaces one repeater item by index, leaving siblings untouched.
func (s *Store) SetItem(key string, index int, item Item) error {
	field, err := s.repeater(key)
	if err != nil {
		return err
	}
	items := s.Items(key)
	if index < 0 || index >= len(items) {
		return fmt.Errorf("values: repeater %q has no item %d", key, index)
	}
	items[index] = item
	s.reindexTyped(field)
	return nil
}

// SetItemField updates a single sub-field inside a repeater item.
func (s *Store) SetItemField(key string, index int, subKey string, value any) error {
	field, err := s.repeater(key)
	if err != nil {
		return err
	}
	items := s.Items(key)
	if index < 0 || index >= len(items) {
		return fmt.Errorf("values: repeater %q has no item %d", key, index)
	}
	if items[index] == nil {
		items[index] = make(Item)
	}
	items[index][subKey] = value
	if subKey == "type" {
		s.reindexTyped(field)
	}
	return nil
}

// AppendItem adds a new item populated with sub-field defaults and returns its
// index. Fails when the repeater is at its max item count.
func (s *Store) AppendItem(key string) (int, error) {
	field, err := s.repeater(key)
	if err != nil {
		return 0, err
	}
	items := s.Items(key)
	if max := field.MaxItems(); max > 0 && len(items) >= max {
		return 0, fmt.Errorf("values: repeater %q is at its limit of %d items", key, max)
	}
	items = append(items, defaultItem(field))
	s.values[key] = items
	return len(items) - 1, nil
}

// RemoveItem drops a repeater item by index.
func (s *Store) RemoveItem(key string, index int) error {
	field, err := s.repeater(key)
	if err != nil {
		return err
	}
	items := s.Items(key)
	if index < 0 || index >= len(items) {
		return fmt.Errorf("values: repeater %q has no item %d", key, index)
	}
	s.values[key] = append(items[:index:index], items[index+1:]...)
	s.reindexTyped(field)
	return nil
}

// AddTypedItem creates a chip-driven item keyed by typeValue, pre-populated
// with that type and kind defaults for every other sub-field. Adding a type
// that already has an item is a no-op; type values act as a per-repeater
// uniqueness key.
func (s *Store) AddTypedItem(key, typeValue string) error {
	field, err := s.repeater(key)
	if err != nil {
		return err
	}
	typeField := field.TypeSubField()
	if typeField == nil {
		return fmt.Errorf("values: repeater %q has no type sub-field", key)
	}
	index, ok := s.typed[key]
	if !ok {
		index = make(map[string]int)
		s.typed[key] = index
	}
	if _, exists := index[typeValue]; exists {
		return nil
	}

	items := s.Items(key)
	if max := field.MaxItems(); max > 0 && len(items) >= max {
		return fmt.Errorf("values: repeater %q is at its limit of %d items", key, max)
	}
	item := defaultItem(field)
	item["type"] = typeValue
	items = append(items, item)
	s.values[key] = items
	index[typeValue] = len(items) - 1
	return nil
}

// RemoveTypedItem removes the single item whose type sub-field matches
// typeValue. Removing an absent type is a no-op.
func (s *Store) RemoveTypedItem(key, typeValue string) error {
	field, err := s.repeater(key)
	if err != nil {
		return err
	}
	index, ok := s.typed[key]
	if !ok {
		return fmt.Errorf("values: repeater %q has no type sub-field", key)
	}
	pos, exists := index[typeValue]
	if !exists {
		return nil
	}
	items := s.Items(key)
	s.values[key] = append(items[:pos:pos], items[pos+1:]...)
	s.reindexTyped(field)
	return nil
}

// TypedItem returns the item registered for typeValue, if any.
func (s *Store) TypedItem(key, typeValue string) (Item, bool) {
	index, ok := s.typed[key]
	if !ok {
		return nil, false
	}
	pos, exists := index[typeValue]
	if !exists {
		return nil, false
	}
	items := s.Items(key)
	if pos < 0 || pos >= len(items) {
		return nil, false
	}
	return items[pos], true
}

// Snapshot copies the full value map for downstream sanitization. Repeater
// item maps are copied one level deep so sanitizers cannot mutate the store.
func (s *Store) Snapshot() map[string]any {
	out := make(map[string]any, len(s.values))
	for key, value := range s.values {
		switch typed := value.(type) {
		case []Item:
			items := make([]Item, len(typed))
			for i, item := range typed {
				clone := make(Item, len(item))
				for k, v := range item {
					clone[k] = v
				}
				items[i] = clone
			}
			out[key] = items
		case []string:
			out[key] = append([]string(nil), typed...)
		default:
			out[key] = value
		}
	}
	return out
}

func (s *Store) repeater(key string) (schema.Field, error) {
	field, ok := s.fields[key]
	if !ok {
		return schema.Field{}, fmt.Errorf("values: unknown field %q", key)
	}
	if field.Kind != schema.FieldKindRepeater {
		return schema.Field{}, fmt.Errorf("values: field %q is not a repeater", key)
	}
	return field, nil
}

func (s *Store) reindexTyped(field schema.Field) {
	if field.TypeSubField() == nil {
		return
	}
	index := make(map[string]int)
	for i, item := range s.Items(field.Key) {
		if tv, ok := item["type"].(string); ok && tv != "" {
			if _, dup := index[tv]; !dup {
				index[tv] = i
			}
		}
	}
	s.typed[field.Key] = index
}

func defaultItem(field schema.Field) Item {
	item := make(Item, len(field.Fields))
	for _, sub := range field.Fields {
		item[sub.Key] = defaultValue(sub.Kind)
	}
	return item
}

func defaultValue(kind schema.FieldKind) any {
	switch kind {
	case schema.FieldKindBoolean:
		return false
	case schema.FieldKindMultiselect:
		return []string{}
	case schema.FieldKindRepeater:
		return []Item{}
	default:
		return ""
	}
}

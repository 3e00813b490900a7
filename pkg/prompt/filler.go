package prompt

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-formflow/pkg/controller"
	"github.com/goliatone/go-formflow/pkg/schema"
)

// Filler walks the active template section by section, prompting for every
// visible field and writing answers through the controller so state
// transitions stay consistent. Calculated fields are displayed, never asked.
type Filler struct {
	driver Driver
}

// NewFiller constructs a Filler over the given driver.
func NewFiller(driver Driver) *Filler {
	return &Filler{driver: driver}
}

// Fill prompts for every visible field of the controller's active template.
func (f *Filler) Fill(ctx context.Context, ctrl *controller.Controller) error {
	template, ok := ctrl.Template()
	if !ok {
		return fmt.Errorf("prompt: no template selected")
	}

	for _, section := range template.Sections {
		if section.Title != "" {
			if err := f.driver.Info(ctx, "\n== "+section.Title+" =="); err != nil {
				return err
			}
		}
		for _, field := range section.Fields {
			if !field.Visible(ctrl.Store().Get) {
				continue
			}
			if err := f.fillField(ctx, ctrl, field); err != nil {
				return err
			}
		}
	}
	return nil
}

func (f *Filler) fillField(ctx context.Context, ctrl *controller.Controller, field schema.Field) error {
	switch field.Kind {
	case schema.FieldKindCalculated:
		value := ctrl.CalculatedValue(field.Key)
		if field.Suffix != "" {
			value += field.Suffix
		}
		return f.driver.Info(ctx, fmt.Sprintf("%s: %s", field.Label, value))
	case schema.FieldKindBoolean:
		current, _ := ctrl.Store().Get(field.Key).(bool)
		answer, err := f.driver.Confirm(ctx, ConfirmConfig{Message: field.Label, Default: current})
		if err != nil {
			return err
		}
		return ctrl.SetField(field.Key, answer)
	case schema.FieldKindTextarea:
		current, _ := ctrl.Store().Get(field.Key).(string)
		answer, err := f.driver.TextArea(ctx, TextAreaConfig{Message: field.Label, Default: current, Help: field.Placeholder})
		if err != nil {
			return err
		}
		return ctrl.SetField(field.Key, answer)
	case schema.FieldKindNumber:
		return f.fillNumber(ctx, ctrl, field)
	case schema.FieldKindSelect:
		return f.fillSelect(ctx, ctrl, field)
	case schema.FieldKindMultiselect:
		return f.fillMultiselect(ctx, ctrl, field)
	case schema.FieldKindRepeater:
		return f.fillRepeater(ctx, ctrl, field)
	default:
		// text, date, and future scalar kinds.
		current, _ := ctrl.Store().Get(field.Key).(string)
		answer, err := f.driver.Input(ctx, InputConfig{Message: field.Label, Default: current, Help: field.Placeholder})
		if err != nil {
			return err
		}
		return ctrl.SetField(field.Key, answer)
	}
}

func (f *Filler) fillNumber(ctx context.Context, ctrl *controller.Controller, field schema.Field) error {
	current, _ := ctrl.Store().Get(field.Key).(string)
	for {
		answer, err := f.driver.Input(ctx, InputConfig{Message: field.Label, Default: current, Help: field.Placeholder})
		if err != nil {
			return err
		}
		trimmed := strings.TrimSpace(answer)
		if trimmed == "" {
			return ctrl.SetField(field.Key, "")
		}
		if msg, ok := checkNumber(field, trimmed); !ok {
			if err := f.driver.Info(ctx, msg); err != nil {
				return err
			}
			continue
		}
		return ctrl.SetField(field.Key, trimmed)
	}
}

func checkNumber(field schema.Field, raw string) (string, bool) {
	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Sprintf("%s must be a number", field.Label), false
	}
	if field.NumberMode == "int" && parsed != float64(int64(parsed)) {
		return fmt.Sprintf("%s must be a whole number", field.Label), false
	}
	if field.Min != nil && parsed < *field.Min {
		return fmt.Sprintf("%s must be at least %v", field.Label, *field.Min), false
	}
	if field.Max != nil && parsed > *field.Max {
		return fmt.Sprintf("%s must be at most %v", field.Label, *field.Max), false
	}
	return "", true
}

func (f *Filler) fillSelect(ctx context.Context, ctrl *controller.Controller, field schema.Field) error {
	current, _ := ctrl.Store().Get(field.Key).(string)
	idx, err := f.driver.Select(ctx, SelectConfig{
		Message:      field.Label,
		Options:      field.Options,
		DefaultIndex: indexOf(field.Options, current),
		Help:         field.Placeholder,
	})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(field.Options) {
		return ctrl.SetField(field.Key, "")
	}
	return ctrl.SetField(field.Key, field.Options[idx])
}

func (f *Filler) fillMultiselect(ctx context.Context, ctrl *controller.Controller, field schema.Field) error {
	current, _ := ctrl.Store().Get(field.Key).([]string)
	indices, err := f.driver.MultiSelect(ctx, SelectConfig{
		Message:  field.Label,
		Options:  field.Options,
		Defaults: indicesOf(field.Options, current),
		Help:     field.Placeholder,
	})
	if err != nil {
		return err
	}
	selected := make([]string, 0, len(indices))
	for _, idx := range indices {
		if idx >= 0 && idx < len(field.Options) {
			selected = append(selected, field.Options[idx])
		}
	}
	return ctrl.SetField(field.Key, selected)
}

func (f *Filler) fillRepeater(ctx context.Context, ctrl *controller.Controller, field schema.Field) error {
	if typeField := field.TypeSubField(); typeField != nil {
		return f.fillTypedRepeater(ctx, ctrl, field, *typeField)
	}

	label := field.ItemLabel
	if label == "" {
		label = field.Label
	}

	if len(ctrl.Store().Items(field.Key)) == 0 {
		add, err := f.driver.Confirm(ctx, ConfirmConfig{
			Message: fmt.Sprintf("Add %s entries?", strings.ToLower(label)),
		})
		if err != nil {
			return err
		}
		if !add {
			return nil
		}
	}

	for {
		index, err := ctrl.AppendItem(field.Key)
		if err != nil {
			return f.driver.Info(ctx, err.Error())
		}
		if err := f.fillItem(ctx, ctrl, field, index, ""); err != nil {
			return err
		}

		if max := field.MaxItems(); max > 0 && len(ctrl.Store().Items(field.Key)) >= max {
			return nil
		}
		more, err := f.driver.Confirm(ctx, ConfirmConfig{Message: fmt.Sprintf("Add another %s?", strings.ToLower(label))})
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
	}
}

// fillTypedRepeater drives chip-based item creation: the user multi-selects
// type values, each selection materializes at most one item, and deselected
// types remove their item.
func (f *Filler) fillTypedRepeater(ctx context.Context, ctrl *controller.Controller, field, typeField schema.Field) error {
	var existing []string
	for _, option := range typeField.Options {
		if _, ok := ctrl.Store().TypedItem(field.Key, option); ok {
			existing = append(existing, option)
		}
	}

	indices, err := f.driver.MultiSelect(ctx, SelectConfig{
		Message:  field.Label,
		Options:  typeField.Options,
		Defaults: indicesOf(typeField.Options, existing),
	})
	if err != nil {
		return err
	}

	chosen := make(map[string]struct{}, len(indices))
	for _, idx := range indices {
		if idx >= 0 && idx < len(typeField.Options) {
			chosen[typeField.Options[idx]] = struct{}{}
		}
	}

	for _, option := range typeField.Options {
		_, want := chosen[option]
		_, have := ctrl.Store().TypedItem(field.Key, option)
		switch {
		case want && !have:
			if err := ctrl.AddTypedItem(field.Key, option); err != nil {
				return err
			}
		case !want && have:
			if err := ctrl.RemoveTypedItem(field.Key, option); err != nil {
				return err
			}
		}
	}

	for index, item := range ctrl.Store().Items(field.Key) {
		typeValue, _ := item["type"].(string)
		if _, want := chosen[typeValue]; !want {
			continue
		}
		if err := f.fillItem(ctx, ctrl, field, index, typeValue); err != nil {
			return err
		}
	}
	return nil
}

// fillItem prompts for every sub-field of one repeater item. The type
// sub-field of chip-driven items is fixed by the chip and skipped.
func (f *Filler) fillItem(ctx context.Context, ctrl *controller.Controller, field schema.Field, index int, typeValue string) error {
	heading := field.ItemLabel
	if heading == "" {
		heading = field.Label
	}
	if typeValue != "" {
		heading = fmt.Sprintf("%s (%s)", heading, typeValue)
	} else {
		heading = fmt.Sprintf("%s %d", heading, index+1)
	}
	if err := f.driver.Info(ctx, heading); err != nil {
		return err
	}

	for _, sub := range field.Fields {
		if typeValue != "" && sub.Key == "type" {
			continue
		}
		value, err := f.promptSubField(ctx, ctrl, sub)
		if err != nil {
			return err
		}
		if err := ctrl.SetItemField(field.Key, index, sub.Key, value); err != nil {
			return err
		}
	}
	return nil
}

func (f *Filler) promptSubField(ctx context.Context, ctrl *controller.Controller, sub schema.Field) (any, error) {
	switch sub.Kind {
	case schema.FieldKindBoolean:
		return f.driver.Confirm(ctx, ConfirmConfig{Message: sub.Label})
	case schema.FieldKindSelect:
		idx, err := f.driver.Select(ctx, SelectConfig{Message: sub.Label, Options: sub.Options, DefaultIndex: -1})
		if err != nil {
			return nil, err
		}
		if idx < 0 || idx >= len(sub.Options) {
			return "", nil
		}
		return sub.Options[idx], nil
	case schema.FieldKindNumber:
		for {
			answer, err := f.driver.Input(ctx, InputConfig{Message: sub.Label, Help: sub.Placeholder})
			if err != nil {
				return nil, err
			}
			trimmed := strings.TrimSpace(answer)
			if trimmed == "" {
				return "", nil
			}
			if msg, ok := checkNumber(sub, trimmed); !ok {
				if err := f.driver.Info(ctx, msg); err != nil {
					return nil, err
				}
				continue
			}
			return trimmed, nil
		}
	default:
		return f.driver.Input(ctx, InputConfig{Message: sub.Label, Help: sub.Placeholder})
	}
}

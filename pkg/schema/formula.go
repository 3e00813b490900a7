package schema

// FormulaKindSum and FormulaKindRatio are the supported derivation modes. An
// empty kind behaves as sum.
const (
	FormulaKindSum   = "sum"
	FormulaKindRatio = "ratio"
)

// DefaultDecimals is the decimal precision applied when a formula omits one.
const DefaultDecimals = 2

// RepeaterRef addresses a sub-field summed across every item of a repeater.
type RepeaterRef struct {
	Repeater string `json:"repeater" yaml:"repeater"`
	Field    string `json:"field" yaml:"field"`
}

// Formula describes how a calculated field derives its value. Sum formulas add
// the listed field keys plus any repeater sub-field references; ratio formulas
// divide the summed numerator fields by the denominator field and scale by
// Multiplier. A nil Decimals or Multiplier takes the documented default.
type Formula struct {
	Kind             string        `json:"type" yaml:"type"`
	Fields           []string      `json:"fields,omitempty" yaml:"fields,omitempty"`
	RepeaterFields   []RepeaterRef `json:"repeater_fields,omitempty" yaml:"repeater_fields,omitempty"`
	NumeratorFields  []string      `json:"numerator_fields,omitempty" yaml:"numerator_fields,omitempty"`
	DenominatorField string        `json:"denominator_field,omitempty" yaml:"denominator_field,omitempty"`
	Multiplier       *float64      `json:"multiplier,omitempty" yaml:"multiplier,omitempty"`
	Decimals         *int          `json:"decimals,omitempty" yaml:"decimals,omitempty"`
}

// DecimalPlaces resolves the configured precision, defaulting to 2.
func (f *Formula) DecimalPlaces() int {
	if f == nil || f.Decimals == nil || *f.Decimals < 0 {
		return DefaultDecimals
	}
	return *f.Decimals
}

// Scale resolves the ratio multiplier, defaulting to 1.
func (f *Formula) Scale() float64 {
	if f == nil || f.Multiplier == nil {
		return 1
	}
	return *f.Multiplier
}

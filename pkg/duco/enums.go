package duco

// EnumOption binds one raw API integer to its display label.
type EnumOption struct {
	Value int
	Label string
}

// EnumTable is the ordered option list for one enum-like config parameter.
// The mapping is exact in both directions: every label resolves to exactly
// one raw value and vice versa.
type EnumTable []EnumOption

// Labels returns the display labels in table order.
func (t EnumTable) Labels() []string {
	labels := make([]string, len(t))
	for i, option := range t {
		labels[i] = option.Label
	}
	return labels
}

// LabelFor resolves a raw API value to its label. Unregistered raw values
// resolve to false, not an error: the entity is simply shown without a
// current option.
func (t EnumTable) LabelFor(raw int) (string, bool) {
	for _, option := range t {
		if option.Value == raw {
			return option.Label, true
		}
	}
	return "", false
}

// ValueFor resolves a label back to its raw API value.
func (t EnumTable) ValueFor(label string) (int, bool) {
	for _, option := range t {
		if option.Label == label {
			return option.Value, true
		}
	}
	return 0, false
}

// ConfigEnums registers the box-level config parameters that behave as enums.
// A registered parameter is always exposed as a select, even though its leaf
// shape would also qualify it as a tunable number.
var ConfigEnums = map[ParamRef]EnumTable{
	{Module: "HeatRecovery", Submodule: "Bypass", Key: "Mode"}: {
		{Value: 0, Label: "Auto"},
		{Value: 1, Label: "Closed"},
		{Value: 2, Label: "Open"},
	},
	{Module: "VentCool", Submodule: "General", Key: "Mode"}: {
		{Value: 0, Label: "Off"},
		{Value: 1, Label: "Auto"},
		{Value: 2, Label: "On"},
	},
}

package types

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Pos is a 1-based line/column position in the original expectation text,
// before any indentation normalization.
type Pos struct {
	Line   int
	Column int
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// AttrKind discriminates the typed domains an accessibility attribute
// value can belong to.
type AttrKind int

const (
	AttrBool AttrKind = iota
	AttrMixed
	AttrInt
)

// AttrValue is a resolved accessibility attribute value: a boolean, the
// tristate literal "mixed", or an integer (e.g. heading level).
type AttrValue struct {
	Kind AttrKind
	Bool bool
	Int  int
}

func BoolValue(b bool) AttrValue { return AttrValue{Kind: AttrBool, Bool: b} }
func MixedValue() AttrValue      { return AttrValue{Kind: AttrMixed} }
func IntValue(n int) AttrValue   { return AttrValue{Kind: AttrInt, Int: n} }

// Equal reports typed equality between two attribute values.
func (v AttrValue) Equal(o AttrValue) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case AttrBool:
		return v.Bool == o.Bool
	case AttrInt:
		return v.Int == o.Int
	}
	return true // mixed == mixed
}

// String renders the value in expectation-DSL form.
func (v AttrValue) String() string {
	switch v.Kind {
	case AttrMixed:
		return "mixed"
	case AttrInt:
		return strconv.Itoa(v.Int)
	}
	return strconv.FormatBool(v.Bool)
}

// UnmarshalYAML accepts true/false, the literal "mixed", or an integer,
// so captured snapshot files can carry resolved attributes directly.
func (v *AttrValue) UnmarshalYAML(node *yaml.Node) error {
	var b bool
	if err := node.Decode(&b); err == nil {
		*v = BoolValue(b)
		return nil
	}
	var n int
	if err := node.Decode(&n); err == nil {
		*v = IntValue(n)
		return nil
	}
	var s string
	if err := node.Decode(&s); err == nil && s == "mixed" {
		*v = MixedValue()
		return nil
	}
	return fmt.Errorf("line %d: attribute value must be a boolean, \"mixed\", or a number", node.Line)
}

// MarshalYAML is the inverse of UnmarshalYAML.
func (v AttrValue) MarshalYAML() (any, error) {
	switch v.Kind {
	case AttrMixed:
		return "mixed", nil
	case AttrInt:
		return v.Int, nil
	}
	return v.Bool, nil
}

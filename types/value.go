package types

import "strconv"

// ValueKind discriminates the kinds of constant values that can appear as
// initializers and literals in the source tree.
type ValueKind int

const (
	ValBool ValueKind = iota
	ValInt
	ValReal
	ValString
	ValArray
)

// Value is a constant literal value carried from the source tree into
// initializer metadata and literal lowering.  Text holds the canonical source
// spelling for scalar kinds (for strings, the unquoted content).
type Value struct {
	Kind  ValueKind
	Text  string
	Elems []Value
}

// BoolVal builds a boolean constant value.
func BoolVal(b bool) Value {
	if b {
		return Value{Kind: ValBool, Text: "true"}
	}

	return Value{Kind: ValBool, Text: "false"}
}

// IntVal builds an integer constant value.
func IntVal(n int64) Value {
	return Value{Kind: ValInt, Text: strconv.FormatInt(n, 10)}
}

// RealVal builds a floating-point constant value preserving the source
// spelling.
func RealVal(text string) Value {
	return Value{Kind: ValReal, Text: text}
}

// StrVal builds a string constant value from its unquoted content.
func StrVal(s string) Value {
	return Value{Kind: ValString, Text: s}
}

// ArrayVal builds an array constant value from its element values.
func ArrayVal(elems ...Value) Value {
	return Value{Kind: ValArray, Elems: elems}
}

// AsInt parses the value as an integer.  It fails for non-integer kinds and
// malformed spellings.
func (v Value) AsInt() (int64, bool) {
	if v.Kind != ValInt {
		return 0, false
	}

	n, err := strconv.ParseInt(v.Text, 10, 64)
	if err != nil {
		return 0, false
	}

	return n, true
}

// IsTrue reports whether the value is the boolean constant true.
func (v Value) IsTrue() bool {
	return v.Kind == ValBool && v.Text == "true"
}

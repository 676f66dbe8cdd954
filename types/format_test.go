package types

import (
	"testing"

	"github.com/nalgeon/be"
)

func TestFormatBitStrings(t *testing.T) {
	text, err := FormatValue(IntVal(0), PrimWord)
	be.Err(t, err, nil)
	be.Equal(t, text, "W#16#0000")

	text, err = FormatValue(IntVal(255), PrimByte)
	be.Err(t, err, nil)
	be.Equal(t, text, "B#16#FF")

	text, err = FormatValue(IntVal(43981), PrimDWord)
	be.Err(t, err, nil)
	be.Equal(t, text, "DW#16#0000ABCD")
}

func TestFormatIntegerAndBool(t *testing.T) {
	text, err := FormatValue(IntVal(42), PrimInt)
	be.Err(t, err, nil)
	be.Equal(t, text, "42")

	text, err = FormatValue(BoolVal(true), PrimBool)
	be.Err(t, err, nil)
	be.Equal(t, text, "TRUE")

	text, err = FormatValue(BoolVal(false), PrimBool)
	be.Err(t, err, nil)
	be.Equal(t, text, "FALSE")

	// An integer literal has no Bool rendering.
	_, err = FormatValue(IntVal(1), PrimBool)
	be.True(t, err != nil)
}

func TestFormatRealCompletesDecimalPart(t *testing.T) {
	text, err := FormatValue(RealVal("3"), PrimReal)
	be.Err(t, err, nil)
	be.Equal(t, text, "3.00")

	text, err = FormatValue(RealVal("3.14"), PrimReal)
	be.Err(t, err, nil)
	be.Equal(t, text, "3.14")

	text, err = FormatValue(IntVal(7), PrimLReal)
	be.Err(t, err, nil)
	be.Equal(t, text, "7.00")
}

func TestFormatString(t *testing.T) {
	text, err := FormatValue(StrVal("running"), PrimString)
	be.Err(t, err, nil)
	be.Equal(t, text, "'running'")

	text, err = FormatValue(StrVal(""), PrimString)
	be.Err(t, err, nil)
	be.Equal(t, text, "''")
}

func TestFormatTimeRewritesPrefix(t *testing.T) {
	// A bare body gets the target's prefix.
	text, err := FormatValue(StrVal("5s"), PrimTime)
	be.Err(t, err, nil)
	be.Equal(t, text, "T#5s")

	// An already-prefixed literal is rewritten, never double-prefixed.
	text, err = FormatValue(StrVal("T#5s"), PrimLTime)
	be.Err(t, err, nil)
	be.Equal(t, text, "LT#5s")

	text, err = FormatValue(StrVal("TOD#08:30:00"), PrimLTOD)
	be.Err(t, err, nil)
	be.Equal(t, text, "LTOD#08:30:00")

	// LTOD# must not be mistaken for LT#.
	text, err = FormatValue(StrVal("LTOD#08:30:00"), PrimTOD)
	be.Err(t, err, nil)
	be.Equal(t, text, "TOD#08:30:00")
}

func TestFormatArray(t *testing.T) {
	arr := ArrayVal(IntVal(1), IntVal(2), IntVal(3))
	target := &ArrayType{Dims: []Dim{{Start: 0, End: 2}}, Elem: PrimInt}

	text, err := FormatValue(arr, target)
	be.Err(t, err, nil)
	be.Equal(t, text, "1, 2, 3")

	// One unformattable element fails the whole array value.
	bad := ArrayVal(IntVal(1), StrVal("x"))
	_, err = FormatValue(bad, target)
	be.True(t, err != nil)
}

func TestDefaultValues(t *testing.T) {
	text, ok := DefaultValue(PrimBool)
	be.True(t, ok)
	be.Equal(t, text, "FALSE")

	text, ok = DefaultValue(PrimWord)
	be.True(t, ok)
	be.Equal(t, text, "W#16#0000")

	_, ok = DefaultValue(&NamedType{Name: "MotorConfig"})
	be.True(t, !ok)
}

func TestIsDefault(t *testing.T) {
	be.True(t, IsDefault(BoolVal(false), PrimBool))
	be.True(t, !IsDefault(BoolVal(true), PrimBool))
	be.True(t, IsDefault(IntVal(0), PrimInt))
	be.True(t, !IsDefault(IntVal(1), PrimInt))
	be.True(t, IsDefault(RealVal("0.0"), PrimReal))
	be.True(t, IsDefault(StrVal(""), PrimString))
	be.True(t, !IsDefault(IntVal(0), &NamedType{Name: "MotorConfig"}))
}

package types

import (
	"fmt"
	"strconv"
	"strings"
)

// timePrefixes maps each time-family primitive to its SCL literal prefix.
var timePrefixes = map[PrimType]string{
	PrimTime:  "T#",
	PrimLTime: "LT#",
	PrimDate:  "D#",
	PrimTOD:   "TOD#",
	PrimLTOD:  "LTOD#",
	PrimDT:    "DT#",
	PrimLDT:   "LDT#",
	PrimDTL:   "DTL#",
}

// knownTimePrefixes is every recognized time literal prefix, longest first so
// that prefix stripping never mistakes `LTOD#` for `LT#`.
var knownTimePrefixes = []string{"LTIME#", "TIME#", "LTOD#", "LDT#", "DTL#", "TOD#", "LT#", "DT#", "T#", "D#"}

// FormatValue formats a constant value as an SCL literal of the target type.
// The target type decides the spelling: the same integer renders as `42` for
// Int and `W#16#002A` for Word.  An error means the value has no rendering in
// the target type; for array values the caller treats the whole value as
// absent.
func FormatValue(v Value, target Type) (string, error) {
	switch t := target.(type) {
	case PrimType:
		return formatPrim(v, t)
	case *ArrayType:
		if v.Kind != ValArray {
			return "", fmt.Errorf("cannot format %s value as %s", kindName(v.Kind), target.Repr())
		}

		parts := make([]string, len(v.Elems))
		for i, elem := range v.Elems {
			text, err := FormatValue(elem, t.Elem)
			if err != nil {
				return "", err
			}

			parts[i] = text
		}

		return strings.Join(parts, ", "), nil
	}

	return "", fmt.Errorf("type %s has no literal form", target.Repr())
}

func formatPrim(v Value, pt PrimType) (string, error) {
	switch {
	case pt == PrimBool:
		if v.Kind != ValBool {
			return "", fmt.Errorf("cannot format %s value as Bool", kindName(v.Kind))
		}

		if v.IsTrue() {
			return "TRUE", nil
		}

		return "FALSE", nil

	case pt.IsInteger():
		n, ok := v.AsInt()
		if !ok {
			return "", fmt.Errorf("cannot format %s value as %s", kindName(v.Kind), pt.Repr())
		}

		return strconv.FormatInt(n, 10), nil

	case pt.IsBitString():
		n, ok := v.AsInt()
		if !ok {
			return "", fmt.Errorf("cannot format %s value as %s", kindName(v.Kind), pt.Repr())
		}

		switch pt {
		case PrimByte:
			return fmt.Sprintf("B#16#%02X", n), nil
		case PrimWord:
			return fmt.Sprintf("W#16#%04X", n), nil
		case PrimDWord:
			return fmt.Sprintf("DW#16#%08X", n), nil
		default:
			return fmt.Sprintf("LW#16#%016X", n), nil
		}

	case pt.IsReal():
		if v.Kind != ValReal && v.Kind != ValInt {
			return "", fmt.Errorf("cannot format %s value as %s", kindName(v.Kind), pt.Repr())
		}

		// The SCL float literal grammar requires a decimal part.
		if strings.ContainsAny(v.Text, ".eE") {
			return v.Text, nil
		}

		return v.Text + ".00", nil

	case pt == PrimString || pt == PrimChar:
		if v.Kind != ValString {
			return "", fmt.Errorf("cannot format %s value as %s", kindName(v.Kind), pt.Repr())
		}

		return "'" + v.Text + "'", nil

	case pt.IsTimeFamily():
		if v.Kind != ValString && v.Kind != ValInt {
			return "", fmt.Errorf("cannot format %s value as %s", kindName(v.Kind), pt.Repr())
		}

		// A literal that already carries a time prefix (of any time type) is
		// rewritten to the target's prefix rather than double-prefixed.
		body := v.Text
		upper := strings.ToUpper(body)
		for _, prefix := range knownTimePrefixes {
			if strings.HasPrefix(upper, prefix) {
				body = body[len(prefix):]
				break
			}
		}

		return timePrefixes[pt] + body, nil
	}

	return "", fmt.Errorf("type %s has no literal form", pt.Repr())
}

// DefaultValue returns the SCL text of the target type's default value, and
// whether the type has one.
func DefaultValue(target Type) (string, bool) {
	pt, ok := target.(PrimType)
	if !ok {
		return "", false
	}

	switch {
	case pt == PrimBool:
		return "FALSE", true
	case pt.IsInteger():
		return "0", true
	case pt.IsBitString():
		text, err := formatPrim(IntVal(0), pt)
		if err != nil {
			return "", false
		}
		return text, true
	case pt.IsReal():
		return "0.0", true
	case pt == PrimString:
		return "''", true
	case pt == PrimTime:
		return "T#0ms", true
	case pt == PrimLTime:
		return "LT#0ns", true
	}

	return "", false
}

// IsDefault reports whether the constant value equals the target type's
// default value.  Literal initializers equal to the default are normally
// elided from generated initialization sections.
func IsDefault(v Value, target Type) bool {
	pt, ok := target.(PrimType)
	if !ok {
		return false
	}

	switch {
	case pt == PrimBool:
		return v.Kind == ValBool && !v.IsTrue()
	case pt.IsInteger() || pt.IsBitString():
		n, ok := v.AsInt()
		return ok && n == 0
	case pt.IsReal():
		if v.Kind != ValReal && v.Kind != ValInt {
			return false
		}

		f, err := strconv.ParseFloat(v.Text, 64)
		return err == nil && f == 0
	case pt == PrimString:
		return v.Kind == ValString && v.Text == ""
	}

	return false
}

func kindName(k ValueKind) string {
	switch k {
	case ValBool:
		return "boolean"
	case ValInt:
		return "integer"
	case ValReal:
		return "real"
	case ValString:
		return "string"
	case ValArray:
		return "array"
	}

	return "unknown"
}

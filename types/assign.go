package types

import "fmt"

// MismatchError is raised when an assignment violates the assignability
// rules.  It names both sides' rendered source text and inferred types so the
// offending assignment is identifiable in the report.
type MismatchError struct {
	DstText, SrcText string
	Dst, Src         Type
}

func (me *MismatchError) Error() string {
	return fmt.Sprintf(
		"cannot assign `%s` (%s) to `%s` (%s)",
		me.SrcText, me.Src.Repr(), me.DstText, me.Dst.Repr(),
	)
}

// Assignable reports whether a value of type src may be assigned to a
// location of type dst.  Identical types are always assignable; otherwise the
// source's hardware-type ancestor chain is walked looking for the target.
func Assignable(src, dst Type) bool {
	if Equal(src, dst) {
		return true
	}

	hsrc, ok := src.(*HWType)
	if !ok {
		return false
	}

	hdst, ok := dst.(*HWType)
	if !ok {
		return false
	}

	for _, anc := range Ancestors(hsrc.Name) {
		if anc == hdst.Name {
			return true
		}
	}

	return false
}

// ValidateAssign checks a single assignment per the per-construct rules and
// returns a MismatchError on violation.  dstText and srcText are the rendered
// SCL of both sides.  dstIsParam and srcIsParam indicate whether each side is
// a parameter position, which is the only context in which Any-typed
// assignment is legal.
func ValidateAssign(dst, src Type, dstText, srcText string, dstIsParam, srcIsParam bool) error {
	mismatch := &MismatchError{DstText: dstText, SrcText: srcText, Dst: dst, Src: src}

	// Any-typed assignment is only valid between two parameter positions.
	_, dstAny := dst.(AnyType)
	_, srcAny := src.(AnyType)
	if dstAny || srcAny {
		if dstIsParam && srcIsParam {
			return nil
		}

		return mismatch
	}

	switch d := dst.(type) {
	case *NamedType:
		// Struct-to-struct requires the identical declared identifier.
		s, ok := src.(*NamedType)
		if !ok || s.Name != d.Name {
			return mismatch
		}

		return nil

	case *ArrayType:
		// Array-to-array requires the identical element base type after
		// unwrapping all dimensions.
		if _, ok := src.(*ArrayType); !ok {
			return mismatch
		}

		if !Equal(ElemBase(dst), ElemBase(src)) {
			return mismatch
		}

		return nil

	case *RefType:
		// Reference assignment requires the identical referenced type.
		s, ok := src.(*RefType)
		if !ok || s.To.Repr() != d.To.Repr() {
			return mismatch
		}

		return nil
	}

	if !Assignable(src, dst) {
		return mismatch
	}

	return nil
}

package types

import (
	"fmt"
	"strings"
)

// Type represents an SCL data type.  All SCL types implement this interface.
type Type interface {
	// Repr returns the representation of the type as it appears in generated
	// SCL source text.
	Repr() string
}

// -----------------------------------------------------------------------------

// PrimType is an SCL primitive (elementary) type.
type PrimType int

// Enumeration of the SCL primitive types.
const (
	PrimBool PrimType = iota
	PrimByte
	PrimWord
	PrimDWord
	PrimLWord
	PrimSInt
	PrimInt
	PrimDInt
	PrimLInt
	PrimUSInt
	PrimUInt
	PrimUDInt
	PrimULInt
	PrimReal
	PrimLReal
	PrimChar
	PrimString
	PrimTime
	PrimLTime
	PrimDate
	PrimTOD
	PrimLTOD
	PrimDT
	PrimLDT
	PrimDTL
)

// primNames maps each primitive type to its SCL spelling.
var primNames = map[PrimType]string{
	PrimBool:   "Bool",
	PrimByte:   "Byte",
	PrimWord:   "Word",
	PrimDWord:  "DWord",
	PrimLWord:  "LWord",
	PrimSInt:   "SInt",
	PrimInt:    "Int",
	PrimDInt:   "DInt",
	PrimLInt:   "LInt",
	PrimUSInt:  "USInt",
	PrimUInt:   "UInt",
	PrimUDInt:  "UDInt",
	PrimULInt:  "ULInt",
	PrimReal:   "Real",
	PrimLReal:  "LReal",
	PrimChar:   "Char",
	PrimString: "String",
	PrimTime:   "Time",
	PrimLTime:  "LTime",
	PrimDate:   "Date",
	PrimTOD:    "Time_Of_Day",
	PrimLTOD:   "LTOD",
	PrimDT:     "Date_And_Time",
	PrimLDT:    "LDT",
	PrimDTL:    "DTL",
}

func (pt PrimType) Repr() string {
	return primNames[pt]
}

// IsInteger returns whether the primitive is one of the integral types.
func (pt PrimType) IsInteger() bool {
	return PrimSInt <= pt && pt <= PrimULInt
}

// IsReal returns whether the primitive is a floating-point type.
func (pt PrimType) IsReal() bool {
	return pt == PrimReal || pt == PrimLReal
}

// IsBitString returns whether the primitive is one of the hex-formatted bit
// string types.
func (pt PrimType) IsBitString() bool {
	return pt == PrimByte || pt == PrimWord || pt == PrimDWord || pt == PrimLWord
}

// IsTimeFamily returns whether the primitive is one of the time/date types
// carrying a typed literal prefix.
func (pt PrimType) IsTimeFamily() bool {
	return PrimTime <= pt && pt <= PrimDTL
}

// -----------------------------------------------------------------------------

// NamedType is a reference to a user-defined type: a UDT, a struct declared in
// another block, or a function block used as an instance type.
type NamedType struct {
	Name string
}

func (nt *NamedType) Repr() string {
	return fmt.Sprintf("%q", nt.Name)
}

// HWType is one of the fixed system hardware, event, OB, or connection types.
// Assignability between hardware types follows the inheritance forest in
// hierarchy.go.
type HWType struct {
	Name string
}

func (ht *HWType) Repr() string {
	return ht.Name
}

// Dim is a single array dimension with inclusive bounds.
type Dim struct {
	Start, End int
}

// ArrayType is an SCL array type over one or more dimensions.
type ArrayType struct {
	Dims []Dim
	Elem Type
}

func (at *ArrayType) Repr() string {
	dims := make([]string, len(at.Dims))
	for i, d := range at.Dims {
		dims[i] = fmt.Sprintf("%d..%d", d.Start, d.End)
	}

	return fmt.Sprintf("Array[%s] of %s", strings.Join(dims, ", "), at.Elem.Repr())
}

// RefType is an SCL reference type (`REF_TO`).
type RefType struct {
	To Type
}

func (rt *RefType) Repr() string {
	return "REF_TO " + rt.To.Repr()
}

// AnyType is the SCL `Any` parameter type.  Values of this type may only flow
// between two parameter positions.
type AnyType struct{}

func (AnyType) Repr() string {
	return "Any"
}

// -----------------------------------------------------------------------------

// Equal returns whether two SCL types are identical.  Array types are equal
// if their dimensions and element types are equal; named types compare by
// declared identifier.
func Equal(a, b Type) bool {
	switch va := a.(type) {
	case PrimType:
		vb, ok := b.(PrimType)
		return ok && va == vb
	case *NamedType:
		vb, ok := b.(*NamedType)
		return ok && va.Name == vb.Name
	case *HWType:
		vb, ok := b.(*HWType)
		return ok && va.Name == vb.Name
	case *ArrayType:
		vb, ok := b.(*ArrayType)
		if !ok || len(va.Dims) != len(vb.Dims) {
			return false
		}

		for i, d := range va.Dims {
			if d != vb.Dims[i] {
				return false
			}
		}

		return Equal(va.Elem, vb.Elem)
	case *RefType:
		vb, ok := b.(*RefType)
		return ok && Equal(va.To, vb.To)
	case AnyType:
		_, ok := b.(AnyType)
		return ok
	}

	return false
}

// ElemBase unwraps every array dimension of t and returns the underlying
// element type.  Non-array types are returned unchanged.
func ElemBase(t Type) Type {
	for {
		at, ok := t.(*ArrayType)
		if !ok {
			return t
		}

		t = at.Elem
	}
}

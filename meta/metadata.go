// Package meta defines the block and property metadata extracted from
// attributed declarations, and the process-wide registry that phase one of
// the compiler populates and phase two reads.
package meta

import "github.com/toanphambk/ts2scl/types"

// BlockCategory is the target block kind a declaration lowers to.
type BlockCategory int

const (
	UDT BlockCategory = iota
	DB
	FC
	FB
)

var categoryNames = map[BlockCategory]string{
	UDT: "UDT",
	DB:  "DB",
	FC:  "FC",
	FB:  "FB",
}

func (bc BlockCategory) String() string {
	return categoryNames[bc]
}

// Suffix returns the output filename suffix for artifacts of this category.
func (bc BlockCategory) Suffix() string {
	switch bc {
	case UDT:
		return ".udt"
	case DB:
		return ".db"
	case FC:
		return ".fc.scl"
	default:
		return ".fb.scl"
	}
}

// Scope is a property's variable-section membership.
type Scope int

const (
	ScopeStatic Scope = iota // persistent, block-local (default)
	ScopeIn
	ScopeOut
	ScopeInOut
	ScopeTemp
)

var scopeNames = map[Scope]string{
	ScopeStatic: "STATIC",
	ScopeIn:     "IN",
	ScopeOut:    "OUT",
	ScopeInOut:  "IN_OUT",
	ScopeTemp:   "TEMP",
}

func (s Scope) String() string {
	return scopeNames[s]
}

// InstanceKind is the allocation kind of an instance-typed property.
type InstanceKind int

const (
	InstanceNone InstanceKind = iota
	InstanceSingle
	InstanceMultiple
	InstanceParameter
)

var instanceKindNames = map[InstanceKind]string{
	InstanceNone:      "none",
	InstanceSingle:    "single",
	InstanceMultiple:  "multiple",
	InstanceParameter: "parameter",
}

func (ik InstanceKind) String() string {
	return instanceKindNames[ik]
}

// -----------------------------------------------------------------------------

// BlockOptions are the block-level options read off a class declaration's
// attributes.
type BlockOptions struct {
	OptimizedAccess bool
	Version         string

	// Visibility of the block's data from the webserver and OPC UA.
	WebVisible bool
	OPCVisible bool

	ReadOnly  bool
	Unlinked  bool
	NonRetain bool

	// The declared return type, for FC blocks only.  nil means Void.
	ReturnType types.Type

	// The default instance kind for instances of this block.
	InstanceKind InstanceKind

	// Raw built-in instruction marker for timer/counter instances (eg. TON).
	Instruction string
}

// BlockMeta is the registered metadata of one block declaration.  Name and
// Category are always present once registered; (Name, Category) is the
// registry key.
type BlockMeta struct {
	Name     string
	Category BlockCategory

	// The name of the body method, for FC/FB blocks.  Call-site parameter
	// binding resolves the callee's parameter list through it.
	BodyMethod string

	BlockOptions
}

// PropMeta is the metadata of one property: a class field, a method
// parameter, or a constructor-initialized member.
type PropMeta struct {
	Name  string
	Scope Scope

	// The resolved declared type.
	Type types.Type

	// Explicit array shape from a shape attribute, overriding the declared
	// type's own dimensions when present.
	Dims []types.Dim

	Retain bool

	// External visibility flags; all default to true, and the generated
	// overlay is only emitted when at least one deviates.
	ExternalVisible    bool
	ExternalWritable   bool
	ExternalAccessible bool

	// Instance allocation of instance-typed members.
	InstanceKind InstanceKind
	Instruction  string

	// Optional literal initializer.
	InitValue *types.Value

	// Positional index, for method parameters.
	Index int
}

// SectionType returns the type the property declares in its variable section:
// the shape attribute's array over the declared type when present, the
// declared type otherwise.
func (pm *PropMeta) SectionType() types.Type {
	if len(pm.Dims) == 0 {
		return pm.Type
	}

	return &types.ArrayType{Dims: pm.Dims, Elem: types.ElemBase(pm.Type)}
}

// -----------------------------------------------------------------------------

// InstanceRecord describes an instance-typed member discovered during FB/FC
// generation.  Only single instances are materialized as their own data
// blocks; multiple and parameter kinds are recorded but produce no artifact.
type InstanceRecord struct {
	Name           string
	Kind           InstanceKind
	TypeName       string
	RawInstruction string
}

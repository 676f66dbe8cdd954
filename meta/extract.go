package meta

import (
	"github.com/toanphambk/ts2scl/ast"
	"github.com/toanphambk/ts2scl/types"
)

// Attribute extraction: a pure pass turning the ordered annotation list of a
// declaration into option records.  Category and option attributes merge with
// last-applied-wins semantics; scope attributes are mutually exclusive and
// resolve by the fixed priority order below; malformed shape arguments are
// dropped silently since shape is optional metadata.

// Block category attribute names.
const (
	annotFunctionBlock = "FunctionBlock"
	annotFunction      = "Function"
	annotDataBlock     = "DataBlock"
	annotUdt           = "Udt"
)

// scopePriority is the fixed resolution order for scope attributes: the first
// attribute name present on the declaration, in this order, decides the scope.
var scopePriority = []struct {
	Name  string
	Scope Scope
}{
	{"Input", ScopeIn},
	{"Output", ScopeOut},
	{"InOut", ScopeInOut},
	{"Temp", ScopeTemp},
	{"Static", ScopeStatic},
}

// ExtractBlock reads the block-level attributes of a class declaration.  It
// returns false if the class carries no category attribute, in which case the
// class is not a block and contributes no metadata.  Options not pinned by an
// attribute keep the passed-in defaults.
func ExtractBlock(class *ast.ClassDecl, defaults BlockOptions) (*BlockMeta, bool) {
	bm := &BlockMeta{Name: class.Name, BlockOptions: defaults}

	haveCategory := false
	for _, annot := range class.Annotations {
		switch annot.Name {
		case annotFunctionBlock, annotFunction, annotDataBlock, annotUdt:
			// The first category attribute decides; later ones are ignored.
			if !haveCategory {
				haveCategory = true
				switch annot.Name {
				case annotFunctionBlock:
					bm.Category = FB
				case annotFunction:
					bm.Category = FC
				case annotDataBlock:
					bm.Category = DB
				case annotUdt:
					bm.Category = UDT
				}
			}

		case "OptimizedAccess":
			bm.OptimizedAccess = boolArg(annot, true)
		case "Version":
			if s, ok := stringArg(annot); ok {
				bm.Version = s
			}
		case "WebVisible":
			bm.WebVisible = boolArg(annot, true)
		case "OpcVisible":
			bm.OPCVisible = boolArg(annot, true)
		case "ReadOnly":
			bm.ReadOnly = boolArg(annot, true)
		case "Unlinked":
			bm.Unlinked = boolArg(annot, true)
		case "NonRetain":
			bm.NonRetain = boolArg(annot, true)
		case "Instance":
			bm.InstanceKind = instanceArg(annot)
		case "Instruction":
			if s, ok := stringArg(annot); ok {
				bm.Instruction = s
			}
		}
	}

	if !haveCategory {
		return nil, false
	}

	// The return type of an FC is the declared return type of its body
	// method.
	if bm.Category == FC {
		if body := class.BodyMethod(); body != nil {
			bm.ReturnType = body.ReturnType
		}
	}

	return bm, true
}

// ExtractFields reads the property metadata of every class field.
func ExtractFields(class *ast.ClassDecl) []*PropMeta {
	var props []*PropMeta
	for i, field := range class.Fields {
		pm := extractProp(field.Name, field.DeclType, field.Annotations, ScopeStatic)
		pm.Index = i

		if lit, ok := field.Init.(*ast.Literal); ok {
			val := lit.Value
			pm.InitValue = &val
		}

		props = append(props, pm)
	}

	return props
}

// ExtractParams reads the property metadata of a method's parameters, indexed
// positionally.  Parameters without a scope attribute default to inputs.
func ExtractParams(method *ast.MethodDecl) []*PropMeta {
	var props []*PropMeta
	for i, param := range method.Params {
		pm := extractProp(param.Name, param.DeclType, param.Annotations, ScopeIn)
		pm.Index = i
		props = append(props, pm)
	}

	return props
}

func extractProp(name string, declType types.Type, annots []ast.Annotation, defaultScope Scope) *PropMeta {
	pm := &PropMeta{
		Name:               name,
		Type:               declType,
		Scope:              defaultScope,
		ExternalVisible:    true,
		ExternalWritable:   true,
		ExternalAccessible: true,
	}

	// Resolve the scope by fixed priority: the first name in priority order
	// present on the declaration wins, regardless of attribute order.
	present := make(map[string]bool)
	for _, annot := range annots {
		present[annot.Name] = true
	}

	for _, sp := range scopePriority {
		if present[sp.Name] {
			pm.Scope = sp.Scope
			break
		}
	}

	// Overlays compose with any scope.
	for _, annot := range annots {
		switch annot.Name {
		case "Retain":
			pm.Retain = boolArg(annot, true)
		case "ExternalVisible":
			pm.ExternalVisible = boolArg(annot, true)
		case "ExternalWritable":
			pm.ExternalWritable = boolArg(annot, true)
		case "ExternalAccessible":
			pm.ExternalAccessible = boolArg(annot, true)
		case "Dim":
			if dims, ok := dimArgs(annot); ok {
				pm.Dims = dims
			}
		case "Instance":
			pm.InstanceKind = instanceArg(annot)
		case "Instruction":
			if s, ok := stringArg(annot); ok {
				pm.Instruction = s
			}
		}
	}

	return pm
}

// -----------------------------------------------------------------------------

func boolArg(annot ast.Annotation, dflt bool) bool {
	if len(annot.Args) == 0 {
		return dflt
	}

	if annot.Args[0].Kind != types.ValBool {
		return dflt
	}

	return annot.Args[0].IsTrue()
}

func stringArg(annot ast.Annotation) (string, bool) {
	if len(annot.Args) == 0 || annot.Args[0].Kind != types.ValString {
		return "", false
	}

	return annot.Args[0].Text, true
}

func instanceArg(annot ast.Annotation) InstanceKind {
	if s, ok := stringArg(annot); ok {
		switch s {
		case "multiple":
			return InstanceMultiple
		case "parameter":
			return InstanceParameter
		}
	}

	return InstanceSingle
}

// dimArgs validates a shape attribute: every argument must be a literal
// two-element integer pair.  Any malformed argument invalidates the whole
// attribute.
func dimArgs(annot ast.Annotation) ([]types.Dim, bool) {
	if len(annot.Args) == 0 {
		return nil, false
	}

	var dims []types.Dim
	for _, arg := range annot.Args {
		if arg.Kind != types.ValArray || len(arg.Elems) != 2 {
			return nil, false
		}

		start, ok := arg.Elems[0].AsInt()
		if !ok {
			return nil, false
		}

		end, ok := arg.Elems[1].AsInt()
		if !ok {
			return nil, false
		}

		dims = append(dims, types.Dim{Start: int(start), End: int(end)})
	}

	return dims, true
}

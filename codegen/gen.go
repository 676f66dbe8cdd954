package codegen

import (
	"strings"

	"github.com/toanphambk/ts2scl/ast"
	"github.com/toanphambk/ts2scl/lower"
	"github.com/toanphambk/ts2scl/meta"
	"github.com/toanphambk/ts2scl/types"
)

// Generator produces block artifacts from the populated registry.  It holds
// no mutable state and is safe for concurrent use once the registry's
// collection phase has finished.
type Generator struct {
	reg *meta.Registry
}

func NewGenerator(reg *meta.Registry) *Generator {
	return &Generator{reg: reg}
}

// Generate produces the artifact for one attributed class declaration, plus
// the instance records its FC/FB statics derive.  A registry miss for the
// declaration is fatal for this declaration only.
func (g *Generator) Generate(class *ast.ClassDecl) (*Artifact, []*meta.InstanceRecord, error) {
	bm, ok := g.reg.LookupAny(class.Name)
	if !ok {
		return nil, nil, &lower.UnresolvedError{What: "block metadata", Symbol: class.Name}
	}

	switch bm.Category {
	case meta.UDT:
		art, err := g.genUDT(bm)
		return art, nil, err

	case meta.DB:
		art, err := g.genDB(class, bm)
		return art, nil, err

	case meta.FC:
		return g.genFC(class, bm)

	default:
		return g.genFB(class, bm)
	}
}

// -----------------------------------------------------------------------------

// attributeLines renders the block-level attribute brace and version line,
// plus the standalone linkage markers.
func attributeLines(opts meta.BlockOptions) []string {
	access := "'FALSE'"
	if opts.OptimizedAccess {
		access = "'TRUE'"
	}

	attrs := []string{"S7_Optimized_Access := " + access}
	if !opts.WebVisible {
		attrs = append(attrs, "DB_Visible_In_Webserver := 'FALSE'")
	}

	if !opts.OPCVisible {
		attrs = append(attrs, "DB_Accessible_From_OPC_UA := 'FALSE'")
	}

	lines := []string{
		"{ " + strings.Join(attrs, "; ") + " }",
		"VERSION : " + opts.Version,
	}

	if opts.ReadOnly {
		lines = append(lines, "READ_ONLY")
	}

	if opts.Unlinked {
		lines = append(lines, "UNLINKED")
	}

	if opts.NonRetain {
		lines = append(lines, "NON_RETAIN")
	}

	return lines
}

func (g *Generator) blockProps(name string) []*meta.PropMeta {
	props, ok := g.reg.Props(name)
	if !ok {
		return nil
	}

	return props
}

func (g *Generator) methodParams(bm *meta.BlockMeta) []*meta.PropMeta {
	if bm.BodyMethod == "" {
		return nil
	}

	params, ok := g.reg.Props(meta.PropOwnerKey(bm.Name, bm.BodyMethod))
	if !ok {
		return nil
	}

	return params
}

// instanceRecords derives the instance records of every instance-typed or
// instruction-backed field.
func instanceRecords(props []*meta.PropMeta) []*meta.InstanceRecord {
	var records []*meta.InstanceRecord
	for _, p := range props {
		if p.InstanceKind == meta.InstanceNone {
			continue
		}

		rec := &meta.InstanceRecord{
			Name:           p.Name,
			Kind:           p.InstanceKind,
			RawInstruction: p.Instruction,
		}

		if nt, ok := p.Type.(*types.NamedType); ok {
			rec.TypeName = nt.Name
		}

		records = append(records, rec)
	}

	return records
}

func finish(lines []string) string {
	return strings.Join(lines, "\n") + "\n"
}

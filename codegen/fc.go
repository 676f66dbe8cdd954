package codegen

import (
	"github.com/toanphambk/ts2scl/ast"
	"github.com/toanphambk/ts2scl/lower"
	"github.com/toanphambk/ts2scl/meta"
)

// genFC renders a function: parameter sections, a temp section covering body
// locals, and the lowered body.
func (g *Generator) genFC(class *ast.ClassDecl, bm *meta.BlockMeta) (*Artifact, []*meta.InstanceRecord, error) {
	method := class.BodyMethod()
	if method == nil {
		return nil, nil, &lower.UnresolvedError{What: "body method", Symbol: bm.Name}
	}

	params := g.methodParams(bm)
	fields := g.blockProps(bm.Name)

	low := lower.New(g.reg, bm.Name, method)
	body, err := low.LowerBlock(method.Body, 1)
	if err != nil {
		return nil, nil, err
	}

	retText := "Void"
	if bm.ReturnType != nil {
		retText = bm.ReturnType.Repr()
	}

	lines := []string{`FUNCTION "` + bm.Name + `" : ` + retText}
	lines = append(lines, attributeLines(bm.BlockOptions)...)
	lines = append(lines, sections(nonTemp(params), 1)...)
	lines = append(lines, tempSection(allProps(params, fields), lower.Locals(method.Body), 1)...)

	lines = append(lines, "", "BEGIN")
	if body != "" {
		lines = append(lines, body)
	}

	lines = append(lines, "END_FUNCTION")

	art := &Artifact{
		Name:     bm.Name,
		Category: meta.FC,
		Suffix:   meta.FC.Suffix(),
		Text:     finish(lines),
	}

	return art, instanceRecords(fields), nil
}

func nonTemp(props []*meta.PropMeta) []*meta.PropMeta {
	var out []*meta.PropMeta
	for _, p := range props {
		if p.Scope != meta.ScopeTemp {
			out = append(out, p)
		}
	}

	return out
}

func allProps(params, fields []*meta.PropMeta) []*meta.PropMeta {
	out := make([]*meta.PropMeta, 0, len(params)+len(fields))
	out = append(out, params...)
	return append(out, fields...)
}

package codegen

import (
	"github.com/toanphambk/ts2scl/ast"
	"github.com/toanphambk/ts2scl/lower"
	"github.com/toanphambk/ts2scl/meta"
)

// genFB renders a function block: parameter sections, static sections from
// the class fields (retained before plain), a temp section, and the lowered
// body.  Instance-typed statics declare their block type and derive instance
// records for the orchestrator.
func (g *Generator) genFB(class *ast.ClassDecl, bm *meta.BlockMeta) (*Artifact, []*meta.InstanceRecord, error) {
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

	lines := []string{`FUNCTION_BLOCK "` + bm.Name + `"`}
	lines = append(lines, attributeLines(bm.BlockOptions)...)
	lines = append(lines, sections(append(nonTemp(params), nonTemp(fields)...), 1)...)
	lines = append(lines, tempSection(allProps(params, fields), lower.Locals(method.Body), 1)...)

	lines = append(lines, "", "BEGIN")
	if body != "" {
		lines = append(lines, body)
	}

	lines = append(lines, "END_FUNCTION_BLOCK")

	art := &Artifact{
		Name:     bm.Name,
		Category: meta.FB,
		Suffix:   meta.FB.Suffix(),
		Text:     finish(lines),
	}

	return art, instanceRecords(fields), nil
}

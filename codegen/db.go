package codegen

import (
	"github.com/toanphambk/ts2scl/ast"
	"github.com/toanphambk/ts2scl/lower"
	"github.com/toanphambk/ts2scl/meta"
	"github.com/toanphambk/ts2scl/report"
	"github.com/toanphambk/ts2scl/types"
)

// genDB renders a data block: variable sections plus an initialization block
// built from literal field initializers and constructor assignments.
func (g *Generator) genDB(class *ast.ClassDecl, bm *meta.BlockMeta) (*Artifact, error) {
	props := g.blockProps(bm.Name)

	lines := []string{`DATA_BLOCK "` + bm.Name + `"`}
	lines = append(lines, attributeLines(bm.BlockOptions)...)
	lines = append(lines, sections(props, 1)...)

	init, err := g.dbInit(class, bm, props)
	if err != nil {
		return nil, err
	}

	lines = append(lines, "BEGIN")
	lines = append(lines, init...)
	lines = append(lines, "END_DATA_BLOCK")

	return &Artifact{
		Name:     bm.Name,
		Category: meta.DB,
		Suffix:   meta.DB.Suffix(),
		Text:     finish(lines),
	}, nil
}

// dbInit builds the BEGIN section.  Field initializers equal to the type's
// default are elided; a field the constructor also assigns contributes only
// the constructor's value.
func (g *Generator) dbInit(class *ast.ClassDecl, bm *meta.BlockMeta, props []*meta.PropMeta) ([]string, error) {
	ctorLines, assigned, err := g.ctorInit(class, bm)
	if err != nil {
		return nil, err
	}

	var lines []string
	for _, p := range props {
		if p.InitValue == nil || assigned[p.Name] {
			continue
		}

		target := p.SectionType()
		if types.IsDefault(*p.InitValue, target) {
			continue
		}

		text, err := types.FormatValue(*p.InitValue, target)
		if err != nil {
			// Unformattable initializers are treated as absent.
			report.ReportBlockWarning(bm.Name, "initializer for %s dropped: %s", p.Name, err)
			continue
		}

		lines = append(lines, indentUnit+p.Name+" := "+text+";")
	}

	return append(lines, ctorLines...), nil
}

// ctorInit lowers the constructor body's field assignments.  Data blocks
// carry no code, so anything other than an assignment to an own field is
// reported and omitted.
func (g *Generator) ctorInit(class *ast.ClassDecl, bm *meta.BlockMeta) ([]string, map[string]bool, error) {
	assigned := make(map[string]bool)
	if class.Ctor == nil {
		return nil, assigned, nil
	}

	low := lower.New(g.reg, bm.Name, nil)

	var lines []string
	for _, stmt := range class.Ctor.Body.Stmts {
		field, rhs, ok := ownFieldAssign(stmt)
		if !ok {
			report.ReportBlockWarning(bm.Name, "constructor statement %T is not a field assignment; omitted", stmt)
			continue
		}

		var target types.Type
		if props, ok := g.reg.Props(bm.Name); ok {
			for _, p := range props {
				if p.Name == field {
					target = p.SectionType()
					break
				}
			}
		}

		text, err := low.LowerExprAs(rhs, target)
		if err != nil {
			return nil, nil, err
		}

		assigned[field] = true
		lines = append(lines, indentUnit+field+" := "+text+";")
	}

	return lines, assigned, nil
}

func ownFieldAssign(stmt ast.Stmt) (string, ast.Expr, bool) {
	es, ok := stmt.(*ast.ExprStmt)
	if !ok {
		return "", nil, false
	}

	assign, ok := es.Expr.(*ast.BinaryOp)
	if !ok || assign.Op != ast.OpAssign {
		return "", nil, false
	}

	dot, ok := assign.Lhs.(*ast.Dot)
	if !ok {
		return "", nil, false
	}

	if _, ok := dot.Root.(*ast.SelfRef); !ok {
		return "", nil, false
	}

	return dot.Field, assign.Rhs, true
}

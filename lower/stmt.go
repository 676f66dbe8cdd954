package lower

import (
	"fmt"
	"strings"

	"github.com/toanphambk/ts2scl/ast"
	"github.com/toanphambk/ts2scl/report"
	"github.com/toanphambk/ts2scl/types"
)

const indentUnit = "    "

// LowerBlock lowers a statement block into SCL text at the given indent
// level.  Statement kinds with no lowering rule are reported and omitted; a
// body is a best-effort aggregate of its statements.
func (l *Lowerer) LowerBlock(block *ast.Block, indent int) (string, error) {
	var lines []string
	for _, stmt := range block.Stmts {
		stmtLines, err := l.lowerStmt(stmt, indent)
		if err != nil {
			return "", err
		}

		lines = append(lines, stmtLines...)
	}

	return strings.Join(lines, "\n"), nil
}

func (l *Lowerer) lowerStmt(s ast.Stmt, indent int) ([]string, error) {
	ind := strings.Repeat(indentUnit, indent)

	switch v := s.(type) {
	case *ast.Block:
		var lines []string
		for _, stmt := range v.Stmts {
			stmtLines, err := l.lowerStmt(stmt, indent)
			if err != nil {
				return nil, err
			}

			lines = append(lines, stmtLines...)
		}

		return lines, nil

	case *ast.IfTree:
		return l.lowerIfTree(v, indent)

	case *ast.ForLoop:
		return l.lowerForLoop(v, indent)

	case *ast.WhileLoop:
		cond, err := l.lowerExpr(v.Cond, types.PrimBool)
		if err != nil {
			return nil, err
		}

		body, err := l.LowerBlock(v.Body, indent+1)
		if err != nil {
			return nil, err
		}

		return blockLines(ind+"WHILE "+cond+" DO", body, ind+"END_WHILE;"), nil

	case *ast.DoWhileLoop:
		// The post-tested loop becomes REPEAT/UNTIL.  Logical negation in
		// the condition renders with the NOT keyword, never a source token.
		body, err := l.LowerBlock(v.Body, indent+1)
		if err != nil {
			return nil, err
		}

		cond, err := l.lowerExpr(v.Cond, types.PrimBool)
		if err != nil {
			return nil, err
		}

		lines := blockLines(ind+"REPEAT", body, ind+"UNTIL "+cond)
		return append(lines, ind+"END_REPEAT;"), nil

	case *ast.BreakStmt:
		return []string{ind + "EXIT;"}, nil

	case *ast.ReturnStmt:
		// A return value assigns to the synthetic result binding named
		// after the enclosing procedure.  A bare return in a
		// value-returning procedure binds the return type's default; in a
		// procedure without a declared return it produces nothing.
		if v.Value == nil {
			if !l.returnsValue {
				return nil, nil
			}

			dflt, ok := types.DefaultValue(l.returnTarget())
			if !ok {
				report.ReportBlockWarning(l.blockName, "return type has no default value; bare return omitted")
				return nil, nil
			}

			return []string{ind + "#" + l.blockName + " := " + dflt + ";"}, nil
		}

		text, err := l.lowerExpr(v.Value, l.returnTarget())
		if err != nil {
			return nil, err
		}

		return []string{ind + "#" + l.blockName + " := " + text + ";"}, nil

	case *ast.VarDecl:
		return l.lowerVarDecl(v, ind)

	case *ast.IncDecStmt:
		target, err := l.lowerExpr(v.Target, nil)
		if err != nil {
			return nil, err
		}

		op := "+"
		if v.Decrement {
			op = "-"
		}

		return []string{ind + target + " := " + target + " " + op + " 1;"}, nil

	case *ast.ExprStmt:
		return l.lowerExprStmt(v, ind)
	}

	report.ReportBlockWarning(l.blockName, "statement %T has no lowering rule; omitted", s)
	return nil, nil
}

func (l *Lowerer) lowerIfTree(tree *ast.IfTree, indent int) ([]string, error) {
	ind := strings.Repeat(indentUnit, indent)

	var lines []string
	for i, branch := range tree.CondBranches {
		cond, err := l.lowerExpr(branch.Condition, types.PrimBool)
		if err != nil {
			return nil, err
		}

		keyword := "IF"
		if i > 0 {
			keyword = "ELSIF"
		}

		lines = append(lines, ind+keyword+" "+cond+" THEN")

		body, err := l.LowerBlock(branch.Body, indent+1)
		if err != nil {
			return nil, err
		}

		if body != "" {
			lines = append(lines, body)
		}
	}

	if tree.ElseBranch != nil {
		lines = append(lines, ind+"ELSE")

		body, err := l.LowerBlock(tree.ElseBranch, indent+1)
		if err != nil {
			return nil, err
		}

		if body != "" {
			lines = append(lines, body)
		}
	}

	return append(lines, ind+"END_IF;"), nil
}

func (l *Lowerer) lowerForLoop(loop *ast.ForLoop, indent int) ([]string, error) {
	ind := strings.Repeat(indentUnit, indent)

	if loop.DeclaresCounter {
		l.locals[loop.Counter] = types.PrimInt
	}

	// Loop-control literals are always emitted, default or not.
	initText, err := l.lowerExpr(loop.Init, nil)
	if err != nil {
		return nil, err
	}

	cond := unwrapParens(loop.Cond)
	bound, ok := cond.(*ast.BinaryOp)
	if !ok || bound.Op.IsAssign() {
		return nil, &UnsupportedError{Kind: "for-loop bound"}
	}

	endText, err := l.lowerExpr(bound.Rhs, nil)
	if err != nil {
		return nil, err
	}

	step, err := l.loopStep(loop, initText, endText)
	if err != nil {
		return nil, err
	}

	header := "FOR #" + loop.Counter + " := " + initText + " TO " + endText
	if step != "1" {
		header += " BY " + step
	}

	body, err := l.LowerBlock(loop.Body, indent+1)
	if err != nil {
		return nil, err
	}

	return blockLines(ind+header+" DO", body, ind+"END_FOR;"), nil
}

// loopStep derives the loop step from the update statement.  A bare
// decrement steps -1; compound updates step by their operand.  When no
// direction is determinable from the update but both bounds are integer
// literals with start above end, the step is inferred as -1.
func (l *Lowerer) loopStep(loop *ast.ForLoop, initText, endText string) (string, error) {
	explicit := false
	step := "1"

	switch post := loop.Post.(type) {
	case nil:

	case *ast.IncDecStmt:
		if post.Decrement {
			step = "-1"
			explicit = true
		}

	case *ast.ExprStmt:
		be, ok := post.Expr.(*ast.BinaryOp)
		if !ok {
			return "", &UnsupportedError{Kind: "for-loop update"}
		}

		switch be.Op {
		case ast.OpAddAssign, ast.OpSubAssign:
			text, err := l.lowerExpr(be.Rhs, nil)
			if err != nil {
				return "", err
			}

			if be.Op == ast.OpSubAssign {
				text = "-" + text
			}

			step = text
			explicit = true

		case ast.OpAssign:
			// i = i +/- n is treated like the compound form.
			if inc, ok := unwrapParens(be.Rhs).(*ast.BinaryOp); ok && (inc.Op == ast.OpAdd || inc.Op == ast.OpSub) {
				text, err := l.lowerExpr(inc.Rhs, nil)
				if err != nil {
					return "", err
				}

				if inc.Op == ast.OpSub {
					text = "-" + text
				}

				step = text
				explicit = true
			}

		default:
			return "", &UnsupportedError{Kind: "for-loop update"}
		}

	default:
		return "", &UnsupportedError{Kind: "for-loop update"}
	}

	if !explicit && step == "1" {
		if start, end, ok := literalBounds(loop); ok && start > end {
			step = "-1"
		}
	}

	return step, nil
}

func literalBounds(loop *ast.ForLoop) (int64, int64, bool) {
	initLit, ok := unwrapParens(loop.Init).(*ast.Literal)
	if !ok {
		return 0, 0, false
	}

	bound, ok := unwrapParens(loop.Cond).(*ast.BinaryOp)
	if !ok {
		return 0, 0, false
	}

	endLit, ok := unwrapParens(bound.Rhs).(*ast.Literal)
	if !ok {
		return 0, 0, false
	}

	start, ok := initLit.Value.AsInt()
	if !ok {
		return 0, 0, false
	}

	end, ok := endLit.Value.AsInt()
	if !ok {
		return 0, 0, false
	}

	return start, end, true
}

func (l *Lowerer) lowerVarDecl(decl *ast.VarDecl, ind string) ([]string, error) {
	l.locals[decl.Name] = decl.DeclType

	// Locals are pre-declared in the temp section; the declaration site only
	// contributes its initialization, and initializers equal to the type's
	// default are elided.
	if decl.Init == nil {
		return nil, nil
	}

	if lit, ok := decl.Init.(*ast.Literal); ok && types.IsDefault(lit.Value, decl.DeclType) {
		return nil, nil
	}

	if assign, ok := decl.Init.(*ast.BinaryOp); ok && assign.Op.IsAssign() {
		return nil, &UnsupportedError{Kind: "assignment in variable initializer"}
	}

	text, err := l.lowerExpr(decl.Init, decl.DeclType)
	if err != nil {
		return nil, err
	}

	return []string{ind + "#" + decl.Name + " := " + text + ";"}, nil
}

func (l *Lowerer) lowerExprStmt(stmt *ast.ExprStmt, ind string) ([]string, error) {
	switch v := stmt.Expr.(type) {
	case *ast.BinaryOp:
		if v.Op.IsAssign() {
			assignStmts, err := l.LowerAssign(v)
			if err != nil {
				return nil, err
			}

			lines := make([]string, len(assignStmts))
			for i, s := range assignStmts {
				lines[i] = ind + s
			}

			return lines, nil
		}

	case *ast.Call:
		text, err := l.lowerCall(v)
		if err != nil {
			return nil, err
		}

		return []string{ind + text + ";"}, nil
	}

	report.ReportBlockWarning(l.blockName, "expression statement %T has no lowering rule; omitted", stmt.Expr)
	return nil, nil
}

// -----------------------------------------------------------------------------

func (l *Lowerer) returnTarget() types.Type {
	bm, ok := l.reg.LookupAny(l.blockName)
	if !ok {
		return nil
	}

	return bm.ReturnType
}

func unwrapParens(e ast.Expr) ast.Expr {
	for {
		p, ok := e.(*ast.Paren)
		if !ok {
			return e
		}

		e = p.Inner
	}
}

func blockLines(header, body, footer string) []string {
	if body == "" {
		return []string{header, footer}
	}

	return []string{header, body, footer}
}

// -----------------------------------------------------------------------------

// Local is one body-local variable discovered for the temp section.
type Local struct {
	Name string
	Type types.Type
}

// Locals scans a procedure body for every local declaration and every
// for-loop control variable the loop itself declares, in first-appearance
// order.  Undeclared loop counters default to the integer type.
func Locals(block *ast.Block) []Local {
	var out []Local
	seen := make(map[string]bool)

	var walk func(stmts []ast.Stmt)
	walk = func(stmts []ast.Stmt) {
		for _, s := range stmts {
			switch v := s.(type) {
			case *ast.Block:
				walk(v.Stmts)
			case *ast.VarDecl:
				if !seen[v.Name] {
					seen[v.Name] = true
					out = append(out, Local{Name: v.Name, Type: v.DeclType})
				}
			case *ast.IfTree:
				for _, branch := range v.CondBranches {
					walk(branch.Body.Stmts)
				}

				if v.ElseBranch != nil {
					walk(v.ElseBranch.Stmts)
				}
			case *ast.ForLoop:
				if !seen[v.Counter] {
					seen[v.Counter] = true
					out = append(out, Local{Name: v.Counter, Type: types.PrimInt})
				}

				walk(v.Body.Stmts)
			case *ast.WhileLoop:
				walk(v.Body.Stmts)
			case *ast.DoWhileLoop:
				walk(v.Body.Stmts)
			}
		}
	}

	walk(block.Stmts)
	return out
}

// String renders a local the way error messages show declarations.
func (lv Local) String() string {
	return fmt.Sprintf("%s : %s", lv.Name, lv.Type.Repr())
}

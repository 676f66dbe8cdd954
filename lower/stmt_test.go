package lower

import (
	"testing"

	"github.com/nalgeon/be"

	"github.com/toanphambk/ts2scl/ast"
	"github.com/toanphambk/ts2scl/types"
)

func block(stmts ...ast.Stmt) *ast.Block {
	return &ast.Block{Stmts: stmts}
}

func assignStmt(lhs ast.Expr, rhs ast.Expr) ast.Stmt {
	return &ast.ExprStmt{Expr: bin(ast.OpAssign, lhs, rhs)}
}

func TestLowerIfTree(t *testing.T) {
	l := testLowerer()

	tree := &ast.IfTree{
		CondBranches: []ast.CondBranch{
			{Condition: un(ast.OpNot, id("enable")), Body: block(assignStmt(id("speed"), intLit(0)))},
			{Condition: bin(ast.OpGt, id("errorCount"), intLit(3)), Body: block(&ast.BreakStmt{})},
		},
		ElseBranch: block(assignStmt(id("errorCount"), intLit(0))),
	}

	got, err := l.LowerBlock(block(tree), 0)
	be.Err(t, err, nil)
	be.Equal(t, got,
		"IF NOT #enable THEN\n"+
			"    #speed := 0;\n"+
			"ELSIF #errorCount > 3 THEN\n"+
			"    EXIT;\n"+
			"ELSE\n"+
			"    #errorCount := 0;\n"+
			"END_IF;")
}

func TestLowerForLoopUpward(t *testing.T) {
	l := testLowerer()

	// 0 to 10 with a bare increment: default step, BY omitted.
	loop := &ast.ForLoop{
		Counter:         "i",
		DeclaresCounter: true,
		Init:            intLit(0),
		Cond:            bin(ast.OpLe, id("i"), intLit(10)),
		Post:            &ast.IncDecStmt{Target: id("i")},
		Body:            block(assignStmt(id("errorCount"), id("i"))),
	}

	got, err := l.LowerBlock(block(loop), 0)
	be.Err(t, err, nil)
	be.Equal(t, got,
		"FOR #i := 0 TO 10 DO\n"+
			"    #errorCount := #i;\n"+
			"END_FOR;")
}

func TestLowerForLoopDirectionInference(t *testing.T) {
	l := testLowerer()

	// 10 down to 0 with a bare increment: both bounds are integer literals
	// with start above end, so the step is inferred as -1.
	loop := &ast.ForLoop{
		Counter:         "i",
		DeclaresCounter: true,
		Init:            intLit(10),
		Cond:            bin(ast.OpGe, id("i"), intLit(0)),
		Post:            &ast.IncDecStmt{Target: id("i")},
		Body:            block(&ast.BreakStmt{}),
	}

	got, err := l.LowerBlock(block(loop), 0)
	be.Err(t, err, nil)
	be.Equal(t, got,
		"FOR #i := 10 TO 0 BY -1 DO\n"+
			"    EXIT;\n"+
			"END_FOR;")
}

func TestLowerForLoopExplicitSteps(t *testing.T) {
	l := testLowerer()

	cases := []struct {
		post ast.Stmt
		want string
	}{
		{&ast.IncDecStmt{Target: id("i"), Decrement: true}, "FOR #i := 0 TO 10 BY -1 DO"},
		{&ast.ExprStmt{Expr: bin(ast.OpAddAssign, id("i"), intLit(2))}, "FOR #i := 0 TO 10 BY 2 DO"},
		{&ast.ExprStmt{Expr: bin(ast.OpSubAssign, id("i"), intLit(3))}, "FOR #i := 0 TO 10 BY -3 DO"},
	}

	for _, c := range cases {
		loop := &ast.ForLoop{
			Counter:         "i",
			DeclaresCounter: true,
			Init:            intLit(0),
			Cond:            bin(ast.OpLe, id("i"), intLit(10)),
			Post:            c.post,
			Body:            block(&ast.BreakStmt{}),
		}

		got, err := l.LowerBlock(block(loop), 0)
		be.Err(t, err, nil)
		be.Equal(t, got, c.want+"\n    EXIT;\nEND_FOR;")
	}
}

func TestLowerWhile(t *testing.T) {
	l := testLowerer()

	loop := &ast.WhileLoop{
		Cond: bin(ast.OpLt, id("errorCount"), intLit(5)),
		Body: block(&ast.ExprStmt{Expr: bin(ast.OpAddAssign, id("errorCount"), intLit(1))}),
	}

	got, err := l.LowerBlock(block(loop), 0)
	be.Err(t, err, nil)
	be.Equal(t, got,
		"WHILE #errorCount < 5 DO\n"+
			"    #errorCount := #errorCount + 1;\n"+
			"END_WHILE;")
}

func TestLowerDoWhileNegation(t *testing.T) {
	l := testLowerer()

	// The source's negation token renders as the NOT keyword in the UNTIL
	// clause.
	loop := &ast.DoWhileLoop{
		Body: block(assignStmt(id("speed"), intLit(1))),
		Cond: un(ast.OpNot, id("enable")),
	}

	got, err := l.LowerBlock(block(loop), 0)
	be.Err(t, err, nil)
	be.Equal(t, got,
		"REPEAT\n"+
			"    #speed := 1;\n"+
			"UNTIL NOT #enable\n"+
			"END_REPEAT;")
}

func TestLowerReturn(t *testing.T) {
	reg := testRegistry()
	l := New(reg, "Scale", &ast.MethodDecl{Name: "exec", ReturnType: types.PrimInt})

	// A return value assigns to the result binding named after the
	// procedure.
	got, err := l.LowerBlock(block(&ast.ReturnStmt{Value: intLit(5)}), 0)
	be.Err(t, err, nil)
	be.Equal(t, got, "#Scale := 5;")

	// A bare return in a value-returning procedure binds the return
	// type's default.
	got, err = l.LowerBlock(block(&ast.ReturnStmt{}), 0)
	be.Err(t, err, nil)
	be.Equal(t, got, "#Scale := 0;")
}

func TestLowerBareReturnInProcedure(t *testing.T) {
	l := testLowerer()

	// Without a declared return there is no result binding to default.
	got, err := l.LowerBlock(block(&ast.ReturnStmt{}), 0)
	be.Err(t, err, nil)
	be.Equal(t, got, "")
}

func TestLowerVarDecl(t *testing.T) {
	l := testLowerer()

	// A default-valued initializer is elided; any other initializer lowers
	// to an assignment at the declaration site.
	body := block(
		&ast.VarDecl{Name: "count", DeclType: types.PrimInt, Init: intLit(0)},
		&ast.VarDecl{Name: "limit", DeclType: types.PrimInt, Init: intLit(50)},
		&ast.VarDecl{Name: "scratch", DeclType: types.PrimReal},
		assignStmt(id("count"), id("limit")),
	)

	got, err := l.LowerBlock(body, 0)
	be.Err(t, err, nil)
	be.Equal(t, got, "#limit := 50;\n#count := #limit;")
}

func TestLowerIncDecStatement(t *testing.T) {
	l := testLowerer()

	got, err := l.LowerBlock(block(
		&ast.IncDecStmt{Target: id("errorCount")},
		&ast.IncDecStmt{Target: id("errorCount"), Decrement: true},
	), 0)
	be.Err(t, err, nil)
	be.Equal(t, got, "#errorCount := #errorCount + 1;\n#errorCount := #errorCount - 1;")
}

func TestLocalsDiscovery(t *testing.T) {
	// Locals covers declarations at any nesting depth plus loop-declared
	// counters, in first-appearance order.
	body := block(
		&ast.VarDecl{Name: "count", DeclType: types.PrimInt},
		&ast.IfTree{CondBranches: []ast.CondBranch{{
			Condition: id("enable"),
			Body:      block(&ast.VarDecl{Name: "scratch", DeclType: types.PrimReal}),
		}}},
		&ast.ForLoop{
			Counter:         "i",
			DeclaresCounter: true,
			Init:            intLit(0),
			Cond:            bin(ast.OpLe, id("i"), intLit(10)),
			Body:            block(&ast.VarDecl{Name: "tmp", DeclType: types.PrimBool}),
		},
	)

	locals := Locals(body)
	be.Equal(t, len(locals), 4)
	be.Equal(t, locals[0], Local{Name: "count", Type: types.PrimInt})
	be.Equal(t, locals[1], Local{Name: "scratch", Type: types.PrimReal})
	be.Equal(t, locals[2], Local{Name: "i", Type: types.PrimInt})
	be.Equal(t, locals[3], Local{Name: "tmp", Type: types.PrimBool})
}

package ast

import "github.com/toanphambk/ts2scl/types"

// Block is a list of statements.
type Block struct {
	StmtBase

	Stmts []Stmt
}

// IfTree is an if/else-if/else chain.
type IfTree struct {
	StmtBase

	// The conditional branches of the chain, in order.
	CondBranches []CondBranch

	// The optional trailing else branch.
	ElseBranch *Block
}

// CondBranch is a single conditional branch of an if tree.
type CondBranch struct {
	Condition Expr
	Body      *Block
}

// ForLoop is a counted loop with an initializer, a bound condition, and an
// update statement.
type ForLoop struct {
	StmtBase

	// The loop counter variable name.
	Counter string

	// Whether the loop itself declares the counter (as opposed to reusing a
	// variable declared earlier in the body).
	DeclaresCounter bool

	// The counter's starting expression.
	Init Expr

	// The bound comparison; the end value is its right operand.
	Cond Expr

	// The update statement: an IncDecStmt or a compound-assignment ExprStmt.
	Post Stmt

	Body *Block
}

// WhileLoop is a pre-tested loop.
type WhileLoop struct {
	StmtBase

	Cond Expr
	Body *Block
}

// DoWhileLoop is a post-tested loop.
type DoWhileLoop struct {
	StmtBase

	Body *Block
	Cond Expr
}

// IncDecStmt is an increment/decrement statement (x++ / x--).
type IncDecStmt struct {
	StmtBase

	Target    Expr
	Decrement bool
}

// BreakStmt is an early loop exit.
type BreakStmt struct {
	StmtBase
}

// ReturnStmt is a return statement with an optional value.
type ReturnStmt struct {
	StmtBase

	Value Expr
}

// ExprStmt is an expression used as a statement (assignments, calls).
type ExprStmt struct {
	StmtBase

	Expr Expr
}

// VarDecl is a local variable declaration with an optional initializer.  The
// target language pre-declares all locals in a temp section, so only the
// initializer survives lowering.
type VarDecl struct {
	StmtBase

	Name     string
	DeclType types.Type
	Init     Expr
}

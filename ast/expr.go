package ast

import "github.com/toanphambk/ts2scl/types"

// OpKind enumerates the source operators the compiler understands.
type OpKind int

const (
	// Unary operators.
	OpNot OpKind = iota
	OpNeg
	OpDeref

	// Binary operators.
	OpExp
	OpMul
	OpDiv
	OpMod
	OpAdd
	OpSub
	OpLt
	OpLe
	OpGt
	OpGe
	OpEq
	OpNeq
	OpAnd
	OpXor
	OpOr

	// Assignment operators.
	OpAssign
	OpAddAssign
	OpSubAssign
	OpMulAssign
	OpDivAssign
)

// IsAssign reports whether the operator is an assignment or compound
// assignment.
func (op OpKind) IsAssign() bool {
	return op >= OpAssign
}

// -----------------------------------------------------------------------------

// Identifier is a named value reference.
type Identifier struct {
	ExprBase

	Name string
}

// SelfRef is a reference to the enclosing block instance.  In the target
// grammar local scope is implicit, so a member path rooted here renders only
// its trailing segments.
type SelfRef struct {
	ExprBase
}

// Literal is a constant literal.  Its target type is never taken from the
// literal itself but from the position it occupies.
type Literal struct {
	ExprBase

	Value types.Value
}

// UnaryOp is a unary operator application.
type UnaryOp struct {
	ExprBase

	Op      OpKind
	Operand Expr
}

// BinaryOp is a binary operator application, including assignments and
// compound assignments.
type BinaryOp struct {
	ExprBase

	Op       OpKind
	Lhs, Rhs Expr
}

// Dot is a member access expression (x.f).
type Dot struct {
	ExprBase

	Root  Expr
	Field string
}

// Index is an indexed access expression (x[i] or x[i, j]).
type Index struct {
	ExprBase

	Root    Expr
	Indices []Expr
}

// Call is a call expression.  Arguments are positional in the source; the
// lowering engine rebinds them to the callee's declared parameter names.
type Call struct {
	ExprBase

	Callee Expr
	Args   []Expr
}

// Paren is an explicitly parenthesized expression.
type Paren struct {
	ExprBase

	Inner Expr
}

// ObjectLit is an object literal: a set of named field initializers.
type ObjectLit struct {
	ExprBase

	Fields []FieldInit
}

// FieldInit is one named field initializer inside an object literal.
type FieldInit struct {
	Name string
	Init Expr
}

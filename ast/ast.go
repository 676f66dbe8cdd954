// Package ast defines the attributed, type-checked source tree the compiler
// consumes.  The tree is produced by the external front end (parser + type
// checker); this package only models it.  Expressions carry their resolved
// SCL type; literals deliberately carry none, since a literal's target type
// is always inferred from its syntactic position.
package ast

import "github.com/toanphambk/ts2scl/types"

// Node is the common interface for all tree nodes.
type Node interface {
	node()
}

// Expr represents an expression.  All expression nodes implement Expr.
type Expr interface {
	Node

	// Type is the resolved SCL type of the expression, or nil when the node
	// has no intrinsic type (literals, object literals).
	Type() types.Type

	// SetType sets the resolved type of the expression.
	SetType(types.Type)
}

// Stmt represents a statement.  All statement nodes implement Stmt.
type Stmt interface {
	Node

	stmt()
}

// ExprBase is the base struct for all expression nodes.
type ExprBase struct {
	typ types.Type
}

func (eb *ExprBase) node() {}

func (eb *ExprBase) Type() types.Type {
	return eb.typ
}

func (eb *ExprBase) SetType(typ types.Type) {
	eb.typ = typ
}

// StmtBase is the base struct for all statement nodes.
type StmtBase struct{}

func (StmtBase) node() {}

func (StmtBase) stmt() {}

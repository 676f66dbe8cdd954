package lower

import "github.com/toanphambk/ts2scl/ast"

// opInfo describes one target operator: its SCL spelling, its precedence
// rank, and its associativity.  A lower rank binds tighter.
type opInfo struct {
	text       string
	rank       int
	rightAssoc bool
}

// Precedence ranks of the target grammar.
const (
	rankPostfix    = 1 // dereference, brackets
	rankUnary      = 2
	rankPower      = 3 // power, logical not
	rankMul        = 4
	rankAdd        = 5
	rankRelational = 6
	rankEquality   = 7
	rankAnd        = 8
	rankXor        = 9
	rankOr         = 10
	rankAssign     = 11
)

var binOps = map[ast.OpKind]opInfo{
	ast.OpExp: {"**", rankPower, true},
	ast.OpMul: {"*", rankMul, false},
	ast.OpDiv: {"/", rankMul, false},
	ast.OpMod: {"MOD", rankMul, false},
	ast.OpAdd: {"+", rankAdd, false},
	ast.OpSub: {"-", rankAdd, false},
	ast.OpLt:  {"<", rankRelational, false},
	ast.OpLe:  {"<=", rankRelational, false},
	ast.OpGt:  {">", rankRelational, false},
	ast.OpGe:  {">=", rankRelational, false},
	ast.OpEq:  {"=", rankEquality, false},
	ast.OpNeq: {"<>", rankEquality, false},
	ast.OpAnd: {"AND", rankAnd, false},
	ast.OpXor: {"XOR", rankXor, false},
	ast.OpOr:  {"OR", rankOr, false},
}

var unOps = map[ast.OpKind]opInfo{
	ast.OpNot:   {"NOT", rankPower, false},
	ast.OpNeg:   {"-", rankUnary, false},
	ast.OpDeref: {"^", rankPostfix, false},
}

// compoundOps maps each compound assignment to the binary operator it folds
// into (`lhs := lhs <op> rhs`).
var compoundOps = map[ast.OpKind]ast.OpKind{
	ast.OpAddAssign: ast.OpAdd,
	ast.OpSubAssign: ast.OpSub,
	ast.OpMulAssign: ast.OpMul,
	ast.OpDivAssign: ast.OpDiv,
}

// exprRank returns the precedence rank of an expression node for the
// parenthesization rule.  Only operator applications have one; every other
// node form is self-delimiting.
func exprRank(e ast.Expr) (opInfo, bool) {
	switch v := e.(type) {
	case *ast.BinaryOp:
		if v.Op.IsAssign() {
			return opInfo{":=", rankAssign, true}, true
		}

		return binOps[v.Op], true
	case *ast.UnaryOp:
		return unOps[v.Op], true
	}

	return opInfo{}, false
}

// needsParens decides whether a child expression must be parenthesized under
// the given parent operator.  A child needs parentheses iff it binds looser
// than its parent (numerically greater rank), or it has equal rank to a
// right-associative parent and sits on the parent's right side.  Assignment
// parents never parenthesize their right-hand side.
func needsParens(child ast.Expr, parent opInfo, isRight bool) bool {
	info, ok := exprRank(child)
	if !ok {
		return false
	}

	if parent.rank == rankAssign {
		return false
	}

	if info.rank > parent.rank {
		return true
	}

	return info.rank == parent.rank && parent.rightAssoc && isRight
}

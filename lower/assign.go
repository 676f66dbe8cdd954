package lower

import (
	"github.com/toanphambk/ts2scl/ast"
	"github.com/toanphambk/ts2scl/types"
)

// LowerAssign lowers an assignment expression into one or more SCL assignment
// statements.  A compound assignment folds into `lhs := lhs <op> rhs`; a
// chained assignment decomposes right-to-left into a sequence of statements,
// each intermediate link feeding the next link's right-hand value.  Every
// produced statement is validated independently for assignability.
func (l *Lowerer) LowerAssign(b *ast.BinaryOp) ([]string, error) {
	// Collect the chain links outermost-first.
	var links []*ast.BinaryOp
	for cur := b; ; {
		links = append(links, cur)

		rhs, ok := cur.Rhs.(*ast.BinaryOp)
		if !ok || !rhs.Op.IsAssign() {
			break
		}

		cur = rhs
	}

	// Lower right-to-left: the innermost link assigns its own right-hand
	// expression; each outer link assigns the inner link's left-hand value.
	var stmts []string
	var fedText string
	var fedType types.Type
	var fedExpr ast.Expr

	for i := len(links) - 1; i >= 0; i-- {
		link := links[i]

		lhsText, err := l.lowerExpr(link.Lhs, nil)
		if err != nil {
			return nil, err
		}

		lhsType := l.staticType(link.Lhs)

		var rhsText string
		var rhsType types.Type
		var rhsExpr ast.Expr

		if i == len(links)-1 {
			rhsExpr = link.Rhs
			rhsType = l.staticType(link.Rhs)

			rhsText, err = l.lowerExpr(link.Rhs, lhsType)
			if err != nil {
				return nil, err
			}
		} else {
			rhsExpr, rhsText, rhsType = fedExpr, fedText, fedType
		}

		if err := l.validateAssign(link.Lhs, rhsExpr, lhsText, rhsText, lhsType, rhsType); err != nil {
			return nil, err
		}

		if folded, ok := compoundOps[link.Op]; ok {
			info := binOps[folded]

			if rhsExpr != nil && needsParens(rhsExpr, info, true) {
				rhsText = "(" + rhsText + ")"
			}

			stmts = append(stmts, lhsText+" := "+lhsText+" "+info.text+" "+rhsText+";")
		} else {
			stmts = append(stmts, lhsText+" := "+rhsText+";")
		}

		fedText, fedType, fedExpr = lhsText, lhsType, link.Lhs
	}

	return stmts, nil
}

// validateAssign applies the assignability rules to one assignment when both
// sides carry resolved types.  Literal right-hand sides are constrained by
// their position and need no separate check.
func (l *Lowerer) validateAssign(lhs, rhs ast.Expr, lhsText, rhsText string, lhsType, rhsType types.Type) error {
	if lhsType == nil || rhsType == nil {
		return nil
	}

	if rhs != nil {
		if _, ok := rhs.(*ast.Literal); ok {
			return nil
		}
	}

	return types.ValidateAssign(
		lhsType, rhsType,
		lhsText, rhsText,
		l.isParamRef(lhs), l.isParamRef(rhs),
	)
}

// Package lower converts the attributed source tree's expressions and
// statements into SCL text.  Lowering is pure: a Lowerer holds only the
// read-only metadata registry and the enclosing procedure's declarations.
package lower

import (
	"fmt"
	"strings"

	"github.com/toanphambk/ts2scl/ast"
	"github.com/toanphambk/ts2scl/meta"
	"github.com/toanphambk/ts2scl/types"
)

// Lowerer lowers the body of one procedure (an FC/FB body method or a DB
// constructor) into SCL statement text.
type Lowerer struct {
	reg *meta.Registry

	// The enclosing block and procedure names; return values bind to a
	// synthetic result named after the procedure.
	blockName  string
	methodName string

	returnsValue bool

	// Parameter and field metadata of the enclosing declaration, by name.
	params map[string]*meta.PropMeta
	fields map[string]*meta.PropMeta

	// Local variables declared so far in the body.
	locals map[string]types.Type
}

// New creates a lowerer for the body of blockName's method.  The method may
// be nil when lowering constructor assignments.
func New(reg *meta.Registry, blockName string, method *ast.MethodDecl) *Lowerer {
	l := &Lowerer{
		reg:       reg,
		blockName: blockName,
		params:    make(map[string]*meta.PropMeta),
		fields:    make(map[string]*meta.PropMeta),
		locals:    make(map[string]types.Type),
	}

	if fields, ok := reg.Props(blockName); ok {
		for _, f := range fields {
			l.fields[f.Name] = f
		}
	}

	if method != nil {
		l.methodName = method.Name
		l.returnsValue = method.ReturnType != nil

		if params, ok := reg.Props(meta.PropOwnerKey(blockName, method.Name)); ok {
			for _, p := range params {
				l.params[p.Name] = p
			}
		}
	}

	return l
}

// LowerExpr lowers a single expression with no position-derived target type.
func (l *Lowerer) LowerExpr(e ast.Expr) (string, error) {
	return l.lowerExpr(e, nil)
}

// LowerExprAs lowers an expression whose position imposes a target type on
// contained literals.
func (l *Lowerer) LowerExprAs(e ast.Expr, target types.Type) (string, error) {
	return l.lowerExpr(e, target)
}

// lowerExpr lowers an expression.  target is the type the position imposes on
// literals (the left side of an enclosing assignment, the declared type of an
// enclosing variable, or the declared type of an enclosing call parameter);
// it is nil when the position imposes none.
func (l *Lowerer) lowerExpr(e ast.Expr, target types.Type) (string, error) {
	switch v := e.(type) {
	case *ast.Literal:
		return l.lowerLiteral(v, target), nil

	case *ast.Identifier:
		return l.refText(v.Name), nil

	case *ast.Paren:
		inner, err := l.lowerExpr(v.Inner, target)
		if err != nil {
			return "", err
		}

		return "(" + inner + ")", nil

	case *ast.UnaryOp:
		return l.lowerUnary(v, target)

	case *ast.BinaryOp:
		if v.Op.IsAssign() {
			// Assignments are statements in the target grammar; the
			// statement lowerer decomposes them before reaching here.
			return "", &UnsupportedError{Kind: "assignment in expression position"}
		}

		return l.lowerBinary(v, target)

	case *ast.Dot:
		return l.lowerDot(v)

	case *ast.Index:
		return l.lowerIndex(v)

	case *ast.Call:
		return l.lowerCall(v)

	case *ast.ObjectLit:
		return l.lowerObject(v)
	}

	return "", &UnsupportedError{Kind: fmt.Sprintf("%T", e)}
}

func (l *Lowerer) lowerUnary(u *ast.UnaryOp, target types.Type) (string, error) {
	info, ok := unOps[u.Op]
	if !ok {
		return "", &UnsupportedError{Kind: "unary operator"}
	}

	operand, err := l.lowerExpr(u.Operand, target)
	if err != nil {
		return "", err
	}

	if needsParens(u.Operand, info, false) {
		operand = "(" + operand + ")"
	}

	switch u.Op {
	case ast.OpNot:
		return "NOT " + operand, nil
	case ast.OpNeg:
		return "-" + operand, nil
	default: // OpDeref
		return operand + "^", nil
	}
}

func (l *Lowerer) lowerBinary(b *ast.BinaryOp, target types.Type) (string, error) {
	info, ok := binOps[b.Op]
	if !ok {
		return "", &UnsupportedError{Kind: "binary operator"}
	}

	lhsTarget, rhsTarget := childTargets(b, target)

	lhs, err := l.lowerExpr(b.Lhs, lhsTarget)
	if err != nil {
		return "", err
	}

	if needsParens(b.Lhs, info, false) {
		lhs = "(" + lhs + ")"
	}

	rhs, err := l.lowerExpr(b.Rhs, rhsTarget)
	if err != nil {
		return "", err
	}

	if needsParens(b.Rhs, info, true) {
		rhs = "(" + rhs + ")"
	}

	return lhs + " " + info.text + " " + rhs, nil
}

// childTargets determines the position-imposed types of a binary operator's
// operands.  Comparison operands type each other; arithmetic operands keep
// the enclosing position's target; logical operands are boolean.
func childTargets(b *ast.BinaryOp, target types.Type) (types.Type, types.Type) {
	switch b.Op {
	case ast.OpLt, ast.OpLe, ast.OpGt, ast.OpGe, ast.OpEq, ast.OpNeq:
		return b.Rhs.Type(), b.Lhs.Type()
	case ast.OpAnd, ast.OpOr, ast.OpXor:
		return types.PrimBool, types.PrimBool
	}

	return target, target
}

func (l *Lowerer) lowerDot(d *ast.Dot) (string, error) {
	// A path rooted at the enclosing instance renders only its trailing
	// segments: local scope is implicit in the target grammar.
	if _, ok := d.Root.(*ast.SelfRef); ok {
		return "#" + d.Field, nil
	}

	root, err := l.lowerExpr(d.Root, nil)
	if err != nil {
		return "", err
	}

	return root + "." + d.Field, nil
}

func (l *Lowerer) lowerIndex(ix *ast.Index) (string, error) {
	root, err := l.lowerExpr(ix.Root, nil)
	if err != nil {
		return "", err
	}

	indices := make([]string, len(ix.Indices))
	for i, idx := range ix.Indices {
		text, err := l.lowerExpr(idx, nil)
		if err != nil {
			return "", err
		}

		indices[i] = text
	}

	return root + "[" + strings.Join(indices, ", ") + "]", nil
}

func (l *Lowerer) lowerObject(obj *ast.ObjectLit) (string, error) {
	parts := make([]string, len(obj.Fields))
	for i, field := range obj.Fields {
		text, err := l.lowerExpr(field.Init, nil)
		if err != nil {
			return "", err
		}

		parts[i] = field.Name + " := " + text
	}

	return "(" + strings.Join(parts, ", ") + ")", nil
}

// lowerLiteral formats a literal against its position-imposed target type,
// falling back to a type-neutral rendering when the position imposes none.
func (l *Lowerer) lowerLiteral(lit *ast.Literal, target types.Type) string {
	if target != nil {
		if text, err := types.FormatValue(lit.Value, target); err == nil {
			return text
		}
	}

	return rawValueText(lit.Value)
}

func rawValueText(v types.Value) string {
	switch v.Kind {
	case types.ValBool:
		if v.IsTrue() {
			return "TRUE"
		}

		return "FALSE"
	case types.ValReal:
		if !strings.ContainsAny(v.Text, ".eE") {
			return v.Text + ".00"
		}

		return v.Text
	case types.ValString:
		return "'" + v.Text + "'"
	case types.ValArray:
		parts := make([]string, len(v.Elems))
		for i, elem := range v.Elems {
			parts[i] = rawValueText(elem)
		}

		return strings.Join(parts, ", ")
	}

	return v.Text
}

// refText renders a bare name reference: declarations local to the block get
// the local-reference marker, names registered as blocks render as quoted
// global references.
func (l *Lowerer) refText(name string) string {
	if _, ok := l.params[name]; ok {
		return "#" + name
	}

	if _, ok := l.fields[name]; ok {
		return "#" + name
	}

	if _, ok := l.locals[name]; ok {
		return "#" + name
	}

	if _, ok := l.reg.LookupAny(name); ok {
		return fmt.Sprintf("%q", name)
	}

	return "#" + name
}

// isParamRef reports whether the expression is a direct reference to one of
// the enclosing procedure's parameters.
func (l *Lowerer) isParamRef(e ast.Expr) bool {
	id, ok := e.(*ast.Identifier)
	if !ok {
		return false
	}

	_, ok = l.params[id.Name]
	return ok
}

// staticType returns the resolved type of an expression, consulting the
// enclosing declarations for bare references the front end left untyped.
func (l *Lowerer) staticType(e ast.Expr) types.Type {
	if t := e.Type(); t != nil {
		return t
	}

	switch v := e.(type) {
	case *ast.Identifier:
		if p, ok := l.params[v.Name]; ok {
			return p.SectionType()
		}

		if f, ok := l.fields[v.Name]; ok {
			return f.SectionType()
		}

		if t, ok := l.locals[v.Name]; ok {
			return t
		}

	case *ast.Dot:
		if _, ok := v.Root.(*ast.SelfRef); ok {
			if f, ok := l.fields[v.Field]; ok {
				return f.SectionType()
			}
		}

	case *ast.Paren:
		return l.staticType(v.Inner)
	}

	return nil
}

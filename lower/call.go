package lower

import (
	"fmt"
	"strings"

	"github.com/toanphambk/ts2scl/ast"
	"github.com/toanphambk/ts2scl/meta"
	"github.com/toanphambk/ts2scl/types"
)

// lowerCall lowers a call expression.  Source arguments are positional; the
// target grammar requires them bound to the callee's declared parameter
// names, with `:=` for input-like parameters and `=>` for outputs.
func (l *Lowerer) lowerCall(c *ast.Call) (string, error) {
	calleeText, calleeBlock, err := l.resolveCallee(c.Callee)
	if err != nil {
		return "", err
	}

	params, ok := l.reg.CallParams(calleeBlock)
	if !ok {
		return "", &UnresolvedError{What: "callee", Symbol: calleeBlock}
	}

	if len(c.Args) > len(params) {
		return "", &UnresolvedError{
			What:   "parameter",
			Symbol: fmt.Sprintf("%s argument %d", calleeBlock, len(params)+1),
		}
	}

	parts := make([]string, len(c.Args))
	for i, arg := range c.Args {
		param := params[i]

		text, err := l.lowerExpr(arg, param.Type)
		if err != nil {
			return "", err
		}

		sep := ":="
		if param.Scope == meta.ScopeOut {
			sep = "=>"
		}

		parts[i] = param.Name + " " + sep + " " + text
	}

	return calleeText + "(" + strings.Join(parts, ", ") + ")", nil
}

// resolveCallee resolves the call target to its rendered SCL text and the
// block whose parameter list binds the arguments.  A member path first
// resolves whether its base is a class-level (shared) reference or an
// instance-typed field; instance calls go through the instance's declared
// type.
func (l *Lowerer) resolveCallee(e ast.Expr) (string, string, error) {
	switch v := e.(type) {
	case *ast.Identifier:
		// A direct call to a named unit.
		if _, ok := l.reg.LookupAny(v.Name); !ok {
			return "", "", &UnresolvedError{What: "callee", Symbol: v.Name}
		}

		return fmt.Sprintf("%q", v.Name), v.Name, nil

	case *ast.Dot:
		switch base := v.Root.(type) {
		case *ast.SelfRef:
			// this.member(...): the member must be an instance-typed field.
			return l.resolveInstance(v.Field)

		case *ast.Identifier:
			// Other.method(...): a class-level (shared) reference.
			if _, ok := l.reg.LookupAny(base.Name); ok {
				return fmt.Sprintf("%q", base.Name), base.Name, nil
			}

			return "", "", &UnresolvedError{What: "callee", Symbol: base.Name}

		case *ast.Dot:
			// this.member.method(...): an instance call through the member.
			if _, ok := base.Root.(*ast.SelfRef); ok {
				return l.resolveInstance(base.Field)
			}
		}
	}

	return "", "", &UnsupportedError{Kind: "call target"}
}

// resolveInstance resolves an instance-typed field to its rendered reference
// and its declared block type.
func (l *Lowerer) resolveInstance(fieldName string) (string, string, error) {
	prop, ok := l.fields[fieldName]
	if !ok {
		return "", "", &UnresolvedError{What: "instance", Symbol: fieldName}
	}

	nt, ok := prop.Type.(*types.NamedType)
	if !ok {
		return "", "", &UnresolvedError{What: "instance type", Symbol: fieldName}
	}

	return "#" + fieldName, nt.Name, nil
}

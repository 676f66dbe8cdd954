package lower

import "fmt"

// UnsupportedError is raised for a syntax node outside the supported
// expression/statement set.  It is fatal for the containing declaration.
type UnsupportedError struct {
	Kind string
}

func (ue *UnsupportedError) Error() string {
	return fmt.Sprintf("unsupported construct: %s", ue.Kind)
}

// UnresolvedError is raised when a callee, parameter, instance type, or
// metadata key cannot be found.  It is fatal for the containing declaration.
type UnresolvedError struct {
	What   string
	Symbol string
}

func (ue *UnresolvedError) Error() string {
	return fmt.Sprintf("unresolved %s: `%s`", ue.What, ue.Symbol)
}

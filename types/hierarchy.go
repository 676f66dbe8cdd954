package types

// hwParents maps each hardware, event, OB, and connection type to its single
// parent type.  The forest is fixed by the target system; roots (AOM_IDENT,
// and through it HW_ANY, EVENT_ANY, CONN_ANY) have no entry.
var hwParents = map[string]string{
	"HW_ANY":    "AOM_IDENT",
	"EVENT_ANY": "AOM_IDENT",
	"CONN_ANY":  "AOM_IDENT",

	"HW_DEVICE":    "HW_ANY",
	"HW_DPSLAVE":   "HW_DEVICE",
	"HW_IO":        "HW_ANY",
	"HW_IOSYSTEM":  "HW_ANY",
	"HW_DPMASTER":  "HW_INTERFACE",
	"HW_MODULE":    "HW_IO",
	"HW_SUBMODULE": "HW_IO",
	"HW_INTERFACE": "HW_SUBMODULE",
	"HW_IEPORT":    "HW_SUBMODULE",
	"HW_HSC":       "HW_SUBMODULE",
	"HW_PWM":       "HW_SUBMODULE",

	"EVENT_ATT":   "EVENT_ANY",
	"EVENT_HWINT": "EVENT_ATT",

	"OB_ANY":       "EVENT_ANY",
	"OB_ATT":       "OB_ANY",
	"OB_CYCLIC":    "OB_ATT",
	"OB_DELAY":     "OB_ATT",
	"OB_TOD":       "OB_ATT",
	"OB_PCYCLE":    "OB_ANY",
	"OB_HWINT":     "OB_ATT",
	"OB_DIAG":      "OB_ANY",
	"OB_TIMEERROR": "OB_ANY",
	"OB_STARTUP":   "OB_ANY",

	"CONN_PRG":  "CONN_ANY",
	"CONN_OUC":  "CONN_ANY",
	"CONN_R_ID": "CONN_ANY",
}

// IsHWTypeName reports whether name is one of the fixed system types.
func IsHWTypeName(name string) bool {
	if _, ok := hwParents[name]; ok {
		return true
	}

	return name == "AOM_IDENT"
}

// Ancestors returns the inheritance chain of the named hardware type from the
// type itself up to its root.  The chain of an unknown name is just the name.
func Ancestors(name string) []string {
	chain := []string{name}
	for {
		parent, ok := hwParents[name]
		if !ok {
			return chain
		}

		chain = append(chain, parent)
		name = parent
	}
}

package meta

import "github.com/toanphambk/ts2scl/types"

// Built-in stateful instructions (IEC timers and counters) behave like
// pre-declared function blocks: their instances allocate data blocks and
// their calls bind named parameters.  RegisterBuiltins seeds the registry
// with their metadata so inferred instance types and calls resolve without a
// source declaration.

type builtinParam struct {
	name  string
	typ   types.Type
	scope Scope
}

var builtinInstructions = map[string][]builtinParam{
	"TON": {
		{"IN", types.PrimBool, ScopeIn},
		{"PT", types.PrimTime, ScopeIn},
		{"Q", types.PrimBool, ScopeOut},
		{"ET", types.PrimTime, ScopeOut},
	},
	"TOF": {
		{"IN", types.PrimBool, ScopeIn},
		{"PT", types.PrimTime, ScopeIn},
		{"Q", types.PrimBool, ScopeOut},
		{"ET", types.PrimTime, ScopeOut},
	},
	"TP": {
		{"IN", types.PrimBool, ScopeIn},
		{"PT", types.PrimTime, ScopeIn},
		{"Q", types.PrimBool, ScopeOut},
		{"ET", types.PrimTime, ScopeOut},
	},
	"CTU": {
		{"CU", types.PrimBool, ScopeIn},
		{"R", types.PrimBool, ScopeIn},
		{"PV", types.PrimInt, ScopeIn},
		{"Q", types.PrimBool, ScopeOut},
		{"CV", types.PrimInt, ScopeOut},
	},
	"CTD": {
		{"CD", types.PrimBool, ScopeIn},
		{"LD", types.PrimBool, ScopeIn},
		{"PV", types.PrimInt, ScopeIn},
		{"Q", types.PrimBool, ScopeOut},
		{"CV", types.PrimInt, ScopeOut},
	},
}

// RegisterBuiltins seeds reg with the metadata of the built-in timer and
// counter instructions.  Registration is first-writer-wins, so calling it
// more than once is harmless.
func RegisterBuiltins(reg *Registry) {
	for name, params := range builtinInstructions {
		reg.Register(&BlockMeta{
			Name:       name,
			Category:   FB,
			BodyMethod: "call",
			BlockOptions: BlockOptions{
				OptimizedAccess: true,
				Instruction:     name,
			},
		})

		props := make([]*PropMeta, len(params))
		for i, p := range params {
			props[i] = &PropMeta{
				Name:               p.name,
				Type:               p.typ,
				Scope:              p.scope,
				Index:              i,
				ExternalVisible:    true,
				ExternalWritable:   true,
				ExternalAccessible: true,
			}
		}

		reg.RegisterProps(PropOwnerKey(name, "call"), props)
	}
}

package codegen

import (
	"strings"
	"testing"

	"github.com/nalgeon/be"

	"github.com/toanphambk/ts2scl/ast"
	"github.com/toanphambk/ts2scl/meta"
	"github.com/toanphambk/ts2scl/types"
)

func prop(name string, typ types.Type, scope meta.Scope) *meta.PropMeta {
	return &meta.PropMeta{
		Name:               name,
		Type:               typ,
		Scope:              scope,
		ExternalVisible:    true,
		ExternalWritable:   true,
		ExternalAccessible: true,
	}
}

func defaultOptions() meta.BlockOptions {
	return meta.BlockOptions{
		OptimizedAccess: true,
		Version:         "0.1",
		WebVisible:      true,
		OPCVisible:      true,
	}
}

func TestGenerateSimpleFunction(t *testing.T) {
	reg := meta.NewRegistry()
	opts := defaultOptions()
	opts.ReturnType = types.PrimInt

	reg.Register(&meta.BlockMeta{Name: "SafeOut", Category: meta.FC, BodyMethod: "exec", BlockOptions: opts})
	reg.RegisterProps(meta.PropOwnerKey("SafeOut", "exec"), []*meta.PropMeta{
		prop("enable", types.PrimBool, meta.ScopeIn),
		prop("output", types.PrimInt, meta.ScopeOut),
	})

	method := &ast.MethodDecl{
		Name:       "exec",
		ReturnType: types.PrimInt,
		Body: &ast.Block{Stmts: []ast.Stmt{
			&ast.IfTree{CondBranches: []ast.CondBranch{{
				Condition: &ast.UnaryOp{Op: ast.OpNot, Operand: &ast.Identifier{Name: "enable"}},
				Body: &ast.Block{Stmts: []ast.Stmt{
					&ast.ExprStmt{Expr: &ast.BinaryOp{
						Op:  ast.OpAssign,
						Lhs: &ast.Identifier{Name: "output"},
						Rhs: &ast.Literal{Value: types.IntVal(0)},
					}},
					&ast.ReturnStmt{},
				}},
			}}},
		}},
	}

	class := &ast.ClassDecl{Name: "SafeOut", Methods: []*ast.MethodDecl{method}}

	art, records, err := NewGenerator(reg).Generate(class)
	be.Err(t, err, nil)
	be.True(t, records == nil)
	be.Equal(t, art.Category, meta.FC)
	be.Equal(t, art.Suffix, ".fc.scl")
	be.Equal(t, art.Text,
		"FUNCTION \"SafeOut\" : Int\n"+
			"{ S7_Optimized_Access := 'TRUE' }\n"+
			"VERSION : 0.1\n"+
			"    VAR_INPUT\n"+
			"        enable : Bool;\n"+
			"    END_VAR\n"+
			"    VAR_OUTPUT\n"+
			"        output : Int;\n"+
			"    END_VAR\n"+
			"    VAR_TEMP\n"+
			"    END_VAR\n"+
			"\n"+
			"BEGIN\n"+
			"    IF NOT #enable THEN\n"+
			"        #output := 0;\n"+
			"        #SafeOut := 0;\n"+
			"    END_IF;\n"+
			"END_FUNCTION\n")
}

func TestGenerateFunctionBlock(t *testing.T) {
	reg := meta.NewRegistry()
	meta.RegisterBuiltins(reg)

	runtime := prop("runtime", types.PrimInt, meta.ScopeStatic)
	runtime.Retain = true

	timer := prop("timer", &types.NamedType{Name: "TON"}, meta.ScopeStatic)
	timer.InstanceKind = meta.InstanceSingle

	reg.Register(&meta.BlockMeta{Name: "MotorCtl", Category: meta.FB, BodyMethod: "exec", BlockOptions: defaultOptions()})
	reg.RegisterProps("MotorCtl", []*meta.PropMeta{runtime, prop("errorCount", types.PrimInt, meta.ScopeStatic), timer})
	reg.RegisterProps(meta.PropOwnerKey("MotorCtl", "exec"), []*meta.PropMeta{
		prop("enable", types.PrimBool, meta.ScopeIn),
	})

	method := &ast.MethodDecl{
		Name: "exec",
		Body: &ast.Block{Stmts: []ast.Stmt{
			&ast.ExprStmt{Expr: &ast.Call{
				Callee: &ast.Dot{Root: &ast.SelfRef{}, Field: "timer"},
				Args: []ast.Expr{
					&ast.Identifier{Name: "enable"},
					&ast.Literal{Value: types.StrVal("5s")},
				},
			}},
		}},
	}

	class := &ast.ClassDecl{Name: "MotorCtl", Methods: []*ast.MethodDecl{method}}

	art, records, err := NewGenerator(reg).Generate(class)
	be.Err(t, err, nil)
	be.Equal(t, art.Suffix, ".fb.scl")

	// The retained static section precedes the plain one; the instance-typed
	// static declares its block type.
	be.Equal(t, art.Text,
		"FUNCTION_BLOCK \"MotorCtl\"\n"+
			"{ S7_Optimized_Access := 'TRUE' }\n"+
			"VERSION : 0.1\n"+
			"    VAR_INPUT\n"+
			"        enable : Bool;\n"+
			"    END_VAR\n"+
			"    VAR RETAIN\n"+
			"        runtime : Int;\n"+
			"    END_VAR\n"+
			"    VAR\n"+
			"        errorCount : Int;\n"+
			"        timer : \"TON\";\n"+
			"    END_VAR\n"+
			"    VAR_TEMP\n"+
			"    END_VAR\n"+
			"\n"+
			"BEGIN\n"+
			"    #timer(IN := #enable, PT := T#5s);\n"+
			"END_FUNCTION_BLOCK\n")

	be.Equal(t, len(records), 1)
	be.Equal(t, records[0].Name, "timer")
	be.Equal(t, records[0].Kind, meta.InstanceSingle)
	be.Equal(t, records[0].TypeName, "TON")
}

func TestGenerateDataBlock(t *testing.T) {
	reg := meta.NewRegistry()

	mode := prop("mode", types.PrimInt, meta.ScopeStatic)
	mode.InitValue = &types.Value{Kind: types.ValInt, Text: "1"}

	threshold := prop("threshold", types.PrimReal, meta.ScopeStatic)
	thresholdInit := types.RealVal("4.5")
	threshold.InitValue = &thresholdInit

	flag := prop("flag", types.PrimBool, meta.ScopeStatic)
	flagInit := types.BoolVal(false)
	flag.InitValue = &flagInit

	reg.Register(&meta.BlockMeta{Name: "Config", Category: meta.DB, BlockOptions: defaultOptions()})
	reg.RegisterProps("Config", []*meta.PropMeta{mode, threshold, flag})

	// The constructor's assignment overrides mode's literal initializer; the
	// default-valued flag initializer is elided.
	class := &ast.ClassDecl{
		Name: "Config",
		Ctor: &ast.CtorDecl{Body: &ast.Block{Stmts: []ast.Stmt{
			&ast.ExprStmt{Expr: &ast.BinaryOp{
				Op:  ast.OpAssign,
				Lhs: &ast.Dot{Root: &ast.SelfRef{}, Field: "mode"},
				Rhs: &ast.Literal{Value: types.IntVal(3)},
			}},
		}}},
	}

	art, _, err := NewGenerator(reg).Generate(class)
	be.Err(t, err, nil)
	be.Equal(t, art.Suffix, ".db")
	be.Equal(t, art.Text,
		"DATA_BLOCK \"Config\"\n"+
			"{ S7_Optimized_Access := 'TRUE' }\n"+
			"VERSION : 0.1\n"+
			"    VAR\n"+
			"        mode : Int;\n"+
			"        threshold : Real;\n"+
			"        flag : Bool;\n"+
			"    END_VAR\n"+
			"BEGIN\n"+
			"    threshold := 4.5;\n"+
			"    mode := 3;\n"+
			"END_DATA_BLOCK\n")
}

func TestGenerateUDT(t *testing.T) {
	reg := meta.NewRegistry()

	samples := prop("samples", types.PrimReal, meta.ScopeStatic)
	samples.Dims = []types.Dim{{Start: 0, End: 9}}

	reg.Register(&meta.BlockMeta{Name: "MotorConfig", Category: meta.UDT, BlockOptions: defaultOptions()})
	reg.RegisterProps("MotorConfig", []*meta.PropMeta{
		prop("speed", types.PrimInt, meta.ScopeStatic),
		samples,
	})

	class := &ast.ClassDecl{Name: "MotorConfig"}
	art, _, err := NewGenerator(reg).Generate(class)
	be.Err(t, err, nil)
	be.Equal(t, art.Suffix, ".udt")
	be.Equal(t, art.Text,
		"TYPE \"MotorConfig\"\n"+
			"VERSION : 0.1\n"+
			"    STRUCT\n"+
			"        speed : Int;\n"+
			"        samples : Array[0..9] of Real;\n"+
			"    END_STRUCT;\n"+
			"\n"+
			"END_TYPE\n")
}

func TestGenerateLoopCounterReuse(t *testing.T) {
	reg := meta.NewRegistry()
	reg.Register(&meta.BlockMeta{Name: "Scan", Category: meta.FB, BodyMethod: "exec", BlockOptions: defaultOptions()})
	reg.RegisterProps("Scan", []*meta.PropMeta{
		prop("i", types.PrimInt, meta.ScopeStatic),
		prop("total", types.PrimInt, meta.ScopeStatic),
	})
	reg.RegisterProps(meta.PropOwnerKey("Scan", "exec"), nil)

	forLoop := func(counter string, declares bool) *ast.ForLoop {
		return &ast.ForLoop{
			Counter:         counter,
			DeclaresCounter: declares,
			Init:            &ast.Literal{Value: types.IntVal(0)},
			Cond: &ast.BinaryOp{
				Op:  ast.OpLt,
				Lhs: &ast.Identifier{Name: counter},
				Rhs: &ast.Literal{Value: types.IntVal(10)},
			},
			Post: &ast.IncDecStmt{Target: &ast.Identifier{Name: counter}},
			Body: &ast.Block{Stmts: []ast.Stmt{
				&ast.ExprStmt{Expr: &ast.BinaryOp{
					Op:  ast.OpAddAssign,
					Lhs: &ast.Identifier{Name: "total"},
					Rhs: &ast.Literal{Value: types.IntVal(1)},
				}},
			}},
		}
	}

	method := &ast.MethodDecl{
		Name: "exec",
		Body: &ast.Block{Stmts: []ast.Stmt{
			forLoop("i", false),
			forLoop("j", true),
		}},
	}

	class := &ast.ClassDecl{Name: "Scan", Methods: []*ast.MethodDecl{method}}

	art, _, err := NewGenerator(reg).Generate(class)
	be.Err(t, err, nil)

	// A loop over the static `i` must not re-declare it as a temp; the
	// loop-declared `j` lands in VAR_TEMP only.
	be.Equal(t, strings.Count(art.Text, "i : Int;"), 1)
	be.True(t, contains(art.Text, "    VAR\n        i : Int;\n        total : Int;\n    END_VAR"))
	be.True(t, contains(art.Text, "    VAR_TEMP\n        j : Int;\n    END_VAR"))
}

func TestGenerateVisibilityOverlay(t *testing.T) {
	reg := meta.NewRegistry()

	limit := prop("limit", types.PrimInt, meta.ScopeStatic)
	limit.ExternalAccessible = false
	limit.ExternalWritable = false

	reg.Register(&meta.BlockMeta{Name: "Limits", Category: meta.DB, BlockOptions: defaultOptions()})
	reg.RegisterProps("Limits", []*meta.PropMeta{limit})

	art, _, err := NewGenerator(reg).Generate(&ast.ClassDecl{Name: "Limits"})
	be.Err(t, err, nil)
	be.True(t, contains(art.Text, "limit { ExternalAccessible := 'FALSE'; ExternalWritable := 'FALSE' } : Int;"))
}

func TestGenerateBlockMarkers(t *testing.T) {
	reg := meta.NewRegistry()

	opts := defaultOptions()
	opts.OptimizedAccess = false
	opts.WebVisible = false
	opts.ReadOnly = true
	opts.NonRetain = true

	reg.Register(&meta.BlockMeta{Name: "Raw", Category: meta.DB, BlockOptions: opts})

	art, _, err := NewGenerator(reg).Generate(&ast.ClassDecl{Name: "Raw"})
	be.Err(t, err, nil)
	be.True(t, contains(art.Text, "{ S7_Optimized_Access := 'FALSE'; DB_Visible_In_Webserver := 'FALSE' }\n"))
	be.True(t, contains(art.Text, "READ_ONLY\n"))
	be.True(t, contains(art.Text, "NON_RETAIN\n"))
}

func TestInstanceDB(t *testing.T) {
	reg := meta.NewRegistry()
	meta.RegisterBuiltins(reg)
	reg.Register(&meta.BlockMeta{Name: "MotorCtl", Category: meta.FB, BodyMethod: "exec", BlockOptions: defaultOptions()})

	gen := NewGenerator(reg)

	// A block-typed instance declares the quoted block type.
	art, err := gen.InstanceDB(&meta.InstanceRecord{
		Name:     "mainMotor",
		Kind:     meta.InstanceSingle,
		TypeName: "MotorCtl",
	}, defaultOptions())
	be.Err(t, err, nil)
	be.Equal(t, art.Suffix, ".instance.db")
	be.Equal(t, art.Text,
		"DATA_BLOCK \"mainMotor\"\n"+
			"{ S7_Optimized_Access := 'TRUE' }\n"+
			"VERSION : 0.1\n"+
			"\"MotorCtl\"\n"+
			"BEGIN\n"+
			"\n"+
			"END_DATA_BLOCK\n")

	// A built-in instruction instance declares the bare instruction name.
	art, err = gen.InstanceDB(&meta.InstanceRecord{
		Name:     "startupTimer",
		Kind:     meta.InstanceSingle,
		TypeName: "TON",
	}, defaultOptions())
	be.Err(t, err, nil)
	be.True(t, contains(art.Text, "\nTON\nBEGIN\n"))

	// An unresolvable instance type is fatal for the record.
	_, err = gen.InstanceDB(&meta.InstanceRecord{Name: "x", TypeName: "Missing"}, defaultOptions())
	be.True(t, err != nil)
}

func TestGenerateMetadataMiss(t *testing.T) {
	reg := meta.NewRegistry()

	_, _, err := NewGenerator(reg).Generate(&ast.ClassDecl{Name: "Unknown"})
	be.True(t, err != nil)
}

func contains(haystack, needle string) bool {
	return strings.Contains(haystack, needle)
}

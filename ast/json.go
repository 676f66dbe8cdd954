package ast

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/toanphambk/ts2scl/types"
)

// The external front end hands the compiler parsed, type-checked trees as
// kind-tagged JSON.  DecodeFile is the only entry point; everything below is
// the raw decoding layer.

// DecodeFile decodes one front-end tree document into a File.
func DecodeFile(data []byte) (*File, error) {
	var rf rawFile
	if err := json.Unmarshal(data, &rf); err != nil {
		return nil, err
	}

	file := &File{Path: rf.Path, Imports: rf.Imports}
	for _, rc := range rf.Classes {
		class, err := decodeClass(rc)
		if err != nil {
			return nil, fmt.Errorf("class %s: %w", rc.Name, err)
		}

		file.Classes = append(file.Classes, class)
	}

	return file, nil
}

type rawFile struct {
	Path    string     `json:"path"`
	Imports []string   `json:"imports"`
	Classes []rawClass `json:"classes"`
}

type rawClass struct {
	Name        string          `json:"name"`
	Annotations []rawAnnotation `json:"annotations"`
	Fields      []rawField      `json:"fields"`
	Methods     []rawMethod     `json:"methods"`
	Ctor        *rawMethod      `json:"ctor"`
}

type rawAnnotation struct {
	Name string            `json:"name"`
	Args []json.RawMessage `json:"args"`
}

type rawField struct {
	Name        string          `json:"name"`
	Type        string          `json:"type"`
	Annotations []rawAnnotation `json:"annotations"`
	Init        json.RawMessage `json:"init"`
}

type rawMethod struct {
	Name       string          `json:"name"`
	Params     []rawParam      `json:"params"`
	ReturnType string          `json:"returnType"`
	Body       json.RawMessage `json:"body"`
}

type rawParam struct {
	Name        string          `json:"name"`
	Type        string          `json:"type"`
	Annotations []rawAnnotation `json:"annotations"`
}

type rawNode struct {
	Kind string `json:"kind"`

	// Expression fields.
	Name    string            `json:"name"`
	Op      string            `json:"op"`
	Type    string            `json:"type"`
	Value   json.RawMessage   `json:"value"`
	Lhs     json.RawMessage   `json:"lhs"`
	Rhs     json.RawMessage   `json:"rhs"`
	Operand json.RawMessage   `json:"operand"`
	Root    json.RawMessage   `json:"root"`
	Field   string            `json:"field"`
	Indices []json.RawMessage `json:"indices"`
	Callee  json.RawMessage   `json:"callee"`
	Args    []json.RawMessage `json:"args"`
	Inner   json.RawMessage   `json:"inner"`
	Fields  []rawFieldInit    `json:"fields"`

	// Statement fields.
	Stmts     []json.RawMessage `json:"stmts"`
	Branches  []rawBranch       `json:"branches"`
	Else      json.RawMessage   `json:"else"`
	Counter   string            `json:"counter"`
	Declares  bool              `json:"declares"`
	Init      json.RawMessage   `json:"init"`
	Cond      json.RawMessage   `json:"cond"`
	Post      json.RawMessage   `json:"post"`
	Body      json.RawMessage   `json:"body"`
	Target    json.RawMessage   `json:"target"`
	Decrement bool              `json:"decrement"`
	Expr      json.RawMessage   `json:"expr"`
}

type rawFieldInit struct {
	Name string          `json:"name"`
	Init json.RawMessage `json:"init"`
}

type rawBranch struct {
	Cond json.RawMessage `json:"cond"`
	Body json.RawMessage `json:"body"`
}

// -----------------------------------------------------------------------------

func decodeClass(rc rawClass) (*ClassDecl, error) {
	class := &ClassDecl{Name: rc.Name}

	var err error
	if class.Annotations, err = decodeAnnotations(rc.Annotations); err != nil {
		return nil, err
	}

	for _, rfd := range rc.Fields {
		field := &FieldDecl{Name: rfd.Name}

		if field.DeclType, err = types.Parse(rfd.Type); err != nil {
			return nil, fmt.Errorf("field %s: %w", rfd.Name, err)
		}

		if field.Annotations, err = decodeAnnotations(rfd.Annotations); err != nil {
			return nil, fmt.Errorf("field %s: %w", rfd.Name, err)
		}

		if field.Init, err = decodeOptExpr(rfd.Init); err != nil {
			return nil, fmt.Errorf("field %s: %w", rfd.Name, err)
		}

		class.Fields = append(class.Fields, field)
	}

	for _, rm := range rc.Methods {
		method, err := decodeMethod(rm)
		if err != nil {
			return nil, fmt.Errorf("method %s: %w", rm.Name, err)
		}

		class.Methods = append(class.Methods, method)
	}

	if rc.Ctor != nil {
		body, err := decodeBlock(rc.Ctor.Body)
		if err != nil {
			return nil, fmt.Errorf("constructor: %w", err)
		}

		class.Ctor = &CtorDecl{Body: body}
	}

	return class, nil
}

func decodeMethod(rm rawMethod) (*MethodDecl, error) {
	method := &MethodDecl{Name: rm.Name}

	var err error
	if rm.ReturnType != "" && rm.ReturnType != "void" {
		if method.ReturnType, err = types.Parse(rm.ReturnType); err != nil {
			return nil, err
		}
	}

	for _, rp := range rm.Params {
		param := &ParamDecl{Name: rp.Name}

		if param.DeclType, err = types.Parse(rp.Type); err != nil {
			return nil, fmt.Errorf("param %s: %w", rp.Name, err)
		}

		if param.Annotations, err = decodeAnnotations(rp.Annotations); err != nil {
			return nil, fmt.Errorf("param %s: %w", rp.Name, err)
		}

		method.Params = append(method.Params, param)
	}

	if method.Body, err = decodeBlock(rm.Body); err != nil {
		return nil, err
	}

	return method, nil
}

func decodeAnnotations(raws []rawAnnotation) ([]Annotation, error) {
	var annots []Annotation
	for _, ra := range raws {
		annot := Annotation{Name: ra.Name}
		for _, arg := range ra.Args {
			val, err := decodeValue(arg)
			if err != nil {
				return nil, fmt.Errorf("annotation %s: %w", ra.Name, err)
			}

			annot.Args = append(annot.Args, val)
		}

		annots = append(annots, annot)
	}

	return annots, nil
}

// decodeValue decodes a plain JSON scalar or array into a constant value.
func decodeValue(data []byte) (types.Value, error) {
	var v interface{}
	dec := json.NewDecoder(strings.NewReader(string(data)))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return types.Value{}, err
	}

	return convertValue(v)
}

func convertValue(v interface{}) (types.Value, error) {
	switch x := v.(type) {
	case bool:
		return types.BoolVal(x), nil
	case string:
		return types.StrVal(x), nil
	case json.Number:
		text := x.String()
		if strings.ContainsAny(text, ".eE") {
			return types.RealVal(text), nil
		}

		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return types.Value{}, err
		}

		return types.IntVal(n), nil
	case []interface{}:
		var elems []types.Value
		for _, e := range x {
			elem, err := convertValue(e)
			if err != nil {
				return types.Value{}, err
			}

			elems = append(elems, elem)
		}

		return types.ArrayVal(elems...), nil
	}

	return types.Value{}, fmt.Errorf("unsupported constant value %v", v)
}

// -----------------------------------------------------------------------------

var opKinds = map[string]OpKind{
	"!":     OpNot,
	"neg":   OpNeg,
	"deref": OpDeref,
	"**":    OpExp,
	"*":     OpMul,
	"/":     OpDiv,
	"%":     OpMod,
	"+":     OpAdd,
	"-":     OpSub,
	"<":     OpLt,
	"<=":    OpLe,
	">":     OpGt,
	">=":    OpGe,
	"==":    OpEq,
	"!=":    OpNeq,
	"&&":    OpAnd,
	"^":     OpXor,
	"||":    OpOr,
	"=":     OpAssign,
	"+=":    OpAddAssign,
	"-=":    OpSubAssign,
	"*=":    OpMulAssign,
	"/=":    OpDivAssign,
}

func decodeOptExpr(data json.RawMessage) (Expr, error) {
	if len(data) == 0 || string(data) == "null" {
		return nil, nil
	}

	return decodeExpr(data)
}

func decodeExpr(data json.RawMessage) (Expr, error) {
	var rn rawNode
	if err := json.Unmarshal(data, &rn); err != nil {
		return nil, err
	}

	expr, err := decodeExprNode(&rn)
	if err != nil {
		return nil, err
	}

	if rn.Type != "" {
		typ, err := types.Parse(rn.Type)
		if err != nil {
			return nil, err
		}

		expr.SetType(typ)
	}

	return expr, nil
}

func decodeExprNode(rn *rawNode) (Expr, error) {
	switch rn.Kind {
	case "ident":
		return &Identifier{Name: rn.Name}, nil

	case "self":
		return &SelfRef{}, nil

	case "literal":
		val, err := decodeValue(rn.Value)
		if err != nil {
			return nil, err
		}

		return &Literal{Value: val}, nil

	case "unary":
		op, ok := opKinds[rn.Op]
		if !ok {
			return nil, fmt.Errorf("unknown operator `%s`", rn.Op)
		}

		operand, err := decodeExpr(rn.Operand)
		if err != nil {
			return nil, err
		}

		return &UnaryOp{Op: op, Operand: operand}, nil

	case "binary":
		op, ok := opKinds[rn.Op]
		if !ok {
			return nil, fmt.Errorf("unknown operator `%s`", rn.Op)
		}

		lhs, err := decodeExpr(rn.Lhs)
		if err != nil {
			return nil, err
		}

		rhs, err := decodeExpr(rn.Rhs)
		if err != nil {
			return nil, err
		}

		return &BinaryOp{Op: op, Lhs: lhs, Rhs: rhs}, nil

	case "dot":
		root, err := decodeExpr(rn.Root)
		if err != nil {
			return nil, err
		}

		return &Dot{Root: root, Field: rn.Field}, nil

	case "index":
		root, err := decodeExpr(rn.Root)
		if err != nil {
			return nil, err
		}

		var indices []Expr
		for _, ri := range rn.Indices {
			idx, err := decodeExpr(ri)
			if err != nil {
				return nil, err
			}

			indices = append(indices, idx)
		}

		return &Index{Root: root, Indices: indices}, nil

	case "call":
		callee, err := decodeExpr(rn.Callee)
		if err != nil {
			return nil, err
		}

		var args []Expr
		for _, ra := range rn.Args {
			arg, err := decodeExpr(ra)
			if err != nil {
				return nil, err
			}

			args = append(args, arg)
		}

		return &Call{Callee: callee, Args: args}, nil

	case "paren":
		inner, err := decodeExpr(rn.Inner)
		if err != nil {
			return nil, err
		}

		return &Paren{Inner: inner}, nil

	case "object":
		obj := &ObjectLit{}
		for _, rf := range rn.Fields {
			init, err := decodeExpr(rf.Init)
			if err != nil {
				return nil, err
			}

			obj.Fields = append(obj.Fields, FieldInit{Name: rf.Name, Init: init})
		}

		return obj, nil
	}

	return nil, fmt.Errorf("unknown expression kind `%s`", rn.Kind)
}

// -----------------------------------------------------------------------------

func decodeBlock(data json.RawMessage) (*Block, error) {
	if len(data) == 0 || string(data) == "null" {
		return &Block{}, nil
	}

	var rn rawNode
	if err := json.Unmarshal(data, &rn); err != nil {
		return nil, err
	}

	return decodeBlockNode(&rn)
}

func decodeBlockNode(rn *rawNode) (*Block, error) {
	block := &Block{}
	for _, rs := range rn.Stmts {
		stmt, err := decodeStmt(rs)
		if err != nil {
			return nil, err
		}

		block.Stmts = append(block.Stmts, stmt)
	}

	return block, nil
}

func decodeStmt(data json.RawMessage) (Stmt, error) {
	var rn rawNode
	if err := json.Unmarshal(data, &rn); err != nil {
		return nil, err
	}

	switch rn.Kind {
	case "block":
		return decodeBlockNode(&rn)

	case "if":
		tree := &IfTree{}
		for _, rb := range rn.Branches {
			cond, err := decodeExpr(rb.Cond)
			if err != nil {
				return nil, err
			}

			body, err := decodeBlock(rb.Body)
			if err != nil {
				return nil, err
			}

			tree.CondBranches = append(tree.CondBranches, CondBranch{Condition: cond, Body: body})
		}

		if len(rn.Else) > 0 && string(rn.Else) != "null" {
			elseBody, err := decodeBlock(rn.Else)
			if err != nil {
				return nil, err
			}

			tree.ElseBranch = elseBody
		}

		return tree, nil

	case "for":
		loop := &ForLoop{Counter: rn.Counter, DeclaresCounter: rn.Declares}

		var err error
		if loop.Init, err = decodeExpr(rn.Init); err != nil {
			return nil, err
		}

		if loop.Cond, err = decodeExpr(rn.Cond); err != nil {
			return nil, err
		}

		if len(rn.Post) > 0 && string(rn.Post) != "null" {
			if loop.Post, err = decodeStmt(rn.Post); err != nil {
				return nil, err
			}
		}

		if loop.Body, err = decodeBlock(rn.Body); err != nil {
			return nil, err
		}

		return loop, nil

	case "while":
		cond, err := decodeExpr(rn.Cond)
		if err != nil {
			return nil, err
		}

		body, err := decodeBlock(rn.Body)
		if err != nil {
			return nil, err
		}

		return &WhileLoop{Cond: cond, Body: body}, nil

	case "dowhile":
		cond, err := decodeExpr(rn.Cond)
		if err != nil {
			return nil, err
		}

		body, err := decodeBlock(rn.Body)
		if err != nil {
			return nil, err
		}

		return &DoWhileLoop{Body: body, Cond: cond}, nil

	case "incdec":
		target, err := decodeExpr(rn.Target)
		if err != nil {
			return nil, err
		}

		return &IncDecStmt{Target: target, Decrement: rn.Decrement}, nil

	case "break":
		return &BreakStmt{}, nil

	case "return":
		value, err := decodeOptExpr(rn.Value)
		if err != nil {
			return nil, err
		}

		return &ReturnStmt{Value: value}, nil

	case "expr":
		expr, err := decodeExpr(rn.Expr)
		if err != nil {
			return nil, err
		}

		return &ExprStmt{Expr: expr}, nil

	case "var":
		decl := &VarDecl{Name: rn.Name}

		var err error
		if decl.DeclType, err = types.Parse(rn.Type); err != nil {
			return nil, err
		}

		if decl.Init, err = decodeOptExpr(rn.Init); err != nil {
			return nil, err
		}

		return decl, nil
	}

	return nil, fmt.Errorf("unknown statement kind `%s`", rn.Kind)
}

package ast

import "github.com/toanphambk/ts2scl/types"

// Annotation is one declarative attribute applied to a declaration, with its
// literal arguments in source order.
type Annotation struct {
	Name string
	Args []types.Value
}

// File is one parsed, type-checked source file.
type File struct {
	// The path of the file, used as the visited-set key during collection.
	Path string

	// Paths of the file's locally-resolvable imports.
	Imports []string

	// The attributed class declarations of the file.
	Classes []*ClassDecl
}

// ClassDecl is an attributed class: one source declaration lowering to a
// single target block (UDT, DB, FC, or FB depending on its attributes).
type ClassDecl struct {
	Name        string
	Annotations []Annotation

	Fields  []*FieldDecl
	Methods []*MethodDecl

	// The optional constructor; its body assignments seed data block
	// initialization sections.
	Ctor *CtorDecl
}

// BodyMethod returns the method whose body becomes the block body: the single
// method the class declares.  Classes lowering to UDTs and DBs have none.
func (cd *ClassDecl) BodyMethod() *MethodDecl {
	if len(cd.Methods) == 0 {
		return nil
	}

	return cd.Methods[0]
}

// FieldDecl is an attributed class field: a block-level static, temp, or data
// member.
type FieldDecl struct {
	Name        string
	DeclType    types.Type
	Annotations []Annotation

	// The optional literal initializer.
	Init Expr
}

// MethodDecl is a class method.  For FC/FB classes the single method supplies
// the block body and its parameters supply the input/output sections.
type MethodDecl struct {
	Name        string
	Params      []*ParamDecl
	ReturnType  types.Type
	Body        *Block
}

// ParamDecl is an attributed method parameter.
type ParamDecl struct {
	Name        string
	DeclType    types.Type
	Annotations []Annotation
}

// CtorDecl is a class constructor.
type CtorDecl struct {
	Body *Block
}

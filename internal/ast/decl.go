package ast

// Unit is one resolved compilation unit.
type Unit struct {
	Name string

	// PartOf is set when the unit is a library part. Metadata attached to
	// the directive is not evaluable and is skipped by target discovery.
	PartOf *PartOfDirective

	// Decls holds the top-level declarations in source order:
	// *VarDecl, *FuncDecl, *ClassDecl.
	Decls []Decl
}

// Decl is a declaration node.
type Decl interface {
	declNode()
	Position() Pos
}

// PartOfDirective marks a unit as part of a named library.
type PartOfDirective struct {
	Pos      Pos
	Library  string
	Metadata []*Annotation
}

// Annotation is a metadata attachment, evaluated as an implicit constant
// object construction (or a reference to a constant variable).
type Annotation struct {
	Pos  Pos
	Name string

	// Ctor is the bound constructor for @Name(...) forms.
	Ctor *CtorBinding
	Args []Arg

	// Var is the bound variable for bare @name forms. Exactly one of
	// Ctor and Var is set on a well-resolved annotation.
	Var *VarBinding
}

// VarDecl is a top-level or local variable declaration.
type VarDecl struct {
	Pos      Pos
	Name     string
	Metadata []*Annotation
	IsConst  bool
	IsFinal  bool
	Init     Expr

	// Binding is the resolved element for this declaration; references to
	// the variable elsewhere in the unit share this pointer.
	Binding *VarBinding
}

func (*VarDecl) declNode()       {}
func (d *VarDecl) Position() Pos { return d.Pos }

// FuncDecl is a function declaration. Only the pieces that matter to
// constant analysis are modeled: metadata, parameters, and a body that
// may declare local constants.
type FuncDecl struct {
	Pos      Pos
	Name     string
	Metadata []*Annotation
	Params   []*ParamDecl
	Body     []Stmt
}

func (*FuncDecl) declNode()       {}
func (d *FuncDecl) Position() Pos { return d.Pos }

// ClassDecl is a class declaration.
type ClassDecl struct {
	Pos      Pos
	Name     string
	Metadata []*Annotation
	Fields   []*FieldDecl
	Ctors    []*CtorDecl

	// Classes holds nested class declarations. Constancy flags scope to
	// the declaring class only; nested classes compute their own.
	Classes []*ClassDecl
}

func (*ClassDecl) declNode()       {}
func (d *ClassDecl) Position() Pos { return d.Pos }

// HasConstCtor reports whether any constructor of the class carries the
// const marker.
func (d *ClassDecl) HasConstCtor() bool {
	for _, ct := range d.Ctors {
		if ct.IsConst {
			return true
		}
	}
	return false
}

// FieldDecl is an instance or static field declaration.
type FieldDecl struct {
	Pos      Pos
	Name     string
	Metadata []*Annotation
	IsConst  bool
	IsFinal  bool
	IsStatic bool
	Init     Expr

	Binding *VarBinding
}

func (*FieldDecl) declNode()       {}
func (d *FieldDecl) Position() Pos { return d.Pos }

// CtorDecl is a constructor declaration.
type CtorDecl struct {
	Pos      Pos
	Name     string // empty for the unnamed constructor
	Metadata []*Annotation
	IsConst  bool
	Params   []*ParamDecl

	// Inits is the initializer list: field initializers plus at most one
	// redirecting or super invocation.
	Inits []CtorInit

	Binding *CtorBinding

	// Class is the declaring class, set by the Resolver.
	Class *ClassDecl
}

func (*CtorDecl) declNode()       {}
func (d *CtorDecl) Position() Pos { return d.Pos }

// QualifiedName renders Class.name or Class() for the unnamed form.
func (d *CtorDecl) QualifiedName() string {
	class := ""
	if d.Class != nil {
		class = d.Class.Name
	}
	if d.Name == "" {
		return class + "()"
	}
	return class + "." + d.Name
}

// ParamDecl is a formal parameter. A parameter with the const marker
// requires its default value, if any, to be a compile-time constant.
type ParamDecl struct {
	Pos      Pos
	Name     string
	Metadata []*Annotation
	IsConst  bool
	Default  Expr

	Binding *VarBinding
}

func (*ParamDecl) declNode()       {}
func (d *ParamDecl) Position() Pos { return d.Pos }

// CtorInit is an entry in a constructor initializer list.
type CtorInit interface {
	ctorInitNode()
}

// FieldInit initializes a field in a constructor initializer list.
type FieldInit struct {
	Field *VarBinding
	Value Expr
}

func (*FieldInit) ctorInitNode() {}

// RedirectInit is a redirecting constructor invocation. These appear only
// inside constant-constructor initializer lists and are unconditionally
// part of the value being built.
type RedirectInit struct {
	Pos    Pos
	Target *CtorBinding
	Args   []Arg
}

func (*RedirectInit) ctorInitNode() {}

// SuperInit is a super constructor invocation.
type SuperInit struct {
	Pos    Pos
	Target *CtorBinding
	Args   []Arg
}

func (*SuperInit) ctorInitNode() {}

// Stmt is a statement inside a function body. Only the forms that can
// introduce or carry constant-requiring positions are modeled.
type Stmt interface {
	stmtNode()
}

// DeclStmt declares a local variable.
type DeclStmt struct {
	Var *VarDecl
}

func (*DeclStmt) stmtNode() {}

// ExprStmt evaluates an expression for effect.
type ExprStmt struct {
	X Expr
}

func (*ExprStmt) stmtNode() {}

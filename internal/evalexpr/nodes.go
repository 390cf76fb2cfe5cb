package evalexpr

import "github.com/lumen-lang/lumen/internal/ast"

// Expr is a mutable evaluation-side expression node.
type Expr interface {
	evalNode()
	Position() ast.Pos

	// SetValue attaches a provisional constant value to the node.
	SetValue(v any)
	// Value returns the attached value and whether one has been set.
	Value() (any, bool)
}

// valueSlot is the per-node annotation storage shared by all node types.
type valueSlot struct {
	val any
	set bool
}

func (s *valueSlot) SetValue(v any) {
	s.val = v
	s.set = true
}

func (s *valueSlot) Value() (any, bool) {
	return s.val, s.set
}

// BasicLit mirrors ast.BasicLit.
type BasicLit struct {
	valueSlot
	Pos     ast.Pos
	Kind    ast.LitKind
	Literal string
}

func (*BasicLit) evalNode()       {}
func (e *BasicLit) Position() ast.Pos { return e.Pos }

// Ident mirrors ast.Ident. Binding is the same resolver-attached element
// as on the source node.
type Ident struct {
	valueSlot
	Pos     ast.Pos
	Name    string
	Binding ast.Binding
}

func (*Ident) evalNode()       {}
func (e *Ident) Position() ast.Pos { return e.Pos }

// Unary mirrors ast.Unary.
type Unary struct {
	valueSlot
	Pos ast.Pos
	Op  string
	X   Expr
}

func (*Unary) evalNode()       {}
func (e *Unary) Position() ast.Pos { return e.Pos }

// Binary mirrors ast.Binary.
type Binary struct {
	valueSlot
	Pos ast.Pos
	Op  string
	X   Expr
	Y   Expr
}

func (*Binary) evalNode()       {}
func (e *Binary) Position() ast.Pos { return e.Pos }

// Conditional mirrors ast.Conditional.
type Conditional struct {
	valueSlot
	Pos  ast.Pos
	Cond Expr
	Then Expr
	Else Expr
}

func (*Conditional) evalNode()       {}
func (e *Conditional) Position() ast.Pos { return e.Pos }

// Arg mirrors ast.Arg.
type Arg struct {
	Label string
	Value Expr
}

// Construct mirrors ast.Construct, keeping the selected constructor so the
// evaluator knows which declaration the construction actually binds to.
type Construct struct {
	valueSlot
	Pos     ast.Pos
	Type    *ast.TypeRef
	Ctor    *ast.CtorBinding
	IsConst bool
	Args    []Arg
}

func (*Construct) evalNode()       {}
func (e *Construct) Position() ast.Pos { return e.Pos }

// ListLit mirrors ast.ListLit, keeping the declared element type for
// type-argument inference.
type ListLit struct {
	valueSlot
	Pos     ast.Pos
	IsConst bool
	TypeArg *ast.TypeRef
	Elems   []Expr
}

func (*ListLit) evalNode()       {}
func (e *ListLit) Position() ast.Pos { return e.Pos }

// SetLit mirrors ast.SetLit.
type SetLit struct {
	valueSlot
	Pos     ast.Pos
	IsConst bool
	TypeArg *ast.TypeRef
	Elems   []Expr
}

func (*SetLit) evalNode()       {}
func (e *SetLit) Position() ast.Pos { return e.Pos }

// MapLit mirrors ast.MapLit.
type MapLit struct {
	valueSlot
	Pos       ast.Pos
	IsConst   bool
	KeyType   *ast.TypeRef
	ValueType *ast.TypeRef
	Entries   []MapEntry
}

func (*MapLit) evalNode()       {}
func (e *MapLit) Position() ast.Pos { return e.Pos }

// MapEntry is one key/value pair of a cloned map literal.
type MapEntry struct {
	Key   Expr
	Value Expr
}

// SwitchExpr mirrors ast.SwitchExpr.
type SwitchExpr struct {
	valueSlot
	Pos     ast.Pos
	Subject Expr
	Cases   []SwitchCase
}

func (*SwitchExpr) evalNode()       {}
func (e *SwitchExpr) Position() ast.Pos { return e.Pos }

// SwitchCase is one arm of a cloned switch expression.
type SwitchCase struct {
	Label  Expr
	Result Expr
}

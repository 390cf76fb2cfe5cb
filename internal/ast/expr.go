package ast

// Expr is an expression node.
type Expr interface {
	exprNode()
	Position() Pos
}

// LitKind distinguishes basic literal forms.
type LitKind int

const (
	IntLit LitKind = iota
	StringLit
	BoolLit
	NullLit
)

// BasicLit is an integer, string, boolean, or null literal. Value holds
// the source text; the evaluator interprets it.
type BasicLit struct {
	Pos   Pos
	Kind  LitKind
	Value string
}

func (*BasicLit) exprNode()       {}
func (e *BasicLit) Position() Pos { return e.Pos }

// Ident is a simple or prefixed name. Binding is *VarBinding,
// *AccessorBinding, or nil when resolution failed upstream.
type Ident struct {
	Pos     Pos
	Name    string
	Binding Binding
}

func (*Ident) exprNode()       {}
func (e *Ident) Position() Pos { return e.Pos }

// Unary applies a prefix operator.
type Unary struct {
	Pos Pos
	Op  string
	X   Expr
}

func (*Unary) exprNode()       {}
func (e *Unary) Position() Pos { return e.Pos }

// Binary applies an infix operator.
type Binary struct {
	Pos Pos
	Op  string
	X   Expr
	Y   Expr
}

func (*Binary) exprNode()       {}
func (e *Binary) Position() Pos { return e.Pos }

// Conditional is cond ? then : else.
type Conditional struct {
	Pos  Pos
	Cond Expr
	Then Expr
	Else Expr
}

func (*Conditional) exprNode()       {}
func (e *Conditional) Position() Pos { return e.Pos }

// Arg is a positional or named argument. Label is the parameter name for
// named arguments and empty for positional ones; the label denotes a name,
// not a value reference.
type Arg struct {
	Label string
	Value Expr
}

// Construct is an object construction expression. IsConst reflects the
// call-site marker (explicit const keyword or an enclosing const context,
// as computed by the Resolver).
type Construct struct {
	Pos     Pos
	Type    *TypeRef
	Ctor    *CtorBinding
	IsConst bool
	Args    []Arg
}

func (*Construct) exprNode()       {}
func (e *Construct) Position() Pos { return e.Pos }

// ListLit is a list literal.
type ListLit struct {
	Pos     Pos
	IsConst bool
	TypeArg *TypeRef
	Elems   []Expr
}

func (*ListLit) exprNode()       {}
func (e *ListLit) Position() Pos { return e.Pos }

// SetLit is a set literal. Element values are computed at evaluation time
// even for non-const sets, to check uniqueness.
type SetLit struct {
	Pos     Pos
	IsConst bool
	TypeArg *TypeRef
	Elems   []Expr
}

func (*SetLit) exprNode()       {}
func (e *SetLit) Position() Pos { return e.Pos }

// MapLit is a map literal. Key values are computed at evaluation time even
// for non-const maps, to check key uniqueness.
type MapLit struct {
	Pos       Pos
	IsConst   bool
	KeyType   *TypeRef
	ValueType *TypeRef
	Entries   []MapEntry
}

func (*MapLit) exprNode()       {}
func (e *MapLit) Position() Pos { return e.Pos }

// MapEntry is one key/value pair of a map literal.
type MapEntry struct {
	Key   Expr
	Value Expr
}

// SwitchExpr is a switch expression. Case labels must be constant-comparable
// regardless of any surrounding constant context.
type SwitchExpr struct {
	Pos     Pos
	Subject Expr
	Cases   []SwitchCase
}

func (*SwitchExpr) exprNode()       {}
func (e *SwitchExpr) Position() Pos { return e.Pos }

// SwitchCase is one arm of a switch expression. A nil Label is the
// default arm.
type SwitchCase struct {
	Label  Expr
	Result Expr
}

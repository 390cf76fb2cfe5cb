package ast

// Binding is the resolved declaration behind a reference. The Resolver
// attaches bindings; a nil binding on an Ident means resolution failed
// upstream and the reference contributes nothing here.
type Binding interface {
	bindingNode()
}

// VarBinding is the resolved element for a variable-like declaration:
// a top-level variable, a local, an instance or static field, or a
// formal parameter.
type VarBinding struct {
	Name string

	IsConst  bool
	IsFinal  bool
	IsStatic bool

	// Class is the declaring class for fields, nil otherwise.
	Class *ClassDecl

	// Type is the declared static type, when the declaration carried one.
	Type *TypeRef
}

func (*VarBinding) bindingNode() {}

// AccessorBinding is the resolved element for a property accessor. A simple
// name that resolves to an accessor is always dereferenced to the variable
// the accessor wraps before any constancy decision is made.
type AccessorBinding struct {
	Name     string
	Variable *VarBinding
}

func (*AccessorBinding) bindingNode() {}

// CtorBinding is the resolved element for a constructor. Construction
// expressions, redirecting and super invocations, and metadata annotations
// all point at one of these.
type CtorBinding struct {
	// Name is the constructor's own name; empty for the unnamed constructor.
	Name    string
	IsConst bool

	// Decl is the declaring node, nil when the constructor lives outside
	// the unit under analysis.
	Decl *CtorDecl
}

func (*CtorBinding) bindingNode() {}

// QualifiedName renders Class.name or Class() for the unnamed form.
func (b *CtorBinding) QualifiedName() string {
	class := ""
	if b.Decl != nil && b.Decl.Class != nil {
		class = b.Decl.Class.Name
	}
	if b.Name == "" {
		return class + "()"
	}
	return class + "." + b.Name
}

// TypeRef is a resolved static type annotation. The evaluator relies on
// these for type-argument inference, so clones must carry them forward.
type TypeRef struct {
	Name string
	Args []*TypeRef
}

// String renders the type with its arguments, e.g. List<int>.
func (t *TypeRef) String() string {
	if t == nil {
		return "dynamic"
	}
	if len(t.Args) == 0 {
		return t.Name
	}
	s := t.Name + "<"
	for i, a := range t.Args {
		if i > 0 {
			s += ", "
		}
		s += a.String()
	}
	return s + ">"
}

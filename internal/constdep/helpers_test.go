package constdep

import (
	"github.com/lumen-lang/lumen/internal/ast"
)

// Test fixture builders. The resolver is external to this package, so the
// tests wire bindings by hand the way a resolved tree would carry them.

func newUnit(name string, decls ...ast.Decl) *ast.Unit {
	return &ast.Unit{Name: name, Decls: decls}
}

func constVar(name string, init ast.Expr) *ast.VarDecl {
	d := &ast.VarDecl{Name: name, IsConst: true, Init: init}
	d.Binding = &ast.VarBinding{Name: name, IsConst: true}
	return d
}

func plainVar(name string, init ast.Expr) *ast.VarDecl {
	d := &ast.VarDecl{Name: name, Init: init}
	d.Binding = &ast.VarBinding{Name: name}
	return d
}

func ref(d *ast.VarDecl) *ast.Ident {
	return &ast.Ident{Name: d.Name, Binding: d.Binding}
}

func intLit(text string) *ast.BasicLit {
	return &ast.BasicLit{Kind: ast.IntLit, Value: text}
}

func newField(name string, isConst, isFinal, isStatic bool, init ast.Expr) *ast.FieldDecl {
	d := &ast.FieldDecl{Name: name, IsConst: isConst, IsFinal: isFinal, IsStatic: isStatic, Init: init}
	d.Binding = &ast.VarBinding{Name: name, IsConst: isConst, IsFinal: isFinal, IsStatic: isStatic}
	return d
}

func newCtor(name string, isConst bool, params ...*ast.ParamDecl) *ast.CtorDecl {
	d := &ast.CtorDecl{Name: name, IsConst: isConst, Params: params}
	d.Binding = &ast.CtorBinding{Name: name, IsConst: isConst, Decl: d}
	return d
}

func newParam(name string, isConst bool, def ast.Expr) *ast.ParamDecl {
	d := &ast.ParamDecl{Name: name, IsConst: isConst, Default: def}
	d.Binding = &ast.VarBinding{Name: name}
	return d
}

// newClass assembles a class and wires the declaring-class back-references
// the resolver would have set.
func newClass(name string, fields []*ast.FieldDecl, ctors []*ast.CtorDecl) *ast.ClassDecl {
	c := &ast.ClassDecl{Name: name, Fields: fields, Ctors: ctors}
	for _, f := range fields {
		f.Binding.Class = c
	}
	for _, ct := range ctors {
		ct.Class = c
	}
	return c
}

func construct(ct *ast.CtorDecl, isConst bool, args ...ast.Arg) *ast.Construct {
	return &ast.Construct{Ctor: ct.Binding, IsConst: isConst, Args: args}
}

// names maps targets to their display names, in the order given.
func names(targets []Target) []string {
	out := make([]string, len(targets))
	for i, t := range targets {
		out[i] = t.DisplayName()
	}
	return out
}

// depsOf discovers the unit and returns the display names of the given
// target's dependencies.
func depsOf(unit *ast.Unit, display string) ([]string, error) {
	set, err := Discover(unit)
	if err != nil {
		return nil, err
	}
	for _, t := range set.Targets() {
		if t.DisplayName() != display {
			continue
		}
		plan := computeDependencies(t, set)
		out := make([]string, len(plan.deps))
		for i, d := range plan.deps {
			out[i] = set.At(d).DisplayName()
		}
		return out, nil
	}
	return nil, nil
}

package constdep

import (
	"fmt"

	"github.com/lumen-lang/lumen/internal/ast"
)

// Discover walks one resolved compilation unit and returns the complete,
// deduplicated set of constant-requiring positions. The walk never mutates
// the tree; its only product is the target set.
//
// A structural inconsistency (an unbound annotation outside a part-of
// context, a const declaration with no binding) aborts the unit with an
// InconsistencyError.
func Discover(unit *ast.Unit) (*TargetSet, error) {
	d := &discoverer{set: newTargetSet()}

	// Metadata on a part-of directive is not evaluable. Skipped, not
	// treated as an unbound-annotation inconsistency.

	for _, decl := range unit.Decls {
		if err := d.decl(decl); err != nil {
			return nil, err
		}
	}
	return d.set, nil
}

type discoverer struct {
	set *TargetSet
}

func (d *discoverer) decl(decl ast.Decl) error {
	switch decl := decl.(type) {
	case *ast.VarDecl:
		return d.variable(decl)
	case *ast.FuncDecl:
		return d.function(decl)
	case *ast.ClassDecl:
		return d.class(decl)
	default:
		return &InconsistencyError{
			Code:    ErrUnboundDecl,
			Message: fmt.Sprintf("unexpected declaration node %T", decl),
			Pos:     decl.Position(),
		}
	}
}

func (d *discoverer) variable(decl *ast.VarDecl) error {
	if err := d.annotations(decl.Metadata); err != nil {
		return err
	}
	if !decl.IsConst {
		return nil
	}
	if decl.Binding == nil {
		return &InconsistencyError{
			Code:    ErrUnboundDecl,
			Message: fmt.Sprintf("const variable %q has no resolved binding", decl.Name),
			Pos:     decl.Pos,
		}
	}
	d.set.add(newVariableTarget(decl.Binding, decl.Init, decl.Pos))
	return nil
}

func (d *discoverer) function(decl *ast.FuncDecl) error {
	if err := d.annotations(decl.Metadata); err != nil {
		return err
	}
	for _, p := range decl.Params {
		if err := d.annotations(p.Metadata); err != nil {
			return err
		}
	}
	for _, stmt := range decl.Body {
		if ds, ok := stmt.(*ast.DeclStmt); ok {
			if err := d.variable(ds.Var); err != nil {
				return err
			}
		}
	}
	return nil
}

func (d *discoverer) class(decl *ast.ClassDecl) error {
	if err := d.annotations(decl.Metadata); err != nil {
		return err
	}

	// A class with any constant constructor treats its final instance
	// fields as implicit constants: constant constructors may read those
	// initializers transitively. The flag is scoped to this class body;
	// nested classes recompute their own below.
	treatFinalAsConst := decl.HasConstCtor()

	for _, f := range decl.Fields {
		if err := d.field(f, treatFinalAsConst); err != nil {
			return err
		}
	}
	for _, ct := range decl.Ctors {
		if err := d.ctor(ct); err != nil {
			return err
		}
	}
	for _, nested := range decl.Classes {
		if err := d.class(nested); err != nil {
			return err
		}
	}
	return nil
}

func (d *discoverer) field(f *ast.FieldDecl, treatFinalAsConst bool) error {
	if err := d.annotations(f.Metadata); err != nil {
		return err
	}

	implicit := treatFinalAsConst && f.IsFinal && !f.IsStatic && f.Init != nil
	if !f.IsConst && !implicit {
		return nil
	}
	if f.Binding == nil {
		return &InconsistencyError{
			Code:    ErrUnboundDecl,
			Message: fmt.Sprintf("field %q has no resolved binding", f.Name),
			Pos:     f.Pos,
		}
	}
	d.set.add(newVariableTarget(f.Binding, f.Init, f.Pos))
	return nil
}

func (d *discoverer) ctor(ct *ast.CtorDecl) error {
	if err := d.annotations(ct.Metadata); err != nil {
		return err
	}

	if ct.IsConst {
		if ct.Binding == nil {
			return &InconsistencyError{
				Code:    ErrUnboundDecl,
				Message: fmt.Sprintf("const constructor %q has no resolved binding", ct.QualifiedName()),
				Pos:     ct.Pos,
			}
		}
		d.set.add(&ConstructorTarget{Ctor: ct})
	}

	for _, p := range ct.Params {
		if err := d.annotations(p.Metadata); err != nil {
			return err
		}
		if p.IsConst && p.Default != nil {
			d.set.add(&DefaultValueTarget{Param: p, Owner: ct})
		}
	}
	return nil
}

func (d *discoverer) annotations(meta []*ast.Annotation) error {
	for _, ann := range meta {
		if ann.Ctor == nil && ann.Var == nil {
			return &InconsistencyError{
				Code:    ErrUnboundAnnotation,
				Message: fmt.Sprintf("annotation @%s has no resolved target", ann.Name),
				Pos:     ann.Pos,
			}
		}
		d.set.add(&AnnotationTarget{Ann: ann})
	}
	return nil
}

package constdep

import (
	"github.com/lumen-lang/lumen/internal/ast"
	"github.com/lumen-lang/lumen/internal/evalexpr"
)

// targetPlan is the driver's output for one target: the discovery indices
// of the targets it depends on, and the cloned expression(s) the external
// Evaluator will fold once those dependencies have values.
type targetPlan struct {
	deps  []int
	exprs []evalexpr.Expr
}

// computeDependencies runs the per-target driver. Cloning happens here,
// at the point a node leaves the shared resolved tree, so the Evaluator
// only ever sees independently mutable copies.
func computeDependencies(t Target, set *TargetSet) targetPlan {
	f := newReferenceFinder(set)
	var exprs []evalexpr.Expr

	switch t := t.(type) {
	case *VariableTarget:
		f.expr(t.Init, false)
		if t.Init != nil {
			exprs = append(exprs, evalexpr.Clone(t.Init))
		}

	case *DefaultValueTarget:
		f.expr(t.Param.Default, false)
		if t.Param.Default != nil {
			exprs = append(exprs, evalexpr.Clone(t.Param.Default))
		}

	case *AnnotationTarget:
		exprs = append(exprs, annotationExpr(t.Ann, f))

	case *ConstructorTarget:
		exprs = ctorExprs(t.Ctor, f)

		// Default-value sub-targets precede the constructor itself.
		for _, p := range t.Ctor.Params {
			f.record(p)
		}

		// Evaluating a constant construction reads the class's final
		// field initializers, so the constructor depends on every
		// instance-field target of its class.
		if t.Ctor.Class != nil {
			for _, fld := range t.Ctor.Class.Fields {
				if !fld.IsStatic && fld.Binding != nil {
					f.record(fld.Binding)
				}
			}
		}
	}

	return targetPlan{deps: f.indices(), exprs: exprs}
}

// annotationExpr records an annotation's dependencies and synthesizes the
// implicit constant construction handed to the Evaluator.
func annotationExpr(ann *ast.Annotation, f *referenceFinder) evalexpr.Expr {
	if ann.Var != nil {
		f.record(ann.Var)
		return &evalexpr.Ident{Pos: ann.Pos, Name: ann.Name, Binding: ann.Var}
	}

	if ann.Ctor != nil && ann.Ctor.Decl != nil {
		f.record(ann.Ctor.Decl)
	}
	args := make([]evalexpr.Arg, len(ann.Args))
	for i, a := range ann.Args {
		// Annotation arguments sit in an implicitly constant context.
		f.expr(a.Value, true)
		args[i] = evalexpr.Arg{Label: a.Label, Value: evalexpr.Clone(a.Value)}
	}
	return &evalexpr.Construct{
		Pos:     ann.Pos,
		Ctor:    ann.Ctor,
		IsConst: true,
		Args:    args,
	}
}

// ctorExprs walks a constant constructor's initializer list. Redirecting
// and super invocations contribute a dependency on their resolved target
// unconditionally; they only occur inside constant-constructor initializer
// lists and are part of the value being built.
func ctorExprs(ct *ast.CtorDecl, f *referenceFinder) []evalexpr.Expr {
	var exprs []evalexpr.Expr

	cloneArgs := func(args []ast.Arg) {
		for _, a := range args {
			f.expr(a.Value, true)
			exprs = append(exprs, evalexpr.Clone(a.Value))
		}
	}

	for _, init := range ct.Inits {
		switch init := init.(type) {
		case *ast.FieldInit:
			f.expr(init.Value, true)
			exprs = append(exprs, evalexpr.Clone(init.Value))
		case *ast.RedirectInit:
			if init.Target != nil && init.Target.Decl != nil {
				f.record(init.Target.Decl)
			}
			cloneArgs(init.Args)
		case *ast.SuperInit:
			if init.Target != nil && init.Target.Decl != nil {
				f.record(init.Target.Decl)
			}
			cloneArgs(init.Args)
		}
	}
	return exprs
}

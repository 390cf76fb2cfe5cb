package constdep

import (
	"sort"

	"github.com/lumen-lang/lumen/internal/ast"
)

// referenceFinder walks a single constant-valued expression and records the
// discovery indices of every target the expression reads. It never mutates
// the tree and never evaluates anything; unresolved bindings simply
// contribute nothing (diagnosing them is the Resolver's job).
type referenceFinder struct {
	set   *TargetSet
	found map[int]struct{}
}

func newReferenceFinder(set *TargetSet) *referenceFinder {
	return &referenceFinder{set: set, found: make(map[int]struct{})}
}

// indices returns the recorded dependency indices in ascending discovery
// order. Multiplicity has already collapsed through the set.
func (f *referenceFinder) indices() []int {
	out := make([]int, 0, len(f.found))
	for i := range f.found {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// record adds a dependency when the referenced declaration is itself a
// discovered target. Membership in the target set is exactly "constant,
// explicitly or implicitly", so no separate constancy check is needed.
func (f *referenceFinder) record(key any) {
	if i, ok := f.set.lookup(key); ok {
		f.found[i] = struct{}{}
	}
}

// expr walks one expression. forceConst marks positions that are constant
// regardless of explicit marking: switch case labels, annotation arguments,
// and constant-constructor initializer lists.
func (f *referenceFinder) expr(e ast.Expr, forceConst bool) {
	switch e := e.(type) {
	case nil:
		return

	case *ast.BasicLit:
		return

	case *ast.Ident:
		b := e.Binding
		// A name resolving to a property accessor stands for the
		// variable behind it.
		if acc, ok := b.(*ast.AccessorBinding); ok {
			if acc.Variable == nil {
				return
			}
			b = acc.Variable
		}
		if vb, ok := b.(*ast.VarBinding); ok {
			f.record(vb)
		}

	case *ast.Unary:
		f.expr(e.X, forceConst)

	case *ast.Binary:
		f.expr(e.X, forceConst)
		f.expr(e.Y, forceConst)

	case *ast.Conditional:
		f.expr(e.Cond, forceConst)
		f.expr(e.Then, forceConst)
		f.expr(e.Else, forceConst)

	case *ast.Construct:
		// Constant at the call site: the whole expression depends on the
		// resolved constructor. Otherwise the construction is only a
		// transparent container. Either way the arguments may hide
		// further constant reads; their labels name parameters, not
		// values, and are never treated as references.
		if (e.IsConst || forceConst) && e.Ctor != nil && e.Ctor.Decl != nil {
			f.record(e.Ctor.Decl)
		}
		for _, a := range e.Args {
			f.expr(a.Value, forceConst)
		}

	case *ast.ListLit:
		// Elements of a non-const list are not computed until the list
		// itself is, so there is nothing to order ahead of it.
		if !e.IsConst && !forceConst {
			return
		}
		for _, el := range e.Elems {
			f.expr(el, forceConst)
		}

	case *ast.SetLit:
		// Element values are computed even for a non-const set, to check
		// uniqueness, so their dependencies count regardless of marking.
		for _, el := range e.Elems {
			f.expr(el, forceConst)
		}

	case *ast.MapLit:
		// Keys are computed even for a non-const map, to check key
		// uniqueness. Values only when the literal is constant.
		for _, ent := range e.Entries {
			f.expr(ent.Key, forceConst)
			if e.IsConst || forceConst {
				f.expr(ent.Value, forceConst)
			}
		}

	case *ast.SwitchExpr:
		f.expr(e.Subject, forceConst)
		for _, c := range e.Cases {
			// Labels must be constant-comparable independent of any
			// surrounding marking.
			if c.Label != nil {
				f.expr(c.Label, true)
			}
			f.expr(c.Result, forceConst)
		}
	}
}

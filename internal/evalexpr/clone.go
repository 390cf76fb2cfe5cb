package evalexpr

import (
	"fmt"

	"github.com/lumen-lang/lumen/internal/ast"
)

// Clone copies a resolved expression subtree into the evaluation model.
// Structural nodes are freshly allocated, so mutating the copy (including
// attaching values) is never observable through the source tree or through
// any other copy of it. Bindings and static types are carried over as-is;
// they are resolver facts, not evaluation state.
//
// A nil source clones to nil. An unknown node kind panics: the ast and
// evalexpr models must cover the same expression forms, and a gap between
// them is a programming error, not an input condition.
func Clone(e ast.Expr) Expr {
	switch e := e.(type) {
	case nil:
		return nil
	case *ast.BasicLit:
		return &BasicLit{Pos: e.Pos, Kind: e.Kind, Literal: e.Value}
	case *ast.Ident:
		return &Ident{Pos: e.Pos, Name: e.Name, Binding: e.Binding}
	case *ast.Unary:
		return &Unary{Pos: e.Pos, Op: e.Op, X: Clone(e.X)}
	case *ast.Binary:
		return &Binary{Pos: e.Pos, Op: e.Op, X: Clone(e.X), Y: Clone(e.Y)}
	case *ast.Conditional:
		return &Conditional{
			Pos:  e.Pos,
			Cond: Clone(e.Cond),
			Then: Clone(e.Then),
			Else: Clone(e.Else),
		}
	case *ast.Construct:
		return &Construct{
			Pos:     e.Pos,
			Type:    e.Type,
			Ctor:    e.Ctor,
			IsConst: e.IsConst,
			Args:    cloneArgs(e.Args),
		}
	case *ast.ListLit:
		return &ListLit{
			Pos:     e.Pos,
			IsConst: e.IsConst,
			TypeArg: e.TypeArg,
			Elems:   cloneExprs(e.Elems),
		}
	case *ast.SetLit:
		return &SetLit{
			Pos:     e.Pos,
			IsConst: e.IsConst,
			TypeArg: e.TypeArg,
			Elems:   cloneExprs(e.Elems),
		}
	case *ast.MapLit:
		entries := make([]MapEntry, len(e.Entries))
		for i, ent := range e.Entries {
			entries[i] = MapEntry{Key: Clone(ent.Key), Value: Clone(ent.Value)}
		}
		return &MapLit{
			Pos:       e.Pos,
			IsConst:   e.IsConst,
			KeyType:   e.KeyType,
			ValueType: e.ValueType,
			Entries:   entries,
		}
	case *ast.SwitchExpr:
		cases := make([]SwitchCase, len(e.Cases))
		for i, c := range e.Cases {
			cases[i] = SwitchCase{Label: Clone(c.Label), Result: Clone(c.Result)}
		}
		return &SwitchExpr{Pos: e.Pos, Subject: Clone(e.Subject), Cases: cases}
	default:
		panic(fmt.Sprintf("evalexpr: unknown expression node %T", e))
	}
}

func cloneExprs(src []ast.Expr) []Expr {
	if src == nil {
		return nil
	}
	out := make([]Expr, len(src))
	for i, e := range src {
		out[i] = Clone(e)
	}
	return out
}

func cloneArgs(src []ast.Arg) []Arg {
	if src == nil {
		return nil
	}
	out := make([]Arg, len(src))
	for i, a := range src {
		out[i] = Arg{Label: a.Label, Value: Clone(a.Value)}
	}
	return out
}

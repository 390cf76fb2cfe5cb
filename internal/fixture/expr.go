package fixture

import (
	"fmt"

	"cuelang.org/go/cue"

	"github.com/lumen-lang/lumen/internal/ast"
)

// expr builds one expression from its CUE encoding. Runs in the second
// pass, so name references resolve against the full unit.
func (b *binder) expr(v cue.Value) (ast.Expr, error) {
	kind, ok, err := stringAt(v, "kind")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, badExpr(v, "expression needs a kind")
	}
	pos := posOf(v)

	switch kind {
	case "int", "string", "bool", "null":
		return b.literal(v, kind, pos)

	case "ref":
		name, ok, err := stringAt(v, "name")
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, badExpr(v, "ref needs a name")
		}
		// An unknown name stays unbound: that is how fixtures model an
		// upstream resolution failure.
		binding := b.vars[name]
		accessor, err := boolAt(v, "accessor")
		if err != nil {
			return nil, err
		}
		if accessor {
			return &ast.Ident{Pos: pos, Name: name, Binding: &ast.AccessorBinding{Name: name, Variable: binding}}, nil
		}
		if binding == nil {
			return &ast.Ident{Pos: pos, Name: name}, nil
		}
		return &ast.Ident{Pos: pos, Name: name, Binding: binding}, nil

	case "unary":
		op, _, err := stringAt(v, "op")
		if err != nil {
			return nil, err
		}
		x, err := b.exprAt(v, "x")
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Pos: pos, Op: op, X: x}, nil

	case "binary":
		op, _, err := stringAt(v, "op")
		if err != nil {
			return nil, err
		}
		x, err := b.exprAt(v, "x")
		if err != nil {
			return nil, err
		}
		y, err := b.exprAt(v, "y")
		if err != nil {
			return nil, err
		}
		return &ast.Binary{Pos: pos, Op: op, X: x, Y: y}, nil

	case "cond":
		cond, err := b.exprAt(v, "cond")
		if err != nil {
			return nil, err
		}
		then, err := b.exprAt(v, "then")
		if err != nil {
			return nil, err
		}
		els, err := b.exprAt(v, "else")
		if err != nil {
			return nil, err
		}
		return &ast.Conditional{Pos: pos, Cond: cond, Then: then, Else: els}, nil

	case "construct":
		ctorRef, ok, err := stringAt(v, "ctor")
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, badExpr(v, "construct needs a ctor")
		}
		isConst, err := boolAt(v, "const")
		if err != nil {
			return nil, err
		}
		args, err := b.args(v.LookupPath(cue.ParsePath("args")))
		if err != nil {
			return nil, err
		}
		return &ast.Construct{Pos: pos, Ctor: b.ctors[ctorRef], IsConst: isConst, Args: args}, nil

	case "list", "set":
		isConst, err := boolAt(v, "const")
		if err != nil {
			return nil, err
		}
		elems, err := b.exprList(v.LookupPath(cue.ParsePath("elems")))
		if err != nil {
			return nil, err
		}
		if kind == "list" {
			return &ast.ListLit{Pos: pos, IsConst: isConst, Elems: elems}, nil
		}
		return &ast.SetLit{Pos: pos, IsConst: isConst, Elems: elems}, nil

	case "map":
		isConst, err := boolAt(v, "const")
		if err != nil {
			return nil, err
		}
		m := &ast.MapLit{Pos: pos, IsConst: isConst}
		entriesVal := v.LookupPath(cue.ParsePath("entries"))
		if entriesVal.Exists() {
			iter, err := entriesVal.List()
			if err != nil {
				return nil, badExpr(entriesVal, "entries must be a list: %v", err)
			}
			for iter.Next() {
				ev := iter.Value()
				key, err := b.exprAt(ev, "key")
				if err != nil {
					return nil, err
				}
				value, err := b.exprAt(ev, "value")
				if err != nil {
					return nil, err
				}
				m.Entries = append(m.Entries, ast.MapEntry{Key: key, Value: value})
			}
		}
		return m, nil

	case "switch":
		subject, err := b.exprAt(v, "subject")
		if err != nil {
			return nil, err
		}
		sw := &ast.SwitchExpr{Pos: pos, Subject: subject}
		casesVal := v.LookupPath(cue.ParsePath("cases"))
		if casesVal.Exists() {
			iter, err := casesVal.List()
			if err != nil {
				return nil, badExpr(casesVal, "cases must be a list: %v", err)
			}
			for iter.Next() {
				cv := iter.Value()
				var label ast.Expr
				if lv := cv.LookupPath(cue.ParsePath("label")); lv.Exists() {
					label, err = b.expr(lv)
					if err != nil {
						return nil, err
					}
				}
				result, err := b.exprAt(cv, "result")
				if err != nil {
					return nil, err
				}
				sw.Cases = append(sw.Cases, ast.SwitchCase{Label: label, Result: result})
			}
		}
		return sw, nil

	default:
		return nil, badExpr(v, "unknown expression kind %q", kind)
	}
}

func (b *binder) literal(v cue.Value, kind string, pos ast.Pos) (ast.Expr, error) {
	switch kind {
	case "int":
		iv := v.LookupPath(cue.ParsePath("value"))
		n, err := iv.Int64()
		if err != nil {
			return nil, badExpr(v, "int value: %v", err)
		}
		return &ast.BasicLit{Pos: pos, Kind: ast.IntLit, Value: fmt.Sprintf("%d", n)}, nil
	case "string":
		s, _, err := stringAt(v, "value")
		if err != nil {
			return nil, err
		}
		return &ast.BasicLit{Pos: pos, Kind: ast.StringLit, Value: s}, nil
	case "bool":
		bv, err := boolAt(v, "value")
		if err != nil {
			return nil, err
		}
		text := "false"
		if bv {
			text = "true"
		}
		return &ast.BasicLit{Pos: pos, Kind: ast.BoolLit, Value: text}, nil
	default: // null
		return &ast.BasicLit{Pos: pos, Kind: ast.NullLit, Value: "null"}, nil
	}
}

func (b *binder) exprAt(v cue.Value, field string) (ast.Expr, error) {
	fv := v.LookupPath(cue.ParsePath(field))
	if !fv.Exists() {
		return nil, badExpr(v, "missing %s expression", field)
	}
	return b.expr(fv)
}

func (b *binder) exprList(v cue.Value) ([]ast.Expr, error) {
	if !v.Exists() {
		return nil, nil
	}
	iter, err := v.List()
	if err != nil {
		return nil, badExpr(v, "expected a list: %v", err)
	}
	var out []ast.Expr
	for iter.Next() {
		e, err := b.expr(iter.Value())
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func (b *binder) args(v cue.Value) ([]ast.Arg, error) {
	if !v.Exists() {
		return nil, nil
	}
	iter, err := v.List()
	if err != nil {
		return nil, badExpr(v, "args must be a list: %v", err)
	}
	var out []ast.Arg
	for iter.Next() {
		av := iter.Value()
		label, _, err := stringAt(av, "label")
		if err != nil {
			return nil, err
		}
		value, err := b.exprAt(av, "value")
		if err != nil {
			return nil, err
		}
		out = append(out, ast.Arg{Label: label, Value: value})
	}
	return out, nil
}

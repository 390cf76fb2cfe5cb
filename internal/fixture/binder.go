package fixture

import (
	"cuelang.org/go/cue"

	"github.com/lumen-lang/lumen/internal/ast"
)

// binder builds declarations on the first pass, registering every name,
// and defers expression construction so references bind regardless of
// declaration order.
type binder struct {
	vars    map[string]*ast.VarBinding
	ctors   map[string]*ast.CtorBinding
	pending []func() error
}

func newBinder() *binder {
	return &binder{
		vars:  make(map[string]*ast.VarBinding),
		ctors: make(map[string]*ast.CtorBinding),
	}
}

func (b *binder) later(fill func() error) {
	b.pending = append(b.pending, fill)
}

func (b *binder) decl(v cue.Value) (ast.Decl, error) {
	kind, ok, err := stringAt(v, "kind")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, badUnit(v, "declaration needs a kind")
	}
	switch kind {
	case "var":
		return b.varDecl(v)
	case "func":
		return b.funcDecl(v)
	case "class":
		return b.classDecl(v)
	default:
		return nil, badUnit(v, "unknown declaration kind %q", kind)
	}
}

func (b *binder) varDecl(v cue.Value) (*ast.VarDecl, error) {
	name, ok, err := stringAt(v, "name")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, badUnit(v, "var needs a name")
	}
	isConst, err := boolAt(v, "const")
	if err != nil {
		return nil, err
	}
	isFinal, err := boolAt(v, "final")
	if err != nil {
		return nil, err
	}

	d := &ast.VarDecl{Name: name, IsConst: isConst, IsFinal: isFinal, Pos: posOf(v)}
	d.Binding = &ast.VarBinding{Name: name, IsConst: isConst, IsFinal: isFinal}
	b.vars[name] = d.Binding

	b.bindMeta(v, &d.Metadata)
	if initVal := v.LookupPath(cue.ParsePath("init")); initVal.Exists() {
		b.later(func() error {
			var err error
			d.Init, err = b.expr(initVal)
			return err
		})
	}
	return d, nil
}

func (b *binder) funcDecl(v cue.Value) (*ast.FuncDecl, error) {
	name, ok, err := stringAt(v, "name")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, badUnit(v, "func needs a name")
	}
	d := &ast.FuncDecl{Name: name, Pos: posOf(v)}
	b.bindMeta(v, &d.Metadata)

	localsVal := v.LookupPath(cue.ParsePath("locals"))
	if localsVal.Exists() {
		iter, err := localsVal.List()
		if err != nil {
			return nil, badUnit(localsVal, "locals must be a list: %v", err)
		}
		for iter.Next() {
			local, err := b.varDecl(iter.Value())
			if err != nil {
				return nil, err
			}
			d.Body = append(d.Body, &ast.DeclStmt{Var: local})
		}
	}
	return d, nil
}

func (b *binder) classDecl(v cue.Value) (*ast.ClassDecl, error) {
	name, ok, err := stringAt(v, "name")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, badUnit(v, "class needs a name")
	}
	c := &ast.ClassDecl{Name: name, Pos: posOf(v)}
	b.bindMeta(v, &c.Metadata)

	fieldsVal := v.LookupPath(cue.ParsePath("fields"))
	if fieldsVal.Exists() {
		iter, err := fieldsVal.List()
		if err != nil {
			return nil, badUnit(fieldsVal, "fields must be a list: %v", err)
		}
		for iter.Next() {
			f, err := b.fieldDecl(iter.Value(), c)
			if err != nil {
				return nil, err
			}
			c.Fields = append(c.Fields, f)
		}
	}

	ctorsVal := v.LookupPath(cue.ParsePath("ctors"))
	if ctorsVal.Exists() {
		iter, err := ctorsVal.List()
		if err != nil {
			return nil, badUnit(ctorsVal, "ctors must be a list: %v", err)
		}
		for iter.Next() {
			ct, err := b.ctorDecl(iter.Value(), c)
			if err != nil {
				return nil, err
			}
			c.Ctors = append(c.Ctors, ct)
		}
	}

	nestedVal := v.LookupPath(cue.ParsePath("classes"))
	if nestedVal.Exists() {
		iter, err := nestedVal.List()
		if err != nil {
			return nil, badUnit(nestedVal, "classes must be a list: %v", err)
		}
		for iter.Next() {
			nested, err := b.classDecl(iter.Value())
			if err != nil {
				return nil, err
			}
			c.Classes = append(c.Classes, nested)
		}
	}
	return c, nil
}

func (b *binder) fieldDecl(v cue.Value, class *ast.ClassDecl) (*ast.FieldDecl, error) {
	name, ok, err := stringAt(v, "name")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, badUnit(v, "field needs a name")
	}
	isConst, err := boolAt(v, "const")
	if err != nil {
		return nil, err
	}
	isFinal, err := boolAt(v, "final")
	if err != nil {
		return nil, err
	}
	isStatic, err := boolAt(v, "static")
	if err != nil {
		return nil, err
	}

	f := &ast.FieldDecl{Name: name, IsConst: isConst, IsFinal: isFinal, IsStatic: isStatic, Pos: posOf(v)}
	f.Binding = &ast.VarBinding{Name: name, IsConst: isConst, IsFinal: isFinal, IsStatic: isStatic, Class: class}
	b.vars[class.Name+"."+name] = f.Binding

	b.bindMeta(v, &f.Metadata)
	if initVal := v.LookupPath(cue.ParsePath("init")); initVal.Exists() {
		b.later(func() error {
			var err error
			f.Init, err = b.expr(initVal)
			return err
		})
	}
	return f, nil
}

func (b *binder) ctorDecl(v cue.Value, class *ast.ClassDecl) (*ast.CtorDecl, error) {
	name, _, err := stringAt(v, "name") // empty name = unnamed constructor
	if err != nil {
		return nil, err
	}
	isConst, err := boolAt(v, "const")
	if err != nil {
		return nil, err
	}

	ct := &ast.CtorDecl{Name: name, IsConst: isConst, Class: class, Pos: posOf(v)}
	ct.Binding = &ast.CtorBinding{Name: name, IsConst: isConst, Decl: ct}
	key := class.Name
	if name != "" {
		key = class.Name + "." + name
	}
	b.ctors[key] = ct.Binding

	b.bindMeta(v, &ct.Metadata)

	paramsVal := v.LookupPath(cue.ParsePath("params"))
	if paramsVal.Exists() {
		iter, err := paramsVal.List()
		if err != nil {
			return nil, badUnit(paramsVal, "params must be a list: %v", err)
		}
		for iter.Next() {
			p, err := b.paramDecl(iter.Value())
			if err != nil {
				return nil, err
			}
			ct.Params = append(ct.Params, p)
		}
	}

	initsVal := v.LookupPath(cue.ParsePath("inits"))
	if initsVal.Exists() {
		iter, err := initsVal.List()
		if err != nil {
			return nil, badUnit(initsVal, "inits must be a list: %v", err)
		}
		for iter.Next() {
			iv := iter.Value()
			init, err := b.ctorInit(iv)
			if err != nil {
				return nil, err
			}
			ct.Inits = append(ct.Inits, init)
		}
	}
	return ct, nil
}

func (b *binder) paramDecl(v cue.Value) (*ast.ParamDecl, error) {
	name, ok, err := stringAt(v, "name")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, badUnit(v, "param needs a name")
	}
	isConst, err := boolAt(v, "const")
	if err != nil {
		return nil, err
	}

	p := &ast.ParamDecl{Name: name, IsConst: isConst, Pos: posOf(v)}
	p.Binding = &ast.VarBinding{Name: name}

	b.bindMeta(v, &p.Metadata)
	if defVal := v.LookupPath(cue.ParsePath("default")); defVal.Exists() {
		b.later(func() error {
			var err error
			p.Default, err = b.expr(defVal)
			return err
		})
	}
	return p, nil
}

// ctorInit builds one initializer-list entry. Targets of redirecting and
// super invocations bind in the second pass like every other reference.
func (b *binder) ctorInit(v cue.Value) (ast.CtorInit, error) {
	kind, ok, err := stringAt(v, "kind")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, badUnit(v, "initializer needs a kind")
	}
	switch kind {
	case "field":
		field, ok, err := stringAt(v, "field")
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, badUnit(v, "field initializer needs a field")
		}
		init := &ast.FieldInit{}
		valueVal := v.LookupPath(cue.ParsePath("value"))
		b.later(func() error {
			init.Field = b.vars[field]
			if valueVal.Exists() {
				var err error
				init.Value, err = b.expr(valueVal)
				return err
			}
			return nil
		})
		return init, nil

	case "redirect", "super":
		target, ok, err := stringAt(v, "target")
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, badUnit(v, "%s initializer needs a target", kind)
		}
		pos := posOf(v)
		argsVal := v.LookupPath(cue.ParsePath("args"))
		if kind == "redirect" {
			init := &ast.RedirectInit{Pos: pos}
			b.later(func() error {
				init.Target = b.ctors[target]
				var err error
				init.Args, err = b.args(argsVal)
				return err
			})
			return init, nil
		}
		init := &ast.SuperInit{Pos: pos}
		b.later(func() error {
			init.Target = b.ctors[target]
			var err error
			init.Args, err = b.args(argsVal)
			return err
		})
		return init, nil

	default:
		return nil, badUnit(v, "unknown initializer kind %q", kind)
	}
}

// bindMeta attaches the declaration's annotations, binding them in the
// second pass.
func (b *binder) bindMeta(v cue.Value, out *[]*ast.Annotation) {
	metaVal := v.LookupPath(cue.ParsePath("meta"))
	if !metaVal.Exists() {
		return
	}
	b.later(func() error {
		iter, err := metaVal.List()
		if err != nil {
			return badUnit(metaVal, "meta must be a list: %v", err)
		}
		for iter.Next() {
			av := iter.Value()
			name, ok, err := stringAt(av, "name")
			if err != nil {
				return err
			}
			if !ok {
				return badUnit(av, "annotation needs a name")
			}
			ann := &ast.Annotation{Name: name, Pos: posOf(av)}
			if ctorRef, ok, err := stringAt(av, "ctor"); err != nil {
				return err
			} else if ok {
				ann.Ctor = b.ctors[ctorRef]
			}
			if varRef, ok, err := stringAt(av, "var"); err != nil {
				return err
			} else if ok {
				ann.Var = b.vars[varRef]
			}
			ann.Args, err = b.args(av.LookupPath(cue.ParsePath("args")))
			if err != nil {
				return err
			}
			*out = append(*out, ann)
		}
		return nil
	})
}

package evalexpr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumen-lang/lumen/internal/ast"
)

func resolvedTree() (*ast.Construct, *ast.VarBinding, *ast.CtorBinding) {
	vb := &ast.VarBinding{Name: "a", IsConst: true}
	cb := &ast.CtorBinding{Name: "", IsConst: true}
	expr := &ast.Construct{
		Ctor:    cb,
		IsConst: true,
		Type:    &ast.TypeRef{Name: "C"},
		Args: []ast.Arg{
			{Label: "size", Value: &ast.Ident{Name: "a", Binding: vb}},
			{Value: &ast.ListLit{
				IsConst: true,
				TypeArg: &ast.TypeRef{Name: "int"},
				Elems:   []ast.Expr{&ast.BasicLit{Kind: ast.IntLit, Value: "1"}},
			}},
		},
	}
	return expr, vb, cb
}

func TestCloneCarriesBindingsAndTypes(t *testing.T) {
	src, vb, cb := resolvedTree()

	clone, ok := Clone(src).(*Construct)
	require.True(t, ok)

	assert.Same(t, cb, clone.Ctor, "selected constructor carried over")
	assert.True(t, clone.IsConst)
	assert.Equal(t, "C", clone.Type.Name)

	id, ok := clone.Args[0].Value.(*Ident)
	require.True(t, ok)
	assert.Equal(t, "size", clone.Args[0].Label)
	assert.Same(t, vb, id.Binding, "variable binding carried over")

	list, ok := clone.Args[1].Value.(*ListLit)
	require.True(t, ok)
	assert.Equal(t, "int", list.TypeArg.Name, "type argument kept for inference")
}

func TestCloneSharesNoStructuralNodes(t *testing.T) {
	src, _, _ := resolvedTree()

	first := Clone(src).(*Construct)
	second := Clone(src).(*Construct)
	require.NotSame(t, first, second)

	// Annotate the first copy top to bottom.
	first.SetValue("instance of C")
	first.Args[0].Value.SetValue(3)

	// Neither the second copy nor any node of it saw the values.
	_, set := second.Value()
	assert.False(t, set)
	_, set = second.Args[0].Value.Value()
	assert.False(t, set)

	// The source tree has no value slots at all, so there is nothing the
	// annotation could have leaked into; the structural assertion is that
	// the copies do not alias.
	assert.NotSame(t, first.Args[0].Value, second.Args[0].Value)
	assert.NotSame(t, first.Args[1].Value, second.Args[1].Value)
}

func TestCloneNilExpression(t *testing.T) {
	assert.Nil(t, Clone(nil))
}

func TestCloneSwitchAndMap(t *testing.T) {
	vb := &ast.VarBinding{Name: "k", IsConst: true}
	src := &ast.SwitchExpr{
		Subject: &ast.Ident{Name: "k", Binding: vb},
		Cases: []ast.SwitchCase{
			{
				Label: &ast.BasicLit{Kind: ast.IntLit, Value: "1"},
				Result: &ast.MapLit{
					IsConst: true,
					Entries: []ast.MapEntry{{
						Key:   &ast.BasicLit{Kind: ast.StringLit, Value: "one"},
						Value: &ast.BasicLit{Kind: ast.IntLit, Value: "1"},
					}},
				},
			},
			{Result: &ast.BasicLit{Kind: ast.NullLit, Value: "null"}},
		},
	}

	clone, ok := Clone(src).(*SwitchExpr)
	require.True(t, ok)
	require.Len(t, clone.Cases, 2)
	assert.Nil(t, clone.Cases[1].Label, "default arm stays label-free")

	m, ok := clone.Cases[0].Result.(*MapLit)
	require.True(t, ok)
	require.Len(t, m.Entries, 1)

	m.Entries[0].Key.SetValue("one")
	srcKey := src.Cases[0].Result.(*ast.MapLit).Entries[0].Key.(*ast.BasicLit)
	assert.Equal(t, "one", srcKey.Value, "source literal text untouched by annotation")
}

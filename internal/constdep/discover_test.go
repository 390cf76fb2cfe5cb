package constdep

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumen-lang/lumen/internal/ast"
)

func TestDiscoverTopLevelConst(t *testing.T) {
	unit := newUnit("u",
		constVar("a", intLit("1")),
		plainVar("b", intLit("2")),
	)

	set, err := Discover(unit)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, names(set.Targets()), "only the const variable is a target")
}

func TestDiscoverLocalConst(t *testing.T) {
	local := constVar("inner", intLit("3"))
	fn := &ast.FuncDecl{
		Name: "f",
		Body: []ast.Stmt{&ast.DeclStmt{Var: local}},
	}

	set, err := Discover(newUnit("u", fn))
	require.NoError(t, err)
	assert.Equal(t, []string{"inner"}, names(set.Targets()))
}

func TestDiscoverFinalFieldsOfConstClass(t *testing.T) {
	class := newClass("Point",
		[]*ast.FieldDecl{
			newField("x", false, true, false, intLit("0")),  // final instance, implicit
			newField("y", false, true, true, intLit("0")),   // static: excluded
			newField("z", false, false, false, intLit("0")), // not final: excluded
			newField("w", false, true, false, nil),          // no initializer: excluded
		},
		[]*ast.CtorDecl{newCtor("", true)},
	)

	set, err := Discover(newUnit("u", class))
	require.NoError(t, err)
	assert.Equal(t, []string{"Point.x", "Point()"}, names(set.Targets()))
}

func TestDiscoverFlagDoesNotLeakToSiblings(t *testing.T) {
	withConst := newClass("A",
		[]*ast.FieldDecl{newField("x", false, true, false, intLit("1"))},
		[]*ast.CtorDecl{newCtor("", true)},
	)
	withoutConst := newClass("B",
		[]*ast.FieldDecl{newField("x", false, true, false, intLit("1"))},
		nil,
	)

	set, err := Discover(newUnit("u", withConst, withoutConst))
	require.NoError(t, err)
	assert.Equal(t, []string{"A.x", "A()"}, names(set.Targets()),
		"B has no const constructor, so B.x must not become a target")
}

func TestDiscoverFlagDoesNotLeakIntoNestedClass(t *testing.T) {
	nested := newClass("Inner",
		[]*ast.FieldDecl{newField("n", false, true, false, intLit("1"))},
		nil,
	)
	outer := newClass("Outer",
		[]*ast.FieldDecl{newField("o", false, true, false, intLit("1"))},
		[]*ast.CtorDecl{newCtor("", true)},
	)
	outer.Classes = []*ast.ClassDecl{nested}

	set, err := Discover(newUnit("u", outer))
	require.NoError(t, err)
	assert.Equal(t, []string{"Outer.o", "Outer()"}, names(set.Targets()),
		"Inner computes its own flag and has no const constructor")
}

func TestDiscoverConstructorAndDefaults(t *testing.T) {
	ct := newCtor("named", true,
		newParam("p", true, intLit("1")),
		newParam("q", true, nil),   // no default: not a target
		newParam("r", false, intLit("2")), // no const marker: not a target
	)
	class := newClass("C", nil, []*ast.CtorDecl{ct})

	set, err := Discover(newUnit("u", class))
	require.NoError(t, err)
	assert.Equal(t, []string{"C.named", "C.named default p"}, names(set.Targets()))
}

func TestDiscoverAnnotations(t *testing.T) {
	ct := newCtor("", true)
	class := newClass("Tag", nil, []*ast.CtorDecl{ct})

	v := constVar("a", intLit("1"))
	v.Metadata = []*ast.Annotation{{Name: "Tag", Ctor: ct.Binding}}

	set, err := Discover(newUnit("u", class, v))
	require.NoError(t, err)
	assert.Equal(t, []string{"Tag()", "@Tag", "a"}, names(set.Targets()))
}

func TestDiscoverSkipsPartOfMetadata(t *testing.T) {
	unit := newUnit("u", constVar("a", intLit("1")))
	unit.PartOf = &ast.PartOfDirective{
		Library: "lib",
		// Unresolvable on purpose: part-of metadata is non-evaluable and
		// must be skipped, not reported.
		Metadata: []*ast.Annotation{{Name: "ghost"}},
	}

	set, err := Discover(unit)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, names(set.Targets()))
}

func TestDiscoverUnboundAnnotationFailsLoudly(t *testing.T) {
	v := constVar("a", intLit("1"))
	v.Metadata = []*ast.Annotation{{Name: "ghost"}}

	_, err := Discover(newUnit("u", v))
	require.Error(t, err)

	var inc *InconsistencyError
	require.ErrorAs(t, err, &inc)
	assert.Equal(t, ErrUnboundAnnotation, inc.Code)
}

func TestDiscoverUnboundConstVarFailsLoudly(t *testing.T) {
	d := &ast.VarDecl{Name: "a", IsConst: true, Init: intLit("1")}

	_, err := Discover(newUnit("u", d))
	require.Error(t, err)

	var inc *InconsistencyError
	require.ErrorAs(t, err, &inc)
	assert.Equal(t, ErrUnboundDecl, inc.Code)
}

func TestDiscoverPreservesOrderAndDedupes(t *testing.T) {
	a := constVar("a", intLit("1"))
	b := constVar("b", ref(a))

	set, err := Discover(newUnit("u", a, b))
	require.NoError(t, err)
	require.Equal(t, 2, set.Len())
	assert.Equal(t, []string{"a", "b"}, names(set.Targets()))

	// Same identity added twice collapses.
	set.add(newVariableTarget(a.Binding, a.Init, a.Pos))
	assert.Equal(t, 2, set.Len())
}

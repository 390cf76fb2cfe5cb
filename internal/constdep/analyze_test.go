package constdep

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumen-lang/lumen/internal/ast"
	"github.com/lumen-lang/lumen/internal/evalexpr"
)

// recordingEvaluator is a stand-in for the external constant folder.
type recordingEvaluator struct {
	seen []string
	fail map[string]error
}

func (e *recordingEvaluator) Evaluate(t Target, exprs []evalexpr.Expr) error {
	e.seen = append(e.seen, t.DisplayName())
	if err := e.fail[t.DisplayName()]; err != nil {
		return err
	}
	return nil
}

func TestAnalyzeRunID(t *testing.T) {
	a1, err := Analyze(newUnit("u", constVar("a", intLit("1"))))
	require.NoError(t, err)
	a2, err := Analyze(newUnit("u", constVar("a", intLit("1"))))
	require.NoError(t, err)

	assert.NotEmpty(t, a1.RunID)
	assert.NotEqual(t, a1.RunID, a2.RunID, "each analysis gets its own run ID")
}

func TestAnalyzeClonesHandedToEvaluator(t *testing.T) {
	a := constVar("a", intLit("1"))
	b := constVar("b", ref(a))

	analysis, err := Analyze(newUnit("u", a, b))
	require.NoError(t, err)
	require.Len(t, analysis.Ordered, 2)

	// The evaluator receives copies: annotating them is not observable
	// through the resolved tree.
	for _, st := range analysis.Ordered {
		require.Len(t, st.Exprs, 1)
		st.Exprs[0].SetValue(42)
	}

	// The clone of b's initializer still carries a's binding.
	id, ok := analysis.Ordered[1].Exprs[0].(*evalexpr.Ident)
	require.True(t, ok)
	assert.Same(t, a.Binding, id.Binding)
}

func TestRunEvaluatesEachOrderedTargetOnce(t *testing.T) {
	a := constVar("a", intLit("1"))
	b := constVar("b", ref(a))
	p := constVar("p", nil)
	p.Init = ref(p)

	analysis, err := Analyze(newUnit("u", b, a, p))
	require.NoError(t, err)

	ev := &recordingEvaluator{}
	require.NoError(t, analysis.Run(ev))
	assert.Equal(t, []string{"a", "b"}, ev.seen,
		"ordered targets evaluated once, in order; cyclic targets skipped")
}

func TestRunContinuesPastEvaluatorFailures(t *testing.T) {
	a := constVar("a", intLit("1"))
	b := constVar("b", ref(a))
	c := constVar("c", intLit("3"))

	analysis, err := Analyze(newUnit("u", a, b, c))
	require.NoError(t, err)

	boom := errors.New("division by zero")
	ev := &recordingEvaluator{fail: map[string]error{"a": boom}}
	err = analysis.Run(ev)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"a", "b", "c"}, ev.seen,
		"a failure upstream does not cost other targets their evaluation attempt")
}

func TestDisplayNamesNFCNormalized(t *testing.T) {
	// "é" as 'e' + combining acute; NFC folds it to the composed form.
	decomposed := constVar("cafe\u0301", intLit("1"))

	set, err := Discover(newUnit("u", decomposed))
	require.NoError(t, err)
	require.Equal(t, 1, set.Len())
	assert.Equal(t, "caf\u00e9", set.At(0).DisplayName())
}

func TestReportGolden(t *testing.T) {
	a := constVar("a", intLit("1"))
	b := constVar("b", &ast.Binary{Op: "+", X: ref(a), Y: intLit("1")})
	p := constVar("p", nil)
	q := constVar("q", nil)
	p.Init = ref(q)
	q.Init = ref(p)

	analysis, err := Analyze(newUnit("shapes", a, b, p, q))
	require.NoError(t, err)

	r := analysis.Report()
	r.RunID = "(run id)" // random per run; pinned for the golden file

	data, err := json.MarshalIndent(r, "", "  ")
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "report", data)
}

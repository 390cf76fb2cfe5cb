package constdep

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/lumen-lang/lumen/internal/ast"
	"github.com/lumen-lang/lumen/internal/evalexpr"
)

// Evaluator is the external constant-folding service. It receives each
// ordered target exactly once, together with the cloned expression(s) whose
// folded value the target requires, and owns everything downstream of
// scheduling: memoization, poisoning of targets whose dependencies turned
// out unresolved, retries.
type Evaluator interface {
	Evaluate(t Target, exprs []evalexpr.Expr) error
}

// ScheduledTarget pairs an ordered target with its evaluation copies.
type ScheduledTarget struct {
	Target Target
	Exprs  []evalexpr.Expr
}

// Analysis is the result of analyzing one compilation unit. It is built
// from a fresh resolved tree every time; nothing is carried across
// rebuilds.
type Analysis struct {
	// RunID correlates this analysis across logs and stored reports when
	// units are processed in parallel.
	RunID string

	Unit string

	// Ordered holds the non-cyclic targets, dependencies strictly before
	// consumers.
	Ordered []ScheduledTarget

	// Cycles holds one group per circular constant reference, all
	// collected in a single pass.
	Cycles []CycleGroup
}

// Analyze runs the full pipeline over one resolved unit: discovery,
// per-target dependency extraction (with cloning), and scheduling.
func Analyze(unit *ast.Unit) (*Analysis, error) {
	set, err := Discover(unit)
	if err != nil {
		return nil, err
	}

	graph := NewGraph(set)
	plans := make([]targetPlan, set.Len())
	for i, t := range set.Targets() {
		plans[i] = computeDependencies(t, set)
		graph.setDeps(i, plans[i].deps)
	}

	sched := graph.Schedule()
	ordered := make([]ScheduledTarget, len(sched.Order))
	for j, i := range sched.Order {
		ordered[j] = ScheduledTarget{Target: set.At(i), Exprs: plans[i].exprs}
	}

	return &Analysis{
		RunID:   uuid.Must(uuid.NewV7()).String(),
		Unit:    unit.Name,
		Ordered: ordered,
		Cycles:  sched.Cycles,
	}, nil
}

// Run hands every ordered target to the evaluator, once each, in schedule
// order. Evaluator failures do not stop the walk: every target still gets
// its single evaluation attempt, and the failures come back joined.
func (a *Analysis) Run(ev Evaluator) error {
	var errs []error
	for _, st := range a.Ordered {
		if err := ev.Evaluate(st.Target, st.Exprs); err != nil {
			errs = append(errs, fmt.Errorf("evaluate %s: %w", st.Target.DisplayName(), err))
		}
	}
	return errors.Join(errs...)
}

// Report is the serializable form of an Analysis, used by the CLI output
// formats, the golden tests, and the report store.
type Report struct {
	RunID   string        `json:"run_id" yaml:"run_id"`
	Unit    string        `json:"unit" yaml:"unit"`
	Ordered []string      `json:"ordered" yaml:"ordered"`
	Cycles  []CycleReport `json:"cycles,omitempty" yaml:"cycles,omitempty"`
}

// CycleReport is one circular-constant-reference diagnostic.
type CycleReport struct {
	Members []string `json:"members" yaml:"members"`
	Message string   `json:"message" yaml:"message"`
}

// Report converts the analysis into its serializable form.
func (a *Analysis) Report() *Report {
	r := &Report{
		RunID:   a.RunID,
		Unit:    a.Unit,
		Ordered: make([]string, len(a.Ordered)),
	}
	for i, st := range a.Ordered {
		r.Ordered[i] = st.Target.DisplayName()
	}
	for _, g := range a.Cycles {
		members := make([]string, len(g.Members))
		for i, t := range g.Members {
			members[i] = t.DisplayName()
		}
		r.Cycles = append(r.Cycles, CycleReport{Members: members, Message: g.Message()})
	}
	return r
}

package constdep

import (
	"fmt"
	"strings"

	"github.com/lumen-lang/lumen/internal/ast"
)

// Constant analysis error codes (E200-E219)
const (
	// ErrUnboundAnnotation: an annotation outside a part-of context has no
	// resolved constructor or variable. The resolver's contract guarantees
	// one, so this is a malformed input tree, not a user error.
	ErrUnboundAnnotation = "E200"

	// ErrUnboundDecl: a constant-requiring declaration carries no resolved
	// binding of its own.
	ErrUnboundDecl = "E201"

	// ErrCircularConstant: a group of constants mutually require each
	// other's values. The one user-facing diagnostic this package emits.
	ErrCircularConstant = "E210"
)

// InconsistencyError reports a structural invariant violation in the input
// tree. Analysis of the affected unit is aborted; proceeding would mean
// evaluating constants against a tree the resolver never vouched for.
type InconsistencyError struct {
	Code    string
	Message string
	Pos     ast.Pos
}

func (e *InconsistencyError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s: [%s] %s", e.Pos, e.Code, e.Message)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// CycleGroup is one maximal set of targets that mutually require each
// other's values. Members are kept in discovery order so diagnostics are
// stable across runs.
type CycleGroup struct {
	Members []Target
}

// Message renders the user-facing circular-constant-reference diagnostic,
// naming every participant.
func (g CycleGroup) Message() string {
	names := make([]string, len(g.Members))
	for i, t := range g.Members {
		names[i] = t.DisplayName()
	}
	return fmt.Sprintf("[%s] circular constant reference: %s",
		ErrCircularConstant, strings.Join(names, ", "))
}

// Position returns the first member's source position, the natural anchor
// for the diagnostic.
func (g CycleGroup) Position() ast.Pos {
	if len(g.Members) == 0 {
		return ast.Pos{}
	}
	return g.Members[0].Position()
}

package constdep

import (
	"golang.org/x/text/unicode/norm"

	"github.com/lumen-lang/lumen/internal/ast"
)

// Target is one constant-requiring position: a stable identity the graph,
// the diagnostics, and the external Evaluator all share. Identity is the
// underlying declaration node, so the same position discovered twice
// collapses to one target.
type Target interface {
	// key is the identity used for set membership and edge dedup.
	key() any

	// DisplayName is the NFC-normalized, human-readable name used in
	// diagnostics and reports.
	DisplayName() string

	Position() ast.Pos
}

// VariableTarget is a variable whose initializer must be constant: an
// explicit const (top-level, local, or field), or a final instance field
// of a class with at least one constant constructor.
type VariableTarget struct {
	Binding *ast.VarBinding
	Init    ast.Expr

	name string
	pos  ast.Pos
}

func newVariableTarget(b *ast.VarBinding, init ast.Expr, pos ast.Pos) *VariableTarget {
	name := b.Name
	if b.Class != nil {
		name = b.Class.Name + "." + b.Name
	}
	return &VariableTarget{Binding: b, Init: init, name: name, pos: pos}
}

func (t *VariableTarget) key() any            { return t.Binding }
func (t *VariableTarget) DisplayName() string { return norm.NFC.String(t.name) }
func (t *VariableTarget) Position() ast.Pos   { return t.pos }

// ConstructorTarget is a constructor declaration marked constant.
type ConstructorTarget struct {
	Ctor *ast.CtorDecl
}

func (t *ConstructorTarget) key() any            { return t.Ctor }
func (t *ConstructorTarget) DisplayName() string { return norm.NFC.String(t.Ctor.QualifiedName()) }
func (t *ConstructorTarget) Position() ast.Pos   { return t.Ctor.Pos }

// DefaultValueTarget is a formal parameter whose default expression must
// be constant.
type DefaultValueTarget struct {
	Param *ast.ParamDecl

	// Owner is the declaring constructor.
	Owner *ast.CtorDecl
}

func (t *DefaultValueTarget) key() any { return t.Param }

func (t *DefaultValueTarget) DisplayName() string {
	return norm.NFC.String(t.Owner.QualifiedName() + " default " + t.Param.Name)
}

func (t *DefaultValueTarget) Position() ast.Pos { return t.Param.Pos }

// AnnotationTarget is a metadata attachment, evaluated as an implicit
// constant object construction.
type AnnotationTarget struct {
	Ann *ast.Annotation
}

func (t *AnnotationTarget) key() any            { return t.Ann }
func (t *AnnotationTarget) DisplayName() string { return norm.NFC.String("@" + t.Ann.Name) }
func (t *AnnotationTarget) Position() ast.Pos   { return t.Ann.Pos }

// TargetSet is the deduplicated, discovery-ordered set of targets for one
// compilation unit. Discovery order carries no semantics but keeps
// diagnostics and tie-breaking deterministic.
type TargetSet struct {
	targets []Target
	index   map[any]int
}

func newTargetSet() *TargetSet {
	return &TargetSet{index: make(map[any]int)}
}

// add inserts the target unless its identity is already present.
func (s *TargetSet) add(t Target) {
	k := t.key()
	if _, ok := s.index[k]; ok {
		return
	}
	s.index[k] = len(s.targets)
	s.targets = append(s.targets, t)
}

// Len returns the number of targets discovered.
func (s *TargetSet) Len() int { return len(s.targets) }

// Targets returns the targets in discovery order. Callers must not mutate
// the returned slice.
func (s *TargetSet) Targets() []Target { return s.targets }

// At returns the target with the given discovery index.
func (s *TargetSet) At(i int) Target { return s.targets[i] }

// lookup maps a declaration identity back to its discovery index.
func (s *TargetSet) lookup(key any) (int, bool) {
	i, ok := s.index[key]
	return i, ok
}

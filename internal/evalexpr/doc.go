// Package evalexpr holds the evaluation-side expression model: mutable
// copies of resolved-tree expressions that the constant evaluator may
// annotate with provisional values.
//
// The split from package ast is deliberate. Diagnostics and incremental
// re-analysis keep reading the original resolved tree, so evaluation state
// must never be observable through it. Clone is the only bridge between the
// two models, and it is strictly one-way: every structural node is freshly
// allocated, while resolver-attached facts (bindings, static types) are
// carried over so the evaluator needs no resolution capability of its own.
package evalexpr

// Package constdep computes the evaluation plan for a compilation unit's
// compile-time constants.
//
// The pipeline has three stages: Discover walks the resolved tree and
// collects every constant-requiring position as a Target; a per-target
// dependency extractor reports which other targets each one reads; the
// Graph decomposes the resulting relation into strongly connected
// components and produces either an evaluation order (dependencies strictly
// before dependents) or, for each cycle, a circular-constant-reference
// diagnostic naming all participants.
//
// All stages are pure, synchronous tree walks; the only state they keep
// lives in locally owned collections, so separate units can be analyzed
// concurrently without coordination. Actual constant folding is the
// Evaluator's job, an external service this package only schedules.
package constdep

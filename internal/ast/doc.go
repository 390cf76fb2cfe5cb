// Package ast defines the resolved-tree read model for a Lumen compilation
// unit: declarations and expressions as they come out of the external
// Resolver, with every identifier carrying its bound declaration and every
// typed position carrying its static type.
//
// The tree is shared, read-only input. Nothing in this repository mutates it;
// passes that need to attach state (the constant evaluator, most notably)
// work on evalexpr copies produced by the one-way cloner.
package ast

package ast

import "fmt"

// Pos is a source position. The zero value means "position unknown",
// which happens for synthesized nodes (implicit default constructors,
// loader-built fixtures without line info).
type Pos struct {
	File string
	Line int
	Col  int
}

// IsValid reports whether the position carries real source coordinates.
func (p Pos) IsValid() bool {
	return p.File != "" && p.Line > 0
}

// String renders file:line:col, or "<unknown>" for the zero value.
func (p Pos) String() string {
	if !p.IsValid() {
		return "<unknown>"
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Col)
}

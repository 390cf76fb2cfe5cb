package fixture

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/token"

	"github.com/lumen-lang/lumen/internal/ast"
)

// Load error codes.
const (
	ErrCodeNotFound = "F001" // directory or file missing
	ErrCodeNoFiles  = "F002" // no .cue files in directory
	ErrCodeBadUnit  = "F003" // unit structure malformed
	ErrCodeBadExpr  = "F004" // expression encoding malformed
)

// LoadError reports a fixture problem with its CUE source position.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: [%s] %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func badUnit(v cue.Value, format string, args ...any) error {
	return &LoadError{Code: ErrCodeBadUnit, Message: fmt.Sprintf(format, args...), Pos: v.Pos()}
}

func badExpr(v cue.Value, format string, args ...any) error {
	return &LoadError{Code: ErrCodeBadExpr, Message: fmt.Sprintf(format, args...), Pos: v.Pos()}
}

// LoadDir loads every .cue file in dir as one unit each, in file-name order.
func LoadDir(dir string) ([]*ast.Unit, error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("units directory not found: %s", dir)}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing units directory: %v", err)}
	}
	if !info.IsDir() {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("not a directory: %s", dir)}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error scanning directory: %v", err)}
	}
	var files []string
	for _, ent := range entries {
		if !ent.IsDir() && strings.HasSuffix(ent.Name(), ".cue") {
			files = append(files, filepath.Join(dir, ent.Name()))
		}
	}
	sort.Strings(files)
	if len(files) == 0 {
		return nil, &LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("no CUE files found in %s", dir)}
	}

	units := make([]*ast.Unit, 0, len(files))
	for _, f := range files {
		u, err := LoadFile(f)
		if err != nil {
			return nil, err
		}
		units = append(units, u)
	}
	return units, nil
}

// LoadFile loads one unit from a CUE file.
func LoadFile(path string) (*ast.Unit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("reading %s: %v", path, err)}
	}
	return LoadBytes(path, data)
}

// LoadBytes compiles CUE source and loads the unit under its "unit" field.
func LoadBytes(filename string, src []byte) (*ast.Unit, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(src, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, &LoadError{Code: ErrCodeBadUnit, Message: fmt.Sprintf("compiling CUE: %v", err), Pos: v.Pos()}
	}
	unitVal := v.LookupPath(cue.ParsePath("unit"))
	if !unitVal.Exists() {
		return nil, badUnit(v, "no \"unit\" field in %s", filename)
	}
	return LoadUnit(unitVal)
}

// LoadUnit builds a resolved unit from a CUE value. Declarations are built
// first so every name has its binding; expressions are bound in a second
// pass, which is what lets fixtures forward-reference freely.
func LoadUnit(v cue.Value) (*ast.Unit, error) {
	b := newBinder()
	unit := &ast.Unit{Name: "unit"}

	if nameVal := v.LookupPath(cue.ParsePath("name")); nameVal.Exists() {
		name, err := nameVal.String()
		if err != nil {
			return nil, badUnit(nameVal, "unit name: %v", err)
		}
		unit.Name = name
	}

	if partVal := v.LookupPath(cue.ParsePath("partOf")); partVal.Exists() {
		lib, err := partVal.String()
		if err != nil {
			return nil, badUnit(partVal, "partOf: %v", err)
		}
		unit.PartOf = &ast.PartOfDirective{Library: lib, Pos: posOf(partVal)}
	}

	declsVal := v.LookupPath(cue.ParsePath("decls"))
	if declsVal.Exists() {
		iter, err := declsVal.List()
		if err != nil {
			return nil, badUnit(declsVal, "decls must be a list: %v", err)
		}
		for iter.Next() {
			decl, err := b.decl(iter.Value())
			if err != nil {
				return nil, err
			}
			unit.Decls = append(unit.Decls, decl)
		}
	}

	// Second pass: bind expressions now that every name is registered.
	for _, fill := range b.pending {
		if err := fill(); err != nil {
			return nil, err
		}
	}
	return unit, nil
}

func posOf(v cue.Value) ast.Pos {
	p := v.Pos()
	if !p.IsValid() {
		return ast.Pos{}
	}
	return ast.Pos{File: p.Filename(), Line: p.Line(), Col: p.Column()}
}

func stringAt(v cue.Value, field string) (string, bool, error) {
	fv := v.LookupPath(cue.ParsePath(field))
	if !fv.Exists() {
		return "", false, nil
	}
	s, err := fv.String()
	if err != nil {
		return "", true, badUnit(fv, "%s: %v", field, err)
	}
	return s, true, nil
}

func boolAt(v cue.Value, field string) (bool, error) {
	fv := v.LookupPath(cue.ParsePath(field))
	if !fv.Exists() {
		return false, nil
	}
	b, err := fv.Bool()
	if err != nil {
		return false, badUnit(fv, "%s: %v", field, err)
	}
	return b, nil
}

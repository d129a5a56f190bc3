// Package trace is the document a shell engine run produces: an ordered list
// of steps, each pairing an AST snapshot with the environment, the output
// streams so far and a description of what just happened, or a single error
// record when the engine could not run the script.
//
// Decode validates the JSON envelope against a schema before building the
// typed model, so every consumer sees either a well-formed Document or an
// error naming the offending node.
package trace

import (
	"sort"

	"github.com/mgree/smoosh/core/ast"
)

// SupportedMajor is the engine output major version this renderer reads.
const SupportedMajor = "v1"

// Document is a whole trace.
type Document struct {
	// Version is the engine version from the envelope form, empty for a bare
	// step array.
	Version string
	Entries []Entry
}

// Failure is the engine's top-level error record.
type Failure struct {
	Message string
}

// Entry is one trace step. When Failure is set the other fields are zero.
type Entry struct {
	Failure *Failure

	Term   ast.Term
	Env    Env
	Locals []Scope
	Step   Desc
	Stdout string
	Stderr string
}

// Env is a snapshot of the global variables. Digest identifies the snapshot
// by value: two Envs with equal digests hold equal variables.
type Env struct {
	Vars   map[string]ast.SymbolicString
	Digest [32]byte
}

// Names returns the variable names in sorted order.
func (e Env) Names() []string {
	names := make([]string, 0, len(e.Vars))
	for k := range e.Vars {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Equal reports whether two snapshots hold the same variables.
func (e Env) Equal(o Env) bool {
	return e.Digest == o.Digest
}

// Scope is one local-variable frame, sorted by name.
type Scope []Local

// Local is a local variable. A local that carries no value (for example one
// declared but unset) has a Marker naming its state instead.
type Local struct {
	Name   string
	Marker string
	Value  ast.SymbolicString
}

// Package ast is the closed catalog of nodes the shell engine emits when it
// records a trace: statements at every evaluation phase, redirections, word
// entries and control codes, the post-expansion word forms, and the expansion
// states in between.
//
// Every family is a sealed interface. The only way to build a node from the
// wire is through Decoder, which rejects tags outside the family with a
// *TagError, so renderers can switch exhaustively and treat anything else as a
// programming error.
package ast

// Node is anything with a wire tag.
type Node interface {
	Tag() string
}

// Stmt is a shell statement, either a syntactic form (Command, If, ...), an
// in-flight form mirroring one at a later evaluation phase (CommandReady,
// ForRunning, ...), or runtime machinery with no source syntax (Call, Trapped).
type Stmt interface {
	Node
	isStmt()
}

// Value is a word-like payload at some expansion phase. Redirection targets,
// assignment values and argument lists are Values; which concrete type shows
// up depends on how far evaluation has progressed.
type Value interface {
	isValue()
}

// Term is the snapshot carried by a trace step: a Stmt for evaluation traces,
// an ExpansionState for expansion-only traces.
type Term = Node

// Assign is a variable assignment prefix (x=v). V is the phase-specific value
// representation: Words before expansion, ExpansionState while expanding,
// SymbolicString once expanded.
type Assign[V Value] struct {
	Var   string
	Value V
}

package unparse

import (
	"regexp"

	"github.com/mgree/smoosh/core/ast"
	"github.com/mgree/smoosh/core/invariant"
)

var lineBreak = regexp.MustCompile(`\r\n|\n|\r`)

// HeredocMarker picks a here-document terminator that does not equal any
// line of body's literal text. It starts at "EOF" and appends another "EOF"
// until no literal line matches. Control codes and symbolic characters are
// not inspected.
//
// body may be a heredoc body at any phase (Words, ExpansionState,
// SymbolicString, ...); literal runs are collected the same way for each.
func HeredocMarker(body ast.Value) string {
	lines := map[string]bool{}
	for _, text := range literalRuns(body) {
		for _, line := range lineBreak.Split(text, -1) {
			lines[line] = true
		}
	}

	marker := "EOF"
	for lines[marker] {
		next := marker + "EOF"
		invariant.Invariant(len(next) > len(marker), "marker must grow")
		marker = next
	}
	return marker
}

// literalRuns returns the plain-text runs of v, one per literal entry.
// Adjacent Char elements of a symbolic string form a single run.
func literalRuns(v ast.Value) []string {
	switch v := v.(type) {
	case nil:
		return nil
	case ast.Words:
		var out []string
		for _, e := range v {
			if s, ok := e.(*ast.Str); ok {
				out = append(out, s.V)
			}
		}
		return out
	case ast.SymbolicString:
		return symbolicRuns(v)
	case ast.Fields:
		var out []string
		for _, f := range v {
			out = append(out, symbolicRuns(f)...)
		}
		return out
	case ast.ExpandedWords:
		var out []string
		for _, w := range v {
			switch w := w.(type) {
			case *ast.UsrS:
				out = append(out, w.V)
			case *ast.ExpS:
				out = append(out, w.V)
			case *ast.DQuo:
				out = append(out, symbolicRuns(w.S)...)
			case *ast.At:
				out = append(out, literalRuns(w.F)...)
			}
		}
		return out
	case ast.IntermediateFields:
		var out []string
		for _, f := range v {
			switch f := f.(type) {
			case *ast.Field:
				out = append(out, symbolicRuns(f.S)...)
			case *ast.QField:
				out = append(out, symbolicRuns(f.S)...)
			}
		}
		return out
	case *ast.ExpStart:
		return literalRuns(v.W)
	case *ast.ExpExpand:
		return append(literalRuns(v.F), literalRuns(v.W)...)
	case *ast.ExpSplit:
		return literalRuns(v.F)
	case *ast.ExpPath:
		return literalRuns(v.Ifs)
	case *ast.ExpQuote:
		return literalRuns(v.Ifs)
	case *ast.ExpError:
		return literalRuns(v.Msg)
	case *ast.ExpDone:
		return literalRuns(v.F)
	default:
		invariant.Unreachable("heredoc body", v)
		return nil
	}
}

func symbolicRuns(s ast.SymbolicString) []string {
	var out []string
	run, open := "", false
	for _, c := range s {
		if ch, ok := c.(ast.Char); ok {
			run += string(ch)
			open = true
			continue
		}
		if open {
			out = append(out, run)
			run, open = "", false
		}
	}
	if open {
		out = append(out, run)
	}
	return out
}

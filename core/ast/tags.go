package ast

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Family names a sealed node family. It appears in decode errors.
type Family string

const (
	FamilyStmt           Family = "statement"
	FamilyRedir          Family = "redirection"
	FamilyEntry          Family = "word entry"
	FamilyControl        Family = "control code"
	FamilyFormat         Family = "parameter format"
	FamilySymbolic       Family = "symbolic character"
	FamilyExpandedWord   Family = "expanded word"
	FamilyTmpField       Family = "intermediate field"
	FamilyExpansionState Family = "expansion state"
)

var familyTags = map[Family][]string{
	FamilyStmt: {
		"Command", "CommandExpArgs", "CommandExpRedirs", "CommandExpAssign", "CommandReady",
		"Pipe", "Redir", "RedirExpRedirs", "Background", "BackgroundExpRedirs",
		"Subshell", "SubshellExpRedirs", "And", "Or", "Not", "Semi", "If",
		"While", "WhileCond", "WhileRunning", "For", "ForExpArgs", "ForExpanded", "ForRunning",
		"Case", "CaseExpArg", "CaseMatch", "CaseCheckMatch", "Defun", "Call",
		"EvalLoop", "EvalLoopCmd", "Break", "Continue", "Return", "Exec", "Wait",
		"Trapped", "CheckedExit", "Pushredir", "Exit", "Done",
	},
	FamilyRedir:          {"File", "Dup", "Heredoc"},
	FamilyEntry:          {"S", "K", "F", "ESym"},
	FamilyControl:        {"Tilde", "Param", "LAssign", "LMatch", "LError", "Backtick", "LBacktick", "LBacktickWait", "Arith", "Quote"},
	FamilyFormat:         {"Normal", "Length", "Default", "NDefault", "Assign", "NAssign", "Error", "NError", "Alt", "NAlt", "Substring"},
	FamilySymbolic:       {"SymCommand", "SymArith", "SymPat"},
	FamilyExpandedWord:   {"UsrF", "ExpS", "At", "DQuo", "UsrS", "EWSym"},
	FamilyTmpField:       {"WFS", "FS", "Field", "QField"},
	FamilyExpansionState: {"ExpStart", "ExpExpand", "ExpSplit", "ExpPath", "ExpQuote", "ExpError", "ExpDone"},
}

// Tags returns the known wire tags of a family, in catalog order.
func Tags(f Family) []string {
	return append([]string(nil), familyTags[f]...)
}

// TagError reports a node whose tag is not part of its family.
type TagError struct {
	Family     Family
	Tag        string
	Path       string // JSON path of the offending node, e.g. $[3].term.l
	Suggestion string // closest known tag, empty when nothing is close
}

func (e *TagError) Error() string {
	var b strings.Builder
	if e.Tag == "" {
		fmt.Fprintf(&b, "%s: missing %s tag", e.Path, e.Family)
	} else {
		fmt.Fprintf(&b, "%s: unknown %s tag %q", e.Path, e.Family, e.Tag)
	}
	if e.Suggestion != "" {
		fmt.Fprintf(&b, " (did you mean %q?)", e.Suggestion)
	}
	return b.String()
}

func newTagError(f Family, tag, path string) *TagError {
	return &TagError{Family: f, Tag: tag, Path: path, Suggestion: Suggest(tag, familyTags[f])}
}

// maxSuggestDistance bounds the edit distance of a fallback suggestion.
const maxSuggestDistance = 3

// Suggest returns the candidate closest to target: the best fuzzy
// (case-insensitive subsequence) match if any, otherwise the candidate
// within a small edit distance. It returns "" when nothing is close.
func Suggest(target string, candidates []string) string {
	if target == "" || len(candidates) == 0 {
		return ""
	}

	ranks := fuzzy.RankFindFold(target, candidates)
	if len(ranks) > 0 {
		sort.Sort(ranks)
		return ranks[0].Target
	}

	best, bestDist := "", maxSuggestDistance+1
	for _, c := range candidates {
		d := fuzzy.LevenshteinDistance(strings.ToLower(target), strings.ToLower(c))
		if d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

// Package describe renders a trace step description as a breadcrumb: an
// icon and label per step kind, with nested steps joined by dividers.
//
// Describers also report a tone for the step's panel. Expansion steps are
// pink and evaluation steps blue; when a description mixes both, the last
// leaf written decides.
package describe

import (
	"fmt"
	"strings"

	"github.com/mgree/smoosh/core/invariant"
	"github.com/mgree/smoosh/core/markup"
	"github.com/mgree/smoosh/core/trace"
)

// Panel tones.
const (
	ToneExpansion  = "pink"
	ToneEvaluation = "blue"
	ToneError      = "red"
)

// evalLoopMarker is the command text of the root process re-entering its
// read-eval loop.
const evalLoopMarker = ": EvalLoop"

type leaf struct {
	icon  string
	label string
}

var expansionLeaves = map[string]leaf{
	trace.ESTilde:   {"home", "Tilde expansion"},
	trace.ESParam:   {"dollar sign", "Parameter expansion"},
	trace.ESCommand: {"terminal", "Command substitution"},
	trace.ESArith:   {"calculator", "Arithmetic expansion"},
	trace.ESSplit:   {"unlinkify", "Field splitting"},
	trace.ESPath:    {"disk outline", "Pathname expansion"},
	trace.ESQuote:   {"quote right", "Quoted string"},
	trace.ESStep:    {"expand arrows alternate", "Expansion step"},
}

var evaluationLeaves = map[string]string{
	trace.XSSimple:     "Simple command",
	trace.XSPipe:       "Pipe command",
	trace.XSRedir:      "Redirection",
	trace.XSBackground: "Background",
	trace.XSSubshell:   "Subshell",
	trace.XSAnd:        "And",
	trace.XSOr:         "Or",
	trace.XSNot:        "Not",
	trace.XSSemi:       "Semi",
	trace.XSIf:         "If",
	trace.XSWhile:      "While",
	trace.XSFor:        "For",
	trace.XSCase:       "Case statement",
	trace.XSDefun:      "Function definition",
	trace.XSStep:       "Evaluation step",
	trace.XSExec:       "Exec",
	trace.XSWait:       "Wait",
}

// Step writes d to crumb and returns the panel tone.
func Step(crumb markup.Element, d trace.Desc) string {
	invariant.NotNil(d, "step description")
	switch d := d.(type) {
	case trace.ExpStep:
		return Expansion(crumb, d)
	case trace.EvalStep:
		return Evaluation(crumb, d)
	}
	invariant.Unreachable("step description", d)
	return ""
}

// Expansion writes an expansion step to crumb and returns the panel tone.
func Expansion(crumb markup.Element, s trace.ExpStep) string {
	switch s := s.(type) {
	case *trace.ExpLeaf:
		l, ok := expansionLeaves[s.Kind]
		invariant.Invariant(ok, "unknown expansion step kind %q", s.Kind)
		crumb.Open(markup.KindIcon, l.icon)
		// a bare ESStep only marks progress
		if s.Kind != trace.ESStep || s.Msg != "" {
			message(crumb, l.label, s.Msg)
		}
		return ToneExpansion

	case *trace.ESNested:
		Expansion(crumb, s.Outer)
		crumb.Open(markup.KindDivider)
		return Expansion(crumb, s.Inner)

	case *trace.ESEval:
		Expansion(crumb, s.Outer)
		crumb.Open(markup.KindDivider)
		return Evaluation(crumb, s.Inner)
	}
	invariant.Unreachable("expansion step", s)
	return ""
}

// Evaluation writes an evaluation step to crumb and returns the panel tone.
// A quiet inner step of XSNested is left out.
func Evaluation(crumb markup.Element, s trace.EvalStep) string {
	switch s := s.(type) {
	case *trace.EvalLeaf:
		label, ok := evaluationLeaves[s.Kind]
		invariant.Invariant(ok, "unknown evaluation step kind %q", s.Kind)
		if s.Kind != trace.XSStep || s.Msg != "" {
			message(crumb, label, s.Msg)
		}

	case *trace.XSStack:
		crumb.Open(markup.KindSection, "function-name").Text(s.Func)
		crumb.Open(markup.KindDivider)
		return Evaluation(crumb, s.Inner)

	case *trace.XSProc:
		// the root shell is the common case; keep it terse
		if s.Pid == 0 {
			message(crumb, "", s.CStr)
		} else {
			message(crumb, "Process step", fmt.Sprintf("pid %d: %s", s.Pid, s.CStr))
		}

	case *trace.XSEval:
		message(crumb, "Eval", strings.TrimSpace(s.Msg+evalWhere(s)))

	case *trace.XSTrap:
		message(crumb, "Trapped SIG"+s.Signal, s.Msg)

	case *trace.XSNested:
		tone := Evaluation(crumb, s.Outer)
		if Quiet(s.Inner) {
			return tone
		}
		crumb.Open(markup.KindDivider)
		return Evaluation(crumb, s.Inner)

	case *trace.XSExpand:
		Evaluation(crumb, s.Outer)
		crumb.Open(markup.KindDivider)
		return Expansion(crumb, s.Inner)

	default:
		invariant.Unreachable("evaluation step", s)
	}
	return ToneEvaluation
}

// Quiet reports whether an inner evaluation step carries nothing worth a
// breadcrumb: an eval-loop step with no message, the root process with no
// command text, or the root process re-entering its eval loop.
func Quiet(s trace.EvalStep) bool {
	switch s := s.(type) {
	case *trace.XSEval:
		return s.Msg == ""
	case *trace.XSProc:
		return (s.Pid == 0 && s.CStr == "") || s.CStr == evalLoopMarker
	}
	return false
}

// Text is the plain-text breadcrumb of d.
func Text(d trace.Desc) string {
	n := markup.New(markup.KindSpan)
	Step(n, d)
	return strings.TrimSpace(markup.PlainText(n))
}

func evalWhere(s *trace.XSEval) string {
	switch {
	case s.Source.Cmd != "":
		return fmt.Sprintf(" (line %d of string command '%s')", s.Linno, s.Source.Cmd)
	case s.Source.Src != "":
		return fmt.Sprintf(" (line %d of file %s)", s.Linno, s.Source.Src)
	}
	return fmt.Sprintf(" (line %d)", s.Linno)
}

// message writes "label: msg" as a breadcrumb section. The colon only
// appears when both parts are present.
func message(crumb markup.Element, label, msg string) {
	sep := ""
	if label != "" && msg != "" {
		sep = ": "
	}
	if text := label + sep + msg; text != "" {
		crumb.Open(markup.KindSection).Text(text)
	}
}

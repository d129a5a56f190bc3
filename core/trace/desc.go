package trace

import "github.com/mgree/smoosh/core/ast"

// Desc describes what a trace step did. It is either an expansion step
// (ES*) or an evaluation step (XS*).
type Desc interface {
	ast.Node
	isDesc()
}

// ExpStep is the expansion-step family.
type ExpStep interface {
	Desc
	isExpStep()
}

// EvalStep is the evaluation-step family.
type EvalStep interface {
	Desc
	isEvalStep()
}

// Leaf expansion-step kinds.
const (
	ESTilde   = "ESTilde"
	ESParam   = "ESParam"
	ESCommand = "ESCommand"
	ESArith   = "ESArith"
	ESSplit   = "ESSplit"
	ESPath    = "ESPath"
	ESQuote   = "ESQuote"
	ESStep    = "ESStep"
)

// Leaf evaluation-step kinds. XSStack, XSProc, XSEval, XSTrap and the
// nesting forms have their own types.
const (
	XSSimple     = "XSSimple"
	XSPipe       = "XSPipe"
	XSRedir      = "XSRedir"
	XSBackground = "XSBackground"
	XSSubshell   = "XSSubshell"
	XSAnd        = "XSAnd"
	XSOr         = "XSOr"
	XSNot        = "XSNot"
	XSSemi       = "XSSemi"
	XSIf         = "XSIf"
	XSWhile      = "XSWhile"
	XSFor        = "XSFor"
	XSCase       = "XSCase"
	XSDefun      = "XSDefun"
	XSStep       = "XSStep"
	XSExec       = "XSExec"
	XSWait       = "XSWait"
)

var (
	expLeafKinds = []string{ESTilde, ESParam, ESCommand, ESArith, ESSplit, ESPath, ESQuote, ESStep}
	expTags      = append(append([]string(nil), expLeafKinds...), "ESNested", "ESEval")

	evalLeafKinds = []string{
		XSSimple, XSPipe, XSRedir, XSBackground, XSSubshell, XSAnd, XSOr, XSNot,
		XSSemi, XSIf, XSWhile, XSFor, XSCase, XSDefun, XSStep, XSExec, XSWait,
	}
	evalTags = append(append([]string(nil), evalLeafKinds...),
		"XSStack", "XSProc", "XSEval", "XSTrap", "XSNested", "XSExpand")
)

// ExpLeaf is a non-nesting expansion step; Kind is one of the ES* constants.
type ExpLeaf struct {
	Kind string
	Msg  string
}

// ESNested is an expansion step taken inside another expansion.
type ESNested struct {
	Outer, Inner ExpStep
}

// ESEval is an evaluation step taken inside an expansion (command
// substitution).
type ESEval struct {
	Outer ExpStep
	Inner EvalStep
}

// EvalLeaf is a non-nesting evaluation step; Kind is one of the XS*
// constants.
type EvalLeaf struct {
	Kind string
	Msg  string
}

// XSStack is a step inside function Func.
type XSStack struct {
	Func  string
	Inner EvalStep
}

// XSProc is a step of process Pid; pid 0 is the root shell.
type XSProc struct {
	Pid  int
	C    ast.Stmt
	CStr string
}

// XSEval is a step of an eval loop reading from Source.
type XSEval struct {
	Msg    string
	Linno  int
	Source ast.EvalSource
}

// XSTrap is a step of a trap handler for Signal.
type XSTrap struct {
	Msg    string
	Signal string
}

// XSNested is an evaluation step inside another evaluation step.
type XSNested struct {
	Outer, Inner EvalStep
}

// XSExpand is an expansion step taken while evaluating Outer.
type XSExpand struct {
	Outer EvalStep
	Inner ExpStep
}

func (l *ExpLeaf) Tag() string  { return l.Kind }
func (*ESNested) Tag() string   { return "ESNested" }
func (*ESEval) Tag() string     { return "ESEval" }
func (l *EvalLeaf) Tag() string { return l.Kind }
func (*XSStack) Tag() string    { return "XSStack" }
func (*XSProc) Tag() string     { return "XSProc" }
func (*XSEval) Tag() string     { return "XSEval" }
func (*XSTrap) Tag() string     { return "XSTrap" }
func (*XSNested) Tag() string   { return "XSNested" }
func (*XSExpand) Tag() string   { return "XSExpand" }

func (*ExpLeaf) isDesc()  {}
func (*ESNested) isDesc() {}
func (*ESEval) isDesc()   {}
func (*EvalLeaf) isDesc() {}
func (*XSStack) isDesc()  {}
func (*XSProc) isDesc()   {}
func (*XSEval) isDesc()   {}
func (*XSTrap) isDesc()   {}
func (*XSNested) isDesc() {}
func (*XSExpand) isDesc() {}

func (*ExpLeaf) isExpStep()  {}
func (*ESNested) isExpStep() {}
func (*ESEval) isExpStep()   {}

func (*EvalLeaf) isEvalStep() {}
func (*XSStack) isEvalStep()  {}
func (*XSProc) isEvalStep()   {}
func (*XSEval) isEvalStep()   {}
func (*XSTrap) isEvalStep()   {}
func (*XSNested) isEvalStep() {}
func (*XSExpand) isEvalStep() {}

// ExpansionTags and EvaluationTags list the wire tags of each family.
func ExpansionTags() []string  { return append([]string(nil), expTags...) }
func EvaluationTags() []string { return append([]string(nil), evalTags...) }

// Trivial reports whether d is a bare XSStep or ESStep with no message,
// which the engine emits for bookkeeping transitions.
func Trivial(d Desc) bool {
	switch d := d.(type) {
	case *EvalLeaf:
		return d.Kind == XSStep && d.Msg == ""
	case *ExpLeaf:
		return d.Kind == ESStep && d.Msg == ""
	}
	return false
}

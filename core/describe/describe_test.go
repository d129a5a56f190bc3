package describe_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mgree/smoosh/core/ast"
	"github.com/mgree/smoosh/core/describe"
	"github.com/mgree/smoosh/core/markup"
	"github.com/mgree/smoosh/core/trace"
)

func exp(kind, msg string) *trace.ExpLeaf   { return &trace.ExpLeaf{Kind: kind, Msg: msg} }
func eval(kind, msg string) *trace.EvalLeaf { return &trace.EvalLeaf{Kind: kind, Msg: msg} }

func TestStep(t *testing.T) {
	tests := []struct {
		name string
		desc trace.Desc
		text string
		tone string
	}{
		{"tilde", exp(trace.ESTilde, "~user"), "Tilde expansion: ~user", describe.ToneExpansion},
		{"param without message", exp(trace.ESParam, ""), "Parameter expansion", describe.ToneExpansion},
		{"bare expansion step", exp(trace.ESStep, ""), "", describe.ToneExpansion},
		{"expansion step", exp(trace.ESStep, "x"), "Expansion step: x", describe.ToneExpansion},
		{"simple", eval(trace.XSSimple, "echo"), "Simple command: echo", describe.ToneEvaluation},
		{"bare evaluation step", eval(trace.XSStep, ""), "", describe.ToneEvaluation},
		{"if", eval(trace.XSIf, ""), "If", describe.ToneEvaluation},
		{"stack", &trace.XSStack{Func: "f", Inner: eval(trace.XSSimple, "echo")},
			"f > Simple command: echo", describe.ToneEvaluation},
		{"root process", &trace.XSProc{Pid: 0, CStr: "echo hi"}, "echo hi", describe.ToneEvaluation},
		{"child process", &trace.XSProc{Pid: 3, C: &ast.Command{}, CStr: "echo hi"},
			"Process step: pid 3: echo hi", describe.ToneEvaluation},
		{"eval of string", &trace.XSEval{Linno: 2, Source: ast.EvalSource{Cmd: "echo"}},
			"Eval: (line 2 of string command 'echo')", describe.ToneEvaluation},
		{"eval of file", &trace.XSEval{Msg: "ok", Linno: 1, Source: ast.EvalSource{Src: "a.sh"}},
			"Eval: ok (line 1 of file a.sh)", describe.ToneEvaluation},
		{"trap", &trace.XSTrap{Msg: "handler", Signal: "INT"}, "Trapped SIGINT: handler", describe.ToneEvaluation},
		{"nested", &trace.XSNested{Outer: eval(trace.XSSemi, ""), Inner: eval(trace.XSSimple, "b")},
			"Semi > Simple command: b", describe.ToneEvaluation},
		{"nested quiet eval", &trace.XSNested{Outer: &trace.XSProc{CStr: "a"}, Inner: &trace.XSEval{Linno: 1}},
			"a", describe.ToneEvaluation},
		{"nested eval loop", &trace.XSNested{Outer: eval(trace.XSSimple, "a"), Inner: &trace.XSProc{Pid: 5, CStr: ": EvalLoop"}},
			"Simple command: a", describe.ToneEvaluation},
		{"expansion inside evaluation", &trace.XSExpand{Outer: eval(trace.XSSimple, "echo $x"), Inner: exp(trace.ESParam, "x")},
			"Simple command: echo $x > Parameter expansion: x", describe.ToneExpansion},
		// only XSNested drops a quiet inner step; an expansion is always shown
		{"expansion under the root process", &trace.XSExpand{Outer: &trace.XSProc{CStr: "echo $x"}, Inner: exp(trace.ESParam, "x")},
			"echo $x > Parameter expansion: x", describe.ToneExpansion},
		{"nested expansion", &trace.ESNested{Outer: exp(trace.ESCommand, ""), Inner: exp(trace.ESArith, "1+1")},
			"Command substitution > Arithmetic expansion: 1+1", describe.ToneExpansion},
		{"evaluation inside expansion", &trace.ESEval{Outer: exp(trace.ESCommand, "date"), Inner: eval(trace.XSSimple, "date")},
			"Command substitution: date > Simple command: date", describe.ToneEvaluation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			crumb := markup.New(markup.KindSpan)
			tone := describe.Step(crumb, tt.desc)

			if diff := cmp.Diff(tt.text, describe.Text(tt.desc)); diff != "" {
				t.Errorf("crumb text mismatch (-want +got):\n%s", diff)
			}
			if tone != tt.tone {
				t.Errorf("tone = %q, want %q", tone, tt.tone)
			}
		})
	}
}

func TestExpansionIcons(t *testing.T) {
	icons := map[string]string{
		trace.ESTilde:   "home",
		trace.ESParam:   "dollar sign",
		trace.ESCommand: "terminal",
		trace.ESArith:   "calculator",
		trace.ESSplit:   "unlinkify",
		trace.ESPath:    "disk outline",
		trace.ESQuote:   "quote right",
		trace.ESStep:    "expand arrows alternate",
	}
	for kind, icon := range icons {
		crumb := markup.New(markup.KindSpan)
		describe.Step(crumb, exp(kind, "m"))
		n := crumb.Find(icon)
		if n == nil || n.Kind != markup.KindIcon {
			t.Errorf("%s: missing %q icon", kind, icon)
		}
	}
}

func TestEveryLeafHasALabel(t *testing.T) {
	for _, tag := range trace.ExpansionTags() {
		if tag == "ESNested" || tag == "ESEval" {
			continue
		}
		if describe.Text(exp(tag, "")) == "" && tag != trace.ESStep {
			t.Errorf("%s renders no label", tag)
		}
	}
	for _, tag := range trace.EvaluationTags() {
		switch tag {
		case "XSStack", "XSProc", "XSEval", "XSTrap", "XSNested", "XSExpand":
			continue
		}
		if describe.Text(eval(tag, "")) == "" && tag != trace.XSStep {
			t.Errorf("%s renders no label", tag)
		}
	}
}

func TestQuiet(t *testing.T) {
	tests := []struct {
		name string
		step trace.EvalStep
		want bool
	}{
		{"eval without message", &trace.XSEval{Linno: 3}, true},
		{"eval with message", &trace.XSEval{Msg: "parsed"}, false},
		{"root process without command", &trace.XSProc{}, true},
		{"root process with command", &trace.XSProc{CStr: "echo"}, false},
		{"any process entering eval loop", &trace.XSProc{Pid: 4, CStr: ": EvalLoop"}, true},
		{"child process", &trace.XSProc{Pid: 4, CStr: "echo"}, false},
		{"leaf", eval(trace.XSSimple, ""), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := describe.Quiet(tt.step); got != tt.want {
				t.Errorf("Quiet() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNilDescriptionPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("describing nil should panic")
		}
	}()
	describe.Step(markup.Discard, nil)
}

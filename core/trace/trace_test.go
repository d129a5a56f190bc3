package trace_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/mgree/smoosh/core/ast"
	"github.com/mgree/smoosh/core/trace"
)

const echoStep = `{"term":{"tag":"Command","assigns":[],"args":[{"tag":"S","v":"echo"},{"tag":"F"},{"tag":"S","v":"hi"}],"rs":[]},
  "env":{"HOME":["/","r","o","o","t"]},"locals":[],"step":{"tag":"XSStep","msg":""},"STDOUT":"","STDERR":""}`

func TestDecodeBareArray(t *testing.T) {
	doc, err := trace.Decode([]byte("[" + echoStep + "]"))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if doc.Version != "" {
		t.Errorf("bare array has no version, got %q", doc.Version)
	}
	if len(doc.Entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(doc.Entries))
	}

	e := doc.Entries[0]
	wantTerm := &ast.Command{Args: ast.Words{&ast.Str{V: "echo"}, &ast.FieldSep{}, &ast.Str{V: "hi"}}}
	if diff := cmp.Diff(wantTerm, e.Term, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("term mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(&trace.EvalLeaf{Kind: trace.XSStep}, e.Step); diff != "" {
		t.Errorf("step mismatch (-want +got):\n%s", diff)
	}
	if got := e.Env.Names(); !cmp.Equal(got, []string{"HOME"}) {
		t.Errorf("env names = %v", got)
	}
	if !trace.Trivial(e.Step) {
		t.Error("empty XSStep should be trivial")
	}
}

func TestDecodeEnvelope(t *testing.T) {
	doc, err := trace.Decode([]byte(`{"version":"v1.4.0","steps":[` + echoStep + `]}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if doc.Version != "v1.4.0" || len(doc.Entries) != 1 {
		t.Errorf("got version %q with %d entries", doc.Version, len(doc.Entries))
	}
}

func TestDecodeVersionSkew(t *testing.T) {
	_, err := trace.Decode([]byte(`{"version":"2.0.0","steps":[]}`))
	var verr *trace.VersionError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *trace.VersionError, got %v", err)
	}
	if verr.Supported != trace.SupportedMajor {
		t.Errorf("supported = %q", verr.Supported)
	}
}

func TestDecodeErrorRecord(t *testing.T) {
	doc, err := trace.Decode([]byte(`[{"error":"unexpected token"}]`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	want := []trace.Entry{{Failure: &trace.Failure{Message: "unexpected token"}}}
	if diff := cmp.Diff(want, doc.Entries); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeSchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"not an array", `"trace"`},
		{"step without env", `[{"term":{"tag":"Done"},"step":{"tag":"XSStep","msg":""}}]`},
		{"stdout not a string", `[{"term":{"tag":"Done"},"env":{},"step":{"tag":"XSStep","msg":""},"STDOUT":3}]`},
		{"bad version", `{"version":"one","steps":[]}`},
		{"env value not a symbolic string", `[{"term":{"tag":"Done"},"env":{"x":1},"step":{"tag":"XSStep","msg":""}}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := trace.Decode([]byte(tt.in))
			if err == nil {
				t.Fatal("expected a validation error")
			}
			if !strings.Contains(err.Error(), "does not match schema") {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestDecodeSteps(t *testing.T) {
	in := `[{"term":{"tag":"Done"},"env":{},"step":
	  {"tag":"XSNested",
	   "outer":{"tag":"XSStack","func":"f","inner":{"tag":"XSSimple","msg":"echo"}},
	   "inner":{"tag":"XSExpand",
	            "outer":{"tag":"XSProc","pid":0,"c":{"tag":"Done"},"c_str":"done"},
	            "inner":{"tag":"ESEval","outer":{"tag":"ESCommand","msg":""},
	                     "inner":{"tag":"XSEval","msg":"","linno":2,"cmd":"echo $x"}}}}}]`
	doc, err := trace.Decode([]byte(in))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	want := &trace.XSNested{
		Outer: &trace.XSStack{Func: "f", Inner: &trace.EvalLeaf{Kind: trace.XSSimple, Msg: "echo"}},
		Inner: &trace.XSExpand{
			Outer: &trace.XSProc{Pid: 0, C: &ast.Done{}, CStr: "done"},
			Inner: &trace.ESEval{
				Outer: &trace.ExpLeaf{Kind: trace.ESCommand},
				Inner: &trace.XSEval{Linno: 2, Source: ast.EvalSource{Cmd: "echo $x"}},
			},
		},
	}
	if diff := cmp.Diff(want, doc.Entries[0].Step); diff != "" {
		t.Errorf("step mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeUnknownStep(t *testing.T) {
	_, err := trace.Decode([]byte(`[{"term":{"tag":"Done"},"env":{},"step":{"tag":"XSSimpel","msg":""}}]`))
	var tagErr *ast.TagError
	if !errors.As(err, &tagErr) {
		t.Fatalf("expected *ast.TagError, got %v", err)
	}
	if tagErr.Family != trace.FamilyEvalStep || tagErr.Path != "$[0].step" || tagErr.Suggestion != "XSSimple" {
		t.Errorf("unexpected tag error %+v", tagErr)
	}
}

func TestDecodeLocals(t *testing.T) {
	in := `[{"term":{"tag":"Done"},"env":{},"locals":[{"y":"unset","x":["1"]}],"step":{"tag":"XSStep","msg":""}}]`
	doc, err := trace.Decode([]byte(in))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	want := []trace.Scope{{
		{Name: "x", Value: ast.SymbolicString{ast.Char("1")}},
		{Name: "y", Marker: "unset"},
	}}
	if diff := cmp.Diff(want, doc.Entries[0].Locals); diff != "" {
		t.Errorf("locals mismatch (-want +got):\n%s", diff)
	}
}

func TestEnvDigestIgnoresKeyOrder(t *testing.T) {
	a, err := trace.Decode([]byte(`[{"term":{"tag":"Done"},"env":{"a":["1"],"b":["2"]},"step":{"tag":"XSStep","msg":""}}]`))
	if err != nil {
		t.Fatal(err)
	}
	b, err := trace.Decode([]byte(`[{"term":{"tag":"Done"},"env":{"b":["2"],"a":["1"]},"step":{"tag":"XSStep","msg":""}}]`))
	if err != nil {
		t.Fatal(err)
	}
	c, err := trace.Decode([]byte(`[{"term":{"tag":"Done"},"env":{"a":["1"],"b":["3"]},"step":{"tag":"XSStep","msg":""}}]`))
	if err != nil {
		t.Fatal(err)
	}

	if !a.Entries[0].Env.Equal(b.Entries[0].Env) {
		t.Error("environments differing only in key order should be equal")
	}
	if a.Entries[0].Env.Equal(c.Entries[0].Env) {
		t.Error("environments with different values should differ")
	}
}

func TestEmptyEnvMatchesDecodedEmptyEnv(t *testing.T) {
	doc, err := trace.Decode([]byte(`[{"term":{"tag":"Done"},"env":{},"step":{"tag":"XSStep","msg":""}}]`))
	if err != nil {
		t.Fatal(err)
	}
	if !trace.EmptyEnv().Equal(doc.Entries[0].Env) {
		t.Error("decoded {} should equal the initial empty environment")
	}
}

func TestCheckVersion(t *testing.T) {
	tests := []struct {
		version string
		ok      bool
	}{
		{"v1.0.0", true},
		{"1.2.3", true},
		{"v1.2.3-rc.1", true},
		{"v2.0.0", false},
		{"banana", false},
	}
	for _, tt := range tests {
		err := trace.CheckVersion(tt.version)
		if (err == nil) != tt.ok {
			t.Errorf("CheckVersion(%q) = %v, want ok=%v", tt.version, err, tt.ok)
		}
	}
}

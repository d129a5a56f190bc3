package tracefmt_test

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mgree/smoosh/core/markup"
	"github.com/mgree/smoosh/core/trace"
	"github.com/mgree/smoosh/core/tracefmt"
)

const echoTerm = `{"tag":"Command","assigns":[],"args":[{"tag":"S","v":"echo"},{"tag":"F"},{"tag":"S","v":"hi"}],"rs":[]}`

const (
	bareStep   = `{"tag":"XSStep","msg":""}`
	simpleStep = `{"tag":"XSSimple","msg":"echo hi"}`
)

func entry(term, env, step, stdout string) string {
	return fmt.Sprintf(`{"term":%s,"env":%s,"locals":[],"step":%s,"STDOUT":%q,"STDERR":""}`, term, env, step, stdout)
}

func decode(t *testing.T, entries ...string) *trace.Document {
	t.Helper()
	doc, err := trace.Decode([]byte("[" + strings.Join(entries, ",") + "]"))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	return doc
}

func render(doc *trace.Document) *markup.Node {
	a := &tracefmt.Assembler{}
	return a.Render(doc)
}

func TestEchoWithoutPanel(t *testing.T) {
	doc := decode(t, entry(echoTerm, `{}`, bareStep, ""))
	root := render(doc)

	if got := len(root.FindAll("step")); got != 0 {
		t.Errorf("got %d panels, want 0 for an empty XSStep", got)
	}
	want := "echo hi\n" +
		"Variable\tValue\n" +
		"STDOUT\n" +
		"STDERR\n"
	if diff := cmp.Diff(want, markup.PlainText(root)); diff != "" {
		t.Errorf("text mismatch (-want +got):\n%s", diff)
	}
}

func TestUnchangedStateIsSuppressed(t *testing.T) {
	doc := decode(t,
		entry(echoTerm, `{"a":["1"],"b":["2"]}`, simpleStep, "hi\n"),
		// same values, different key order
		entry(echoTerm, `{"b":["2"],"a":["1"]}`, simpleStep, "hi\n"),
		entry(echoTerm, `{"a":["1"],"b":["2"]}`, simpleStep, "hi\n"),
	)
	panels := render(doc).FindAll("step")
	if len(panels) != 3 {
		t.Fatalf("got %d panels, want 3", len(panels))
	}

	first, second, final := panels[0], panels[1], panels[2]

	if first.Find("env") == nil {
		t.Error("first step changed the environment and should show it")
	}
	if got := len(first.FindAll("stream")); got != 1 {
		t.Errorf("first step: got %d stream cards, want 1 (only STDOUT changed)", got)
	}
	if first.Find("stream-STDOUT") == nil {
		t.Error("first step should show STDOUT")
	}

	if second.Find("env") != nil {
		t.Error("second step has an identical environment and should not show it")
	}
	if second.Find("streams") != nil {
		t.Error("second step has identical streams and should not show them")
	}
	if second.Find("term") == nil {
		t.Error("second step should still show its term")
	}

	if final.Find("env") == nil {
		t.Error("final step always shows the environment")
	}
	if got := len(final.FindAll("stream")); got != 2 {
		t.Errorf("final step: got %d stream cards, want 2", got)
	}
}

func TestTrivialStepsStillTrackState(t *testing.T) {
	doc := decode(t,
		entry(echoTerm, `{"x":["1"]}`, bareStep, "a"),
		entry(echoTerm, `{"x":["1"]}`, simpleStep, "a"),
		entry(echoTerm, `{}`, bareStep, "a"),
	)
	root := render(doc)

	panels := root.FindAll("step")
	if len(panels) != 1 {
		t.Fatalf("got %d panels, want 1", len(panels))
	}
	// the hidden first step already showed x=1 and "a"
	if panels[0].Find("env") != nil || panels[0].Find("streams") != nil {
		t.Error("state shown by a trivial step should not be repeated")
	}
	if got := len(root.FindAll("env")); got != 2 {
		t.Errorf("got %d env tables, want 2 (first and final)", got)
	}
}

func TestErrorDocument(t *testing.T) {
	root := render(decode(t, `{"error":"unexpected token"}`))

	panels := root.FindAll("step")
	if len(panels) != 1 {
		t.Fatalf("got %d panels, want 1", len(panels))
	}
	p := panels[0]
	if !p.Has("red") {
		t.Errorf("error panel roles %v should include red", p.Roles)
	}
	if p.Find("thumbs down") == nil {
		t.Error("error panel should carry the thumbs down icon")
	}
	for _, role := range []string{"term", "env", "streams"} {
		if root.Find(role) != nil {
			t.Errorf("error document should not render %s", role)
		}
	}
	want := "Parse error\nunexpected token\n"
	if diff := cmp.Diff(want, markup.PlainText(root)); diff != "" {
		t.Errorf("text mismatch (-want +got):\n%s", diff)
	}
}

func TestPanelTone(t *testing.T) {
	tests := []struct {
		name string
		step string
		tone string
	}{
		{"evaluation", simpleStep, "blue"},
		{"expansion", `{"tag":"ESParam","msg":"x"}`, "pink"},
		{"expansion inside evaluation", `{"tag":"XSExpand","outer":{"tag":"XSSimple","msg":"echo"},"inner":{"tag":"ESTilde","msg":"~"}}`, "pink"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			panels := render(decode(t, entry(echoTerm, `{}`, tt.step, ""))).FindAll("step")
			if len(panels) != 1 {
				t.Fatalf("got %d panels, want 1", len(panels))
			}
			for _, role := range []string{"tertiary", "inverted", tt.tone} {
				if !panels[0].Has(role) {
					t.Errorf("panel roles %v missing %q", panels[0].Roles, role)
				}
			}
		})
	}
}

func TestEnvTable(t *testing.T) {
	doc := decode(t, `{"term":`+echoTerm+`,"env":{"z":["1"],"b":["3"]},
		"locals":[{"y":"unset","a":["2"]}],"step":`+bareStep+`,"STDOUT":"","STDERR":""}`)
	table := render(doc).Find("env")
	if table == nil {
		t.Fatal("missing env table")
	}

	want := "Variable\tValue\n" +
		"a\t2\n" +
		"y\tunset\n" +
		"b\t3\n" +
		"z\t1\n"
	if diff := cmp.Diff(want, markup.PlainText(table)); diff != "" {
		t.Errorf("table mismatch (-want +got):\n%s", diff)
	}
	if got := len(table.FindAll("local")); got != 2 {
		t.Errorf("got %d local rows, want 2", got)
	}
	if table.Find("unset") == nil {
		t.Error("marker should be a role on the value cell")
	}
}

func TestCrumbCollectsTermMilestones(t *testing.T) {
	term := `{"tag":"ExpStart","w":[{"tag":"S","v":"x"}]}`
	root := render(decode(t, entry(term, `{}`, `{"tag":"ESTilde","msg":"~"}`, "")))

	crumb := root.Find("crumb")
	if crumb == nil {
		t.Fatal("missing crumb")
	}
	want := "Tilde expansion: ~ > Starting expansion\n"
	if diff := cmp.Diff(want, markup.PlainText(crumb)); diff != "" {
		t.Errorf("crumb mismatch (-want +got):\n%s", diff)
	}
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	exact := `{"tag":"Command","assigns":[],"args":[{"tag":"K","v":{"tag":"Param","var":"x",` +
		`"fmt":{"tag":"Substring","side":"Suffix","mode":"Exact","w":[{"tag":"S","v":"y"}]}}}],"rs":[]}`
	doc := decode(t,
		entry(echoTerm, `{}`, bareStep, ""),
		entry(exact, `{}`, simpleStep, ""),
	)
	a := &tracefmt.Assembler{Logger: logger}
	a.Render(doc)

	out := buf.String()
	if !strings.Contains(out, "index=1") || !strings.Contains(out, "tag=XSSimple") {
		t.Errorf("missing debug record for the visible step:\n%s", out)
	}
	if strings.Contains(out, "index=0") {
		t.Errorf("trivial step should not be logged:\n%s", out)
	}
	if !strings.Contains(out, "render notice") {
		t.Errorf("missing notice for exact substring outside case:\n%s", out)
	}
}

func TestRenderIsRepeatable(t *testing.T) {
	doc := decode(t,
		entry(echoTerm, `{"x":["1"]}`, simpleStep, "hi"),
		`{"error":"boom"}`,
	)
	first := markup.PlainText(render(doc))
	second := markup.PlainText(render(doc))
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("rendering the same document twice differs (-first +second):\n%s", diff)
	}
}

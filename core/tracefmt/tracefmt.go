// Package tracefmt assembles a whole trace into markup: one panel per
// interesting step, each with its breadcrumb, the reconstructed term, and
// the environment and output streams when they changed.
//
// Rendering is a single forward pass. State that did not change since the
// previous step is not repeated, except on the final step, which always
// shows everything.
package tracefmt

import (
	"log/slog"

	"github.com/mgree/smoosh/core/describe"
	"github.com/mgree/smoosh/core/invariant"
	"github.com/mgree/smoosh/core/markup"
	"github.com/mgree/smoosh/core/trace"
	"github.com/mgree/smoosh/core/unparse"
)

// Assembler renders trace documents. The zero value is ready to use.
type Assembler struct {
	// Renderer unparses terms. Nil means unparse.New().
	Renderer *unparse.Renderer
	// Logger receives one debug record per visible step and renderer
	// notices. Nil discards.
	Logger *slog.Logger
}

// snapshot is what the previous step showed.
type snapshot struct {
	env    trace.Env
	stdout string
	stderr string
}

// Render renders doc into a fresh root node.
func (a *Assembler) Render(doc *trace.Document) *markup.Node {
	root := markup.New(markup.KindBlock, "trace")
	a.RenderTrace(root, doc)
	return root
}

// RenderTrace appends the rendering of doc to root.
func (a *Assembler) RenderTrace(root markup.Element, doc *trace.Document) {
	invariant.NotNil(doc, "trace document")

	logger := a.logger()
	renderer := a.renderer(logger)
	last := snapshot{env: trace.EmptyEnv()}

	for i, e := range doc.Entries {
		if e.Failure != nil {
			a.failure(root, e.Failure)
			logger.Debug("error record", "index", i, "message", e.Failure.Message)
			continue
		}
		invariant.NotNil(e.Step, "step description")

		// trivial steps still show their term and state, just without a
		// panel of their own
		body, crumb := root, markup.Discard
		if !trace.Trivial(e.Step) {
			panel := root.Open(markup.KindPanel, "step")
			crumb = panel.Open(markup.KindBlock, "crumb", "breadcrumb")
			panel.Tag("tertiary", "inverted", describe.Step(crumb, e.Step))
			body = panel
			logger.Debug("step", "index", i, "tag", e.Step.Tag())
		}

		isFinal := i == len(doc.Entries)-1

		term := body.Open(markup.KindBlock, "term")
		renderer.WithCrumb(crumb).Term(term, e.Term)

		if isFinal || !last.env.Equal(e.Env) {
			env(body.Open(markup.KindTable, "env"), renderer, e)
		}
		last.env = e.Env

		if isFinal || e.Stdout != last.stdout || e.Stderr != last.stderr {
			streams := body.Open(markup.KindBlock, "streams")
			if isFinal || e.Stdout != last.stdout {
				stream(streams, "STDOUT", e.Stdout)
			}
			if isFinal || e.Stderr != last.stderr {
				stream(streams, "STDERR", e.Stderr)
			}
		}
		last.stdout = e.Stdout
		last.stderr = e.Stderr
	}
}

func (a *Assembler) logger() *slog.Logger {
	if a.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return a.Logger
}

func (a *Assembler) renderer(logger *slog.Logger) *unparse.Renderer {
	r := a.Renderer
	if r == nil {
		r = unparse.New()
	}
	if r.Notice == nil {
		c := *r
		c.Notice = func(msg string) { logger.Info("render notice", "notice", msg) }
		r = &c
	}
	return r
}

// failure renders an engine error record as a red panel holding the raw
// message.
func (a *Assembler) failure(root markup.Element, f *trace.Failure) {
	panel := root.Open(markup.KindPanel, "step", "tertiary", "inverted", describe.ToneError)
	crumb := panel.Open(markup.KindBlock, "crumb", "breadcrumb")
	crumb.Open(markup.KindIcon, "thumbs down")
	crumb.Open(markup.KindSection).Text("Parse error")
	panel.Open(markup.KindBlock, "error").Text(f.Message)
}

// env renders the local scopes in recorded order and then the globals, each
// sorted by name.
func env(table markup.Element, r *unparse.Renderer, e trace.Entry) {
	head := table.Open(markup.KindRow)
	head.Open(markup.KindHead).Text("Variable")
	head.Open(markup.KindHead).Text("Value")

	for _, scope := range e.Locals {
		for _, l := range scope {
			row := table.Open(markup.KindRow, "local")
			row.Open(markup.KindCell, "var").Text(l.Name)
			val := row.Open(markup.KindCell, "val")
			if l.Marker != "" {
				val.Tag(l.Marker)
				val.Open(markup.KindSpan, "marker").Text(l.Marker)
				continue
			}
			r.SymbolicString(val, l.Value)
		}
	}

	for _, name := range e.Env.Names() {
		row := table.Open(markup.KindRow)
		row.Open(markup.KindCell, "var").Text(name)
		r.SymbolicString(row.Open(markup.KindCell, "val"), e.Env.Vars[name])
	}
}

func stream(streams markup.Element, name, text string) {
	card := streams.Open(markup.KindCard, "stream", "stream-"+name)
	card.Open(markup.KindBlock, "header").Text(name)
	card.Open(markup.KindPre, "stream-text").Text(text)
}

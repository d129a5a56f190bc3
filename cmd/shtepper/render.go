package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mgree/smoosh/core/markup"
	"github.com/mgree/smoosh/core/trace"
	"github.com/mgree/smoosh/core/tracefmt"
	"github.com/mgree/smoosh/internal/config"
)

func newRenderCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "render [FILE|-]",
		Short: "Render a trace document",
		Long: `Render a trace document produced by the stepping shell.

With no FILE, or when FILE is -, the document is read from stdin.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd, opts)
			if err != nil {
				return err
			}
			doc, err := a.load(args)
			if err != nil {
				return err
			}
			return a.render(a.stdout, doc)
		},
	}
}

func newCheckCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check [FILE|-]",
		Short: "Validate a trace document without rendering it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd, opts)
			if err != nil {
				return err
			}
			doc, err := a.load(args)
			if err != nil {
				return &CLIError{
					Type:    "check",
					Message: "invalid trace document",
					Details: err.Error(),
				}
			}

			failures := 0
			for _, e := range doc.Entries {
				if e.Failure != nil {
					failures++
				}
			}
			_, _ = fmt.Fprintf(a.stdout, "ok: %d steps, %d error records\n", len(doc.Entries)-failures, failures)
			return nil
		},
	}
}

// load reads and decodes the document named by args.
func (a *app) load(args []string) (*trace.Document, error) {
	r, name, closeFn, err := openInput(a, args)
	if err != nil {
		return nil, &CLIError{Type: "input", Message: "could not read trace", Details: err.Error()}
	}
	defer func() { _ = closeFn() }()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &CLIError{Type: "input", Message: "could not read trace", Details: err.Error()}
	}
	return a.decode(name, data)
}

func (a *app) decode(source string, data []byte) (*trace.Document, error) {
	doc, err := trace.Decode(data)
	if err != nil {
		return nil, &decodeError{source: source, err: err}
	}
	a.logger.Debug("decoded trace", "source", source, "entries", len(doc.Entries), "version", doc.Version)
	return doc, nil
}

// render writes doc to w in the configured format. Text output is styled
// when colour is on; ansi output always is.
func (a *app) render(w io.Writer, doc *trace.Document) error {
	asm := &tracefmt.Assembler{Logger: a.logger}
	root := asm.Render(doc)

	switch {
	case a.cfg.Render.Format == config.FormatHTML:
		if err := markup.WriteHTML(w, root); err != nil {
			return err
		}
		_, err := io.WriteString(w, "\n")
		return err
	case a.cfg.Render.Format == config.FormatANSI || a.color:
		theme := markup.DefaultTheme(markup.NewANSIRenderer(w))
		_, err := io.WriteString(w, markup.ANSI(root, theme))
		return err
	}
	_, err := io.WriteString(w, markup.PlainText(root))
	return err
}

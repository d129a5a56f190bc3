package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mgree/smoosh/core/ast"
	"github.com/mgree/smoosh/core/trace"
)

// CLIError represents a formatted CLI error with context
type CLIError struct {
	Type    string // "config", "input", "decode", "check", "engine"
	Message string
	Details string // Additional context
	Hint    string // How to fix it
}

// Error implements the error interface
func (e *CLIError) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)
	if e.Details != "" {
		b.WriteString("\n")
		b.WriteString(e.Details)
	}
	if e.Hint != "" {
		b.WriteString("\n")
		b.WriteString(e.Hint)
	}
	return b.String()
}

// FormatError formats an error for CLI output with colors
func FormatError(w io.Writer, err error, useColor bool) {
	if err == nil {
		return
	}
	p := newPalette(w, useColor)

	var (
		cliErr     *CLIError
		tagErr     *ast.TagError
		versionErr *trace.VersionError
	)
	switch {
	case errors.As(err, &cliErr):
		formatCLIError(w, p, cliErr)
	case errors.As(err, &tagErr):
		formatTagError(w, p, tagErr)
	case errors.As(err, &versionErr):
		formatCLIError(w, p, &CLIError{
			Message: err.Error(),
			Hint:    "Upgrade shtepper or run an engine that emits a supported trace version",
		})
	default:
		_, _ = fmt.Fprintf(w, "%s%s\n", p.red.Render("Error: "), err.Error())
	}
}

// formatTagError formats an unknown tag. The message already carries the
// path and any suggestion.
func formatTagError(w io.Writer, p palette, err *ast.TagError) {
	_, _ = fmt.Fprintf(w, "%s%s\n", p.red.Render("Error: "), err.Error())
	_, _ = fmt.Fprintf(w, "%s%s\n", p.yellow.Render("Hint: "),
		p.gray.Render("the engine emitted a node this renderer does not know; check both come from the same release"))
}

// formatCLIError formats CLI errors
func formatCLIError(w io.Writer, p palette, err *CLIError) {
	_, _ = fmt.Fprintf(w, "%s%s\n", p.red.Render("Error: "), err.Message)

	if err.Details != "" {
		_, _ = fmt.Fprintf(w, "\n%s\n", err.Details)
	}

	if err.Hint != "" {
		_, _ = fmt.Fprintf(w, "%s%s\n", p.yellow.Render("Hint: "), err.Hint)
	}
}

// decodeError wraps a document decoding failure. Typed decode errors stay
// reachable through errors.As.
type decodeError struct {
	source string
	err    error
}

func (e *decodeError) Error() string { return fmt.Sprintf("%s: %v", e.source, e.err) }
func (e *decodeError) Unwrap() error { return e.err }

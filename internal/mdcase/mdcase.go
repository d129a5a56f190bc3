// Package mdcase reads render test cases from Markdown.
//
// A case starts at a heading "Test: <name>" and holds one ```json fence with
// the input and one or more expectation fences:
//
//	## Test: simple command
//
//	```json
//	{"tag": "Command", ...}
//	```
//
//	```shell
//	echo hi
//	```
//
// Prose and unlabelled fences between cases are ignored.
package mdcase

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

const headingPrefix = "Test: "

// InputFence labels the input fence.
const InputFence = "json"

// Expectation fence labels.
const (
	// ExpectShell is the plain text of an unparsed term.
	ExpectShell = "shell"
	// ExpectCrumb is the plain text of a step breadcrumb.
	ExpectCrumb = "crumb"
	// ExpectTrace is the plain text of a whole rendered trace.
	ExpectTrace = "trace"
)

type Case struct {
	Name  string
	File  string
	Line  int
	Input string
	// Expect maps a fence label to its content with the final newline
	// removed.
	Expect map[string]string
}

// Parse extracts the cases of one Markdown document. file is only used in
// error messages and Case.File.
func Parse(file string, source []byte) ([]Case, error) {
	doc := goldmark.New().Parser().Parse(text.NewReader(source))

	var (
		cases []Case
		cur   *Case
	)
	flush := func() error {
		if cur == nil {
			return nil
		}
		if cur.Input == "" {
			return fmt.Errorf("%s:%d: test %q has no %s fence", file, cur.Line, cur.Name, InputFence)
		}
		if len(cur.Expect) == 0 {
			return fmt.Errorf("%s:%d: test %q has no expectation fence", file, cur.Line, cur.Name)
		}
		cases = append(cases, *cur)
		cur = nil
		return nil
	}

	err := ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := node.(type) {
		case *ast.Heading:
			title := headingText(n, source)
			if !strings.HasPrefix(title, headingPrefix) {
				return ast.WalkSkipChildren, nil
			}
			if err := flush(); err != nil {
				return ast.WalkStop, err
			}
			cur = &Case{
				Name:   strings.TrimSpace(strings.TrimPrefix(title, headingPrefix)),
				File:   file,
				Line:   lineOf(n, source),
				Expect: map[string]string{},
			}
			return ast.WalkSkipChildren, nil

		case *ast.FencedCodeBlock:
			lang := string(n.Language(source))
			if lang == "" {
				return ast.WalkContinue, nil
			}
			line := lineOf(n, source)
			if cur == nil {
				return ast.WalkStop, fmt.Errorf("%s:%d: %s fence outside of a test", file, line, lang)
			}
			body := strings.TrimSuffix(fenceContent(n, source), "\n")
			switch lang {
			case InputFence:
				if cur.Input != "" {
					return ast.WalkStop, fmt.Errorf("%s:%d: test %q has more than one %s fence", file, line, cur.Name, InputFence)
				}
				cur.Input = body
			case ExpectShell, ExpectCrumb, ExpectTrace:
				if _, dup := cur.Expect[lang]; dup {
					return ast.WalkStop, fmt.Errorf("%s:%d: test %q has more than one %s fence", file, line, cur.Name, lang)
				}
				cur.Expect[lang] = body
			default:
				return ast.WalkStop, fmt.Errorf("%s:%d: unknown fence %q in test %q", file, line, lang, cur.Name)
			}
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return cases, nil
}

// Glob parses every file matching pattern, in name order.
func Glob(pattern string) ([]Case, error) {
	files, err := filepath.Glob(pattern)
	if err != nil {
		return nil, err
	}
	sort.Strings(files)

	var all []Case
	for _, f := range files {
		src, err := os.ReadFile(f)
		if err != nil {
			return nil, err
		}
		cases, err := Parse(f, src)
		if err != nil {
			return nil, err
		}
		all = append(all, cases...)
	}
	return all, nil
}

func headingText(n ast.Node, source []byte) string {
	var b bytes.Buffer
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if t, ok := c.(*ast.Text); ok && entering {
			b.Write(t.Segment.Value(source))
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}

func fenceContent(n *ast.FencedCodeBlock, source []byte) string {
	var b bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(source))
	}
	return b.String()
}

// lineOf is the 1-based line of the node's first content line; for a fence
// that is the line after the opening backticks.
func lineOf(n ast.Node, source []byte) int {
	lines := n.Lines()
	if lines.Len() == 0 {
		return 1
	}
	return bytes.Count(source[:lines.At(0).Start], []byte("\n")) + 1
}

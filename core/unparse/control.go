package unparse

import (
	"fmt"
	"strconv"

	"github.com/mgree/smoosh/core/ast"
	"github.com/mgree/smoosh/core/invariant"
	"github.com/mgree/smoosh/core/markup"
)

// Control renders a control code in its ${...}, $(...) or "..." syntax.
func (r *Renderer) Control(el markup.Element, c ast.Control) {
	el.Tag("control-" + c.Tag())

	switch c := c.(type) {
	case *ast.Tilde:
		el.Text("~" + c.Prefix)

	case *ast.Param:
		el.Text("${")
		// ${#x}, not ${x#}
		_, length := c.Fmt.(*ast.FmtLength)
		if length {
			el.Text("#")
		}
		el.Open(markup.KindSpan, "param-varname", "variable").Text(c.Var)
		if !length {
			r.Format(el.Open(markup.KindSpan, "param-format"), c.Fmt)
		}
		el.Text("}")

	case *ast.LAssign:
		r.lparam(el, c.Var, "=", c.F, c.W)

	case *ast.LMatch:
		r.lparam(el, c.Var, r.substring(c.Side, c.Mode), c.F, c.W)

	case *ast.LError:
		r.lparam(el, c.Var, "?", c.F, c.W)

	case *ast.Backtick:
		el.Text("$(")
		r.Stmt(el.Open(markup.KindSpan), c.Stmt)
		el.Text(")")

	case *ast.LBacktick:
		r.substitution(el, c.Orig, c.Pid)

	case *ast.LBacktickWait:
		r.substitution(el, c.Orig, c.Pid)

	case *ast.Arith:
		el.Text("$((")
		r.ExpandedWords(el.Open(markup.KindSpan), c.F)
		r.Words(el.Open(markup.KindSpan), c.W)
		el.Text("))")

	case *ast.Quote:
		el.Tag("quoted")
		el.Text(`"`)
		r.ExpandedWords(el.Open(markup.KindSpan), c.F)
		r.Words(el.Open(markup.KindSpan), c.W)
		el.Text(`"`)

	default:
		invariant.Unreachable(string(ast.FamilyControl), c)
	}
}

// lparam renders a parameter expansion whose operand is partly expanded:
// ${var<op><expanded><remaining>}.
func (r *Renderer) lparam(el markup.Element, name, op string, f ast.ExpandedWords, w ast.Words) {
	el.Text("${")
	el.Open(markup.KindSpan, "param-varname", "variable").Text(name)
	format := el.Open(markup.KindSpan, "param-format")
	format.Text(op)
	r.ExpandedWords(format.Open(markup.KindSpan), f)
	r.Words(format.Open(markup.KindSpan), w)
	el.Text("}")
}

func (r *Renderer) substitution(el markup.Element, orig ast.Stmt, pid int) {
	el.Text("$(")
	r.Stmt(el.Open(markup.KindSpan), orig)
	el.Text(")")
	el.Sep()
	el.Open(markup.KindComment).Text("running with pid " + strconv.Itoa(pid))
}

// Format renders a parameter format: its operator glyph followed by its
// operand. Normal renders nothing; Length renders "#".
func (r *Renderer) Format(el markup.Element, f ast.Format) {
	switch f := f.(type) {
	case *ast.FmtNormal:
		return
	case *ast.FmtLength:
		el.Text("#")
		return
	case *ast.FmtSubstring:
		el.Text(r.substring(f.Side, f.Mode))
	case *ast.FmtDefault, *ast.FmtNDefault, *ast.FmtAssign, *ast.FmtNAssign,
		*ast.FmtError, *ast.FmtNError, *ast.FmtAlt, *ast.FmtNAlt:
		op, ok := r.Tables.FormatOp[f.Tag()]
		invariant.Invariant(ok, "no glyph for format %s", f.Tag())
		el.Text(op)
	default:
		invariant.Unreachable(string(ast.FamilyFormat), f)
	}
	r.Words(el.Open(markup.KindSpan), ast.Operand(f))
}

// substring returns the glyph for a prefix or suffix match: single for
// Shortest, doubled for Longest. Exact belongs to case patterns; elsewhere
// it renders as the single glyph and is reported through Notice.
func (r *Renderer) substring(side ast.SubstringSide, mode ast.SubstringMode) string {
	if mode == ast.Exact {
		r.notice(fmt.Sprintf("exact %s match outside a case pattern", side))
	}
	return r.matchOp(side, mode)
}

func (r *Renderer) matchOp(side ast.SubstringSide, mode ast.SubstringMode) string {
	op, ok := r.Tables.SideOp[side]
	invariant.Invariant(ok, "no glyph for substring side %q", side)

	switch mode {
	case ast.Shortest, ast.Exact:
		return op
	case ast.Longest:
		return op + op
	}
	invariant.Unreachable("substring mode", mode)
	return ""
}

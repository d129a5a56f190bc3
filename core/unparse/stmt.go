package unparse

import (
	"fmt"
	"strconv"

	"github.com/mgree/smoosh/core/ast"
	"github.com/mgree/smoosh/core/invariant"
	"github.com/mgree/smoosh/core/markup"
)

// Stmt unparses s into el.
//
// Grouping forms are printed so the text still parses when statements are
// nested or chained: a background job is "{ c; } &", a negation "! { c; }",
// and a function body always gets braces.
func (r *Renderer) Stmt(el markup.Element, s ast.Stmt) {
	invariant.NotNil(s, "statement")
	el.Tag("stmt", "stmt-"+s.Tag())

	switch s := s.(type) {
	// simple commands
	case *ast.Command:
		simple(r, el, s.Assigns, s.Args, s.Redirs, r.Words, r.Words)
	case *ast.CommandExpArgs:
		simple(r, el, s.Assigns, s.Args, s.Redirs, r.Words, r.ExpansionState)
	case *ast.CommandExpRedirs:
		simple(r, el, s.Assigns, s.Args, s.Redirs, r.Words, r.Fields)
	case *ast.CommandExpAssign:
		simple(r, el, s.Assigns, s.Args, ast.RedirState{}, r.ExpansionState, r.Fields)
	case *ast.CommandReady:
		simple(r, el, s.Assigns, s.Args, ast.RedirState{}, r.SymbolicString, r.Fields)

	case *ast.Pipe:
		for i, c := range s.Cs {
			if i > 0 {
				el.Sep()
				el.Text("|")
				el.Sep()
			}
			r.Stmt(el.Open(markup.KindSpan), c)
		}
		if s.Bg {
			el.Sep()
			el.Text("&")
		}

	case *ast.Redir:
		r.redirected(el, s.C, s.Redirs)
	case *ast.RedirExpRedirs:
		r.redirected(el, s.C, s.Redirs)

	case *ast.Background:
		r.background(el, s.C, s.Redirs)
	case *ast.BackgroundExpRedirs:
		r.background(el, s.C, s.Redirs)

	case *ast.Subshell:
		r.subshell(el, s.C, s.Redirs)
	case *ast.SubshellExpRedirs:
		r.subshell(el, s.C, s.Redirs)

	case *ast.And:
		r.binary(el, s.L, "&&", s.R)
	case *ast.Or:
		r.binary(el, s.L, "||", s.R)
	case *ast.Semi:
		if endsInAmp(s.L) {
			// "c &" already terminates c and may not be followed by ";"
			r.Stmt(el.Open(markup.KindSpan), s.L)
			el.Sep()
			r.Stmt(el.Open(markup.KindSpan), s.R)
			break
		}
		r.binary(el, s.L, ";", s.R)

	case *ast.Not:
		keyword(el, "!")
		el.Sep()
		r.braces(el, s.C)

	case *ast.If:
		r.ifStmt(el, s)

	case *ast.While:
		r.while(el, s.Cond, s.Body)
	case *ast.WhileCond:
		keyword(el, "if")
		el.Sep()
		r.Stmt(el.Open(markup.KindSpan, "loop-current"), s.Cur)
		terminate(el, s.Cur)
		el.Sep()
		keyword(el, "then")
		el.Sep()
		r.Stmt(el.Open(markup.KindSpan), s.Body)
		terminate(el, s.Body)
		el.Sep()
		r.while(el.Open(markup.KindSpan, "loop"), s.Cond, s.Body)
		el.Text(";")
		el.Sep()
		keyword(el, "fi")
	case *ast.WhileRunning:
		r.inFlight(el, s.Cur, func(loop markup.Element) { r.while(loop, s.Cond, s.Body) })

	case *ast.For:
		forLoop(r, el, s.Var, s.Args, s.Body, r.Words)
	case *ast.ForExpArgs:
		forLoop(r, el, s.Var, s.Args, s.Body, r.ExpansionState)
	case *ast.ForExpanded:
		forLoop(r, el, s.Var, s.Args, s.Body, r.Fields)
	case *ast.ForRunning:
		r.inFlight(el, s.Cur, func(loop markup.Element) {
			forLoop(r, loop, s.Var, s.Args, s.Body, r.Fields)
		})

	case *ast.Case:
		caseStmt(r, el, s.Args, nil, s.Cases, r.Words)
	case *ast.CaseExpArg:
		caseStmt(r, el, s.Args, nil, s.Cases, r.ExpansionState)
	case *ast.CaseMatch:
		caseStmt(r, el, s.Args, nil, s.Cases, r.SymbolicString)
	case *ast.CaseCheckMatch:
		// the pattern under test was peeled off the front of its arm, so it
		// shows as an arm of its own ahead of the remaining arms
		peeled := func(arms markup.Element) {
			arm := arms.Open(markup.KindSpan, "case-arm", "case-checking")
			r.ExpansionState(arm.Open(markup.KindSpan, "case-pattern"), s.Pat)
			arm.Text(")")
			arm.Sep()
			r.Stmt(arm.Open(markup.KindSpan), s.C)
			arm.Text(";;")
		}
		caseStmt(r, el, s.Args, peeled, s.Cases, r.SymbolicString)

	case *ast.Defun:
		el.Open(markup.KindSpan, "function-name").Text(s.Name)
		el.Text("()")
		el.Sep()
		r.braces(el, s.Body)

	case *ast.Call:
		r.Stmt(el.Open(markup.KindSpan), s.C)
		el.Sep()
		comment(el, "in call to "+s.F)

	case *ast.EvalLoop:
		comment(el, evalLoopNote(s.Source))
	case *ast.EvalLoopCmd:
		r.Stmt(el.Open(markup.KindSpan), s.C)
		el.Sep()
		comment(el, evalLoopNote(s.Source))

	case *ast.Break:
		r.icon("external link alternate")
		keyword(el, "break")
		el.Sep()
		el.Text(strconv.Itoa(s.N))
	case *ast.Continue:
		r.icon("undo alternate")
		keyword(el, "continue")
		el.Sep()
		el.Text(strconv.Itoa(s.N))
	case *ast.Return:
		r.icon("eject")
		keyword(el, "return")
	case *ast.Exit:
		r.icon("power off")
		keyword(el, "exit")
	case *ast.Done:
		r.icon("check circle outline")

	case *ast.Exec:
		r.icon("sign out alternate")
		r.SymbolicString(el.Open(markup.KindSpan, "exec-argv0"), s.CmdArgv)
		if len(s.Args) > 0 {
			el.Sep()
			r.Fields(el.Open(markup.KindSpan), s.Args)
		}

	case *ast.Wait:
		r.icon("wait")
		keyword(el, "wait")
		el.Sep()
		el.Text(strconv.Itoa(s.Pid))
		if s.Steps != nil {
			el.Sep()
			comment(el, fmt.Sprintf("waiting %d steps", *s.Steps))
		}

	case *ast.Trapped:
		r.Stmt(el.Open(markup.KindSpan, "trap-handler"), s.Handler)
		el.Sep()
		comment(el, fmt.Sprintf("trapped on %s will restore ec %d", s.Signal, s.EC))
		el.Open(markup.KindBreak)
		r.Stmt(el.Open(markup.KindSpan), s.Cont)

	case *ast.CheckedExit:
		r.Stmt(el.Open(markup.KindSpan), s.C)
		el.Sep()
		comment(el, "errexit checking disabled")

	case *ast.Pushredir:
		r.Stmt(el.Open(markup.KindSpan), s.C)

	default:
		invariant.Unreachable(string(ast.FamilyStmt), s)
	}
}

// simple renders a simple command at any evaluation phase. Each phase keeps
// assignment values and arguments in its own representation, so the
// renderers for both are passed in. A separator goes between two sections
// only when both are non-empty.
func simple[A, G ast.Value](
	r *Renderer,
	el markup.Element,
	assigns []ast.Assign[A],
	args G,
	redirs ast.RedirState,
	renderAssign func(markup.Element, A),
	renderArgs func(markup.Element, G),
) {
	hasArgs := !valueEmpty(args)
	hasRedirs := !redirs.Empty()

	if len(assigns) > 0 {
		as := el.Open(markup.KindSpan, "simple-assigns")
		for i, a := range assigns {
			if i > 0 {
				as.Sep()
			}
			assign := as.Open(markup.KindSpan, "assign")
			assign.Open(markup.KindSpan, "variable").Text(a.Var)
			assign.Text("=")
			renderAssign(assign.Open(markup.KindSpan, "assign-value"), a.Value)
		}
		if hasArgs || hasRedirs {
			el.Sep()
		}
	}

	if hasArgs {
		renderArgs(el.Open(markup.KindSpan, "simple-args"), args)
		if hasRedirs {
			el.Sep()
		}
	}

	if hasRedirs {
		r.Redirs(el.Open(markup.KindSpan, "simple-redirs"), redirs)
	}
}

// forLoop renders for x in args; do body; done with args in the
// representation of the current phase.
func forLoop[G ast.Value](r *Renderer, el markup.Element, name string, args G, body ast.Stmt, renderArgs func(markup.Element, G)) {
	keyword(el, "for")
	el.Sep()
	el.Open(markup.KindSpan, "variable").Text(name)
	el.Sep()
	keyword(el, "in")
	if !valueEmpty(args) {
		el.Sep()
		renderArgs(el.Open(markup.KindSpan, "for-args"), args)
	}
	el.Text(";")
	el.Sep()
	r.loopBody(el, body)
}

// caseStmt renders case w in arms esac. peeled, when set, renders the arm
// currently being matched ahead of the rest.
func caseStmt[G ast.Value](r *Renderer, el markup.Element, args G, peeled func(markup.Element), cases []ast.CaseArm, renderArgs func(markup.Element, G)) {
	keyword(el, "case")
	el.Sep()
	renderArgs(el.Open(markup.KindSpan, "case-args"), args)
	el.Sep()
	keyword(el, "in")

	arms := el.Open(markup.KindSpan, "case-arms")
	if peeled != nil {
		arms.Sep()
		peeled(arms)
	}
	for _, c := range cases {
		arms.Sep()
		arm := arms.Open(markup.KindSpan, "case-arm")
		for i, p := range c.Pats {
			if i > 0 {
				arm.Sep()
				arm.Text("|")
				arm.Sep()
			}
			r.Words(arm.Open(markup.KindSpan, "case-pattern"), p)
		}
		arm.Text(")")
		arm.Sep()
		r.Stmt(arm.Open(markup.KindSpan), c.Stmt)
		arm.Text(";;")
	}
	el.Sep()
	keyword(el, "esac")
}

func (r *Renderer) redirected(el markup.Element, c ast.Stmt, rs ast.RedirState) {
	r.Stmt(el.Open(markup.KindSpan), c)
	if !rs.Empty() {
		el.Sep()
		r.Redirs(el.Open(markup.KindSpan), rs)
	}
}

// background renders { c redirs; } &. A bare "c &" cannot be followed by
// ";" when statements are chained.
func (r *Renderer) background(el markup.Element, c ast.Stmt, rs ast.RedirState) {
	keyword(el, "{")
	el.Sep()
	r.redirected(el.Open(markup.KindSpan), c, rs)
	if !rs.Empty() || !endsInAmp(c) {
		el.Text(";")
	}
	el.Sep()
	keyword(el, "}")
	el.Sep()
	el.Text("&")
}

func (r *Renderer) subshell(el markup.Element, c ast.Stmt, rs ast.RedirState) {
	el.Text("(")
	r.Stmt(el.Open(markup.KindSpan), c)
	el.Text(")")
	if !rs.Empty() {
		el.Sep()
		r.Redirs(el.Open(markup.KindSpan), rs)
	}
}

func (r *Renderer) binary(el markup.Element, l ast.Stmt, op string, rhs ast.Stmt) {
	r.Stmt(el.Open(markup.KindSpan), l)
	el.Sep()
	el.Text(op)
	el.Sep()
	r.Stmt(el.Open(markup.KindSpan), rhs)
}

// braces renders { c; }.
func (r *Renderer) braces(el markup.Element, c ast.Stmt) {
	keyword(el, "{")
	el.Sep()
	r.Stmt(el.Open(markup.KindSpan), c)
	terminate(el, c)
	el.Sep()
	keyword(el, "}")
}

// ifStmt renders an if. An else branch that is another If continues as
// "elif" so a chain closes with a single fi; an empty else is dropped.
func (r *Renderer) ifStmt(el markup.Element, s *ast.If) {
	keyword(el, "if")
	el.Sep()
	r.Stmt(el.Open(markup.KindSpan, "if-cond"), s.C)
	terminate(el, s.C)
	el.Sep()
	keyword(el, "then")
	el.Sep()
	r.Stmt(el.Open(markup.KindSpan, "if-then"), s.T)
	terminate(el, s.T)
	el.Sep()

	if e, ok := s.E.(*ast.If); ok {
		keyword(el, "el")
		// the nested if opens with its own "if" keyword and closes the chain
		r.ifStmt(el.Open(markup.KindSpan, "if-else", "stmt", "stmt-If"), e)
		return
	}
	if !ast.IsEmptyCommand(s.E) {
		keyword(el, "else")
		el.Sep()
		r.Stmt(el.Open(markup.KindSpan, "if-else"), s.E)
		terminate(el, s.E)
		el.Sep()
	}
	keyword(el, "fi")
}

// while renders while c; do b; done, or until when c is a negation.
func (r *Renderer) while(el markup.Element, cond, body ast.Stmt) {
	if not, ok := cond.(*ast.Not); ok {
		keyword(el, "until")
		cond = not.C
	} else {
		keyword(el, "while")
	}
	el.Sep()
	r.Stmt(el.Open(markup.KindSpan, "loop-cond"), cond)
	terminate(el, cond)
	el.Sep()
	r.loopBody(el, body)
}

func (r *Renderer) loopBody(el markup.Element, body ast.Stmt) {
	keyword(el, "do")
	el.Sep()
	r.Stmt(el.Open(markup.KindSpan, "loop-body"), body)
	terminate(el, body)
	el.Sep()
	keyword(el, "done")
}

// inFlight renders the iteration in flight followed by the rest of the loop.
func (r *Renderer) inFlight(el markup.Element, cur ast.Stmt, loop func(markup.Element)) {
	r.Stmt(el.Open(markup.KindSpan, "loop-current"), cur)
	el.Sep()
	if !endsInAmp(cur) {
		el.Text(";")
		el.Sep()
	}
	loop(el.Open(markup.KindSpan, "loop"))
}

// icon posts a statement-kind icon to the crumb.
func (r *Renderer) icon(name string) {
	r.crumb().Open(markup.KindIcon, name)
}

// terminate writes the ";" that ends s, unless the text of s already ends
// in "&", which may not be followed by ";".
func terminate(el markup.Element, s ast.Stmt) {
	if !endsInAmp(s) {
		el.Text(";")
	}
}

// endsInAmp reports whether the unparsed text of s ends with "&". It
// follows whatever is rendered last: the right side of a list, the command
// under redirections that render nothing, or the continuation of a trap.
func endsInAmp(s ast.Stmt) bool {
	switch s := s.(type) {
	case *ast.Background, *ast.BackgroundExpRedirs:
		return true
	case *ast.Pipe:
		return s.Bg
	case *ast.Semi:
		return endsInAmp(s.R)
	case *ast.And:
		return endsInAmp(s.R)
	case *ast.Or:
		return endsInAmp(s.R)
	case *ast.Redir:
		return s.Redirs.Empty() && endsInAmp(s.C)
	case *ast.RedirExpRedirs:
		return s.Redirs.Empty() && endsInAmp(s.C)
	case *ast.Pushredir:
		return endsInAmp(s.C)
	case *ast.Trapped:
		return endsInAmp(s.Cont)
	}
	return false
}

func keyword(el markup.Element, kw string) {
	el.Open(markup.KindSpan, "keyword").Text(kw)
}

func comment(el markup.Element, text string) {
	el.Open(markup.KindComment).Text(text)
}

func evalLoopNote(src ast.EvalSource) string {
	if src.Src != "" {
		return "in eval loop from " + src.Src
	}
	return "in eval loop"
}

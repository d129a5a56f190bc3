package ast

// phase selects how redirection targets are decoded.
type phase int

const (
	phaseWords    phase = iota // unexpanded: Words
	phaseState                 // being expanded: ExpansionState
	phaseExpanded              // done: SymbolicString
)

func (d *Decoder) value(path string, v any, ph phase) Value {
	switch ph {
	case phaseState:
		return d.ExpansionState(path, v)
	case phaseExpanded:
		return d.SymbolicString(path, v)
	}
	return d.Words(path, v)
}

var fileTypes = map[string]FileType{
	"To": To, "Clobber": Clobber, "From": From, "FromTo": FromTo, "Append": Append,
}

var dupTypes = map[string]DupType{"ToFD": ToFD, "FromFD": FromFD}

func (d *Decoder) redirection(path string, v any, ph phase) Redirection {
	o, tag, ok := d.tagged(path, v, FamilyRedir)
	if !ok {
		return nil
	}
	switch tag {
	case "File":
		ty, known := fileTypes[o.Str("ty")]
		if !known && d.err == nil {
			d.shape(path+".ty", "unknown file redirection type %q", o.Str("ty"))
		}
		raw, p, ok := o.Field("tgt")
		if !ok {
			return nil
		}
		return &File{Ty: ty, Src: o.Int("src"), Tgt: d.value(p, raw, ph)}
	case "Dup":
		ty, known := dupTypes[o.Str("ty")]
		if !known && d.err == nil {
			d.shape(path+".ty", "unknown dup type %q", o.Str("ty"))
		}
		raw, p, ok := o.Field("tgt")
		if !ok {
			return nil
		}
		var tgt DupTarget
		switch raw.(type) {
		case string:
			tgt = DupClose{}
		case []any, map[string]any:
			tgt = &DupWord{V: d.value(p, raw, ph)}
		default:
			tgt = DupFD(d.int(p, raw))
		}
		return &Dup{Ty: ty, Src: o.Int("src"), Tgt: tgt}
	case "Heredoc":
		raw, p, ok := o.Field("w")
		if !ok {
			return nil
		}
		return &Heredoc{Ty: o.Str("ty"), Src: o.Int("src"), W: d.value(p, raw, ph)}
	}
	d.unknown(FamilyRedir, tag, path)
	return nil
}

func (d *Decoder) redirections(path string, v any, ph phase) []Redirection {
	arr := d.Array(path, v)
	if arr == nil {
		return nil
	}
	out := make([]Redirection, 0, len(arr))
	for i, r := range arr {
		if rd := d.redirection(index(path, i), r, ph); rd != nil {
			out = append(out, rd)
		}
	}
	return out
}

// RedirState reads the optional ers, exp_redir and rs keys.
func (o Object) RedirState() RedirState {
	var rs RedirState
	if o.Has("ers") {
		raw, p, _ := o.Field("ers")
		rs.Expanded = o.d.redirections(p, raw, phaseExpanded)
	}
	if o.Has("exp_redir") {
		raw, p, _ := o.Field("exp_redir")
		rs.Current = o.d.redirection(p, raw, phaseState)
	}
	if o.Has("rs") {
		raw, p, _ := o.Field("rs")
		rs.Pending = o.d.redirections(p, raw, phaseWords)
	}
	return rs
}

func decodeAssigns[V Value](o Object, key string, elem func(path string, v any) V) []Assign[V] {
	raw, p, ok := o.Field(key)
	if !ok {
		return nil
	}
	arr := o.d.Array(p, raw)
	out := make([]Assign[V], 0, len(arr))
	for i, a := range arr {
		ao, ok := o.d.Object(index(p, i), a)
		if !ok {
			return nil
		}
		vv, vp, ok := ao.Field("value")
		if !ok {
			return nil
		}
		out = append(out, Assign[V]{Var: ao.Str("var"), Value: elem(vp, vv)})
	}
	return out
}

func (o Object) cases() []CaseArm {
	raw, p, ok := o.Field("cases")
	if !ok {
		return nil
	}
	arr := o.d.Array(p, raw)
	out := make([]CaseArm, 0, len(arr))
	for i, c := range arr {
		co, ok := o.d.Object(index(p, i), c)
		if !ok {
			return nil
		}
		praw, pp, ok := co.Field("pats")
		if !ok {
			return nil
		}
		parr := o.d.Array(pp, praw)
		pats := make([]Words, 0, len(parr))
		for j, w := range parr {
			pats = append(pats, o.d.Words(index(pp, j), w))
		}
		out = append(out, CaseArm{Pats: pats, Stmt: co.Stmt("stmt")})
	}
	return out
}

func (o Object) evalSource() EvalSource {
	var src EvalSource
	src.Cmd, _ = o.OptStr("cmd")
	src.Src, _ = o.OptStr("src")
	return src
}

// Stmt decodes a statement of any phase.
func (d *Decoder) Stmt(path string, v any) Stmt {
	o, tag, ok := d.tagged(path, v, FamilyStmt)
	if !ok {
		return nil
	}
	switch tag {
	case "Command":
		return &Command{
			Assigns: decodeAssigns(o, "assigns", d.Words),
			Args:    o.Words("args"),
			Redirs:  o.RedirState(),
		}
	case "CommandExpArgs":
		return &CommandExpArgs{
			Assigns: decodeAssigns(o, "assigns", d.Words),
			Args:    o.ExpansionState("args"),
			Redirs:  o.RedirState(),
		}
	case "CommandExpRedirs":
		return &CommandExpRedirs{
			Assigns: decodeAssigns(o, "assigns", d.Words),
			Args:    o.Fields("args"),
			Redirs:  o.RedirState(),
		}
	case "CommandExpAssign":
		return &CommandExpAssign{
			Assigns: decodeAssigns(o, "assigns", d.ExpansionState),
			Args:    o.Fields("args"),
		}
	case "CommandReady":
		return &CommandReady{
			Assigns: decodeAssigns(o, "assigns", d.SymbolicString),
			Args:    o.Fields("args"),
		}
	case "Pipe":
		raw, p, ok := o.Field("cs")
		if !ok {
			return nil
		}
		arr := d.Array(p, raw)
		cs := make([]Stmt, 0, len(arr))
		for i, c := range arr {
			cs = append(cs, d.Stmt(index(p, i), c))
		}
		return &Pipe{Bg: o.Bool("bg"), Cs: cs}
	case "Redir":
		return &Redir{C: o.Stmt("c"), Redirs: o.RedirState()}
	case "RedirExpRedirs":
		return &RedirExpRedirs{C: o.Stmt("c"), Redirs: o.RedirState()}
	case "Background":
		return &Background{C: o.Stmt("c"), Redirs: o.RedirState()}
	case "BackgroundExpRedirs":
		return &BackgroundExpRedirs{C: o.Stmt("c"), Redirs: o.RedirState()}
	case "Subshell":
		return &Subshell{C: o.Stmt("c"), Redirs: o.RedirState()}
	case "SubshellExpRedirs":
		return &SubshellExpRedirs{C: o.Stmt("c"), Redirs: o.RedirState()}
	case "And":
		return &And{L: o.Stmt("l"), R: o.Stmt("r")}
	case "Or":
		return &Or{L: o.Stmt("l"), R: o.Stmt("r")}
	case "Semi":
		return &Semi{L: o.Stmt("l"), R: o.Stmt("r")}
	case "Not":
		return &Not{C: o.Stmt("c")}
	case "If":
		return &If{C: o.Stmt("c"), T: o.Stmt("t"), E: o.Stmt("e")}
	case "While":
		return &While{Cond: o.Stmt("cond"), Body: o.Stmt("body")}
	case "WhileCond":
		return &WhileCond{Cond: o.Stmt("cond"), Body: o.Stmt("body"), Cur: o.Stmt("cur")}
	case "WhileRunning":
		return &WhileRunning{Cond: o.Stmt("cond"), Body: o.Stmt("body"), Cur: o.Stmt("cur")}
	case "For":
		return &For{Var: o.Str("var"), Args: o.Words("args"), Body: o.Stmt("body")}
	case "ForExpArgs":
		return &ForExpArgs{Var: o.Str("var"), Args: o.ExpansionState("args"), Body: o.Stmt("body")}
	case "ForExpanded":
		return &ForExpanded{Var: o.Str("var"), Args: o.Fields("args"), Body: o.Stmt("body")}
	case "ForRunning":
		return &ForRunning{Var: o.Str("var"), Args: o.Fields("args"), Body: o.Stmt("body"), Cur: o.Stmt("cur")}
	case "Case":
		return &Case{Args: o.Words("args"), Cases: o.cases()}
	case "CaseExpArg":
		return &CaseExpArg{Args: o.ExpansionState("args"), Cases: o.cases()}
	case "CaseMatch":
		return &CaseMatch{Args: o.SymbolicString("args"), Cases: o.cases()}
	case "CaseCheckMatch":
		return &CaseCheckMatch{
			Args:  o.SymbolicString("args"),
			Pat:   o.ExpansionState("pat"),
			C:     o.Stmt("c"),
			Cases: o.cases(),
		}
	case "Defun":
		return &Defun{Name: o.Str("name"), Body: o.Stmt("body")}
	case "Call":
		call := &Call{F: o.Str("f"), C: o.Stmt("c")}
		call.LoopNest, _ = o.OptInt("loop_nest")
		if o.Has("orig") {
			call.Orig = o.Stmt("orig")
		}
		return call
	case "EvalLoop":
		return &EvalLoop{
			Linno:       o.Int("linno"),
			Interactive: o.Bool("interactive"),
			TopLevel:    o.Bool("top_level"),
			Source:      o.evalSource(),
		}
	case "EvalLoopCmd":
		return &EvalLoopCmd{
			Linno:       o.Int("linno"),
			Interactive: o.Bool("interactive"),
			TopLevel:    o.Bool("top_level"),
			Source:      o.evalSource(),
			C:           o.Stmt("c"),
		}
	case "Break":
		return &Break{N: o.Int("n")}
	case "Continue":
		return &Continue{N: o.Int("n")}
	case "Return":
		return &Return{}
	case "Exit":
		return &Exit{}
	case "Done":
		return &Done{}
	case "Exec":
		e := &Exec{
			Cmd:     o.SymbolicString("cmd"),
			CmdArgv: o.SymbolicString("cmd_argv0"),
			Args:    o.Fields("args"),
		}
		if o.Has("env") {
			raw, p, _ := o.Field("env")
			e.Env = d.Env(p, raw)
		}
		if o.Has("binsh") {
			e.Binsh = o.Bool("binsh")
		}
		return e
	case "Wait":
		w := &Wait{Pid: o.Int("pid")}
		if n, ok := o.OptInt("steps"); ok {
			w.Steps = &n
		}
		return w
	case "Trapped":
		return &Trapped{Signal: o.Str("signal"), EC: o.Int("ec"), Handler: o.Stmt("handler"), Cont: o.Stmt("cont")}
	case "CheckedExit":
		return &CheckedExit{C: o.Stmt("c")}
	case "Pushredir":
		return &Pushredir{C: o.Stmt("c")}
	}
	d.unknown(FamilyStmt, tag, path)
	return nil
}

// Env decodes a name to symbolic-string mapping.
func (d *Decoder) Env(path string, v any) map[string]SymbolicString {
	o, ok := d.Object(path, v)
	if !ok {
		return nil
	}
	env := make(map[string]SymbolicString, len(o.m))
	for _, k := range o.Keys() {
		env[k] = o.SymbolicString(k)
	}
	return env
}

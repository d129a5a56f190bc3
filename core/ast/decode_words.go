package ast

// Words decodes a pre-expansion word list.
func (d *Decoder) Words(path string, v any) Words {
	arr := d.Array(path, v)
	if arr == nil {
		return nil
	}
	out := make(Words, 0, len(arr))
	for i, e := range arr {
		if en := d.Entry(index(path, i), e); en != nil {
			out = append(out, en)
		}
	}
	return out
}

func (d *Decoder) Entry(path string, v any) Entry {
	o, tag, ok := d.tagged(path, v, FamilyEntry)
	if !ok {
		return nil
	}
	switch tag {
	case "S":
		return &Str{V: o.Str("v")}
	case "K":
		raw, p, ok := o.Field("v")
		if !ok {
			return nil
		}
		return &Ctrl{V: d.Control(p, raw)}
	case "F":
		return &FieldSep{}
	case "ESym":
		return &ESym{V: o.Symbolic("v")}
	}
	d.unknown(FamilyEntry, tag, path)
	return nil
}

func (d *Decoder) Control(path string, v any) Control {
	o, tag, ok := d.tagged(path, v, FamilyControl)
	if !ok {
		return nil
	}
	switch tag {
	case "Tilde":
		return &Tilde{Prefix: o.Str("prefix")}
	case "Param":
		raw, p, ok := o.Field("fmt")
		if !ok {
			return nil
		}
		return &Param{Var: o.Str("var"), Fmt: d.Format(p, raw)}
	case "LAssign":
		return &LAssign{Var: o.Str("var"), F: o.ExpandedWords("f"), W: o.Words("w")}
	case "LMatch":
		return &LMatch{
			Var:  o.Str("var"),
			Side: o.SubstringSide("side"),
			Mode: o.SubstringMode("mode"),
			F:    o.ExpandedWords("f"),
			W:    o.Words("w"),
		}
	case "LError":
		return &LError{Var: o.Str("var"), F: o.ExpandedWords("f"), W: o.Words("w")}
	case "Backtick":
		return &Backtick{Stmt: o.Stmt("stmt")}
	case "LBacktick":
		return &LBacktick{Orig: o.Stmt("orig"), Pid: o.Int("pid"), FDRead: o.Int("fd_read")}
	case "LBacktickWait":
		return &LBacktickWait{Orig: o.Stmt("orig"), Pid: o.Int("pid"), S: o.Str("s")}
	case "Arith":
		return &Arith{F: o.ExpandedWords("f"), W: o.Words("w")}
	case "Quote":
		return &Quote{F: o.ExpandedWords("f"), W: o.Words("w")}
	}
	d.unknown(FamilyControl, tag, path)
	return nil
}

func (d *Decoder) Format(path string, v any) Format {
	o, tag, ok := d.tagged(path, v, FamilyFormat)
	if !ok {
		return nil
	}
	switch tag {
	case "Normal":
		return &FmtNormal{}
	case "Length":
		return &FmtLength{}
	case "Default":
		return &FmtDefault{W: o.Words("w")}
	case "NDefault":
		return &FmtNDefault{W: o.Words("w")}
	case "Assign":
		return &FmtAssign{W: o.Words("w")}
	case "NAssign":
		return &FmtNAssign{W: o.Words("w")}
	case "Error":
		return &FmtError{W: o.Words("w")}
	case "NError":
		return &FmtNError{W: o.Words("w")}
	case "Alt":
		return &FmtAlt{W: o.Words("w")}
	case "NAlt":
		return &FmtNAlt{W: o.Words("w")}
	case "Substring":
		return &FmtSubstring{
			Side: o.SubstringSide("side"),
			Mode: o.SubstringMode("mode"),
			W:    o.Words("w"),
		}
	}
	d.unknown(FamilyFormat, tag, path)
	return nil
}

// SymbolicString decodes a list whose elements are plain strings or
// symbolic character objects.
func (d *Decoder) SymbolicString(path string, v any) SymbolicString {
	arr := d.Array(path, v)
	if arr == nil {
		return nil
	}
	out := make(SymbolicString, 0, len(arr))
	for i, c := range arr {
		p := index(path, i)
		switch c := c.(type) {
		case string:
			out = append(out, Char(c))
		case map[string]any:
			if s := d.Symbolic(p, c); s != nil {
				out = append(out, s)
			}
		default:
			d.shape(p, "expected string or symbolic character, got %s", kindOf(c))
			return nil
		}
	}
	return out
}

func (d *Decoder) Symbolic(path string, v any) Symbolic {
	if _, isStr := v.(string); isStr {
		d.shape(path, "expected symbolic character object, got string")
		return nil
	}
	o, tag, ok := d.tagged(path, v, FamilySymbolic)
	if !ok {
		return nil
	}
	switch tag {
	case "SymCommand":
		return &SymCommand{Stmt: o.Stmt("stmt")}
	case "SymArith":
		return &SymArith{F: o.Fields("f")}
	case "SymPat":
		return &SymPat{
			Mode: o.SubstringMode("mode"),
			Pat:  o.SymbolicString("pat"),
			S:    o.SymbolicString("s"),
		}
	}
	d.unknown(FamilySymbolic, tag, path)
	return nil
}

func (d *Decoder) Fields(path string, v any) Fields {
	arr := d.Array(path, v)
	if arr == nil {
		return nil
	}
	out := make(Fields, 0, len(arr))
	for i, f := range arr {
		out = append(out, d.SymbolicString(index(path, i), f))
	}
	return out
}

func (d *Decoder) ExpandedWords(path string, v any) ExpandedWords {
	arr := d.Array(path, v)
	if arr == nil {
		return nil
	}
	out := make(ExpandedWords, 0, len(arr))
	for i, w := range arr {
		if ew := d.ExpandedWord(index(path, i), w); ew != nil {
			out = append(out, ew)
		}
	}
	return out
}

func (d *Decoder) ExpandedWord(path string, v any) ExpandedWord {
	o, tag, ok := d.tagged(path, v, FamilyExpandedWord)
	if !ok {
		return nil
	}
	switch tag {
	case "UsrF":
		return &UsrF{}
	case "ExpS":
		return &ExpS{V: o.Str("v")}
	case "At":
		return &At{F: o.Fields("f")}
	case "DQuo":
		return &DQuo{S: o.SymbolicString("s")}
	case "UsrS":
		return &UsrS{V: o.Str("v")}
	case "EWSym":
		return &EWSym{S: o.Symbolic("s")}
	}
	d.unknown(FamilyExpandedWord, tag, path)
	return nil
}

func (d *Decoder) IntermediateFields(path string, v any) IntermediateFields {
	arr := d.Array(path, v)
	if arr == nil {
		return nil
	}
	out := make(IntermediateFields, 0, len(arr))
	for i, f := range arr {
		if tf := d.TmpField(index(path, i), f); tf != nil {
			out = append(out, tf)
		}
	}
	return out
}

func (d *Decoder) TmpField(path string, v any) TmpField {
	o, tag, ok := d.tagged(path, v, FamilyTmpField)
	if !ok {
		return nil
	}
	switch tag {
	case "WFS":
		return &WFS{}
	case "FS":
		return &FS{}
	case "Field":
		return &Field{S: o.SymbolicString("s")}
	case "QField":
		return &QField{S: o.SymbolicString("s")}
	}
	d.unknown(FamilyTmpField, tag, path)
	return nil
}

func (d *Decoder) ExpansionState(path string, v any) ExpansionState {
	o, tag, ok := d.tagged(path, v, FamilyExpansionState)
	if !ok {
		return nil
	}
	switch tag {
	case "ExpStart":
		return &ExpStart{W: o.Words("w")}
	case "ExpExpand":
		return &ExpExpand{F: o.ExpandedWords("f"), W: o.Words("w")}
	case "ExpSplit":
		return &ExpSplit{F: o.ExpandedWords("f")}
	case "ExpPath":
		raw, p, ok := o.Field("ifs")
		if !ok {
			return nil
		}
		return &ExpPath{Ifs: d.IntermediateFields(p, raw)}
	case "ExpQuote":
		raw, p, ok := o.Field("ifs")
		if !ok {
			return nil
		}
		return &ExpQuote{Ifs: d.IntermediateFields(p, raw)}
	case "ExpError":
		return &ExpError{Msg: o.Fields("msg")}
	case "ExpDone":
		return &ExpDone{F: o.Fields("f")}
	}
	d.unknown(FamilyExpansionState, tag, path)
	return nil
}

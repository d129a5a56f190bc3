package trace

import (
	"fmt"

	"github.com/mgree/smoosh/core/ast"
)

// Step-description families, for decode errors.
const (
	FamilyExpStep  ast.Family = "expansion step"
	FamilyEvalStep ast.Family = "evaluation step"
)

// Decode parses, validates and decodes a trace document. The input is either
// a bare array of step records or an envelope {"version": ..., "steps": [...]}.
func Decode(data []byte) (*Document, error) {
	v, err := ast.Parse(data)
	if err != nil {
		return nil, err
	}
	if err := Validate(v); err != nil {
		return nil, err
	}
	return DecodeValue(v)
}

// DecodeValue decodes an already parsed and validated document.
func DecodeValue(v any) (*Document, error) {
	var d ast.Decoder
	doc := &Document{}

	steps, path := v, "$"
	if m, ok := v.(map[string]any); ok {
		o, _ := d.Object("$", m)
		if o.Has("version") {
			doc.Version = o.Str("version")
			if err := CheckVersion(doc.Version); err != nil {
				return nil, err
			}
		}
		steps, path, _ = o.Field("steps")
	}

	arr := d.Array(path, steps)
	doc.Entries = make([]Entry, 0, len(arr))
	for i, raw := range arr {
		doc.Entries = append(doc.Entries, decodeEntry(&d, fmt.Sprintf("%s[%d]", path, i), raw))
	}
	if err := d.Err(); err != nil {
		return nil, err
	}
	return doc, nil
}

func decodeEntry(d *ast.Decoder, path string, v any) Entry {
	o, ok := d.Object(path, v)
	if !ok {
		return Entry{}
	}
	if o.Has("error") {
		return Entry{Failure: &Failure{Message: o.Str("error")}}
	}

	var e Entry
	if raw, p, ok := o.Field("term"); ok {
		e.Term = d.Term(p, raw)
	}
	if raw, p, ok := o.Field("env"); ok {
		e.Env.Vars = d.Env(p, raw)
		digest, err := Digest(raw)
		if err != nil {
			d.Fail(fmt.Errorf("%s: %w", p, err))
		}
		e.Env.Digest = digest
	}
	if o.Has("locals") {
		raw, p, _ := o.Field("locals")
		e.Locals = decodeLocals(d, p, raw)
	}
	if raw, p, ok := o.Field("step"); ok {
		e.Step = DecodeDesc(d, p, raw)
	}
	e.Stdout, _ = o.OptStr("STDOUT")
	e.Stderr, _ = o.OptStr("STDERR")
	return e
}

func decodeLocals(d *ast.Decoder, path string, v any) []Scope {
	arr := d.Array(path, v)
	scopes := make([]Scope, 0, len(arr))
	for i, raw := range arr {
		o, ok := d.Object(fmt.Sprintf("%s[%d]", path, i), raw)
		if !ok {
			return nil
		}
		scope := make(Scope, 0, len(o.Keys()))
		for _, name := range o.Keys() {
			val, p, _ := o.Field(name)
			if marker, isStr := val.(string); isStr {
				scope = append(scope, Local{Name: name, Marker: marker})
				continue
			}
			scope = append(scope, Local{Name: name, Value: d.SymbolicString(p, val)})
		}
		scopes = append(scopes, scope)
	}
	return scopes
}

// DecodeDesc decodes a step description of either family.
func DecodeDesc(d *ast.Decoder, path string, v any) Desc {
	if m, ok := v.(map[string]any); ok {
		if tag, _ := m["tag"].(string); contains(expTags, tag) {
			return decodeExpStep(d, path, v)
		}
	}
	return decodeEvalStep(d, path, v)
}

func stepTag(d *ast.Decoder, path string, v any, f ast.Family) (ast.Object, string, bool) {
	o, ok := d.Object(path, v)
	if !ok {
		return o, "", false
	}
	if !o.Has("tag") {
		d.Fail(&ast.TagError{Family: f, Path: path})
		return o, "", false
	}
	tag := o.Str("tag")
	return o, tag, d.Err() == nil
}

func unknownStep(d *ast.Decoder, f ast.Family, tag, path string, known []string) {
	d.Fail(&ast.TagError{Family: f, Tag: tag, Path: path, Suggestion: ast.Suggest(tag, known)})
}

func decodeExpStep(d *ast.Decoder, path string, v any) ExpStep {
	o, tag, ok := stepTag(d, path, v, FamilyExpStep)
	if !ok {
		return nil
	}
	switch {
	case contains(expLeafKinds, tag):
		return &ExpLeaf{Kind: tag, Msg: o.Str("msg")}
	case tag == "ESNested":
		outer, op, _ := o.Field("outer")
		inner, ip, _ := o.Field("inner")
		return &ESNested{Outer: decodeExpStep(d, op, outer), Inner: decodeExpStep(d, ip, inner)}
	case tag == "ESEval":
		outer, op, _ := o.Field("outer")
		inner, ip, _ := o.Field("inner")
		return &ESEval{Outer: decodeExpStep(d, op, outer), Inner: decodeEvalStep(d, ip, inner)}
	}
	unknownStep(d, FamilyExpStep, tag, path, expTags)
	return nil
}

func decodeEvalStep(d *ast.Decoder, path string, v any) EvalStep {
	o, tag, ok := stepTag(d, path, v, FamilyEvalStep)
	if !ok {
		return nil
	}
	switch {
	case contains(evalLeafKinds, tag):
		return &EvalLeaf{Kind: tag, Msg: o.Str("msg")}
	case tag == "XSStack":
		inner, ip, _ := o.Field("inner")
		return &XSStack{Func: o.Str("func"), Inner: decodeEvalStep(d, ip, inner)}
	case tag == "XSProc":
		p := &XSProc{Pid: o.Int("pid")}
		p.CStr, _ = o.OptStr("c_str")
		if o.Has("c") {
			p.C = o.Stmt("c")
		}
		return p
	case tag == "XSEval":
		e := &XSEval{Msg: o.Str("msg"), Linno: o.Int("linno")}
		e.Source.Cmd, _ = o.OptStr("cmd")
		e.Source.Src, _ = o.OptStr("src")
		return e
	case tag == "XSTrap":
		return &XSTrap{Msg: o.Str("msg"), Signal: o.Str("signal")}
	case tag == "XSNested":
		outer, op, _ := o.Field("outer")
		inner, ip, _ := o.Field("inner")
		return &XSNested{Outer: decodeEvalStep(d, op, outer), Inner: decodeEvalStep(d, ip, inner)}
	case tag == "XSExpand":
		outer, op, _ := o.Field("outer")
		inner, ip, _ := o.Field("inner")
		return &XSExpand{Outer: decodeEvalStep(d, op, outer), Inner: decodeExpStep(d, ip, inner)}
	}
	unknownStep(d, FamilyEvalStep, tag, path, evalTags)
	return nil
}

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}

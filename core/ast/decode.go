package ast

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"
)

// ShapeError reports a node whose JSON shape is wrong: a missing field, a
// field of the wrong type, or an empty payload.
type ShapeError struct {
	Path string
	Msg  string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Msg)
}

// Parse unmarshals JSON into the generic form the Decoder walks, keeping
// numbers as json.Number so integer fields are read exactly.
func Parse(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if dec.More() {
		return nil, fmt.Errorf("invalid JSON: trailing data after top-level value")
	}
	return v, nil
}

// DecodeStmt decodes a single statement.
func DecodeStmt(data []byte) (Stmt, error) {
	v, err := Parse(data)
	if err != nil {
		return nil, err
	}
	var d Decoder
	s := d.Stmt("$", v)
	if err := d.Err(); err != nil {
		return nil, err
	}
	return s, nil
}

// DecodeTerm decodes a trace term: a statement or an expansion state.
func DecodeTerm(data []byte) (Term, error) {
	v, err := Parse(data)
	if err != nil {
		return nil, err
	}
	var d Decoder
	t := d.Term("$", v)
	if err := d.Err(); err != nil {
		return nil, err
	}
	return t, nil
}

// Decoder builds nodes from values produced by Parse (or by encoding/json
// into interface{}). It records the first error and turns every later call
// into a no-op returning a zero value, so callers decode a whole tree and
// check Err once.
type Decoder struct {
	err error
}

// Err returns the first error met, if any.
func (d *Decoder) Err() error { return d.err }

// Fail records err unless an earlier error is already recorded.
func (d *Decoder) Fail(err error) {
	if d.err == nil {
		d.err = err
	}
}

func (d *Decoder) shape(path, format string, args ...any) {
	d.Fail(&ShapeError{Path: path, Msg: fmt.Sprintf(format, args...)})
}

// Object is a JSON object under decode. The accessors report missing or
// ill-typed fields through the owning Decoder.
type Object struct {
	d    *Decoder
	path string
	m    map[string]any
}

// Object checks that v is a JSON object.
func (d *Decoder) Object(path string, v any) (Object, bool) {
	if d.err != nil {
		return Object{}, false
	}
	m, ok := v.(map[string]any)
	if !ok {
		d.shape(path, "expected object, got %s", kindOf(v))
		return Object{}, false
	}
	return Object{d: d, path: path, m: m}, true
}

// Path is the JSON path of the object.
func (o Object) Path() string { return o.path }

// Has reports whether key is present.
func (o Object) Has(key string) bool {
	_, ok := o.m[key]
	return ok
}

// Field returns the raw value of a required key and its path.
func (o Object) Field(key string) (any, string, bool) {
	p := o.path + "." + key
	if o.d == nil || o.d.err != nil {
		return nil, p, false
	}
	v, ok := o.m[key]
	if !ok {
		o.d.shape(o.path, "missing field %q", key)
		return nil, p, false
	}
	return v, p, true
}

// Keys returns the object's keys in sorted order.
func (o Object) Keys() []string {
	keys := make([]string, 0, len(o.m))
	for k := range o.m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (o Object) Str(key string) string {
	v, p, ok := o.Field(key)
	if !ok {
		return ""
	}
	return o.d.str(p, v)
}

func (o Object) OptStr(key string) (string, bool) {
	if !o.Has(key) {
		return "", false
	}
	return o.Str(key), true
}

func (o Object) Int(key string) int {
	v, p, ok := o.Field(key)
	if !ok {
		return 0
	}
	return o.d.int(p, v)
}

func (o Object) OptInt(key string) (int, bool) {
	if !o.Has(key) {
		return 0, false
	}
	return o.Int(key), true
}

func (o Object) Bool(key string) bool {
	v, p, ok := o.Field(key)
	if !ok {
		return false
	}
	b, isBool := v.(bool)
	if !isBool {
		o.d.shape(p, "expected boolean, got %s", kindOf(v))
	}
	return b
}

func (o Object) Stmt(key string) Stmt {
	v, p, ok := o.Field(key)
	if !ok {
		return nil
	}
	return o.d.Stmt(p, v)
}

func (o Object) Words(key string) Words {
	v, p, ok := o.Field(key)
	if !ok {
		return nil
	}
	return o.d.Words(p, v)
}

func (o Object) Fields(key string) Fields {
	v, p, ok := o.Field(key)
	if !ok {
		return nil
	}
	return o.d.Fields(p, v)
}

func (o Object) SymbolicString(key string) SymbolicString {
	v, p, ok := o.Field(key)
	if !ok {
		return nil
	}
	return o.d.SymbolicString(p, v)
}

func (o Object) ExpandedWords(key string) ExpandedWords {
	v, p, ok := o.Field(key)
	if !ok {
		return nil
	}
	return o.d.ExpandedWords(p, v)
}

func (o Object) ExpansionState(key string) ExpansionState {
	v, p, ok := o.Field(key)
	if !ok {
		return nil
	}
	return o.d.ExpansionState(p, v)
}

func (o Object) Symbolic(key string) Symbolic {
	v, p, ok := o.Field(key)
	if !ok {
		return nil
	}
	return o.d.Symbolic(p, v)
}

func (o Object) SubstringSide(key string) SubstringSide {
	s := SubstringSide(o.Str(key))
	if o.d.err == nil && s != Prefix && s != Suffix {
		o.d.shape(o.path+"."+key, "unknown substring side %q", s)
	}
	return s
}

func (o Object) SubstringMode(key string) SubstringMode {
	m := SubstringMode(o.Str(key))
	if o.d.err == nil && m != Shortest && m != Longest && m != Exact {
		o.d.shape(o.path+"."+key, "unknown substring mode %q", m)
	}
	return m
}

// Array checks that v is a JSON array.
func (d *Decoder) Array(path string, v any) []any {
	if d.err != nil {
		return nil
	}
	a, ok := v.([]any)
	if !ok {
		d.shape(path, "expected array, got %s", kindOf(v))
		return nil
	}
	return a
}

func (d *Decoder) str(path string, v any) string {
	s, ok := v.(string)
	if !ok {
		d.shape(path, "expected string, got %s", kindOf(v))
	}
	return s
}

func (d *Decoder) int(path string, v any) int {
	switch n := v.(type) {
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			d.shape(path, "expected integer, got %s", n)
			return 0
		}
		return int(i)
	case float64:
		if n != math.Trunc(n) {
			d.shape(path, "expected integer, got %v", n)
			return 0
		}
		return int(n)
	}
	d.shape(path, "expected integer, got %s", kindOf(v))
	return 0
}

// tagged reads the tag of a node in family f. Nodes without payload may be
// written as a bare tag string ("F", "Normal", "Done").
func (d *Decoder) tagged(path string, v any, f Family) (Object, string, bool) {
	if d.err != nil {
		return Object{}, "", false
	}
	if s, ok := v.(string); ok {
		return Object{d: d, path: path, m: map[string]any{}}, s, true
	}
	o, ok := d.Object(path, v)
	if !ok {
		return Object{}, "", false
	}
	raw, present := o.m["tag"]
	if !present {
		d.Fail(newTagError(f, "", path))
		return Object{}, "", false
	}
	tag, isStr := raw.(string)
	if !isStr {
		d.shape(path+".tag", "expected string, got %s", kindOf(raw))
		return Object{}, "", false
	}
	return o, tag, true
}

func (d *Decoder) unknown(f Family, tag, path string) {
	d.Fail(newTagError(f, tag, path))
}

// Term decodes a trace term, dispatching on whether the tag names an
// expansion state or a statement.
func (d *Decoder) Term(path string, v any) Term {
	if m, ok := v.(map[string]any); ok {
		if tag, _ := m["tag"].(string); isTag(FamilyExpansionState, tag) {
			return d.ExpansionState(path, v)
		}
	}
	return d.Stmt(path, v)
}

func isTag(f Family, tag string) bool {
	for _, t := range familyTags[f] {
		if t == tag {
			return true
		}
	}
	return false
}

func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case json.Number, float64:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	}
	return fmt.Sprintf("%T", v)
}

func index(path string, i int) string {
	return fmt.Sprintf("%s[%d]", path, i)
}

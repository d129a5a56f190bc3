package ast

// Words is the pre-expansion form of an argument, assignment value or
// redirection target: literal text interleaved with control codes, field
// separators and symbolic placeholders.
type Words []Entry

func (Words) isValue() {}

// Entry is one element of Words.
type Entry interface {
	Node
	isEntry()
}

// Str is literal text (wire tag "S").
type Str struct {
	V string
}

// Ctrl is a control code awaiting expansion (wire tag "K").
type Ctrl struct {
	V Control
}

// FieldSep separates fields of a word list (wire tag "F").
type FieldSep struct{}

// ESym is a symbolic placeholder character.
type ESym struct {
	V Symbolic
}

func (*Str) Tag() string      { return "S" }
func (*Ctrl) Tag() string     { return "K" }
func (*FieldSep) Tag() string { return "F" }
func (*ESym) Tag() string     { return "ESym" }

func (*Str) isEntry()      {}
func (*Ctrl) isEntry()     {}
func (*FieldSep) isEntry() {}
func (*ESym) isEntry()     {}

// Control is the shell's special-expansion syntax. The L-prefixed forms are
// the same constructs partway through expansion.
type Control interface {
	Node
	isControl()
}

// Tilde is ~prefix.
type Tilde struct {
	Prefix string
}

// Param is ${var<fmt>}.
type Param struct {
	Var string
	Fmt Format
}

// LAssign is ${var=...} while the default value is being expanded.
type LAssign struct {
	Var string
	F   ExpandedWords
	W   Words
}

// LMatch is ${var#pat} (and friends) while the pattern is being expanded.
type LMatch struct {
	Var  string
	Side SubstringSide
	Mode SubstringMode
	F    ExpandedWords
	W    Words
}

// LError is ${var?msg} while the message is being expanded.
type LError struct {
	Var string
	F   ExpandedWords
	W   Words
}

// Backtick is a command substitution that has not started.
type Backtick struct {
	Stmt Stmt
}

// LBacktick is a command substitution whose process is running.
type LBacktick struct {
	Orig   Stmt
	Pid    int
	FDRead int
}

// LBacktickWait is a command substitution waiting on its process.
type LBacktickWait struct {
	Orig Stmt
	Pid  int
	S    string
}

// Arith is $((...)); F is the expanded prefix, W what is left to expand.
type Arith struct {
	F ExpandedWords
	W Words
}

// Quote is "..."; F is the expanded prefix, W what is left to expand.
type Quote struct {
	F ExpandedWords
	W Words
}

func (*Tilde) Tag() string         { return "Tilde" }
func (*Param) Tag() string         { return "Param" }
func (*LAssign) Tag() string       { return "LAssign" }
func (*LMatch) Tag() string        { return "LMatch" }
func (*LError) Tag() string        { return "LError" }
func (*Backtick) Tag() string      { return "Backtick" }
func (*LBacktick) Tag() string     { return "LBacktick" }
func (*LBacktickWait) Tag() string { return "LBacktickWait" }
func (*Arith) Tag() string         { return "Arith" }
func (*Quote) Tag() string         { return "Quote" }

func (*Tilde) isControl()         {}
func (*Param) isControl()         {}
func (*LAssign) isControl()       {}
func (*LMatch) isControl()        {}
func (*LError) isControl()        {}
func (*Backtick) isControl()      {}
func (*LBacktick) isControl()     {}
func (*LBacktickWait) isControl() {}
func (*Arith) isControl()         {}
func (*Quote) isControl()         {}

// SubstringSide selects prefix (#) or suffix (%) removal.
type SubstringSide string

const (
	Prefix SubstringSide = "Prefix"
	Suffix SubstringSide = "Suffix"
)

// SubstringMode selects the shortest or longest match. Exact only appears
// when matching case patterns.
type SubstringMode string

const (
	Shortest SubstringMode = "Shortest"
	Longest  SubstringMode = "Longest"
	Exact    SubstringMode = "Exact"
)

// Format is a parameter-expansion operator.
type Format interface {
	Node
	isFormat()
}

// FmtNormal is ${x}.
type FmtNormal struct{}

// FmtLength is ${#x}.
type FmtLength struct{}

// FmtDefault is ${x-w}; the N variants below are the colon forms (${x:-w}).
type FmtDefault struct{ W Words }
type FmtNDefault struct{ W Words }
type FmtAssign struct{ W Words }
type FmtNAssign struct{ W Words }
type FmtError struct{ W Words }
type FmtNError struct{ W Words }
type FmtAlt struct{ W Words }
type FmtNAlt struct{ W Words }

// FmtSubstring is ${x#w}, ${x##w}, ${x%w} or ${x%%w}.
type FmtSubstring struct {
	Side SubstringSide
	Mode SubstringMode
	W    Words
}

func (*FmtNormal) Tag() string    { return "Normal" }
func (*FmtLength) Tag() string    { return "Length" }
func (*FmtDefault) Tag() string   { return "Default" }
func (*FmtNDefault) Tag() string  { return "NDefault" }
func (*FmtAssign) Tag() string    { return "Assign" }
func (*FmtNAssign) Tag() string   { return "NAssign" }
func (*FmtError) Tag() string     { return "Error" }
func (*FmtNError) Tag() string    { return "NError" }
func (*FmtAlt) Tag() string       { return "Alt" }
func (*FmtNAlt) Tag() string      { return "NAlt" }
func (*FmtSubstring) Tag() string { return "Substring" }

func (*FmtNormal) isFormat()    {}
func (*FmtLength) isFormat()    {}
func (*FmtDefault) isFormat()   {}
func (*FmtNDefault) isFormat()  {}
func (*FmtAssign) isFormat()    {}
func (*FmtNAssign) isFormat()   {}
func (*FmtError) isFormat()     {}
func (*FmtNError) isFormat()    {}
func (*FmtAlt) isFormat()       {}
func (*FmtNAlt) isFormat()      {}
func (*FmtSubstring) isFormat() {}

// Operand returns the word operand of a format, or nil for Normal and Length.
func Operand(f Format) Words {
	switch f := f.(type) {
	case *FmtDefault:
		return f.W
	case *FmtNDefault:
		return f.W
	case *FmtAssign:
		return f.W
	case *FmtNAssign:
		return f.W
	case *FmtError:
		return f.W
	case *FmtNError:
		return f.W
	case *FmtAlt:
		return f.W
	case *FmtNAlt:
		return f.W
	case *FmtSubstring:
		return f.W
	}
	return nil
}

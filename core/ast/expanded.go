package ast

// SymbolicString is a string that may contain symbolic characters standing
// for results the engine does not compute concretely.
type SymbolicString []SymChar

func (SymbolicString) isValue() {}

// Literal returns the concatenated plain text of s and whether s had no
// symbolic characters.
func (s SymbolicString) Literal() (string, bool) {
	var out []byte
	concrete := true
	for _, c := range s {
		if ch, ok := c.(Char); ok {
			out = append(out, ch...)
			continue
		}
		concrete = false
	}
	return string(out), concrete
}

// SymChar is one element of a SymbolicString: Char for plain text or a
// Symbolic placeholder.
type SymChar interface {
	isSymChar()
}

// Char is a run of plain text in a SymbolicString.
type Char string

func (Char) isSymChar() {}

// Symbolic is a placeholder character.
type Symbolic interface {
	Node
	SymChar
	isSymbolic()
}

// SymCommand is the unknown output of a command substitution.
type SymCommand struct {
	Stmt Stmt
}

// SymArith is the unknown result of an arithmetic expansion.
type SymArith struct {
	F Fields
}

// SymPat is the unknown result of matching S against Pat.
type SymPat struct {
	Mode SubstringMode
	Pat  SymbolicString
	S    SymbolicString
}

func (*SymCommand) Tag() string { return "SymCommand" }
func (*SymArith) Tag() string   { return "SymArith" }
func (*SymPat) Tag() string     { return "SymPat" }

func (*SymCommand) isSymChar() {}
func (*SymArith) isSymChar()   {}
func (*SymPat) isSymChar()     {}

func (*SymCommand) isSymbolic() {}
func (*SymArith) isSymbolic()   {}
func (*SymPat) isSymbolic()     {}

// Fields is a fully split argument list.
type Fields []SymbolicString

func (Fields) isValue() {}

// ExpandedWords is the output of control-code expansion before field
// splitting. It distinguishes user-written text from generated text.
type ExpandedWords []ExpandedWord

func (ExpandedWords) isValue() {}

// ExpandedWord is one element of ExpandedWords.
type ExpandedWord interface {
	Node
	isExpandedWord()
}

// UsrF is a field separator the user wrote.
type UsrF struct{}

// ExpS is text produced by expansion.
type ExpS struct {
	V string
}

// At is the expansion of "$@".
type At struct {
	F Fields
}

// DQuo is double-quoted expansion output.
type DQuo struct {
	S SymbolicString
}

// UsrS is text the user wrote.
type UsrS struct {
	V string
}

// EWSym is a symbolic placeholder.
type EWSym struct {
	S Symbolic
}

func (*UsrF) Tag() string  { return "UsrF" }
func (*ExpS) Tag() string  { return "ExpS" }
func (*At) Tag() string    { return "At" }
func (*DQuo) Tag() string  { return "DQuo" }
func (*UsrS) Tag() string  { return "UsrS" }
func (*EWSym) Tag() string { return "EWSym" }

func (*UsrF) isExpandedWord()  {}
func (*ExpS) isExpandedWord()  {}
func (*At) isExpandedWord()    {}
func (*DQuo) isExpandedWord()  {}
func (*UsrS) isExpandedWord()  {}
func (*EWSym) isExpandedWord() {}

// IntermediateFields is the form between field splitting and quote removal.
type IntermediateFields []TmpField

func (IntermediateFields) isValue() {}

// TmpField is one element of IntermediateFields.
type TmpField interface {
	Node
	isTmpField()
}

// WFS is a whitespace field separator.
type WFS struct{}

// FS is a non-whitespace field separator.
type FS struct{}

// Field is an unquoted field.
type Field struct {
	S SymbolicString
}

// QField is a quoted field, exempt from pathname expansion.
type QField struct {
	S SymbolicString
}

func (*WFS) Tag() string    { return "WFS" }
func (*FS) Tag() string     { return "FS" }
func (*Field) Tag() string  { return "Field" }
func (*QField) Tag() string { return "QField" }

func (*WFS) isTmpField()    {}
func (*FS) isTmpField()     {}
func (*Field) isTmpField()  {}
func (*QField) isTmpField() {}

// ExpansionState is a word list partway through the expansion pipeline.
type ExpansionState interface {
	Node
	Value
	isExpansionState()
}

// ExpStart is a word list about to be expanded.
type ExpStart struct {
	W Words
}

// ExpExpand is control-code expansion in progress: F is done, W remains.
type ExpExpand struct {
	F ExpandedWords
	W Words
}

// ExpSplit is expanded words awaiting field splitting.
type ExpSplit struct {
	F ExpandedWords
}

// ExpPath is split fields awaiting pathname expansion.
type ExpPath struct {
	Ifs IntermediateFields
}

// ExpQuote is fields awaiting quote removal.
type ExpQuote struct {
	Ifs IntermediateFields
}

// ExpError is a failed expansion carrying its message.
type ExpError struct {
	Msg Fields
}

// ExpDone is a finished expansion.
type ExpDone struct {
	F Fields
}

func (*ExpStart) Tag() string  { return "ExpStart" }
func (*ExpExpand) Tag() string { return "ExpExpand" }
func (*ExpSplit) Tag() string  { return "ExpSplit" }
func (*ExpPath) Tag() string   { return "ExpPath" }
func (*ExpQuote) Tag() string  { return "ExpQuote" }
func (*ExpError) Tag() string  { return "ExpError" }
func (*ExpDone) Tag() string   { return "ExpDone" }

func (*ExpStart) isValue()  {}
func (*ExpExpand) isValue() {}
func (*ExpSplit) isValue()  {}
func (*ExpPath) isValue()   {}
func (*ExpQuote) isValue()  {}
func (*ExpError) isValue()  {}
func (*ExpDone) isValue()   {}

func (*ExpStart) isExpansionState()  {}
func (*ExpExpand) isExpansionState() {}
func (*ExpSplit) isExpansionState()  {}
func (*ExpPath) isExpansionState()   {}
func (*ExpQuote) isExpansionState()  {}
func (*ExpError) isExpansionState()  {}
func (*ExpDone) isExpansionState()   {}

package ast

// Redirection is a single I/O redirection. Target payloads are Values whose
// concrete type tracks the expansion phase: Words while pending,
// ExpansionState while being expanded, SymbolicString once expanded.
type Redirection interface {
	Node
	isRedirection()
}

// FileType is the operator of a file redirection.
type FileType string

const (
	To      FileType = "To"      // >
	Clobber FileType = "Clobber" // >|
	From    FileType = "From"    // <
	FromTo  FileType = "FromTo"  // <>
	Append  FileType = "Append"  // >>
)

// DupType is the operator of an fd duplication.
type DupType string

const (
	ToFD   DupType = "ToFD"   // >&
	FromFD DupType = "FromFD" // <&
)

// File redirects Src to or from the file named by Tgt.
type File struct {
	Ty  FileType
	Src int
	Tgt Value
}

// Dup duplicates (or closes) an fd.
type Dup struct {
	Ty  DupType
	Src int
	Tgt DupTarget
}

// Heredoc feeds W to Src. Ty is "Here" or "XHere" (expanding).
type Heredoc struct {
	Ty  string
	Src int
	W   Value
}

func (*File) Tag() string    { return "File" }
func (*Dup) Tag() string     { return "Dup" }
func (*Heredoc) Tag() string { return "Heredoc" }

func (*File) isRedirection()    {}
func (*Dup) isRedirection()     {}
func (*Heredoc) isRedirection() {}

// DupTarget is what an fd is duplicated from: a number, "-" to close, or a
// word still to be expanded.
type DupTarget interface {
	isDupTarget()
}

// DupFD is a literal fd number.
type DupFD int

// DupClose is the "-" target (close the fd).
type DupClose struct{}

// DupWord is a target that still needs expansion.
type DupWord struct {
	V Value
}

func (DupFD) isDupTarget()    {}
func (DupClose) isDupTarget() {}
func (*DupWord) isDupTarget() {}

// RedirState holds a statement's redirections split by progress. Plain
// syntactic forms only populate Pending.
type RedirState struct {
	Expanded []Redirection // "ers": targets are SymbolicString
	Current  Redirection   // "exp_redir": targets are ExpansionState, nil when none
	Pending  []Redirection // "rs": targets are Words
}

// Empty reports whether there are no redirections at all.
func (r RedirState) Empty() bool {
	return len(r.Expanded) == 0 && r.Current == nil && len(r.Pending) == 0
}

package ast

// Simple commands. Command is the syntactic form; the others are the same
// command at later phases, each storing assignments and arguments in the
// representation of that phase.

type Command struct {
	Assigns []Assign[Words]
	Args    Words
	Redirs  RedirState
}

type CommandExpArgs struct {
	Assigns []Assign[Words]
	Args    ExpansionState
	Redirs  RedirState
}

type CommandExpRedirs struct {
	Assigns []Assign[Words]
	Args    Fields
	Redirs  RedirState
}

type CommandExpAssign struct {
	Assigns []Assign[ExpansionState]
	Args    Fields
}

type CommandReady struct {
	Assigns []Assign[SymbolicString]
	Args    Fields
}

// Compound statements.

// Pipe is c1 | c2 | ...; Bg marks a backgrounded pipeline.
type Pipe struct {
	Bg bool
	Cs []Stmt
}

type Redir struct {
	C      Stmt
	Redirs RedirState
}

type RedirExpRedirs struct {
	C      Stmt
	Redirs RedirState
}

type Background struct {
	C      Stmt
	Redirs RedirState
}

type BackgroundExpRedirs struct {
	C      Stmt
	Redirs RedirState
}

type Subshell struct {
	C      Stmt
	Redirs RedirState
}

type SubshellExpRedirs struct {
	C      Stmt
	Redirs RedirState
}

type And struct{ L, R Stmt }
type Or struct{ L, R Stmt }
type Semi struct{ L, R Stmt }

type Not struct {
	C Stmt
}

// If is if C; then T; else E; fi. A one-armed if has an empty Command as E.
type If struct {
	C, T, E Stmt
}

// Loops. Cur is the iteration currently running.

type While struct {
	Cond, Body Stmt
}

type WhileCond struct {
	Cond, Body, Cur Stmt
}

type WhileRunning struct {
	Cond, Body, Cur Stmt
}

type For struct {
	Var  string
	Args Words
	Body Stmt
}

type ForExpArgs struct {
	Var  string
	Args ExpansionState
	Body Stmt
}

type ForExpanded struct {
	Var  string
	Args Fields
	Body Stmt
}

type ForRunning struct {
	Var  string
	Args Fields
	Body Stmt
	Cur  Stmt
}

// Case statements.

// CaseArm is one pats) stmt ;; arm.
type CaseArm struct {
	Pats []Words
	Stmt Stmt
}

type Case struct {
	Args  Words
	Cases []CaseArm
}

type CaseExpArg struct {
	Args  ExpansionState
	Cases []CaseArm
}

type CaseMatch struct {
	Args  SymbolicString
	Cases []CaseArm
}

// CaseCheckMatch is matching Args against the single pattern Pat, whose arm
// body is C. Pat has already been peeled off the front of Cases.
type CaseCheckMatch struct {
	Args  SymbolicString
	Pat   ExpansionState
	C     Stmt
	Cases []CaseArm
}

type Defun struct {
	Name string
	Body Stmt
}

// Runtime forms.

// Call is the body C of function F running; Orig is the calling statement.
type Call struct {
	LoopNest int
	F        string
	Orig     Stmt
	C        Stmt
}

// EvalSource is where an eval loop reads commands from: Cmd for a string,
// Src for a file. At most one is set.
type EvalSource struct {
	Cmd string
	Src string
}

type EvalLoop struct {
	Linno       int
	Interactive bool
	TopLevel    bool
	Source      EvalSource
}

type EvalLoopCmd struct {
	Linno       int
	Interactive bool
	TopLevel    bool
	Source      EvalSource
	C           Stmt
}

type Break struct{ N int }
type Continue struct{ N int }
type Return struct{}
type Exit struct{}
type Done struct{}

type Exec struct {
	Cmd     SymbolicString
	CmdArgv SymbolicString
	Args    Fields
	Env     map[string]SymbolicString
	Binsh   bool
}

// Wait is waiting on Pid; Steps bounds the wait when non-nil.
type Wait struct {
	Pid   int
	Steps *int
}

// Trapped is a signal handler running before Cont resumes with exit code EC.
type Trapped struct {
	Signal  string
	EC      int
	Handler Stmt
	Cont    Stmt
}

type CheckedExit struct {
	C Stmt
}

type Pushredir struct {
	C Stmt
}

func (*Command) Tag() string             { return "Command" }
func (*CommandExpArgs) Tag() string      { return "CommandExpArgs" }
func (*CommandExpRedirs) Tag() string    { return "CommandExpRedirs" }
func (*CommandExpAssign) Tag() string    { return "CommandExpAssign" }
func (*CommandReady) Tag() string        { return "CommandReady" }
func (*Pipe) Tag() string                { return "Pipe" }
func (*Redir) Tag() string               { return "Redir" }
func (*RedirExpRedirs) Tag() string      { return "RedirExpRedirs" }
func (*Background) Tag() string          { return "Background" }
func (*BackgroundExpRedirs) Tag() string { return "BackgroundExpRedirs" }
func (*Subshell) Tag() string            { return "Subshell" }
func (*SubshellExpRedirs) Tag() string   { return "SubshellExpRedirs" }
func (*And) Tag() string                 { return "And" }
func (*Or) Tag() string                  { return "Or" }
func (*Not) Tag() string                 { return "Not" }
func (*Semi) Tag() string                { return "Semi" }
func (*If) Tag() string                  { return "If" }
func (*While) Tag() string               { return "While" }
func (*WhileCond) Tag() string           { return "WhileCond" }
func (*WhileRunning) Tag() string        { return "WhileRunning" }
func (*For) Tag() string                 { return "For" }
func (*ForExpArgs) Tag() string          { return "ForExpArgs" }
func (*ForExpanded) Tag() string         { return "ForExpanded" }
func (*ForRunning) Tag() string          { return "ForRunning" }
func (*Case) Tag() string                { return "Case" }
func (*CaseExpArg) Tag() string          { return "CaseExpArg" }
func (*CaseMatch) Tag() string           { return "CaseMatch" }
func (*CaseCheckMatch) Tag() string      { return "CaseCheckMatch" }
func (*Defun) Tag() string               { return "Defun" }
func (*Call) Tag() string                { return "Call" }
func (*EvalLoop) Tag() string            { return "EvalLoop" }
func (*EvalLoopCmd) Tag() string         { return "EvalLoopCmd" }
func (*Break) Tag() string               { return "Break" }
func (*Continue) Tag() string            { return "Continue" }
func (*Return) Tag() string              { return "Return" }
func (*Exec) Tag() string                { return "Exec" }
func (*Wait) Tag() string                { return "Wait" }
func (*Trapped) Tag() string             { return "Trapped" }
func (*CheckedExit) Tag() string         { return "CheckedExit" }
func (*Pushredir) Tag() string           { return "Pushredir" }
func (*Exit) Tag() string                { return "Exit" }
func (*Done) Tag() string                { return "Done" }

func (*Command) isStmt()             {}
func (*CommandExpArgs) isStmt()      {}
func (*CommandExpRedirs) isStmt()    {}
func (*CommandExpAssign) isStmt()    {}
func (*CommandReady) isStmt()        {}
func (*Pipe) isStmt()                {}
func (*Redir) isStmt()               {}
func (*RedirExpRedirs) isStmt()      {}
func (*Background) isStmt()          {}
func (*BackgroundExpRedirs) isStmt() {}
func (*Subshell) isStmt()            {}
func (*SubshellExpRedirs) isStmt()   {}
func (*And) isStmt()                 {}
func (*Or) isStmt()                  {}
func (*Not) isStmt()                 {}
func (*Semi) isStmt()                {}
func (*If) isStmt()                  {}
func (*While) isStmt()               {}
func (*WhileCond) isStmt()           {}
func (*WhileRunning) isStmt()        {}
func (*For) isStmt()                 {}
func (*ForExpArgs) isStmt()          {}
func (*ForExpanded) isStmt()         {}
func (*ForRunning) isStmt()          {}
func (*Case) isStmt()                {}
func (*CaseExpArg) isStmt()          {}
func (*CaseMatch) isStmt()           {}
func (*CaseCheckMatch) isStmt()      {}
func (*Defun) isStmt()               {}
func (*Call) isStmt()                {}
func (*EvalLoop) isStmt()            {}
func (*EvalLoopCmd) isStmt()         {}
func (*Break) isStmt()               {}
func (*Continue) isStmt()            {}
func (*Return) isStmt()              {}
func (*Exec) isStmt()                {}
func (*Wait) isStmt()                {}
func (*Trapped) isStmt()             {}
func (*CheckedExit) isStmt()         {}
func (*Pushredir) isStmt()           {}
func (*Exit) isStmt()                {}
func (*Done) isStmt()                {}

// IsEmptyCommand reports whether s is a Command with no assignments,
// arguments or redirections, the engine's encoding of "nothing" (for example
// the else branch of a one-armed if).
func IsEmptyCommand(s Stmt) bool {
	c, ok := s.(*Command)
	return ok && len(c.Assigns) == 0 && len(c.Args) == 0 && c.Redirs.Empty()
}

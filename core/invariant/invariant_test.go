package invariant_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/mgree/smoosh/core/invariant"
)

type unknownStmt struct{ Tag string }

// expectPanic runs f and returns the recovered panic message
func expectPanic(t *testing.T, f func()) (msg string) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic")
		}
		msg = fmt.Sprintf("%v", r)
	}()
	f()
	return ""
}

func TestPreconditionPass(t *testing.T) {
	invariant.Precondition(true, "this should pass")
	invariant.Precondition(len("EOF") == 3, "marker seed")
}

func TestPreconditionFail(t *testing.T) {
	msg := expectPanic(t, func() {
		invariant.Precondition(false, "heredoc body must be decoded")
	})
	if !strings.Contains(msg, "PRECONDITION VIOLATION") {
		t.Errorf("expected PRECONDITION VIOLATION, got: %s", msg)
	}
	if !strings.Contains(msg, "heredoc body must be decoded") {
		t.Errorf("expected custom message, got: %s", msg)
	}
	if !strings.Contains(msg, "at ") {
		t.Errorf("expected stack trace context, got: %s", msg)
	}
}

func TestPostconditionFail(t *testing.T) {
	msg := expectPanic(t, func() {
		invariant.Postcondition(false, "marker must not collide")
	})
	if !strings.Contains(msg, "POSTCONDITION VIOLATION") {
		t.Errorf("expected POSTCONDITION VIOLATION, got: %s", msg)
	}
}

func TestInvariantFormattedMessage(t *testing.T) {
	msg := expectPanic(t, func() {
		invariant.Invariant(false, "marker %q stuck after %d rounds", "EOFEOF", 2)
	})
	if !strings.Contains(msg, "INVARIANT VIOLATION") {
		t.Errorf("expected INVARIANT VIOLATION, got: %s", msg)
	}
	if !strings.Contains(msg, `marker "EOFEOF" stuck after 2 rounds`) {
		t.Errorf("expected formatted message, got: %s", msg)
	}
}

func TestNotNil(t *testing.T) {
	str := "echo"
	invariant.NotNil(&str, "ptr")
	invariant.NotNil([]int{1}, "slice")

	msg := expectPanic(t, func() {
		var s *unknownStmt
		invariant.NotNil(s, "statement")
	})
	if !strings.Contains(msg, "statement must not be nil") {
		t.Errorf("expected typed-nil message, got: %s", msg)
	}

	msg = expectPanic(t, func() {
		invariant.NotNil(nil, "term")
	})
	if !strings.Contains(msg, "term must not be nil") {
		t.Errorf("expected nil message, got: %s", msg)
	}
}

func TestUnreachableNamesFamilyAndType(t *testing.T) {
	msg := expectPanic(t, func() {
		invariant.Unreachable("statement", &unknownStmt{Tag: "Frobnicate"})
	})
	if !strings.Contains(msg, "unhandled statement variant *invariant_test.unknownStmt") {
		t.Errorf("expected family and type, got: %s", msg)
	}
	if !strings.Contains(msg, "Frobnicate") {
		t.Errorf("expected node contents, got: %s", msg)
	}
	if !strings.Contains(msg, "invariant_test.go:") {
		t.Errorf("expected file:line in stack trace, got: %s", msg)
	}
}

func TestExpectNoError(t *testing.T) {
	invariant.ExpectNoError(nil, "operation")

	msg := expectPanic(t, func() {
		invariant.ExpectNoError(errors.New("bad utf-8"), "canonical encoding")
	})
	if !strings.Contains(msg, "canonical encoding must not fail: bad utf-8") {
		t.Errorf("expected context in message, got: %s", msg)
	}
}

func ExampleInvariant() {
	lines := map[string]bool{"EOF": true, "EOFEOF": true}
	marker := "EOF"
	for lines[marker] {
		next := marker + "EOF"
		invariant.Invariant(len(next) > len(marker), "marker must grow")
		marker = next
	}
	fmt.Println(marker)
	// Output: EOFEOFEOF
}

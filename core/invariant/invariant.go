// Package invariant provides contract assertions for the trace renderer.
//
// The renderer consumes documents from a trusted engine. Once a document has
// been decoded, every node belongs to a closed catalog, so a node the renderer
// cannot handle is a bug in this repository (or version skew that slipped past
// decoding), never a user error. These helpers fail loudly in that case.
//
// All functions panic on violation.
package invariant

import (
	"fmt"
	"reflect"
	"runtime"
)

// Precondition checks an input contract at function entry.
// Panics with PRECONDITION VIOLATION if condition is false.
//
// Example:
//
//	func Marker(body ast.Words) string {
//	    invariant.Precondition(body != nil, "heredoc body must be decoded")
//	    // ... work ...
//	}
func Precondition(condition bool, format string, args ...interface{}) {
	if !condition {
		fail("PRECONDITION", format, args...)
	}
}

// Postcondition checks an output contract before function return.
// Panics with POSTCONDITION VIOLATION if condition is false.
func Postcondition(condition bool, format string, args ...interface{}) {
	if !condition {
		fail("POSTCONDITION", format, args...)
	}
}

// Invariant checks an internal invariant during function execution.
// Panics with INVARIANT VIOLATION if condition is false.
//
// Example:
//
//	for lines[marker] {
//	    next := marker + "EOF"
//	    invariant.Invariant(len(next) > len(marker), "marker must grow")
//	    marker = next
//	}
func Invariant(condition bool, format string, args ...interface{}) {
	if !condition {
		fail("INVARIANT", format, args...)
	}
}

// NotNil panics if value is nil, including typed nils such as (*ast.If)(nil).
//
// Example:
//
//	func (r *Renderer) Stmt(el markup.Element, s ast.Stmt) {
//	    invariant.NotNil(s, "statement")
//	    // ... work ...
//	}
func NotNil(value interface{}, name string) {
	if value == nil {
		fail("PRECONDITION", "%s must not be nil", name)
	}
	if isNilValue(value) {
		fail("PRECONDITION", "%s must not be nil", name)
	}
}

// isNilValue checks if a value is a typed nil using reflection
func isNilValue(value interface{}) bool {
	if value == nil {
		return true
	}

	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func:
		return v.IsNil()
	default:
		return false
	}
}

// Unreachable panics for a variant that a closed type switch did not handle.
// family names the catalog ("statement", "control", ...) and node is the
// offending value; its dynamic type is part of the message.
//
// Example:
//
//	switch s := stmt.(type) {
//	case *ast.Command:
//	    // ...
//	default:
//	    invariant.Unreachable("statement", s)
//	}
func Unreachable(family string, node interface{}) {
	fail("INVARIANT", "unhandled %s variant %T: %+v", family, node, node)
}

// ExpectNoError panics if error is not nil.
// This is a postcondition check for operations that should never fail.
//
// Example:
//
//	b, err := encMode.Marshal(generic)
//	invariant.ExpectNoError(err, "canonical encoding of decoded JSON")
func ExpectNoError(err error, msg string) {
	if err != nil {
		fail("POSTCONDITION", "%s must not fail: %v", msg, err)
	}
}

// fail panics with a formatted message including call stack context.
func fail(kind, format string, args ...interface{}) {
	// skip fail() and the exported wrapper
	pc := make([]uintptr, 10)
	n := runtime.Callers(3, pc)
	frames := runtime.CallersFrames(pc[:n])

	msg := fmt.Sprintf("%s VIOLATION: "+format, append([]interface{}{kind}, args...)...)

	if frame, ok := frames.Next(); ok {
		msg += fmt.Sprintf("\n  at %s:%d", frame.File, frame.Line)
	}

	panic(msg)
}

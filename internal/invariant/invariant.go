// Package invariant provides hard assertions for conditions that only a
// defect in the caller can violate. Failed checks are not errors: they are
// handed to the installed Handler, which panics by default.
package invariant

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
)

// Kind identifies which check failed.
type Kind int

const (
	KindPrecondition Kind = iota
	KindInvariant
	KindNotNil
)

func (k Kind) String() string {
	switch k {
	case KindPrecondition:
		return "PRECONDITION_FAILED"
	case KindInvariant:
		return "INVARIANT_VIOLATED"
	case KindNotNil:
		return "NIL_VALUE"
	default:
		return "UNKNOWN"
	}
}

// StackFrame is one frame of the stack captured at a failed check.
type StackFrame struct {
	Function string
	File     string
	Line     int
}

// Violation describes a failed check.
type Violation struct {
	Kind       Kind
	Message    string
	Location   string // file:line of the code that called the check
	StackTrace []StackFrame
}

func (v *Violation) Error() string {
	if v.Location == "" {
		return fmt.Sprintf("[%s] %s", v.Kind, v.Message)
	}
	return fmt.Sprintf("[%s] %s at %s", v.Kind, v.Message, v.Location)
}

// Handler receives every failed check. It must not return normally.
type Handler interface {
	HandleViolation(v *Violation)
}

// PanicHandler panics with the *Violation.
type PanicHandler struct{}

// HandleViolation implements Handler.
func (PanicHandler) HandleViolation(v *Violation) {
	panic(v)
}

var currentHandler Handler = PanicHandler{}

// SetHandler installs h and returns the previous handler. A nil h restores
// the default PanicHandler.
func SetHandler(h Handler) Handler {
	prev := currentHandler
	if h == nil {
		h = PanicHandler{}
	}
	currentHandler = h
	return prev
}

// Precondition asserts something the caller must have established before
// the call.
func Precondition(cond bool, format string, args ...interface{}) {
	if !cond {
		fail(KindPrecondition, format, args...)
	}
}

// Invariant asserts an internal consistency condition.
func Invariant(cond bool, format string, args ...interface{}) {
	if !cond {
		fail(KindInvariant, format, args...)
	}
}

// NotNil asserts that value is not nil.
func NotNil(value interface{}, name string) {
	if value == nil {
		fail(KindNotNil, "%s must not be nil", name)
	}
}

func fail(kind Kind, format string, args ...interface{}) {
	v := &Violation{
		Kind:       kind,
		Message:    fmt.Sprintf(format, args...),
		Location:   callerLocation(3),
		StackTrace: captureStackTrace(4),
	}
	currentHandler.HandleViolation(v)
	// A handler that returns would let the caller continue in a broken
	// state.
	panic(v)
}

func callerLocation(skip int) string {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return "unknown"
	}
	return fmt.Sprintf("%s:%d", filepath.Base(file), line)
}

func captureStackTrace(skip int) []StackFrame {
	pcs := make([]uintptr, 32)
	n := runtime.Callers(skip, pcs)
	frames := runtime.CallersFrames(pcs[:n])

	var trace []StackFrame
	for {
		frame, more := frames.Next()
		if !strings.HasPrefix(frame.Function, "runtime.") {
			trace = append(trace, StackFrame{
				Function: frame.Function,
				File:     filepath.Base(frame.File),
				Line:     frame.Line,
			})
		}
		if !more {
			break
		}
	}
	return trace
}

package brewin

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies every failure a Brewin program can raise.
type ErrorKind int

const (
	SyntaxError ErrorKind = iota + 1
	NameError
	TypeError
	FaultError
)

func (k ErrorKind) String() string {
	switch k {
	case SyntaxError:
		return "SyntaxError"
	case NameError:
		return "NameError"
	case TypeError:
		return "TypeError"
	case FaultError:
		return "FaultError"
	default:
		return "UnknownError"
	}
}

type StackFrame struct {
	Function string
	Pos      Position
}

// Error is the single failure a load or run terminates with.
type Error struct {
	Kind      ErrorKind
	Line      int
	Message   string
	CodeFrame string
	Frames    []StackFrame
}

const (
	errorFrameHead = 8
	errorFrameTail = 8
)

var (
	errStepQuotaExceeded = errors.New("step quota exceeded")
	errOutputFailed      = errors.New("output write failed")
)

func (e *Error) Error() string {
	var b strings.Builder
	if e.Line > 0 {
		fmt.Fprintf(&b, "%s (line %d): %s", e.Kind, e.Line, e.Message)
	} else {
		fmt.Fprintf(&b, "%s: %s", e.Kind, e.Message)
	}
	if e.CodeFrame != "" {
		b.WriteString("\n")
		b.WriteString(e.CodeFrame)
	}
	renderFrame := func(frame StackFrame) {
		if frame.Pos.Line > 0 {
			fmt.Fprintf(&b, "\n  at %s (line %d)", frame.Function, frame.Pos.Line)
		} else {
			fmt.Fprintf(&b, "\n  at %s", frame.Function)
		}
	}

	if len(e.Frames) <= errorFrameHead+errorFrameTail {
		for _, frame := range e.Frames {
			renderFrame(frame)
		}
		return b.String()
	}

	for _, frame := range e.Frames[:errorFrameHead] {
		renderFrame(frame)
	}
	omitted := len(e.Frames) - (errorFrameHead + errorFrameTail)
	fmt.Fprintf(&b, "\n  ... %d frames omitted ...", omitted)
	for _, frame := range e.Frames[len(e.Frames)-errorFrameTail:] {
		renderFrame(frame)
	}
	return b.String()
}

// KindAndLine extracts the classification and reported line of a Brewin
// error. It reports false for host errors such as an exhausted step quota
// or a cancelled context.
func KindAndLine(err error) (ErrorKind, int, bool) {
	var berr *Error
	if !errors.As(err, &berr) {
		return 0, 0, false
	}
	return berr.Kind, berr.Line, true
}

func newError(kind ErrorKind, pos Position, format string, args ...any) *Error {
	return &Error{Kind: kind, Line: pos.Line, Message: fmt.Sprintf(format, args...)}
}

func isHostControlSignal(err error) bool {
	return errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, errStepQuotaExceeded) ||
		errors.Is(err, errOutputFailed)
}

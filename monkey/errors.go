package monkey

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies runtime errors.
type ErrorKind string

const (
	NameError         ErrorKind = "NameError"
	TypeError         ErrorKind = "TypeError"
	ArityError        ErrorKind = "ArityError"
	OverflowError     ErrorKind = "OverflowError"
	ZeroDivisionError ErrorKind = "ZeroDivisionError"
	RecursionError    ErrorKind = "RecursionError"
	LimitError        ErrorKind = "LimitError"
)

const (
	runtimeErrorFrameHead = 8
	runtimeErrorFrameTail = 8
)

var (
	ErrStepQuotaExceeded = errors.New("step quota exceeded")
	errOverflow          = errors.New("integer overflow")
	errDivisionByZero    = errors.New("division by zero")
)

type StackFrame struct {
	Function string
	Pos      Position
}

// RuntimeError is the payload of an Error value.
type RuntimeError struct {
	Kind      ErrorKind
	Message   string
	Pos       Position
	CodeFrame string
	Frames    []StackFrame

	cause error
}

// Summary renders the kind and message on one line.
func (re *RuntimeError) Summary() string {
	return string(re.Kind) + ": " + re.Message
}

func (re *RuntimeError) Error() string {
	var b strings.Builder
	b.WriteString(re.Summary())
	if re.CodeFrame != "" {
		b.WriteString("\n")
		b.WriteString(re.CodeFrame)
	}
	renderFrame := func(frame StackFrame) {
		if frame.Pos.Line > 0 && frame.Pos.Column > 0 {
			fmt.Fprintf(&b, "\n  at %s (%d:%d)", frame.Function, frame.Pos.Line, frame.Pos.Column)
		} else if frame.Pos.Line > 0 {
			fmt.Fprintf(&b, "\n  at %s (line %d)", frame.Function, frame.Pos.Line)
		} else {
			fmt.Fprintf(&b, "\n  at %s", frame.Function)
		}
	}

	if len(re.Frames) <= runtimeErrorFrameHead+runtimeErrorFrameTail {
		for _, frame := range re.Frames {
			renderFrame(frame)
		}
		return b.String()
	}

	for _, frame := range re.Frames[:runtimeErrorFrameHead] {
		renderFrame(frame)
	}
	omitted := len(re.Frames) - (runtimeErrorFrameHead + runtimeErrorFrameTail)
	fmt.Fprintf(&b, "\n  ... %d frames omitted ...", omitted)
	for _, frame := range re.Frames[len(re.Frames)-runtimeErrorFrameTail:] {
		renderFrame(frame)
	}

	return b.String()
}

// Unwrap exposes the host error behind the failure, such as a context
// cancellation or ErrStepQuotaExceeded.
func (re *RuntimeError) Unwrap() error {
	return re.cause
}

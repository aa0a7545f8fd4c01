package core

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// maxStackDepth bounds the number of frames captured per error
const maxStackDepth = 32

// Frame is a single resolved stack frame
type Frame struct {
	File     string
	Line     int
	Function string
}

// Symbol splits the runtime function name into an owner, a separator and
// a function name. Methods render as "Type", "->", "Method"; package-level
// functions render as "pkg", "::", "Func".
func (f Frame) Symbol() (owner, sep, fn string) {
	name := f.Function
	slash := strings.LastIndex(name, "/")
	rest := name[slash+1:]
	dot := strings.Index(rest, ".")
	if dot < 0 {
		return "", "::", name
	}
	pkg := rest[:dot]
	sym := rest[dot+1:]

	// (*T).M or (T).M
	if strings.HasPrefix(sym, "(") {
		if end := strings.Index(sym, ")."); end > 0 {
			recv := strings.TrimPrefix(sym[1:end], "*")
			return recv, "->", sym[end+2:]
		}
	}
	// T.M for value receivers and F.func1 for closures
	if i := strings.Index(sym, "."); i > 0 {
		return sym[:i], "->", sym[i+1:]
	}
	return pkg, "::", sym
}

// StackTracer is implemented by errors that carry the frames they were
// raised from, innermost first.
type StackTracer interface {
	StackFrames() []Frame
}

// stackError wraps an error with the program counters of its raise site
type stackError struct {
	err error
	pcs []uintptr
}

// WithStack annotates err with the stack of the caller. It returns nil
// when err is nil.
func WithStack(err error) error {
	if err == nil {
		return nil
	}
	return &stackError{err: err, pcs: callers(3)}
}

// Errorf formats an error like fmt.Errorf and records the caller's stack
func Errorf(format string, args ...interface{}) error {
	return &stackError{err: fmt.Errorf(format, args...), pcs: callers(3)}
}

func (e *stackError) Error() string {
	return e.err.Error()
}

func (e *stackError) Unwrap() error {
	return e.err
}

// StackFrames implements StackTracer
func (e *stackError) StackFrames() []Frame {
	return resolveFrames(e.pcs)
}

// StackOf returns the frames of the first error in err's chain that
// carries a stack, or nil.
func StackOf(err error) []Frame {
	var st StackTracer
	if errors.As(err, &st) {
		return st.StackFrames()
	}
	return nil
}

func callers(skip int) []uintptr {
	pcs := make([]uintptr, maxStackDepth)
	n := runtime.Callers(skip, pcs)
	return pcs[:n]
}

func resolveFrames(pcs []uintptr) []Frame {
	if len(pcs) == 0 {
		return nil
	}
	frames := runtime.CallersFrames(pcs)
	out := make([]Frame, 0, len(pcs))
	for {
		frame, more := frames.Next()
		// Scheduler frames carry no information for the reader
		if frame.Function != "runtime.goexit" && frame.Function != "runtime.main" {
			out = append(out, Frame{
				File:     frame.File,
				Line:     frame.Line,
				Function: frame.Function,
			})
		}
		if !more {
			break
		}
	}
	return out
}

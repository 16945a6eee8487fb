package interpreter

import (
	"github.com/loxlang/golox/loxerror"
)

// maxCallDepth bounds recursion so a runaway Lox program fails with a
// reported stack overflow instead of crashing the host process.
const maxCallDepth = 255

// callStack tracks the chain of active Lox function calls, used to
// attribute "Stack overflow." and to build the -trace diagnostic that the
// CLI prints alongside a RuntimeError when requested.
type callStack struct {
	frames []loxerror.StackFrame
}

func (s *callStack) push(function string, line int) error {
	if len(s.frames) >= maxCallDepth {
		return &loxerror.RuntimeError{Msg: "Stack overflow.", Line: line, Trace: s.snapshot()}
	}
	s.frames = append(s.frames, loxerror.StackFrame{Function: function, Line: line})
	return nil
}

func (s *callStack) pop() {
	s.frames = s.frames[:len(s.frames)-1]
}

// snapshot returns the active frames most-recent-first, matching the
// order RuntimeError.StackTrace renders them in.
func (s *callStack) snapshot() []loxerror.StackFrame {
	out := make([]loxerror.StackFrame, len(s.frames))
	for i, f := range s.frames {
		out[len(s.frames)-1-i] = f
	}
	return out
}

// Package loxerror defines the two diagnostic channels described by the
// interpreter's external interface: accumulated static errors (from
// scanning, parsing, and resolving) and a single runtime error that aborts
// evaluation.
package loxerror

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/loxlang/golox/token"
)

// functionColumn is the fixed column stack frame function names are padded
// to, so "in <script>" and "in longFunctionName" both line up with the
// "[line L]" that follows on a ragged terminal width.
const functionColumn = 20

var (
	bold = color.New(color.Bold)
	red  = color.New(color.FgRed)
)

// StaticError is a scan, parse, or resolve error attributed to a line and,
// where available, a token.
type StaticError struct {
	Line  int
	Where string // "" (no location), "at end", or "at '<lexeme>'"
	Msg   string
}

// Error formats the error as "[line L] Error<at>: <message>", per the
// interpreter's diagnostic interface.
func (e *StaticError) Error() string {
	at := e.Where
	if at != "" {
		at = " " + at
	}
	return fmt.Sprintf("[line %d] Error%s: %s", e.Line, at, e.Msg)
}

// ColorError renders the same message with bold/red styling for an
// interactive terminal. Falls back to the plain message when color is
// disabled (fatih/color auto-detects non-terminal output).
func (e *StaticError) ColorError() string {
	at := e.Where
	if at != "" {
		at = " " + at
	}
	return fmt.Sprintf("%s%s: %s", bold.Sprintf("[line %d] Error%s", e.Line, at), "", red.Sprint(e.Msg))
}

// NewStaticError builds a StaticError positioned at the given token. If tok
// is the EOF token, the location is rendered as "at end"; otherwise it's
// rendered as "at '<lexeme>'".
func NewStaticError(tok token.Token, format string, args ...any) *StaticError {
	where := fmt.Sprintf("at '%s'", tok.Lexeme)
	if tok.Type == token.EOF {
		where = "at end"
	}
	return &StaticError{
		Line:  tok.Line,
		Where: where,
		Msg:   fmt.Sprintf(format, args...),
	}
}

// NewStaticErrorAtLine builds a StaticError with no token-based location
// clause, for scan-time errors that have a line but no token yet.
func NewStaticErrorAtLine(line int, format string, args ...any) *StaticError {
	return &StaticError{Line: line, Msg: fmt.Sprintf(format, args...)}
}

// StaticErrors accumulates StaticErrors across a scan/parse/resolve pass so
// that a single run can surface many diagnostics.
type StaticErrors struct {
	errs []*StaticError
}

// Add appends an error to the list.
func (e *StaticErrors) Add(err *StaticError) {
	e.errs = append(e.errs, err)
}

// HasErrors reports whether any error has been recorded.
func (e *StaticErrors) HasErrors() bool {
	return len(e.errs) > 0
}

// All returns every recorded error, in the order they were added.
func (e *StaticErrors) All() []*StaticError {
	return e.errs
}

// Error concatenates every recorded error's message, one per line.
func (e *StaticErrors) Error() string {
	msgs := make([]string, len(e.errs))
	for i, err := range e.errs {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "\n")
}

// StackFrame describes one active Lox function call, for a RuntimeError's
// optional stack trace.
type StackFrame struct {
	Function string // name of the function, or "" for the top-level script
	Line     int
}

// RuntimeError is the single error that aborts Interpret. It formats as
// "<message>\n[line L]" per the diagnostic interface; Trace, when
// non-empty, is additional diagnostic detail surfaced only when the CLI's
// -trace flag is set.
type RuntimeError struct {
	Msg   string
	Line  int
	Trace []StackFrame
}

// padFunctionName right-pads name to functionColumn, using go-runewidth so
// that frame names containing wide runes still line up visually.
func padFunctionName(name string) string {
	pad := functionColumn - runewidth.StringWidth(name)
	if pad < 1 {
		pad = 1
	}
	return name + strings.Repeat(" ", pad)
}

// NewRuntimeError builds a RuntimeError positioned at the given token.
func NewRuntimeError(tok token.Token, format string, args ...any) *RuntimeError {
	return &RuntimeError{Msg: fmt.Sprintf(format, args...), Line: tok.Line}
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s\n[line %d]", e.Msg, e.Line)
}

// StackTrace renders the recorded call frames, most recent call first.
func (e *RuntimeError) StackTrace() string {
	if len(e.Trace) == 0 {
		return ""
	}
	var b strings.Builder
	bold.Fprintln(&b, "Stack Trace (most recent call first):")
	for i, frame := range e.Trace {
		function := frame.Function
		if function == "" {
			function = "<script>"
		}
		fmt.Fprintf(&b, "  in %s [line %d]", padFunctionName(function), frame.Line)
		if i < len(e.Trace)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

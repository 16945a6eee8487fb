// Command golox is a tree-walking interpreter for Lox.
//
// Usage:
//
//	golox [script]
//
// With no arguments it starts a REPL; with one argument it runs the given
// script file. With more than one argument it prints a usage message and
// exits 64.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/loxlang/golox/ast"
	"github.com/loxlang/golox/interpreter"
	"github.com/loxlang/golox/loxerror"
	"github.com/loxlang/golox/parser"
	"github.com/loxlang/golox/resolver"
)

// Exit codes follow the sysexits.h convention the book's jlox uses.
const (
	exitUsage    = 64
	exitDataErr  = 65
	exitSoftware = 70
)

func main() {
	printAST := flag.Bool("p", false, "print the parsed AST instead of running the program")
	trace := flag.Bool("trace", false, "print a stack trace alongside an uncaught runtime error")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: lox [script]")
	}
	flag.Parse()

	args := flag.Args()
	switch len(args) {
	case 0:
		if err := runREPL(*trace); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(exitSoftware)
		}
	case 1:
		runFile(args[0], *printAST, *trace)
	default:
		fmt.Fprintln(os.Stderr, "Usage: lox [script]")
		os.Exit(exitUsage)
	}
}

func runFile(path string, printAST, trace bool) {
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitSoftware)
	}

	program, staticErr := compile(src)
	if staticErr != nil {
		reportStatic(staticErr)
		os.Exit(exitDataErr)
	}
	if printAST {
		ast.Print(program)
		return
	}

	locals, staticErr := resolver.Resolve(program)
	if staticErr != nil {
		reportStatic(staticErr)
		os.Exit(exitDataErr)
	}

	in := interpreter.New(locals, trace)
	if err := in.Interpret(program); err != nil {
		reportRuntime(err, trace)
		os.Exit(exitSoftware)
	}
}

// compile scans and parses src into a Program, returning every
// accumulated static error rather than stopping at the first one.
func compile(src []byte) (ast.Program, error) {
	return parser.Parse(src)
}

func reportStatic(err error) {
	if errs, ok := err.(*loxerror.StaticErrors); ok {
		for _, e := range errs.All() {
			fmt.Fprintln(os.Stderr, e.ColorError())
		}
		return
	}
	fmt.Fprintln(os.Stderr, err)
}

func reportRuntime(err error, trace bool) {
	rerr, ok := err.(*loxerror.RuntimeError)
	if !ok {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	bold := color.New(color.Bold)
	bold.Fprintln(os.Stderr, rerr.Error())
	if trace {
		if st := rerr.StackTrace(); st != "" {
			fmt.Fprintln(os.Stderr, st)
		}
	}
}

func runREPL(trace bool) error {
	cfg := &readline.Config{Prompt: "> "}
	if home, err := os.UserHomeDir(); err == nil {
		cfg.HistoryFile = filepath.Join(home, ".lox_history")
	} else {
		fmt.Fprintf(os.Stderr, "Can't get current user's home directory (%s). Command history will not be saved.\n", err)
	}

	rl, err := readline.NewEx(cfg)
	if err != nil {
		return fmt.Errorf("starting REPL: %s", err)
	}
	defer rl.Close()

	fmt.Fprintln(os.Stderr, "Welcome to Lox!")

	locals := resolver.Locals{}
	in := interpreter.New(locals, trace)

	for {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if line == "" {
			return nil
		}
		evalREPLLine(in, line, trace)
	}
}

func evalREPLLine(in *interpreter.Interp, line string, trace bool) {
	program, staticErr := compile([]byte(line))
	if staticErr != nil {
		reportStatic(staticErr)
		return
	}

	locals, staticErr := resolver.Resolve(program)
	if staticErr != nil {
		reportStatic(staticErr)
		return
	}
	in.MergeLocals(locals)

	if err := in.Interpret(program); err != nil {
		reportRuntime(err, trace)
	}
}

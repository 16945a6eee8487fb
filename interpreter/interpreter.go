// Package interpreter evaluates a resolved Lox program: expression
// evaluation, statement execution, function/method calls, and class
// instantiation with single inheritance.
package interpreter

import (
	"fmt"
	"io"
	"os"

	"github.com/loxlang/golox/ast"
	"github.com/loxlang/golox/loxerror"
	"github.com/loxlang/golox/resolver"
	"github.com/loxlang/golox/token"
)

// Interp holds all state for one interpretation run: it's reused across
// REPL lines so that top-level variable and function declarations persist.
type Interp struct {
	globals *Environment
	env     *Environment
	locals  resolver.Locals
	calls   callStack
	out     io.Writer
	trace   bool
}

// New constructs an Interp with the global environment populated with the
// built-in native functions, ready to Interpret one or more programs.
func New(locals resolver.Locals, trace bool) *Interp {
	globals := NewEnvironment()
	defineBuiltins(globals)
	return &Interp{
		globals: globals,
		env:     globals,
		locals:  locals,
		out:     os.Stdout,
		trace:   trace,
	}
}

// SetOutput redirects where `print` writes, for tests that capture output.
func (in *Interp) SetOutput(w io.Writer) {
	in.out = w
}

// MergeLocals adds another resolver pass's bindings, used by the REPL
// where each line is resolved independently but interpreted against the
// same long-lived Interp.
func (in *Interp) MergeLocals(locals resolver.Locals) {
	for k, v := range locals {
		in.locals[k] = v
	}
}

// Interpret runs program to completion, recovering a RuntimeError panicked
// from deep within expression evaluation at this single boundary. Any
// other panic (a programming error in the interpreter itself) propagates.
func (in *Interp) Interpret(program ast.Program) (err error) {
	defer func() {
		if r := recover(); r != nil {
			rerr, ok := r.(*loxerror.RuntimeError)
			if !ok {
				panic(r)
			}
			err = rerr
		}
	}()
	for _, stmt := range program.Stmts {
		in.execStmt(stmt)
	}
	return nil
}

// stmtResult threads a `return` value back up through nested statement
// execution without using panic/recover, which is reserved for runtime
// errors. A zero stmtResult means "fall through to the next statement".
type stmtResult struct {
	returned bool
	value    Value
}

var noResult = stmtResult{}

func (in *Interp) execStmt(s ast.Stmt) stmtResult {
	switch s := s.(type) {
	case *ast.ExpressionStmt:
		in.eval(s.Expr)
		return noResult
	case *ast.PrintStmt:
		v := in.eval(s.Expr)
		fmt.Fprintln(in.out, stringify(v))
		return noResult
	case *ast.VarStmt:
		var v Value
		if s.Initializer != nil {
			v = in.eval(s.Initializer)
		}
		in.env.Define(s.Name.Lexeme, v)
		return noResult
	case *ast.BlockStmt:
		return in.execBlock(s.Stmts, NewChildEnvironment(in.env))
	case *ast.IfStmt:
		if isTruthy(in.eval(s.Condition)) {
			return in.execStmt(s.Then)
		} else if s.Else != nil {
			return in.execStmt(s.Else)
		}
		return noResult
	case *ast.WhileStmt:
		for isTruthy(in.eval(s.Condition)) {
			if r := in.execStmt(s.Body); r.returned {
				return r
			}
		}
		return noResult
	case *ast.FunctionStmt:
		fn := &Function{decl: s, closure: in.env}
		in.env.Define(s.Name.Lexeme, fn)
		return noResult
	case *ast.ReturnStmt:
		var v Value
		if s.Value != nil {
			v = in.eval(s.Value)
		}
		return stmtResult{returned: true, value: v}
	case *ast.ClassStmt:
		in.execClassStmt(s)
		return noResult
	default:
		panic("interpreter: unhandled statement type")
	}
}

// execBlock runs stmts against env, restoring the interpreter's current
// environment on the way out whether execution falls through, returns
// early, or panics with a runtime error.
func (in *Interp) execBlock(stmts []ast.Stmt, env *Environment) stmtResult {
	previous := in.env
	in.env = env
	defer func() { in.env = previous }()

	for _, stmt := range stmts {
		if r := in.execStmt(stmt); r.returned {
			return r
		}
	}
	return noResult
}

func (in *Interp) execClassStmt(s *ast.ClassStmt) {
	var superclass *Class
	if s.Superclass != nil {
		v := in.eval(s.Superclass)
		sc, ok := v.(*Class)
		if !ok {
			panic(loxerror.NewRuntimeError(s.Superclass.Name, "Superclass must be a class."))
		}
		superclass = sc
	}

	in.env.Define(s.Name.Lexeme, nil)

	env := in.env
	if superclass != nil {
		env = NewChildEnvironment(in.env)
		env.Define("super", superclass)
	}

	methods := make(map[string]*Function, len(s.Methods))
	for _, m := range s.Methods {
		methods[m.Name.Lexeme] = &Function{
			decl:          m,
			closure:       env,
			isInitializer: m.Name.Lexeme == "init",
		}
	}

	class := &Class{Name: s.Name.Lexeme, Superclass: superclass, Methods: methods}
	in.env.Assign(s.Name, class)
}

func (in *Interp) eval(e ast.Expr) Value {
	switch e := e.(type) {
	case *ast.LiteralExpr:
		return e.Value
	case *ast.GroupingExpr:
		return in.eval(e.Inner)
	case *ast.UnaryExpr:
		return in.evalUnary(e)
	case *ast.BinaryExpr:
		return in.evalBinary(e)
	case *ast.LogicalExpr:
		return in.evalLogical(e)
	case *ast.VariableExpr:
		return in.lookUpVariable(e.Name, e)
	case *ast.AssignExpr:
		v := in.eval(e.Value)
		if distance, ok := in.locals[e]; ok {
			in.env.AssignAt(distance, e.Name, v)
		} else if err := in.globals.Assign(e.Name, v); err != nil {
			panic(err)
		}
		return v
	case *ast.CallExpr:
		return in.evalCall(e)
	case *ast.GetExpr:
		return in.evalGet(e)
	case *ast.SetExpr:
		return in.evalSet(e)
	case *ast.ThisExpr:
		return in.lookUpVariable(e.Keyword, e)
	case *ast.SuperExpr:
		return in.evalSuper(e)
	default:
		panic("interpreter: unhandled expression type")
	}
}

func (in *Interp) lookUpVariable(name token.Token, e ast.Expr) Value {
	if distance, ok := in.locals[e]; ok {
		return in.env.GetAt(distance, name.Lexeme)
	}
	v, err := in.globals.Get(name)
	if err != nil {
		panic(err)
	}
	return v
}

func (in *Interp) evalUnary(e *ast.UnaryExpr) Value {
	right := in.eval(e.Right)
	switch e.Op.Type {
	case token.Minus:
		n, ok := right.(float64)
		if !ok {
			panic(loxerror.NewRuntimeError(e.Op, "Operand must be a number."))
		}
		return -n
	case token.Bang:
		return !isTruthy(right)
	default:
		panic("interpreter: unhandled unary operator")
	}
}

func (in *Interp) evalLogical(e *ast.LogicalExpr) Value {
	left := in.eval(e.Left)
	if e.Op.Type == token.Or {
		if isTruthy(left) {
			return left
		}
	} else {
		if !isTruthy(left) {
			return left
		}
	}
	return in.eval(e.Right)
}

func (in *Interp) evalBinary(e *ast.BinaryExpr) Value {
	left := in.eval(e.Left)
	right := in.eval(e.Right)

	switch e.Op.Type {
	case token.Plus:
		if ln, ok := left.(float64); ok {
			if rn, ok := right.(float64); ok {
				return ln + rn
			}
		}
		if ls, ok := left.(string); ok {
			if rs, ok := right.(string); ok {
				return ls + rs
			}
		}
		panic(loxerror.NewRuntimeError(e.Op, "Operands must be two numbers or two strings."))
	case token.Minus:
		ln, rn := in.numberOperands(e.Op, left, right)
		return ln - rn
	case token.Star:
		ln, rn := in.numberOperands(e.Op, left, right)
		return ln * rn
	case token.Slash:
		ln, rn := in.numberOperands(e.Op, left, right)
		return ln / rn
	case token.Greater:
		ln, rn := in.numberOperands(e.Op, left, right)
		return ln > rn
	case token.GreaterEqual:
		ln, rn := in.numberOperands(e.Op, left, right)
		return ln >= rn
	case token.Less:
		ln, rn := in.numberOperands(e.Op, left, right)
		return ln < rn
	case token.LessEqual:
		ln, rn := in.numberOperands(e.Op, left, right)
		return ln <= rn
	case token.EqualEqual:
		return isEqual(left, right)
	case token.BangEqual:
		return !isEqual(left, right)
	default:
		panic("interpreter: unhandled binary operator")
	}
}

func (in *Interp) numberOperands(op token.Token, left, right Value) (float64, float64) {
	ln, lok := left.(float64)
	rn, rok := right.(float64)
	if !lok || !rok {
		panic(loxerror.NewRuntimeError(op, "Operands must be numbers."))
	}
	return ln, rn
}

func (in *Interp) evalCall(e *ast.CallExpr) Value {
	callee := in.eval(e.Callee)

	args := make([]Value, len(e.Arguments))
	for i, a := range e.Arguments {
		args[i] = in.eval(a)
	}

	fn, ok := callee.(callable)
	if !ok {
		panic(loxerror.NewRuntimeError(e.Paren, "Can only call functions and classes."))
	}
	if len(args) != fn.Arity() {
		panic(loxerror.NewRuntimeError(e.Paren, "Expected %d arguments but got %d.", fn.Arity(), len(args)))
	}

	v, err := fn.Call(in, args)
	if err != nil {
		panic(err)
	}
	return v
}

func (in *Interp) evalGet(e *ast.GetExpr) Value {
	obj := in.eval(e.Object)
	instance, ok := obj.(*Instance)
	if !ok {
		panic(loxerror.NewRuntimeError(e.Name, "Only instances have properties."))
	}
	v, ok := instance.Get(e.Name.Lexeme)
	if !ok {
		panic(loxerror.NewRuntimeError(e.Name, "Undefined property '%s'.", e.Name.Lexeme))
	}
	return v
}

func (in *Interp) evalSet(e *ast.SetExpr) Value {
	obj := in.eval(e.Object)
	instance, ok := obj.(*Instance)
	if !ok {
		panic(loxerror.NewRuntimeError(e.Name, "Only instances have fields."))
	}
	v := in.eval(e.Value)
	instance.Set(e.Name.Lexeme, v)
	return v
}

func (in *Interp) evalSuper(e *ast.SuperExpr) Value {
	distance := in.locals[e]
	superclass := in.env.GetAt(distance, "super").(*Class)
	instance := in.env.GetAt(distance-1, "this").(*Instance)

	method, ok := superclass.FindMethod(e.Method.Lexeme)
	if !ok {
		panic(loxerror.NewRuntimeError(e.Method, "Undefined property '%s'.", e.Method.Lexeme))
	}
	return method.Bind(instance)
}

// Call invokes a user-defined function or method: it runs the body in a
// fresh environment parented on the closure, parameters bound positionally,
// and turns a `return` (including the implicit `return this` of an
// initializer with no explicit return) into the call's result.
func (f *Function) Call(in *Interp, args []Value) (Value, error) {
	if err := in.calls.push(f.decl.Name.Lexeme, f.decl.Name.Line); err != nil {
		return nil, err
	}
	defer in.calls.pop()
	defer func() {
		if r := recover(); r != nil {
			// Stamp the still-active call stack onto a runtime error on its
			// way out to Interpret, for the -trace diagnostic.
			if rerr, ok := r.(*loxerror.RuntimeError); ok && len(rerr.Trace) == 0 {
				rerr.Trace = in.calls.snapshot()
			}
			panic(r)
		}
	}()

	env := NewChildEnvironment(f.closure)
	for i, param := range f.decl.Params {
		env.Define(param.Lexeme, args[i])
	}

	result := in.execBlock(f.decl.Body, env)

	if f.isInitializer {
		return f.closure.GetAt(0, "this"), nil
	}
	if result.returned {
		return result.value, nil
	}
	return nil, nil
}

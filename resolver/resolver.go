// Package resolver performs a static analysis pass between parsing and
// interpretation: it resolves each variable reference to the number of
// scopes between its use and its declaration, and rejects a handful of
// errors the interpreter would otherwise only catch at runtime (or not at
// all, such as returning a value from an initializer).
package resolver

import (
	"github.com/loxlang/golox/ast"
	"github.com/loxlang/golox/loxerror"
	"github.com/loxlang/golox/token"
)

type functionType int

const (
	functionNone functionType = iota
	functionFunction
	functionMethod
	functionInitializer
)

type classType int

const (
	classNone classType = iota
	classClass
	classSubclass
)

// Locals maps each variable reference expression (a *ast.VariableExpr,
// *ast.AssignExpr, *ast.ThisExpr, or *ast.SuperExpr) to the number of
// environments between the scope it's used in and the scope that declares
// it. Expressions absent from the map are resolved in the global scope.
//
// The map is keyed directly on Expr, relying on Go pointer identity: the
// parser never reuses a node, so each key is unique regardless of two
// expressions being otherwise equal.
type Locals map[ast.Expr]int

// scope maps a name to whether its declaration has finished (false while
// its own initializer is being resolved, so that `var a = a;` is rejected).
type scope map[string]bool

// Resolver walks a parsed program and produces the Locals map the
// interpreter needs to look up variables without a runtime scope search.
type Resolver struct {
	scopes     []scope
	locals     Locals
	errs       loxerror.StaticErrors
	currentFn  functionType
	currentCls classType
}

// Resolve runs the static analysis pass over program. A non-nil error
// wraps every accumulated static error; the returned Locals is valid
// (usable by the interpreter) regardless, since resolution doesn't abort
// early the way parsing does.
func Resolve(program ast.Program) (Locals, error) {
	r := &Resolver{locals: make(Locals)}
	r.resolveStmts(program.Stmts)
	if r.errs.HasErrors() {
		return r.locals, &r.errs
	}
	return r.locals, nil
}

func (r *Resolver) resolveStmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
}

func (r *Resolver) resolveStmt(s ast.Stmt) {
	switch s := s.(type) {
	case *ast.ExpressionStmt:
		r.resolveExpr(s.Expr)
	case *ast.PrintStmt:
		r.resolveExpr(s.Expr)
	case *ast.VarStmt:
		r.declare(s.Name)
		if s.Initializer != nil {
			r.resolveExpr(s.Initializer)
		}
		r.define(s.Name)
	case *ast.BlockStmt:
		r.beginScope()
		r.resolveStmts(s.Stmts)
		r.endScope()
	case *ast.IfStmt:
		r.resolveExpr(s.Condition)
		r.resolveStmt(s.Then)
		if s.Else != nil {
			r.resolveStmt(s.Else)
		}
	case *ast.WhileStmt:
		r.resolveExpr(s.Condition)
		r.resolveStmt(s.Body)
	case *ast.FunctionStmt:
		r.declare(s.Name)
		r.define(s.Name)
		r.resolveFunction(s, functionFunction)
	case *ast.ReturnStmt:
		if r.currentFn == functionNone {
			r.errAt(s.Keyword, "Can't return from top-level code.")
		}
		if s.Value != nil {
			if r.currentFn == functionInitializer {
				r.errAt(s.Keyword, "Can't return a value from an initializer.")
			}
			r.resolveExpr(s.Value)
		}
	case *ast.ClassStmt:
		r.resolveClass(s)
	default:
		panic("resolver: unhandled statement type")
	}
}

func (r *Resolver) resolveClass(s *ast.ClassStmt) {
	enclosingCls := r.currentCls
	r.currentCls = classClass

	r.declare(s.Name)
	r.define(s.Name)

	if s.Superclass != nil {
		if s.Superclass.Name.Lexeme == s.Name.Lexeme {
			r.errAt(s.Superclass.Name, "A class can't inherit from itself.")
		}
		r.currentCls = classSubclass
		r.resolveExpr(s.Superclass)

		r.beginScope()
		r.scopes[len(r.scopes)-1]["super"] = true
	}

	r.beginScope()
	r.scopes[len(r.scopes)-1]["this"] = true

	for _, m := range s.Methods {
		fnType := functionMethod
		if m.Name.Lexeme == "init" {
			fnType = functionInitializer
		}
		r.resolveFunction(m, fnType)
	}

	r.endScope()

	if s.Superclass != nil {
		r.endScope()
	}

	r.currentCls = enclosingCls
}

func (r *Resolver) resolveFunction(fn *ast.FunctionStmt, typ functionType) {
	enclosingFn := r.currentFn
	r.currentFn = typ

	r.beginScope()
	for _, param := range fn.Params {
		r.declare(param)
		r.define(param)
	}
	r.resolveStmts(fn.Body)
	r.endScope()

	r.currentFn = enclosingFn
}

func (r *Resolver) resolveExpr(e ast.Expr) {
	switch e := e.(type) {
	case *ast.LiteralExpr:
		// no subexpressions, no binding
	case *ast.GroupingExpr:
		r.resolveExpr(e.Inner)
	case *ast.UnaryExpr:
		r.resolveExpr(e.Right)
	case *ast.BinaryExpr:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)
	case *ast.LogicalExpr:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)
	case *ast.VariableExpr:
		if len(r.scopes) > 0 {
			if defined, ok := r.scopes[len(r.scopes)-1][e.Name.Lexeme]; ok && !defined {
				r.errAt(e.Name, "Can't read local variable in its own initializer.")
			}
		}
		r.resolveLocal(e, e.Name)
	case *ast.AssignExpr:
		r.resolveExpr(e.Value)
		r.resolveLocal(e, e.Name)
	case *ast.CallExpr:
		r.resolveExpr(e.Callee)
		for _, a := range e.Arguments {
			r.resolveExpr(a)
		}
	case *ast.GetExpr:
		r.resolveExpr(e.Object)
	case *ast.SetExpr:
		r.resolveExpr(e.Value)
		r.resolveExpr(e.Object)
	case *ast.ThisExpr:
		if r.currentCls == classNone {
			r.errAt(e.Keyword, "Can't use 'this' outside of a class.")
			return
		}
		r.resolveLocal(e, e.Keyword)
	case *ast.SuperExpr:
		switch r.currentCls {
		case classNone:
			r.errAt(e.Keyword, "Can't use 'super' outside of a class.")
		case classClass:
			r.errAt(e.Keyword, "Can't use 'super' in a class with no superclass.")
		}
		r.resolveLocal(e, e.Keyword)
	default:
		panic("resolver: unhandled expression type")
	}
}

func (r *Resolver) resolveLocal(e ast.Expr, name token.Token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name.Lexeme]; ok {
			r.locals[e] = len(r.scopes) - 1 - i
			return
		}
	}
	// not found in any scope: treated as global, left out of the map.
}

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, scope{})
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *Resolver) declare(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	s := r.scopes[len(r.scopes)-1]
	if _, ok := s[name.Lexeme]; ok {
		r.errAt(name, "Already a variable with this name in this scope.")
	}
	s[name.Lexeme] = false
}

func (r *Resolver) define(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.Lexeme] = true
}

func (r *Resolver) errAt(tok token.Token, format string, args ...any) {
	r.errs.Add(loxerror.NewStaticError(tok, format, args...))
}

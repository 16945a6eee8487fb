// Package ast declares the abstract syntax tree produced by the parser and
// consumed by the resolver and interpreter.
//
// Expression and statement nodes are pointers implementing the marker
// interfaces Expr and Stmt. A node's pointer identity is itself the stable,
// collision-free handle that the resolver's scope-depth map is keyed on
// (two *LiteralExpr values at different source positions are different
// pointers even if their Value fields are equal).
package ast

import "github.com/loxlang/golox/token"

// Node is implemented by every expression and statement node.
type Node interface {
	// Pos returns a representative token for the node, used to attribute
	// errors to a source line.
	Pos() token.Token
}

// Expr is implemented by every expression node.
type Expr interface {
	Node
	exprNode()
}

// Stmt is implemented by every statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Program is the root of a parsed source file.
type Program struct {
	Stmts []Stmt
}

type expr struct{}

func (expr) exprNode() {}

type stmt struct{}

func (stmt) stmtNode() {}

// LiteralExpr is a number, string, boolean, or nil literal.
type LiteralExpr struct {
	Token token.Token
	Value any // float64, string, bool, or nil
	expr
}

func (e *LiteralExpr) Pos() token.Token { return e.Token }

// GroupingExpr is a parenthesized expression.
type GroupingExpr struct {
	LeftParen token.Token
	Inner     Expr
	expr
}

func (e *GroupingExpr) Pos() token.Token { return e.LeftParen }

// UnaryExpr is a prefix `!` or `-` expression.
type UnaryExpr struct {
	Op    token.Token
	Right Expr
	expr
}

func (e *UnaryExpr) Pos() token.Token { return e.Op }

// BinaryExpr is an arithmetic, comparison, or equality expression.
type BinaryExpr struct {
	Left  Expr
	Op    token.Token
	Right Expr
	expr
}

func (e *BinaryExpr) Pos() token.Token { return e.Op }

// LogicalExpr is an `and`/`or` expression, evaluated with short-circuiting.
type LogicalExpr struct {
	Left  Expr
	Op    token.Token
	Right Expr
	expr
}

func (e *LogicalExpr) Pos() token.Token { return e.Op }

// VariableExpr is a reference to a variable by name.
type VariableExpr struct {
	Name token.Token
	expr
}

func (e *VariableExpr) Pos() token.Token { return e.Name }

// AssignExpr assigns a new value to an existing variable.
type AssignExpr struct {
	Name  token.Token
	Value Expr
	expr
}

func (e *AssignExpr) Pos() token.Token { return e.Name }

// CallExpr is a function or class call, `callee(arguments...)`.
type CallExpr struct {
	Callee    Expr
	Paren     token.Token // closing ')', used to attribute arity errors
	Arguments []Expr
	expr
}

func (e *CallExpr) Pos() token.Token { return e.Paren }

// GetExpr reads a property off an instance, `object.name`.
type GetExpr struct {
	Object Expr
	Name   token.Token
	expr
}

func (e *GetExpr) Pos() token.Token { return e.Name }

// SetExpr writes a property on an instance, `object.name = value`.
type SetExpr struct {
	Object Expr
	Name   token.Token
	Value  Expr
	expr
}

func (e *SetExpr) Pos() token.Token { return e.Name }

// ThisExpr is a `this` reference inside a method.
type ThisExpr struct {
	Keyword token.Token
	expr
}

func (e *ThisExpr) Pos() token.Token { return e.Keyword }

// SuperExpr is a `super.method` reference inside a subclass method.
type SuperExpr struct {
	Keyword token.Token
	Method  token.Token
	expr
}

func (e *SuperExpr) Pos() token.Token { return e.Keyword }

// ExpressionStmt evaluates an expression for its side effects and discards
// the result.
type ExpressionStmt struct {
	Expr Expr
	stmt
}

func (s *ExpressionStmt) Pos() token.Token { return s.Expr.Pos() }

// PrintStmt evaluates an expression and writes its stringified form,
// followed by a newline, to standard output.
type PrintStmt struct {
	Keyword token.Token
	Expr    Expr
	stmt
}

func (s *PrintStmt) Pos() token.Token { return s.Keyword }

// VarStmt declares a variable, optionally with an initializer.
type VarStmt struct {
	Name        token.Token
	Initializer Expr // nil if the declaration has no initializer
	stmt
}

func (s *VarStmt) Pos() token.Token { return s.Name }

// BlockStmt is a `{ ... }` sequence of statements forming its own scope.
type BlockStmt struct {
	LeftBrace token.Token
	Stmts     []Stmt
	stmt
}

func (s *BlockStmt) Pos() token.Token { return s.LeftBrace }

// IfStmt is a conditional statement, with an optional else branch.
type IfStmt struct {
	Keyword   token.Token
	Condition Expr
	Then      Stmt
	Else      Stmt // nil if there is no else branch
	stmt
}

func (s *IfStmt) Pos() token.Token { return s.Keyword }

// WhileStmt is a condition-first loop.
type WhileStmt struct {
	Keyword   token.Token
	Condition Expr
	Body      Stmt
	stmt
}

func (s *WhileStmt) Pos() token.Token { return s.Keyword }

// FunctionStmt is a named function (or method) declaration.
type FunctionStmt struct {
	Name   token.Token
	Params []token.Token
	Body   []Stmt
	stmt
}

func (s *FunctionStmt) Pos() token.Token { return s.Name }

// ReturnStmt exits the enclosing function, optionally carrying a value.
type ReturnStmt struct {
	Keyword token.Token
	Value   Expr // nil for a bare `return;`
	stmt
}

func (s *ReturnStmt) Pos() token.Token { return s.Keyword }

// ClassStmt declares a class, with an optional superclass and a list of
// method declarations (each a *FunctionStmt).
type ClassStmt struct {
	Name       token.Token
	Superclass *VariableExpr // nil if the class has no superclass
	Methods    []*FunctionStmt
	stmt
}

func (s *ClassStmt) Pos() token.Token { return s.Name }

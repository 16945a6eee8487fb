// Package parser implements the recursive-descent parser for Lox, with
// panic-mode error recovery at statement boundaries.
package parser

import (
	"github.com/loxlang/golox/ast"
	"github.com/loxlang/golox/lexer"
	"github.com/loxlang/golox/loxerror"
	"github.com/loxlang/golox/token"
)

const maxArgs = 255

// parseError is panicked internally to unwind to the nearest
// synchronization point; it's always recovered within this package.
type parseError struct{}

// Parser parses a token stream into an ast.Program.
type Parser struct {
	tokens  []token.Token
	current int
	errs    loxerror.StaticErrors
}

// Parse scans and parses src, returning the resulting AST and an error
// that (if non-nil) wraps every accumulated static error. A non-nil error
// does not mean the returned Program is empty: the parser recovers at
// statement boundaries so a single run can surface many errors at once.
// Callers that care about partial results on error may still use the
// returned Program; per spec, the caller must check the error before
// proceeding to resolve/interpret it.
func Parse(src []byte) (ast.Program, error) {
	var errs loxerror.StaticErrors
	toks := lexer.ScanAll(src, func(line int, msg string) {
		errs.Add(loxerror.NewStaticErrorAtLine(line, "%s", msg))
	})
	p := &Parser{tokens: toks}
	program := p.parseProgram()
	for _, e := range p.errs.All() {
		errs.Add(e)
	}
	if errs.HasErrors() {
		return program, &errs
	}
	return program, nil
}

func (p *Parser) parseProgram() ast.Program {
	var program ast.Program
	for !p.isAtEnd() {
		if stmt, ok := p.declarationRecovering(); ok {
			program.Stmts = append(program.Stmts, stmt)
		}
	}
	return program
}

// declarationRecovering parses one declaration, catching a parseError and
// synchronizing to the next statement boundary so that one bad statement
// doesn't prevent later ones from being parsed and checked.
func (p *Parser) declarationRecovering() (stmt ast.Stmt, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			if _, isParseErr := r.(parseError); !isParseErr {
				panic(r)
			}
			p.synchronize()
			ok = false
		}
	}()
	return p.declaration(), true
}

func (p *Parser) declaration() ast.Stmt {
	switch {
	case p.match(token.Class):
		return p.classDecl()
	case p.match(token.Fun):
		return p.function("function")
	case p.match(token.Var):
		return p.varDecl()
	default:
		return p.statement()
	}
}

func (p *Parser) classDecl() ast.Stmt {
	name := p.consume(token.Identifier, "Expect class name.")

	var superclass *ast.VariableExpr
	if p.match(token.Less) {
		superName := p.consume(token.Identifier, "Expect superclass name.")
		superclass = &ast.VariableExpr{Name: superName}
	}

	p.consume(token.LeftBrace, "Expect '{' before class body.")
	var methods []*ast.FunctionStmt
	for !p.check(token.RightBrace) && !p.isAtEnd() {
		methods = append(methods, p.function("method"))
	}
	p.consume(token.RightBrace, "Expect '}' after class body.")

	return &ast.ClassStmt{Name: name, Superclass: superclass, Methods: methods}
}

func (p *Parser) function(kind string) *ast.FunctionStmt {
	name := p.consume(token.Identifier, "Expect %s name.", kind)
	p.consume(token.LeftParen, "Expect '(' after %s name.", kind)
	var params []token.Token
	if !p.check(token.RightParen) {
		for {
			if len(params) >= maxArgs {
				p.errorAt(p.peek(), "Can't have more than %d parameters.", maxArgs)
			}
			params = append(params, p.consume(token.Identifier, "Expect parameter name."))
			if !p.match(token.Comma) {
				break
			}
		}
	}
	p.consume(token.RightParen, "Expect ')' after parameters.")
	p.consume(token.LeftBrace, "Expect '{' before %s body.", kind)
	body := p.block()
	return &ast.FunctionStmt{Name: name, Params: params, Body: body}
}

func (p *Parser) varDecl() ast.Stmt {
	name := p.consume(token.Identifier, "Expect variable name.")
	var initializer ast.Expr
	if p.match(token.Equal) {
		initializer = p.expression()
	}
	p.consume(token.Semicolon, "Expect ';' after variable declaration.")
	return &ast.VarStmt{Name: name, Initializer: initializer}
}

func (p *Parser) statement() ast.Stmt {
	switch {
	case p.match(token.For):
		return p.forStmt()
	case p.match(token.If):
		return p.ifStmt()
	case p.match(token.Print):
		return p.printStmt()
	case p.match(token.Return):
		return p.returnStmt()
	case p.match(token.While):
		return p.whileStmt()
	case p.check(token.LeftBrace):
		brace := p.advance()
		return &ast.BlockStmt{LeftBrace: brace, Stmts: p.block()}
	default:
		return p.exprStmt()
	}
}

func (p *Parser) block() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.check(token.RightBrace) && !p.isAtEnd() {
		if stmt, ok := p.declarationRecovering(); ok {
			stmts = append(stmts, stmt)
		}
	}
	p.consume(token.RightBrace, "Expect '}' after block.")
	return stmts
}

// forStmt desugars `for (init; cond; incr) body` into
// `{ init; while (cond) { body; incr; } }` at parse time, so that neither
// the resolver nor the interpreter need to know about `for` loops.
func (p *Parser) forStmt() ast.Stmt {
	keyword := p.previous()
	p.consume(token.LeftParen, "Expect '(' after 'for'.")

	var initializer ast.Stmt
	switch {
	case p.match(token.Semicolon):
		initializer = nil
	case p.match(token.Var):
		initializer = p.varDecl()
	default:
		initializer = p.exprStmt()
	}

	var condition ast.Expr
	if !p.check(token.Semicolon) {
		condition = p.expression()
	}
	p.consume(token.Semicolon, "Expect ';' after loop condition.")

	var update ast.Expr
	if !p.check(token.RightParen) {
		update = p.expression()
	}
	p.consume(token.RightParen, "Expect ')' after for clauses.")

	body := p.statement()

	if update != nil {
		body = &ast.BlockStmt{LeftBrace: keyword, Stmts: []ast.Stmt{body, &ast.ExpressionStmt{Expr: update}}}
	}

	if condition == nil {
		condition = &ast.LiteralExpr{Token: keyword, Value: true}
	}
	body = &ast.WhileStmt{Keyword: keyword, Condition: condition, Body: body}

	if initializer != nil {
		body = &ast.BlockStmt{LeftBrace: keyword, Stmts: []ast.Stmt{initializer, body}}
	}

	return body
}

func (p *Parser) ifStmt() ast.Stmt {
	keyword := p.previous()
	p.consume(token.LeftParen, "Expect '(' after 'if'.")
	condition := p.expression()
	p.consume(token.RightParen, "Expect ')' after if condition.")
	then := p.statement()
	var elseBranch ast.Stmt
	if p.match(token.Else) {
		elseBranch = p.statement()
	}
	return &ast.IfStmt{Keyword: keyword, Condition: condition, Then: then, Else: elseBranch}
}

func (p *Parser) printStmt() ast.Stmt {
	keyword := p.previous()
	value := p.expression()
	p.consume(token.Semicolon, "Expect ';' after value.")
	return &ast.PrintStmt{Keyword: keyword, Expr: value}
}

func (p *Parser) returnStmt() ast.Stmt {
	keyword := p.previous()
	var value ast.Expr
	if !p.check(token.Semicolon) {
		value = p.expression()
	}
	p.consume(token.Semicolon, "Expect ';' after return value.")
	return &ast.ReturnStmt{Keyword: keyword, Value: value}
}

func (p *Parser) whileStmt() ast.Stmt {
	keyword := p.previous()
	p.consume(token.LeftParen, "Expect '(' after 'while'.")
	condition := p.expression()
	p.consume(token.RightParen, "Expect ')' after condition.")
	body := p.statement()
	return &ast.WhileStmt{Keyword: keyword, Condition: condition, Body: body}
}

func (p *Parser) exprStmt() ast.Stmt {
	value := p.expression()
	p.consume(token.Semicolon, "Expect ';' after expression.")
	return &ast.ExpressionStmt{Expr: value}
}

func (p *Parser) expression() ast.Expr {
	return p.assignment()
}

// assignment parses the left-hand side as a general expression and then
// inspects the result: a VariableExpr becomes an AssignExpr, a GetExpr
// becomes a SetExpr, and anything else is an "Invalid assignment target."
// error reported at the '=' token without unwinding any further tokens.
func (p *Parser) assignment() ast.Expr {
	expr := p.or()

	if p.match(token.Equal) {
		equals := p.previous()
		value := p.assignment()

		switch e := expr.(type) {
		case *ast.VariableExpr:
			return &ast.AssignExpr{Name: e.Name, Value: value}
		case *ast.GetExpr:
			return &ast.SetExpr{Object: e.Object, Name: e.Name, Value: value}
		default:
			p.errorAt(equals, "Invalid assignment target.")
			return expr
		}
	}

	return expr
}

func (p *Parser) or() ast.Expr {
	expr := p.and()
	for p.match(token.Or) {
		op := p.previous()
		right := p.and()
		expr = &ast.LogicalExpr{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) and() ast.Expr {
	expr := p.equality()
	for p.match(token.And) {
		op := p.previous()
		right := p.equality()
		expr = &ast.LogicalExpr{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) equality() ast.Expr {
	expr := p.comparison()
	for p.match(token.BangEqual, token.EqualEqual) {
		op := p.previous()
		right := p.comparison()
		expr = &ast.BinaryExpr{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) comparison() ast.Expr {
	expr := p.term()
	for p.match(token.Greater, token.GreaterEqual, token.Less, token.LessEqual) {
		op := p.previous()
		right := p.term()
		expr = &ast.BinaryExpr{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) term() ast.Expr {
	expr := p.factor()
	for p.match(token.Minus, token.Plus) {
		op := p.previous()
		right := p.factor()
		expr = &ast.BinaryExpr{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) factor() ast.Expr {
	expr := p.unary()
	for p.match(token.Slash, token.Star) {
		op := p.previous()
		right := p.unary()
		expr = &ast.BinaryExpr{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) unary() ast.Expr {
	if p.match(token.Bang, token.Minus) {
		op := p.previous()
		right := p.unary()
		return &ast.UnaryExpr{Op: op, Right: right}
	}
	return p.call()
}

func (p *Parser) call() ast.Expr {
	expr := p.primary()
	for {
		switch {
		case p.match(token.LeftParen):
			expr = p.finishCall(expr)
		case p.match(token.Dot):
			name := p.consume(token.Identifier, "Expect property name after '.'.")
			expr = &ast.GetExpr{Object: expr, Name: name}
		default:
			return expr
		}
	}
}

func (p *Parser) finishCall(callee ast.Expr) ast.Expr {
	var args []ast.Expr
	if !p.check(token.RightParen) {
		for {
			if len(args) >= maxArgs {
				p.errorAt(p.peek(), "Can't have more than %d arguments.", maxArgs)
			}
			args = append(args, p.expression())
			if !p.match(token.Comma) {
				break
			}
		}
	}
	paren := p.consume(token.RightParen, "Expect ')' after arguments.")
	return &ast.CallExpr{Callee: callee, Paren: paren, Arguments: args}
}

func (p *Parser) primary() ast.Expr {
	switch {
	case p.match(token.False):
		return &ast.LiteralExpr{Token: p.previous(), Value: false}
	case p.match(token.True):
		return &ast.LiteralExpr{Token: p.previous(), Value: true}
	case p.match(token.Nil):
		return &ast.LiteralExpr{Token: p.previous(), Value: nil}
	case p.match(token.Number, token.String):
		tok := p.previous()
		return &ast.LiteralExpr{Token: tok, Value: tok.Literal}
	case p.match(token.Super):
		keyword := p.previous()
		p.consume(token.Dot, "Expect '.' after 'super'.")
		method := p.consume(token.Identifier, "Expect superclass method name.")
		return &ast.SuperExpr{Keyword: keyword, Method: method}
	case p.match(token.This):
		return &ast.ThisExpr{Keyword: p.previous()}
	case p.match(token.Identifier):
		return &ast.VariableExpr{Name: p.previous()}
	case p.match(token.LeftParen):
		leftParen := p.previous()
		inner := p.expression()
		p.consume(token.RightParen, "Expect ')' after expression.")
		return &ast.GroupingExpr{LeftParen: leftParen, Inner: inner}
	default:
		panic(p.error(p.peek(), "Expect expression."))
	}
}

// --- token stream helpers ---

func (p *Parser) match(types ...token.Type) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) check(t token.Type) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Type == t
}

func (p *Parser) advance() token.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Type == token.EOF
}

func (p *Parser) peek() token.Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() token.Token {
	return p.tokens[p.current-1]
}

func (p *Parser) consume(t token.Type, format string, args ...any) token.Token {
	if p.check(t) {
		return p.advance()
	}
	panic(p.error(p.peek(), format, args...))
}

// error records a static error and returns a parseError to be panicked by
// the caller, unwinding to the nearest declarationRecovering.
func (p *Parser) error(tok token.Token, format string, args ...any) parseError {
	p.errorAt(tok, format, args...)
	return parseError{}
}

// errorAt records a static error without unwinding the parse; used for
// errors (like the argument-count ceiling) that shouldn't abort the
// current production.
func (p *Parser) errorAt(tok token.Token, format string, args ...any) {
	p.errs.Add(loxerror.NewStaticError(tok, format, args...))
}

// synchronize discards tokens until it reaches a likely statement
// boundary: either the previous token was a ';' or the next token begins
// a declaration/statement.
func (p *Parser) synchronize() {
	p.advance()
	for !p.isAtEnd() {
		if p.previous().Type == token.Semicolon {
			return
		}
		switch p.peek().Type {
		case token.Class, token.Fun, token.Var, token.For, token.If, token.While, token.Print, token.Return:
			return
		}
		p.advance()
	}
}

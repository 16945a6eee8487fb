package parser_test

import (
	"strings"
	"testing"

	"github.com/loxlang/golox/ast"
	"github.com/loxlang/golox/parser"
)

func mustParse(t *testing.T, src string) ast.Program {
	t.Helper()
	program, err := parser.Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse(%q) returned unexpected error: %v", src, err)
	}
	return program
}

func TestParseExpressionPrecedence(t *testing.T) {
	program := mustParse(t, "1 + 2 * 3;")
	if len(program.Stmts) != 1 {
		t.Fatalf("len(Stmts) = %d, want 1", len(program.Stmts))
	}
	exprStmt, ok := program.Stmts[0].(*ast.ExpressionStmt)
	if !ok {
		t.Fatalf("Stmts[0] = %T, want *ast.ExpressionStmt", program.Stmts[0])
	}
	bin, ok := exprStmt.Expr.(*ast.BinaryExpr)
	if !ok {
		t.Fatalf("Expr = %T, want *ast.BinaryExpr", exprStmt.Expr)
	}
	if bin.Op.Lexeme != "+" {
		t.Errorf("top-level operator = %q, want %q (multiplication should bind tighter)", bin.Op.Lexeme, "+")
	}
	if _, ok := bin.Right.(*ast.BinaryExpr); !ok {
		t.Errorf("Right = %T, want *ast.BinaryExpr (2 * 3)", bin.Right)
	}
}

func TestParseForDesugarsToWhile(t *testing.T) {
	program := mustParse(t, "for (var i = 0; i < 3; i = i + 1) print i;")
	outer, ok := program.Stmts[0].(*ast.BlockStmt)
	if !ok {
		t.Fatalf("Stmts[0] = %T, want *ast.BlockStmt", program.Stmts[0])
	}
	if len(outer.Stmts) != 2 {
		t.Fatalf("len(outer.Stmts) = %d, want 2 (initializer + while)", len(outer.Stmts))
	}
	if _, ok := outer.Stmts[0].(*ast.VarStmt); !ok {
		t.Errorf("outer.Stmts[0] = %T, want *ast.VarStmt", outer.Stmts[0])
	}
	while, ok := outer.Stmts[1].(*ast.WhileStmt)
	if !ok {
		t.Fatalf("outer.Stmts[1] = %T, want *ast.WhileStmt", outer.Stmts[1])
	}
	body, ok := while.Body.(*ast.BlockStmt)
	if !ok {
		t.Fatalf("while.Body = %T, want *ast.BlockStmt", while.Body)
	}
	if len(body.Stmts) != 2 {
		t.Errorf("len(body.Stmts) = %d, want 2 (original body + increment)", len(body.Stmts))
	}
}

func TestParseForWithNoClauses(t *testing.T) {
	program := mustParse(t, "for (;;) print 1;")
	while, ok := program.Stmts[0].(*ast.WhileStmt)
	if !ok {
		t.Fatalf("Stmts[0] = %T, want *ast.WhileStmt", program.Stmts[0])
	}
	lit, ok := while.Condition.(*ast.LiteralExpr)
	if !ok || lit.Value != true {
		t.Errorf("Condition = %#v, want literal true", while.Condition)
	}
}

func TestParseAssignmentTarget(t *testing.T) {
	program := mustParse(t, "a = b.c = 1;")
	exprStmt := program.Stmts[0].(*ast.ExpressionStmt)
	assign, ok := exprStmt.Expr.(*ast.AssignExpr)
	if !ok {
		t.Fatalf("Expr = %T, want *ast.AssignExpr", exprStmt.Expr)
	}
	if _, ok := assign.Value.(*ast.SetExpr); !ok {
		t.Errorf("Value = %T, want *ast.SetExpr", assign.Value)
	}
}

func TestParseInvalidAssignmentTarget(t *testing.T) {
	_, err := parser.Parse([]byte("1 + 2 = 3;"))
	if err == nil {
		t.Fatal("Parse() returned nil error, want an error about an invalid assignment target")
	}
	if !strings.Contains(err.Error(), "Invalid assignment target.") {
		t.Errorf("error = %q, want substring %q", err.Error(), "Invalid assignment target.")
	}
}

func TestParseClassDeclaration(t *testing.T) {
	program := mustParse(t, `
		class Base {}
		class Derived < Base {
			init(x) { this.x = x; }
			greet() { return this.x; }
		}
	`)
	if len(program.Stmts) != 2 {
		t.Fatalf("len(Stmts) = %d, want 2", len(program.Stmts))
	}
	derived, ok := program.Stmts[1].(*ast.ClassStmt)
	if !ok {
		t.Fatalf("Stmts[1] = %T, want *ast.ClassStmt", program.Stmts[1])
	}
	if derived.Superclass == nil || derived.Superclass.Name.Lexeme != "Base" {
		t.Errorf("Superclass = %#v, want reference to Base", derived.Superclass)
	}
	if len(derived.Methods) != 2 {
		t.Fatalf("len(Methods) = %d, want 2", len(derived.Methods))
	}
}

func TestParseSynchronizeRecoversAfterError(t *testing.T) {
	_, err := parser.Parse([]byte("var ; var b = 2;"))
	if err == nil {
		t.Fatal("Parse() returned nil error, want a parse error for the malformed first statement")
	}
	// Recovery after the bad first statement lets the well-formed second one
	// parse cleanly, so exactly one error is reported.
	if strings.Count(err.Error(), "\n")+1 != 1 {
		t.Errorf("error = %q, want exactly one reported error", err.Error())
	}
}

func TestParseTooManyArguments(t *testing.T) {
	var b strings.Builder
	b.WriteString("f(")
	for i := 0; i < 256; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString("1")
	}
	b.WriteString(");")

	_, err := parser.Parse([]byte(b.String()))
	if err == nil {
		t.Fatal("Parse() returned nil error, want an error about too many arguments")
	}
	if !strings.Contains(err.Error(), "Can't have more than 255 arguments.") {
		t.Errorf("error = %q, want substring about argument ceiling", err.Error())
	}
}

func TestParseUnexpectedEOF(t *testing.T) {
	_, err := parser.Parse([]byte("1 +"))
	if err == nil {
		t.Fatal("Parse() returned nil error, want a parse error")
	}
	if !strings.Contains(err.Error(), "at end") {
		t.Errorf("error = %q, want mention of end of input", err.Error())
	}
}

package ast

import (
	"fmt"
	"strings"

	"github.com/loxlang/golox/token"
)

// Print writes a Lisp-style parenthesized dump of the program to standard
// output. It's wired to the CLI's -p flag for debugging the parser without
// touching interpreter semantics.
func Print(program Program) {
	var b strings.Builder
	for _, s := range program.Stmts {
		printStmt(&b, s, 0)
	}
	fmt.Print(b.String())
}

func printStmt(b *strings.Builder, s Stmt, depth int) {
	indent := strings.Repeat("  ", depth)
	switch s := s.(type) {
	case *ExpressionStmt:
		fmt.Fprintf(b, "%s(expr %s)\n", indent, printExpr(s.Expr))
	case *PrintStmt:
		fmt.Fprintf(b, "%s(print %s)\n", indent, printExpr(s.Expr))
	case *VarStmt:
		if s.Initializer != nil {
			fmt.Fprintf(b, "%s(var %s %s)\n", indent, s.Name.Lexeme, printExpr(s.Initializer))
		} else {
			fmt.Fprintf(b, "%s(var %s)\n", indent, s.Name.Lexeme)
		}
	case *BlockStmt:
		fmt.Fprintf(b, "%s(block\n", indent)
		for _, inner := range s.Stmts {
			printStmt(b, inner, depth+1)
		}
		fmt.Fprintf(b, "%s)\n", indent)
	case *IfStmt:
		fmt.Fprintf(b, "%s(if %s\n", indent, printExpr(s.Condition))
		printStmt(b, s.Then, depth+1)
		if s.Else != nil {
			printStmt(b, s.Else, depth+1)
		}
		fmt.Fprintf(b, "%s)\n", indent)
	case *WhileStmt:
		fmt.Fprintf(b, "%s(while %s\n", indent, printExpr(s.Condition))
		printStmt(b, s.Body, depth+1)
		fmt.Fprintf(b, "%s)\n", indent)
	case *FunctionStmt:
		fmt.Fprintf(b, "%s(fun %s(%s)\n", indent, s.Name.Lexeme, joinTokenLexemes(s.Params))
		for _, inner := range s.Body {
			printStmt(b, inner, depth+1)
		}
		fmt.Fprintf(b, "%s)\n", indent)
	case *ReturnStmt:
		if s.Value != nil {
			fmt.Fprintf(b, "%s(return %s)\n", indent, printExpr(s.Value))
		} else {
			fmt.Fprintf(b, "%s(return)\n", indent)
		}
	case *ClassStmt:
		header := "(class " + s.Name.Lexeme
		if s.Superclass != nil {
			header += " < " + s.Superclass.Name.Lexeme
		}
		fmt.Fprintf(b, "%s%s\n", indent, header)
		for _, m := range s.Methods {
			printStmt(b, m, depth+1)
		}
		fmt.Fprintf(b, "%s)\n", indent)
	default:
		fmt.Fprintf(b, "%s(unknown-stmt)\n", indent)
	}
}

func joinTokenLexemes(toks []token.Token) string {
	lexemes := make([]string, len(toks))
	for i, t := range toks {
		lexemes[i] = t.Lexeme
	}
	return strings.Join(lexemes, " ")
}

func printExpr(e Expr) string {
	switch e := e.(type) {
	case *LiteralExpr:
		if e.Value == nil {
			return "nil"
		}
		return fmt.Sprintf("%v", e.Value)
	case *GroupingExpr:
		return parenthesize("group", e.Inner)
	case *UnaryExpr:
		return parenthesize(e.Op.Lexeme, e.Right)
	case *BinaryExpr:
		return parenthesize(e.Op.Lexeme, e.Left, e.Right)
	case *LogicalExpr:
		return parenthesize(e.Op.Lexeme, e.Left, e.Right)
	case *VariableExpr:
		return e.Name.Lexeme
	case *AssignExpr:
		return parenthesize("= "+e.Name.Lexeme, e.Value)
	case *CallExpr:
		return parenthesize("call "+printExpr(e.Callee), e.Arguments...)
	case *GetExpr:
		return parenthesize(". "+e.Name.Lexeme, e.Object)
	case *SetExpr:
		return parenthesize("set "+e.Name.Lexeme, e.Object, e.Value)
	case *ThisExpr:
		return "this"
	case *SuperExpr:
		return "super." + e.Method.Lexeme
	default:
		return "<unknown-expr>"
	}
}

func parenthesize(name string, exprs ...Expr) string {
	var b strings.Builder
	fmt.Fprintf(&b, "(%s", name)
	for _, e := range exprs {
		fmt.Fprintf(&b, " %s", printExpr(e))
	}
	b.WriteString(")")
	return b.String()
}

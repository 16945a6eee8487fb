package token_test

import (
	"testing"

	"github.com/loxlang/golox/token"
)

func TestTypeString(t *testing.T) {
	tests := []struct {
		typ  token.Type
		want string
	}{
		{token.LeftParen, "("},
		{token.BangEqual, "!="},
		{token.Class, "class"},
		{token.EOF, "EOF"},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.typ, got, tt.want)
		}
	}
}

func TestTypeStringUnknown(t *testing.T) {
	var typ token.Type = 999
	if got, want := typ.String(), "Type(999)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestKeywords(t *testing.T) {
	for lexeme, want := range token.Keywords {
		if got := want.String(); got != lexeme {
			t.Errorf("Keywords[%q] = %v, want the type named %q", lexeme, got, lexeme)
		}
	}
}

func TestTokenString(t *testing.T) {
	tests := []struct {
		name string
		tok  token.Token
		want string
	}{
		{
			name: "no literal",
			tok:  token.Token{Type: token.Plus, Lexeme: "+", Line: 1},
			want: "+ +",
		},
		{
			name: "string literal",
			tok:  token.Token{Type: token.String, Lexeme: `"hi"`, Literal: "hi", Line: 1},
			want: "string \"hi\" hi",
		},
		{
			name: "number literal",
			tok:  token.Token{Type: token.Number, Lexeme: "3", Literal: 3.0, Line: 1},
			want: "number 3 3",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tok.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

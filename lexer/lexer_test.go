package lexer_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/loxlang/golox/lexer"
	"github.com/loxlang/golox/token"
)

func TestScanAll(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []token.Type
	}{
		{
			name: "punctuation and operators",
			src:  "(){},.-+;*!= == <= >= < >",
			want: []token.Type{
				token.LeftParen, token.RightParen, token.LeftBrace, token.RightBrace,
				token.Comma, token.Dot, token.Minus, token.Plus, token.Semicolon, token.Star,
				token.BangEqual, token.EqualEqual, token.LessEqual, token.GreaterEqual,
				token.Less, token.Greater, token.EOF,
			},
		},
		{
			name: "keywords vs identifiers",
			src:  "and class orelse",
			want: []token.Type{token.And, token.Class, token.Identifier, token.EOF},
		},
		{
			name: "comment is discarded",
			src:  "1 // a comment\n2",
			want: []token.Type{token.Number, token.Number, token.EOF},
		},
		{
			name: "string and number literals",
			src:  `"hi" 3.14`,
			want: []token.Type{token.String, token.Number, token.EOF},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks := lexer.ScanAll([]byte(tt.src), nil)
			var got []token.Type
			for _, tok := range toks {
				got = append(got, tok.Type)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ScanAll() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestScanAllLiterals(t *testing.T) {
	toks := lexer.ScanAll([]byte(`"hi" 3.14`), nil)
	if toks[0].Literal != "hi" {
		t.Errorf("string literal = %v, want %q", toks[0].Literal, "hi")
	}
	if toks[1].Literal != 3.14 {
		t.Errorf("number literal = %v, want %v", toks[1].Literal, 3.14)
	}
}

func TestScanAllErrors(t *testing.T) {
	var got []string
	lexer.ScanAll([]byte(`"unterminated`), func(line int, msg string) {
		got = append(got, msg)
	})
	want := []string{"Unterminated string."}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestScanAllIllegalCharacter(t *testing.T) {
	var lines []int
	lexer.ScanAll([]byte("1 @ 2"), func(line int, msg string) {
		lines = append(lines, line)
	})
	if len(lines) != 1 || lines[0] != 1 {
		t.Errorf("error lines = %v, want [1]", lines)
	}
}

func TestScanAllLineTracking(t *testing.T) {
	toks := lexer.ScanAll([]byte("1\n2\n\n3"), nil)
	var lines []int
	for _, tok := range toks {
		if tok.Type == token.Number {
			lines = append(lines, tok.Line)
		}
	}
	want := []int{1, 2, 4}
	if diff := cmp.Diff(want, lines); diff != "" {
		t.Errorf("line numbers mismatch (-want +got):\n%s", diff)
	}
}

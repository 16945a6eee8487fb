// Package lexer converts Lox source text into a stream of lexical tokens.
//
// The lexer is peripheral plumbing for the interpreter core: the parser only
// depends on the token vocabulary it produces, not on how scanning works.
package lexer

import (
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/loxlang/golox/token"
)

const eof = -1

// ErrorHandler is called for each illegal character or unterminated string
// the lexer encounters. Scanning continues afterwards so that later errors
// in the same source can also be reported.
type ErrorHandler func(line int, msg string)

// Lexer scans Lox source code into tokens, one at a time, via Next.
type Lexer struct {
	src        []byte
	errHandler ErrorHandler

	ch           rune
	line         int
	offset       int // byte offset of ch
	readOffset   int // byte offset of the next rune to read
	lastReadSize int
}

// New constructs a Lexer over src. errHandler may be nil, in which case
// scan errors are silently dropped (the caller should normally pass a
// handler that records a static error, per the diagnostic interface).
func New(src []byte, errHandler ErrorHandler) *Lexer {
	if errHandler == nil {
		errHandler = func(int, string) {}
	}
	l := &Lexer{
		src:        src,
		errHandler: errHandler,
		line:       1,
	}
	l.advance()
	return l
}

// ScanAll scans the whole source and returns every token, ending with
// exactly one EOF token.
func ScanAll(src []byte, errHandler ErrorHandler) []token.Token {
	l := New(src, errHandler)
	var toks []token.Token
	for {
		tok := l.Next()
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			return toks
		}
	}
}

func (l *Lexer) advance() {
	if l.readOffset >= len(l.src) {
		l.offset = len(l.src)
		l.ch = eof
		return
	}
	r, size := utf8.DecodeRune(l.src[l.readOffset:])
	if l.ch == '\n' {
		l.line++
	}
	l.offset = l.readOffset
	l.ch = r
	l.readOffset += size
	l.lastReadSize = size
}

func (l *Lexer) peek() rune {
	if l.readOffset >= len(l.src) {
		return eof
	}
	r, _ := utf8.DecodeRune(l.src[l.readOffset:])
	return r
}

func (l *Lexer) match(want rune) bool {
	if l.ch != want {
		return false
	}
	l.advance()
	return true
}

// Next returns the next token. Once the source is exhausted, it returns an
// EOF token on every subsequent call.
func (l *Lexer) Next() token.Token {
	l.skipWhitespaceAndComments()

	line := l.line
	if l.ch == eof {
		return token.Token{Type: token.EOF, Lexeme: "", Line: line}
	}

	ch := l.ch
	switch {
	case isDigit(ch):
		return l.scanNumber(line)
	case isAlpha(ch):
		return l.scanIdentifier(line)
	case ch == '"':
		return l.scanString(line)
	}

	l.advance()
	switch ch {
	case '(':
		return l.tok(token.LeftParen, "(", line)
	case ')':
		return l.tok(token.RightParen, ")", line)
	case '{':
		return l.tok(token.LeftBrace, "{", line)
	case '}':
		return l.tok(token.RightBrace, "}", line)
	case ',':
		return l.tok(token.Comma, ",", line)
	case '.':
		return l.tok(token.Dot, ".", line)
	case '-':
		return l.tok(token.Minus, "-", line)
	case '+':
		return l.tok(token.Plus, "+", line)
	case ';':
		return l.tok(token.Semicolon, ";", line)
	case '*':
		return l.tok(token.Star, "*", line)
	case '/':
		return l.tok(token.Slash, "/", line)
	case '!':
		if l.match('=') {
			return l.tok(token.BangEqual, "!=", line)
		}
		return l.tok(token.Bang, "!", line)
	case '=':
		if l.match('=') {
			return l.tok(token.EqualEqual, "==", line)
		}
		return l.tok(token.Equal, "=", line)
	case '<':
		if l.match('=') {
			return l.tok(token.LessEqual, "<=", line)
		}
		return l.tok(token.Less, "<", line)
	case '>':
		if l.match('=') {
			return l.tok(token.GreaterEqual, ">=", line)
		}
		return l.tok(token.Greater, ">", line)
	default:
		l.errHandler(line, "Unexpected character.")
		return l.Next()
	}
}

func (l *Lexer) tok(typ token.Type, lexeme string, line int) token.Token {
	return token.Token{Type: typ, Lexeme: lexeme, Line: line}
}

func (l *Lexer) skipWhitespaceAndComments() {
	for {
		switch {
		case l.ch == ' ' || l.ch == '\r' || l.ch == '\t' || l.ch == '\n':
			l.advance()
		case l.ch == '/' && l.peek() == '/':
			for l.ch != '\n' && l.ch != eof {
				l.advance()
			}
		default:
			return
		}
	}
}

func (l *Lexer) scanString(line int) token.Token {
	l.advance() // opening quote
	start := l.offset
	for l.ch != '"' && l.ch != eof {
		l.advance()
	}
	if l.ch == eof {
		l.errHandler(line, "Unterminated string.")
		return token.Token{Type: token.Illegal, Lexeme: string(l.src[start:l.offset]), Line: line}
	}
	value := string(l.src[start:l.offset])
	l.advance() // closing quote
	return token.Token{Type: token.String, Lexeme: "\"" + value + "\"", Literal: value, Line: line}
}

func (l *Lexer) scanNumber(line int) token.Token {
	start := l.offset
	for isDigit(l.ch) {
		l.advance()
	}
	if l.ch == '.' && isDigit(l.peek()) {
		l.advance()
		for isDigit(l.ch) {
			l.advance()
		}
	}
	lexeme := string(l.src[start:l.offset])
	value, err := strconv.ParseFloat(lexeme, 64)
	if err != nil {
		l.errHandler(line, "Invalid number.")
	}
	return token.Token{Type: token.Number, Lexeme: lexeme, Literal: value, Line: line}
}

func (l *Lexer) scanIdentifier(line int) token.Token {
	start := l.offset
	for isAlpha(l.ch) || isDigit(l.ch) {
		l.advance()
	}
	lexeme := string(l.src[start:l.offset])
	typ, ok := token.Keywords[lexeme]
	if !ok {
		typ = token.Identifier
	}
	return token.Token{Type: typ, Lexeme: lexeme, Line: line}
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isAlpha(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

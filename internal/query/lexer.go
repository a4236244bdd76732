package query

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// TokenType represents the type of a lexer token.
type TokenType int

const (
	TokenEOF     TokenType = iota
	TokenText              // tag or value text, quoted or not
	TokenAnd               // and
	TokenOr                // or
	TokenNot               // not
	TokenCompare           // == = != < > <= >= eq ne lt gt le ge
	TokenLParen            // (
	TokenRParen            // )
	TokenError             // error token
)

func (t TokenType) String() string {
	switch t {
	case TokenEOF:
		return "end of query"
	case TokenText:
		return "tag"
	case TokenAnd:
		return "'and'"
	case TokenOr:
		return "'or'"
	case TokenNot:
		return "'not'"
	case TokenCompare:
		return "comparison operator"
	case TokenLParen:
		return "'('"
	case TokenRParen:
		return "')'"
	default:
		return "error"
	}
}

// Token represents a lexer token.
type Token struct {
	Type    TokenType
	Value   string // unescaped text, or the error message for TokenError
	Pos     int
	Literal string // source text as written
	Op      CompareOp
}

// Lexer tokenizes a query string.
type Lexer struct {
	input string
	pos   int
	start int
}

// NewLexer creates a new lexer for the given input.
func NewLexer(input string) *Lexer {
	return &Lexer{input: input}
}

var wordOperators = map[string]CompareOp{
	"eq": CompareEq, "EQ": CompareEq,
	"ne": CompareNeq, "NE": CompareNeq,
	"lt": CompareLt, "LT": CompareLt,
	"gt": CompareGt, "GT": CompareGt,
	"le": CompareLte, "LE": CompareLte,
	"ge": CompareGte, "GE": CompareGte,
}

// NextToken returns the next token from the input.
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	if l.pos >= len(l.input) {
		return Token{Type: TokenEOF, Pos: l.pos}
	}

	l.start = l.pos
	ch := l.input[l.pos]

	switch ch {
	case '(':
		l.pos++
		return Token{Type: TokenLParen, Value: "(", Literal: "(", Pos: l.start}
	case ')':
		l.pos++
		return Token{Type: TokenRParen, Value: ")", Literal: ")", Pos: l.start}
	case '=':
		if l.peekByte(1) == '=' {
			return l.operator(2, CompareEq)
		}
		return l.operator(1, CompareEq)
	case '!':
		if l.peekByte(1) == '=' {
			return l.operator(2, CompareNeq)
		}
		l.pos++
		return l.errorToken("'!' must be followed by '='; use 'not' for negation")
	case '<':
		if l.peekByte(1) == '=' {
			return l.operator(2, CompareLte)
		}
		return l.operator(1, CompareLt)
	case '>':
		if l.peekByte(1) == '=' {
			return l.operator(2, CompareGte)
		}
		return l.operator(1, CompareGt)
	case '"':
		return l.scanQuoted()
	default:
		return l.scanText()
	}
}

func (l *Lexer) peekByte(offset int) byte {
	if l.pos+offset < len(l.input) {
		return l.input[l.pos+offset]
	}
	return 0
}

func (l *Lexer) operator(width int, op CompareOp) Token {
	l.pos += width
	lit := l.input[l.start:l.pos]
	return Token{Type: TokenCompare, Value: lit, Literal: lit, Pos: l.start, Op: op}
}

func (l *Lexer) errorToken(msg string) Token {
	return Token{Type: TokenError, Value: msg, Literal: l.input[l.start:l.pos], Pos: l.start}
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.input) {
		r, size := utf8.DecodeRuneInString(l.input[l.pos:])
		if !unicode.IsSpace(r) {
			return
		}
		l.pos += size
	}
}

// scanText reads an unquoted tag or value. A backslash makes the following
// character literal, so whitespace, operators and parentheses can appear in
// names. Unescaped keywords become operator tokens.
func (l *Lexer) scanText() Token {
	var sb strings.Builder
	escaped := false

	for l.pos < len(l.input) {
		r, size := utf8.DecodeRuneInString(l.input[l.pos:])
		if r == '\\' {
			if l.pos+size >= len(l.input) {
				l.pos += size
				return l.errorToken("dangling escape character")
			}
			_, nextSize := utf8.DecodeRuneInString(l.input[l.pos+size:])
			sb.WriteString(l.input[l.pos+size : l.pos+size+nextSize])
			l.pos += size + nextSize
			escaped = true
			continue
		}
		if isTextTerminator(r) {
			break
		}
		sb.WriteString(l.input[l.pos : l.pos+size])
		l.pos += size
	}

	lit := l.input[l.start:l.pos]
	value := sb.String()
	tok := Token{Type: TokenText, Value: value, Literal: lit, Pos: l.start}
	if escaped {
		return tok
	}

	switch value {
	case "and", "AND":
		tok.Type = TokenAnd
	case "or", "OR":
		tok.Type = TokenOr
	case "not", "NOT":
		tok.Type = TokenNot
	default:
		if op, ok := wordOperators[value]; ok {
			tok.Type = TokenCompare
			tok.Op = op
		}
	}
	return tok
}

// scanQuoted reads a double-quoted name. Inside quotes a backslash escapes
// the next character.
func (l *Lexer) scanQuoted() Token {
	var sb strings.Builder
	l.pos++ // opening quote

	for l.pos < len(l.input) {
		r, size := utf8.DecodeRuneInString(l.input[l.pos:])
		switch r {
		case '"':
			l.pos += size
			return Token{Type: TokenText, Value: sb.String(), Literal: l.input[l.start:l.pos], Pos: l.start}
		case '\\':
			if l.pos+size < len(l.input) {
				_, nextSize := utf8.DecodeRuneInString(l.input[l.pos+size:])
				sb.WriteString(l.input[l.pos+size : l.pos+size+nextSize])
				l.pos += size + nextSize
				continue
			}
		}
		sb.WriteString(l.input[l.pos : l.pos+size])
		l.pos += size
	}

	return l.errorToken("unterminated quoted string")
}

func isTextTerminator(r rune) bool {
	switch r {
	case '(', ')', '=', '!', '<', '>':
		return true
	}
	return unicode.IsSpace(r)
}

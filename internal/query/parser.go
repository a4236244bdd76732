package query

import (
	"fmt"
	"strings"
)

// MaxDepth bounds the Nesting of a query. Each level costs the SQLite
// parser a few stack entries on top of those every tag subquery uses, and
// its stack holds 100.
const MaxDepth = 12

// maxGroups bounds parser recursion through parentheses and 'not', which
// can run deeper than MaxDepth when groups are redundant.
const maxGroups = 256

// Parser parses query text into an expression tree.
type Parser struct {
	lexer *Lexer
	curr  Token
	peek  Token
	depth int
}

// Parse parses query text. Empty or whitespace-only text yields a nil
// expression, which matches every file.
func Parse(input string) (Expr, error) {
	if strings.TrimSpace(input) == "" {
		return nil, nil
	}

	p := &Parser{lexer: NewLexer(input)}
	p.advance()
	p.advance()

	expr, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.curr.Type != TokenEOF {
		return nil, p.unexpected()
	}
	if Nesting(expr) > MaxDepth {
		return nil, &SyntaxError{Pos: 0, Message: fmt.Sprintf("query nests deeper than %d levels", MaxDepth)}
	}
	return expr, nil
}

func (p *Parser) advance() {
	p.curr = p.peek
	p.peek = p.lexer.NextToken()
}

func (p *Parser) unexpected() error {
	if p.curr.Type == TokenError {
		return &SyntaxError{Pos: p.curr.Pos, Fragment: p.curr.Literal, Message: p.curr.Value}
	}
	if p.curr.Type == TokenEOF {
		return &SyntaxError{Pos: p.curr.Pos, Message: "unexpected end of query"}
	}
	return &SyntaxError{Pos: p.curr.Pos, Fragment: p.curr.Literal, Message: fmt.Sprintf("unexpected %v", p.curr.Type)}
}

// parseOr parses OR expressions (lowest precedence).
func (p *Parser) parseOr() (Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}

	for p.curr.Type == TokenOr {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &Or{Left: left, Right: right}
	}

	return left, nil
}

// parseAnd parses explicit and implicit conjunctions. Adjacent terms with no
// operator between them are conjoined.
func (p *Parser) parseAnd() (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for {
		switch p.curr.Type {
		case TokenAnd:
			p.advance()
		case TokenText, TokenNot, TokenLParen:
		default:
			return left, nil
		}

		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &And{Left: left, Right: right}
	}
}

// parseUnary parses negation, groups, comparisons and bare tags.
func (p *Parser) parseUnary() (Expr, error) {
	switch p.curr.Type {
	case TokenNot:
		if err := p.enter(); err != nil {
			return nil, err
		}
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		p.depth--
		return &Not{Operand: operand}, nil

	case TokenLParen:
		if err := p.enter(); err != nil {
			return nil, err
		}
		open := p.curr
		p.advance()
		expr, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if p.curr.Type != TokenRParen {
			if p.curr.Type == TokenEOF {
				return nil, &SyntaxError{Pos: open.Pos, Fragment: open.Literal, Message: "unclosed parenthesis"}
			}
			return nil, p.unexpected()
		}
		p.advance()
		p.depth--
		return expr, nil

	case TokenText:
		return p.parseTagOrComparison()

	default:
		return nil, p.unexpected()
	}
}

func (p *Parser) parseTagOrComparison() (Expr, error) {
	tag := p.curr.Value
	p.advance()

	if p.curr.Type != TokenCompare {
		return &Tagged{Tag: tag}, nil
	}

	op := p.curr.Op
	opTok := p.curr
	p.advance()

	if p.curr.Type != TokenText {
		if p.curr.Type == TokenEOF {
			return nil, &SyntaxError{Pos: opTok.Pos, Fragment: opTok.Literal, Message: "expected value after operator"}
		}
		return nil, p.unexpected()
	}
	value := p.curr.Value
	p.advance()

	return &Comparison{Tag: tag, Op: op, Value: value}, nil
}

func (p *Parser) enter() error {
	p.depth++
	if p.depth > maxGroups {
		return &SyntaxError{Pos: p.curr.Pos, Fragment: p.curr.Literal, Message: fmt.Sprintf("query nests deeper than %d groups", maxGroups)}
	}
	return nil
}

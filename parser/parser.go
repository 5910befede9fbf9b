package parser

import (
	"github.com/takoeight0821/lox/ast"
	"github.com/takoeight0821/lox/token"
	"github.com/takoeight0821/lox/utils"
	"github.com/takoeight0821/lox/value"
)

type Parser struct {
	tokens  []token.Token
	current int
}

// NewParser returns a parser over tokens. The slice must end with an EOF token,
// as the one returned by lexer.Lex does.
func NewParser(tokens []token.Token) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != token.EOF {
		line := 1
		if len(tokens) > 0 {
			line = tokens[len(tokens)-1].Line
		}
		tokens = append(tokens[:len(tokens):len(tokens)], token.Token{Kind: token.EOF, Line: line})
	}
	return &Parser{tokens, 0}
}

// Parse parses a single expression. Tokens after the expression are left
// unread. On a syntax error it returns a nil tree and a *ParseError, after
// skipping to the next statement boundary.
func (p *Parser) Parse() (ast.Expr, error) {
	expr, err := p.expression()
	if err != nil {
		p.synchronize()
		return nil, err
	}

	return expr, nil
}

// expression = equality ;
func (p *Parser) expression() (ast.Expr, error) {
	return p.equality()
}

// equality = comparison (("!=" | "==") comparison)* ;
func (p *Parser) equality() (ast.Expr, error) {
	return p.binary(p.comparison, token.BANGEQUAL, token.EQUALEQUAL)
}

// comparison = term ((">" | ">=" | "<" | "<=") term)* ;
func (p *Parser) comparison() (ast.Expr, error) {
	return p.binary(p.term, token.GREATER, token.GREATEREQUAL, token.LESS, token.LESSEQUAL)
}

// term = factor (("-" | "+") factor)* ;
func (p *Parser) term() (ast.Expr, error) {
	return p.binary(p.factor, token.MINUS, token.PLUS)
}

// factor = unary (("/" | "*") unary)* ;
func (p *Parser) factor() (ast.Expr, error) {
	return p.binary(p.unary, token.SLASH, token.STAR)
}

// binary folds operand (op operand)* to the left.
func (p *Parser) binary(operand func() (ast.Expr, error), ops ...token.Kind) (ast.Expr, error) {
	expr, err := operand()
	if err != nil {
		return nil, err
	}
	for p.match(ops...) {
		op := p.previous()
		right, err := operand()
		if err != nil {
			return nil, err
		}
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}

	return expr, nil
}

// unary = ("!" | "-") unary | primary ;
func (p *Parser) unary() (ast.Expr, error) {
	if p.match(token.BANG, token.MINUS) {
		op := p.previous()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}

		return &ast.Unary{Op: op, Right: right}, nil
	}

	return p.primary()
}

// primary = NUMBER | STRING | "true" | "false" | "nil" | "(" expression ")" ;
func (p *Parser) primary() (ast.Expr, error) {
	//exhaustive:ignore
	switch tok := p.peek(); tok.Kind {
	case token.FALSE:
		p.advance()
		return &ast.Literal{Value: value.Bool(false), Token: tok}, nil
	case token.TRUE:
		p.advance()
		return &ast.Literal{Value: value.Bool(true), Token: tok}, nil
	case token.NIL:
		p.advance()
		return &ast.Literal{Value: value.Nil{}, Token: tok}, nil
	case token.NUMBER, token.STRING:
		v, err := value.FromLiteral(tok.Literal)
		if err != nil {
			return nil, p.error(tok, err.Error())
		}
		p.advance()
		return &ast.Literal{Value: v, Token: tok}, nil
	case token.LEFTPAREN:
		p.advance()
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(token.RIGHTPAREN, "Expect ')' after expression."); err != nil {
			return nil, err
		}

		return &ast.Grouping{Expr: expr}, nil
	default:
		return nil, p.error(tok, "Expect expression.")
	}
}

// synchronize discards tokens until just after a semicolon or just before
// a token that starts a statement.
func (p *Parser) synchronize() {
	if p.IsAtEnd() {
		return
	}
	p.advance()
	for !p.IsAtEnd() {
		if p.previous().Kind == token.SEMICOLON {
			return
		}

		//exhaustive:ignore
		switch p.peek().Kind {
		case token.CLASS, token.FUN, token.VAR, token.FOR, token.IF, token.WHILE, token.PRINT, token.RETURN:
			return
		}

		p.advance()
	}
}

// Rest returns the tokens not consumed yet, excluding the final EOF.
func (p Parser) Rest() []token.Token {
	return p.tokens[p.current : len(p.tokens)-1]
}

func (p Parser) peek() token.Token {
	return p.tokens[p.current]
}

func (p *Parser) advance() token.Token {
	if !p.IsAtEnd() {
		p.current++
	}

	return p.previous()
}

func (p Parser) previous() token.Token {
	return p.tokens[p.current-1]
}

func (p Parser) IsAtEnd() bool {
	return p.peek().Kind == token.EOF
}

func (p Parser) check(kind token.Kind) bool {
	if p.IsAtEnd() {
		return false
	}

	return p.peek().Kind == kind
}

// match consumes the current token if it is one of kinds.
func (p *Parser) match(kinds ...token.Kind) bool {
	for _, kind := range kinds {
		if p.check(kind) {
			p.advance()
			return true
		}
	}

	return false
}

func (p *Parser) consume(kind token.Kind, message string) (token.Token, error) {
	if p.check(kind) {
		return p.advance(), nil
	}

	return token.Token{}, p.error(p.peek(), message)
}

// ParseError is a syntax error at Token.
type ParseError struct {
	Token      token.Token
	Diagnostic utils.Diagnostic
}

func (e *ParseError) Error() string {
	return e.Diagnostic.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Diagnostic
}

func (p *Parser) error(where token.Token, message string) error {
	return &ParseError{Token: where, Diagnostic: utils.ErrorAt(where, message)}
}

package lexer

import (
	"errors"
	"strconv"
	"unicode/utf8"

	"github.com/takoeight0821/lox/token"
	"github.com/takoeight0821/lox/utils"
)

// Lex scans the whole source. It keeps going after an error so that one
// call reports every lexical error; the tokens scanned so far are returned
// alongside the joined errors and always end with an EOF token.
func Lex(source string) ([]token.Token, error) {
	lexer := lexer{
		source:  source,
		tokens:  []token.Token{},
		start:   0,
		current: 0,
		line:    1,
	}

	var err error

	for !lexer.isAtEnd() {
		err = errors.Join(err, lexer.scanToken())
	}

	lexer.tokens = append(lexer.tokens, token.Token{Kind: token.EOF, Lexeme: "", Line: lexer.line, Literal: nil})

	return lexer.tokens, err
}

type lexer struct {
	source string
	tokens []token.Token

	start   int // start of current lexeme
	current int // current position in source
	line    int // current line number
}

func (l lexer) isAtEnd() bool {
	return l.current >= len(l.source)
}

func (l lexer) peek() rune {
	if l.isAtEnd() {
		return '\x00'
	}
	runeValue, _ := utf8.DecodeRuneInString(l.source[l.current:])

	return runeValue
}

func (l lexer) peekNext() rune {
	if l.isAtEnd() {
		return '\x00'
	}
	_, width := utf8.DecodeRuneInString(l.source[l.current:])
	if l.current+width >= len(l.source) {
		return '\x00'
	}
	runeValue, _ := utf8.DecodeRuneInString(l.source[l.current+width:])

	return runeValue
}

func (l *lexer) advance() rune {
	runeValue, width := utf8.DecodeRuneInString(l.source[l.current:])
	l.current += width

	return runeValue
}

// match consumes the next character only if it is expected.
func (l *lexer) match(expected rune) bool {
	if l.peek() != expected || l.isAtEnd() {
		return false
	}
	l.advance()

	return true
}

func (l *lexer) addToken(kind token.Kind, literal any) {
	text := l.source[l.start:l.current]
	l.tokens = append(l.tokens, token.Token{Kind: kind, Lexeme: text, Line: l.line, Literal: literal})
}

func (l *lexer) scanToken() error {
	l.start = l.current
	char := l.advance()
	switch char {
	case '(':
		l.addToken(token.LEFTPAREN, nil)
	case ')':
		l.addToken(token.RIGHTPAREN, nil)
	case '{':
		l.addToken(token.LEFTBRACE, nil)
	case '}':
		l.addToken(token.RIGHTBRACE, nil)
	case ',':
		l.addToken(token.COMMA, nil)
	case '.':
		l.addToken(token.DOT, nil)
	case '-':
		l.addToken(token.MINUS, nil)
	case '+':
		l.addToken(token.PLUS, nil)
	case ';':
		l.addToken(token.SEMICOLON, nil)
	case '*':
		l.addToken(token.STAR, nil)
	case '!':
		l.addToken(l.either('=', token.BANGEQUAL, token.BANG), nil)
	case '=':
		l.addToken(l.either('=', token.EQUALEQUAL, token.EQUAL), nil)
	case '<':
		l.addToken(l.either('=', token.LESSEQUAL, token.LESS), nil)
	case '>':
		l.addToken(l.either('=', token.GREATEREQUAL, token.GREATER), nil)
	case '/':
		switch {
		case l.match('*'):
			return l.blockComment()
		case l.match('/'):
			for l.peek() != '\n' && !l.isAtEnd() {
				l.advance()
			}
		default:
			l.addToken(token.SLASH, nil)
		}
	case ' ', '\r', '\t':
		// ignore whitespace
	case '\n':
		l.line++
	case '"':
		return l.string()
	default:
		if isDigit(char) {
			return l.number()
		}
		if isAlpha(char) {
			return l.identifier()
		}

		return utils.ErrorLine(l.line, "Unexpected character.")
	}

	return nil
}

// either picks the two-character kind when the next character is next.
func (l *lexer) either(next rune, matched, single token.Kind) token.Kind {
	if l.match(next) {
		return matched
	}

	return single
}

// blockComment skips to the closing "*/". Block comments do not nest.
func (l *lexer) blockComment() error {
	startLine := l.line
	for !l.isAtEnd() {
		if l.peek() == '*' && l.peekNext() == '/' {
			l.advance()
			l.advance()

			return nil
		}
		if l.advance() == '\n' {
			l.line++
		}
	}

	return utils.ErrorLine(startLine, "Unterminated block comment.")
}

func (l *lexer) string() error {
	startLine := l.line
	for l.peek() != '"' && !l.isAtEnd() {
		if l.peek() == '\n' {
			l.line++
		}
		l.advance()
	}

	if l.isAtEnd() {
		return utils.ErrorLine(startLine, "Unterminated string.")
	}

	// the closing "
	l.advance()

	value := l.source[l.start+1 : l.current-1]
	l.addToken(token.STRING, value)

	return nil
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func (l *lexer) number() error {
	for isDigit(l.peek()) {
		l.advance()
	}

	// a fractional part needs at least one digit after the dot
	if l.peek() == '.' && isDigit(l.peekNext()) {
		l.advance()

		for isDigit(l.peek()) {
			l.advance()
		}
	}

	// out of range literals become +Inf
	value, err := strconv.ParseFloat(l.source[l.start:l.current], 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return utils.ErrorLine(l.line, "Invalid number.")
	}
	l.addToken(token.NUMBER, value)

	return nil
}

func isAlpha(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func (l *lexer) identifier() error {
	for isAlpha(l.peek()) || isDigit(l.peek()) {
		l.advance()
	}

	kind, _ := token.Keyword(l.source[l.start:l.current])
	l.addToken(kind, nil)

	return nil
}

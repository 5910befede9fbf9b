package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/takoeight0821/lox/ast"
	"github.com/takoeight0821/lox/token"
	"github.com/takoeight0821/lox/value"
)

func num(f float64) *ast.Literal {
	return &ast.Literal{Value: value.Number(f), Token: token.Token{Kind: token.NUMBER, Line: 1, Literal: f}}
}

func TestString(t *testing.T) {
	t.Parallel()

	minus := token.Token{Kind: token.MINUS, Lexeme: "-", Line: 1}
	star := token.Token{Kind: token.STAR, Lexeme: "*", Line: 1}

	tree := &ast.Binary{
		Left:  &ast.Unary{Op: minus, Right: num(123)},
		Op:    star,
		Right: &ast.Grouping{Expr: num(45.67)},
	}
	assert.Equal(t, "(* (- 123) (group 45.67))", tree.String())

	str := &ast.Literal{Value: value.String("a \"b\"")}
	assert.Equal(t, `"a \"b\""`, str.String())
	assert.Equal(t, "nil", (&ast.Literal{Value: value.Nil{}}).String())
	assert.Equal(t, "true", (&ast.Literal{Value: value.Bool(true)}).String())
}

func TestUniverse(t *testing.T) {
	t.Parallel()

	plus := token.Token{Kind: token.PLUS, Lexeme: "+", Line: 2}
	one, two := num(1), num(2)
	group := &ast.Grouping{Expr: two}
	tree := &ast.Binary{Left: one, Op: plus, Right: group}

	assert.Equal(t, []ast.Expr{one, group}, ast.Children(tree))
	assert.Equal(t, []ast.Expr{tree, one, group, two}, ast.Universe(tree))
	assert.Empty(t, ast.Children(one))
	assert.Equal(t, plus, tree.Base())
	assert.Equal(t, two.Token, group.Base())
}

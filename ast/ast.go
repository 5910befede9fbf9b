package ast

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/takoeight0821/lox/token"
	"github.com/takoeight0821/lox/value"
)

// Expr is an expression tree. The set of implementations is closed:
// Literal, Grouping, Unary and Binary.
// Each node owns its children; trees are never shared or mutated after parsing.
type Expr interface {
	fmt.Stringer
	// Base returns the token that best locates the node in the source.
	Base() token.Token
	expr()
}

type Literal struct {
	Value value.Value
	// Token is the literal's own token, kept for error positions.
	Token token.Token
}

func (l Literal) String() string {
	if s, ok := l.Value.(value.String); ok {
		return strconv.Quote(string(s))
	}
	return l.Value.String()
}

func (l *Literal) Base() token.Token {
	return l.Token
}

func (*Literal) expr() {}

var _ Expr = &Literal{}

type Grouping struct {
	Expr Expr
}

func (g Grouping) String() string {
	return parenthesize("group", g.Expr).String()
}

func (g *Grouping) Base() token.Token {
	return g.Expr.Base()
}

func (*Grouping) expr() {}

var _ Expr = &Grouping{}

type Unary struct {
	Op    token.Token
	Right Expr
}

func (u Unary) String() string {
	return parenthesize(u.Op.Lexeme, u.Right).String()
}

func (u *Unary) Base() token.Token {
	return u.Op
}

func (*Unary) expr() {}

var _ Expr = &Unary{}

type Binary struct {
	Left  Expr
	Op    token.Token
	Right Expr
}

func (b Binary) String() string {
	return parenthesize(b.Op.Lexeme, b.Left, b.Right).String()
}

func (b *Binary) Base() token.Token {
	return b.Op
}

func (*Binary) expr() {}

var _ Expr = &Binary{}

func parenthesize(head string, elems ...fmt.Stringer) fmt.Stringer {
	var b strings.Builder
	b.WriteString("(")
	elemsStr := concat(elems).String()
	if head != "" {
		b.WriteString(head)
	}
	if elemsStr != "" {
		if head != "" {
			b.WriteString(" ")
		}
		b.WriteString(elemsStr)
	}
	b.WriteString(")")
	return &b
}

// concat joins the string forms of elems with single spaces,
// skipping empty ones.
func concat[T fmt.Stringer](elems []T) fmt.Stringer {
	var b strings.Builder
	for _, elem := range elems {
		str := elem.String()
		if str == "" {
			continue
		}
		if b.Len() != 0 {
			b.WriteString(" ")
		}
		b.WriteString(str)
	}
	return &b
}

// Children returns the direct subexpressions of n, left to right.
func Children(n Expr) []Expr {
	switch n := n.(type) {
	case *Literal:
		return nil
	case *Grouping:
		return []Expr{n.Expr}
	case *Unary:
		return []Expr{n.Right}
	case *Binary:
		return []Expr{n.Left, n.Right}
	default:
		panic(fmt.Sprintf("unexpected node: %T", n))
	}
}

// Universe returns every node of the tree in depth-first pre-order.
func Universe(n Expr) []Expr {
	nodes := []Expr{n}
	for _, child := range Children(n) {
		nodes = append(nodes, Universe(child)...)
	}
	return nodes
}

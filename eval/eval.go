// Package eval walks expression trees and computes their values.
package eval

import (
	"fmt"
	"io"

	"github.com/takoeight0821/lox/ast"
	"github.com/takoeight0821/lox/token"
	"github.com/takoeight0821/lox/value"
)

// Evaluator evaluates expressions. It holds no state between calls,
// so one Evaluator may be shared by concurrent callers.
type Evaluator struct{}

// NewEvaluator creates a new Evaluator.
func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

// RuntimeError is a failed type check at Token.
type RuntimeError struct {
	Token   token.Token
	Message string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s\n[line %d]", e.Message, e.Token.Line)
}

func runtimeError(where token.Token, message string) error {
	return &RuntimeError{Token: where, Message: message}
}

// Interpret evaluates expr and writes its rendering to w.
// Nothing is written when evaluation fails.
func (ev *Evaluator) Interpret(w io.Writer, expr ast.Expr) error {
	v, err := ev.Eval(expr)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, v)
	return err
}

func (ev *Evaluator) Eval(node ast.Expr) (value.Value, error) {
	switch n := node.(type) {
	case *ast.Literal:
		return n.Value, nil
	case *ast.Grouping:
		return ev.Eval(n.Expr)
	case *ast.Unary:
		return ev.evalUnary(n)
	case *ast.Binary:
		return ev.evalBinary(n)
	default:
		return nil, fmt.Errorf("unexpected node: %v", node)
	}
}

func (ev *Evaluator) evalUnary(n *ast.Unary) (value.Value, error) {
	right, err := ev.Eval(n.Right)
	if err != nil {
		return nil, err
	}

	//exhaustive:ignore
	switch n.Op.Kind {
	case token.MINUS:
		r, ok := right.(value.Number)
		if !ok {
			return nil, runtimeError(n.Op, "Operand must be a number.")
		}
		return -r, nil
	case token.BANG:
		return value.Bool(!value.Truthy(right)), nil
	default:
		return nil, runtimeError(n.Op, fmt.Sprintf("Unknown unary operator %s.", n.Op.Lexeme))
	}
}

func (ev *Evaluator) evalBinary(n *ast.Binary) (value.Value, error) {
	left, err := ev.Eval(n.Left)
	if err != nil {
		return nil, err
	}
	right, err := ev.Eval(n.Right)
	if err != nil {
		return nil, err
	}

	//exhaustive:ignore
	switch n.Op.Kind {
	case token.PLUS:
		switch l := left.(type) {
		case value.Number:
			if r, ok := right.(value.Number); ok {
				return l + r, nil
			}
		case value.String:
			if r, ok := right.(value.String); ok {
				return l + r, nil
			}
		}
		return nil, runtimeError(n.Op, "Operands must be two numbers or two strings.")
	case token.EQUALEQUAL:
		return value.Bool(value.Equal(left, right)), nil
	case token.BANGEQUAL:
		return value.Bool(!value.Equal(left, right)), nil
	}

	l, lok := left.(value.Number)
	r, rok := right.(value.Number)
	if !lok || !rok {
		return nil, runtimeError(n.Op, "Operands must be numbers.")
	}

	//exhaustive:ignore
	switch n.Op.Kind {
	case token.MINUS:
		return l - r, nil
	case token.STAR:
		return l * r, nil
	case token.SLASH:
		// IEEE-754: x/0 is an infinity and 0/0 is NaN.
		return l / r, nil
	case token.GREATER:
		return value.Bool(l > r), nil
	case token.GREATEREQUAL:
		return value.Bool(l >= r), nil
	case token.LESS:
		return value.Bool(l < r), nil
	case token.LESSEQUAL:
		return value.Bool(l <= r), nil
	default:
		return nil, runtimeError(n.Op, fmt.Sprintf("Unknown binary operator %s.", n.Op.Lexeme))
	}
}

// Package value defines the runtime values of Lox expressions.
package value

import (
	"fmt"
	"math"
	"strconv"
)

// Value is one of Number, String, Bool or Nil.
// Values are immutable; operators always build new ones.
type Value interface {
	fmt.Stringer
	value()
}

type Number float64

// String renders n without a trailing ".0" for integral values.
func (n Number) String() string {
	f := float64(n)
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case math.Abs(f) >= 1e21:
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func (Number) value() {}

var _ Value = Number(0)

type String string

func (s String) String() string {
	return string(s)
}

func (String) value() {}

var _ Value = String("")

type Bool bool

func (b Bool) String() string {
	return strconv.FormatBool(bool(b))
}

func (Bool) value() {}

var _ Value = Bool(false)

// Nil is the absence of a value.
type Nil struct{}

func (Nil) String() string {
	return "nil"
}

func (Nil) value() {}

var _ Value = Nil{}

// FromLiteral converts a token literal (float64, string, bool or nil) to a Value.
func FromLiteral(lit any) (Value, error) {
	switch lit := lit.(type) {
	case nil:
		return Nil{}, nil
	case float64:
		return Number(lit), nil
	case string:
		return String(lit), nil
	case bool:
		return Bool(lit), nil
	default:
		return nil, fmt.Errorf("unexpected literal: %#v", lit)
	}
}

// Truthy reports whether v counts as true: everything except nil and false.
func Truthy(v Value) bool {
	switch v := v.(type) {
	case nil, Nil:
		return false
	case Bool:
		return bool(v)
	default:
		return true
	}
}

// Equal compares a and b by value. Values of different types are never
// equal; numbers follow IEEE-754, so NaN is unequal to itself.
func Equal(a, b Value) bool {
	switch a := a.(type) {
	case nil, Nil:
		switch b.(type) {
		case nil, Nil:
			return true
		}
		return false
	case Number:
		b, ok := b.(Number)
		return ok && a == b
	case String:
		b, ok := b.(String)
		return ok && a == b
	case Bool:
		b, ok := b.(Bool)
		return ok && a == b
	default:
		return false
	}
}

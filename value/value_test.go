package value_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/takoeight0821/lox/value"
)

func TestNumberString(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		input    float64
		expected string
	}{
		{4, "4"},
		{4.5, "4.5"},
		{-4, "-4"},
		{0.1, "0.1"},
		{1234567.25, "1234567.25"},
		{1e20, "100000000000000000000"},
		{1e21, "1e+21"},
		{math.Copysign(0, -1), "-0"},
		{math.Inf(1), "Infinity"},
		{math.Inf(-1), "-Infinity"},
		{math.NaN(), "NaN"},
	}
	for _, testcase := range testcases {
		assert.Equal(t, testcase.expected, value.Number(testcase.input).String(), "rendering %v", testcase.input)
	}
}

func TestTruthy(t *testing.T) {
	t.Parallel()

	assert.False(t, value.Truthy(value.Nil{}))
	assert.False(t, value.Truthy(value.Bool(false)))
	assert.True(t, value.Truthy(value.Bool(true)))
	assert.True(t, value.Truthy(value.Number(0)))
	assert.True(t, value.Truthy(value.String("")))
	assert.True(t, value.Truthy(value.String("false")))
}

func TestEqual(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		a, b     value.Value
		expected bool
	}{
		{value.Nil{}, value.Nil{}, true},
		{value.Nil{}, value.Bool(false), false},
		{value.Bool(false), value.Nil{}, false},
		{value.Number(1), value.String("1"), false},
		{value.Number(1), value.Number(1), true},
		{value.Number(math.NaN()), value.Number(math.NaN()), false},
		{value.String("a"), value.String("a"), true},
		{value.String("a"), value.String("b"), false},
		{value.Bool(true), value.Bool(true), true},
	}
	for _, testcase := range testcases {
		assert.Equal(t, testcase.expected, value.Equal(testcase.a, testcase.b), "%#v == %#v", testcase.a, testcase.b)
	}
}

func TestFromLiteral(t *testing.T) {
	t.Parallel()

	v, err := value.FromLiteral(2.5)
	require.NoError(t, err)
	assert.Equal(t, value.Number(2.5), v)

	v, err = value.FromLiteral("hi")
	require.NoError(t, err)
	assert.Equal(t, value.String("hi"), v)

	v, err = value.FromLiteral(nil)
	require.NoError(t, err)
	assert.Equal(t, value.Nil{}, v)

	_, err = value.FromLiteral(3)
	require.Error(t, err)
}

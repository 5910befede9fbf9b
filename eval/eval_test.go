package eval_test

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/takoeight0821/lox/ast"
	"github.com/takoeight0821/lox/eval"
	"github.com/takoeight0821/lox/lexer"
	"github.com/takoeight0821/lox/parser"
	"github.com/takoeight0821/lox/token"
	"github.com/takoeight0821/lox/utils"
	"github.com/takoeight0821/lox/value"
)

func TestEvalFromTestData(t *testing.T) {
	t.Parallel()
	s, err := os.ReadFile("../testdata/testcase.yaml")
	require.NoError(t, err)

	for _, testcase := range utils.ReadTestData(s) {
		expected, ok := testcase.Expected["eval"]
		if !ok {
			continue
		}
		t.Run(testcase.Label, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, expected, completeEval(t, testcase.Input))
		})
	}
}

// completeEval returns what Interpret printed, or the runtime error text.
func completeEval(t *testing.T, input string) string {
	t.Helper()

	tokens, err := lexer.Lex(input)
	require.NoError(t, err)
	expr, err := parser.NewParser(tokens).Parse()
	require.NoError(t, err)

	var out bytes.Buffer
	if err := eval.NewEvaluator().Interpret(&out, expr); err != nil {
		var rerr *eval.RuntimeError
		require.ErrorAs(t, err, &rerr)
		assert.Empty(t, out.String(), "no output on runtime error")
		return err.Error()
	}

	text := out.String()
	require.NotEmpty(t, text)
	require.Equal(t, byte('\n'), text[len(text)-1])
	return text[:len(text)-1]
}

func evalSource(t *testing.T, input string) (value.Value, error) {
	t.Helper()

	tokens, err := lexer.Lex(input)
	require.NoError(t, err)
	expr, err := parser.NewParser(tokens).Parse()
	require.NoError(t, err)

	return eval.NewEvaluator().Eval(expr)
}

func TestNumericLiterals(t *testing.T) {
	t.Parallel()

	for _, text := range []string{"0", "7", "123456789", "3.14159", "0.5", "100.001", "9007199254740993"} {
		want, err := strconv.ParseFloat(text, 64)
		require.NoError(t, err)

		got, err := evalSource(t, text)
		require.NoError(t, err)
		assert.Equal(t, value.Number(want), got, "literal %s", text)
	}
}

func TestStringRoundTrip(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"", "hello", "with spaces", "tab\there", "multi\nline", "// not a comment", "ünïcödé"} {
		assert.Equal(t, s, completeEval(t, `"`+s+`"`))
	}
}

func TestRuntimeError(t *testing.T) {
	t.Parallel()

	_, err := evalSource(t, `1 + "a"`)
	var rerr *eval.RuntimeError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, token.PLUS, rerr.Token.Kind)
	assert.Equal(t, "Operands must be two numbers or two strings.", rerr.Message)

	v, err := evalSource(t, `"a" + "b"`)
	require.NoError(t, err)
	assert.Equal(t, value.String("ab"), v)
}

func TestLeftOperandFirst(t *testing.T) {
	t.Parallel()

	bad := func(lexeme string, line int) ast.Expr {
		op := token.Token{Kind: token.MINUS, Lexeme: lexeme, Line: line}
		return &ast.Unary{Op: op, Right: &ast.Literal{Value: value.Nil{}}}
	}
	tree := &ast.Binary{
		Left:  bad("-", 1),
		Op:    token.Token{Kind: token.PLUS, Lexeme: "+", Line: 1},
		Right: bad("-", 2),
	}

	_, err := eval.NewEvaluator().Eval(tree)
	var rerr *eval.RuntimeError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, 1, rerr.Token.Line, "the left operand fails first")

	// Both operands are used as named: 10 - 4, not 4 - 4.
	v, err := evalSource(t, "10 - 4")
	require.NoError(t, err)
	assert.Equal(t, value.Number(6), v)
}

func TestUnknownNode(t *testing.T) {
	t.Parallel()

	_, err := eval.NewEvaluator().Eval(nil)
	require.Error(t, err)
	assert.False(t, errors.As(err, new(*eval.RuntimeError)))
}

func TestConcurrentEval(t *testing.T) {
	t.Parallel()

	ev := eval.NewEvaluator()
	var wg sync.WaitGroup
	results := make([]value.Value, 32)
	errs := make([]error, 32)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tokens, err := lexer.Lex(fmt.Sprintf("%d * 2 + 1", i))
			if err != nil {
				errs[i] = err
				return
			}
			expr, err := parser.NewParser(tokens).Parse()
			if err != nil {
				errs[i] = err
				return
			}
			results[i], errs[i] = ev.Eval(expr)
		}()
	}
	wg.Wait()

	for i, v := range results {
		require.NoError(t, errs[i])
		assert.Equal(t, value.Number(i*2+1), v)
	}
}

package driver

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jcgregorio/logger"
	"github.com/jcgregorio/slog"
	"github.com/takoeight0821/lox/ast"
	"github.com/takoeight0821/lox/eval"
	"github.com/takoeight0821/lox/lexer"
	"github.com/takoeight0821/lox/parser"
	"github.com/takoeight0821/lox/utils"
)

// Exit codes for file mode, from sysexits.h.
const (
	ExitUsage    = 64
	ExitDataErr  = 65
	ExitNoInput  = 66
	ExitSoftware = 70
)

// Runner sends one input unit at a time through lexer, parser and evaluator.
// It keeps no diagnostic state between calls.
type Runner struct {
	ev       *eval.Evaluator
	out      io.Writer
	log      slog.Logger
	printAST bool
}

type Option func(*Runner)

// WithLogger sets the logger used for debug output. The default discards everything.
func WithLogger(l slog.Logger) Option {
	return func(r *Runner) {
		r.log = l
	}
}

// WithPrintAST makes the runner print parsed trees instead of evaluating them.
func WithPrintAST(enable bool) Option {
	return func(r *Runner) {
		r.printAST = enable
	}
}

// NewRunner returns a Runner that writes results to out.
func NewRunner(out io.Writer, opts ...Option) *Runner {
	r := &Runner{ev: eval.NewEvaluator(), out: out, log: logger.NewNopLogger()}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// SyntaxError holds every scan and parse diagnostic of one input.
type SyntaxError struct {
	Errs []error
}

func (e *SyntaxError) Error() string {
	msgs := make([]string, len(e.Errs))
	for i, err := range e.Errs {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "\n")
}

func (e *SyntaxError) Unwrap() []error {
	return e.Errs
}

// RunSource scans, parses and evaluates source, writing the rendered value
// to the runner's output. All scan errors are reported together; the parser
// only runs on a clean token stream. It returns the parsed tree, if any, and a
// *SyntaxError or *eval.RuntimeError.
func (r *Runner) RunSource(source string) (ast.Expr, error) {
	tokens, err := lexer.Lex(source)
	r.log.Debugf("lex: %d tokens: %v", len(tokens), tokens)
	if err != nil {
		errs := utils.Flatten(err)
		r.log.Debugf("lex: %d diagnostics", len(errs))
		return nil, &SyntaxError{Errs: errs}
	}

	p := parser.NewParser(tokens)
	expr, err := p.Parse()
	if err != nil {
		r.log.Debugf("parse: %v", err)
		return nil, &SyntaxError{Errs: []error{err}}
	}
	if rest := p.Rest(); len(rest) > 0 {
		r.log.Debugf("parse: ignoring %d tokens from line %d", len(rest), rest[0].Line)
	}
	r.log.Debugf("parse: %v at line %d", expr, expr.Base().Line)

	if r.printAST {
		_, err := fmt.Fprintln(r.out, expr)
		return expr, err
	}

	return expr, r.ev.Interpret(r.out, expr)
}

// ExitCode maps a RunSource error to the exit status of file mode.
func ExitCode(err error) int {
	var syntaxErr *SyntaxError
	var runtimeErr *eval.RuntimeError
	switch {
	case err == nil:
		return 0
	case errors.As(err, &syntaxErr):
		return ExitDataErr
	case errors.As(err, &runtimeErr):
		return ExitSoftware
	default:
		return 1
	}
}

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/fatih/color"
	"github.com/jcgregorio/logger"
	"github.com/jcgregorio/slog"
	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"
	"github.com/takoeight0821/lox/driver"
	"github.com/takoeight0821/lox/utils"
	"github.com/urfave/cli/v2"
)

var history = filepath.Join(xdg.DataHome, "lox", ".lox_history")

func main() {
	if err := newApp(os.Stdout, os.Stderr).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "lox",
		Usage:     "evaluate Lox expressions from a file or an interactive prompt",
		ArgsUsage: "[script] (flags go before the script)",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "log tokens and trees to stderr",
			},
			&cli.BoolFlag{
				Name:  "ast",
				Usage: "print parsed trees instead of evaluating them",
			},
			&cli.StringFlag{
				Name:  "history",
				Value: history,
				Usage: "REPL history file",
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "disable colored diagnostics",
			},
		},
		Action: func(c *cli.Context) error {
			if c.Bool("no-color") {
				color.NoColor = true
			}

			var log slog.Logger = logger.NewNopLogger()
			if c.Bool("debug") {
				log = logger.NewFromOptions(&logger.Options{
					SyncWriter:   os.Stderr,
					IncludeDebug: true,
				})
			}
			runner := driver.NewRunner(c.App.Writer, driver.WithLogger(log), driver.WithPrintAST(c.Bool("ast")))

			for _, arg := range c.Args().Tail() {
				if strings.HasPrefix(arg, "-") {
					return cli.Exit(fmt.Sprintf("flag %s must come before the script", arg), driver.ExitUsage)
				}
			}

			switch c.NArg() {
			case 0:
				return RunPrompt(runner, c.String("history"), c.App.ErrWriter)
			case 1:
				return RunFile(runner, c.Args().First(), c.App.ErrWriter)
			default:
				return cli.Exit("Usage: lox [script]", driver.ExitUsage)
			}
		},
	}
}

// report prints every diagnostic carried by err on its own line,
// in red only when w is a terminal.
func report(w io.Writer, err error) {
	errorColor := color.New(color.FgRed)
	if !isTerminal(w) {
		errorColor.DisableColor()
	}
	for _, err := range utils.Flatten(err) {
		errorColor.Fprintln(w, err)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

func RunPrompt(r *driver.Runner, historyPath string, stderr io.Writer) error {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	defer func() {
		if err := os.MkdirAll(filepath.Dir(historyPath), os.ModePerm); err != nil {
			fmt.Fprintln(stderr, err)
		}
		if f, err := os.Create(historyPath); err == nil {
			defer f.Close()
			if _, err := line.WriteHistory(f); err != nil {
				fmt.Fprintln(stderr, err)
			}
		}
		line.Close()
	}()

	if f, err := os.Open(historyPath); err == nil {
		defer f.Close()
		if _, err := line.ReadHistory(f); err != nil {
			fmt.Fprintln(stderr, err)
		}
	}

	for {
		input, err := line.Prompt("> ")
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			return nil
		}
		if err != nil {
			return err
		}
		if strings.TrimSpace(input) == "" {
			continue
		}
		line.AppendHistory(input)
		if _, err := r.RunSource(input); err != nil {
			report(stderr, err)
		}
	}
}

// RunFile runs the whole file as one input and turns its outcome into an exit status.
func RunFile(r *driver.Runner, path string, stderr io.Writer) error {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return cli.Exit(err, driver.ExitNoInput)
	}

	if _, err := r.RunSource(string(bytes)); err != nil {
		report(stderr, err)
		return cli.Exit("", driver.ExitCode(err))
	}

	return nil
}

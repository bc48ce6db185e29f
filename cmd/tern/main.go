package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/docopt/docopt-go"
	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"

	"tern/interpreter-go/pkg/driver"
	"tern/interpreter-go/pkg/interpreter"
	"tern/interpreter-go/pkg/parser"
	"tern/interpreter-go/pkg/runtime"
)

const version = "tern 0.1.0"

const historyFile = ".tern_history"

const usage = `tern

Usage:
  tern [SCRIPT]
  tern -e EXPR
  tern check SUITE
  tern -h | --help
  tern -v | --version

Arguments:
  SCRIPT  Path to a tern script to run.
  SUITE   Path to a YAML suite manifest to check.

Options:
  -e, --eval=EXPR  Evaluate a single expression and print its value.
  -h, --help       Display this help.
  -v, --version    Print tern version.

With no script and a TTY on stdin, tern starts an interactive session.
Otherwise the program is read from stdin.
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := docopt.ParseArgs(usage, args, version)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	if check, _ := opts.Bool("check"); check {
		suitePath, _ := opts.String("SUITE")
		return runSuite(suitePath, stdout, stderr)
	}

	if expr, _ := opts.String("--eval"); expr != "" {
		return evalAndPrint(interpreter.New(), expr, stdout, stderr)
	}

	script, _ := opts.String("SCRIPT")
	if script != "" {
		source, err := os.ReadFile(script)
		if err != nil {
			fmt.Fprintf(stderr, "tern: cannot read %s: %v\n", script, err)
			return 1
		}
		return runProgram(string(source), stderr)
	}

	if isatty.IsTerminal(os.Stdin.Fd()) {
		return repl(stdout, stderr)
	}

	source, err := io.ReadAll(os.Stdin)
	if err != nil {
		fmt.Fprintf(stderr, "tern: read stdin: %v\n", err)
		return 1
	}
	return runProgram(string(source), stderr)
}

// runProgram is file-mode execution: the first failure of any kind aborts
// the run and the final value is discarded.
func runProgram(source string, stderr io.Writer) int {
	expr, err := parser.Parse(source)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	if _, err := interpreter.New().Run(expr); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

func evalAndPrint(interp *interpreter.Interpreter, source string, stdout, stderr io.Writer) int {
	expr, err := parser.Parse(source)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	val, err := interp.Run(expr)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	fmt.Fprintln(stdout, runtime.Display(val))
	return 0
}

// repl reads expressions line by line against one persistent interpreter.
// Type and arity failures are reported and the session continues; every
// other failure kind terminates the process.
func repl(stdout, stderr io.Writer) int {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := ""
	if home, err := os.UserHomeDir(); err == nil {
		histPath = filepath.Join(home, historyFile)
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
	}
	defer func() {
		if histPath == "" {
			return
		}
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	interp := interpreter.New()
	for {
		line, err := ln.Prompt("> ")
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Fprintln(stdout)
			return 0
		}
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		if line == "" {
			continue
		}
		ln.AppendHistory(line)

		expr, err := parser.Parse(line)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		val, err := interp.Run(expr)
		if err != nil {
			fmt.Fprintln(stderr, err)
			if interpreter.Recoverable(err) {
				continue
			}
			return 1
		}
		fmt.Fprintln(stdout, runtime.Display(val))
	}
}

func runSuite(path string, stdout, stderr io.Writer) int {
	suite, err := driver.LoadSuite(path)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	failed := 0
	for _, result := range suite.Run() {
		switch {
		case result.Err != nil:
			failed++
			fmt.Fprintf(stdout, "FAIL %s: %v\n", result.Case.Name, result.Err)
		case !result.Passed():
			failed++
			fmt.Fprintf(stdout, "FAIL %s: got %q, want %q\n", result.Case.Name, result.Got, result.Case.Want)
		default:
			fmt.Fprintf(stdout, "ok   %s\n", result.Case.Name)
		}
	}
	fmt.Fprintf(stdout, "%s: %d/%d passed\n", suite.Name, len(suite.Cases)-failed, len(suite.Cases))
	if failed > 0 {
		return 1
	}
	return 0
}

// Package repl SPDX-License-Identifier: Apache-2.0
package repl

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/fatih/color"
	"github.com/peterh/liner"

	"nemesis/internal/ast"
	"nemesis/internal/errors"
	"nemesis/internal/names"
	"nemesis/internal/parser"
)

const PROMPT = ">> "

const source = "<repl>"

const help = `Enter an R expression to see its canonical rendering.
  :name <s>   classify s as an R name
  :help       show this help
  :quit       leave`

// History is where Start keeps the line history between sessions.
var History = filepath.Join(xdg.DataHome, "nemesis", "history")

// Start reads lines until end of input or :quit, printing the rendering of
// each expression to out.
func Start(out io.Writer) error {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	defer func() {
		if err := os.MkdirAll(filepath.Dir(History), os.ModePerm); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
		if f, err := os.Create(History); err == nil {
			defer f.Close()
			if _, err := line.WriteHistory(f); err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
		}
		line.Close()
	}()

	if f, err := os.Open(History); err == nil {
		if _, err := line.ReadHistory(f); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
		f.Close()
	}

	for {
		input, err := line.Prompt(PROMPT)
		if stderrors.Is(err, io.EOF) || stderrors.Is(err, liner.ErrPromptAborted) {
			return nil
		}
		if err != nil {
			return err
		}
		if strings.TrimSpace(input) == "" {
			continue
		}
		line.AppendHistory(input)

		result, quit := Eval(input)
		if quit {
			return nil
		}
		fmt.Fprintln(out, result)
	}
}

// Eval runs one line of input and returns what to print. quit is true for
// the :quit command.
func Eval(input string) (result string, quit bool) {
	input = strings.TrimSpace(input)
	if strings.HasPrefix(input, ":") {
		cmd, arg, _ := strings.Cut(input, " ")
		switch cmd {
		case ":quit", ":q":
			return "", true
		case ":help":
			return help, false
		case ":name":
			return classify(strings.TrimSpace(arg)), false
		default:
			return fmt.Sprintf("unknown command %s. Type :help for help.", cmd), false
		}
	}

	node, err := parser.ParseExpression(source, input)
	if err != nil {
		reporter := errors.NewErrorReporter(source, input)
		return strings.TrimRight(reporter.FormatAll(err), "\n"), false
	}
	rendered, err := ast.Render(node, 0)
	if err != nil {
		return color.RedString("error: %s", err), false
	}
	return rendered, false
}

func classify(s string) string {
	switch {
	case s == "":
		return "usage: :name <s>"
	case names.IsName(s):
		return fmt.Sprintf("'%s' is a valid R name", s)
	case names.IsReserved(s):
		return fmt.Sprintf("'%s' is a reserved word", s)
	default:
		return fmt.Sprintf("'%s' is not a syntactic name; quote it as `%s`", s, s)
	}
}

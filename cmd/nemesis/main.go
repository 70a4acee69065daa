// SPDX-License-Identifier: Apache-2.0
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"nemesis/internal/errors"
	"nemesis/internal/model"
	"nemesis/internal/parser"
	"nemesis/internal/program"
)

var log = commonlog.GetLogger("nemesis.cli")

type options struct {
	output    string
	input     string
	outputDB  string
	diff      bool
	verbosity int
	logPath   string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	var opts options
	flags := flag.NewFlagSet("nemesis", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVar(&opts.output, "o", "", "write the program to this file instead of stdout")
	flags.StringVar(&opts.input, "input", "", "data file the program runs the model on (.csv, .tsv, .tab, .txt, .xls, .xlsx)")
	flags.StringVar(&opts.outputDB, "output-db", "", "SQLite database the program writes scores to")
	flags.BoolVar(&opts.diff, "d", false, "print a diff against the file given with -o instead of writing it")
	flags.IntVar(&opts.verbosity, "v", 0, "log verbosity")
	flags.StringVar(&opts.logPath, "log", "", "log file (default stderr)")
	flags.Usage = func() {
		fmt.Fprintln(stderr, "Usage: nemesis [flags] <model.yaml>")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		return 2
	}
	if flags.NArg() != 1 {
		flags.Usage()
		return 2
	}
	if opts.diff && opts.output == "" {
		fmt.Fprintln(stderr, "-d needs -o")
		return 2
	}

	if opts.logPath != "" {
		commonlog.Configure(opts.verbosity, &opts.logPath)
	} else {
		commonlog.Configure(opts.verbosity, nil)
	}

	startTime := time.Now()
	path := flags.Arg(0)
	ok := compile(path, opts, stdout, stderr)
	duration := formatDuration(time.Since(startTime))

	if !ok {
		color.New(color.FgRed).Fprintf(stderr, "Compilation failed after %s\n", duration)
		return 1
	}
	color.New(color.FgGreen).Fprintf(stderr, "Successfully processed %s in %s\n", path, duration)
	return 0
}

// compile loads, checks and renders the model at path, reporting every
// problem to stderr.
func compile(path string, opts options, stdout, stderr io.Writer) bool {
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(stderr, "failed to read file: %v\n", err)
		return false
	}

	reporter := errors.NewErrorReporter(path, string(source))

	m, err := model.LoadString(path, string(source))
	if err != nil {
		fmt.Fprint(stderr, reporter.FormatAll(err))
		return false
	}
	log.Infof("loaded %d components from %s", len(m.Components()), path)

	for _, w := range m.Lint() {
		fmt.Fprint(stderr, reporter.FormatError(w))
	}
	if err := m.Validate(parser.Validator{}); err != nil {
		fmt.Fprint(stderr, reporter.FormatAll(err))
		return false
	}

	var build program.Options
	if opts.input != "" {
		if build.Input, err = program.FileInput(opts.input); err != nil {
			fmt.Fprint(stderr, reporter.FormatAll(err))
			return false
		}
	}
	if opts.outputDB != "" {
		build.OutputDB = program.SQLiteOutput(opts.outputDB)
	}

	prog, err := program.Build(m, build)
	if err != nil {
		fmt.Fprint(stderr, reporter.FormatAll(err))
		return false
	}
	text, err := program.Render(prog)
	if err != nil {
		fmt.Fprint(stderr, reporter.FormatAll(err))
		return false
	}

	switch {
	case opts.diff:
		old, err := os.ReadFile(opts.output)
		if err != nil && !os.IsNotExist(err) {
			fmt.Fprintf(stderr, "failed to read %s: %v\n", opts.output, err)
			return false
		}
		fmt.Fprint(stdout, lineDiff(string(old), text))
	case opts.output != "":
		if err := os.WriteFile(opts.output, []byte(text), 0o644); err != nil {
			fmt.Fprintf(stderr, "failed to write %s: %v\n", opts.output, err)
			return false
		}
		log.Infof("wrote %s", opts.output)
	default:
		fmt.Fprint(stdout, text)
	}
	return true
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Minute:
		return fmt.Sprintf("%.2fmin", d.Minutes())
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d.Nanoseconds())/1000000.0)
	case d >= time.Microsecond:
		return fmt.Sprintf("%.1fμs", float64(d.Nanoseconds())/1000.0)
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}

// Package program assembles a model and its data sources into a complete
// R program that loads its libraries and runs the model.
package program

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/tliron/commonlog"

	"nemesis/internal/ast"
	"nemesis/internal/model"
)

var log = commonlog.GetLogger("nemesis.program")

// Options names the data the program reads and writes. A nil Input
// produces a program that only defines the model.
type Options struct {
	Input    ast.Node
	OutputDB ast.Node
}

// Build renders m and, when an input is given, the call that runs it.
// Every library referenced anywhere in the program is loaded first, once,
// in breadth-first order of appearance.
func Build(m *model.Model, opts Options) (*ast.Block, error) {
	defs, err := m.AST()
	if err != nil {
		return nil, fmt.Errorf("building model: %w", err)
	}

	body := []ast.Node{defs}
	if opts.Input != nil {
		args := []ast.Arg{ast.Keyword("input", opts.Input)}
		if opts.OutputDB != nil {
			args = append(args, ast.Keyword("output", opts.OutputDB))
		}
		args = append(args, ast.Keyword("store_input", ast.Bool(m.StoreInput)))
		run := ast.WithHint(ast.CallWithArgs(ast.NewName("run_model"), args), ast.HintLong)
		body = append(body, ast.NewComment("Execute model"), ast.NewBlock(run))
	}
	prog := ast.WithHint(ast.NewBlock(body...), ast.HintLong)

	found, err := ast.FindLibraries(prog)
	if err != nil {
		return nil, err
	}
	libs := unique(found)
	log.Debugf("program uses %d libraries: %s", len(libs), strings.Join(libs, ", "))
	if len(libs) == 0 {
		return prog, nil
	}

	loads := make([]ast.Node, len(libs))
	for i, lib := range libs {
		loads[i] = ast.NewCall(ast.NewName("library"), ast.NewName(lib))
	}
	return ast.WithHint(ast.NewBlock(append([]ast.Node{ast.NewBlock(loads...)}, body...)...), ast.HintLong), nil
}

func unique(libs []string) []string {
	seen := make(map[string]bool, len(libs))
	var out []string
	for _, l := range libs {
		if !seen[l] {
			seen[l] = true
			out = append(out, l)
		}
	}
	return out
}

// FileInput returns the expression that reads the data file at path.
// Delimited text files are passed to the model by path; spreadsheets are
// read from their first sheet.
func FileInput(path string) (ast.Node, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv", ".tsv", ".tab", ".txt":
		return ast.String(path), nil
	case ".xls", ".xlsx":
		return ast.WithLibraries(
			ast.NewCall(ast.NewName("read.xlsx"), ast.String(path), ast.Int(1)),
			"xlsx"), nil
	default:
		return nil, fmt.Errorf("unsupported input file type %q of %s", ext, path)
	}
}

// SQLiteOutput returns a connection to the SQLite database at path.
func SQLiteOutput(path string) ast.Node {
	driver := ast.NewCall(ast.NewName("dbDriver"), ast.String("SQLite"))
	return ast.WithLibraries(
		ast.NewCall(ast.NewName("dbConnect"), driver, ast.Keyword("dbname", ast.String(path))),
		"DBI", "RSQLite")
}

// Render returns the source of prog followed by a newline.
func Render(prog *ast.Block) (string, error) {
	s, err := ast.Render(prog, 0)
	if err != nil {
		return "", err
	}
	return s + "\n", nil
}

// Write writes the source of prog to w.
func Write(w io.Writer, prog *ast.Block) error {
	s, err := Render(prog)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, s)
	return err
}

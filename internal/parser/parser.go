// Package parser reads R expressions into the ast representation.
//
// Constructs the ast has no node for (function definitions, control flow,
// braces, `$` and `@` access, multi-index and empty arguments) are kept as
// *ast.Raw holding their source text, after their parts have been checked.
package parser

import (
	stderrors "errors"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"nemesis/grammar"
	"nemesis/internal/ast"
	"nemesis/internal/errors"
)

// Parser lowers one parsed expression into the ast.
type Parser struct {
	filename string
	source   string
	errors   []error
}

// ParseExpression parses text as a single R expression. All problems found
// are returned joined; each is a *errors.CompilerError with a position.
func ParseExpression(filename, text string) (ast.Node, error) {
	expr, err := grammar.Parse(filename, text)
	if err != nil {
		return nil, syntaxError(filename, err)
	}

	p := &Parser{filename: filename, source: text}
	node := p.parseExpr(expr)
	if len(p.errors) > 0 {
		return nil, stderrors.Join(p.errors...)
	}
	return node, nil
}

// IsExpression reports whether text is a single valid R expression.
func IsExpression(text string) bool {
	_, err := ParseExpression("<expr>", text)
	return err == nil
}

// Validator checks expressions with the built-in grammar.
type Validator struct{}

func (Validator) IsExpression(text string) bool {
	return IsExpression(text)
}

func syntaxError(filename string, err error) error {
	var pe participle.Error
	if !stderrors.As(err, &pe) {
		return errors.New(errors.ErrorSyntax, err.Error()).Build()
	}
	pos := convertPos(pe.Position())
	if pos.Filename == "" {
		pos.Filename = filename
	}
	return errors.New(errors.ErrorSyntax, pe.Message()).At(pos).Build()
}

func (p *Parser) errorAt(pos lexer.Position, length int, code, message string) {
	cp := convertPos(pos)
	if cp.Filename == "" {
		cp.Filename = p.filename
	}
	p.errors = append(p.errors, errors.New(code, message).At(cp).WithLength(length).Build())
}

func convertPos(pos lexer.Position) errors.Position {
	return errors.Position{
		Filename: pos.Filename,
		Offset:   pos.Offset,
		Line:     pos.Line,
		Column:   pos.Column,
	}
}

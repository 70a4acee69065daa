package parser

import (
	"fmt"
	"math"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"

	"nemesis/grammar"
	"nemesis/internal/ast"
	"nemesis/internal/errors"
	"nemesis/internal/names"
)

// parsePrimaryExpr lowers a primary. The second result is true when the
// primary has no ast form and must be kept as source text.
func (p *Parser) parsePrimaryExpr(pr *grammar.Primary) (ast.Node, bool) {
	switch {
	case pr.Function != nil:
		for _, param := range pr.Function.Params {
			if names.IsReserved(param.Name) && param.Name != "..." {
				p.errorAt(param.Pos, len(param.Name), errors.ErrorReservedWord,
					fmt.Sprintf("'%s' cannot be used as a parameter name", param.Name))
			}
			p.check(param.Default)
		}
		p.check(pr.Function.Body)
		return nil, true

	case pr.If != nil:
		p.check(pr.If.Cond, pr.If.Then, pr.If.Else)
		return nil, true

	case pr.For != nil:
		p.check(pr.For.Seq, pr.For.Body)
		return nil, true

	case pr.While != nil:
		p.check(pr.While.Cond, pr.While.Body)
		return nil, true

	case pr.Repeat != nil:
		p.check(pr.Repeat.Body)
		return nil, true

	case pr.Braced != nil:
		p.check(pr.Braced.Body...)
		return nil, true

	case pr.Paren != nil:
		return p.parseExpr(pr.Paren), false

	case pr.Jump != nil, pr.Namespaced != nil:
		return nil, true

	case pr.Number != nil:
		return p.parseNumber(pr.Pos, *pr.Number), false

	case pr.String != nil:
		s, err := unquoteString(*pr.String)
		if err != nil {
			p.errorAt(pr.Pos, len(*pr.String), errors.ErrorInvalidLiteral, err.Error())
			return nil, false
		}
		return ast.String(s), false

	case pr.Ident != nil:
		return p.parseIdent(pr.Pos, *pr.Ident)
	}

	p.errorAt(pr.Pos, 1, errors.ErrorSyntax, "expected an expression")
	return nil, false
}

// parseCallee lowers the identifier in front of a call. A backticked
// operator or index symbol is a plain callee, so `+`(1, 2) is 1 + 2.
func (p *Parser) parseCallee(pr *grammar.Primary) (ast.Node, bool) {
	text := *pr.Ident
	if !strings.HasPrefix(text, "`") {
		return p.parseIdent(pr.Pos, text)
	}
	sym := unquoteName(text)
	if ast.IsOperator(sym) || sym == "[" || sym == "[[" || names.IsName(sym) {
		return ast.NewName(sym), false
	}
	return nil, true
}

func (p *Parser) parseIdent(pos lexer.Position, text string) (ast.Node, bool) {
	if strings.HasPrefix(text, "`") {
		if name := unquoteName(text); names.IsName(name) {
			return ast.NewName(name), false
		}
		return nil, true
	}

	switch text {
	case "TRUE":
		return ast.Bool(true), false
	case "FALSE":
		return ast.Bool(false), false
	case "Inf":
		return ast.Float(math.Inf(1)), false
	case "NA":
		return ast.Float(math.NaN()), false
	case "NULL", "NaN", "NA_integer_", "NA_real_", "NA_complex_", "NA_character_":
		return nil, true
	case "...":
		return ast.NewName(text), false
	}

	if names.IsReserved(text) && !strings.HasPrefix(text, "..") {
		p.errorAt(pos, len(text), errors.ErrorReservedWord,
			fmt.Sprintf("unexpected '%s'", text))
		return nil, false
	}
	return ast.NewName(text), false
}

func (p *Parser) parseNumber(pos lexer.Position, text string) ast.Node {
	var (
		node ast.Node
		err  error
	)
	switch {
	case strings.HasSuffix(text, "L"):
		var (
			v     int64
			whole bool
			f     float64
		)
		v, whole, f, err = parseInteger(strings.TrimSuffix(text, "L"))
		if whole {
			node = ast.Int(v)
		} else {
			node = ast.Float(f)
		}
	case strings.HasSuffix(text, "i"):
		var f float64
		f, err = parseReal(strings.TrimSuffix(text, "i"))
		node = ast.Complex(complex(0, f))
	default:
		var f float64
		f, err = parseReal(text)
		node = ast.Float(f)
	}
	if err != nil {
		p.errorAt(pos, len(text), errors.ErrorInvalidLiteral, err.Error())
		return nil
	}
	return node
}

// check lowers expressions kept as source text so that their errors are
// still reported.
func (p *Parser) check(exprs ...*grammar.Expression) {
	for _, e := range exprs {
		if e != nil {
			p.parseExpr(e)
		}
	}
}

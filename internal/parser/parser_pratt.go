package parser

import (
	"fmt"

	"nemesis/grammar"
	"nemesis/internal/ast"
	"nemesis/internal/errors"
)

// chain is the operator tail of a flat expression being climbed.
type chain struct {
	ops []*grammar.OpTerm
	pos int
}

func (p *Parser) parseExpr(e *grammar.Expression) ast.Node {
	c := &chain{ops: e.Tail}
	return p.parsePrattExpr(c, e.Head, 0)
}

// parsePrattExpr parses first and every following operator binding at
// least as tightly as minPrec.
func (p *Parser) parsePrattExpr(c *chain, first *grammar.Operand, minPrec int) ast.Node {
	expr := p.parsePrefixExpr(c, first)

	for c.pos < len(c.ops) {
		term := c.ops[c.pos]
		prec, ok := ast.Precedence(term.Op, 2)
		if !ok {
			p.errorAt(term.Pos, len(term.Op), errors.ErrorUnsupportedOperator,
				fmt.Sprintf("'%s' is not a binary operator", term.Op))
			c.pos++
			p.parsePrattExpr(c, term.Right, 0)
			continue
		}
		if prec < minPrec {
			break
		}

		c.pos++
		next := prec + 1
		if ast.RightAssociative(term.Op) {
			next = prec
		}
		right := p.parsePrattExpr(c, term.Right, next)

		if expr != nil && right != nil {
			expr = ast.NewCall(ast.NewName(term.Op), expr, right)
		} else {
			expr = nil
		}
	}

	return expr
}

// parsePrefixExpr applies unary operators. A unary operator covers every
// binary operator that binds more tightly than itself, so -x^2 is -(x^2)
// and !x == y is !(x == y).
func (p *Parser) parsePrefixExpr(c *chain, o *grammar.Operand) ast.Node {
	if len(o.Unary) == 0 {
		return p.parsePostfixExpr(o.Postfix)
	}

	op := o.Unary[0]
	prec, ok := ast.Precedence(op, 1)
	if !ok {
		p.errorAt(o.Pos, len(op), errors.ErrorUnsupportedOperator,
			fmt.Sprintf("'%s' is not a unary operator", op))
		return nil
	}

	rest := &grammar.Operand{Pos: o.Pos, Unary: o.Unary[1:], Postfix: o.Postfix}
	value := p.parsePrattExpr(c, rest, prec+1)
	if value == nil {
		return nil
	}
	return ast.NewCall(ast.NewName(op), value)
}

func (p *Parser) parsePostfixExpr(pf *grammar.Postfix) ast.Node {
	raw := false

	var expr ast.Node
	if len(pf.Suffixes) > 0 && pf.Suffixes[0].Call != nil && pf.Primary.Ident != nil {
		expr, raw = p.parseCallee(pf.Primary)
	} else {
		expr, raw = p.parsePrimaryExpr(pf.Primary)
	}

	for _, s := range pf.Suffixes {
		var next ast.Node
		var asRaw bool
		switch {
		case s.Call != nil:
			next, asRaw = p.parseCall(expr, s.Call.First, s.Call.Rest)
		case s.Double != nil:
			next, asRaw = p.parseIndex("[[", expr, s.Double.First, s.Double.Rest)
		case s.Index != nil:
			next, asRaw = p.parseIndex("[", expr, s.Index.First, s.Index.Rest)
		case s.Member != nil:
			asRaw = true
		}
		raw = raw || asRaw
		expr = next
	}

	if raw {
		return ast.NewRaw(grammar.Span(p.source, pf.Tokens))
	}
	return expr
}

func (p *Parser) parseCall(fn ast.Node, first *grammar.Arg, rest []*grammar.ArgTail) (ast.Node, bool) {
	var args []ast.Arg
	raw := false
	for _, slot := range grammar.Slots(first, rest) {
		if slot == nil || slot.Value == nil {
			raw = true
			continue
		}
		value := p.parseExpr(slot.Value)
		if slot.Name == nil {
			if value != nil {
				args = append(args, value)
			}
			continue
		}
		name, ok := p.argName(slot)
		if !ok {
			raw = true
			continue
		}
		if value != nil {
			args = append(args, ast.Keyword(name, value))
		}
	}
	if raw || fn == nil {
		return nil, raw
	}
	return ast.CallWithArgs(fn, args), false
}

func (p *Parser) parseIndex(open string, target ast.Node, first *grammar.Arg, rest []*grammar.ArgTail) (ast.Node, bool) {
	slots := grammar.Slots(first, rest)
	simple := len(slots) == 1 && slots[0] != nil && slots[0].Name == nil && slots[0].Value != nil

	var values []ast.Node
	for _, slot := range slots {
		if slot != nil && slot.Value != nil {
			values = append(values, p.parseExpr(slot.Value))
		}
	}
	if !simple {
		return nil, true
	}
	if target == nil || values[0] == nil {
		return nil, false
	}
	return ast.NewCall(ast.NewName(open), target, values[0]), false
}

func (p *Parser) argName(slot *grammar.Arg) (string, bool) {
	text := *slot.Name
	name := unquoteName(text)
	if text[0] == '"' || text[0] == '\'' {
		s, err := unquoteString(text)
		if err != nil {
			p.errorAt(slot.Pos, len(text), errors.ErrorInvalidLiteral, err.Error())
			return "", false
		}
		name = s
	}
	return name, isPrintableName(name)
}

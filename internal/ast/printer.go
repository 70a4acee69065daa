package ast

import (
	"io"
	"strconv"
	"strings"

	"nemesis/internal/errors"
)

// Render pretty-prints node as R source, starting with indent spaces.
func Render(node Node, indent int) (string, error) {
	indent = max(indent, 0)
	p := &printer{}
	p.b.WriteString(strings.Repeat(" ", indent))
	if err := p.node(node, indent); err != nil {
		return "", err
	}
	return p.b.String(), nil
}

// Write pretty-prints node to w. Nothing is written if rendering fails.
func Write(w io.Writer, node Node, indent int) error {
	s, err := Render(node, indent)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, s)
	return err
}

type printer struct {
	b strings.Builder
}

func (p *printer) node(n Node, indent int) error {
	switch n := n.(type) {
	case *Constant:
		return p.constant(n, indent)
	case *Name:
		p.b.WriteString(n.Value)
	case *Call:
		return p.call(n, indent)
	case *PairList:
		return p.pairList(n, indent)
	case *Block:
		return p.block(n, indent)
	case *Comment:
		p.b.WriteString(wrapComment(n.Text, indent))
	case *Raw:
		p.b.WriteString(n.Text)
	default:
		return errors.UnknownNodeType(n)
	}
	return nil
}

func (p *printer) constant(c *Constant, indent int) error {
	switch v := c.Value.(type) {
	case bool:
		if v {
			p.b.WriteString("TRUE")
		} else {
			p.b.WriteString("FALSE")
		}
	case int64:
		p.b.WriteString(strconv.FormatInt(v, 10))
	case float64:
		p.b.WriteString(FormatNumber(v))
	case complex128:
		return p.call(NewCall(NewName("complex"),
			Keyword("real", Float(real(v))),
			Keyword("imaginary", Float(imag(v)))), indent)
	case string:
		p.b.WriteString(quote(v))
	default:
		return errors.Newf(errors.ErrorUnsupportedConstant,
			"cannot render constant of type %T", c.Value).Build()
	}
	return nil
}

func (p *printer) call(c *Call, indent int) error {
	if fn, ok := c.Fn.(*Name); ok {
		switch {
		case fn.Value == "[" || fn.Value == "[[":
			return p.index(c, fn.Value, indent)
		case IsOperator(fn.Value):
			return p.operator(c, fn.Value, indent)
		}
	}
	return p.standard(c, indent)
}

func (p *printer) index(c *Call, open string, indent int) error {
	args, ok := positional(c.Args)
	if !ok || len(args) != 2 {
		return errors.MalformedNode(c, "index calls take exactly two positional arguments")
	}
	// Indexing binds tighter than every operator.
	_, isOp := operatorCall(args[0])
	if err := p.operand(args[0], isOp, indent); err != nil {
		return err
	}
	p.b.WriteString(open)
	if err := p.node(args[1], indent); err != nil {
		return err
	}
	if open == "[" {
		p.b.WriteString("]")
	} else {
		p.b.WriteString("]]")
	}
	return nil
}

func (p *printer) operator(c *Call, sym string, indent int) error {
	prec, ok := Precedence(sym, len(c.Args))
	if !ok {
		return errors.MalformedNode(c, "operator '"+sym+"' does not take "+strconv.Itoa(len(c.Args))+" arguments")
	}
	args, ok := positional(c.Args)
	if !ok {
		return errors.MalformedNode(c, "operator '"+sym+"' does not take keyword arguments")
	}

	if len(args) == 1 {
		p.b.WriteString(sym)
		inner, isOp := operatorCall(args[0])
		return p.operand(args[0], isOp && inner < prec, indent)
	}

	// Operators of equal precedence evaluate left to right, hence the
	// asymmetry between the two sides.
	left, isOp := operatorCall(args[0])
	if err := p.operand(args[0], isOp && left < prec, indent); err != nil {
		return err
	}

	short := c.Meta().Hint() == HintShort
	if !short {
		p.b.WriteByte(' ')
	}
	p.b.WriteString(sym)
	if !short {
		p.b.WriteByte(' ')
	}

	right, isOp := operatorCall(args[1])
	return p.operand(args[1], isOp && right <= prec, indent)
}

func (p *printer) operand(n Node, parens bool, indent int) error {
	if parens {
		p.b.WriteByte('(')
	}
	if err := p.node(n, indent); err != nil {
		return err
	}
	if parens {
		p.b.WriteByte(')')
	}
	return nil
}

func (p *printer) standard(c *Call, indent int) error {
	_, isOp := operatorCall(c.Fn)
	if err := p.operand(c.Fn, isOp, indent); err != nil {
		return err
	}
	p.b.WriteByte('(')

	// The width of a general callee expression is unknown.
	if fn, ok := c.Fn.(*Name); ok {
		indent += len(fn.Value) + 1
	} else {
		indent += 2
	}

	hint := c.Meta().Hint()
	for i, a := range c.Args {
		if i > 0 {
			switch hint {
			case HintLong:
				p.b.WriteByte(',')
				p.newline(indent)
			case HintShort:
				p.b.WriteByte(',')
			default:
				p.b.WriteString(", ")
			}
		}
		if err := p.arg(a, hint, indent); err != nil {
			return err
		}
	}

	p.b.WriteByte(')')
	return nil
}

func (p *printer) arg(a Arg, hint PrintHint, indent int) error {
	switch a := a.(type) {
	case Pair:
		if err := p.node(a.Name, indent); err != nil {
			return err
		}
		if hint == HintShort {
			p.b.WriteByte('=')
		} else {
			p.b.WriteString(" = ")
		}
		return p.node(a.Value, indent)
	case Node:
		return p.node(a, indent)
	default:
		return errors.UnknownNodeType(a)
	}
}

func (p *printer) pairList(l *PairList, indent int) error {
	for i, param := range l.Params {
		if i > 0 {
			p.b.WriteString(", ")
		}
		switch param := param.(type) {
		case Pair:
			if err := p.arg(param, HintNormal, indent); err != nil {
				return err
			}
		case *Name:
			p.b.WriteString(param.Value)
		default:
			return errors.UnknownNodeType(param)
		}
	}
	return nil
}

func (p *printer) block(b *Block, indent int) error {
	hint := b.Meta().Hint()
	for i, n := range b.Body {
		if i > 0 {
			switch hint {
			case HintShort:
				p.b.WriteString("; ")
			case HintLong:
				p.newline(0)
				p.newline(indent)
			default:
				p.newline(indent)
			}
		}
		if err := p.node(n, indent); err != nil {
			return err
		}
	}
	return nil
}

func (p *printer) newline(indent int) {
	p.b.WriteByte('\n')
	p.b.WriteString(strings.Repeat(" ", indent))
}

func positional(args []Arg) ([]Node, bool) {
	nodes := make([]Node, len(args))
	for i, a := range args {
		n, ok := a.(Node)
		if !ok {
			return nil, false
		}
		nodes[i] = n
	}
	return nodes, true
}

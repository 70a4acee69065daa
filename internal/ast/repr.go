package ast

import (
	"math"
	"strconv"
	"strings"
)

// Debug representations. These are for logs and test failures, not R.

func (c *Constant) String() string {
	return "Constant(" + reprValue(c.Value) + ")"
}

func (n *Name) String() string {
	return "Name(" + quote(n.Value) + ")"
}

func (c *Call) String() string {
	var b strings.Builder
	b.WriteString("Call(")
	b.WriteString(c.Fn.String())
	b.WriteString(", [")
	for i, a := range c.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(a.String())
	}
	b.WriteString("])")
	return b.String()
}

func (p Pair) String() string {
	return "(" + p.Name.String() + ", " + p.Value.String() + ")"
}

func (p *PairList) String() string {
	parts := make([]string, len(p.Params))
	for i, param := range p.Params {
		parts[i] = param.String()
	}
	return "PairList([" + strings.Join(parts, ", ") + "])"
}

func (b *Block) String() string {
	parts := make([]string, len(b.Body))
	for i, n := range b.Body {
		parts[i] = n.String()
	}
	return "Block([" + strings.Join(parts, ", ") + "])"
}

func (c *Comment) String() string {
	return "Comment(" + quote(c.Text) + ")"
}

func (r *Raw) String() string {
	return "Raw(" + quote(r.Text) + ")"
}

func reprValue(v any) string {
	switch v := v.(type) {
	case bool:
		if v {
			return "True"
		}
		return "False"
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return reprFloat(v)
	case complex128:
		re, im := real(v), imag(v)
		imPart := reprComplexPart(im) + "j"
		if re == 0 && !math.Signbit(re) {
			return imPart
		}
		if im >= 0 || math.IsNaN(im) {
			imPart = "+" + imPart
		}
		return "(" + reprComplexPart(re) + imPart + ")"
	case string:
		return quote(v)
	default:
		return "<invalid>"
	}
}

func reprFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	return formatFloat(f)
}

func reprComplexPart(f float64) string {
	return strings.TrimSuffix(reprFloat(f), ".0")
}

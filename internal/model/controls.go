package model

import (
	"fmt"

	"nemesis/internal/ast"
	"nemesis/internal/errors"
	"nemesis/internal/stdlib"
)

// FactorControl groups entities by the values of a categorical expression.
type FactorControl struct {
	Object     `yaml:",inline"`
	Expression string `yaml:"expression"`
}

// NumericalControl bins a numerical expression, either into NumBreaks
// automatic intervals or at the given Breaks.
type NumericalControl struct {
	Object       `yaml:",inline"`
	Expression   string   `yaml:"expression"`
	AutoBreaks   bool     `yaml:"auto_breaks"`
	NumBreaks    int      `yaml:"num_breaks"`
	Breaks       []any    `yaml:"breaks,omitempty"` // int or float64 values
	ClosedOnLeft bool     `yaml:"closed_on_left"`
	Labels       []string `yaml:"labels,omitempty"`
}

func NewFactorControl(name, expression string) *FactorControl {
	return &FactorControl{Object: Object{Name: name}, Expression: expression}
}

func NewNumericalControl(name, expression string) *NumericalControl {
	return &NumericalControl{
		Object:       Object{Name: name},
		Expression:   expression,
		AutoBreaks:   true,
		NumBreaks:    10,
		ClosedOnLeft: true,
	}
}

func (*FactorControl) Kind() string    { return stdlib.FactorControl }
func (*NumericalControl) Kind() string { return stdlib.NumericalControl }

func (*FactorControl) isControl()    {}
func (*NumericalControl) isControl() {}

func (c *FactorControl) AST() (ast.Node, error) {
	return controlAST(c.Name, ast.NewRaw(c.Expression)), nil
}

func (c *NumericalControl) AST() (ast.Node, error) {
	args := []ast.Arg{ast.NewRaw(c.Expression)}

	var breaks ast.Node = ast.Int(int64(c.NumBreaks))
	if !c.AutoBreaks {
		var err error
		if breaks, err = ast.SeqToVector(c.Breaks); err != nil {
			return nil, fmt.Errorf("control %s: %w", c.Name, err)
		}
	}
	args = append(args, ast.Keyword("breaks", breaks))

	if len(c.Labels) > 0 {
		labels, err := ast.SeqToVector(anys(c.Labels))
		if err != nil {
			return nil, fmt.Errorf("control %s: %w", c.Name, err)
		}
		args = append(args, ast.Keyword("labels", labels))
	}
	if c.ClosedOnLeft {
		// R closes intervals on the right by default.
		args = append(args, ast.Keyword("right", ast.Bool(false)))
	}

	cut := ast.WithHint(ast.CallWithArgs(ast.NewName("cut"), args), ast.HintLong)
	return controlAST(c.Name, cut), nil
}

func controlAST(name string, impl ast.Node) ast.Node {
	return ast.WithHint(ast.NewCall(ast.NewName("def_control"), ast.Keyword(name, impl)), ast.HintLong)
}

func (c *FactorControl) check(v ExpressionValidator) []error {
	return checkExpressions(v, &c.Object, c.Expression)
}

func (c *NumericalControl) check(v ExpressionValidator) []error {
	errs := checkExpressions(v, &c.Object, c.Expression)

	breaks := c.NumBreaks
	if !c.AutoBreaks {
		breaks = len(c.Breaks)
	}
	if len(c.Labels) > 0 && len(c.Labels) != breaks-1 {
		errs = append(errs, errors.Newf(errors.ErrorLabelCount,
			"numerical control '%s' has %d labels for %d breaks", c.Name, len(c.Labels), breaks).
			At(c.Pos).
			WithNote(fmt.Sprintf("%d breaks make %d intervals", breaks, breaks-1)).
			Build())
	}
	return errs
}

func anys[T any](s []T) []any {
	out := make([]any, len(s))
	for i, v := range s {
		out[i] = v
	}
	return out
}

package model

import (
	"strings"

	"nemesis/internal/ast"
	"nemesis/internal/errors"
	"nemesis/internal/names"
	"nemesis/internal/stdlib"
)

// metricBase is embedded by every metric.
type metricBase struct {
	Object `yaml:",inline"`
	// Names of the controls to adjust for.
	ControlFor []string `yaml:"control_for,omitempty"`
}

func (m *metricBase) ControlNames() []string { return m.ControlFor }
func (*metricBase) isMetric()                {}

// define wraps impl in def_metric(name = impl, control_for = ...).
func (m *metricBase) define(impl ast.Node) (ast.Node, error) {
	args := []ast.Arg{ast.Keyword(m.Name, impl)}
	if len(m.ControlFor) > 0 {
		controls, err := ast.SeqToVector(anys(m.ControlFor))
		if err != nil {
			return nil, err
		}
		args = append(args, ast.Keyword("control_for", controls))
	}
	return ast.WithHint(ast.CallWithArgs(ast.NewName("def_metric"), args), ast.HintLong), nil
}

// groupMetric builds def_group_metric('name', expression, fn, extra...).
// Group metrics are computed over whole groups and take no controls.
func groupMetric(name, expression, fn string, extra ...ast.Arg) ast.Node {
	args := append([]ast.Arg{ast.String(name), ast.NewRaw(expression), ast.NewName(fn)}, extra...)
	return ast.WithHint(ast.CallWithArgs(ast.NewName("def_group_metric"), args), ast.HintLong)
}

// ValueMetric scores each entity by a boolean or numerical expression.
type ValueMetric struct {
	metricBase `yaml:",inline"`
	Expression string `yaml:"expression"`
}

// EntropyMetric scores groups by the entropy of a discrete expression.
type EntropyMetric struct {
	metricBase `yaml:",inline"`
	Expression string `yaml:"expression"`
	Method     string `yaml:"method"` // frequent or normal
}

// Cap bounds a ratio. Values beyond At are replaced by With, which
// defaults to At.
type Cap struct {
	At   float64  `yaml:"at"`
	With *float64 `yaml:"with,omitempty"`
}

func (c *Cap) replacement() float64 {
	if c.With == nil {
		return c.At
	}
	return *c.With
}

// RatioMetric scores each entity by Numerator / Denominator, optionally
// capped, cleaned of zeros, infinities and missing values, and log
// transformed.
type RatioMetric struct {
	metricBase   `yaml:",inline"`
	Numerator    string   `yaml:"numerator"`
	Denominator  string   `yaml:"denominator"`
	LogTransform bool     `yaml:"log_transform,omitempty"`
	CapBelow     *Cap     `yaml:"cap_below,omitempty"`
	CapAbove     *Cap     `yaml:"cap_above,omitempty"`
	ReplaceZero  *float64 `yaml:"replace_zero,omitempty"`
	ReplaceInf   *float64 `yaml:"replace_inf,omitempty"`
	ReplaceNA    *float64 `yaml:"replace_na,omitempty"`
}

// DistributionMetric compares the distribution of an expression within
// each group to the population with a test statistic.
type DistributionMetric struct {
	metricBase     `yaml:",inline"`
	Expression     string `yaml:"expression"`
	Method         string `yaml:"method"` // chi_square, ks or custom
	CustomFunction string `yaml:"custom_function,omitempty"`
}

// UniqueDiscreteMetric scores groups by the share of unique values.
type UniqueDiscreteMetric struct {
	metricBase `yaml:",inline"`
	Expression string `yaml:"expression"`
	Method     string `yaml:"method"` // distinct or frequent
}

// UniqueContinuousMetric scores groups by their coefficient of variation.
type UniqueContinuousMetric struct {
	metricBase `yaml:",inline"`
	Expression string `yaml:"expression"`
}

// GraphDensityMetric scores groups by the density of links between values.
type GraphDensityMetric struct {
	metricBase `yaml:",inline"`
	Expression string `yaml:"expression"`
}

func NewValueMetric(name, expression string) *ValueMetric {
	return &ValueMetric{metricBase: metricBase{Object: Object{Name: name}}, Expression: expression}
}

func NewEntropyMetric(name, expression string) *EntropyMetric {
	return &EntropyMetric{metricBase: metricBase{Object: Object{Name: name}}, Expression: expression, Method: "frequent"}
}

func NewRatioMetric(name, numerator, denominator string) *RatioMetric {
	return &RatioMetric{metricBase: metricBase{Object: Object{Name: name}}, Numerator: numerator, Denominator: denominator}
}

func NewDistributionMetric(name, expression string) *DistributionMetric {
	return &DistributionMetric{metricBase: metricBase{Object: Object{Name: name}}, Expression: expression, Method: "chi_square"}
}

func NewUniqueDiscreteMetric(name, expression string) *UniqueDiscreteMetric {
	return &UniqueDiscreteMetric{metricBase: metricBase{Object: Object{Name: name}}, Expression: expression, Method: "distinct"}
}

func NewUniqueContinuousMetric(name, expression string) *UniqueContinuousMetric {
	return &UniqueContinuousMetric{metricBase: metricBase{Object: Object{Name: name}}, Expression: expression}
}

func NewGraphDensityMetric(name, expression string) *GraphDensityMetric {
	return &GraphDensityMetric{metricBase: metricBase{Object: Object{Name: name}}, Expression: expression}
}

func (*ValueMetric) Kind() string            { return stdlib.ValueMetric }
func (*EntropyMetric) Kind() string          { return stdlib.EntropyMetric }
func (*RatioMetric) Kind() string            { return stdlib.RatioMetric }
func (*DistributionMetric) Kind() string     { return stdlib.DistributionMetric }
func (*UniqueDiscreteMetric) Kind() string   { return stdlib.UniqueDiscreteMetric }
func (*UniqueContinuousMetric) Kind() string { return stdlib.UniqueContinuousMetric }
func (*GraphDensityMetric) Kind() string     { return stdlib.GraphDensityMetric }

func (m *ValueMetric) AST() (ast.Node, error) {
	return m.define(ast.NewRaw(m.Expression))
}

func (m *EntropyMetric) AST() (ast.Node, error) {
	return groupMetric(m.Name, m.Expression, "entropy_disc", ast.Keyword("type", ast.String(m.Method))), nil
}

func (m *RatioMetric) AST() (ast.Node, error) {
	args := []ast.Arg{ast.NewRaw(m.Numerator), ast.NewRaw(m.Denominator)}

	if m.CapBelow != nil {
		args = append(args, ast.Keyword("min", ast.Float(m.CapBelow.At)))
		if with := m.CapBelow.replacement(); with != m.CapBelow.At {
			args = append(args, ast.Keyword("min_to", ast.Float(with)))
		}
	}
	if m.CapAbove != nil {
		args = append(args, ast.Keyword("max", ast.Float(m.CapAbove.At)))
		if with := m.CapAbove.replacement(); with != m.CapAbove.At {
			args = append(args, ast.Keyword("max_to", ast.Float(with)))
		}
	}

	replacements := []struct {
		key   string
		value *float64
	}{
		{"zero_to", m.ReplaceZero},
		{"inf_to", m.ReplaceInf},
		{"na_to", m.ReplaceNA},
	}
	for _, r := range replacements {
		if r.value != nil {
			args = append(args, ast.Keyword(r.key, ast.Float(*r.value)))
		}
	}

	var node ast.Node = ast.CallWithArgs(ast.NewName("ratio"), args)
	if m.LogTransform {
		node = ast.NewCall(ast.NewName("safe_log1p"), node)
	}
	return m.define(node)
}

var distributionFunctions = map[string]string{
	"chi_square": "chisq_test",
	"ks":         "ks.stat",
}

func (m *DistributionMetric) statistic() string {
	if m.Method == "custom" {
		return m.CustomFunction
	}
	return distributionFunctions[m.Method]
}

func (m *DistributionMetric) AST() (ast.Node, error) {
	return groupMetric(m.Name, m.Expression, m.statistic()), nil
}

func (m *UniqueDiscreteMetric) AST() (ast.Node, error) {
	return groupMetric(m.Name, m.Expression, "uniq_disc", ast.Keyword("type", ast.String(m.Method))), nil
}

func (m *UniqueContinuousMetric) AST() (ast.Node, error) {
	return groupMetric(m.Name, m.Expression, "uniq_cont"), nil
}

func (m *GraphDensityMetric) AST() (ast.Node, error) {
	return groupMetric(m.Name, m.Expression, "graph_density"), nil
}

func (m *ValueMetric) check(v ExpressionValidator) []error {
	return checkExpressions(v, &m.Object, m.Expression)
}

func (m *EntropyMetric) check(v ExpressionValidator) []error {
	return append(checkExpressions(v, &m.Object, m.Expression),
		checkEnum(&m.Object, m.Kind(), "method", m.Method)...)
}

func (m *RatioMetric) check(v ExpressionValidator) []error {
	return checkExpressions(v, &m.Object, m.Numerator, m.Denominator)
}

func (m *DistributionMetric) check(v ExpressionValidator) []error {
	errs := append(checkExpressions(v, &m.Object, m.Expression),
		checkEnum(&m.Object, m.Kind(), "method", m.Method)...)
	if m.Method == "custom" && !names.IsName(m.CustomFunction) {
		err := errors.InvalidName("custom function of metric '"+m.Name+"'", m.CustomFunction)
		err.Position = m.Pos
		errs = append(errs, err)
	}
	return errs
}

func (m *UniqueDiscreteMetric) check(v ExpressionValidator) []error {
	return append(checkExpressions(v, &m.Object, m.Expression),
		checkEnum(&m.Object, m.Kind(), "method", m.Method)...)
}

func (m *UniqueContinuousMetric) check(v ExpressionValidator) []error {
	return checkExpressions(v, &m.Object, m.Expression)
}

func (m *GraphDensityMetric) check(v ExpressionValidator) []error {
	return checkExpressions(v, &m.Object, m.Expression)
}

// checkEnum reports a field value missing from the kind's allowed values.
func checkEnum(o *Object, kind, field, value string) []error {
	def, ok := stdlib.GetComponentDefinition(kind).Field(field)
	if !ok {
		return nil
	}
	for _, allowed := range def.Values {
		if value == allowed {
			return nil
		}
	}
	return []error{errors.Newf(errors.ErrorModelDecode,
		"'%s' of %s '%s' must be one of '%s', not '%s'",
		field, kind, o.Name, strings.Join(def.Values, "', '"), value).
		At(o.Pos).
		Build()}
}

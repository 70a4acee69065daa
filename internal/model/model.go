// Package model defines outlier-detection models and their translation to
// R code.
//
// A model names the entity and group columns of the input data and lists
// three kinds of components: controls that partition groups, metrics that
// score groups, and composite scores that combine metric scores. Every
// component kind is registered in the stdlib package.
package model

import (
	"slices"

	"nemesis/internal/ast"
	"nemesis/internal/errors"
)

// Library is the R package providing the functions models compile to.
const Library = "NemesisOutliers"

// ExpressionValidator decides whether source text is a single valid R
// expression.
type ExpressionValidator interface {
	IsExpression(text string) bool
}

// Model defines an outlier-detection model.
type Model struct {
	// Data columns holding the entity and group ids.
	EntityName string
	GroupName  string

	Controls        []Control
	Metrics         []Metric
	CompositeScores []CompositeScore

	// R code run before the model is configured.
	UserCode string

	CapEntityScore bool
	MaxEntityScore float64

	LimitGroupSize bool
	MinGroupSize   int

	// Whether the input data is stored next to the results.
	StoreInput bool
}

// New returns an empty model with default settings.
func New() *Model {
	return &Model{
		CapEntityScore: true,
		MaxEntityScore: 3.0,
		MinGroupSize:   50,
		StoreInput:     true,
	}
}

// Object holds what every model component has.
type Object struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`

	// Location of the component in its model file, if loaded from one.
	Pos errors.Position `yaml:"-"`
}

// Base returns the common part of a component.
func (o *Object) Base() *Object { return o }

// Component is a control, metric or composite score.
type Component interface {
	// Kind returns the component kind id.
	Kind() string
	Base() *Object
	// AST returns the R statement defining the component.
	AST() (ast.Node, error)
	// check reports problems local to the component.
	check(v ExpressionValidator) []error
}

type Control interface {
	Component
	isControl()
}

type Metric interface {
	Component
	// ControlNames returns the names of the controls the metric is
	// adjusted for.
	ControlNames() []string
	isMetric()
}

type CompositeScore interface {
	Component
	isCompositeScore()
}

// Components returns every component in model order: controls, metrics,
// then composite scores.
func (m *Model) Components() []Component {
	return slices.Concat(components(m.Controls), components(m.Metrics), components(m.CompositeScores))
}

// AST returns the R code defining the model: user code, the parameters,
// then one commented section per non-empty component list.
func (m *Model) AST() (*ast.Block, error) {
	var nodes []ast.Node

	if m.UserCode != "" {
		nodes = append(nodes,
			ast.NewComment("User-defined code"),
			ast.NewRaw(m.UserCode))
	}

	nodes = append(nodes,
		ast.NewComment("Configure model"),
		ast.WithHint(ast.CallWithArgs(ast.NewName("def_parameters"), m.parameters()), ast.HintLong))

	sections := []struct {
		title string
		items []Component
	}{
		{"Control variables", components(m.Controls)},
		{"Metrics", components(m.Metrics)},
		{"Composite scores", components(m.CompositeScores)},
	}
	for _, s := range sections {
		if len(s.items) == 0 {
			continue
		}
		nodes = append(nodes, ast.NewComment(s.title))
		for _, c := range s.items {
			n, err := c.AST()
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, n)
		}
	}

	block := ast.WithHint(ast.NewBlock(nodes...), ast.HintLong)
	return ast.WithLibraries(block, Library), nil
}

func (m *Model) parameters() []ast.Arg {
	params := []ast.Arg{
		ast.Keyword("entity_name", ast.String(m.EntityName)),
		ast.Keyword("group_name", ast.String(m.GroupName)),
	}
	if m.CapEntityScore {
		params = append(params, ast.Keyword("cap_entity_score", ast.Float(m.MaxEntityScore)))
	}
	if m.LimitGroupSize {
		params = append(params, ast.Keyword("min_group_size", ast.Int(int64(m.MinGroupSize))))
	}
	return params
}

func components[T Component](items []T) []Component {
	out := make([]Component, len(items))
	for i, c := range items {
		out[i] = c
	}
	return out
}

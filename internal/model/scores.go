package model

import (
	"nemesis/internal/ast"
	"nemesis/internal/stdlib"
)

// CustomScore combines metric scores with an arbitrary R expression.
type CustomScore struct {
	Object     `yaml:",inline"`
	Expression string `yaml:"expression"`
}

// LinearTerm is one weighted metric of a linear combination.
type LinearTerm struct {
	Coeff  float64 `yaml:"coeff"`
	Metric string  `yaml:"metric"`
}

// LinearCombinationScore is a weighted sum of metric scores.
type LinearCombinationScore struct {
	Object `yaml:",inline"`
	Terms  []LinearTerm `yaml:"terms"`
}

// PrincipalComponentScore keeps the top principal components of the
// metric scores, as a share or as a count.
type PrincipalComponentScore struct {
	Object     `yaml:",inline"`
	TopPercent float64 `yaml:"top_percent"`
	TopCount   int     `yaml:"top_count"`
	IsPercent  bool    `yaml:"is_percent"`
}

func NewCustomScore(name, expression string) *CustomScore {
	return &CustomScore{Object: Object{Name: name}, Expression: expression}
}

func NewLinearCombinationScore(name string, terms ...LinearTerm) *LinearCombinationScore {
	return &LinearCombinationScore{Object: Object{Name: name}, Terms: terms}
}

func NewPrincipalComponentScore(name string) *PrincipalComponentScore {
	return &PrincipalComponentScore{Object: Object{Name: name}, TopPercent: 1.0, TopCount: 1, IsPercent: true}
}

func (*CustomScore) Kind() string             { return stdlib.CustomScore }
func (*LinearCombinationScore) Kind() string  { return stdlib.LinearCombinationScore }
func (*PrincipalComponentScore) Kind() string { return stdlib.PrincipalComponentScore }

func (*CustomScore) isCompositeScore()             {}
func (*LinearCombinationScore) isCompositeScore()  {}
func (*PrincipalComponentScore) isCompositeScore() {}

// defineScore binds impl to name with def_composite_score, which quotes
// its arguments.
func defineScore(name string, impl ast.Node) ast.Node {
	return ast.WithHint(ast.NewCall(ast.NewName("def_composite_score"), ast.Keyword(name, impl)), ast.HintLong)
}

func (s *CustomScore) AST() (ast.Node, error) {
	return defineScore(s.Name, ast.NewRaw(s.Expression)), nil
}

// AST sums coeff * metric over the terms with a non-zero coefficient.
func (s *LinearCombinationScore) AST() (ast.Node, error) {
	var terms []ast.Node
	for _, t := range s.Terms {
		if t.Coeff != 0 {
			terms = append(terms, ast.Product(ast.Float(t.Coeff), ast.NewName(t.Metric)))
		}
	}
	return defineScore(s.Name, ast.Sum(terms...)), nil
}

// AST uses the standard-evaluation form def_composite_score_q, since the
// score is not given as an expression.
func (s *PrincipalComponentScore) AST() (ast.Node, error) {
	var top ast.Node = ast.Int(int64(s.TopCount))
	if s.IsPercent {
		top = ast.Float(s.TopPercent)
	}
	return ast.NewCall(ast.NewName("def_composite_score_q"),
		ast.String(s.Name),
		ast.NewName("composite.pca"),
		ast.Keyword("top", top),
		ast.Keyword("percent", ast.Bool(s.IsPercent))), nil
}

func (s *CustomScore) check(v ExpressionValidator) []error {
	return checkExpressions(v, &s.Object, s.Expression)
}

func (s *LinearCombinationScore) check(ExpressionValidator) []error {
	return nil
}

func (s *PrincipalComponentScore) check(ExpressionValidator) []error {
	return nil
}

package model

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"nemesis/internal/ast"
	"nemesis/internal/errors"
	"nemesis/internal/stdlib"
)

// Version is the model file format written by Save. Files without a
// version are read as version 0, where the document is the model itself.
const Version = 1

// document is the model mapping of a model file.
type document struct {
	EntityName      string      `yaml:"entity_name"`
	GroupName       string      `yaml:"group_name"`
	UserCode        string      `yaml:"user_code,omitempty"`
	CapEntityScore  bool        `yaml:"cap_entity_score"`
	MaxEntityScore  float64     `yaml:"max_entity_score"`
	LimitGroupSize  bool        `yaml:"limit_group_size"`
	MinGroupSize    int         `yaml:"min_group_size"`
	StoreInput      bool        `yaml:"store_input"`
	Controls        []yaml.Node `yaml:"controls,omitempty"`
	Metrics         []yaml.Node `yaml:"metrics,omitempty"`
	CompositeScores []yaml.Node `yaml:"composite_scores,omitempty"`
}

type file struct {
	Version int      `yaml:"version"`
	Model   document `yaml:"model"`
}

var factories = map[string]func() Component{
	stdlib.FactorControl:           func() Component { return NewFactorControl("", "") },
	stdlib.NumericalControl:        func() Component { return NewNumericalControl("", "") },
	stdlib.ValueMetric:             func() Component { return NewValueMetric("", "") },
	stdlib.EntropyMetric:           func() Component { return NewEntropyMetric("", "") },
	stdlib.RatioMetric:             func() Component { return NewRatioMetric("", "", "") },
	stdlib.DistributionMetric:      func() Component { return NewDistributionMetric("", "") },
	stdlib.UniqueDiscreteMetric:    func() Component { return NewUniqueDiscreteMetric("", "") },
	stdlib.UniqueContinuousMetric:  func() Component { return NewUniqueContinuousMetric("", "") },
	stdlib.GraphDensityMetric:      func() Component { return NewGraphDensityMetric("", "") },
	stdlib.LinearCombinationScore:  func() Component { return NewLinearCombinationScore("") },
	stdlib.CustomScore:             func() Component { return NewCustomScore("", "") },
	stdlib.PrincipalComponentScore: func() Component { return NewPrincipalComponentScore("") },
}

// LoadFile reads a model file. Errors carry positions in the file.
func LoadFile(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open model: %w", err)
	}
	defer f.Close()
	return load(f, path)
}

// Load reads a model from YAML (or JSON) text. All problems found are
// returned joined.
func Load(r io.Reader) (*Model, error) {
	return load(r, "")
}

// LoadString is Load reading from text, reporting positions in filename.
func LoadString(filename, text string) (*Model, error) {
	return load(strings.NewReader(text), filename)
}

type loader struct {
	filename string
	errors   []error
}

func load(r io.Reader, filename string) (*Model, error) {
	l := &loader{filename: filename}

	var root yaml.Node
	if err := yaml.NewDecoder(r).Decode(&root); err != nil {
		if stderrors.Is(err, io.EOF) {
			return nil, errors.New(errors.ErrorModelDecode, "model file is empty").Build()
		}
		return nil, l.decodeError(err, nil)
	}

	doc := &root
	if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		doc = doc.Content[0]
	}
	if doc.Kind != yaml.MappingNode {
		l.errorAt(doc, errors.ErrorModelDecode, "model file must be a mapping")
		return nil, stderrors.Join(l.errors...)
	}

	body := l.unwrapVersion(doc)
	if body == nil {
		return nil, stderrors.Join(l.errors...)
	}
	m := l.model(body)
	if len(l.errors) > 0 {
		return nil, stderrors.Join(l.errors...)
	}
	return m, nil
}

// unwrapVersion returns the model mapping of a versioned document.
func (l *loader) unwrapVersion(doc *yaml.Node) *yaml.Node {
	key, value := lookup(doc, "version")
	if value == nil {
		return doc
	}

	version, err := strconv.Atoi(value.Value)
	if err != nil || value.Kind != yaml.ScalarNode || version < 0 {
		l.errorAt(value, errors.ErrorModelDecode, fmt.Sprintf("invalid model file version '%s'", value.Value))
		return nil
	}

	switch {
	case version == 0:
		return doc
	case version > Version:
		l.errors = append(l.errors, errors.Newf(errors.ErrorUnsupportedVersion,
			"the model was created by a newer version of this software (format %d)", version).
			At(l.pos(key)).
			WithLength(len(key.Value)).
			WithHelp("please upgrade your installation").
			Build())
		return nil
	}

	_, body := lookup(doc, "model")
	if body == nil || body.Kind != yaml.MappingNode {
		l.errorAt(doc, errors.ErrorModelDecode, "version 1 model files need a 'model' mapping")
		return nil
	}
	return body
}

func (l *loader) model(body *yaml.Node) *Model {
	m := New()
	doc := document{
		CapEntityScore: m.CapEntityScore,
		MaxEntityScore: m.MaxEntityScore,
		MinGroupSize:   m.MinGroupSize,
		StoreInput:     m.StoreInput,
	}
	if err := body.Decode(&doc); err != nil {
		l.errors = append(l.errors, l.decodeError(err, body))
		return nil
	}

	if doc.MaxEntityScore < 0 {
		l.field(body, "max_entity_score", "max_entity_score cannot be negative")
	}
	if doc.MinGroupSize < 1 {
		l.field(body, "min_group_size", "min_group_size must be at least 1")
	}

	m.EntityName = doc.EntityName
	m.GroupName = doc.GroupName
	m.UserCode = doc.UserCode
	m.CapEntityScore = doc.CapEntityScore
	m.MaxEntityScore = doc.MaxEntityScore
	m.LimitGroupSize = doc.LimitGroupSize
	m.MinGroupSize = doc.MinGroupSize
	m.StoreInput = doc.StoreInput

	for i := range doc.Controls {
		if c := l.component(&doc.Controls[i], stdlib.Control); c != nil {
			m.Controls = append(m.Controls, c.(Control))
		}
	}
	for i := range doc.Metrics {
		if c := l.component(&doc.Metrics[i], stdlib.Metric); c != nil {
			m.Metrics = append(m.Metrics, c.(Metric))
		}
	}
	for i := range doc.CompositeScores {
		if c := l.component(&doc.CompositeScores[i], stdlib.CompositeScore); c != nil {
			m.CompositeScores = append(m.CompositeScores, c.(CompositeScore))
		}
	}
	return m
}

func (l *loader) component(n *yaml.Node, category stdlib.Category) Component {
	if n.Kind != yaml.MappingNode {
		l.errorAt(n, errors.ErrorModelDecode, fmt.Sprintf("%s must be a mapping", category))
		return nil
	}

	_, kindNode := lookup(n, "kind")
	if kindNode == nil {
		l.errorAt(n, errors.ErrorModelDecode, fmt.Sprintf("%s has no 'kind'", category))
		return nil
	}
	kind := kindNode.Value
	def := stdlib.GetComponentDefinition(kind)
	if def == nil {
		err := errors.UnknownKind(kind, stdlib.Kinds(category))
		err.Position = l.pos(kindNode)
		err.Length = max(len(kind), 1)
		l.errors = append(l.errors, err)
		return nil
	}
	if def.Category != category {
		l.errors = append(l.errors, errors.Newf(errors.ErrorUnknownKind,
			"'%s' is a %s kind, not a %s kind", kind, def.Category, category).
			At(l.pos(kindNode)).
			WithLength(len(kind)).
			WithHelp("kinds: " + strings.Join(stdlib.Kinds(category), ", ")).
			Build())
		return nil
	}

	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i]
		if _, ok := def.Field(key.Value); !ok {
			l.errors = append(l.errors, errors.Newf(errors.ErrorModelDecode,
				"unknown field '%s' for kind '%s'", key.Value, kind).
				At(l.pos(key)).
				WithLength(len(key.Value)).
				WithHelp("fields: " + strings.Join(def.FieldNames(), ", ")).
				Build())
		}
	}

	c := factories[kind]()
	if err := n.Decode(c); err != nil {
		l.errors = append(l.errors, l.decodeError(err, n))
		return nil
	}
	c.Base().Pos = l.pos(n)
	if _, name := lookup(n, "name"); name != nil {
		c.Base().Pos = l.pos(name)
	}

	if nc, ok := c.(*NumericalControl); ok {
		l.numericalControl(n, nc)
	}
	return c
}

func (l *loader) numericalControl(n *yaml.Node, c *NumericalControl) {
	if c.NumBreaks < 2 {
		l.field(n, "num_breaks", "num_breaks must be at least 2")
	}
	for i, b := range c.Breaks {
		switch b := b.(type) {
		case int, float64:
		case string:
			// Inf, -Inf and NA are written the R way.
			f, err := ast.ParseFloat(b)
			if err != nil {
				l.field(n, "breaks", fmt.Sprintf("break %s", err))
				return
			}
			c.Breaks[i] = f
		default:
			l.field(n, "breaks", fmt.Sprintf("break '%v' is not a number", b))
			return
		}
	}
}

// field reports an error at the value of key in the mapping n.
func (l *loader) field(n *yaml.Node, key, message string) {
	if _, value := lookup(n, key); value != nil {
		n = value
	}
	l.errorAt(n, errors.ErrorModelDecode, message)
}

func (l *loader) errorAt(n *yaml.Node, code, message string) {
	l.errors = append(l.errors, errors.New(code, message).At(l.pos(n)).Build())
}

func (l *loader) pos(n *yaml.Node) errors.Position {
	return errors.Position{Filename: l.filename, Line: n.Line, Column: n.Column}
}

var linePattern = regexp.MustCompile(`line (\d+)`)

// decodeError converts a yaml error. yaml reports positions only inside
// its messages.
func (l *loader) decodeError(err error, n *yaml.Node) error {
	pos := errors.Position{Filename: l.filename}
	if n != nil {
		pos = l.pos(n)
	}
	if match := linePattern.FindStringSubmatch(err.Error()); match != nil {
		pos.Line, _ = strconv.Atoi(match[1])
		pos.Column = 1
	}
	message := strings.TrimPrefix(err.Error(), "yaml: ")
	b := errors.New(errors.ErrorModelDecode, message)
	if pos.IsValid() {
		b = b.At(pos)
	}
	return b.Build()
}

// lookup returns the key and value nodes of key in the mapping n.
func lookup(n *yaml.Node, key string) (*yaml.Node, *yaml.Node) {
	if n.Kind != yaml.MappingNode {
		return nil, nil
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return n.Content[i], n.Content[i+1]
		}
	}
	return nil, nil
}

// Save writes the model in the current file format.
func (m *Model) Save(w io.Writer) error {
	doc := document{
		EntityName:     m.EntityName,
		GroupName:      m.GroupName,
		UserCode:       m.UserCode,
		CapEntityScore: m.CapEntityScore,
		MaxEntityScore: m.MaxEntityScore,
		LimitGroupSize: m.LimitGroupSize,
		MinGroupSize:   m.MinGroupSize,
		StoreInput:     m.StoreInput,
	}

	lists := []struct {
		items []Component
		out   *[]yaml.Node
	}{
		{components(m.Controls), &doc.Controls},
		{components(m.Metrics), &doc.Metrics},
		{components(m.CompositeScores), &doc.CompositeScores},
	}
	for _, list := range lists {
		for _, c := range list.items {
			n, err := encodeComponent(c)
			if err != nil {
				return fmt.Errorf("failed to encode %s '%s': %w", c.Kind(), c.Base().Name, err)
			}
			*list.out = append(*list.out, *n)
		}
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(file{Version: Version, Model: doc}); err != nil {
		return fmt.Errorf("failed to write model: %w", err)
	}
	return enc.Close()
}

// encodeComponent encodes c as a mapping led by its kind.
func encodeComponent(c Component) (*yaml.Node, error) {
	var n yaml.Node
	if err := n.Encode(c); err != nil {
		return nil, err
	}
	kind := []*yaml.Node{
		{Kind: yaml.ScalarNode, Tag: "!!str", Value: "kind"},
		{Kind: yaml.ScalarNode, Tag: "!!str", Value: c.Kind()},
	}
	n.Content = append(kind, n.Content...)
	return &n, nil
}

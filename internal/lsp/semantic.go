package lsp

import (
	"slices"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
	"gopkg.in/yaml.v3"

	"nemesis/grammar"
	"nemesis/internal/names"
	"nemesis/internal/stdlib"
)

// SemanticToken represents a single LSP semantic token entry
// Line and StartChar are 0-based positions
// TokenType is an index into the semanticTokenTypes array
// TokenModifiers is a bitmask based on semanticTokenModifiers
type SemanticToken struct {
	Line           uint32
	StartChar      uint32
	Length         uint32
	TokenType      int // index into semanticTokenTypes
	TokenModifiers int // bitmask
}

// Keys of the model file outside components, and of nested objects.
var modelKeys = []string{
	"version", "model", "entity_name", "group_name", "user_code",
	"cap_entity_score", "max_entity_score", "limit_group_size",
	"min_group_size", "store_input", "controls", "metrics",
	"composite_scores", "at", "with", "coeff", "metric",
}

// fieldTypes maps every known key to its value type. Keys shared by
// several kinds have the same type in all of them.
func fieldTypes() map[string]stdlib.FieldType {
	types := make(map[string]stdlib.FieldType)
	for _, key := range modelKeys {
		types[key] = ""
	}
	for _, d := range stdlib.GetStandardComponents() {
		for _, name := range d.FieldNames() {
			f, _ := d.Field(name)
			types[name] = f.Type
		}
	}
	return types
}

// collectSemanticTokens highlights the model file text. Text that is not
// valid YAML has no tokens.
func collectSemanticTokens(text string) []SemanticToken {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(text), &doc); err != nil {
		log.Debugf("no semantic tokens: %s", err)
		return nil
	}

	w := &tokenWalker{types: fieldTypes()}
	w.walk(&doc)

	slices.SortFunc(w.tokens, func(a, b SemanticToken) int {
		if a.Line != b.Line {
			return int(a.Line) - int(b.Line)
		}
		return int(a.StartChar) - int(b.StartChar)
	})
	return w.tokens
}

type tokenWalker struct {
	types  map[string]stdlib.FieldType
	tokens []SemanticToken
}

func (w *tokenWalker) walk(n *yaml.Node) {
	switch n.Kind {
	case yaml.DocumentNode, yaml.SequenceNode:
		for _, c := range n.Content {
			w.walk(c)
		}
	case yaml.MappingNode:
		for i := 0; i+1 < len(n.Content); i += 2 {
			w.pair(n.Content[i], n.Content[i+1])
		}
	case yaml.ScalarNode:
		w.scalar(n)
	}
}

func (w *tokenWalker) pair(key, value *yaml.Node) {
	typ, known := w.types[key.Value]
	if !known {
		w.walk(value)
		return
	}
	w.add(key, "property", 0)

	switch {
	case key.Value == "kind":
		if stdlib.IsKnownKind(value.Value) {
			w.add(value, "type", 0)
		}
	case key.Value == "name":
		w.add(value, "variable", modifier("declaration"))
	case key.Value == "metric":
		w.add(value, "variable", 0)
	case key.Value == "control_for":
		for _, c := range value.Content {
			w.add(c, "variable", 0)
		}
		if value.Kind == yaml.ScalarNode {
			w.add(value, "variable", 0)
		}
	case typ == stdlib.Symbol:
		w.add(value, "function", 0)
	case typ == stdlib.Expression:
		w.expression(value)
	default:
		w.walk(value)
	}
}

func (w *tokenWalker) scalar(n *yaml.Node) {
	switch n.Tag {
	case "!!int", "!!float":
		w.add(n, "number", 0)
	case "!!bool", "!!null":
		w.add(n, "keyword", 0)
	}
}

// expression highlights the R tokens of a plain one-line scalar. Quoted
// and block scalars are left alone, their source columns being unknown.
func (w *tokenWalker) expression(n *yaml.Node) {
	if n.Kind != yaml.ScalarNode || n.Style != 0 || strings.Contains(n.Value, "\n") {
		return
	}
	lex, err := grammar.RLexer.LexString("", n.Value)
	if err != nil {
		return
	}
	tokens, err := lexer.ConsumeAll(lex)
	if err != nil {
		return
	}

	symbols := grammar.RLexer.Symbols()
	var significant []lexer.Token
	for _, t := range tokens {
		if t.Type != symbols["Whitespace"] && t.Type != symbols["Comment"] && !t.EOF() {
			significant = append(significant, t)
		}
	}

	for i, t := range significant {
		var typ string
		switch t.Type {
		case symbols["Ident"]:
			switch {
			case names.IsReserved(t.Value):
				typ = "keyword"
			case i+1 < len(significant) && significant[i+1].Value == "(":
				typ = "function"
			default:
				typ = "variable"
			}
		case symbols["Number"]:
			typ = "number"
		case symbols["String"]:
			typ = "string"
		case symbols["Operator"], symbols["Namespace"]:
			typ = "operator"
		default:
			continue
		}
		w.tokens = append(w.tokens, SemanticToken{
			Line:      uint32(n.Line - 1),
			StartChar: uint32(n.Column - 1 + t.Pos.Column - 1),
			Length:    uint32(len(t.Value)),
			TokenType: indexOf(typ, SemanticTokenTypes),
		})
	}
}

func (w *tokenWalker) add(n *yaml.Node, tokenType string, modifiers int) {
	if n.Kind != yaml.ScalarNode || n.Line == 0 || n.Value == "" {
		return
	}
	if n.Style&(yaml.LiteralStyle|yaml.FoldedStyle) != 0 || strings.Contains(n.Value, "\n") {
		return
	}
	length := len(n.Value)
	if n.Style == yaml.SingleQuotedStyle || n.Style == yaml.DoubleQuotedStyle {
		length += 2
	}
	w.tokens = append(w.tokens, SemanticToken{
		Line:           uint32(n.Line - 1),
		StartChar:      uint32(n.Column - 1),
		Length:         uint32(length),
		TokenType:      indexOf(tokenType, SemanticTokenTypes),
		TokenModifiers: modifiers,
	})
}

func modifier(name string) int {
	return 1 << indexOf(name, SemanticTokenModifiers)
}

func indexOf(target string, list []string) int {
	return slices.Index(list, target)
}

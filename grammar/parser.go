package grammar

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var parser = buildParser()

func buildParser() *participle.Parser[Expression] {
	p, err := participle.Build[Expression](
		participle.Lexer(RLexer),
		participle.Elide("Whitespace", "Comment"),
		participle.UseLookahead(4),
	)
	if err != nil {
		panic(fmt.Errorf("failed to build parser: %w", err))
	}

	return p
}

// Parse reads exactly one R expression from source. Trailing input, such as
// a second statement, is an error.
func Parse(filename, source string) (*Expression, error) {
	return parser.ParseString(filename, source)
}

var (
	whitespaceType = RLexer.Symbols()["Whitespace"]
	commentType    = RLexer.Symbols()["Comment"]
)

// Span returns the source text covered by tokens, without leading or
// trailing whitespace and comments.
func Span(source string, tokens []lexer.Token) string {
	var first, last *lexer.Token
	for i := range tokens {
		t := &tokens[i]
		if t.EOF() || t.Type == whitespaceType || t.Type == commentType {
			continue
		}
		if first == nil {
			first = t
		}
		last = t
	}
	if first == nil {
		return ""
	}
	start, end := first.Pos.Offset, last.Pos.Offset+len(last.Value)
	if start < 0 || end > len(source) || start > end {
		return strings.TrimSpace(joinTokens(tokens))
	}
	return source[start:end]
}

func joinTokens(tokens []lexer.Token) string {
	var b strings.Builder
	for _, t := range tokens {
		if !t.EOF() {
			b.WriteString(t.Value)
		}
	}
	return b.String()
}

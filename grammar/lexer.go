package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

var RLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		// Comments
		{Name: "Comment", Pattern: `#[^\n]*`, Action: nil},

		// Whitespace, newlines included
		{Name: "Whitespace", Pattern: `[ \t\r\n\f]+`, Action: nil},

		// String literals, either quote
		{Name: "String", Pattern: `"(?:\\.|[^"\\])*"|'(?:\\.|[^'\\])*'`, Action: nil},

		// Numeric literals (must come before identifiers for ".5")
		{Name: "Number", Pattern: `0[xX][0-9a-fA-F]+[Li]?|(?:\d+(?:\.\d*)?|\.\d+)(?:[eE][+-]?\d+)?[Li]?`, Action: nil},

		// Keywords and Identifiers, backticked names included
		{Name: "Ident", Pattern: "`[^`]+`|[a-zA-Z][\\w.]*|\\.[\\w.]*", Action: nil},

		// Namespace access (must come before ":")
		{Name: "Namespace", Pattern: `:::?`, Action: nil},

		// Operators, longest first
		{Name: "Operator", Pattern: `%[^%\n]*%|<<-|->>|\|>|<-|->|<=|>=|==|!=|&&|\|\||[-+*/^<>!&|~?:=]`, Action: nil},

		// Punctuation
		{Name: "Punctuation", Pattern: `[()\[\]{},;$@]`, Action: nil},
	},
})

package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// Expression is a flat chain of operands joined by binary operators.
// Precedence and associativity are resolved after parsing.
type Expression struct {
	Pos    lexer.Position
	Tokens []lexer.Token
	Head   *Operand  `@@`
	Tail   []*OpTerm `@@*`
}

type OpTerm struct {
	Pos   lexer.Position
	Op    string   `@Operator`
	Right *Operand `@@`
}

type Operand struct {
	Pos     lexer.Position
	Unary   []string `@("-" | "+" | "!" | "~" | "?")*`
	Postfix *Postfix `@@`
}

type Postfix struct {
	Pos      lexer.Position
	Tokens   []lexer.Token
	Primary  *Primary  `@@`
	Suffixes []*Suffix `@@*`
}

type Suffix struct {
	Pos    lexer.Position
	Call   *CallSuffix   `  @@`
	Double *DoubleSuffix `| @@`
	Index  *IndexSuffix  `| @@`
	Member *MemberSuffix `| @@`
}

type CallSuffix struct {
	Open  bool       `@"("`
	First *Arg       `@@?`
	Rest  []*ArgTail `@@* ")"`
}

type DoubleSuffix struct {
	Open  bool       `@"[" "["`
	First *Arg       `@@?`
	Rest  []*ArgTail `@@* "]" "]"`
}

type IndexSuffix struct {
	Open  bool       `@"["`
	First *Arg       `@@?`
	Rest  []*ArgTail `@@* "]"`
}

type MemberSuffix struct {
	Op   string `@("$" | "@")`
	Name string `@(Ident | String)`
}

type ArgTail struct {
	Comma bool `@","`
	Arg   *Arg `@@?`
}

type Arg struct {
	Pos   lexer.Position
	Name  *string     `( @(Ident | String) "=" )?`
	Value *Expression `@@?`
}

type Primary struct {
	Pos        lexer.Position
	Tokens     []lexer.Token
	Function   *Function   `  @@`
	If         *If         `| @@`
	For        *For        `| @@`
	While      *While      `| @@`
	Repeat     *Repeat     `| @@`
	Braced     *Braced     `| @@`
	Paren      *Expression `| "(" @@ ")"`
	Jump       *string     `| @("next" | "break")`
	Namespaced *Namespaced `| @@`
	Number     *string     `| @Number`
	String     *string     `| @String`
	Ident      *string     `| @Ident`
}

type Function struct {
	Keyword bool        `@"function" "("`
	Params  []*Param    `( @@ ( "," @@ )* )? ")"`
	Body    *Expression `@@`
}

type Param struct {
	Pos     lexer.Position
	Name    string      `@Ident`
	Default *Expression `( "=" @@ )?`
}

type If struct {
	Keyword bool        `@"if" "("`
	Cond    *Expression `@@ ")"`
	Then    *Expression `@@`
	Else    *Expression `( "else" @@ )?`
}

type For struct {
	Keyword bool        `@"for" "("`
	Var     string      `@Ident "in"`
	Seq     *Expression `@@ ")"`
	Body    *Expression `@@`
}

type While struct {
	Keyword bool        `@"while" "("`
	Cond    *Expression `@@ ")"`
	Body    *Expression `@@`
}

type Repeat struct {
	Keyword bool        `@"repeat"`
	Body    *Expression `@@`
}

type Braced struct {
	Open bool          `@"{" ";"*`
	Body []*Expression `( @@ ";"* )* "}"`
}

type Namespaced struct {
	Package string `@Ident`
	Op      string `@Namespace`
	Name    string `@(Ident | String)`
}

// Slots returns the argument slots between the brackets of a call or
// index suffix. An empty slot (as in `x[, 1]`) is nil. `f()` has none.
func Slots(first *Arg, rest []*ArgTail) []*Arg {
	if len(rest) == 0 && first.IsEmpty() {
		return nil
	}
	slots := []*Arg{first.orNil()}
	for _, t := range rest {
		slots = append(slots, t.Arg.orNil())
	}
	return slots
}

// IsEmpty reports whether the slot holds neither a name nor a value.
func (a *Arg) IsEmpty() bool {
	return a == nil || (a.Name == nil && a.Value == nil)
}

func (a *Arg) orNil() *Arg {
	if a.IsEmpty() {
		return nil
	}
	return a
}

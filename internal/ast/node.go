// Package ast is a typed representation of R expressions and statements.
//
// Trees are built once and then treated as immutable values: attaching
// metadata returns a modified copy and never touches the original node.
package ast

import (
	"fmt"
	"math"

	"nemesis/internal/errors"
)

// Node is one of *Constant, *Name, *Call, *PairList, *Block, *Comment or
// *Raw. The set is closed.
type Node interface {
	Arg
	NodeType() NodeType
	Meta() Metadata
	String() string

	withMeta(Metadata) Node
}

// Arg is a call argument: a positional Node or a keyword Pair.
type Arg interface {
	String() string
	isArg()
}

// Param is a PairList entry: a bare *Name or a Pair with a default value.
type Param interface {
	String() string
	isParam()
}

type base struct {
	md Metadata
}

// Meta returns the node's metadata. The map must not be modified; use
// WithMetadata to derive an annotated copy.
func (b *base) Meta() Metadata { return b.md }

// Constant is a literal bool, int64, float64, complex128 or string.
type Constant struct {
	base
	Value any
}

// Name is any R symbol, including operators such as "+" or "<-".
type Name struct {
	base
	Value string
}

// Call applies Fn to an ordered list of positional and keyword arguments.
type Call struct {
	base
	Fn   Node
	Args []Arg
}

// Pair binds a name to a value, as a keyword argument or a parameter default.
type Pair struct {
	Name  *Name
	Value Node
}

// PairList is an ordered parameter list, as in a function signature.
type PairList struct {
	base
	Params []Param
}

// Block is a sequence of expressions, the body between braces in R.
type Block struct {
	base
	Body []Node
}

// Comment is free text rendered as wrapped "# " lines.
type Comment struct {
	base
	Text string
}

// Raw is pre-formatted code injected verbatim.
type Raw struct {
	base
	Text string
}

func (*Constant) NodeType() NodeType { return CONSTANT }
func (*Name) NodeType() NodeType     { return NAME }
func (*Call) NodeType() NodeType     { return CALL }
func (*PairList) NodeType() NodeType { return PAIR_LIST }
func (*Block) NodeType() NodeType    { return BLOCK }
func (*Comment) NodeType() NodeType  { return COMMENT }
func (*Raw) NodeType() NodeType      { return RAW }

func (*Constant) isArg() {}
func (*Name) isArg()     {}
func (*Call) isArg()     {}
func (*PairList) isArg() {}
func (*Block) isArg()    {}
func (*Comment) isArg()  {}
func (*Raw) isArg()      {}
func (Pair) isArg()      {}

func (*Name) isParam() {}
func (Pair) isParam()  {}

func (c *Constant) withMeta(md Metadata) Node {
	cp := *c
	cp.md = md
	return &cp
}

func (n *Name) withMeta(md Metadata) Node {
	cp := *n
	cp.md = md
	return &cp
}

func (c *Call) withMeta(md Metadata) Node {
	cp := *c
	cp.md = md
	return &cp
}

func (p *PairList) withMeta(md Metadata) Node {
	cp := *p
	cp.md = md
	return &cp
}

func (b *Block) withMeta(md Metadata) Node {
	cp := *b
	cp.md = md
	return &cp
}

func (c *Comment) withMeta(md Metadata) Node {
	cp := *c
	cp.md = md
	return &cp
}

func (r *Raw) withMeta(md Metadata) Node {
	cp := *r
	cp.md = md
	return &cp
}

// Constructors

func Bool(v bool) *Constant          { return &Constant{Value: v} }
func Int(v int64) *Constant          { return &Constant{Value: v} }
func Float(v float64) *Constant      { return &Constant{Value: v} }
func Complex(v complex128) *Constant { return &Constant{Value: v} }
func String(v string) *Constant      { return &Constant{Value: v} }

// ConstantOf wraps a Go value in a Constant, normalising every integer kind
// to int64 and every float kind to float64.
func ConstantOf(v any) (*Constant, error) {
	switch v := v.(type) {
	case bool:
		return Bool(v), nil
	case int:
		return Int(int64(v)), nil
	case int8:
		return Int(int64(v)), nil
	case int16:
		return Int(int64(v)), nil
	case int32:
		return Int(int64(v)), nil
	case int64:
		return Int(v), nil
	case uint:
		return uintConstant(uint64(v))
	case uint8:
		return Int(int64(v)), nil
	case uint16:
		return Int(int64(v)), nil
	case uint32:
		return Int(int64(v)), nil
	case uint64:
		return uintConstant(v)
	case float32:
		return Float(float64(v)), nil
	case float64:
		return Float(v), nil
	case complex64:
		return Complex(complex128(v)), nil
	case complex128:
		return Complex(v), nil
	case string:
		return String(v), nil
	default:
		return nil, errors.Newf(errors.ErrorUnsupportedConstant,
			"cannot represent %T as an R constant", v).Build()
	}
}

func uintConstant(v uint64) (*Constant, error) {
	if v > math.MaxInt64 {
		return nil, errors.Newf(errors.ErrorUnsupportedConstant,
			"integer %d overflows an R constant", v).Build()
	}
	return Int(int64(v)), nil
}

func NewName(value string) *Name {
	return &Name{Value: value}
}

// NewCall builds a call. A nil callee or argument is a programming error
// and panics.
func NewCall(fn Node, args ...Arg) *Call {
	return CallWithArgs(fn, args)
}

// CallWithArgs is NewCall taking the arguments as a slice.
func CallWithArgs(fn Node, args []Arg) *Call {
	if fn == nil {
		panic("ast: call with nil function")
	}
	for i, a := range args {
		if a == nil {
			panic(fmt.Sprintf("ast: nil argument %d in call to %s", i, fn))
		}
		if p, ok := a.(Pair); ok {
			mustPair(p)
		}
	}
	return &Call{Fn: fn, Args: append([]Arg(nil), args...)}
}

// NewPair binds name to value. Both must be non-nil.
func NewPair(name *Name, value Node) Pair {
	return mustPair(Pair{Name: name, Value: value})
}

// Keyword is NewPair with the name given as a string.
func Keyword(name string, value Node) Pair {
	return NewPair(NewName(name), value)
}

func mustPair(p Pair) Pair {
	if p.Name == nil || p.Value == nil {
		panic("ast: pair with nil name or value")
	}
	return p
}

func NewPairList(params ...Param) *PairList {
	for _, p := range params {
		switch p := p.(type) {
		case nil:
			panic("ast: nil parameter")
		case Pair:
			mustPair(p)
		}
	}
	return &PairList{Params: append([]Param(nil), params...)}
}

func NewBlock(body ...Node) *Block {
	for _, n := range body {
		if n == nil {
			panic("ast: nil statement in block")
		}
	}
	return &Block{Body: append([]Node(nil), body...)}
}

func NewComment(text string) *Comment {
	return &Comment{Text: text}
}

func NewRaw(text string) *Raw {
	return &Raw{Text: text}
}

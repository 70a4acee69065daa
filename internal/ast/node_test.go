package ast

import (
	stderrors "errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nemesis/internal/errors"
)

var nodeEqual = cmp.Comparer(Equal)

func TestNodeString(t *testing.T) {
	tests := []struct {
		node     Node
		expected string
	}{
		{Float(1), "Constant(1.0)"},
		{Int(7), "Constant(7)"},
		{Bool(true), "Constant(True)"},
		{String("it's"), `Constant("it's")`},
		{Complex(1 + 2i), "Constant((1+2j))"},
		{Complex(2i), "Constant(2j)"},
		{Float(math.NaN()), "Constant(nan)"},
		{NewName("foo"), "Name('foo')"},
		{NewCall(NewName("foo"), Int(0)), "Call(Name('foo'), [Constant(0)])"},
		{NewCall(NewName("foo"), Int(0), Keyword("y", Int(1))),
			"Call(Name('foo'), [Constant(0), (Name('y'), Constant(1))])"},
		{NewPairList(Keyword("foo", Int(0))), "PairList([(Name('foo'), Constant(0))])"},
		{NewPairList(NewName("x")), "PairList([Name('x')])"},
		{NewBlock(NewName("x"), NewComment("hi")), "Block([Name('x'), Comment('hi')])"},
		{NewRaw("a\nb"), `Raw('a\nb')`},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.node.String())
	}
}

func TestNodeType(t *testing.T) {
	assert.Equal(t, CONSTANT, Int(1).NodeType())
	assert.Equal(t, CALL, NewCall(NewName("f")).NodeType())
	assert.Equal(t, "PairList", NewPairList().NodeType().String())
	assert.Equal(t, "ILLEGAL", ILLEGAL.String())
}

func TestEqual(t *testing.T) {
	call := func() Node {
		return NewCall(NewName("foo"), Int(0), Keyword("y", NewCall(NewName("c"), Float(1), Float(2))))
	}

	if diff := cmp.Diff(call(), call(), nodeEqual); diff != "" {
		t.Errorf("identical trees differ (-want +got):\n%s", diff)
	}

	// Metadata has no effect on equality
	assert.True(t, Equal(call(), WithHint(call(), HintLong)))
	assert.True(t, Equal(NewName("x"), WithLibraries(NewName("x"), "xlsx")))

	assert.False(t, Equal(Int(1), Float(1)))
	assert.False(t, Equal(Float(math.NaN()), Float(math.NaN())))
	assert.False(t, Equal(NewName("x"), NewRaw("x")))
	assert.False(t, Equal(NewComment("x"), NewRaw("x")))
	assert.False(t, Equal(NewCall(NewName("f"), Int(1)), NewCall(NewName("f"), Keyword("a", Int(1)))))
	assert.False(t, Equal(NewCall(NewName("f"), Keyword("a", Int(1))), NewCall(NewName("f"), Keyword("b", Int(1)))))
	assert.False(t, Equal(NewPairList(NewName("x")), NewPairList(Keyword("x", Int(0)))))
	assert.False(t, Equal(NewBlock(NewName("x")), NewBlock(NewName("x"), NewName("y"))))
	assert.True(t, Equal(nil, nil))
	assert.False(t, Equal(NewName("x"), nil))
}

func TestCallWithArgsMatchesNewCall(t *testing.T) {
	args := []Arg{Int(0), Keyword("y", Int(1))}
	a := CallWithArgs(NewName("foo"), args)
	b := NewCall(NewName("foo"), Int(0), Keyword("y", Int(1)))
	if diff := cmp.Diff(b, a, nodeEqual); diff != "" {
		t.Errorf("CallWithArgs mismatch (-want +got):\n%s", diff)
	}

	// The call keeps its own copy of the argument slice
	args[0] = Int(9)
	assert.Equal(t, "Constant(0)", a.Args[0].String())
}

func TestConstructorsRejectNil(t *testing.T) {
	assert.Panics(t, func() { NewCall(nil) })
	assert.Panics(t, func() { NewCall(NewName("f"), nil) })
	assert.Panics(t, func() { NewPair(nil, Int(1)) })
	assert.Panics(t, func() { Keyword("x", nil) })
	assert.Panics(t, func() { NewBlock(nil) })
	assert.Panics(t, func() { NewPairList(nil) })
}

func TestConstantOf(t *testing.T) {
	tests := []struct {
		in       any
		expected Node
	}{
		{true, Bool(true)},
		{3, Int(3)},
		{int32(-3), Int(-3)},
		{uint8(200), Int(200)},
		{float32(0.5), Float(0.5)},
		{2.5, Float(2.5)},
		{complex64(1 + 1i), Complex(1 + 1i)},
		{"x", String("x")},
	}

	for _, tt := range tests {
		c, err := ConstantOf(tt.in)
		require.NoError(t, err)
		if diff := cmp.Diff(tt.expected, Node(c), nodeEqual); diff != "" {
			t.Errorf("ConstantOf(%#v) mismatch (-want +got):\n%s", tt.in, diff)
		}
	}

	_, err := ConstantOf(uint64(math.MaxUint64))
	assert.True(t, stderrors.Is(err, errors.ErrUnsupportedConstant))

	_, err = ConstantOf([]int{1})
	assert.True(t, stderrors.Is(err, errors.ErrUnsupportedConstant))
}

package ast

import (
	stderrors "errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nemesis/internal/errors"
)

func TestAssign(t *testing.T) {
	got := Assign(NewName("x"), Int(0))
	want := NewCall(NewName("<-"), NewName("x"), Int(0))
	if diff := cmp.Diff(want, got, nodeEqual); diff != "" {
		t.Errorf("Assign mismatch (-want +got):\n%s", diff)
	}
}

func TestSumAndProduct(t *testing.T) {
	x, y, z := NewName("x"), NewName("y"), NewName("z")

	assert.True(t, Equal(Int(0), Sum()))
	assert.True(t, Equal(Int(1), Product()))

	// A single term is returned as is
	assert.Same(t, x, Sum(x))
	assert.Same(t, y, Product(y))

	want := NewCall(NewName("+"), NewCall(NewName("+"), x, y), z)
	if diff := cmp.Diff(Node(want), Sum(x, y, z), nodeEqual); diff != "" {
		t.Errorf("Sum mismatch (-want +got):\n%s", diff)
	}

	out, err := Render(Product(x, y, z), 0)
	require.NoError(t, err)
	assert.Equal(t, "x * y * z", out)
}

func TestOperatorReduce(t *testing.T) {
	and := NewName("&")
	a, b := NewName("a"), NewName("b")

	_, err := OperatorReduce(and, nil, nil)
	assert.True(t, stderrors.Is(err, errors.ErrEmptyReduce))

	n, err := OperatorReduce(and, nil, Bool(true))
	require.NoError(t, err)
	assert.True(t, Equal(Bool(true), n))

	// The default is ignored once there is an element
	n, err = OperatorReduce(and, []Node{a}, Bool(true))
	require.NoError(t, err)
	assert.Same(t, a, n)

	n, err = OperatorReduce(and, []Node{a, b}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Call(Name('&'), [Name('a'), Name('b')])", n.String())
}

func TestCastToConstant(t *testing.T) {
	c := Float(1)
	got, err := CastToConstant(c)
	require.NoError(t, err)
	assert.Same(t, c, got)

	got, err = CastToConstant(1)
	require.NoError(t, err)
	assert.True(t, Equal(Int(1), got))
}

func TestSeqToList(t *testing.T) {
	l, err := SeqToList([]any{1, 2.5, "a", Bool(true)})
	require.NoError(t, err)
	out, err := Render(l, 0)
	require.NoError(t, err)
	assert.Equal(t, "list(1, 2.5, 'a', TRUE)", out)

	l, err = SeqToList(nil)
	require.NoError(t, err)
	assert.Equal(t, "Call(Name('list'), [])", l.String())

	_, err = SeqToList([]any{struct{}{}})
	assert.True(t, stderrors.Is(err, errors.ErrUnsupportedConstant))
}

func TestSeqToVector(t *testing.T) {
	tests := []struct {
		seq      []any
		expected string
	}{
		{[]any{}, "c()"},
		{[]any{"region"}, "'region'"},
		{[]any{1.5}, "1.5"},
		{[]any{"size", "region"}, "c('size', 'region')"},
		{[]any{1, 2, 3}, "c(1, 2, 3)"},
	}

	for _, tt := range tests {
		v, err := SeqToVector(tt.seq)
		require.NoError(t, err)
		out, err := Render(v, 0)
		require.NoError(t, err)
		assert.Equal(t, tt.expected, out)
	}

	_, err := SeqToVector([]any{map[string]int{}})
	assert.Error(t, err)
}

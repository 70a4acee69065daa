package grammar_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nemesis/grammar"
)

func TestBinaryChain(t *testing.T) {
	expr, err := grammar.Parse("<expr>", "x + y * -z")
	require.NoError(t, err)

	assert.Equal(t, "x", *expr.Head.Postfix.Primary.Ident)
	require.Len(t, expr.Tail, 2)
	assert.Equal(t, "+", expr.Tail[0].Op)
	assert.Equal(t, "*", expr.Tail[1].Op)
	assert.Equal(t, []string{"-"}, expr.Tail[1].Right.Unary)
	assert.Equal(t, "z", *expr.Tail[1].Right.Postfix.Primary.Ident)
}

func TestCallArguments(t *testing.T) {
	expr, err := grammar.Parse("<expr>", "foo(1, bar = 'x', `my arg` = y)")
	require.NoError(t, err)

	postfix := expr.Head.Postfix
	assert.Equal(t, "foo", *postfix.Primary.Ident)
	require.Len(t, postfix.Suffixes, 1)

	call := postfix.Suffixes[0].Call
	require.NotNil(t, call)
	slots := grammar.Slots(call.First, call.Rest)
	require.Len(t, slots, 3)
	assert.Nil(t, slots[0].Name)
	assert.Equal(t, "1", *slots[0].Value.Head.Postfix.Primary.Number)
	assert.Equal(t, "bar", *slots[1].Name)
	assert.Equal(t, "'x'", *slots[1].Value.Head.Postfix.Primary.String)
	assert.Equal(t, "`my arg`", *slots[2].Name)
}

func TestEmptyCall(t *testing.T) {
	expr, err := grammar.Parse("<expr>", "foo()")
	require.NoError(t, err)

	call := expr.Head.Postfix.Suffixes[0].Call
	require.NotNil(t, call)
	assert.Empty(t, grammar.Slots(call.First, call.Rest))
}

func TestEmptySlots(t *testing.T) {
	expr, err := grammar.Parse("<expr>", "x[, 1]")
	require.NoError(t, err)

	index := expr.Head.Postfix.Suffixes[0].Index
	require.NotNil(t, index)
	slots := grammar.Slots(index.First, index.Rest)
	require.Len(t, slots, 2)
	assert.Nil(t, slots[0])
	assert.NotNil(t, slots[1])
}

func TestIndexSuffixes(t *testing.T) {
	expr, err := grammar.Parse("<expr>", "x[[1]][y[2]]")
	require.NoError(t, err)

	suffixes := expr.Head.Postfix.Suffixes
	require.Len(t, suffixes, 2)
	assert.NotNil(t, suffixes[0].Double)
	assert.NotNil(t, suffixes[1].Index)
}

func TestControlFlow(t *testing.T) {
	tests := []string{
		"function(x, y = 2) x + y",
		"if (x > 1) 'big' else 'small'",
		"for (i in 1:10) print(i)",
		"while (TRUE) break",
		"repeat { x <- x + 1; next }",
		"{ a\n b }",
		"stats::median(x)",
		"df$col",
		"obj@slot",
	}

	for _, src := range tests {
		_, err := grammar.Parse("<expr>", src)
		assert.NoError(t, err, src)
	}
}

func TestSyntaxErrors(t *testing.T) {
	tests := []string{
		"",
		"foo(",
		"x; y",
		"x y",
		"1 +",
		"x[[1]",
		"'unterminated",
	}

	for _, src := range tests {
		_, err := grammar.Parse("<expr>", src)
		assert.Error(t, err, src)
	}
}

func TestSpan(t *testing.T) {
	src := "y <- function(x)  x + 1  # add one"
	expr, err := grammar.Parse("<expr>", src)
	require.NoError(t, err)

	primary := expr.Tail[0].Right.Postfix.Primary
	require.NotNil(t, primary.Function)
	assert.Equal(t, "function(x)  x + 1", grammar.Span(src, primary.Tokens))
}

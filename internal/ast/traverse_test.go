package ast

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nemesis/internal/errors"
)

func traversalFixture() Node {
	return NewBlock(
		NewCall(NewName("foo"), NewName("x"), Keyword("y", Int(1))),
		NewName("z"),
	)
}

func collect(root Node, order Order) []string {
	var out []string
	for n := range Traverse(root, order) {
		out = append(out, n.String())
	}
	return out
}

func TestTraverseBreadthFirst(t *testing.T) {
	assert.Equal(t, []string{
		"Block([Call(Name('foo'), [Name('x'), (Name('y'), Constant(1))]), Name('z')])",
		"Call(Name('foo'), [Name('x'), (Name('y'), Constant(1))])",
		"Name('z')",
		"Name('foo')",
		"Name('x')",
		"Name('y')",
		"Constant(1)",
	}, collect(traversalFixture(), BreadthFirst))
}

func TestTraverseDepthFirst(t *testing.T) {
	assert.Equal(t, []string{
		"Block([Call(Name('foo'), [Name('x'), (Name('y'), Constant(1))]), Name('z')])",
		"Name('z')",
		"Call(Name('foo'), [Name('x'), (Name('y'), Constant(1))])",
		"Constant(1)",
		"Name('y')",
		"Name('x')",
		"Name('foo')",
	}, collect(traversalFixture(), DepthFirst))
}

func TestTraverseLeaves(t *testing.T) {
	for _, leaf := range []Node{
		Int(1),
		NewName("x"),
		NewComment("c"),
		NewRaw("r"),
		NewPairList(NewName("a"), Keyword("b", Int(0))),
	} {
		assert.Equal(t, []string{leaf.String()}, collect(leaf, BreadthFirst))
	}
	assert.Empty(t, collect(nil, BreadthFirst))
}

func TestTraverseEarlyExitAndRestart(t *testing.T) {
	seq := Traverse(traversalFixture(), BreadthFirst)

	count := 0
	for range seq {
		count++
		if count == 2 {
			break
		}
	}
	assert.Equal(t, 2, count)

	// The sequence can be walked again from the start
	total := 0
	for range seq {
		total++
	}
	assert.Equal(t, 7, total)
}

func TestFindLibraries(t *testing.T) {
	inner := WithLibraries(NewName("read.xlsx"), "xlsx")
	call := WithLibraries(NewCall(inner, String("in.xlsx"), Int(1)), "DBI", "RSQLite")
	root := WithLibraries(NewBlock(call, WithLibraries(NewRaw("x"), "xlsx")), "NemesisOutliers")

	libs, err := FindLibraries(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"NemesisOutliers", "DBI", "RSQLite", "xlsx", "xlsx"}, libs)

	libs, err = FindLibraries(NewName("x"))
	require.NoError(t, err)
	assert.Empty(t, libs)
}

func TestFindLibrariesSkipsPairListEntries(t *testing.T) {
	params := NewPairList(Keyword("input", WithLibraries(NewName("db"), "DBI")))
	libs, err := FindLibraries(NewBlock(params))
	require.NoError(t, err)
	assert.Empty(t, libs)
}

func TestFindLibrariesInvalidMetadata(t *testing.T) {
	bad := WithMetadata(NewName("x"), Metadata{LibrariesKey: "xlsx"})
	_, err := FindLibraries(NewBlock(NewName("y"), bad))
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrInvalidLibraryMetadata))
}

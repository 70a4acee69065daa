package names

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsReserved(t *testing.T) {
	assert.True(t, IsReserved("if"))
	assert.True(t, IsReserved("NA"))
	assert.True(t, IsReserved("NA_character_"))
	assert.True(t, IsReserved("..."))
	assert.True(t, IsReserved("..2"))
	assert.True(t, IsReserved("..10"))
	assert.False(t, IsReserved("foo"))
	assert.False(t, IsReserved("..2a"))
	assert.False(t, IsReserved("..2\n"))
	assert.False(t, IsReserved("If"))
}

func TestIsSyntacticName(t *testing.T) {
	tests := []struct {
		name     string
		expected bool
	}{
		{"foo", true},
		{"foo.bar", true},
		{"foo_bar2", true},
		{".", true},
		{"...", true},
		{".hidden", true},
		{"._x", true},
		{"if", true},
		{"foo bar", false},
		{"2foo", false},
		{"_foo", false},
		{"foo-bar", false},
		{"", false},
		{"foo\n", false},
		{"café", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, IsSyntacticName(tt.name), "IsSyntacticName(%q)", tt.name)
	}
}

func TestIsName(t *testing.T) {
	assert.True(t, IsName("foo"))
	assert.True(t, IsName("foo.bar"))
	assert.True(t, IsName("."))
	assert.False(t, IsName("foo bar"))
	assert.False(t, IsName("..."))
	assert.False(t, IsName("..1"))
	assert.False(t, IsName("if"))
	assert.False(t, IsName("TRUE"))
}

func TestReservedReturnsCopy(t *testing.T) {
	r := Reserved()
	assert.Contains(t, r, "function")
	assert.NotContains(t, r, "...")
	r[0] = "changed"
	assert.True(t, IsReserved("if"))
	assert.Equal(t, "if", Reserved()[0])
}

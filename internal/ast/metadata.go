package ast

import "maps"

// Metadata is free-form data attached to a node. It has no meaning in R;
// the printer and the traversal helpers look for the keys below.
type Metadata map[string]any

const (
	// HintKey holds a PrintHint controlling how densely a node is printed.
	HintKey = "print_hint"

	// LibrariesKey holds the []string of R packages a subtree needs.
	LibrariesKey = "libraries"
)

// PrintHint selects a layout for blocks and calls.
type PrintHint string

const (
	HintShort  PrintHint = "short"
	HintNormal PrintHint = "normal"
	HintLong   PrintHint = "long"
)

// Hint returns the print hint, defaulting to HintNormal for missing or
// unrecognised values. Plain strings are accepted.
func (m Metadata) Hint() PrintHint {
	var h PrintHint
	switch v := m[HintKey].(type) {
	case PrintHint:
		h = v
	case string:
		h = PrintHint(v)
	}
	switch h {
	case HintShort, HintLong:
		return h
	default:
		return HintNormal
	}
}

// Clone returns a shallow copy that is never nil.
func (m Metadata) Clone() Metadata {
	out := make(Metadata, len(m))
	maps.Copy(out, m)
	return out
}

// WithMetadata returns a copy of n with md merged over its metadata.
func WithMetadata[T Node](n T, md Metadata) T {
	merged := n.Meta().Clone()
	maps.Copy(merged, md)
	return n.withMeta(merged).(T)
}

// WithHint returns a copy of n carrying the print hint h.
func WithHint[T Node](n T, h PrintHint) T {
	return WithMetadata(n, Metadata{HintKey: h})
}

// WithLibraries returns a copy of n declaring the R packages it needs.
func WithLibraries[T Node](n T, libs ...string) T {
	return WithMetadata(n, Metadata{LibrariesKey: append([]string(nil), libs...)})
}

package errors

import (
	"fmt"
	"strings"
)

// Builder provides a fluent interface for creating errors with suggestions
type Builder struct {
	err CompilerError
}

// New creates a new error builder
func New(code, message string) *Builder {
	return &Builder{
		err: CompilerError{
			Level:   Error,
			Code:    code,
			Message: message,
		},
	}
}

// Newf is New with a formatted message
func Newf(code, format string, args ...any) *Builder {
	return New(code, fmt.Sprintf(format, args...))
}

// NewWarning creates a new warning builder
func NewWarning(code, message string) *Builder {
	b := New(code, message)
	b.err.Level = Warning
	return b
}

// At sets the source position of the error
func (b *Builder) At(pos Position) *Builder {
	b.err.Position = pos
	return b
}

// WithLength sets the length of the error span
func (b *Builder) WithLength(length int) *Builder {
	b.err.Length = length
	return b
}

// WithSuggestion adds a suggestion to the error
func (b *Builder) WithSuggestion(message string) *Builder {
	b.err.Suggestions = append(b.err.Suggestions, Suggestion{Message: message})
	return b
}

// WithReplacement adds a suggestion with replacement text
func (b *Builder) WithReplacement(message, replacement string) *Builder {
	b.err.Suggestions = append(b.err.Suggestions, Suggestion{
		Message:     message,
		Replacement: replacement,
	})
	return b
}

// WithNote adds a note to the error
func (b *Builder) WithNote(note string) *Builder {
	b.err.Notes = append(b.err.Notes, note)
	return b
}

// WithHelp adds help text to the error
func (b *Builder) WithHelp(help string) *Builder {
	b.err.HelpText = help
	return b
}

// Build returns the completed compiler error
func (b *Builder) Build() *CompilerError {
	err := b.err
	return &err
}

// Common constructors

// MalformedNode reports a node that breaks a rendering invariant.
func MalformedNode(node fmt.Stringer, reason string) *CompilerError {
	return Newf(ErrorMalformedNode, "malformed node %s: %s", node, reason).Build()
}

// UnknownNodeType reports a node the printer cannot dispatch on.
func UnknownNodeType(node any) *CompilerError {
	return Newf(ErrorUnknownNodeType, "unknown node type %T", node).
		WithNote("only Constant, Name, Call, PairList, Block, Comment and Raw nodes can be rendered").
		Build()
}

// InvalidName reports a string that cannot be used as an assignable R name.
func InvalidName(what, name string) *CompilerError {
	b := Newf(ErrorInvalidName, "%s '%s' is not a valid R name", what, name).
		WithLength(len(name))
	if name != "" && strings.ContainsAny(name, " -") {
		b = b.WithReplacement("R names cannot contain spaces or dashes",
			strings.NewReplacer(" ", "_", "-", "_").Replace(name))
	}
	return b.WithHelp("names start with a letter or a dot and contain letters, digits, '.' and '_'").Build()
}

// UnknownReference reports a reference to an undefined model object, with
// suggestions drawn from the defined names.
func UnknownReference(what, name string, defined []string) *CompilerError {
	b := Newf(ErrorUnknownReference, "undefined %s '%s'", what, name).
		WithLength(len(name))

	similar := findSimilarNames(name, defined)
	switch {
	case len(similar) == 1:
		b = b.WithSuggestion(fmt.Sprintf("did you mean '%s'?", similar[0]))
	case len(similar) > 1:
		b = b.WithSuggestion(fmt.Sprintf("did you mean one of: '%s'?", strings.Join(similar, "', '")))
	case len(defined) > 0:
		b = b.WithNote(fmt.Sprintf("defined: %s", strings.Join(defined, ", ")))
	}
	return b.Build()
}

// UnknownKind reports a model component kind missing from the registry.
func UnknownKind(kind string, known []string) *CompilerError {
	b := Newf(ErrorUnknownKind, "unknown component kind '%s'", kind)
	for _, s := range findSimilarNames(kind, known) {
		b = b.WithSuggestion(fmt.Sprintf("did you mean '%s'?", s))
	}
	return b.WithHelp("kinds: " + strings.Join(known, ", ")).Build()
}

// Helper functions for suggestions

func findSimilarNames(target string, candidates []string) []string {
	var similar []string

	for _, candidate := range candidates {
		if levenshteinDistance(target, candidate) <= 2 && len(candidate) > 2 {
			similar = append(similar, candidate)
		}
	}

	return similar
}

func levenshteinDistance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	matrix := make([][]int, len(a)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(b)+1)
	}

	for i := 0; i <= len(a); i++ {
		matrix[i][0] = i
	}
	for j := 0; j <= len(b); j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			cost := 0
			if a[i-1] != b[j-1] {
				cost = 1
			}

			matrix[i][j] = min3(
				matrix[i-1][j]+1,      // deletion
				matrix[i][j-1]+1,      // insertion
				matrix[i-1][j-1]+cost, // substitution
			)
		}
	}

	return matrix[len(a)][len(b)]
}

func min3(a, b, c int) int {
	if a < b {
		if a < c {
			return a
		}
		return c
	}
	if b < c {
		return b
	}
	return c
}

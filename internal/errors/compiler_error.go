package errors

import (
	"fmt"
	"strings"
)

// ErrorLevel represents the severity of an error
type ErrorLevel string

const (
	Error   ErrorLevel = "error"
	Warning ErrorLevel = "warning"
	Note    ErrorLevel = "note"
	Help    ErrorLevel = "help"
)

// Position is a location in a source text. Line and Column are 1-based;
// a zero Line means the error has no source location.
type Position struct {
	Filename string
	Offset   int
	Line     int
	Column   int
}

// IsValid reports whether the position points into a source text
func (p Position) IsValid() bool {
	return p.Line > 0
}

func (p Position) String() string {
	if p.Filename == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}

// CompilerError represents a structured error with suggestions and context
type CompilerError struct {
	Level       ErrorLevel
	Code        string       // Error code like E0001
	Message     string       // Primary error message
	Position    Position     // Location in source (optional)
	Length      int          // Length of the problematic region
	Suggestions []Suggestion // Suggested fixes
	Notes       []string     // Additional context notes
	HelpText    string       // Help text for the error
}

// Suggestion represents a suggested fix
type Suggestion struct {
	Message     string // Description of the suggestion
	Replacement string // Suggested replacement text (optional)
}

func (e *CompilerError) Error() string {
	var b strings.Builder
	if e.Position.IsValid() {
		b.WriteString(e.Position.String())
		b.WriteString(": ")
	}
	level := e.Level
	if level == "" {
		level = Error
	}
	b.WriteString(string(level))
	if e.Code != "" {
		fmt.Fprintf(&b, "[%s]", e.Code)
	}
	b.WriteString(": ")
	b.WriteString(e.Message)
	return b.String()
}

// Is matches errors by code, so the sentinels below work with errors.Is.
func (e *CompilerError) Is(target error) bool {
	t, ok := target.(*CompilerError)
	if !ok || t.Code == "" {
		return false
	}
	return t.Code == e.Code
}

// Sentinels for errors.Is checks. They are never returned directly.
var (
	ErrMalformedNode          = &CompilerError{Level: Error, Code: ErrorMalformedNode, Message: "malformed node"}
	ErrUnknownNodeType        = &CompilerError{Level: Error, Code: ErrorUnknownNodeType, Message: "unknown node type"}
	ErrEmptyReduce            = &CompilerError{Level: Error, Code: ErrorEmptyReduce, Message: "empty list and no default value"}
	ErrInvalidLibraryMetadata = &CompilerError{Level: Error, Code: ErrorInvalidLibraryMetadata, Message: "invalid library metadata"}
	ErrUnsupportedConstant    = &CompilerError{Level: Error, Code: ErrorUnsupportedConstant, Message: "unsupported constant"}
	ErrSyntax                 = &CompilerError{Level: Error, Code: ErrorSyntax, Message: "syntax error"}
)

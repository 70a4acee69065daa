// Package names validates R identifiers.
//
// See https://cran.r-project.org/doc/manuals/r-release/R-lang.html#Reserved-words
package names

import (
	"regexp"
	"slices"
)

var keywords = []string{
	"if", "else", "repeat", "while", "function", "for", "in", "next",
	"break", "TRUE", "FALSE", "NULL", "Inf", "NaN", "NA",
	"NA_integer_", "NA_real_", "NA_complex_", "NA_character_",
}

var (
	syntacticPattern = regexp.MustCompile(`^([a-zA-Z]|[.][a-zA-Z_.]?)[.\w]*$`)
	dotDotPattern    = regexp.MustCompile(`^\.\.\d+$`)
)

// Reserved returns the reserved keywords of R, excluding "..." and the
// "..1", "..2" family.
func Reserved() []string {
	return slices.Clone(keywords)
}

// IsReserved reports whether s is a reserved word in R.
func IsReserved(s string) bool {
	return slices.Contains(keywords, s) || s == "..." || dotDotPattern.MatchString(s)
}

// IsSyntacticName reports whether s is a syntactically valid R name.
// Reserved words are syntactic names.
func IsSyntacticName(s string) bool {
	return syntacticPattern.MatchString(s)
}

// IsName reports whether s is an assignable R name.
func IsName(s string) bool {
	return IsSyntacticName(s) && !IsReserved(s)
}

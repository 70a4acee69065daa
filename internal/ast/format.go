package ast

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// FormatNumber renders f as an R numeric literal. NaN prints as NA.
func FormatNumber(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "Inf"
	case math.IsInf(f, -1):
		return "-Inf"
	case math.IsNaN(f):
		// Missing data is NaN on the Go side, as in pandas.
		return "NA"
	}
	return formatFloat(f)
}

// ParseFloat reads an R numeric value. NA and NaN both read as NaN.
func ParseFloat(s string) (float64, error) {
	switch s = strings.TrimSpace(s); s {
	case "Inf":
		return math.Inf(1), nil
	case "-Inf":
		return math.Inf(-1), nil
	case "NA", "NaN":
		return math.NaN(), nil
	}
	// strconv also reads Go spellings such as inf and nan.
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, fmt.Errorf("'%s' is not a number", s)
	}
	return f, nil
}

// formatFloat returns the shortest decimal that reads back as f. Integral
// values keep a ".0" suffix; exponent form is used outside [1e-4, 1e16).
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'e', -1, 64)
	exp, err := strconv.Atoi(s[strings.IndexByte(s, 'e')+1:])
	if err == nil && (exp < -4 || exp >= 16) {
		return s
	}
	s = strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// quote renders s as an ASCII string literal. Single quotes are used unless
// s contains a single quote and no double quote.
func quote(s string) string {
	q := '\''
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		q = '"'
	}

	var b strings.Builder
	b.WriteRune(q)
	for _, r := range s {
		switch {
		case r == q || r == '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		case r < 0x20 || r == 0x7f:
			fmt.Fprintf(&b, `\x%02x`, r)
		case r < utf8.RuneSelf:
			b.WriteRune(r)
		case r <= 0xffff:
			fmt.Fprintf(&b, `\u%04x`, r)
		default:
			fmt.Fprintf(&b, `\U%08x`, r)
		}
	}
	b.WriteRune(q)
	return b.String()
}

const commentWidth = 70

var chunkPattern = regexp.MustCompile(`\s+|\S+`)

// wrapComment fills text into "# " lines at most commentWidth columns wide.
// Continuation lines are indented. Words longer than a line are never
// broken. Whitespace inside a line is kept; whitespace at a break is
// dropped.
func wrapComment(text string, indent int) string {
	first := "# "
	rest := strings.Repeat(" ", indent) + "# "

	var chunks []string
	for _, c := range chunkPattern.FindAllString(expandTabs(text), -1) {
		if isSpace(c) {
			c = strings.Repeat(" ", utf8.RuneCountInString(c))
		}
		chunks = append(chunks, c)
	}

	var lines []string
	for len(chunks) > 0 {
		prefix := first
		if len(lines) > 0 {
			prefix = rest
			if isSpace(chunks[0]) {
				chunks = chunks[1:]
			}
		}
		width := commentWidth - utf8.RuneCountInString(prefix)

		var line []string
		n := 0
		for len(chunks) > 0 {
			l := utf8.RuneCountInString(chunks[0])
			if n+l > width {
				break
			}
			line = append(line, chunks[0])
			n += l
			chunks = chunks[1:]
		}
		if len(line) == 0 && len(chunks) > 0 {
			line = append(line, chunks[0])
			chunks = chunks[1:]
		}
		if len(line) > 0 && isSpace(line[len(line)-1]) {
			line = line[:len(line)-1]
		}
		if len(line) > 0 {
			lines = append(lines, prefix+strings.Join(line, ""))
		}
	}
	return strings.Join(lines, "\n")
}

func isSpace(chunk string) bool {
	return strings.TrimSpace(chunk) == ""
}

func expandTabs(s string) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	var b strings.Builder
	col := 0
	for _, r := range s {
		switch r {
		case '\t':
			n := 8 - col%8
			b.WriteString(strings.Repeat(" ", n))
			col += n
		case '\n', '\r':
			b.WriteRune(r)
			col = 0
		default:
			b.WriteRune(r)
			col++
		}
	}
	return b.String()
}

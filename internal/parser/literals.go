package parser

import (
	stderrors "errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"nemesis/internal/names"
)

// parseReal decodes a decimal or hexadecimal numeric literal without its
// suffix. Literals too large for a float64 are infinite, as in R.
func parseReal(text string) (float64, error) {
	if isHex(text) {
		v, err := strconv.ParseUint(text[2:], 16, 64)
		if err != nil {
			return 0, fmt.Errorf("hexadecimal literal '%s' out of range", text)
		}
		return float64(v), nil
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil && !stderrors.Is(err, strconv.ErrRange) {
		return 0, fmt.Errorf("malformed number '%s'", text)
	}
	return f, nil
}

// parseInteger decodes the digits of an "L" literal. Values that are not
// whole or do not fit an R integer fall back to doubles, as R does.
func parseInteger(text string) (v int64, whole bool, f float64, err error) {
	f, err = parseReal(text)
	if err != nil {
		return 0, false, 0, err
	}
	if f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, false, f, nil
	}
	return int64(f), true, f, nil
}

func isHex(text string) bool {
	return len(text) > 2 && text[0] == '0' && (text[1] == 'x' || text[1] == 'X')
}

// unquoteString decodes a single- or double-quoted R string literal.
func unquoteString(lit string) (string, error) {
	if len(lit) < 2 {
		return "", fmt.Errorf("malformed string %s", lit)
	}
	body := lit[1 : len(lit)-1]
	if !strings.ContainsRune(body, '\\') {
		return body, nil
	}

	var b strings.Builder
	for i := 0; i < len(body); {
		c := body[i]
		if c != '\\' {
			b.WriteByte(c)
			i++
			continue
		}
		if i+1 >= len(body) {
			return "", fmt.Errorf("string ends with a lone backslash")
		}
		e := body[i+1]
		i += 2
		switch e {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'a':
			b.WriteByte('\a')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'v':
			b.WriteByte('\v')
		case '\\', '"', '\'', '`', ' ', '\n':
			b.WriteByte(e)
		case '0', '1', '2', '3', '4', '5', '6', '7':
			digits := prefix(body[i-1:], 3, isOctal)
			v, _ := strconv.ParseUint(digits, 8, 32)
			if v == 0 {
				return "", fmt.Errorf("nul character not allowed")
			}
			b.WriteRune(rune(v))
			i += len(digits) - 1
		case 'x':
			digits := prefix(body[i:], 2, isHexDigit)
			if digits == "" {
				return "", fmt.Errorf("'\\x' used without hex digits")
			}
			v, _ := strconv.ParseUint(digits, 16, 32)
			if v == 0 {
				return "", fmt.Errorf("nul character not allowed")
			}
			b.WriteRune(rune(v))
			i += len(digits)
		case 'u', 'U':
			r, n, err := unicodeEscape(body[i:], e)
			if err != nil {
				return "", err
			}
			b.WriteRune(r)
			i += n
		default:
			return "", fmt.Errorf("'\\%c' is an unrecognized escape", e)
		}
	}
	return b.String(), nil
}

// unicodeEscape reads the code point after \u (up to 4 hex digits) or \U
// (up to 8), with or without braces. It returns the rune and the number of
// bytes consumed.
func unicodeEscape(s string, kind byte) (rune, int, error) {
	width := 4
	if kind == 'U' {
		width = 8
	}

	braced := strings.HasPrefix(s, "{")
	start := 0
	if braced {
		start = 1
	}
	digits := prefix(s[start:], width, isHexDigit)
	if digits == "" {
		return 0, 0, fmt.Errorf("'\\%c' used without hex digits", kind)
	}
	n := start + len(digits)
	if braced {
		if n >= len(s) || s[n] != '}' {
			return 0, 0, fmt.Errorf("invalid \\%c{xxxx} sequence", kind)
		}
		n++
	}

	v, _ := strconv.ParseUint(digits, 16, 32)
	r := rune(v)
	if v == 0 || !utf8.ValidRune(r) {
		return 0, 0, fmt.Errorf("invalid code point \\%c%s", kind, digits)
	}
	return r, n, nil
}

func prefix(s string, limit int, accept func(byte) bool) string {
	n := 0
	for n < len(s) && n < limit && accept(s[n]) {
		n++
	}
	return s[:n]
}

func isOctal(c byte) bool {
	return c >= '0' && c <= '7'
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// unquoteName strips the backticks of a quoted symbol.
func unquoteName(text string) string {
	if len(text) >= 2 && text[0] == '`' && text[len(text)-1] == '`' {
		return text[1 : len(text)-1]
	}
	return text
}

// isPrintableName reports whether name can be written back without quotes.
func isPrintableName(name string) bool {
	return names.IsName(name)
}

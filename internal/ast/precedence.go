package ast

import "strings"

type opKey struct {
	symbol string
	arity  int
}

// Binary and unary operators with precedence, highest binds tightest.
//
// Reference: https://stat.ethz.ch/R-manual/R-patched/library/base/html/Syntax.html
var opPrecedence = map[opKey]int{
	{"^", 2}: 14,
	{"-", 1}: 13, {"+", 1}: 13,
	{":", 2}:  12,
	{"%%", 2}: 11, // any special operator, including %% and %/%
	{"*", 2}: 10, {"/", 2}: 10,
	{"+", 2}: 9, {"-", 2}: 9,
	{"<", 2}: 8, {">", 2}: 8, {"<=", 2}: 8, {">=", 2}: 8,
	{"==", 2}: 8, {"!=", 2}: 8,
	{"!", 1}: 7,
	{"&", 2}: 6, {"&&", 2}: 6,
	{"|", 2}: 5, {"||", 2}: 5,
	{"~", 2}: 4, {"~", 1}: 4,
	{"->", 2}: 3, {"->>", 2}: 3,
	{"<-", 2}: 2, {"<<-", 2}: 2,
	{"=", 2}: 1,
	{"?", 1}: 0, {"?", 2}: 0,
}

var operatorSymbols = func() map[string]bool {
	syms := make(map[string]bool, len(opPrecedence))
	for k := range opPrecedence {
		syms[k.symbol] = true
	}
	return syms
}()

// Precedence returns the precedence of symbol applied to arity operands.
// Any %op% is a binary operator at the level of %%.
func Precedence(symbol string, arity int) (int, bool) {
	if p, ok := opPrecedence[opKey{symbol, arity}]; ok {
		return p, true
	}
	if arity == 2 && IsSpecialOperator(symbol) {
		return opPrecedence[opKey{"%%", 2}], true
	}
	return 0, false
}

// IsOperator reports whether symbol is an operator at some arity.
func IsOperator(symbol string) bool {
	return operatorSymbols[symbol] || IsSpecialOperator(symbol)
}

// IsSpecialOperator reports whether symbol has the %op% form.
func IsSpecialOperator(symbol string) bool {
	return len(symbol) >= 2 && strings.HasPrefix(symbol, "%") && strings.HasSuffix(symbol, "%")
}

// RightAssociative reports whether a chain of the binary operator symbol
// groups from the right.
func RightAssociative(symbol string) bool {
	switch symbol {
	case "^", "<-", "<<-", "=":
		return true
	}
	return false
}

// operatorCall returns the precedence of c when it prints as an operator.
func operatorCall(n Node) (int, bool) {
	c, ok := n.(*Call)
	if !ok {
		return 0, false
	}
	fn, ok := c.Fn.(*Name)
	if !ok {
		return 0, false
	}
	return Precedence(fn.Value, len(c.Args))
}

package ast

import "nemesis/internal/errors"

// Convenience macros for building common R constructs.

// Assign builds `target <- value`.
func Assign(target, value Node) *Call {
	return NewCall(NewName("<-"), target, value)
}

// Sum adds any number of terms. No terms gives 0 and one term is returned
// as is.
func Sum(terms ...Node) Node {
	n, _ := OperatorReduce(NewName("+"), terms, Int(0))
	return n
}

// Product multiplies any number of factors. No factors gives 1.
func Product(factors ...Node) Node {
	n, _ := OperatorReduce(NewName("*"), factors, Int(1))
	return n
}

// OperatorReduce folds args with the binary operator op, grouping to the
// left. An empty list yields def, or ErrEmptyReduce when def is nil. A
// single argument is returned unwrapped.
func OperatorReduce(op Node, args []Node, def Node) (Node, error) {
	switch len(args) {
	case 0:
		if def == nil {
			return nil, errors.New(errors.ErrorEmptyReduce, "empty list and no default value").Build()
		}
		return def, nil
	case 1:
		return args[0], nil
	}
	acc := args[0]
	for _, a := range args[1:] {
		acc = NewCall(op, acc, a)
	}
	return acc, nil
}

// CastToConstant returns v unchanged when it is already a Constant and
// wraps it otherwise.
func CastToConstant(v any) (*Constant, error) {
	if c, ok := v.(*Constant); ok {
		return c, nil
	}
	return ConstantOf(v)
}

// SeqToList converts values to an R list call.
func SeqToList(seq []any) (*Call, error) {
	args, err := constantArgs(seq)
	if err != nil {
		return nil, err
	}
	return CallWithArgs(NewName("list"), args), nil
}

// SeqToVector converts values to an R vector. R does not distinguish a
// length-one vector from a scalar, so a single value is returned bare.
func SeqToVector(seq []any) (Node, error) {
	if len(seq) == 1 {
		c, err := CastToConstant(seq[0])
		if err != nil {
			return nil, err
		}
		return c, nil
	}
	args, err := constantArgs(seq)
	if err != nil {
		return nil, err
	}
	return CallWithArgs(NewName("c"), args), nil
}

func constantArgs(seq []any) ([]Arg, error) {
	args := make([]Arg, len(seq))
	for i, v := range seq {
		c, err := CastToConstant(v)
		if err != nil {
			return nil, err
		}
		args[i] = c
	}
	return args, nil
}

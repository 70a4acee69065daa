package ast

// Equal reports whether two trees have the same structure and payloads.
// Metadata is ignored. Constants compare equal only when their payloads
// share a Go type, so Int(1) and Float(1) differ and NaN never equals NaN.
func Equal(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch a := a.(type) {
	case *Constant:
		b, ok := b.(*Constant)
		return ok && constantEqual(a.Value, b.Value)
	case *Name:
		b, ok := b.(*Name)
		return ok && a.Value == b.Value
	case *Call:
		b, ok := b.(*Call)
		if !ok || !Equal(a.Fn, b.Fn) || len(a.Args) != len(b.Args) {
			return false
		}
		for i := range a.Args {
			if !argEqual(a.Args[i], b.Args[i]) {
				return false
			}
		}
		return true
	case *PairList:
		b, ok := b.(*PairList)
		if !ok || len(a.Params) != len(b.Params) {
			return false
		}
		for i := range a.Params {
			if !paramEqual(a.Params[i], b.Params[i]) {
				return false
			}
		}
		return true
	case *Block:
		b, ok := b.(*Block)
		if !ok || len(a.Body) != len(b.Body) {
			return false
		}
		for i := range a.Body {
			if !Equal(a.Body[i], b.Body[i]) {
				return false
			}
		}
		return true
	case *Comment:
		b, ok := b.(*Comment)
		return ok && a.Text == b.Text
	case *Raw:
		b, ok := b.(*Raw)
		return ok && a.Text == b.Text
	}
	return false
}

func constantEqual(a, b any) bool {
	switch a := a.(type) {
	case bool:
		b, ok := b.(bool)
		return ok && a == b
	case int64:
		b, ok := b.(int64)
		return ok && a == b
	case float64:
		b, ok := b.(float64)
		return ok && a == b
	case complex128:
		b, ok := b.(complex128)
		return ok && a == b
	case string:
		b, ok := b.(string)
		return ok && a == b
	}
	return false
}

func argEqual(a, b Arg) bool {
	switch a := a.(type) {
	case Pair:
		b, ok := b.(Pair)
		return ok && pairEqual(a, b)
	case Node:
		b, ok := b.(Node)
		return ok && Equal(a, b)
	}
	return false
}

func paramEqual(a, b Param) bool {
	switch a := a.(type) {
	case Pair:
		b, ok := b.(Pair)
		return ok && pairEqual(a, b)
	case *Name:
		b, ok := b.(*Name)
		return ok && Equal(a, b)
	}
	return false
}

func pairEqual(a, b Pair) bool {
	return Equal(a.Name, b.Name) && Equal(a.Value, b.Value)
}

package ast

import (
	"fmt"
	"iter"

	"nemesis/internal/errors"
)

// Order selects the visiting order of Traverse.
type Order int

const (
	BreadthFirst Order = iota
	DepthFirst
)

// Traverse yields every node reachable from root exactly once, root first.
// Breadth-first uses a queue. Depth-first uses a stack, so siblings come
// out last to first. The children of a call are its function followed by
// its arguments, a keyword argument contributing its name and then its
// value. The children of a block are its statements. Everything else,
// PairList included, is a leaf.
func Traverse(root Node, order Order) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		if root == nil {
			return
		}
		pending := []Node{root}
		for len(pending) > 0 {
			var n Node
			if order == DepthFirst {
				n = pending[len(pending)-1]
				pending = pending[:len(pending)-1]
			} else {
				n = pending[0]
				pending = pending[1:]
			}
			if !yield(n) {
				return
			}
			pending = append(pending, Children(n)...)
		}
	}
}

// Children returns the direct children of n in source order.
func Children(n Node) []Node {
	switch n := n.(type) {
	case *Block:
		return n.Body
	case *Call:
		children := []Node{n.Fn}
		for _, a := range n.Args {
			switch a := a.(type) {
			case Pair:
				children = append(children, a.Name, a.Value)
			case Node:
				children = append(children, a)
			}
		}
		return children
	}
	return nil
}

// FindLibraries collects the "libraries" metadata of every node under root
// in breadth-first order. Duplicates are kept.
func FindLibraries(root Node) ([]string, error) {
	var libs []string
	for n := range Traverse(root, BreadthFirst) {
		v, ok := n.Meta()[LibrariesKey]
		if !ok {
			continue
		}
		l, ok := v.([]string)
		if !ok {
			return nil, errors.New(errors.ErrorInvalidLibraryMetadata,
				fmt.Sprintf("libraries of %s must be a list of strings, got %T", n, v)).Build()
		}
		libs = append(libs, l...)
	}
	return libs, nil
}

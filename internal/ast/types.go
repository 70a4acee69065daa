package ast

// NodeType identifies the concrete variant of a Node.
type NodeType int

const (
	ILLEGAL NodeType = iota

	// The four kinds of R expressions
	CONSTANT
	NAME
	CALL
	PAIR_LIST

	// Other R nodes
	BLOCK
	COMMENT

	// Unparsed code, not part of R's grammar
	RAW
)

func (t NodeType) String() string {
	switch t {
	case CONSTANT:
		return "Constant"
	case NAME:
		return "Name"
	case CALL:
		return "Call"
	case PAIR_LIST:
		return "PairList"
	case BLOCK:
		return "Block"
	case COMMENT:
		return "Comment"
	case RAW:
		return "Raw"
	default:
		return "ILLEGAL"
	}
}

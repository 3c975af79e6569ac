// Package scene models OBS scene-collection documents as a generic tree
// of mappings, sequences, and leaf values, preserving the document's
// native key order.
package scene

// Kind discriminates the variants of a document node.
type Kind int

const (
	KindMapping Kind = iota
	KindSequence
	KindString
	KindNumber
	KindBool
	KindNull
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindMapping:
		return "mapping"
	case KindSequence:
		return "sequence"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindNull:
		return "null"
	default:
		return "unknown"
	}
}

// Entry is a single key/value pair of a mapping node.
type Entry struct {
	Key   string
	Value *Node
}

// Node is one node of a parsed document. A node is exactly one of:
// a mapping (Entries populated, native key order), a sequence (Items
// populated, index order), or a leaf (textual form only).
//
// Nodes are read-only after Parse; nothing in this package or its
// callers mutates a built tree.
type Node struct {
	Kind    Kind
	Entries []Entry
	Items   []*Node

	text string // leaf textual form
	raw  []byte // source bytes, used to coerce composite nodes to text
}

// IsLeaf reports whether the node is a string, number, bool, or null.
func (n *Node) IsLeaf() bool {
	return n.Kind != KindMapping && n.Kind != KindSequence
}

// Get returns the value of the first entry with the given key.
// It returns false when the node is not a mapping or the key is absent.
func (n *Node) Get(key string) (*Node, bool) {
	if n == nil || n.Kind != KindMapping {
		return nil, false
	}
	for _, entry := range n.Entries {
		if entry.Key == key {
			return entry.Value, true
		}
	}
	return nil, false
}

// Text returns the deterministic textual form of the node: the decoded
// value for string leaves, the source literal for numbers, bools, and
// null, and the raw source text for mappings and sequences.
func (n *Node) Text() string {
	if n.IsLeaf() {
		return n.text
	}
	return string(n.raw)
}

package compiler

import "strings"

// ---------------------------------------------------------------------------
// Parse nodes
// ---------------------------------------------------------------------------

// Node is an element of the parse stream. A leaf wraps one token; an
// interior node groups a contiguous run of nodes under a grammar rule name.
// Nodes live in an arena and refer to their children by index.
type Node struct {
	Rule     string // empty for leaves
	Token    Token  // the token of a leaf, the first token of an interior node
	Children []int
}

// IsLeaf reports whether the node wraps a single token.
func (n *Node) IsLeaf() bool {
	return n.Rule == ""
}

// String renders a leaf as its token and an interior node as its rule name.
func (n *Node) String() string {
	if n.IsLeaf() {
		return n.Token.String()
	}
	return n.Rule
}

// Dump renders the subtree rooted at index i, one node per line.
func Dump(arena []Node, i int) string {
	var sb strings.Builder
	dump(&sb, arena, i, 0)
	return sb.String()
}

func dump(sb *strings.Builder, arena []Node, i, depth int) {
	n := &arena[i]
	sb.WriteString(strings.Repeat("  ", depth))
	sb.WriteString(n.String())
	sb.WriteByte('\n')
	for _, c := range n.Children {
		dump(sb, arena, c, depth+1)
	}
}

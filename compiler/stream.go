package compiler

// ---------------------------------------------------------------------------
// Node stream with collapse and rollback
// ---------------------------------------------------------------------------

// stream is the parser's view of the input: a sequence of nodes with a
// cursor. Nodes before the cursor are kept in before; nodes after it are
// kept in after as a stack whose top is the next node. maxAfter[k] holds
// the largest arena index in after[:k+1], which lets a rollback find the
// nodes created by the failed attempt without scanning the whole input.
//
// The arena only grows during a parse attempt. Collapsing a range pushes a
// new interior node; rolling back truncates the arena and expands every
// node created since the checkpoint back into its children.
type stream struct {
	arena    []Node
	before   []int
	after    []int
	maxAfter []int
	eof      int
}

// newStream builds a stream over tokens, which must end with TokenEOF.
func newStream(tokens []Token) *stream {
	s := &stream{
		arena:    make([]Node, len(tokens), len(tokens)*2),
		before:   make([]int, 0, len(tokens)),
		after:    make([]int, 0, len(tokens)),
		maxAfter: make([]int, 0, len(tokens)),
		eof:      len(tokens) - 1,
	}
	for i, tok := range tokens {
		s.arena[i] = Node{Token: tok}
	}
	for i := len(tokens) - 1; i >= 0; i-- {
		s.pushAfter(i)
	}
	return s
}

func (s *stream) pushAfter(i int) {
	m := i
	if n := len(s.maxAfter); n > 0 && s.maxAfter[n-1] > m {
		m = s.maxAfter[n-1]
	}
	s.after = append(s.after, i)
	s.maxAfter = append(s.maxAfter, m)
}

func (s *stream) popAfter() int {
	n := len(s.after) - 1
	i := s.after[n]
	s.after = s.after[:n]
	s.maxAfter = s.maxAfter[:n]
	return i
}

// pos returns the number of nodes before the cursor.
func (s *stream) pos() int {
	return len(s.before)
}

// node returns the node at arena index i. The pointer is invalidated by the
// next collapse.
func (s *stream) node(i int) *Node {
	return &s.arena[i]
}

// next moves the cursor over one node and returns it. At the end of the
// input it keeps returning the EOF node.
func (s *stream) next() int {
	if len(s.after) == 0 {
		return s.eof
	}
	i := s.popAfter()
	s.before = append(s.before, i)
	return i
}

// prev moves the cursor back over one node and returns it.
func (s *stream) prev() int {
	n := len(s.before) - 1
	i := s.before[n]
	s.before = s.before[:n]
	s.pushAfter(i)
	return i
}

// peek returns the node k positions after the cursor without moving it.
// Negative k looks behind the cursor.
func (s *stream) peek(k int) int {
	if k < 0 {
		if j := len(s.before) + k; j >= 0 {
			return s.before[j]
		}
		return s.eof
	}
	if j := len(s.after) - 1 - k; j >= 0 {
		return s.after[j]
	}
	return s.eof
}

// seek moves the cursor to position p.
func (s *stream) seek(p int) {
	for len(s.before) < p && len(s.after) > 0 {
		s.next()
	}
	for len(s.before) > p {
		s.prev()
	}
}

// collapse replaces the nodes from position start up to the cursor with a
// new interior node and returns its index. The cursor ends up after the new
// node.
func (s *stream) collapse(start int, rule string) int {
	children := make([]int, len(s.before)-start)
	copy(children, s.before[start:])
	n := Node{Rule: rule, Children: children}
	if len(children) > 0 {
		n.Token = s.arena[children[0]].Token
	} else {
		n.Token = s.arena[s.peek(0)].Token
	}
	s.arena = append(s.arena, n)
	i := len(s.arena) - 1
	s.before = append(s.before[:start], i)
	return i
}

// streamMark is the stream part of a parser checkpoint.
type streamMark struct {
	pos   int
	arena int
}

func (s *stream) mark() streamMark {
	return streamMark{pos: len(s.before), arena: len(s.arena)}
}

// rollback restores the view recorded by m. Nodes collapsed since m are
// expanded back into their children and the cursor returns to m.pos. A
// parse attempt never collapses nodes before its own checkpoint, so only
// the region from m.pos onwards can differ.
func (s *stream) rollback(m streamMark) {
	s.seek(m.pos)
	region := append([]int(nil), s.before[m.pos:]...)
	for len(s.after) > 0 && s.maxAfter[len(s.maxAfter)-1] >= m.arena {
		region = append(region, s.popAfter())
	}
	region = s.expand(region, m.arena)
	s.before = s.before[:m.pos]
	for i := len(region) - 1; i >= 0; i-- {
		s.pushAfter(region[i])
	}
	s.arena = s.arena[:m.arena]
}

// expand replaces every node with index >= limit by its children,
// recursively.
func (s *stream) expand(nodes []int, limit int) []int {
	out := make([]int, 0, len(nodes))
	for _, i := range nodes {
		if i >= limit {
			out = append(out, s.expand(s.arena[i].Children, limit)...)
		} else {
			out = append(out, i)
		}
	}
	return out
}

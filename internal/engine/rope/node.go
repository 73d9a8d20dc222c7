package rope

import (
	"slices"
	"strings"
)

// Tree structure constants
const (
	// MinChildren is the minimum children per internal node (except root).
	MinChildren = 4

	// MaxChildren is the maximum children per internal node before splitting.
	MaxChildren = 8

	// MaxChunksPerLeaf is the maximum chunks in a leaf node.
	MaxChunksPerLeaf = 4
)

// Node represents a node in the rope B+ tree.
// Leaf nodes (height == 0) contain text chunks.
// Internal nodes (height > 0) contain child node references.
// All leaves of a tree sit at the same depth.
type Node struct {
	height  uint8
	summary TextSummary

	// Internal node fields (height > 0)
	children       []*Node
	childSummaries []TextSummary

	// Leaf node fields (height == 0)
	chunks []Chunk
}

func newLeafNode() *Node {
	return &Node{summary: TextSummary{}.Zero()}
}

func newLeafNodeWithChunks(chunks []Chunk) *Node {
	n := &Node{chunks: chunks, summary: TextSummary{}.Zero()}
	for _, c := range chunks {
		n.summary = n.summary.Add(c.summary)
	}
	return n
}

func newInternalNode(children []*Node) *Node {
	if len(children) == 0 {
		return newLeafNode()
	}

	summaries := make([]TextSummary, len(children))
	total := TextSummary{}.Zero()
	for i, child := range children {
		summaries[i] = child.summary
		total = total.Add(child.summary)
	}

	return &Node{
		height:         children[0].height + 1,
		summary:        total,
		children:       children,
		childSummaries: summaries,
	}
}

// IsLeaf returns true if this is a leaf node.
func (n *Node) IsLeaf() bool {
	return n.height == 0
}

// Len returns the byte length of text in this subtree.
func (n *Node) Len() ByteOffset {
	return n.summary.Bytes
}

// LineCount returns the number of lines in this subtree.
func (n *Node) LineCount() uint32 {
	return n.summary.Lines + 1
}

func (n *Node) underfull() bool {
	if n.IsLeaf() {
		return len(n.chunks) < MaxChunksPerLeaf/2
	}
	return len(n.children) < MinChildren
}

// groupChunks packs chunks into balanced leaves.
func groupChunks(chunks []Chunk) []*Node {
	if len(chunks) <= MaxChunksPerLeaf {
		return []*Node{newLeafNodeWithChunks(chunks)}
	}
	groups := (len(chunks) + MaxChunksPerLeaf - 1) / MaxChunksPerLeaf
	leaves := make([]*Node, 0, groups)
	for g := 0; g < groups; g++ {
		lo, hi := g*len(chunks)/groups, (g+1)*len(chunks)/groups
		leaves = append(leaves, newLeafNodeWithChunks(slices.Clone(chunks[lo:hi])))
	}
	return leaves
}

// groupChildren packs same-height nodes into balanced parents.
func groupChildren(nodes []*Node) []*Node {
	if len(nodes) <= MaxChildren {
		return []*Node{newInternalNode(nodes)}
	}
	groups := (len(nodes) + MaxChildren - 1) / MaxChildren
	parents := make([]*Node, 0, groups)
	for g := 0; g < groups; g++ {
		lo, hi := g*len(nodes)/groups, (g+1)*len(nodes)/groups
		parents = append(parents, newInternalNode(slices.Clone(nodes[lo:hi])))
	}
	return parents
}

// buildNodeFromChildren stacks parents over same-height nodes until one root remains.
func buildNodeFromChildren(nodes []*Node) *Node {
	if len(nodes) == 0 {
		return newLeafNode()
	}
	for len(nodes) > 1 {
		nodes = groupChildren(nodes)
	}
	return nodes[0]
}

// insert returns the nodes replacing n after inserting text at the local
// byte offset at. The result holds one node, or several of n's height when
// n overflowed.
func (n *Node) insert(at ByteOffset, text string) []*Node {
	if n.IsLeaf() {
		if len(n.chunks) == 0 {
			return groupChunks(splitIntoChunks(text))
		}
		i, local := n.findChunk(at)
		c := n.chunks[i]
		repl := splitIntoChunks(c.data[:local] + text + c.data[local:])

		chunks := make([]Chunk, 0, len(n.chunks)-1+len(repl))
		chunks = append(chunks, n.chunks[:i]...)
		chunks = append(chunks, repl...)
		chunks = append(chunks, n.chunks[i+1:]...)
		return groupChunks(chunks)
	}

	i, local := n.findChildByOffset(at)
	repl := n.children[i].insert(local, text)

	children := make([]*Node, 0, len(n.children)-1+len(repl))
	children = append(children, n.children[:i]...)
	children = append(children, repl...)
	children = append(children, n.children[i+1:]...)
	return groupChildren(children)
}

// remove returns n without the local byte range [start, end), or nil when
// nothing is left. Untouched subtrees are shared with n.
func (n *Node) remove(start, end ByteOffset) *Node {
	if n.IsLeaf() {
		chunks := make([]Chunk, 0, len(n.chunks))
		var acc ByteOffset
		for _, c := range n.chunks {
			cs, ce := acc, acc+ByteOffset(c.Len())
			acc = ce
			if ce <= start || cs >= end {
				chunks = append(chunks, c)
				continue
			}
			var keep string
			if start > cs {
				keep = c.data[:start-cs]
			}
			if end < ce {
				keep += c.data[end-cs:]
			}
			if keep != "" {
				chunks = append(chunks, NewChunk(keep))
			}
		}
		chunks = mergeSmallChunks(chunks)
		if len(chunks) == 0 {
			return nil
		}
		return newLeafNodeWithChunks(chunks)
	}

	children := make([]*Node, 0, len(n.children))
	var acc ByteOffset
	for i, child := range n.children {
		cs, ce := acc, acc+n.childSummaries[i].Bytes
		acc = ce
		switch {
		case ce <= start || cs >= end:
			children = append(children, child)
		case start <= cs && ce <= end:
			// fully covered
		default:
			lo := max(start, cs) - cs
			hi := min(end, ce) - cs
			if r := child.remove(lo, hi); r != nil {
				children = append(children, r)
			}
		}
	}
	if len(children) == 0 {
		return nil
	}
	return newInternalNode(rebalance(children))
}

// rebalance merges underfull siblings with a neighbour.
func rebalance(children []*Node) []*Node {
	out := make([]*Node, 0, len(children))
	for _, c := range children {
		if k := len(out); k > 0 && (out[k-1].underfull() || c.underfull()) {
			merged := mergeNodes(out[k-1], c)
			out = append(out[:k-1], merged...)
			continue
		}
		out = append(out, c)
	}
	return out
}

// mergeNodes combines two same-height siblings into one or two nodes.
func mergeNodes(left, right *Node) []*Node {
	if left.IsLeaf() {
		chunks := make([]Chunk, 0, len(left.chunks)+len(right.chunks))
		chunks = append(chunks, left.chunks...)
		chunks = append(chunks, right.chunks...)
		return groupChunks(mergeSmallChunks(chunks))
	}
	children := make([]*Node, 0, len(left.children)+len(right.children))
	children = append(children, left.children...)
	children = append(children, right.children...)
	// left's last and right's first child are now siblings.
	return groupChildren(rebalance(children))
}

// findChunk returns the chunk holding byte offset at and the offset within it.
// A boundary offset belongs to the chunk it ends.
func (n *Node) findChunk(at ByteOffset) (int, int) {
	var acc ByteOffset
	for i, c := range n.chunks {
		l := ByteOffset(c.Len())
		if at <= acc+l {
			return i, int(at - acc)
		}
		acc += l
	}
	last := len(n.chunks) - 1
	return last, n.chunks[last].Len()
}

// findChildByOffset returns the child holding byte offset at and the offset within it.
func (n *Node) findChildByOffset(at ByteOffset) (int, ByteOffset) {
	var acc ByteOffset
	for i, s := range n.childSummaries {
		if at <= acc+s.Bytes {
			return i, at - acc
		}
		acc += s.Bytes
	}
	last := len(n.children) - 1
	return last, n.childSummaries[last].Bytes
}

// charToByte maps a rune offset within n to a byte offset.
func (n *Node) charToByte(c uint64) ByteOffset {
	var acc ByteOffset
	for !n.IsLeaf() {
		i := 0
		for ; i < len(n.children)-1; i++ {
			s := n.childSummaries[i]
			if c < s.Chars {
				break
			}
			c -= s.Chars
			acc += s.Bytes
		}
		n = n.children[i]
	}
	for i := range n.chunks {
		ch := &n.chunks[i]
		if c < ch.summary.Chars || i == len(n.chunks)-1 {
			return acc + ByteOffset(ch.byteOfChar(c))
		}
		c -= ch.summary.Chars
		acc += ByteOffset(ch.Len())
	}
	return acc
}

// byteToChar counts the runes that start before byte offset b within n.
func (n *Node) byteToChar(b ByteOffset) uint64 {
	var chars uint64
	for !n.IsLeaf() {
		i := 0
		for ; i < len(n.children)-1; i++ {
			s := n.childSummaries[i]
			if b < s.Bytes {
				break
			}
			b -= s.Bytes
			chars += s.Chars
		}
		n = n.children[i]
	}
	for i := range n.chunks {
		ch := &n.chunks[i]
		if b < ByteOffset(ch.Len()) || i == len(n.chunks)-1 {
			return chars + ch.charOfByte(int(b))
		}
		b -= ByteOffset(ch.Len())
		chars += ch.summary.Chars
	}
	return chars
}

// lineStart returns the byte offset just past the line-th newline (line >= 1).
func (n *Node) lineStart(line uint32) ByteOffset {
	var acc ByteOffset
	for !n.IsLeaf() {
		i := 0
		for ; i < len(n.children)-1; i++ {
			s := n.childSummaries[i]
			if line <= s.Lines {
				break
			}
			line -= s.Lines
			acc += s.Bytes
		}
		n = n.children[i]
	}
	for i := range n.chunks {
		ch := &n.chunks[i]
		if line <= ch.summary.Lines {
			return acc + ByteOffset(ch.newlines.SearchLine(line))
		}
		line -= ch.summary.Lines
		acc += ByteOffset(ch.Len())
	}
	return acc
}

// lineOfByte counts the newlines before byte offset b within n.
func (n *Node) lineOfByte(b ByteOffset) uint32 {
	var lines uint32
	for !n.IsLeaf() {
		i := 0
		for ; i < len(n.children)-1; i++ {
			s := n.childSummaries[i]
			if b < s.Bytes {
				break
			}
			b -= s.Bytes
			lines += s.Lines
		}
		n = n.children[i]
	}
	for i := range n.chunks {
		ch := &n.chunks[i]
		if b < ByteOffset(ch.Len()) || i == len(n.chunks)-1 {
			return lines + ch.newlines.CountBefore(int(b))
		}
		b -= ByteOffset(ch.Len())
		lines += ch.summary.Lines
	}
	return lines
}

// appendRange appends the text in the local byte range [start, end) to sb.
func (n *Node) appendRange(sb *strings.Builder, start, end ByteOffset) {
	var acc ByteOffset
	if n.IsLeaf() {
		for _, c := range n.chunks {
			cs, ce := acc, acc+ByteOffset(c.Len())
			acc = ce
			if ce <= start {
				continue
			}
			if cs >= end {
				return
			}
			sb.WriteString(c.data[max(start, cs)-cs : min(end, ce)-cs])
		}
		return
	}

	for i, child := range n.children {
		cs, ce := acc, acc+n.childSummaries[i].Bytes
		acc = ce
		if ce <= start {
			continue
		}
		if cs >= end {
			return
		}
		child.appendRange(sb, max(start, cs)-cs, min(end, ce)-cs)
	}
}

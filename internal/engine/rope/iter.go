package rope

// iterFrame is one level of the depth-first walk.
type iterFrame struct {
	node *Node
	next int // next child or chunk index to visit
}

// ChunkIterator walks the chunks of a rope in document order.
//
//	for it := r.Chunks(); it.Next(); {
//		_ = it.Chunk().String()
//	}
type ChunkIterator struct {
	stack   []iterFrame
	chunk   Chunk
	offset  ByteOffset
	pending ByteOffset
}

// Chunks returns an iterator over all chunks in the rope.
func (r Rope) Chunks() *ChunkIterator {
	it := &ChunkIterator{stack: make([]iterFrame, 0, 8)}
	if r.root != nil {
		it.stack = append(it.stack, iterFrame{node: r.root})
	}
	return it
}

// Next advances to the next chunk.
// Returns false once every chunk has been visited.
func (it *ChunkIterator) Next() bool {
	for len(it.stack) > 0 {
		top := &it.stack[len(it.stack)-1]
		n := top.node

		if n.IsLeaf() {
			if top.next < len(n.chunks) {
				it.chunk = n.chunks[top.next]
				top.next++
				it.offset = it.pending
				it.pending += ByteOffset(it.chunk.Len())
				return true
			}
			it.stack = it.stack[:len(it.stack)-1]
			continue
		}

		if top.next < len(n.children) {
			child := n.children[top.next]
			top.next++
			it.stack = append(it.stack, iterFrame{node: child})
			continue
		}
		it.stack = it.stack[:len(it.stack)-1]
	}
	return false
}

// Chunk returns the current chunk.
func (it *ChunkIterator) Chunk() Chunk {
	return it.chunk
}

// Offset returns the byte offset of the start of the current chunk.
func (it *ChunkIterator) Offset() ByteOffset {
	return it.offset
}

package xmldom

// defaultChunkSize is the number of Node slots allocated per arena chunk.
const defaultChunkSize = 1000

// minChunkSize is the smallest chunk size a caller may request; below this
// the per-chunk bookkeeping overhead stops paying for itself.
const minChunkSize = 50

// nodeArena is a chunked bump allocator for Node storage. References handed
// out by allocate are stable for the life of the arena: chunks are never
// relocated, only appended to. reset rewinds the bump cursor without
// freeing chunks, so a document can be reparsed without further allocation
// once its chunks have grown to steady-state size.
type nodeArena struct {
	doc       *Document
	chunkSize int
	chunks    [][]Node
	chunkIdx  int // index of the chunk currently being bumped into
	slotIdx   int // next free slot within chunks[chunkIdx]
}

func newNodeArena(doc *Document, chunkSize int) *nodeArena {
	if chunkSize < minChunkSize {
		chunkSize = minChunkSize
	}
	a := &nodeArena{doc: doc, chunkSize: chunkSize}
	a.chunks = append(a.chunks, make([]Node, chunkSize))
	return a
}

// allocate returns a zero-initialized Node handle. Byte buffers owned by the
// slot retain their capacity across reuse; only their logical length is
// cleared.
func (a *nodeArena) allocate() *Node {
	if a.slotIdx >= len(a.chunks[a.chunkIdx]) {
		a.chunkIdx++
		if a.chunkIdx >= len(a.chunks) {
			a.chunks = append(a.chunks, make([]Node, a.chunkSize))
		}
		a.slotIdx = 0
	}
	n := &a.chunks[a.chunkIdx][a.slotIdx]
	a.slotIdx++
	n.clear(a.doc)
	return n
}

// reset rewinds the bump cursor to slot 1 of chunk 0, reserving slot 0 for
// the document's permanent root node. Chunk memory is kept for reuse.
func (a *nodeArena) reset() {
	a.chunkIdx = 0
	a.slotIdx = 1
}

// count reports how many node slots are in use, including slot 0 of chunk 0
// (the root's), so it is 1 right after reset. Exposed for tests that assert zero-allocation
// reparse (no new chunk, same slotIdx trajectory).
func (a *nodeArena) count() int {
	return a.chunkIdx*a.chunkSize + a.slotIdx
}

package xmldom

// queryEngine is the shared scratch allocator behind every NodeSet produced
// for a Document. A single growable freelist is reused across all queries;
// filter callbacks may recurse back into the engine (Node.Query), so a
// save/restore protocol around recursionDepth keeps nested queries from
// clobbering the outer query's in-progress results.
type queryEngine struct {
	doc            *Document
	freelist       []*Node
	freeIndex      int
	recursionDepth int
}

func newQueryEngine(doc *Document) *queryEngine {
	return &queryEngine{doc: doc, freelist: make([]*Node, 0, 64)}
}

// start begins a new query rooted at n. Only a top-level (non-recursive)
// call rewinds freeIndex; a call made from inside a Filter callback shares
// the buffer with the outer query instead of clobbering it.
func (e *queryEngine) start(n *Node) NodeSet {
	if e.recursionDepth == 0 {
		e.freeIndex = 0
	}
	mark := e.freeIndex
	e.push(n)
	return e.slice(mark)
}

// push appends n to the freelist at the current cursor, growing the
// backing array if needed. Because NodeSet slices alias this array, a
// growth reallocation silently detaches any NodeSet still referencing the
// old backing array from further in-place overwrites — the documented
// trade-off of the shared-freelist fast path (see NodeSet doc comment).
func (e *queryEngine) push(n *Node) {
	if e.freeIndex < len(e.freelist) {
		e.freelist[e.freeIndex] = n
	} else {
		e.freelist = append(e.freelist, n)
	}
	e.freeIndex++
}

func (e *queryEngine) slice(mark int) NodeSet {
	return NodeSet{engine: e, nodes: e.freelist[mark:e.freeIndex]}
}

// NodeSet is a transient, non-owning view over a contiguous run of the
// query engine's freelist. Results are valid until the next top-level
// (non-recursive) query on the same Document; call Dup to escape that
// window with a heap-owned copy.
type NodeSet struct {
	engine *queryEngine
	nodes  []*Node
}

// Nodes returns the raw node slice backing this NodeSet. The slice aliases
// engine state per the lifetime contract documented on NodeSet.
func (ns NodeSet) Nodes() []*Node { return ns.nodes }

// Count returns the number of nodes in the set.
func (ns NodeSet) Count() int { return len(ns.nodes) }

// First returns the first node, or nil if the set is empty.
func (ns NodeSet) First() *Node {
	if len(ns.nodes) == 0 {
		return nil
	}
	return ns.nodes[0]
}

// Last returns the last node, or nil if the set is empty.
func (ns NodeSet) Last() *Node {
	if len(ns.nodes) == 0 {
		return nil
	}
	return ns.nodes[len(ns.nodes)-1]
}

// Nth returns the i'th node (0-based), or nil if out of range.
func (ns NodeSet) Nth(i int) *Node {
	if i < 0 || i >= len(ns.nodes) {
		return nil
	}
	return ns.nodes[i]
}

// Dup materializes a heap-owned copy of the current node slice so it
// survives further queries on the same engine.
func (ns NodeSet) Dup() NodeSet {
	cp := make([]*Node, len(ns.nodes))
	copy(cp, ns.nodes)
	return NodeSet{engine: ns.engine, nodes: cp}
}

// Child selects immediate Element children, optionally filtered by local
// name (empty matches all).
func (ns NodeSet) Child(name string) NodeSet {
	e := ns.engine
	mark := e.freeIndex
	for _, n := range ns.nodes {
		for c := n.firstChild; c != nil; c = c.nextSibling {
			if c.kind == KindElement && matchesName(c, name) {
				e.push(c)
			}
		}
	}
	return e.slice(mark)
}

// Attribute selects attributes, optionally filtered by local name.
func (ns NodeSet) Attribute(name string) NodeSet {
	e := ns.engine
	mark := e.freeIndex
	for _, n := range ns.nodes {
		for a := n.firstAttr; a != nil; a = a.nextSibling {
			if matchesName(a, name) {
				e.push(a)
			}
		}
	}
	return e.slice(mark)
}

// Data selects immediate Data children, optionally filtered by raw value.
func (ns NodeSet) Data(value string) NodeSet {
	return ns.contentAxis(KindData, value)
}

// CData selects immediate CData children, optionally filtered by raw value.
func (ns NodeSet) CData(value string) NodeSet {
	return ns.contentAxis(KindCData, value)
}

func (ns NodeSet) contentAxis(kind NodeKind, value string) NodeSet {
	e := ns.engine
	mark := e.freeIndex
	for _, n := range ns.nodes {
		for c := n.firstChild; c != nil; c = c.nextSibling {
			if c.kind == kind && (value == "" || string(c.rawValue) == value) {
				e.push(c)
			}
		}
	}
	return e.slice(mark)
}

// Parent selects each node's parent, skipping Document-kind parents and
// de-duplicating by identity when multiple starting nodes share a parent.
func (ns NodeSet) Parent(name string) NodeSet {
	e := ns.engine
	mark := e.freeIndex
	for _, n := range ns.nodes {
		p := n.parent
		if p == nil || p.kind == KindDocument || !matchesName(p, name) {
			continue
		}
		e.pushUnique(mark, p)
	}
	return e.slice(mark)
}

// Ancestor walks each node's parent chain upward, skipping Document-kind
// nodes and de-duplicating ancestors shared by more than one starting node.
func (ns NodeSet) Ancestor(name string) NodeSet {
	e := ns.engine
	mark := e.freeIndex
	for _, n := range ns.nodes {
		for p := n.parent; p != nil && p.kind != KindDocument; p = p.parent {
			if matchesName(p, name) {
				e.pushUnique(mark, p)
			}
		}
	}
	return e.slice(mark)
}

// pushUnique pushes n unless it already appears in freelist[mark:freeIndex],
// implementing the O(k*d) de-dup strategy described for parent/ancestor.
func (e *queryEngine) pushUnique(mark int, n *Node) {
	for _, existing := range e.freelist[mark:e.freeIndex] {
		if existing == n {
			return
		}
	}
	e.push(n)
}

// Descendant visits Element descendants in document (pre-)order.
func (ns NodeSet) Descendant(name string) NodeSet {
	e := ns.engine
	mark := e.freeIndex
	for _, n := range ns.nodes {
		e.walkDescendants(n, name)
	}
	return e.slice(mark)
}

func (e *queryEngine) walkDescendants(n *Node, name string) {
	for c := n.firstChild; c != nil; c = c.nextSibling {
		if c.kind == KindElement {
			if matchesName(c, name) {
				e.push(c)
			}
			e.walkDescendants(c, name)
		}
	}
}

// Prev walks the prevSibling chain over Element nodes.
func (ns NodeSet) Prev(name string) NodeSet {
	e := ns.engine
	mark := e.freeIndex
	for _, n := range ns.nodes {
		for s := n.prevSibling; s != nil; s = s.prevSibling {
			if s.kind == KindElement && matchesName(s, name) {
				e.push(s)
			}
		}
	}
	return e.slice(mark)
}

// Next walks the nextSibling chain over Element nodes.
func (ns NodeSet) Next(name string) NodeSet {
	e := ns.engine
	mark := e.freeIndex
	for _, n := range ns.nodes {
		for s := n.nextSibling; s != nil; s = s.nextSibling {
			if s.kind == KindElement && matchesName(s, name) {
				e.push(s)
			}
		}
	}
	return e.slice(mark)
}

// Filter keeps nodes for which cb returns true. cb may itself call
// Node.Query and run a fully independent nested query: the engine saves
// freeIndex before each invocation and restores it afterward, so the
// callback's own allocations never leak into the outer result, and the
// tested node (if kept) is pushed at the restored position.
func (ns NodeSet) Filter(cb func(*Node) bool) NodeSet {
	e := ns.engine
	mark := e.freeIndex
	for _, n := range ns.nodes {
		saved := e.freeIndex
		e.recursionDepth++
		keep := cb(n)
		e.freeIndex = saved
		e.recursionDepth--
		if keep {
			e.push(n)
		}
	}
	return e.slice(mark)
}

func matchesName(n *Node, name string) bool {
	return name == "" || string(n.localName) == name
}

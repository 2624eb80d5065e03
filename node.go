package xmldom

import "unsafe"

// NodeKind discriminates what a Node represents.
type NodeKind uint8

const (
	KindDocument NodeKind = iota
	KindElement
	KindAttribute
	KindData
	KindCData
	KindComment
	KindPI
	KindDoctype
)

// noSlice marks sliceStart/sliceEnd as unset: "re-serialize from fields"
// rather than reuse a verbatim input range.
const noSlice = -1

// Node is a single element of the document tree. Nodes are only created via
// a Document's arena and remain valid until the owning Document is reset.
type Node struct {
	kind NodeKind

	// nameBuf holds "prefix:local" (or just "local") as one contiguous
	// owned buffer; prefix and localName are sub-slices of it so that
	// ToString can return a no-copy view when both are present. Builder
	// calls route through setName so the optimization applies uniformly,
	// not only to parser-built nodes.
	nameBuf   []byte
	prefix    []byte
	localName []byte
	rawValue  []byte

	parent                   *Node
	prevSibling, nextSibling *Node
	firstChild, lastChild    *Node
	firstAttr, lastAttr      *Node

	sliceStart, sliceEnd int

	owner    *Document
	userData any
}

// clear resets a node slot to its zero state for reuse by the arena,
// retaining buffer capacity but truncating logical length.
func (n *Node) clear(doc *Document) {
	n.kind = KindDocument
	n.nameBuf = n.nameBuf[:0]
	n.prefix = nil
	n.localName = nil
	n.rawValue = n.rawValue[:0]
	n.parent = nil
	n.prevSibling = nil
	n.nextSibling = nil
	n.firstChild = nil
	n.lastChild = nil
	n.firstAttr = nil
	n.lastAttr = nil
	n.sliceStart = noSlice
	n.sliceEnd = noSlice
	n.owner = doc
	n.userData = nil
}

func (n *Node) setName(prefix, local []byte) {
	n.nameBuf = n.nameBuf[:0]
	if len(prefix) > 0 {
		n.nameBuf = append(n.nameBuf, prefix...)
		n.nameBuf = append(n.nameBuf, ':')
		prefixLen := len(prefix)
		n.nameBuf = append(n.nameBuf, local...)
		n.prefix = n.nameBuf[:prefixLen]
		n.localName = n.nameBuf[prefixLen+1:]
		return
	}
	n.nameBuf = append(n.nameBuf, local...)
	n.prefix = nil
	n.localName = n.nameBuf
}

func (n *Node) setRawValue(v []byte) {
	n.rawValue = append(n.rawValue[:0], v...)
}

// Kind returns the node's type tag.
func (n *Node) Kind() NodeKind { return n.kind }

// Prefix returns the namespace prefix, possibly empty.
func (n *Node) Prefix() []byte { return n.prefix }

// LocalName returns the local name, possibly empty.
func (n *Node) LocalName() []byte { return n.localName }

// RawValue returns the node's untranscoded byte content. For Element nodes
// this is not the element's text value; use Value for that.
func (n *Node) RawValue() []byte { return n.rawValue }

func (n *Node) Parent() *Node      { return n.parent }
func (n *Node) PrevSibling() *Node { return n.prevSibling }
func (n *Node) NextSibling() *Node { return n.nextSibling }
func (n *Node) FirstChild() *Node  { return n.firstChild }
func (n *Node) LastChild() *Node   { return n.lastChild }
func (n *Node) FirstAttr() *Node   { return n.firstAttr }
func (n *Node) LastAttr() *Node    { return n.lastAttr }
func (n *Node) Owner() *Document   { return n.owner }

func (n *Node) UserData() any     { return n.userData }
func (n *Node) SetUserData(v any) { n.userData = v }

// ToString returns the node's qualified name as "prefix:local", or just
// "local" when there is no prefix. setName is the only site that ever
// assigns prefix/localName, and it always lays them out contiguously in
// nameBuf, so this is always a no-copy view into the node's own buffer; the
// assertion below guards that invariant rather than silently recomposing if
// it's ever violated by a future caller.
func (n *Node) ToString() []byte {
	if len(n.prefix) == 0 {
		return n.localName
	}
	if len(n.localName) > 0 && !adjacentWithColon(n.prefix, n.localName) {
		panic("xmldom: Node prefix/localName not laid out contiguously by setName")
	}
	return n.nameBuf
}

// adjacentWithColon reports whether local begins exactly two bytes after
// prefix ends with a ':' in between, i.e. both slices alias the same
// "prefix:local" backing buffer.
func adjacentWithColon(prefix, local []byte) bool {
	if len(prefix) == 0 || len(local) == 0 {
		return false
	}
	prefixEnd := unsafe.Pointer(&prefix[len(prefix)-1])
	localStart := unsafe.Pointer(&local[0])
	if uintptr(localStart)-uintptr(prefixEnd) != 2 {
		return false
	}
	return *(*byte)(unsafe.Add(prefixEnd, 1)) == ':'
}

// Position counts how many siblings precede this node in its parent's
// child list (or attribute list, for an Attribute node). O(n) in sibling
// count.
func (n *Node) Position() int {
	pos := 0
	for s := n.prevSibling; s != nil; s = s.prevSibling {
		pos++
	}
	return pos
}

// Value returns the node's effective text value. For Element, this is the
// rawValue of the first Data or CData child if one exists, otherwise the
// node's own rawValue; for every other kind it is always the node's own
// rawValue.
func (n *Node) Value() string {
	if n.kind == KindElement {
		for c := n.firstChild; c != nil; c = c.nextSibling {
			if c.kind == KindData || c.kind == KindCData {
				return string(c.rawValue)
			}
		}
	}
	return string(n.rawValue)
}

// SetValue updates the node's effective text value. For Element, it updates
// the first Data child if one exists, otherwise it sets the node's own
// rawValue (matching non-Element kinds). Either way it invalidates the
// serialization cache.
func (n *Node) SetValue(v string) {
	if n.kind == KindElement {
		for c := n.firstChild; c != nil; c = c.nextSibling {
			if c.kind == KindData {
				c.setRawValue([]byte(v))
				n.mutate()
				return
			}
		}
		n.setRawValue([]byte(v))
		n.mutate()
		return
	}
	n.setRawValue([]byte(v))
	n.mutate()
}

// Mutate clears the cached serialization range on this node and every
// ancestor up to and including the root. Every structural or value change
// routes through this so the serializer never reuses a stale verbatim
// range.
func (n *Node) Mutate() { n.mutate() }

func (n *Node) mutate() {
	for cur := n; cur != nil; cur = cur.parent {
		cur.sliceEnd = noSlice
	}
}

// ---- insertion primitives ----

func (n *Node) appendChild(c *Node) {
	c.parent = n
	if n.lastChild == nil {
		n.firstChild = c
		n.lastChild = c
		c.prevSibling = nil
		c.nextSibling = nil
	} else {
		c.prevSibling = n.lastChild
		c.nextSibling = nil
		n.lastChild.nextSibling = c
		n.lastChild = c
	}
}

func (n *Node) prependChild(c *Node) {
	c.parent = n
	if n.firstChild == nil {
		n.firstChild = c
		n.lastChild = c
		c.prevSibling = nil
		c.nextSibling = nil
	} else {
		c.nextSibling = n.firstChild
		c.prevSibling = nil
		n.firstChild.prevSibling = c
		n.firstChild = c
	}
}

func (n *Node) appendAttr(a *Node) {
	a.parent = n
	if n.lastAttr == nil {
		n.firstAttr = a
		n.lastAttr = a
		a.prevSibling = nil
		a.nextSibling = nil
	} else {
		a.prevSibling = n.lastAttr
		a.nextSibling = nil
		n.lastAttr.nextSibling = a
		n.lastAttr = a
	}
}

// ---- builder surface ----

// Element appends a new Element child, optionally with a Data grandchild
// holding value, and returns the new child.
func (n *Node) Element(prefix, local string, value ...string) *Node {
	c := n.owner.arena.allocate()
	c.kind = KindElement
	c.owner = n.owner
	c.setName([]byte(prefix), []byte(local))
	n.appendChild(c)
	if len(value) > 0 {
		c.Data(value[0])
	}
	n.mutate()
	return c
}

// Attribute appends a new Attribute and returns self for chaining.
func (n *Node) Attribute(prefix, local string, value ...string) *Node {
	a := n.owner.arena.allocate()
	a.kind = KindAttribute
	a.owner = n.owner
	a.setName([]byte(prefix), []byte(local))
	if len(value) > 0 {
		a.setRawValue([]byte(value[0]))
	}
	n.appendAttr(a)
	n.mutate()
	return n
}

func (n *Node) newChild(kind NodeKind, v string) *Node {
	c := n.owner.arena.allocate()
	c.kind = kind
	c.owner = n.owner
	c.setRawValue([]byte(v))
	n.appendChild(c)
	n.mutate()
	return c
}

// Data appends a Data child and returns self for chaining.
func (n *Node) Data(v string) *Node { n.newChild(KindData, v); return n }

// CData appends a CData child and returns self for chaining.
func (n *Node) CData(v string) *Node { n.newChild(KindCData, v); return n }

// Comment appends a Comment child and returns self for chaining.
func (n *Node) Comment(v string) *Node { n.newChild(KindComment, v); return n }

// PI appends a processing-instruction child and returns self for chaining.
func (n *Node) PI(v string) *Node { n.newChild(KindPI, v); return n }

// Doctype appends a Doctype child and returns self for chaining.
func (n *Node) Doctype(v string) *Node { n.newChild(KindDoctype, v); return n }

// Detach unlinks the node from its parent's child or attribute list.
// Ancestors up to the root have their serialization cache invalidated.
// Detach on a node with no parent is a no-op.
func (n *Node) Detach() {
	p := n.parent
	if p == nil {
		return
	}
	isAttr := n.kind == KindAttribute

	switch {
	case n.prevSibling != nil && n.nextSibling != nil:
		n.prevSibling.nextSibling = n.nextSibling
		n.nextSibling.prevSibling = n.prevSibling
	case n.prevSibling != nil: // last in list
		n.prevSibling.nextSibling = nil
		if isAttr {
			p.lastAttr = n.prevSibling
		} else {
			p.lastChild = n.prevSibling
		}
	case n.nextSibling != nil: // first in list
		n.nextSibling.prevSibling = nil
		if isAttr {
			p.firstAttr = n.nextSibling
		} else {
			p.firstChild = n.nextSibling
		}
	default: // only child/attribute
		if isAttr {
			p.firstAttr = nil
			p.lastAttr = nil
		} else {
			p.firstChild = nil
			p.lastChild = nil
		}
	}

	n.parent = nil
	n.prevSibling = nil
	n.nextSibling = nil
	p.mutate()
}

// Remove is an alias for Detach.
func (n *Node) Remove() { n.Detach() }

// Copy deep-clones subtree into self's document and attaches the clone as a
// child (or, if subtree is an Attribute, as an attribute). The clone's
// owner is self's document; subsequent mutation of either tree does not
// affect the other.
func (n *Node) Copy(subtree *Node) *Node {
	clone := n.owner.cloneInto(subtree)
	if clone.kind == KindAttribute {
		n.appendAttr(clone)
	} else {
		n.appendChild(clone)
	}
	n.mutate()
	return clone
}

// cloneInto deep-clones src (and its attributes/children, in order) into
// doc's arena, retargeting owner on every cloned node.
func (d *Document) cloneInto(src *Node) *Node {
	c := d.arena.allocate()
	c.kind = src.kind
	c.owner = d
	c.setName(src.prefix, src.localName)
	c.setRawValue(src.rawValue)

	for a := src.firstAttr; a != nil; a = a.nextSibling {
		ac := d.cloneInto(a)
		c.appendAttr(ac)
	}
	for ch := src.firstChild; ch != nil; ch = ch.nextSibling {
		cc := d.cloneInto(ch)
		c.appendChild(cc)
	}
	return c
}

// Move grafts subtree under self. If subtree and self share the same owning
// Document, it detaches and re-attaches in place; otherwise it falls back
// to Copy and leaves the source subtree untouched.
func (n *Node) Move(subtree *Node) *Node {
	if subtree.owner == n.owner {
		subtree.Detach()
		if subtree.kind == KindAttribute {
			n.appendAttr(subtree)
		} else {
			n.appendChild(subtree)
		}
		n.mutate()
		return subtree
	}
	return n.Copy(subtree)
}

// Query returns a path query rooted at this node, sharing the owning
// Document's query engine and freelist.
func (n *Node) Query() NodeSet {
	return n.owner.query.start(n)
}

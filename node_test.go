package xmldom

import "testing"

func TestBuilderElementReturnsChild(t *testing.T) {
	d := New()
	root := d.Tree().Element("", "root")
	child := root.Element("", "item", "hello")

	if child.Kind() != KindElement {
		t.Fatalf("expected KindElement, got %v", child.Kind())
	}
	if string(child.LocalName()) != "item" {
		t.Errorf("expected local name 'item', got %q", child.LocalName())
	}
	if child.Value() != "hello" {
		t.Errorf("expected value 'hello', got %q", child.Value())
	}
	if child.Parent() != root {
		t.Errorf("expected child's parent to be root")
	}
}

func TestBuilderAttributeReturnsSelf(t *testing.T) {
	d := New()
	root := d.Tree().Element("", "root")
	got := root.Attribute("", "id", "42")

	if got != root {
		t.Fatalf("expected attribute() to return self for chaining")
	}
	attr := root.FirstAttr()
	if attr == nil || string(attr.LocalName()) != "id" || string(attr.RawValue()) != "42" {
		t.Fatalf("expected attribute id=42, got %+v", attr)
	}
}

func TestBuilderDataCDataCommentPIDoctype(t *testing.T) {
	d := New()
	root := d.Tree().Element("", "root")
	root.Data("text").CData("<raw>").Comment("note").PI("target v").Doctype("html")

	kinds := []NodeKind{KindData, KindCData, KindComment, KindPI, KindDoctype}
	values := []string{"text", "<raw>", "note", "target v", "html"}
	c := root.FirstChild()
	for i, k := range kinds {
		if c == nil {
			t.Fatalf("expected child %d (%v), got none", i, k)
		}
		if c.Kind() != k {
			t.Errorf("child %d: expected kind %v, got %v", i, k, c.Kind())
		}
		if string(c.RawValue()) != values[i] {
			t.Errorf("child %d: expected value %q, got %q", i, values[i], c.RawValue())
		}
		c = c.NextSibling()
	}
}

func TestSiblingSymmetryAfterBuilds(t *testing.T) {
	d := New()
	root := d.Tree().Element("", "root")
	root.Element("", "a")
	root.Element("", "b")
	root.Element("", "c")
	assertSiblingSymmetry(t, d.Tree())
}

func assertSiblingSymmetry(t *testing.T, n *Node) {
	t.Helper()
	if n.FirstChild() != nil && n.FirstChild().PrevSibling() != nil {
		t.Errorf("firstChild.prevSibling should be nil for %q", n.LocalName())
	}
	if n.LastChild() != nil && n.LastChild().NextSibling() != nil {
		t.Errorf("lastChild.nextSibling should be nil for %q", n.LocalName())
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if c.NextSibling() != nil && c.NextSibling().PrevSibling() != c {
			t.Errorf("sibling symmetry broken after %q", c.LocalName())
		}
		assertSiblingSymmetry(t, c)
	}
}

func TestDetachUnlinksAndFixesSiblings(t *testing.T) {
	d := New()
	root := d.Tree().Element("", "root")
	a := root.Element("", "a")
	b := root.Element("", "b")
	c := root.Element("", "c")

	b.Detach()

	if root.FirstChild() != a || root.LastChild() != c {
		t.Fatalf("expected a..c to remain head/tail, got first=%v last=%v", root.FirstChild().LocalName(), root.LastChild().LocalName())
	}
	if a.NextSibling() != c || c.PrevSibling() != a {
		t.Fatalf("expected a and c to become adjacent after detaching b")
	}
	if b.Parent() != nil || b.PrevSibling() != nil || b.NextSibling() != nil {
		t.Fatalf("expected detached node to have nil parent/siblings")
	}
	assertSiblingSymmetry(t, root)
}

func TestDetachOnlyChild(t *testing.T) {
	d := New()
	root := d.Tree().Element("", "root")
	only := root.Element("", "only")
	only.Detach()

	if root.FirstChild() != nil || root.LastChild() != nil {
		t.Fatalf("expected root to have no children after detaching its only child")
	}
}

func TestDetachFirstAndLast(t *testing.T) {
	d := New()
	root := d.Tree().Element("", "root")
	a := root.Element("", "a")
	b := root.Element("", "b")

	a.Detach()
	if root.FirstChild() != b || b.PrevSibling() != nil {
		t.Fatalf("expected b to become sole child after detaching first")
	}

	b.Detach()
	if root.FirstChild() != nil || root.LastChild() != nil {
		t.Fatalf("expected root empty after detaching its last remaining child")
	}
}

func TestMutateInvalidatesAncestorChain(t *testing.T) {
	d := New()
	root := d.Tree().Element("", "root")
	mid := root.Element("", "mid")
	leaf := mid.Element("", "leaf")

	root.sliceEnd = 100
	mid.sliceEnd = 50
	leaf.sliceEnd = 10

	leaf.Mutate()

	if leaf.sliceEnd != noSlice || mid.sliceEnd != noSlice || root.sliceEnd != noSlice {
		t.Fatalf("expected mutate to clear sliceEnd on leaf and every ancestor up to root")
	}
}

func TestValueAccessorAndSetter(t *testing.T) {
	d := New()
	root := d.Tree().Element("", "root", "initial")

	if root.Value() != "initial" {
		t.Fatalf("expected 'initial', got %q", root.Value())
	}
	root.SetValue("updated")
	if root.Value() != "updated" {
		t.Fatalf("expected 'updated', got %q", root.Value())
	}

	attr := d.Tree().Element("", "leaf")
	attr.Attribute("", "a", "x")
	attr.SetValue("leafvalue")
	if attr.Value() != "leafvalue" {
		t.Fatalf("expected element with no Data child to gain a rawValue on SetValue, got %q", attr.Value())
	}
}

func TestPosition(t *testing.T) {
	d := New()
	root := d.Tree().Element("", "root")
	a := root.Element("", "a")
	b := root.Element("", "b")
	c := root.Element("", "c")

	if a.Position() != 0 || b.Position() != 1 || c.Position() != 2 {
		t.Fatalf("expected positions 0,1,2, got %d,%d,%d", a.Position(), b.Position(), c.Position())
	}
}

func TestToStringNoCopyWhenAdjacent(t *testing.T) {
	d := New()
	root := d.Tree().Element("g", "Offer")

	got := root.ToString()
	if string(got) != "g:Offer" {
		t.Fatalf("expected 'g:Offer', got %q", got)
	}
	if &got[0] != &root.nameBuf[0] {
		t.Errorf("expected ToString to return a view into the node's name buffer, not a copy")
	}
}

func TestToStringWithoutPrefix(t *testing.T) {
	d := New()
	root := d.Tree().Element("", "Offer")
	if string(root.ToString()) != "Offer" {
		t.Fatalf("expected 'Offer', got %q", root.ToString())
	}
}

func TestCopyIntoAnotherDocumentIsIsolated(t *testing.T) {
	docA := New()
	a := docA.Tree().Element("", "A")
	a.Element("", "B", "v")

	docB := New()
	clone := docB.Tree().Copy(docA.Query().Child("A").First())

	if clone.Owner() != docB {
		t.Fatalf("expected clone's owner to be docB")
	}
	bNode := clone.Query().Child("B").First()
	if bNode == nil || bNode.Value() != "v" {
		t.Fatalf("expected cloned subtree to retain its child, got %+v", bNode)
	}

	a.Element("", "C", "added-after-copy")
	if clone.Query().Child("C").Count() != 0 {
		t.Fatalf("expected mutating the original after copy to leave the clone unaffected")
	}

	bNode.SetValue("changed-in-clone")
	origB := docA.Query().Child("A").Child("B").First()
	if origB.Value() != "v" {
		t.Fatalf("expected mutating the clone to leave the original unaffected, got %q", origB.Value())
	}
}

func TestMoveWithinSameDocumentReparents(t *testing.T) {
	d := New()
	root := d.Tree().Element("", "root")
	src := root.Element("", "src")
	leaf := src.Element("", "leaf", "v")
	dst := root.Element("", "dst")

	dst.Move(leaf)

	if leaf.Parent() != dst {
		t.Fatalf("expected leaf to be reparented under dst")
	}
	if src.FirstChild() != nil {
		t.Fatalf("expected src to lose its only child after move")
	}
}

func TestMoveAcrossDocumentsFallsBackToCopy(t *testing.T) {
	docA := New()
	a := docA.Tree().Element("", "A")
	leaf := a.Element("", "leaf", "v")

	docB := New()
	dst := docB.Tree().Element("", "dst")
	dst.Move(leaf)

	if leaf.Parent() != a {
		t.Fatalf("expected cross-document move to leave the source in place (copy fallback)")
	}
	if dst.Query().Child("leaf").Count() != 1 {
		t.Fatalf("expected destination to receive a copy")
	}
}

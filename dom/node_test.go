package dom

import "testing"

func buildParentWithChildren(t *testing.T, n int) (*Document, *Node, []*Node) {
	t.Helper()
	doc := NewDocument()
	parent := doc.CreateElement("div").AsNode()
	children := make([]*Node, n)
	for i := range children {
		children[i] = doc.CreateElement("span").AsNode()
		parent.AppendChild(children[i])
	}
	return doc, parent, children
}

// checkSiblingChain verifies the doubly-linked sibling invariants for parent.
func checkSiblingChain(t *testing.T, parent *Node, want []*Node) {
	t.Helper()
	var got []*Node
	for c := parent.firstChild; c != nil; c = c.nextSibling {
		got = append(got, c)
	}
	if len(got) != len(want) {
		t.Fatalf("child count = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("child %d mismatch", i)
		}
		if got[i].parentNode != parent {
			t.Fatalf("child %d has wrong parent", i)
		}
	}
	if len(want) == 0 {
		if parent.firstChild != nil || parent.lastChild != nil {
			t.Fatal("empty parent must have nil first/last child")
		}
		return
	}
	if parent.firstChild != want[0] || parent.lastChild != want[len(want)-1] {
		t.Fatal("first/last child do not agree with the chain")
	}
	if want[0].prevSibling != nil || want[len(want)-1].nextSibling != nil {
		t.Fatal("boundary siblings must be nil")
	}
	for i := 1; i < len(want); i++ {
		if want[i].prevSibling != want[i-1] || want[i-1].nextSibling != want[i] {
			t.Fatalf("sibling links broken at %d", i)
		}
	}
}

func TestInsertRemoveRestoresOrder(t *testing.T) {
	doc, parent, children := buildParentWithChildren(t, 3)
	n := doc.CreateElement("em").AsNode()

	parent.InsertBefore(n, children[1])
	checkSiblingChain(t, parent, []*Node{children[0], n, children[1], children[2]})

	parent.RemoveChild(n)
	checkSiblingChain(t, parent, children)
	if n.parentNode != nil || n.prevSibling != nil || n.nextSibling != nil {
		t.Error("removed node must be fully detached")
	}
}

func TestValidation_ParentKind(t *testing.T) {
	doc := NewDocument()
	text := doc.CreateTextNode("t")
	child := doc.CreateTextNode("c")

	_, err := text.AppendChildWithError(child)
	if err == nil || err.(*DOMError).Name != "HierarchyRequestError" {
		t.Fatalf("expected HierarchyRequestError, got %v", err)
	}
}

func TestValidation_CycleRejected(t *testing.T) {
	doc := NewDocument()
	outer := doc.CreateElement("div").AsNode()
	inner := doc.CreateElement("div").AsNode()
	outer.AppendChild(inner)

	_, err := inner.AppendChildWithError(outer)
	if err == nil || err.(*DOMError).Name != "HierarchyRequestError" {
		t.Fatalf("expected HierarchyRequestError for cycle, got %v", err)
	}

	// Self-insertion is a cycle too.
	if _, err := outer.AppendChildWithError(outer); err == nil {
		t.Fatal("expected error inserting node into itself")
	}
}

// NotFoundError for a wrong-parent reference child must precede the
// document-child-count HierarchyRequestError when both would apply.
func TestValidation_NotFoundBeforeHierarchy(t *testing.T) {
	doc := NewDocument()
	root := doc.CreateElement("html")
	doc.AsNode().AppendChild(root.AsNode())

	stranger := doc.CreateElement("div").AsNode() // not a child of document
	second := doc.CreateElement("html").AsNode()  // would violate one-element rule

	_, err := doc.AsNode().InsertBeforeWithError(second, stranger)
	if err == nil {
		t.Fatal("expected an error")
	}
	if err.(*DOMError).Name != "NotFoundError" {
		t.Fatalf("expected NotFoundError first, got %s", err.(*DOMError).Name)
	}
}

func TestValidation_DocumentChildConstraints(t *testing.T) {
	doc := NewDocument()

	// No Text children of a Document.
	_, err := doc.AsNode().AppendChildWithError(doc.CreateTextNode("x"))
	if err == nil || err.(*DOMError).Name != "HierarchyRequestError" {
		t.Fatalf("expected HierarchyRequestError for text child, got %v", err)
	}

	doctype, err := doc.Implementation().CreateDocumentType("html", "", "")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := doc.AsNode().AppendChildWithError(doctype); err != nil {
		t.Fatalf("doctype insert failed: %v", err)
	}

	root := doc.CreateElement("html").AsNode()
	if _, err := doc.AsNode().AppendChildWithError(root); err != nil {
		t.Fatalf("element insert failed: %v", err)
	}

	// Second element child rejected.
	if _, err := doc.AsNode().AppendChildWithError(doc.CreateElement("html").AsNode()); err == nil {
		t.Error("expected rejection of second element child")
	}
	// Second doctype rejected.
	doctype2, _ := doc.Implementation().CreateDocumentType("html", "", "")
	if _, err := doc.AsNode().AppendChildWithError(doctype2); err == nil {
		t.Error("expected rejection of second doctype")
	}
	// Doctype after element rejected.
	if _, err := doc.AsNode().InsertBeforeWithError(doctype2, nil); err == nil {
		t.Error("expected rejection of doctype after element")
	}
	// Element before doctype rejected.
	el := doc.CreateElement("div").AsNode()
	if _, err := doc.AsNode().InsertBeforeWithError(el, doctype); err == nil {
		t.Error("expected rejection of element before doctype")
	}

	if doc.Doctype() != doctype {
		t.Error("Doctype accessor mismatch")
	}
	if doc.DocumentElement().AsNode() != root {
		t.Error("DocumentElement accessor mismatch")
	}
}

func TestFragmentSplicing(t *testing.T) {
	doc, parent, children := buildParentWithChildren(t, 2)

	frag := doc.CreateDocumentFragment()
	a := doc.CreateElement("a").AsNode()
	b := doc.CreateElement("b").AsNode()
	frag.AsNode().AppendChild(a)
	frag.AsNode().AppendChild(b)

	parent.InsertBefore(frag.AsNode(), children[1])
	checkSiblingChain(t, parent, []*Node{children[0], a, b, children[1]})

	if frag.AsNode().firstChild != nil {
		t.Error("fragment must be left empty after splicing")
	}
}

func TestFragmentInsertionStepsSeeLaterSiblings(t *testing.T) {
	doc := NewDocument()
	parent := doc.CreateElement("div").AsNode()

	frag := doc.CreateDocumentFragment()
	first := doc.CreateElement("script").AsNode()
	second := doc.CreateElement("p").AsNode()
	frag.AsNode().AppendChild(first)
	frag.AsNode().AppendChild(second)

	var sawSecondParent bool
	var order []*Node
	doc.SetInsertionSteps(func(n *Node) {
		order = append(order, n)
		if n == first {
			sawSecondParent = second.ParentNode() == parent
		}
	})

	parent.AppendChild(frag.AsNode())

	if len(order) != 2 || order[0] != first || order[1] != second {
		t.Fatalf("insertion steps must run per child in source order, got %d entries", len(order))
	}
	if !sawSecondParent {
		t.Error("earlier child's insertion steps must observe later siblings already linked")
	}
}

func TestReplaceChild(t *testing.T) {
	doc, parent, children := buildParentWithChildren(t, 3)
	replacement := doc.CreateElement("em").AsNode()

	old, err := parent.ReplaceChildWithError(replacement, children[1])
	if err != nil {
		t.Fatal(err)
	}
	if old != children[1] {
		t.Error("ReplaceChild must return the replaced node")
	}
	checkSiblingChain(t, parent, []*Node{children[0], replacement, children[2]})

	// Replacement validation failure leaves the tree untouched.
	if _, err := parent.ReplaceChildWithError(doc.AsNode(), replacement); err == nil {
		t.Fatal("expected error replacing with a Document")
	}
	checkSiblingChain(t, parent, []*Node{children[0], replacement, children[2]})
}

func TestContains(t *testing.T) {
	_, parent, children := buildParentWithChildren(t, 2)

	if parent.Contains(nil) {
		t.Error("Contains(nil) must be false")
	}
	if !parent.Contains(parent) {
		t.Error("Contains is inclusive")
	}
	if !parent.Contains(children[0]) {
		t.Error("Contains must find descendant")
	}
	if children[0].Contains(parent) {
		t.Error("child does not contain parent")
	}
}

func TestCompareDocumentPosition(t *testing.T) {
	doc, parent, children := buildParentWithChildren(t, 2)

	if parent.CompareDocumentPosition(parent) != 0 {
		t.Error("self comparison must be 0")
	}

	pos := parent.CompareDocumentPosition(children[0])
	if pos != DocumentPositionContainedBy|DocumentPositionFollowing {
		t.Errorf("expected CONTAINED_BY|FOLLOWING, got %#x", pos)
	}
	pos = children[0].CompareDocumentPosition(parent)
	if pos != DocumentPositionContains|DocumentPositionPreceding {
		t.Errorf("expected CONTAINS|PRECEDING, got %#x", pos)
	}

	pos = children[0].CompareDocumentPosition(children[1])
	if pos != DocumentPositionFollowing {
		t.Errorf("expected FOLLOWING, got %#x", pos)
	}
	pos = children[1].CompareDocumentPosition(children[0])
	if pos != DocumentPositionPreceding {
		t.Errorf("expected PRECEDING, got %#x", pos)
	}

	// Disconnected nodes: disconnected bits plus a stable direction.
	other := doc.CreateElement("div").AsNode()
	first := parent.CompareDocumentPosition(other)
	if first&DocumentPositionDisconnected == 0 || first&DocumentPositionImplementationSpecific == 0 {
		t.Errorf("expected disconnected pattern, got %#x", first)
	}
	dir := first & (DocumentPositionPreceding | DocumentPositionFollowing)
	if dir != DocumentPositionPreceding && dir != DocumentPositionFollowing {
		t.Error("expected exactly one direction bit")
	}
	for i := 0; i < 10; i++ {
		if parent.CompareDocumentPosition(other) != first {
			t.Fatal("disconnected ordering must be stable")
		}
	}
}

func TestCloneNode(t *testing.T) {
	doc := NewDocument()
	div := doc.CreateElement("div")
	div.SetAttribute("data-id", "123")
	div.AsNode().AppendChild(doc.CreateTextNode("hello"))
	inner := doc.CreateElement("span")
	inner.SetAttribute("class", "x")
	div.AsNode().AppendChild(inner.AsNode())

	shallow := div.CloneNode(false)
	if shallow.GetAttribute("data-id") != "123" {
		t.Error("shallow clone must copy attributes")
	}
	if shallow.AsNode().OwnerDocument() != doc {
		t.Error("clone must keep the source's owner document")
	}
	if shallow.AsNode().HasChildNodes() {
		t.Error("shallow clone must not copy children")
	}

	deep := div.CloneNode(true)
	if !deep.AsNode().IsEqualNode(div.AsNode()) {
		t.Error("cloneNode(true) must be equal to the source")
	}
	if deep.AsNode() == div.AsNode() {
		t.Error("clone must be a different node")
	}

	// Listeners are not copied.
	fired := 0
	div.AsNode().AddEventListener("ping", NewEventListener(func(*Event) { fired++ }), AddEventListenerOptions{})
	clone2 := div.CloneNode(false)
	_, _ = clone2.AsNode().DispatchEvent(NewEvent("ping", EventInit{}))
	if fired != 0 {
		t.Error("event listeners must not be cloned")
	}
}

func TestIsEqualNode(t *testing.T) {
	doc := NewDocument()
	a := doc.CreateElement("div")
	a.SetAttribute("x", "1")
	a.SetAttribute("y", "2")
	b := doc.CreateElement("div")
	// Attribute order is irrelevant for equality.
	b.SetAttribute("y", "2")
	b.SetAttribute("x", "1")

	if !a.AsNode().IsEqualNode(b.AsNode()) {
		t.Error("elements with same attributes must be equal")
	}

	b.SetAttribute("x", "3")
	if a.AsNode().IsEqualNode(b.AsNode()) {
		t.Error("different attribute values must not be equal")
	}

	if a.AsNode().IsEqualNode(nil) {
		t.Error("IsEqualNode(nil) must be false")
	}
	if !a.AsNode().IsSameNode(a.AsNode()) || a.AsNode().IsSameNode(b.AsNode()) {
		t.Error("IsSameNode is identity")
	}
}

func TestTextContent(t *testing.T) {
	doc := NewDocument()
	div := doc.CreateElement("div")
	div.AsNode().AppendChild(doc.CreateTextNode("one "))
	span := doc.CreateElement("span")
	span.AsNode().AppendChild(doc.CreateTextNode("two"))
	div.AsNode().AppendChild(span.AsNode())
	div.AsNode().AppendChild(doc.CreateComment("ignored"))

	if got := div.TextContent(); got != "one two" {
		t.Errorf("TextContent = %q", got)
	}

	div.SetTextContent("replaced")
	if div.AsNode().firstChild == nil || div.AsNode().firstChild != div.AsNode().lastChild {
		t.Fatal("SetTextContent must leave exactly one child")
	}
	if div.AsNode().firstChild.NodeType() != TextNode || div.TextContent() != "replaced" {
		t.Error("SetTextContent must install a single text node")
	}

	div.SetTextContent("")
	if div.AsNode().HasChildNodes() {
		t.Error("SetTextContent(\"\") must remove all children")
	}
}

func TestNormalize(t *testing.T) {
	doc := NewDocument()
	div := doc.CreateElement("div")
	div.AsNode().AppendChild(doc.CreateTextNode(""))
	div.AsNode().AppendChild(doc.CreateTextNode("text"))

	div.AsNode().Normalize()

	if div.AsNode().firstChild == nil || div.AsNode().firstChild != div.AsNode().lastChild {
		t.Fatal("normalize must leave exactly one child")
	}
	if div.AsNode().firstChild.NodeValue() != "text" {
		t.Errorf("normalized text = %q", div.AsNode().firstChild.NodeValue())
	}

	// Adjacent texts merge into the first.
	div2 := doc.CreateElement("div")
	div2.AsNode().AppendChild(doc.CreateTextNode("a"))
	div2.AsNode().AppendChild(doc.CreateTextNode("b"))
	div2.AsNode().AppendChild(doc.CreateTextNode("c"))
	keep := div2.AsNode().firstChild
	div2.AsNode().Normalize()
	if div2.AsNode().firstChild != keep || keep.NodeValue() != "abc" {
		t.Error("adjacent text nodes must merge into the first")
	}
}

func TestIsConnected(t *testing.T) {
	doc := NewDocument()
	root := doc.CreateElement("html")
	doc.AsNode().AppendChild(root.AsNode())

	div := doc.CreateElement("div")
	inner := doc.CreateElement("span")
	div.AsNode().AppendChild(inner.AsNode())

	if div.AsNode().IsConnected() || inner.AsNode().IsConnected() {
		t.Error("detached nodes must not be connected")
	}

	root.AsNode().AppendChild(div.AsNode())
	if !div.AsNode().IsConnected() || !inner.AsNode().IsConnected() {
		t.Error("inserted subtree must become connected")
	}

	root.AsNode().RemoveChild(div.AsNode())
	if div.AsNode().IsConnected() || inner.AsNode().IsConnected() {
		t.Error("removed subtree must become disconnected")
	}
}

func TestCrossDocumentAdoption(t *testing.T) {
	a := NewDocument()
	htmlA := a.CreateElement("html")
	a.AsNode().AppendChild(htmlA.AsNode())
	bodyA := a.CreateElement("body")
	htmlA.AsNode().AppendChild(bodyA.AsNode())

	b := NewDocument()
	e := b.CreateElement("div")
	inner := b.CreateElement("span")
	e.AsNode().AppendChild(inner.AsNode())

	bodyA.AsNode().AppendChild(e.AsNode())

	if e.AsNode().OwnerDocument() != a {
		t.Error("inserted node must be adopted into the target document")
	}
	if inner.AsNode().OwnerDocument() != a {
		t.Error("descendants must be adopted too")
	}
	if !e.AsNode().IsConnected() {
		t.Error("adopted node is connected in A")
	}

	// An inclusive ancestor of A.body (A's own html element) cannot be
	// inserted under it; the failure leaves both documents untouched.
	before := b.AsNode().firstChild
	_, err := bodyA.AsNode().AppendChildWithError(htmlA.AsNode())
	if err == nil || err.(*DOMError).Name != "HierarchyRequestError" {
		t.Fatalf("expected HierarchyRequestError, got %v", err)
	}
	if b.AsNode().firstChild != before {
		t.Error("failed insertion must leave the source document untouched")
	}
	if bodyA.AsNode().parentNode != htmlA.AsNode() {
		t.Error("failed insertion must leave the target document untouched")
	}
}

func TestMoveBefore(t *testing.T) {
	doc, parent, children := buildParentWithChildren(t, 3)

	removals := 0
	doc.SetRemovingSteps(func(*Node) { removals++ })

	if err := parent.MoveBefore(children[2], children[0]); err != nil {
		t.Fatal(err)
	}
	checkSiblingChain(t, parent, []*Node{children[2], children[0], children[1]})
	if removals != 0 {
		t.Error("moveBefore must not run removing steps")
	}

	// Cross-document moves are prohibited.
	other := NewDocument()
	foreign := other.CreateElement("div").AsNode()
	if err := parent.MoveBefore(foreign, nil); err == nil {
		t.Fatal("expected HierarchyRequestError for cross-document move")
	}

	// Connected/disconnected boundary is prohibited too.
	root := doc.CreateElement("html")
	doc.AsNode().AppendChild(root.AsNode())
	if err := root.AsNode().MoveBefore(children[0], nil); err == nil {
		t.Fatal("expected error moving between disconnected and connected trees")
	}
}

func TestChildNodeHelpers(t *testing.T) {
	doc, parent, children := buildParentWithChildren(t, 1)
	el := (*Element)(children[0])

	el.Before("x")
	el.After("y")
	if parent.firstChild.NodeType() != TextNode || parent.firstChild.NodeValue() != "x" {
		t.Error("Before must insert before the element")
	}
	if parent.lastChild.NodeValue() != "y" {
		t.Error("After must insert after the element")
	}

	repl := doc.CreateElement("b")
	el.ReplaceWith(repl)
	if children[0].parentNode != nil {
		t.Error("ReplaceWith must detach the original")
	}
	if repl.AsNode().parentNode != parent {
		t.Error("ReplaceWith must attach the replacement")
	}

	repl.Remove()
	if repl.AsNode().parentNode != nil {
		t.Error("Remove must detach")
	}
}

package dom

// Text represents a text node.
type Text Node

// AsNode returns the underlying Node.
func (t *Text) AsNode() *Node {
	return (*Node)(t)
}

// AsCharacterData returns the CharacterData view of this node.
func (t *Text) AsCharacterData() *CharacterData {
	return (*CharacterData)(t)
}

// NodeType returns TextNode (3).
func (t *Text) NodeType() NodeType {
	return TextNode
}

// NodeName returns "#text".
func (t *Text) NodeName() string {
	return "#text"
}

// Data returns the text content.
func (t *Text) Data() string {
	return t.AsNode().NodeValue()
}

// SetData sets the text content.
func (t *Text) SetData(data string) {
	t.AsCharacterData().SetData(data)
}

// Length returns the length of the text in UTF-16 code units.
func (t *Text) Length() int {
	return t.AsCharacterData().Length()
}

// WholeText returns the data of this node and all adjacent text nodes, in
// tree order.
func (t *Text) WholeText() string {
	first := t.AsNode()
	for first.prevSibling != nil && first.prevSibling.nodeType == TextNode {
		first = first.prevSibling
	}

	var result string
	for node := first; node != nil && node.nodeType == TextNode; node = node.nextSibling {
		result += node.NodeValue()
	}
	return result
}

// SplitText splits this text node at the given UTF-16 offset and returns the
// new node holding the tail. Use SplitTextWithError for bounds errors.
func (t *Text) SplitText(offset int) *Text {
	result, _ := t.SplitTextWithError(offset)
	return result
}

// SplitTextWithError splits this text node at the given offset.
func (t *Text) SplitTextWithError(offset int) (*Text, error) {
	length := t.Length()
	if offset < 0 || offset > length {
		return nil, ErrIndexSize("The offset is out of range.")
	}

	data := t.Data()
	doc := t.AsNode().ownerDoc
	if doc == nil {
		return nil, ErrNotSupported("The node has no owner document.")
	}

	tail := doc.CreateTextNode(UTF16SliceFrom(data, offset))
	t.AsCharacterData().DeleteData(offset, length-offset)

	if parent := t.AsNode().parentNode; parent != nil {
		parent.InsertBefore(tail, t.AsNode().nextSibling)
	}
	return (*Text)(tail), nil
}

// CloneNode clones this text node.
func (t *Text) CloneNode(deep bool) *Text {
	return (*Text)(t.AsNode().CloneNode(deep))
}

// Remove removes this text node from its parent.
func (t *Text) Remove() {
	t.AsCharacterData().Remove()
}

// Before inserts nodes before this text node.
func (t *Text) Before(nodes ...interface{}) {
	t.AsCharacterData().Before(nodes...)
}

// After inserts nodes after this text node.
func (t *Text) After(nodes ...interface{}) {
	t.AsCharacterData().After(nodes...)
}

// ReplaceWith replaces this text node with nodes.
func (t *Text) ReplaceWith(nodes ...interface{}) {
	t.AsCharacterData().ReplaceWith(nodes...)
}

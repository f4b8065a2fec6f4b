package dom

// Comment represents a comment node.
type Comment Node

// AsNode returns the underlying Node.
func (c *Comment) AsNode() *Node {
	return (*Node)(c)
}

// AsCharacterData returns the CharacterData view of this node.
func (c *Comment) AsCharacterData() *CharacterData {
	return (*CharacterData)(c)
}

// NodeType returns CommentNode (8).
func (c *Comment) NodeType() NodeType {
	return CommentNode
}

// NodeName returns "#comment".
func (c *Comment) NodeName() string {
	return "#comment"
}

// Data returns the comment text.
func (c *Comment) Data() string {
	return c.AsNode().NodeValue()
}

// SetData sets the comment text.
func (c *Comment) SetData(data string) {
	c.AsCharacterData().SetData(data)
}

// Length returns the length of the data in UTF-16 code units.
func (c *Comment) Length() int {
	return c.AsCharacterData().Length()
}

// CloneNode clones this comment node.
func (c *Comment) CloneNode(deep bool) *Comment {
	return (*Comment)(c.AsNode().CloneNode(deep))
}

// Remove removes this comment from its parent.
func (c *Comment) Remove() {
	c.AsCharacterData().Remove()
}

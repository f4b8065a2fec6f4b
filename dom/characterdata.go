package dom

// CharacterData is the view shared by Text, Comment, CDATASection and
// ProcessingInstruction nodes. All offsets are UTF-16 code units. Every
// length-changing mutation funnels through replaceDataRaw so live Range
// boundary points shift with the data.
type CharacterData Node

// AsNode returns the underlying Node.
func (cd *CharacterData) AsNode() *Node {
	return (*Node)(cd)
}

// Data returns the character data.
func (cd *CharacterData) Data() string {
	return cd.AsNode().NodeValue()
}

// SetData replaces the whole data.
func (cd *CharacterData) SetData(data string) {
	cd.replaceDataRaw(0, cd.Length(), data)
}

// Length returns the data length in UTF-16 code units.
func (cd *CharacterData) Length() int {
	return UTF16Length(cd.Data())
}

// SubstringData returns count code units starting at offset.
// Use SubstringDataWithError for bounds errors.
func (cd *CharacterData) SubstringData(offset, count int) string {
	s, _ := cd.SubstringDataWithError(offset, count)
	return s
}

// SubstringDataWithError returns count code units starting at offset, or an
// IndexSizeError when offset is past the end.
func (cd *CharacterData) SubstringDataWithError(offset, count int) (string, error) {
	length := cd.Length()
	if offset < 0 || offset > length {
		return "", ErrIndexSize("The offset is out of range.")
	}
	if count < 0 || offset+count > length {
		count = length - offset
	}
	return UTF16Substring(cd.Data(), offset, offset+count), nil
}

// AppendData appends a string to the data.
func (cd *CharacterData) AppendData(data string) {
	cd.replaceDataRaw(cd.Length(), 0, data)
}

// InsertData inserts a string at the given offset.
// Use InsertDataWithError for bounds errors.
func (cd *CharacterData) InsertData(offset int, data string) {
	_ = cd.InsertDataWithError(offset, data)
}

// InsertDataWithError inserts a string at the given offset, failing with
// IndexSizeError when offset is past the end.
func (cd *CharacterData) InsertDataWithError(offset int, data string) error {
	return cd.ReplaceDataWithError(offset, 0, data)
}

// DeleteData deletes count code units starting at offset.
// Use DeleteDataWithError for bounds errors.
func (cd *CharacterData) DeleteData(offset, count int) {
	_ = cd.DeleteDataWithError(offset, count)
}

// DeleteDataWithError deletes count code units starting at offset.
func (cd *CharacterData) DeleteDataWithError(offset, count int) error {
	return cd.ReplaceDataWithError(offset, count, "")
}

// ReplaceData replaces count code units starting at offset with data.
// Use ReplaceDataWithError for bounds errors.
func (cd *CharacterData) ReplaceData(offset, count int, data string) {
	_ = cd.ReplaceDataWithError(offset, count, data)
}

// ReplaceDataWithError implements the "replace data" algorithm: an offset
// past the end raises IndexSizeError; count is clamped to the available
// units.
func (cd *CharacterData) ReplaceDataWithError(offset, count int, data string) error {
	length := cd.Length()
	if offset < 0 || offset > length {
		return ErrIndexSize("The offset is out of range.")
	}
	if count < 0 || offset+count > length {
		count = length - offset
	}
	cd.replaceDataRaw(offset, count, data)
	return nil
}

// replaceDataRaw performs the splice and notifies mutation callbacks with the
// precise offset/count so ranges can re-point their boundaries. Bounds are
// the caller's responsibility.
func (cd *CharacterData) replaceDataRaw(offset, count int, data string) {
	n := cd.AsNode()
	current := n.NodeValue()

	notifyReplaceData(n, offset, count, data)

	newValue := UTF16SliceTo(current, offset) + data + UTF16SliceFrom(current, offset+count)
	n.nodeValue = &newValue
	switch n.nodeType {
	case TextNode, CDATASectionNode:
		n.textData = &newValue
	case CommentNode:
		n.commentData = &newValue
	}
}

// ChildNode conveniences shared by the character data variants.

// Remove removes this node from its parent.
func (cd *CharacterData) Remove() {
	if cd.AsNode().parentNode != nil {
		cd.AsNode().parentNode.RemoveChild(cd.AsNode())
	}
}

// Before inserts nodes before this node.
func (cd *CharacterData) Before(nodes ...interface{}) {
	childNodeBefore(cd.AsNode(), nodes)
}

// After inserts nodes after this node.
func (cd *CharacterData) After(nodes ...interface{}) {
	childNodeAfter(cd.AsNode(), nodes)
}

// ReplaceWith replaces this node with nodes.
func (cd *CharacterData) ReplaceWith(nodes ...interface{}) {
	childNodeReplaceWith(cd.AsNode(), nodes)
}

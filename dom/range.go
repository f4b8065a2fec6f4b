package dom

// Boundary comparison modes for CompareBoundaryPoints.
const (
	StartToStart = 0
	StartToEnd   = 1
	EndToEnd     = 2
	EndToStart   = 3
)

// Range represents a fragment of a document between two boundary points.
// It is live: the document re-points its boundaries on every structural or
// character data mutation. A fresh Range is collapsed at (document, 0).
type Range struct {
	startContainer *Node
	startOffset    int
	endContainer   *Node
	endOffset      int
	ownerDocument  *Document
}

// NewRange creates a new Range with both boundary points at the start of the
// document and registers it for live mutation tracking.
func NewRange(doc *Document) *Range {
	r := &Range{
		startContainer: doc.AsNode(),
		startOffset:    0,
		endContainer:   doc.AsNode(),
		endOffset:      0,
		ownerDocument:  doc,
	}
	doc.registerRange(r)
	return r
}

// StartContainer returns the node where the range starts.
func (r *Range) StartContainer() *Node {
	return r.startContainer
}

// StartOffset returns the offset within the start container.
func (r *Range) StartOffset() int {
	return r.startOffset
}

// EndContainer returns the node where the range ends.
func (r *Range) EndContainer() *Node {
	return r.endContainer
}

// EndOffset returns the offset within the end container.
func (r *Range) EndOffset() int {
	return r.endOffset
}

// Collapsed returns true if start and end are the same point.
func (r *Range) Collapsed() bool {
	return r.startContainer == r.endContainer && r.startOffset == r.endOffset
}

// CommonAncestorContainer returns the deepest node containing both boundary
// points.
func (r *Range) CommonAncestorContainer() *Node {
	startAncestors := make(map[*Node]bool)
	for node := r.startContainer; node != nil; node = node.parentNode {
		startAncestors[node] = true
	}
	for node := r.endContainer; node != nil; node = node.parentNode {
		if startAncestors[node] {
			return node
		}
	}
	return nil
}

// validateBoundary checks a prospective boundary point.
func validateBoundary(node *Node, offset int) error {
	if node == nil {
		return ErrNotFound("Node is null.")
	}
	if node.nodeType == DocumentTypeNode {
		return ErrInvalidNodeType("The supplied node is a DocumentType which is not a valid boundary point.")
	}
	if offset < 0 || offset > nodeLength(node) {
		return ErrIndexSize("The offset is out of range.")
	}
	return nil
}

// SetStart sets the start boundary point. If the node lies in another tree,
// or the point follows the current end, the range collapses to it.
func (r *Range) SetStart(node *Node, offset int) error {
	if err := validateBoundary(node, offset); err != nil {
		return err
	}

	differentTree := node.GetRootNode() != r.endContainer.GetRootNode()

	r.startContainer = node
	r.startOffset = offset

	if differentTree || comparePoints(r.startContainer, r.startOffset, r.endContainer, r.endOffset) > 0 {
		r.endContainer = r.startContainer
		r.endOffset = r.startOffset
	}
	return nil
}

// SetEnd sets the end boundary point, collapsing when needed.
func (r *Range) SetEnd(node *Node, offset int) error {
	if err := validateBoundary(node, offset); err != nil {
		return err
	}

	differentTree := node.GetRootNode() != r.startContainer.GetRootNode()

	r.endContainer = node
	r.endOffset = offset

	if differentTree || comparePoints(r.startContainer, r.startOffset, r.endContainer, r.endOffset) > 0 {
		r.startContainer = r.endContainer
		r.startOffset = r.endOffset
	}
	return nil
}

// SetStartBefore sets the start to immediately before the given node.
func (r *Range) SetStartBefore(node *Node) error {
	parent, index, err := boundaryAround(node)
	if err != nil {
		return err
	}
	return r.SetStart(parent, index)
}

// SetStartAfter sets the start to immediately after the given node.
func (r *Range) SetStartAfter(node *Node) error {
	parent, index, err := boundaryAround(node)
	if err != nil {
		return err
	}
	return r.SetStart(parent, index+1)
}

// SetEndBefore sets the end to immediately before the given node.
func (r *Range) SetEndBefore(node *Node) error {
	parent, index, err := boundaryAround(node)
	if err != nil {
		return err
	}
	return r.SetEnd(parent, index)
}

// SetEndAfter sets the end to immediately after the given node.
func (r *Range) SetEndAfter(node *Node) error {
	parent, index, err := boundaryAround(node)
	if err != nil {
		return err
	}
	return r.SetEnd(parent, index+1)
}

func boundaryAround(node *Node) (*Node, int, error) {
	if node == nil {
		return nil, 0, ErrNotFound("Node is null.")
	}
	parent := node.parentNode
	if parent == nil {
		return nil, 0, ErrInvalidNodeType("The node has no parent.")
	}
	return parent, indexOfChild(parent, node), nil
}

// Collapse collapses the range to one of its boundary points.
func (r *Range) Collapse(toStart bool) {
	if toStart {
		r.endContainer = r.startContainer
		r.endOffset = r.startOffset
	} else {
		r.startContainer = r.endContainer
		r.startOffset = r.endOffset
	}
}

// SelectNode sets the range to contain the given node.
func (r *Range) SelectNode(node *Node) error {
	parent, index, err := boundaryAround(node)
	if err != nil {
		return err
	}
	r.startContainer = parent
	r.startOffset = index
	r.endContainer = parent
	r.endOffset = index + 1
	return nil
}

// SelectNodeContents sets the range to contain the contents of the given node.
func (r *Range) SelectNodeContents(node *Node) error {
	if node == nil {
		return ErrNotFound("Node is null.")
	}
	if node.nodeType == DocumentTypeNode {
		return ErrInvalidNodeType("The supplied node is a DocumentType.")
	}
	r.startContainer = node
	r.startOffset = 0
	r.endContainer = node
	r.endOffset = nodeLength(node)
	return nil
}

// CompareBoundaryPoints compares a boundary point of this range against one
// of sourceRange, returning -1, 0 or +1.
func (r *Range) CompareBoundaryPoints(how int, sourceRange *Range) (int, error) {
	if sourceRange == nil {
		return 0, ErrNotFound("Source range is null.")
	}
	if r.ownerDocument != sourceRange.ownerDocument {
		return 0, ErrWrongDocument("The two Ranges are not in the same tree.")
	}

	var thisContainer, sourceContainer *Node
	var thisOffset, sourceOffset int

	switch how {
	case StartToStart:
		thisContainer, thisOffset = r.startContainer, r.startOffset
		sourceContainer, sourceOffset = sourceRange.startContainer, sourceRange.startOffset
	case StartToEnd:
		thisContainer, thisOffset = r.endContainer, r.endOffset
		sourceContainer, sourceOffset = sourceRange.startContainer, sourceRange.startOffset
	case EndToEnd:
		thisContainer, thisOffset = r.endContainer, r.endOffset
		sourceContainer, sourceOffset = sourceRange.endContainer, sourceRange.endOffset
	case EndToStart:
		thisContainer, thisOffset = r.startContainer, r.startOffset
		sourceContainer, sourceOffset = sourceRange.endContainer, sourceRange.endOffset
	default:
		return 0, ErrNotSupported("Invalid comparison type.")
	}

	return comparePoints(thisContainer, thisOffset, sourceContainer, sourceOffset), nil
}

// comparePoints compares two boundary points in the same tree.
// Returns -1 if (nodeA, offsetA) is before (nodeB, offsetB), 0 if equal, 1 if after.
func comparePoints(nodeA *Node, offsetA int, nodeB *Node, offsetB int) int {
	if nodeA == nodeB {
		switch {
		case offsetA < offsetB:
			return -1
		case offsetA > offsetB:
			return 1
		default:
			return 0
		}
	}

	if isAncestor(nodeA, nodeB) {
		child := nodeB
		for child.parentNode != nodeA {
			child = child.parentNode
		}
		if indexOfChild(nodeA, child) < offsetA {
			return 1
		}
		return -1
	}

	if isAncestor(nodeB, nodeA) {
		child := nodeA
		for child.parentNode != nodeB {
			child = child.parentNode
		}
		if indexOfChild(nodeB, child) < offsetB {
			return -1
		}
		return 1
	}

	if nodeA.precedesInTreeOrder(nodeB) {
		return -1
	}
	return 1
}

// DeleteContents removes the contents of the range from the document.
func (r *Range) DeleteContents() error {
	if r.Collapsed() {
		return nil
	}

	if r.startContainer == r.endContainer && isTextLike(r.startContainer) {
		(*CharacterData)(r.startContainer).DeleteData(r.startOffset, r.endOffset-r.startOffset)
		return nil
	}

	_, err := r.ExtractContents()
	return err
}

// ExtractContents moves the contents of the range into a new
// DocumentFragment and returns it, collapsing the range to its start.
func (r *Range) ExtractContents() (*DocumentFragment, error) {
	frag := r.ownerDocument.CreateDocumentFragment()

	if r.Collapsed() {
		return frag, nil
	}

	// Whole range inside one text node: split off the selected portion.
	if r.startContainer == r.endContainer && isTextLike(r.startContainer) {
		clone := r.startContainer.CloneNode(false)
		text := r.startContainer.NodeValue()
		clone.SetNodeValue(UTF16Substring(text, r.startOffset, r.endOffset))

		(*CharacterData)(r.startContainer).DeleteData(r.startOffset, r.endOffset-r.startOffset)

		(*Node)(frag).AppendChild(clone)
		return frag, nil
	}

	commonAncestor := r.CommonAncestorContainer()
	if commonAncestor == nil {
		return frag, nil
	}

	// Partially selected start/end text nodes are split.
	var firstPartiallyContained *Node
	if isTextLike(r.startContainer) && r.startOffset > 0 {
		text := r.startContainer.NodeValue()
		firstPartiallyContained = r.startContainer.CloneNode(false)
		firstPartiallyContained.SetNodeValue(UTF16SliceFrom(text, r.startOffset))
		tail := UTF16Length(text) - r.startOffset
		(*CharacterData)(r.startContainer).DeleteData(r.startOffset, tail)
	}

	var lastPartiallyContained *Node
	if isTextLike(r.endContainer) && r.endOffset < UTF16Length(r.endContainer.NodeValue()) {
		text := r.endContainer.NodeValue()
		lastPartiallyContained = r.endContainer.CloneNode(false)
		lastPartiallyContained.SetNodeValue(UTF16SliceTo(text, r.endOffset))
		(*CharacterData)(r.endContainer).DeleteData(0, r.endOffset)
	}

	for _, child := range r.getContainedChildren(commonAncestor) {
		if child.parentNode != nil {
			child.parentNode.RemoveChild(child)
		}
		(*Node)(frag).AppendChild(child)
	}

	if firstPartiallyContained != nil {
		(*Node)(frag).InsertBefore(firstPartiallyContained, (*Node)(frag).firstChild)
	}
	if lastPartiallyContained != nil {
		(*Node)(frag).AppendChild(lastPartiallyContained)
	}

	r.endContainer = r.startContainer
	r.endOffset = r.startOffset

	return frag, nil
}

// CloneContents returns a DocumentFragment holding a copy of the range's
// contents, leaving the tree and the range untouched.
func (r *Range) CloneContents() (*DocumentFragment, error) {
	frag := r.ownerDocument.CreateDocumentFragment()

	if r.Collapsed() {
		return frag, nil
	}

	if r.startContainer == r.endContainer && isTextLike(r.startContainer) {
		clone := r.startContainer.CloneNode(false)
		text := r.startContainer.NodeValue()
		clone.SetNodeValue(UTF16Substring(text, r.startOffset, r.endOffset))
		(*Node)(frag).AppendChild(clone)
		return frag, nil
	}

	commonAncestor := r.CommonAncestorContainer()
	if commonAncestor == nil {
		return frag, nil
	}

	for _, child := range r.getContainedChildren(commonAncestor) {
		(*Node)(frag).AppendChild(child.CloneNode(true))
	}

	if isTextLike(r.startContainer) && r.startOffset > 0 {
		text := r.startContainer.NodeValue()
		textNode := r.ownerDocument.CreateTextNode(UTF16SliceFrom(text, r.startOffset))
		if (*Node)(frag).firstChild != nil {
			(*Node)(frag).InsertBefore(textNode, (*Node)(frag).firstChild)
		} else {
			(*Node)(frag).AppendChild(textNode)
		}
	}

	if isTextLike(r.endContainer) && r.endOffset < UTF16Length(r.endContainer.NodeValue()) {
		text := r.endContainer.NodeValue()
		textNode := r.ownerDocument.CreateTextNode(UTF16SliceTo(text, r.endOffset))
		(*Node)(frag).AppendChild(textNode)
	}

	return frag, nil
}

// InsertNode inserts a node at the start of the range, splitting a text
// container when the start offset falls inside it.
func (r *Range) InsertNode(node *Node) error {
	if node == nil {
		return ErrNotFound("Node is null.")
	}

	if isTextLike(r.startContainer) {
		parent := r.startContainer.parentNode
		if parent == nil {
			return ErrHierarchyRequest("Cannot insert into an orphan text node.")
		}

		textLen := UTF16Length(r.startContainer.NodeValue())
		if r.startOffset > 0 && r.startOffset < textLen {
			if _, err := (*Text)(r.startContainer).SplitTextWithError(r.startOffset); err != nil {
				return err
			}
		}

		_, err := parent.InsertBeforeWithError(node, r.startContainer.nextSibling)
		return err
	}

	refChild := r.startContainer.firstChild
	for i := 0; i < r.startOffset && refChild != nil; i++ {
		refChild = refChild.nextSibling
	}
	_, err := r.startContainer.InsertBeforeWithError(node, refChild)
	return err
}

// SurroundContents extracts the range contents into newParent and selects
// newParent. Partially selected non-text nodes raise InvalidStateError.
func (r *Range) SurroundContents(newParent *Node) error {
	if newParent == nil {
		return ErrNotFound("New parent is null.")
	}

	commonAncestor := r.CommonAncestorContainer()
	if commonAncestor != nil {
		stop := nextNodeDescendants(commonAncestor)
		for node := commonAncestor; node != stop; node = nextNodeInTree(node) {
			if !isTextLike(node) && r.isPartiallyContained(node) {
				return ErrInvalidState("The Range has partially selected a non-Text node.")
			}
		}
	}

	switch newParent.nodeType {
	case DocumentNode, DocumentTypeNode, DocumentFragmentNode:
		return ErrInvalidNodeType("Invalid new parent type.")
	}

	frag, err := r.ExtractContents()
	if err != nil {
		return err
	}

	for newParent.firstChild != nil {
		newParent.RemoveChild(newParent.firstChild)
	}

	if err := r.InsertNode(newParent); err != nil {
		return err
	}
	newParent.AppendChild((*Node)(frag))

	return r.SelectNode(newParent)
}

// isTextLike returns true for Text and CDATASection nodes.
func isTextLike(node *Node) bool {
	return node.nodeType == TextNode || node.nodeType == CDATASectionNode
}

// isPartiallyContained: node is an inclusive ancestor of exactly one of the
// range's boundary containers.
func (r *Range) isPartiallyContained(node *Node) bool {
	ofStart := isInclusiveAncestor(node, r.startContainer)
	ofEnd := isInclusiveAncestor(node, r.endContainer)
	return ofStart != ofEnd
}

// CloneRange returns a copy of this range, registered for live tracking.
func (r *Range) CloneRange() *Range {
	clone := &Range{
		startContainer: r.startContainer,
		startOffset:    r.startOffset,
		endContainer:   r.endContainer,
		endOffset:      r.endOffset,
		ownerDocument:  r.ownerDocument,
	}
	r.ownerDocument.registerRange(clone)
	return clone
}

// Detach unregisters the range from live tracking. Its boundary points stop
// following mutations.
func (r *Range) Detach() {
	r.ownerDocument.unregisterRange(r)
}

// ToString returns the text content of the range.
func (r *Range) ToString() string {
	if r.Collapsed() {
		return ""
	}

	if r.startContainer == r.endContainer && r.startContainer.nodeType == TextNode {
		return UTF16Substring(r.startContainer.NodeValue(), r.startOffset, r.endOffset)
	}

	var result string
	commonAncestor := r.CommonAncestorContainer()
	if commonAncestor == nil {
		return ""
	}

	stop := nextNodeDescendants(commonAncestor)
	for node := commonAncestor; node != nil && node != stop; node = nextNodeInTree(node) {
		if node.nodeType != TextNode || !r.intersectsTextNode(node) {
			continue
		}
		text := node.NodeValue()
		startIdx := 0
		endIdx := UTF16Length(text)
		if node == r.startContainer {
			startIdx = r.startOffset
		}
		if node == r.endContainer {
			endIdx = r.endOffset
		}
		if startIdx < endIdx {
			result += UTF16Substring(text, startIdx, endIdx)
		}
	}
	return result
}

func (r *Range) intersectsTextNode(node *Node) bool {
	if node == r.startContainer || node == r.endContainer {
		return true
	}
	return r.IntersectsNode(node)
}

// IsPointInRange returns true if the given point lies within the range.
func (r *Range) IsPointInRange(node *Node, offset int) bool {
	result, err := r.ComparePoint(node, offset)
	return err == nil && result == 0
}

// ComparePoint compares a point to the range: -1 before, 0 inside, 1 after.
func (r *Range) ComparePoint(node *Node, offset int) (int, error) {
	if node == nil {
		return 0, ErrNotFound("Node is null.")
	}
	if node.GetRootNode() != r.startContainer.GetRootNode() {
		return 0, ErrWrongDocument("The node is not in the same tree as the Range.")
	}
	if node.nodeType == DocumentTypeNode {
		return 0, ErrInvalidNodeType("The node is a DocumentType.")
	}
	if offset < 0 || offset > nodeLength(node) {
		return 0, ErrIndexSize("The offset is out of range.")
	}

	if comparePoints(node, offset, r.startContainer, r.startOffset) < 0 {
		return -1, nil
	}
	if comparePoints(node, offset, r.endContainer, r.endOffset) > 0 {
		return 1, nil
	}
	return 0, nil
}

// IntersectsNode returns true if the range intersects the given node.
func (r *Range) IntersectsNode(node *Node) bool {
	if node == nil {
		return false
	}

	if r.startContainer.GetRootNode() != node.GetRootNode() {
		return false
	}

	parent := node.parentNode
	if parent == nil {
		return true
	}

	offset := indexOfChild(parent, node)
	beforeEnd := comparePoints(parent, offset, r.endContainer, r.endOffset) < 0
	afterStart := comparePoints(parent, offset+1, r.startContainer, r.startOffset) > 0
	return beforeEnd && afterStart
}

// getContainedChildren returns children of ancestor fully contained in the range.
func (r *Range) getContainedChildren(ancestor *Node) []*Node {
	var result []*Node
	for child := ancestor.firstChild; child != nil; child = child.nextSibling {
		if r.containsNode(child) {
			result = append(result, child)
		}
	}
	return result
}

// containsNode returns true if the node is fully contained in the range.
func (r *Range) containsNode(node *Node) bool {
	parent := node.parentNode
	if parent == nil {
		return false
	}
	index := indexOfChild(parent, node)
	if comparePoints(parent, index, r.startContainer, r.startOffset) < 0 {
		return false
	}
	if comparePoints(parent, index+1, r.endContainer, r.endOffset) > 0 {
		return false
	}
	return true
}

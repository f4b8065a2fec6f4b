package dom

import (
	"strings"
	"unsafe"
)

// unsafePointer returns an unsafe.Pointer for a node.
// Used for consistent ordering of disconnected nodes.
func unsafePointer(n *Node) unsafe.Pointer {
	return unsafe.Pointer(n)
}

// Node represents a node in the DOM tree. It is the base record from which
// Document, Element, Text, Comment, and the other node kinds are viewed.
//
// Ownership: parentNode and ownerDoc are weak links (they do not count
// toward refCount), so a tree never forms a reference cycle through them.
// Reachability is computed from the Document root, not from back-pointers.
type Node struct {
	nodeType   NodeType
	nodeName   string
	nodeValue  *string // nil for Element, Document, DocumentFragment
	ownerDoc   *Document
	parentNode *Node
	childNodes *NodeList

	// First/last child and sibling pointers for efficient traversal
	firstChild  *Node
	lastChild   *Node
	prevSibling *Node
	nextSibling *Node

	// External holders. A detached node whose count reaches zero is
	// destructible; the owning document's arena frees any leftovers.
	refCount int

	// Cached connectivity: true iff walking parentNode reaches ownerDoc.
	// Maintained by the mutation algorithms.
	connected bool

	// Listener list, allocated on first AddEventListener.
	events *EventTarget

	// Type-specific data (only one will be non-nil based on nodeType)
	elementData  *elementData
	textData     *string
	commentData  *string
	documentData *documentData
	docTypeData  *docTypeData

	// Back-reference when this node is a ShadowRoot's underlying node
	shadowRoot *ShadowRoot
}

// elementData holds data specific to Element nodes.
type elementData struct {
	localName    string
	namespaceURI string
	prefix       string
	tagName      string
	attributes   *NamedNodeMap
	classList    *DOMTokenList
	interned     *Name // pool handle for localName when factory-created

	// The shadow root attached to this element (if any)
	shadowRoot *ShadowRoot
}

// documentData holds data specific to Document nodes: the arena, the string
// pool, the id index, the live-collection registry, the tree revision counter
// and the two reference counts driving two-phase destruction.
type documentData struct {
	contentType  string
	url          string
	characterSet string

	implementation *DOMImplementation

	pool  *StringPool
	arena map[*Node]struct{}

	// Monotonic counter bumped on every mutation; live collections use it
	// to invalidate their snapshots.
	treeRevision uint64

	// externalRefs counts public holders of the Document; internalRefs is
	// the document's self-reference while nodes remain attached. Teardown
	// starts when externalRefs reaches zero.
	externalRefs int
	internalRefs int
	destroyed    bool

	// id attribute -> connected elements carrying it, unordered
	idIndex map[string][]*Node

	mutationCallbacks []MutationCallback
	ranges            map[*Range]struct{}
	rangesHooked      bool
	nodeIterators     []*NodeIterator

	// Embedder hooks, run synchronously after link mutation for each
	// inserted/removed node (script execution, custom element upgrades...).
	insertionSteps func(*Node)
	removingSteps  func(*Node)

	// Cached live collections so repeated accessor calls return the same
	// object.
	tagCollections   map[string]*HTMLCollection
	classCollections map[string]*HTMLCollection
}

// docTypeData holds data specific to DocumentType nodes.
type docTypeData struct {
	name     string
	publicId string
	systemId string
}

// newNode creates a new node with the given type and name. The node starts
// with one reference, owned by its creator.
func newNode(nodeType NodeType, nodeName string, ownerDoc *Document) *Node {
	n := &Node{
		nodeType: nodeType,
		nodeName: nodeName,
		ownerDoc: ownerDoc,
		refCount: 1,
	}
	n.childNodes = newNodeList(n)
	return n
}

// NodeType returns the type of the node.
func (n *Node) NodeType() NodeType {
	return n.nodeType
}

// NodeName returns the name of the node: the uppercase tag name for HTML
// elements, "#text" for text nodes, "#document" for documents, and so on.
func (n *Node) NodeName() string {
	return n.nodeName
}

// NodeValue returns the value of the node. For character data nodes this is
// the data; for other nodes it is the empty string.
func (n *Node) NodeValue() string {
	if n.nodeValue != nil {
		return *n.nodeValue
	}
	return ""
}

// SetNodeValue sets the value of the node. Only character data nodes are
// affected; for other node types this is a no-op per the spec.
func (n *Node) SetNodeValue(value string) {
	if !n.nodeType.isCharacterData() {
		return
	}
	old := n.NodeValue()
	(*CharacterData)(n).replaceDataRaw(0, UTF16Length(old), value)
}

// OwnerDocument returns the Document that owns this node.
// For Document nodes, this returns nil per the spec.
func (n *Node) OwnerDocument() *Document {
	if n.nodeType == DocumentNode {
		return nil
	}
	return n.ownerDoc
}

// doc returns the node's document for internal bookkeeping: ownerDoc, or the
// node itself viewed as a Document.
func (n *Node) doc() *Document {
	if n.nodeType == DocumentNode {
		return (*Document)(n)
	}
	return n.ownerDoc
}

// ParentNode returns the parent of this node.
func (n *Node) ParentNode() *Node {
	return n.parentNode
}

// ParentElement returns the parent Element, or nil if the parent is not an element.
func (n *Node) ParentElement() *Element {
	if n.parentNode != nil && n.parentNode.nodeType == ElementNode {
		return (*Element)(n.parentNode)
	}
	return nil
}

// ChildNodes returns a live NodeList of child nodes.
func (n *Node) ChildNodes() *NodeList {
	return n.childNodes
}

// FirstChild returns the first child node, or nil if there are no children.
func (n *Node) FirstChild() *Node {
	return n.firstChild
}

// LastChild returns the last child node, or nil if there are no children.
func (n *Node) LastChild() *Node {
	return n.lastChild
}

// PreviousSibling returns the previous sibling node, or nil if this is the first child.
func (n *Node) PreviousSibling() *Node {
	return n.prevSibling
}

// NextSibling returns the next sibling node, or nil if this is the last child.
func (n *Node) NextSibling() *Node {
	return n.nextSibling
}

// HasChildNodes returns true if this node has any child nodes.
func (n *Node) HasChildNodes() bool {
	return n.firstChild != nil
}

// IsConnected returns true if the node is connected to its document:
// following parent links (crossing shadow boundaries through hosts) reaches
// the owner Document.
func (n *Node) IsConnected() bool {
	return n.connected || n.nodeType == DocumentNode
}

// GetRootNode returns the root of the tree containing this node.
func (n *Node) GetRootNode() *Node {
	root := n
	for root.parentNode != nil {
		root = root.parentNode
	}
	return root
}

// GetShadowIncludingRoot returns the shadow-including root of this node,
// traversing from shadow roots to their host elements.
func (n *Node) GetShadowIncludingRoot() *Node {
	root := n.GetRootNode()
	for root != nil && root.shadowRoot != nil {
		host := root.shadowRoot.Host()
		if host == nil {
			break
		}
		root = host.AsNode().GetRootNode()
	}
	return root
}

// IsShadowRoot returns true if this node is the underlying node of a ShadowRoot.
func (n *Node) IsShadowRoot() bool {
	return n.shadowRoot != nil
}

// GetShadowRoot returns the ShadowRoot if this node is its underlying node, or nil.
func (n *Node) GetShadowRoot() *ShadowRoot {
	return n.shadowRoot
}

// TextContent returns the text content of the node and its descendants.
func (n *Node) TextContent() string {
	switch n.nodeType {
	case DocumentNode, DocumentTypeNode:
		return ""
	case TextNode, CommentNode, ProcessingInstructionNode, CDATASectionNode:
		return n.NodeValue()
	default:
		var sb strings.Builder
		n.collectTextContent(&sb)
		return sb.String()
	}
}

func (n *Node) collectTextContent(sb *strings.Builder) {
	for child := n.firstChild; child != nil; child = child.nextSibling {
		switch child.nodeType {
		case TextNode, CDATASectionNode:
			sb.WriteString(child.NodeValue())
		case ElementNode, DocumentFragmentNode:
			child.collectTextContent(sb)
		}
	}
}

// SetTextContent sets the text content of the node. For elements and document
// fragments this replaces all children with a single text node (or none when
// value is empty).
func (n *Node) SetTextContent(value string) {
	switch n.nodeType {
	case DocumentNode, DocumentTypeNode:
		return
	case TextNode, CommentNode, ProcessingInstructionNode, CDATASectionNode:
		n.SetNodeValue(value)
	default:
		for n.firstChild != nil {
			n.RemoveChild(n.firstChild)
		}
		if value != "" && n.ownerDoc != nil {
			n.AppendChild(n.ownerDoc.CreateTextNode(value))
		}
	}
}

// Normalize merges adjacent Text siblings into the first and removes empty
// Text nodes, recursing through element children.
func (n *Node) Normalize() {
	var nodesToRemove []*Node

	for child := n.firstChild; child != nil; {
		next := child.nextSibling

		if child.nodeType == TextNode {
			if child.NodeValue() == "" {
				nodesToRemove = append(nodesToRemove, child)
			} else {
				for next != nil && next.nodeType == TextNode {
					child.SetNodeValue(child.NodeValue() + next.NodeValue())
					nodesToRemove = append(nodesToRemove, next)
					next = next.nextSibling
				}
			}
		} else if child.nodeType == ElementNode {
			child.Normalize()
		}

		child = next
	}

	for _, node := range nodesToRemove {
		n.RemoveChild(node)
	}
}

// Contains returns true iff other is an inclusive descendant of this node.
// A nil other returns false.
func (n *Node) Contains(other *Node) bool {
	if other == nil {
		return false
	}
	for node := other; node != nil; node = node.parentNode {
		if node == n {
			return true
		}
	}
	return false
}

// Document position bitmask values per the DOM spec.
const (
	DocumentPositionDisconnected           uint16 = 0x01
	DocumentPositionPreceding              uint16 = 0x02
	DocumentPositionFollowing              uint16 = 0x04
	DocumentPositionContains               uint16 = 0x08
	DocumentPositionContainedBy            uint16 = 0x10
	DocumentPositionImplementationSpecific uint16 = 0x20
)

// CompareDocumentPosition returns a bitmask describing the position of other
// relative to this node. Comparing a node against itself returns 0.
// Disconnected nodes report DISCONNECTED|IMPLEMENTATION_SPECIFIC plus a
// direction that is stable for the lifetime of the process.
func (n *Node) CompareDocumentPosition(other *Node) uint16 {
	if n == other {
		return 0
	}

	if other == nil {
		return DocumentPositionDisconnected | DocumentPositionImplementationSpecific
	}

	root1 := n.GetRootNode()
	root2 := other.GetRootNode()
	if root1 != root2 {
		// Pointer order gives a stable direction for disconnected nodes.
		if uintptr(unsafePointer(n)) < uintptr(unsafePointer(other)) {
			return DocumentPositionDisconnected | DocumentPositionImplementationSpecific | DocumentPositionFollowing
		}
		return DocumentPositionDisconnected | DocumentPositionImplementationSpecific | DocumentPositionPreceding
	}

	if n.Contains(other) {
		return DocumentPositionContainedBy | DocumentPositionFollowing
	}
	if other.Contains(n) {
		return DocumentPositionContains | DocumentPositionPreceding
	}

	if n.precedesInTreeOrder(other) {
		return DocumentPositionFollowing
	}
	return DocumentPositionPreceding
}

// precedesInTreeOrder returns true if n comes before other in tree order
// (pre-order depth-first traversal). Assumes both nodes share a root and
// neither contains the other.
func (n *Node) precedesInTreeOrder(other *Node) bool {
	var nAncestors []*Node
	for node := n; node != nil; node = node.parentNode {
		nAncestors = append(nAncestors, node)
	}
	var otherAncestors []*Node
	for node := other; node != nil; node = node.parentNode {
		otherAncestors = append(otherAncestors, node)
	}

	nLen := len(nAncestors)
	otherLen := len(otherAncestors)
	minLen := nLen
	if otherLen < minLen {
		minLen = otherLen
	}

	divergePoint := 0
	for i := 0; i < minLen; i++ {
		if nAncestors[nLen-1-i] != otherAncestors[otherLen-1-i] {
			break
		}
		divergePoint = i + 1
	}

	var nChild, otherChild *Node
	if divergePoint < nLen {
		nChild = nAncestors[nLen-1-divergePoint]
	}
	if divergePoint < otherLen {
		otherChild = otherAncestors[otherLen-1-divergePoint]
	}

	commonAncestor := nAncestors[nLen-divergePoint]
	for child := commonAncestor.firstChild; child != nil; child = child.nextSibling {
		if child == nChild {
			return true
		}
		if child == otherChild {
			return false
		}
	}
	return false
}

// IsSameNode returns true if this node is the same node as the given node.
func (n *Node) IsSameNode(other *Node) bool {
	return n == other
}

// IsEqualNode returns true if this node is structurally equal to the given
// node: same kind, same kind-specific properties, and pairwise-equal children
// in order.
func (n *Node) IsEqualNode(other *Node) bool {
	if other == nil {
		return false
	}
	if n.nodeType != other.nodeType {
		return false
	}

	switch n.nodeType {
	case ElementNode:
		if !n.elementsEqual(other) {
			return false
		}
	case DocumentTypeNode:
		if !n.doctypesEqual(other) {
			return false
		}
	case ProcessingInstructionNode:
		if n.nodeName != other.nodeName || n.NodeValue() != other.NodeValue() {
			return false
		}
	case TextNode, CDATASectionNode, CommentNode:
		if n.NodeValue() != other.NodeValue() {
			return false
		}
	}

	count1, count2 := 0, 0
	for c := n.firstChild; c != nil; c = c.nextSibling {
		count1++
	}
	for c := other.firstChild; c != nil; c = c.nextSibling {
		count2++
	}
	if count1 != count2 {
		return false
	}

	c1, c2 := n.firstChild, other.firstChild
	for c1 != nil && c2 != nil {
		if !c1.IsEqualNode(c2) {
			return false
		}
		c1, c2 = c1.nextSibling, c2.nextSibling
	}
	return true
}

// elementsEqual compares two Element nodes on namespace, prefix, local name
// and attributes. Attributes match on (namespace, localName, value), not
// prefix, and order is irrelevant.
func (n *Node) elementsEqual(other *Node) bool {
	e1 := n.elementData
	e2 := other.elementData
	if e1 == nil || e2 == nil {
		return e1 == e2
	}

	// Interned handles short-circuit the local name comparison when both
	// elements came from the same document's factories.
	if e1.interned != nil && e1.interned == e2.interned {
		// equal by identity
	} else if e1.localName != e2.localName {
		return false
	}
	if e1.namespaceURI != e2.namespaceURI || e1.prefix != e2.prefix {
		return false
	}

	count1, count2 := 0, 0
	if e1.attributes != nil {
		count1 = e1.attributes.Length()
	}
	if e2.attributes != nil {
		count2 = e2.attributes.Length()
	}
	if count1 != count2 {
		return false
	}

	if e1.attributes != nil {
		for i := 0; i < e1.attributes.Length(); i++ {
			attr1 := e1.attributes.Item(i)
			if attr1 == nil {
				continue
			}
			attr2 := e2.attributes.GetNamedItemNS(attr1.NamespaceURI(), attr1.LocalName())
			if attr2 == nil || attr1.Value() != attr2.Value() {
				return false
			}
		}
	}
	return true
}

// doctypesEqual compares two DocumentType nodes on name, public ID, system ID.
func (n *Node) doctypesEqual(other *Node) bool {
	d1 := n.docTypeData
	d2 := other.docTypeData
	if d1 == nil || d2 == nil {
		return d1 == d2
	}
	return d1.name == d2.name && d1.publicId == d2.publicId && d1.systemId == d2.systemId
}

// CloneNode creates a copy of this node with the same owner document. Event
// listeners are not copied. If deep is true, all descendants are cloned too.
func (n *Node) CloneNode(deep bool) *Node {
	clone := n.shallowClone()

	if deep {
		for child := n.firstChild; child != nil; child = child.nextSibling {
			clone.AppendChild(child.CloneNode(true))
		}
	}

	return clone
}

func (n *Node) shallowClone() *Node {
	clone := newNode(n.nodeType, n.nodeName, n.ownerDoc)

	if n.nodeValue != nil {
		value := *n.nodeValue
		clone.nodeValue = &value
	}

	switch n.nodeType {
	case ElementNode:
		if n.elementData != nil {
			clone.elementData = &elementData{
				localName:    n.elementData.localName,
				namespaceURI: n.elementData.namespaceURI,
				prefix:       n.elementData.prefix,
				tagName:      n.elementData.tagName,
				interned:     n.elementData.interned,
			}
			clone.elementData.attributes = newNamedNodeMap((*Element)(clone))
			if n.elementData.attributes != nil {
				for i := 0; i < n.elementData.attributes.Length(); i++ {
					if attr := n.elementData.attributes.Item(i); attr != nil {
						clone.elementData.attributes.SetAttr(attr.clone())
					}
				}
			}
		}
	case TextNode, CDATASectionNode:
		if n.textData != nil {
			text := *n.textData
			clone.textData = &text
		}
	case CommentNode:
		if n.commentData != nil {
			comment := *n.commentData
			clone.commentData = &comment
		}
	case DocumentTypeNode:
		if n.docTypeData != nil {
			clone.docTypeData = &docTypeData{
				name:     n.docTypeData.name,
				publicId: n.docTypeData.publicId,
				systemId: n.docTypeData.systemId,
			}
		}
	case DocumentNode:
		data := &documentData{contentType: "text/html"}
		if n.documentData != nil {
			data.contentType = n.documentData.contentType
			data.url = n.documentData.url
			data.characterSet = n.documentData.characterSet
		}
		clone.documentData = data
		initDocumentData(data)
		clone.ownerDoc = (*Document)(clone)
	}

	if doc := clone.doc(); doc != nil {
		doc.arenaAdd(clone)
	}
	return clone
}

// DocumentType accessor methods

// DoctypeName returns the name of a DocumentType node, or empty string for other node types.
func (n *Node) DoctypeName() string {
	if n.nodeType == DocumentTypeNode && n.docTypeData != nil {
		return n.docTypeData.name
	}
	return ""
}

// DoctypePublicId returns the publicId of a DocumentType node, or empty string for other node types.
func (n *Node) DoctypePublicId() string {
	if n.nodeType == DocumentTypeNode && n.docTypeData != nil {
		return n.docTypeData.publicId
	}
	return ""
}

// DoctypeSystemId returns the systemId of a DocumentType node, or empty string for other node types.
func (n *Node) DoctypeSystemId() string {
	if n.nodeType == DocumentTypeNode && n.docTypeData != nil {
		return n.docTypeData.systemId
	}
	return ""
}

// indexOfChild returns the index of a child within its parent, or -1.
func indexOfChild(parent, child *Node) int {
	index := 0
	for c := parent.firstChild; c != nil; c = c.nextSibling {
		if c == child {
			return index
		}
		index++
	}
	return -1
}

// nodeLength returns the length of a node for range and boundary purposes:
// the data length in UTF-16 code units for character data, the child count
// otherwise.
func nodeLength(node *Node) int {
	if node.nodeType.isCharacterData() {
		return UTF16Length(node.NodeValue())
	}
	count := 0
	for child := node.firstChild; child != nil; child = child.nextSibling {
		count++
	}
	return count
}

// isAncestor returns true if ancestor is a proper ancestor of node.
func isAncestor(ancestor, node *Node) bool {
	for n := node.parentNode; n != nil; n = n.parentNode {
		if n == ancestor {
			return true
		}
	}
	return false
}

// isInclusiveAncestor returns true if ancestor is node or an ancestor of node.
func isInclusiveAncestor(ancestor, node *Node) bool {
	for n := node; n != nil; n = n.parentNode {
		if n == ancestor {
			return true
		}
	}
	return false
}

// lastInclusiveDescendant returns the last inclusive descendant of node.
func lastInclusiveDescendant(node *Node) *Node {
	for node.lastChild != nil {
		node = node.lastChild
	}
	return node
}

// nextNodeInTree returns the next node in tree order (pre-order traversal).
func nextNodeInTree(node *Node) *Node {
	if node.firstChild != nil {
		return node.firstChild
	}
	return nextNodeDescendants(node)
}

// nextNodeDescendants returns the next node after node and all its descendants.
func nextNodeDescendants(node *Node) *Node {
	for node != nil {
		if node.nextSibling != nil {
			return node.nextSibling
		}
		node = node.parentNode
	}
	return nil
}

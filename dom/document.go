package dom

import "strings"

// Document represents a document node: the owner of the node arena, the
// string pool, the id index, the live-collection registry and the tree
// revision counter. Every other node holds a weak reference back to it.
type Document Node

// HTMLNamespace is the XHTML namespace URI.
const HTMLNamespace = "http://www.w3.org/1999/xhtml"

// SVGNamespace and MathMLNamespace are carried for namespace-aware callers.
const (
	SVGNamespace    = "http://www.w3.org/2000/svg"
	MathMLNamespace = "http://www.w3.org/1998/Math/MathML"
)

// initDocumentData wires the per-document registries.
func initDocumentData(data *documentData) {
	data.pool = NewStringPool()
	data.arena = make(map[*Node]struct{})
	data.idIndex = make(map[string][]*Node)
	data.ranges = make(map[*Range]struct{})
	data.tagCollections = make(map[string]*HTMLCollection)
	data.classCollections = make(map[string]*HTMLCollection)
	data.externalRefs = 1
}

// NewDocument creates a new empty HTML Document.
func NewDocument() *Document {
	node := newNode(DocumentNode, "#document", nil)
	node.documentData = &documentData{contentType: "text/html"}
	initDocumentData(node.documentData)
	doc := (*Document)(node)
	node.ownerDoc = doc
	doc.arenaAdd(node)
	return doc
}

// NewXMLDocument creates a new empty XML Document with contentType
// "application/xml", matching the Document() constructor.
func NewXMLDocument() *Document {
	node := newNode(DocumentNode, "#document", nil)
	node.documentData = &documentData{contentType: "application/xml"}
	initDocumentData(node.documentData)
	doc := (*Document)(node)
	node.ownerDoc = doc
	doc.arenaAdd(node)
	return doc
}

// AsNode returns the underlying Node.
func (d *Document) AsNode() *Node {
	return (*Node)(d)
}

// NodeType returns DocumentNode (9).
func (d *Document) NodeType() NodeType {
	return DocumentNode
}

// NodeName returns "#document".
func (d *Document) NodeName() string {
	return "#document"
}

// IsHTML returns true if this is an HTML document.
func (d *Document) IsHTML() bool {
	return d.AsNode().documentData.contentType == "text/html"
}

// ContentType returns the MIME type of the document.
func (d *Document) ContentType() string {
	if d.AsNode().documentData.contentType == "" {
		return "text/html"
	}
	return d.AsNode().documentData.contentType
}

// URL returns the document's URL. Defaults to "about:blank".
func (d *Document) URL() string {
	if d.AsNode().documentData.url == "" {
		return "about:blank"
	}
	return d.AsNode().documentData.url
}

// SetURL sets the document's URL.
func (d *Document) SetURL(url string) {
	d.AsNode().documentData.url = url
}

// CharacterSet returns the document's character encoding. Defaults to "UTF-8".
func (d *Document) CharacterSet() string {
	if d.AsNode().documentData.characterSet == "" {
		return "UTF-8"
	}
	return d.AsNode().documentData.characterSet
}

// StringPool returns the document's name interner.
func (d *Document) StringPool() *StringPool {
	return d.AsNode().documentData.pool
}

// TreeRevision returns the document's monotonic mutation counter.
func (d *Document) TreeRevision() uint64 {
	return d.AsNode().documentData.treeRevision
}

// bumpRevision invalidates every live collection snapshot.
func (d *Document) bumpRevision() {
	d.AsNode().documentData.treeRevision++
}

// SetInsertionSteps installs the embedder hook invoked synchronously for each
// node right after it is inserted (script execution, upgrades, ...). Errors
// raised inside the hook do not roll back already-inserted siblings.
func (d *Document) SetInsertionSteps(steps func(*Node)) {
	d.AsNode().documentData.insertionSteps = steps
}

// SetRemovingSteps installs the embedder hook invoked for each removed
// descendant bottom-up, then the removed node itself.
func (d *Document) SetRemovingSteps(steps func(*Node)) {
	d.AsNode().documentData.removingSteps = steps
}

// arenaAdd registers a node with the document's arena. The arena owns
// orphans: nodes created but never inserted are freed at teardown.
func (d *Document) arenaAdd(n *Node) {
	data := d.AsNode().documentData
	if data == nil || data.destroyed {
		return
	}
	data.arena[n] = struct{}{}
}

// arenaRemove forgets a node without destroying it (adoption path).
func (d *Document) arenaRemove(n *Node) {
	if data := d.AsNode().documentData; data != nil {
		delete(data.arena, n)
	}
}

// arenaRelease drops a destructible node from the arena.
func (d *Document) arenaRelease(n *Node) {
	if data := d.AsNode().documentData; data != nil {
		delete(data.arena, n)
	}
}

// ArenaSize returns the number of nodes currently owned by the arena.
func (d *Document) ArenaSize() int {
	if data := d.AsNode().documentData; data != nil {
		return len(data.arena)
	}
	return 0
}

// registerElementId indexes a connected element under its current id.
func (d *Document) registerElementId(n *Node) {
	el := (*Element)(n)
	id := el.Id()
	if id == "" {
		return
	}
	data := d.AsNode().documentData
	data.idIndex[id] = append(data.idIndex[id], n)
}

// unregisterElementId removes an element from the index under the given id.
func (d *Document) unregisterElementId(n *Node, id string) {
	if id == "" {
		return
	}
	data := d.AsNode().documentData
	nodes := data.idIndex[id]
	for i, existing := range nodes {
		if existing == n {
			data.idIndex[id] = append(nodes[:i], nodes[i+1:]...)
			break
		}
	}
	if len(data.idIndex[id]) == 0 {
		delete(data.idIndex, id)
	}
}

// handleAttributeChanged keeps the id index current. Called from attribute
// mutation notification before observer fan-out.
func (d *Document) handleAttributeChanged(target *Node, localName, namespace, oldValue string) {
	if localName != "id" || namespace != "" || target.nodeType != ElementNode {
		return
	}
	if !target.connected {
		return
	}
	d.unregisterElementId(target, oldValue)
	d.registerElementId(target)
}

// Doctype returns the DocumentType child node, or nil if there is none.
func (d *Document) Doctype() *Node {
	for child := d.AsNode().firstChild; child != nil; child = child.nextSibling {
		if child.nodeType == DocumentTypeNode {
			return child
		}
	}
	return nil
}

// DocumentElement returns the root element of the document.
func (d *Document) DocumentElement() *Element {
	for child := d.AsNode().firstChild; child != nil; child = child.nextSibling {
		if child.nodeType == ElementNode {
			return (*Element)(child)
		}
	}
	return nil
}

// Head returns the <head> element of an HTML document.
func (d *Document) Head() *Element {
	return d.namedRootChild("HEAD")
}

// Body returns the <body> element of an HTML document.
func (d *Document) Body() *Element {
	return d.namedRootChild("BODY")
}

func (d *Document) namedRootChild(tag string) *Element {
	docEl := d.DocumentElement()
	if docEl == nil {
		return nil
	}
	for child := docEl.AsNode().firstChild; child != nil; child = child.nextSibling {
		if child.nodeType == ElementNode {
			el := (*Element)(child)
			if strings.EqualFold(el.TagName(), tag) {
				return el
			}
		}
	}
	return nil
}

// CreateElement creates a new element with the given tag name.
// Use CreateElementWithError for error handling.
func (d *Document) CreateElement(tagName string) *Element {
	el, _ := d.CreateElementWithError(tagName)
	return el
}

// CreateElementWithError creates a new element with the given tag name.
// Returns an InvalidCharacterError if the name is not a valid element name.
// For HTML documents the local name is ASCII lowercased for storage and
// ASCII uppercased for TagName; XML documents preserve case.
func (d *Document) CreateElementWithError(tagName string) (*Element, error) {
	if !isValidElementName(tagName) {
		return nil, ErrInvalidCharacter("The string contains invalid characters.")
	}

	namespace := ""
	if d.IsHTML() || d.ContentType() == "application/xhtml+xml" {
		namespace = HTMLNamespace
	}

	var localName, resultTagName string
	if d.IsHTML() {
		localName = toASCIILowercase(tagName)
		resultTagName = toASCIIUppercase(tagName)
	} else {
		localName = tagName
		resultTagName = tagName
	}

	interned := d.StringPool().Intern(localName)

	node := newNode(ElementNode, resultTagName, d)
	node.elementData = &elementData{
		localName:    interned.String(),
		tagName:      resultTagName,
		namespaceURI: namespace,
		interned:     interned,
	}
	node.elementData.attributes = newNamedNodeMap((*Element)(node))
	d.arenaAdd(node)

	return (*Element)(node), nil
}

// CreateElementNS creates a new element with the given namespace and
// qualified name.
func (d *Document) CreateElementNS(namespaceURI, qualifiedName string) *Element {
	el, _ := d.CreateElementNSWithError(namespaceURI, qualifiedName)
	return el
}

// CreateElementNSWithError creates a new element with the given namespace and
// qualified name, validating via the "validate and extract" algorithm.
func (d *Document) CreateElementNSWithError(namespaceURI, qualifiedName string) (*Element, error) {
	namespace, prefix, localName, err := ValidateAndExtractQualifiedName(namespaceURI, qualifiedName)
	if err != nil {
		return nil, err
	}

	var tagName string
	if prefix != "" {
		tagName = prefix + ":" + localName
	} else {
		tagName = localName
	}
	if namespace == HTMLNamespace && d.IsHTML() {
		tagName = toASCIIUppercase(tagName)
	}

	interned := d.StringPool().Intern(localName)

	node := newNode(ElementNode, tagName, d)
	node.elementData = &elementData{
		localName:    interned.String(),
		namespaceURI: namespace,
		prefix:       prefix,
		tagName:      tagName,
		interned:     interned,
	}
	node.elementData.attributes = newNamedNodeMap((*Element)(node))
	d.arenaAdd(node)

	return (*Element)(node), nil
}

// CreateTextNode creates a new text node with the given data.
func (d *Document) CreateTextNode(data string) *Node {
	node := newNode(TextNode, "#text", d)
	node.textData = &data
	node.nodeValue = &data
	d.arenaAdd(node)
	return node
}

// CreateComment creates a new comment node with the given data.
func (d *Document) CreateComment(data string) *Node {
	node := newNode(CommentNode, "#comment", d)
	node.commentData = &data
	node.nodeValue = &data
	d.arenaAdd(node)
	return node
}

// CreateCDATASection creates a new CDATASection node with the given data.
// Use CreateCDATASectionWithError for error handling.
func (d *Document) CreateCDATASection(data string) *Node {
	node, _ := d.CreateCDATASectionWithError(data)
	return node
}

// CreateCDATASectionWithError creates a new CDATASection node. It fails with
// NotSupportedError for HTML documents and InvalidCharacterError when data
// contains "]]>".
func (d *Document) CreateCDATASectionWithError(data string) (*Node, error) {
	if d.IsHTML() {
		return nil, ErrNotSupported("CDATASection nodes are not allowed in HTML documents.")
	}
	if strings.Contains(data, "]]>") {
		return nil, ErrInvalidCharacter("CDATASection data cannot contain ']]>'.")
	}

	node := newNode(CDATASectionNode, "#cdata-section", d)
	node.textData = &data
	node.nodeValue = &data
	d.arenaAdd(node)
	return node, nil
}

// CreateProcessingInstruction creates a new processing instruction node.
// Use CreateProcessingInstructionWithError for error handling.
func (d *Document) CreateProcessingInstruction(target, data string) *Node {
	node, _ := d.CreateProcessingInstructionWithError(target, data)
	return node
}

// CreateProcessingInstructionWithError creates a new processing instruction
// node, validating the target name and rejecting data containing "?>".
func (d *Document) CreateProcessingInstructionWithError(target, data string) (*Node, error) {
	if err := ValidateProcessingInstructionTarget(target); err != nil {
		return nil, err
	}
	if err := ValidateProcessingInstructionData(data); err != nil {
		return nil, err
	}

	interned := d.StringPool().Intern(target)
	node := newNode(ProcessingInstructionNode, interned.String(), d)
	node.nodeValue = &data
	d.arenaAdd(node)
	return node, nil
}

// CreateDocumentFragment creates a new empty document fragment.
func (d *Document) CreateDocumentFragment() *DocumentFragment {
	node := newNode(DocumentFragmentNode, "#document-fragment", d)
	d.arenaAdd(node)
	return (*DocumentFragment)(node)
}

// CreateAttribute creates a new attribute with the given name.
// Use CreateAttributeWithError for error handling.
func (d *Document) CreateAttribute(name string) *Attr {
	attr, _ := d.CreateAttributeWithError(name)
	return attr
}

// CreateAttributeWithError creates a new attribute with the given name.
// For HTML documents the name is lowercased per the spec.
func (d *Document) CreateAttributeWithError(name string) (*Attr, error) {
	if !IsValidAttributeLocalName(name) {
		return nil, ErrInvalidCharacter("The string contains invalid characters.")
	}

	localName := name
	if d.IsHTML() {
		localName = toASCIILowercase(name)
	}
	localName = d.StringPool().Intern(localName).String()

	return NewAttr(localName, ""), nil
}

// CreateAttributeNS creates a new attribute with the given namespace.
func (d *Document) CreateAttributeNS(namespaceURI, qualifiedName string) *Attr {
	attr, _ := d.CreateAttributeNSWithError(namespaceURI, qualifiedName)
	return attr
}

// CreateAttributeNSWithError creates a new attribute with the given namespace
// and qualified name.
func (d *Document) CreateAttributeNSWithError(namespaceURI, qualifiedName string) (*Attr, error) {
	if _, _, _, err := ValidateAndExtractQualifiedName(namespaceURI, qualifiedName); err != nil {
		return nil, err
	}
	return NewAttrNS(namespaceURI, qualifiedName, ""), nil
}

// GetElementById returns the connected element with the given id, using the
// incrementally maintained id index. The empty string never matches.
func (d *Document) GetElementById(id string) *Element {
	if id == "" {
		return nil
	}
	nodes := d.AsNode().documentData.idIndex[id]
	switch len(nodes) {
	case 0:
		return nil
	case 1:
		return (*Element)(nodes[0])
	}
	// Several connected elements carry the id; tree order decides.
	first := nodes[0]
	for _, candidate := range nodes[1:] {
		if candidate.precedesInTreeOrder(first) {
			first = candidate
		}
	}
	return (*Element)(first)
}

// GetElementsByTagName returns a live HTMLCollection of elements with the
// given tag name. Repeated calls with the same name return the same
// collection object.
func (d *Document) GetElementsByTagName(tagName string) *HTMLCollection {
	data := d.AsNode().documentData
	key := strings.ToUpper(tagName)
	if hc, ok := data.tagCollections[key]; ok {
		return hc
	}
	hc := NewHTMLCollectionByTagName(d.AsNode(), tagName)
	data.tagCollections[key] = hc
	return hc
}

// GetElementsByTagNameNS returns a live HTMLCollection filtered by namespace
// and local name; "*" acts as a wildcard for either.
func (d *Document) GetElementsByTagNameNS(namespaceURI, localName string) *HTMLCollection {
	return newHTMLCollection(d.AsNode(), func(el *Element) bool {
		if localName != "*" && el.LocalName() != localName {
			return false
		}
		if namespaceURI != "*" && el.NamespaceURI() != namespaceURI {
			return false
		}
		return true
	})
}

// GetElementsByClassName returns a live HTMLCollection of elements carrying
// all of the given class names.
func (d *Document) GetElementsByClassName(classNames string) *HTMLCollection {
	data := d.AsNode().documentData
	if hc, ok := data.classCollections[classNames]; ok {
		return hc
	}
	hc := NewHTMLCollectionByClassName(d.AsNode(), classNames)
	data.classCollections[classNames] = hc
	return hc
}

// QuerySelector returns the first element matching the selector.
func (d *Document) QuerySelector(selector string) *Element {
	docEl := d.DocumentElement()
	if docEl == nil {
		return nil
	}
	if docEl.Matches(selector) {
		return docEl
	}
	return docEl.QuerySelector(selector)
}

// QuerySelectorAll returns a static NodeList of all elements matching the
// selector.
func (d *Document) QuerySelectorAll(selector string) *NodeList {
	docEl := d.DocumentElement()
	if docEl == nil {
		return NewStaticNodeList(nil)
	}

	var results []*Node
	if docEl.Matches(selector) {
		results = append(results, docEl.AsNode())
	}
	descendantList := docEl.QuerySelectorAll(selector)
	for i := 0; i < descendantList.Length(); i++ {
		results = append(results, descendantList.Item(i))
	}
	return NewStaticNodeList(results)
}

// Children returns a live HTMLCollection of child elements.
func (d *Document) Children() *HTMLCollection {
	return newHTMLCollection(d.AsNode(), func(el *Element) bool {
		return el.AsNode().parentNode == d.AsNode()
	})
}

// ImportNode clones a node from another document into this one.
func (d *Document) ImportNode(node *Node, deep bool) *Node {
	result, _ := d.ImportNodeWithError(node, deep)
	return result
}

// ImportNodeWithError clones a node from another document into this one.
// Document nodes cannot be imported.
func (d *Document) ImportNodeWithError(node *Node, deep bool) (*Node, error) {
	if node == nil {
		return nil, nil
	}
	if node.nodeType == DocumentNode {
		return nil, ErrNotSupported("Document nodes cannot be imported.")
	}
	clone := node.CloneNode(deep)
	adoptSubtree(clone, d)
	return clone, nil
}

// AdoptNode adopts a node from another document: the node is removed from its
// parent and its whole subtree is re-owned by this document.
func (d *Document) AdoptNode(node *Node) *Node {
	result, _ := d.AdoptNodeWithError(node)
	return result
}

// AdoptNodeWithError adopts a node from another document. Document nodes
// cannot be adopted. A failed adoption leaves both documents untouched.
func (d *Document) AdoptNodeWithError(node *Node) (*Node, error) {
	if node == nil {
		return nil, nil
	}
	if node.nodeType == DocumentNode {
		return nil, ErrNotSupported("Document nodes cannot be adopted.")
	}

	if node.parentNode != nil {
		node.parentNode.RemoveChild(node)
	}
	adoptSubtree(node, d)
	return node, nil
}

// CreateRange creates a new live Range collapsed at (document, 0).
func (d *Document) CreateRange() *Range {
	return NewRange(d)
}

// registerRange tracks a live range for boundary adjustment.
func (d *Document) registerRange(r *Range) {
	data := d.AsNode().documentData
	data.ranges[r] = struct{}{}
	if !data.rangesHooked {
		data.rangesHooked = true
		RegisterMutationCallback(d, &rangeMutationHandler{doc: d})
	}
}

// unregisterRange stops tracking a range.
func (d *Document) unregisterRange(r *Range) {
	delete(d.AsNode().documentData.ranges, r)
}

// liveRanges returns the currently registered ranges.
func (d *Document) liveRanges() []*Range {
	data := d.AsNode().documentData
	ranges := make([]*Range, 0, len(data.ranges))
	for r := range data.ranges {
		ranges = append(ranges, r)
	}
	return ranges
}

// registerNodeIterator adds an iterator to the document's active list.
func (d *Document) registerNodeIterator(ni *NodeIterator) {
	data := d.AsNode().documentData
	data.nodeIterators = append(data.nodeIterators, ni)
}

// unregisterNodeIterator removes an iterator from the document's list.
func (d *Document) unregisterNodeIterator(ni *NodeIterator) {
	data := d.AsNode().documentData
	iterators := data.nodeIterators
	for i, iter := range iterators {
		if iter == ni {
			iterators[i] = iterators[len(iterators)-1]
			data.nodeIterators = iterators[:len(iterators)-1]
			return
		}
	}
}

// notifyNodeIteratorsOfRemoval runs the NodeIterator pre-removing steps
// before a node is unlinked.
func (d *Document) notifyNodeIteratorsOfRemoval(node *Node) {
	data := d.AsNode().documentData
	if data == nil {
		return
	}
	for _, ni := range data.nodeIterators {
		ni.preRemovingSteps(node)
	}
}

// DOMImplementation provides document-construction helpers.
type DOMImplementation struct {
	document *Document
}

// Implementation returns the DOMImplementation for this document.
func (d *Document) Implementation() *DOMImplementation {
	if d.AsNode().documentData.implementation == nil {
		d.AsNode().documentData.implementation = &DOMImplementation{document: d}
	}
	return d.AsNode().documentData.implementation
}

// CreateHTMLDocument creates a new HTML document with doctype, html, head and
// body. A non-nil title (possibly empty) produces a title element.
func (impl *DOMImplementation) CreateHTMLDocument(title *string) *Document {
	doc := NewDocument()

	doctype := newNode(DocumentTypeNode, "html", doc)
	doctype.docTypeData = &docTypeData{name: "html"}
	doc.arenaAdd(doctype)
	doc.AsNode().AppendChild(doctype)

	html := doc.CreateElement("html")
	doc.AsNode().AppendChild(html.AsNode())

	head := doc.CreateElement("head")
	html.AsNode().AppendChild(head.AsNode())

	if title != nil {
		titleEl := doc.CreateElement("title")
		titleEl.AsNode().AppendChild(doc.CreateTextNode(*title))
		head.AsNode().AppendChild(titleEl.AsNode())
	}

	body := doc.CreateElement("body")
	html.AsNode().AppendChild(body.AsNode())

	return doc
}

// CreateDocument creates a new XML document with the given namespace,
// qualified root name, and optional doctype.
func (impl *DOMImplementation) CreateDocument(namespaceURI, qualifiedName string, doctype *Node) (*Document, error) {
	if qualifiedName != "" {
		if _, _, _, err := ValidateAndExtractQualifiedName(namespaceURI, qualifiedName); err != nil {
			return nil, err
		}
	}

	doc := NewDocument()
	switch namespaceURI {
	case HTMLNamespace:
		doc.AsNode().documentData.contentType = "application/xhtml+xml"
	case SVGNamespace:
		doc.AsNode().documentData.contentType = "image/svg+xml"
	default:
		doc.AsNode().documentData.contentType = "application/xml"
	}

	if doctype != nil {
		doc.AsNode().AppendChild(doctype)
	}
	if qualifiedName != "" {
		root, err := doc.CreateElementNSWithError(namespaceURI, qualifiedName)
		if err != nil {
			return nil, err
		}
		doc.AsNode().AppendChild(root.AsNode())
	}

	return doc, nil
}

// CreateDocumentType creates a new DocumentType node owned by this
// implementation's document.
func (impl *DOMImplementation) CreateDocumentType(qualifiedName, publicId, systemId string) (*Node, error) {
	if !isValidDoctypeName(qualifiedName) {
		return nil, ErrInvalidCharacter("The string did not match the expected pattern.")
	}

	doctype := newNode(DocumentTypeNode, qualifiedName, impl.document)
	doctype.docTypeData = &docTypeData{
		name:     qualifiedName,
		publicId: publicId,
		systemId: systemId,
	}
	if impl.document != nil {
		impl.document.arenaAdd(doctype)
	}
	return doctype, nil
}

package dom

import "strings"

// Element represents an element in the DOM tree.
type Element Node

// AsNode returns the underlying Node.
func (e *Element) AsNode() *Node {
	return (*Node)(e)
}

// NodeType returns ElementNode (1).
func (e *Element) NodeType() NodeType {
	return ElementNode
}

// NodeName returns the tag name (uppercase for HTML elements).
func (e *Element) NodeName() string {
	return e.TagName()
}

// TagName returns the tag name, uppercased for HTML elements.
func (e *Element) TagName() string {
	if e.AsNode().elementData != nil {
		return e.AsNode().elementData.tagName
	}
	return strings.ToUpper(e.AsNode().nodeName)
}

// LocalName returns the local name of the element (lowercase for HTML).
func (e *Element) LocalName() string {
	if e.AsNode().elementData != nil {
		return e.AsNode().elementData.localName
	}
	return strings.ToLower(e.AsNode().nodeName)
}

// LocalNameHandle returns the interned name handle for the local name, or
// nil when the element was not created through a Document factory. Handles
// from the same document compare equal by pointer iff the names match.
func (e *Element) LocalNameHandle() *Name {
	if e.AsNode().elementData != nil {
		return e.AsNode().elementData.interned
	}
	return nil
}

// NamespaceURI returns the namespace URI of the element.
func (e *Element) NamespaceURI() string {
	if e.AsNode().elementData != nil {
		return e.AsNode().elementData.namespaceURI
	}
	return ""
}

// Prefix returns the namespace prefix of the element.
func (e *Element) Prefix() string {
	if e.AsNode().elementData != nil {
		return e.AsNode().elementData.prefix
	}
	return ""
}

// isHTMLElementInHTMLDocument is used for case-insensitive attribute handling.
func (e *Element) isHTMLElementInHTMLDocument() bool {
	if e.NamespaceURI() != HTMLNamespace {
		return false
	}
	doc := e.AsNode().ownerDoc
	if doc == nil {
		return false
	}
	return doc.IsHTML()
}

// Id returns the id attribute value.
func (e *Element) Id() string {
	return e.GetAttribute("id")
}

// SetId sets the id attribute value.
func (e *Element) SetId(id string) {
	e.SetAttribute("id", id)
}

// ClassName returns the class attribute value.
func (e *Element) ClassName() string {
	return e.GetAttribute("class")
}

// SetClassName sets the class attribute value.
func (e *Element) SetClassName(className string) {
	e.SetAttribute("class", className)
}

// ClassList returns a DOMTokenList for the class attribute.
func (e *Element) ClassList() *DOMTokenList {
	data := e.ensureElementData()
	if data.classList == nil {
		data.classList = newDOMTokenList(e, "class")
	}
	return data.classList
}

func (e *Element) ensureElementData() *elementData {
	if e.AsNode().elementData == nil {
		e.AsNode().elementData = &elementData{}
	}
	return e.AsNode().elementData
}

// Attributes returns the NamedNodeMap of attributes.
func (e *Element) Attributes() *NamedNodeMap {
	data := e.ensureElementData()
	if data.attributes == nil {
		data.attributes = newNamedNodeMap(e)
	}
	return data.attributes
}

// GetAttribute returns the value of the attribute with the given name. For
// HTML elements in an HTML document the name is lowercased first.
func (e *Element) GetAttribute(name string) string {
	if e.isHTMLElementInHTMLDocument() {
		name = toASCIILowercase(name)
	}
	return e.Attributes().GetValue(name)
}

// GetAttributeNS returns the value of the attribute with the given namespace
// and local name.
func (e *Element) GetAttributeNS(namespaceURI, localName string) string {
	if attr := e.Attributes().GetNamedItemNS(namespaceURI, localName); attr != nil {
		return attr.value
	}
	return ""
}

// SetAttribute sets the value of the attribute with the given name.
// Use SetAttributeWithError for error handling.
func (e *Element) SetAttribute(name, value string) {
	_ = e.SetAttributeWithError(name, value)
}

// SetAttributeWithError sets the value of the attribute with the given name,
// validating it and re-interning it through the owner document's pool.
func (e *Element) SetAttributeWithError(name, value string) error {
	if !IsValidAttributeLocalName(name) {
		return ErrInvalidCharacter("The string contains invalid characters.")
	}

	if e.isHTMLElementInHTMLDocument() {
		name = toASCIILowercase(name)
	}
	if doc := e.AsNode().ownerDoc; doc != nil {
		name = doc.StringPool().Intern(name).String()
	}

	e.Attributes().SetValue(name, value)
	return nil
}

// SetAttributeNS sets the value of the attribute with the given namespace.
func (e *Element) SetAttributeNS(namespaceURI, qualifiedName, value string) {
	_ = e.SetAttributeNSWithError(namespaceURI, qualifiedName, value)
}

// SetAttributeNSWithError sets the value of the attribute with the given
// namespace and qualified name.
func (e *Element) SetAttributeNSWithError(namespaceURI, qualifiedName, value string) error {
	if qualifiedName == "" {
		return ErrInvalidCharacter("The string contains invalid characters.")
	}

	namespace, prefix, localName, err := ValidateAndExtractQualifiedName(namespaceURI, qualifiedName)
	if err != nil {
		return err
	}

	if existing := e.Attributes().GetNamedItemNS(namespace, localName); existing != nil {
		existing.SetValue(value)
		return nil
	}

	attr := &Attr{
		namespaceURI: namespace,
		prefix:       prefix,
		localName:    localName,
		name:         qualifiedName,
		value:        value,
	}
	e.Attributes().SetAttr(attr)
	return nil
}

// HasAttribute returns true if the element has the given attribute.
func (e *Element) HasAttribute(name string) bool {
	if e.isHTMLElementInHTMLDocument() {
		name = toASCIILowercase(name)
	}
	return e.Attributes().Has(name)
}

// HasAttributeNS returns true if the element has the attribute with the given
// namespace and local name.
func (e *Element) HasAttributeNS(namespaceURI, localName string) bool {
	return e.Attributes().HasNS(namespaceURI, localName)
}

// RemoveAttribute removes the attribute with the given name.
func (e *Element) RemoveAttribute(name string) {
	if e.isHTMLElementInHTMLDocument() {
		name = toASCIILowercase(name)
	}
	e.Attributes().RemoveNamedItem(name)
}

// RemoveAttributeNS removes the attribute with the given namespace and local name.
func (e *Element) RemoveAttributeNS(namespaceURI, localName string) {
	e.Attributes().RemoveNamedItemNS(namespaceURI, localName)
}

// ToggleAttribute toggles the presence of an attribute. If force is given, it
// forces add (true) or remove (false). Returns true if the attribute is
// present after the operation.
func (e *Element) ToggleAttribute(name string, force ...bool) bool {
	result, _ := e.ToggleAttributeWithError(name, force...)
	return result
}

// ToggleAttributeWithError toggles the presence of an attribute.
func (e *Element) ToggleAttributeWithError(name string, force ...bool) (bool, error) {
	if !IsValidAttributeLocalName(name) {
		return false, ErrInvalidCharacter("The string contains invalid characters.")
	}

	if e.isHTMLElementInHTMLDocument() {
		name = toASCIILowercase(name)
	}

	has := e.Attributes().Has(name)

	if len(force) > 0 {
		if force[0] {
			if !has {
				e.Attributes().SetValue(name, "")
			}
			return true, nil
		}
		if has {
			e.Attributes().RemoveNamedItem(name)
		}
		return false, nil
	}

	if has {
		e.Attributes().RemoveNamedItem(name)
		return false, nil
	}
	e.Attributes().SetValue(name, "")
	return true, nil
}

// GetAttributeNode returns the Attr for the given attribute name.
func (e *Element) GetAttributeNode(name string) *Attr {
	return e.Attributes().GetNamedItem(name)
}

// GetAttributeNodeNS returns the Attr for the given namespace and local name.
func (e *Element) GetAttributeNodeNS(namespaceURI, localName string) *Attr {
	return e.Attributes().GetNamedItemNS(namespaceURI, localName)
}

// SetAttributeNode sets an attribute node.
// Use SetAttributeNodeWithError for error handling.
func (e *Element) SetAttributeNode(attr *Attr) *Attr {
	result, _ := e.SetAttributeNodeWithError(attr)
	return result
}

// SetAttributeNodeWithError sets an attribute node, failing with
// InUseAttributeError when the attr is owned by another element.
func (e *Element) SetAttributeNodeWithError(attr *Attr) (*Attr, error) {
	if attr == nil {
		return nil, nil
	}
	if attr.ownerElement != nil && attr.ownerElement != e {
		return nil, ErrInUseAttribute("The attribute is already in use by another element.")
	}
	return e.Attributes().SetAttr(attr), nil
}

// RemoveAttributeNode removes an attribute node and returns it.
func (e *Element) RemoveAttributeNode(attr *Attr) *Attr {
	if attr == nil {
		return nil
	}
	return e.Attributes().RemoveNamedItem(attr.name)
}

// Children returns an HTMLCollection of child elements.
func (e *Element) Children() *HTMLCollection {
	return newHTMLCollection(e.AsNode(), func(el *Element) bool {
		return el.AsNode().parentNode == e.AsNode()
	})
}

// ChildElementCount returns the number of child elements.
func (e *Element) ChildElementCount() int {
	count := 0
	for child := e.AsNode().firstChild; child != nil; child = child.nextSibling {
		if child.nodeType == ElementNode {
			count++
		}
	}
	return count
}

// FirstElementChild returns the first child element.
func (e *Element) FirstElementChild() *Element {
	for child := e.AsNode().firstChild; child != nil; child = child.nextSibling {
		if child.nodeType == ElementNode {
			return (*Element)(child)
		}
	}
	return nil
}

// LastElementChild returns the last child element.
func (e *Element) LastElementChild() *Element {
	for child := e.AsNode().lastChild; child != nil; child = child.prevSibling {
		if child.nodeType == ElementNode {
			return (*Element)(child)
		}
	}
	return nil
}

// PreviousElementSibling returns the previous sibling element.
func (e *Element) PreviousElementSibling() *Element {
	for sibling := e.AsNode().prevSibling; sibling != nil; sibling = sibling.prevSibling {
		if sibling.nodeType == ElementNode {
			return (*Element)(sibling)
		}
	}
	return nil
}

// NextElementSibling returns the next sibling element.
func (e *Element) NextElementSibling() *Element {
	for sibling := e.AsNode().nextSibling; sibling != nil; sibling = sibling.nextSibling {
		if sibling.nodeType == ElementNode {
			return (*Element)(sibling)
		}
	}
	return nil
}

// GetElementsByTagName returns a live HTMLCollection of descendants with the
// given tag name.
func (e *Element) GetElementsByTagName(tagName string) *HTMLCollection {
	return NewHTMLCollectionByTagName(e.AsNode(), tagName)
}

// GetElementsByClassName returns a live HTMLCollection of descendants with
// the given class name(s).
func (e *Element) GetElementsByClassName(classNames string) *HTMLCollection {
	return NewHTMLCollectionByClassName(e.AsNode(), classNames)
}

// TextContent returns the text content of the element.
func (e *Element) TextContent() string {
	return e.AsNode().TextContent()
}

// SetTextContent sets the text content of the element.
func (e *Element) SetTextContent(text string) {
	e.AsNode().SetTextContent(text)
}

// Append appends nodes or strings to this element.
// Use AppendWithError for error handling.
func (e *Element) Append(nodes ...interface{}) {
	_ = e.AppendWithError(nodes...)
}

// AppendWithError appends nodes or strings to this element, implementing the
// ParentNode.append() algorithm.
func (e *Element) AppendWithError(nodes ...interface{}) error {
	if len(nodes) == 0 {
		return nil
	}
	node := e.AsNode().convertNodesToFragment(nodes)
	if node == nil {
		return nil
	}
	_, err := e.AsNode().AppendChildWithError(node)
	return err
}

// Prepend prepends nodes or strings to this element.
// Use PrependWithError for error handling.
func (e *Element) Prepend(nodes ...interface{}) {
	_ = e.PrependWithError(nodes...)
}

// PrependWithError prepends nodes or strings to this element.
func (e *Element) PrependWithError(nodes ...interface{}) error {
	if len(nodes) == 0 {
		return nil
	}
	node := e.AsNode().convertNodesToFragment(nodes)
	if node == nil {
		return nil
	}
	_, err := e.AsNode().InsertBeforeWithError(node, e.AsNode().firstChild)
	return err
}

// ReplaceChildren replaces all children with the given nodes. Validation
// happens before any children are removed.
func (e *Element) ReplaceChildren(nodes ...interface{}) {
	_ = e.ReplaceChildrenWithError(nodes...)
}

// ReplaceChildrenWithError replaces all children with the given nodes.
func (e *Element) ReplaceChildrenWithError(nodes ...interface{}) error {
	var node *Node
	if len(nodes) > 0 {
		node = e.AsNode().convertNodesToFragment(nodes)
	}

	if node != nil {
		if err := e.AsNode().validatePreInsertion(node, nil); err != nil {
			return err
		}
	}

	for e.AsNode().firstChild != nil {
		e.AsNode().RemoveChild(e.AsNode().firstChild)
	}
	if node != nil {
		e.AsNode().AppendChild(node)
	}
	return nil
}

// Before inserts nodes before this element.
func (e *Element) Before(nodes ...interface{}) {
	childNodeBefore(e.AsNode(), nodes)
}

// After inserts nodes after this element.
func (e *Element) After(nodes ...interface{}) {
	childNodeAfter(e.AsNode(), nodes)
}

// ReplaceWith replaces this element with nodes.
func (e *Element) ReplaceWith(nodes ...interface{}) {
	childNodeReplaceWith(e.AsNode(), nodes)
}

// Remove removes this element from its parent.
func (e *Element) Remove() {
	if e.AsNode().parentNode != nil {
		e.AsNode().parentNode.RemoveChild(e.AsNode())
	}
}

// CloneNode clones this element.
func (e *Element) CloneNode(deep bool) *Element {
	return (*Element)(e.AsNode().CloneNode(deep))
}

// MoveBefore atomically moves node before ref inside this element, preserving
// node state. See Node.MoveBefore.
func (e *Element) MoveBefore(node, ref *Node) error {
	return e.AsNode().MoveBefore(node, ref)
}

// ShadowRoot returns the open shadow root attached to this element, or nil.
// Closed shadow roots are not exposed here.
func (e *Element) ShadowRoot() *ShadowRoot {
	if e.AsNode().elementData == nil {
		return nil
	}
	sr := e.AsNode().elementData.shadowRoot
	if sr == nil || sr.Mode() == ShadowRootModeClosed {
		return nil
	}
	return sr
}

// GetShadowRoot returns the shadow root regardless of mode (internal use).
func (e *Element) GetShadowRoot() *ShadowRoot {
	if e.AsNode().elementData == nil {
		return nil
	}
	return e.AsNode().elementData.shadowRoot
}

// AttachShadow attaches a shadow tree to this element and returns its root.
func (e *Element) AttachShadow(mode ShadowRootMode) (*ShadowRoot, error) {
	if !e.canAttachShadow() {
		return nil, ErrNotSupported("This element does not support attachShadow.")
	}

	data := e.ensureElementData()
	if data.shadowRoot != nil {
		return nil, ErrNotSupported("Shadow root cannot be created on a host which already hosts a shadow tree.")
	}

	if mode != ShadowRootModeOpen && mode != ShadowRootModeClosed {
		return nil, ErrNotSupported("The provided value '" + string(mode) + "' is not a valid ShadowRootMode.")
	}

	sr := NewShadowRoot(e, mode)
	data.shadowRoot = sr
	return sr, nil
}

// canAttachShadow: custom elements (hyphenated names) and a fixed set of
// built-in elements may host shadow trees.
func (e *Element) canAttachShadow() bool {
	localName := e.LocalName()
	ns := e.NamespaceURI()

	if ns != "" && ns != HTMLNamespace {
		return false
	}
	if strings.Contains(localName, "-") {
		return true
	}

	switch localName {
	case "article", "aside", "blockquote", "body", "div", "footer",
		"h1", "h2", "h3", "h4", "h5", "h6",
		"header", "main", "nav", "p", "section", "span":
		return true
	}
	return false
}

package dom

import "strings"

// Attr represents an attribute of an Element. The owner element link is weak.
type Attr struct {
	ownerElement *Element
	namespaceURI string
	prefix       string
	localName    string
	name         string
	value        string
}

// NewAttr creates a new Attr with the given name and value.
func NewAttr(name, value string) *Attr {
	return &Attr{
		localName: name,
		name:      name,
		value:     value,
	}
}

// NewAttrNS creates a new Attr with the given namespace, qualified name, and value.
func NewAttrNS(namespaceURI, qualifiedName, value string) *Attr {
	prefix := ""
	localName := qualifiedName
	if idx := strings.Index(qualifiedName, ":"); idx >= 0 {
		prefix = qualifiedName[:idx]
		localName = qualifiedName[idx+1:]
	}

	return &Attr{
		namespaceURI: namespaceURI,
		prefix:       prefix,
		localName:    localName,
		name:         qualifiedName,
		value:        value,
	}
}

// NodeType returns AttributeNode (2).
func (a *Attr) NodeType() NodeType {
	return AttributeNode
}

// NodeName returns the qualified attribute name.
func (a *Attr) NodeName() string {
	return a.name
}

// OwnerElement returns the element that owns this attribute.
func (a *Attr) OwnerElement() *Element {
	return a.ownerElement
}

// OwnerDocument returns the Document that owns this attribute, through the
// owner element.
func (a *Attr) OwnerDocument() *Document {
	if a.ownerElement != nil {
		return a.ownerElement.AsNode().OwnerDocument()
	}
	return nil
}

// NamespaceURI returns the namespace URI of the attribute.
func (a *Attr) NamespaceURI() string {
	return a.namespaceURI
}

// Prefix returns the namespace prefix of the attribute.
func (a *Attr) Prefix() string {
	return a.prefix
}

// LocalName returns the local name of the attribute.
func (a *Attr) LocalName() string {
	return a.localName
}

// Name returns the qualified name of the attribute.
func (a *Attr) Name() string {
	return a.name
}

// Value returns the attribute value.
func (a *Attr) Value() string {
	return a.value
}

// SetValue sets the attribute value, notifying the owner element's document.
func (a *Attr) SetValue(value string) {
	old := a.value
	a.value = value
	if a.ownerElement != nil {
		notifyAttributeMutation(a.ownerElement.AsNode(), a.localName, a.namespaceURI, old)
	}
}

// Specified always returns true (historical).
func (a *Attr) Specified() bool {
	return true
}

// clone returns an unattached copy of this attribute.
func (a *Attr) clone() *Attr {
	return &Attr{
		namespaceURI: a.namespaceURI,
		prefix:       a.prefix,
		localName:    a.localName,
		name:         a.name,
		value:        a.value,
	}
}

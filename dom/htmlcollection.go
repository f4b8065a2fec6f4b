package dom

import "strings"

// HTMLCollection is a live, ordered set of elements under a root matching a
// filter. The computed snapshot is cached and tagged with the document's
// tree revision; any read after a mutation recomputes it, so reads between
// mutations cost nothing beyond the first.
type HTMLCollection struct {
	root   *Node
	filter func(*Element) bool

	cached   []*Element
	cachedAt uint64
	valid    bool
}

// newHTMLCollection creates a new HTMLCollection with the given root and filter.
func newHTMLCollection(root *Node, filter func(*Element) bool) *HTMLCollection {
	return &HTMLCollection{root: root, filter: filter}
}

// NewHTMLCollectionByTagName creates an HTMLCollection of elements with the
// given tag name; "*" matches every element.
func NewHTMLCollectionByTagName(root *Node, tagName string) *HTMLCollection {
	tagName = strings.ToUpper(tagName)
	return newHTMLCollection(root, func(el *Element) bool {
		if tagName == "*" {
			return true
		}
		return el.TagName() == tagName
	})
}

// NewHTMLCollectionByClassName creates an HTMLCollection of elements carrying
// all of the given class names.
func NewHTMLCollectionByClassName(root *Node, classNames string) *HTMLCollection {
	classes := strings.Fields(classNames)
	return newHTMLCollection(root, func(el *Element) bool {
		classList := el.ClassList()
		for _, class := range classes {
			if !classList.Contains(class) {
				return false
			}
		}
		return true
	})
}

// collectElements returns the matching elements, recomputing the snapshot
// only when the tree revision moved.
func (hc *HTMLCollection) collectElements() []*Element {
	doc := hc.root.doc()
	if doc != nil {
		rev := doc.TreeRevision()
		if hc.valid && hc.cachedAt == rev {
			return hc.cached
		}
		hc.cachedAt = rev
	}

	hc.cached = hc.cached[:0]
	hc.traverse(hc.root)
	hc.valid = doc != nil
	return hc.cached
}

func (hc *HTMLCollection) traverse(node *Node) {
	for child := node.firstChild; child != nil; child = child.nextSibling {
		if child.nodeType == ElementNode {
			el := (*Element)(child)
			if hc.filter(el) {
				hc.cached = append(hc.cached, el)
			}
			hc.traverse(child)
		}
	}
}

// Length returns the number of elements in the collection.
func (hc *HTMLCollection) Length() int {
	return len(hc.collectElements())
}

// Item returns the element at the given index, or nil if out of bounds.
func (hc *HTMLCollection) Item(index int) *Element {
	elements := hc.collectElements()
	if index < 0 || index >= len(elements) {
		return nil
	}
	return elements[index]
}

// NamedItem returns the first element whose id — or, for HTML namespace
// elements, name attribute — equals name. The empty string never matches.
func (hc *HTMLCollection) NamedItem(name string) *Element {
	if name == "" {
		return nil
	}
	elements := hc.collectElements()
	for _, el := range elements {
		if el.Id() == name {
			return el
		}
	}
	for _, el := range elements {
		if el.NamespaceURI() == HTMLNamespace && el.GetAttribute("name") == name {
			return el
		}
	}
	return nil
}

// ToSlice returns all elements as a fresh slice.
func (hc *HTMLCollection) ToSlice() []*Element {
	elements := hc.collectElements()
	out := make([]*Element, len(elements))
	copy(out, elements)
	return out
}

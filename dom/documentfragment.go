package dom

// DocumentFragment is a minimal parentless container. Inserting a fragment
// splices its children into the target in order, leaving the fragment empty.
type DocumentFragment Node

// AsNode returns the underlying Node.
func (df *DocumentFragment) AsNode() *Node {
	return (*Node)(df)
}

// NodeType returns DocumentFragmentNode (11).
func (df *DocumentFragment) NodeType() NodeType {
	return DocumentFragmentNode
}

// NodeName returns "#document-fragment".
func (df *DocumentFragment) NodeName() string {
	return "#document-fragment"
}

// Children returns an HTMLCollection of child elements.
func (df *DocumentFragment) Children() *HTMLCollection {
	return newHTMLCollection(df.AsNode(), func(el *Element) bool {
		return el.AsNode().parentNode == df.AsNode()
	})
}

// ChildElementCount returns the number of child elements.
func (df *DocumentFragment) ChildElementCount() int {
	count := 0
	for child := df.AsNode().firstChild; child != nil; child = child.nextSibling {
		if child.nodeType == ElementNode {
			count++
		}
	}
	return count
}

// FirstElementChild returns the first child element.
func (df *DocumentFragment) FirstElementChild() *Element {
	for child := df.AsNode().firstChild; child != nil; child = child.nextSibling {
		if child.nodeType == ElementNode {
			return (*Element)(child)
		}
	}
	return nil
}

// LastElementChild returns the last child element.
func (df *DocumentFragment) LastElementChild() *Element {
	for child := df.AsNode().lastChild; child != nil; child = child.prevSibling {
		if child.nodeType == ElementNode {
			return (*Element)(child)
		}
	}
	return nil
}

// GetElementById returns the descendant element with the given id, or nil.
func (df *DocumentFragment) GetElementById(id string) *Element {
	if id == "" {
		return nil
	}
	return findElementByIdIn(df.AsNode(), id)
}

func findElementByIdIn(node *Node, id string) *Element {
	for child := node.firstChild; child != nil; child = child.nextSibling {
		if child.nodeType == ElementNode {
			el := (*Element)(child)
			if el.Id() == id {
				return el
			}
			if result := findElementByIdIn(child, id); result != nil {
				return result
			}
		}
	}
	return nil
}

// Append appends nodes or strings to this fragment.
func (df *DocumentFragment) Append(nodes ...interface{}) {
	if node := df.AsNode().convertNodesToFragment(nodes); node != nil {
		df.AsNode().AppendChild(node)
	}
}

// Prepend prepends nodes or strings to this fragment.
func (df *DocumentFragment) Prepend(nodes ...interface{}) {
	if node := df.AsNode().convertNodesToFragment(nodes); node != nil {
		df.AsNode().InsertBefore(node, df.AsNode().firstChild)
	}
}

// ReplaceChildren replaces all children with the given nodes.
// Use ReplaceChildrenWithError for error handling.
func (df *DocumentFragment) ReplaceChildren(nodes ...interface{}) {
	_ = df.ReplaceChildrenWithError(nodes...)
}

// ReplaceChildrenWithError replaces all children with the given nodes.
// Validation happens before any children are removed.
func (df *DocumentFragment) ReplaceChildrenWithError(nodes ...interface{}) error {
	var node *Node
	if len(nodes) > 0 {
		node = df.AsNode().convertNodesToFragment(nodes)
	}
	if node != nil {
		if err := df.AsNode().validatePreInsertion(node, nil); err != nil {
			return err
		}
	}
	for df.AsNode().firstChild != nil {
		df.AsNode().RemoveChild(df.AsNode().firstChild)
	}
	if node != nil {
		df.AsNode().AppendChild(node)
	}
	return nil
}

// CloneNode clones this document fragment.
func (df *DocumentFragment) CloneNode(deep bool) *DocumentFragment {
	return (*DocumentFragment)(df.AsNode().CloneNode(deep))
}

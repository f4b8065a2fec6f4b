package dom

// NodeList is a collection of nodes: either live (a lazily recomputed view
// over the tree, snapshot-cached against the document's tree revision) or
// static (a snapshot taken at construction, as querySelectorAll returns).
type NodeList struct {
	// For live NodeLists, the parent whose children are listed.
	parent *Node

	// Optional filter for live lists over a whole subtree. When nil, the
	// list contains the parent's direct children.
	filter func(*Node) bool

	// Snapshot, tagged with the revision it was computed at (live lists),
	// or the fixed contents (static lists).
	cached   []*Node
	cachedAt uint64
	valid    bool

	isLive bool
}

// newNodeList creates a live NodeList of the given parent's children.
func newNodeList(parent *Node) *NodeList {
	return &NodeList{parent: parent, isLive: true}
}

// NewLiveNodeList creates a live NodeList of the root's descendants matching
// the filter.
func NewLiveNodeList(root *Node, filter func(*Node) bool) *NodeList {
	return &NodeList{parent: root, filter: filter, isLive: true}
}

// NewStaticNodeList creates a static NodeList from a slice of nodes.
func NewStaticNodeList(nodes []*Node) *NodeList {
	staticCopy := make([]*Node, len(nodes))
	copy(staticCopy, nodes)
	return &NodeList{cached: staticCopy, valid: true}
}

// snapshot returns the current contents, recomputing when the document's
// tree revision moved past the cached one.
func (nl *NodeList) snapshot() []*Node {
	if !nl.isLive {
		return nl.cached
	}

	doc := nl.parent.doc()
	if doc != nil {
		rev := doc.TreeRevision()
		if nl.valid && nl.cachedAt == rev {
			return nl.cached
		}
		nl.cachedAt = rev
	}

	nl.cached = nl.cached[:0]
	if nl.filter == nil {
		for child := nl.parent.firstChild; child != nil; child = child.nextSibling {
			nl.cached = append(nl.cached, child)
		}
	} else {
		var walk func(*Node)
		walk = func(node *Node) {
			for child := node.firstChild; child != nil; child = child.nextSibling {
				if nl.filter(child) {
					nl.cached = append(nl.cached, child)
				}
				walk(child)
			}
		}
		walk(nl.parent)
	}
	nl.valid = doc != nil
	return nl.cached
}

// Length returns the number of nodes in the collection.
func (nl *NodeList) Length() int {
	return len(nl.snapshot())
}

// Item returns the node at the given index, or nil if out of bounds.
func (nl *NodeList) Item(index int) *Node {
	nodes := nl.snapshot()
	if index < 0 || index >= len(nodes) {
		return nil
	}
	return nodes[index]
}

// ForEach calls the given function for each node in the collection.
func (nl *NodeList) ForEach(fn func(node *Node, index int)) {
	for i, node := range nl.snapshot() {
		fn(node, i)
	}
}

// ToSlice returns the contents as a fresh slice.
func (nl *NodeList) ToSlice() []*Node {
	nodes := nl.snapshot()
	out := make([]*Node, len(nodes))
	copy(out, nodes)
	return out
}

package dom

// NodeIterator and TreeWalker traverse a subtree through a whatToShow bitmask
// and an optional filter callback. Filters may mutate the tree re-entrantly;
// a live NodeIterator re-points its reference node when the node it rests on
// is removed.

// whatToShow bitmask values.
const (
	ShowAll                   uint32 = 0xFFFFFFFF
	ShowElement               uint32 = 0x1
	ShowAttribute             uint32 = 0x2
	ShowText                  uint32 = 0x4
	ShowCDATASection          uint32 = 0x8
	ShowProcessingInstruction uint32 = 0x40
	ShowComment               uint32 = 0x80
	ShowDocument              uint32 = 0x100
	ShowDocumentType          uint32 = 0x200
	ShowDocumentFragment      uint32 = 0x400
)

// Filter results.
const (
	FilterAccept = 1
	FilterReject = 2
	FilterSkip   = 3
)

// NodeFilter decides whether traversal yields, rejects (with subtree) or
// skips (node only) a candidate node.
type NodeFilter func(*Node) int

// acceptNode applies whatToShow, then the filter.
func acceptNode(node *Node, whatToShow uint32, filter NodeFilter) int {
	if whatToShow&(1<<(uint32(node.nodeType)-1)) == 0 {
		return FilterSkip
	}
	if filter == nil {
		return FilterAccept
	}
	return filter(node)
}

// NodeIterator yields a flat forward/backward sequence over root's subtree.
type NodeIterator struct {
	document                   *Document
	root                       *Node
	whatToShow                 uint32
	filter                     NodeFilter
	referenceNode              *Node
	pointerBeforeReferenceNode bool
}

// CreateNodeIterator creates a NodeIterator rooted at root.
func (d *Document) CreateNodeIterator(root *Node, whatToShow uint32, filter NodeFilter) *NodeIterator {
	// Pre-removal steps run for iterators registered with the root's node
	// document.
	rootDoc := root.doc()
	if rootDoc == nil {
		rootDoc = d
	}
	ni := &NodeIterator{
		document:                   rootDoc,
		root:                       root,
		whatToShow:                 whatToShow,
		filter:                     filter,
		referenceNode:              root,
		pointerBeforeReferenceNode: true,
	}
	rootDoc.registerNodeIterator(ni)
	return ni
}

// Root returns the iterator's root node.
func (ni *NodeIterator) Root() *Node {
	return ni.root
}

// WhatToShow returns the whatToShow bitmask.
func (ni *NodeIterator) WhatToShow() uint32 {
	return ni.whatToShow
}

// ReferenceNode returns the reference node.
func (ni *NodeIterator) ReferenceNode() *Node {
	return ni.referenceNode
}

// PointerBeforeReferenceNode reports whether the pointer sits before the
// reference node.
func (ni *NodeIterator) PointerBeforeReferenceNode() bool {
	return ni.pointerBeforeReferenceNode
}

// NextNode advances to and returns the next accepted node, or nil.
func (ni *NodeIterator) NextNode() *Node {
	return ni.traverse(true)
}

// PreviousNode retreats to and returns the previous accepted node, or nil.
func (ni *NodeIterator) PreviousNode() *Node {
	return ni.traverse(false)
}

func (ni *NodeIterator) traverse(forward bool) *Node {
	node := ni.referenceNode
	before := ni.pointerBeforeReferenceNode

	for {
		if forward {
			if before {
				before = false
			} else {
				next := followingNode(node, ni.root)
				if next == nil {
					return nil
				}
				node = next
			}
		} else {
			if !before {
				before = true
			} else {
				prev := precedingNode(node, ni.root)
				if prev == nil {
					return nil
				}
				node = prev
			}
		}

		if acceptNode(node, ni.whatToShow, ni.filter) == FilterAccept {
			ni.referenceNode = node
			ni.pointerBeforeReferenceNode = before
			return node
		}
	}
}

// Detach unregisters the iterator. Traversal itself is unaffected, but the
// iterator stops receiving pre-removal adjustments.
func (ni *NodeIterator) Detach() {
	if ni.document != nil {
		ni.document.unregisterNodeIterator(ni)
	}
}

// preRemovingSteps re-points the reference node when toBeRemoved is about to
// leave the tree, per the spec's iterator-reference adjustment rules.
func (ni *NodeIterator) preRemovingSteps(toBeRemoved *Node) {
	if isInclusiveAncestor(toBeRemoved, ni.root) {
		return
	}
	if !isInclusiveAncestor(toBeRemoved, ni.referenceNode) {
		return
	}

	if !ni.pointerBeforeReferenceNode {
		ni.referenceNode = precedingNode(toBeRemoved, ni.root)
		return
	}

	next := followingNode(lastInclusiveDescendant(toBeRemoved), ni.root)
	if next != nil {
		ni.referenceNode = next
		return
	}

	ni.referenceNode = precedingNode(toBeRemoved, ni.root)
	ni.pointerBeforeReferenceNode = false
}

// precedingNode returns the node before node in tree order within root's
// subtree, or nil.
func precedingNode(node, root *Node) *Node {
	if node == root {
		return nil
	}
	if node.prevSibling != nil {
		return lastInclusiveDescendant(node.prevSibling)
	}
	parent := node.parentNode
	if parent == root {
		return root
	}
	return parent
}

// followingNode returns the node after node in tree order within root's
// subtree, or nil.
func followingNode(node, root *Node) *Node {
	if node.firstChild != nil {
		return node.firstChild
	}
	for n := node; n != nil && n != root; n = n.parentNode {
		if n.nextSibling != nil {
			return n.nextSibling
		}
	}
	return nil
}

// TreeWalker yields structural navigation over root's subtree, consulting
// whatToShow and the filter at every step.
type TreeWalker struct {
	root        *Node
	whatToShow  uint32
	filter      NodeFilter
	currentNode *Node
}

// CreateTreeWalker creates a TreeWalker rooted at root.
func (d *Document) CreateTreeWalker(root *Node, whatToShow uint32, filter NodeFilter) *TreeWalker {
	return &TreeWalker{
		root:        root,
		whatToShow:  whatToShow,
		filter:      filter,
		currentNode: root,
	}
}

// Root returns the walker's root node.
func (tw *TreeWalker) Root() *Node {
	return tw.root
}

// WhatToShow returns the whatToShow bitmask.
func (tw *TreeWalker) WhatToShow() uint32 {
	return tw.whatToShow
}

// CurrentNode returns the current node.
func (tw *TreeWalker) CurrentNode() *Node {
	return tw.currentNode
}

// SetCurrentNode sets the current node.
func (tw *TreeWalker) SetCurrentNode(node *Node) {
	tw.currentNode = node
}

func (tw *TreeWalker) accept(node *Node) int {
	return acceptNode(node, tw.whatToShow, tw.filter)
}

// ParentNode moves to the nearest accepted ancestor within root, or nil.
func (tw *TreeWalker) ParentNode() *Node {
	node := tw.currentNode
	for node != nil && node != tw.root {
		node = node.parentNode
		if node == nil {
			break
		}
		if tw.accept(node) == FilterAccept {
			tw.currentNode = node
			return node
		}
	}
	return nil
}

// FirstChild moves to the first accepted child, descending through skipped
// nodes, or returns nil.
func (tw *TreeWalker) FirstChild() *Node {
	return tw.traverseChildren(true)
}

// LastChild moves to the last accepted child, or returns nil.
func (tw *TreeWalker) LastChild() *Node {
	return tw.traverseChildren(false)
}

func (tw *TreeWalker) traverseChildren(first bool) *Node {
	node := tw.currentNode
	if first {
		node = node.firstChild
	} else {
		node = node.lastChild
	}

	for node != nil {
		switch tw.accept(node) {
		case FilterAccept:
			tw.currentNode = node
			return node
		case FilterSkip:
			// Descend into a skipped node's children.
			var child *Node
			if first {
				child = node.firstChild
			} else {
				child = node.lastChild
			}
			if child != nil {
				node = child
				continue
			}
		}

		// Rejected, or skipped with no children: try siblings, climbing
		// back toward currentNode when a branch is exhausted.
		for node != nil {
			var sibling *Node
			if first {
				sibling = node.nextSibling
			} else {
				sibling = node.prevSibling
			}
			if sibling != nil {
				node = sibling
				break
			}
			parent := node.parentNode
			if parent == nil || parent == tw.root || parent == tw.currentNode {
				return nil
			}
			node = parent
		}
	}
	return nil
}

// NextSibling moves to the next accepted sibling, or returns nil.
func (tw *TreeWalker) NextSibling() *Node {
	return tw.traverseSiblings(true)
}

// PreviousSibling moves to the previous accepted sibling, or returns nil.
func (tw *TreeWalker) PreviousSibling() *Node {
	return tw.traverseSiblings(false)
}

func (tw *TreeWalker) traverseSiblings(next bool) *Node {
	node := tw.currentNode
	if node == tw.root {
		return nil
	}

	for {
		var sibling *Node
		if next {
			sibling = node.nextSibling
		} else {
			sibling = node.prevSibling
		}

		for sibling != nil {
			node = sibling
			result := tw.accept(node)
			if result == FilterAccept {
				tw.currentNode = node
				return node
			}
			// A skipped node exposes its children in sibling order.
			var child *Node
			if next {
				child = node.firstChild
			} else {
				child = node.lastChild
			}
			if result == FilterReject || child == nil {
				if next {
					sibling = node.nextSibling
				} else {
					sibling = node.prevSibling
				}
			} else {
				sibling = child
			}
		}

		node = node.parentNode
		if node == nil || node == tw.root {
			return nil
		}
		if tw.accept(node) == FilterAccept {
			return nil
		}
	}
}

// NextNode moves to the next accepted node in tree order, or returns nil.
func (tw *TreeWalker) NextNode() *Node {
	node := tw.currentNode
	result := FilterAccept

	for {
		for result != FilterReject && node.firstChild != nil {
			node = node.firstChild
			result = tw.accept(node)
			if result == FilterAccept {
				tw.currentNode = node
				return node
			}
		}

		var temp *Node
		for cur := node; cur != nil; cur = cur.parentNode {
			if cur == tw.root {
				return nil
			}
			if cur.nextSibling != nil {
				temp = cur.nextSibling
				break
			}
		}
		if temp == nil {
			return nil
		}
		node = temp

		result = tw.accept(node)
		if result == FilterAccept {
			tw.currentNode = node
			return node
		}
	}
}

// PreviousNode moves to the previous accepted node in tree order, or nil.
func (tw *TreeWalker) PreviousNode() *Node {
	node := tw.currentNode

	for node != tw.root {
		sibling := node.prevSibling
		for sibling != nil {
			node = sibling
			result := tw.accept(node)
			for result != FilterReject && node.lastChild != nil {
				node = node.lastChild
				result = tw.accept(node)
			}
			if result == FilterAccept {
				tw.currentNode = node
				return node
			}
			sibling = node.prevSibling
		}

		if node == tw.root || node.parentNode == nil {
			return nil
		}
		node = node.parentNode
		if tw.accept(node) == FilterAccept {
			tw.currentNode = node
			return node
		}
	}
	return nil
}

package dom

// This file carries the pre-insertion validation and the mutation algorithms.
// All structural changes funnel through insertSingle/detachChild so
// that validation, adoption, link editing, connectivity, the per-variant
// insertion/removing steps, live-range adjustment and the tree revision
// counter stay consistent.

// AppendChild adds a node to the end of the list of children of this node.
// For the error-returning version, use AppendChildWithError.
func (n *Node) AppendChild(child *Node) *Node {
	result, _ := n.AppendChildWithError(child)
	return result
}

// AppendChildWithError adds a node to the end of the list of children of this
// node. Returns an error if the operation violates DOM hierarchy constraints.
func (n *Node) AppendChildWithError(child *Node) (*Node, error) {
	return n.InsertBeforeWithError(child, nil)
}

// InsertBefore inserts a node before a reference child node.
// If refChild is nil, the node is appended to the end.
func (n *Node) InsertBefore(newChild, refChild *Node) *Node {
	result, _ := n.InsertBeforeWithError(newChild, refChild)
	return result
}

// InsertBeforeWithError inserts a node before a reference child node.
// If refChild is nil, the node is appended to the end.
// Returns an error if the operation violates DOM hierarchy constraints.
func (n *Node) InsertBeforeWithError(newChild, refChild *Node) (*Node, error) {
	if err := n.validatePreInsertion(newChild, refChild); err != nil {
		return nil, err
	}
	return n.insertBefore(newChild, refChild), nil
}

// validatePreInsertion implements the pre-insertion validation steps from the
// DOM spec. https://dom.spec.whatwg.org/#concept-node-pre-insert
func (n *Node) validatePreInsertion(node, child *Node) error {
	return n.validatePreInsertionOrReplace(node, child, false)
}

func (n *Node) validatePreReplace(node, child *Node) error {
	return n.validatePreInsertionOrReplace(node, child, true)
}

// The check order matters: a wrong-parent child raises NotFoundError before
// any of the Document child-count checks raise HierarchyRequestError.
func (n *Node) validatePreInsertionOrReplace(node, child *Node, isReplace bool) error {
	// Step 1: parent must be a Document, DocumentFragment, or Element node
	if !n.canHaveChildren() {
		return ErrHierarchyRequest("The operation would yield an incorrect node tree.")
	}

	// Step 2: node must not be an inclusive ancestor of parent
	if n.isInclusiveAncestorNode(node) {
		return ErrHierarchyRequest("The new child element contains the parent.")
	}

	// Step 3: if child is non-null, its parent must be parent
	if child != nil && child.parentNode != n {
		return ErrNotFound("The node before which the new node is to be inserted is not a child of this node.")
	}

	// Step 4: node must be an insertable kind
	if !isValidChildType(node) {
		return ErrHierarchyRequest("The operation would yield an incorrect node tree.")
	}

	// Step 5: no Text children of documents, doctypes only under documents
	if node.nodeType == TextNode && n.nodeType == DocumentNode {
		return ErrHierarchyRequest("Cannot insert Text node as a direct child of Document.")
	}
	if node.nodeType == DocumentTypeNode && n.nodeType != DocumentNode {
		return ErrHierarchyRequest("DocumentType nodes can only be children of Document.")
	}

	// Step 6: Document child constraints
	if n.nodeType == DocumentNode {
		return n.validateDocumentInsertionOrReplace(node, child, isReplace)
	}
	return nil
}

// canHaveChildren returns true if this node can have child nodes.
func (n *Node) canHaveChildren() bool {
	switch n.nodeType {
	case DocumentNode, DocumentFragmentNode, ElementNode:
		return true
	default:
		return false
	}
}

// isInclusiveAncestorNode returns true if node is this node or an ancestor of it.
func (n *Node) isInclusiveAncestorNode(node *Node) bool {
	if node == nil {
		return false
	}
	for current := n; current != nil; current = current.parentNode {
		if current == node {
			return true
		}
	}
	return false
}

// isValidChildType returns true for kinds that may appear in a child list.
// Attr and Document nodes are not insertable.
func isValidChildType(node *Node) bool {
	if node == nil {
		return false
	}
	switch node.nodeType {
	case DocumentFragmentNode, DocumentTypeNode, ElementNode, TextNode,
		ProcessingInstructionNode, CommentNode, CDATASectionNode:
		return true
	default:
		return false
	}
}

// validateDocumentInsertionOrReplace enforces the Document-specific rules:
// at most one element child, at most one doctype, doctype before element,
// no text children. When isReplace is true, child is excluded from counts.
func (n *Node) validateDocumentInsertionOrReplace(node, child *Node, isReplace bool) error {
	var exclude *Node
	if isReplace {
		exclude = child
	}

	switch node.nodeType {
	case DocumentFragmentNode:
		elementCount := 0
		hasText := false
		for c := node.firstChild; c != nil; c = c.nextSibling {
			if c.nodeType == ElementNode {
				elementCount++
			}
			if c.nodeType == TextNode {
				hasText = true
			}
		}

		if hasText {
			return ErrHierarchyRequest("Cannot insert Text node as a direct child of Document.")
		}
		if elementCount > 1 {
			return ErrHierarchyRequest("Document can have only one element child.")
		}
		if elementCount == 1 {
			if n.hasElementChildExcluding(exclude) {
				return ErrHierarchyRequest("Document already has a document element.")
			}
			if child != nil && !(isReplace && child.nodeType == ElementNode) {
				if child.nodeType == DocumentTypeNode || n.doctypeFollows(child) {
					return ErrHierarchyRequest("Cannot insert element before doctype.")
				}
			}
		}

	case ElementNode:
		if n.hasElementChildExcluding(exclude) {
			return ErrHierarchyRequest("Document already has a document element.")
		}
		if child != nil && !(isReplace && child.nodeType == ElementNode) {
			if child.nodeType == DocumentTypeNode || n.doctypeFollows(child) {
				return ErrHierarchyRequest("Cannot insert element before doctype.")
			}
		}

	case DocumentTypeNode:
		if n.hasDoctypeExcluding(exclude) {
			return ErrHierarchyRequest("Document already has a doctype.")
		}
		if n.hasElementChildExcluding(exclude) {
			if child == nil || n.elementPrecedesExcluding(child, exclude) {
				return ErrHierarchyRequest("Cannot insert doctype after document element.")
			}
		}
	}
	return nil
}

func (n *Node) hasElementChildExcluding(exclude *Node) bool {
	for c := n.firstChild; c != nil; c = c.nextSibling {
		if c != exclude && c.nodeType == ElementNode {
			return true
		}
	}
	return false
}

func (n *Node) hasDoctypeExcluding(exclude *Node) bool {
	for c := n.firstChild; c != nil; c = c.nextSibling {
		if c != exclude && c.nodeType == DocumentTypeNode {
			return true
		}
	}
	return false
}

func (n *Node) doctypeFollows(child *Node) bool {
	for c := child.nextSibling; c != nil; c = c.nextSibling {
		if c.nodeType == DocumentTypeNode {
			return true
		}
	}
	return false
}

func (n *Node) elementPrecedesExcluding(child, exclude *Node) bool {
	for c := n.firstChild; c != nil && c != child; c = c.nextSibling {
		if c != exclude && c.nodeType == ElementNode {
			return true
		}
	}
	return false
}

// insertBefore performs the insert. Validation has already passed.
func (n *Node) insertBefore(newChild, refChild *Node) *Node {
	if newChild == nil {
		return nil
	}

	// DocumentFragment: splice its children in order, leaving it empty.
	if newChild.nodeType == DocumentFragmentNode {
		var children []*Node
		for child := newChild.firstChild; child != nil; child = child.nextSibling {
			children = append(children, child)
		}

		var prevSib *Node
		if refChild != nil {
			prevSib = refChild.prevSibling
		} else {
			prevSib = n.lastChild
		}

		for _, child := range children {
			n.insertSingle(child, refChild, false)
		}

		if len(children) > 0 {
			notifyChildListMutation(n, children, nil, prevSib, refChild)
			// Insertion steps run per child in source order, after the
			// whole batch is linked, so an earlier child's steps can
			// observe later siblings already in place.
			for _, child := range children {
				n.runInsertionSteps(child)
			}
		}
		return newChild
	}

	// Inserting a node before itself is a no-op.
	if newChild == refChild {
		return newChild
	}

	var prevSib *Node
	if refChild != nil {
		prevSib = refChild.prevSibling
	} else {
		prevSib = n.lastChild
	}

	n.insertSingle(newChild, refChild, true)

	notifyChildListMutation(n, []*Node{newChild}, nil, prevSib, refChild)
	n.runInsertionSteps(newChild)

	return newChild
}

// insertSingle removes newChild from its current parent if any (notifying
// when notifyRemoval is set), adopts it into this node's document when the
// owners differ, and splices the links.
func (n *Node) insertSingle(newChild, refChild *Node, notifyRemoval bool) {
	if newChild.parentNode != nil {
		if notifyRemoval {
			newChild.parentNode.RemoveChild(newChild)
		} else {
			newChild.parentNode.detachChild(newChild)
		}
	}

	// Cross-document insertion adopts the whole subtree first.
	if doc := n.doc(); doc != nil && newChild.ownerDoc != doc {
		adoptSubtree(newChild, doc)
	}

	newChild.parentNode = n
	if refChild == nil {
		newChild.prevSibling = n.lastChild
		newChild.nextSibling = nil
		if n.lastChild != nil {
			n.lastChild.nextSibling = newChild
		} else {
			n.firstChild = newChild
		}
		n.lastChild = newChild
	} else {
		newChild.prevSibling = refChild.prevSibling
		newChild.nextSibling = refChild
		if refChild.prevSibling != nil {
			refChild.prevSibling.nextSibling = newChild
		} else {
			n.firstChild = newChild
		}
		refChild.prevSibling = newChild
	}

	setConnectedRecursive(newChild, n.childrenConnected())
}

// childrenConnected reports whether children of this node count as connected.
func (n *Node) childrenConnected() bool {
	return n.nodeType == DocumentNode || n.connected
}

// setConnectedRecursive updates the cached connectivity flag for a subtree
// and keeps the document id index in sync.
func setConnectedRecursive(node *Node, connected bool) {
	if node.connected == connected {
		return
	}
	node.connected = connected
	if doc := node.doc(); doc != nil && doc.AsNode().documentData != nil {
		// internalRefs tracks the document's self-reference for its
		// attached nodes; it drains during teardown.
		if connected {
			doc.AsNode().documentData.internalRefs++
		} else if doc.AsNode().documentData.internalRefs > 0 {
			doc.AsNode().documentData.internalRefs--
		}
	}
	if node.nodeType == ElementNode {
		if doc := node.doc(); doc != nil {
			if connected {
				doc.registerElementId(node)
			} else {
				doc.unregisterElementId(node, (*Element)(node).Id())
			}
		}
	}
	for child := node.firstChild; child != nil; child = child.nextSibling {
		setConnectedRecursive(child, connected)
	}
	// A shadow tree is connected through its host.
	if node.nodeType == ElementNode && node.elementData != nil && node.elementData.shadowRoot != nil {
		setConnectedRecursive(node.elementData.shadowRoot.AsNode(), connected)
	}
}

// runInsertionSteps invokes the embedder insertion hook for node and each of
// its descendants in tree order.
func (n *Node) runInsertionSteps(node *Node) {
	doc := n.doc()
	if doc == nil || doc.AsNode().documentData == nil {
		return
	}
	steps := doc.AsNode().documentData.insertionSteps
	if steps == nil {
		return
	}
	var walk func(*Node)
	walk = func(cur *Node) {
		steps(cur)
		for child := cur.firstChild; child != nil; child = child.nextSibling {
			walk(child)
		}
	}
	walk(node)
}

// runRemovingSteps invokes the embedder removing hook bottom-up for the
// descendants of node, then for node itself.
func runRemovingSteps(doc *Document, node *Node) {
	if doc == nil || doc.AsNode().documentData == nil {
		return
	}
	steps := doc.AsNode().documentData.removingSteps
	if steps == nil {
		return
	}
	var walk func(*Node)
	walk = func(cur *Node) {
		for child := cur.firstChild; child != nil; child = child.nextSibling {
			walk(child)
		}
		steps(cur)
	}
	walk(node)
}

// RemoveChild removes a child node from this node.
// For the error-returning version, use RemoveChildWithError.
func (n *Node) RemoveChild(child *Node) *Node {
	result, _ := n.RemoveChildWithError(child)
	return result
}

// RemoveChildWithError removes a child node from this node.
// Returns a NotFoundError if the child is not a child of this node.
func (n *Node) RemoveChildWithError(child *Node) (*Node, error) {
	if child == nil {
		return nil, ErrNotFound("The node to be removed is null.")
	}
	if child.parentNode != n {
		return nil, ErrNotFound("The node to be removed is not a child of this node.")
	}

	prevSib := child.prevSibling
	nextSib := child.nextSibling

	n.detachChild(child)

	notifyChildListMutation(n, nil, []*Node{child}, prevSib, nextSib)

	return child, nil
}

// detachChild unlinks a child: iterator pre-removal steps, link editing,
// connectivity, removing steps. It does not notify range/observer callbacks;
// callers that need that use RemoveChild or batch the notification.
func (n *Node) detachChild(child *Node) {
	doc := n.doc()
	if doc != nil {
		doc.notifyNodeIteratorsOfRemoval(child)
	}

	if child.prevSibling != nil {
		child.prevSibling.nextSibling = child.nextSibling
	} else {
		n.firstChild = child.nextSibling
	}
	if child.nextSibling != nil {
		child.nextSibling.prevSibling = child.prevSibling
	} else {
		n.lastChild = child.prevSibling
	}

	child.parentNode = nil
	child.prevSibling = nil
	child.nextSibling = nil

	setConnectedRecursive(child, false)
	runRemovingSteps(doc, child)

	// A detached node whose external holders are gone is destructible.
	if child.refCount <= 0 && doc != nil {
		doc.arenaRelease(child)
	}
}

// ReplaceChild replaces a child node with a new node.
// For the error-returning version, use ReplaceChildWithError.
func (n *Node) ReplaceChild(newChild, oldChild *Node) *Node {
	result, _ := n.ReplaceChildWithError(newChild, oldChild)
	return result
}

// ReplaceChildWithError replaces oldChild with newChild. Validation runs as a
// single step before any mutation, so errors leave the tree untouched.
func (n *Node) ReplaceChildWithError(newChild, oldChild *Node) (*Node, error) {
	if oldChild == nil {
		return nil, ErrNotFound("The node to be replaced is null.")
	}

	if err := n.validatePreReplace(newChild, oldChild); err != nil {
		return nil, err
	}

	if newChild == oldChild {
		return oldChild, nil
	}

	referenceChild := oldChild.nextSibling
	if referenceChild == newChild {
		referenceChild = newChild.nextSibling
	}

	if newChild.nodeType == DocumentFragmentNode {
		prevSib := oldChild.prevSibling
		nextSib := oldChild.nextSibling

		var children []*Node
		for child := newChild.firstChild; child != nil; child = child.nextSibling {
			children = append(children, child)
		}

		n.detachChild(oldChild)
		for _, child := range children {
			n.insertSingle(child, referenceChild, false)
		}

		notifyChildListMutation(n, children, []*Node{oldChild}, prevSib, nextSib)
		for _, child := range children {
			n.runInsertionSteps(child)
		}
		return oldChild, nil
	}

	if newChild.parentNode != nil {
		newChildPrevSib := newChild.prevSibling
		newChildNextSib := newChild.nextSibling
		oldParent := newChild.parentNode

		oldParent.detachChild(newChild)
		notifyChildListMutation(oldParent, nil, []*Node{newChild}, newChildPrevSib, newChildNextSib)
	}

	prevSib := oldChild.prevSibling
	nextSib := oldChild.nextSibling

	n.detachChild(oldChild)
	n.insertSingle(newChild, referenceChild, false)

	notifyChildListMutation(n, []*Node{newChild}, []*Node{oldChild}, prevSib, nextSib)
	n.runInsertionSteps(newChild)

	return oldChild, nil
}

// adoptSubtree reassigns ownerDoc for node and all descendants and moves the
// nodes between the two documents' arenas. Interned name handles from the old
// pool stay valid (identity still implies byte equality); names re-intern
// into the new pool on the next store through a factory or attribute path.
func adoptSubtree(node *Node, doc *Document) {
	old := node.doc()
	var walk func(*Node)
	walk = func(cur *Node) {
		if old != nil && old != doc {
			old.arenaRemove(cur)
		}
		cur.ownerDoc = doc
		doc.arenaAdd(cur)
		for child := cur.firstChild; child != nil; child = child.nextSibling {
			walk(child)
		}
	}
	walk(node)
}

// MoveBefore atomically moves a node to a new position while preserving its
// state, without running the remove+insert step pairs. It is a same-document
// operation and may not cross the connected/disconnected boundary.
func (n *Node) MoveBefore(node, child *Node) error {
	if err := n.validatePreMove(node, child); err != nil {
		return err
	}

	if node == child {
		return nil
	}

	oldParent := node.parentNode
	oldPrevSib := node.prevSibling
	oldNextSib := node.nextSibling

	var newPrevSib *Node
	if child != nil {
		newPrevSib = child.prevSibling
	} else {
		newPrevSib = n.lastChild
	}

	if oldParent != nil {
		// Unlink without running removing steps: state is preserved.
		if node.prevSibling != nil {
			node.prevSibling.nextSibling = node.nextSibling
		} else {
			oldParent.firstChild = node.nextSibling
		}
		if node.nextSibling != nil {
			node.nextSibling.prevSibling = node.prevSibling
		} else {
			oldParent.lastChild = node.prevSibling
		}
		node.parentNode = nil
		node.prevSibling = nil
		node.nextSibling = nil
	}

	node.parentNode = n
	if child == nil {
		node.prevSibling = n.lastChild
		node.nextSibling = nil
		if n.lastChild != nil {
			n.lastChild.nextSibling = node
		} else {
			n.firstChild = node
		}
		n.lastChild = node
	} else {
		node.prevSibling = child.prevSibling
		node.nextSibling = child
		if child.prevSibling != nil {
			child.prevSibling.nextSibling = node
		} else {
			n.firstChild = node
		}
		child.prevSibling = node
	}

	if oldParent != nil {
		notifyChildListMutation(oldParent, nil, []*Node{node}, oldPrevSib, oldNextSib)
	}
	notifyChildListMutation(n, []*Node{node}, nil, newPrevSib, child)

	return nil
}

// validatePreMove implements the pre-move validity checks: same tree (which
// rules out cross-document and connected/disconnected moves), a parent that
// can hold children, no cycles, Element-or-CharacterData node, and a child
// belonging to parent.
func (n *Node) validatePreMove(node, child *Node) error {
	if node == nil {
		return ErrHierarchyRequest("The operation would yield an incorrect node tree.")
	}

	if node.doc() != n.doc() {
		return ErrHierarchyRequest("Cannot move a node between documents.")
	}

	parentRoot := n.GetShadowIncludingRoot()
	nodeRoot := node.GetShadowIncludingRoot()
	if parentRoot != nodeRoot {
		return ErrHierarchyRequest("The operation would yield an incorrect node tree.")
	}

	if !n.canHaveChildren() {
		return ErrHierarchyRequest("The operation would yield an incorrect node tree.")
	}

	if n.isInclusiveAncestorNode(node) {
		return ErrHierarchyRequest("The new child element contains the parent.")
	}

	if !isElementOrCharacterData(node) {
		return ErrHierarchyRequest("The operation would yield an incorrect node tree.")
	}

	if child != nil && child.parentNode != n {
		return ErrNotFound("The node before which the new node is to be inserted is not a child of this node.")
	}

	if n.nodeType == DocumentNode {
		var exclude *Node
		if node.parentNode == n {
			exclude = node
		}
		switch node.nodeType {
		case ElementNode:
			if n.hasElementChildExcluding(exclude) {
				return ErrHierarchyRequest("Document already has a document element.")
			}
			if child != nil && child != exclude {
				if child.nodeType == DocumentTypeNode || n.doctypeFollows(child) {
					return ErrHierarchyRequest("Cannot insert element before doctype.")
				}
			}
		case TextNode:
			return ErrHierarchyRequest("Cannot insert Text node as a direct child of Document.")
		}
	}

	return nil
}

// isElementOrCharacterData returns true if node is an Element or a character
// data node.
func isElementOrCharacterData(node *Node) bool {
	if node == nil {
		return false
	}
	return node.nodeType == ElementNode || node.nodeType.isCharacterData()
}

// convertNodesToFragment implements the "converting nodes into a node"
// algorithm: a single node passes through, several become a fragment, strings
// become text nodes.
func (n *Node) convertNodesToFragment(items []interface{}) *Node {
	doc := n.doc()
	if doc == nil {
		return nil
	}

	nodes := make([]*Node, 0, len(items))
	for _, item := range items {
		var node *Node
		switch v := item.(type) {
		case *Node:
			node = v
		case *Element:
			node = v.AsNode()
		case *Text:
			node = v.AsNode()
		case *DocumentFragment:
			node = v.AsNode()
		case string:
			node = doc.CreateTextNode(v)
		}
		if node != nil {
			nodes = append(nodes, node)
		}
	}

	if len(nodes) == 0 {
		return nil
	}
	if len(nodes) == 1 {
		return nodes[0]
	}

	frag := doc.CreateDocumentFragment()
	fragNode := (*Node)(frag)
	for _, node := range nodes {
		fragNode.AppendChild(node)
	}
	return fragNode
}

// findViablePreviousSibling finds the first preceding sibling not in the set.
func (n *Node) findViablePreviousSibling(nodeSet map[*Node]bool) *Node {
	for sibling := n.prevSibling; sibling != nil; sibling = sibling.prevSibling {
		if !nodeSet[sibling] {
			return sibling
		}
	}
	return nil
}

// findViableNextSibling finds the first following sibling not in the set.
func (n *Node) findViableNextSibling(nodeSet map[*Node]bool) *Node {
	for sibling := n.nextSibling; sibling != nil; sibling = sibling.nextSibling {
		if !nodeSet[sibling] {
			return sibling
		}
	}
	return nil
}

// childNodeBefore implements the ChildNode.before() algorithm for n.
func childNodeBefore(n *Node, nodes []interface{}) {
	parent := n.parentNode
	if parent == nil {
		return
	}
	nodeSet := extractNodeSet(nodes)
	viablePrevSibling := n.findViablePreviousSibling(nodeSet)

	node := n.convertNodesToFragment(nodes)
	if node == nil {
		return
	}

	var refNode *Node
	if viablePrevSibling == nil {
		refNode = parent.firstChild
	} else {
		refNode = viablePrevSibling.nextSibling
	}
	parent.InsertBefore(node, refNode)
}

// childNodeAfter implements the ChildNode.after() algorithm for n.
func childNodeAfter(n *Node, nodes []interface{}) {
	parent := n.parentNode
	if parent == nil {
		return
	}
	nodeSet := extractNodeSet(nodes)
	viableNextSibling := n.findViableNextSibling(nodeSet)

	node := n.convertNodesToFragment(nodes)
	if node == nil {
		return
	}
	parent.InsertBefore(node, viableNextSibling)
}

// childNodeReplaceWith implements the ChildNode.replaceWith() algorithm for n.
func childNodeReplaceWith(n *Node, nodes []interface{}) {
	parent := n.parentNode
	if parent == nil {
		return
	}
	nodeSet := extractNodeSet(nodes)
	viableNextSibling := n.findViableNextSibling(nodeSet)

	node := n.convertNodesToFragment(nodes)

	if n.parentNode == parent {
		if node != nil {
			parent.ReplaceChild(node, n)
		} else {
			parent.RemoveChild(n)
		}
	} else if node != nil {
		parent.InsertBefore(node, viableNextSibling)
	}
}

// extractNodeSet builds a set of DOM nodes from the items slice.
func extractNodeSet(items []interface{}) map[*Node]bool {
	result := make(map[*Node]bool)
	for _, item := range items {
		switch v := item.(type) {
		case *Node:
			result[v] = true
		case *Element:
			result[v.AsNode()] = true
		case *Text:
			result[v.AsNode()] = true
		}
	}
	return result
}

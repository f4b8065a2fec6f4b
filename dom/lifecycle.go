package dom

// Reference counting and the two-phase Document teardown.
//
// A node starts with one reference owned by its creator. Tree insertion does
// not take an extra reference; ownership of attached nodes rests with the
// document's arena. Parent and owner links are weak, so the only cycle risk
// (Document <-> Node) never materializes. The Document itself carries two
// counts: externalRefs for public holders, internalRefs as a self-reference
// while nodes remain attached.

// Acquire registers an additional external holder of the node.
func (n *Node) Acquire() *Node {
	n.refCount++
	return n
}

// Release drops one external reference. A detached node whose count reaches
// zero becomes destructible and is dropped from its document's arena; the
// arena frees any remaining orphans at document teardown.
func (n *Node) Release() {
	if n.refCount > 0 {
		n.refCount--
	}
	if n.refCount == 0 && n.parentNode == nil && n.nodeType != DocumentNode {
		if doc := n.doc(); doc != nil {
			doc.arenaRelease(n)
		}
	}
}

// RefCount returns the node's current external reference count.
func (n *Node) RefCount() int {
	return n.refCount
}

// Acquire registers an additional public holder of the document.
func (d *Document) Acquire() *Document {
	d.AsNode().documentData.externalRefs++
	return d
}

// Release drops one public reference to the document. When the count reaches
// zero the document enters teardown.
func (d *Document) Release() {
	data := d.AsNode().documentData
	if data.externalRefs > 0 {
		data.externalRefs--
	}
	if data.externalRefs == 0 {
		d.destroy()
	}
}

// Destroyed reports whether the document has been torn down.
func (d *Document) Destroyed() bool {
	return d.AsNode().documentData.destroyed
}

// destroy performs the two-phase teardown: run removing steps over the
// attached tree, release the string pool, drop live-collection caches,
// ranges, iterators and observer callbacks, then free the arena so remaining
// orphans go with it.
func (d *Document) destroy() {
	data := d.AsNode().documentData
	if data.destroyed {
		return
	}
	data.destroyed = true

	// Phase one: detach the tree, running removing steps bottom-up.
	for d.AsNode().firstChild != nil {
		child := d.AsNode().firstChild
		d.AsNode().detachChild(child)
	}
	data.internalRefs = 0

	// Phase two: release per-document resources and free the arena.
	data.pool.clear()
	data.idIndex = make(map[string][]*Node)
	data.tagCollections = make(map[string]*HTMLCollection)
	data.classCollections = make(map[string]*HTMLCollection)
	data.ranges = make(map[*Range]struct{})
	data.nodeIterators = nil
	data.mutationCallbacks = nil

	for n := range data.arena {
		if n == d.AsNode() {
			continue
		}
		n.parentNode = nil
		n.firstChild = nil
		n.lastChild = nil
		n.prevSibling = nil
		n.nextSibling = nil
		n.connected = false
		n.events = nil
	}
	data.arena = make(map[*Node]struct{})
}

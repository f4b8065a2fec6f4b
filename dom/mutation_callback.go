package dom

// MutationCallback receives notifications about tree mutations. Live ranges
// hook in through it; embedders can register their own observers. Callbacks
// are per-document state — there is no process-global registry.
type MutationCallback interface {
	// OnChildListMutation is called when children are added or removed.
	OnChildListMutation(
		target *Node,
		addedNodes []*Node,
		removedNodes []*Node,
		previousSibling *Node,
		nextSibling *Node,
	)

	// OnAttributeMutation is called when an attribute is changed.
	OnAttributeMutation(
		target *Node,
		attributeName string,
		attributeNamespace string,
		oldValue string,
	)

	// OnReplaceData is called when the "replace data" algorithm runs on a
	// character data node, with the offset, count and replacement needed
	// for precise Range boundary adjustment. Offsets are UTF-16 units.
	OnReplaceData(
		target *Node,
		offset int,
		count int,
		data string,
	)
}

// RegisterMutationCallback registers a callback on a document.
func RegisterMutationCallback(doc *Document, callback MutationCallback) {
	if doc == nil || callback == nil {
		return
	}
	data := doc.AsNode().documentData
	data.mutationCallbacks = append(data.mutationCallbacks, callback)
}

// UnregisterMutationCallback removes a callback from a document.
func UnregisterMutationCallback(doc *Document, callback MutationCallback) {
	if doc == nil {
		return
	}
	data := doc.AsNode().documentData
	for i, cb := range data.mutationCallbacks {
		if cb == callback {
			data.mutationCallbacks = append(data.mutationCallbacks[:i], data.mutationCallbacks[i+1:]...)
			return
		}
	}
}

// notifyChildListMutation bumps the tree revision and fans out a childList
// mutation to the document's callbacks.
func notifyChildListMutation(
	target *Node,
	addedNodes []*Node,
	removedNodes []*Node,
	previousSibling *Node,
	nextSibling *Node,
) {
	doc := target.doc()
	if doc == nil || doc.AsNode().documentData == nil {
		return
	}
	doc.bumpRevision()
	for _, cb := range doc.AsNode().documentData.mutationCallbacks {
		cb.OnChildListMutation(target, addedNodes, removedNodes, previousSibling, nextSibling)
	}
}

// notifyAttributeMutation bumps the tree revision, keeps the id index in
// sync, and fans out an attribute mutation.
func notifyAttributeMutation(
	target *Node,
	attributeName string,
	attributeNamespace string,
	oldValue string,
) {
	doc := target.doc()
	if doc == nil || doc.AsNode().documentData == nil {
		return
	}
	doc.bumpRevision()
	doc.handleAttributeChanged(target, attributeName, attributeNamespace, oldValue)
	for _, cb := range doc.AsNode().documentData.mutationCallbacks {
		cb.OnAttributeMutation(target, attributeName, attributeNamespace, oldValue)
	}
}

// notifyReplaceData bumps the tree revision and fans out a character data
// replacement. Used by insertData, deleteData, replaceData and setters.
func notifyReplaceData(
	target *Node,
	offset int,
	count int,
	data string,
) {
	doc := target.doc()
	if doc == nil || doc.AsNode().documentData == nil {
		return
	}
	doc.bumpRevision()
	for _, cb := range doc.AsNode().documentData.mutationCallbacks {
		cb.OnReplaceData(target, offset, count, data)
	}
}

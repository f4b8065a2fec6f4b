package dom

// rangeMutationHandler re-points live Range boundaries when the tree or
// character data mutates. It is registered on the owning document the first
// time a range is created; the document is single-threaded, so no locking.
type rangeMutationHandler struct {
	doc *Document
}

// OnChildListMutation handles insertions and removals of child nodes.
func (h *rangeMutationHandler) OnChildListMutation(
	target *Node,
	addedNodes []*Node,
	removedNodes []*Node,
	previousSibling *Node,
	nextSibling *Node,
) {
	ranges := h.doc.liveRanges()
	if len(ranges) == 0 {
		return
	}

	// Removals first, then insertions, matching the mutation order.
	for _, removedNode := range removedNodes {
		oldIndex := 0
		if previousSibling != nil {
			oldIndex = indexOfChild(target, previousSibling) + 1
		}
		for _, r := range ranges {
			updateRangeForRemoval(r, target, removedNode, oldIndex)
		}
	}

	if len(addedNodes) > 0 {
		startIndex := 0
		if previousSibling != nil {
			startIndex = indexOfChild(target, previousSibling) + 1
		}
		for i := range addedNodes {
			newIndex := startIndex + i
			for _, r := range ranges {
				updateRangeForInsertion(r, target, newIndex)
			}
		}
	}
}

// OnAttributeMutation: attribute changes never move Range boundaries.
func (h *rangeMutationHandler) OnAttributeMutation(*Node, string, string, string) {
}

// OnReplaceData shifts boundary points per the "replace data" algorithm.
func (h *rangeMutationHandler) OnReplaceData(target *Node, offset, count int, data string) {
	dataLength := UTF16Length(data)
	for _, r := range h.doc.liveRanges() {
		updateRangeForReplaceData(r, target, offset, count, dataLength)
	}
}

// updateRangeForRemoval implements the live-range part of the "remove"
// algorithm: a boundary inside the removed subtree collapses onto
// (parent, pre-removal index); boundaries in the parent after the index
// shift left by one.
func updateRangeForRemoval(r *Range, parent, removedNode *Node, oldIndex int) {
	if r.startContainer == removedNode || isInclusiveAncestor(removedNode, r.startContainer) {
		r.startContainer = parent
		r.startOffset = oldIndex
	}
	if r.endContainer == removedNode || isInclusiveAncestor(removedNode, r.endContainer) {
		r.endContainer = parent
		r.endOffset = oldIndex
	}

	if r.startContainer == parent && r.startOffset > oldIndex {
		r.startOffset--
	}
	if r.endContainer == parent && r.endOffset > oldIndex {
		r.endOffset--
	}
}

// updateRangeForInsertion implements the live-range part of the "insert"
// algorithm: boundaries in the parent past the insertion index shift right.
func updateRangeForInsertion(r *Range, parent *Node, newIndex int) {
	if r.startContainer == parent && r.startOffset > newIndex {
		r.startOffset++
	}
	if r.endContainer == parent && r.endOffset > newIndex {
		r.endOffset++
	}
}

// updateRangeForReplaceData implements the live-range part of the "replace
// data" algorithm: boundaries inside the replaced span snap to its start;
// boundaries after it shift by the length delta.
func updateRangeForReplaceData(r *Range, node *Node, offset, count, dataLength int) {
	if r.startContainer == node {
		if r.startOffset > offset && r.startOffset <= offset+count {
			r.startOffset = offset
		} else if r.startOffset > offset+count {
			r.startOffset += dataLength - count
		}
	}
	if r.endContainer == node {
		if r.endOffset > offset && r.endOffset <= offset+count {
			r.endOffset = offset
		} else if r.endOffset > offset+count {
			r.endOffset += dataLength - count
		}
	}
}

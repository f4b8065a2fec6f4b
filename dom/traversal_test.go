package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildTraversalTree returns:
//
//	root
//	├── a
//	│   ├── text "one"
//	│   └── b
//	└── c
//	    └── text "two"
func buildTraversalTree(t *testing.T) (*Document, *Node, *Node, *Node, *Node) {
	t.Helper()
	doc := NewDocument()
	root := doc.CreateElement("root").AsNode()
	a := doc.CreateElement("a").AsNode()
	b := doc.CreateElement("b").AsNode()
	c := doc.CreateElement("c").AsNode()
	root.AppendChild(a)
	a.AppendChild(doc.CreateTextNode("one"))
	a.AppendChild(b)
	root.AppendChild(c)
	c.AppendChild(doc.CreateTextNode("two"))
	return doc, root, a, b, c
}

func TestNodeIterator_Forward(t *testing.T) {
	doc, root, a, b, c := buildTraversalTree(t)

	it := doc.CreateNodeIterator(root, ShowElement, nil)
	assert.Equal(t, root, it.NextNode())
	assert.Equal(t, a, it.NextNode())
	assert.Equal(t, b, it.NextNode())
	assert.Equal(t, c, it.NextNode())
	assert.Nil(t, it.NextNode())

	// Backward from the end.
	assert.Equal(t, c, it.PreviousNode())
	assert.Equal(t, b, it.PreviousNode())
}

func TestNodeIterator_WhatToShowText(t *testing.T) {
	doc, root, _, _, _ := buildTraversalTree(t)

	it := doc.CreateNodeIterator(root, ShowText, nil)
	first := it.NextNode()
	require.NotNil(t, first)
	assert.Equal(t, "one", first.NodeValue())
	second := it.NextNode()
	require.NotNil(t, second)
	assert.Equal(t, "two", second.NodeValue())
	assert.Nil(t, it.NextNode())
}

func TestNodeIterator_Filter(t *testing.T) {
	doc, root, a, _, c := buildTraversalTree(t)

	it := doc.CreateNodeIterator(root, ShowElement, func(n *Node) int {
		if (*Element)(n).LocalName() == "b" {
			return FilterReject
		}
		return FilterAccept
	})

	assert.Equal(t, root, it.NextNode())
	assert.Equal(t, a, it.NextNode())
	assert.Equal(t, c, it.NextNode(), "rejected node is not yielded")
}

func TestNodeIterator_RemovalAdjustsReference(t *testing.T) {
	doc, root, a, _, c := buildTraversalTree(t)

	it := doc.CreateNodeIterator(root, ShowElement, nil)
	assert.Equal(t, root, it.NextNode())
	assert.Equal(t, a, it.NextNode())
	require.Equal(t, a, it.ReferenceNode())

	// Removing the reference node re-points the iterator; traversal
	// continues with the next node outside the removed subtree.
	root.RemoveChild(a)
	assert.Equal(t, c, it.NextNode())
}

func TestNodeIterator_MutationFromFilter(t *testing.T) {
	doc := NewDocument()
	root := doc.CreateElement("root").AsNode()
	x := doc.CreateElement("x").AsNode()
	y := doc.CreateElement("y").AsNode()
	root.AppendChild(x)
	root.AppendChild(y)

	// The filter removes y when visiting x; the iterator must not yield it.
	it := doc.CreateNodeIterator(root, ShowElement, func(n *Node) int {
		if n == x && y.ParentNode() != nil {
			root.RemoveChild(y)
		}
		return FilterAccept
	})

	assert.Equal(t, root, it.NextNode())
	assert.Equal(t, x, it.NextNode())
	assert.Nil(t, it.NextNode())
}

func TestTreeWalker_Navigation(t *testing.T) {
	doc, root, a, b, c := buildTraversalTree(t)

	tw := doc.CreateTreeWalker(root, ShowElement, nil)
	assert.Equal(t, root, tw.CurrentNode())

	assert.Equal(t, a, tw.FirstChild())
	assert.Equal(t, c, tw.NextSibling())
	assert.Equal(t, a, tw.PreviousSibling())
	assert.Equal(t, b, tw.FirstChild())
	assert.Nil(t, tw.NextSibling())
	assert.Equal(t, a, tw.ParentNode())
	assert.Equal(t, root, tw.ParentNode())
	assert.Nil(t, tw.ParentNode(), "nothing above the root")
}

func TestTreeWalker_NextPreviousNode(t *testing.T) {
	doc, root, a, b, c := buildTraversalTree(t)

	tw := doc.CreateTreeWalker(root, ShowElement, nil)
	assert.Equal(t, a, tw.NextNode())
	assert.Equal(t, b, tw.NextNode())
	assert.Equal(t, c, tw.NextNode())
	assert.Nil(t, tw.NextNode())

	assert.Equal(t, b, tw.PreviousNode())
	assert.Equal(t, a, tw.PreviousNode())
	assert.Equal(t, root, tw.PreviousNode())
	assert.Nil(t, tw.PreviousNode())
}

func TestTreeWalker_SkipDescendsIntoChildren(t *testing.T) {
	doc, root, a, b, _ := buildTraversalTree(t)

	// Skipping a exposes its children in its place.
	tw := doc.CreateTreeWalker(root, ShowElement, func(n *Node) int {
		if n == a {
			return FilterSkip
		}
		return FilterAccept
	})

	assert.Equal(t, b, tw.FirstChild(), "FirstChild descends through skipped nodes")
}

func TestTreeWalker_RejectPrunesSubtree(t *testing.T) {
	doc, root, a, _, c := buildTraversalTree(t)

	tw := doc.CreateTreeWalker(root, ShowElement, func(n *Node) int {
		if n == a {
			return FilterReject
		}
		return FilterAccept
	})

	assert.Equal(t, c, tw.FirstChild(), "rejected subtree is pruned entirely")
}

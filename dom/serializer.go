package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// HTML serialization of subtrees. Parsing is a collaborator concern; the
// serializer only walks the tree.

// InnerHTML returns the serialized children of the element.
func (e *Element) InnerHTML() string {
	var sb strings.Builder
	for child := e.AsNode().firstChild; child != nil; child = child.nextSibling {
		serializeNode(child, &sb)
	}
	return sb.String()
}

// OuterHTML returns the serialized element, children included.
func (e *Element) OuterHTML() string {
	var sb strings.Builder
	serializeNode(e.AsNode(), &sb)
	return sb.String()
}

// InnerHTML returns the serialized children of the shadow root.
func (sr *ShadowRoot) InnerHTML() string {
	var sb strings.Builder
	for child := sr.node.firstChild; child != nil; child = child.nextSibling {
		serializeNode(child, &sb)
	}
	return sb.String()
}

// SerializeNode returns the HTML serialization of a subtree.
func SerializeNode(n *Node) string {
	var sb strings.Builder
	serializeNode(n, &sb)
	return sb.String()
}

func serializeNode(n *Node, sb *strings.Builder) {
	switch n.nodeType {
	case TextNode:
		sb.WriteString(html.EscapeString(n.NodeValue()))
	case CDATASectionNode:
		sb.WriteString("<![CDATA[")
		sb.WriteString(n.NodeValue())
		sb.WriteString("]]>")
	case CommentNode:
		sb.WriteString("<!--")
		sb.WriteString(n.NodeValue())
		sb.WriteString("-->")
	case ProcessingInstructionNode:
		sb.WriteString("<?")
		sb.WriteString(n.nodeName)
		sb.WriteString(" ")
		sb.WriteString(n.NodeValue())
		sb.WriteString(">")
	case DocumentTypeNode:
		sb.WriteString("<!DOCTYPE ")
		sb.WriteString(n.DoctypeName())
		sb.WriteString(">")
	case ElementNode:
		el := (*Element)(n)
		tagName := strings.ToLower(el.TagName())
		sb.WriteString("<")
		sb.WriteString(tagName)

		attrs := el.Attributes()
		for i := 0; i < attrs.Length(); i++ {
			if attr := attrs.Item(i); attr != nil {
				sb.WriteString(" ")
				sb.WriteString(attr.name)
				sb.WriteString("=\"")
				sb.WriteString(html.EscapeString(attr.value))
				sb.WriteString("\"")
			}
		}

		if isVoidElement(tagName) {
			sb.WriteString(">")
			return
		}

		sb.WriteString(">")
		for child := n.firstChild; child != nil; child = child.nextSibling {
			serializeNode(child, sb)
		}
		sb.WriteString("</")
		sb.WriteString(tagName)
		sb.WriteString(">")
	case DocumentNode, DocumentFragmentNode:
		for child := n.firstChild; child != nil; child = child.nextSibling {
			serializeNode(child, sb)
		}
	}
}

// isVoidElement returns true for HTML void elements.
func isVoidElement(tagName string) bool {
	switch tagName {
	case "area", "base", "br", "col", "embed", "hr", "img", "input",
		"link", "meta", "param", "source", "track", "wbr":
		return true
	}
	return false
}

package dom

import (
	"testing"
)

func TestNewDocument(t *testing.T) {
	doc := NewDocument()
	if doc == nil {
		t.Fatal("NewDocument returned nil")
	}
	if doc.NodeType() != DocumentNode {
		t.Errorf("Expected DocumentNode, got %v", doc.NodeType())
	}
	if doc.NodeName() != "#document" {
		t.Errorf("Expected '#document', got %s", doc.NodeName())
	}
	if !doc.IsHTML() {
		t.Error("Expected an HTML document")
	}
	if doc.ContentType() != "text/html" {
		t.Errorf("Expected contentType 'text/html', got %s", doc.ContentType())
	}
}

func TestDocument_CreateElement(t *testing.T) {
	doc := NewDocument()
	el := doc.CreateElement("div")

	if el == nil {
		t.Fatal("CreateElement returned nil")
	}
	if el.TagName() != "DIV" {
		t.Errorf("Expected tagName 'DIV', got '%s'", el.TagName())
	}
	if el.LocalName() != "div" {
		t.Errorf("Expected localName 'div', got '%s'", el.LocalName())
	}
	if el.NodeType() != ElementNode {
		t.Errorf("Expected ElementNode, got %v", el.NodeType())
	}
	if el.NamespaceURI() != HTMLNamespace {
		t.Errorf("Expected HTML namespace, got '%s'", el.NamespaceURI())
	}
}

func TestDocument_CreateElementInvalidName(t *testing.T) {
	doc := NewDocument()
	_, err := doc.CreateElementWithError("div>span")
	if err == nil {
		t.Fatal("Expected error for invalid element name")
	}
	domErr, ok := err.(*DOMError)
	if !ok {
		t.Fatalf("Expected *DOMError, got %T", err)
	}
	if domErr.Name != "InvalidCharacterError" || domErr.Code != CodeInvalidCharacterError {
		t.Errorf("Expected InvalidCharacterError(5), got %s(%d)", domErr.Name, domErr.Code)
	}
}

func TestDocument_CreateTextNode(t *testing.T) {
	doc := NewDocument()
	text := doc.CreateTextNode("Hello, World!")

	if text.NodeType() != TextNode {
		t.Errorf("Expected TextNode, got %v", text.NodeType())
	}
	if text.NodeValue() != "Hello, World!" {
		t.Errorf("Expected 'Hello, World!', got '%s'", text.NodeValue())
	}
}

func TestDocument_CreateComment(t *testing.T) {
	doc := NewDocument()
	comment := doc.CreateComment("This is a comment")

	if comment.NodeType() != CommentNode {
		t.Errorf("Expected CommentNode, got %v", comment.NodeType())
	}
	if comment.NodeValue() != "This is a comment" {
		t.Errorf("Expected 'This is a comment', got '%s'", comment.NodeValue())
	}
}

func TestDocument_CreateCDATASection(t *testing.T) {
	htmlDoc := NewDocument()
	if _, err := htmlDoc.CreateCDATASectionWithError("data"); err == nil {
		t.Error("Expected NotSupportedError for CDATA in HTML document")
	}

	xmlDoc := NewXMLDocument()
	node, err := xmlDoc.CreateCDATASectionWithError("data")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if node.NodeType() != CDATASectionNode {
		t.Errorf("Expected CDATASectionNode, got %v", node.NodeType())
	}
	if _, err := xmlDoc.CreateCDATASectionWithError("bad ]]> data"); err == nil {
		t.Error("Expected InvalidCharacterError for ']]>' in data")
	}
}

func TestDocument_CreateProcessingInstruction(t *testing.T) {
	doc := NewDocument()
	pi, err := doc.CreateProcessingInstructionWithError("xml-stylesheet", "href=\"a.css\"")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if pi.NodeType() != ProcessingInstructionNode {
		t.Errorf("Expected ProcessingInstructionNode, got %v", pi.NodeType())
	}
	if (*ProcessingInstruction)(pi).Target() != "xml-stylesheet" {
		t.Errorf("Expected target 'xml-stylesheet', got '%s'", (*ProcessingInstruction)(pi).Target())
	}

	if _, err := doc.CreateProcessingInstructionWithError("target", "bad ?> data"); err == nil {
		t.Error("Expected error for '?>' in data")
	}
}

func TestElement_Attributes(t *testing.T) {
	doc := NewDocument()
	el := doc.CreateElement("div")

	el.SetAttribute("id", "main")
	el.SetAttribute("class", "container")
	el.SetAttribute("data-value", "123")

	if el.GetAttribute("id") != "main" {
		t.Errorf("Expected id='main', got '%s'", el.GetAttribute("id"))
	}
	if el.GetAttribute("class") != "container" {
		t.Errorf("Expected class='container', got '%s'", el.GetAttribute("class"))
	}
	if el.GetAttribute("data-value") != "123" {
		t.Errorf("Expected data-value='123', got '%s'", el.GetAttribute("data-value"))
	}
	if !el.HasAttribute("id") {
		t.Error("Expected HasAttribute('id') to be true")
	}

	// HTML elements in HTML documents treat attribute names case-insensitively.
	if el.GetAttribute("ID") != "main" {
		t.Errorf("Expected case-insensitive lookup, got '%s'", el.GetAttribute("ID"))
	}

	el.RemoveAttribute("id")
	if el.HasAttribute("id") {
		t.Error("Expected HasAttribute('id') to be false after removal")
	}

	// Attribute order is preserved.
	attrs := el.Attributes()
	if attrs.Length() != 2 {
		t.Fatalf("Expected 2 attributes, got %d", attrs.Length())
	}
	if attrs.Item(0).Name() != "class" || attrs.Item(1).Name() != "data-value" {
		t.Errorf("Attribute order not preserved: %v", attrs.Names())
	}
}

func TestElement_ToggleAttribute(t *testing.T) {
	doc := NewDocument()
	el := doc.CreateElement("div")

	if !el.ToggleAttribute("hidden") {
		t.Error("Expected toggle to return true when adding")
	}
	if !el.HasAttribute("hidden") {
		t.Error("Expected attribute to be present")
	}
	if el.ToggleAttribute("hidden") {
		t.Error("Expected toggle to return false when removing")
	}
	if el.HasAttribute("hidden") {
		t.Error("Expected attribute to be gone")
	}

	if !el.ToggleAttribute("hidden", true) {
		t.Error("Expected forced add to return true")
	}
	if !el.ToggleAttribute("hidden", true) {
		t.Error("Expected forced add on present attribute to return true")
	}
	if el.ToggleAttribute("hidden", false) {
		t.Error("Expected forced remove to return false")
	}
}

func TestElement_ClassList(t *testing.T) {
	doc := NewDocument()
	el := doc.CreateElement("div")

	classList := el.ClassList()

	classList.Add("foo", "bar", "baz")
	if !classList.Contains("foo") || !classList.Contains("bar") {
		t.Error("Expected classList to contain added tokens")
	}
	if classList.Length() != 3 {
		t.Errorf("Expected 3 classes, got %d", classList.Length())
	}

	// Mutations round-trip through the class attribute.
	if el.GetAttribute("class") != "foo bar baz" {
		t.Errorf("Expected class attribute round-trip, got '%s'", el.GetAttribute("class"))
	}
	el.SetAttribute("class", "one two")
	if classList.Length() != 2 || !classList.Contains("one") {
		t.Error("Expected classList to reflect attribute change")
	}

	classList.Remove("one")
	if classList.Contains("one") {
		t.Error("Expected 'one' to be removed")
	}

	if !classList.Toggle("qux") {
		t.Error("Expected toggle to return true when adding")
	}
	if classList.Toggle("qux") {
		t.Error("Expected toggle to return false when removing")
	}

	classList.Add("old")
	if !classList.Replace("old", "new") {
		t.Error("Expected Replace to return true")
	}
	if classList.Contains("old") || !classList.Contains("new") {
		t.Error("Expected Replace to swap tokens")
	}
}

func TestElement_InUseAttribute(t *testing.T) {
	doc := NewDocument()
	a := doc.CreateElement("a")
	b := doc.CreateElement("b")

	attr := NewAttr("shared", "v")
	if _, err := a.SetAttributeNodeWithError(attr); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	_, err := b.SetAttributeNodeWithError(attr)
	if err == nil {
		t.Fatal("Expected InUseAttributeError")
	}
	if derr := err.(*DOMError); derr.Name != "InUseAttributeError" || derr.Code != CodeInUseAttributeError {
		t.Errorf("Expected InUseAttributeError(10), got %s(%d)", derr.Name, derr.Code)
	}
}

func TestSerializeNode(t *testing.T) {
	doc := NewDocument()
	div := doc.CreateElement("div")
	div.SetAttribute("id", "x")
	div.AsNode().AppendChild(doc.CreateTextNode("a < b"))
	child := doc.CreateElement("br")
	div.AsNode().AppendChild(child.AsNode())
	div.AsNode().AppendChild(doc.CreateComment("note"))

	got := div.OuterHTML()
	want := `<div id="x">a &lt; b<br><!--note--></div>`
	if got != want {
		t.Errorf("OuterHTML = %q, want %q", got, want)
	}
	if div.InnerHTML() != `a &lt; b<br><!--note-->` {
		t.Errorf("InnerHTML = %q", div.InnerHTML())
	}
}

func TestSelector_Matches(t *testing.T) {
	doc := NewDocument()
	el := doc.CreateElement("div")
	el.SetAttribute("id", "main")
	el.SetAttribute("class", "box red")
	el.SetAttribute("data-kind", "panel")

	cases := []struct {
		selector string
		want     bool
	}{
		{"*", true},
		{"div", true},
		{"DIV", true},
		{"span", false},
		{"#main", true},
		{"#other", false},
		{".box", true},
		{".red", true},
		{".blue", false},
		{"div.box", true},
		{"div.box.red", true},
		{"div#main.box", true},
		{"span.box", false},
		{"[data-kind]", true},
		{"[data-kind=panel]", true},
		{"[data-kind=other]", false},
		{"[data-kind^=pa]", true},
		{"[data-kind$=el]", true},
		{"[data-kind*=ane]", true},
		{"span, .box", true},
	}
	for _, tc := range cases {
		if got := el.Matches(tc.selector); got != tc.want {
			t.Errorf("Matches(%q) = %v, want %v", tc.selector, got, tc.want)
		}
	}
}

func TestQuerySelector(t *testing.T) {
	doc := NewDocument()
	root := doc.CreateElement("html")
	doc.AsNode().AppendChild(root.AsNode())
	body := doc.CreateElement("body")
	root.AsNode().AppendChild(body.AsNode())

	first := doc.CreateElement("p")
	first.SetAttribute("class", "note")
	second := doc.CreateElement("p")
	second.SetAttribute("class", "note")
	second.SetAttribute("id", "second")
	body.AsNode().AppendChild(first.AsNode())
	body.AsNode().AppendChild(second.AsNode())

	if got := doc.QuerySelector(".note"); got != first {
		t.Error("QuerySelector should return the first match in tree order")
	}
	list := doc.QuerySelectorAll(".note")
	if list.Length() != 2 {
		t.Fatalf("Expected 2 matches, got %d", list.Length())
	}

	// Static list does not follow later mutations.
	third := doc.CreateElement("p")
	third.SetAttribute("class", "note")
	body.AsNode().AppendChild(third.AsNode())
	if list.Length() != 2 {
		t.Error("Static NodeList must not be live")
	}
	if got := body.QuerySelector("#second"); got != second {
		t.Error("Element QuerySelector failed")
	}
	if got := second.Closest("body"); got != body {
		t.Error("Closest failed to find ancestor")
	}
}

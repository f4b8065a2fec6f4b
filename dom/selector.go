package dom

import "strings"

// The selector surface. A full CSS engine is an external collaborator; this
// file covers the simple selectors the core exposes: universal, tag, id,
// class, attribute, compound combinations of those, and comma-separated
// lists.
//
// Selectors compile once into a selectorList and the compiled form is
// evaluated per element, so querySelectorAll walks the tree without
// reparsing the selector text at every node. A selector that fails to
// compile matches nothing.

type attrOp byte

const (
	attrPresent attrOp = 0
	attrEquals  attrOp = '='
	attrWord    attrOp = '~' // whitespace-separated word match
	attrDash    attrOp = '|' // exact or hyphen-prefix match
	attrPrefix  attrOp = '^'
	attrSuffix  attrOp = '$'
	attrSubstr  attrOp = '*'
)

// attrTest is one [name], [name=value] or [name<op>=value] requirement.
type attrTest struct {
	name  string
	op    attrOp
	value string
}

// compoundSelector is one compound selector: every listed requirement must
// hold for the element. An empty tag matches any element.
type compoundSelector struct {
	tag     string
	ids     []string
	classes []string
	attrs   []attrTest
}

// selectorList is a comma-separated selector; an element matches the list
// when it matches any member.
type selectorList []compoundSelector

// selScanner is a byte cursor over one compound selector's source.
type selScanner struct {
	src string
	pos int
}

func (s *selScanner) done() bool {
	return s.pos >= len(s.src)
}

func (s *selScanner) next() byte {
	b := s.src[s.pos]
	s.pos++
	return b
}

// name consumes up to the next simple-selector delimiter.
func (s *selScanner) name() string {
	start := s.pos
	for !s.done() {
		switch s.src[s.pos] {
		case '.', '#', '[':
			return s.src[start:s.pos]
		}
		s.pos++
	}
	return s.src[start:]
}

// until consumes up to (and over) the stop byte, returning false when the
// stop byte is missing.
func (s *selScanner) until(stop byte) (string, bool) {
	start := s.pos
	for !s.done() {
		if s.src[s.pos] == stop {
			body := s.src[start:s.pos]
			s.pos++
			return body, true
		}
		s.pos++
	}
	return "", false
}

// compileSelector compiles a selector list. ok is false when any member is
// syntactically unusable.
func compileSelector(source string) (selectorList, bool) {
	var list selectorList
	for _, part := range strings.Split(source, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, false
		}
		compound, ok := compileCompound(part)
		if !ok {
			return nil, false
		}
		list = append(list, compound)
	}
	return list, true
}

func compileCompound(part string) (compoundSelector, bool) {
	var cs compoundSelector
	s := &selScanner{src: part}

	// Leading type selector, when present.
	switch part[0] {
	case '.', '#', '[':
	default:
		tag := s.name()
		if tag != "*" {
			cs.tag = tag
		}
	}

	for !s.done() {
		switch s.next() {
		case '.':
			class := s.name()
			if class == "" {
				return cs, false
			}
			cs.classes = append(cs.classes, class)
		case '#':
			id := s.name()
			if id == "" {
				return cs, false
			}
			cs.ids = append(cs.ids, id)
		case '[':
			body, ok := s.until(']')
			if !ok {
				return cs, false
			}
			test, ok := compileAttrTest(body)
			if !ok {
				return cs, false
			}
			cs.attrs = append(cs.attrs, test)
		default:
			return cs, false
		}
	}
	return cs, true
}

// compileAttrTest parses the inside of an attribute selector's brackets.
func compileAttrTest(body string) (attrTest, bool) {
	eq := strings.IndexByte(body, '=')
	if eq < 0 {
		name := strings.TrimSpace(body)
		if name == "" {
			return attrTest{}, false
		}
		return attrTest{name: name, op: attrPresent}, true
	}

	op := attrEquals
	nameEnd := eq
	if eq > 0 {
		switch attrOp(body[eq-1]) {
		case attrWord, attrDash, attrPrefix, attrSuffix, attrSubstr:
			op = attrOp(body[eq-1])
			nameEnd = eq - 1
		}
	}

	name := strings.TrimSpace(body[:nameEnd])
	if name == "" {
		return attrTest{}, false
	}
	value := strings.TrimSpace(body[eq+1:])
	value = strings.Trim(value, "\"'")
	return attrTest{name: name, op: op, value: value}, true
}

// matches evaluates the list against an element.
func (list selectorList) matches(e *Element) bool {
	for i := range list {
		if list[i].matches(e) {
			return true
		}
	}
	return false
}

func (cs *compoundSelector) matches(e *Element) bool {
	if cs.tag != "" && !strings.EqualFold(cs.tag, e.TagName()) {
		return false
	}
	for _, id := range cs.ids {
		if e.Id() != id {
			return false
		}
	}
	for _, class := range cs.classes {
		if !e.ClassList().Contains(class) {
			return false
		}
	}
	for i := range cs.attrs {
		if !cs.attrs[i].matches(e) {
			return false
		}
	}
	return true
}

func (at *attrTest) matches(e *Element) bool {
	if !e.HasAttribute(at.name) {
		return false
	}
	value := e.GetAttribute(at.name)

	switch at.op {
	case attrPresent:
		return true
	case attrEquals:
		return value == at.value
	case attrWord:
		for _, word := range strings.Fields(value) {
			if word == at.value {
				return true
			}
		}
		return false
	case attrDash:
		return value == at.value || strings.HasPrefix(value, at.value+"-")
	case attrPrefix:
		return at.value != "" && strings.HasPrefix(value, at.value)
	case attrSuffix:
		return at.value != "" && strings.HasSuffix(value, at.value)
	case attrSubstr:
		return at.value != "" && strings.Contains(value, at.value)
	}
	return false
}

// Matches returns true if the element matches the given selector.
func (e *Element) Matches(selector string) bool {
	list, ok := compileSelector(selector)
	if !ok {
		return false
	}
	return list.matches(e)
}

// Closest returns the closest inclusive ancestor element matching the selector.
func (e *Element) Closest(selector string) *Element {
	list, ok := compileSelector(selector)
	if !ok {
		return nil
	}
	for current := e; current != nil; {
		if list.matches(current) {
			return current
		}
		parent := current.AsNode().parentNode
		if parent == nil || parent.nodeType != ElementNode {
			break
		}
		current = (*Element)(parent)
	}
	return nil
}

// QuerySelector returns the first descendant element matching the selector.
func (e *Element) QuerySelector(selector string) *Element {
	results := e.querySelectorAll(selector, true)
	if len(results) > 0 {
		return results[0]
	}
	return nil
}

// QuerySelectorAll returns a static NodeList of all matching descendants.
func (e *Element) QuerySelectorAll(selector string) *NodeList {
	results := e.querySelectorAll(selector, false)
	nodes := make([]*Node, len(results))
	for i, el := range results {
		nodes[i] = el.AsNode()
	}
	return NewStaticNodeList(nodes)
}

// querySelectorAll compiles the selector once and walks the subtree against
// the compiled form.
func (e *Element) querySelectorAll(selector string, firstOnly bool) []*Element {
	list, ok := compileSelector(selector)
	if !ok {
		return nil
	}

	var results []*Element
	var traverse func(node *Node) bool
	traverse = func(node *Node) bool {
		for child := node.firstChild; child != nil; child = child.nextSibling {
			if child.nodeType != ElementNode {
				continue
			}
			el := (*Element)(child)
			if list.matches(el) {
				results = append(results, el)
				if firstOnly {
					return false
				}
			}
			if !traverse(child) {
				return false
			}
		}
		return true
	}
	traverse(e.AsNode())
	return results
}

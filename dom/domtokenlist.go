package dom

import "strings"

// DOMTokenList is a live view of a space-separated attribute value, used for
// Element.classList. Like the other live collections it caches its parsed
// snapshot against the document's tree revision: attribute mutations bump the
// revision, so reads between mutations reuse the parse, and Contains is a map
// hit instead of a rescan. Mutations write back through the attribute.
type DOMTokenList struct {
	element  *Element
	attrName string

	// Parsed snapshot: tokens in first-occurrence order plus a membership
	// index, tagged with the revision they were computed at.
	cached   []string
	index    map[string]int
	cachedAt uint64
	valid    bool
}

// newDOMTokenList creates a new DOMTokenList for the given element and attribute.
func newDOMTokenList(element *Element, attrName string) *DOMTokenList {
	return &DOMTokenList{
		element:  element,
		attrName: attrName,
	}
}

// snapshot returns the current ordered token set, reparsing the attribute
// only when the tree revision moved past the cached one.
func (dtl *DOMTokenList) snapshot() []string {
	if dtl.element == nil {
		return nil
	}

	doc := dtl.element.AsNode().doc()
	if doc != nil {
		rev := doc.TreeRevision()
		if dtl.valid && dtl.cachedAt == rev {
			return dtl.cached
		}
		dtl.cachedAt = rev
	}

	dtl.cached = dtl.cached[:0]
	if dtl.index == nil {
		dtl.index = make(map[string]int)
	} else {
		for k := range dtl.index {
			delete(dtl.index, k)
		}
	}

	for _, token := range strings.Fields(dtl.element.GetAttribute(dtl.attrName)) {
		if _, dup := dtl.index[token]; dup {
			continue
		}
		dtl.index[token] = len(dtl.cached)
		dtl.cached = append(dtl.cached, token)
	}
	dtl.valid = doc != nil
	return dtl.cached
}

// update serializes tokens back to the attribute. The attribute mutation
// bumps the revision, so every view of the list reparses on its next read.
func (dtl *DOMTokenList) update(tokens []string) {
	if dtl.element == nil {
		return
	}
	dtl.element.SetAttribute(dtl.attrName, strings.Join(tokens, " "))
}

// Length returns the number of tokens.
func (dtl *DOMTokenList) Length() int {
	return len(dtl.snapshot())
}

// Item returns the token at the given index, or "" when out of bounds.
func (dtl *DOMTokenList) Item(index int) string {
	tokens := dtl.snapshot()
	if index < 0 || index >= len(tokens) {
		return ""
	}
	return tokens[index]
}

// Contains returns true if the given token is in the list.
func (dtl *DOMTokenList) Contains(token string) bool {
	dtl.snapshot()
	_, ok := dtl.index[token]
	return ok
}

// Add adds the given tokens, keeping the existing order and ignoring tokens
// already present. Empty tokens are ignored.
func (dtl *DOMTokenList) Add(tokens ...string) {
	if dtl.element == nil {
		return
	}
	next := append([]string(nil), dtl.snapshot()...)
	for _, token := range tokens {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		if _, ok := dtl.index[token]; ok {
			continue
		}
		dtl.index[token] = len(next)
		next = append(next, token)
	}
	dtl.update(next)
}

// Remove removes the given tokens from the list.
func (dtl *DOMTokenList) Remove(tokens ...string) {
	current := dtl.snapshot()
	drop := make(map[string]bool, len(tokens))
	for _, token := range tokens {
		drop[strings.TrimSpace(token)] = true
	}

	next := make([]string, 0, len(current))
	for _, t := range current {
		if !drop[t] {
			next = append(next, t)
		}
	}
	dtl.update(next)
}

// Toggle toggles the presence of a token, or forces add/remove when force is
// given. Returns true if the token is present after the operation.
func (dtl *DOMTokenList) Toggle(token string, force ...bool) bool {
	token = strings.TrimSpace(token)
	if token == "" {
		return false
	}

	present := dtl.Contains(token)
	want := !present
	if len(force) > 0 {
		want = force[0]
	}

	switch {
	case want && !present:
		dtl.Add(token)
	case !want && present:
		dtl.Remove(token)
	}
	return want
}

// Replace substitutes newToken at oldToken's position, dropping any other
// occurrence of newToken. Returns true if oldToken was present.
func (dtl *DOMTokenList) Replace(oldToken, newToken string) bool {
	oldToken = strings.TrimSpace(oldToken)
	newToken = strings.TrimSpace(newToken)
	if oldToken == "" || newToken == "" {
		return false
	}

	current := dtl.snapshot()
	at, ok := dtl.index[oldToken]
	if !ok {
		return false
	}
	if oldToken == newToken {
		return true
	}

	next := make([]string, 0, len(current))
	for i, t := range current {
		switch {
		case i == at:
			next = append(next, newToken)
		case t == newToken:
			// dropped; the replacement position wins
		default:
			next = append(next, t)
		}
	}
	dtl.update(next)
	return true
}

// Value returns the underlying attribute value.
func (dtl *DOMTokenList) Value() string {
	if dtl.element == nil {
		return ""
	}
	return dtl.element.GetAttribute(dtl.attrName)
}

// SetValue sets the underlying attribute value.
func (dtl *DOMTokenList) SetValue(value string) {
	if dtl.element == nil {
		return
	}
	dtl.element.SetAttribute(dtl.attrName, value)
}

// String returns the string representation (same as Value).
func (dtl *DOMTokenList) String() string {
	return dtl.Value()
}

// Values returns the tokens as a fresh slice.
func (dtl *DOMTokenList) Values() []string {
	tokens := dtl.snapshot()
	out := make([]string, len(tokens))
	copy(out, tokens)
	return out
}

// ForEach calls the given function for each token.
func (dtl *DOMTokenList) ForEach(fn func(token string, index int)) {
	for i, token := range dtl.Values() {
		fn(token, i)
	}
}

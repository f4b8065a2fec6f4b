package dom

// Name is an interned name string. Two Names obtained from the same
// StringPool are the identical pointer iff their bytes are equal, so tag and
// attribute name comparisons reduce to pointer equality.
type Name struct {
	value string
}

// String returns the name's bytes.
func (n *Name) String() string {
	if n == nil {
		return ""
	}
	return n.value
}

// StringPool interns name strings for one Document. Handles from different
// pools never compare equal even for equal bytes.
type StringPool struct {
	names map[string]*Name
}

// NewStringPool creates an empty pool.
func NewStringPool() *StringPool {
	return &StringPool{names: make(map[string]*Name)}
}

// Intern returns the pool's handle for s, creating it on first use.
// Idempotent: Intern(s) == Intern(s) for the lifetime of the pool.
func (p *StringPool) Intern(s string) *Name {
	if n, ok := p.names[s]; ok {
		return n
	}
	n := &Name{value: s}
	p.names[s] = n
	return n
}

// Lookup returns the handle for s if it has been interned, or nil.
func (p *StringPool) Lookup(s string) *Name {
	return p.names[s]
}

// Len returns the number of interned names.
func (p *StringPool) Len() int {
	return len(p.names)
}

// clear drops every interned name. Called during document teardown.
func (p *StringPool) clear() {
	p.names = make(map[string]*Name)
}

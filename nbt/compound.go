package nbt

// Compound is an ordered mapping from name to tag.
// Names are unique within one compound, and the insertion
// order is kept so that an encoded tree round-trips byte
// for byte.
type Compound struct {
	entries []NamedTag
	index   map[string]int
}

// NewCompound returns an empty compound.
func NewCompound() *Compound {
	return &Compound{index: make(map[string]int)}
}

func (*Compound) Kind() Kind { return KindCompound }

// Len returns the count of children.
func (c *Compound) Len() int {
	return len(c.entries)
}

// Get returns the child whose name is name.
func (c *Compound) Get(name string) (Tag, bool) {
	i, ok := c.index[name]
	if !ok {
		return nil, false
	}
	return c.entries[i].Tag, true
}

// Has reports whether a child named name exists.
func (c *Compound) Has(name string) bool {
	_, ok := c.index[name]
	return ok
}

// Set stores tag under name. Replacing an existing child keeps its
// position, while a new child is appended after the existing ones.
func (c *Compound) Set(name string, tag Tag) *Compound {
	if c.index == nil {
		c.index = make(map[string]int)
	}
	if i, ok := c.index[name]; ok {
		c.entries[i].Tag = tag
		return c
	}
	c.index[name] = len(c.entries)
	c.entries = append(c.entries, NamedTag{Name: name, Tag: tag})
	return c
}

// Delete removes the child named name, if any.
func (c *Compound) Delete(name string) {
	i, ok := c.index[name]
	if !ok {
		return
	}
	c.entries = append(c.entries[:i], c.entries[i+1:]...)
	delete(c.index, name)
	for j := i; j < len(c.entries); j++ {
		c.index[c.entries[j].Name] = j
	}
}

// Names returns the names of all children in order.
func (c *Compound) Names() []string {
	result := make([]string, len(c.entries))
	for i, value := range c.entries {
		result[i] = value.Name
	}
	return result
}

// Entries returns a copy of the children in order.
// The tags themselves are shared with c.
func (c *Compound) Entries() []NamedTag {
	result := make([]NamedTag, len(c.entries))
	copy(result, c.entries)
	return result
}

// add appends a child that must not exist yet.
// It is used by the decoder, which reports duplicates itself.
func (c *Compound) add(name string, tag Tag) bool {
	if _, ok := c.index[name]; ok {
		return false
	}
	c.index[name] = len(c.entries)
	c.entries = append(c.entries, NamedTag{Name: name, Tag: tag})
	return true
}

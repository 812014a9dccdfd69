package layout

// children is a non-empty sequence of nodes with a designated active entry
// that is always structurally valid — there is no "active index" to go out
// of range, because the active child is held directly rather than addressed
// by position. It is represented as three parts: the nodes before the active
// one, the active node itself, and the nodes after it.
type children struct {
	before []*node
	active *node
	after  []*node
}

// singleChild returns a children holding exactly n, active.
func singleChild(n *node) *children {
	return &children{active: n}
}

// childrenFromSlice rebuilds a children from a flat slice and the index that
// should become active. Panics if nodes is empty or activeIdx is out of
// range — both are programming errors, never caller input.
func childrenFromSlice(nodes []*node, activeIdx int) *children {
	if len(nodes) == 0 {
		panic("layout: childrenFromSlice called with no nodes")
	}
	if activeIdx < 0 || activeIdx >= len(nodes) {
		panic("layout: childrenFromSlice activeIdx out of range")
	}
	before := append([]*node(nil), nodes[:activeIdx]...)
	after := append([]*node(nil), nodes[activeIdx+1:]...)
	return &children{before: before, active: nodes[activeIdx], after: after}
}

func (c *children) Len() int { return len(c.before) + 1 + len(c.after) }

// ActiveIndex is the position of the active child, always equal to
// len(before).
func (c *children) ActiveIndex() int { return len(c.before) }

func (c *children) Active() *node { return c.active }

// Get returns the child at position i, or nil if out of range.
func (c *children) Get(i int) *node {
	switch {
	case i < 0 || i >= c.Len():
		return nil
	case i < len(c.before):
		return c.before[i]
	case i == len(c.before):
		return c.active
	default:
		return c.after[i-len(c.before)-1]
	}
}

// ToSlice flattens before+active+after into a single ordered slice.
func (c *children) ToSlice() []*node {
	out := make([]*node, 0, c.Len())
	out = append(out, c.before...)
	out = append(out, c.active)
	out = append(out, c.after...)
	return out
}

// SetActive makes the child at position i active, reports false if i is out
// of range.
func (c *children) SetActive(i int) bool {
	if i < 0 || i >= c.Len() {
		return false
	}
	if i == c.ActiveIndex() {
		return true
	}
	rebuilt := childrenFromSlice(c.ToSlice(), i)
	*c = *rebuilt
	return true
}

// Push inserts n as the new active child. The previously active child and
// everything after it move into before; after is emptied. This is how a
// sibling gets appended while keeping the newest arrival active, and how a
// wrapped leaf becomes the before-sibling of a freshly added window.
func (c *children) Push(n *node) {
	c.before = append(c.before, c.active)
	c.before = append(c.before, c.after...)
	c.after = nil
	c.active = n
}

// RemoveAt deletes the child at position i. If i was the active child,
// activity passes to the next sibling to the right, else the previous
// sibling to the left. stillNonEmpty is false when i was the only child:
// the structure is then left as it was, and the caller must discard this
// children (and, for a container, the container itself).
func (c *children) RemoveAt(i int) (removed *node, stillNonEmpty bool) {
	idx := c.ActiveIndex()
	switch {
	case i == idx:
		removed = c.active
		if len(c.after) > 0 {
			c.active = c.after[0]
			c.after = c.after[1:]
			return removed, true
		}
		if len(c.before) > 0 {
			c.active = c.before[len(c.before)-1]
			c.before = c.before[:len(c.before)-1]
			return removed, true
		}
		return removed, false
	case i < idx:
		removed = c.before[i]
		c.before = append(c.before[:i], c.before[i+1:]...)
		return removed, true
	default:
		j := i - idx - 1
		removed = c.after[j]
		c.after = append(c.after[:j], c.after[j+1:]...)
		return removed, true
	}
}

// ReplaceAt swaps in a new node at position i without touching which index
// is active.
func (c *children) ReplaceAt(i int, n *node) {
	idx := c.ActiveIndex()
	switch {
	case i == idx:
		c.active = n
	case i < idx:
		c.before[i] = n
	default:
		c.after[i-idx-1] = n
	}
}

// Swap exchanges the children at positions i and j, preserving whichever of
// the two was active (or leaving the active index alone if neither was).
func (c *children) Swap(i, j int) bool {
	if i < 0 || j < 0 || i >= c.Len() || j >= c.Len() || i == j {
		return false
	}
	all := c.ToSlice()
	all[i], all[j] = all[j], all[i]
	activeIdx := c.ActiveIndex()
	switch activeIdx {
	case i:
		activeIdx = j
	case j:
		activeIdx = i
	}
	*c = *childrenFromSlice(all, activeIdx)
	return true
}

// IndexOf returns the position of the first child matching pred, or -1.
func (c *children) IndexOf(pred func(*node) bool) int {
	for i := 0; i < c.Len(); i++ {
		if pred(c.Get(i)) {
			return i
		}
	}
	return -1
}

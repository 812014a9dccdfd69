package layout

import (
	"github.com/wegel/stilch-sub001/geom"
	"github.com/wegel/stilch-sub001/id"
)

// SetContainerLayout finds the deepest container that directly contains
// windowID as a leaf and sets its layout to newLayout. When transitioning
// to Tabbed/Stacked, the branch holding windowID becomes the active child
// and every descendant's stored geometry resets to the container's full
// area, so a tab revealed later already has a sane size.
func (t *Tree) SetContainerLayout(windowID id.WindowId, newLayout ContainerLayout) {
	if t.root == nil {
		return
	}
	setContainerLayoutRecursive(t.root, windowID, newLayout)
	t.CalculateGeometries()
}

func setContainerLayoutRecursive(n *node, windowID id.WindowId, newLayout ContainerLayout) {
	if n.kind == nodeWindow {
		return
	}

	containsWindow := false
	for i := 0; i < n.children.Len(); i++ {
		if nodeContainsWindow(n.children.Get(i), windowID) {
			containsWindow = true
			break
		}
	}

	if !containsWindow {
		for i := 0; i < n.children.Len(); i++ {
			setContainerLayoutRecursive(n.children.Get(i), windowID, newLayout)
		}
		return
	}

	n.layout = newLayout

	if newLayout == Tabbed || newLayout == Stacked {
		focusedIdx := 0
		for i := 0; i < n.children.Len(); i++ {
			if nodeContainsWindow(n.children.Get(i), windowID) {
				focusedIdx = i
			}
		}
		n.children.SetActive(focusedIdx)
		for i := 0; i < n.children.Len(); i++ {
			resetNodeGeometry(n.children.Get(i), n.geometry)
		}
	}
}

func resetNodeGeometry(n *node, g geom.Rect) {
	n.geometry = g
	if n.kind == nodeContainer {
		for i := 0; i < n.children.Len(); i++ {
			resetNodeGeometry(n.children.Get(i), g)
		}
	}
}

// ToggleContainerSplit flips Horizontal<->Vertical on the deepest container
// directly containing windowID; on a Tabbed/Stacked container it converts
// to preferred instead.
func (t *Tree) ToggleContainerSplit(windowID id.WindowId, preferred SplitDirection) {
	if t.root == nil {
		return
	}
	toggleContainerSplitRecursive(t.root, windowID, preferred)
	t.CalculateGeometries()
}

func toggleContainerSplitRecursive(n *node, windowID id.WindowId, preferred SplitDirection) {
	if n.kind == nodeWindow {
		return
	}

	containsWindow := false
	for i := 0; i < n.children.Len(); i++ {
		if nodeContainsWindow(n.children.Get(i), windowID) {
			containsWindow = true
			break
		}
	}

	if !containsWindow {
		for i := 0; i < n.children.Len(); i++ {
			toggleContainerSplitRecursive(n.children.Get(i), windowID, preferred)
		}
		return
	}

	switch n.layout {
	case Horizontal:
		n.layout = Vertical
	case Vertical:
		n.layout = Horizontal
	case Tabbed, Stacked:
		n.layout = containerLayoutOf(preferred)
	}
}

// IsWindowInTabbedContainer reports whether windowID's direct parent
// container is Tabbed or Stacked.
func (t *Tree) IsWindowInTabbedContainer(windowID id.WindowId) bool {
	if t.root == nil {
		return false
	}
	return checkWindowInTabbedContainer(t.root, windowID)
}

func checkWindowInTabbedContainer(n *node, windowID id.WindowId) bool {
	if n.kind == nodeWindow {
		return false
	}

	containsWindow := false
	for i := 0; i < n.children.Len(); i++ {
		if nodeContainsWindow(n.children.Get(i), windowID) {
			containsWindow = true
			break
		}
	}
	if containsWindow && (n.layout == Tabbed || n.layout == Stacked) {
		return true
	}
	for i := 0; i < n.children.Len(); i++ {
		if checkWindowInTabbedContainer(n.children.Get(i), windowID) {
			return true
		}
	}
	return false
}

// NextTab / PrevTab advance or retreat the active tab of the innermost
// Tabbed/Stacked container holding windowID. The bool return is "escape":
// true when windowID's branch was already at the boundary (last for next,
// first for prev), in which case nothing changed and the caller should
// move focus outside the container instead.
func (t *Tree) NextTab(windowID id.WindowId) bool {
	if t.root == nil {
		return false
	}
	escape := switchTabRecursive(t.root, windowID, true)
	t.CalculateGeometries()
	return escape
}

func (t *Tree) PrevTab(windowID id.WindowId) bool {
	if t.root == nil {
		return false
	}
	escape := switchTabRecursive(t.root, windowID, false)
	t.CalculateGeometries()
	return escape
}

func switchTabRecursive(n *node, windowID id.WindowId, next bool) bool {
	if n.kind == nodeWindow {
		return false
	}

	containsWindow := false
	for i := 0; i < n.children.Len(); i++ {
		if nodeContainsWindow(n.children.Get(i), windowID) {
			containsWindow = true
			break
		}
	}

	if containsWindow && (n.layout == Tabbed || n.layout == Stacked) {
		activeIndex := n.children.ActiveIndex()
		count := n.children.Len()

		if next && activeIndex == count-1 {
			return true
		}
		if !next && activeIndex == 0 {
			return true
		}

		var newIndex int
		if next {
			newIndex = (activeIndex + 1) % count
		} else if activeIndex == 0 {
			newIndex = count - 1
		} else {
			newIndex = activeIndex - 1
		}
		n.children.SetActive(newIndex)
		return false
	}

	for i := 0; i < n.children.Len(); i++ {
		if switchTabRecursive(n.children.Get(i), windowID, next) {
			return true
		}
	}
	return false
}

// TabbedContainer pairs a Tabbed/Stacked container's geometry with the
// ordered (window, isActive) entries of its children, for tab-bar
// rendering.
type TabbedContainer struct {
	Geometry geom.Rect
	Windows  []TabEntry
}

// TabEntry is one tab: the window it represents and whether it is the
// active tab.
type TabEntry struct {
	Window   id.WindowId
	IsActive bool
}

// FindTabbedContainers returns every Tabbed container in the tree that is
// not nested inside another Tabbed container, each with its geometry and
// ordered tab entries (windows of nested containers are flattened in).
func (t *Tree) FindTabbedContainers() []TabbedContainer {
	var out []TabbedContainer
	if t.root != nil {
		findTabbedContainersRecursive(t.root, &out)
	}
	return out
}

func findTabbedContainersRecursive(n *node, out *[]TabbedContainer) {
	if n.kind == nodeWindow {
		return
	}
	if n.layout == Tabbed {
		appendContainerEntry(n, out)
		return
	}
	for i := 0; i < n.children.Len(); i++ {
		findTabbedContainersRecursive(n.children.Get(i), out)
	}
}

// FindStackedContainers returns every Stacked container in the tree that is
// not nested inside another Stacked container, each with its geometry and
// ordered tab entries (windows of nested containers are flattened in).
func (t *Tree) FindStackedContainers() []TabbedContainer {
	var out []TabbedContainer
	if t.root != nil {
		findStackedContainersRecursive(t.root, &out)
	}
	return out
}

func findStackedContainersRecursive(n *node, out *[]TabbedContainer) {
	if n.kind == nodeWindow {
		return
	}
	if n.layout == Stacked {
		appendContainerEntry(n, out)
		return
	}
	for i := 0; i < n.children.Len(); i++ {
		findStackedContainersRecursive(n.children.Get(i), out)
	}
}

func appendContainerEntry(n *node, out *[]TabbedContainer) {
	activeIndex := n.children.ActiveIndex()
	var entries []TabEntry
	for i := 0; i < n.children.Len(); i++ {
		collectWindowIDs(n.children.Get(i), i == activeIndex, &entries)
	}
	if len(entries) > 0 {
		*out = append(*out, TabbedContainer{Geometry: n.geometry, Windows: entries})
	}
}

func collectWindowIDs(n *node, isActive bool, out *[]TabEntry) {
	if n.kind == nodeWindow {
		*out = append(*out, TabEntry{Window: n.windowID, IsActive: isActive})
		return
	}
	for i := 0; i < n.children.Len(); i++ {
		collectWindowIDs(n.children.Get(i), isActive, out)
	}
}

// UpdateActiveChildForWindow walks up the tree and makes the branch
// containing windowID the active child of every Tabbed/Stacked ancestor, so
// the visible subtree always agrees with the focused subtree (4.C.8).
func (t *Tree) UpdateActiveChildForWindow(windowID id.WindowId) {
	if t.root == nil {
		return
	}
	updateActiveChildRecursive(t.root, windowID)
}

// updateActiveChildRecursive reports whether windowID is anywhere in n's
// subtree, fixing up active children along the way back up.
func updateActiveChildRecursive(n *node, windowID id.WindowId) bool {
	if n.kind == nodeWindow {
		return n.windowID == windowID
	}

	foundIndex := -1
	for i := 0; i < n.children.Len(); i++ {
		if updateActiveChildRecursive(n.children.Get(i), windowID) {
			foundIndex = i
			break
		}
	}
	if foundIndex == -1 {
		return false
	}
	if n.layout == Tabbed || n.layout == Stacked {
		if n.children.ActiveIndex() != foundIndex {
			n.children.SetActive(foundIndex)
		}
	}
	return true
}

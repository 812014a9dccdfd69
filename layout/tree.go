// Package layout implements the per-workspace recursive container tree: the
// core layout algorithm of the compositor. A Tree holds an optional root
// node and recomputes every leaf's geometry top-down from its area after
// each structural change — no stored geometry is authoritative in between.
package layout

import (
	"github.com/wegel/stilch-sub001/geom"
	"github.com/wegel/stilch-sub001/id"
)

// SplitDirection is the orientation requested when a window is inserted or
// a container's split is toggled.
type SplitDirection int

const (
	SplitHorizontal SplitDirection = iota
	SplitVertical
)

// Direction is a directional-navigation request: MoveFocus, MoveWindow, and
// MoveWorkspaceToOutput all take one of these.
type Direction int

const (
	DirLeft Direction = iota
	DirRight
	DirUp
	DirDown
)

// ContainerLayout is how a container arranges its children.
type ContainerLayout int

const (
	Horizontal ContainerLayout = iota
	Vertical
	Tabbed
	Stacked
)

func (l ContainerLayout) String() string {
	switch l {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	case Tabbed:
		return "tabbed"
	case Stacked:
		return "stacked"
	default:
		return "unknown"
	}
}

// HTab is the fixed height reserved for a tab bar (Tabbed) or a single
// stacked title bar (Stacked), in logical pixels.
const HTab int32 = 24

// nodeKind discriminates the two node variants.
type nodeKind int

const (
	nodeWindow nodeKind = iota
	nodeContainer
)

// node is a tree entry: either a window leaf or a container of children.
// Only the fields relevant to its kind are meaningful.
type node struct {
	kind nodeKind

	// nodeWindow
	windowID id.WindowId

	// nodeContainer
	containerID id.ContainerId
	layout      ContainerLayout
	children    *children

	geometry geom.Rect
}

func windowNode(w id.WindowId) *node {
	return &node{kind: nodeWindow, windowID: w}
}

func containerNode(cid id.ContainerId, l ContainerLayout, c *children) *node {
	return &node{kind: nodeContainer, containerID: cid, layout: l, children: c}
}

// Tree is a per-workspace recursive layout tree.
type Tree struct {
	root *node
	area geom.Rect
	gap  int32
	ids  *id.Generator
}

// New returns an empty Tree covering area, separating siblings by gap
// logical pixels. ids allocates ContainerId values for new containers the
// tree creates internally.
func New(ids *id.Generator, area geom.Rect, gap int32) *Tree {
	return &Tree{area: area, gap: gap, ids: ids}
}

// SetArea updates the tree's bounding area and recomputes every geometry.
func (t *Tree) SetArea(area geom.Rect) {
	t.area = area
	t.CalculateGeometries()
}

// IsEmpty reports whether the tree has no windows at all.
func (t *Tree) IsEmpty() bool { return t.root == nil }

// AddWindow inserts windowID into the tree, preferring splitDir when a new
// container must be created. Recomputes geometries before returning.
func (t *Tree) AddWindow(windowID id.WindowId, splitDir SplitDirection) {
	if t.root == nil {
		t.root = windowNode(windowID)
		t.CalculateGeometries()
		return
	}
	t.root = t.addToNode(t.root, windowID, splitDir)
	t.CalculateGeometries()
}

// addToNode returns the replacement for n after inserting windowID
// somewhere in n's subtree, following 4.C.1's four cases.
func (t *Tree) addToNode(n *node, windowID id.WindowId, splitDir SplitDirection) *node {
	if n.kind == nodeWindow {
		// Wrap the existing leaf and the new window into a fresh container.
		wrapped := containerNode(t.ids.NextContainer(), containerLayoutOf(splitDir), singleChild(n))
		wrapped.children.Push(windowNode(windowID))
		return wrapped
	}

	switch n.layout {
	case Tabbed, Stacked:
		n.children.Push(windowNode(windowID))
		return n
	}

	if n.layout == containerLayoutOf(splitDir) {
		n.children.Push(windowNode(windowID))
		return n
	}

	// Opposite orientation: introduce a nested split wrapping the whole
	// existing container.
	wrapped := containerNode(t.ids.NextContainer(), containerLayoutOf(splitDir), singleChild(n))
	wrapped.children.Push(windowNode(windowID))
	return wrapped
}

func containerLayoutOf(d SplitDirection) ContainerLayout {
	if d == SplitVertical {
		return Vertical
	}
	return Horizontal
}

// RemoveWindow deletes windowID from the tree, collapsing any container
// left empty or with a single remaining child, cascading as needed.
// Recomputes geometries before returning. A no-op if windowID is not
// present.
func (t *Tree) RemoveWindow(windowID id.WindowId) {
	if t.root == nil {
		return
	}
	newRoot, _ := removeWindowFromNode(t.root, windowID)
	t.root = newRoot
	t.CalculateGeometries()
}

// removeWindowFromNode returns the replacement for n (nil if n itself must
// be removed) and whether windowID was found anywhere in n's subtree.
func removeWindowFromNode(n *node, windowID id.WindowId) (*node, bool) {
	if n.kind == nodeWindow {
		if n.windowID == windowID {
			return nil, true
		}
		return n, false
	}

	idx := n.children.IndexOf(func(c *node) bool { return nodeContainsWindow(c, windowID) })
	if idx == -1 {
		return n, false
	}

	child := n.children.Get(idx)
	if child.kind == nodeWindow {
		_, stillNonEmpty := n.children.RemoveAt(idx)
		if !stillNonEmpty {
			return nil, true
		}
		if n.children.Len() == 1 {
			return n.children.Active(), true
		}
		return n, true
	}

	newChild, removed := removeWindowFromNode(child, windowID)
	if !removed {
		return n, false
	}
	if newChild == nil {
		_, stillNonEmpty := n.children.RemoveAt(idx)
		if !stillNonEmpty {
			return nil, true
		}
		if n.children.Len() == 1 {
			return n.children.Active(), true
		}
		return n, true
	}
	n.children.ReplaceAt(idx, newChild)
	return n, true
}

func nodeContainsWindow(n *node, windowID id.WindowId) bool {
	if n.kind == nodeWindow {
		return n.windowID == windowID
	}
	for i := 0; i < n.children.Len(); i++ {
		if nodeContainsWindow(n.children.Get(i), windowID) {
			return true
		}
	}
	return false
}

// FindNextFocus returns the window that should receive focus when there is
// no explicit target — the active leaf reached by following each
// container's active child down from the root (4.D's "next focus from the
// tree, active-child-aware").
func (t *Tree) FindNextFocus() (id.WindowId, bool) {
	if t.root == nil {
		return 0, false
	}
	return findActiveWindow(t.root)
}

func findActiveWindow(n *node) (id.WindowId, bool) {
	if n.kind == nodeWindow {
		return n.windowID, true
	}
	switch n.layout {
	case Tabbed, Stacked:
		return findActiveWindow(n.children.Active())
	default:
		return findFirstWindow(n)
	}
}

func findFirstWindow(n *node) (id.WindowId, bool) {
	if n.kind == nodeWindow {
		return n.windowID, true
	}
	for i := 0; i < n.children.Len(); i++ {
		if w, ok := findFirstWindow(n.children.Get(i)); ok {
			return w, true
		}
	}
	return 0, false
}

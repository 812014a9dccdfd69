package layout

import (
	"github.com/wegel/stilch-sub001/geom"
	"github.com/wegel/stilch-sub001/id"
)

// CalculateGeometries recomputes every node's geometry top-down from the
// tree's area. Called automatically after every structural change; exposed
// so SetArea and tests can force a recompute explicitly.
func (t *Tree) CalculateGeometries() {
	if t.root == nil {
		return
	}
	calculateNodeGeometry(t.root, t.area, t.gap)
}

func calculateNodeGeometry(n *node, available geom.Rect, gap int32) {
	n.geometry = available

	if n.kind == nodeWindow {
		return
	}

	switch n.layout {
	case Horizontal:
		rects := geom.SplitHorizontal(available, n.children.Len(), gap)
		for i := 0; i < n.children.Len(); i++ {
			calculateNodeGeometry(n.children.Get(i), rects[i], gap)
		}
	case Vertical:
		rects := geom.SplitVertical(available, n.children.Len(), gap)
		for i := 0; i < n.children.Len(); i++ {
			calculateNodeGeometry(n.children.Get(i), rects[i], gap)
		}
	case Tabbed:
		clientArea := geom.Rect{
			X: available.X,
			Y: available.Y + HTab,
			W: available.W,
			H: available.H - HTab,
		}
		for i := 0; i < n.children.Len(); i++ {
			calculateNodeGeometry(n.children.Get(i), clientArea, gap)
		}
	case Stacked:
		totalTitleHeight := HTab * int32(n.children.Len())
		clientArea := geom.Rect{
			X: available.X,
			Y: available.Y + totalTitleHeight,
			W: available.W,
			H: available.H - totalTitleHeight,
		}
		for i := 0; i < n.children.Len(); i++ {
			calculateNodeGeometry(n.children.Get(i), clientArea, gap)
		}
	}
}

// GetWindowGeometry returns windowID's current geometry, regardless of
// whether it is presently visible.
func (t *Tree) GetWindowGeometry(windowID id.WindowId) (geom.Rect, bool) {
	if t.root == nil {
		return geom.Rect{}, false
	}
	return findWindowGeometry(t.root, windowID)
}

func findWindowGeometry(n *node, windowID id.WindowId) (geom.Rect, bool) {
	if n.kind == nodeWindow {
		if n.windowID == windowID {
			return n.geometry, true
		}
		return geom.Rect{}, false
	}
	for i := 0; i < n.children.Len(); i++ {
		if r, ok := findWindowGeometry(n.children.Get(i), windowID); ok {
			return r, true
		}
	}
	return geom.Rect{}, false
}

// GetAllGeometries returns every window's geometry, including windows
// hidden inside an inactive tab/stack branch.
func (t *Tree) GetAllGeometries() []WindowGeometry {
	var out []WindowGeometry
	if t.root != nil {
		collectAllGeometries(t.root, &out)
	}
	return out
}

func collectAllGeometries(n *node, out *[]WindowGeometry) {
	if n.kind == nodeWindow {
		*out = append(*out, WindowGeometry{Window: n.windowID, Rect: n.geometry})
		return
	}
	for i := 0; i < n.children.Len(); i++ {
		collectAllGeometries(n.children.Get(i), out)
	}
}

// GetVisibleGeometries returns only the windows actually on screen: for
// Tabbed/Stacked containers that means just the active child's subtree.
func (t *Tree) GetVisibleGeometries() []WindowGeometry {
	var out []WindowGeometry
	if t.root != nil {
		collectVisibleGeometries(t.root, &out)
	}
	return out
}

func collectVisibleGeometries(n *node, out *[]WindowGeometry) {
	if n.kind == nodeWindow {
		*out = append(*out, WindowGeometry{Window: n.windowID, Rect: n.geometry})
		return
	}
	switch n.layout {
	case Tabbed, Stacked:
		collectVisibleGeometries(n.children.Active(), out)
	default:
		for i := 0; i < n.children.Len(); i++ {
			collectVisibleGeometries(n.children.Get(i), out)
		}
	}
}

// WindowGeometry pairs a window with its current rectangle.
type WindowGeometry struct {
	Window id.WindowId
	Rect   geom.Rect
}

package layout

import (
	"github.com/wegel/stilch-sub001/geom"
	"github.com/wegel/stilch-sub001/id"
)

// MoveWindow swaps windowID with its nearest visible neighbor in dir,
// identities of containers preserved — only the child slots' contents are
// exchanged. Returns false if windowID has no neighbor in that direction.
func (t *Tree) MoveWindow(windowID id.WindowId, dir Direction) bool {
	if t.root == nil {
		return false
	}

	best, ok := t.NeighborInDirection(windowID, dir)
	if !ok {
		return false
	}

	if !swapWindowsInTree(t.root, windowID, best) {
		return false
	}
	t.CalculateGeometries()
	return true
}

// NeighborInDirection finds the nearest visible window to windowID in
// dir, the same geometric search MoveWindow uses to pick a swap target.
// Used directly by focus navigation once it falls through to the plain
// tiled case (no tab/stack to escape).
func (t *Tree) NeighborInDirection(windowID id.WindowId, dir Direction) (id.WindowId, bool) {
	if t.root == nil {
		return 0, false
	}

	visible := t.GetVisibleGeometries()
	var source WindowGeometry
	found := false
	for _, wg := range visible {
		if wg.Window == windowID {
			source = wg
			found = true
			break
		}
	}
	if !found {
		return 0, false
	}

	var best *WindowGeometry
	var bestDist int32
	for i := range visible {
		target := visible[i]
		if target.Window == windowID {
			continue
		}
		if !inDirection(source.Rect, target.Rect, dir) {
			continue
		}
		dist := axisDistance(source.Rect, target.Rect, dir)
		if best == nil || dist < bestDist {
			best = &visible[i]
			bestDist = dist
		}
	}
	if best == nil {
		return 0, false
	}
	return best.Window, true
}

// inDirection reports whether target lies in dir relative to source's
// origin and shares at least one pixel of overlap on the perpendicular
// axis.
func inDirection(source, target geom.Rect, dir Direction) bool {
	switch dir {
	case DirLeft:
		return target.X < source.X && target.OverlapsY(source)
	case DirRight:
		return target.X > source.X && target.OverlapsY(source)
	case DirUp:
		return target.Y < source.Y && target.OverlapsX(source)
	case DirDown:
		return target.Y > source.Y && target.OverlapsX(source)
	default:
		return false
	}
}

func axisDistance(source, target geom.Rect, dir Direction) int32 {
	switch dir {
	case DirLeft:
		return source.X - target.X
	case DirRight:
		return target.X - source.X
	case DirUp:
		return source.Y - target.Y
	case DirDown:
		return target.Y - source.Y
	default:
		return 0
	}
}

// swapWindowsInTree exchanges id1 and id2's positions in the tree,
// preserving every container's identity: only the child slots' contents
// are swapped, never the container nodes themselves.
func swapWindowsInTree(n *node, id1, id2 id.WindowId) bool {
	if n.kind == nodeWindow {
		return false
	}

	pos1, pos2 := -1, -1
	for i := 0; i < n.children.Len(); i++ {
		child := n.children.Get(i)
		if nodeContainsWindow(child, id1) {
			pos1 = i
		}
		if nodeContainsWindow(child, id2) {
			pos2 = i
		}
	}

	if pos1 != -1 && pos2 != -1 {
		if pos1 != pos2 {
			return n.children.Swap(pos1, pos2)
		}
		return swapWindowsInTree(n.children.Get(pos1), id1, id2)
	}

	for i := 0; i < n.children.Len(); i++ {
		if swapWindowsInTree(n.children.Get(i), id1, id2) {
			return true
		}
	}
	return false
}

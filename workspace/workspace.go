// Package workspace implements the fixed set of workspaces that multiplex
// onto virtual outputs, each owning its own layout.Tree.
package workspace

import (
	"github.com/charmbracelet/log"

	"github.com/wegel/stilch-sub001/geom"
	"github.com/wegel/stilch-sub001/id"
	"github.com/wegel/stilch-sub001/layout"
	"github.com/wegel/stilch-sub001/registry"
	"github.com/wegel/stilch-sub001/voutput"
)

// Location is where a workspace currently sits: off-screen, or visible on
// a specific virtual output.
type Location struct {
	Visible bool

	// Visible == true
	Output voutput.Id
	Area   geom.Rect

	// Visible == false. The output the workspace was last shown on, if
	// any, reported by AssociatedOutput (workspace affinity).
	LastOutput voutput.Id
	HasLast    bool
}

// Workspace owns one layout.Tree plus the bookkeeping (focus, fullscreen,
// window order) the tree itself doesn't track.
type Workspace struct {
	ID               id.WorkspaceId
	Location         Location
	Layout           *layout.Tree
	FocusedWindow    id.WindowId
	HasFocus         bool
	FullscreenWindow id.WindowId
	HasFullscreen    bool
	Windows          []id.WindowId
	Area             geom.Rect
	NextSplit        layout.SplitDirection
}

// defaultArea is used until the workspace is first shown on an output.
var defaultArea = geom.Rect{X: 0, Y: 0, W: 1920, H: 1080}

// New creates a hidden workspace with the given id, gap, and id generator
// for the layout tree's internal container ids.
func New(wsID id.WorkspaceId, gap int32, ids *id.Generator) *Workspace {
	log.Debug("workspace created", "id", wsID.DisplayName())
	return &Workspace{
		ID:        wsID,
		Location:  Location{Visible: false},
		Layout:    layout.New(ids, defaultArea, gap),
		Area:      defaultArea,
		NextSplit: layout.SplitHorizontal,
	}
}

// ShowOnOutput makes the workspace visible on output with the given area,
// sets the tree's area, and recomputes geometries.
func (w *Workspace) ShowOnOutput(output voutput.Id, area geom.Rect) {
	w.Location = Location{Visible: true, Output: output, Area: area}
	w.Area = area
	w.Layout.SetArea(area)
}

// Hide takes the workspace off its output, remembering it for affinity.
func (w *Workspace) Hide() {
	var last voutput.Id
	hasLast := false
	if w.Location.Visible {
		last, hasLast = w.Location.Output, true
	} else if w.Location.HasLast {
		last, hasLast = w.Location.LastOutput, true
	}
	w.Location = Location{Visible: false, LastOutput: last, HasLast: hasLast}
}

// IsVisible reports whether the workspace currently sits on an output.
func (w *Workspace) IsVisible() bool { return w.Location.Visible }

// AssociatedOutput returns the output the workspace is currently on, or the
// one it was last shown on, whichever applies.
func (w *Workspace) AssociatedOutput() (voutput.Id, bool) {
	if w.Location.Visible {
		return w.Location.Output, true
	}
	return w.Location.LastOutput, w.Location.HasLast
}

// AddWindow appends windowID to the workspace, inserts it into the tree
// using NextSplit, and focuses it if nothing was focused yet.
func (w *Workspace) AddWindow(windowID id.WindowId) {
	if w.hasWindow(windowID) {
		return
	}
	w.Windows = append(w.Windows, windowID)
	w.Layout.AddWindow(windowID, w.NextSplit)
	if !w.HasFocus {
		w.FocusedWindow, w.HasFocus = windowID, true
	}
}

// RemoveWindow removes windowID from the workspace and its tree. If it was
// focused, focus moves to the tree's next-focus candidate; if it was
// fullscreen, fullscreen is cleared.
func (w *Workspace) RemoveWindow(windowID id.WindowId) bool {
	idx := -1
	for i, wid := range w.Windows {
		if wid == windowID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return false
	}
	w.Windows = append(w.Windows[:idx], w.Windows[idx+1:]...)
	w.Layout.RemoveWindow(windowID)

	if w.HasFocus && w.FocusedWindow == windowID {
		w.FocusedWindow, w.HasFocus = w.Layout.FindNextFocus()
	}
	if w.HasFullscreen && w.FullscreenWindow == windowID {
		w.HasFullscreen = false
	}
	return true
}

func (w *Workspace) hasWindow(windowID id.WindowId) bool {
	for _, wid := range w.Windows {
		if wid == windowID {
			return true
		}
	}
	return false
}

// SetFocus sets the focused window; it must be in Windows if present. It
// also syncs the tree's active-child chain (4.C.8) so the visible subtree
// agrees with the focused one.
func (w *Workspace) SetFocus(windowID id.WindowId, has bool) {
	if has && !w.hasWindow(windowID) {
		return
	}
	w.FocusedWindow, w.HasFocus = windowID, has
	if has {
		w.Layout.UpdateActiveChildForWindow(windowID)
	}
}

// SetFullscreenWindow sets or clears the fullscreen window; setting
// requires the window to already belong to this workspace.
func (w *Workspace) SetFullscreenWindow(windowID id.WindowId, has bool) {
	if has && !w.hasWindow(windowID) {
		return
	}
	w.FullscreenWindow, w.HasFullscreen = windowID, has
}

// IsEmpty reports whether the workspace has no windows.
func (w *Workspace) IsEmpty() bool { return len(w.Windows) == 0 }

// WindowCount returns the number of windows on the workspace.
func (w *Workspace) WindowCount() int { return len(w.Windows) }

// MoveWindow moves windowID in direction within the workspace's tree.
// Returns false if windowID isn't on this workspace or has no neighbor.
func (w *Workspace) MoveWindow(windowID id.WindowId, dir layout.Direction) bool {
	if !w.hasWindow(windowID) {
		return false
	}
	return w.Layout.MoveWindow(windowID, dir)
}

// RenderUpdate is one (window, geometry, visible) entry to apply to the
// renderer-facing spatial map — visible=false means "unmap this window".
type RenderUpdate struct {
	Window  id.WindowId
	Rect    geom.Rect
	Visible bool
}

// FullscreenGeometry reports, given mode and the full physical-output
// rectangle (used only for FullscreenPhysicalOutput), the rectangle the
// fullscreen window should occupy.
func (w *Workspace) FullscreenGeometry(mode registry.FullscreenMode, physicalArea geom.Rect) geom.Rect {
	switch mode {
	case registry.FullscreenPhysicalOutput:
		return physicalArea
	default: // Container, VirtualOutput
		return w.Area
	}
}

// RenderPlan computes the set of updates apply_layout_to_renderer should
// push to the WindowManager facade's spatial map: if a window is
// fullscreen, every other window on the workspace unmaps and the
// fullscreen window gets geom (per mode); otherwise hidden leaves unmap
// and visible leaves get their computed geometry.
func (w *Workspace) RenderPlan(mode registry.FullscreenMode, physicalArea geom.Rect) []RenderUpdate {
	if w.HasFullscreen {
		var out []RenderUpdate
		out = append(out, RenderUpdate{
			Window:  w.FullscreenWindow,
			Rect:    w.FullscreenGeometry(mode, physicalArea),
			Visible: true,
		})
		for _, wg := range w.Layout.GetAllGeometries() {
			if wg.Window == w.FullscreenWindow {
				continue
			}
			out = append(out, RenderUpdate{Window: wg.Window, Visible: false})
		}
		return out
	}

	all := w.Layout.GetAllGeometries()
	visible := w.Layout.GetVisibleGeometries()
	visibleSet := make(map[id.WindowId]geom.Rect, len(visible))
	for _, wg := range visible {
		visibleSet[wg.Window] = wg.Rect
	}

	out := make([]RenderUpdate, 0, len(all))
	for _, wg := range all {
		if rect, ok := visibleSet[wg.Window]; ok {
			out = append(out, RenderUpdate{Window: wg.Window, Rect: rect, Visible: true})
		} else {
			out = append(out, RenderUpdate{Window: wg.Window, Visible: false})
		}
	}
	return out
}

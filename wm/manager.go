// Package wm is the WindowManager facade: the component every command
// handler goes through to mutate windows. It owns the renderer-facing
// spatial map and keeps it from ever diverging from the geometries the
// active workspaces' trees compute.
package wm

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/wegel/stilch-sub001/cmderr"
	"github.com/wegel/stilch-sub001/event"
	"github.com/wegel/stilch-sub001/geom"
	"github.com/wegel/stilch-sub001/id"
	"github.com/wegel/stilch-sub001/layout"
	"github.com/wegel/stilch-sub001/registry"
	"github.com/wegel/stilch-sub001/voutput"
	"github.com/wegel/stilch-sub001/workspace"
)

// Handle is the display-server-side handle a managed window wraps. It is
// registry.Handle under the name the facade's own contract (spec.md
// §4.G) uses.
type Handle = registry.Handle

// Space is the renderer-facing spatial map: every managed window's last
// pushed geometry and visibility. The facade is the only writer; the
// renderer is only ever given a read-only view (spec.md §5, "pull-based").
type Space struct {
	rects   map[id.WindowId]geom.Rect
	visible map[id.WindowId]bool
}

func newSpace() *Space {
	return &Space{rects: make(map[id.WindowId]geom.Rect), visible: make(map[id.WindowId]bool)}
}

// Get returns w's last-pushed geometry, if any.
func (s *Space) Get(w id.WindowId) (geom.Rect, bool) {
	r, ok := s.rects[w]
	return r, ok
}

// IsVisible reports whether w is currently mapped in the spatial map.
func (s *Space) IsVisible(w id.WindowId) bool { return s.visible[w] }

// set records w's geometry/visibility, reporting whether anything changed.
func (s *Space) set(w id.WindowId, r geom.Rect, visible bool) bool {
	oldR, hadR := s.rects[w]
	oldVis, hadVis := s.visible[w]
	changed := !hadR || !hadVis || oldR != r || oldVis != visible
	s.rects[w] = r
	s.visible[w] = visible
	return changed
}

func (s *Space) remove(w id.WindowId) {
	delete(s.rects, w)
	delete(s.visible, w)
}

// WindowManager is the facade atop the registry, workspace manager, and
// virtual-output manager: the only component that pushes geometry and
// fullscreen state into a window's Handle.
type WindowManager struct {
	Registry   *registry.Registry
	Workspaces *workspace.Manager
	Outputs    *voutput.Manager
	Ids        *id.Generator
	Bus        *event.Bus

	space *Space
	// moved tracks windows whose Space entry changed during the current
	// relayout pass, so the renderer can redraw only what changed.
	moved map[id.WindowId]bool
}

// New wires a facade around the given components. Nothing here
// allocates its own copy of domain state; the facade only orchestrates.
func New(reg *registry.Registry, ws *workspace.Manager, vo *voutput.Manager, ids *id.Generator, bus *event.Bus) *WindowManager {
	return &WindowManager{
		Registry:   reg,
		Workspaces: ws,
		Outputs:    vo,
		Ids:        ids,
		Bus:        bus,
		space:      newSpace(),
		moved:      make(map[id.WindowId]bool),
	}
}

// Space exposes the read-only spatial map for the renderer.
func (wm *WindowManager) Space() *Space { return wm.space }

// MovedSet drains and returns the set of windows whose geometry or
// visibility changed since the last call.
func (wm *WindowManager) MovedSet() []id.WindowId {
	out := make([]id.WindowId, 0, len(wm.moved))
	for w := range wm.moved {
		out = append(out, w)
	}
	wm.moved = make(map[id.WindowId]bool)
	return out
}

func (wm *WindowManager) emit(e event.Event) {
	if err := wm.Bus.Emit(e); err != nil {
		log.Error("event emission failed", "err", err)
	}
}

// AddWindow registers handle as a new tiled window on ws, inserts it
// into ws's tree with its next preferred split direction, and pushes
// initial geometry to the handle and Space.
func (wm *WindowManager) AddWindow(handle Handle, ws id.WorkspaceId, surface any) (id.WindowId, error) {
	w := wm.Workspaces.Get(ws)
	if w == nil {
		return 0, cmderr.New(cmderr.NotFound, "AddWindow", fmt.Errorf("workspace %d", ws))
	}
	windowID := wm.Ids.NextWindow()
	mw := &registry.ManagedWindow{ID: windowID, Handle: handle, Workspace: ws, Surface: surface}
	wm.Registry.Insert(mw)
	w.AddWindow(windowID)
	wm.Relayout(ws)
	wm.emit(event.WindowEv(event.WindowCreated, windowID))
	log.Info("window added", "id", windowID, "workspace", ws)
	return windowID, nil
}

// RemoveWindow unregisters windowID, removes it from its workspace's
// tree, relayouts the workspace, and clears windowID from Space.
func (wm *WindowManager) RemoveWindow(windowID id.WindowId) bool {
	mw := wm.Registry.Remove(windowID)
	if mw == nil {
		return false
	}
	ws := mw.Workspace
	if w := wm.Workspaces.Get(ws); w != nil {
		w.RemoveWindow(windowID)
	}
	wm.space.remove(windowID)
	delete(wm.moved, windowID)
	wm.Relayout(ws)
	wm.emit(event.WindowEv(event.WindowDestroyed, windowID))
	if err := mw.Handle.Close(); err != nil {
		log.Warn("handle close failed", "id", windowID, "err", err)
	}
	log.Info("window removed", "id", windowID)
	return true
}

// MoveWindow directionally moves windowID within its own workspace's
// tree (spec.md §4.C.7), relayouting on success.
func (wm *WindowManager) MoveWindow(windowID id.WindowId, dir layout.Direction) bool {
	mw := wm.Registry.Get(windowID)
	if mw == nil {
		return false
	}
	w := wm.Workspaces.Get(mw.Workspace)
	if w == nil {
		return false
	}
	if !w.MoveWindow(windowID, dir) {
		return false
	}
	wm.Relayout(mw.Workspace)
	wm.emit(event.WindowEv(event.WindowMoved, windowID))
	return true
}

// ResizeWindow updates windowID's current layout-variant geometry
// directly (used for floating windows, which sit outside any tree) and
// pushes it to both the handle and Space.
func (wm *WindowManager) ResizeWindow(windowID id.WindowId, rect geom.Rect) bool {
	var handle Handle
	ok := wm.Registry.Mutate(windowID, func(w *registry.ManagedWindow) {
		w.Layout.Geometry = rect
		handle = w.Handle
	})
	if !ok {
		return false
	}
	changed := wm.space.set(windowID, rect, wm.space.IsVisible(windowID))
	if changed {
		wm.moved[windowID] = true
	}
	if handle != nil {
		if err := handle.Configure(rect.Size(), false); err != nil {
			log.Warn("configure failed", "id", windowID, "err", err)
		}
	}
	wm.emit(event.WindowEv(event.WindowResized, windowID))
	return true
}

// SetFullscreen toggles windowID's fullscreen mode. Entering fullscreen
// captures the current non-fullscreen layout into Previous (making
// fullscreen-inside-fullscreen unrepresentable, per spec.md §3);
// exiting restores it. Re-entering fullscreen while already fullscreen
// changes mode without touching Previous (the redesign recorded in
// DESIGN.md).
func (wm *WindowManager) SetFullscreen(windowID id.WindowId, on bool, mode registry.FullscreenMode, physicalArea geom.Rect) bool {
	mw := wm.Registry.Get(windowID)
	if mw == nil {
		return false
	}
	w := wm.Workspaces.Get(mw.Workspace)
	if w == nil {
		return false
	}

	if !on {
		if !mw.IsFullscreen() {
			return false
		}
		prev := mw.Layout.Previous
		wm.Registry.Mutate(windowID, func(mw *registry.ManagedWindow) {
			if prev != nil {
				mw.Layout = prev.IntoLayout()
			}
		})
		w.SetFullscreenWindow(0, false)
		wm.Relayout(mw.Workspace)
		wm.emit(event.WindowEv(event.WindowFullscreenExited, windowID))
		return true
	}

	fsGeom := w.FullscreenGeometry(mode, physicalArea)
	wm.Registry.Mutate(windowID, func(mw *registry.ManagedWindow) {
		var prev *registry.NonFullscreenLayout
		if existing := mw.Layout.AsNonFullscreen(); existing != nil {
			prev = existing
		} else {
			prev = mw.Layout.Previous
		}
		mw.Layout = registry.Layout{Kind: registry.LayoutFullscreen, Mode: mode, Geometry: fsGeom, Previous: prev}
	})
	w.SetFullscreenWindow(windowID, true)
	wm.Relayout(mw.Workspace)
	wm.emit(event.WindowEv(event.WindowFullscreenEntered, windowID))
	return true
}

// SetWindowWorkspace updates the registry record only; callers (the
// command surface) must also move the window between the workspaces'
// own lists via workspace.Manager.MoveWindow.
func (wm *WindowManager) SetWindowWorkspace(windowID id.WindowId, ws id.WorkspaceId) bool {
	if !wm.Registry.SetWorkspace(windowID, ws) {
		return false
	}
	wm.emit(event.WindowEv(event.WindowWorkspaceChanged, windowID))
	return true
}

// Relayout recomputes ws's render plan and pushes every update into
// Space and the corresponding window's Handle, tracking the moved-set.
// physicalArea is the full physical-output rectangle backing ws's
// current virtual output, used only for FullscreenPhysicalOutput.
func (wm *WindowManager) Relayout(wsID id.WorkspaceId) {
	w := wm.Workspaces.Get(wsID)
	if w == nil {
		return
	}
	physicalArea := w.Area
	if w.IsVisible() {
		if out := wm.Outputs.Get(w.Location.Output); out != nil {
			physicalArea = out.Region
		}
	}

	mode := registry.FullscreenVirtualOutput
	if w.HasFullscreen {
		if mw := wm.Registry.Get(w.FullscreenWindow); mw != nil && mw.IsFullscreen() {
			mode = mw.Layout.Mode
		}
	}

	for _, update := range w.RenderPlan(mode, physicalArea) {
		mw := wm.Registry.Get(update.Window)
		if mw == nil {
			continue
		}
		changed := wm.space.set(update.Window, update.Rect, update.Visible)
		if changed {
			wm.moved[update.Window] = true
		}
		if !mw.IsFullscreen() {
			wm.Registry.Mutate(update.Window, func(mw *registry.ManagedWindow) {
				mw.Layout.Kind = registry.LayoutTiled
				mw.Layout.Geometry = update.Rect
			})
		}
		if mw.Handle == nil {
			continue
		}
		if err := mw.Handle.Configure(update.Rect.Size(), mw.IsFullscreen()); err != nil {
			log.Warn("configure failed", "id", update.Window, "err", err)
		}
	}
	wm.emit(event.Event{Layout: &event.LayoutEvent{Kind: event.LayoutApplied}})
}

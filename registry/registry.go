// Package registry owns every ManagedWindow record in the compositor and
// indexes it three ways: by WindowId, by surface handle, and by backend
// window handle. It is the sole owner of window records — nothing else in
// the module stores a ManagedWindow outside this package.
package registry

import (
	"sync"

	"github.com/charmbracelet/log"

	"github.com/wegel/stilch-sub001/geom"
	"github.com/wegel/stilch-sub001/id"
)

// FullscreenMode is the scope a fullscreen window occupies.
type FullscreenMode int

const (
	// FullscreenContainer maximizes the window within its parent container.
	FullscreenContainer FullscreenMode = iota
	// FullscreenVirtualOutput fills the workspace's whole area.
	FullscreenVirtualOutput
	// FullscreenPhysicalOutput fills the backing physical display.
	FullscreenPhysicalOutput
)

func (m FullscreenMode) String() string {
	switch m {
	case FullscreenContainer:
		return "container"
	case FullscreenVirtualOutput:
		return "virtual_output"
	case FullscreenPhysicalOutput:
		return "physical_output"
	default:
		return "unknown"
	}
}

// Handle is the opaque display-server-side handle for a managed window. The
// registry and layout tree never look inside it; they only call Configure
// when a window's geometry or fullscreen state changes, and Close when it
// should be destroyed. Production backends (Wayland/X11) and the ASCII test
// backend both implement it.
type Handle interface {
	Configure(size geom.Size, fullscreen bool) error
	Close() error
}

// NonFullscreenLayout is either Tiled or Floating — never Fullscreen. This
// is what a Fullscreen layout's Previous field holds, which makes
// fullscreen-inside-fullscreen unrepresentable.
type NonFullscreenLayout struct {
	Kind      LayoutKind
	Container id.ContainerId // valid only when Kind == LayoutTiled
	Geometry  geom.Rect
}

// IntoLayout promotes a NonFullscreenLayout back into a full Layout.
func (n NonFullscreenLayout) IntoLayout() Layout {
	return Layout{Kind: n.Kind, Container: n.Container, Geometry: n.Geometry}
}

// LayoutKind discriminates the three mutually exclusive layout states a
// ManagedWindow can be in.
type LayoutKind int

const (
	LayoutTiled LayoutKind = iota
	LayoutFloating
	LayoutFullscreen
)

func (k LayoutKind) String() string {
	switch k {
	case LayoutTiled:
		return "tiled"
	case LayoutFloating:
		return "floating"
	case LayoutFullscreen:
		return "fullscreen"
	default:
		return "unknown"
	}
}

// Layout is the full layout state of a window: exactly one variant is
// meaningful at a time, selected by Kind. Fields outside the active variant
// are zero and must not be read.
type Layout struct {
	Kind LayoutKind

	// Tiled
	Container id.ContainerId
	// Floating and Tiled and Fullscreen all carry a Geometry.
	Geometry geom.Rect

	// Fullscreen only.
	Mode     FullscreenMode
	Previous *NonFullscreenLayout
}

// AsNonFullscreen returns the non-fullscreen projection of the layout, or
// nil if it is currently Fullscreen.
func (l Layout) AsNonFullscreen() *NonFullscreenLayout {
	switch l.Kind {
	case LayoutTiled, LayoutFloating:
		return &NonFullscreenLayout{Kind: l.Kind, Container: l.Container, Geometry: l.Geometry}
	default:
		return nil
	}
}

// ManagedWindow is the record the registry owns for every live window.
type ManagedWindow struct {
	ID        id.WindowId
	Handle    Handle
	Workspace id.WorkspaceId
	Layout    Layout

	// Surface is the opaque protocol-level surface key for this window
	// (distinct from Handle: a backend may commit several surfaces — e.g.
	// popups — before a toplevel window handle exists). Comparable values
	// only; nil if the backend has no separate surface concept (as the
	// ASCII test backend does not).
	Surface any
}

// IsFullscreen reports whether the window is currently in any fullscreen
// mode.
func (w *ManagedWindow) IsFullscreen() bool {
	return w.Layout.Kind == LayoutFullscreen
}

// IsTiled reports whether the window is tiled (not floating, not
// fullscreen).
func (w *ManagedWindow) IsTiled() bool {
	return w.Layout.Kind == LayoutTiled
}

// IsFloating reports whether the window is floating.
func (w *ManagedWindow) IsFloating() bool {
	return w.Layout.Kind == LayoutFloating
}

// Geometry returns the window's current geometry regardless of layout kind.
func (w *ManagedWindow) Geometry() geom.Rect {
	return w.Layout.Geometry
}

// Container returns the window's container if it is tiled.
func (w *ManagedWindow) Container() (id.ContainerId, bool) {
	if w.Layout.Kind == LayoutTiled {
		return w.Layout.Container, true
	}
	return 0, false
}

// Registry is the central owner of ManagedWindow records, indexed by id,
// surface, and backend handle. The three indices are kept in lockstep by
// insert/remove; callers never see a partially-updated state.
//
// The compositor's own event loop is single-threaded (spec §5), and the
// command server hands every request, queries included, to its one
// dispatch goroutine. The RWMutex is defensive: it keeps the indices
// consistent for any caller that reads outside that goroutine, without
// changing the single-writer model.
type Registry struct {
	mu        sync.RWMutex
	byID      map[id.WindowId]*ManagedWindow
	bySurface map[any]id.WindowId
	byHandle  map[Handle]id.WindowId
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{
		byID:      make(map[id.WindowId]*ManagedWindow),
		bySurface: make(map[any]id.WindowId),
		byHandle:  make(map[Handle]id.WindowId),
	}
}

// Insert adds window to the registry and indexes it by id, surface, and
// handle. Per spec §4.B this only fails on internal inconsistency, never on
// caller input; there is nothing for a Go signature to reject here, so
// Insert has no error return.
func (r *Registry) Insert(window *ManagedWindow) id.WindowId {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[window.ID] = window
	if window.Surface != nil {
		r.bySurface[window.Surface] = window.ID
	}
	if window.Handle != nil {
		r.byHandle[window.Handle] = window.ID
	}
	log.Debug("window registered", "id", window.ID, "workspace", window.Workspace)
	return window.ID
}

// Remove deletes windowID from all indices atomically, returning the
// removed record. Removing a non-existent id is a no-op returning nil.
func (r *Registry) Remove(windowID id.WindowId) *ManagedWindow {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.byID[windowID]
	if !ok {
		return nil
	}
	delete(r.byID, windowID)
	if w.Surface != nil {
		delete(r.bySurface, w.Surface)
	}
	if w.Handle != nil {
		delete(r.byHandle, w.Handle)
	}
	log.Debug("window removed", "id", windowID)
	return w
}

// Get returns the window record for windowID, or nil if it does not exist.
func (r *Registry) Get(windowID id.WindowId) *ManagedWindow {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byID[windowID]
}

// FindBySurface looks up a window by its protocol surface key.
func (r *Registry) FindBySurface(surface any) (id.WindowId, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	wid, ok := r.bySurface[surface]
	return wid, ok
}

// FindByHandle looks up a window by its backend handle.
func (r *Registry) FindByHandle(h Handle) (id.WindowId, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	wid, ok := r.byHandle[h]
	return wid, ok
}

// WindowsInWorkspace returns every window currently assigned to ws, in no
// particular order (ordering within a workspace is the Workspace's
// responsibility, via its own windows list).
func (r *Registry) WindowsInWorkspace(ws id.WorkspaceId) []*ManagedWindow {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*ManagedWindow
	for _, w := range r.byID {
		if w.Workspace == ws {
			out = append(out, w)
		}
	}
	return out
}

// Len returns the number of registered windows.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}

// All returns every registered window, in no particular order.
func (r *Registry) All() []*ManagedWindow {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*ManagedWindow, 0, len(r.byID))
	for _, w := range r.byID {
		out = append(out, w)
	}
	return out
}

// SetWorkspace updates the workspace field of an existing window record.
// Reports false if windowID is not registered.
func (r *Registry) SetWorkspace(windowID id.WindowId, ws id.WorkspaceId) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.byID[windowID]
	if !ok {
		return false
	}
	w.Workspace = ws
	return true
}

// Mutate runs fn with exclusive access to windowID's record, returning false
// if it does not exist. fn must not call back into the Registry.
func (r *Registry) Mutate(windowID id.WindowId, fn func(*ManagedWindow)) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.byID[windowID]
	if !ok {
		return false
	}
	fn(w)
	return true
}

// Package command implements the line-delimited JSON request/response
// protocol (spec.md §4.I/§6) and the Unix-socket transport that carries
// it: one goroutine per connection reading requests, a single dispatch
// goroutine serializing every mutation through wm.WindowManager.
package command

import (
	"github.com/wegel/stilch-sub001/id"
	"github.com/wegel/stilch-sub001/layout"
	"github.com/wegel/stilch-sub001/registry"
	"github.com/wegel/stilch-sub001/wm"
)

// Request is a decoded client request: Type selects which of the
// remaining fields are meaningful; the others are left at their zero
// values.
type Request struct {
	Type string `json:"type"`

	// DestroyWindow, FocusWindow, Fullscreen*: the target window.
	ID id.WindowId `json:"id,omitempty"`
	// CreateWindow: optional initial size.
	Width  int32 `json:"width,omitempty"`
	Height int32 `json:"height,omitempty"`

	// MoveFocus, MoveWorkspaceToOutput
	Direction string `json:"direction,omitempty"`

	// MoveFocusedWindowToWorkspace: destination workspace, as a 0-based
	// internal workspace index (not the 1-based display number returned
	// in WindowRecord/WorkspaceRecord).
	Workspace int `json:"workspace,omitempty"`

	// SwitchWorkspace: the workspace to show, as a 0-based internal
	// workspace index. Always resolves against the caller's currently
	// active output; SwitchWorkspace carries no output argument.
	Index int `json:"index,omitempty"`

	// SetLayout
	Mode string `json:"mode,omitempty"`

	// GetAsciiSnapshot
	ShowIDs   bool `json:"show_ids,omitempty"`
	ShowFocus bool `json:"show_focus,omitempty"`

	// MoveMouse
	X int32 `json:"x,omitempty"`
	Y int32 `json:"y,omitempty"`
}

// Response is the typed reply envelope. Exactly one payload field
// besides Type/Message is meaningful, selected by Type.
type Response struct {
	Type    string `json:"type"`
	Message string `json:"message,omitempty"`

	Windows         []WindowRecord    `json:"windows,omitempty"`
	Workspaces      []WorkspaceRecord `json:"workspaces,omitempty"`
	Outputs         []OutputRecord    `json:"outputs,omitempty"`
	Window          *WindowRecord     `json:"window,omitempty"`
	Snapshot        []string          `json:"snapshot,omitempty"`
	CursorX         int32             `json:"cursor_x,omitempty"`
	CursorY         int32             `json:"cursor_y,omitempty"`
	FocusedWindowID id.WindowId       `json:"focused_window_id,omitempty"`
}

// WindowRecord is the wire shape of a managed window (spec.md §6).
type WindowRecord struct {
	ID         id.WindowId `json:"id"`
	Workspace  int         `json:"workspace"`
	X          int32       `json:"x"`
	Y          int32       `json:"y"`
	Width      int32       `json:"width"`
	Height     int32       `json:"height"`
	Focused    bool        `json:"focused"`
	Fullscreen bool        `json:"fullscreen"`
	Visible    bool        `json:"visible"`
	Layout     string      `json:"layout"`
}

// WorkspaceRecord is the wire shape of a workspace summary (spec.md §6).
type WorkspaceRecord struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	Visible      bool    `json:"visible"`
	Focused      bool    `json:"focused"`
	WindowCount  int     `json:"window_count"`
	Output       *string `json:"output"`
}

// OutputRecord is the wire shape of a virtual output (spec.md §6).
type OutputRecord struct {
	ID     id.VirtualOutputId `json:"id"`
	Name   string             `json:"name"`
	X      int32              `json:"x"`
	Y      int32              `json:"y"`
	Width  int32              `json:"width"`
	Height int32              `json:"height"`
}

func windowRecord(m *registry.ManagedWindow, focused bool, visible bool) WindowRecord {
	var layoutName string
	switch m.Layout.Kind {
	case registry.LayoutTiled:
		layoutName = "tiled"
	case registry.LayoutFloating:
		layoutName = "floating"
	case registry.LayoutFullscreen:
		layoutName = "fullscreen"
	}
	g := m.Geometry()
	return WindowRecord{
		ID:         m.ID,
		Workspace:  int(m.Workspace) + 1,
		X:          g.X,
		Y:          g.Y,
		Width:      g.W,
		Height:     g.H,
		Focused:    focused,
		Fullscreen: m.IsFullscreen(),
		Visible:    visible,
		Layout:     layoutName,
	}
}

func parseDirection(s string) (layout.Direction, bool) {
	switch s {
	case "left":
		return layout.DirLeft, true
	case "right":
		return layout.DirRight, true
	case "up":
		return layout.DirUp, true
	case "down":
		return layout.DirDown, true
	default:
		return 0, false
	}
}

func parseSetLayoutMode(s string) (wm.SetLayoutMode, bool) {
	switch s {
	case "tabbed":
		return wm.SetLayoutTabbed, true
	case "stacked":
		return wm.SetLayoutStacked, true
	case "toggle_split":
		return wm.SetLayoutToggleSplit, true
	default:
		return 0, false
	}
}

func parseFullscreenMode(requestType string) registry.FullscreenMode {
	switch requestType {
	case "FullscreenContainer":
		return registry.FullscreenContainer
	case "FullscreenPhysicalOutput":
		return registry.FullscreenPhysicalOutput
	default:
		return registry.FullscreenVirtualOutput
	}
}

package wm

import (
	"testing"

	"github.com/wegel/stilch-sub001/event"
	"github.com/wegel/stilch-sub001/geom"
	"github.com/wegel/stilch-sub001/id"
	"github.com/wegel/stilch-sub001/layout"
	"github.com/wegel/stilch-sub001/registry"
	"github.com/wegel/stilch-sub001/voutput"
	"github.com/wegel/stilch-sub001/workspace"
)

func newTestFacade(t *testing.T) (*WindowManager, *id.Generator) {
	t.Helper()
	var gen id.Generator
	reg := registry.New()
	ws := workspace.NewManager(0, &gen)
	vo := voutput.New(&gen)
	bus := event.NewBus()
	return New(reg, ws, vo, &gen, bus), &gen
}

func TestAddWindowPushesInitialGeometry(t *testing.T) {
	wm, _ := newTestFacade(t)
	voID := wm.Outputs.CreateFromPhysical("DP-1", geom.Rect{X: 0, Y: 0, W: 1000, H: 1000})
	if err := wm.SwitchWorkspace(0, voID); err != nil {
		t.Fatalf("SwitchWorkspace: %v", err)
	}

	windowID, err := wm.AddWindow(NewAsciiHandle(), 0, nil)
	if err != nil {
		t.Fatalf("AddWindow: %v", err)
	}
	rect, ok := wm.Space().Get(windowID)
	if !ok || rect != (geom.Rect{X: 0, Y: 0, W: 1000, H: 1000}) {
		t.Errorf("Space entry = %+v, ok=%v; want full workspace area", rect, ok)
	}
	if !wm.Space().IsVisible(windowID) {
		t.Error("expected the sole window to be visible")
	}
}

// TestMoveFocusIsDirectionalInTiledLayout ensures a tiled MoveFocus
// picks the neighbor actually in the requested direction rather than
// an arbitrary other visible window.
func TestMoveFocusIsDirectionalInTiledLayout(t *testing.T) {
	wm, _ := newTestFacade(t)
	voID := wm.Outputs.CreateFromPhysical("DP-1", geom.Rect{X: 0, Y: 0, W: 3000, H: 1000})
	if err := wm.SwitchWorkspace(0, voID); err != nil {
		t.Fatalf("SwitchWorkspace: %v", err)
	}

	w1, err := wm.AddWindow(NewAsciiHandle(), 0, nil)
	if err != nil {
		t.Fatalf("AddWindow w1: %v", err)
	}
	w2, err := wm.AddWindow(NewAsciiHandle(), 0, nil)
	if err != nil {
		t.Fatalf("AddWindow w2: %v", err)
	}
	w3, err := wm.AddWindow(NewAsciiHandle(), 0, nil)
	if err != nil {
		t.Fatalf("AddWindow w3: %v", err)
	}

	if err := wm.FocusWindow(w2); err != nil {
		t.Fatalf("FocusWindow w2: %v", err)
	}

	dest, err := wm.MoveFocus(0, layout.DirRight)
	if err != nil {
		t.Fatalf("MoveFocus right: %v", err)
	}
	if dest != w3 {
		t.Errorf("MoveFocus right from the middle window = %d, want %d (w3)", dest, w3)
	}

	if err := wm.FocusWindow(w2); err != nil {
		t.Fatalf("FocusWindow w2: %v", err)
	}
	dest, err = wm.MoveFocus(0, layout.DirLeft)
	if err != nil {
		t.Fatalf("MoveFocus left: %v", err)
	}
	if dest != w1 {
		t.Errorf("MoveFocus left from the middle window = %d, want %d (w1)", dest, w1)
	}
}

func TestRemoveWindowClearsSpace(t *testing.T) {
	wm, _ := newTestFacade(t)
	voID := wm.Outputs.CreateFromPhysical("DP-1", geom.Rect{X: 0, Y: 0, W: 1000, H: 1000})
	wm.SwitchWorkspace(0, voID)
	windowID, _ := wm.AddWindow(NewAsciiHandle(), 0, nil)

	if !wm.RemoveWindow(windowID) {
		t.Fatal("expected RemoveWindow to succeed")
	}
	if _, ok := wm.Space().Get(windowID); ok {
		t.Error("expected the removed window's Space entry to be gone")
	}
	if wm.Registry.Get(windowID) != nil {
		t.Error("expected the removed window to be gone from the registry")
	}
}

func TestFullscreenEnterExitRestoresGeometry(t *testing.T) {
	wm, _ := newTestFacade(t)
	voID := wm.Outputs.CreateFromPhysical("DP-1", geom.Rect{X: 0, Y: 0, W: 1000, H: 1000})
	wm.SwitchWorkspace(0, voID)
	w1, _ := wm.AddWindow(NewAsciiHandle(), 0, nil)
	w2, _ := wm.AddWindow(NewAsciiHandle(), 0, nil)

	before, _ := wm.Space().Get(w1)

	if err := wm.FullscreenToggle(w1, registry.FullscreenVirtualOutput); err != nil {
		t.Fatalf("Fullscreen enter: %v", err)
	}
	fsRect, _ := wm.Space().Get(w1)
	if fsRect != (geom.Rect{X: 0, Y: 0, W: 1000, H: 1000}) {
		t.Errorf("expected fullscreen geometry to fill the workspace, got %+v", fsRect)
	}
	if wm.Space().IsVisible(w2) {
		t.Error("expected the other window to be hidden while w1 is fullscreen")
	}

	if err := wm.FullscreenToggle(w1, registry.FullscreenVirtualOutput); err != nil {
		t.Fatalf("Fullscreen exit: %v", err)
	}
	after, _ := wm.Space().Get(w1)
	if after != before {
		t.Errorf("expected fullscreen exit to restore geometry %+v, got %+v", before, after)
	}
	if !wm.Space().IsVisible(w2) {
		t.Error("expected the other window to reappear after fullscreen exit")
	}
}

func TestMoveFocusedWindowToWorkspaceKeepsFocusInSource(t *testing.T) {
	wm, _ := newTestFacade(t)
	voID := wm.Outputs.CreateFromPhysical("DP-1", geom.Rect{X: 0, Y: 0, W: 900, H: 600})
	wm.SwitchWorkspace(0, voID)
	a, _ := wm.AddWindow(NewAsciiHandle(), 0, nil)
	b, _ := wm.AddWindow(NewAsciiHandle(), 0, nil)
	c, _ := wm.AddWindow(NewAsciiHandle(), 0, nil)

	ws := wm.Workspaces.Get(0)
	ws.Layout.SetContainerLayout(a, layout.Tabbed)
	ws.SetFocus(b, true)

	if err := wm.MoveFocusedWindowToWorkspace(0, 1); err != nil {
		t.Fatalf("MoveFocusedWindowToWorkspace: %v", err)
	}

	if ws.HasFocus && ws.FocusedWindow == b {
		t.Error("expected focus to move off the moved window")
	}
	if !containsWindow(ws.Windows, a) || !containsWindow(ws.Windows, c) {
		t.Error("expected workspace 0 to retain a and c")
	}
	if containsWindow(ws.Windows, b) {
		t.Error("expected workspace 0 to no longer have b")
	}
	dest := wm.Workspaces.Get(1)
	if !containsWindow(dest.Windows, b) || !dest.HasFocus || dest.FocusedWindow != b {
		t.Errorf("expected workspace 1 to have b focused, got hasWindow=%v HasFocus=%v Focused=%v",
			containsWindow(dest.Windows, b), dest.HasFocus, dest.FocusedWindow)
	}
}

func containsWindow(windows []id.WindowId, target id.WindowId) bool {
	for _, w := range windows {
		if w == target {
			return true
		}
	}
	return false
}

func TestMoveWorkspaceToOutputShiftsGeometry(t *testing.T) {
	wm, _ := newTestFacade(t)
	left := wm.Outputs.CreateFromPhysical("DP-1", geom.Rect{X: 0, Y: 0, W: 1920, H: 1080})
	right := wm.Outputs.CreateFromPhysical("DP-2", geom.Rect{X: 1920, Y: 0, W: 1920, H: 1080})
	wm.SwitchWorkspace(0, left)
	w1, _ := wm.AddWindow(NewAsciiHandle(), 0, nil)

	before, _ := wm.Space().Get(w1)
	if err := wm.MoveWorkspaceToOutput(0, right); err != nil {
		t.Fatalf("MoveWorkspaceToOutput: %v", err)
	}
	after, _ := wm.Space().Get(w1)

	if after.X-before.X != 1920 {
		t.Errorf("expected window x to shift by 1920, got delta %d (before=%+v after=%+v)", after.X-before.X, before, after)
	}
}

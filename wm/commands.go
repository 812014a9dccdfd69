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
)

// FocusWindow sets keyboard focus to windowID on its own workspace and
// syncs the tree's active-child chain (spec.md §4.C.8), so the visible
// subtree agrees with the focused one.
func (wm *WindowManager) FocusWindow(windowID id.WindowId) error {
	mw := wm.Registry.Get(windowID)
	if mw == nil {
		return cmderr.New(cmderr.NotFound, "FocusWindow", fmt.Errorf("window %d", windowID))
	}
	w := wm.Workspaces.Get(mw.Workspace)
	if w == nil {
		return cmderr.New(cmderr.NotFound, "FocusWindow", fmt.Errorf("workspace %d", mw.Workspace))
	}
	w.SetFocus(windowID, true)
	wm.Relayout(mw.Workspace)
	wm.emit(event.WindowEv(event.WindowFocused, windowID))
	return nil
}

// MoveFocus navigates from the focused window on ws in dir. Inside a
// tabbed/stacked container this is a tab switch that may escape
// (spec.md §4.C.6); escaping means "fall through to the directional
// tree search" — MoveFocus never errors on escape, it just continues.
func (wm *WindowManager) MoveFocus(wsID id.WorkspaceId, dir layout.Direction) (id.WindowId, error) {
	w := wm.Workspaces.Get(wsID)
	if w == nil {
		return 0, cmderr.New(cmderr.NotFound, "MoveFocus", fmt.Errorf("workspace %d", wsID))
	}
	if !w.HasFocus {
		return 0, cmderr.New(cmderr.NoOp, "MoveFocus", fmt.Errorf("no focused window"))
	}
	focused := w.FocusedWindow

	if w.Layout.IsWindowInTabbedContainer(focused) {
		var escape bool
		switch dir {
		case layout.DirLeft, layout.DirUp:
			escape = w.Layout.PrevTab(focused)
		case layout.DirRight, layout.DirDown:
			escape = w.Layout.NextTab(focused)
		}
		if !escape {
			next, ok := w.Layout.FindNextFocus()
			if ok {
				w.SetFocus(next, true)
				wm.Relayout(wsID)
				wm.emit(event.WindowEv(event.WindowFocused, next))
			}
			return next, nil
		}
	}

	dest, ok := w.Layout.NeighborInDirection(focused, dir)
	if !ok {
		return 0, cmderr.New(cmderr.NoOp, "MoveFocus", fmt.Errorf("no neighbor in direction %v", dir))
	}
	w.SetFocus(dest, true)
	wm.emit(event.WindowEv(event.WindowFocused, dest))
	return dest, nil
}

// MoveFocusedWindowToWorkspace moves ws's focused window to dest. Focus
// stays in the source workspace on whatever the tree's next-focus
// candidate is after removal (spec.md scenario 5); the moved window is
// focused on its new workspace.
func (wm *WindowManager) MoveFocusedWindowToWorkspace(wsID, dest id.WorkspaceId) error {
	w := wm.Workspaces.Get(wsID)
	if w == nil {
		return cmderr.New(cmderr.NotFound, "MoveFocusedWindowToWorkspace", fmt.Errorf("workspace %d", wsID))
	}
	if !w.HasFocus {
		return cmderr.New(cmderr.NoOp, "MoveFocusedWindowToWorkspace", fmt.Errorf("no focused window"))
	}
	moved := w.FocusedWindow

	if !wm.Workspaces.MoveWindow(moved, wsID, dest) {
		return cmderr.New(cmderr.InvalidArgument, "MoveFocusedWindowToWorkspace", fmt.Errorf("destination workspace %d", dest))
	}
	wm.SetWindowWorkspace(moved, dest)

	if destWs := wm.Workspaces.Get(dest); destWs != nil {
		destWs.SetFocus(moved, true)
	}
	wm.Relayout(dest)
	wm.Relayout(wsID)
	wm.emit(event.WindowEv(event.WindowWorkspaceChanged, moved))
	log.Info("window moved to workspace", "id", moved, "from", wsID, "to", dest)
	return nil
}

// SwitchWorkspace shows ws on output (the currently active virtual
// output, per spec.md §4.I).
func (wm *WindowManager) SwitchWorkspace(wsID id.WorkspaceId, output voutput.Id) error {
	out := wm.Outputs.Get(output)
	if out == nil {
		return cmderr.New(cmderr.NotFound, "SwitchWorkspace", fmt.Errorf("virtual output %d", output))
	}
	if err := wm.Workspaces.ShowWorkspaceOnOutput(wsID, output, out.Region); err != nil {
		return cmderr.New(cmderr.NotFound, "SwitchWorkspace", err)
	}
	wm.Outputs.SetActiveWorkspace(output, wsID)
	wm.Relayout(wsID)
	wm.emit(event.WorkspaceEv(event.WorkspaceSwitched, wsID))
	return nil
}

// MoveWorkspaceToOutput rebinds wsID from its current output to dest
// (the command surface picks dest from the requested direction); its
// windows travel with it since Workspace.Area simply changes. Per
// scenario 3 this shifts every window's geometry by the delta between
// the old and new output regions once Relayout runs.
func (wm *WindowManager) MoveWorkspaceToOutput(wsID id.WorkspaceId, dest voutput.Id) error {
	w := wm.Workspaces.Get(wsID)
	if w == nil {
		return cmderr.New(cmderr.NotFound, "MoveWorkspaceToOutput", fmt.Errorf("workspace %d", wsID))
	}
	destOut := wm.Outputs.Get(dest)
	if destOut == nil {
		return cmderr.New(cmderr.NotFound, "MoveWorkspaceToOutput", fmt.Errorf("virtual output %d", dest))
	}

	var srcOutput voutput.Id
	hadSrc := w.IsVisible()
	if hadSrc {
		srcOutput = w.Location.Output
	}

	if err := wm.Workspaces.ShowWorkspaceOnOutput(wsID, dest, destOut.Region); err != nil {
		return cmderr.New(cmderr.InvalidArgument, "MoveWorkspaceToOutput", err)
	}
	wm.Outputs.SetActiveWorkspace(dest, wsID)
	if hadSrc {
		if prevOut := wm.Outputs.Get(srcOutput); prevOut != nil {
			if active, ok := prevOut.ActiveWorkspace(); ok && active == wsID {
				wm.Outputs.ClearActiveWorkspace(srcOutput)
			}
		}
	}
	wm.Relayout(wsID)
	log.Info("workspace moved to output", "workspace", wsID, "output", dest)
	return nil
}

// SetLayoutMode is the SetLayout command's mode argument.
type SetLayoutMode int

const (
	SetLayoutTabbed SetLayoutMode = iota
	SetLayoutStacked
	SetLayoutToggleSplit
)

// SetLayout applies mode at the focused window's container (spec.md
// §4.C.4/4.C.5).
func (wm *WindowManager) SetLayout(wsID id.WorkspaceId, mode SetLayoutMode) error {
	w := wm.Workspaces.Get(wsID)
	if w == nil {
		return cmderr.New(cmderr.NotFound, "SetLayout", fmt.Errorf("workspace %d", wsID))
	}
	if !w.HasFocus {
		return cmderr.New(cmderr.NoOp, "SetLayout", fmt.Errorf("no focused window"))
	}
	switch mode {
	case SetLayoutTabbed:
		w.Layout.SetContainerLayout(w.FocusedWindow, layout.Tabbed)
	case SetLayoutStacked:
		w.Layout.SetContainerLayout(w.FocusedWindow, layout.Stacked)
	case SetLayoutToggleSplit:
		w.Layout.ToggleContainerSplit(w.FocusedWindow, w.NextSplit)
	}
	wm.Relayout(wsID)
	wm.emit(event.WorkspaceEv(event.WorkspaceLayoutChanged, wsID))
	return nil
}

// FullscreenToggle toggles windowID's fullscreen state using mode as
// the scope when entering (spec.md §4.I default = VirtualOutput).
func (wm *WindowManager) FullscreenToggle(windowID id.WindowId, mode registry.FullscreenMode) error {
	mw := wm.Registry.Get(windowID)
	if mw == nil {
		return cmderr.New(cmderr.NotFound, "Fullscreen", fmt.Errorf("window %d", windowID))
	}
	on := !mw.IsFullscreen()
	physicalArea := geom.Rect{}
	if w := wm.Workspaces.Get(mw.Workspace); w != nil && w.IsVisible() {
		if out := wm.Outputs.Get(w.Location.Output); out != nil {
			physicalArea = out.Region
		}
	}
	if !wm.SetFullscreen(windowID, on, mode, physicalArea) {
		return cmderr.New(cmderr.NoOp, "Fullscreen", fmt.Errorf("no state change for window %d", windowID))
	}
	return nil
}

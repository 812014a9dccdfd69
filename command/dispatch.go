package command

import (
	"fmt"

	"github.com/wegel/stilch-sub001/cmderr"
	"github.com/wegel/stilch-sub001/geom"
	"github.com/wegel/stilch-sub001/id"
	"github.com/wegel/stilch-sub001/voutput"
	"github.com/wegel/stilch-sub001/wm"
)

// Dispatcher interprets decoded Requests against a WindowManager facade.
// It is the only thing that should run on the single dispatch goroutine
// (spec.md §5); every method assumes exclusive access to wm for its
// duration and must not be called concurrently with another Dispatch.
type Dispatcher struct {
	WM *wm.WindowManager

	// ActiveOutput is the virtual output every unscoped command
	// (SwitchWorkspace, MoveFocus, SetLayout, ...) implicitly targets
	// (spec.md §4.I).
	ActiveOutput voutput.Id

	// CursorX/CursorY back GetCursorPosition/MoveMouse: test-only cursor
	// state with no further semantics (spec.md §4.I lists them as
	// "queries and cursor control for tests").
	CursorX, CursorY int32
}

// NewDispatcher wires a Dispatcher around an already-constructed facade.
func NewDispatcher(w *wm.WindowManager) *Dispatcher {
	return &Dispatcher{WM: w}
}

// Dispatch interprets req and returns the response to send back. It
// never panics on malformed input; every error path is surfaced as an
// Error response, per spec.md §7's propagation policy (NotFound/
// InvalidArgument reach the client, InvariantViolation never does).
func (d *Dispatcher) Dispatch(req Request) Response {
	switch req.Type {
	case "CreateWindow":
		return d.createWindow(req)
	case "DestroyWindow":
		return d.destroyWindow(req)
	case "FocusWindow":
		return d.focusWindow(req)
	case "MoveFocus":
		return d.moveFocus(req)
	case "MoveFocusedWindowToWorkspace":
		return d.moveFocusedWindowToWorkspace(req)
	case "SwitchWorkspace":
		return d.switchWorkspace(req)
	case "MoveWorkspaceToOutput":
		return d.moveWorkspaceToOutput(req)
	case "SetLayout":
		return d.setLayout(req)
	case "Fullscreen", "FullscreenContainer", "FullscreenVirtualOutput", "FullscreenPhysicalOutput":
		return d.fullscreen(req)
	case "GetWindows":
		return d.getWindows()
	case "GetWorkspaces":
		return d.getWorkspaces()
	case "GetOutputs":
		return d.getOutputs()
	case "GetFocusedWindow":
		return d.getFocusedWindow(req)
	case "GetAsciiSnapshot":
		return d.getAsciiSnapshot(req)
	case "GetCursorPosition":
		return Response{Type: "CursorPosition", CursorX: d.CursorX, CursorY: d.CursorY}
	case "MoveMouse":
		d.CursorX, d.CursorY = req.X, req.Y
		return Response{Type: "Success"}
	default:
		return errorResponse(fmt.Errorf("unknown command type %q", req.Type))
	}
}

func errorResponse(err error) Response {
	return Response{Type: "Error", Message: err.Error()}
}

func success() Response { return Response{Type: "Success"} }

// createWindow injects a synthetic window via the ASCII test backend
// (spec.md §4.I: "Test-only: inject a synthetic window record").
func (d *Dispatcher) createWindow(req Request) Response {
	ws, ok := d.focusedOrDefaultWorkspace()
	if !ok {
		return errorResponse(cmderr.New(cmderr.NotFound, "CreateWindow", fmt.Errorf("no active workspace")))
	}
	windowID, err := d.WM.AddWindow(wm.NewAsciiHandle(), ws, nil)
	if err != nil {
		return errorResponse(err)
	}
	if req.Width > 0 && req.Height > 0 {
		d.WM.ResizeWindow(windowID, geom.Rect{W: req.Width, H: req.Height})
	}
	return Response{Type: "Window", Window: d.windowRecordFor(windowID)}
}

func (d *Dispatcher) destroyWindow(req Request) Response {
	if !d.WM.RemoveWindow(req.ID) {
		return errorResponse(cmderr.New(cmderr.NotFound, "DestroyWindow", fmt.Errorf("window %d", req.ID)))
	}
	return success()
}

func (d *Dispatcher) focusWindow(req Request) Response {
	if err := d.WM.FocusWindow(req.ID); err != nil {
		return errorResponse(err)
	}
	return success()
}

func (d *Dispatcher) moveFocus(req Request) Response {
	dir, ok := parseDirection(req.Direction)
	if !ok {
		return errorResponse(cmderr.New(cmderr.InvalidArgument, "MoveFocus", fmt.Errorf("unknown direction %q", req.Direction)))
	}
	ws, ok := d.focusedOrDefaultWorkspace()
	if !ok {
		return errorResponse(cmderr.New(cmderr.NotFound, "MoveFocus", fmt.Errorf("no active workspace")))
	}
	if _, err := d.WM.MoveFocus(ws, dir); err != nil && !cmderr.Is(err, cmderr.NoOp) {
		return errorResponse(err)
	}
	return success()
}

func (d *Dispatcher) moveFocusedWindowToWorkspace(req Request) Response {
	ws, ok := d.focusedOrDefaultWorkspace()
	if !ok {
		return errorResponse(cmderr.New(cmderr.NotFound, "MoveFocusedWindowToWorkspace", fmt.Errorf("no active workspace")))
	}
	dest := id.WorkspaceId(req.Workspace)
	if err := d.WM.MoveFocusedWindowToWorkspace(ws, dest); err != nil {
		return errorResponse(err)
	}
	return success()
}

// switchWorkspace shows the 0-based workspace req.Index on the caller's
// currently active output (spec.md §4.I: "Show workspace index on the
// currently active virtual output" — index carries no output, the
// active output is always the implicit target).
func (d *Dispatcher) switchWorkspace(req Request) Response {
	ws := id.WorkspaceId(req.Index)
	if err := d.WM.SwitchWorkspace(ws, d.ActiveOutput); err != nil {
		return errorResponse(err)
	}
	return success()
}

func (d *Dispatcher) moveWorkspaceToOutput(req Request) Response {
	if _, ok := parseDirection(req.Direction); !ok {
		return errorResponse(cmderr.New(cmderr.InvalidArgument, "MoveWorkspaceToOutput", fmt.Errorf("unknown direction %q", req.Direction)))
	}
	ws, ok := d.WM.Workspaces.WorkspaceOnOutput(d.ActiveOutput)
	if !ok {
		return errorResponse(cmderr.New(cmderr.NotFound, "MoveWorkspaceToOutput", fmt.Errorf("no workspace on the active output")))
	}
	dest, ok := adjacentOutput(d.WM.Outputs.All(), d.ActiveOutput, req.Direction)
	if !ok {
		return errorResponse(cmderr.New(cmderr.NoOp, "MoveWorkspaceToOutput", fmt.Errorf("no output in direction %q", req.Direction)))
	}
	if err := d.WM.MoveWorkspaceToOutput(ws, dest); err != nil {
		return errorResponse(err)
	}
	d.ActiveOutput = dest
	return success()
}

// adjacentOutput picks the first output in All() whose region lies
// entirely in dir from current's. It reports false when no output lies
// that way; it does not pick the nearest of several candidates.
func adjacentOutput(all []*voutput.Output, current voutput.Id, dir string) (voutput.Id, bool) {
	var currentRegion geom.Rect
	found := false
	for _, o := range all {
		if o.ID == current {
			currentRegion = o.Region
			found = true
			break
		}
	}
	if !found {
		return 0, false
	}
	for _, o := range all {
		if o.ID == current {
			continue
		}
		switch dir {
		case "left":
			if o.Region.X+o.Region.W <= currentRegion.X {
				return o.ID, true
			}
		case "right":
			if o.Region.X >= currentRegion.X+currentRegion.W {
				return o.ID, true
			}
		case "up":
			if o.Region.Y+o.Region.H <= currentRegion.Y {
				return o.ID, true
			}
		case "down":
			if o.Region.Y >= currentRegion.Y+currentRegion.H {
				return o.ID, true
			}
		}
	}
	return 0, false
}

func (d *Dispatcher) setLayout(req Request) Response {
	mode, ok := parseSetLayoutMode(req.Mode)
	if !ok {
		return errorResponse(cmderr.New(cmderr.InvalidArgument, "SetLayout", fmt.Errorf("unknown mode %q", req.Mode)))
	}
	ws, ok := d.focusedOrDefaultWorkspace()
	if !ok {
		return errorResponse(cmderr.New(cmderr.NotFound, "SetLayout", fmt.Errorf("no active workspace")))
	}
	if err := d.WM.SetLayout(ws, mode); err != nil {
		return errorResponse(err)
	}
	return success()
}

func (d *Dispatcher) fullscreen(req Request) Response {
	mode := parseFullscreenMode(req.Type)
	if err := d.WM.FullscreenToggle(req.ID, mode); err != nil && !cmderr.Is(err, cmderr.NoOp) {
		return errorResponse(err)
	}
	return success()
}

func (d *Dispatcher) getWindows() Response {
	var out []WindowRecord
	for _, m := range d.WM.Registry.All() {
		focused := false
		if w := d.WM.Workspaces.Get(m.Workspace); w != nil {
			focused = w.HasFocus && w.FocusedWindow == m.ID
		}
		out = append(out, windowRecord(m, focused, d.WM.Space().IsVisible(m.ID)))
	}
	return Response{Type: "Windows", Windows: out}
}

func (d *Dispatcher) getWorkspaces() Response {
	var out []WorkspaceRecord
	for _, stats := range d.WM.Workspaces.WorkspaceStats() {
		rec := WorkspaceRecord{
			ID:          int(stats.ID) + 1,
			Name:        stats.ID.DisplayName(),
			Visible:     stats.IsVisible,
			Focused:     stats.HasFocus,
			WindowCount: stats.WindowCount,
		}
		if stats.HasOutput {
			if o := d.WM.Outputs.Get(stats.OnOutput); o != nil {
				name := o.Name
				rec.Output = &name
			}
		}
		out = append(out, rec)
	}
	return Response{Type: "Workspaces", Workspaces: out}
}

func (d *Dispatcher) getOutputs() Response {
	var out []OutputRecord
	for _, o := range d.WM.Outputs.All() {
		out = append(out, OutputRecord{
			ID: o.ID, Name: o.Name,
			X: o.Region.X, Y: o.Region.Y, Width: o.Region.W, Height: o.Region.H,
		})
	}
	return Response{Type: "Outputs", Outputs: out}
}

func (d *Dispatcher) getFocusedWindow(req Request) Response {
	ws, ok := d.focusedOrDefaultWorkspace()
	if !ok {
		return errorResponse(cmderr.New(cmderr.NotFound, "GetFocusedWindow", fmt.Errorf("no active workspace")))
	}
	w := d.WM.Workspaces.Get(ws)
	if w == nil || !w.HasFocus {
		return Response{Type: "Success"}
	}
	return Response{Type: "Window", Window: d.windowRecordFor(w.FocusedWindow), FocusedWindowID: w.FocusedWindow}
}

func (d *Dispatcher) getAsciiSnapshot(req Request) Response {
	ws, ok := d.focusedOrDefaultWorkspace()
	if !ok {
		return errorResponse(cmderr.New(cmderr.NotFound, "GetAsciiSnapshot", fmt.Errorf("no active workspace")))
	}
	lines := d.WM.GetAsciiSnapshot(ws, wm.AsciiSnapshotOptions{ShowIDs: req.ShowIDs, ShowFocus: req.ShowFocus})
	return Response{Type: "State", Snapshot: lines}
}

// focusedOrDefaultWorkspace returns the workspace currently shown on
// ActiveOutput, which every command implicitly targets (spec.md §4.I's
// commands operate on "the focused window"/"the active workspace",
// both scoped to the client's currently active output).
func (d *Dispatcher) focusedOrDefaultWorkspace() (id.WorkspaceId, bool) {
	return d.WM.Workspaces.WorkspaceOnOutput(d.ActiveOutput)
}

func (d *Dispatcher) windowRecordFor(windowID id.WindowId) *WindowRecord {
	m := d.WM.Registry.Get(windowID)
	if m == nil {
		return nil
	}
	focused := false
	if w := d.WM.Workspaces.Get(m.Workspace); w != nil {
		focused = w.HasFocus && w.FocusedWindow == windowID
	}
	rec := windowRecord(m, focused, d.WM.Space().IsVisible(windowID))
	return &rec
}

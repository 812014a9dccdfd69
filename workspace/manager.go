package workspace

import (
	"fmt"

	"github.com/wegel/stilch-sub001/geom"
	"github.com/wegel/stilch-sub001/id"
	"github.com/wegel/stilch-sub001/layout"
	"github.com/wegel/stilch-sub001/voutput"
)

// Manager owns the fixed set of workspaces (id.MaxWorkspaces of them) and
// their multiplexing onto virtual outputs.
type Manager struct {
	workspaces [id.MaxWorkspaces]*Workspace
}

// NewManager creates a Manager with id.MaxWorkspaces hidden workspaces,
// each with the given gap. ids allocates container ids for every
// workspace's layout tree.
func NewManager(gap int32, ids *id.Generator) *Manager {
	m := &Manager{}
	for i := 0; i < id.MaxWorkspaces; i++ {
		m.workspaces[i] = New(id.WorkspaceId(i), gap, ids)
	}
	return m
}

// Get returns the workspace with the given id, or nil if out of range.
func (m *Manager) Get(wsID id.WorkspaceId) *Workspace {
	if int(wsID) < 0 || int(wsID) >= id.MaxWorkspaces {
		return nil
	}
	return m.workspaces[wsID]
}

// All returns every workspace, in id order.
func (m *Manager) All() []*Workspace {
	out := make([]*Workspace, id.MaxWorkspaces)
	copy(out, m.workspaces[:])
	return out
}

// WorkspaceOnOutput returns the workspace id currently visible on
// output, if any.
func (m *Manager) WorkspaceOnOutput(output voutput.Id) (id.WorkspaceId, bool) {
	for _, ws := range m.workspaces {
		if ws.Location.Visible && ws.Location.Output == output {
			return ws.ID, true
		}
	}
	return 0, false
}

// ShowWorkspaceOnOutput hides whichever workspace was already visible on
// output, then shows wsID there with area. Returns an error if wsID is out
// of range.
func (m *Manager) ShowWorkspaceOnOutput(wsID id.WorkspaceId, output voutput.Id, area geom.Rect) error {
	target := m.Get(wsID)
	if target == nil {
		return fmt.Errorf("workspace: unknown workspace id %d", wsID)
	}

	for _, ws := range m.workspaces {
		if ws.Location.Visible && ws.Location.Output == output {
			ws.Hide()
		}
	}

	target.ShowOnOutput(output, area)
	return nil
}

// HideWorkspace takes wsID off its output.
func (m *Manager) HideWorkspace(wsID id.WorkspaceId) {
	if ws := m.Get(wsID); ws != nil {
		ws.Hide()
	}
}

// MoveWindow removes windowID from the from workspace and adds it to the
// to workspace. Returns false if either workspace id is invalid or the
// window wasn't on from.
func (m *Manager) MoveWindow(windowID id.WindowId, from, to id.WorkspaceId) bool {
	src := m.Get(from)
	dst := m.Get(to)
	if src == nil || dst == nil {
		return false
	}
	if !src.RemoveWindow(windowID) {
		return false
	}
	dst.AddWindow(windowID)
	return true
}

// MoveWindowInWorkspace moves windowID in dir within wsID's tree.
func (m *Manager) MoveWindowInWorkspace(windowID id.WindowId, wsID id.WorkspaceId, dir layout.Direction) bool {
	ws := m.Get(wsID)
	if ws == nil {
		return false
	}
	return ws.MoveWindow(windowID, dir)
}

// FindWindowWorkspace returns the workspace that currently has windowID.
func (m *Manager) FindWindowWorkspace(windowID id.WindowId) (id.WorkspaceId, bool) {
	for _, ws := range m.workspaces {
		for _, w := range ws.Windows {
			if w == windowID {
				return ws.ID, true
			}
		}
	}
	return 0, false
}

// Stats is one workspace's summary, as returned by GetWorkspaces.
type Stats struct {
	ID          id.WorkspaceId
	WindowCount int
	IsVisible   bool
	OnOutput    voutput.Id
	HasOutput   bool
	HasFocus    bool
}

// WorkspaceStats returns a Stats entry for every workspace, in id order.
func (m *Manager) WorkspaceStats() []Stats {
	out := make([]Stats, 0, id.MaxWorkspaces)
	for _, ws := range m.workspaces {
		output, hasOutput := voutput.Id(0), false
		if ws.Location.Visible {
			output, hasOutput = ws.Location.Output, true
		}
		out = append(out, Stats{
			ID:          ws.ID,
			WindowCount: ws.WindowCount(),
			IsVisible:   ws.IsVisible(),
			OnOutput:    output,
			HasOutput:   hasOutput,
			HasFocus:    ws.HasFocus,
		})
	}
	return out
}

// AssociateWithOutput records output as a hidden wsID's affinity without
// making it visible there. A visible workspace is left unchanged.
func (m *Manager) AssociateWithOutput(wsID id.WorkspaceId, output voutput.Id) {
	ws := m.Get(wsID)
	if ws == nil || ws.Location.Visible {
		return
	}
	ws.Location = Location{Visible: false, LastOutput: output, HasLast: true}
}

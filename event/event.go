// Package event is the single-threaded, registration-order fan-out bus
// core components publish state transitions on. Grounded on the
// compositor's own event dispatch: synchronous handlers, no suspension
// points, no re-entrant emission of the same event kind from within a
// handler.
package event

import (
	"fmt"

	"github.com/wegel/stilch-sub001/id"
	"github.com/wegel/stilch-sub001/voutput"
)

// WindowKind discriminates the sub-events a window can report.
type WindowKind int

const (
	WindowCreated WindowKind = iota
	WindowDestroyed
	WindowMoved
	WindowResized
	WindowFocused
	WindowUnfocused
	WindowWorkspaceChanged
	WindowFullscreenEntered
	WindowFullscreenExited
)

// WorkspaceKind discriminates workspace-level sub-events.
type WorkspaceKind int

const (
	WorkspaceSwitched WorkspaceKind = iota
	WorkspaceLayoutChanged
)

// InputKind discriminates raw input sub-events (key/pointer), carried
// through the bus for handlers that care about pre-dispatch input (e.g.
// an on-screen-display overlay) without coupling them to dispatch itself.
type InputKind int

const (
	InputKeyPress InputKind = iota
	InputKeyRelease
	InputPointerMove
	InputPointerButton
)

// LayoutKind discriminates tree-recalculation sub-events.
type LayoutKind int

const (
	LayoutRecalculationRequested LayoutKind = iota
	LayoutApplied
)

// IpcKind discriminates command-surface connection lifecycle sub-events.
type IpcKind int

const (
	IpcClientConnected IpcKind = iota
	IpcClientDisconnected
	IpcCommandReceived
)

// WorkspaceInfo is the per-workspace summary carried by a StateUpdate
// event, mirroring the GetWorkspaces record (spec.md §6).
type WorkspaceInfo struct {
	ID          id.WorkspaceId
	WindowCount int
	Visible     bool
	Focused     bool
}

// Event is a closed union: exactly one field is non-nil, selected by
// whichever constructor built it.
type Event struct {
	Window      *WindowEvent
	Workspace   *WorkspaceEvent
	Input       *InputEvent
	Layout      *LayoutEvent
	Ipc         *IpcEvent
	StateUpdate *StateUpdateEvent
}

// WindowEvent is a window lifecycle/focus/geometry transition.
type WindowEvent struct {
	Kind   WindowKind
	Window id.WindowId
}

// WorkspaceEvent is a workspace switch or layout change.
type WorkspaceEvent struct {
	Kind      WorkspaceKind
	Workspace id.WorkspaceId
}

// InputEvent is a raw key/pointer notification.
type InputEvent struct {
	Kind InputKind
}

// LayoutEvent marks a recalculation request or its completion.
type LayoutEvent struct {
	Kind LayoutKind
}

// IpcEvent is a command-surface connection lifecycle notification.
type IpcEvent struct {
	Kind         IpcKind
	ConnectionID string
}

// StateUpdateEvent is a snapshot of a virtual output's workspaces, pushed
// to IPC subscribers after a mutation batch settles.
type StateUpdateEvent struct {
	Output     voutput.Id
	Workspaces []WorkspaceInfo
}

func (e Event) kind() string {
	switch {
	case e.Window != nil:
		return "window"
	case e.Workspace != nil:
		return "workspace"
	case e.Input != nil:
		return "input"
	case e.Layout != nil:
		return "layout"
	case e.Ipc != nil:
		return "ipc"
	case e.StateUpdate != nil:
		return "state_update"
	default:
		return "empty"
	}
}

// WindowEv builds a Window event.
func WindowEv(kind WindowKind, w id.WindowId) Event {
	return Event{Window: &WindowEvent{Kind: kind, Window: w}}
}

// WorkspaceEv builds a Workspace event.
func WorkspaceEv(kind WorkspaceKind, ws id.WorkspaceId) Event {
	return Event{Workspace: &WorkspaceEvent{Kind: kind, Workspace: ws}}
}

// IpcEv builds an Ipc event.
func IpcEv(kind IpcKind, connID string) Event {
	return Event{Ipc: &IpcEvent{Kind: kind, ConnectionID: connID}}
}

// StateUpdateEv builds a StateUpdate event.
func StateUpdateEv(output voutput.Id, workspaces []WorkspaceInfo) Event {
	return Event{StateUpdate: &StateUpdateEvent{Output: output, Workspaces: workspaces}}
}

// Handler receives every event published on the Bus it's subscribed to.
type Handler func(Event)

// Bus is a synchronous, registration-order fan-out. It is not safe for
// concurrent Emit calls, matching the single-threaded cooperative core
// (spec.md §5): all mutation and event emission happens from the one
// dispatch goroutine.
type Bus struct {
	handlers []Handler
	emitting bool
}

// NewBus returns an empty Bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers h to receive every future Emit, in the order
// Subscribe was called.
func (b *Bus) Subscribe(h Handler) {
	b.handlers = append(b.handlers, h)
}

// Emit fans e out to every subscriber in registration order. Returns an
// error instead of emitting if called re-entrantly from within a handler
// (spec.md §4.H: "emission may not re-enter the same bus within a
// handler").
func (b *Bus) Emit(e Event) error {
	if b.emitting {
		return fmt.Errorf("event: re-entrant Emit of %s event from within a handler", e.kind())
	}
	b.emitting = true
	defer func() { b.emitting = false }()
	for _, h := range b.handlers {
		h(e)
	}
	return nil
}

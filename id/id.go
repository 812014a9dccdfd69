// Package id allocates the strictly-positive, monotonically increasing
// identifiers used throughout the compositor core: WindowId, ContainerId,
// and VirtualOutputId. None are ever reused within a process lifetime, and
// zero is reserved so that absence never needs a separate sentinel.
package id

import (
	"strconv"
	"sync/atomic"
)

// WindowId identifies a managed window for the lifetime of the process.
type WindowId uint64

// ContainerId identifies a layout-tree container node.
type ContainerId uint64

// VirtualOutputId identifies a virtual output.
type VirtualOutputId uint64

// Generator hands out fresh, strictly-positive ids for each of the three
// domains. A zero value is ready to use; counters start at 1.
type Generator struct {
	window    atomic.Uint64
	container atomic.Uint64
	voutput   atomic.Uint64
}

// NextWindow returns the next unused WindowId. Panics on counter overflow,
// which is treated as a programming error (spec: "Overflow is fatal").
func (g *Generator) NextWindow() WindowId {
	v := g.window.Add(1)
	if v == 0 {
		panic("id: WindowId counter overflow")
	}
	return WindowId(v)
}

// NextContainer returns the next unused ContainerId.
func (g *Generator) NextContainer() ContainerId {
	v := g.container.Add(1)
	if v == 0 {
		panic("id: ContainerId counter overflow")
	}
	return ContainerId(v)
}

// NextVirtualOutput returns the next unused VirtualOutputId.
func (g *Generator) NextVirtualOutput() VirtualOutputId {
	v := g.voutput.Add(1)
	if v == 0 {
		panic("id: VirtualOutputId counter overflow")
	}
	return VirtualOutputId(v)
}

// WorkspaceId is a small non-negative index, 0..MaxWorkspaces-1. Unlike the
// other id types it is not generator-allocated: the set of workspaces is
// fixed at startup (spec §4.E).
type WorkspaceId uint8

// MaxWorkspaces is the fixed number of workspaces the compositor manages.
const MaxWorkspaces = 10

// DisplayName returns the 1-based name shown to users: index 0 is "1",
// index 8 is "9", index 9 is "10".
func (w WorkspaceId) DisplayName() string {
	return strconv.Itoa(int(w) + 1)
}

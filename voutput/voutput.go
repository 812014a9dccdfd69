// Package voutput manages virtual outputs: logical display regions backed
// by one or more physical outputs, including splitting a physical display
// into a grid/row/column of virtual ones and merging several physical
// displays into one.
package voutput

import (
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/wegel/stilch-sub001/geom"
	"github.com/wegel/stilch-sub001/id"
)

// Id identifies a virtual output.
type Id = id.VirtualOutputId

// PhysicalId is an opaque, comparable identifier for a physical output (a
// connected display). The core never looks inside it.
type PhysicalId string

// State is whether a virtual output is currently showing a workspace.
type State struct {
	ShowingWorkspace bool
	Workspace        id.WorkspaceId
}

// Output is one virtual output: a logical region backed by one or more
// physical outputs.
type Output struct {
	ID        Id
	Name      string
	Physical  []PhysicalId
	Region    geom.Rect
	State     State
}

// ActiveWorkspace returns the workspace currently shown on this output, if
// any.
func (o *Output) ActiveWorkspace() (id.WorkspaceId, bool) {
	if !o.State.ShowingWorkspace {
		return 0, false
	}
	return o.State.Workspace, true
}

// IsEmpty reports whether no workspace is currently shown.
func (o *Output) IsEmpty() bool { return !o.State.ShowingWorkspace }

// SplitType is how split_physical subdivides a physical output's region.
type SplitType int

const (
	// SplitHorizontal divides the region into n equal contiguous columns.
	SplitHorizontal SplitType = iota
	// SplitVertical divides the region into n equal contiguous rows.
	SplitVertical
	// SplitGrid divides the region into a row-major Rows x Cols grid; n is
	// ignored for this type, Rows/Cols below are used instead.
	SplitGrid
)

// Split describes a split_physical request. Rows/Cols are only meaningful
// when Type == SplitGrid; Count is only meaningful for Horizontal/Vertical.
// Rows/Cols keep spec.md's literal field names and order (Grid(rows,
// cols)); the cell arithmetic computed from them is identical regardless
// of which field is named first.
type Split struct {
	Type  SplitType
	Count int
	Rows  int
	Cols  int
}

// Manager owns every virtual output and the physical->virtual mapping.
type Manager struct {
	outputs        map[Id]*Output
	nextID         *id.Generator
	physicalToVirt map[PhysicalId][]Id
}

// New returns an empty Manager. ids allocates VirtualOutputId values.
func New(ids *id.Generator) *Manager {
	return &Manager{
		outputs:        make(map[Id]*Output),
		nextID:         ids,
		physicalToVirt: make(map[PhysicalId][]Id),
	}
}

// CreateFromPhysical creates a single virtual output spanning the whole of
// physical's logical region.
func (m *Manager) CreateFromPhysical(physical PhysicalId, region geom.Rect) Id {
	voID := m.nextID.NextVirtualOutput()
	out := &Output{ID: voID, Name: virtualName(voID), Physical: []PhysicalId{physical}, Region: region}
	m.outputs[voID] = out
	m.physicalToVirt[physical] = append(m.physicalToVirt[physical], voID)
	log.Debug("virtual output created", "id", voID, "physical", physical, "region", region)
	return voID
}

// SplitPhysical replaces any existing virtual outputs backed by physical
// with count new ones (or Rows*Cols for SplitGrid), carved out of region
// per split.Type.
func (m *Manager) SplitPhysical(physical PhysicalId, region geom.Rect, split Split) []Id {
	m.removePhysicalMapping(physical)

	var regions []geom.Rect
	switch split.Type {
	case SplitHorizontal:
		regions = geom.SplitHorizontal(region, split.Count, 0)
	case SplitVertical:
		regions = geom.SplitVertical(region, split.Count, 0)
	case SplitGrid:
		regions = geom.Grid(region, split.Rows, split.Cols)
	}

	ids := make([]Id, 0, len(regions))
	for _, r := range regions {
		voID := m.nextID.NextVirtualOutput()
		m.outputs[voID] = &Output{ID: voID, Name: virtualName(voID), Physical: []PhysicalId{physical}, Region: r}
		ids = append(ids, voID)
	}
	m.physicalToVirt[physical] = append([]Id(nil), ids...)
	log.Debug("physical output split", "physical", physical, "count", len(ids))
	return ids
}

// MergePhysical merges several (physical, region) pairs into a single
// virtual output whose region is their bounding box, replacing any
// existing virtual outputs backed by any of them.
func (m *Manager) MergePhysical(outputs []PhysicalRegion) Id {
	for _, o := range outputs {
		m.removePhysicalMapping(o.Physical)
	}

	rects := make([]geom.Rect, len(outputs))
	for i, o := range outputs {
		rects[i] = o.Region
	}

	voID := m.nextID.NextVirtualOutput()
	physicals := make([]PhysicalId, len(outputs))
	for i, o := range outputs {
		physicals[i] = o.Physical
	}
	out := &Output{ID: voID, Name: "virtual-merged-" + virtualName(voID), Physical: physicals, Region: geom.Union(rects)}
	m.outputs[voID] = out
	for _, p := range physicals {
		m.physicalToVirt[p] = append(m.physicalToVirt[p], voID)
	}
	log.Debug("physical outputs merged", "count", len(outputs), "virtual_output", voID)
	return voID
}

// PhysicalRegion pairs a physical output with its logical region, the
// input shape MergePhysical needs.
type PhysicalRegion struct {
	Physical PhysicalId
	Region   geom.Rect
}

func (m *Manager) removePhysicalMapping(physical PhysicalId) {
	existing, ok := m.physicalToVirt[physical]
	if !ok {
		return
	}
	for _, voID := range existing {
		delete(m.outputs, voID)
	}
	delete(m.physicalToVirt, physical)
}

// Get returns the virtual output for id, or nil.
func (m *Manager) Get(voID Id) *Output { return m.outputs[voID] }

// All returns every virtual output, in no particular order.
func (m *Manager) All() []*Output {
	out := make([]*Output, 0, len(m.outputs))
	for _, o := range m.outputs {
		out = append(out, o)
	}
	return out
}

// SetActiveWorkspace marks voID as showing ws.
func (m *Manager) SetActiveWorkspace(voID Id, ws id.WorkspaceId) {
	if o, ok := m.outputs[voID]; ok {
		o.State = State{ShowingWorkspace: true, Workspace: ws}
	}
}

// ClearActiveWorkspace marks voID as showing nothing.
func (m *Manager) ClearActiveWorkspace(voID Id) {
	if o, ok := m.outputs[voID]; ok {
		o.State = State{}
	}
}

// RemovePhysicalOutput removes every virtual output backed by physical and
// sweeps each removed virtual output's id out of the mappings of the other
// physical outputs that backed it (the case where a merge had spanned
// them), returning the removed ids.
func (m *Manager) RemovePhysicalOutput(physical PhysicalId) []Id {
	existing, ok := m.physicalToVirt[physical]
	if !ok {
		return nil
	}
	delete(m.physicalToVirt, physical)

	removed := make([]Id, 0, len(existing))
	for _, voID := range existing {
		out, ok := m.outputs[voID]
		if !ok {
			continue
		}
		delete(m.outputs, voID)
		removed = append(removed, voID)

		for _, other := range out.Physical {
			if other == physical {
				continue
			}
			ids := m.physicalToVirt[other]
			for i, oid := range ids {
				if oid == voID {
					m.physicalToVirt[other] = append(ids[:i], ids[i+1:]...)
					break
				}
			}
		}
	}
	log.Debug("physical output removed", "physical", physical, "virtual_outputs_removed", len(removed))
	return removed
}

// VirtualOutputsForPhysical returns the virtual outputs currently backed by
// physical.
func (m *Manager) VirtualOutputsForPhysical(physical PhysicalId) []Id {
	return append([]Id(nil), m.physicalToVirt[physical]...)
}

func virtualName(voID Id) string {
	return "virtual-" + strconv.FormatUint(uint64(voID), 10)
}

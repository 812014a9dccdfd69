package voutput

import (
	"testing"

	"github.com/wegel/stilch-sub001/geom"
	"github.com/wegel/stilch-sub001/id"
)

// TestSplitPhysicalHorizontal is spec scenario 6's horizontal half: a
// 3840x2160 physical output split into 2 columns.
func TestSplitPhysicalHorizontal(t *testing.T) {
	var gen id.Generator
	m := New(&gen)
	region := geom.Rect{X: 0, Y: 0, W: 3840, H: 2160}

	ids := m.SplitPhysical("DP-1", region, Split{Type: SplitHorizontal, Count: 2})
	if len(ids) != 2 {
		t.Fatalf("expected 2 virtual outputs, got %d", len(ids))
	}

	want := []geom.Rect{
		{X: 0, Y: 0, W: 1920, H: 2160},
		{X: 1920, Y: 0, W: 1920, H: 2160},
	}
	for i, voID := range ids {
		got := m.Get(voID).Region
		if got != want[i] {
			t.Errorf("output %d region = %+v, want %+v", i, got, want[i])
		}
	}
}

// TestSplitPhysicalGrid is spec scenario 6's grid half: a 2x2 grid split of
// a 3840x2160 region into four 1920x1080 regions, row-major.
func TestSplitPhysicalGrid(t *testing.T) {
	var gen id.Generator
	m := New(&gen)
	region := geom.Rect{X: 0, Y: 0, W: 3840, H: 2160}

	ids := m.SplitPhysical("DP-1", region, Split{Type: SplitGrid, Rows: 2, Cols: 2})
	if len(ids) != 4 {
		t.Fatalf("expected 4 virtual outputs, got %d", len(ids))
	}

	want := []geom.Rect{
		{X: 0, Y: 0, W: 1920, H: 1080},
		{X: 1920, Y: 0, W: 1920, H: 1080},
		{X: 0, Y: 1080, W: 1920, H: 1080},
		{X: 1920, Y: 1080, W: 1920, H: 1080},
	}
	for i, voID := range ids {
		got := m.Get(voID).Region
		if got != want[i] {
			t.Errorf("cell %d region = %+v, want %+v", i, got, want[i])
		}
	}
}

func TestSplitPhysicalReplacesExistingMapping(t *testing.T) {
	var gen id.Generator
	m := New(&gen)
	region := geom.Rect{X: 0, Y: 0, W: 1000, H: 1000}

	first := m.CreateFromPhysical("DP-1", region)
	ids := m.SplitPhysical("DP-1", region, Split{Type: SplitHorizontal, Count: 2})

	if m.Get(first) != nil {
		t.Error("expected the original single virtual output to be replaced")
	}
	if len(m.VirtualOutputsForPhysical("DP-1")) != len(ids) {
		t.Errorf("expected physical mapping to track exactly the new outputs, got %v want %v",
			m.VirtualOutputsForPhysical("DP-1"), ids)
	}
}

func TestMergePhysicalBoundingBox(t *testing.T) {
	var gen id.Generator
	m := New(&gen)

	voID := m.MergePhysical([]PhysicalRegion{
		{Physical: "DP-1", Region: geom.Rect{X: 0, Y: 0, W: 1920, H: 1080}},
		{Physical: "DP-2", Region: geom.Rect{X: 1920, Y: 0, W: 1920, H: 1080}},
	})

	want := geom.Rect{X: 0, Y: 0, W: 3840, H: 1080}
	got := m.Get(voID).Region
	if got != want {
		t.Errorf("merged region = %+v, want %+v", got, want)
	}
	if len(m.VirtualOutputsForPhysical("DP-1")) != 1 || len(m.VirtualOutputsForPhysical("DP-2")) != 1 {
		t.Error("expected both physical outputs to map to the merged virtual output")
	}
}

func TestRemovePhysicalOutputSweepsMergedReferences(t *testing.T) {
	var gen id.Generator
	m := New(&gen)

	voID := m.MergePhysical([]PhysicalRegion{
		{Physical: "DP-1", Region: geom.Rect{X: 0, Y: 0, W: 1920, H: 1080}},
		{Physical: "DP-2", Region: geom.Rect{X: 1920, Y: 0, W: 1920, H: 1080}},
	})

	removed := m.RemovePhysicalOutput("DP-1")
	if len(removed) != 1 || removed[0] != voID {
		t.Fatalf("expected the merged virtual output to be removed, got %v", removed)
	}
	if m.Get(voID) != nil {
		t.Error("expected the merged virtual output to be gone")
	}
	if len(m.VirtualOutputsForPhysical("DP-2")) != 0 {
		t.Error("expected DP-2's mapping to no longer reference the removed virtual output")
	}
}

func TestRemovePhysicalOutputUnknownIsNoop(t *testing.T) {
	var gen id.Generator
	m := New(&gen)
	if removed := m.RemovePhysicalOutput("nope"); removed != nil {
		t.Errorf("expected nil for an unknown physical output, got %v", removed)
	}
}

func TestSetAndClearActiveWorkspace(t *testing.T) {
	var gen id.Generator
	m := New(&gen)
	voID := m.CreateFromPhysical("DP-1", geom.Rect{X: 0, Y: 0, W: 100, H: 100})

	m.SetActiveWorkspace(voID, 3)
	ws, ok := m.Get(voID).ActiveWorkspace()
	if !ok || ws != 3 {
		t.Fatalf("ActiveWorkspace() = %v, %v; want 3, true", ws, ok)
	}

	m.ClearActiveWorkspace(voID)
	if !m.Get(voID).IsEmpty() {
		t.Error("expected output to be empty after clearing its active workspace")
	}
}

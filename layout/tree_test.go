package layout

import (
	"testing"

	"github.com/wegel/stilch-sub001/geom"
	"github.com/wegel/stilch-sub001/id"
)

func newTestTree(area geom.Rect, gap int32) (*Tree, *id.Generator) {
	var gen id.Generator
	return New(&gen, area, gap), &gen
}

// TestThreeWindowVerticalToTabbedToSplit is spec scenario 1: three windows
// split into equal horizontal panes, then tabbed, with MoveFocus{left}
// walking tabs and escaping at the boundary.
func TestThreeWindowVerticalToTabbedToSplit(t *testing.T) {
	tr, _ := newTestTree(geom.Rect{X: 0, Y: 0, W: 3840, H: 2160}, 0)

	tr.AddWindow(1, SplitHorizontal)
	tr.AddWindow(2, SplitHorizontal)
	tr.AddWindow(3, SplitHorizontal)

	want := map[id.WindowId]geom.Rect{
		1: {X: 0, Y: 0, W: 1280, H: 2160},
		2: {X: 1280, Y: 0, W: 1280, H: 2160},
		3: {X: 2560, Y: 0, W: 1280, H: 2160},
	}
	for w, rect := range want {
		got, ok := tr.GetWindowGeometry(w)
		if !ok || got != rect {
			t.Fatalf("window %d geometry = %+v, ok=%v want %+v", w, got, ok, rect)
		}
	}

	tr.SetContainerLayout(3, Tabbed)

	visible := tr.GetVisibleGeometries()
	if len(visible) != 1 || visible[0].Window != 3 {
		t.Fatalf("after tabbing with W3 active, visible = %+v, want only W3", visible)
	}

	tabs := tr.FindTabbedContainers()
	if len(tabs) != 1 || len(tabs[0].Windows) != 3 {
		t.Fatalf("expected one tabbed container with 3 tabs, got %+v", tabs)
	}
	if !tabs[0].Windows[2].IsActive {
		t.Fatalf("expected W3 (last tab) active, got %+v", tabs[0].Windows)
	}

	if escape := tr.PrevTab(3); escape {
		t.Fatal("PrevTab from the last tab should switch, not escape")
	}
	tabs = tr.FindTabbedContainers()
	if !tabs[0].Windows[1].IsActive {
		t.Fatalf("expected W2 active after PrevTab, got %+v", tabs[0].Windows)
	}
	visible = tr.GetVisibleGeometries()
	if len(visible) != 1 || visible[0].Window != 2 {
		t.Fatalf("visible after PrevTab = %+v, want only W2", visible)
	}

	if escape := tr.PrevTab(2); escape {
		t.Fatal("PrevTab from the middle tab should switch, not escape")
	}
	tabs = tr.FindTabbedContainers()
	if !tabs[0].Windows[0].IsActive {
		t.Fatalf("expected W1 (first tab) active, got %+v", tabs[0].Windows)
	}

	if escape := tr.PrevTab(1); !escape {
		t.Fatal("PrevTab at the first tab should escape")
	}
	tabs = tr.FindTabbedContainers()
	if tabs[0].Windows[0].Window != 1 || !tabs[0].Windows[0].IsActive {
		t.Fatalf("escape must not change active child, got %+v", tabs[0].Windows)
	}
}

// TestCloseMiddleTab is spec scenario 4: removing the active middle tab
// reassigns activity to the right sibling.
func TestCloseMiddleTab(t *testing.T) {
	tr, _ := newTestTree(geom.Rect{X: 0, Y: 0, W: 900, H: 600}, 0)
	tr.AddWindow(1, SplitHorizontal)
	tr.AddWindow(2, SplitHorizontal)
	tr.AddWindow(3, SplitHorizontal)
	tr.SetContainerLayout(1, Tabbed)
	tr.UpdateActiveChildForWindow(2)

	tr.RemoveWindow(2)

	tabs := tr.FindTabbedContainers()
	if len(tabs) != 1 || len(tabs[0].Windows) != 2 {
		t.Fatalf("expected 2 remaining tabs, got %+v", tabs)
	}
	if tabs[0].Windows[0].Window != 1 || tabs[0].Windows[1].Window != 3 {
		t.Fatalf("expected order [1,3], got %+v", tabs[0].Windows)
	}
	if !tabs[0].Windows[1].IsActive {
		t.Fatalf("expected right sibling (3) active after closing middle tab, got %+v", tabs[0].Windows)
	}
}

func TestAddRemoveRoundTrip(t *testing.T) {
	tr, _ := newTestTree(geom.Rect{X: 0, Y: 0, W: 1000, H: 1000}, 10)
	tr.AddWindow(1, SplitHorizontal)
	tr.AddWindow(2, SplitHorizontal)
	before := tr.GetAllGeometries()

	tr.AddWindow(3, SplitVertical)
	tr.RemoveWindow(3)

	after := tr.GetAllGeometries()
	if len(before) != len(after) {
		t.Fatalf("round trip changed window count: before=%v after=%v", before, after)
	}
	for _, b := range before {
		got, ok := tr.GetWindowGeometry(b.Window)
		if !ok || got != b.Rect {
			t.Errorf("window %d geometry changed across add/remove round trip: got %+v, want %+v", b.Window, got, b.Rect)
		}
	}
}

func TestRemoveLastWindowEmptiesTree(t *testing.T) {
	tr, _ := newTestTree(geom.Rect{X: 0, Y: 0, W: 100, H: 100}, 0)
	tr.AddWindow(1, SplitHorizontal)
	tr.RemoveWindow(1)
	if !tr.IsEmpty() {
		t.Fatal("expected tree to be empty after removing its only window")
	}
	if _, ok := tr.FindNextFocus(); ok {
		t.Error("expected no next focus in an empty tree")
	}
}

func TestToggleContainerSplitIsInvolution(t *testing.T) {
	tr, _ := newTestTree(geom.Rect{X: 0, Y: 0, W: 1000, H: 1000}, 0)
	tr.AddWindow(1, SplitHorizontal)
	tr.AddWindow(2, SplitHorizontal)

	before := tr.GetAllGeometries()
	tr.ToggleContainerSplit(1, SplitHorizontal)
	tr.ToggleContainerSplit(1, SplitHorizontal)
	after := tr.GetAllGeometries()

	for i := range before {
		if before[i] != after[i] {
			t.Errorf("toggle twice changed geometry: before=%+v after=%+v", before[i], after[i])
		}
	}
}

// TestNestedSplitOnOppositeDirection covers 4.C.1's fourth insertion case:
// requesting the opposite orientation from the existing root container
// wraps the whole tree in a new container of the new direction, rather than
// appending as a sibling.
func TestNestedSplitOnOppositeDirection(t *testing.T) {
	tr, _ := newTestTree(geom.Rect{X: 0, Y: 0, W: 1000, H: 1000}, 0)
	tr.AddWindow(1, SplitHorizontal)
	tr.AddWindow(2, SplitHorizontal)
	tr.AddWindow(3, SplitVertical)

	g1, _ := tr.GetWindowGeometry(1)
	g2, _ := tr.GetWindowGeometry(2)
	g3, ok := tr.GetWindowGeometry(3)
	if !ok {
		t.Fatal("window 3 missing")
	}

	if g3.W != 1000 || g3.H != 500 {
		t.Fatalf("expected window 3 to occupy the full-width bottom half, got %+v", g3)
	}
	if g1.H != 500 || g2.H != 500 || g1.W != 500 || g2.W != 500 {
		t.Fatalf("expected the old horizontal pair squeezed into the top half, got g1=%+v g2=%+v", g1, g2)
	}
}

func TestTabbedGeometryReservesTabBar(t *testing.T) {
	tr, _ := newTestTree(geom.Rect{X: 0, Y: 0, W: 800, H: 600}, 0)
	tr.AddWindow(1, SplitHorizontal)
	tr.AddWindow(2, SplitHorizontal)
	tr.SetContainerLayout(1, Tabbed)

	got, _ := tr.GetWindowGeometry(1)
	if got.Y != HTab {
		t.Errorf("expected tabbed child to start below the tab bar at y=%d, got y=%d", HTab, got.Y)
	}
	if got.H != 600-HTab {
		t.Errorf("expected tabbed child height reduced by the tab bar, got %d", got.H)
	}
}

func TestStackedGeometryReservesOneTitleBarPerChild(t *testing.T) {
	tr, _ := newTestTree(geom.Rect{X: 0, Y: 0, W: 800, H: 600}, 0)
	tr.AddWindow(1, SplitHorizontal)
	tr.AddWindow(2, SplitHorizontal)
	tr.AddWindow(3, SplitHorizontal)
	tr.SetContainerLayout(1, Stacked)

	got, _ := tr.GetWindowGeometry(1)
	want := int32(3) * HTab
	if got.Y != want {
		t.Errorf("expected stacked child to start below 3 title bars at y=%d, got y=%d", want, got.Y)
	}
}

func TestMoveWindowDirectional(t *testing.T) {
	tr, _ := newTestTree(geom.Rect{X: 0, Y: 0, W: 3000, H: 1000}, 0)
	tr.AddWindow(1, SplitHorizontal)
	tr.AddWindow(2, SplitHorizontal)
	tr.AddWindow(3, SplitHorizontal)

	g1Before, _ := tr.GetWindowGeometry(1)
	g2Before, _ := tr.GetWindowGeometry(2)

	if ok := tr.MoveWindow(1, DirRight); !ok {
		t.Fatal("expected window 1 to have a right neighbor")
	}

	g1After, _ := tr.GetWindowGeometry(1)
	g2After, _ := tr.GetWindowGeometry(2)
	if g1After != g2Before {
		t.Errorf("expected window 1 to take window 2's old slot %+v, got %+v", g2Before, g1After)
	}
	if g2After != g1Before {
		t.Errorf("expected window 2 to take window 1's old slot %+v, got %+v", g1Before, g2After)
	}

	if ok := tr.MoveWindow(1, DirLeft); !ok {
		t.Fatal("expected a left neighbor after the first move")
	}

	if ok := tr.MoveWindow(99, DirLeft); ok {
		t.Error("expected MoveWindow on an unknown window id to fail")
	}
}

func TestMoveWindowNoNeighborFails(t *testing.T) {
	tr, _ := newTestTree(geom.Rect{X: 0, Y: 0, W: 1000, H: 1000}, 0)
	tr.AddWindow(1, SplitHorizontal)
	if ok := tr.MoveWindow(1, DirRight); ok {
		t.Error("expected no neighbor to move into")
	}
}

func TestFindNextFocusFollowsActiveChild(t *testing.T) {
	tr, _ := newTestTree(geom.Rect{X: 0, Y: 0, W: 900, H: 600}, 0)
	tr.AddWindow(1, SplitHorizontal)
	tr.AddWindow(2, SplitHorizontal)
	tr.SetContainerLayout(1, Tabbed)
	tr.UpdateActiveChildForWindow(2)

	got, ok := tr.FindNextFocus()
	if !ok || got != 2 {
		t.Errorf("FindNextFocus() = %v, %v; want 2, true", got, ok)
	}
}

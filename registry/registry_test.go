package registry

import (
	"testing"

	"github.com/wegel/stilch-sub001/geom"
	"github.com/wegel/stilch-sub001/id"
)

type fakeHandle struct{ n int }

func (f *fakeHandle) Configure(geom.Size, bool) error { return nil }
func (f *fakeHandle) Close() error                    { return nil }

func TestInsertAndGet(t *testing.T) {
	r := New()
	w := &ManagedWindow{ID: 1, Handle: &fakeHandle{1}, Workspace: 0}
	r.Insert(w)

	got := r.Get(1)
	if got == nil || got.ID != 1 {
		t.Fatalf("Get(1) = %+v, want window 1", got)
	}
}

func TestRemoveClearsAllIndices(t *testing.T) {
	r := New()
	h := &fakeHandle{1}
	w := &ManagedWindow{ID: 1, Handle: h, Workspace: 0, Surface: "surf-1"}
	r.Insert(w)

	removed := r.Remove(1)
	if removed == nil || removed.ID != 1 {
		t.Fatalf("Remove(1) = %+v, want the removed window", removed)
	}
	if r.Get(1) != nil {
		t.Error("Get(1) should be nil after removal")
	}
	if _, ok := r.FindByHandle(h); ok {
		t.Error("handle index should be cleared after removal")
	}
	if _, ok := r.FindBySurface("surf-1"); ok {
		t.Error("surface index should be cleared after removal")
	}
}

func TestRemoveNonExistentIsNoOp(t *testing.T) {
	r := New()
	if got := r.Remove(99); got != nil {
		t.Errorf("Remove of missing id = %+v, want nil", got)
	}
}

func TestWindowsInWorkspace(t *testing.T) {
	r := New()
	r.Insert(&ManagedWindow{ID: 1, Handle: &fakeHandle{1}, Workspace: 0})
	r.Insert(&ManagedWindow{ID: 2, Handle: &fakeHandle{2}, Workspace: 1})
	r.Insert(&ManagedWindow{ID: 3, Handle: &fakeHandle{3}, Workspace: 0})

	got := r.WindowsInWorkspace(0)
	if len(got) != 2 {
		t.Fatalf("WindowsInWorkspace(0) returned %d windows, want 2", len(got))
	}
}

func TestFullscreenRestoresAcyclicPrevious(t *testing.T) {
	tiled := Layout{Kind: LayoutTiled, Container: 5, Geometry: geom.Rect{W: 100, H: 100}}
	prev := tiled.AsNonFullscreen()
	if prev == nil {
		t.Fatal("expected tiled layout to have a non-fullscreen projection")
	}
	fs := Layout{Kind: LayoutFullscreen, Mode: FullscreenVirtualOutput, Previous: prev}
	if fs.AsNonFullscreen() != nil {
		t.Error("a Fullscreen layout must not have a non-fullscreen projection")
	}
	restored := fs.Previous.IntoLayout()
	if restored != tiled {
		t.Errorf("restored layout = %+v, want %+v", restored, tiled)
	}
}

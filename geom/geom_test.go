package geom

import "testing"

func TestSplitHorizontalEqualThirds(t *testing.T) {
	area := Rect{X: 0, Y: 0, W: 3840, H: 2160}
	got := SplitHorizontal(area, 3, 0)
	want := []Rect{
		{X: 0, Y: 0, W: 1280, H: 2160},
		{X: 1280, Y: 0, W: 1280, H: 2160},
		{X: 2560, Y: 0, W: 1280, H: 2160},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d rects, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("rect %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestSplitHorizontalRemainderAbsorbedByLast(t *testing.T) {
	area := Rect{X: 0, Y: 0, W: 10, H: 10}
	got := SplitHorizontal(area, 3, 0)
	sum := int32(0)
	for _, r := range got {
		sum += r.W
	}
	if sum != area.W {
		t.Fatalf("widths sum to %d, want %d", sum, area.W)
	}
	if got[len(got)-1].W < got[0].W {
		t.Errorf("expected last sibling to absorb remainder, got %+v", got)
	}
}

func TestGridRowMajor(t *testing.T) {
	area := Rect{X: 0, Y: 0, W: 3840, H: 2160}
	got := Grid(area, 2, 2)
	want := []Rect{
		{X: 0, Y: 0, W: 1920, H: 1080},
		{X: 1920, Y: 0, W: 1920, H: 1080},
		{X: 0, Y: 1080, W: 1920, H: 1080},
		{X: 1920, Y: 1080, W: 1920, H: 1080},
	}
	if len(got) != 4 {
		t.Fatalf("got %d cells, want 4", len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("cell %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestUnionBoundingBox(t *testing.T) {
	rs := []Rect{
		{X: 0, Y: 0, W: 1920, H: 1080},
		{X: 1920, Y: 0, W: 1920, H: 1080},
	}
	got := Union(rs)
	want := Rect{X: 0, Y: 0, W: 3840, H: 1080}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestContains(t *testing.T) {
	outer := Rect{X: 0, Y: 0, W: 100, H: 100}
	if !outer.Contains(Rect{X: 10, Y: 10, W: 50, H: 50}) {
		t.Error("expected inner rect to be contained")
	}
	if outer.Contains(Rect{X: 10, Y: 10, W: 200, H: 50}) {
		t.Error("expected oversized rect not to be contained")
	}
}

// Package geom provides the integer rectangle and size arithmetic shared
// by the layout tree and the virtual-output manager. None of it is tied
// to any particular display protocol: a Rect is just four ints.
package geom

// Point is a logical-coordinate location.
type Point struct {
	X, Y int32
}

// Size is a width/height pair.
type Size struct {
	W, H int32
}

// Rect is an axis-aligned rectangle in logical coordinates.
type Rect struct {
	X, Y, W, H int32
}

// Size returns the rect's dimensions.
func (r Rect) Size() Size {
	return Size{W: r.W, H: r.H}
}

// Contains reports whether other lies entirely within r.
func (r Rect) Contains(other Rect) bool {
	return other.X >= r.X && other.Y >= r.Y &&
		other.X+other.W <= r.X+r.W &&
		other.Y+other.H <= r.Y+r.H
}

// Overlaps1D reports whether the two intervals [aStart, aStart+aLen) and
// [bStart, bStart+bLen) share at least one unit.
func Overlaps1D(aStart, aLen, bStart, bLen int32) bool {
	return aStart < bStart+bLen && bStart < aStart+aLen
}

// OverlapsY reports whether r and other share at least one row.
func (r Rect) OverlapsY(other Rect) bool {
	return Overlaps1D(r.Y, r.H, other.Y, other.H)
}

// OverlapsX reports whether r and other share at least one column.
func (r Rect) OverlapsX(other Rect) bool {
	return Overlaps1D(r.X, r.W, other.X, other.W)
}

// Union returns the axis-aligned bounding box of rs. Panics if rs is empty;
// callers are expected to have validated a non-empty list first.
func Union(rs []Rect) Rect {
	if len(rs) == 0 {
		panic("geom: Union of empty rect list")
	}
	minX, minY := rs[0].X, rs[0].Y
	maxX, maxY := rs[0].X+rs[0].W, rs[0].Y+rs[0].H
	for _, r := range rs[1:] {
		if r.X < minX {
			minX = r.X
		}
		if r.Y < minY {
			minY = r.Y
		}
		if r.X+r.W > maxX {
			maxX = r.X + r.W
		}
		if r.Y+r.H > maxY {
			maxY = r.Y + r.H
		}
	}
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// SplitHorizontal divides area into n equal-width columns separated by gap,
// left to right. The last column absorbs any remainder from the integer
// division (spec.md §9: remainder distribution is unspecified; this module
// picks "last sibling absorbs it").
func SplitHorizontal(area Rect, n int, gap int32) []Rect {
	if n <= 0 {
		return nil
	}
	total := area.W - gap*int32(n-1)
	each := total / int32(n)
	out := make([]Rect, n)
	x := area.X
	for i := 0; i < n; i++ {
		w := each
		if i == n-1 {
			w = area.X + area.W - x
		}
		out[i] = Rect{X: x, Y: area.Y, W: w, H: area.H}
		x += w + gap
	}
	return out
}

// SplitVertical divides area into n equal-height rows separated by gap,
// top to bottom. Symmetric to SplitHorizontal.
func SplitVertical(area Rect, n int, gap int32) []Rect {
	if n <= 0 {
		return nil
	}
	total := area.H - gap*int32(n-1)
	each := total / int32(n)
	out := make([]Rect, n)
	y := area.Y
	for i := 0; i < n; i++ {
		h := each
		if i == n-1 {
			h = area.Y + area.H - y
		}
		out[i] = Rect{X: area.X, Y: y, W: area.W, H: h}
		y += h + gap
	}
	return out
}

// Grid divides area into rows*cols cells in row-major order, each of size
// (area.W/cols, area.H/rows). The remainder (if W or H doesn't divide
// evenly) is absorbed by the last row/column, matching SplitHorizontal and
// SplitVertical's convention.
func Grid(area Rect, rows, cols int) []Rect {
	if rows <= 0 || cols <= 0 {
		return nil
	}
	rowRects := SplitVertical(area, rows, 0)
	out := make([]Rect, 0, rows*cols)
	for _, rr := range rowRects {
		out = append(out, SplitHorizontal(rr, cols, 0)...)
	}
	return out
}

// Inset shrinks r by d on every side. Negative d grows it.
func (r Rect) Inset(d int32) Rect {
	return Rect{X: r.X + d, Y: r.Y + d, W: r.W - 2*d, H: r.H - 2*d}
}

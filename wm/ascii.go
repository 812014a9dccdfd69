package wm

import (
	"strconv"

	"github.com/wegel/stilch-sub001/geom"
	"github.com/wegel/stilch-sub001/id"
	"github.com/wegel/stilch-sub001/layout"
	"github.com/wegel/stilch-sub001/registry"
)

// boxChars is one box-drawing character family (spec.md §6): the four
// corners plus horizontal/vertical edge runes.
type boxChars struct {
	tl, tr, bl, br rune
	h, v           rune
}

var (
	boxNormal     = boxChars{'┌', '┐', '└', '┘', '─', '│'}
	boxFocused    = boxChars{'╔', '╗', '╚', '╝', '═', '║'}
	boxFloating   = boxChars{'╭', '╮', '╰', '╯', '─', '│'}
	boxFullscreen = boxChars{'┏', '┓', '┗', '┛', '━', '┃'}
)

func boxFor(mw *registry.ManagedWindow, focused bool) boxChars {
	switch {
	case mw.IsFullscreen():
		return boxFullscreen
	case mw.IsFloating():
		return boxFloating
	case focused:
		return boxFocused
	default:
		return boxNormal
	}
}

// Handle implementation used only by tests and the CreateWindow
// command: it has no backing display, it just records the geometry and
// fullscreen flag it was last configured with.
type asciiHandle struct {
	size        geom.Size
	fullscreen  bool
	closed      bool
	closeErr    error
	configureFn func(geom.Size, bool) error
}

// NewAsciiHandle returns a Handle suitable for test/debug window
// injection (CreateWindow, spec.md §4.I) that has no real backend.
func NewAsciiHandle() Handle {
	return &asciiHandle{}
}

func (h *asciiHandle) Configure(size geom.Size, fullscreen bool) error {
	h.size, h.fullscreen = size, fullscreen
	if h.configureFn != nil {
		return h.configureFn(size, fullscreen)
	}
	return nil
}

func (h *asciiHandle) Close() error {
	h.closed = true
	return h.closeErr
}

// AsciiSnapshotOptions are GetAsciiSnapshot's parameters.
type AsciiSnapshotOptions struct {
	ShowIDs   bool
	ShowFocus bool
}

// GetAsciiSnapshot renders wsID's visible windows onto a rune grid sized
// to the workspace's area, per spec.md §6: box-drawing borders keyed by
// window state, a tab bar row along the top of tabbed and stacked
// containers (clipped to the container's width), and status markers
// [F] (focused, with ShowFocus), [FS] (fullscreen) and [id] (with
// ShowIDs) inside a frame. There is no urgency state, so no urgent
// marker is drawn.
func (wm *WindowManager) GetAsciiSnapshot(wsID id.WorkspaceId, opts AsciiSnapshotOptions) []string {
	w := wm.Workspaces.Get(wsID)
	if w == nil {
		return nil
	}
	area := w.Area
	if area.W <= 0 || area.H <= 0 {
		return nil
	}
	grid := make([][]rune, area.H)
	for y := range grid {
		grid[y] = make([]rune, area.W)
		for x := range grid[y] {
			grid[y][x] = ' '
		}
	}
	put := func(x, y int32, r rune) {
		if y >= 0 && y < area.H && x >= 0 && x < area.W {
			grid[y][x] = r
		}
	}
	putStr := func(x, y int32, s string) {
		for i, r := range s {
			put(x+int32(i), y, r)
		}
	}

	for _, wg := range w.Layout.GetVisibleGeometries() {
		mw := wm.Registry.Get(wg.Window)
		if mw == nil {
			continue
		}
		r := wg.Rect
		lx, ly := r.X-area.X, r.Y-area.Y
		rx, by := lx+r.W-1, ly+r.H-1
		focused := opts.ShowFocus && w.HasFocus && w.FocusedWindow == wg.Window
		bc := boxFor(mw, focused)

		put(lx, ly, bc.tl)
		put(rx, ly, bc.tr)
		put(lx, by, bc.bl)
		put(rx, by, bc.br)
		for x := lx + 1; x < rx; x++ {
			put(x, ly, bc.h)
			put(x, by, bc.h)
		}
		for y := ly + 1; y < by; y++ {
			put(lx, y, bc.v)
			put(rx, y, bc.v)
		}

		var status string
		if focused {
			status += "[F]"
		}
		if mw.IsFullscreen() {
			status += "[FS]"
		}
		if opts.ShowIDs {
			status += "[" + strconv.FormatUint(uint64(wg.Window), 10) + "]"
		}
		if status != "" {
			putStr(lx+1, ly+(by-ly)/2, status)
		}
	}

	drawTitleBar := func(tc layout.TabbedContainer) {
		barY := tc.Geometry.Y - area.Y
		if barY < 0 {
			return
		}
		x := tc.Geometry.X - area.X
		right := x + tc.Geometry.W
		for _, tab := range tc.Windows {
			label := "[" + strconv.FormatUint(uint64(tab.Window), 10)
			if tab.IsActive {
				label += "*"
			}
			label += "]"
			for _, r := range label {
				if x >= right {
					return
				}
				put(x, barY, r)
				x++
			}
		}
	}
	for _, tc := range w.Layout.FindTabbedContainers() {
		drawTitleBar(tc)
	}
	for _, sc := range w.Layout.FindStackedContainers() {
		drawTitleBar(sc)
	}

	lines := make([]string, area.H)
	for y, row := range grid {
		lines[y] = string(row)
	}
	return lines
}

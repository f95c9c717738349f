// Package tab implements the pane-tiling engine: splitting, resizing,
// closing and focus-moving panes on a tab's rectangular canvas.
package tab

import (
	"bytes"
	"time"

	"github.com/gridmux/gridmux/internal/grid"
	"github.com/gridmux/gridmux/internal/messages"
)

const (
	minPaneWidth  = 4
	minPaneHeight = 3

	// cursorHeightWidthRatio compensates for a terminal glyph's aspect ratio
	// when comparing a pane's rows against its columns to decide split
	// orientation.
	cursorHeightWidthRatio = 4

	resizeStepCols = 10
	resizeStepRows = 2
)

// Pane is a rectangle on a tab's canvas backed by one PTY's Grid.
type Pane struct {
	ID   messages.PaneID
	X, Y int
	Cols, Rows int

	MaxWidth, MaxHeight *int
	Selectable          bool
	InvisibleBorders    bool
	ActiveAt            time.Time

	Grid *grid.Grid

	overridden   bool
	savedX       int
	savedY       int
	savedCols    int
	savedRows    int

	lastRenderVersion uint64
	forceRender       bool
}

// NewPane creates a terminal pane backed by a fresh Grid sized to the
// pane's rectangle.
func NewPane(id messages.PaneID, x, y, cols, rows int) *Pane {
	return &Pane{
		ID:          id,
		X:           x,
		Y:           y,
		Cols:        cols,
		Rows:        rows,
		Selectable:  true,
		ActiveAt:    time.Now(),
		Grid:        grid.New(cols, rows),
		forceRender: true,
	}
}

// Rect returns the pane's current geometry as (x, y, cols, rows).
func (p *Pane) Rect() (int, int, int, int) {
	return p.X, p.Y, p.Cols, p.Rows
}

// ChangePosAndSize relocates and resizes the pane, reflowing its Grid to
// the new dimensions.
func (p *Pane) ChangePosAndSize(x, y, cols, rows int) {
	p.X, p.Y = x, y
	if cols != p.Cols || rows != p.Rows {
		p.Cols, p.Rows = cols, rows
		if p.Grid != nil {
			p.Grid.Resize(rows, cols)
		}
	}
}

func (p *Pane) IncreaseWidth(n int)  { p.ChangePosAndSize(p.X, p.Y, p.Cols+n, p.Rows) }
func (p *Pane) ReduceWidth(n int)    { p.ChangePosAndSize(p.X, p.Y, p.Cols-n, p.Rows) }
func (p *Pane) IncreaseHeight(n int) { p.ChangePosAndSize(p.X, p.Y, p.Cols, p.Rows+n) }
func (p *Pane) ReduceHeight(n int)   { p.ChangePosAndSize(p.X, p.Y, p.Cols, p.Rows-n) }

// PushRight moves the pane's left edge right by n, shrinking its width
// (used when a neighbor to its left grows into it).
func (p *Pane) PushRight(n int) { p.ChangePosAndSize(p.X+n, p.Y, p.Cols-n, p.Rows) }

// PullLeft moves the pane's left edge left by n, growing its width.
func (p *Pane) PullLeft(n int) { p.ChangePosAndSize(p.X-n, p.Y, p.Cols+n, p.Rows) }

// PushDown moves the pane's top edge down by n, shrinking its height.
func (p *Pane) PushDown(n int) { p.ChangePosAndSize(p.X, p.Y+n, p.Cols, p.Rows-n) }

// PullUp moves the pane's top edge up by n, growing its height.
func (p *Pane) PullUp(n int) { p.ChangePosAndSize(p.X, p.Y-n, p.Cols, p.Rows+n) }

// OverrideSizeAndPosition saves the pane's current geometry and applies a
// new one, used to expand a pane to the full canvas in fullscreen mode.
func (p *Pane) OverrideSizeAndPosition(x, y, cols, rows int) {
	if !p.overridden {
		p.savedX, p.savedY, p.savedCols, p.savedRows = p.X, p.Y, p.Cols, p.Rows
		p.overridden = true
	}
	p.ChangePosAndSize(x, y, cols, rows)
}

// ResetSizeAndPositionOverride restores the geometry saved before the most
// recent OverrideSizeAndPosition call.
func (p *Pane) ResetSizeAndPositionOverride() {
	if !p.overridden {
		return
	}
	p.overridden = false
	p.ChangePosAndSize(p.savedX, p.savedY, p.savedCols, p.savedRows)
}

func (p *Pane) SetSelectable(selectable bool) { p.Selectable = selectable }

// ShouldRender reports whether the pane's Grid content changed since the
// last Render call (or a fresh pane / post-resize forced refresh).
func (p *Pane) ShouldRender() bool {
	if p.forceRender {
		return true
	}
	if p.Grid == nil {
		return false
	}
	return p.Grid.Version() != p.lastRenderVersion
}

func (p *Pane) SetShouldRender(force bool) { p.forceRender = force }

// Render returns a self-contained VT fragment starting at (0,0) of the
// pane, or ok=false when nothing changed since the last call.
func (p *Pane) Render() (frame string, ok bool) {
	if !p.ShouldRender() {
		return "", false
	}
	p.forceRender = false
	if p.Grid == nil {
		return "", false
	}
	p.lastRenderVersion = p.Grid.Version()
	return p.Grid.Render(), true
}

var (
	cursorUpApp    = []byte{0x1b, 'O', 'A'}
	cursorDownApp  = []byte{0x1b, 'O', 'B'}
	cursorRightApp = []byte{0x1b, 'O', 'C'}
	cursorLeftApp  = []byte{0x1b, 'O', 'D'}
)

// AdjustInputToTerminal rewrites cursor-key escape sequences to their
// application-mode form (SS3 instead of CSI) when the pane's Grid is in
// DECCKM application cursor-key mode.
func (p *Pane) AdjustInputToTerminal(data []byte) []byte {
	if p.Grid == nil || !p.Grid.CursorKeyMode {
		return data
	}
	data = bytes.ReplaceAll(data, []byte{0x1b, '[', 'A'}, cursorUpApp)
	data = bytes.ReplaceAll(data, []byte{0x1b, '[', 'B'}, cursorDownApp)
	data = bytes.ReplaceAll(data, []byte{0x1b, '[', 'C'}, cursorRightApp)
	data = bytes.ReplaceAll(data, []byte{0x1b, '[', 'D'}, cursorLeftApp)
	return data
}

// HandlePtyBytes feeds PTY output into the pane's Grid.
func (p *Pane) HandlePtyBytes(data []byte) {
	if p.Grid != nil {
		p.Grid.Advance(data)
	}
}

// DrainMessagesToPty returns any bytes the pane's Grid has synthesized in
// reply to a terminal query, to be written back to its PTY's stdin.
func (p *Pane) DrainMessagesToPty() [][]byte {
	if p.Grid == nil {
		return nil
	}
	return p.Grid.TakePendingPTYReplies()
}

// --- Geometric predicates, border-aware adjacency and overlap checks ---

func (p *Pane) IsDirectlyLeftOf(other *Pane) bool  { return p.X+p.Cols+1 == other.X }
func (p *Pane) IsDirectlyRightOf(other *Pane) bool { return other.IsDirectlyLeftOf(p) }
func (p *Pane) IsDirectlyAbove(other *Pane) bool   { return p.Y+p.Rows+1 == other.Y }
func (p *Pane) IsDirectlyBelow(other *Pane) bool   { return other.IsDirectlyAbove(p) }

func (p *Pane) HorizontallyOverlapsWith(other *Pane) bool {
	return p.Y < other.Y+other.Rows && other.Y < p.Y+p.Rows
}

func (p *Pane) VerticallyOverlapsWith(other *Pane) bool {
	return p.X < other.X+other.Cols && other.X < p.X+p.Cols
}

func (p *Pane) horizontalOverlapAmount(other *Pane) int {
	lo := max(p.Y, other.Y)
	hi := min(p.Y+p.Rows, other.Y+other.Rows)
	if hi <= lo {
		return 0
	}
	return hi - lo
}

func (p *Pane) verticalOverlapAmount(other *Pane) int {
	lo := max(p.X, other.X)
	hi := min(p.X+p.Cols, other.X+other.Cols)
	if hi <= lo {
		return 0
	}
	return hi - lo
}

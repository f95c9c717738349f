package tab

import (
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/gridmux/gridmux/internal/messages"
)

// borderColorNormal and borderColorFocused pick the boundary glyph's SGR
// accent, giving the focused pane's border a distinct color.
const (
	borderColorNormal  = "\x1b[2;37m"
	borderColorFocused = "\x1b[1;36m"
)

// Render composites every non-hidden pane's self-rendered frame plus
// border glyphs into a single output frame.
func (t *Tab) Render() string {
	var buf strings.Builder
	buf.WriteString("\x1b[?25l")
	if t.ClearBeforeRender {
		buf.WriteString(ansi.ClearScreen())
		t.ClearBeforeRender = false
	}

	for _, id := range t.orderedPaneIDs() {
		if t.hidden[id] {
			continue
		}
		p := t.panes[id]
		frame, ok := p.Render()
		if !ok {
			continue
		}
		buf.WriteString(ansi.CursorPosition(p.X, p.Y))
		buf.WriteString("\x1b[0m")
		buf.WriteString(positionFragment(frame, p.X, p.Y))
	}

	buf.WriteString(t.renderBorders())

	if active := t.ActivePane(); active != nil && active.Grid != nil {
		if x, y, visible := active.Grid.CursorCoordinates(); visible {
			buf.WriteString(active.Grid.CursorShapeSequence())
			buf.WriteString(ansi.CursorPosition(active.X+x, active.Y+y))
			buf.WriteString("\x1b[?25h")
		}
	}

	return buf.String()
}

// positionFragment re-anchors each line of a pane's self-rendered frame
// (which starts at its own local (0,0)) to the pane's canvas offset.
func positionFragment(frame string, x, y int) string {
	lines := strings.Split(frame, "\r\n")
	var buf strings.Builder
	for i, line := range lines {
		buf.WriteString(ansi.CursorPosition(x, y+i))
		buf.WriteString(line)
	}
	return buf.String()
}

// renderBorders draws a one-cell boundary around every non-hidden,
// non-invisible-border pane, accenting the active pane's border.
func (t *Tab) renderBorders() string {
	var buf strings.Builder
	for _, id := range t.orderedPaneIDs() {
		if t.hidden[id] {
			continue
		}
		p := t.panes[id]
		if p.InvisibleBorders {
			continue
		}
		color := borderColorNormal
		if id == t.activePane {
			color = borderColorFocused
		}
		buf.WriteString(color)
		if p.X+p.Cols < t.Cols {
			for row := p.Y; row < p.Y+p.Rows; row++ {
				buf.WriteString(ansi.CursorPosition(p.X+p.Cols, row))
				buf.WriteString("│")
			}
		}
		if p.Y+p.Rows < t.Rows {
			buf.WriteString(ansi.CursorPosition(p.X, p.Y+p.Rows))
			buf.WriteString(strings.Repeat("─", p.Cols))
		}
	}
	buf.WriteString("\x1b[0m")
	return buf.String()
}

// EnterFullscreen hides every selectable pane but the active one and
// expands it to cover the whole canvas.
func (t *Tab) EnterFullscreen() {
	if t.Fullscreen {
		return
	}
	active := t.ActivePane()
	if active == nil {
		return
	}
	for _, id := range t.orderedPaneIDs() {
		if id == t.activePane {
			continue
		}
		p := t.panes[id]
		if p.Selectable {
			t.hidden[id] = true
			p.SetShouldRender(false)
		}
	}
	active.OverrideSizeAndPosition(0, 0, t.Cols, t.Rows)
	t.Fullscreen = true
}

// ExitFullscreen restores every hidden pane and the active pane's
// original geometry.
func (t *Tab) ExitFullscreen() {
	if !t.Fullscreen {
		return
	}
	if active := t.ActivePane(); active != nil {
		active.ResetSizeAndPositionOverride()
		active.SetShouldRender(true)
	}
	for id := range t.hidden {
		if p, ok := t.panes[id]; ok {
			p.SetShouldRender(true)
		}
	}
	t.hidden = make(map[messages.PaneID]bool)
	t.Fullscreen = false
}

// ToggleFullscreen flips fullscreen mode for the active pane.
func (t *Tab) ToggleFullscreen() {
	if t.Fullscreen {
		t.ExitFullscreen()
	} else {
		t.EnterFullscreen()
	}
}

// ToggleSyncInput flips whether keystrokes broadcast to every pane.
func (t *Tab) ToggleSyncInput() {
	t.SyncInput = !t.SyncInput
}

// ResizeWholeTab proportionally rescales every pane to a new canvas size,
// scaling positions and extents on both axes, then gives the integer
// rounding remainder to every pane whose right (bottom) edge is the
// furthest one. Returns the (colDelta, rowDelta) of the canvas and pushes
// each pane's new size through setSize.
func (t *Tab) ResizeWholeTab(newCols, newRows int, setSize func(messages.PaneID, uint16, uint16)) (int, int) {
	if newCols <= 0 || newRows <= 0 {
		return 0, 0
	}
	oldCols, oldRows := t.Cols, t.Rows
	if oldCols == 0 || oldRows == 0 {
		return 0, 0
	}

	colScale := float64(newCols) / float64(oldCols)
	rowScale := float64(newRows) / float64(oldRows)

	ids := t.orderedPaneIDs()
	for _, id := range ids {
		p := t.panes[id]
		p.X = scaleCoord(p.X, colScale)
		p.Cols = scaleExtent(p.Cols, colScale, minPaneWidth)
		p.Y = scaleCoord(p.Y, rowScale)
		p.Rows = scaleExtent(p.Rows, rowScale, minPaneHeight)
	}

	// Give any leftover canvas width/height to every pane sharing the
	// furthest right/bottom edge, so that edge lands on the new canvas edge.
	if right := rightmostPane(t.panes, ids); right != nil {
		edge := right.X + right.Cols
		if slack := newCols - edge; slack != 0 {
			for _, id := range ids {
				if p := t.panes[id]; p.X+p.Cols == edge {
					p.Cols += slack
				}
			}
		}
	}
	if bottom := bottommostPane(t.panes, ids); bottom != nil {
		edge := bottom.Y + bottom.Rows
		if slack := newRows - edge; slack != 0 {
			for _, id := range ids {
				if p := t.panes[id]; p.Y+p.Rows == edge {
					p.Rows += slack
				}
			}
		}
	}

	for _, id := range ids {
		p := t.panes[id]
		if p.Grid != nil {
			p.Grid.Resize(p.Rows, p.Cols)
		}
		if setSize != nil {
			setSize(id, uint16(p.Rows), uint16(p.Cols))
		}
	}

	t.Cols, t.Rows = newCols, newRows
	t.ClearBeforeRender = true
	return newCols - oldCols, newRows - oldRows
}

func scaleCoord(v int, scale float64) int {
	return int(float64(v)*scale + 0.5)
}

func scaleExtent(v int, scale float64, min int) int {
	scaled := int(float64(v)*scale + 0.5)
	if scaled < min {
		scaled = min
	}
	return scaled
}

func rightmostPane(panes map[messages.PaneID]*Pane, ids []messages.PaneID) *Pane {
	var best *Pane
	for _, id := range ids {
		p := panes[id]
		if best == nil || p.X+p.Cols > best.X+best.Cols {
			best = p
		}
	}
	return best
}

func bottommostPane(panes map[messages.PaneID]*Pane, ids []messages.PaneID) *Pane {
	var best *Pane
	for _, id := range ids {
		p := panes[id]
		if best == nil || p.Y+p.Rows > best.Y+best.Rows {
			best = p
		}
	}
	return best
}

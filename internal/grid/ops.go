package grid

import "github.com/mattn/go-runewidth"

// putChar prints a single character at the cursor: map through the active
// charset, handle pending-wrap and wide-character wrap, then write the
// cell in replace or insert mode and advance the cursor by the cell's
// display width.
func (g *Grid) putChar(r rune) {
	mapped := g.mapCharset(r)
	width := runewidth.RuneWidth(mapped)

	if width == 0 {
		// Combining character: dropped. No cell changes and the cursor
		// does not move.
		return
	}

	if g.CursorX == g.Width && !g.AutoWrapDisabled {
		g.wrapLine()
	}
	// Wide character would split across the last column: pad with a space
	// and wrap first, matching xterm.
	if width == 2 && g.CursorX == g.Width-1 {
		g.writeCellAt(g.CursorX, g.CursorY, Cell{Rune: ' ', Style: g.CurrentStyle, Width: 1})
		if !g.AutoWrapDisabled {
			g.wrapLine()
		}
	}

	g.precedingChar = mapped
	cell := Cell{Rune: mapped, Style: g.CurrentStyle, Width: width}

	if g.InsertMode {
		g.insertCellAt(g.CursorX, g.CursorY, cell)
	} else {
		g.writeCellAt(g.CursorX, g.CursorY, cell)
		if width == 2 && g.CursorX+1 < g.Width {
			g.writeCellAt(g.CursorX+1, g.CursorY, Cell{Width: 0})
		}
	}

	g.markDirtyLine(g.CursorY)
	g.CursorX += width
	if g.CursorX > g.Width {
		g.CursorX = g.Width
	}
}

// wrapLine implements the pending-wrap transition: scroll one line if the
// cursor is on the last viewport row, otherwise move to a fresh
// continuation row.
func (g *Grid) wrapLine() {
	g.CursorX = 0
	if g.CursorY >= g.ScrollBottom-1 {
		g.scrollUp(1)
		g.CursorY = g.ScrollBottom - 1
		if g.CursorY >= 0 && g.CursorY < len(g.Viewport) {
			g.Viewport[g.CursorY].Canonical = false
		}
	} else {
		g.CursorY++
		if g.CursorY < len(g.Viewport) {
			g.Viewport[g.CursorY].Canonical = false
		}
	}
}

func (g *Grid) writeCellAt(x, y int, cell Cell) {
	if y < 0 || y >= len(g.Viewport) {
		return
	}
	row := g.Viewport[y].Cells
	if x < 0 || x >= len(row) {
		return
	}
	// Overwriting a continuation cell clears the wide glyph before it;
	// overwriting a wide glyph clears its continuation cell.
	if row[x].Width == 0 && x > 0 {
		row[x-1] = DefaultCell()
	}
	if row[x].Width == 2 && x+1 < len(row) {
		row[x+1] = DefaultCell()
	}
	row[x] = cell
}

func (g *Grid) insertCellAt(x, y int, cell Cell) {
	if y < 0 || y >= len(g.Viewport) {
		return
	}
	row := g.Viewport[y].Cells
	if x < 0 || x >= len(row) {
		return
	}
	for i := len(row) - 1; i > x; i-- {
		row[i] = row[i-1]
	}
	row[x] = cell
	normalizeLine(row)
}

// newline implements LF/VT/FF: move down, scrolling the region if needed.
func (g *Grid) newline() {
	prevX, prevY := g.CursorX, g.CursorY
	if g.CursorY >= g.ScrollBottom-1 {
		g.scrollUp(1)
		g.CursorY = g.ScrollBottom - 1
	} else {
		g.CursorY++
	}
	g.bumpVersionIfCursorMoved(prevX, prevY)
}

// carriageReturn implements CR.
func (g *Grid) carriageReturn() {
	prevX, prevY := g.CursorX, g.CursorY
	g.CursorX = 0
	g.bumpVersionIfCursorMoved(prevX, prevY)
}

// backspace implements 0x08: pre-decrement out of pending-wrap, then move
// back one column.
func (g *Grid) backspace() {
	g.moveCursorBack(1)
}

// eraseDisplay implements CSI J.
func (g *Grid) eraseDisplay(mode int) {
	switch mode {
	case 0:
		g.eraseLine(0)
		for y := g.CursorY + 1; y < g.Height; y++ {
			g.Viewport[y] = NewBlankRow(g.Width)
		}
		g.markDirtyRange(g.CursorY, g.Height-1)
	case 1:
		for y := 0; y < g.CursorY; y++ {
			g.Viewport[y] = NewBlankRow(g.Width)
		}
		g.eraseLine(1)
		g.markDirtyRange(0, g.CursorY)
	case 2, 3:
		for y := 0; y < g.Height; y++ {
			g.Viewport[y] = NewBlankRow(g.Width)
		}
		if mode == 3 {
			g.LinesAbove = g.LinesAbove[:0]
		}
		g.markDirtyRange(0, g.Height-1)
	}
}

// eraseLine implements CSI K.
func (g *Grid) eraseLine(mode int) {
	if g.CursorY < 0 || g.CursorY >= len(g.Viewport) {
		return
	}
	row := g.Viewport[g.CursorY].Cells
	switch mode {
	case 0:
		for x := g.CursorX; x < len(row); x++ {
			row[x] = DefaultCell()
		}
	case 1:
		for x := 0; x <= g.CursorX && x < len(row); x++ {
			row[x] = DefaultCell()
		}
	case 2:
		g.Viewport[g.CursorY] = NewBlankRow(g.Width)
	}
	g.markDirtyLine(g.CursorY)
}

// fillWithE implements ESC # 8 (DECALN): fill the viewport with 'E' for
// alignment testing.
func (g *Grid) fillWithE() {
	for y := range g.Viewport {
		row := g.Viewport[y].Cells
		for x := range row {
			row[x] = Cell{Rune: 'E', Width: 1}
		}
	}
	g.markDirtyRange(0, g.Height-1)
}

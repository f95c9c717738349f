package grid

// insertLines implements CSI L: insert n blank lines at the cursor row,
// pushing the rest of the scroll region down. n is clamped to the number
// of rows between the cursor and the bottom of the region.
func (g *Grid) insertLines(n int) {
	if g.CursorY < g.ScrollTop || g.CursorY >= g.ScrollBottom {
		return
	}
	region := g.Viewport[g.CursorY:g.ScrollBottom]
	n = clampInt(n, 0, len(region))
	copy(region[n:], region[:len(region)-n])
	fillBlankRows(region[:n], g.Width)
	g.markDirtyRange(g.ScrollTop, g.ScrollBottom-1)
}

// deleteLines implements CSI M: delete n lines at the cursor row, pulling
// the rest of the scroll region up and filling the vacated rows at the
// bottom of the region with blanks.
func (g *Grid) deleteLines(n int) {
	if g.CursorY < g.ScrollTop || g.CursorY >= g.ScrollBottom {
		return
	}
	region := g.Viewport[g.CursorY:g.ScrollBottom]
	n = clampInt(n, 0, len(region))
	copy(region, region[n:])
	fillBlankRows(region[len(region)-n:], g.Width)
	g.markDirtyRange(g.ScrollTop, g.ScrollBottom-1)
}

func fillBlankRows(rows []Row, width int) {
	for i := range rows {
		rows[i] = NewBlankRow(width)
	}
}

// insertChars implements CSI @: insert n blank cells at the cursor,
// shifting the rest of the row right and truncating at width.
func (g *Grid) insertChars(n int) {
	if g.CursorY < 0 || g.CursorY >= len(g.Viewport) {
		return
	}
	line := g.Viewport[g.CursorY].Cells
	if g.CursorX >= len(line) {
		return
	}
	tail := line[g.CursorX:]
	n = clampInt(n, 0, len(tail))
	copy(tail[n:], tail[:len(tail)-n])
	fillBlankCells(tail[:n])
	normalizeLine(line)
	g.markDirtyLine(g.CursorY)
}

// deleteChars implements CSI P: delete n cells at the cursor, shifting the
// rest of the row left and filling the end with blanks.
func (g *Grid) deleteChars(n int) {
	if g.CursorY < 0 || g.CursorY >= len(g.Viewport) {
		return
	}
	line := g.Viewport[g.CursorY].Cells
	if g.CursorX >= len(line) {
		return
	}
	tail := line[g.CursorX:]
	n = clampInt(n, 0, len(tail))
	copy(tail, tail[n:])
	fillBlankCells(tail[len(tail)-n:])
	normalizeLine(line)
	g.markDirtyLine(g.CursorY)
}

// eraseChars implements CSI X: replace n cells at the cursor with blanks
// without shifting the rest of the row.
func (g *Grid) eraseChars(n int) {
	if g.CursorY < 0 || g.CursorY >= len(g.Viewport) {
		return
	}
	line := g.Viewport[g.CursorY].Cells
	if g.CursorX >= len(line) {
		return
	}
	tail := line[g.CursorX:]
	n = clampInt(n, 0, len(tail))
	fillBlankCells(tail[:n])
	normalizeLine(line)
	g.markDirtyLine(g.CursorY)
}

func fillBlankCells(cells []Cell) {
	for i := range cells {
		cells[i] = DefaultCell()
	}
}

// normalizeLine repairs wide-character pairing after an in-place edit by
// walking the row once, left to right, tracking whether the cell just
// written was a wide head expecting its Width==0 continuation next. Any
// continuation found without that expectation, or any wide head whose
// follower isn't a continuation, collapses to a blank cell.
func normalizeLine(line []Cell) {
	expectContinuation := false
	for i := range line {
		switch {
		case line[i].Width == 0 && expectContinuation:
			expectContinuation = false
		case line[i].Width == 0:
			line[i] = DefaultCell()
		case line[i].Width == 2:
			if i+1 < len(line) && line[i+1].Width == 0 {
				expectContinuation = true
			} else {
				line[i] = DefaultCell()
				expectContinuation = false
			}
		default:
			expectContinuation = false
		}
	}
}

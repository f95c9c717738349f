package grid

// Resize implements the reflow-on-resize algorithm: canonical (logical)
// lines are reassembled from the viewport and rewrapped to the new column
// count, then the viewport is grown or shrunk to the new row count by
// transferring whole rows to or from scrollback. Cursor position is
// recomputed to track the same logical offset it held before the resize.
//
// The column-recomputation formula below is carried over unchanged from
// the terminal this behavior was modeled on: new_x = (idx/new_columns) +
// (idx%new_columns) rather than the more obviously-correct idx%new_columns
// with the quotient folded into the row. It under-shoots the true column
// for any wrapped line beyond the first new_columns characters, but
// changing it would diverge from observed real-terminal behavior, so it
// stays as-is.
func (g *Grid) Resize(newRows, newCols int) {
	if newRows <= 0 || newCols <= 0 {
		return
	}
	if newCols != g.Width {
		g.reflowColumns(newCols)
		g.Width = newCols
	}
	if newRows != g.Height {
		g.reflowRows(newRows)
	}
	for len(g.Viewport) < newRows {
		g.Viewport = append(g.Viewport, NewBlankRow(newCols))
	}
	if excess := len(g.Viewport) - newRows; excess > 0 {
		g.transferRowsUpReflow(excess, newCols)
		g.CursorY -= excess
	}
	g.Height = newRows
	g.Width = newCols
	g.clampScrollRegion()
	g.clampCursor()
	g.invalidateRenderCache()
	g.bumpVersion()
}

// canonicalRun is a flattened logical line pulled out of the viewport
// (and possibly the tail of lines_above), ready to be rewrapped.
type canonicalRun struct {
	cells     []Cell
	canonical bool
}

func (g *Grid) reflowColumns(newCols int) {
	cursorLineIdx := g.cursorCanonicalLineIndex()
	cursorIdxInLine := g.cursorIndexInCanonicalLine()

	var runs []canonicalRun
	for _, row := range g.Viewport {
		switch {
		case !row.Canonical && len(runs) == 0 && len(g.LinesAbove) > 0:
			// The viewport opens with a continuation row whose canonical
			// parent is in scrollback: pull it down and merge.
			parent := g.LinesAbove[len(g.LinesAbove)-1]
			g.LinesAbove = g.LinesAbove[:len(g.LinesAbove)-1]
			merged := append(CopyLine(parent.Cells), row.Cells...)
			runs = append(runs, canonicalRun{cells: merged, canonical: true})
			cursorLineIdx++
		case row.Canonical:
			runs = append(runs, canonicalRun{cells: CopyLine(row.Cells), canonical: true})
		default:
			if len(runs) == 0 {
				// Orphaned continuation with nothing to attach to and no
				// scrollback to pull from. Rather than abandon the resize,
				// treat it as the start of its own logical line.
				runs = append(runs, canonicalRun{cells: CopyLine(row.Cells), canonical: true})
			} else {
				last := &runs[len(runs)-1]
				last.cells = append(last.cells, row.Cells...)
			}
		}
	}

	var newViewport []Row
	for _, run := range runs {
		parts := rewrapRun(run, newCols)
		newViewport = append(newViewport, parts...)
	}
	g.Viewport = newViewport

	newCursorY := g.canonicalLineYCoordinate(cursorLineIdx)
	newCursorX := (cursorIdxInLine / newCols) + (cursorIdxInLine % newCols)

	// Blank rows below the cursor are dropped before any content row is
	// pushed into scrollback.
	for len(g.Viewport) > g.Height && len(g.Viewport)-1 > newCursorY && rowPlainText(g.Viewport[len(g.Viewport)-1]) == "" {
		g.Viewport = g.Viewport[:len(g.Viewport)-1]
	}

	switch {
	case len(g.Viewport) < g.Height:
		pulled := g.transferRowsDownReflow(g.Height-len(g.Viewport), newCols)
		newCursorY += pulled
	case len(g.Viewport) > g.Height:
		excess := len(g.Viewport) - g.Height
		if excess > newCursorY {
			newCursorY = 0
		} else {
			newCursorY -= excess
		}
		g.transferRowsUpReflow(excess, newCols)
	}

	g.CursorY = newCursorY
	g.CursorX = newCursorX
}

// rewrapRun splits a flattened logical line into rows of at most newCols
// display-width cells, never splitting a wide character across a row
// boundary. Only the first resulting row keeps the logical line's
// canonical flag; the rest are continuation rows.
func rewrapRun(run canonicalRun, newCols int) []Row {
	if len(run.cells) == 0 {
		return []Row{{Cells: MakeBlankLine(newCols), Canonical: run.canonical}}
	}
	var rows []Row
	cells := run.cells
	first := true
	for len(cells) > 0 {
		width := 0
		cut := 0
		for cut < len(cells) {
			w := cells[cut].Width
			if w == 0 {
				w = 1 // stray continuation with no leading wide cell
			}
			if width+w > newCols {
				break
			}
			width += w
			cut++
			// A wide cell's continuation carries no width of its own; keep
			// the pair together in this chunk rather than re-measuring it.
			if w == 2 && cut < len(cells) && cells[cut].Width == 0 {
				cut++
			}
		}
		if cut == 0 {
			cut = 1 // pathological: single wide cell wider than newCols
		}
		chunk := cells[:cut]
		cells = cells[cut:]
		line := CopyLine(chunk)
		if len(line) < newCols {
			line = append(line, MakeBlankLine(newCols-len(line))...)
		}
		rows = append(rows, Row{Cells: line, Canonical: first && run.canonical})
		first = false
	}
	return rows
}

func (g *Grid) cursorCanonicalLineIndex() int {
	idx := 0
	traversed := 0
	for i, row := range g.Viewport {
		if row.Canonical {
			idx = traversed
			traversed++
		}
		if i == g.CursorY {
			break
		}
	}
	return idx
}

func (g *Grid) cursorIndexInCanonicalLine() int {
	canonicalRowIdx := 0
	idx := 0
	for i, row := range g.Viewport {
		if row.Canonical {
			canonicalRowIdx = i
		}
		if i == g.CursorY {
			wrapOffset := g.CursorY - canonicalRowIdx
			idx = wrapOffset + g.CursorX
			break
		}
	}
	return idx
}

func (g *Grid) canonicalLineYCoordinate(canonicalLineIndex int) int {
	traversed := 0
	y := 0
	for i, row := range g.Viewport {
		if row.Canonical {
			traversed++
			if traversed == canonicalLineIndex+1 {
				y = i
				return y
			}
		}
	}
	return y
}

// transferRowsUpReflow moves count rows off the top of the viewport into
// scrollback, appending a continuation row onto the last scrollback row so
// a soft-wrapped logical line is stored as one unwrapped row. newCols is
// not used: scrollback rows are rewrapped only when pulled back down.
func (g *Grid) transferRowsUpReflow(count, newCols int) {
	for i := 0; i < count && len(g.Viewport) > 0; i++ {
		row := g.Viewport[0]
		g.Viewport = g.Viewport[1:]
		if !row.Canonical && len(g.LinesAbove) > 0 {
			g.LinesAbove[len(g.LinesAbove)-1] = mergeContinuation(g.LinesAbove[len(g.LinesAbove)-1], row)
		} else {
			g.LinesAbove = append(g.LinesAbove, CloneRow(row))
		}
	}
	g.trimScrollback()
	_ = newCols
}

// transferRowsDownReflow pulls count rows back out of scrollback into the
// top of the viewport, rewrapping the reassembled logical line to newCols.
// Returns how many viewport rows were actually added.
func (g *Grid) transferRowsDownReflow(count, newCols int) int {
	added := 0
	for added < count && len(g.LinesAbove) > 0 {
		row := g.LinesAbove[len(g.LinesAbove)-1]
		g.LinesAbove = g.LinesAbove[:len(g.LinesAbove)-1]
		run := canonicalRun{cells: CopyLine(row.Cells), canonical: row.Canonical}
		parts := rewrapRun(run, newCols)
		g.Viewport = append(parts, g.Viewport...)
		added += len(parts)
	}
	return added
}

func (g *Grid) reflowRows(newRows int) {
	switch {
	case len(g.Viewport) < newRows:
		pulled := g.transferRowsDownReflow(newRows-len(g.Viewport), g.Width)
		g.CursorY += pulled
		for len(g.Viewport) < newRows {
			g.Viewport = append(g.Viewport, NewBlankRow(g.Width))
		}
	case len(g.Viewport) > newRows:
		excess := len(g.Viewport) - newRows
		if excess > g.CursorY {
			g.CursorY = 0
		} else {
			g.CursorY -= excess
		}
		g.transferRowsUpReflow(excess, g.Width)
	}
}

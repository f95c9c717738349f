package grid

// scrollUp scrolls the scroll region up by n lines. Lines scrolled off the
// top of the region are captured into LinesAbove, but only when the region
// spans the whole viewport top (row 0) and the grid isn't on the alt
// screen — a scroll region confined below row 0 never feeds scrollback,
// matching real terminals.
func (g *Grid) scrollUp(n int) {
	if n <= 0 {
		return
	}
	regionHeight := g.ScrollBottom - g.ScrollTop
	if n > regionHeight {
		n = regionHeight
	}

	if g.ScrollTop == 0 && !g.altScreen {
		added := 0
		for i := 0; i < n && i < len(g.Viewport); i++ {
			row := g.Viewport[i]
			if !row.Canonical && len(g.LinesAbove) > 0 {
				g.LinesAbove[len(g.LinesAbove)-1] = mergeContinuation(g.LinesAbove[len(g.LinesAbove)-1], row)
			} else {
				g.LinesAbove = append(g.LinesAbove, CloneRow(row))
			}
			added++
		}
		if added > 0 && g.ViewOffset > 0 {
			g.ViewOffset += added
			if g.ViewOffset > len(g.LinesAbove) {
				g.ViewOffset = len(g.LinesAbove)
			}
		}
		g.trimScrollback()
	}

	for i := g.ScrollTop; i < g.ScrollBottom-n; i++ {
		g.Viewport[i] = g.Viewport[i+n]
	}
	for i := g.ScrollBottom - n; i < g.ScrollBottom; i++ {
		if i >= 0 && i < len(g.Viewport) {
			g.Viewport[i] = NewBlankRow(g.Width)
		}
	}
	g.markDirtyRange(g.ScrollTop, g.ScrollBottom-1)
}

// mergeContinuation appends a continuation row's cells onto a canonical
// scrollback row, keeping a soft-wrapped logical line as one arbitrary-width
// row in scrollback.
func mergeContinuation(canonical, continuation Row) Row {
	canonical.Cells = append(canonical.Cells, continuation.Cells...)
	return canonical
}

// scrollDown scrolls the scroll region down by n lines (reverse scroll);
// no scrollback interaction.
func (g *Grid) scrollDown(n int) {
	if n <= 0 {
		return
	}
	regionHeight := g.ScrollBottom - g.ScrollTop
	if n > regionHeight {
		n = regionHeight
	}
	for i := g.ScrollBottom - 1; i >= g.ScrollTop+n; i-- {
		g.Viewport[i] = g.Viewport[i-n]
	}
	for i := g.ScrollTop; i < g.ScrollTop+n; i++ {
		if i >= 0 && i < len(g.Viewport) {
			g.Viewport[i] = NewBlankRow(g.Width)
		}
	}
	g.markDirtyRange(g.ScrollTop, g.ScrollBottom-1)
}

// ScrollViewUp scrolls the user's view up (into history) by n lines.
func (g *Grid) ScrollViewUp(n int) {
	g.scrollView(n)
}

// ScrollViewDown scrolls the user's view down (toward live) by n lines.
func (g *Grid) ScrollViewDown(n int) {
	g.scrollView(-n)
}

func (g *Grid) scrollView(delta int) {
	old := g.ViewOffset
	g.ViewOffset += delta
	if g.ViewOffset > len(g.LinesAbove) {
		g.ViewOffset = len(g.LinesAbove)
	}
	if g.ViewOffset < 0 {
		g.ViewOffset = 0
	}
	if g.ViewOffset != old {
		g.bumpVersion()
	}
}

// ResetViewport returns the user's scroll position to live (ViewOffset 0).
func (g *Grid) ResetViewport() {
	if g.ViewOffset != 0 {
		g.ViewOffset = 0
		g.bumpVersion()
	}
}

// IsScrolled reports whether the user is viewing scrollback.
func (g *Grid) IsScrolled() bool {
	return g.ViewOffset > 0
}

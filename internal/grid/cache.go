package grid

// resetRenderCache (re)allocates the dirty-line bitmap for the current
// height and marks every line dirty, forcing the next render to emit a
// full frame.
func (g *Grid) resetRenderCache() {
	g.renderDirty = make([]bool, g.Height)
	g.renderAll = true
}

// invalidateRenderCache forces the next render to treat every line as
// dirty without reallocating the bitmap, used after bulk structural
// changes (alt-screen swap, resize) where tracking individual lines isn't
// worth it.
func (g *Grid) invalidateRenderCache() {
	if len(g.renderDirty) != g.Height {
		g.renderDirty = make([]bool, g.Height)
	}
	g.renderAll = true
}

func (g *Grid) markDirtyLine(y int) {
	if y < 0 {
		return
	}
	if len(g.renderDirty) != g.Height {
		g.resetRenderCache()
		return
	}
	if y < len(g.renderDirty) {
		g.renderDirty[y] = true
	}
	g.bumpVersion()
}

func (g *Grid) markDirtyRange(top, bottom int) {
	if len(g.renderDirty) != g.Height {
		g.resetRenderCache()
		return
	}
	if top < 0 {
		top = 0
	}
	if bottom >= len(g.renderDirty) {
		bottom = len(g.renderDirty) - 1
	}
	for y := top; y <= bottom; y++ {
		g.renderDirty[y] = true
	}
	g.bumpVersion()
}

// TakeDirtyLines returns the indices of lines changed since the last call
// and clears the dirty set. If a full-frame invalidation occurred, all
// indices in [0, height) are returned.
func (g *Grid) TakeDirtyLines() []int {
	if g.renderAll || len(g.renderDirty) != g.Height {
		g.resetRenderCache()
		g.renderAll = false
		lines := make([]int, g.Height)
		for i := range lines {
			lines[i] = i
		}
		return lines
	}
	var lines []int
	for i, dirty := range g.renderDirty {
		if dirty {
			lines = append(lines, i)
			g.renderDirty[i] = false
		}
	}
	return lines
}

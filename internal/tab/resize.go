package tab

// Resize direction identifiers for the four resize_* operations.
type resizeDir int

const (
	resizeLeft resizeDir = iota
	resizeRight
	resizeUp
	resizeDown
)

// ResizeRight grows the active pane's right edge by the step size,
// shrinking it by the same step if growing isn't admissible.
func (t *Tab) ResizeRight() { t.resize(resizeRight) }
func (t *Tab) ResizeLeft()  { t.resize(resizeLeft) }
func (t *Tab) ResizeUp()    { t.resize(resizeUp) }
func (t *Tab) ResizeDown()  { t.resize(resizeDown) }

func (t *Tab) resize(dir resizeDir) {
	active := t.ActivePane()
	if active == nil {
		return
	}
	horizontal := dir == resizeLeft || dir == resizeRight
	step := resizeStepCols
	if !horizontal {
		step = resizeStepRows
	}

	chain := t.alignedChain(active, dir)
	neighbors := t.chainNeighbors(chain, dir)

	if t.canGrow(chain, neighbors, dir, step) {
		t.applyResize(chain, neighbors, dir, step)
		return
	}
	if t.canShrink(chain, neighbors, dir, step) {
		t.applyResize(chain, neighbors, dir, -step)
	}
}

// alignedChain walks up/down (for a horizontal resize) or left/right (for
// a vertical resize) from active, gathering every pane that shares
// active's edge on the resizing side and is contiguously adjacent to it.
func (t *Tab) alignedChain(active *Pane, dir resizeDir) []*Pane {
	chain := []*Pane{active}
	seen := map[*Pane]bool{active: true}

	edge := func(p *Pane) int {
		switch dir {
		case resizeRight:
			return p.X + p.Cols
		case resizeLeft:
			return p.X
		case resizeDown:
			return p.Y + p.Rows
		default: // resizeUp
			return p.Y
		}
	}
	adjacentAlong := func(a, b *Pane) bool {
		if dir == resizeLeft || dir == resizeRight {
			return a.IsDirectlyAbove(b) || a.IsDirectlyBelow(b)
		}
		return a.IsDirectlyLeftOf(b) || a.IsDirectlyRightOf(b)
	}

	changed := true
	for changed {
		changed = false
		for _, p := range t.selectablePanes() {
			if seen[p] {
				continue
			}
			if edge(p) != edge(active) {
				continue
			}
			for c := range seen {
				if adjacentAlong(c, p) {
					chain = append(chain, p)
					seen[p] = true
					changed = true
					break
				}
			}
		}
	}
	return chain
}

// chainNeighbors returns the panes directly adjacent to the chain on the
// side being resized into, each listed once.
func (t *Tab) chainNeighbors(chain []*Pane, dir resizeDir) []*Pane {
	var out []*Pane
	seen := map[*Pane]bool{}
	for _, c := range chain {
		for _, p := range t.selectablePanes() {
			if seen[p] {
				continue
			}
			var adjacent, overlap bool
			switch dir {
			case resizeRight:
				adjacent = c.IsDirectlyLeftOf(p)
				overlap = c.HorizontallyOverlapsWith(p)
			case resizeLeft:
				adjacent = c.IsDirectlyRightOf(p)
				overlap = c.HorizontallyOverlapsWith(p)
			case resizeDown:
				adjacent = c.IsDirectlyAbove(p)
				overlap = c.VerticallyOverlapsWith(p)
			case resizeUp:
				adjacent = c.IsDirectlyBelow(p)
				overlap = c.VerticallyOverlapsWith(p)
			}
			if adjacent && overlap {
				out = append(out, p)
				seen[p] = true
			}
		}
	}
	return out
}

func (t *Tab) canGrow(chain, neighbors []*Pane, dir resizeDir, step int) bool {
	if len(neighbors) == 0 {
		return false
	}
	horizontal := dir == resizeLeft || dir == resizeRight
	for _, c := range chain {
		if horizontal && c.MaxWidth != nil && c.Cols+step > *c.MaxWidth {
			return false
		}
		if !horizontal && c.MaxHeight != nil && c.Rows+step > *c.MaxHeight {
			return false
		}
	}
	for _, n := range neighbors {
		if horizontal {
			if n.Cols-step < minPaneWidth {
				return false
			}
		} else {
			if n.Rows-step < minPaneHeight {
				return false
			}
		}
	}
	return true
}

func (t *Tab) canShrink(chain, neighbors []*Pane, dir resizeDir, step int) bool {
	if len(neighbors) == 0 {
		return false
	}
	horizontal := dir == resizeLeft || dir == resizeRight
	for _, c := range chain {
		if horizontal && c.Cols-step < minPaneWidth {
			return false
		}
		if !horizontal && c.Rows-step < minPaneHeight {
			return false
		}
	}
	for _, n := range neighbors {
		if horizontal && n.MaxWidth != nil && n.Cols+step > *n.MaxWidth {
			return false
		}
		if !horizontal && n.MaxHeight != nil && n.Rows+step > *n.MaxHeight {
			return false
		}
	}
	return true
}

// applyResize grows the chain by delta on the resizing edge and shrinks
// the bordering neighbors by the same amount on their opposite edge,
// keeping the canvas tiled.
func (t *Tab) applyResize(chain, neighbors []*Pane, dir resizeDir, delta int) {
	for _, c := range chain {
		switch dir {
		case resizeRight:
			c.IncreaseWidth(delta)
		case resizeLeft:
			c.PullLeft(delta)
		case resizeDown:
			c.IncreaseHeight(delta)
		case resizeUp:
			c.PullUp(delta)
		}
	}
	for _, n := range neighbors {
		switch dir {
		case resizeRight:
			n.PushRight(delta)
		case resizeLeft:
			n.ReduceWidth(delta)
		case resizeDown:
			n.PushDown(delta)
		case resizeUp:
			n.ReduceHeight(delta)
		}
	}
}

package tab

import "github.com/gridmux/gridmux/internal/messages"

// splittable reports whether a pane is large enough to host a new split in
// either orientation.
func splittable(p *Pane) bool {
	return p.Rows > 2*minPaneHeight || p.Cols > 2*minPaneWidth
}

func weightedArea(p *Pane) int {
	return p.Rows * cursorHeightWidthRatio * p.Cols
}

// largestSplittablePane picks the pane NewPane splits: the selectable,
// splittable pane with the greatest weighted area (rows * ratio * cols).
func (t *Tab) largestSplittablePane() *Pane {
	var best *Pane
	bestArea := -1
	for _, id := range t.orderedPaneIDs() {
		p := t.panes[id]
		if !p.Selectable || t.hidden[id] || !splittable(p) {
			continue
		}
		if a := weightedArea(p); a > bestArea {
			bestArea = a
			best = p
		}
	}
	return best
}

// splitRect divides a rectangle of length total into two halves separated
// by a one-cell border. The first (top/left) half is sized as half of
// total rounded up, minus the one cell given to the border; the remainder
// goes to the second half — so on an even total the second half ends up
// one cell larger than the first.
func splitRect(total int) (first, border, second int) {
	topHalf := (total + 1) / 2
	first = topHalf - 1
	second = total - topHalf
	return first, 1, second
}

// NewPane implements automatic-placement splitting: it picks the
// largest splittable pane and splits it horizontally or vertically
// depending on its aspect ratio. If the tab has no splittable pane, the
// request is rejected and the freshly-spawned PTY is closed.
func (t *Tab) NewPane(id messages.PaneID) bool {
	if t.Fullscreen {
		t.ExitFullscreen()
	}
	target := t.largestSplittablePane()
	if target == nil {
		if t.pty != nil {
			t.pty.ClosePane(id)
		}
		return false
	}
	if target.Rows*cursorHeightWidthRatio > target.Cols && target.Rows > 2*minPaneHeight {
		return t.splitPane(target, id, false)
	}
	if target.Cols > 2*minPaneWidth {
		return t.splitPane(target, id, true)
	}
	if t.pty != nil {
		t.pty.ClosePane(id)
	}
	return false
}

// HorizontalSplit splits the active pane along a horizontal divider
// (stacking the new pane below it).
func (t *Tab) HorizontalSplit(id messages.PaneID) bool {
	if t.Fullscreen {
		t.ExitFullscreen()
	}
	active := t.ActivePane()
	if active == nil || active.Rows <= 2*minPaneHeight {
		if t.pty != nil {
			t.pty.ClosePane(id)
		}
		return false
	}
	return t.splitPane(active, id, false)
}

// VerticalSplit splits the active pane along a vertical divider (placing
// the new pane to its right).
func (t *Tab) VerticalSplit(id messages.PaneID) bool {
	if t.Fullscreen {
		t.ExitFullscreen()
	}
	active := t.ActivePane()
	if active == nil || active.Cols <= 2*minPaneWidth {
		if t.pty != nil {
			t.pty.ClosePane(id)
		}
		return false
	}
	return t.splitPane(active, id, true)
}

// splitPane halves parent's rectangle along the requested orientation,
// shrinking parent into the top/left half and placing a new pane for id
// into the bottom/right half.
func (t *Tab) splitPane(parent *Pane, id messages.PaneID, vertical bool) bool {
	var np *Pane
	if vertical {
		firstW, _, secondW := splitRect(parent.Cols)
		np = NewPane(id, parent.X+firstW+1, parent.Y, secondW, parent.Rows)
		parent.ChangePosAndSize(parent.X, parent.Y, firstW, parent.Rows)
	} else {
		firstH, _, secondH := splitRect(parent.Rows)
		np = NewPane(id, parent.X, parent.Y+firstH+1, parent.Cols, secondH)
		parent.ChangePosAndSize(parent.X, parent.Y, parent.Cols, firstH)
	}
	t.panes[id] = np
	t.activePane = id
	return true
}

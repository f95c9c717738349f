package tab

import (
	"sort"

	"github.com/gridmux/gridmux/internal/messages"
)

// ClosePane removes a pane from the tab, trying the four border-reclaiming
// strategies in order (left, right, above, below neighbors) before falling
// back to a bare removal that leaves a hole in the canvas.
func (t *Tab) ClosePane(id messages.PaneID) {
	p, ok := t.panes[id]
	if !ok {
		return
	}
	wasActive := t.activePane == id

	reclaimed := t.closeLeft(p)
	if reclaimed == nil {
		reclaimed = t.closeRight(p)
	}
	if reclaimed == nil {
		reclaimed = t.closeAbove(p)
	}
	if reclaimed == nil {
		reclaimed = t.closeBelow(p)
	}

	delete(t.panes, id)
	delete(t.hidden, id)

	if wasActive {
		t.reassignActiveAfterClose(reclaimed)
	}
}

// closeLeft tries to grow the panes directly left of p (spanning exactly
// p's top/bottom edges) rightward into p's reclaimed space.
func (t *Tab) closeLeft(p *Pane) []*Pane {
	neighbors := t.neighborsOn(p, func(q, p *Pane) bool { return q.IsDirectlyLeftOf(p) })
	if !verticallyContiguous(neighbors, p.Y, p.Y+p.Rows) {
		return nil
	}
	if !canAbsorbWidth(neighbors, p.Cols+1) {
		return nil
	}
	for _, n := range neighbors {
		n.IncreaseWidth(p.Cols + 1)
	}
	return neighbors
}

// closeRight grows the panes directly right of p leftward into its space.
func (t *Tab) closeRight(p *Pane) []*Pane {
	neighbors := t.neighborsOn(p, func(q, p *Pane) bool { return p.IsDirectlyLeftOf(q) })
	if !verticallyContiguous(neighbors, p.Y, p.Y+p.Rows) {
		return nil
	}
	if !canAbsorbWidth(neighbors, p.Cols+1) {
		return nil
	}
	for _, n := range neighbors {
		n.PullLeft(p.Cols + 1)
	}
	return neighbors
}

// closeAbove grows the panes directly above p downward into its space.
func (t *Tab) closeAbove(p *Pane) []*Pane {
	neighbors := t.neighborsOn(p, func(q, p *Pane) bool { return q.IsDirectlyAbove(p) })
	if !horizontallyContiguous(neighbors, p.X, p.X+p.Cols) {
		return nil
	}
	if !canAbsorbHeight(neighbors, p.Rows+1) {
		return nil
	}
	for _, n := range neighbors {
		n.IncreaseHeight(p.Rows + 1)
	}
	return neighbors
}

// closeBelow grows the panes directly below p upward into its space.
func (t *Tab) closeBelow(p *Pane) []*Pane {
	neighbors := t.neighborsOn(p, func(q, p *Pane) bool { return p.IsDirectlyAbove(q) })
	if !horizontallyContiguous(neighbors, p.X, p.X+p.Cols) {
		return nil
	}
	if !canAbsorbHeight(neighbors, p.Rows+1) {
		return nil
	}
	for _, n := range neighbors {
		n.PullUp(p.Rows + 1)
	}
	return neighbors
}

func (t *Tab) neighborsOn(p *Pane, rel func(q, p *Pane) bool) []*Pane {
	var out []*Pane
	for _, id := range t.orderedPaneIDs() {
		q := t.panes[id]
		if q == p {
			continue
		}
		if rel(q, p) {
			out = append(out, q)
		}
	}
	return out
}

func canAbsorbWidth(neighbors []*Pane, extra int) bool {
	if len(neighbors) == 0 {
		return false
	}
	for _, n := range neighbors {
		if n.MaxWidth != nil && n.Cols+extra > *n.MaxWidth {
			return false
		}
	}
	return true
}

func canAbsorbHeight(neighbors []*Pane, extra int) bool {
	if len(neighbors) == 0 {
		return false
	}
	for _, n := range neighbors {
		if n.MaxHeight != nil && n.Rows+extra > *n.MaxHeight {
			return false
		}
	}
	return true
}

// verticallyContiguous checks that neighbors' Y..Y+Rows spans, sorted,
// tile [start, end) exactly with one-cell borders between them.
func verticallyContiguous(neighbors []*Pane, start, end int) bool {
	if len(neighbors) == 0 {
		return false
	}
	sorted := append([]*Pane{}, neighbors...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Y < sorted[j].Y })
	if sorted[0].Y != start {
		return false
	}
	for i := 0; i < len(sorted)-1; i++ {
		if sorted[i].Y+sorted[i].Rows+1 != sorted[i+1].Y {
			return false
		}
	}
	last := sorted[len(sorted)-1]
	return last.Y+last.Rows == end
}

// horizontallyContiguous is the column-axis analogue of verticallyContiguous.
func horizontallyContiguous(neighbors []*Pane, start, end int) bool {
	if len(neighbors) == 0 {
		return false
	}
	sorted := append([]*Pane{}, neighbors...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].X < sorted[j].X })
	if sorted[0].X != start {
		return false
	}
	for i := 0; i < len(sorted)-1; i++ {
		if sorted[i].X+sorted[i].Cols+1 != sorted[i+1].X {
			return false
		}
	}
	last := sorted[len(sorted)-1]
	return last.X+last.Cols == end
}

// reassignActiveAfterClose picks the topologically-last selectable pane in
// the reclaimed set as the new active pane, falling back to the tab's
// normal linear focus order when no strategy reclaimed space.
func (t *Tab) reassignActiveAfterClose(reclaimed []*Pane) {
	t.activePane = -1
	if len(reclaimed) > 0 {
		sort.Slice(reclaimed, func(i, j int) bool { return reclaimed[i].ID < reclaimed[j].ID })
		for i := len(reclaimed) - 1; i >= 0; i-- {
			if reclaimed[i].Selectable {
				t.SetActivePane(reclaimed[i].ID)
				return
			}
		}
	}
	selectable := t.selectablePanes()
	if len(selectable) > 0 {
		t.SetActivePane(selectable[len(selectable)-1].ID)
	}
}

package tab

import "github.com/gridmux/gridmux/internal/messages"

// FocusNext moves focus to the next selectable pane in ascending id order,
// wrapping around.
func (t *Tab) FocusNext() {
	t.focusLinear(1)
}

// FocusPrevious moves focus to the previous selectable pane in ascending
// id order, wrapping around.
func (t *Tab) FocusPrevious() {
	t.focusLinear(-1)
}

func (t *Tab) focusLinear(step int) {
	ids := t.orderedPaneIDs()
	var selectableIDs []messages.PaneID
	for _, id := range ids {
		p := t.panes[id]
		if p.Selectable && !t.hidden[id] {
			selectableIDs = append(selectableIDs, id)
		}
	}
	if len(selectableIDs) == 0 {
		return
	}
	cur := -1
	for i, id := range selectableIDs {
		if id == t.activePane {
			cur = i
			break
		}
	}
	next := 0
	if cur >= 0 {
		next = ((cur+step)%len(selectableIDs) + len(selectableIDs)) % len(selectableIDs)
	}
	t.SetActivePane(selectableIDs[next])
}

// FocusPane moves focus directly to a pane by id.
func (t *Tab) FocusPane(id messages.PaneID) bool {
	return t.SetActivePane(id)
}

// MoveFocusLeft moves focus to the adjacent pane directly to the left of
// the active pane whose row span overlaps it, preferring the most
// recently active one. Returns ok=false when there is no such pane (the
// caller may then switch to the previous tab).
func (t *Tab) MoveFocusLeft() bool {
	return t.moveFocusDirectional(func(a, b *Pane) bool { return b.IsDirectlyLeftOf(a) })
}

// MoveFocusRight is the mirror of MoveFocusLeft.
func (t *Tab) MoveFocusRight() bool {
	return t.moveFocusDirectional(func(a, b *Pane) bool { return b.IsDirectlyRightOf(a) })
}

// MoveFocusUp moves focus to the adjacent pane directly above the active
// pane whose column span overlaps it.
func (t *Tab) MoveFocusUp() bool {
	return t.moveFocusVertical(func(a, b *Pane) bool { return b.IsDirectlyAbove(a) })
}

// MoveFocusDown is the mirror of MoveFocusUp.
func (t *Tab) MoveFocusDown() bool {
	return t.moveFocusVertical(func(a, b *Pane) bool { return b.IsDirectlyBelow(a) })
}

func (t *Tab) moveFocusDirectional(adjacent func(active, candidate *Pane) bool) bool {
	active := t.ActivePane()
	if active == nil {
		return false
	}
	var best *Pane
	for _, p := range t.selectablePanes() {
		if p.ID == active.ID {
			continue
		}
		if !adjacent(active, p) || !active.HorizontallyOverlapsWith(p) {
			continue
		}
		if best == nil || p.ActiveAt.After(best.ActiveAt) {
			best = p
		}
	}
	if best == nil {
		return false
	}
	t.SetActivePane(best.ID)
	return true
}

func (t *Tab) moveFocusVertical(adjacent func(active, candidate *Pane) bool) bool {
	active := t.ActivePane()
	if active == nil {
		return false
	}
	var best *Pane
	for _, p := range t.selectablePanes() {
		if p.ID == active.ID {
			continue
		}
		if !adjacent(active, p) || !active.VerticallyOverlapsWith(p) {
			continue
		}
		if best == nil || p.ActiveAt.After(best.ActiveAt) {
			best = p
		}
	}
	if best == nil {
		return false
	}
	t.SetActivePane(best.ID)
	return true
}

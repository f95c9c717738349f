package tab

import (
	"testing"

	"github.com/gridmux/gridmux/internal/messages"
)

// fakeCollaborator records the collaborator calls a tab makes when a split
// is rejected or a pane's PTY needs a new size pushed down to it.
type fakeCollaborator struct {
	closed []messages.PaneID
	sized  map[messages.PaneID][2]uint16
}

func newFakeCollaborator() *fakeCollaborator {
	return &fakeCollaborator{sized: make(map[messages.PaneID][2]uint16)}
}

func (f *fakeCollaborator) ClosePane(id messages.PaneID) { f.closed = append(f.closed, id) }
func (f *fakeCollaborator) SetTerminalSize(id messages.PaneID, rows, cols uint16) {
	f.sized[id] = [2]uint16{rows, cols}
}

// S4: an 80x24 tab split horizontally puts the original pane at the top
// (0,0,80,11), a border at row 11, and the new pane below it at
// (0,12,80,12); closing the top pane then reclaims it to (0,0,80,24).
func TestScenario_SplitAndClose(t *testing.T) {
	collab := newFakeCollaborator()
	tb := NewWithRootPane(0, 80, 24, 1, collab)

	if !tb.HorizontalSplit(2) {
		t.Fatal("HorizontalSplit rejected")
	}

	a, ok := tb.Pane(1)
	if !ok {
		t.Fatal("pane A missing")
	}
	if x, y, cols, rows := a.Rect(); x != 0 || y != 0 || cols != 80 || rows != 11 {
		t.Fatalf("pane A = (%d,%d,%d,%d), want (0,0,80,11)", x, y, cols, rows)
	}

	b, ok := tb.Pane(2)
	if !ok {
		t.Fatal("pane B missing")
	}
	if x, y, cols, rows := b.Rect(); x != 0 || y != 12 || cols != 80 || rows != 12 {
		t.Fatalf("pane B = (%d,%d,%d,%d), want (0,12,80,12)", x, y, cols, rows)
	}

	tb.ClosePane(1)
	if x, y, cols, rows := b.Rect(); x != 0 || y != 0 || cols != 80 || rows != 24 {
		t.Fatalf("pane B after close = (%d,%d,%d,%d), want (0,0,80,24)", x, y, cols, rows)
	}
	if _, ok := tb.Pane(1); ok {
		t.Fatal("pane A still present after close")
	}
}

// S5: resizing the left pane of a vertical split rightward grows it and
// shrinks its neighbor by the step size; resizing the right pane back
// leftward restores the original geometry exactly.
func TestScenario_ResizeRightThenLeft(t *testing.T) {
	collab := newFakeCollaborator()
	tb := NewWithRootPane(0, 80, 24, 1, collab)
	if !tb.VerticalSplit(2) {
		t.Fatal("VerticalSplit rejected")
	}

	a, _ := tb.Pane(1)
	b, _ := tb.Pane(2)
	a.ChangePosAndSize(0, 0, 40, 24)
	b.ChangePosAndSize(41, 0, 39, 24)

	tb.SetActivePane(1)
	tb.ResizeRight()

	if x, y, cols, rows := a.Rect(); x != 0 || y != 0 || cols != 50 || rows != 24 {
		t.Fatalf("A after ResizeRight = (%d,%d,%d,%d), want (0,0,50,24)", x, y, cols, rows)
	}
	if x, y, cols, rows := b.Rect(); x != 51 || y != 0 || cols != 29 || rows != 24 {
		t.Fatalf("B after ResizeRight = (%d,%d,%d,%d), want (51,0,29,24)", x, y, cols, rows)
	}

	tb.SetActivePane(2)
	tb.ResizeLeft()

	if x, y, cols, rows := a.Rect(); x != 0 || y != 0 || cols != 40 || rows != 24 {
		t.Fatalf("A after ResizeLeft = (%d,%d,%d,%d), want (0,0,40,24)", x, y, cols, rows)
	}
	if x, y, cols, rows := b.Rect(); x != 41 || y != 0 || cols != 39 || rows != 24 {
		t.Fatalf("B after ResizeLeft = (%d,%d,%d,%d), want (41,0,39,24)", x, y, cols, rows)
	}
}

// S6: toggling fullscreen on the active pane hides every other pane and
// expands it to the full canvas, then restores everything on toggling off.
func TestScenario_FullscreenToggle(t *testing.T) {
	collab := newFakeCollaborator()
	tb := NewWithRootPane(0, 80, 24, 1, collab)
	if !tb.HorizontalSplit(2) {
		t.Fatal("HorizontalSplit rejected")
	}
	tb.SetActivePane(1)

	tb.ToggleFullscreen()
	a, _ := tb.Pane(1)
	if x, y, cols, rows := a.Rect(); x != 0 || y != 0 || cols != 80 || rows != 24 {
		t.Fatalf("A in fullscreen = (%d,%d,%d,%d), want (0,0,80,24)", x, y, cols, rows)
	}
	if !tb.hidden[2] {
		t.Fatal("pane B should be hidden while fullscreen")
	}

	tb.ToggleFullscreen()
	if x, y, cols, rows := a.Rect(); x != 0 || y != 0 || cols != 80 || rows != 11 {
		t.Fatalf("A after exiting fullscreen = (%d,%d,%d,%d), want (0,0,80,11)", x, y, cols, rows)
	}
	if tb.hidden[2] {
		t.Fatal("pane B should be restored after exiting fullscreen")
	}
}

func TestNewPane_RejectedWhenNoSplittablePane(t *testing.T) {
	collab := newFakeCollaborator()
	tb := NewWithRootPane(0, 6, 5, 1, collab)
	if ok := tb.NewPane(2); ok {
		t.Fatal("expected split to be rejected on a too-small pane")
	}
	if len(collab.closed) != 1 || collab.closed[0] != 2 {
		t.Fatalf("expected rejected pane 2 to be closed, got %v", collab.closed)
	}
}

func TestPanePredicates_AdjacencyAndOverlap(t *testing.T) {
	left := NewPane(1, 0, 0, 10, 10)
	right := NewPane(2, 11, 0, 10, 10)

	if !left.IsDirectlyLeftOf(right) {
		t.Fatal("expected left directly left of right")
	}
	if !right.IsDirectlyRightOf(left) {
		t.Fatal("expected right directly right of left")
	}
	if !left.HorizontallyOverlapsWith(right) {
		t.Fatal("expected rows to overlap")
	}

	below := NewPane(3, 0, 11, 10, 10)
	if !left.IsDirectlyAbove(below) {
		t.Fatal("expected left directly above below")
	}
	if !left.VerticallyOverlapsWith(below) {
		t.Fatal("expected columns to overlap")
	}
}

func TestFocusMove_WrapsAndTargetsDirectionalNeighbor(t *testing.T) {
	collab := newFakeCollaborator()
	tb := NewWithRootPane(0, 80, 24, 1, collab)
	tb.VerticalSplit(2)

	tb.SetActivePane(1)
	if !tb.MoveFocusRight() {
		t.Fatal("expected MoveFocusRight to succeed from left pane")
	}
	if tb.ActivePaneID() != 2 {
		t.Fatalf("active pane = %d, want 2", tb.ActivePaneID())
	}

	tb.FocusNext()
	if tb.ActivePaneID() != 1 {
		t.Fatalf("active pane after FocusNext wrap = %d, want 1", tb.ActivePaneID())
	}
}

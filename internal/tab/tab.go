package tab

import (
	"sort"
	"time"

	"github.com/gridmux/gridmux/internal/messages"
)

// Collaborator is the subset of the PTY collaborator contract the tab
// engine needs to act on: closing a pane whose split request was rejected,
// and pushing a new terminal size down to a pane's PTY.
type Collaborator interface {
	ClosePane(id messages.PaneID)
	SetTerminalSize(id messages.PaneID, rows, cols uint16)
}

// Tab owns a set of panes tiled on a shared rectangular canvas.
type Tab struct {
	Index int
	Name  string

	Cols, Rows int

	panes      map[messages.PaneID]*Pane
	activePane messages.PaneID
	hidden     map[messages.PaneID]bool

	Fullscreen        bool
	SyncInput         bool
	ClearBeforeRender bool

	pty Collaborator
}

// New creates an empty tab of the given canvas size.
func New(index int, cols, rows int, collaborator Collaborator) *Tab {
	return &Tab{
		Index:      index,
		Cols:       cols,
		Rows:       rows,
		panes:      make(map[messages.PaneID]*Pane),
		hidden:     make(map[messages.PaneID]bool),
		activePane: -1,
		pty:        collaborator,
	}
}

// NewWithRootPane creates a tab containing a single pane that fills the
// whole canvas, used when a tab is opened with one freshly-spawned PTY.
func NewWithRootPane(index int, cols, rows int, root messages.PaneID, collaborator Collaborator) *Tab {
	t := New(index, cols, rows, collaborator)
	p := NewPane(root, 0, 0, cols, rows)
	t.panes[root] = p
	t.activePane = root
	return t
}

func (t *Tab) Pane(id messages.PaneID) (*Pane, bool) {
	p, ok := t.panes[id]
	return p, ok
}

// ActivePane returns the focused pane, or nil if the tab has none.
func (t *Tab) ActivePane() *Pane {
	return t.panes[t.activePane]
}

// ActivePaneID returns the focused pane's id, or -1 if none.
func (t *Tab) ActivePaneID() messages.PaneID {
	return t.activePane
}

// PaneCount returns the number of panes currently in the tab.
func (t *Tab) PaneCount() int {
	return len(t.panes)
}

// orderedPaneIDs returns pane ids in ascending order, the ordering the
// linear focus traversal and topological "last remaining pane" rule rely
// on; only ordered iteration is required, not any particular map type.
func (t *Tab) orderedPaneIDs() []messages.PaneID {
	ids := make([]messages.PaneID, 0, len(t.panes))
	for id := range t.panes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (t *Tab) selectablePanes() []*Pane {
	var out []*Pane
	for _, id := range t.orderedPaneIDs() {
		p := t.panes[id]
		if p.Selectable && !t.hidden[id] {
			out = append(out, p)
		}
	}
	return out
}

// HandlePtyBytes routes PTY output for one pane into its Grid and forwards
// any synthesized replies the grid produced back to the PTY collaborator.
func (t *Tab) HandlePtyBytes(pane messages.PaneID, data []byte, writeback func(messages.PaneID, []byte)) {
	p, ok := t.panes[pane]
	if !ok {
		return
	}
	p.HandlePtyBytes(data)
	if writeback == nil {
		return
	}
	for _, reply := range p.DrainMessagesToPty() {
		writeback(pane, reply)
	}
}

// WriteToActiveTerminal sends input bytes to the active pane, or to every
// pane in the tab when sync-input is enabled.
func (t *Tab) WriteToActiveTerminal(data []byte, write func(messages.PaneID, []byte)) {
	if write == nil {
		return
	}
	if t.SyncInput {
		for _, id := range t.orderedPaneIDs() {
			p := t.panes[id]
			write(id, p.AdjustInputToTerminal(data))
		}
		return
	}
	p := t.ActivePane()
	if p == nil {
		return
	}
	write(t.activePane, p.AdjustInputToTerminal(data))
}

func (t *Tab) SetActivePane(id messages.PaneID) bool {
	p, ok := t.panes[id]
	if !ok || !p.Selectable {
		return false
	}
	t.activePane = id
	p.ActiveAt = time.Now()
	return true
}

func (t *Tab) SetSelectable(id messages.PaneID, selectable bool) {
	if p, ok := t.panes[id]; ok {
		p.SetSelectable(selectable)
	}
}

func (t *Tab) SetPaneBorder(id messages.PaneID, visible bool) {
	if p, ok := t.panes[id]; ok {
		p.InvisibleBorders = !visible
	}
}

func (t *Tab) SetMaxPaneHeight(id messages.PaneID, height int) {
	if p, ok := t.panes[id]; ok {
		h := height
		p.MaxHeight = &h
	}
}

func (t *Tab) UpdateName(name string) {
	t.Name = name
}

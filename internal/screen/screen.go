// Package screen implements the Screen dispatcher: a single-threaded event
// loop that owns every Tab, routes PTY bytes to the grid that owns each
// pane, and composites the active tab into a rendered frame for the
// client.
package screen

import (
	"sort"

	"github.com/gridmux/gridmux/internal/logging"
	"github.com/gridmux/gridmux/internal/messages"
	"github.com/gridmux/gridmux/internal/ptyio"
	"github.com/gridmux/gridmux/internal/tab"
)

// ptyCollaborator adapts a *ptyio.Manager to the tab.Collaborator
// interface the layout engine needs to close a rejected split's PTY and
// push new terminal sizes down to a pane's PTY.
type ptyCollaborator struct {
	mgr *ptyio.Manager
}

func (c ptyCollaborator) ClosePane(id messages.PaneID) {
	c.mgr.Handle(messages.ClosePane{Pane: id})
}

func (c ptyCollaborator) SetTerminalSize(id messages.PaneID, rows, cols uint16) {
	if err := c.mgr.Resize(id, rows, cols); err != nil {
		logging.Warn("screen: resize pane %d failed: %v", id, err)
	}
}

// Screen owns every tab and dispatches the typed instructions described in
// the component design's §4.4.
type Screen struct {
	pty      *ptyio.Manager
	collab   ptyCollaborator
	tabs     map[int]*tab.Tab
	activeID int
	nextID   int
	paneTab  map[messages.PaneID]int

	cols, rows int
	attached   bool
	mode       string
}

// New creates a Screen with no tabs, sized to the client's initial
// terminal dimensions.
func New(pty *ptyio.Manager, cols, rows int) *Screen {
	c := ptyCollaborator{mgr: pty}
	return &Screen{
		pty:      pty,
		collab:   c,
		tabs:     make(map[int]*tab.Tab),
		activeID: -1,
		paneTab:  make(map[messages.PaneID]int),
		cols:     cols,
		rows:     rows,
		attached: true,
	}
}

func (s *Screen) activeTab() *tab.Tab {
	return s.tabs[s.activeID]
}

func (s *Screen) orderedTabIDs() []int {
	ids := make([]int, 0, len(s.tabs))
	for id := range s.tabs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Dispatch handles one instruction. It returns a Render message when the
// instruction warrants a frame refresh, or nil otherwise; the caller
// forwards non-nil results to the client-facing wire. Messages that
// originated from a client keystroke should also be followed with an
// UnblockInputThread, which the caller (the IPC layer, outside the core)
// is responsible for sending once its own input queue has drained.
func (s *Screen) Dispatch(msg interface{}) *messages.Render {
	switch v := msg.(type) {
	case messages.PtyBytes:
		s.handlePtyBytes(v)
		return s.render()
	case messages.NewPane:
		s.handleNewPane(v.Pane)
		return s.render()
	case messages.PaneExited:
		s.handlePaneExited(v.Pane)
		return s.render()
	case messages.HorizontalSplit:
		if t := s.activeTab(); t != nil {
			t.HorizontalSplit(v.Pane)
			s.paneTab[v.Pane] = s.activeID
		}
		return s.render()
	case messages.VerticalSplit:
		if t := s.activeTab(); t != nil {
			t.VerticalSplit(v.Pane)
			s.paneTab[v.Pane] = s.activeID
		}
		return s.render()
	case messages.ApplyLayout:
		s.handleApplyLayout(v)
		return s.render()
	case messages.Resize:
		s.handleResize(v.Direction)
		return s.render()
	case messages.ResizeTab:
		s.handleResizeTab(int(v.Cols), int(v.Rows))
		return s.render()
	case messages.TerminalResize:
		s.cols, s.rows = int(v.Cols), int(v.Rows)
		s.handleResizeTab(int(v.Cols), int(v.Rows))
		return s.render()
	case messages.FocusMove:
		s.handleFocusMove(v.Direction)
		return s.render()
	case messages.FocusPane:
		if t := s.activeTab(); t != nil {
			t.FocusPane(v.Pane)
		}
		return s.render()
	case messages.ScrollUp:
		if p := s.activePane(); p != nil && p.Grid != nil {
			p.Grid.ScrollViewUp(v.Lines)
		}
		return s.render()
	case messages.ScrollDown:
		if p := s.activePane(); p != nil && p.Grid != nil {
			p.Grid.ScrollViewDown(v.Lines)
		}
		return s.render()
	case messages.ClearScroll:
		if p := s.activePane(); p != nil && p.Grid != nil {
			p.Grid.ResetViewport()
		}
		return s.render()
	case messages.SetSelectable:
		if t := s.activeTab(); t != nil {
			t.SetSelectable(v.Pane, v.Selectable)
		}
		return s.render()
	case messages.SetPaneBorder:
		if t := s.activeTab(); t != nil {
			t.SetPaneBorder(v.Pane, v.Visible)
		}
		return s.render()
	case messages.SetMaxPaneHeight:
		if t := s.activeTab(); t != nil {
			t.SetMaxPaneHeight(v.Pane, v.Height)
		}
		return s.render()
	case messages.TogglePaneFullscreen:
		if t := s.activeTab(); t != nil {
			t.ToggleFullscreen()
		}
		return s.render()
	case messages.ToggleSyncInput:
		if t := s.activeTab(); t != nil {
			t.ToggleSyncInput()
		}
		return s.render()
	case messages.NewTab:
		s.handleNewTab(v)
		return s.render()
	case messages.SwitchTab:
		s.switchTab(v.Index)
		return s.render()
	case messages.GoToNextTab:
		s.stepTab(1)
		return s.render()
	case messages.GoToPreviousTab:
		s.stepTab(-1)
		return s.render()
	case messages.CloseActiveTab:
		s.closeTab(s.activeID)
		return s.render()
	case messages.UpdateTabName:
		if t := s.activeTab(); t != nil {
			t.UpdateName(v.Name)
		}
		return nil
	case messages.ChangeMode:
		s.mode = v.Mode
		return nil
	case messages.Attached:
		s.attached = true
		return nil
	case messages.Detached:
		s.attached = false
		return nil
	case messages.Exit:
		s.pty.Handle(messages.Exit{})
		return &messages.Render{Skip: true}
	}
	return nil
}

// WriteInput forwards raw client keystrokes to the active tab, which
// either targets the focused pane alone or broadcasts to every pane when
// sync-input is enabled.
func (s *Screen) WriteInput(data []byte) {
	t := s.activeTab()
	if t == nil {
		return
	}
	t.WriteToActiveTerminal(data, func(pane messages.PaneID, b []byte) {
		if err := s.pty.Write(pane, b); err != nil {
			logging.Warn("screen: write input to pane %d failed: %v", pane, err)
		}
	})
}

func (s *Screen) activePane() *tab.Pane {
	t := s.activeTab()
	if t == nil {
		return nil
	}
	return t.ActivePane()
}

func (s *Screen) handlePtyBytes(v messages.PtyBytes) {
	tid, ok := s.paneTab[v.Pane]
	if !ok {
		return
	}
	t, ok := s.tabs[tid]
	if !ok {
		return
	}
	t.HandlePtyBytes(v.Pane, v.Data, func(pane messages.PaneID, data []byte) {
		if err := s.pty.Write(pane, data); err != nil {
			logging.Warn("screen: write pty reply to pane %d failed: %v", pane, err)
		}
	})
}

// handleNewPane attaches a freshly-spawned PTY to the active tab as a new
// split, or — if there is no tab yet — opens the first tab around it.
func (s *Screen) handleNewPane(id messages.PaneID) {
	if len(s.tabs) == 0 {
		s.createTabWithRoot(id)
		return
	}
	t := s.activeTab()
	if t == nil {
		s.createTabWithRoot(id)
		return
	}
	t.NewPane(id)
	s.paneTab[id] = s.activeID
}

// handlePaneExited reclaims a pane whose child process exited on its own
// (rather than via an explicit close request): the tab's layout absorbs
// its space, and an empty tab is torn down, which in turn finishes the
// session if it was the last one.
func (s *Screen) handlePaneExited(id messages.PaneID) {
	tid, ok := s.paneTab[id]
	if !ok {
		return
	}
	delete(s.paneTab, id)
	t, ok := s.tabs[tid]
	if !ok {
		return
	}
	t.ClosePane(id)
	if t.PaneCount() == 0 {
		delete(s.tabs, tid)
		if s.activeID == tid {
			ids := s.orderedTabIDs()
			if len(ids) > 0 {
				s.activeID = ids[len(ids)-1]
			} else {
				s.activeID = -1
			}
		}
	}
}

func (s *Screen) createTabWithRoot(id messages.PaneID) {
	idx := s.nextID
	s.nextID++
	t := tab.NewWithRootPane(idx, s.cols, s.rows, id, s.collab)
	s.tabs[idx] = t
	s.activeID = idx
	s.paneTab[id] = idx
}

func (s *Screen) handleNewTab(v messages.NewTab) {
	id := s.pty.Handle(v)
	if id < 0 {
		return
	}
	s.createTabWithRoot(id)
}

func (s *Screen) handleApplyLayout(v messages.ApplyLayout) {
	if len(v.Panes) == 0 {
		return
	}
	s.createTabWithRoot(v.Panes[0])
	t := s.activeTab()
	for _, id := range v.Panes[1:] {
		t.NewPane(id)
		s.paneTab[id] = s.activeID
	}
}

func (s *Screen) handleResize(dir messages.Direction) {
	t := s.activeTab()
	if t == nil {
		return
	}
	switch dir {
	case messages.DirLeft:
		t.ResizeLeft()
	case messages.DirRight:
		t.ResizeRight()
	case messages.DirUp:
		t.ResizeUp()
	case messages.DirDown:
		t.ResizeDown()
	}
}

func (s *Screen) handleResizeTab(cols, rows int) {
	t := s.activeTab()
	if t == nil {
		return
	}
	t.ResizeWholeTab(cols, rows, func(id messages.PaneID, rows, cols uint16) {
		s.collab.SetTerminalSize(id, rows, cols)
	})
}

func (s *Screen) handleFocusMove(dir messages.Direction) {
	t := s.activeTab()
	if t == nil {
		return
	}
	var ok bool
	switch dir {
	case messages.DirLeft:
		ok = t.MoveFocusLeft()
		if !ok {
			s.stepTab(-1)
		}
		return
	case messages.DirRight:
		ok = t.MoveFocusRight()
		if !ok {
			s.stepTab(1)
		}
		return
	case messages.DirUp:
		t.MoveFocusUp()
	case messages.DirDown:
		t.MoveFocusDown()
	}
}

func (s *Screen) switchTab(index int) {
	if _, ok := s.tabs[index]; ok {
		s.activeID = index
	}
}

func (s *Screen) stepTab(step int) {
	ids := s.orderedTabIDs()
	if len(ids) == 0 {
		return
	}
	cur := -1
	for i, id := range ids {
		if id == s.activeID {
			cur = i
			break
		}
	}
	if cur < 0 {
		s.activeID = ids[0]
		return
	}
	next := ((cur+step)%len(ids) + len(ids)) % len(ids)
	s.activeID = ids[next]
}

// closeTab tears a tab down: every pane's PTY is closed, and if it was the
// last tab the session itself is finished (the caller checks
// Finished()).
func (s *Screen) closeTab(id int) {
	t, ok := s.tabs[id]
	if !ok {
		return
	}
	var panes []messages.PaneID
	for pid := range s.paneTab {
		if s.paneTab[pid] == id {
			panes = append(panes, pid)
		}
	}
	for _, pid := range panes {
		delete(s.paneTab, pid)
	}
	if len(panes) > 0 {
		s.pty.Handle(messages.CloseTab{Panes: panes})
	}
	delete(s.tabs, id)
	_ = t

	if s.activeID == id {
		ids := s.orderedTabIDs()
		if len(ids) > 0 {
			s.activeID = ids[len(ids)-1]
		} else {
			s.activeID = -1
		}
	}
}

// Finished reports whether the session has no tabs left, i.e. the last
// tab's last pane has closed.
func (s *Screen) Finished() bool {
	return len(s.tabs) == 0
}

// render produces the next client frame, or a skip marker while the
// session is detached or has no active tab.
func (s *Screen) render() *messages.Render {
	if !s.attached {
		return &messages.Render{Skip: true}
	}
	t := s.activeTab()
	if t == nil {
		return &messages.Render{Skip: true}
	}
	return &messages.Render{Frame: t.Render()}
}

package ptyio

import (
	"sync"
	"time"

	"github.com/gridmux/gridmux/internal/logging"
	"github.com/gridmux/gridmux/internal/messages"
	"github.com/gridmux/gridmux/internal/safego"
)

// Reader tuning: a small read buffer feeding a ticked flush so bursts of
// output coalesce into one message instead of flooding the Screen with
// single-read frames.
const (
	readBufferSize  = 32 * 1024
	readQueueSize   = 64
	frameInterval   = time.Second / 60
	maxPendingBytes = 512 * 1024
	eventQueueSize  = 100
)

// Manager is the PTY collaborator: it owns one *Terminal per pane, reads
// each one's output on its own goroutine, and forwards typed messages to
// the Screen event loop over a single bounded channel. The Screen never
// touches a Terminal directly.
type Manager struct {
	events chan interface{}

	mu      sync.Mutex
	panes   map[messages.PaneID]*paneProc
	nextID  int
	closing bool
}

type paneProc struct {
	term   *Terminal
	cancel chan struct{}
}

// NewManager creates a PTY collaborator. Events must be drained by the
// Screen event loop; its capacity bounds how far the collaborator can run
// ahead of a slow or stalled consumer.
func NewManager() *Manager {
	return &Manager{
		events: make(chan interface{}, eventQueueSize),
		panes:  make(map[messages.PaneID]*paneProc),
	}
}

// Events returns the channel the Screen event loop reads PtyBytes, NewPane,
// and PaneExited messages from.
func (m *Manager) Events() <-chan interface{} {
	return m.events
}

func (m *Manager) emit(msg interface{}) {
	m.events <- msg
}

// Handle dispatches one PTY-collaborator-contract message (NewTab,
// ClosePane, CloseTab, Exit). It returns the PaneID assigned to a NewTab
// request, or -1 for every other message type.
func (m *Manager) Handle(msg interface{}) messages.PaneID {
	switch v := msg.(type) {
	case messages.NewTab:
		return m.spawnPane(v.Command, v.Cwd, v.Rows, v.Cols)
	case messages.ClosePane:
		m.closePane(v.Pane)
	case messages.CloseTab:
		for _, p := range v.Panes {
			m.closePane(p)
		}
	case messages.Exit:
		m.shutdown()
	}
	return -1
}

func (m *Manager) spawnPane(command, cwd string, rows, cols uint16) messages.PaneID {
	term, err := NewWithSize(command, cwd, nil, rows, cols)
	if err != nil {
		logging.Error("ptyio: failed to spawn pane: %v", err)
		return -1
	}

	m.mu.Lock()
	if m.closing {
		m.mu.Unlock()
		_ = term.Close()
		return -1
	}
	m.nextID++
	id := messages.PaneID(m.nextID)
	cancel := make(chan struct{})
	m.panes[id] = &paneProc{term: term, cancel: cancel}
	m.mu.Unlock()

	safego.Go("ptyio.reader", func() {
		m.runReader(id, term, cancel)
	})

	m.emit(messages.NewPane{Pane: id})
	return id
}

func (m *Manager) closePane(id messages.PaneID) {
	m.mu.Lock()
	p, ok := m.panes[id]
	if ok {
		delete(m.panes, id)
	}
	m.mu.Unlock()
	if !ok {
		return
	}
	close(p.cancel)
	_ = p.term.Close()
}

func (m *Manager) shutdown() {
	m.mu.Lock()
	m.closing = true
	pending := m.panes
	m.panes = make(map[messages.PaneID]*paneProc)
	m.mu.Unlock()

	for _, p := range pending {
		close(p.cancel)
		_ = p.term.Close()
	}
}

// runReader splits reading from flushing: a dedicated goroutine blocks on
// Terminal.Read into a byte channel; this goroutine
// coalesces whatever has accumulated each frame tick (or immediately, past
// maxPendingBytes) into a single PtyBytes message.
func (m *Manager) runReader(id messages.PaneID, term *Terminal, cancel <-chan struct{}) {
	dataCh := make(chan []byte, readQueueSize)
	errCh := make(chan error, 1)

	safego.Go("ptyio.read_loop", func() {
		buf := make([]byte, readBufferSize)
		for {
			n, err := term.Read(buf)
			if err != nil {
				select {
				case errCh <- err:
				default:
				}
				close(dataCh)
				return
			}
			if n == 0 {
				continue
			}
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			select {
			case dataCh <- chunk:
			case <-cancel:
				return
			}
		}
	})

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	var pending []byte
	flush := func() {
		if len(pending) == 0 {
			return
		}
		select {
		case m.events <- messages.PtyBytes{Pane: id, Data: pending}:
		case <-cancel:
		}
		pending = nil
	}

	for {
		select {
		case <-cancel:
			return
		case data, ok := <-dataCh:
			if !ok {
				flush()
				m.reportExit(id, term)
				return
			}
			pending = append(pending, data...)
			if len(pending) >= maxPendingBytes {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-errCh:
			flush()
			m.reportExit(id, term)
			return
		}
	}
}

// reportExit reaps a pane's terminal once its reader loop stopped (process
// exited or a fatal read error occurred) and tells the Screen to reclaim
// its layout space.
func (m *Manager) reportExit(id messages.PaneID, term *Terminal) {
	m.mu.Lock()
	_, ok := m.panes[id]
	if ok {
		delete(m.panes, id)
	}
	closing := m.closing
	m.mu.Unlock()
	if !ok || closing {
		return
	}
	_ = term.Close()
	select {
	case m.events <- messages.PaneExited{Pane: id}:
	default:
		logging.Warn("ptyio: dropped PaneExited for pane %d, event channel full", id)
	}
}

// PaneCount reports how many panes currently have a live PTY.
func (m *Manager) PaneCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.panes)
}

// Write sends input bytes to a pane's PTY.
func (m *Manager) Write(id messages.PaneID, data []byte) error {
	m.mu.Lock()
	p, ok := m.panes[id]
	m.mu.Unlock()
	if !ok {
		return nil
	}
	_, err := p.term.Write(data)
	return err
}

// Resize updates a pane's PTY window size.
func (m *Manager) Resize(id messages.PaneID, rows, cols uint16) error {
	m.mu.Lock()
	p, ok := m.panes[id]
	m.mu.Unlock()
	if !ok {
		return nil
	}
	return p.term.SetSize(rows, cols)
}

package ptyio

import (
	"strings"
	"testing"
	"time"

	"github.com/gridmux/gridmux/internal/messages"
)

func collectBytes(t *testing.T, m *Manager, pane messages.PaneID, timeout time.Duration) string {
	t.Helper()
	deadline := time.After(timeout)
	var out strings.Builder
	for {
		select {
		case msg := <-m.Events():
			if b, ok := msg.(messages.PtyBytes); ok && b.Pane == pane {
				out.Write(b.Data)
				if strings.Contains(out.String(), "hello-gridmux") {
					return out.String()
				}
			}
		case <-deadline:
			return out.String()
		}
	}
}

func TestManager_SpawnAndReadOutput(t *testing.T) {
	m := NewManager()
	defer m.Handle(messages.Exit{})

	pane := m.Handle(messages.NewTab{Command: "echo hello-gridmux", Rows: 24, Cols: 80})
	if pane < 0 {
		t.Fatalf("expected a valid pane id, got %d", pane)
	}

	saw := false
	for _, msg := range drain(m, 2*time.Second) {
		if _, ok := msg.(messages.NewPane); ok {
			saw = true
		}
	}
	if !saw {
		t.Fatalf("expected a NewPane event for the spawned pane")
	}

	out := collectBytes(t, m, pane, 2*time.Second)
	if !strings.Contains(out, "hello-gridmux") {
		t.Fatalf("expected output to contain echoed text, got %q", out)
	}
}

func drain(m *Manager, timeout time.Duration) []interface{} {
	deadline := time.After(timeout)
	var msgs []interface{}
	for {
		select {
		case msg := <-m.Events():
			msgs = append(msgs, msg)
			if _, ok := msg.(messages.NewPane); ok {
				return msgs
			}
		case <-deadline:
			return msgs
		}
	}
}

func TestManager_ClosePaneTearsDownProcess(t *testing.T) {
	m := NewManager()
	pane := m.Handle(messages.NewTab{Command: "sleep 60", Rows: 24, Cols: 80})
	if pane < 0 {
		t.Fatalf("expected a valid pane id")
	}
	drain(m, 2*time.Second)

	if got := m.PaneCount(); got != 1 {
		t.Fatalf("expected 1 pane running, got %d", got)
	}

	m.Handle(messages.ClosePane{Pane: pane})

	if got := m.PaneCount(); got != 0 {
		t.Fatalf("expected pane removed after close, got %d", got)
	}
}

func TestManager_ExitTearsDownAllPanes(t *testing.T) {
	m := NewManager()
	m.Handle(messages.NewTab{Command: "sleep 60", Rows: 24, Cols: 80})
	m.Handle(messages.NewTab{Command: "sleep 60", Rows: 24, Cols: 80})
	drain(m, 2*time.Second)
	drain(m, 2*time.Second)

	m.Handle(messages.Exit{})

	if got := m.PaneCount(); got != 0 {
		t.Fatalf("expected all panes torn down after Exit, got %d", got)
	}
}

package screen

import (
	"strings"
	"testing"
	"time"

	"github.com/gridmux/gridmux/internal/messages"
	"github.com/gridmux/gridmux/internal/ptyio"
)

func waitForPane(t *testing.T, mgr *ptyio.Manager, timeout time.Duration) messages.PaneID {
	t.Helper()
	deadline := time.After(timeout)
	for {
		select {
		case ev := <-mgr.Events():
			if np, ok := ev.(messages.NewPane); ok {
				return np.Pane
			}
		case <-deadline:
			t.Fatal("timed out waiting for NewPane")
			return -1
		}
	}
}

func TestDispatch_NewPaneOpensFirstTabAndRenders(t *testing.T) {
	mgr := ptyio.NewManager()
	defer mgr.Handle(messages.Exit{})
	s := New(mgr, 80, 24)

	mgr.Handle(messages.NewTab{Command: "sleep 60", Rows: 24, Cols: 80})
	pane := waitForPane(t, mgr, 2*time.Second)

	render := s.Dispatch(messages.NewPane{Pane: pane})
	if render == nil || render.Skip {
		t.Fatal("expected a non-skip render after opening the first tab")
	}
	if s.Finished() {
		t.Fatal("session should not be finished with one live tab")
	}
	if got := s.activeTab().PaneCount(); got != 1 {
		t.Fatalf("expected 1 pane in the new tab, got %d", got)
	}
}

func TestDispatch_PaneExitedReclaimsLayoutAndFinishesSession(t *testing.T) {
	mgr := ptyio.NewManager()
	defer mgr.Handle(messages.Exit{})
	s := New(mgr, 80, 24)

	mgr.Handle(messages.NewTab{Command: "sleep 60", Rows: 24, Cols: 80})
	pane := waitForPane(t, mgr, 2*time.Second)
	s.Dispatch(messages.NewPane{Pane: pane})

	s.Dispatch(messages.PaneExited{Pane: pane})

	if !s.Finished() {
		t.Fatal("session should finish once its last pane exits")
	}
	if _, ok := s.paneTab[pane]; ok {
		t.Fatal("exited pane should be dropped from paneTab bookkeeping")
	}
}

func TestDispatch_DetachedSuppressesRender(t *testing.T) {
	mgr := ptyio.NewManager()
	defer mgr.Handle(messages.Exit{})
	s := New(mgr, 80, 24)

	mgr.Handle(messages.NewTab{Command: "sleep 60", Rows: 24, Cols: 80})
	pane := waitForPane(t, mgr, 2*time.Second)
	s.Dispatch(messages.NewPane{Pane: pane})

	s.Dispatch(messages.Detached{})
	render := s.Dispatch(messages.ResizeTab{Rows: 30, Cols: 100})
	if render == nil || !render.Skip {
		t.Fatal("expected render to be suppressed while detached")
	}

	s.Dispatch(messages.Attached{})
	render = s.Dispatch(messages.ResizeTab{Rows: 30, Cols: 100})
	if render == nil || render.Skip {
		t.Fatal("expected render to resume once attached")
	}
}

func TestDispatch_PtyBytesReachOwningTab(t *testing.T) {
	mgr := ptyio.NewManager()
	defer mgr.Handle(messages.Exit{})
	s := New(mgr, 80, 24)

	mgr.Handle(messages.NewTab{Command: "printf hi-gridmux", Rows: 24, Cols: 80})
	pane := waitForPane(t, mgr, 2*time.Second)
	s.Dispatch(messages.NewPane{Pane: pane})

	deadline := time.After(2 * time.Second)
	var frame string
	for {
		select {
		case ev := <-mgr.Events():
			if pb, ok := ev.(messages.PtyBytes); ok && pb.Pane == pane {
				r := s.Dispatch(pb)
				if r != nil {
					frame = r.Frame
				}
				if strings.Contains(frame, "hi-gridmux") {
					return
				}
			}
		case <-deadline:
			t.Fatalf("timed out waiting for rendered output to contain echoed text, last frame: %q", frame)
		}
	}
}

func TestDispatch_CloseActiveTabFinishesSessionWhenLast(t *testing.T) {
	mgr := ptyio.NewManager()
	defer mgr.Handle(messages.Exit{})
	s := New(mgr, 80, 24)

	mgr.Handle(messages.NewTab{Command: "sleep 60", Rows: 24, Cols: 80})
	pane := waitForPane(t, mgr, 2*time.Second)
	s.Dispatch(messages.NewPane{Pane: pane})

	s.Dispatch(messages.CloseActiveTab{})
	if !s.Finished() {
		t.Fatal("expected session to finish after closing its only tab")
	}
}

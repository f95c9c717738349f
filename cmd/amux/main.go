//go:build !windows

package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/charmbracelet/x/term"

	"github.com/gridmux/gridmux/internal/logging"
	"github.com/gridmux/gridmux/internal/messages"
	"github.com/gridmux/gridmux/internal/ptyio"
	"github.com/gridmux/gridmux/internal/safego"
	"github.com/gridmux/gridmux/internal/screen"
)

// Version info set by GoReleaser via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if len(os.Args) > 1 && (os.Args[1] == "--version" || os.Args[1] == "-v") {
		fmt.Printf("gridmux %s (commit: %s, built: %s)\n", version, commit, date)
		os.Exit(0)
	}

	home, _ := os.UserHomeDir()
	logDir := filepath.Join(home, ".gridmux", "logs")
	if err := logging.Initialize(logDir, logging.LevelInfo); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not initialize logging: %v\n", err)
	}
	defer logging.Close()

	logging.Info("Starting gridmux")

	if err := run(); err != nil {
		logging.Error("gridmux exited with error: %v", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logging.Info("gridmux shutdown complete")
}

// run attaches the local terminal directly to a single-session Screen: it
// puts stdin into raw mode, spawns the user's shell as the first pane, and
// pumps PTY output, keystrokes, and window-resize events through the core
// until the session's last tab closes. There is no client/server transport
// here; that IPC layer is a separate concern from the grid/tab/screen core.
func run() error {
	stdinFd := int(os.Stdin.Fd())
	if !term.IsTerminal(stdinFd) {
		return fmt.Errorf("gridmux requires an interactive terminal")
	}

	state, err := term.MakeRaw(stdinFd)
	if err != nil {
		return fmt.Errorf("failed to enter raw mode: %w", err)
	}
	defer func() { _ = term.Restore(stdinFd, state) }()

	cols, rows, err := term.GetSize(stdinFd)
	if err != nil {
		cols, rows = 80, 24
	}

	mgr := ptyio.NewManager()
	defer mgr.Handle(messages.Exit{})

	scr := screen.New(mgr, cols, rows)

	shell := os.Getenv("SHELL")
	if shell == "" {
		shell = "/bin/sh"
	}
	cwd, err := os.Getwd()
	if err != nil {
		cwd = home()
	}
	if id := mgr.Handle(messages.NewTab{Command: shell, Cwd: cwd, Rows: uint16(rows), Cols: uint16(cols)}); id < 0 {
		return fmt.Errorf("failed to spawn shell")
	}

	winch := make(chan os.Signal, 1)
	signal.Notify(winch, syscall.SIGWINCH)
	defer signal.Stop(winch)

	frames := make(chan []byte, 8)
	safego.Go("gridmux.stdin", func() {
		buf := make([]byte, 4096)
		for {
			n, err := os.Stdin.Read(buf)
			if n > 0 {
				data := make([]byte, n)
				copy(data, buf[:n])
				frames <- data
			}
			if err != nil {
				close(frames)
				return
			}
		}
	})

	for {
		select {
		case data, ok := <-frames:
			if !ok {
				return nil
			}
			scr.WriteInput(data)
		case <-winch:
			if c, r, err := term.GetSize(stdinFd); err == nil {
				render := scr.Dispatch(messages.TerminalResize{Cols: uint16(c), Rows: uint16(r)})
				writeFrame(render)
			}
		case ev, ok := <-mgr.Events():
			if !ok {
				return nil
			}
			render := scr.Dispatch(ev)
			writeFrame(render)
			if scr.Finished() {
				return nil
			}
		}
	}
}

func writeFrame(render *messages.Render) {
	if render == nil || render.Skip {
		return
	}
	os.Stdout.WriteString(render.Frame)
}

func home() string {
	h, err := os.UserHomeDir()
	if err != nil {
		return "/"
	}
	return h
}

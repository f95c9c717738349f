package ptyio

import (
	"io"
	"os"
	"os/exec"
	"sync"
	"syscall"
	"time"

	"github.com/creack/pty"

	"github.com/gridmux/gridmux/internal/process"
)

// terminalCloseTimeout bounds how long Close waits for the child to be
// reaped after the process-group kill before sending SIGKILL to the child
// directly.
const terminalCloseTimeout = 5 * time.Second

// Terminal is one pane's child process: a shell command running behind a
// PTY, read by the collaborator's per-pane reader goroutine and written
// through the Manager.
type Terminal struct {
	mu      sync.Mutex
	ptyFile *os.File
	cmd     *exec.Cmd
	closed  bool
}

// NewWithSize starts command in dir with the given environment additions,
// sizing the PTY immediately if rows and cols are both positive.
func NewWithSize(command, dir string, env []string, rows, cols uint16) (*Terminal, error) {
	cmd := exec.Command("sh", "-c", command)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), env...)
	cmd.Env = append(cmd.Env, "TERM=xterm-256color")
	// creack/pty sets Setsid=true; Setpgid here can cause EPERM on start.
	cmd.SysProcAttr = &syscall.SysProcAttr{}

	var (
		ptmx *os.File
		err  error
	)
	if rows > 0 && cols > 0 {
		ptmx, err = pty.StartWithSize(cmd, &pty.Winsize{Rows: rows, Cols: cols})
	} else {
		ptmx, err = pty.Start(cmd)
	}
	if err != nil {
		return nil, err
	}

	return &Terminal{
		ptyFile: ptmx,
		cmd:     cmd,
	}, nil
}

// SetSize resizes the PTY; a no-op once the terminal has closed.
func (t *Terminal) SetSize(rows, cols uint16) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed || t.ptyFile == nil {
		return nil
	}

	return pty.Setsize(t.ptyFile, &pty.Winsize{
		Rows: rows,
		Cols: cols,
	})
}

// Write sends keystroke or reply bytes to the PTY.
func (t *Terminal) Write(p []byte) (int, error) {
	t.mu.Lock()
	closed := t.closed
	ptyFile := t.ptyFile
	t.mu.Unlock()

	if closed || ptyFile == nil {
		return 0, io.ErrClosedPipe
	}

	return ptyFile.Write(p)
}

// Read blocks for output from the child process. It does not hold the
// mutex across the blocking read, so a concurrent Close can still proceed.
func (t *Terminal) Read(p []byte) (int, error) {
	t.mu.Lock()
	closed := t.closed
	ptyFile := t.ptyFile
	t.mu.Unlock()

	if closed || ptyFile == nil {
		return 0, io.EOF
	}

	return ptyFile.Read(p)
}

// Close tears the terminal down: the PTY file descriptor closes first
// (unblocking any in-flight Read), then the child's process group is
// signaled to exit. Idempotent.
func (t *Terminal) Close() error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil
	}

	t.closed = true
	ptyFile := t.ptyFile
	cmd := t.cmd
	t.ptyFile = nil
	t.cmd = nil
	t.mu.Unlock()

	if ptyFile != nil {
		_ = ptyFile.Close()
	}
	if cmd != nil {
		killProcessGroupAndWait(cmd)
	}
	return nil
}

// killProcessGroupAndWait kills cmd's process group through
// process.KillProcessGroup (SIGTERM, then SIGKILL to the group after a
// short grace period), waits up to terminalCloseTimeout for the child to be
// reaped, and on timeout sends SIGKILL to the child directly.
func killProcessGroupAndWait(cmd *exec.Cmd) {
	proc := cmd.Process
	if proc == nil {
		_ = cmd.Wait()
		return
	}

	leaderPID := proc.Pid
	_ = process.KillProcessGroup(leaderPID, process.KillOptions{})

	done := make(chan struct{})
	go func() {
		_ = cmd.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(terminalCloseTimeout):
		_ = process.ForceKillProcess(leaderPID)
		<-done
	}
}

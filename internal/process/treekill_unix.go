//go:build !windows

package process

import (
	"os/exec"
	"syscall"
	"time"
)

// KillOptions configures process group termination behavior.
type KillOptions struct {
	// GracePeriod is how long to wait for SIGTERM before sending SIGKILL.
	// Default: 200ms
	GracePeriod time.Duration
}

// groupPollInterval is how often KillProcessGroup checks whether a signaled
// group has exited during its grace period.
const groupPollInterval = 10 * time.Millisecond

// processGroupGone reports whether signal 0 against a process group comes
// back ESRCH (no members left).
func processGroupGone(pgid int) bool {
	return syscall.Kill(-pgid, 0) == syscall.ESRCH
}

// KillProcessGroup sends SIGTERM to a process group, waits for the grace period,
// then sends SIGKILL if processes are still running.
// The leaderPID parameter is the process ID of the group leader.
func KillProcessGroup(leaderPID int, opts KillOptions) error {
	if opts.GracePeriod == 0 {
		opts.GracePeriod = 200 * time.Millisecond
	}

	pgid, err := syscall.Getpgid(leaderPID)
	if err != nil {
		if err == syscall.ESRCH {
			return nil
		}
		return err
	}

	if err := syscall.Kill(-pgid, syscall.SIGTERM); err != nil && err != syscall.ESRCH {
		return err
	}

	ticker := time.NewTicker(groupPollInterval)
	defer ticker.Stop()
	deadline := time.After(opts.GracePeriod)
	for {
		if processGroupGone(pgid) {
			return nil
		}
		select {
		case <-deadline:
			// EPERM can occur if the process group emptied during the
			// grace period, between our check above and this signal.
			if err := syscall.Kill(-pgid, syscall.SIGKILL); err != nil && err != syscall.ESRCH && err != syscall.EPERM {
				return err
			}
			return nil
		case <-ticker.C:
		}
	}
}

// SetProcessGroup configures a command to run in its own process group.
func SetProcessGroup(cmd *exec.Cmd) {
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	cmd.SysProcAttr.Setpgid = true
}

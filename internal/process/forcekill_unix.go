//go:build !windows

package process

import "syscall"

// ForceKillProcess immediately sends SIGKILL to a single process (not its
// group), used as the last resort after KillProcessGroup's grace period and
// follow-up SIGKILL still left the PTY's Close from returning in time.
func ForceKillProcess(pid int) error {
	err := syscall.Kill(pid, syscall.SIGKILL)
	if err != nil && isTypedProcessGoneError(err) {
		return nil
	}
	return err
}

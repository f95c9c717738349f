//go:build windows

package process

import "os"

// ForceKillProcess immediately kills a single process, used as the last
// resort after KillProcessGroup's grace period still left the PTY's Close
// from returning in time.
func ForceKillProcess(pid int) error {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return nil
	}
	return proc.Kill()
}

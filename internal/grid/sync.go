package grid

// SetSynchronizedOutput implements DEC private mode 2026: while active, a
// renderer should hold the last completed frame on screen rather than
// draw mid-update content, because the application is emitting a burst of
// writes it wants presented atomically. The grid itself doesn't buffer an
// alternate frame; it defers scrollback eviction so that a burst of
// scrolling doesn't drop rows a synchronized reader hasn't observed yet,
// and it still tracks dirty lines so the first render after the mode ends
// reflects everything that changed while it was active.
func (g *Grid) SetSynchronizedOutput(enabled bool) {
	if enabled == g.syncActive {
		return
	}
	g.syncActive = enabled
	if !enabled {
		g.syncDeferTrim = false
		g.trimScrollback()
	}
}

// SynchronizedOutputActive reports whether the PTY has requested
// synchronized-output mode and not yet released it.
func (g *Grid) SynchronizedOutputActive() bool {
	return g.syncActive
}

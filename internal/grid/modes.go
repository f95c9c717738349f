package grid

import "fmt"

// executeDSR answers a device status report query (CSI n).
func (p *Parser) executeDSR() {
	g := p.g
	if len(p.params) == 0 {
		return
	}
	switch p.params[0] {
	case 5:
		g.respond([]byte("\x1b[0n"))
	case 6:
		row, col := g.CursorY+1, g.CursorX+1
		g.respond([]byte(fmt.Sprintf("\x1b[%d;%dR", row, col)))
	}
}

// executeMode applies a DEC private mode set/reset (CSI ? Pm h/l). Modes
// without a private marker (ANSI modes like IRM) are handled separately
// since they share no numbering with the DEC private set.
func (p *Parser) executeMode(set bool) {
	g := p.g
	if p.intermediate != '?' {
		for _, param := range p.params {
			if param == 4 { // IRM - insert/replace mode
				g.InsertMode = set
			}
		}
		return
	}

	for _, param := range p.params {
		switch param {
		case 3: // DECCOLM - 80/132 column switch
			// Column count itself is the collaborator's concern (it owns
			// the PTY window size); set and reset both still clear the
			// scroll region, blank the viewport, and home the cursor.
			g.setScrollRegion(1, g.Height)
			g.eraseDisplay(2)
			g.CursorX, g.CursorY = 0, 0
			g.bumpVersion()
		case 1: // DECCKM - application cursor keys
			g.CursorKeyMode = set
		case 6: // DECOM - origin mode
			g.OriginMode = set
			g.CursorX = 0
			if set {
				g.CursorY = g.ScrollTop
			} else {
				g.CursorY = 0
			}
			g.clampCursor()
		case 7: // DECAWM - auto-wrap
			g.AutoWrapDisabled = !set
		case 12:
			// Cursor blink: no separate blink flag tracked, the blink
			// variants of CursorShape cover this via DECSCUSR instead.
		case 25: // DECTCEM - cursor visibility
			prev := g.CursorVisible
			g.CursorVisible = set
			if prev != g.CursorVisible {
				g.bumpVersion()
			}
		case 47, 1047, 1049: // alternate screen buffer
			if set {
				g.enterAltScreen()
			} else {
				g.exitAltScreen()
			}
		case 2004:
			// Bracketed paste: the PTY collaborator owns wrapping pasted
			// input, the grid has nothing to track for it.
		case 2026: // synchronized output
			g.SetSynchronizedOutput(set)
		}
	}
}

// executeDECRQM answers a DECRQM mode-status query (CSI ? Ps $ p).
func (p *Parser) executeDECRQM() {
	g := p.g
	if len(p.params) == 0 {
		return
	}
	for _, param := range p.params {
		status := 0
		switch param {
		case 2026:
			if g.syncActive {
				status = 1
			} else {
				status = 2
			}
		case 1049:
			if g.altScreen {
				status = 1
			} else {
				status = 2
			}
		case 7:
			if !g.AutoWrapDisabled {
				status = 1
			} else {
				status = 2
			}
		case 25:
			if g.CursorVisible {
				status = 1
			} else {
				status = 2
			}
		}
		g.respond([]byte(fmt.Sprintf("\x1b[?%d;%d$y", param, status)))
	}
}

package grid

import "fmt"

// executeCSI dispatches a completed CSI sequence by its final byte.
func (p *Parser) executeCSI(final byte) {
	g := p.g
	switch final {
	case 'A': // CUU
		g.moveCursor(-p.getParam(0, 1), 0)
	case 'B': // CUD
		g.moveCursor(p.getParam(0, 1), 0)
	case 'C': // CUF
		g.moveCursor(0, p.getParam(0, 1))
	case 'D': // CUB
		g.moveCursorBack(p.getParam(0, 1))
	case 'E': // CNL
		prevX, prevY := g.CursorX, g.CursorY
		g.CursorX = 0
		g.moveCursor(p.getParam(0, 1), 0)
		g.bumpVersionIfCursorMoved(prevX, prevY)
	case 'F': // CPL
		prevX, prevY := g.CursorX, g.CursorY
		g.CursorX = 0
		g.moveCursor(-p.getParam(0, 1), 0)
		g.bumpVersionIfCursorMoved(prevX, prevY)
	case 'G', '`': // CHA / HPA
		prevX, prevY := g.CursorX, g.CursorY
		g.CursorX = clampInt(p.getParam(0, 1)-1, 0, g.Width-1)
		g.bumpVersionIfCursorMoved(prevX, prevY)
	case 'H', 'f': // CUP / HVP
		g.setCursorPos(p.getParam(0, 1), p.getParam(1, 1))
	case 'I': // CHT - forward tab
		for i := 0; i < p.getParam(0, 1); i++ {
			g.nextTabStop()
		}
	case 'J': // ED
		g.eraseDisplay(p.getParam(0, 0))
	case 'K': // EL
		g.eraseLine(p.getParam(0, 0))
	case 'L': // IL
		g.insertLines(p.getParam(0, 1))
	case 'M': // DL
		g.deleteLines(p.getParam(0, 1))
	case 'P': // DCH
		g.deleteChars(p.getParam(0, 1))
	case 'S': // SU
		g.scrollUp(p.getParam(0, 1))
	case 'T': // SD
		g.scrollDown(p.getParam(0, 1))
	case 'X': // ECH
		g.eraseChars(p.getParam(0, 1))
	case 'Z': // CBT - back tab
		g.prevTabStop(p.getParam(0, 1))
	case '@': // ICH
		g.insertChars(p.getParam(0, 1))
	case 'b': // REP
		g.repeatPrecedingChar(p.getParam(0, 1))
	case 'd': // VPA
		prevX, prevY := g.CursorX, g.CursorY
		row := p.getParam(0, 1)
		if g.OriginMode {
			g.CursorY = g.ScrollTop + row - 1
		} else {
			g.CursorY = row - 1
		}
		g.clampCursor()
		g.bumpVersionIfCursorMoved(prevX, prevY)
	case 'g': // TBC - tab clear
		g.clearTabStop(p.getParam(0, 0))
	case 'm': // SGR
		p.executeSGR()
	case 'n': // DSR
		p.executeDSR()
	case 'q': // DECSCUSR cursor shape, when intermediate is ' '
		if p.csiIntermediate == ' ' {
			g.setCursorShape(p.getParam(0, 0))
		}
	case 'r': // DECSTBM
		top := p.getParam(0, 1)
		bottom := p.getParam(1, g.Height)
		g.setScrollRegion(top, bottom)
	case 's': // SCP, unless this is a DECSLRM-style private form
		if p.intermediate == 0 && p.csiIntermediate == 0 {
			g.saveCursor()
		}
	case 'u': // RCP
		if p.intermediate == 0 && p.csiIntermediate == 0 {
			g.restoreCursor()
		}
	case 'c': // DA
		if p.intermediate == '>' {
			g.respond([]byte("\x1b[>1;10;0c"))
		} else if p.intermediate == 0 {
			g.respond([]byte("\x1b[?6c"))
		}
	case 'h': // SM / DECSET
		p.executeMode(true)
	case 'l': // RM / DECRST
		p.executeMode(false)
	case 't': // Window manipulation: only the text-area-size query is answered
		if p.getParam(0, 0) == 18 {
			g.respond([]byte(fmt.Sprintf("\x1b[8;%d;%dt", g.Height, g.Width)))
		}
	case 'p':
		if p.intermediate == '?' && p.csiIntermediate == '$' {
			p.executeDECRQM()
		}
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

package grid

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Render returns the visible window as a single ANSI-styled string, one
// line per row, followed by a CUP sequence placing the cursor at its
// current coordinates (or none, if the cursor is hidden). When the user
// has scrolled into history (ViewOffset > 0) the window is drawn from
// LinesAbove instead of the live Viewport.
func (g *Grid) Render() string {
	var buf strings.Builder
	buf.Grow(g.Width*g.Height*2 + 16)

	rows := g.visibleWindow()
	var lastStyle Style
	first := true
	for y, row := range rows {
		for _, cell := range row.Cells {
			if cell.Width == 0 {
				continue
			}
			if first || cell.Style != lastStyle {
				buf.WriteString(styleToANSI(cell.Style))
				lastStyle = cell.Style
				first = false
			}
			if cell.Rune == 0 {
				buf.WriteRune(' ')
			} else {
				buf.WriteRune(cell.Rune)
			}
		}
		if y < len(rows)-1 {
			buf.WriteString("\r\n")
		}
	}
	buf.WriteString("\x1b[0m")

	if x, y, visible := g.CursorCoordinates(); visible && g.ViewOffset == 0 {
		buf.WriteString(ansi.CursorPosition(x, y))
	}
	return buf.String()
}

// visibleWindow returns the Height rows currently shown, drawing from
// LinesAbove when the user has scrolled into history.
func (g *Grid) visibleWindow() []Row {
	if g.ViewOffset == 0 {
		return g.Viewport
	}
	combined := append(append([]Row{}, g.LinesAbove...), g.Viewport...)
	start := len(g.LinesAbove) - g.ViewOffset
	if start < 0 {
		start = 0
	}
	end := start + g.Height
	if end > len(combined) {
		end = len(combined)
	}
	window := combined[start:end]
	for len(window) < g.Height {
		window = append(window, NewBlankRow(g.Width))
	}
	return window
}

// styleAttrCodes pairs a Style boolean field's accessor with the SGR code
// that turns it on, walked in order when building a reset-and-reapply
// sequence.
var styleAttrCodes = []struct {
	code string
	on   func(Style) bool
}{
	{"1", func(s Style) bool { return s.Bold }},
	{"2", func(s Style) bool { return s.Dim }},
	{"3", func(s Style) bool { return s.Italic }},
	{"4", func(s Style) bool { return s.Underline }},
	{"5", func(s Style) bool { return s.Blink }},
	{"7", func(s Style) bool { return s.Reverse }},
	{"8", func(s Style) bool { return s.Hidden }},
	{"9", func(s Style) bool { return s.Strike }},
}

// styleToANSI renders a cell's style as a full SGR reset-and-reapply
// sequence; used whenever a run's style differs from the previous cell's.
func styleToANSI(s Style) string {
	codes := make([]string, 0, len(styleAttrCodes)+1+6)
	codes = append(codes, "0")
	for _, attr := range styleAttrCodes {
		if attr.on(s) {
			codes = append(codes, attr.code)
		}
	}
	codes = append(codes, colorToANSI(s.Fg, true)...)
	codes = append(codes, colorToANSI(s.Bg, false)...)
	return "\x1b[" + strings.Join(codes, ";") + "m"
}

// colorToANSI renders one of a cell's two colors (foreground when fg is
// true, else background) as its SGR parameter(s): the plain 8-color and
// bright-8-color ranges for low indices, an indexed 256-color escape for
// the rest, and a truecolor escape for ColorRGB. A default-colored cell
// contributes no parameters at all.
func colorToANSI(c Color, fg bool) []string {
	base16, base256, baseRGB := 30, 38, 38
	if !fg {
		base16, base256, baseRGB = 40, 48, 48
	}

	switch c.Type {
	case ColorIndexed:
		switch idx := c.Value; {
		case idx < 8:
			return []string{fmt.Sprintf("%d", base16+int(idx))}
		case idx < 16:
			bright := base16 + 60
			return []string{fmt.Sprintf("%d", bright+int(idx)-8)}
		default:
			return []string{fmt.Sprintf("%d", base256), "5", fmt.Sprintf("%d", idx)}
		}
	case ColorRGB:
		r := (c.Value >> 16) & 0xFF
		g := (c.Value >> 8) & 0xFF
		b := c.Value & 0xFF
		return []string{fmt.Sprintf("%d", baseRGB), "2", fmt.Sprintf("%d", r), fmt.Sprintf("%d", g), fmt.Sprintf("%d", b)}
	default: // ColorDefault
		return nil
	}
}

// CursorShapeSequence returns the DECSCUSR sequence for the grid's current
// cursor shape, used by the tab compositor when it renders the active
// pane's cursor.
func (g *Grid) CursorShapeSequence() string {
	return g.cursorShapeSequence()
}

// cursorShapeSequence returns the DECSCUSR sequence for the grid's current
// cursor shape, sent to the client whenever the shape changes.
func (g *Grid) cursorShapeSequence() string {
	var n int
	switch g.CursorShape {
	case CursorBlock:
		n = 2
	case CursorBlockBlink:
		n = 1
	case CursorUnderline:
		n = 4
	case CursorUnderlineBlink:
		n = 3
	case CursorBar:
		n = 6
	case CursorBarBlink:
		n = 5
	}
	return fmt.Sprintf("\x1b[%d q", n)
}

// PlainLines returns the visible window as plain text (styles stripped),
// used by search and by clients that only need line content.
func (g *Grid) PlainLines() []string {
	rows := g.visibleWindow()
	lines := make([]string, len(rows))
	for i, row := range rows {
		lines[i] = ansi.Strip(rowPlainText(row))
	}
	return lines
}

func rowPlainText(row Row) string {
	var buf strings.Builder
	for _, cell := range row.Cells {
		if cell.Width == 0 {
			continue
		}
		if cell.Rune == 0 {
			buf.WriteRune(' ')
		} else {
			buf.WriteRune(cell.Rune)
		}
	}
	return strings.TrimRight(buf.String(), " ")
}

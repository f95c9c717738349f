package grid

import "strings"

// SearchMatch is one line in the combined scrollback+viewport buffer that
// matched a Search query.
type SearchMatch struct {
	LineIndex int
	Text      string
}

// Search scans LinesAbove followed by Viewport for lines containing query
// (case-insensitive), returning their index in that combined ordering.
func (g *Grid) Search(query string) []SearchMatch {
	if query == "" {
		return nil
	}
	needle := strings.ToLower(query)
	var matches []SearchMatch
	idx := 0
	for _, row := range g.LinesAbove {
		text := rowPlainText(row)
		if strings.Contains(strings.ToLower(text), needle) {
			matches = append(matches, SearchMatch{LineIndex: idx, Text: text})
		}
		idx++
	}
	for _, row := range g.Viewport {
		text := rowPlainText(row)
		if strings.Contains(strings.ToLower(text), needle) {
			matches = append(matches, SearchMatch{LineIndex: idx, Text: text})
		}
		idx++
	}
	return matches
}

// ScrollToLine sets ViewOffset so that the given combined-buffer line index
// is visible, centering it within the viewport where possible.
func (g *Grid) ScrollToLine(lineIndex int) {
	target := len(g.LinesAbove) - lineIndex + g.Height/2
	if target < 0 {
		target = 0
	}
	if target > len(g.LinesAbove) {
		target = len(g.LinesAbove)
	}
	g.ViewOffset = target
	g.bumpVersion()
}

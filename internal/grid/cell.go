package grid

// ColorType identifies how a Color's value should be interpreted.
type ColorType uint8

const (
	ColorDefault ColorType = iota
	ColorIndexed
	ColorRGB
)

// Color is a terminal color: a palette index (0-255), an RGB triple packed
// into Value as 0xRRGGBB, or the terminal's default color.
type Color struct {
	Type  ColorType
	Value uint32
}

// Style holds the attributes attached to a single cell.
type Style struct {
	Fg        Color
	Bg        Color
	Bold      bool
	Dim       bool
	Italic    bool
	Underline bool
	Blink     bool
	Reverse   bool
	Hidden    bool
	Strike    bool
	// Reset marks a cell whose style was produced by an explicit SGR 0,
	// distinguishing it from a cell that merely never received SGR codes.
	Reset bool
}

// Cell is a single character position in a Row.
type Cell struct {
	Rune  rune
	Style Style
	// Width is the cell's display width: 1 for a normal cell, 2 for the
	// leading cell of a wide East-Asian character, 0 for a wide character's
	// continuation cell. Combining marks are not stored in any cell.
	Width int
}

// DefaultCell returns a blank, default-styled cell.
func DefaultCell() Cell {
	return Cell{Rune: ' ', Width: 1}
}

// Row is an ordered sequence of cells plus the canonical/continuation
// distinction described by the grid's line-wrap model: a canonical row is
// the first row of a logical line, a continuation row was produced by
// soft-wrapping a logical line that didn't fit in one row.
type Row struct {
	Cells     []Cell
	Canonical bool
}

// NewBlankRow creates a canonical row of width blank cells.
func NewBlankRow(width int) Row {
	return Row{Cells: MakeBlankLine(width), Canonical: true}
}

// MakeBlankLine creates a line of width blank cells.
func MakeBlankLine(width int) []Cell {
	line := make([]Cell, width)
	for i := range line {
		line[i] = DefaultCell()
	}
	return line
}

// CopyLine deep-copies a line of cells.
func CopyLine(src []Cell) []Cell {
	dst := make([]Cell, len(src))
	copy(dst, src)
	return dst
}

// CloneRow deep-copies a row, cells included.
func CloneRow(r Row) Row {
	return Row{Cells: CopyLine(r.Cells), Canonical: r.Canonical}
}

// DisplayWidth returns the sum of the cell display widths in the row, which
// may differ from len(Cells) once wide characters are present.
func (r Row) DisplayWidth() int {
	w := 0
	for _, c := range r.Cells {
		w += c.Width
	}
	return w
}

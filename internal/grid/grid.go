// Package grid implements the per-PTY VT interpreter: a stateful byte-stream
// consumer that maintains a screen's character matrix, scrollback, cursor
// state, scroll region, and character attributes.
package grid

// MaxScrollback bounds the number of rows kept above the viewport.
const MaxScrollback = 10000

// ResponseWriter receives bytes the grid has synthesized in reply to a
// terminal query (device attributes, cursor position and status reports)
// so the caller can forward them back to the PTY's stdin. OSC color queries
// are not answered.
type ResponseWriter func([]byte)

// CursorShape selects the glyph xterm uses to draw the cursor.
type CursorShape int

const (
	CursorBlock CursorShape = iota
	CursorBlockBlink
	CursorUnderline
	CursorUnderlineBlink
	CursorBar
	CursorBarBlink
)

// savedCursorState is the DECSC/DECRC snapshot.
type savedCursorState struct {
	x, y     int
	style    Style
	charsets [4]charsetID
	active   int
}

// Grid is a stateful VT interpreter for one PTY.
type Grid struct {
	Width, Height int

	// LinesAbove is the bounded scrollback above the viewport, oldest first.
	LinesAbove []Row
	// Viewport holds exactly Height visible rows after any top-level
	// operation returns (it may grow or shrink transiently mid-operation).
	Viewport []Row
	// ViewOffset is how many rows the user has scrolled up into LinesAbove;
	// 0 means the live viewport is shown. Lines conceptually pushed "below"
	// the viewport while scrolled are simply the suffix of LinesAbove that
	// ViewOffset has not yet scrolled past — render_lines recomputes the
	// visible window from LinesAbove+Viewport+ViewOffset on demand instead
	// of physically relocating rows into a third buffer.
	ViewOffset int

	CursorX, CursorY int
	CursorVisible    bool // DECTCEM state (true = visible)
	CursorShape      CursorShape

	saved *savedCursorState

	altScreen     bool
	altLinesAbove []Row
	altViewport   []Row
	altCursorX    int
	altCursorY    int
	altSaved      *savedCursorState

	ScrollTop, ScrollBottom int // scroll region, [top, bottom)
	OriginMode              bool
	CursorKeyMode           bool // DECCKM application cursor keys
	InsertMode              bool // IRM
	AutoWrapDisabled        bool

	CurrentStyle  Style
	precedingChar rune // preceding printable char, for CSI b repeat

	tabStops map[int]bool

	charsets      [4]charsetID
	activeCharset int // index into charsets selected by SI/SO (0 = G0, 1 = G1)

	parser         *Parser
	responseWriter ResponseWriter
	pendingReplies [][]byte

	syncActive    bool
	syncDeferTrim bool

	version     uint64
	renderDirty []bool
	renderAll   bool

	// Title is the window/tab title set via OSC 0/2, surfaced to the tab
	// layer so a pane's tab label can track it.
	Title string
}

// New creates a Grid with the given viewport dimensions.
func New(width, height int) *Grid {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	g := &Grid{
		Width:        width,
		Height:       height,
		ScrollTop:    0,
		ScrollBottom: height,
		CursorVisible: true,
	}
	g.Viewport = makeBlankRows(width, height)
	g.LinesAbove = make([]Row, 0, MaxScrollback)
	g.tabStops = defaultTabStops(width)
	g.charsets = [4]charsetID{charsetASCII, charsetASCII, charsetASCII, charsetASCII}
	g.parser = NewParser(g)
	g.resetRenderCache()
	return g
}

func makeBlankRows(width, height int) []Row {
	rows := make([]Row, height)
	for i := range rows {
		rows[i] = NewBlankRow(width)
	}
	return rows
}

func defaultTabStops(width int) map[int]bool {
	stops := make(map[int]bool)
	for col := 8; col < width; col += 8 {
		stops[col] = true
	}
	return stops
}

// Advance feeds bytes from the PTY into the VT state machine.
func (g *Grid) Advance(data []byte) {
	g.parser.Parse(data)
}

// SetResponseWriter installs the callback used by TakePendingPTYReplies'
// synchronous counterpart; retained for callers that prefer push delivery.
func (g *Grid) SetResponseWriter(w ResponseWriter) {
	g.responseWriter = w
}

// respond queues a synthesized reply and, if a ResponseWriter is installed,
// forwards it immediately as well.
func (g *Grid) respond(data []byte) {
	g.pendingReplies = append(g.pendingReplies, data)
	if g.responseWriter != nil {
		g.responseWriter(data)
	}
}

// TakePendingPTYReplies drains and returns the replies the grid has
// synthesized since the last call (device attributes, cursor position and
// status reports).
func (g *Grid) TakePendingPTYReplies() [][]byte {
	if len(g.pendingReplies) == 0 {
		return nil
	}
	out := g.pendingReplies
	g.pendingReplies = nil
	return out
}

// CursorCoordinates returns the cursor's (x, y) unless it is hidden.
func (g *Grid) CursorCoordinates() (int, int, bool) {
	if !g.CursorVisible {
		return 0, 0, false
	}
	return g.CursorX, g.CursorY, true
}

func (g *Grid) clampCursor() {
	if g.CursorX < 0 {
		g.CursorX = 0
	}
	if g.CursorX > g.Width {
		g.CursorX = g.Width
	}
	if g.OriginMode {
		if g.CursorY < g.ScrollTop {
			g.CursorY = g.ScrollTop
		}
		if g.CursorY >= g.ScrollBottom {
			g.CursorY = g.ScrollBottom - 1
		}
		return
	}
	if g.CursorY < 0 {
		g.CursorY = 0
	}
	if g.CursorY >= g.Height {
		g.CursorY = g.Height - 1
	}
}

func (g *Grid) trimScrollback() {
	if len(g.LinesAbove) > MaxScrollback {
		if g.syncActive {
			g.syncDeferTrim = true
			return
		}
		g.LinesAbove = g.LinesAbove[len(g.LinesAbove)-MaxScrollback:]
	}
	if g.ViewOffset > len(g.LinesAbove) {
		g.ViewOffset = len(g.LinesAbove)
	}
}

func (g *Grid) bumpVersion() {
	g.version++
}

func (g *Grid) bumpVersionIfCursorMoved(prevX, prevY int) {
	if g.CursorX != prevX || g.CursorY != prevY {
		g.bumpVersion()
	}
}

// Version returns the counter that increments whenever visible content or
// cursor state changes, used to cache rendered frames.
func (g *Grid) Version() uint64 {
	return g.version
}

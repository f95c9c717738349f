package grid

import "testing"

func plainLine(g *Grid, y int) string {
	var out []rune
	for _, c := range g.Viewport[y].Cells {
		if c.Width == 0 {
			continue
		}
		if c.Rune == 0 {
			out = append(out, ' ')
		} else {
			out = append(out, c.Rune)
		}
	}
	return string(out)
}

// S1: writing a line longer than the viewport width wraps onto the next
// row as a continuation line, not a new canonical one.
func TestScenario_WrapOnOverflow(t *testing.T) {
	g := New(10, 5)
	g.Advance([]byte("0123456789ABCDE"))

	if got := plainLine(g, 0); got != "0123456789" {
		t.Fatalf("row 0 = %q, want %q", got, "0123456789")
	}
	if got := plainLine(g, 1); got[:5] != "ABCDE" {
		t.Fatalf("row 1 = %q, want prefix %q", got, "ABCDE")
	}
	if g.Viewport[1].Canonical {
		t.Fatal("wrapped continuation row must not be canonical")
	}
	if x, y, _ := g.CursorCoordinates(); x != 5 || y != 1 {
		t.Fatalf("cursor = (%d,%d), want (5,1)", x, y)
	}
}

// S2: narrowing the viewport reflows a soft-wrapped logical line across
// more rows, preserving its content.
func TestScenario_ReflowNarrower(t *testing.T) {
	g := New(10, 5)
	g.Advance([]byte("0123456789"))
	g.Resize(5, 5)

	if got := plainLine(g, 0); got != "01234" {
		t.Fatalf("row 0 = %q, want %q", got, "01234")
	}
	if got := plainLine(g, 1); got != "56789" {
		t.Fatalf("row 1 = %q, want %q", got, "56789")
	}
	if !g.Viewport[0].Canonical || g.Viewport[1].Canonical {
		t.Fatal("expected row 0 canonical, row 1 a continuation")
	}
}

// S3: a scroll region that does not start at row 0 (rows 3-6 here) does
// not feed scrollback when it scrolls.
func TestScenario_ScrollRegionConfinedNoScrollback(t *testing.T) {
	g := New(10, 10)
	g.Advance([]byte("\x1b[3;6r")) // DECSTBM rows 3-6 (1-indexed)
	g.Advance([]byte("\x1b[3;1H"))
	for i := 0; i < 8; i++ {
		g.Advance([]byte("line\r\n"))
	}
	if len(g.LinesAbove) != 0 {
		t.Fatalf("scroll region not anchored at row 0 must not push scrollback, got %d lines", len(g.LinesAbove))
	}
}

// Scrollback never grows unbounded past MaxScrollback rows.
func TestInvariant_ScrollbackBounded(t *testing.T) {
	g := New(10, 5)
	for i := 0; i < MaxScrollback+500; i++ {
		g.Advance([]byte("x\r\n"))
	}
	if len(g.LinesAbove) > MaxScrollback {
		t.Fatalf("scrollback length = %d, want <= %d", len(g.LinesAbove), MaxScrollback)
	}
}

// The cursor never strays outside the current viewport bounds.
func TestInvariant_CursorStaysInBounds(t *testing.T) {
	g := New(8, 4)
	g.Advance([]byte("\x1b[100;100H"))
	if g.CursorX < 0 || g.CursorX > g.Width || g.CursorY < 0 || g.CursorY >= g.Height {
		t.Fatalf("cursor (%d,%d) out of bounds for %dx%d", g.CursorX, g.CursorY, g.Width, g.Height)
	}
}

// Resizing to the same dimensions is a no-op on visible content.
func TestInvariant_ResizeIdempotent(t *testing.T) {
	g := New(20, 6)
	g.Advance([]byte("hello world\r\nsecond line"))
	before := g.Render()
	g.Resize(20, 6)
	after := g.Render()
	if before != after {
		t.Fatalf("resizing to identical dimensions changed output:\nbefore=%q\nafter=%q", before, after)
	}
}

// Resizing always leaves the viewport at exactly the requested dimensions.
func TestInvariant_ViewportMatchesRequestedSize(t *testing.T) {
	g := New(40, 10)
	g.Advance([]byte("some scrollback padding\r\n"))
	g.Resize(15, 20)
	if g.Width != 20 || g.Height != 15 {
		t.Fatalf("grid reports %dx%d, want 20x15", g.Width, g.Height)
	}
	if len(g.Viewport) != 15 {
		t.Fatalf("viewport has %d rows, want 15", len(g.Viewport))
	}
	for _, row := range g.Viewport {
		if len(row.Cells) != 20 {
			t.Fatalf("row has %d cells, want 20", len(row.Cells))
		}
	}
}

// Entering and leaving the alternate screen restores the primary screen's
// content exactly as it was.
func TestInvariant_AltScreenRoundTrip(t *testing.T) {
	g := New(10, 3)
	g.Advance([]byte("primary content"))
	before := g.Render()

	g.Advance([]byte("\x1b[?1049h"))
	g.Advance([]byte("alternate screen content"))
	g.Advance([]byte("\x1b[?1049l"))

	after := g.Render()
	if before != after {
		t.Fatalf("primary screen not restored after alt screen round trip:\nbefore=%q\nafter=%q", before, after)
	}
}

package grid

import (
	"testing"
	"unicode/utf8"
)

func FuzzParser_NeverPanics(f *testing.F) {
	f.Add([]byte("hello"))
	f.Add([]byte("\x1b[31mred\x1b[0m"))
	f.Add([]byte("\x1b[?1049h\x1b[H\x1b[2J"))
	f.Add([]byte("\x1b[3;6r\x1b[3;1H"))
	f.Fuzz(func(t *testing.T, data []byte) {
		g := New(80, 24)
		g.Advance(data)
	})
}

func FuzzRender_AlwaysValidUTF8(f *testing.F) {
	f.Add([]byte("line1\r\nline2"))
	f.Add([]byte("\x1b[1mBold\x1b[0m"))
	f.Add([]byte("\x1b]0;title\x07"))
	f.Fuzz(func(t *testing.T, data []byte) {
		g := New(80, 24)
		g.Advance(data)
		out := g.Render()
		if !utf8.ValidString(out) {
			t.Fatalf("render output is not valid utf-8")
		}
	})
}

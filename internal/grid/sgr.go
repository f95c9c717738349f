package grid

// sgrAttr mutates a style for a single non-color SGR attribute code.
type sgrAttr func(*Style)

// sgrAttrs covers every SGR code that isn't a color selector: bold/dim/
// italic/underline/blink/reverse/hidden/strike and their resets, plus
// the bare foreground/background "default" codes.
var sgrAttrs = map[int]sgrAttr{
	0:  func(s *Style) { *s = Style{Reset: true} },
	1:  func(s *Style) { s.Bold = true },
	2:  func(s *Style) { s.Dim = true },
	3:  func(s *Style) { s.Italic = true },
	4:  func(s *Style) { s.Underline = true },
	5:  func(s *Style) { s.Blink = true },
	6:  func(s *Style) { s.Blink = true },
	7:  func(s *Style) { s.Reverse = true },
	8:  func(s *Style) { s.Hidden = true },
	9:  func(s *Style) { s.Strike = true },
	21: func(s *Style) { s.Bold = false },
	22: func(s *Style) { s.Bold, s.Dim = false, false },
	23: func(s *Style) { s.Italic = false },
	24: func(s *Style) { s.Underline = false },
	25: func(s *Style) { s.Blink = false },
	27: func(s *Style) { s.Reverse = false },
	28: func(s *Style) { s.Hidden = false },
	29: func(s *Style) { s.Strike = false },
	39: func(s *Style) { s.Fg = Color{Type: ColorDefault} },
	49: func(s *Style) { s.Bg = Color{Type: ColorDefault} },
}

// indexedColorRange describes a contiguous run of SGR codes that select an
// indexed color for either the foreground or background.
type indexedColorRange struct {
	lo, hi int
	base   uint32
	fg     bool
}

var indexedColorRanges = []indexedColorRange{
	{30, 37, 0, true},
	{90, 97, 8, true},
	{40, 47, 0, false},
	{100, 107, 8, false},
}

// executeSGR applies an SGR (CSI m) parameter list to the current style,
// accumulating across the sequence; an empty or bare "m" resets.
func (p *Parser) executeSGR() {
	g := p.g
	params := p.params
	if len(params) == 0 {
		params = []int{0}
	}

	for i := 0; i < len(params); i++ {
		param := params[i]

		if param == 38 {
			i = p.parseExtendedColor(i, &g.CurrentStyle.Fg)
			continue
		}
		if param == 48 {
			i = p.parseExtendedColor(i, &g.CurrentStyle.Bg)
			continue
		}
		if rng, idx, ok := lookupIndexedColor(param); ok {
			c := Color{Type: ColorIndexed, Value: rng.base + uint32(idx)}
			if rng.fg {
				g.CurrentStyle.Fg = c
			} else {
				g.CurrentStyle.Bg = c
			}
			continue
		}
		if attr, ok := sgrAttrs[param]; ok {
			attr(&g.CurrentStyle)
		}
	}
}

// lookupIndexedColor finds the range param falls in, if any, and returns
// its offset within that range (0-7).
func lookupIndexedColor(param int) (indexedColorRange, int, bool) {
	for _, rng := range indexedColorRanges {
		if param >= rng.lo && param <= rng.hi {
			return rng, param - rng.lo, true
		}
	}
	return indexedColorRange{}, 0, false
}

// parseExtendedColor consumes the sub-parameters of an extended SGR 38/48
// sequence (indexed or truecolor) starting at i, returning the index of
// the last sub-parameter consumed.
func (p *Parser) parseExtendedColor(i int, color *Color) int {
	next := func(offset int) (int, bool) {
		j := i + offset
		if j >= len(p.params) {
			return 0, false
		}
		return p.params[j], true
	}

	mode, ok := next(1)
	if !ok {
		return i
	}
	switch mode {
	case 2:
		r, rok := next(2)
		g, gok := next(3)
		b, bok := next(4)
		if rok && gok && bok {
			color.Type = ColorRGB
			color.Value = uint32(r)<<16 | uint32(g)<<8 | uint32(b)
			return i + 4
		}
	case 5:
		if idx, iok := next(2); iok {
			color.Type = ColorIndexed
			color.Value = uint32(idx)
			return i + 2
		}
	}
	return i + 1
}

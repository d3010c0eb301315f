package block

// ColorDXT1 views an Element as a ColorDXT1 cell: low_color:u16,
// high_color:u16, selectors:u32 (16 x 2-bit, row-major, LSB = pixel(0,0)).
type ColorDXT1 Element

// NewColorDXT1 packs a low/high RGB565 endpoint pair and 16 two-bit
// selectors into a ColorDXT1 cell.
func NewColorDXT1(low, high uint16, selectors uint32) ColorDXT1 {
	return ColorDXT1(Element(low) | Element(high)<<16 | Element(selectors)<<32)
}

// LowColor returns the packed RGB565 low endpoint.
func (b ColorDXT1) LowColor() uint16 { return uint16(b) }

// HighColor returns the packed RGB565 high endpoint.
func (b ColorDXT1) HighColor() uint16 { return uint16(b >> 16) }

// ThreeColor reports whether this block uses the 3-color + transparent
// palette branch (low <= high), as opposed to the opaque 4-color branch.
func (b ColorDXT1) ThreeColor() bool { return b.LowColor() <= b.HighColor() }

// Selector returns the 2-bit selector at pixel (x,y), 0 <= x,y < 4.
func (b ColorDXT1) Selector(x, y int) uint8 {
	shift := uint((y<<2|x)*2 + 32)
	return uint8((b >> shift) & 0x3)
}

// SetSelector returns a copy of b with the selector at (x,y) set to v
// (only the low 2 bits of v are used).
func (b ColorDXT1) SetSelector(x, y int, v uint8) ColorDXT1 {
	shift := uint((y<<2|x)*2 + 32)
	mask := ColorDXT1(0x3) << shift
	return (b &^ mask) | (ColorDXT1(v&0x3) << shift)
}

// GetBlockColors generates the 4-entry DXT1 palette for the given packed
// endpoints. The palette always has 4 entries;
// threeColor reports which branch was used (entry 3 is transparent iff
// threeColor is true).
func GetBlockColors(low, high uint16) (palette [4]RGBA, threeColor bool) {
	r0, g0, b0 := UnpackColor565(low, true)
	r1, g1, b1 := UnpackColor565(high, true)

	c0 := RGBA{r0, g0, b0, 255}
	c1 := RGBA{r1, g1, b1, 255}
	palette[0] = c0
	palette[1] = c1

	if low > high {
		palette[2] = RGBA{blend2over3(r0, r1), blend2over3(g0, g1), blend2over3(b0, b1), 255}
		palette[3] = RGBA{blend2over3(r1, r0), blend2over3(g1, g0), blend2over3(b1, b0), 255}
		return palette, false
	}

	palette[2] = RGBA{clampAverage(r0, r1), clampAverage(g0, g1), clampAverage(b0, b1), 255}
	palette[3] = RGBA{0, 0, 0, 0}
	return palette, true
}

// FlipX reverses selectors along the horizontal axis within the full
// 4x4 grid.
func (b ColorDXT1) FlipX() ColorDXT1 { return b.FlipXPartial(4) }

// FlipY reverses selectors along the vertical axis within the full 4x4
// grid.
func (b ColorDXT1) FlipY() ColorDXT1 { return b.FlipYPartial(4) }

// FlipXPartial reverses selectors along the horizontal axis, but only
// within the first w columns (w <= 4); used for the odd middle block of
// images whose width is 1-4 pixels.
func (b ColorDXT1) FlipXPartial(w int) ColorDXT1 {
	out := b
	for y := 0; y < 4; y++ {
		for x := 0; x < w; x++ {
			out = out.SetSelector(x, y, b.Selector(w-1-x, y))
		}
	}
	return out
}

// FlipYPartial reverses selectors along the vertical axis, but only
// within the first h rows (h <= 4); used for the odd middle block of
// images whose height is 1-4 pixels.
func (b ColorDXT1) FlipYPartial(h int) ColorDXT1 {
	out := b
	for y := 0; y < h; y++ {
		for x := 0; x < 4; x++ {
			out = out.SetSelector(x, y, b.Selector(x, h-1-y))
		}
	}
	return out
}

// At returns the decoded, non-premultiplied RGBA color at pixel (x,y)
// within the block. alphaSignificant controls whether selector 3 in the
// 3-color branch decodes to transparent black (true, for DXT1 and
// DXT1A, where this element is the image's only one) or opaque black
// (false, for DXT3/DXT5, where a dedicated alpha element owns alpha and
// this element's own alpha bit is meaningless).
func (b ColorDXT1) At(x, y int, alphaSignificant bool) RGBA {
	palette, threeColor := GetBlockColors(b.LowColor(), b.HighColor())
	s := b.Selector(x, y)
	c := palette[s]
	if threeColor && s == 3 && !alphaSignificant {
		c.A = 255
	}
	return c
}

package dxtimage

import "github.com/texelcomp/dxtimage/internal/block"

// GetPixel decodes the RGBA color at absolute pixel (x,y), touching only
// the one block that contains it.
func (c *core) GetPixel(x, y int) RGBA {
	bx, by := x/4, y/4
	lx, ly := x%4, y%4
	result := RGBA{A: 255}
	sole := len(c.format.Elements()) == 1
	for i, desc := range c.format.Elements() {
		e := c.getElement(bx, by, i)
		switch desc.Codec {
		case block.CodecColorDXT1:
			cb := block.ColorDXT1(e)
			px := fromBlockRGBA(cb.At(lx, ly, sole))
			result.R, result.G, result.B = px.R, px.G, px.B
			if sole {
				result.A = px.A
			}
		case block.CodecAlphaDXT3:
			result.A = block.AlphaDXT3(e).Alpha(lx, ly, true)
		case block.CodecAlphaDXT5:
			v := block.AlphaDXT5(e).At(lx, ly)
			switch desc.Component {
			case 0:
				result.R = v
			case 1:
				result.G = v
			case 3:
				result.A = v
			}
		}
	}
	return result
}

// GetPixelAlpha decodes only the alpha (or, for DXN formats, the
// always-opaque default) channel at (x,y).
func (c *core) GetPixelAlpha(x, y int) uint8 {
	return c.GetPixel(x, y).A
}

// SetPixel quantizes col to the nearest existing palette entry of the
// block containing (x,y) and rewrites that pixel's selector(s) in
// place. The block's endpoints are left untouched: this is a selector
// nudge, not a re-encode.
func (c *core) SetPixel(x, y int, col RGBA) {
	bx, by := x/4, y/4
	lx, ly := x%4, y%4
	for i, desc := range c.format.Elements() {
		e := c.getElement(bx, by, i)
		switch desc.Codec {
		case block.CodecColorDXT1:
			cb := block.ColorDXT1(e)
			palette, threeColor := block.GetBlockColors(cb.LowColor(), cb.HighColor())
			var sel uint8
			if threeColor && c.format == DXT1A && col.A < 128 {
				sel = 3
			} else {
				sel = nearestColorIndex(palette, col)
			}
			c.setElement(bx, by, i, Element(cb.SetSelector(lx, ly, sel)))
		case block.CodecAlphaDXT3:
			ab := block.AlphaDXT3(e)
			c.setElement(bx, by, i, Element(ab.SetAlpha(lx, ly, col.A)))
		case block.CodecAlphaDXT5:
			ab := block.AlphaDXT5(e)
			palette := block.GetBlockValues(ab.LowAlpha(), ab.HighAlpha())
			var target uint8
			switch desc.Component {
			case 0:
				target = col.R
			case 1:
				target = col.G
			case 3:
				target = col.A
			}
			sel := nearestScalarIndex(palette, target)
			c.setElement(bx, by, i, Element(ab.SetSelector(lx, ly, sel)))
		}
	}
}

// GetBlockPixels decodes all 16 pixels of block (blockX,blockY) in
// row-major order.
func (c *core) GetBlockPixels(blockX, blockY int) [16]RGBA {
	var out [16]RGBA
	for ly := 0; ly < 4; ly++ {
		for lx := 0; lx < 4; lx++ {
			out[ly*4+lx] = c.GetPixel(blockX*4+lx, blockY*4+ly)
		}
	}
	return out
}

// SetBlockPixels quantizes 16 row-major pixels against block
// (blockX,blockY)'s existing endpoints, rewriting only selectors; see
// SetPixel.
func (c *core) SetBlockPixels(blockX, blockY int, pixels [16]RGBA) {
	for ly := 0; ly < 4; ly++ {
		for lx := 0; lx < 4; lx++ {
			c.SetPixel(blockX*4+lx, blockY*4+ly, pixels[ly*4+lx])
		}
	}
}

// HasAlpha reports whether this image can carry transparency. Formats
// other than DXT1 answer from their format tag alone. A bare DXT1 image
// reports true iff at least one block uses the 3-color palette branch
// (low_color <= high_color) and has at least one selector equal to 3,
// which GetPixel already decodes as transparent black for plain DXT1
// as well as DXT1A.
func (c *core) HasAlpha() bool {
	if c.format.AlwaysHasAlpha() {
		return true
	}
	if c.format != DXT1 {
		return false
	}
	for by := 0; by < c.blocksY; by++ {
		for bx := 0; bx < c.blocksX; bx++ {
			cb := block.ColorDXT1(c.getElement(bx, by, 0))
			if !cb.ThreeColor() {
				continue
			}
			for y := 0; y < 4; y++ {
				for x := 0; x < 4; x++ {
					if cb.Selector(x, y) == 3 {
						return true
					}
				}
			}
		}
	}
	return false
}

func nearestColorIndex(palette [4]block.RGBA, col RGBA) uint8 {
	best := uint8(0)
	bestErr := -1
	for i := 0; i < 4; i++ {
		p := palette[i]
		dr := int(p.R) - int(col.R)
		dg := int(p.G) - int(col.G)
		db := int(p.B) - int(col.B)
		e := dr*dr + dg*dg + db*db
		if bestErr < 0 || e < bestErr {
			bestErr, best = e, uint8(i)
		}
	}
	return best
}

func nearestScalarIndex(palette [8]uint8, target uint8) uint8 {
	best := uint8(0)
	bestErr := -1
	for i, v := range palette {
		d := int(v) - int(target)
		e := d * d
		if bestErr < 0 || e < bestErr {
			bestErr, best = e, uint8(i)
		}
	}
	return best
}

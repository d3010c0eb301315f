package dxtimage

import "github.com/texelcomp/dxtimage/internal/block"

// canFlipDim reports whether a flip is supported along a dimension of
// this length: either a single partial block (<=4 pixels) or a whole
// number of full blocks.
func canFlipDim(d int) bool { return d <= 4 || d%4 == 0 }

// CanFlipX reports whether FlipX is supported for this image's width.
func (c *core) CanFlipX() bool { return canFlipDim(c.width) }

// CanFlipY reports whether FlipY is supported for this image's height.
func (c *core) CanFlipY() bool { return canFlipDim(c.height) }

// FlipX mirrors the image left-right in place: block columns are
// swapped pairwise, then each block's own columns are reversed. Widths
// of 1-4 pixels (a single block column) skip the swap and reverse only
// the occupied columns via FlipXPartial.
func (c *core) FlipX() error {
	if !c.CanFlipX() {
		return ErrFlipNotSupported
	}
	if c.blocksX == 1 {
		for by := 0; by < c.blocksY; by++ {
			c.flipBlockX(0, by, c.width)
		}
		return nil
	}
	for by := 0; by < c.blocksY; by++ {
		for bx := 0; bx < c.blocksX/2; bx++ {
			c.swapBlocks(bx, by, c.blocksX-1-bx, by)
		}
	}
	for by := 0; by < c.blocksY; by++ {
		for bx := 0; bx < c.blocksX; bx++ {
			c.flipBlockX(bx, by, 4)
		}
	}
	return nil
}

// FlipY mirrors the image top-bottom in place, symmetric to FlipX.
func (c *core) FlipY() error {
	if !c.CanFlipY() {
		return ErrFlipNotSupported
	}
	if c.blocksY == 1 {
		for bx := 0; bx < c.blocksX; bx++ {
			c.flipBlockY(bx, 0, c.height)
		}
		return nil
	}
	for by := 0; by < c.blocksY/2; by++ {
		for bx := 0; bx < c.blocksX; bx++ {
			c.swapBlocks(bx, by, bx, c.blocksY-1-by)
		}
	}
	for by := 0; by < c.blocksY; by++ {
		for bx := 0; bx < c.blocksX; bx++ {
			c.flipBlockY(bx, by, 4)
		}
	}
	return nil
}

func (c *core) swapBlocks(bx1, by1, bx2, by2 int) {
	epb := c.format.ElementsPerBlock()
	for i := 0; i < epb; i++ {
		i1 := c.elementIndex(bx1, by1, i)
		i2 := c.elementIndex(bx2, by2, i)
		c.elements[i1], c.elements[i2] = c.elements[i2], c.elements[i1]
	}
}

func (c *core) flipBlockX(bx, by, w int) {
	for i, desc := range c.format.Elements() {
		e := c.getElement(bx, by, i)
		switch desc.Codec {
		case block.CodecColorDXT1:
			c.setElement(bx, by, i, Element(block.ColorDXT1(e).FlipXPartial(w)))
		case block.CodecAlphaDXT3:
			c.setElement(bx, by, i, Element(block.AlphaDXT3(e).FlipXPartial(w)))
		case block.CodecAlphaDXT5:
			c.setElement(bx, by, i, Element(block.AlphaDXT5(e).FlipXPartial(w)))
		}
	}
}

func (c *core) flipBlockY(bx, by, h int) {
	for i, desc := range c.format.Elements() {
		e := c.getElement(bx, by, i)
		switch desc.Codec {
		case block.CodecColorDXT1:
			c.setElement(bx, by, i, Element(block.ColorDXT1(e).FlipYPartial(h)))
		case block.CodecAlphaDXT3:
			c.setElement(bx, by, i, Element(block.AlphaDXT3(e).FlipYPartial(h)))
		case block.CodecAlphaDXT5:
			c.setElement(bx, by, i, Element(block.AlphaDXT5(e).FlipYPartial(h)))
		}
	}
}

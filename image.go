package dxtimage

import (
	"fmt"

	"github.com/texelcomp/dxtimage/internal/block"
)

// Element is one opaque 64-bit block cell, per the format descriptor's
// element list for a given Format.
type Element = block.Element

// core holds the immutable shape fields and dense row-major element
// array shared by Image and View. All pixel/flip/endian operators are
// implemented once here and exposed through both container types.
type core struct {
	width, height    int
	blocksX, blocksY int
	format           Format
	elements         []Element
}

func newCore(format Format, width, height int) (*core, error) {
	if !format.Valid() {
		return nil, ErrInvalidFormat
	}
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	blocksX := (width + 3) / 4
	blocksY := (height + 3) / 4
	return &core{
		width: width, height: height,
		blocksX: blocksX, blocksY: blocksY,
		format: format,
	}, nil
}

func (c *core) totalElements() int {
	return c.blocksX * c.blocksY * c.format.ElementsPerBlock()
}

// Width, Height return the pixel dimensions.
func (c *core) Width() int  { return c.width }
func (c *core) Height() int { return c.height }

// BlocksX, BlocksY return the block-grid dimensions (ceil(width/4),
// ceil(height/4)).
func (c *core) BlocksX() int { return c.blocksX }
func (c *core) BlocksY() int { return c.blocksY }

// Format returns the image's logical format.
func (c *core) Format() Format { return c.format }

// ElementsPerBlock returns 1 or 2.
func (c *core) ElementsPerBlock() int { return c.format.ElementsPerBlock() }

// BytesPerBlock returns 8*ElementsPerBlock().
func (c *core) BytesPerBlock() int { return c.format.BytesPerBlock() }

// Elements returns the backing element slice directly. Mutating the
// returned slice mutates the image; callers that only need a read-only
// view should prefer the pixel operators.
func (c *core) Elements() []Element { return c.elements }

// elementIndex indexes into the dense [block_y][block_x][element_index]
// array. Out-of-range coordinates are a programmer error and panic
// rather than returning an error.
func (c *core) elementIndex(blockX, blockY, elementIndex int) int {
	if blockX < 0 || blockX >= c.blocksX || blockY < 0 || blockY >= c.blocksY {
		panic(fmt.Sprintf("dxtimage: block (%d,%d) out of range for %dx%d blocks", blockX, blockY, c.blocksX, c.blocksY))
	}
	epb := c.format.ElementsPerBlock()
	if elementIndex < 0 || elementIndex >= epb {
		panic(fmt.Sprintf("dxtimage: element index %d out of range (elements per block = %d)", elementIndex, epb))
	}
	return (blockY*c.blocksX+blockX)*epb + elementIndex
}

func (c *core) getElement(blockX, blockY, elementIndex int) Element {
	return c.elements[c.elementIndex(blockX, blockY, elementIndex)]
}

func (c *core) setElement(blockX, blockY, elementIndex int, v Element) {
	c.elements[c.elementIndex(blockX, blockY, elementIndex)] = v
}

// BlockEndpoints returns the raw packed low/high endpoint words for the
// given block and element, without decoding them to RGBA. Useful for
// tooling that inspects or re-quantises existing textures.
func (c *core) BlockEndpoints(blockX, blockY, elementIndex int) (low, high uint32) {
	e := c.getElement(blockX, blockY, elementIndex)
	desc := c.format.Elements()[elementIndex]
	switch desc.Codec {
	case block.CodecColorDXT1:
		b := block.ColorDXT1(e)
		return uint32(b.LowColor()), uint32(b.HighColor())
	case block.CodecAlphaDXT5:
		b := block.AlphaDXT5(e)
		return uint32(b.LowAlpha()), uint32(b.HighAlpha())
	default:
		return 0, 0
	}
}

// Image owns its backing element buffer: it is allocated fresh or
// copied from caller-supplied elements at construction time, and no
// other owner may mutate it concurrently.
type Image struct{ *core }

// View wraps a caller-owned element slice without copying. The caller
// must ensure the slice outlives the View; no destructor frees it.
type View struct{ *core }

// NewImage creates an empty image of (format, width, height) with all
// elements zeroed.
func NewImage(format Format, width, height int) (*Image, error) {
	c, err := newCore(format, width, height)
	if err != nil {
		return nil, err
	}
	c.elements = make([]Element, c.totalElements())
	return &Image{c}, nil
}

// NewImageFromElements creates an image that owns a defensive copy of
// elements, which must have exactly blocksX*blocksY*elementsPerBlock
// entries for (format, width, height).
func NewImageFromElements(format Format, width, height int, elements []Element) (*Image, error) {
	c, err := newCore(format, width, height)
	if err != nil {
		return nil, err
	}
	if len(elements) != c.totalElements() {
		return nil, ErrSizeMismatch
	}
	c.elements = make([]Element, len(elements))
	copy(c.elements, elements)
	return &Image{c}, nil
}

// NewView wraps elements (caller-owned, not copied) as a (format,
// width, height) image. elements must have exactly
// blocksX*blocksY*elementsPerBlock entries.
func NewView(format Format, width, height int, elements []Element) (*View, error) {
	c, err := newCore(format, width, height)
	if err != nil {
		return nil, err
	}
	if len(elements) != c.totalElements() {
		return nil, ErrSizeMismatch
	}
	c.elements = elements
	return &View{c}, nil
}

// PromoteToDXT1A retags a DXT1 image as DXT1A in place (no data
// rewrite). It is a no-op for any other format.
func (c *core) PromoteToDXT1A() {
	if c.format == DXT1 {
		c.format = DXT1A
	}
}

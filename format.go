package dxtimage

import "github.com/texelcomp/dxtimage/internal/block"

// Format identifies one of the seven logical DXT/BC block formats this
// package supports.
type Format = block.Format

// The seven recognised formats, per the format descriptor table.
const (
	DXT1  = block.DXT1
	DXT1A = block.DXT1A
	DXT3  = block.DXT3
	DXT5  = block.DXT5
	DXT5A = block.DXT5A
	DXNXY = block.DXNXY
	DXNYX = block.DXNYX
)

// RGBA is an 8-bit-per-channel, non-premultiplied color value: the unit
// exchanged with a PixelSurface.
type RGBA struct {
	R, G, B, A uint8
}

func toBlockRGBA(c RGBA) block.RGBA { return block.RGBA(c) }
func fromBlockRGBA(c block.RGBA) RGBA { return RGBA(c) }

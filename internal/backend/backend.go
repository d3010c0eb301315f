// Package backend dispatches one 4x4 pixel tile to packed block elements
// under one of three compressor back-ends (CRN, CRNF, RYG), per element.
package backend

import (
	"errors"

	"github.com/texelcomp/dxtimage/internal/block"
	"github.com/texelcomp/dxtimage/internal/optimizer"
)

// Backend selects which compressor implementation encodes a block's
// color and alpha elements.
type Backend int

const (
	// CRN is the default: the full least-squares endpoint optimiser.
	CRN Backend = iota
	// CRNF is the fast path: a single-pass min/max endpoint pick with no
	// refinement.
	CRNF
	// RYG is the reference back-end: R/B-swapped input, alpha forced
	// opaque for color blocks.
	RYG
)

func (b Backend) String() string {
	switch b {
	case CRN:
		return "CRN"
	case CRNF:
		return "CRNF"
	case RYG:
		return "RYG"
	default:
		return "unknown backend"
	}
}

// ErrRYGUnsupportedDXT1A is returned when the RYG back-end is asked to
// encode a DXT1A block: its fixed BGRA/opaque assumption cannot honour a
// 1-bit alpha threshold.
var ErrRYGUnsupportedDXT1A = errors.New("backend: RYG backend does not support DXT1A")

// EncodeBlock packs tile into one block's worth of elements for format,
// using backend be and optimiser parameters p (only consulted by CRN).
func EncodeBlock(tile [16]block.RGBA, format block.Format, be Backend, p optimizer.Params) ([]block.Element, error) {
	if be == RYG && format == block.DXT1A {
		return nil, ErrRYGUnsupportedDXT1A
	}
	descs := format.Elements()
	out := make([]block.Element, len(descs))
	for i, desc := range descs {
		switch desc.Codec {
		case block.CodecColorDXT1:
			out[i] = block.Element(encodeColorDXT1(tile, be, p, format))
		case block.CodecAlphaDXT5:
			channel := extractChannel(tile, desc.Component)
			out[i] = block.Element(encodeAlphaDXT5(channel, be, p))
		case block.CodecAlphaDXT3:
			channel := extractChannel(tile, desc.Component)
			out[i] = block.Element(encodeAlphaDXT3(channel))
		}
	}
	return out, nil
}

func extractChannel(tile [16]block.RGBA, component int) [16]uint8 {
	var out [16]uint8
	for i, px := range tile {
		switch component {
		case 0:
			out[i] = px.R
		case 1:
			out[i] = px.G
		case 2:
			out[i] = px.B
		case 3:
			out[i] = px.A
		}
	}
	return out
}

func encodeColorDXT1(tile [16]block.RGBA, be Backend, p optimizer.Params, format block.Format) block.ColorDXT1 {
	switch be {
	case CRN:
		p.PixelsHaveAlpha = p.PixelsHaveAlpha && format == block.DXT1A
		res := optimizer.DXT1Optimize(tile, p)
		return packColorDXT1(res.Low, res.High, res.Selectors)
	case RYG:
		var swapped [16]block.RGBA
		for i, px := range tile {
			swapped[i] = block.RGBA{R: px.B, G: px.G, B: px.R, A: 255}
		}
		return fastColorDXT1(swapped)
	default: // CRNF
		return fastColorDXT1(tile)
	}
}

// fastColorDXT1 picks the min/max-luma pixels as endpoints directly (no
// PCA, no refinement) and assigns nearest-palette selectors: the
// single-pass path used by CRNF and, on pre-swapped input, by RYG.
func fastColorDXT1(tile [16]block.RGBA) block.ColorDXT1 {
	minIdx, maxIdx := 0, 0
	minLuma, maxLuma := luma(tile[0]), luma(tile[0])
	for i, px := range tile {
		l := luma(px)
		if l < minLuma {
			minLuma, minIdx = l, i
		}
		if l > maxLuma {
			maxLuma, maxIdx = l, i
		}
	}
	low := block.PackColor565(tile[maxIdx].R, tile[maxIdx].G, tile[maxIdx].B)
	high := block.PackColor565(tile[minIdx].R, tile[minIdx].G, tile[minIdx].B)
	low, high = enforceFourColor(low, high)
	palette, _ := block.GetBlockColors(low, high)
	var sel [16]uint8
	for i, px := range tile {
		sel[i] = nearestColorIdx(palette, px, 4)
	}
	return packColorDXT1(low, high, sel)
}

func luma(px block.RGBA) int {
	return 299*int(px.R) + 587*int(px.G) + 114*int(px.B)
}

func enforceFourColor(low, high uint16) (uint16, uint16) {
	if low <= high {
		if low == high {
			if high > 0 {
				high--
			} else {
				low++
			}
		} else {
			low, high = high, low
		}
	}
	return low, high
}

func nearestColorIdx(palette [4]block.RGBA, px block.RGBA, limit int) uint8 {
	best := uint8(0)
	bestErr := -1
	for i := 0; i < limit; i++ {
		p := palette[i]
		dr := int(p.R) - int(px.R)
		dg := int(p.G) - int(px.G)
		db := int(p.B) - int(px.B)
		e := dr*dr + dg*dg + db*db
		if bestErr < 0 || e < bestErr {
			bestErr, best = e, uint8(i)
		}
	}
	return best
}

func packColorDXT1(low, high uint16, sel [16]uint8) block.ColorDXT1 {
	var packed uint32
	for i, s := range sel {
		packed |= uint32(s&0x3) << uint(2*i)
	}
	return block.NewColorDXT1(low, high, packed)
}

func encodeAlphaDXT5(channel [16]uint8, be Backend, p optimizer.Params) block.AlphaDXT5 {
	switch be {
	case CRN:
		res := optimizer.DXT5Optimize(channel, p)
		return block.NewAlphaDXT5(res.Low, res.High, res.Selectors)
	default: // CRNF, RYG: single-pass min/max, no refinement
		return fastAlphaDXT5(channel)
	}
}

func fastAlphaDXT5(channel [16]uint8) block.AlphaDXT5 {
	minV, maxV := channel[0], channel[0]
	for _, v := range channel {
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}
	low, high := maxV, minV
	if low <= high {
		if low == high {
			if high > 0 {
				high--
			} else {
				low++
			}
		} else {
			low, high = high, low
		}
	}
	palette := block.GetBlockValues(low, high)
	var sel [16]uint8
	for i, v := range channel {
		sel[i] = nearestScalarIdx(palette, v)
	}
	return block.NewAlphaDXT5(low, high, sel)
}

func nearestScalarIdx(palette [8]uint8, target uint8) uint8 {
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

// encodeAlphaDXT3 quantises channel via a>>4, shared across every
// back-end: no dithering, no back-end variation on the 4-bit
// explicit-alpha path.
func encodeAlphaDXT3(channel [16]uint8) block.AlphaDXT3 {
	var nibbles [16]uint8
	for i, v := range channel {
		nibbles[i] = v >> 4
	}
	return block.NewAlphaDXT3(nibbles)
}

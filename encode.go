package dxtimage

import (
	"fmt"

	"github.com/texelcomp/dxtimage/internal/backend"
	"github.com/texelcomp/dxtimage/internal/block"
	"github.com/texelcomp/dxtimage/internal/optimizer"
	"github.com/texelcomp/dxtimage/internal/scheduler"
)

// EncodeParams configures Encode. The zero value is a valid, if
// conservative, configuration: CRN back-end, Superfast quality, no
// helper threads, no progress reporting.
type EncodeParams struct {
	Backend Backend
	Quality Quality

	Perceptual        bool
	GrayscaleSampling bool

	PixelsHaveAlpha       bool // DXT1A only
	DXT1AAlphaThreshold   uint8
	UseAlphaBlocks        bool // DXT1 only: allow 3-color/punch-through palette
	UseTransparentIndices bool

	EndpointCaching bool
	ColorWeights    [3]float64

	HelperThreads int

	ProgressStart, ProgressRange int
	Progress                     func(pct int) bool
}

func (p EncodeParams) optimizerParams() optimizer.Params {
	threshold := p.DXT1AAlphaThreshold
	if threshold == 0 {
		threshold = 128 // default transparency threshold
	}
	return optimizer.Params{
		Quality:               p.Quality,
		Perceptual:            p.Perceptual,
		GrayscaleSampling:     p.GrayscaleSampling,
		PixelsHaveAlpha:       p.PixelsHaveAlpha,
		DXT1AAlphaThreshold:   threshold,
		UseAlphaBlocks:        p.UseAlphaBlocks,
		UseTransparentIndices: p.UseTransparentIndices,
		EndpointCaching:       p.EndpointCaching,
		ColorWeights:          p.ColorWeights,
	}
}

// Encode compresses surface into a new Image of the given format.
// Blocks are partitioned across params.HelperThreads+1 workers (see
// internal/scheduler); encoding is deterministic regardless of thread
// count. If params.Progress returns false, Encode returns ErrCanceled
// and discards the partially-built image.
func Encode(surface PixelSurface, format Format, params EncodeParams) (*Image, error) {
	if params.Backend == RYG && format == DXT1A {
		return nil, fmt.Errorf("dxtimage: encode: %w", backend.ErrRYGUnsupportedDXT1A)
	}

	img, err := NewImage(format, surface.Width(), surface.Height())
	if err != nil {
		return nil, err
	}

	optParams := params.optimizerParams()
	epb := format.ElementsPerBlock()

	encodeOne := func(k int) {
		bx := k % img.blocksX
		by := k / img.blocksX
		tile := sampleTile(surface, bx, by)
		blockParams := optParams
		blockParams.BlockIndex = k
		elems, err := backend.EncodeBlock(tile, format, params.Backend, blockParams)
		if err != nil {
			// Only reachable for RYG+DXT1A, already rejected above.
			return
		}
		for i := 0; i < epb; i++ {
			img.setElement(bx, by, i, elems[i])
		}
	}

	canceled := scheduler.Run(img.blocksX, img.blocksY, params.HelperThreads, params.ProgressStart, params.ProgressRange, params.Progress, encodeOne)
	if canceled {
		return nil, ErrCanceled
	}
	return img, nil
}

// sampleTile loads the 4x4 pixel tile for block (bx,by), clamping
// out-of-range coordinates to the nearest valid pixel (clamp-to-edge).
func sampleTile(surface PixelSurface, bx, by int) [16]block.RGBA {
	w, h := surface.Width(), surface.Height()
	var tile [16]block.RGBA
	for ly := 0; ly < 4; ly++ {
		y := clampIndex(by*4+ly, h)
		for lx := 0; lx < 4; lx++ {
			x := clampIndex(bx*4+lx, w)
			tile[ly*4+lx] = toBlockRGBA(surface.Pixel(x, y))
		}
	}
	return tile
}

func clampIndex(v, limit int) int {
	if v >= limit {
		return limit - 1
	}
	return v
}

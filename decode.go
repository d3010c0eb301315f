package dxtimage

import (
	"log"
	"os"

	"github.com/texelcomp/dxtimage/internal/block"
)

var defaultLogger = log.New(os.Stderr, "", log.LstdFlags)

// Decodable is satisfied by both Image and View: anything Decode can
// read pixels from.
type Decodable interface {
	Width() int
	Height() int
	Format() Format
	HasAlpha() bool
	GetPixel(x, y int) RGBA
}

// DecodeParams configures Decode. The zero value uses a package-level
// default logger writing to os.Stderr.
type DecodeParams struct {
	Logger *log.Logger
}

// Decode expands img into surface, resizing it to img's dimensions and
// setting per-channel validity flags. A block whose decode fails
// (reserved for corrupted, file-loaded element buffers; cannot happen
// for a container built through this package's own constructors) is
// replaced with opaque black; Decode still returns success, with one
// summary log line covering every affected block.
func Decode(img Decodable, surface PixelSurface, params DecodeParams) error {
	if !img.Format().Valid() {
		return ErrInvalidFormat
	}

	w, h := img.Width(), img.Height()
	surface.Resize(w, h)
	surface.ResetCompFlags()

	allValid := true
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			px, ok := decodePixelSafe(img, x, y)
			if !ok {
				allValid = false
				px = RGBA{A: 255}
			}
			surface.SetPixel(x, y, px)
		}
	}

	setComponentValidity(img.Format(), img.HasAlpha(), surface)

	if !allValid {
		logger := params.Logger
		if logger == nil {
			logger = defaultLogger
		}
		logger.Printf("dxtimage: decode completed with one or more %v", ErrCorruptBlock)
	}
	return nil
}

// decodePixelSafe recovers from a panic while decoding one pixel. The
// container's own operators never panic on in-range coordinates, so
// this only guards against a future untrusted-loader path whose codec
// table doesn't match its format tag.
func decodePixelSafe(img Decodable, x, y int) (px RGBA, ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
			px = RGBA{A: 255}
		}
	}()
	return img.GetPixel(x, y), true
}

func setComponentValidity(format Format, hasAlpha bool, surface PixelSurface) {
	var rValid, gValid, bValid bool
	for _, desc := range format.Elements() {
		switch desc.Component {
		case block.ComponentRGB:
			rValid, gValid, bValid = true, true, true
		case 0:
			rValid = true
		case 1:
			gValid = true
		}
	}
	surface.SetComponentValid(0, rValid)
	surface.SetComponentValid(1, gValid)
	surface.SetComponentValid(2, bValid)
	surface.SetComponentValid(3, hasAlpha)
}

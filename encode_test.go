package dxtimage

import (
	"testing"

	"github.com/texelcomp/dxtimage/internal/block"
)

func fillSurface(w, h int, f func(x, y int) RGBA) *Surface {
	s := NewSurface(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			s.SetPixel(x, y, f(x, y))
		}
	}
	return s
}

// Scenario 1: 4x4 solid color -> DXT1. The low endpoint holds the
// quantised RGB565 color and decode reproduces that color everywhere.
func TestEncodeDXT1SolidBlock(t *testing.T) {
	solid := RGBA{R: 128, G: 64, B: 32, A: 255}
	surface := fillSurface(4, 4, func(x, y int) RGBA { return solid })

	img, err := Encode(surface, DXT1, EncodeParams{Backend: CRN, Quality: Normal})
	if err != nil {
		t.Fatal(err)
	}

	// The four-color branch can't represent low == high on the wire (it
	// requires low > high strictly), so the encoder nudges the high
	// endpoint apart by one quantization step; every pixel still selects
	// palette entry 0 (the untouched low endpoint) with zero error, so
	// decode reproduces the exact quantised solid color regardless.
	low, _ := img.BlockEndpoints(0, 0, 0)

	out := NewSurface(4, 4)
	if err := Decode(img, out, DecodeParams{}); err != nil {
		t.Fatal(err)
	}
	r, g, b := block.UnpackColor565(uint16(low), true)
	want := RGBA{R: r, G: g, B: b, A: 255}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if got := out.Pixel(x, y); got != want {
				t.Fatalf("decoded(%d,%d) = %+v, want %+v", x, y, got, want)
			}
		}
	}
}

// Scenario 2: half-transparent 4x4 block -> DXT1A, threshold 128: the
// encoder must pick the 3-color branch and selector 3 for the
// transparent half.
func TestEncodeDXT1AHalfTransparent(t *testing.T) {
	surface := fillSurface(4, 4, func(x, y int) RGBA {
		idx := y*4 + x
		if idx < 8 {
			return RGBA{R: 200, G: 50, B: 50, A: 0}
		}
		return RGBA{R: 10, G: 200, B: 10, A: 255}
	})

	params := EncodeParams{
		Backend:             CRN,
		Quality:             Uber,
		PixelsHaveAlpha:     true,
		DXT1AAlphaThreshold: 128,
	}
	img, err := Encode(surface, DXT1A, params)
	if err != nil {
		t.Fatal(err)
	}

	low, high := img.BlockEndpoints(0, 0, 0)
	if low > high {
		t.Fatalf("expected 3-color branch (low <= high), got low=%#x high=%#x", low, high)
	}

	for idx := 0; idx < 8; idx++ {
		x, y := idx%4, idx/4
		if a := img.GetPixelAlpha(x, y); a != 0 {
			t.Errorf("GetPixelAlpha(%d,%d) = %d, want 0", x, y, a)
		}
	}
	for idx := 8; idx < 16; idx++ {
		x, y := idx%4, idx/4
		if a := img.GetPixelAlpha(x, y); a != 255 {
			t.Errorf("GetPixelAlpha(%d,%d) = %d, want 255", x, y, a)
		}
	}
}

// Scenario 5: encode output is independent of helper thread count.
func TestEncodeThreadCountIndependence(t *testing.T) {
	surface := fillSurface(16, 16, func(x, y int) RGBA {
		return RGBA{R: uint8(x * 16), G: uint8(y * 16), B: uint8((x + y) * 8), A: 255}
	})

	base, err := Encode(surface, DXT5, EncodeParams{Backend: CRN, Quality: Better, HelperThreads: 0})
	if err != nil {
		t.Fatal(err)
	}
	other, err := Encode(surface, DXT5, EncodeParams{Backend: CRN, Quality: Better, HelperThreads: 7})
	if err != nil {
		t.Fatal(err)
	}
	baseElems, otherElems := base.Elements(), other.Elements()
	if len(baseElems) != len(otherElems) {
		t.Fatalf("element count differs: %d vs %d", len(baseElems), len(otherElems))
	}
	for i := range baseElems {
		if baseElems[i] != otherElems[i] {
			t.Fatalf("element %d differs between thread counts: %v vs %v", i, baseElems[i], otherElems[i])
		}
	}
}

// Scenario 6: encode, flip_x, flip_x leaves the element buffer identical
// to a plain encode, so both decode to the same pixels.
func TestEncodeFlipFlipDecodeRoundTrip(t *testing.T) {
	surface := fillSurface(16, 16, func(x, y int) RGBA {
		return RGBA{R: uint8(x * 16), G: uint8(y * 16), B: 128, A: 255}
	})
	params := EncodeParams{Backend: CRN, Quality: Normal}

	img, err := Encode(surface, DXT5, params)
	if err != nil {
		t.Fatal(err)
	}
	flipped, err := Encode(surface, DXT5, params)
	if err != nil {
		t.Fatal(err)
	}
	if err := flipped.FlipX(); err != nil {
		t.Fatal(err)
	}
	if err := flipped.FlipX(); err != nil {
		t.Fatal(err)
	}

	for i := range img.Elements() {
		if img.Elements()[i] != flipped.Elements()[i] {
			t.Fatalf("element %d differs after flip_x;flip_x: %v vs %v", i, img.Elements()[i], flipped.Elements()[i])
		}
	}
}

func TestEncodeCancellation(t *testing.T) {
	surface := fillSurface(32, 32, func(x, y int) RGBA { return RGBA{A: 255} })
	_, err := Encode(surface, DXT1, EncodeParams{
		Backend:  CRN,
		Progress: func(pct int) bool { return false },
	})
	if err != ErrCanceled {
		t.Fatalf("err = %v, want ErrCanceled", err)
	}
}

func TestEncodeRYGRejectsDXT1A(t *testing.T) {
	surface := fillSurface(4, 4, func(x, y int) RGBA { return RGBA{A: 255} })
	_, err := Encode(surface, DXT1A, EncodeParams{Backend: RYG})
	if err == nil {
		t.Fatal("expected an error encoding DXT1A with the RYG backend")
	}
}

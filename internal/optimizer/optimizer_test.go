package optimizer

import (
	"testing"

	"github.com/texelcomp/dxtimage/internal/block"
)

func solidBlock(r, g, b, a uint8) [16]block.RGBA {
	var px [16]block.RGBA
	for i := range px {
		px[i] = block.RGBA{R: r, G: g, B: b, A: a}
	}
	return px
}

func TestDXT1OptimizeSolidBlock(t *testing.T) {
	px := solidBlock(128, 64, 32, 255)
	res := DXT1Optimize(px, Params{Quality: Normal, ColorWeights: [3]float64{1, 1, 1}})
	want := block.PackColor565(128, 64, 32)
	if res.Low != want && res.High != want {
		t.Fatalf("expected an endpoint to quantize to %#x for a solid block, got low=%#x high=%#x", want, res.Low, res.High)
	}
	for i, s := range res.Selectors {
		if s != 0 {
			t.Fatalf("selector[%d] = %d, want 0 for a solid block", i, s)
		}
	}
}

func TestDXT1OptimizeHalfTransparent(t *testing.T) {
	var px [16]block.RGBA
	for i := range px {
		if i < 8 {
			px[i] = block.RGBA{R: 10, G: 10, B: 10, A: 0}
		} else {
			px[i] = block.RGBA{R: 200, G: 200, B: 200, A: 255}
		}
	}
	res := DXT1Optimize(px, Params{
		Quality:             Normal,
		PixelsHaveAlpha:     true,
		DXT1AAlphaThreshold: 128,
		UseAlphaBlocks:      true,
	})
	if res.Low > res.High {
		t.Fatalf("DXT1A with transparent pixels must choose the 3-color branch (low <= high)")
	}
	for i := 0; i < 8; i++ {
		if res.Selectors[i] != 3 {
			t.Errorf("selector[%d] = %d, want 3 (transparent)", i, res.Selectors[i])
		}
	}
}

func TestDXT5OptimizeGradient(t *testing.T) {
	var values [16]uint8
	for i := range values {
		values[i] = uint8(i * 17)
	}
	res := DXT5Optimize(values, Params{Quality: Normal})
	palette := block.GetBlockValues(res.Low, res.High)
	for i, v := range values {
		got := palette[res.Selectors[i]]
		// Nearest palette entry should be within one interpolation step
		// of the true input for a smooth gradient.
		diff := int(got) - int(v)
		if diff < -40 || diff > 40 {
			t.Errorf("value %d -> palette %d, selector %d: diff %d too large", v, got, res.Selectors[i], diff)
		}
	}
}

func TestDXT5OptimizeFlat(t *testing.T) {
	var values [16]uint8
	for i := range values {
		values[i] = 77
	}
	res := DXT5Optimize(values, Params{Quality: Uber})
	palette := block.GetBlockValues(res.Low, res.High)
	for i := range values {
		if palette[res.Selectors[i]] != 77 {
			t.Fatalf("flat block should reproduce the input exactly, got %d", palette[res.Selectors[i]])
		}
	}
}

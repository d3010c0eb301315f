package dxtimage

import "testing"

// FuzzEncodeDecodeRoundtrip constructs a small pixel surface from fuzzer
// input, encodes it at a low quality tier, decodes the result, and
// verifies dimensions match and neither step panics. Mirrors the
// teacher's FuzzRoundtrip shape (dimensions from the first two bytes,
// the rest padded/truncated into pixel data).
func FuzzEncodeDecodeRoundtrip(f *testing.F) {
	seed := make([]byte, 2+8*8*4)
	seed[0], seed[1] = 8, 8
	for i := 2; i < len(seed); i++ {
		seed[i] = byte(i * 3)
	}
	f.Add(seed)

	formats := []Format{DXT1, DXT1A, DXT3, DXT5, DXT5A, DXNXY, DXNYX}

	f.Fuzz(func(t *testing.T, data []byte) {
		if len(data) < 2 {
			return
		}
		w := int(data[0]%32) + 1
		h := int(data[1]%32) + 1
		pix := data[2:]
		needed := w * h * 4
		if len(pix) < needed {
			padded := make([]byte, needed)
			copy(padded, pix)
			pix = padded
		} else {
			pix = pix[:needed]
		}

		surface := NewSurface(w, h)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				i := (y*w + x) * 4
				surface.SetPixel(x, y, RGBA{R: pix[i], G: pix[i+1], B: pix[i+2], A: pix[i+3]})
			}
		}

		format := formats[int(pix[0])%len(formats)]
		img, err := Encode(surface, format, EncodeParams{
			Backend:         CRN,
			Quality:         Superfast,
			PixelsHaveAlpha: format == DXT1A,
		})
		if err != nil {
			t.Fatalf("Encode(%v): %v", format, err)
		}

		out := NewSurface(1, 1)
		if err := Decode(img, out, DecodeParams{}); err != nil {
			t.Fatalf("Decode(%v): %v", format, err)
		}
		if out.Width() != w || out.Height() != h {
			t.Fatalf("roundtrip: dimensions mismatch: encoded %dx%d, decoded %dx%d", w, h, out.Width(), out.Height())
		}
	})
}

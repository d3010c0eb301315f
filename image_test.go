package dxtimage

import "testing"

func TestNewImageShape(t *testing.T) {
	cases := []struct {
		w, h               int
		wantBX, wantBY     int
		wantEPB, wantBytes int
	}{
		{4, 4, 1, 1, 1, 8},
		{5, 4, 2, 1, 1, 8},
		{8, 9, 2, 3, 1, 8},
		{1, 1, 1, 1, 1, 8},
	}
	for _, c := range cases {
		img, err := NewImage(DXT1, c.w, c.h)
		if err != nil {
			t.Fatalf("NewImage(%d,%d): %v", c.w, c.h, err)
		}
		if img.BlocksX() != c.wantBX || img.BlocksY() != c.wantBY {
			t.Errorf("NewImage(%d,%d): blocks = (%d,%d), want (%d,%d)", c.w, c.h, img.BlocksX(), img.BlocksY(), c.wantBX, c.wantBY)
		}
		if img.ElementsPerBlock() != c.wantEPB || img.BytesPerBlock() != c.wantBytes {
			t.Errorf("NewImage(%d,%d): elements/bytes per block = %d/%d, want %d/%d", c.w, c.h, img.ElementsPerBlock(), img.BytesPerBlock(), c.wantEPB, c.wantBytes)
		}
		if len(img.Elements()) != c.wantBX*c.wantBY*c.wantEPB {
			t.Errorf("NewImage(%d,%d): len(Elements()) = %d, want %d", c.w, c.h, len(img.Elements()), c.wantBX*c.wantBY*c.wantEPB)
		}
	}
}

func TestNewImageInvalid(t *testing.T) {
	if _, err := NewImage(Format(99), 4, 4); err != ErrInvalidFormat {
		t.Errorf("invalid format: err = %v, want ErrInvalidFormat", err)
	}
	if _, err := NewImage(DXT1, 0, 4); err != ErrInvalidDimensions {
		t.Errorf("zero width: err = %v, want ErrInvalidDimensions", err)
	}
}

func TestNewImageFromElementsSizeMismatch(t *testing.T) {
	_, err := NewImageFromElements(DXT1, 4, 4, make([]Element, 2))
	if err != ErrSizeMismatch {
		t.Fatalf("err = %v, want ErrSizeMismatch", err)
	}
}

func TestViewSharesBackingArray(t *testing.T) {
	// low = white, high = black (four-color): a dark pixel selects entry 1.
	elems := []Element{0xFFFF}
	view, err := NewView(DXT1, 4, 4, elems)
	if err != nil {
		t.Fatalf("NewView: %v", err)
	}
	view.SetPixel(0, 0, RGBA{R: 10, G: 20, B: 30, A: 255})
	if elems[0] == 0xFFFF {
		t.Fatal("expected View.SetPixel to mutate the caller-owned backing slice")
	}
}

func TestImageFromElementsCopiesIndependently(t *testing.T) {
	// low = white, high = black (four-color): a dark pixel selects entry 1.
	elems := []Element{0xFFFF}
	img, err := NewImageFromElements(DXT1, 4, 4, elems)
	if err != nil {
		t.Fatalf("NewImageFromElements: %v", err)
	}
	img.SetPixel(0, 0, RGBA{R: 10, G: 20, B: 30, A: 255})
	if img.Elements()[0] == 0xFFFF {
		t.Fatal("expected SetPixel to rewrite the image's own selector")
	}
	if elems[0] != 0xFFFF {
		t.Fatal("expected Image to own a defensive copy, not alias the caller's slice")
	}
}

func TestPromoteToDXT1A(t *testing.T) {
	img, err := NewImage(DXT1, 4, 4)
	if err != nil {
		t.Fatal(err)
	}
	img.PromoteToDXT1A()
	if img.Format() != DXT1A {
		t.Fatalf("Format() = %v, want DXT1A", img.Format())
	}
	if !img.HasAlpha() {
		t.Fatal("DXT1A image must report HasAlpha() == true unconditionally")
	}
}

func TestBlockEndpointsRoundTrip(t *testing.T) {
	wantLow, wantHigh := uint16(0x1234), uint16(0x0057)
	e := Element(uint64(wantLow) | uint64(wantHigh)<<16)
	img, err := NewImageFromElements(DXT1, 4, 4, []Element{e})
	if err != nil {
		t.Fatal(err)
	}
	low, high := img.BlockEndpoints(0, 0, 0)
	if uint16(low) != wantLow || uint16(high) != wantHigh {
		t.Fatalf("BlockEndpoints() = (%#x,%#x), want (%#x,%#x)", low, high, wantLow, wantHigh)
	}
}

package dxtimage

import (
	"testing"

	"github.com/texelcomp/dxtimage/internal/block"
)

func randomishDXT5Image(t *testing.T, w, h int) *Image {
	t.Helper()
	img, err := NewImage(DXT5, w, h)
	if err != nil {
		t.Fatal(err)
	}
	for by := 0; by < img.BlocksY(); by++ {
		for bx := 0; bx < img.BlocksX(); bx++ {
			alpha := block.NewAlphaDXT5(200, 10, [16]uint8{0, 1, 2, 3, 4, 5, 6, 7, 0, 1, 2, 3, 4, 5, 6, 7})
			low := block.PackColor565(uint8(bx*20), uint8(by*20), 50)
			high := block.PackColor565(uint8(200-bx*10), uint8(200-by*10), 10)
			color := block.NewColorDXT1(low, high, 0x1234ABCD)
			img.setElement(bx, by, 0, Element(alpha))
			img.setElement(bx, by, 1, Element(color))
		}
	}
	return img
}

func TestFlipXSelfInverseMultipleOf4(t *testing.T) {
	img := randomishDXT5Image(t, 8, 4)
	before := append([]Element(nil), img.Elements()...)
	if err := img.FlipX(); err != nil {
		t.Fatal(err)
	}
	if err := img.FlipX(); err != nil {
		t.Fatal(err)
	}
	for i := range before {
		if img.Elements()[i] != before[i] {
			t.Fatalf("element %d changed after FlipX;FlipX: got %v, want %v", i, img.Elements()[i], before[i])
		}
	}
}

func TestFlipYSelfInverseMultipleOf4(t *testing.T) {
	img := randomishDXT5Image(t, 4, 8)
	before := append([]Element(nil), img.Elements()...)
	if err := img.FlipY(); err != nil {
		t.Fatal(err)
	}
	if err := img.FlipY(); err != nil {
		t.Fatal(err)
	}
	for i := range before {
		if img.Elements()[i] != before[i] {
			t.Fatalf("element %d changed after FlipY;FlipY: got %v, want %v", i, img.Elements()[i], before[i])
		}
	}
}

func TestFlipXPartialDimension(t *testing.T) {
	for _, w := range []int{1, 2, 3, 4} {
		img := randomishDXT5Image(t, w, 4)
		before := append([]Element(nil), img.Elements()...)
		if err := img.FlipX(); err != nil {
			t.Fatalf("width=%d: FlipX: %v", w, err)
		}
		if err := img.FlipX(); err != nil {
			t.Fatalf("width=%d: FlipX: %v", w, err)
		}
		for i := range before {
			if img.Elements()[i] != before[i] {
				t.Fatalf("width=%d: element %d changed after FlipX;FlipX", w, i)
			}
		}
	}
}

func TestFlipNotSupported(t *testing.T) {
	img, err := NewImage(DXT1, 5, 4)
	if err != nil {
		t.Fatal(err)
	}
	if err := img.FlipX(); err != ErrFlipNotSupported {
		t.Fatalf("FlipX on width=5: err = %v, want ErrFlipNotSupported", err)
	}
}

func TestFlipXActuallyReorders(t *testing.T) {
	leftLow, leftHigh := block.PackColor565(10, 10, 10), block.PackColor565(250, 250, 250)
	rightLow, rightHigh := block.PackColor565(250, 250, 250), block.PackColor565(10, 10, 10)
	left := Element(block.NewColorDXT1(leftLow, leftHigh, 0))
	right := Element(block.NewColorDXT1(rightLow, rightHigh, 0))
	img, err := NewImageFromElements(DXT1, 8, 4, []Element{left, right})
	if err != nil {
		t.Fatal(err)
	}
	if err := img.FlipX(); err != nil {
		t.Fatal(err)
	}
	gotLow, gotHigh := img.BlockEndpoints(0, 0, 0)
	if uint16(gotLow) != rightLow || uint16(gotHigh) != rightHigh {
		t.Fatalf("after FlipX, block (0,0) = (%#x,%#x), want the original right block (%#x,%#x)", gotLow, gotHigh, rightLow, rightHigh)
	}
}

package dxtimage

// PixelSurface is the uncompressed image type this package's encoder
// consumes and decoder produces: a rectangular array addressable by
// (x,y) of 8-bit RGBA pixels, plus a channel-validity bit-field. File
// containers, MIP pyramids, and gamma handling are external collaborators
// that operate above this interface and are out of scope here.
type PixelSurface interface {
	Width() int
	Height() int
	Pixel(x, y int) RGBA

	Resize(w, h int)
	SetPixel(x, y int, c RGBA)

	ResetCompFlags()
	SetComponentValid(i int, valid bool)
	ComponentValid(i int) bool
}

// Surface is the one concrete, in-module PixelSurface implementation: a
// dense backing array of RGBA pixels plus the four channel-validity
// flags that Decode reports.
type Surface struct {
	width, height int
	pixels        []RGBA
	compValid     [4]bool
}

// NewSurface allocates a Surface of the given dimensions, all pixels
// zeroed (RGBA{0,0,0,0}).
func NewSurface(w, h int) *Surface {
	s := &Surface{}
	s.Resize(w, h)
	return s
}

func (s *Surface) Width() int  { return s.width }
func (s *Surface) Height() int { return s.height }

func (s *Surface) Pixel(x, y int) RGBA {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		panic("dxtimage: pixel coordinates out of range")
	}
	return s.pixels[y*s.width+x]
}

func (s *Surface) SetPixel(x, y int, c RGBA) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		panic("dxtimage: pixel coordinates out of range")
	}
	s.pixels[y*s.width+x] = c
}

func (s *Surface) Resize(w, h int) {
	s.width, s.height = w, h
	s.pixels = make([]RGBA, w*h)
}

func (s *Surface) ResetCompFlags() { s.compValid = [4]bool{} }

func (s *Surface) SetComponentValid(i int, valid bool) {
	if i < 0 || i > 3 {
		panic("dxtimage: component index out of range")
	}
	s.compValid[i] = valid
}

func (s *Surface) ComponentValid(i int) bool {
	if i < 0 || i > 3 {
		panic("dxtimage: component index out of range")
	}
	return s.compValid[i]
}

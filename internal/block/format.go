package block

import "fmt"

// Codec identifies which of the three on-wire block layouts an element
// uses.
type Codec int

const (
	CodecColorDXT1 Codec = iota
	CodecAlphaDXT3
	CodecAlphaDXT5
)

func (c Codec) String() string {
	switch c {
	case CodecColorDXT1:
		return "ColorDXT1"
	case CodecAlphaDXT3:
		return "AlphaDXT3"
	case CodecAlphaDXT5:
		return "AlphaDXT5"
	default:
		return "unknown codec"
	}
}

// Format identifies one of the seven logical DXT/BC formats.
type Format int

const (
	FormatInvalid Format = iota
	DXT1
	DXT1A
	DXT3
	DXT5
	DXT5A
	DXNXY
	DXNYX
)

func (f Format) String() string {
	switch f {
	case DXT1:
		return "DXT1"
	case DXT1A:
		return "DXT1A"
	case DXT3:
		return "DXT3"
	case DXT5:
		return "DXT5"
	case DXT5A:
		return "DXT5A"
	case DXNXY:
		return "DXN_XY"
	case DXNYX:
		return "DXN_YX"
	default:
		return "invalid"
	}
}

// ElementDesc names one element slot within a block: which codec owns
// it, and which destination component it writes (-1 means "RGB, and
// possibly A for DXT1A").
type ElementDesc struct {
	Codec     Codec
	Component int
}

// ComponentRGB is the sentinel Component value meaning "write RGB (and
// possibly alpha for DXT1A)".
const ComponentRGB = -1

var descriptors = map[Format][]ElementDesc{
	DXT1:  {{CodecColorDXT1, ComponentRGB}},
	DXT1A: {{CodecColorDXT1, ComponentRGB}},
	DXT3:  {{CodecAlphaDXT3, 3}, {CodecColorDXT1, ComponentRGB}},
	DXT5:  {{CodecAlphaDXT5, 3}, {CodecColorDXT1, ComponentRGB}},
	DXT5A: {{CodecAlphaDXT5, 3}},
	DXNXY: {{CodecAlphaDXT5, 0}, {CodecAlphaDXT5, 1}},
	DXNYX: {{CodecAlphaDXT5, 1}, {CodecAlphaDXT5, 0}},
}

// Valid reports whether f is one of the seven recognised formats.
func (f Format) Valid() bool {
	_, ok := descriptors[f]
	return ok
}

// Elements returns the ordered element descriptor list for f. It panics
// if f is not Valid; callers must check Valid (or rely on the
// constructor that validated it) first.
func (f Format) Elements() []ElementDesc {
	e, ok := descriptors[f]
	if !ok {
		panic(fmt.Sprintf("block: invalid format %d", int(f)))
	}
	return e
}

// ElementsPerBlock returns 1 or 2, the number of Element cells per
// block for f.
func (f Format) ElementsPerBlock() int { return len(f.Elements()) }

// BytesPerBlock returns 8*ElementsPerBlock(f).
func (f Format) BytesPerBlock() int { return 8 * f.ElementsPerBlock() }

// AlwaysHasAlpha reports whether every block of f carries alpha
// unconditionally (true for DXT1A, DXT3, DXT5 and DXT5A). It is false
// for DXT1, whose alpha presence depends on block contents and must be
// computed by scanning selectors, and for DXN_XY and DXN_YX, which have
// no alpha element.
func (f Format) AlwaysHasAlpha() bool {
	switch f {
	case DXT1A, DXT3, DXT5, DXT5A:
		return true
	default:
		return false
	}
}

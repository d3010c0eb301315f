// Package optimizer implements the DXT1 and DXT5 least-squares endpoint
// optimisers: given 16 input pixels (or one channel of them) and a
// parameter pack, it picks packed endpoints and 16 selectors that
// minimise a (possibly perceptual) squared-error metric.
//
// The principal-axis step is a real PCA: the weighted 3x3 covariance of
// the input pixels is eigendecomposed with gonum.org/v1/gonum/mat, and
// the dominant eigenvector seeds the initial endpoint line, exactly the
// numerical-linear-algebra problem gonum exists to solve.
package optimizer

// Quality selects how much local-refinement effort the optimiser
// spends per block.
type Quality int

const (
	Superfast Quality = iota
	Fast
	Normal
	Better
	Uber
)

// refinementIterations maps a quality level to the number of
// least-squares refinement passes run after the initial PCA estimate.
func (q Quality) refinementIterations() int {
	switch q {
	case Superfast:
		return 0
	case Fast:
		return 1
	case Normal:
		return 2
	case Better:
		return 4
	case Uber:
		return 8
	default:
		return 2
	}
}

// Params is the parameter pack consumed by both endpoint optimisers.
type Params struct {
	BlockIndex int // deterministic pseudo-random tiebreak seed

	Quality           Quality
	Perceptual        bool
	GrayscaleSampling bool

	PixelsHaveAlpha       bool // DXT1A only
	DXT1AAlphaThreshold   uint8
	UseAlphaBlocks        bool // DXT1 only: allow 3-color/punch-through palette
	UseTransparentIndices bool // prefer transparent index for exact-black pixels

	EndpointCaching bool
	ColorWeights    [3]float64 // per-channel weights; zero value means "use defaults"
}

// weights resolves the effective per-channel error weights: an explicit
// ColorWeights value wins, otherwise Perceptual selects the 299/587/114
// luma weighting, otherwise all channels are weighted uniformly.
func (p Params) weights() [3]float64 {
	if p.ColorWeights != ([3]float64{}) {
		return p.ColorWeights
	}
	if p.Perceptual {
		return [3]float64{0.299, 0.587, 0.114}
	}
	return [3]float64{1, 1, 1}
}

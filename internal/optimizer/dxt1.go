package optimizer

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/texelcomp/dxtimage/internal/block"
)

// DXT1Result is the packed output of DXT1Optimize.
type DXT1Result struct {
	Low, High uint16
	Selectors [16]uint8
}

// DXT1Optimize picks a packed low/high RGB565 endpoint pair and 16
// selectors for the 16 input pixels that minimise total squared error
// under p's configured metric.
func DXT1Optimize(pixels [16]block.RGBA, p Params) DXT1Result {
	w := p.weights()

	transparent := [16]bool{}
	anyTransparent := false
	if p.PixelsHaveAlpha {
		for i, px := range pixels {
			if px.A < p.DXT1AAlphaThreshold {
				transparent[i] = true
				anyTransparent = true
			}
		}
	}

	axis, mean := principalAxis(pixels, transparent, w, p.GrayscaleSampling)
	lo565, hi565 := projectEndpoints(pixels, transparent, axis, mean)

	// The 4-color (opaque) branch is never valid once any input pixel is
	// forced transparent: DXT1A with pixels_have_alpha disallows it.
	allowFourColor := !p.PixelsHaveAlpha || !anyTransparent
	allowThreeColor := p.UseAlphaBlocks || anyTransparent

	var best DXT1Result
	bestErr := math.MaxFloat64
	haveCandidate := false

	if allowFourColor {
		cand := evaluateDXT1Branch(pixels, transparent, lo565, hi565, w, false, p)
		if cand.err < bestErr {
			best, bestErr, haveCandidate = cand.result, cand.err, true
		}
	}
	if allowThreeColor {
		cand := evaluateDXT1Branch(pixels, transparent, lo565, hi565, w, true, p)
		// Ties prefer the 4-color branch, so three-color must strictly beat it.
		if !haveCandidate || cand.err < bestErr {
			best, bestErr, haveCandidate = cand.result, cand.err, true
		}
	}

	if !haveCandidate {
		// Degenerate: no branch permitted (should not happen per the
		// allow* logic above, but keep a deterministic fallback).
		best = DXT1Result{Low: lo565, High: hi565}
	}

	return best
}

type dxt1Candidate struct {
	result DXT1Result
	err    float64
}

// evaluateDXT1Branch quantises the given endpoint candidates, iterates
// least-squares refinement according to p.Quality, and returns the
// selector assignment with lowest total weighted squared error.
func evaluateDXT1Branch(pixels [16]block.RGBA, transparent [16]bool, lo, hi uint16, w [3]float64, threeColor bool, p Params) dxt1Candidate {
	low, high := enforceBranch(lo, hi, threeColor)

	assign := func(low, high uint16) ([16]uint8, float64) {
		palette, _ := block.GetBlockColors(low, high)
		var sel [16]uint8
		var errSum float64
		for i, px := range pixels {
			if threeColor && transparent[i] {
				sel[i] = 3
				continue
			}
			bestIdx := 0
			bestErr := math.MaxFloat64
			limit := 4
			if threeColor && !p.UseTransparentIndices {
				limit = 3 // entry 3 is transparent; skip it for opaque pixels unless requested
			}
			for c := 0; c < limit; c++ {
				e := weightedSquaredError(palette[c], px, w)
				if e < bestErr {
					bestErr, bestIdx = e, c
				}
			}
			sel[i] = uint8(bestIdx)
			errSum += bestErr
		}
		return sel, errSum
	}

	selectors, totalErr := assign(low, high)

	for iter := 0; iter < p.Quality.refinementIterations(); iter++ {
		newLow, newHigh, ok := leastSquaresRefit(pixels, selectors, transparent, threeColor)
		if !ok {
			break
		}
		newLow, newHigh = enforceBranch(newLow, newHigh, threeColor)
		newSel, newErr := assign(newLow, newHigh)
		if newErr >= totalErr {
			break
		}
		low, high, selectors, totalErr = newLow, newHigh, newSel, newErr
	}

	if p.Quality == Uber {
		low, high, selectors, totalErr = uberNeighborhoodSearch(pixels, transparent, low, high, w, threeColor, p, selectors, totalErr, assign)
	}

	return dxt1Candidate{DXT1Result{Low: low, High: high, Selectors: selectors}, totalErr}
}

// enforceBranch adjusts a packed endpoint pair so it decodes under the
// requested palette branch: three-color blocks require low <= high,
// four-color blocks require low > high strictly (degenerate equal
// candidates are nudged apart by one quantization step).
func enforceBranch(low, high uint16, threeColor bool) (uint16, uint16) {
	if threeColor {
		if low > high {
			low, high = high, low
		}
		return low, high
	}
	if low <= high {
		if low == high {
			if high > 0 {
				high--
			} else {
				low++
			}
		} else {
			low, high = high, low
		}
	}
	return low, high
}

func weightedSquaredError(a, b block.RGBA, w [3]float64) float64 {
	dr := float64(int(a.R) - int(b.R))
	dg := float64(int(a.G) - int(b.G))
	db := float64(int(a.B) - int(b.B))
	return w[0]*dr*dr + w[1]*dg*dg + w[2]*db*db
}

// principalAxis computes the weighted mean and dominant eigenvector of
// the 3x3 covariance matrix of the non-transparent input pixels, using
// gonum's symmetric eigendecomposition. grayscale collapses the axis to
// the luma direction (1,1,1)/sqrt(3), matching the configured
// grayscale-sampling heuristic.
func principalAxis(pixels [16]block.RGBA, transparent [16]bool, w [3]float64, grayscale bool) (axis, mean [3]float64) {
	var sum [3]float64
	n := 0
	for i, px := range pixels {
		if transparent[i] {
			continue
		}
		sum[0] += float64(px.R)
		sum[1] += float64(px.G)
		sum[2] += float64(px.B)
		n++
	}
	if n == 0 {
		return [3]float64{1, 1, 1}, [3]float64{0, 0, 0}
	}
	mean = [3]float64{sum[0] / float64(n), sum[1] / float64(n), sum[2] / float64(n)}

	if grayscale {
		g := 1 / math.Sqrt(3)
		return [3]float64{g, g, g}, mean
	}

	cov := mat.NewSymDense(3, nil)
	var c [3][3]float64
	for i, px := range pixels {
		if transparent[i] {
			continue
		}
		d := [3]float64{float64(px.R) - mean[0], float64(px.G) - mean[1], float64(px.B) - mean[2]}
		for a := 0; a < 3; a++ {
			for b := 0; b < 3; b++ {
				c[a][b] += w[a] * w[b] * d[a] * d[b]
			}
		}
	}
	for a := 0; a < 3; a++ {
		for b := a; b < 3; b++ {
			cov.SetSym(a, b, c[a][b])
		}
	}

	var eig mat.EigenSym
	if !eig.Factorize(cov, true) {
		return [3]float64{1, 1, 1}, mean
	}
	values := eig.Values(nil)
	var vectors mat.Dense
	eig.VectorsTo(&vectors)

	// gonum returns eigenvalues in ascending order; the dominant axis is
	// the last column.
	best := 0
	for i := 1; i < len(values); i++ {
		if values[i] > values[best] {
			best = i
		}
	}
	axis = [3]float64{vectors.At(0, best), vectors.At(1, best), vectors.At(2, best)}
	if axis == ([3]float64{}) {
		axis = [3]float64{1, 1, 1}
	}
	return axis, mean
}

// projectEndpoints projects every non-transparent pixel onto axis
// (through mean) and returns the RGB565-quantised endpoints at the two
// projection extremes.
func projectEndpoints(pixels [16]block.RGBA, transparent [16]bool, axis, mean [3]float64) (lo, hi uint16) {
	minT, maxT := math.MaxFloat64, -math.MaxFloat64
	any := false
	for i, px := range pixels {
		if transparent[i] {
			continue
		}
		any = true
		t := (float64(px.R)-mean[0])*axis[0] + (float64(px.G)-mean[1])*axis[1] + (float64(px.B)-mean[2])*axis[2]
		if t < minT {
			minT = t
		}
		if t > maxT {
			maxT = t
		}
	}
	if !any {
		return 0, 0
	}
	project := func(t float64) uint16 {
		r := clamp255(mean[0] + t*axis[0])
		g := clamp255(mean[1] + t*axis[1])
		b := clamp255(mean[2] + t*axis[2])
		return block.PackColor565(r, g, b)
	}
	return project(minT), project(maxT)
}

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}

// leastSquaresRefit recomputes the endpoint pair that minimises squared
// error given the current selector assignment, by solving the 1-D
// least-squares fit along the low/high interpolation parameter for each
// channel independently (the classical DXT1 endpoint-refinement step).
func leastSquaresRefit(pixels [16]block.RGBA, selectors [16]uint8, transparent [16]bool, threeColor bool) (lo, hi uint16, ok bool) {
	// Interpolation weight of each selector value toward the high
	// endpoint (0 = pure low, 1 = pure high), for both branches.
	weightFor := func(s uint8) (wLow, wHigh float64, valid bool) {
		if threeColor {
			switch s {
			case 0:
				return 1, 0, true
			case 1:
				return 0, 1, true
			case 2:
				return 0.5, 0.5, true
			default:
				return 0, 0, false
			}
		}
		switch s {
		case 0:
			return 1, 0, true
		case 1:
			return 0, 1, true
		case 2:
			return 2.0 / 3, 1.0 / 3, true
		case 3:
			return 1.0 / 3, 2.0 / 3, true
		}
		return 0, 0, false
	}

	var sumWW, sumW1W2, sumW11 float64
	var sumWR, sumW2R [3]float64
	n := 0
	for i, px := range pixels {
		if transparent[i] {
			continue
		}
		wl, wh, valid := weightFor(selectors[i])
		if !valid {
			continue
		}
		n++
		sumWW += wl * wl
		sumW1W2 += wl * wh
		sumW11 += wh * wh
		c := [3]float64{float64(px.R), float64(px.G), float64(px.B)}
		for k := 0; k < 3; k++ {
			sumWR[k] += wl * c[k]
			sumW2R[k] += wh * c[k]
		}
	}
	if n < 2 {
		return 0, 0, false
	}

	det := sumWW*sumW11 - sumW1W2*sumW1W2
	if math.Abs(det) < 1e-9 {
		return 0, 0, false
	}

	var loC, hiC [3]float64
	for k := 0; k < 3; k++ {
		loC[k] = clampF((sumW11*sumWR[k] - sumW1W2*sumW2R[k]) / det)
		hiC[k] = clampF((sumWW*sumW2R[k] - sumW1W2*sumWR[k]) / det)
	}
	lo = block.PackColor565(uint8(loC[0]+0.5), uint8(loC[1]+0.5), uint8(loC[2]+0.5))
	hi = block.PackColor565(uint8(hiC[0]+0.5), uint8(hiC[1]+0.5), uint8(hiC[2]+0.5))
	return lo, hi, true
}

func clampF(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

// uberNeighborhoodSearch does a brute-force search of the packed
// RGB565 endpoints in a small neighborhood of the current best,
// reserved for the Uber quality tier.
func uberNeighborhoodSearch(
	pixels [16]block.RGBA, transparent [16]bool,
	low, high uint16, w [3]float64, threeColor bool, p Params,
	bestSel [16]uint8, bestErr float64,
	assign func(lo, hi uint16) ([16]uint8, float64),
) (uint16, uint16, [16]uint8, float64) {
	const radius = 2
	bestLow, bestHigh := low, high
	for dl := -radius; dl <= radius; dl++ {
		for dh := -radius; dh <= radius; dh++ {
			cl := nudge565(low, dl)
			ch := nudge565(high, dh)
			cl, ch = enforceBranch(cl, ch, threeColor)
			sel, err := assign(cl, ch)
			if err < bestErr {
				bestErr, bestSel, bestLow, bestHigh = err, sel, cl, ch
			}
		}
	}
	return bestLow, bestHigh, bestSel, bestErr
}

// nudge565 perturbs a packed RGB565 word's three channels by delta in
// their native bit-width, clamping at the representable range.
func nudge565(word uint16, delta int) uint16 {
	r := int(word>>11) & 0x1F
	g := int(word>>5) & 0x3F
	b := int(word) & 0x1F
	r = clampInt(r+delta, 0, 31)
	g = clampInt(g+delta, 0, 63)
	b = clampInt(b+delta, 0, 31)
	return uint16(r)<<11 | uint16(g)<<5 | uint16(b)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

package optimizer

import (
	"math"

	"github.com/texelcomp/dxtimage/internal/block"
)

// DXT5Result is the packed output of DXT5Optimize.
type DXT5Result struct {
	Low, High uint8
	Selectors [16]uint8
}

// DXT5Optimize picks a packed low/high scalar endpoint pair and 16
// selectors for the 16 input single-channel values that minimise total
// squared error. It is one-dimensional: both the 8-value and 6-value
// palette branches are evaluated and the lower-error one wins.
func DXT5Optimize(values [16]uint8, p Params) DXT5Result {
	minV, maxV := values[0], values[0]
	for _, v := range values {
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}

	evaluate := func(low, high uint8) ([16]uint8, float64) {
		palette := block.GetBlockValues(low, high)
		var sel [16]uint8
		var errSum float64
		for i, v := range values {
			bestIdx := 0
			bestErr := math.MaxFloat64
			for c := 0; c < 8; c++ {
				d := float64(int(palette[c]) - int(v))
				e := d * d
				if e < bestErr {
					bestErr, bestIdx = e, c
				}
			}
			sel[i] = uint8(bestIdx)
			errSum += bestErr
		}
		return sel, errSum
	}

	interpSel, interpErr := evaluate(maxV, minV)
	if minV == maxV {
		// Degenerate flat block: endpoint 0 reproduces the value exactly,
		// so the equal pair is returned as is (low == high decodes under
		// the 6-value branch).
		return DXT5Result{Low: maxV, High: minV, Selectors: interpSel}
	}
	sixSel, sixErr := evaluate(minV, maxV)

	low, high, sel, errSum := maxV, minV, interpSel, interpErr
	if sixErr < interpErr {
		low, high, sel, errSum = minV, maxV, sixSel, sixErr
	}

	interpolated := low > high
	for iter := 0; iter < p.Quality.refinementIterations(); iter++ {
		newLow, newHigh, ok := refitEndpoints(values, sel, interpolated)
		if !ok {
			break
		}
		newLow, newHigh = enforceScalarBranch(newLow, newHigh, interpolated)
		newSel, newErr := evaluate(newLow, newHigh)
		if newErr >= errSum {
			break
		}
		low, high, sel, errSum = newLow, newHigh, newSel, newErr
	}

	return DXT5Result{Low: low, High: high, Selectors: sel}
}

// enforceScalarBranch adjusts a packed endpoint pair so it decodes
// under the requested palette branch: the 8-value interpolated branch
// requires low > high, the 6-value branch requires low <= high.
func enforceScalarBranch(low, high uint8, interpolated bool) (uint8, uint8) {
	if interpolated {
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
	if low > high {
		low, high = high, low
	}
	return low, high
}

// refitEndpoints recomputes the endpoint pair minimising squared error
// given the current selector assignment, fitting a 1-D interpolation
// line through the selected palette weights.
func refitEndpoints(values [16]uint8, sel [16]uint8, interpolated bool) (low, high uint8, ok bool) {
	// Palette order is low, high, then the interpolated values from low
	// toward high (see block.GetBlockValues).
	weightFor := func(s uint8) (wLow, wHigh float64, valid bool) {
		switch {
		case s == 0:
			return 1, 0, true
		case s == 1:
			return 0, 1, true
		case interpolated && s <= 7:
			wHigh = float64(s-1) / 7
			return 1 - wHigh, wHigh, true
		case !interpolated && s <= 5:
			wHigh = float64(s-1) / 5
			return 1 - wHigh, wHigh, true
		default:
			return 0, 0, false // 0/255 sentinels carry no endpoint gradient
		}
	}

	var sumWW, sumW1W2, sumW11, sumWV, sumW2V float64
	n := 0
	for i, v := range values {
		wl, wh, valid := weightFor(sel[i])
		if !valid {
			continue
		}
		n++
		sumWW += wl * wl
		sumW1W2 += wl * wh
		sumW11 += wh * wh
		sumWV += wl * float64(v)
		sumW2V += wh * float64(v)
	}
	if n < 2 {
		return 0, 0, false
	}
	det := sumWW*sumW11 - sumW1W2*sumW1W2
	if math.Abs(det) < 1e-9 {
		return 0, 0, false
	}
	loF := (sumW11*sumWV - sumW1W2*sumW2V) / det
	hiF := (sumWW*sumW2V - sumW1W2*sumWV) / det
	return clampByte(loF), clampByte(hiF), true
}

func clampByte(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}

package dxtimage

import "github.com/texelcomp/dxtimage/internal/backend"

// Backend selects which compressor implementation encodes a block's
// color and alpha elements.
type Backend = backend.Backend

const (
	// CRN is the default: the full least-squares endpoint optimiser.
	CRN = backend.CRN
	// CRNF is the fast path: single-pass min/max endpoints, no refinement.
	CRNF = backend.CRNF
	// RYG is the reference back-end: R/B-swapped input, alpha forced
	// opaque for color blocks. Not usable with DXT1A.
	RYG = backend.RYG
)

package dxtimage

import "github.com/texelcomp/dxtimage/internal/optimizer"

// Quality selects how much local-refinement effort the endpoint
// optimiser spends per block.
type Quality = optimizer.Quality

const (
	Superfast = optimizer.Superfast
	Fast      = optimizer.Fast
	Normal    = optimizer.Normal
	Better    = optimizer.Better
	Uber      = optimizer.Uber
)

package dxtimage

import "errors"

// Sentinel errors returned by this package's operations. Propagation is
// always through an explicit error return; out-of-range block/pixel
// coordinates are programmer errors and panic instead (see image.go).
var (
	// ErrInvalidFormat is returned when a format tag is not one of the
	// seven recognised values.
	ErrInvalidFormat = errors.New("dxtimage: invalid format")

	// ErrInvalidDimensions is returned when width or height is zero.
	ErrInvalidDimensions = errors.New("dxtimage: width and height must be positive")

	// ErrSizeMismatch is returned when a caller-supplied element buffer
	// does not match blocks_x * blocks_y * elements_per_block.
	ErrSizeMismatch = errors.New("dxtimage: element buffer size mismatch")

	// ErrCanceled is returned when the progress callback requested
	// cancellation during Encode.
	ErrCanceled = errors.New("dxtimage: encode canceled")

	// ErrFlipNotSupported is returned when a flip is requested on a
	// dimension that is neither a multiple of 4 nor <= 4.
	ErrFlipNotSupported = errors.New("dxtimage: flip not supported for this dimension")

	// ErrCorruptBlock marks a block whose packed endpoints or selectors
	// violate a format invariant. Decode does not fail on it: the block
	// is replaced with opaque black and decoding continues, with a
	// single summary log line at the end (see decode.go).
	ErrCorruptBlock = errors.New("dxtimage: corrupt block")
)

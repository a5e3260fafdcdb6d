package dissolve

import "errors"

var (
	// ErrNilInput indicates a missing input image or mask.
	ErrNilInput = errors.New("dissolve: input image and mask must be non-nil")
	// ErrDimensionMismatch indicates input, mask and region disagree on the number of axes.
	ErrDimensionMismatch = errors.New("dissolve: input, mask and region must have the same dimension")
	// ErrRegionOutsideImage indicates the processing region is not contained in the input.
	ErrRegionOutsideImage = errors.New("dissolve: region extends beyond the input image")
)

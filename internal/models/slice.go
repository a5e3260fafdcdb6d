package models

import (
	"image"
	"time"

	"dissolvemask/pkg/grid"
)

// Slice represents a single 2D slice read from disk
type Slice struct {
	// Image is the decoded slice
	Image image.Image

	// Index is the position of this slice in the sorted sequence
	Index int

	// Filename is the original filename of the slice
	Filename string
}

// Volume is a stack of slices together with the mask to dissolve.
// A single slice yields a 2D volume, several slices a 3D one with the
// slice index on axis 2.
type Volume struct {
	// Intensity holds normalised grey values in [0, 1]
	Intensity *grid.Image[float64]

	// Mask is non-zero where the intensity must be dissolved
	Mask *grid.Image[uint8]

	// Slices are the input slices the volume was assembled from
	Slices []Slice
}

// Width returns the number of columns
func (v *Volume) Width() int { return v.Intensity.Size()[0] }

// Height returns the number of rows
func (v *Volume) Height() int { return v.Intensity.Size()[1] }

// Depth returns the number of slices
func (v *Volume) Depth() int {
	if v.Intensity.Dim() < 3 {
		return 1
	}
	return v.Intensity.Size()[2]
}

// Summary collects the statistics of one pipeline run
type Summary struct {
	// MaskedPixels is the number of masked pixels in the processing region
	MaskedPixels int

	// FinalizedPixels is the number of masked pixels that received a propagated value
	FinalizedPixels int

	// ChangedPixels is the number of pixels whose value differs from the input
	ChangedPixels int

	// MeanMaskedBefore and MeanMaskedAfter are the mean intensities under the mask
	MeanMaskedBefore float64
	MeanMaskedAfter  float64

	// MeanAbsoluteChange is the mean absolute intensity change under the mask
	MeanAbsoluteChange float64

	// Duration is the wall time of the dissolve step
	Duration time.Duration
}

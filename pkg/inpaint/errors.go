package inpaint

import "errors"

var (
	// ErrNoSlices indicates a directory without any readable slice.
	ErrNoSlices = errors.New("inpaint: no slices found")
	// ErrSliceCountMismatch indicates the input and mask stacks differ in length.
	ErrSliceCountMismatch = errors.New("inpaint: input and mask slice counts differ")
	// ErrSliceSizeMismatch indicates a slice whose size differs from the first input slice.
	ErrSliceSizeMismatch = errors.New("inpaint: slice dimensions differ")
)

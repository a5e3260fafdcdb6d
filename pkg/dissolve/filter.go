package dissolve

import (
	"dissolvemask/pkg/grid"
)

// Filter replaces the masked pixels of an image with the nearest value outside
// the mask, nearest meaning the shortest spacing-weighted path through masked
// pixels.
type Filter[T comparable] struct {
	// BackgroundValue seeds masked pixels on the border of the processing
	// region, where no outside value exists along the scanned line.
	BackgroundValue T

	// Workers bounds the goroutines used for the per-line seed scans.
	// Values below 2 scan sequentially. Propagation is always sequential.
	Workers int

	// Progress, when set, is called as pixels are finalized.
	Progress ProgressFunc
}

// Result is the outcome of one filter run.
type Result[T any] struct {
	// Output has the shape and spacing of the input.
	Output *grid.Image[T]

	// Masked is the number of masked pixels in the processing region.
	Masked int

	// Finalized is the number of masked pixels that received a propagated
	// value. It is lower than Masked only when part of the mask cannot be
	// reached from any seed; those pixels keep their input value.
	Finalized int

	// Changed is the number of finalized pixels whose value differs from the input.
	Changed int
}

// Dissolve runs a Filter with the given background value over the whole image.
func Dissolve[T comparable](input *grid.Image[T], mask Mask, background T) (*Result[T], error) {
	f := &Filter[T]{BackgroundValue: background}
	if input == nil {
		return nil, ErrNilInput
	}
	return f.Run(input, mask, input.Region())
}

// Run dissolves the mask within region. Pixels outside region, or outside the
// mask, are copied unchanged. input and mask must describe the same
// coordinate space; only their dimensionality is checked.
func (f *Filter[T]) Run(input *grid.Image[T], mask Mask, region grid.Region) (*Result[T], error) {
	if input == nil || mask == nil {
		return nil, ErrNilInput
	}

	out := newCompositor(input)
	res := &Result[T]{Output: out.output}
	if region.IsEmpty() {
		return res, nil
	}
	if mask.Dim() != input.Dim() || region.Dim() != input.Dim() {
		return nil, ErrDimensionMismatch
	}
	if !input.Region().Contains(region) {
		return nil, ErrRegionOutsideImage
	}

	topo := NewTopology(input.Dim(), input.Spacing())
	seeds := ExtractSeeds(input, mask, region, f.BackgroundValue, f.Workers)

	res.Masked = countMasked(mask, region)
	prog := newProgress(f.Progress, res.Masked)

	eng := newEngine(region, mask, topo, func(idx grid.Index, v T) {
		out.write(idx, v)
		prog.pixelDone()
	})
	eng.seed(seeds)
	eng.run()
	prog.finish()

	res.Finalized = out.written
	res.Changed = out.changed
	return res, nil
}

// compositor owns the output buffer: a copy of the input that is overwritten
// once per finalized pixel.
type compositor[T comparable] struct {
	input   *grid.Image[T]
	output  *grid.Image[T]
	written int
	changed int
}

func newCompositor[T comparable](input *grid.Image[T]) *compositor[T] {
	return &compositor[T]{input: input, output: input.Clone()}
}

func (c *compositor[T]) write(idx grid.Index, v T) {
	c.written++
	if c.input.At(idx) != v {
		c.changed++
	}
	c.output.Set(idx, v)
}

func countMasked(mask Mask, region grid.Region) int {
	n := region.NumberOfPixels()
	idx := make(grid.Index, region.Dim())
	count := 0
	for pos := 0; pos < n; pos++ {
		if mask.Inside(region.IndexAt(pos, idx)) {
			count++
		}
	}
	return count
}

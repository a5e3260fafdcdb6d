package dissolve

import (
	"golang.org/x/sync/errgroup"

	"dissolvemask/pkg/grid"
)

// Mask reports which pixels are to be dissolved.
type Mask interface {
	Inside(idx grid.Index) bool
	Dim() int
}

// Seed is a masked pixel that starts propagation at distance zero with Value.
type Seed[T any] struct {
	Index grid.Index
	Value T
}

// ExtractSeeds scans every line of region along every axis and returns one
// seed per mask transition, plus a background seed wherever the mask touches
// the start or end of a line. A pixel next to transitions on several axes gets
// one seed per axis.
//
// Lines are independent, so with workers > 1 they are scanned concurrently.
// The result order is always axis, then line, then position along the line.
func ExtractSeeds[T any](input *grid.Image[T], mask Mask, region grid.Region, background T, workers int) []Seed[T] {
	var seeds []Seed[T]
	for axis := 0; axis < region.Dim(); axis++ {
		lines := region.Lines(axis)
		length := region.Size[axis]
		perLine := make([][]Seed[T], len(lines))

		if workers <= 1 || len(lines) < 2 {
			for i, start := range lines {
				perLine[i] = scanLine(input, mask, start, axis, length, background)
			}
		} else {
			var g errgroup.Group
			g.SetLimit(workers)
			chunk := (len(lines) + workers - 1) / workers
			for lo := 0; lo < len(lines); lo += chunk {
				lo := lo
				hi := min(lo+chunk, len(lines))
				g.Go(func() error {
					for i := lo; i < hi; i++ {
						perLine[i] = scanLine(input, mask, lines[i], axis, length, background)
					}
					return nil
				})
			}
			_ = g.Wait()
		}

		for _, s := range perLine {
			seeds = append(seeds, s...)
		}
	}
	return seeds
}

// scanLine walks one line of the given length from start along axis.
func scanLine[T any](input *grid.Image[T], mask Mask, start grid.Index, axis, length int, background T) []Seed[T] {
	var seeds []Seed[T]

	idx := start.Clone()
	lastIdx := start.Clone()
	lastInside := mask.Inside(idx)
	if lastInside {
		seeds = append(seeds, Seed[T]{Index: lastIdx.Clone(), Value: background})
	}

	for step := 1; step < length; step++ {
		idx[axis] = start[axis] + step
		inside := mask.Inside(idx)
		if inside != lastInside {
			if lastInside {
				// leaving: last inside pixel takes the value just outside
				seeds = append(seeds, Seed[T]{Index: lastIdx.Clone(), Value: input.At(idx)})
			} else {
				// entering: first inside pixel takes the value just before it
				seeds = append(seeds, Seed[T]{Index: idx.Clone(), Value: input.At(lastIdx)})
			}
			lastInside = inside
		}
		copy(lastIdx, idx)
	}

	if lastInside {
		seeds = append(seeds, Seed[T]{Index: lastIdx.Clone(), Value: background})
	}
	return seeds
}

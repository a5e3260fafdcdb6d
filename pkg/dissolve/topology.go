package dissolve

import (
	"gonum.org/v1/gonum/floats"

	"dissolvemask/pkg/grid"
)

// Topology holds the face-connected neighbourhood of a grid and the physical
// length of each step. Deltas[k] is the length of Offsets[k].
type Topology struct {
	Offsets []grid.Offset
	Deltas  []float64
}

// NewTopology builds the neighbourhood for a dim-dimensional grid with the
// given per-axis spacing.
func NewTopology(dim int, spacing []float64) Topology {
	offsets := NeighborOffsets(dim)
	return Topology{
		Offsets: offsets,
		Deltas:  NeighborDeltas(offsets, spacing),
	}
}

// NeighborOffsets returns the 2·dim unit offsets, -1 then +1 for each axis in
// increasing axis order.
func NeighborOffsets(dim int) []grid.Offset {
	offsets := make([]grid.Offset, 0, 2*dim)
	for axis := 0; axis < dim; axis++ {
		for _, step := range [2]int{-1, 1} {
			o := make(grid.Offset, dim)
			o[axis] = step
			offsets = append(offsets, o)
		}
	}
	return offsets
}

// NeighborDeltas returns, for every offset, the Euclidean norm of the offset
// scaled element-wise by spacing.
func NeighborDeltas(offsets []grid.Offset, spacing []float64) []float64 {
	deltas := make([]float64, len(offsets))
	scaled := make([]float64, len(spacing))
	for k, o := range offsets {
		for i := range scaled {
			scaled[i] = float64(o[i])
		}
		floats.Mul(scaled, spacing)
		deltas[k] = floats.Norm(scaled, 2)
	}
	return deltas
}

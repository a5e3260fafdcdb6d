package grid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dissolvemask/pkg/grid"
)

func TestRegion_LinearRoundTrip(t *testing.T) {
	r := grid.Region{Index: grid.Index{2, -1, 3}, Size: []int{4, 3, 2}}
	require.Equal(t, 24, r.NumberOfPixels())

	idx := make(grid.Index, 3)
	for pos := 0; pos < r.NumberOfPixels(); pos++ {
		r.IndexAt(pos, idx)
		assert.True(t, r.IsInside(idx))
		assert.Equal(t, pos, r.Linear(idx))
	}
	// axis 0 varies fastest
	assert.Equal(t, grid.Index{3, -1, 3}, r.IndexAt(1, nil))
	assert.Equal(t, grid.Index{2, 0, 3}, r.IndexAt(4, nil))
}

func TestRegion_IsInside(t *testing.T) {
	r := grid.NewRegion(3, 2)
	assert.True(t, r.IsInside(grid.Index{0, 0}))
	assert.True(t, r.IsInside(grid.Index{2, 1}))
	assert.False(t, r.IsInside(grid.Index{3, 0}))
	assert.False(t, r.IsInside(grid.Index{0, -1}))
	assert.False(t, r.IsInside(grid.Index{0}))
}

func TestRegion_Contains(t *testing.T) {
	outer := grid.NewRegion(10, 10)
	assert.True(t, outer.Contains(grid.Region{Index: grid.Index{2, 3}, Size: []int{8, 7}}))
	assert.False(t, outer.Contains(grid.Region{Index: grid.Index{2, 3}, Size: []int{9, 7}}))
	assert.False(t, outer.Contains(grid.NewRegion(4)))
	assert.True(t, outer.Contains(grid.Region{Index: grid.Index{50, 50}, Size: []int{0, 1}}))
}

func TestRegion_Empty(t *testing.T) {
	assert.True(t, grid.Region{}.IsEmpty())
	assert.True(t, grid.NewRegion(3, 0, 2).IsEmpty())
	assert.False(t, grid.NewRegion(1).IsEmpty())
	assert.Nil(t, grid.NewRegion(3, 0).Lines(0))
}

func TestRegion_Lines(t *testing.T) {
	r := grid.Region{Index: grid.Index{1, 1, 0}, Size: []int{2, 3, 2}}

	assert.Equal(t, []grid.Index{
		{1, 1, 0}, {1, 2, 0}, {1, 3, 0},
		{1, 1, 1}, {1, 2, 1}, {1, 3, 1},
	}, r.Lines(0))

	assert.Equal(t, []grid.Index{
		{1, 1, 0}, {2, 1, 0},
		{1, 1, 1}, {2, 1, 1},
	}, r.Lines(1))

	assert.Len(t, r.Lines(2), 6)
	assert.Nil(t, r.Lines(3))
}

func TestImage_AccessAndClone(t *testing.T) {
	img := grid.New[float32]([]int{3, 2}, []float64{0.5})
	assert.Equal(t, []float64{0.5, 1}, img.Spacing())
	assert.Equal(t, 2, img.Dim())

	img.Set(grid.Index{2, 1}, 4)
	assert.Equal(t, float32(4), img.At(grid.Index{2, 1}))
	assert.Equal(t, float32(4), img.Data()[5])

	c := img.Clone()
	c.Set(grid.Index{2, 1}, 1)
	assert.Equal(t, float32(4), img.At(grid.Index{2, 1}))
	assert.True(t, grid.SameSpace(img, c))
}

func TestImage_FromSlicePanicsOnBadLength(t *testing.T) {
	assert.Panics(t, func() {
		grid.FromSlice([]int{1, 2, 3}, []int{2, 2}, nil)
	})
}

func TestSameSpace(t *testing.T) {
	a := grid.New[int]([]int{4, 4}, []float64{1, 2})
	assert.True(t, grid.SameSpace(a, grid.New[uint8]([]int{4, 4}, []float64{1, 2})))
	assert.False(t, grid.SameSpace(a, grid.New[uint8]([]int{4, 4}, nil)))
	assert.False(t, grid.SameSpace(a, grid.New[uint8]([]int{4, 5}, []float64{1, 2})))
	assert.False(t, grid.SameSpace(a, grid.New[uint8]([]int{4, 4, 1}, []float64{1, 2})))
}

func TestMaskOf(t *testing.T) {
	m := grid.MaskOf(grid.FromSlice([]float64{0, 0.25, -1}, []int{3}, nil))
	assert.False(t, m.Inside(grid.Index{0}))
	assert.True(t, m.Inside(grid.Index{1}))
	assert.True(t, m.Inside(grid.Index{2}))
	assert.Equal(t, 1, m.Dim())
}

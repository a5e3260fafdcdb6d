// Package grid provides the N-dimensional coordinate and image types shared by
// the dissolve filter and the slice pipeline.
//
// Coordinates are integer vectors with axis 0 varying fastest in memory, the
// same convention used for volumes assembled from 2-D slices: axis 0 is x
// (columns), axis 1 is y (rows) and axis 2 is the slice index.
package grid

import (
	"fmt"
	"strings"
)

// Index identifies a single pixel or voxel.
type Index []int

// Offset is a displacement between two indices.
type Offset []int

// Clone returns a copy of the index that does not share storage.
func (i Index) Clone() Index {
	out := make(Index, len(i))
	copy(out, i)
	return out
}

// AddTo writes i+o into dst and returns dst. dst must have the same length as i.
func (i Index) AddTo(o Offset, dst Index) Index {
	for k := range i {
		dst[k] = i[k] + o[k]
	}
	return dst
}

// Equal reports whether two indices name the same coordinate.
func (i Index) Equal(other Index) bool {
	if len(i) != len(other) {
		return false
	}
	for k := range i {
		if i[k] != other[k] {
			return false
		}
	}
	return true
}

// String formats the index as "[x y z]".
func (i Index) String() string {
	parts := make([]string, len(i))
	for k, v := range i {
		parts[k] = fmt.Sprint(v)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// Region is an axis-aligned box of indices: Index is the first corner and
// Size the extent along every axis.
type Region struct {
	Index Index
	Size  []int
}

// NewRegion returns a region starting at the origin with the given size.
func NewRegion(size ...int) Region {
	s := make([]int, len(size))
	copy(s, size)
	return Region{Index: make(Index, len(size)), Size: s}
}

// Dim returns the dimensionality of the region.
func (r Region) Dim() int {
	return len(r.Size)
}

// NumberOfPixels returns the number of indices inside the region.
func (r Region) NumberOfPixels() int {
	if len(r.Size) == 0 {
		return 0
	}
	n := 1
	for _, s := range r.Size {
		if s <= 0 {
			return 0
		}
		n *= s
	}
	return n
}

// IsEmpty reports whether the region contains no index.
func (r Region) IsEmpty() bool {
	return r.NumberOfPixels() == 0
}

// IsInside reports whether idx lies within the region.
func (r Region) IsInside(idx Index) bool {
	if len(idx) != len(r.Size) {
		return false
	}
	for k, v := range idx {
		if v < r.Index[k] || v >= r.Index[k]+r.Size[k] {
			return false
		}
	}
	return true
}

// Contains reports whether every index of other also lies in r.
// An empty region is contained in any region of the same dimension.
func (r Region) Contains(other Region) bool {
	if other.Dim() != r.Dim() {
		return false
	}
	if other.IsEmpty() {
		return true
	}
	for k := range r.Size {
		if other.Index[k] < r.Index[k] || other.Index[k]+other.Size[k] > r.Index[k]+r.Size[k] {
			return false
		}
	}
	return true
}

// Linear maps idx to its position in a buffer laid out over the region,
// axis 0 fastest. idx must be inside the region.
func (r Region) Linear(idx Index) int {
	pos := 0
	stride := 1
	for k := range r.Size {
		pos += (idx[k] - r.Index[k]) * stride
		stride *= r.Size[k]
	}
	return pos
}

// IndexAt is the inverse of Linear. The result is written into dst when it has
// the right length, otherwise a new index is allocated.
func (r Region) IndexAt(pos int, dst Index) Index {
	if len(dst) != len(r.Size) {
		dst = make(Index, len(r.Size))
	}
	for k, s := range r.Size {
		dst[k] = r.Index[k] + pos%s
		pos /= s
	}
	return dst
}

// Lines returns the first index of every 1-D line of the region running along
// axis, ordered with the lowest remaining axis varying fastest.
func (r Region) Lines(axis int) []Index {
	if axis < 0 || axis >= r.Dim() || r.IsEmpty() {
		return nil
	}
	face := Region{Index: r.Index.Clone(), Size: append([]int(nil), r.Size...)}
	face.Size[axis] = 1

	n := face.NumberOfPixels()
	lines := make([]Index, n)
	for pos := 0; pos < n; pos++ {
		lines[pos] = face.IndexAt(pos, nil)
	}
	return lines
}

// String formats the region as "index=[..] size=[..]".
func (r Region) String() string {
	return fmt.Sprintf("index=%v size=%v", r.Index, Index(r.Size))
}

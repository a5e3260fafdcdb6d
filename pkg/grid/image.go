package grid

// Image is a dense N-dimensional buffer of pixels of type T together with the
// physical spacing between neighbouring pixels along every axis.
type Image[T any] struct {
	region  Region
	spacing []float64
	data    []T
}

// New allocates a zero-filled image. A nil spacing means unit spacing on
// every axis.
func New[T any](size []int, spacing []float64) *Image[T] {
	region := NewRegion(size...)
	sp := make([]float64, len(size))
	for k := range sp {
		sp[k] = 1
		if k < len(spacing) {
			sp[k] = spacing[k]
		}
	}
	return &Image[T]{
		region:  region,
		spacing: sp,
		data:    make([]T, region.NumberOfPixels()),
	}
}

// FromSlice wraps data, laid out axis 0 fastest, as an image. It panics when
// the length of data does not match size.
func FromSlice[T any](data []T, size []int, spacing []float64) *Image[T] {
	img := New[T](size, spacing)
	if len(data) != len(img.data) {
		panic("grid: data length does not match image size")
	}
	copy(img.data, data)
	return img
}

// Region returns the full extent of the image.
func (im *Image[T]) Region() Region {
	return im.region
}

// Size returns the extent of the image along every axis.
func (im *Image[T]) Size() []int {
	return im.region.Size
}

// Dim returns the number of axes.
func (im *Image[T]) Dim() int {
	return im.region.Dim()
}

// Spacing returns the physical distance between neighbours along every axis.
func (im *Image[T]) Spacing() []float64 {
	return im.spacing
}

// At returns the pixel at idx.
func (im *Image[T]) At(idx Index) T {
	return im.data[im.region.Linear(idx)]
}

// Set stores v at idx.
func (im *Image[T]) Set(idx Index, v T) {
	im.data[im.region.Linear(idx)] = v
}

// Fill sets every pixel to v.
func (im *Image[T]) Fill(v T) {
	for i := range im.data {
		im.data[i] = v
	}
}

// Data exposes the underlying buffer, axis 0 fastest.
func (im *Image[T]) Data() []T {
	return im.data
}

// Clone returns a deep copy of the image.
func (im *Image[T]) Clone() *Image[T] {
	out := New[T](im.region.Size, im.spacing)
	copy(out.data, im.data)
	return out
}

// SameSpace reports whether two images have identical size and spacing.
func SameSpace[A, B any](a *Image[A], b *Image[B]) bool {
	if a.Dim() != b.Dim() {
		return false
	}
	for k := range a.region.Size {
		if a.region.Size[k] != b.region.Size[k] || a.spacing[k] != b.spacing[k] {
			return false
		}
	}
	return true
}

// Mask adapts an image to a boolean membership test: every pixel different
// from the zero value of T is inside.
type Mask[T comparable] struct {
	img *Image[T]
}

// MaskOf wraps img as a Mask.
func MaskOf[T comparable](img *Image[T]) Mask[T] {
	return Mask[T]{img: img}
}

// Inside reports whether the pixel at idx is non-zero.
func (m Mask[T]) Inside(idx Index) bool {
	var zero T
	return m.img.At(idx) != zero
}

// Dim returns the dimensionality of the wrapped image.
func (m Mask[T]) Dim() int {
	return m.img.Dim()
}

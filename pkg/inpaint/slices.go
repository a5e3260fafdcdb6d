package inpaint

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"dissolvemask/internal/models"
	"dissolvemask/pkg/grid"
)

// supportedExtensions lists the slice formats registered with image.Decode
var supportedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".tif":  true,
	".tiff": true,
	".bmp":  true,
}

// loadSlices reads every supported image in dir, ordered by the number
// embedded in the filename so that slice_2 precedes slice_10.
func loadSlices(dir string) ([]models.Slice, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if supportedExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoSlices, dir)
	}

	sort.SliceStable(names, func(i, j int) bool {
		ni, nj := extractNumber(names[i]), extractNumber(names[j])
		if ni != nj {
			return ni < nj
		}
		return names[i] < names[j]
	})

	slices := make([]models.Slice, 0, len(names))
	for i, name := range names {
		img, err := loadImage(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to load image %s: %w", name, err)
		}
		slices = append(slices, models.Slice{Image: img, Index: i, Filename: name})
	}
	return slices, nil
}

// extractNumber extracts the numeric part from a filename
func extractNumber(filename string) int {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	var digits strings.Builder
	for _, c := range base {
		if c >= '0' && c <= '9' {
			digits.WriteRune(c)
		}
	}

	if digits.Len() > 0 {
		if num, err := strconv.Atoi(digits.String()); err == nil {
			return num
		}
	}
	return 0
}

// loadImage decodes an image in any registered format
func loadImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, err
	}
	return img, nil
}

// grayAt returns the luminance of img at (x, y) relative to its bounds, in [0, 1]
func grayAt(img image.Image, x, y int) float64 {
	b := img.Bounds()
	g := color.Gray16Model.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.Gray16)
	return float64(g.Y) / 65535.0
}

// assembleVolume stacks input and mask slices into a 2D (single slice) or 3D
// volume. Both stacks must describe the same coordinate space.
func assembleVolume(input, mask []models.Slice, pixelSpacing, sliceGap, threshold float64) (*models.Volume, error) {
	if len(input) == 0 {
		return nil, ErrNoSlices
	}
	if len(input) != len(mask) {
		return nil, fmt.Errorf("%w: %d input slices, %d mask slices", ErrSliceCountMismatch, len(input), len(mask))
	}

	bounds := input[0].Image.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	for i := range input {
		for _, s := range []models.Slice{input[i], mask[i]} {
			if b := s.Image.Bounds(); b.Dx() != width || b.Dy() != height {
				return nil, fmt.Errorf("%w: %s is %dx%d, expected %dx%d",
					ErrSliceSizeMismatch, s.Filename, b.Dx(), b.Dy(), width, height)
			}
		}
	}

	size := []int{width, height}
	spacing := []float64{pixelSpacing, pixelSpacing}
	if len(input) > 1 {
		size = append(size, len(input))
		spacing = append(spacing, sliceGap)
	}

	vol := &models.Volume{
		Intensity: grid.New[float64](size, spacing),
		Mask:      grid.New[uint8](size, spacing),
		Slices:    input,
	}

	plane := width * height
	for z := range input {
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				pos := z*plane + y*width + x
				vol.Intensity.Data()[pos] = grayAt(input[z].Image, x, y)
				if grayAt(mask[z].Image, x, y) > threshold {
					vol.Mask.Data()[pos] = 1
				}
			}
		}
	}
	return vol, nil
}

// maskToFloat renders a mask as a 0/1 intensity volume for inspection
func maskToFloat(mask *grid.Image[uint8]) *grid.Image[float64] {
	out := grid.New[float64](mask.Size(), mask.Spacing())
	for i, m := range mask.Data() {
		if m != 0 {
			out.Data()[i] = 1
		}
	}
	return out
}

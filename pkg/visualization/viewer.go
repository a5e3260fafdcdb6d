package visualization

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/tiff"

	"dissolvemask/pkg/grid"
)

// Viewer extracts 2D slices from a 2D or 3D volume of normalised intensities
// and writes them as images.
type Viewer struct {
	// volume holds intensities in [0, 1]
	volume *grid.Image[float64]

	// dimensions of the volume; depth is 1 for a 2D volume
	width  int
	height int
	depth  int
}

// NewViewer creates a viewer over a 2D or 3D volume
func NewViewer(volume *grid.Image[float64]) (*Viewer, error) {
	size := volume.Size()
	switch len(size) {
	case 2:
		return &Viewer{volume: volume, width: size[0], height: size[1], depth: 1}, nil
	case 3:
		return &Viewer{volume: volume, width: size[0], height: size[1], depth: size[2]}, nil
	default:
		return nil, fmt.Errorf("viewer supports 2D and 3D volumes, got %dD", len(size))
	}
}

// at reads the voxel (x, y, z) regardless of the volume dimension
func (v *Viewer) at(x, y, z int) float64 {
	if v.volume.Dim() == 2 {
		return v.volume.At(grid.Index{x, y})
	}
	return v.volume.At(grid.Index{x, y, z})
}

func toGray16(value float64) color.Gray16 {
	return color.Gray16{Y: uint16(math.Max(0, math.Min(65535, value*65535)))}
}

// ExtractSlice extracts a 2D slice from the volume along the specified axis
func (v *Viewer) ExtractSlice(axis string, position int) (*image.Gray16, error) {
	if position < 0 {
		return nil, fmt.Errorf("position must be non-negative")
	}

	var img *image.Gray16

	switch axis {
	case "x", "X":
		// YZ plane
		if position >= v.width {
			return nil, fmt.Errorf("position %d exceeds width %d", position, v.width)
		}
		img = image.NewGray16(image.Rect(0, 0, v.depth, v.height))
		for y := 0; y < v.height; y++ {
			for z := 0; z < v.depth; z++ {
				img.SetGray16(z, y, toGray16(v.at(position, y, z)))
			}
		}

	case "y", "Y":
		// XZ plane
		if position >= v.height {
			return nil, fmt.Errorf("position %d exceeds height %d", position, v.height)
		}
		img = image.NewGray16(image.Rect(0, 0, v.width, v.depth))
		for z := 0; z < v.depth; z++ {
			for x := 0; x < v.width; x++ {
				img.SetGray16(x, z, toGray16(v.at(x, position, z)))
			}
		}

	case "z", "Z":
		// XY plane
		if position >= v.depth {
			return nil, fmt.Errorf("position %d exceeds depth %d", position, v.depth)
		}
		img = image.NewGray16(image.Rect(0, 0, v.width, v.height))
		for y := 0; y < v.height; y++ {
			for x := 0; x < v.width; x++ {
				img.SetGray16(x, y, toGray16(v.at(x, y, position)))
			}
		}

	default:
		return nil, fmt.Errorf("invalid axis: %s (must be x, y, or z)", axis)
	}

	return img, nil
}

// SaveSlice encodes img to filename, choosing the codec from the extension
func (v *Viewer) SaveSlice(img image.Image, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png":
		return png.Encode(file, img)
	case ".jpg", ".jpeg":
		return jpeg.Encode(file, img, &jpeg.Options{Quality: 90})
	case ".tif", ".tiff":
		return tiff.Encode(file, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("unsupported image extension %q", filepath.Ext(filename))
	}
}

// SaveSliceSequence extracts and saves every slice along the specified axis.
// format is the file extension without the dot (png, jpeg or tiff).
func (v *Viewer) SaveSliceSequence(axis, outputDir, format string) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return err
	}

	var maxPos int
	switch axis {
	case "x", "X":
		maxPos = v.width
	case "y", "Y":
		maxPos = v.height
	case "z", "Z":
		maxPos = v.depth
	default:
		return fmt.Errorf("invalid axis: %s (must be x, y, or z)", axis)
	}

	for pos := 0; pos < maxPos; pos++ {
		img, err := v.ExtractSlice(axis, pos)
		if err != nil {
			return err
		}

		filename := filepath.Join(outputDir, fmt.Sprintf("slice_%s_%03d.%s", strings.ToLower(axis), pos, format))
		if err := v.SaveSlice(img, filename); err != nil {
			return fmt.Errorf("failed to save slice %d: %w", pos, err)
		}
	}

	return nil
}

// Package inpaint runs the dissolve filter over stacks of 2D slices on disk:
// it loads an image stack and a mask stack, assembles them into a volume with
// the physical pixel spacing and slice gap, dissolves the mask and writes the
// result back out as a slice sequence.
package inpaint

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"gonum.org/v1/gonum/stat"

	"dissolvemask/internal/logger"
	"dissolvemask/internal/models"
	"dissolvemask/pkg/dissolve"
	"dissolvemask/pkg/grid"
	"dissolvemask/pkg/visualization"
)

const component = "inpaint"

// Params holds the pipeline configuration.
type Params struct {
	// InputDir contains the image slices, ordered by the number in their filename.
	InputDir string

	// MaskDir contains one mask slice per input slice. Pixels brighter than
	// MaskThreshold are dissolved.
	MaskDir string

	// OutputDir receives the dissolved slices.
	OutputDir string

	// Format is the output image format: png, jpeg or tiff.
	Format string

	// NumCores bounds the goroutines used to scan mask boundaries.
	NumCores int

	// PixelSpacing is the in-plane pixel size and SliceGap the distance between
	// slices, both in mm. Together they weight propagation distances.
	PixelSpacing float64
	SliceGap     float64

	// BackgroundValue is the intensity in [0, 1] given to masked pixels that
	// touch the processing region border.
	BackgroundValue float64

	// MaskThreshold is the normalised intensity above which a mask pixel is set.
	MaskThreshold float64

	// Region restricts processing to part of the volume. Nil means everything.
	Region *grid.Region

	// SaveIntermediaryResults writes the input, mask and output volumes under
	// IntermediaryDir as separate stages.
	SaveIntermediaryResults bool
	IntermediaryDir         string

	// Logger receives progress and step messages. Nil discards them.
	Logger *logger.Logger
}

// Inpainter runs the slice pipeline.
//
// The process consists of several steps:
// 1. Loading input slices
// 2. Loading mask slices
// 3. Assembling the volume and validating both stacks agree
// 4. Dissolving the mask
// 5. Computing statistics
// 6. Writing the output slices
type Inpainter struct {
	params *Params
	log    *logger.Logger

	slices     []models.Slice
	maskSlices []models.Slice

	volume  *models.Volume
	output  *grid.Image[float64]
	summary models.Summary
}

// NewInpainter creates a pipeline with the provided parameters.
func NewInpainter(params *Params) *Inpainter {
	log := params.Logger
	if log == nil {
		log = logger.Nop()
	}
	return &Inpainter{params: params, log: log}
}

// Process runs the complete pipeline.
func (p *Inpainter) Process() error {
	if p.params.SaveIntermediaryResults {
		if err := os.MkdirAll(p.params.IntermediaryDir, 0755); err != nil {
			return fmt.Errorf("failed to create intermediary directory: %w", err)
		}
	}

	p.log.Info(component, "Step 1: Loading input slices", map[string]interface{}{"dir": p.params.InputDir})
	slices, err := loadSlices(p.params.InputDir)
	if err != nil {
		return fmt.Errorf("failed to load input slices: %w", err)
	}
	p.slices = slices

	p.log.Info(component, "Step 2: Loading mask slices", map[string]interface{}{"dir": p.params.MaskDir})
	maskSlices, err := loadSlices(p.params.MaskDir)
	if err != nil {
		return fmt.Errorf("failed to load mask slices: %w", err)
	}
	p.maskSlices = maskSlices

	p.log.Info(component, "Step 3: Assembling volume", nil)
	if err := p.assemble(); err != nil {
		return err
	}
	p.saveIntermediaryResult("01_input", p.volume.Intensity)
	p.saveIntermediaryResult("02_mask", maskToFloat(p.volume.Mask))

	p.log.Info(component, "Step 4: Dissolving mask", nil)
	if err := p.dissolve(); err != nil {
		return fmt.Errorf("failed to dissolve mask: %w", err)
	}
	p.saveIntermediaryResult("03_dissolved", p.output)

	p.log.Info(component, "Step 5: Computing statistics", nil)
	p.computeSummary()

	p.log.Info(component, "Step 6: Writing output slices", map[string]interface{}{"dir": p.params.OutputDir})
	if err := p.writeVolume(p.output, p.params.OutputDir); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	return nil
}

func (p *Inpainter) assemble() error {
	vol, err := assembleVolume(p.slices, p.maskSlices, p.params.PixelSpacing, p.params.SliceGap, p.params.MaskThreshold)
	if err != nil {
		return err
	}
	p.volume = vol

	p.log.Info(component, "Volume assembled", map[string]interface{}{
		"width":   vol.Width(),
		"height":  vol.Height(),
		"depth":   vol.Depth(),
		"spacing": vol.Intensity.Spacing(),
	})
	return nil
}

// dissolve runs the filter over the processing region.
func (p *Inpainter) dissolve() error {
	region := p.volume.Intensity.Region()
	if p.params.Region != nil {
		region = *p.params.Region
	}

	f := &dissolve.Filter[float64]{
		BackgroundValue: p.params.BackgroundValue,
		Workers:         p.params.NumCores,
		Progress: func(completed, total int) {
			p.log.Debug(component, "Propagating", map[string]interface{}{
				"completed": completed,
				"total":     total,
			})
		},
	}

	start := time.Now()
	res, err := f.Run(p.volume.Intensity, grid.MaskOf(p.volume.Mask), region)
	if err != nil {
		return err
	}

	p.output = res.Output
	p.summary.Duration = time.Since(start)
	p.summary.MaskedPixels = res.Masked
	p.summary.FinalizedPixels = res.Finalized
	p.summary.ChangedPixels = res.Changed

	if res.Finalized < res.Masked {
		p.log.Warn(component, "Some masked pixels could not be reached and keep their input value",
			map[string]interface{}{"unreached": res.Masked - res.Finalized})
	}
	return nil
}

// computeSummary measures intensities under the mask before and after.
func (p *Inpainter) computeSummary() {
	before := p.volume.Intensity.Data()
	after := p.output.Data()

	weights := make([]float64, len(before))
	diffs := make([]float64, len(before))
	masked := 0
	for i, m := range p.volume.Mask.Data() {
		if m != 0 {
			weights[i] = 1
			masked++
		}
		diffs[i] = math.Abs(after[i] - before[i])
	}
	if masked == 0 {
		return
	}

	p.summary.MeanMaskedBefore = stat.Mean(before, weights)
	p.summary.MeanMaskedAfter = stat.Mean(after, weights)
	p.summary.MeanAbsoluteChange = stat.Mean(diffs, weights)

	p.log.Info(component, "Dissolve completed", map[string]interface{}{
		"masked":          p.summary.MaskedPixels,
		"finalized":       p.summary.FinalizedPixels,
		"changed":         p.summary.ChangedPixels,
		"meanAbsChange":   p.summary.MeanAbsoluteChange,
		"durationSeconds": p.summary.Duration.Seconds(),
	})
}

// writeVolume saves every z slice of vol into dir.
func (p *Inpainter) writeVolume(vol *grid.Image[float64], dir string) error {
	viewer, err := visualization.NewViewer(vol)
	if err != nil {
		return err
	}
	return viewer.SaveSliceSequence("z", dir, p.format())
}

// saveIntermediaryResult writes a processing stage when enabled. Failures are
// logged and do not abort the pipeline.
func (p *Inpainter) saveIntermediaryResult(stage string, vol *grid.Image[float64]) {
	if !p.params.SaveIntermediaryResults {
		return
	}
	dir := filepath.Join(p.params.IntermediaryDir, stage)
	if err := p.writeVolume(vol, dir); err != nil {
		p.log.Error(component, err, map[string]interface{}{"stage": stage})
	}
}

func (p *Inpainter) format() string {
	switch p.params.Format {
	case "":
		return "png"
	case "jpg":
		return "jpeg"
	default:
		return p.params.Format
	}
}

// Summary returns the statistics of the last run.
func (p *Inpainter) Summary() models.Summary {
	return p.summary
}

// Output returns the dissolved volume of the last run.
func (p *Inpainter) Output() *grid.Image[float64] {
	return p.output
}

// Volume returns the assembled input volume of the last run.
func (p *Inpainter) Volume() *models.Volume {
	return p.volume
}

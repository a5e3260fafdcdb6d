package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"dissolvemask/internal/logger"
	"dissolvemask/pkg/config"
	"dissolvemask/pkg/grid"
	"dissolvemask/pkg/inpaint"
)

func main() {
	// Parse command line arguments
	configPath := flag.String("config", "dissolvemask.yaml", "YAML configuration file")
	writeConfig := flag.Bool("write-config", false, "Write the default configuration to -config and exit")
	inputDir := flag.String("input", "", "Directory containing the image slices")
	maskDir := flag.String("mask", "", "Directory containing one mask slice per image slice")
	outputDir := flag.String("output", "dissolved", "Directory receiving the dissolved slices")
	format := flag.String("format", "", "Output format: png, jpeg or tiff (overrides config)")
	numCores := flag.Int("cores", 0, "Goroutines used to scan mask boundaries (overrides config)")
	sliceGap := flag.Float64("gap", 0, "Inter-slice gap in mm (overrides config)")
	pixelSpacing := flag.Float64("spacing", 0, "In-plane pixel spacing in mm (overrides config)")
	background := flag.Float64("background", -1, "Background intensity in [0, 1] (overrides config)")
	threshold := flag.Float64("threshold", -1, "Mask threshold in [0, 1] (overrides config)")
	saveIntermediary := flag.Bool("save-intermediary", false, "Save input, mask and output stages")
	intermediaryDir := flag.String("intermediary-dir", "intermediary_results", "Directory to save intermediary results")
	verbose := flag.Bool("verbose", false, "Log propagation progress")
	flag.Parse()

	if *writeConfig {
		if err := config.CreateDefaultConfigFile(*configPath); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Default configuration written to %s\n", *configPath)
		return
	}

	// Validate inputs
	if *inputDir == "" || *maskDir == "" {
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Flags given on the command line win over the file
	if *format != "" {
		cfg.Output.Format = *format
	}
	if *numCores > 0 {
		cfg.Processing.NumCores = *numCores
	}
	if *sliceGap > 0 {
		cfg.Processing.SliceGap = *sliceGap
	}
	if *pixelSpacing > 0 {
		cfg.Processing.PixelSpacing = *pixelSpacing
	}
	if *background >= 0 {
		cfg.Processing.BackgroundValue = *background
	}
	if *threshold >= 0 {
		cfg.Processing.MaskThreshold = *threshold
	}
	if *saveIntermediary {
		cfg.Output.SaveIntermediaryResults = true
	}
	if *verbose {
		cfg.Output.Verbose = true
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewConsole(logger.LevelFor(cfg.Output.Verbose))

	params := &inpaint.Params{
		InputDir:                *inputDir,
		MaskDir:                 *maskDir,
		OutputDir:               *outputDir,
		Format:                  cfg.Output.Format,
		NumCores:                cfg.Processing.NumCores,
		PixelSpacing:            cfg.Processing.PixelSpacing,
		SliceGap:                cfg.Processing.SliceGap,
		BackgroundValue:         cfg.Processing.BackgroundValue,
		MaskThreshold:           cfg.Processing.MaskThreshold,
		SaveIntermediaryResults: cfg.Output.SaveIntermediaryResults,
		IntermediaryDir:         *intermediaryDir,
		Logger:                  log,
	}
	if len(cfg.Region.Size) > 0 {
		params.Region = &grid.Region{Index: cfg.Region.Start, Size: cfg.Region.Size}
	}

	startTime := time.Now()
	p := inpaint.NewInpainter(params)
	if err := p.Process(); err != nil {
		log.Error("main", err, nil)
		os.Exit(1)
	}
	elapsed := time.Since(startTime)

	s := p.Summary()
	outputPath, _ := filepath.Abs(*outputDir)
	log.Info("main", "Finished", map[string]interface{}{
		"output":          outputPath,
		"maskedPixels":    s.MaskedPixels,
		"changedPixels":   s.ChangedPixels,
		"unreached":       s.MaskedPixels - s.FinalizedPixels,
		"meanBefore":      s.MeanMaskedBefore,
		"meanAfter":       s.MeanMaskedAfter,
		"totalSeconds":    elapsed.Seconds(),
		"dissolveSeconds": s.Duration.Seconds(),
	})
}

// Package config provides configuration loading and management for dissolvemask.
// It handles loading configuration from YAML files and provides default values.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration loaded from YAML
type Config struct {
	// Processing parameters
	Processing struct {
		// NumCores bounds the goroutines used to scan mask boundaries
		NumCores int `yaml:"numCores"`

		// SliceGap is the physical distance between consecutive slices in mm
		SliceGap float64 `yaml:"sliceGap"`

		// PixelSpacing is the in-plane physical size of a pixel in mm
		PixelSpacing float64 `yaml:"pixelSpacing"`

		// BackgroundValue fills masked pixels on the volume border (0..1 intensity)
		BackgroundValue float64 `yaml:"backgroundValue"`

		// MaskThreshold is the normalised intensity above which a mask pixel is set
		MaskThreshold float64 `yaml:"maskThreshold"`
	} `yaml:"processing"`

	// Region restricts processing to a box of the volume.
	// Empty Start/Size means the whole volume.
	Region struct {
		Start []int `yaml:"start"`
		Size  []int `yaml:"size"`
	} `yaml:"region"`

	// Output parameters
	Output struct {
		// Format of written slices: png, jpeg or tiff
		Format string `yaml:"format"`

		// SaveIntermediaryResults determines whether to save intermediary processing results
		SaveIntermediaryResults bool `yaml:"saveIntermediaryResults"`

		// Verbose controls the level of logging output
		Verbose bool `yaml:"verbose"`
	} `yaml:"output"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	// Set default processing parameters
	cfg.Processing.NumCores = runtime.NumCPU()
	cfg.Processing.SliceGap = 1.0
	cfg.Processing.PixelSpacing = 1.0
	cfg.Processing.BackgroundValue = 0
	cfg.Processing.MaskThreshold = 0.5

	// Set default output parameters
	cfg.Output.Format = "png"
	cfg.Output.SaveIntermediaryResults = false
	cfg.Output.Verbose = false

	return cfg
}

// Validate checks values that would make the pipeline misbehave
func (c *Config) Validate() error {
	if c.Processing.SliceGap <= 0 {
		return fmt.Errorf("sliceGap must be positive, got %v", c.Processing.SliceGap)
	}
	if c.Processing.PixelSpacing <= 0 {
		return fmt.Errorf("pixelSpacing must be positive, got %v", c.Processing.PixelSpacing)
	}
	if c.Processing.BackgroundValue < 0 || c.Processing.BackgroundValue > 1 {
		return fmt.Errorf("backgroundValue must be within [0, 1], got %v", c.Processing.BackgroundValue)
	}
	if len(c.Region.Start) != len(c.Region.Size) {
		return fmt.Errorf("region start and size must have the same length")
	}
	switch c.Output.Format {
	case "png", "jpeg", "jpg", "tiff":
	default:
		return fmt.Errorf("unsupported output format %q", c.Output.Format)
	}
	return nil
}

// LoadConfig loads configuration from a YAML file
// If the file doesn't exist, it returns the default configuration
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	// Read config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Parse YAML
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", configPath, err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	// Marshal config to YAML
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	// Write to file
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the specified path
func CreateDefaultConfigFile(configPath string) error {
	cfg := DefaultConfig()
	return SaveConfig(cfg, configPath)
}

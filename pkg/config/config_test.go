package config

import (
	"os"
	"path/filepath"
	"testing"
)

// TestDefaultConfig verifies the defaults are usable as-is
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Processing.NumCores < 1 {
		t.Errorf("Expected at least one core, got %d", cfg.Processing.NumCores)
	}
	if cfg.Output.Format != "png" {
		t.Errorf("Expected png output by default, got %s", cfg.Output.Format)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config does not validate: %v", err)
	}
}

// TestLoadConfigMissingFile verifies a missing file yields the defaults
func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.Processing.SliceGap != 1.0 {
		t.Errorf("Expected default slice gap 1.0, got %f", cfg.Processing.SliceGap)
	}
}

// TestSaveAndLoadConfig verifies values survive a round trip through YAML
func TestSaveAndLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Processing.SliceGap = 2.5
	cfg.Processing.BackgroundValue = 0.25
	cfg.Region.Start = []int{1, 2, 0}
	cfg.Region.Size = []int{10, 10, 3}
	cfg.Output.Format = "tiff"

	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if loaded.Processing.SliceGap != 2.5 {
		t.Errorf("Expected slice gap 2.5, got %f", loaded.Processing.SliceGap)
	}
	if loaded.Processing.BackgroundValue != 0.25 {
		t.Errorf("Expected background 0.25, got %f", loaded.Processing.BackgroundValue)
	}
	if len(loaded.Region.Size) != 3 || loaded.Region.Size[2] != 3 {
		t.Errorf("Expected region size [10 10 3], got %v", loaded.Region.Size)
	}
	if loaded.Output.Format != "tiff" {
		t.Errorf("Expected tiff format, got %s", loaded.Output.Format)
	}
}

// TestLoadConfigPartialFile verifies unspecified keys keep their defaults
func TestLoadConfigPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("processing:\n  sliceGap: 3\noutput:\n  verbose: true\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Processing.SliceGap != 3 {
		t.Errorf("Expected slice gap 3, got %f", cfg.Processing.SliceGap)
	}
	if cfg.Processing.MaskThreshold != 0.5 {
		t.Errorf("Expected default mask threshold 0.5, got %f", cfg.Processing.MaskThreshold)
	}
	if !cfg.Output.Verbose {
		t.Error("Expected verbose to be enabled")
	}
}

// TestLoadConfigInvalid verifies out-of-range values are rejected
func TestLoadConfigInvalid(t *testing.T) {
	cases := map[string]string{
		"negative gap":   "processing:\n  sliceGap: -1\n",
		"bad background": "processing:\n  backgroundValue: 2\n",
		"bad format":     "output:\n  format: gif\n",
		"bad region":     "region:\n  start: [1, 2]\n  size: [3]\n",
		"not yaml":       "processing: [",
	}

	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(content), 0644); err != nil {
				t.Fatalf("Failed to write config: %v", err)
			}
			if _, err := LoadConfig(path); err == nil {
				t.Error("Expected an error, got nil")
			}
		})
	}
}

// Package config loads pipeline tuning from JSON files.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/banshee-data/detection.report/internal/bsd/categorize"
	"github.com/banshee-data/detection.report/internal/bsd/ingest"
)

// PipelineConfig holds the tunable parameters of a batch run. Fields are
// pointers so a partial JSON file overrides only what it names; anything
// omitted keeps its default.
type PipelineConfig struct {
	// Category band boundaries on the y axis.
	NearBoundary *int `json:"near_boundary,omitempty"` // Category 1: y < near
	FarBoundary  *int `json:"far_boundary,omitempty"`  // Category 3: y > far

	// Log file extension recognised in the input folder.
	LogExtension *string `json:"log_extension,omitempty"`
}

func ptrInt(v int) *int          { return &v }
func ptrString(v string) *string { return &v }

// Default returns the configuration every run starts from.
func Default() *PipelineConfig {
	return &PipelineConfig{
		NearBoundary: ptrInt(categorize.DefaultThresholds.NearMax),
		FarBoundary:  ptrInt(categorize.DefaultThresholds.FarMin),
		LogExtension: ptrString(ingest.DefaultExtension),
	}
}

// Load reads a JSON config file and merges it over the defaults. The file
// must have a .json extension and stay under the max file size. Fields
// omitted from the JSON file retain their default values, so partial configs
// are safe.
func Load(path string) (*PipelineConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config %q: %w", cleanPath, err)
	}
	return cfg, nil
}

func (c *PipelineConfig) validate() error {
	if c.NearBoundary == nil || c.FarBoundary == nil {
		return fmt.Errorf("boundaries must not be null")
	}
	if *c.NearBoundary > *c.FarBoundary {
		return fmt.Errorf("near_boundary %d exceeds far_boundary %d", *c.NearBoundary, *c.FarBoundary)
	}
	if c.LogExtension == nil || *c.LogExtension == "" {
		return fmt.Errorf("log_extension must not be empty")
	}
	return nil
}

// Thresholds returns the categorisation boundaries for this configuration.
func (c *PipelineConfig) Thresholds() categorize.Thresholds {
	t := categorize.DefaultThresholds
	if c.NearBoundary != nil {
		t.NearMax = *c.NearBoundary
	}
	if c.FarBoundary != nil {
		t.FarMin = *c.FarBoundary
	}
	return t
}

// Extension returns the input file extension for this configuration.
func (c *PipelineConfig) Extension() string {
	if c.LogExtension != nil && *c.LogExtension != "" {
		return *c.LogExtension
	}
	return ingest.DefaultExtension
}

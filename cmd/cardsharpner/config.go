package main

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// FileConfig is the on-disk configuration for cardsharpner.
type FileConfig struct {
	Hero     string `hcl:"hero,optional"`
	Workers  int    `hcl:"workers,optional"`
	LogLevel string `hcl:"log_level,optional"`
	Output   string `hcl:"output,optional"`
	// Pattern filters filenames when walking directories.
	Pattern string `hcl:"pattern,optional"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *FileConfig {
	return &FileConfig{
		Hero:     "Hero",
		Workers:  4,
		LogLevel: "info",
		Output:   "hands.csv",
		Pattern:  "*.txt",
	}
}

// LoadConfig loads configuration from an HCL file, falling back to
// defaults when the file does not exist.
func LoadConfig(filename string) (*FileConfig, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config FileConfig
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	// Apply defaults for missing values
	if config.Hero == "" {
		config.Hero = "Hero"
	}
	if config.Workers == 0 {
		config.Workers = 4
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.Output == "" {
		config.Output = "hands.csv"
	}
	if config.Pattern == "" {
		config.Pattern = "*.txt"
	}

	return &config, nil
}

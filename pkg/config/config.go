// Package config provides configuration loading and management for hyperstack.
// It handles loading configuration from YAML files and provides default values.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation error
var ErrInvalid = errors.New("invalid configuration")

// Config represents the application configuration loaded from YAML
type Config struct {
	// Canvas dimensions of the hyperspectral raster
	Canvas struct {
		// Width of the raster in pixels
		Width int `yaml:"width"`

		// Height of the visualization before the axis strip is added
		Height int `yaml:"height"`

		// FinalHeight is the canvas height once the axis strip is added
		FinalHeight int `yaml:"finalHeight"`
	} `yaml:"canvas"`

	// Wavelength axis below the raster
	Axis struct {
		// FontSize of the wavelength labels in points
		FontSize float64 `yaml:"fontSize"`

		// TickInterval labels every n-th wavelength
		TickInterval int `yaml:"tickInterval"`

		// LabelOffset is the distance from the raster bottom to the labels
		LabelOffset int `yaml:"labelOffset"`

		// StripHeight is the height of the white strip under the raster
		StripHeight int `yaml:"stripHeight"`

		// Inset shifts each label right by this fraction of a column
		Inset float64 `yaml:"inset"`

		// LabelColor is a colour name or #rrggbb
		LabelColor string `yaml:"labelColor"`
	} `yaml:"axis"`

	// Calibration bar overlay
	CalibrationBar struct {
		Enabled    bool    `yaml:"enabled"`
		Divisions  int     `yaml:"divisions"`
		Decimals   int     `yaml:"decimals"`
		FontSize   float64 `yaml:"fontSize"`
		Zoom       int     `yaml:"zoom"`
		Bold       bool    `yaml:"bold"`
		LabelColor string  `yaml:"labelColor"`
	} `yaml:"calibrationBar"`

	Sampling struct {
		// Interpolate samples lines bilinearly instead of at the nearest pixel
		Interpolate bool `yaml:"interpolate"`
	} `yaml:"sampling"`

	Raster struct {
		// Smooth applies the 3x3 mean filter before resizing
		Smooth bool `yaml:"smooth"`
	} `yaml:"raster"`

	// Output parameters
	Output struct {
		// SavePreview writes the max projection with the selected line
		SavePreview bool `yaml:"savePreview"`

		// Verbose controls the level of logging output
		Verbose bool `yaml:"verbose"`
	} `yaml:"output"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Canvas.Width = 800
	cfg.Canvas.Height = 988
	cfg.Canvas.FinalHeight = 1024

	cfg.Axis.FontSize = 8
	cfg.Axis.TickInterval = 1
	cfg.Axis.LabelOffset = 10
	cfg.Axis.StripHeight = 6
	cfg.Axis.Inset = 0.2
	cfg.Axis.LabelColor = "white"

	cfg.CalibrationBar.Enabled = true
	cfg.CalibrationBar.Divisions = 3
	cfg.CalibrationBar.Decimals = 1
	cfg.CalibrationBar.FontSize = 9
	cfg.CalibrationBar.Zoom = 2
	cfg.CalibrationBar.Bold = true
	cfg.CalibrationBar.LabelColor = "white"

	cfg.Sampling.Interpolate = true
	cfg.Raster.Smooth = true

	cfg.Output.SavePreview = true
	cfg.Output.Verbose = true

	return cfg
}

// Validate checks that the configuration can produce a raster
func (c *Config) Validate() error {
	switch {
	case c.Canvas.Width <= 0 || c.Canvas.Height <= 0:
		return fmt.Errorf("%w: canvas must be at least 1x1, got %dx%d", ErrInvalid, c.Canvas.Width, c.Canvas.Height)
	case c.Canvas.FinalHeight < c.Canvas.Height:
		return fmt.Errorf("%w: finalHeight %d is smaller than height %d", ErrInvalid, c.Canvas.FinalHeight, c.Canvas.Height)
	case c.Axis.TickInterval < 1:
		return fmt.Errorf("%w: tickInterval must be at least 1, got %d", ErrInvalid, c.Axis.TickInterval)
	case c.Axis.FontSize <= 0:
		return fmt.Errorf("%w: axis fontSize must be positive", ErrInvalid)
	case c.Axis.StripHeight < 0 || c.Axis.LabelOffset < 0:
		return fmt.Errorf("%w: axis offsets must not be negative", ErrInvalid)
	}
	if c.CalibrationBar.Enabled {
		switch {
		case c.CalibrationBar.Divisions < 2:
			return fmt.Errorf("%w: calibration bar needs at least 2 divisions, got %d", ErrInvalid, c.CalibrationBar.Divisions)
		case c.CalibrationBar.Decimals < 0:
			return fmt.Errorf("%w: calibration bar decimals must not be negative", ErrInvalid)
		case c.CalibrationBar.Zoom < 1:
			return fmt.Errorf("%w: calibration bar zoom must be at least 1", ErrInvalid)
		case c.CalibrationBar.FontSize <= 0:
			return fmt.Errorf("%w: calibration bar fontSize must be positive", ErrInvalid)
		}
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

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

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

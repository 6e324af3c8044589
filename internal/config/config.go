package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/fkcurrie/neomatrix-golang/internal/types"
	"github.com/fkcurrie/neomatrix-golang/pkg/matrix"
)

// Config represents the application configuration
type Config struct {
	Matrix    types.MatrixConfig    `json:"matrix" yaml:"matrix"`
	Driver    types.DriverConfig    `json:"driver" yaml:"driver"`
	Animation types.AnimationConfig `json:"animation" yaml:"animation"`
	Log       types.LogConfig       `json:"log" yaml:"log"`
	Preview   types.PreviewConfig   `json:"preview" yaml:"preview"`
}

// Layout returns the matrix geometry described by the config
func (c *Config) Layout() matrix.Layout {
	return matrix.Layout{
		Width:       c.Matrix.Width,
		Height:      c.Matrix.Height,
		Progressive: c.Matrix.Progressive,
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Matrix: types.MatrixConfig{
			Width:  16,
			Height: 16,
		},
		Driver: types.DriverConfig{
			Name:       "ws281x",
			Pin:        "18",
			Brightness: 0.2,
			Frequency:  800000,
			DMA:        10,
			GPIOChip:   "gpiochip0",
		},
		Animation: types.AnimationConfig{
			Pattern: "rainbow",
			Loop:    true,
			Text:    "HI!",
		},
		Log: types.LogConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
		Preview: types.PreviewConfig{
			Addr: ":8080",
		},
	}
}

// LoadConfig loads the configuration from a file on top of the defaults.
// Files ending in .yaml or .yml are read as YAML, anything else as JSON.
// A missing file yields the defaults. Environment overrides are applied
// last. The result is not validated so callers can layer flags on top
// before calling Validate.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := decode(path, data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("read config: %w", err)
	}

	ApplyEnvOverrides(cfg)
	return cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, cfg)
	default:
		return json.Unmarshal(data, cfg)
	}
}

// ApplyEnvOverrides overrides config values from NEOMATRIX_* environment
// variables. Unparseable numbers are ignored.
func ApplyEnvOverrides(cfg *Config) {
	if v := os.Getenv("NEOMATRIX_DRIVER"); v != "" {
		cfg.Driver.Name = v
	}
	if v := os.Getenv("NEOMATRIX_PIN"); v != "" {
		cfg.Driver.Pin = v
	}
	if v := os.Getenv("NEOMATRIX_BRIGHTNESS"); v != "" {
		if b, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Driver.Brightness = b
		}
	}
	if v := os.Getenv("NEOMATRIX_PATTERN"); v != "" {
		cfg.Animation.Pattern = v
	}
	if v := os.Getenv("NEOMATRIX_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("NEOMATRIX_PREVIEW_ADDR"); v != "" {
		cfg.Preview.Addr = v
	}
}

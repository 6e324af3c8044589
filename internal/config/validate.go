package config

import (
	"fmt"
	"slices"
	"strings"
)

// ValidationError accumulates config validation errors
type ValidationError struct {
	Errors []string
}

func (v *ValidationError) Error() string {
	return "config validation failed:\n  - " + strings.Join(v.Errors, "\n  - ")
}

// HasErrors reports whether any validation errors have been recorded
func (v *ValidationError) HasErrors() bool {
	return len(v.Errors) > 0
}

// Add records a formatted validation error
func (v *ValidationError) Add(format string, args ...interface{}) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}

var (
	drivers    = []string{"ws281x", "spi", "preview", "memory"}
	logLevels  = []string{"debug", "info", "warn", "warning", "error"}
	logFormats = []string{"text", "json"}
)

// Validate checks cfg for structural correctness. It returns a
// *ValidationError listing every problem found.
func Validate(cfg *Config) error {
	ve := &ValidationError{}

	if cfg.Matrix.Width <= 0 {
		ve.Add("matrix.width must be > 0")
	}
	if cfg.Matrix.Height <= 0 {
		ve.Add("matrix.height must be > 0")
	}

	if !slices.Contains(drivers, cfg.Driver.Name) {
		ve.Add("driver.name %q must be one of %s", cfg.Driver.Name, strings.Join(drivers, ", "))
	}
	if cfg.Driver.Brightness < 0 || cfg.Driver.Brightness > 255 {
		ve.Add("driver.brightness %v must be within 0-1 or 0-255", cfg.Driver.Brightness)
	}
	if cfg.Driver.Frequency <= 0 {
		ve.Add("driver.frequency must be > 0")
	}
	if cfg.Driver.DMA < 0 || cfg.Driver.DMA > 14 {
		ve.Add("driver.dma %d must be within 0-14", cfg.Driver.DMA)
	}
	if cfg.Driver.Name != "preview" && cfg.Driver.Name != "memory" && cfg.Driver.Pin == "" {
		ve.Add("driver.pin is required for the %s driver", cfg.Driver.Name)
	}

	if cfg.Animation.Pattern == "" {
		ve.Add("animation.pattern is required")
	}
	if cfg.Animation.DelayMS < 0 {
		ve.Add("animation.delay_ms must be >= 0")
	}

	if !slices.Contains(logLevels, strings.ToLower(cfg.Log.Level)) {
		ve.Add("log.level %q must be one of %s", cfg.Log.Level, strings.Join(logLevels, ", "))
	}
	if !slices.Contains(logFormats, strings.ToLower(cfg.Log.Format)) {
		ve.Add("log.format %q must be text or json", cfg.Log.Format)
	}

	if cfg.Driver.Name == "preview" && cfg.Preview.Addr == "" {
		ve.Add("preview.addr is required for the preview driver")
	}

	if ve.HasErrors() {
		return ve
	}
	return nil
}

// Package driver opens the matrix.Strip backend named in the configuration
package driver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/fkcurrie/neomatrix-golang/internal/driver/preview"
	"github.com/fkcurrie/neomatrix-golang/internal/driver/spi"
	"github.com/fkcurrie/neomatrix-golang/internal/driver/ws281x"
	"github.com/fkcurrie/neomatrix-golang/internal/pincheck"
	"github.com/fkcurrie/neomatrix-golang/internal/types"
	"github.com/fkcurrie/neomatrix-golang/pkg/matrix"
)

// Driver names
const (
	WS281x  = "ws281x"
	SPI     = "spi"
	Preview = "preview"
	Memory  = "memory"
)

// Names lists every driver Open understands
var Names = []string{WS281x, SPI, Preview, Memory}

var (
	// ErrUnknownDriver is returned for a driver name not in Names
	ErrUnknownDriver = errors.New("driver: unknown driver")
	// ErrUnsupported is returned when the driver is not compiled into this binary
	ErrUnsupported = ws281x.ErrUnsupported
	// ErrPinMethod is returned when the pin cannot be driven by the chosen driver
	ErrPinMethod = errors.New("driver: pin not usable with this driver")
)

// Device is an open strip that has to be released after use
type Device interface {
	matrix.Strip
	io.Closer
}

// Runner is implemented by devices that need a background loop, such as
// the preview server
type Runner interface {
	Run(ctx context.Context) error
}

// Open creates the device for cfg sized to layout. previewAddr is only
// used by the preview driver.
func Open(cfg types.DriverConfig, layout matrix.Layout, previewAddr string, log *slog.Logger) (Device, error) {
	if log == nil {
		log = slog.Default()
	}
	count := layout.Len()

	switch cfg.Name {
	case WS281x:
		pin, err := pincheck.Parse(cfg.Pin)
		if err != nil {
			return nil, err
		}
		if pincheck.MethodOf(pin) == pincheck.MethodNone {
			return nil, fmt.Errorf("%w: GPIO%d has no PWM, PCM or SPI function", ErrPinMethod, pin)
		}
		log.Info("opening ws281x strip", "pin", pin, "channel", pincheck.Channel(pin),
			"count", count, "brightness", cfg.BrightnessLevel())
		s, err := ws281x.Open(ws281x.Config{
			Pin:        pin,
			Count:      count,
			Brightness: cfg.BrightnessLevel(),
			Frequency:  cfg.Frequency,
			DMA:        cfg.DMA,
			Invert:     cfg.Invert,
		})
		if err != nil {
			return nil, err
		}
		return s, nil

	case SPI:
		pin, err := pincheck.Parse(cfg.Pin)
		if err != nil {
			return nil, err
		}
		if pincheck.MethodOf(pin) != pincheck.MethodSPI {
			return nil, fmt.Errorf("%w: spi needs MOSI (D10), got %s", ErrPinMethod, pincheck.BoardName(pin))
		}
		log.Info("opening spi strip", "port", cfg.SPIPort, "count", count, "brightness", cfg.BrightnessFraction())
		s, err := spi.Open(spi.Config{
			Port:       cfg.SPIPort,
			Count:      count,
			Brightness: cfg.BrightnessFraction(),
			Frequency:  cfg.Frequency,
		})
		if err != nil {
			return nil, err
		}
		return s, nil

	case Preview:
		log.Info("opening preview strip", "addr", previewAddr, "count", count)
		return preview.New(layout, previewAddr, log), nil

	case Memory:
		// Frames are not kept so a looping pattern does not grow the heap
		return memory{matrix.NewDiscardStrip(count)}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Name)
}

type memory struct {
	*matrix.MemoryStrip
}

func (memory) Close() error { return nil }

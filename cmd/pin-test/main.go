package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fkcurrie/neomatrix-golang/internal/animation"
	"github.com/fkcurrie/neomatrix-golang/internal/config"
	"github.com/fkcurrie/neomatrix-golang/internal/driver"
	"github.com/fkcurrie/neomatrix-golang/internal/logger"
	"github.com/fkcurrie/neomatrix-golang/internal/pincheck"
	"github.com/fkcurrie/neomatrix-golang/internal/privilege"
	"github.com/fkcurrie/neomatrix-golang/internal/types"
	"github.com/fkcurrie/neomatrix-golang/pkg/matrix"
	"github.com/fkcurrie/neomatrix-golang/pkg/pattern"
)

type opener func(pin string) (driver.Device, error)

// prober checks that the GPIO line behind pin is free before the strip
// takes it over
type prober func(pin string) error

func main() {
	driverName := flag.String("driver", driver.WS281x, "strip driver: ws281x or spi")
	board := flag.Bool("board", false, "sweep the board pin names (D18, D10, ...) instead of GPIO numbers")
	brightness := flag.Float64("brightness", 50, "brightness, 0.0-1.0 or 0-255")
	hold := flag.Duration("hold", time.Second, "time each color is shown")
	level := flag.String("log-level", "info", "log level")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: sudo %s [flags] [GPIO_PIN]\nExample: sudo %s 21\n", os.Args[0], os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	log := logger.NewWithWriter(types.LogConfig{Level: *level}, os.Stderr)

	pins := defaultPins(*board)
	if flag.NArg() > 0 {
		if _, err := pincheck.Parse(flag.Arg(0)); err != nil {
			log.Error("not a valid GPIO pin", "pin", flag.Arg(0), "error", err)
			flag.Usage()
			os.Exit(2)
		}
		pins = []string{flag.Arg(0)}
	} else {
		log.Info("Testing common GPIO pins for NeoPixel compatibility, press Ctrl+C once the LEDs light up")
	}

	if *driverName == driver.WS281x {
		if report := privilege.Check(); !report.Root() {
			log.Warn("not running as root, ws281x will likely fail", "euid", report.EUID)
		}
	}

	cfg := config.DefaultConfig()
	cfg.Driver.Name = *driverName
	cfg.Driver.Brightness = *brightness
	layout := cfg.Layout()

	open := func(pin string) (driver.Device, error) {
		dc := cfg.Driver
		dc.Pin = pin
		return driver.Open(dc, layout, "", log)
	}

	var probe prober
	if cfg.Driver.Name == driver.WS281x {
		// SPI pins are left alone: requesting them as GPIO would undo the pinmux
		probe = func(pin string) error {
			offset, err := pincheck.Parse(pin)
			if err != nil {
				return err
			}
			return pincheck.Probe(cfg.Driver.GPIOChip, offset)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	failed := sweep(ctx, log, open, probe, layout, pins, *hold)
	switch {
	case ctx.Err() != nil:
		log.Info("Test interrupted by user")
	case len(pins) > 1:
		log.Info("All common pins tested. If none worked, try a specific pin.", "failed", failed)
	}
	if len(failed) == len(pins) {
		os.Exit(1)
	}
}

func defaultPins(board bool) []string {
	if board {
		return pincheck.BoardDefaultPins
	}
	pins := make([]string, len(pincheck.DefaultPins))
	for i, p := range pincheck.DefaultPins {
		pins[i] = fmt.Sprint(p)
	}
	return pins
}

// sweep tests every pin in turn and returns the ones that failed. A failed
// pin does not stop the sweep; an interrupt does.
func sweep(ctx context.Context, log *slog.Logger, open opener, probe prober, layout matrix.Layout, pins []string, hold time.Duration) []string {
	var failed []string
	for _, pin := range pins {
		if ctx.Err() != nil {
			break
		}
		if probe != nil {
			if err := probe(pin); err != nil {
				log.Warn("GPIO line not free, the strip may stay dark", "pin", pin, "error", err)
			}
		}
		err := testPin(ctx, log, open, layout, pin, hold)
		if errors.Is(err, context.Canceled) {
			break
		}
		if err != nil {
			log.Error("pin test failed", "pin", pin, "error", err)
			failed = append(failed, pin)
			continue
		}
		log.Info("Test completed", "pin", pin)
	}
	return failed
}

func testPin(ctx context.Context, log *slog.Logger, open opener, layout matrix.Layout, pin string, hold time.Duration) error {
	log.Info("Testing pin", "pin", pin)

	dev, err := open(pin)
	if err != nil {
		return err
	}
	defer dev.Close()

	m, err := matrix.New(layout, dev)
	if err != nil {
		return err
	}

	steps := []struct {
		name string
		seq  pattern.Sequence
	}{
		{"red", pattern.Solid(pattern.Red, hold)},
		{"green", pattern.Solid(pattern.Green, hold)},
		{"blue", pattern.Solid(pattern.Blue, hold)},
		{"off", pattern.Blackout()},
	}

	player := animation.NewPlayer(m, log)
	for _, step := range steps {
		log.Info("  Setting color", "pin", pin, "color", step.name)
		if err := player.Play(ctx, step.seq); err != nil {
			if ctx.Err() != nil {
				m.Clear()
			}
			return err
		}
	}
	return nil
}

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fkcurrie/neomatrix-golang/internal/config"
	"github.com/fkcurrie/neomatrix-golang/internal/logger"
	"github.com/fkcurrie/neomatrix-golang/internal/pincheck"
	"github.com/fkcurrie/neomatrix-golang/internal/types"
)

const defaultChip = "gpiochip0"

// The Raspberry Pi 5 exposes the header on gpiochip11 with line numbers
// starting at 512
const pi5Base = 512

func main() {
	configPath := flag.String("config", "config.json", "path to config file (JSON or YAML)")
	chip := flag.String("chip", "", "GPIO chip to try first (default driver.gpio_chip from the config)")
	pin := flag.String("pin", "5", "line to toggle (5, GPIO5 or D5)")
	period := flag.Duration("period", time.Second, "toggle period")
	level := flag.String("log-level", "info", "log level")
	flag.Parse()

	log := logger.NewWithWriter(types.LogConfig{Level: *level}, os.Stderr)

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Error("failed to load config", "path", *configPath, "error", err)
		os.Exit(1)
	}
	*chip = resolveChip(*chip, cfg)

	offset, err := pincheck.Parse(*pin)
	if err != nil {
		log.Error("bad pin", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("Starting GPIO test...", "pin", pincheck.BoardName(offset))
	if status, err := pincheck.Inspect(*chip, offset); err == nil && status.Used {
		log.Warn("line already in use", "chip", *chip, "offset", offset, "consumer", status.Consumer)
	}

	line, target, err := pincheck.RequestOutput(log,
		pincheck.Target{Chip: *chip, Offset: offset},
		pincheck.Target{Chip: "gpiochip11", Offset: pi5Base + offset},
	)
	if err != nil {
		log.Error("no usable GPIO line", "error", err)
		os.Exit(1)
	}
	defer line.Close()

	log.Info("Successfully requested GPIO line", "chip", target.Chip, "offset", target.Offset)

	err = pincheck.Blink(ctx, line, *period, log)
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, err)
	}
	log.Info("Shutting down...")
}

// resolveChip prefers the -chip flag, then driver.gpio_chip
func resolveChip(flagChip string, cfg *config.Config) string {
	if flagChip != "" {
		return flagChip
	}
	if cfg.Driver.GPIOChip != "" {
		return cfg.Driver.GPIOChip
	}
	return defaultChip
}

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/fkcurrie/neomatrix-golang/internal/animation"
	"github.com/fkcurrie/neomatrix-golang/internal/config"
	"github.com/fkcurrie/neomatrix-golang/internal/driver"
	"github.com/fkcurrie/neomatrix-golang/internal/logger"
	"github.com/fkcurrie/neomatrix-golang/internal/privilege"
	"github.com/fkcurrie/neomatrix-golang/pkg/matrix"
	"github.com/fkcurrie/neomatrix-golang/pkg/pattern"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("matrix", flag.ContinueOnError)
	configPath := fs.String("config", "config.json", "path to config file (JSON or YAML)")
	driverName := fs.String("driver", "", "strip driver: "+strings.Join(driver.Names, ", "))
	pin := fs.String("pin", "", "data pin (18, GPIO18 or D18)")
	brightness := fs.Float64("brightness", 0, "brightness, 0.0-1.0 or 0-255")
	patternName := fs.String("pattern", "", "pattern to play: "+strings.Join(pattern.Names(), ", "))
	delay := fs.Duration("delay", 0, "frame delay override, e.g. 20ms")
	loop := fs.Bool("loop", true, "repeat the pattern until interrupted")
	width := fs.Int("width", 0, "matrix width in pixels")
	height := fs.Int("height", 0, "matrix height in pixels")
	progressive := fs.Bool("progressive", false, "rows all run left to right")
	text := fs.String("text", "", "text for the text pattern")
	previewAddr := fs.String("preview", "", "listen address of the preview driver")
	list := fs.Bool("list", false, "list patterns and exit")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *list {
		for _, name := range pattern.Names() {
			fmt.Println(name)
		}
		return nil
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Only flags given on the command line override the file
	loopSet := false
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "driver":
			cfg.Driver.Name = *driverName
		case "pin":
			cfg.Driver.Pin = *pin
		case "brightness":
			cfg.Driver.Brightness = *brightness
		case "pattern":
			cfg.Animation.Pattern = *patternName
		case "delay":
			cfg.Animation.DelayMS = int(*delay / time.Millisecond)
		case "loop":
			cfg.Animation.Loop = *loop
			loopSet = true
		case "width":
			cfg.Matrix.Width = *width
		case "height":
			cfg.Matrix.Height = *height
		case "progressive":
			cfg.Matrix.Progressive = *progressive
		case "text":
			cfg.Animation.Text = *text
		case "preview":
			cfg.Preview.Addr = *previewAddr
		}
	})
	// The showcase plays once unless asked to repeat
	if cfg.Animation.Pattern == "all" && !loopSet {
		cfg.Animation.Loop = false
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	log, closeLog, err := logger.New(cfg.Log)
	if err != nil {
		return err
	}
	defer closeLog()

	build, err := pattern.Lookup(cfg.Animation.Pattern)
	if err != nil {
		return err
	}

	if cfg.Driver.Name == driver.WS281x {
		if report := privilege.Check(); !report.CanDrivePWM() {
			log.Warn("ws281x needs root for /dev/mem, try sudo", "euid", report.EUID, "error", report.DevMem)
		}
	}

	layout := cfg.Layout()
	dev, err := driver.Open(cfg.Driver, layout, cfg.Preview.Addr, log)
	if err != nil {
		return fmt.Errorf("open %s driver: %w", cfg.Driver.Name, err)
	}
	defer func() {
		if err := dev.Close(); err != nil {
			log.Warn("failed to close driver", "error", err)
		}
	}()

	m, err := matrix.New(layout, dev)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return play(ctx, log, m, dev, cfg, build)
}

func play(ctx context.Context, log *slog.Logger, m *matrix.Matrix, dev driver.Device, cfg *config.Config, build pattern.Builder) error {
	opts := pattern.Options{
		Layout: m.Layout(),
		Delay:  cfg.Animation.Delay(),
		Text:   cfg.Animation.Text,
	}
	player := animation.NewPlayer(m, log)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	if r, ok := dev.(driver.Runner); ok {
		g.Go(func() error { return r.Run(ctx) })
	}

	g.Go(func() error {
		// The preview server stops once a single pass is over
		defer cancel()
		log.Info(fmt.Sprintf("Running %s pattern", cfg.Animation.Pattern),
			"driver", cfg.Driver.Name, "loop", cfg.Animation.Loop,
			"width", cfg.Matrix.Width, "height", cfg.Matrix.Height)
		return player.Run(ctx, func() pattern.Sequence { return build(opts) }, cfg.Animation.Loop)
	})

	err := g.Wait()
	log.Info("stopped", "frames", player.Frames())
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

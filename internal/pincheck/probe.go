package pincheck

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/warthog618/go-gpiocdev"
)

// Consumer is the label attached to lines requested by this package
const Consumer = "neomatrix"

// LineStatus describes a GPIO line as seen by the kernel
type LineStatus struct {
	Chip     string
	Offset   int
	Name     string
	Used     bool
	Consumer string
}

// Inspect reads the line info for offset on chip without requesting it
func Inspect(chip string, offset int) (LineStatus, error) {
	c, err := gpiocdev.NewChip(chip, gpiocdev.WithConsumer(Consumer))
	if err != nil {
		return LineStatus{}, fmt.Errorf("open %s: %w", chip, err)
	}
	defer c.Close()

	if offset < 0 || offset >= c.Lines() {
		return LineStatus{}, fmt.Errorf("%w: %s has no line %d", ErrInvalidPin, chip, offset)
	}

	info, err := c.LineInfo(offset)
	if err != nil {
		return LineStatus{}, fmt.Errorf("line info %s:%d: %w", chip, offset, err)
	}

	return LineStatus{
		Chip:     chip,
		Offset:   offset,
		Name:     info.Name,
		Used:     info.Used,
		Consumer: info.Consumer,
	}, nil
}

// Probe checks that offset on chip can be requested as an output, then
// releases it. A permission error or a line held by another consumer
// (the ws281x PWM driver, for instance) is returned as is.
func Probe(chip string, offset int) error {
	line, err := gpiocdev.RequestLine(chip, offset, gpiocdev.AsOutput(0), gpiocdev.WithConsumer(Consumer))
	if err != nil {
		return fmt.Errorf("request %s:%d: %w", chip, offset, err)
	}
	return line.Close()
}

// Target is a chip and line offset
type Target struct {
	Chip   string
	Offset int
}

// RequestOutput requests the first target that can be had as an output,
// logging each failure
func RequestOutput(log *slog.Logger, targets ...Target) (*gpiocdev.Line, Target, error) {
	var lastErr error
	for _, t := range targets {
		line, err := gpiocdev.RequestLine(t.Chip, t.Offset, gpiocdev.AsOutput(0), gpiocdev.WithConsumer(Consumer))
		if err == nil {
			return line, t, nil
		}
		log.Warn("failed to request line", "chip", t.Chip, "offset", t.Offset, "error", err)
		lastErr = err
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no targets")
	}
	return nil, Target{}, fmt.Errorf("request output: %w", lastErr)
}

// Setter is the part of a GPIO line Blink needs
type Setter interface {
	SetValue(value int) error
}

// Blink toggles line every period until ctx is done. A failed write is
// logged and retried on the next tick.
func Blink(ctx context.Context, line Setter, period time.Duration, log *slog.Logger) error {
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	value := 0
	for {
		select {
		case <-ctx.Done():
			if err := line.SetValue(0); err != nil {
				log.Warn("failed to reset line", "error", err)
			}
			return ctx.Err()
		case <-ticker.C:
			value ^= 1
			if err := line.SetValue(value); err != nil {
				log.Warn("failed to set value", "error", err)
				continue
			}
			log.Debug("set GPIO value", "value", value)
		}
	}
}

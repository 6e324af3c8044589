package animation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fkcurrie/neomatrix-golang/pkg/matrix"
	"github.com/fkcurrie/neomatrix-golang/pkg/pattern"
)

// ErrEmptySequence is returned when a looping pattern produces no frames
var ErrEmptySequence = errors.New("animation: sequence produced no frames")

// Player renders pattern sequences onto a matrix, holding each frame for
// the time the sequence asks for
type Player struct {
	matrix *matrix.Matrix
	log    *slog.Logger
	frames int
}

// NewPlayer creates a player for m
func NewPlayer(m *matrix.Matrix, log *slog.Logger) *Player {
	if log == nil {
		log = slog.Default()
	}
	return &Player{
		matrix: m,
		log:    log,
	}
}

// Frames returns the number of frames rendered so far
func (p *Player) Frames() int {
	return p.frames
}

// Play renders seq until it is exhausted or ctx is done. Cancellation is
// checked between frames; a frame that has started drawing is always
// rendered.
func (p *Player) Play(ctx context.Context, seq pattern.Sequence) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		hold, ok := seq.Next(p.matrix)
		if !ok {
			return nil
		}
		if err := p.matrix.Show(); err != nil {
			return err
		}
		p.frames++

		if err := wait(ctx, hold); err != nil {
			return err
		}
	}
}

// Run plays one pass of build, or passes back to back while loop is set,
// and turns every LED off before returning however it exits. A failure to
// turn the LEDs off is logged, not returned.
func (p *Player) Run(ctx context.Context, build func() pattern.Sequence, loop bool) error {
	defer p.off()

	for pass := 0; ; pass++ {
		before := p.frames
		if err := p.Play(ctx, build()); err != nil {
			return err
		}
		if !loop {
			return nil
		}
		if p.frames == before {
			return fmt.Errorf("%w (pass %d)", ErrEmptySequence, pass)
		}
	}
}

func (p *Player) off() {
	if err := p.matrix.Clear(); err != nil {
		p.log.Warn("failed to turn LEDs off", "error", err)
		return
	}
	p.log.Debug("LEDs off", "frames", p.frames)
}

// wait blocks for d or until ctx is done
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

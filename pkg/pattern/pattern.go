// Package pattern generates animation frames for an LED matrix.
//
// The generators themselves are pure functions of a frame counter (Wheel,
// SpiralPath, PulseLevels, ...). A Sequence strings them into frames: each
// call to Next draws one frame into the matrix buffer and reports how long
// the rendered frame should be held. Rendering and waiting are left to the
// caller, see internal/animation.
package pattern

import (
	"image/color"
	"time"

	"github.com/fkcurrie/neomatrix-golang/pkg/matrix"
)

// Sequence is a finite series of frames
type Sequence interface {
	// Next draws the next frame into m and returns how long it should stay
	// on the LEDs. ok is false once the sequence is exhausted, in which case
	// nothing was drawn.
	Next(m *matrix.Matrix) (hold time.Duration, ok bool)
}

// DrawFunc draws frame number frame, counting from zero
type DrawFunc func(m *matrix.Matrix, frame int)

type counted struct {
	frames int
	hold   time.Duration
	draw   DrawFunc
	next   int
}

// Frames returns a Sequence of n frames, each drawn by draw and held for hold
func Frames(n int, hold time.Duration, draw DrawFunc) Sequence {
	return &counted{frames: n, hold: hold, draw: draw}
}

func (c *counted) Next(m *matrix.Matrix) (time.Duration, bool) {
	if c.next >= c.frames {
		return 0, false
	}
	c.draw(m, c.next)
	c.next++
	return c.hold, true
}

type chain struct {
	seqs []Sequence
}

// Chain plays the given sequences one after another
func Chain(seqs ...Sequence) Sequence {
	return &chain{seqs: seqs}
}

func (c *chain) Next(m *matrix.Matrix) (time.Duration, bool) {
	for len(c.seqs) > 0 {
		if hold, ok := c.seqs[0].Next(m); ok {
			return hold, true
		}
		c.seqs = c.seqs[1:]
	}
	return 0, false
}

// Solid fills the matrix with one color and holds it
func Solid(c color.RGBA, hold time.Duration) Sequence {
	return Frames(1, hold, func(m *matrix.Matrix, _ int) {
		m.Fill(c)
	})
}

// Blackout turns every LED off in a single frame
func Blackout() Sequence {
	return Solid(Black, 0)
}

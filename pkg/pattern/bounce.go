package pattern

import (
	"image"
	"image/color"
	"time"

	"github.com/fkcurrie/neomatrix-golang/pkg/matrix"
)

// Bouncer is a point moving diagonally across the grid and reflecting off
// its edges. Velocity components are always -1, 0 or +1.
type Bouncer struct {
	Pos    image.Point
	Vel    image.Point
	layout matrix.Layout
}

// NewBouncer starts a point in the top left corner heading down and right
func NewBouncer(l matrix.Layout) *Bouncer {
	b := &Bouncer{Vel: image.Pt(1, 1), layout: l}
	// A one cell wide axis has nowhere to go
	if l.Width <= 1 {
		b.Vel.X = 0
	}
	if l.Height <= 1 {
		b.Vel.Y = 0
	}
	return b
}

// Step advances one cell and flips the velocity of any axis that has
// reached an edge, so the next Step heads back into the grid
func (b *Bouncer) Step() {
	b.Pos = b.Pos.Add(b.Vel)
	if b.Vel.X != 0 && (b.Pos.X >= b.layout.Width-1 || b.Pos.X <= 0) {
		b.Vel.X = -b.Vel.X
	}
	if b.Vel.Y != 0 && (b.Pos.Y >= b.layout.Height-1 || b.Pos.Y <= 0) {
		b.Vel.Y = -b.Vel.Y
	}
}

// TrailPoint is one cell of a fading trail
type TrailPoint struct {
	Pos       image.Point
	Intensity float64
}

// Trail returns the head followed by size-1 cells behind it along the
// current velocity, fading linearly. A trail cell that would fall off the
// grid takes the head's coordinate on that axis instead.
func (b *Bouncer) Trail(size int) []TrailPoint {
	if size < 0 {
		size = 0
	}
	out := make([]TrailPoint, 0, size)
	for i := 0; i < size; i++ {
		p := b.Pos.Sub(b.Vel.Mul(i))
		if p.X < 0 || p.X >= b.layout.Width {
			p.X = b.Pos.X
		}
		if p.Y < 0 || p.Y >= b.layout.Height {
			p.Y = b.Pos.Y
		}
		out = append(out, TrailPoint{
			Pos:       p,
			Intensity: 1 - float64(i)/float64(size),
		})
	}
	return out
}

// Bounce moves a dot with a trail of trail cells for the given number of
// frames. A trail of 1 is the bare dot.
func Bounce(l matrix.Layout, c color.RGBA, iterations, trail int, delay time.Duration) Sequence {
	b := NewBouncer(l)
	if trail < 1 {
		trail = 1
	}
	return Frames(iterations, delay, func(m *matrix.Matrix, _ int) {
		m.Blank()
		points := b.Trail(trail)
		// Tail first so the head wins where cells overlap
		for i := len(points) - 1; i >= 0; i-- {
			m.SetPoint(points[i].Pos, Scale(c, points[i].Intensity))
		}
		b.Step()
	})
}

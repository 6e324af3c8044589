package pattern

import (
	"image/color"
	"time"

	"github.com/fkcurrie/neomatrix-golang/pkg/matrix"
)

// ColorWipe lights the chain one LED per frame, in wiring order, leaving
// earlier LEDs set. A matrix of N pixels takes exactly N frames.
func ColorWipe(c color.RGBA, delay time.Duration) Sequence {
	return PerPixel(delay, func(m *matrix.Matrix, frame int) {
		m.SetIndex(frame, c)
	})
}

// PerPixel returns a Sequence with one frame for every pixel of the matrix
// it is played on
func PerPixel(hold time.Duration, draw DrawFunc) Sequence {
	return &sized{
		counted: &counted{hold: hold, draw: draw},
		size:    (*matrix.Matrix).Len,
	}
}

// sized resolves the frame count from the matrix on the first call
type sized struct {
	*counted
	size     func(m *matrix.Matrix) int
	resolved bool
}

func (s *sized) Next(m *matrix.Matrix) (time.Duration, bool) {
	if !s.resolved {
		s.frames = s.size(m)
		s.resolved = true
	}
	return s.counted.Next(m)
}

// Wipes chains a wipe for each color, like the red, green, blue, off
// sequence of the demo scripts
func Wipes(delay time.Duration, colors ...color.RGBA) Sequence {
	seqs := make([]Sequence, 0, len(colors))
	for _, c := range colors {
		seqs = append(seqs, ColorWipe(c, delay))
	}
	return Chain(seqs...)
}

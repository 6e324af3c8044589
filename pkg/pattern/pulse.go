package pattern

import (
	"image/color"
	"time"

	"github.com/fkcurrie/neomatrix-golang/pkg/matrix"
)

// PulseLevels returns a 2*steps brightness ramp rising from 0 towards 1
// and falling back: 0, 1/steps, ..., (steps-1)/steps, 1, ..., 1/steps.
// A non-positive steps gives an empty ramp.
func PulseLevels(steps int) []float64 {
	if steps < 0 {
		steps = 0
	}
	levels := make([]float64, 0, 2*steps)
	for i := 0; i < steps; i++ {
		levels = append(levels, float64(i)/float64(steps))
	}
	for i := steps; i > 0; i-- {
		levels = append(levels, float64(i)/float64(steps))
	}
	return levels
}

// Pulse fades the whole matrix in and out iterations times with color c
func Pulse(c color.RGBA, iterations, steps int, delay time.Duration) Sequence {
	levels := PulseLevels(steps)
	return Frames(iterations*len(levels), delay, func(m *matrix.Matrix, frame int) {
		m.Fill(Scale(c, levels[frame%len(levels)]))
	})
}

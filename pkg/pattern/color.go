package pattern

import (
	"image/color"
	"time"

	"github.com/fkcurrie/neomatrix-golang/pkg/matrix"
)

// Colors used by the built-in playlists
var (
	Black  = color.RGBA{0, 0, 0, 255}
	Red    = color.RGBA{255, 0, 0, 255}
	Green  = color.RGBA{0, 255, 0, 255}
	Blue   = color.RGBA{0, 0, 255, 255}
	Yellow = color.RGBA{255, 255, 0, 255}
	Cyan   = color.RGBA{0, 255, 255, 255}
	White  = color.RGBA{255, 255, 255, 255}
)

// Wheel maps a position on a 0-255 color wheel to RGB. The wheel runs
// red to green over 0-85, green to blue over 85-170 and blue back to red
// over 170-255. Positions outside 0-255 are black.
func Wheel(pos int) color.RGBA {
	switch {
	case pos < 0 || pos > 255:
		return Black
	case pos < 85:
		return rgb(255-pos*3, pos*3, 0)
	case pos < 170:
		pos -= 85
		return rgb(0, 255-pos*3, pos*3)
	default:
		pos -= 170
		return rgb(pos*3, 0, 255-pos*3)
	}
}

// Scale multiplies every channel by f, truncating. f is clamped to [0, 1].
func Scale(c color.RGBA, f float64) color.RGBA {
	if f <= 0 {
		return Black
	}
	if f > 1 {
		f = 1
	}
	return color.RGBA{
		R: uint8(float64(c.R) * f),
		G: uint8(float64(c.G) * f),
		B: uint8(float64(c.B) * f),
		A: 255,
	}
}

// RainbowCycleColor spreads the whole wheel evenly across n pixels and
// shifts it by frame
func RainbowCycleColor(i, n, frame int) color.RGBA {
	return Wheel((i*256/n + frame) & 255)
}

// RainbowColor gives neighbouring pixels neighbouring wheel positions,
// shifted by frame
func RainbowColor(i, frame int) color.RGBA {
	return Wheel((i + frame) & 255)
}

// RainbowCycle plays 255*cycles frames of a gradient that spans the wheel
// once across the whole matrix
func RainbowCycle(cycles int, delay time.Duration) Sequence {
	return Frames(255*cycles, delay, func(m *matrix.Matrix, frame int) {
		n := m.Len()
		for i := 0; i < n; i++ {
			m.SetIndex(i, RainbowCycleColor(i, n, frame))
		}
	})
}

// Rainbow plays 256*iterations frames of a gradient that repeats every 256
// pixels
func Rainbow(iterations int, delay time.Duration) Sequence {
	return Frames(256*iterations, delay, func(m *matrix.Matrix, frame int) {
		for i := 0; i < m.Len(); i++ {
			m.SetIndex(i, RainbowColor(i, frame))
		}
	})
}

func rgb(r, g, b int) color.RGBA {
	return color.RGBA{uint8(r), uint8(g), uint8(b), 255}
}

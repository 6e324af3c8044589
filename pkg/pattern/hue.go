package pattern

import (
	"math"
	"time"

	"github.com/fkcurrie/neomatrix-golang/pkg/matrix"
)

// HueSweep paints a diagonal gradient around the HSV color circle and turns
// it by step degrees each frame, cycles times round
func HueSweep(l matrix.Layout, cycles int, step float64, delay time.Duration) Sequence {
	if step <= 0 {
		step = 1
	}
	frames := cycles * int(math.Ceil(360/step))
	span := float64(l.Width + l.Height)

	return Frames(frames, delay, func(m *matrix.Matrix, frame int) {
		shift := float64(frame) * step
		for y := 0; y < l.Height; y++ {
			for x := 0; x < l.Width; x++ {
				h := math.Mod(float64(x+y)*360/span+shift, 360)
				m.SetPixelHSV(x, y, h, 1, 1)
			}
		}
	})
}

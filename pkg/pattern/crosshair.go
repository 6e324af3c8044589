package pattern

import (
	"image/color"
	"time"

	"github.com/fkcurrie/neomatrix-golang/pkg/matrix"
)

// Crosshair sweeps a horizontal and a vertical line together along the
// diagonal. Each iteration takes Width frames; on non square panels rows
// past the bottom edge are simply not drawn.
func Crosshair(l matrix.Layout, c color.RGBA, iterations int, delay time.Duration) Sequence {
	return Frames(iterations*l.Width, delay, func(m *matrix.Matrix, frame int) {
		pos := frame % l.Width
		m.Blank()
		for i := 0; i < l.Width; i++ {
			m.SetPixel(i, pos, c)
		}
		for i := 0; i < l.Height; i++ {
			m.SetPixel(pos, i, c)
		}
	})
}

// Cross draws a fixed yellow row and cyan column through the middle of the
// panel, addressed as if every row ran left to right. On a serpentine panel
// the column shows up as a zigzag, which makes the wiring direction easy to
// check by eye.
func Cross(l matrix.Layout, hold time.Duration) Sequence {
	raw := matrix.Layout{Width: l.Width, Height: l.Height, Progressive: true}
	row, col := l.Height/2-1, l.Width/2-1
	if row < 0 {
		row = 0
	}
	if col < 0 {
		col = 0
	}
	return Frames(1, hold, func(m *matrix.Matrix, _ int) {
		m.Blank()
		for x := 0; x < l.Width; x++ {
			m.SetIndex(raw.IndexOf(x, row), Yellow)
		}
		for y := 0; y < l.Height; y++ {
			m.SetIndex(raw.IndexOf(col, y), Cyan)
		}
	})
}

package pattern

import (
	"image"
	"time"

	"github.com/fkcurrie/neomatrix-golang/pkg/matrix"
)

// spiralWalk walks a square spiral out from the centre of l. The heading
// turns 90 degrees at the end of every leg and the leg length grows by one
// every two turns. visit is called for every step, on or off the grid, and
// stops the walk by returning false.
func spiralWalk(l matrix.Layout, visit func(p image.Point) bool) {
	p := l.Center()
	d := image.Pt(1, 0)
	leg, taken, turns := 1, 0, 0

	// Once the leg is longer than twice the larger side every cell has been
	// passed
	maxLeg := 2*max(l.Width, l.Height) + 2
	for leg <= maxLeg {
		if !visit(p) {
			return
		}
		p = p.Add(d)
		taken++
		if taken == leg {
			taken = 0
			d = image.Pt(-d.Y, d.X)
			turns++
			if turns%2 == 0 {
				leg++
			}
		}
	}
}

// SpiralPath returns every cell of l exactly once, in spiral order from
// the centre outwards. Steps that leave the grid are skipped.
func SpiralPath(l matrix.Layout) []image.Point {
	path := make([]image.Point, 0, l.Len())
	spiralWalk(l, func(p image.Point) bool {
		if l.Contains(p.X, p.Y) {
			path = append(path, p)
		}
		return len(path) < l.Len()
	})
	return path
}

// SpiralPathUntilExit returns the spiral up to the first step that leaves
// the grid. On grids with an even side this does not reach every cell.
func SpiralPathUntilExit(l matrix.Layout) []image.Point {
	var path []image.Point
	spiralWalk(l, func(p image.Point) bool {
		if !l.Contains(p.X, p.Y) {
			return false
		}
		path = append(path, p)
		return len(path) < l.Len()
	})
	return path
}

type spiral struct {
	path  []image.Point
	delay time.Duration
	pause time.Duration
	next  int
}

// Spiral lights the spiral path one cell per frame, colored by chain
// index, holds the completed spiral for pause, then turns the cells off in
// reverse order at twice the speed
func Spiral(l matrix.Layout, delay, pause time.Duration) Sequence {
	return &spiral{path: SpiralPath(l), delay: delay, pause: pause}
}

func (s *spiral) Next(m *matrix.Matrix) (time.Duration, bool) {
	n := len(s.path)
	if s.next >= 2*n {
		return 0, false
	}
	i := s.next
	s.next++

	if i < n {
		p := s.path[i]
		idx := m.Layout().IndexOf(p.X, p.Y)
		m.SetPoint(p, Wheel((idx*2)%256))
		if i == n-1 {
			return s.delay + s.pause, true
		}
		return s.delay, true
	}

	m.SetPoint(s.path[2*n-1-i], Black)
	return s.delay / 2, true
}

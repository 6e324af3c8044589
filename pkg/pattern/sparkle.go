package pattern

import (
	"image/color"
	"math/rand/v2"
	"time"

	"github.com/fkcurrie/neomatrix-golang/pkg/matrix"
)

// Dot is a single lit LED by chain index
type Dot struct {
	Index int
	Color color.RGBA
}

// SparkleFrame picks density random LEDs out of n, each with a random color.
// The same index may be picked twice.
func SparkleFrame(rng *rand.Rand, n, density int) []Dot {
	dots := make([]Dot, density)
	for i := range dots {
		dots[i] = Dot{
			Index: rng.IntN(n),
			Color: rgb(rng.IntN(256), rng.IntN(256), rng.IntN(256)),
		}
	}
	return dots
}

// Sparkle clears the matrix every frame and lights density random LEDs.
// A nil rng uses a time seeded source.
func Sparkle(rng *rand.Rand, iterations, density int, delay time.Duration) Sequence {
	if rng == nil {
		now := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(now, now>>32))
	}
	return Frames(iterations, delay, func(m *matrix.Matrix, _ int) {
		m.Blank()
		for _, d := range SparkleFrame(rng, m.Len(), density) {
			m.SetIndex(d.Index, d.Color)
		}
	})
}

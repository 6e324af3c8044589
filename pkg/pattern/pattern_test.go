package pattern

import (
	"image"
	"image/color"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fkcurrie/neomatrix-golang/pkg/matrix"
)

func newMatrix(t *testing.T, w, h int) (*matrix.Matrix, *matrix.MemoryStrip) {
	t.Helper()
	strip := matrix.NewMemoryStrip(w * h)
	m, err := matrix.New(matrix.Layout{Width: w, Height: h}, strip)
	require.NoError(t, err)
	return m, strip
}

// play renders every frame of seq and returns the holds
func play(t *testing.T, m *matrix.Matrix, seq Sequence) []time.Duration {
	t.Helper()
	var holds []time.Duration
	for i := 0; i < 1_000_000; i++ {
		hold, ok := seq.Next(m)
		if !ok {
			return holds
		}
		require.NoError(t, m.Show())
		holds = append(holds, hold)
	}
	t.Fatal("sequence did not end")
	return nil
}

func TestWheel(t *testing.T) {
	tests := []struct {
		pos  int
		want color.RGBA
	}{
		{0, Red},
		{85, Green},
		{170, Blue},
		{255, Red},
		{42, rgb(129, 126, 0)},
		{128, rgb(0, 126, 129)},
		{-1, Black},
		{256, Black},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Wheel(tt.pos), "Wheel(%d)", tt.pos)
	}
}

func TestScale(t *testing.T) {
	assert.Equal(t, rgb(127, 0, 63), Scale(rgb(255, 0, 127), 0.5))
	assert.Equal(t, Black, Scale(White, 0))
	assert.Equal(t, Black, Scale(White, -1))
	assert.Equal(t, White, Scale(White, 2))
}

func TestRainbowCycleColor(t *testing.T) {
	// Pixel 128 of 256 sits half way round the wheel
	assert.Equal(t, Wheel(128), RainbowCycleColor(128, 256, 0))
	assert.Equal(t, Wheel(0), RainbowCycleColor(128, 256, 128))
	assert.Equal(t, Wheel(5), RainbowColor(261, 0))
}

func TestRainbowCycleFrames(t *testing.T) {
	m, strip := newMatrix(t, 16, 16)
	holds := play(t, m, RainbowCycle(1, time.Millisecond))
	assert.Len(t, holds, 255)

	first := strip.Frames()[0]
	for i, c := range first {
		assert.Equal(t, Wheel(i), c)
	}
}

func TestColorWipe(t *testing.T) {
	m, strip := newMatrix(t, 16, 16)
	holds := play(t, m, ColorWipe(Green, 10*time.Millisecond))

	require.Len(t, holds, 256)
	frames := strip.Frames()
	require.Len(t, frames, 256)
	for n, frame := range frames {
		lit := 0
		for i, c := range frame {
			if c == Green {
				lit++
				assert.LessOrEqual(t, i, n)
			}
		}
		assert.Equal(t, n+1, lit, "frame %d", n)
	}
}

func TestWipes(t *testing.T) {
	m, strip := newMatrix(t, 4, 4)
	play(t, m, Wipes(0, Red, Black))
	assert.Equal(t, 32, strip.Renders())
	for _, c := range strip.Pixels() {
		assert.Equal(t, Black, c)
	}
}

func TestBouncerReflects(t *testing.T) {
	b := NewBouncer(matrix.Layout{Width: 16, Height: 16})
	assert.Equal(t, image.Pt(0, 0), b.Pos)

	for b.Pos.X != 15 {
		require.Equal(t, 1, b.Vel.X)
		b.Step()
	}
	assert.Equal(t, -1, b.Vel.X)
	b.Step()
	assert.Equal(t, 14, b.Pos.X)
	assert.Equal(t, -1, b.Vel.X)

	for i := 0; i < 1000; i++ {
		b.Step()
		require.True(t, b.layout.Contains(b.Pos.X, b.Pos.Y), "left the grid at %v", b.Pos)
	}
}

func TestBouncerThinAxis(t *testing.T) {
	b := NewBouncer(matrix.Layout{Width: 1, Height: 4})
	for i := 0; i < 10; i++ {
		b.Step()
		assert.Equal(t, 0, b.Pos.X)
	}
}

func TestBouncerTrail(t *testing.T) {
	b := NewBouncer(matrix.Layout{Width: 16, Height: 16})
	b.Pos = image.Pt(5, 5)

	trail := b.Trail(3)
	require.Len(t, trail, 3)
	assert.Equal(t, image.Pt(5, 5), trail[0].Pos)
	assert.Equal(t, image.Pt(4, 4), trail[1].Pos)
	assert.Equal(t, image.Pt(3, 3), trail[2].Pos)
	assert.InDelta(t, 1.0, trail[0].Intensity, 1e-9)
	assert.InDelta(t, 2.0/3.0, trail[1].Intensity, 1e-9)
	assert.InDelta(t, 1.0/3.0, trail[2].Intensity, 1e-9)

	// Behind the corner falls back to the head
	b.Pos = image.Pt(0, 0)
	trail = b.Trail(2)
	assert.Equal(t, image.Pt(0, 0), trail[1].Pos)
}

func TestBouncerTrailNegativeSize(t *testing.T) {
	l, err := matrix.NewLayout(4, 4)
	require.NoError(t, err)
	b := NewBouncer(l)
	assert.Empty(t, b.Trail(0))
	assert.Empty(t, b.Trail(-2))
}

func TestBounceFrames(t *testing.T) {
	m, strip := newMatrix(t, 16, 16)
	play(t, m, Bounce(m.Layout(), Red, 4, 1, 0))

	frames := strip.Frames()
	require.Len(t, frames, 4)
	l := m.Layout()
	for n, frame := range frames {
		assert.Equal(t, Red, frame[l.IndexOf(n, n)], "frame %d", n)
	}
}

func TestSpiralPathVisitsEveryCell(t *testing.T) {
	for _, l := range []matrix.Layout{
		{Width: 16, Height: 16},
		{Width: 1, Height: 1},
		{Width: 3, Height: 5},
		{Width: 32, Height: 8},
	} {
		path := SpiralPath(l)
		require.Len(t, path, l.Len(), "%dx%d", l.Width, l.Height)

		seen := make(map[image.Point]bool, len(path))
		for _, p := range path {
			require.True(t, l.Contains(p.X, p.Y))
			require.False(t, seen[p], "%v visited twice", p)
			seen[p] = true
		}
	}
}

func TestSpiralPathShape(t *testing.T) {
	path := SpiralPath(matrix.Layout{Width: 16, Height: 16})
	assert.Equal(t, []image.Point{{8, 8}, {9, 8}, {9, 9}, {8, 9}, {7, 9}}, path[:5])

	// Consecutive cells of the unclipped part are neighbours
	short := SpiralPathUntilExit(matrix.Layout{Width: 16, Height: 16})
	require.NotEmpty(t, short)
	assert.Less(t, len(short), 256)
	for i := 1; i < len(short); i++ {
		d := short[i].Sub(short[i-1])
		assert.Equal(t, 1, abs(d.X)+abs(d.Y))
	}
}

func TestSpiralSequence(t *testing.T) {
	m, strip := newMatrix(t, 4, 4)
	holds := play(t, m, Spiral(m.Layout(), 20*time.Millisecond, time.Second))

	require.Len(t, holds, 32)
	assert.Equal(t, 20*time.Millisecond+time.Second, holds[15])
	assert.Equal(t, 10*time.Millisecond, holds[16])

	full := strip.Frames()[15]
	for i, c := range full {
		assert.Equal(t, Wheel(i*2%256), c)
	}
	for _, c := range strip.LastFrame() {
		assert.Equal(t, Black, c)
	}
}

func TestSparkleFrame(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	dots := SparkleFrame(rng, 256, 10)
	require.Len(t, dots, 10)
	for _, d := range dots {
		assert.GreaterOrEqual(t, d.Index, 0)
		assert.Less(t, d.Index, 256)
		assert.Equal(t, uint8(255), d.Color.A)
	}
}

func TestSparkleClearsEachFrame(t *testing.T) {
	m, strip := newMatrix(t, 16, 16)
	play(t, m, Sparkle(rand.New(rand.NewPCG(3, 4)), 5, 10, 0))

	require.Len(t, strip.Frames(), 5)
	for _, frame := range strip.Frames() {
		lit := 0
		for _, c := range frame {
			if c != Black {
				lit++
			}
		}
		assert.LessOrEqual(t, lit, 10)
	}
}

func TestPulseLevels(t *testing.T) {
	levels := PulseLevels(4)
	assert.Equal(t, []float64{0, 0.25, 0.5, 0.75, 1, 0.75, 0.5, 0.25}, levels)
	assert.Len(t, PulseLevels(100), 200)
	assert.Empty(t, PulseLevels(0))
	assert.Empty(t, PulseLevels(-3))
}

func TestPulseNoSteps(t *testing.T) {
	m, strip := newMatrix(t, 2, 2)
	assert.Empty(t, play(t, m, Pulse(Blue, 3, -1, 0)))
	assert.Zero(t, strip.Renders())
}

func TestPulseFrames(t *testing.T) {
	m, strip := newMatrix(t, 2, 2)
	play(t, m, Pulse(Blue, 2, 4, 0))

	frames := strip.Frames()
	require.Len(t, frames, 16)
	assert.Equal(t, Black, frames[0][0])
	assert.Equal(t, Blue, frames[4][3])
	assert.Equal(t, rgb(0, 0, 127), frames[10][1])
}

func TestCrosshair(t *testing.T) {
	m, strip := newMatrix(t, 4, 4)
	play(t, m, Crosshair(m.Layout(), Yellow, 1, 0))

	frames := strip.Frames()
	require.Len(t, frames, 4)
	l := m.Layout()
	lit := 0
	for _, c := range frames[1] {
		if c == Yellow {
			lit++
		}
	}
	assert.Equal(t, 7, lit)
	assert.Equal(t, Yellow, frames[1][l.IndexOf(1, 3)])
	assert.Equal(t, Yellow, frames[1][l.IndexOf(3, 1)])
	assert.Equal(t, Black, frames[1][l.IndexOf(0, 0)])
}

func TestCross(t *testing.T) {
	m, strip := newMatrix(t, 16, 16)
	play(t, m, Cross(m.Layout(), 0))

	frame := strip.LastFrame()
	for i := 0; i < 16; i++ {
		assert.Equal(t, Cyan, frame[7+16*i], "column index %d", i)
		if i != 7 {
			assert.Equal(t, Yellow, frame[i+16*7], "row index %d", i)
		}
	}
}

func TestScrollText(t *testing.T) {
	l := matrix.Layout{Width: 16, Height: 16}
	m, strip := newMatrix(t, 16, 16)
	holds := play(t, m, ScrollText(l, "hi", White, 0))
	assert.Len(t, holds, 16+TextWidth("HI")+1)

	// First frame starts off screen, last frame has scrolled past
	for _, c := range strip.Frames()[0] {
		assert.Equal(t, Black, c)
	}
	for _, c := range strip.LastFrame() {
		assert.Equal(t, Black, c)
	}

	// 'H' left column is fully lit 16 frames in
	frame := strip.Frames()[16]
	for row := 0; row < fontHeight; row++ {
		assert.Equal(t, White, frame[l.IndexOf(0, 4+row)])
	}
}

func TestChain(t *testing.T) {
	m, strip := newMatrix(t, 2, 2)
	holds := play(t, m, Chain(Solid(Red, time.Second), Chain(), Blackout()))

	assert.Equal(t, []time.Duration{time.Second, 0}, holds)
	assert.Equal(t, Red, strip.Frames()[0][0])
	assert.Equal(t, Black, strip.Frames()[1][0])
}

func TestHueSweep(t *testing.T) {
	m, strip := newMatrix(t, 3, 3)
	l := m.Layout()

	holds := play(t, m, HueSweep(l, 2, 60, 5*time.Millisecond))
	require.Len(t, holds, 12)
	assert.Equal(t, 5*time.Millisecond, holds[0])

	frames := strip.Frames()
	at := func(frame, x, y int) color.RGBA {
		return frames[frame][l.IndexOf(x, y)]
	}
	assert.Equal(t, rgb(255, 0, 0), at(0, 0, 0))
	assert.Equal(t, rgb(0, 255, 0), at(0, 2, 0))
	assert.Equal(t, rgb(0, 255, 0), at(0, 1, 1))
	assert.Equal(t, rgb(0, 0, 255), at(0, 2, 2))
	assert.Equal(t, rgb(255, 255, 0), at(1, 0, 0), "turned by 60 degrees")
	assert.Equal(t, at(0, 1, 2), at(6, 1, 2), "back round after a full cycle")
}

func TestHueSweepBadStep(t *testing.T) {
	m, _ := newMatrix(t, 2, 2)
	assert.Len(t, play(t, m, HueSweep(m.Layout(), 1, 0, 0)), 360)
	assert.Empty(t, play(t, m, HueSweep(m.Layout(), -1, 30, 0)))
}

func TestRegistry(t *testing.T) {
	names := Names()
	assert.Contains(t, names, "rainbow")
	assert.Contains(t, names, "spiral")
	assert.Contains(t, names, "hue")
	assert.Contains(t, names, "all")

	_, err := Lookup("nope")
	assert.ErrorIs(t, err, ErrUnknownPattern)

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			build, err := Lookup(name)
			require.NoError(t, err)

			m, _ := newMatrix(t, 16, 16)
			seq := build(Options{
				Layout: m.Layout(),
				Rand:   rand.New(rand.NewPCG(5, 6)),
			})
			holds := play(t, m, seq)
			assert.NotEmpty(t, holds)
		})
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

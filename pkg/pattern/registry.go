package pattern

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
	"time"

	"github.com/fkcurrie/neomatrix-golang/pkg/matrix"
)

// ErrUnknownPattern is returned by Lookup for names that are not registered
var ErrUnknownPattern = errors.New("unknown pattern")

// Options parameterise the named patterns
type Options struct {
	Layout matrix.Layout
	// Delay replaces the per-frame delay of the pattern when non-zero
	Delay time.Duration
	// Rand drives sparkle; nil means time seeded
	Rand *rand.Rand
	// Text is scrolled by the text pattern
	Text string
}

func (o Options) delay(def time.Duration) time.Duration {
	if o.Delay > 0 {
		return o.Delay
	}
	return def
}

// Builder creates a fresh Sequence for one pass of a named pattern
type Builder func(o Options) Sequence

var registry = map[string]Builder{
	"rainbow": func(o Options) Sequence {
		return RainbowCycle(5, o.delay(10*time.Millisecond))
	},
	"hue": func(o Options) Sequence {
		return HueSweep(o.Layout, 3, 3, o.delay(20*time.Millisecond))
	},
	"bounce": func(o Options) Sequence {
		d := o.delay(30 * time.Millisecond)
		return Chain(
			Bounce(o.Layout, Red, 100, 3, d),
			Bounce(o.Layout, Green, 100, 3, d),
			Bounce(o.Layout, Blue, 100, 3, d),
		)
	},
	"sparkle": func(o Options) Sequence {
		return Sparkle(o.Rand, 50, 10, o.delay(50*time.Millisecond))
	},
	"wipe": func(o Options) Sequence {
		return Wipes(o.delay(10*time.Millisecond), Red, Green, Blue, Black)
	},
	"pulse": func(o Options) Sequence {
		d := o.delay(10 * time.Millisecond)
		return Chain(
			Pulse(Red, 5, 100, d),
			Pulse(Green, 5, 100, d),
			Pulse(Blue, 5, 100, d),
			Pulse(Yellow, 5, 100, d),
		)
	},
	"spiral": func(o Options) Sequence {
		d := o.delay(50 * time.Millisecond)
		return Chain(
			Spiral(o.Layout, d, time.Second),
			Spiral(o.Layout, d, time.Second),
		)
	},
	"crosshair": func(o Options) Sequence {
		return Crosshair(o.Layout, Yellow, 10, o.delay(200*time.Millisecond))
	},
	"text": func(o Options) Sequence {
		return ScrollText(o.Layout, o.text(), White, o.delay(100*time.Millisecond))
	},
	"selftest": func(o Options) Sequence {
		return Chain(
			Solid(Red, time.Second),
			Solid(Green, time.Second),
			Solid(Blue, time.Second),
			Solid(Black, time.Second),
			Cross(o.Layout, 2*time.Second),
			RainbowCycle(1, o.delay(10*time.Millisecond)),
		)
	},
	"basic": func(o Options) Sequence {
		return Chain(
			Wipes(o.delay(50*time.Millisecond), Red, Green, Blue),
			Rainbow(1, o.delay(20*time.Millisecond)),
		)
	},
	"all": func(o Options) Sequence {
		return Chain(
			Rainbow(1, o.delay(20*time.Millisecond)),
			Blackout(),
			Wipes(o.delay(50*time.Millisecond), Red, Green, Blue, Black),
			Crosshair(o.Layout, Yellow, 10, o.delay(200*time.Millisecond)),
			Blackout(),
			Spiral(o.Layout, o.delay(50*time.Millisecond), 500*time.Millisecond),
			Blackout(),
			Bounce(o.Layout, Blue, 30, 1, o.delay(50*time.Millisecond)),
			Blackout(),
			ScrollText(o.Layout, o.text(), White, o.delay(100*time.Millisecond)),
			Blackout(),
		)
	},
}

func (o Options) text() string {
	if o.Text == "" {
		return "HI!"
	}
	return o.Text
}

// Lookup returns the builder registered under name
func Lookup(name string) (Builder, error) {
	b, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPattern, name)
	}
	return b, nil
}

// Names lists the registered patterns in alphabetical order
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

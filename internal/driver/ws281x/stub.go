//go:build !ws281x

package ws281x

import "image/color"

// Strip is unavailable in this build
type Strip struct{}

// Open always fails with ErrUnsupported
func Open(cfg Config) (*Strip, error) {
	return nil, ErrUnsupported
}

// SetPixel does nothing
func (s *Strip) SetPixel(index int, c color.RGBA) {}

// Render always fails with ErrUnsupported
func (s *Strip) Render() error { return ErrUnsupported }

// PixelCount is zero since no LEDs can be driven
func (s *Strip) PixelCount() int { return 0 }

// Close does nothing
func (s *Strip) Close() error { return nil }

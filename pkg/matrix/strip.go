package matrix

import (
	"image/color"
	"sync"
)

// Strip is the narrow contract an LED driver has to satisfy.
// Implementations ignore indices outside [0, PixelCount()).
type Strip interface {
	// SetPixel stores c for the LED at index without pushing it to hardware
	SetPixel(index int, c color.RGBA)
	// Render pushes the buffer to the LEDs
	Render() error
	// PixelCount returns the number of LEDs on the strip
	PixelCount() int
}

// Off is the color of an unlit LED
var Off = color.RGBA{0, 0, 0, 255}

// MemoryStrip is a Strip backed by a plain buffer. Every Render call keeps a
// snapshot so tests can replay what the hardware would have shown.
type MemoryStrip struct {
	mu      sync.RWMutex
	pixels  []color.RGBA
	frames  [][]color.RGBA
	keep    bool
	renders int
}

// NewMemoryStrip creates a dark strip of n LEDs that records every rendered frame
func NewMemoryStrip(n int) *MemoryStrip {
	s := &MemoryStrip{
		pixels: make([]color.RGBA, n),
		keep:   true,
	}
	for i := range s.pixels {
		s.pixels[i] = Off
	}
	return s
}

// NewDiscardStrip creates a strip that counts renders without keeping snapshots
func NewDiscardStrip(n int) *MemoryStrip {
	s := NewMemoryStrip(n)
	s.keep = false
	return s
}

// SetPixel implements Strip
func (s *MemoryStrip) SetPixel(index int, c color.RGBA) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.pixels) {
		return
	}
	s.pixels[index] = c
}

// Render implements Strip
func (s *MemoryStrip) Render() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.renders++
	if s.keep {
		s.frames = append(s.frames, s.snapshot())
	}
	return nil
}

// PixelCount implements Strip
func (s *MemoryStrip) PixelCount() int {
	return len(s.pixels)
}

// Pixel returns the buffered color at index
func (s *MemoryStrip) Pixel(index int) color.RGBA {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if index < 0 || index >= len(s.pixels) {
		return Off
	}
	return s.pixels[index]
}

// Pixels returns a copy of the current buffer
func (s *MemoryStrip) Pixels() []color.RGBA {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot()
}

// Renders returns how many times Render was called
func (s *MemoryStrip) Renders() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.renders
}

// Frames returns the buffers captured by each Render call
func (s *MemoryStrip) Frames() [][]color.RGBA {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([][]color.RGBA, len(s.frames))
	copy(out, s.frames)
	return out
}

// LastFrame returns the most recently rendered buffer, or nil
func (s *MemoryStrip) LastFrame() []color.RGBA {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.frames) == 0 {
		return nil
	}
	return s.frames[len(s.frames)-1]
}

// snapshot assumes the lock is held
func (s *MemoryStrip) snapshot() []color.RGBA {
	out := make([]color.RGBA, len(s.pixels))
	copy(out, s.pixels)
	return out
}

package matrix

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/lucasb-eyer/go-colorful"
)

// Matrix addresses a Strip through a 2D Layout
type Matrix struct {
	layout Layout
	strip  Strip
	mu     sync.Mutex
}

// New wraps strip with layout. The strip must hold at least layout.Len() LEDs.
func New(layout Layout, strip Strip) (*Matrix, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	if strip == nil {
		return nil, fmt.Errorf("matrix: nil strip")
	}
	if n := strip.PixelCount(); n < layout.Len() {
		return nil, fmt.Errorf("matrix: strip has %d pixels, layout %dx%d needs %d",
			n, layout.Width, layout.Height, layout.Len())
	}

	return &Matrix{
		layout: layout,
		strip:  strip,
	}, nil
}

// Layout returns the addressing layout
func (m *Matrix) Layout() Layout {
	return m.layout
}

// Strip returns the underlying driver
func (m *Matrix) Strip() Strip {
	return m.strip
}

// GetDimensions returns the dimensions of the LED matrix
func (m *Matrix) GetDimensions() (width, height int) {
	return m.layout.Width, m.layout.Height
}

// Len returns the number of addressable pixels
func (m *Matrix) Len() int {
	return m.layout.Len()
}

// SetPixel sets the pixel at (x, y). Coordinates off the grid are ignored.
func (m *Matrix) SetPixel(x, y int, c color.Color) {
	if !m.layout.Contains(x, y) {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.strip.SetPixel(m.layout.IndexOf(x, y), ToRGBA(c))
}

// SetPoint is SetPixel taking an image.Point
func (m *Matrix) SetPoint(p image.Point, c color.Color) {
	m.SetPixel(p.X, p.Y, c)
}

// SetIndex sets a pixel by its position on the chain. Indices outside the
// layout are ignored.
func (m *Matrix) SetIndex(index int, c color.Color) {
	if index < 0 || index >= m.layout.Len() {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.strip.SetPixel(index, ToRGBA(c))
}

// SetPixelColor sets a pixel at the given coordinates to the given color
func (m *Matrix) SetPixelColor(x, y int, r, g, b uint8) {
	m.SetPixel(x, y, color.RGBA{r, g, b, 255})
}

// SetPixelHSV sets a pixel using hue in degrees and saturation/value in [0, 1]
func (m *Matrix) SetPixelHSV(x, y int, h, s, v float64) {
	m.SetPixel(x, y, HSV(h, s, v))
}

// Fill sets every pixel to c without rendering
func (m *Matrix) Fill(c color.Color) {
	rgba := ToRGBA(c)

	m.mu.Lock()
	defer m.mu.Unlock()

	for i := 0; i < m.layout.Len(); i++ {
		m.strip.SetPixel(i, rgba)
	}
}

// Blank sets every pixel to black without rendering
func (m *Matrix) Blank() {
	m.Fill(Off)
}

// Show pushes the buffer to the LEDs
func (m *Matrix) Show() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.strip.Render(); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}

// Clear turns every LED off and renders
func (m *Matrix) Clear() error {
	m.Blank()
	return m.Show()
}

// ToRGBA converts any color to an opaque 8-bit RGBA value
func ToRGBA(c color.Color) color.RGBA {
	if rgba, ok := c.(color.RGBA); ok {
		rgba.A = 255
		return rgba
	}
	r, g, b, _ := c.RGBA()
	return color.RGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), 255}
}

// HSV converts hue in degrees and saturation/value in [0, 1] to RGBA
func HSV(h, s, v float64) color.RGBA {
	r, g, b := colorful.Hsv(h, s, v).Clamped().RGB255()
	return color.RGBA{r, g, b, 255}
}

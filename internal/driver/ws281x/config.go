// Package ws281x drives a NeoPixel chain through the rpi_ws281x C library
// (PWM, PCM or SPI depending on the pin). The real driver needs cgo and the
// library headers, so it is only built with the ws281x build tag.
package ws281x

import (
	"errors"
	"image/color"
)

// ErrUnsupported is returned by Open when the binary was built without the
// ws281x tag
var ErrUnsupported = errors.New("ws281x: driver not compiled in (build with -tags ws281x)")

// Config holds the rpi_ws281x channel settings
type Config struct {
	Pin        int
	Count      int
	Brightness int // 0-255
	Frequency  int // Hz
	DMA        int
	Invert     bool
}

// encode packs c the way rpi_ws281x expects it in the LED buffer. The
// library reorders the bytes for the strip type itself.
func encode(c color.RGBA) uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// Package spi drives a NeoPixel chain from the SPI MOSI pin (GPIO10) by
// NRZ-encoding the frame with periph.io. It does not need root, only access
// to /dev/spidev*.
package spi

import (
	"fmt"
	"image/color"
	"sync"

	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/nrzled"
	"periph.io/x/host/v3"
)

// Config holds the SPI strip settings
type Config struct {
	Port       string // empty picks the first registered port
	Count      int
	Brightness float64 // 0-1
	Frequency  int     // LED data rate in Hz
}

// device is the part of nrzled.Dev the strip writes to
type device interface {
	Write(p []byte) (int, error)
	Halt() error
}

// Strip is a matrix.Strip writing to an nrzled device
type Strip struct {
	mu         sync.Mutex
	dev        device
	port       spi.PortCloser
	buf        []byte
	out        []byte
	brightness float64
}

// Open initialises the host drivers and connects to the SPI port
func Open(cfg Config) (*Strip, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periph host init: %w", err)
	}

	p, err := spireg.Open(cfg.Port)
	if err != nil {
		return nil, fmt.Errorf("open spi port %q: %w", cfg.Port, err)
	}

	opts := nrzled.DefaultOpts
	opts.NumPixels = cfg.Count
	opts.Channels = 3
	if cfg.Frequency > 0 {
		opts.Freq = physic.Frequency(cfg.Frequency) * physic.Hertz
	}

	dev, err := nrzled.NewSPI(p, &opts)
	if err != nil {
		p.Close()
		return nil, fmt.Errorf("nrzled on %s: %w", p, err)
	}

	s := newStrip(dev, cfg.Count, cfg.Brightness)
	s.port = p
	return s, nil
}

func newStrip(dev device, count int, brightness float64) *Strip {
	return &Strip{
		dev:        dev,
		buf:        make([]byte, 3*count),
		out:        make([]byte, 3*count),
		brightness: brightness,
	}
}

// SetPixel implements matrix.Strip
func (s *Strip) SetPixel(index int, c color.RGBA) {
	if index < 0 || 3*index >= len(s.buf) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.buf[3*index] = c.R
	s.buf[3*index+1] = c.G
	s.buf[3*index+2] = c.B
}

// Render scales the buffer by the brightness and writes it out. nrzled
// takes RGB and handles the GRB wire order.
func (s *Strip) Render() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, v := range s.buf {
		s.out[i] = scale(v, s.brightness)
	}
	if _, err := s.dev.Write(s.out); err != nil {
		return fmt.Errorf("spi write: %w", err)
	}
	return nil
}

// PixelCount implements matrix.Strip
func (s *Strip) PixelCount() int {
	return len(s.buf) / 3
}

// Close turns the LEDs off and releases the port
func (s *Strip) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.dev.Halt()
	if s.port != nil {
		if cerr := s.port.Close(); err == nil {
			err = cerr
		}
		s.port = nil
	}
	return err
}

func scale(v byte, brightness float64) byte {
	if brightness >= 1 {
		return v
	}
	if brightness <= 0 {
		return 0
	}
	return byte(float64(v)*brightness + 0.5)
}

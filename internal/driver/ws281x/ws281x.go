//go:build ws281x

package ws281x

import (
	"fmt"
	"image/color"
	"sync"

	ws2811 "github.com/rpi-ws281x/rpi-ws281x-go"

	"github.com/fkcurrie/neomatrix-golang/internal/pincheck"
)

// Strip is a matrix.Strip on top of an initialised rpi_ws281x device
type Strip struct {
	mu      sync.Mutex
	dev     *ws2811.WS2811
	channel int
	count   int
}

// Open initialises the library for cfg. It needs root for /dev/mem unless
// the pin is driven through SPI.
func Open(cfg Config) (*Strip, error) {
	ch := pincheck.Channel(cfg.Pin)

	opt := ws2811.DefaultOptions
	if cfg.Frequency > 0 {
		opt.Frequency = cfg.Frequency
	}
	if cfg.DMA > 0 {
		opt.DmaNum = cfg.DMA
	}

	channel := ws2811.DefaultOptions.Channels[0]
	channel.GpioPin = cfg.Pin
	channel.LedCount = cfg.Count
	channel.Brightness = cfg.Brightness
	channel.StripeType = ws2811.WS2812Strip
	channel.Invert = cfg.Invert

	// Unused channels keep GpioPin 0 which the library skips
	opt.Channels = make([]ws2811.ChannelOption, ch+1)
	opt.Channels[ch] = channel

	dev, err := ws2811.MakeWS2811(&opt)
	if err != nil {
		return nil, fmt.Errorf("failed to create WS2811: %w", err)
	}
	if err := dev.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize WS2811 on GPIO%d: %w", cfg.Pin, err)
	}

	return &Strip{dev: dev, channel: ch, count: cfg.Count}, nil
}

// SetPixel implements matrix.Strip
func (s *Strip) SetPixel(index int, c color.RGBA) {
	if index < 0 || index >= s.count {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.dev.Leds(s.channel)[index] = encode(c)
}

// Render implements matrix.Strip
func (s *Strip) Render() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dev.Render()
}

// PixelCount implements matrix.Strip
func (s *Strip) PixelCount() int {
	return s.count
}

// Close releases the DMA channel and PWM hardware
func (s *Strip) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dev != nil {
		s.dev.Fini()
		s.dev = nil
	}
	return nil
}

package types

import "time"

// MatrixConfig represents the geometry of the LED matrix
type MatrixConfig struct {
	Width       int  `json:"width" yaml:"width"`
	Height      int  `json:"height" yaml:"height"`
	Progressive bool `json:"progressive" yaml:"progressive"` // rows all run left to right
}

// DriverConfig represents the LED strip driver settings
type DriverConfig struct {
	Name       string  `json:"name" yaml:"name"`             // ws281x, spi, preview or memory
	Pin        string  `json:"pin" yaml:"pin"`               // 18, GPIO18 or D18
	Brightness float64 `json:"brightness" yaml:"brightness"` // 0.0-1.0, or 2-255 on the 8-bit scale
	Frequency  int     `json:"frequency" yaml:"frequency"`   // Hz
	DMA        int     `json:"dma" yaml:"dma"`
	Invert     bool    `json:"invert" yaml:"invert"`
	SPIPort    string  `json:"spi_port" yaml:"spi_port"` // periph port name, empty for the first one
	GPIOChip   string  `json:"gpio_chip" yaml:"gpio_chip"`
}

// BrightnessFraction returns the brightness on a 0-1 scale
func (d DriverConfig) BrightnessFraction() float64 {
	b := d.Brightness
	if b > 1 {
		b /= 255
	}
	if b < 0 {
		return 0
	}
	if b > 1 {
		return 1
	}
	return b
}

// BrightnessLevel returns the brightness on the 8-bit scale used by rpi_ws281x
func (d DriverConfig) BrightnessLevel() int {
	return int(d.BrightnessFraction()*255 + 0.5)
}

// AnimationConfig represents which pattern to play and how
type AnimationConfig struct {
	Pattern string `json:"pattern" yaml:"pattern"`
	DelayMS int    `json:"delay_ms" yaml:"delay_ms"` // 0 keeps each pattern's own delay
	Loop    bool   `json:"loop" yaml:"loop"`
	Text    string `json:"text" yaml:"text"`
}

// Delay returns the frame delay override
func (a AnimationConfig) Delay() time.Duration {
	return time.Duration(a.DelayMS) * time.Millisecond
}

// LogConfig represents the logger settings
type LogConfig struct {
	Level  string `json:"level" yaml:"level"`   // debug, info, warn, error
	Format string `json:"format" yaml:"format"` // text or json
	Output string `json:"output" yaml:"output"` // stderr, stdout or a file path
}

// PreviewConfig represents the websocket preview server
type PreviewConfig struct {
	Addr string `json:"addr" yaml:"addr"`
}

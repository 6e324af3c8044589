package pincheck

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidPin is returned for pin names that do not parse to a BCM GPIO number
var ErrInvalidPin = errors.New("invalid GPIO pin")

// MaxPin is the highest BCM GPIO number on the Raspberry Pi SoCs
const MaxPin = 53

// DefaultPins are the GPIOs most often wired to a NeoPixel data line, in
// the order the pin test tries them
var DefaultPins = []int{18, 12, 21, 10}

// BoardDefaultPins are DefaultPins in board notation, in the order the
// board pin check tries them
var BoardDefaultPins = []string{"D18", "D10", "D12", "D21"}

// Parse accepts 18, GPIO18, BCM18 or the board style D18 and returns the
// BCM GPIO number
func Parse(name string) (int, error) {
	s := strings.ToUpper(strings.TrimSpace(name))
	for _, prefix := range []string{"GPIO", "BCM", "D"} {
		if strings.HasPrefix(s, prefix) {
			s = s[len(prefix):]
			break
		}
	}

	pin, err := strconv.Atoi(s)
	if err != nil || pin < 0 || pin > MaxPin {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPin, name)
	}
	return pin, nil
}

// BoardName returns the board notation for pin, e.g. D18
func BoardName(pin int) string {
	return "D" + strconv.Itoa(pin)
}

// Method is the peripheral rpi_ws281x uses to clock data out of a pin
type Method string

const (
	MethodPWM  Method = "pwm"
	MethodPCM  Method = "pcm"
	MethodSPI  Method = "spi"
	MethodNone Method = ""
)

// MethodOf returns how a WS281x strip can be driven from pin
func MethodOf(pin int) Method {
	switch pin {
	case 12, 18, 40, 52, 13, 19, 41, 45, 53:
		return MethodPWM
	case 21, 31:
		return MethodPCM
	case 10, 38:
		return MethodSPI
	default:
		return MethodNone
	}
}

// Channel returns the PWM channel a pin is routed to. Pins on PWM1 use
// channel 1; everything else, including non-PWM pins, uses channel 0.
func Channel(pin int) int {
	switch pin {
	case 13, 19, 41, 45, 53:
		return 1
	default:
		return 0
	}
}

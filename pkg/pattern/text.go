package pattern

import (
	"image/color"
	"strings"
	"time"

	"github.com/fkcurrie/neomatrix-golang/pkg/matrix"
)

const (
	fontWidth   = 5
	fontHeight  = 7
	charSpacing = 1
	charAdvance = fontWidth + charSpacing
)

// font5x7 holds one byte per column, least significant bit at the top
var font5x7 = map[rune][fontWidth]byte{
	'A': {0x7E, 0x09, 0x09, 0x09, 0x7E},
	'B': {0x7F, 0x49, 0x49, 0x49, 0x36},
	'C': {0x3E, 0x41, 0x41, 0x41, 0x22},
	'D': {0x7F, 0x41, 0x41, 0x22, 0x1C},
	'E': {0x7F, 0x49, 0x49, 0x49, 0x41},
	'F': {0x7F, 0x09, 0x09, 0x09, 0x01},
	'G': {0x3E, 0x41, 0x49, 0x49, 0x3A},
	'H': {0x7F, 0x08, 0x08, 0x08, 0x7F},
	'I': {0x00, 0x41, 0x7F, 0x41, 0x00},
	'J': {0x20, 0x40, 0x41, 0x3F, 0x01},
	'K': {0x7F, 0x08, 0x14, 0x22, 0x41},
	'L': {0x7F, 0x40, 0x40, 0x40, 0x40},
	'M': {0x7F, 0x02, 0x0C, 0x02, 0x7F},
	'N': {0x7F, 0x04, 0x08, 0x10, 0x7F},
	'O': {0x3E, 0x41, 0x41, 0x41, 0x3E},
	'P': {0x7F, 0x09, 0x09, 0x09, 0x06},
	'Q': {0x3E, 0x41, 0x51, 0x21, 0x5E},
	'R': {0x7F, 0x09, 0x19, 0x29, 0x46},
	'S': {0x26, 0x49, 0x49, 0x49, 0x32},
	'T': {0x01, 0x01, 0x7F, 0x01, 0x01},
	'U': {0x3F, 0x40, 0x40, 0x40, 0x3F},
	'V': {0x1F, 0x20, 0x40, 0x20, 0x1F},
	'W': {0x3F, 0x40, 0x30, 0x40, 0x3F},
	'X': {0x63, 0x14, 0x08, 0x14, 0x63},
	'Y': {0x07, 0x08, 0x70, 0x08, 0x07},
	'Z': {0x61, 0x51, 0x49, 0x45, 0x43},
	'0': {0x3E, 0x51, 0x49, 0x45, 0x3E},
	'1': {0x00, 0x42, 0x7F, 0x40, 0x00},
	'2': {0x42, 0x61, 0x51, 0x49, 0x46},
	'3': {0x21, 0x41, 0x45, 0x4B, 0x31},
	'4': {0x18, 0x14, 0x12, 0x7F, 0x10},
	'5': {0x27, 0x45, 0x45, 0x45, 0x39},
	'6': {0x3C, 0x4A, 0x49, 0x49, 0x30},
	'7': {0x01, 0x71, 0x09, 0x05, 0x03},
	'8': {0x36, 0x49, 0x49, 0x49, 0x36},
	'9': {0x06, 0x49, 0x49, 0x29, 0x1E},
	' ': {0x00, 0x00, 0x00, 0x00, 0x00},
	'!': {0x00, 0x00, 0x5F, 0x00, 0x00},
	'.': {0x00, 0x60, 0x60, 0x00, 0x00},
	',': {0x00, 0x50, 0x30, 0x00, 0x00},
	':': {0x00, 0x36, 0x36, 0x00, 0x00},
	'-': {0x08, 0x08, 0x08, 0x08, 0x08},
	'+': {0x08, 0x08, 0x3E, 0x08, 0x08},
}

// TextWidth returns the width in pixels of text drawn with DrawText
func TextWidth(text string) int {
	return len([]rune(text)) * charAdvance
}

// DrawText draws text with its top left corner at (x, y). Lower case is
// drawn as upper case and unknown characters as blanks. Pixels off the
// grid are dropped.
func DrawText(m *matrix.Matrix, text string, x, y int, c color.RGBA) {
	for _, r := range strings.ToUpper(text) {
		glyph := font5x7[r]
		for col, bits := range glyph {
			for row := 0; row < fontHeight; row++ {
				if bits&(1<<row) != 0 {
					m.SetPixel(x+col, y+row, c)
				}
			}
		}
		x += charAdvance
	}
}

// ScrollText moves text from just past the right edge until it has left
// on the left, one column per frame, vertically centred
func ScrollText(l matrix.Layout, text string, c color.RGBA, delay time.Duration) Sequence {
	width := TextWidth(text)
	y := (l.Height - fontHeight) / 2
	return Frames(l.Width+width+1, delay, func(m *matrix.Matrix, frame int) {
		m.Blank()
		DrawText(m, text, l.Width-frame, y, c)
	})
}

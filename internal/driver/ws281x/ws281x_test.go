package ws281x

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncode(t *testing.T) {
	assert.Equal(t, uint32(0xff0000), encode(color.RGBA{255, 0, 0, 255}))
	assert.Equal(t, uint32(0x00ff00), encode(color.RGBA{0, 255, 0, 255}))
	assert.Equal(t, uint32(0x123456), encode(color.RGBA{0x12, 0x34, 0x56, 0}))
	assert.Equal(t, uint32(0), encode(color.RGBA{}))
}

//go:build !ws281x

package driver

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fkcurrie/neomatrix-golang/internal/types"
)

func TestOpenWS281xNotCompiled(t *testing.T) {
	_, err := Open(types.DriverConfig{Name: WS281x, Pin: "D18", Brightness: 0.2}, layout(t), "", quiet)
	assert.ErrorIs(t, err, ErrUnsupported)
}

package main

import (
	"bytes"
	"context"
	"errors"
	"image/color"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fkcurrie/neomatrix-golang/internal/driver"
	"github.com/fkcurrie/neomatrix-golang/pkg/matrix"
)

type memDevice struct {
	*matrix.MemoryStrip
	closed bool
}

func (d *memDevice) Close() error {
	d.closed = true
	return nil
}

func TestSweepContinuesAfterFailure(t *testing.T) {
	layout, err := matrix.NewLayout(4, 4)
	require.NoError(t, err)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	devices := map[string]*memDevice{}
	open := func(pin string) (driver.Device, error) {
		if pin == "12" {
			return nil, errors.New("pin busy")
		}
		d := &memDevice{MemoryStrip: matrix.NewMemoryStrip(layout.Len())}
		devices[pin] = d
		return d, nil
	}

	failed := sweep(context.Background(), log, open, nil, layout, []string{"18", "12", "21"}, 0)
	assert.Equal(t, []string{"12"}, failed)
	require.Len(t, devices, 2)

	for pin, d := range devices {
		assert.True(t, d.closed, "pin %s closed", pin)
		frames := d.Frames()
		require.Len(t, frames, 4, "pin %s", pin)
		assert.Equal(t, color.RGBA{255, 0, 0, 255}, frames[0][0])
		assert.Equal(t, color.RGBA{0, 255, 0, 255}, frames[1][5])
		assert.Equal(t, color.RGBA{0, 0, 255, 255}, frames[2][15])
		assert.Equal(t, matrix.Off, frames[3][0])
	}
}

func TestSweepStopsWhenCancelled(t *testing.T) {
	layout, err := matrix.NewLayout(2, 2)
	require.NoError(t, err)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	opened := 0
	open := func(pin string) (driver.Device, error) {
		opened++
		return &memDevice{MemoryStrip: matrix.NewMemoryStrip(layout.Len())}, nil
	}

	assert.Empty(t, sweep(ctx, log, open, nil, layout, []string{"18", "12"}, 0))
	assert.Zero(t, opened)
}

func TestSweepReportsBusyLine(t *testing.T) {
	layout, err := matrix.NewLayout(2, 2)
	require.NoError(t, err)

	var logs bytes.Buffer
	log := slog.New(slog.NewTextHandler(&logs, nil))

	var probed []string
	probe := func(pin string) error {
		probed = append(probed, pin)
		if pin == "21" {
			return errors.New("line busy")
		}
		return nil
	}
	opened := 0
	open := func(pin string) (driver.Device, error) {
		opened++
		return &memDevice{MemoryStrip: matrix.NewMemoryStrip(layout.Len())}, nil
	}

	failed := sweep(context.Background(), log, open, probe, layout, []string{"18", "21"}, 0)
	assert.Empty(t, failed, "a busy line is a warning, not a failure")
	assert.Equal(t, []string{"18", "21"}, probed)
	assert.Equal(t, 2, opened)
	assert.Contains(t, logs.String(), "GPIO line not free")
	assert.Contains(t, logs.String(), "line busy")
}

func TestDefaultPins(t *testing.T) {
	assert.Equal(t, []string{"18", "12", "21", "10"}, defaultPins(false))
	assert.Equal(t, []string{"D18", "D10", "D12", "D21"}, defaultPins(true))
}

package matrix

import (
	"errors"
	"fmt"
	"image"
)

const (
	// DefaultWidth is the width of the common 16x16 NeoPixel panel
	DefaultWidth = 16
	// DefaultHeight is the height of the common 16x16 NeoPixel panel
	DefaultHeight = 16
)

// ErrInvalidLayout is returned when a layout has a non-positive dimension
var ErrInvalidLayout = errors.New("matrix: invalid layout")

// Layout maps 2D grid coordinates onto the 1D index of the LED chain.
//
// Serpentine panels wire alternating rows in opposite directions: even rows
// run left to right, odd rows right to left. A progressive layout runs every
// row left to right.
type Layout struct {
	Width       int
	Height      int
	Progressive bool
}

// NewLayout returns a serpentine layout of the given size
func NewLayout(width, height int) (Layout, error) {
	l := Layout{Width: width, Height: height}
	if err := l.Validate(); err != nil {
		return Layout{}, err
	}
	return l, nil
}

// Validate checks that both dimensions are positive
func (l Layout) Validate() error {
	if l.Width <= 0 || l.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidLayout, l.Width, l.Height)
	}
	return nil
}

// Len returns the number of pixels in the layout
func (l Layout) Len() int {
	return l.Width * l.Height
}

// Contains reports whether (x, y) lies on the grid
func (l Layout) Contains(x, y int) bool {
	return x >= 0 && x < l.Width && y >= 0 && y < l.Height
}

// IndexOf returns the chain index of (x, y). The result is only meaningful
// when Contains(x, y) is true.
func (l Layout) IndexOf(x, y int) int {
	if y%2 == 0 || l.Progressive {
		return y*l.Width + x
	}
	return y*l.Width + (l.Width - 1 - x)
}

// CoordsOf is the inverse of IndexOf
func (l Layout) CoordsOf(index int) (x, y int) {
	y = index / l.Width
	x = index % l.Width
	if y%2 != 0 && !l.Progressive {
		x = l.Width - 1 - x
	}
	return x, y
}

// Point is CoordsOf returning an image.Point
func (l Layout) Point(index int) image.Point {
	x, y := l.CoordsOf(index)
	return image.Pt(x, y)
}

// Center returns the middle cell, rounded towards the bottom right
func (l Layout) Center() image.Point {
	return image.Pt(l.Width/2, l.Height/2)
}

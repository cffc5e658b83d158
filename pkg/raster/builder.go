// Package raster renders the normalized position-by-wavelength matrix into
// a false-colour hyperspectral image.
package raster

import (
	"errors"
	"fmt"
	"image"

	xdraw "golang.org/x/image/draw"

	"hyperstack/pkg/profile"
)

// ErrEmptyMatrix is returned when there is nothing to render
var ErrEmptyMatrix = errors.New("raster: empty matrix")

// Builder turns a normalized matrix into a colour raster of fixed size.
type Builder struct {
	// Width and Height of the output raster
	Width  int
	Height int

	// Smooth enables the 3x3 mean filter applied before resizing
	Smooth bool

	// Colormap maps normalized intensities to colours
	Colormap *LUT
}

// NewBuilder creates a builder with smoothing and the rainbow table
func NewBuilder(width, height int) *Builder {
	return &Builder{
		Width:    width,
		Height:   height,
		Smooth:   true,
		Colormap: Rainbow,
	}
}

// Build renders a P x (C+1) normalized matrix. The result shows wavelength
// columns left to right (baseline column first) and line positions top to
// bottom. Steps, in order: matrix to grid, vertical flip, clockwise
// rotation, smoothing, nearest-neighbour resize, colour mapping.
func (b *Builder) Build(normalized profile.Matrix) (*image.RGBA, error) {
	if b.Width <= 0 || b.Height <= 0 {
		return nil, fmt.Errorf("raster: invalid size %dx%d", b.Width, b.Height)
	}

	grid, err := b.Intensity(normalized)
	if err != nil {
		return nil, err
	}

	// Resizing happens on the 16-bit image so each output pixel copies a
	// single source column; channels never blend into each other
	src := grid.toGray16()
	scaled := image.NewGray16(image.Rect(0, 0, b.Width, b.Height))
	xdraw.NearestNeighbor.Scale(scaled, scaled.Bounds(), src, src.Bounds(), xdraw.Src, nil)

	lut := b.Colormap
	if lut == nil {
		lut = Rainbow
	}
	out := image.NewRGBA(scaled.Bounds())
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			out.SetRGBA(x, y, lut.Index(uint8(scaled.Gray16At(x, y).Y>>8)))
		}
	}
	return out, nil
}

// Intensity returns the oriented and optionally smoothed grid before
// resizing: x is the padded channel, y the position along the line.
func (b *Builder) Intensity(normalized profile.Matrix) (*Grid, error) {
	grid, err := FromMatrix(normalized)
	if err != nil {
		return nil, err
	}
	if grid.Width == 0 || grid.Height == 0 {
		return nil, ErrEmptyMatrix
	}

	grid.FlipVertical()
	grid = grid.RotateRight()
	if b.Smooth {
		grid = grid.Smooth()
	}
	return grid, nil
}

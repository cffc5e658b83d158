// Package axis places the wavelength labels under the hyperspectral raster.
package axis

import (
	"errors"
	"fmt"
	"strconv"

	"hyperstack/internal/models"
	"hyperstack/pkg/profile"
)

// ErrInvalidOptions is returned for a non-positive width or tick interval
var ErrInvalidOptions = errors.New("axis: invalid options")

// Options controls tick placement
type Options struct {
	// TickInterval labels every n-th wavelength, starting with the first
	TickInterval int

	// Inset shifts each label right by this fraction of a column so the
	// first label does not touch the canvas edge
	Inset float64

	// LabelOffset is the distance between the raster bottom and the labels
	LabelOffset int
}

// DefaultOptions returns one tick per wavelength with a 0.2 column inset
func DefaultOptions() Options {
	return Options{TickInterval: 1, Inset: 0.2, LabelOffset: 10}
}

// Compute returns one tick per labelled wavelength. The raster has
// header.Channels()+1 columns of equal width, column 0 being the baseline,
// so channel i sits at x = i*W/(C+1) plus the inset. The sentinel never
// gets a tick.
func Compute(header profile.WavelengthHeader, width, rasterHeight int, opts Options) ([]models.Tick, error) {
	if width <= 0 {
		return nil, fmt.Errorf("%w: width %d", ErrInvalidOptions, width)
	}
	if opts.TickInterval < 1 {
		return nil, fmt.Errorf("%w: tick interval %d", ErrInvalidOptions, opts.TickInterval)
	}
	if len(header) == 0 {
		return nil, nil
	}

	column := float64(width) / float64(len(header))
	y := float64(rasterHeight + opts.LabelOffset)

	var ticks []models.Tick
	for i := 1; i < len(header); i += opts.TickInterval {
		ticks = append(ticks, models.Tick{
			Index: i,
			X:     column*float64(i) + column*opts.Inset,
			Y:     y,
			Label: strconv.Itoa(header[i]),
		})
	}
	return ticks, nil
}

package profile

import (
	"errors"
	"fmt"
)

// ErrInvalidWavelength is returned for a non-positive emission wavelength
var ErrInvalidWavelength = errors.New("profile: invalid wavelength")

// PadBaseline returns a new sequence with a single zero prepended.
//
// Every normalized row and the wavelength header go through this same
// function, so column 0 always means "baseline, no wavelength" and column i
// always belongs to channel i.
func PadBaseline[T int | float64](seq []T) []T {
	out := make([]T, len(seq)+1)
	copy(out[1:], seq)
	return out
}

// WavelengthHeader is the export header row: index 0 holds the baseline
// sentinel 0 and indices 1..C the emission wavelength of each channel in nm.
type WavelengthHeader []int

// NewWavelengthHeader builds the padded header from per-channel wavelengths
func NewWavelengthHeader(wavelengths []int) (WavelengthHeader, error) {
	for i, wl := range wavelengths {
		if wl <= 0 {
			return nil, fmt.Errorf("%w: channel %d has %d nm", ErrInvalidWavelength, i+1, wl)
		}
	}
	return WavelengthHeader(PadBaseline(wavelengths)), nil
}

// Channels returns the number of real wavelengths, excluding the sentinel
func (h WavelengthHeader) Channels() int {
	if len(h) == 0 {
		return 0
	}
	return len(h) - 1
}

// Wavelength returns the wavelength of a 1-based channel index
func (h WavelengthHeader) Wavelength(channel int) int {
	return h[channel]
}

package profile

import (
	"errors"
	"fmt"
)

// ErrWavelengthCount is returned when the number of wavelengths does not
// match the number of sampled channels
var ErrWavelengthCount = errors.New("profile: wavelength count does not match channel count")

// Profile is the result of one pass through the numeric chain.
type Profile struct {
	// Header is the padded wavelength row, length C+1
	Header WavelengthHeader

	// Raw is the channel-major sampled matrix, C x P
	Raw Matrix

	// Transposed is the position-major raw matrix, P x C
	Transposed Matrix

	// Normalized is the padded, per-position normalized matrix, P x (C+1)
	Normalized Matrix

	// Degenerate lists the positions whose channel vector was constant
	// and therefore normalized to all zeros
	Degenerate []int
}

// Build transposes, normalizes and pads a raw channel-major matrix.
// wavelengths holds one emission wavelength per channel, in channel order.
func Build(raw Matrix, wavelengths []int) (*Profile, error) {
	channels, positions, err := raw.Dims()
	if err != nil {
		return nil, err
	}
	if channels < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewChannels, channels)
	}
	if positions == 0 {
		return nil, fmt.Errorf("%w: no positions sampled", ErrNotLine)
	}
	if len(wavelengths) != channels {
		return nil, fmt.Errorf("%w: %d wavelengths for %d channels", ErrWavelengthCount, len(wavelengths), channels)
	}

	header, err := NewWavelengthHeader(wavelengths)
	if err != nil {
		return nil, err
	}

	transposed, err := Transpose(raw)
	if err != nil {
		return nil, err
	}

	p := &Profile{
		Header:     header,
		Raw:        raw.Clone(),
		Transposed: transposed,
		Normalized: make(Matrix, len(transposed)),
	}
	for i, row := range transposed {
		norm, ok := NormalizeRow(row)
		if !ok {
			p.Degenerate = append(p.Degenerate, i)
		}
		p.Normalized[i] = PadBaseline(norm)
	}
	return p, nil
}

// Channels returns C
func (p *Profile) Channels() int {
	return p.Header.Channels()
}

// Positions returns P
func (p *Profile) Positions() int {
	return len(p.Transposed)
}

// RawExport returns the position-major raw rows padded with the baseline
// column, so they line up with Header exactly like the normalized rows do.
func (p *Profile) RawExport() Matrix {
	out := make(Matrix, len(p.Transposed))
	for i, row := range p.Transposed {
		out[i] = PadBaseline(row)
	}
	return out
}

package profile

import (
	"errors"
	"fmt"
	"math"

	"hyperstack/internal/models"
)

var (
	// ErrTooFewChannels is returned when the stack is not a lambda stack
	ErrTooFewChannels = errors.New("profile: at least 2 channels required")

	// ErrNotLine is returned when the selection is not a usable straight line
	ErrNotLine = errors.New("profile: line selection required")
)

// ChannelSource gives access to the intensities of one channel along a line.
// Channels are numbered from 1.
type ChannelSource interface {
	LineProfile(channel int, line models.Line) ([]float64, error)
}

// ValidateLine checks that a line has finite coordinates and a non-zero length
func ValidateLine(line models.Line) error {
	for _, v := range []float64{line.X1, line.Y1, line.X2, line.Y2} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite coordinate", ErrNotLine)
		}
	}
	if line.Length() == 0 {
		return fmt.Errorf("%w: start and end points coincide", ErrNotLine)
	}
	return nil
}

// Sample reads the intensity profile of every channel along line and returns
// the channel-major raw matrix, raw[c-1][p] being channel c at position p.
// Channels are scanned one at a time in order.
func Sample(src ChannelSource, channels int, line models.Line) (Matrix, error) {
	if channels < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewChannels, channels)
	}
	if err := ValidateLine(line); err != nil {
		return nil, err
	}

	raw := make(Matrix, 0, channels)
	for c := 1; c <= channels; c++ {
		values, err := src.LineProfile(c, line)
		if err != nil {
			return nil, fmt.Errorf("failed to sample channel %d: %w", c, err)
		}
		if len(values) == 0 {
			return nil, fmt.Errorf("%w: channel %d returned no positions", ErrNotLine, c)
		}
		raw = append(raw, values)
	}
	return raw, nil
}

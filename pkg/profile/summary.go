package profile

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Spectrum summarizes the normalized profile along the whole line
type Spectrum struct {
	// Wavelengths are the real wavelengths, sentinel excluded
	Wavelengths []int

	// Mean is the mean normalized intensity of each wavelength over all positions
	Mean []float64

	// StdDev is the standard deviation matching Mean (0 for a single position)
	StdDev []float64

	// PeakWavelength is the wavelength with the highest mean intensity
	PeakWavelength int
}

// Summarize computes per-wavelength statistics of the normalized matrix
func Summarize(p *Profile) Spectrum {
	channels := p.Channels()
	s := Spectrum{
		Wavelengths: append([]int(nil), p.Header[1:]...),
		Mean:        make([]float64, channels),
		StdDev:      make([]float64, channels),
	}
	if channels == 0 || len(p.Normalized) == 0 {
		return s
	}

	for c := 1; c <= channels; c++ {
		col := p.Normalized.Column(c)
		if len(col) < 2 {
			s.Mean[c-1] = stat.Mean(col, nil)
			continue
		}
		s.Mean[c-1], s.StdDev[c-1] = stat.MeanStdDev(col, nil)
	}
	s.PeakWavelength = s.Wavelengths[floats.MaxIdx(s.Mean)]
	return s
}

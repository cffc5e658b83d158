package raster

import (
	"image/color"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// LUT is a 256-entry lookup table mapping normalized intensities to colours
type LUT [256]color.RGBA

// Rainbow is the fixed rainbow lookup table: violet at 0 through blue,
// green and yellow to red at 1.
var Rainbow = newRainbow()

func newRainbow() *LUT {
	var lut LUT
	for i := range lut {
		t := float64(i) / 255
		r, g, b := colorful.Hsv(270*(1-t), 1, 1).Clamped().RGB255()
		lut[i] = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	return &lut
}

// At returns the colour for t in [0,1]; values outside are clamped
func (l *LUT) At(t float64) color.RGBA {
	if math.IsNaN(t) || t <= 0 {
		return l[0]
	}
	if t >= 1 {
		return l[255]
	}
	return l[int(math.Round(t*255))]
}

// Index returns the colour at a raw 8-bit index
func (l *LUT) Index(i uint8) color.RGBA {
	return l[i]
}

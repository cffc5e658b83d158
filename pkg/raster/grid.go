package raster

import (
	"image"
	"image/color"
	"math"

	"hyperstack/pkg/profile"
)

// Grid is a single-channel float image, row-major
type Grid struct {
	Width  int
	Height int
	Pix    []float64
}

// NewGrid allocates a zero grid
func NewGrid(width, height int) *Grid {
	return &Grid{Width: width, Height: height, Pix: make([]float64, width*height)}
}

// At returns the value at (x, y)
func (g *Grid) At(x, y int) float64 {
	return g.Pix[y*g.Width+x]
}

// Set stores v at (x, y)
func (g *Grid) Set(x, y int, v float64) {
	g.Pix[y*g.Width+x] = v
}

// FromMatrix lays a position-major matrix out as an image whose x axis is
// the position along the line and whose y axis is the padded channel:
// pixel (p, c) holds m[p][c].
func FromMatrix(m profile.Matrix) (*Grid, error) {
	positions, columns, err := m.Dims()
	if err != nil {
		return nil, err
	}
	g := NewGrid(positions, columns)
	for p, row := range m {
		for c, v := range row {
			g.Set(p, c, v)
		}
	}
	return g, nil
}

// FlipVertical mirrors the grid top to bottom in place
func (g *Grid) FlipVertical() {
	for top, bottom := 0, g.Height-1; top < bottom; top, bottom = top+1, bottom-1 {
		for x := 0; x < g.Width; x++ {
			a, b := top*g.Width+x, bottom*g.Width+x
			g.Pix[a], g.Pix[b] = g.Pix[b], g.Pix[a]
		}
	}
}

// RotateRight returns the grid rotated 90 degrees clockwise
func (g *Grid) RotateRight() *Grid {
	out := NewGrid(g.Height, g.Width)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			out.Set(g.Height-1-y, x, g.At(x, y))
		}
	}
	return out
}

// Smooth returns the 3x3 mean of the grid. Edge pixels reuse their
// nearest neighbour for the missing part of the window.
func (g *Grid) Smooth() *Grid {
	out := NewGrid(g.Width, g.Height)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			var sum float64
			for dy := -1; dy <= 1; dy++ {
				sy := clampInt(y+dy, 0, g.Height-1)
				for dx := -1; dx <= 1; dx++ {
					sx := clampInt(x+dx, 0, g.Width-1)
					sum += g.At(sx, sy)
				}
			}
			out.Set(x, y, sum/9)
		}
	}
	return out
}

// toGray16 maps [0,1] to the full 16-bit range, clamping outside values
func (g *Grid) toGray16() *image.Gray16 {
	img := image.NewGray16(image.Rect(0, 0, g.Width, g.Height))
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			value := uint16(math.Round(math.Max(0, math.Min(1, g.At(x, y))) * 65535))
			img.SetGray16(x, y, color.Gray16{Y: value})
		}
	}
	return img
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

package raster

import (
	"image/color"
	"math"
	"testing"

	"hyperstack/pkg/profile"
)

// TestOrientation verifies flip followed by rotation puts padded channel c
// on the x axis and position p on the y axis
func TestOrientation(t *testing.T) {
	m := profile.Matrix{
		{0, 0.1, 0.2, 0.3},
		{0, 0.4, 0.5, 0.6},
	}
	b := NewBuilder(8, 4)
	b.Smooth = false

	g, err := b.Intensity(m)
	if err != nil {
		t.Fatalf("Intensity failed: %v", err)
	}
	if g.Width != 4 || g.Height != 2 {
		t.Fatalf("Expected 4x2 grid, got %dx%d", g.Width, g.Height)
	}
	for p, row := range m {
		for c, want := range row {
			if got := g.At(c, p); got != want {
				t.Errorf("At(%d,%d) = %f, want %f", c, p, got, want)
			}
		}
	}
}

func TestRotateRight(t *testing.T) {
	g := NewGrid(3, 2)
	copy(g.Pix, []float64{
		1, 2, 3,
		4, 5, 6,
	})
	r := g.RotateRight()
	want := []float64{
		4, 1,
		5, 2,
		6, 3,
	}
	if r.Width != 2 || r.Height != 3 {
		t.Fatalf("Expected 2x3, got %dx%d", r.Width, r.Height)
	}
	for i := range want {
		if r.Pix[i] != want[i] {
			t.Errorf("pixel %d: expected %f, got %f", i, want[i], r.Pix[i])
		}
	}
}

func TestFlipVertical(t *testing.T) {
	g := NewGrid(2, 3)
	copy(g.Pix, []float64{1, 2, 3, 4, 5, 6})
	g.FlipVertical()
	want := []float64{5, 6, 3, 4, 1, 2}
	for i := range want {
		if g.Pix[i] != want[i] {
			t.Errorf("pixel %d: expected %f, got %f", i, want[i], g.Pix[i])
		}
	}
}

func TestSmooth(t *testing.T) {
	g := NewGrid(3, 3)
	g.Set(1, 1, 9)
	s := g.Smooth()

	if s.At(1, 1) != 1 {
		t.Errorf("Expected centre 1, got %f", s.At(1, 1))
	}
	// Corner window replicates the edge, so the centre pixel is seen once
	if s.At(0, 0) != 1 {
		t.Errorf("Expected corner 1, got %f", s.At(0, 0))
	}

	flat := NewGrid(4, 2)
	for i := range flat.Pix {
		flat.Pix[i] = 0.5
	}
	for i, v := range flat.Smooth().Pix {
		if math.Abs(v-0.5) > 1e-12 {
			t.Errorf("flat pixel %d changed to %f", i, v)
		}
	}
}

func TestBuildSizeAndColours(t *testing.T) {
	// Channel 3 is the brightest at every position
	m := profile.Matrix{
		{0, 0, 0.5, 1},
		{0, 0.25, 0, 1},
	}
	b := NewBuilder(400, 200)
	b.Smooth = false

	img, err := b.Build(m)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if img.Bounds().Dx() != 400 || img.Bounds().Dy() != 200 {
		t.Fatalf("Expected 400x200, got %v", img.Bounds())
	}

	red := color.RGBA{R: 255, A: 255}
	for _, y := range []int{0, 50, 150, 199} {
		if got := img.RGBAAt(350, y); got != red {
			t.Errorf("Expected red in the last wavelength column at y=%d, got %v", y, got)
		}
		if got := img.RGBAAt(10, y); got != Rainbow.At(0) {
			t.Errorf("Expected baseline colour in column 0 at y=%d, got %v", y, got)
		}
	}

	// Position axis runs top to bottom: channel 2 is 0.5 on top, 0 below
	if img.RGBAAt(250, 20) == img.RGBAAt(250, 180) {
		t.Error("Expected the two positions to differ in the third column")
	}
	if got := img.RGBAAt(250, 180); got != Rainbow.At(0) {
		t.Errorf("Expected baseline colour for the second position, got %v", got)
	}
}

func TestBuildSmoothedKeepsSize(t *testing.T) {
	m := profile.Matrix{{0, 0.2, 1}, {0, 1, 0}, {0, 0.5, 1}}
	img, err := NewBuilder(800, 988).Build(m)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if img.Bounds().Dx() != 800 || img.Bounds().Dy() != 988 {
		t.Errorf("Expected 800x988, got %v", img.Bounds())
	}
}

func TestBuildErrors(t *testing.T) {
	if _, err := NewBuilder(10, 10).Build(profile.Matrix{{0, 1}, {0}}); err == nil {
		t.Error("Expected error for a jagged matrix")
	}
	if _, err := NewBuilder(10, 10).Build(nil); err == nil {
		t.Error("Expected error for an empty matrix")
	}
	if _, err := NewBuilder(0, 10).Build(profile.Matrix{{0, 1}}); err == nil {
		t.Error("Expected error for a zero-width raster")
	}
}

func TestRainbowEnds(t *testing.T) {
	if got := Rainbow.At(1); got != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("Expected red at 1, got %v", got)
	}
	low := Rainbow.At(0)
	if low.B != 255 || low.G != 0 {
		t.Errorf("Expected violet at 0, got %v", low)
	}
	if Rainbow.At(-3) != low || Rainbow.At(math.NaN()) != low {
		t.Error("Expected values below 0 to clamp to the first entry")
	}
}

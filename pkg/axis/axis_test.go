package axis

import (
	"errors"
	"math"
	"testing"

	"hyperstack/pkg/profile"
)

func TestComputeOneTickPerWavelength(t *testing.T) {
	header, err := profile.NewWavelengthHeader([]int{450, 550, 650})
	if err != nil {
		t.Fatalf("NewWavelengthHeader failed: %v", err)
	}

	ticks, err := Compute(header, 800, 988, DefaultOptions())
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if len(ticks) != 3 {
		t.Fatalf("Expected 3 ticks, got %d", len(ticks))
	}

	wantX := []float64{240, 440, 640}
	wantLabel := []string{"450", "550", "650"}
	for i, tick := range ticks {
		if math.Abs(tick.X-wantX[i]) > 1e-9 {
			t.Errorf("tick %d: expected x %f, got %f", i, wantX[i], tick.X)
		}
		if tick.Label != wantLabel[i] {
			t.Errorf("tick %d: expected label %s, got %s", i, wantLabel[i], tick.Label)
		}
		if tick.Index != i+1 {
			t.Errorf("tick %d: expected index %d, got %d", i, i+1, tick.Index)
		}
		if tick.Y != 998 {
			t.Errorf("tick %d: expected y 998, got %f", i, tick.Y)
		}
		if i > 0 && tick.X <= ticks[i-1].X {
			t.Errorf("tick x not strictly increasing at %d", i)
		}
	}
}

func TestComputeTickInterval(t *testing.T) {
	wavelengths := make([]int, 32)
	for i := range wavelengths {
		wavelengths[i] = 421 + 10*i
	}
	header, _ := profile.NewWavelengthHeader(wavelengths)

	opts := DefaultOptions()
	opts.TickInterval = 3
	ticks, err := Compute(header, 800, 988, opts)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if len(ticks) != 11 {
		t.Fatalf("Expected 11 ticks, got %d", len(ticks))
	}
	for i, tick := range ticks {
		if tick.Index != 1+3*i {
			t.Errorf("tick %d: expected index %d, got %d", i, 1+3*i, tick.Index)
		}
	}
}

func TestComputeInvalidOptions(t *testing.T) {
	header, _ := profile.NewWavelengthHeader([]int{450, 550})

	opts := DefaultOptions()
	opts.TickInterval = 0
	if _, err := Compute(header, 800, 988, opts); !errors.Is(err, ErrInvalidOptions) {
		t.Errorf("Expected ErrInvalidOptions for interval 0, got %v", err)
	}
	if _, err := Compute(header, 0, 988, DefaultOptions()); !errors.Is(err, ErrInvalidOptions) {
		t.Errorf("Expected ErrInvalidOptions for width 0, got %v", err)
	}
}

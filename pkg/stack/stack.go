// Package stack loads a multi-channel image stack from disk and gives
// pixel access to its channels.
package stack

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	_ "golang.org/x/image/tiff"

	"hyperstack/internal/models"
)

var (
	// ErrSizeMismatch is returned when channel planes differ in size
	ErrSizeMismatch = errors.New("stack: channel planes differ in size")

	// ErrOutOfBounds is returned when a line leaves the image plane
	ErrOutOfBounds = errors.New("stack: line extends past the image")
)

// Stack is a set of same-sized single-plane images, one per channel.
type Stack struct {
	// Title is the stack name used for output files
	Title string

	// Width and Height are the plane dimensions in pixels
	Width  int
	Height int

	// Interpolate selects bilinear sampling along lines instead of
	// nearest-pixel sampling
	Interpolate bool

	// planes holds native intensities, row-major, one slice per channel
	planes [][]float64
}

// New creates a stack from row-major planes of native intensities
func New(title string, width, height int, planes [][]float64) (*Stack, error) {
	for i, p := range planes {
		if len(p) != width*height {
			return nil, fmt.Errorf("%w: channel %d has %d pixels, want %d", ErrSizeMismatch, i+1, len(p), width*height)
		}
	}
	return &Stack{
		Title:       title,
		Width:       width,
		Height:      height,
		Interpolate: true,
		planes:      planes,
	}, nil
}

// Load reads every image in dir as one channel. Channels are ordered by
// the number embedded in the filename, so c2.png comes before c10.png.
// The stack title is the directory name.
func Load(dir string) (*Stack, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var imageFiles []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".png", ".tif", ".tiff", ".jpg", ".jpeg":
			imageFiles = append(imageFiles, entry.Name())
		}
	}
	if len(imageFiles) == 0 {
		return nil, fmt.Errorf("no channel images found in %s", dir)
	}

	sort.SliceStable(imageFiles, func(i, j int) bool {
		numI := extractNumber(imageFiles[i])
		numJ := extractNumber(imageFiles[j])
		if numI != numJ {
			return numI < numJ
		}
		return imageFiles[i] < imageFiles[j]
	})

	var (
		planes        [][]float64
		width, height int
	)
	for i, filename := range imageFiles {
		img, err := loadImage(filepath.Join(dir, filename))
		if err != nil {
			return nil, fmt.Errorf("failed to load image %s: %w", filename, err)
		}
		bounds := img.Bounds()
		if i == 0 {
			width, height = bounds.Dx(), bounds.Dy()
		} else if bounds.Dx() != width || bounds.Dy() != height {
			return nil, fmt.Errorf("%w: %s is %dx%d, want %dx%d",
				ErrSizeMismatch, filename, bounds.Dx(), bounds.Dy(), width, height)
		}
		planes = append(planes, imageToPlane(img))
	}

	title := filepath.Base(filepath.Clean(dir))
	return New(title, width, height, planes)
}

// Channels returns the number of channels in the stack
func (s *Stack) Channels() int {
	return len(s.planes)
}

// Value returns the native intensity of a 1-based channel at pixel (x, y)
func (s *Stack) Value(channel, x, y int) float64 {
	return s.planes[channel-1][y*s.Width+x]
}

// CheckLine reports whether both end points of line are finite and lie
// within [0,Width]x[0,Height]. Lines that pass are at most one image
// diagonal long.
func (s *Stack) CheckLine(line models.Line) error {
	points := [][2]float64{{line.X1, line.Y1}, {line.X2, line.Y2}}
	for _, pt := range points {
		x, y := pt[0], pt[1]
		if !(x >= 0 && x <= float64(s.Width) && y >= 0 && y <= float64(s.Height)) {
			return fmt.Errorf("%w: point (%g, %g) is outside %dx%d", ErrOutOfBounds, x, y, s.Width, s.Height)
		}
	}
	return nil
}

// LineProfile returns the intensities of a 1-based channel along a
// straight line. The line is divided into round(length) steps and
// sampled at each step boundary, both end points included. Lines leaving
// the plane are rejected with ErrOutOfBounds.
func (s *Stack) LineProfile(channel int, line models.Line) ([]float64, error) {
	if channel < 1 || channel > len(s.planes) {
		return nil, fmt.Errorf("channel %d out of range 1..%d", channel, len(s.planes))
	}
	if err := s.CheckLine(line); err != nil {
		return nil, err
	}
	plane := s.planes[channel-1]

	dx := line.X2 - line.X1
	dy := line.Y2 - line.Y1
	n := int(math.Round(math.Hypot(dx, dy)))
	var xinc, yinc float64
	if n > 0 {
		xinc = dx / float64(n)
		yinc = dy / float64(n)
	}

	values := make([]float64, n+1)
	rx, ry := line.X1, line.Y1
	for i := range values {
		if s.Interpolate {
			values[i] = s.bilinear(plane, rx, ry)
		} else {
			values[i] = s.nearest(plane, rx, ry)
		}
		rx += xinc
		ry += yinc
	}
	return values, nil
}

// MaxProjection returns the per-pixel maximum over all channels
func (s *Stack) MaxProjection() []float64 {
	out := make([]float64, s.Width*s.Height)
	for c, plane := range s.planes {
		for i, v := range plane {
			if c == 0 || v > out[i] {
				out[i] = v
			}
		}
	}
	return out
}

func (s *Stack) nearest(plane []float64, x, y float64) float64 {
	ix := clampInt(int(math.Round(x)), 0, s.Width-1)
	iy := clampInt(int(math.Round(y)), 0, s.Height-1)
	return plane[iy*s.Width+ix]
}

func (s *Stack) bilinear(plane []float64, x, y float64) float64 {
	x = math.Max(0, math.Min(x, float64(s.Width-1)))
	y = math.Max(0, math.Min(y, float64(s.Height-1)))

	x0, y0 := int(math.Floor(x)), int(math.Floor(y))
	x1 := min(x0+1, s.Width-1)
	y1 := min(y0+1, s.Height-1)
	fx := x - float64(x0)
	fy := y - float64(y0)

	top := plane[y0*s.Width+x0]*(1-fx) + plane[y0*s.Width+x1]*fx
	bottom := plane[y1*s.Width+x0]*(1-fx) + plane[y1*s.Width+x1]*fx
	return top*(1-fy) + bottom*fy
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

// extractNumber extracts the numeric part from a filename
func extractNumber(filename string) int {
	base := filepath.Base(filename)
	numStr := ""
	for _, c := range base {
		if c >= '0' && c <= '9' {
			numStr += string(c)
		}
	}

	if numStr != "" {
		num, err := strconv.Atoi(numStr)
		if err == nil {
			return num
		}
	}
	return 0
}

func loadImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, err
	}
	return img, nil
}

// imageToPlane converts an image to a row-major plane of native
// intensities: 16-bit and 8-bit grey keep their stored value, colour
// images are reduced to 16-bit luminance.
func imageToPlane(img image.Image) []float64 {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	plane := make([]float64, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			px, py := bounds.Min.X+x, bounds.Min.Y+y
			var v float64
			switch src := img.(type) {
			case *image.Gray16:
				v = float64(src.Gray16At(px, py).Y)
			case *image.Gray:
				v = float64(src.GrayAt(px, py).Y)
			default:
				v = float64(color.Gray16Model.Convert(img.At(px, py)).(color.Gray16).Y)
			}
			plane[y*width+x] = v
		}
	}
	return plane
}

// Package visualization draws the annotations around the hyperspectral
// raster (label strip, wavelength labels, calibration bar) and the
// projection preview, and writes the results as PNG.
package visualization

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"
	"strconv"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"hyperstack/internal/models"
	"hyperstack/pkg/raster"
)

// CalibrationBar describes the colour scale legend drawn in the upper right
type CalibrationBar struct {
	// Divisions is the number of labels, including both ends
	Divisions int

	// Decimals is the label precision
	Decimals int

	// FontSize is the label size before zoom
	FontSize float64

	// Zoom scales the whole bar
	Zoom int

	Bold       bool
	LabelColor color.RGBA
}

// Annotator renders the overlays of the final raster.
type Annotator struct {
	// FinalHeight is the canvas height after extension
	FinalHeight int

	// StripHeight is the white strip drawn right under the raster
	StripHeight int

	// FontSize of the wavelength labels
	FontSize float64

	// LabelColor of the wavelength labels
	LabelColor color.RGBA

	// Bar is drawn when non-nil
	Bar *CalibrationBar

	// Colormap used for the bar gradient
	Colormap *raster.LUT
}

// NewAnnotator creates an annotator with white labels and no calibration bar
func NewAnnotator(finalHeight, stripHeight int, fontSize float64) *Annotator {
	return &Annotator{
		FinalHeight: finalHeight,
		StripHeight: stripHeight,
		FontSize:    fontSize,
		LabelColor:  White,
		Colormap:    raster.Rainbow,
	}
}

// ExtendCanvas returns img on a taller black canvas, anchored top centre
func ExtendCanvas(img image.Image, height int) *image.RGBA {
	b := img.Bounds()
	if height < b.Dy() {
		height = b.Dy()
	}
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), height))
	draw.Draw(out, out.Bounds(), image.NewUniform(Black), image.Point{}, draw.Src)
	draw.Draw(out, image.Rect(0, 0, b.Dx(), b.Dy()), img, b.Min, draw.Src)
	return out
}

// Annotate extends the raster to FinalHeight and draws the label strip,
// a label and small mark per tick, and the calibration bar.
func (a *Annotator) Annotate(img *image.RGBA, ticks []models.Tick) (*image.RGBA, error) {
	rasterHeight := img.Bounds().Dy()
	out := ExtendCanvas(img, a.FinalHeight)
	width := out.Bounds().Dx()

	strip := image.Rect(0, rasterHeight, width, rasterHeight+a.StripHeight)
	draw.Draw(out, strip, image.NewUniform(White), image.Point{}, draw.Src)

	face, err := newFace(a.FontSize, false)
	if err != nil {
		return nil, err
	}
	defer face.Close()

	markTop := rasterHeight + a.StripHeight
	for _, tick := range ticks {
		x := int(math.Round(tick.X))
		for y := markTop; y < markTop+3 && y < out.Bounds().Dy(); y++ {
			if x >= 0 && x < width {
				out.SetRGBA(x, y, a.LabelColor)
			}
		}
		drawText(out, face, a.LabelColor, tick.X, tick.Y, tick.Label)
	}

	if a.Bar != nil {
		if err := a.drawCalibrationBar(out, rasterHeight); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// drawCalibrationBar draws a vertical gradient from 1 (top) to 0 (bottom)
// with evenly spaced value labels to its right, in the upper right corner.
func (a *Annotator) drawCalibrationBar(dst *image.RGBA, rasterHeight int) error {
	bar := a.Bar
	if bar.Divisions < 2 {
		return fmt.Errorf("calibration bar needs at least 2 divisions, got %d", bar.Divisions)
	}
	zoom := max(bar.Zoom, 1)

	face, err := newFace(bar.FontSize*float64(zoom), bar.Bold)
	if err != nil {
		return err
	}
	defer face.Close()

	labels := make([]string, bar.Divisions)
	labelWidth := 0
	for d := range labels {
		value := 1 - float64(d)/float64(bar.Divisions-1)
		labels[d] = strconv.FormatFloat(value, 'f', bar.Decimals, 64)
		labelWidth = max(labelWidth, font.MeasureString(face, labels[d]).Ceil())
	}

	margin := 5 * zoom
	thickness := 12 * zoom
	length := min(128*zoom, rasterHeight-2*margin)
	if length < bar.Divisions {
		return nil
	}
	left := dst.Bounds().Dx() - margin - labelWidth - margin - thickness
	top := margin

	lut := a.Colormap
	if lut == nil {
		lut = raster.Rainbow
	}
	for i := 0; i < length; i++ {
		c := lut.At(1 - float64(i)/float64(length-1))
		for x := left; x < left+thickness; x++ {
			dst.SetRGBA(x, top+i, c)
		}
	}

	// Outline
	for x := left - 1; x <= left+thickness; x++ {
		dst.SetRGBA(x, top-1, bar.LabelColor)
		dst.SetRGBA(x, top+length, bar.LabelColor)
	}
	for y := top - 1; y <= top+length; y++ {
		dst.SetRGBA(left-1, y, bar.LabelColor)
		dst.SetRGBA(left+thickness, y, bar.LabelColor)
	}

	ascent := face.Metrics().Ascent.Ceil()
	for d, label := range labels {
		y := top + d*(length-1)/(bar.Divisions-1)
		drawText(dst, face, bar.LabelColor, float64(left+thickness+margin), float64(y-ascent/2), label)
	}
	return nil
}

// drawText draws s with its top-left corner at (x, y)
func drawText(dst draw.Image, face font.Face, c color.Color, x, y float64, s string) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.Int26_6(x * 64),
			Y: fixed.Int26_6(y*64) + face.Metrics().Ascent,
		},
	}
	d.DrawString(s)
}

// Preview stretches a projection plane to 8-bit grey and draws line on it.
func Preview(plane []float64, width, height int, line models.Line, lineColor color.RGBA) (*image.RGBA, error) {
	if len(plane) != width*height || width <= 0 || height <= 0 {
		return nil, fmt.Errorf("plane has %d pixels, want %dx%d", len(plane), width, height)
	}

	lo, hi := plane[0], plane[0]
	for _, v := range plane {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	scale := 0.0
	if hi > lo {
		scale = 255 / (hi - lo)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			g := uint8(math.Round((plane[y*width+x] - lo) * scale))
			img.SetRGBA(x, y, color.RGBA{R: g, G: g, B: g, A: 255})
		}
	}

	steps := int(math.Ceil(math.Max(math.Abs(line.X2-line.X1), math.Abs(line.Y2-line.Y1))))
	for i := 0; i <= steps; i++ {
		t := 0.0
		if steps > 0 {
			t = float64(i) / float64(steps)
		}
		x := int(math.Round(line.X1 + t*(line.X2-line.X1)))
		y := int(math.Round(line.Y1 + t*(line.Y2-line.Y1)))
		if image.Pt(x, y).In(img.Bounds()) {
			img.SetRGBA(x, y, lineColor)
		}
	}
	return img, nil
}

// SavePNG writes img to filename
func SavePNG(img image.Image, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}

	if err := png.Encode(file, img); err != nil {
		file.Close()
		os.Remove(filename)
		return err
	}
	return file.Close()
}

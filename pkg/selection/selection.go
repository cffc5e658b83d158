// Package selection obtains the region of interest for a run, either from a
// fixed value or by prompting on the terminal.
package selection

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"hyperstack/internal/models"
)

// ErrLineRequired is returned when the selection is not a straight line
var ErrLineRequired = errors.New("line selection required")

// DefaultMessage is shown before waiting for the selection
const DefaultMessage = "Make a line with the region of interest (x1 y1 x2 y2) and press Enter"

// Source supplies a selection. Implementations may block indefinitely.
type Source interface {
	Select() (models.Selection, error)
}

// Static is a Source that always returns the same selection
type Static models.Selection

// Select returns the stored selection
func (s Static) Select() (models.Selection, error) {
	return models.Selection(s), nil
}

// Prompter asks for a selection on Out and reads one line from In.
// There is no timeout: Select blocks until a line is entered or In is closed.
type Prompter struct {
	In      *bufio.Reader
	Out     io.Writer
	Message string
}

// NewPrompter creates a prompter with the default message
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		In:      bufio.NewReader(in),
		Out:     out,
		Message: DefaultMessage,
	}
}

// Select prints the prompt and parses the reply
func (p *Prompter) Select() (models.Selection, error) {
	fmt.Fprintf(p.Out, "%s: ", p.Message)
	text, err := p.In.ReadString('\n')
	if err != nil && (err != io.EOF || strings.TrimSpace(text) == "") {
		return models.Selection{}, fmt.Errorf("failed to read selection: %w", err)
	}
	return Parse(text)
}

// Parse reads a selection from whitespace or comma separated coordinates.
// Two numbers are a point, four a line, more a polyline (or a polygon when
// the last vertex repeats the first).
func Parse(text string) (models.Selection, error) {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	if len(fields)%2 != 0 {
		return models.Selection{}, fmt.Errorf("odd number of coordinates (%d)", len(fields))
	}

	sel := models.Selection{}
	for i := 0; i < len(fields); i += 2 {
		x, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return models.Selection{}, fmt.Errorf("bad coordinate %q", fields[i])
		}
		y, err := strconv.ParseFloat(fields[i+1], 64)
		if err != nil {
			return models.Selection{}, fmt.Errorf("bad coordinate %q", fields[i+1])
		}
		sel.Points = append(sel.Points, models.Point{X: x, Y: y})
	}

	switch n := len(sel.Points); {
	case n == 0:
		sel.Kind = models.KindNone
	case n == 1:
		sel.Kind = models.KindPoint
	case n == 2:
		sel.Kind = models.KindLine
	case sel.Points[0] == sel.Points[n-1]:
		sel.Kind = models.KindPolygon
	default:
		sel.Kind = models.KindPolyline
	}
	return sel, nil
}

// RequireLine converts a selection into a line, rejecting anything that is
// not a straight line of non-zero length with finite end points.
func RequireLine(sel models.Selection) (models.Line, error) {
	if sel.Kind != models.KindLine || len(sel.Points) != 2 {
		return models.Line{}, fmt.Errorf("%w, got %s", ErrLineRequired, sel.Kind)
	}
	line := models.Line{
		X1: sel.Points[0].X, Y1: sel.Points[0].Y,
		X2: sel.Points[1].X, Y2: sel.Points[1].Y,
	}
	for _, v := range []float64{line.X1, line.Y1, line.X2, line.Y2} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return models.Line{}, fmt.Errorf("%w, got a non-finite coordinate", ErrLineRequired)
		}
	}
	if line.Length() == 0 {
		return models.Line{}, fmt.Errorf("%w, got a zero-length line", ErrLineRequired)
	}
	return line, nil
}

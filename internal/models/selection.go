package models

import (
	"math"
)

// SelectionKind identifies the geometry of a region of interest
type SelectionKind int

const (
	KindNone SelectionKind = iota
	KindPoint
	KindLine
	KindPolyline
	KindPolygon
)

func (k SelectionKind) String() string {
	switch k {
	case KindPoint:
		return "point"
	case KindLine:
		return "line"
	case KindPolyline:
		return "polyline"
	case KindPolygon:
		return "polygon"
	default:
		return "none"
	}
}

// Point is a sub-pixel image coordinate
type Point struct {
	X, Y float64
}

// Selection is a region of interest as supplied by the selection prompt
type Selection struct {
	// Kind is the geometry of the selection
	Kind SelectionKind

	// Points holds the vertices in drawing order
	Points []Point
}

// Line is a straight line selection across the image plane
type Line struct {
	X1, Y1 float64
	X2, Y2 float64
}

// Length returns the euclidean length of the line in pixels
func (l Line) Length() float64 {
	return math.Hypot(l.X2-l.X1, l.Y2-l.Y1)
}

// Tick is one wavelength label on the axis strip below the raster
type Tick struct {
	// Index is the column of the wavelength header this tick labels (1..C)
	Index int

	// X and Y are the top-left corner of the label in canvas pixels
	X, Y float64

	// Label is the text drawn at the tick
	Label string
}

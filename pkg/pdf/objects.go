package pdf

import (
	"github.com/jackburrus/ripdoc/pkg/geometry"
)

// Color is a device color with its originating color space name and raw
// component values.
type Color struct {
	Space  string
	Values []float64
}

// Char is a positioned glyph in top-down page coordinates.
type Char struct {
	Text     string
	Fontname string
	Size     float64
	X0       float64
	X1       float64
	Top      float64
	Bottom   float64
	// Doctop is Top plus the summed heights of all preceding pages.
	Doctop float64
	Width  float64
	Height float64
	// Adv is the advance the glyph contributed along the baseline.
	Adv float64
	// Upright is false for rotated or skewed text.
	Upright          bool
	Matrix           geometry.Matrix
	StrokingColor    Color
	NonStrokingColor Color
}

// BBox returns the glyph's bounding box.
func (c Char) BBox() geometry.BBox {
	return geometry.BBox{X0: c.X0, Top: c.Top, X1: c.X1, Bottom: c.Bottom}
}

// Line is a stroked straight segment.
type Line struct {
	X0            float64
	Top           float64
	X1            float64
	Bottom        float64
	Doctop        float64
	LineWidth     float64
	StrokingColor Color
}

// BBox returns the line's bounding box.
func (l Line) BBox() geometry.BBox {
	return geometry.NewBBox(l.X0, l.Top, l.X1, l.Bottom)
}

// Rect is a painted rectangle.
type Rect struct {
	X0               float64
	Top              float64
	X1               float64
	Bottom           float64
	Doctop           float64
	LineWidth        float64
	Stroke           bool
	Fill             bool
	StrokingColor    Color
	NonStrokingColor Color
}

// BBox returns the rectangle's bounding box.
func (r Rect) BBox() geometry.BBox {
	return geometry.BBox{X0: r.X0, Top: r.Top, X1: r.X1, Bottom: r.Bottom}
}

// Curve is a flattened Bezier path that is neither axis-aligned line nor
// rectangle.
type Curve struct {
	Points           []geometry.Point
	X0               float64
	Top              float64
	X1               float64
	Bottom           float64
	Doctop           float64
	LineWidth        float64
	StrokingColor    Color
	NonStrokingColor Color
}

// BBox returns the curve's bounding box.
func (c Curve) BBox() geometry.BBox {
	return geometry.BBox{X0: c.X0, Top: c.Top, X1: c.X1, Bottom: c.Bottom}
}

// Word is a cluster of adjacent chars on one line.
type Word struct {
	Text     string
	X0       float64
	X1       float64
	Top      float64
	Bottom   float64
	Doctop   float64
	Upright  bool
	Fontname string
	Size     float64
	Chars    []Char
}

// BBox returns the word's bounding box.
func (w Word) BBox() geometry.BBox {
	return geometry.BBox{X0: w.X0, Top: w.Top, X1: w.X1, Bottom: w.Bottom}
}

// Match is one search hit.
type Match struct {
	Text       string
	BBox       geometry.BBox
	PageNumber int
}

// primitives is the memoized result of interpreting one page's content.
type primitives struct {
	chars  []Char
	lines  []Line
	rects  []Rect
	curves []Curve
	// fault holds the recovery record when interpretation stopped early.
	fault *MalformedContentError
}

// Package geometry provides the coordinate primitives shared by the
// extraction and table detection code: top-down bounding boxes, PDF
// transformation matrices, 1-D clustering and ruling edges.
package geometry

import "math"

// BBox is a rectangle in top-down page coordinates. X0/Top is the upper-left
// corner, X1/Bottom the lower-right. Invariant: X0 <= X1 and Top <= Bottom.
type BBox struct {
	X0     float64
	Top    float64
	X1     float64
	Bottom float64
}

// NewBBox builds a normalized BBox from two corner points in top-down space.
func NewBBox(x0, top, x1, bottom float64) BBox {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if top > bottom {
		top, bottom = bottom, top
	}
	return BBox{X0: x0, Top: top, X1: x1, Bottom: bottom}
}

// FromPDFCoords converts a rectangle from native PDF bottom-up coordinates
// to top-down coordinates for a page of the given height.
func FromPDFCoords(x0, y0, x1, y1, pageHeight float64) BBox {
	return NewBBox(x0, pageHeight-y1, x1, pageHeight-y0)
}

// Width returns the horizontal extent.
func (b BBox) Width() float64 { return b.X1 - b.X0 }

// Height returns the vertical extent.
func (b BBox) Height() float64 { return b.Bottom - b.Top }

// Area returns the covered area.
func (b BBox) Area() float64 { return b.Width() * b.Height() }

// CenterX returns the horizontal midpoint.
func (b BBox) CenterX() float64 { return (b.X0 + b.X1) / 2 }

// CenterY returns the vertical midpoint.
func (b BBox) CenterY() float64 { return (b.Top + b.Bottom) / 2 }

// ContainsPoint reports whether the point lies inside or on the boundary.
func (b BBox) ContainsPoint(x, y float64) bool {
	return x >= b.X0 && x <= b.X1 && y >= b.Top && y <= b.Bottom
}

// ContainsBBox reports whether other lies entirely inside b.
func (b BBox) ContainsBBox(other BBox) bool {
	return other.X0 >= b.X0 && other.X1 <= b.X1 &&
		other.Top >= b.Top && other.Bottom <= b.Bottom
}

// Intersects reports whether the two boxes overlap.
func (b BBox) Intersects(other BBox) bool {
	return !(b.X1 < other.X0 || b.X0 > other.X1 ||
		b.Bottom < other.Top || b.Top > other.Bottom)
}

// Intersection returns the overlapping region and whether it is non-empty.
func (b BBox) Intersection(other BBox) (BBox, bool) {
	x0 := math.Max(b.X0, other.X0)
	top := math.Max(b.Top, other.Top)
	x1 := math.Min(b.X1, other.X1)
	bottom := math.Min(b.Bottom, other.Bottom)
	if x0 > x1 || top > bottom {
		return BBox{}, false
	}
	return BBox{X0: x0, Top: top, X1: x1, Bottom: bottom}, true
}

// Union returns the smallest box covering both.
func (b BBox) Union(other BBox) BBox {
	return BBox{
		X0:     math.Min(b.X0, other.X0),
		Top:    math.Min(b.Top, other.Top),
		X1:     math.Max(b.X1, other.X1),
		Bottom: math.Max(b.Bottom, other.Bottom),
	}
}

// Expand grows the box by d in every direction.
func (b BBox) Expand(d float64) BBox {
	return BBox{X0: b.X0 - d, Top: b.Top - d, X1: b.X1 + d, Bottom: b.Bottom + d}
}

// Point is a 2-D point.
type Point struct {
	X, Y float64
}

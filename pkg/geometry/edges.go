package geometry

import (
	"math"
	"sort"
)

// Orientation of a ruling edge.
type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

// Edge is a ruling segment used by table detection. Horizontal edges have
// Top == Bottom, vertical edges X0 == X1.
type Edge struct {
	X0          float64
	Top         float64
	X1          float64
	Bottom      float64
	Orientation Orientation
}

// HorizontalEdge builds a left-to-right horizontal edge at y.
func HorizontalEdge(x0, x1, y float64) Edge {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	return Edge{X0: x0, X1: x1, Top: y, Bottom: y, Orientation: Horizontal}
}

// VerticalEdge builds a top-to-bottom vertical edge at x.
func VerticalEdge(x, top, bottom float64) Edge {
	if top > bottom {
		top, bottom = bottom, top
	}
	return Edge{X0: x, X1: x, Top: top, Bottom: bottom, Orientation: Vertical}
}

// Length returns the edge length along its orientation.
func (e Edge) Length() float64 {
	if e.Orientation == Horizontal {
		return e.X1 - e.X0
	}
	return e.Bottom - e.Top
}

// FilterByLength drops edges shorter than minLength.
func FilterByLength(edges []Edge, minLength float64) []Edge {
	out := edges[:0:0]
	for _, e := range edges {
		if e.Length() >= minLength {
			out = append(out, e)
		}
	}
	return out
}

// SnapEdges aligns nearly-collinear edges onto shared positions. Edges whose
// primary coordinate falls within tol of each other are moved to the cluster
// mean, so that slightly misdrawn rulings meet exactly.
func SnapEdges(edges []Edge, tol float64) []Edge {
	if len(edges) == 0 {
		return edges
	}
	var hPos, vPos []float64
	for _, e := range edges {
		if e.Orientation == Horizontal {
			hPos = append(hPos, e.Top)
		} else {
			vPos = append(vPos, e.X0)
		}
	}
	hMeans := ClusterMeans(hPos, tol)
	vMeans := ClusterMeans(vPos, tol)

	out := make([]Edge, len(edges))
	for i, e := range edges {
		if e.Orientation == Horizontal {
			y := nearest(hMeans, e.Top)
			out[i] = HorizontalEdge(e.X0, e.X1, y)
		} else {
			x := nearest(vMeans, e.X0)
			out[i] = VerticalEdge(x, e.Top, e.Bottom)
		}
	}
	return out
}

func nearest(sorted []float64, v float64) float64 {
	i := sort.SearchFloat64s(sorted, v)
	if i == 0 {
		return sorted[0]
	}
	if i == len(sorted) {
		return sorted[len(sorted)-1]
	}
	if v-sorted[i-1] <= sorted[i]-v {
		return sorted[i-1]
	}
	return sorted[i]
}

// MergeEdges joins collinear edges that overlap or sit within joinTol of each
// other along their orientation.
func MergeEdges(edges []Edge, joinTol float64) []Edge {
	var horizontal, vertical []Edge
	for _, e := range edges {
		if e.Orientation == Horizontal {
			horizontal = append(horizontal, e)
		} else {
			vertical = append(vertical, e)
		}
	}

	sort.Slice(horizontal, func(i, j int) bool {
		if horizontal[i].Top != horizontal[j].Top {
			return horizontal[i].Top < horizontal[j].Top
		}
		return horizontal[i].X0 < horizontal[j].X0
	})
	sort.Slice(vertical, func(i, j int) bool {
		if vertical[i].X0 != vertical[j].X0 {
			return vertical[i].X0 < vertical[j].X0
		}
		return vertical[i].Top < vertical[j].Top
	})

	var out []Edge
	for i := 0; i < len(horizontal); {
		cur := horizontal[i]
		j := i + 1
		for j < len(horizontal) &&
			horizontal[j].Top == cur.Top &&
			horizontal[j].X0 <= cur.X1+joinTol {
			cur.X1 = math.Max(cur.X1, horizontal[j].X1)
			j++
		}
		out = append(out, cur)
		i = j
	}
	for i := 0; i < len(vertical); {
		cur := vertical[i]
		j := i + 1
		for j < len(vertical) &&
			vertical[j].X0 == cur.X0 &&
			vertical[j].Top <= cur.Bottom+joinTol {
			cur.Bottom = math.Max(cur.Bottom, vertical[j].Bottom)
			j++
		}
		out = append(out, cur)
		i = j
	}
	return out
}

// Intersection is a crossing point of a horizontal and a vertical edge.
type Intersection struct {
	Point      Point
	Horizontal Edge
	Vertical   Edge
}

// FindIntersections returns every point where a horizontal and a vertical
// edge cross, allowing their extents to miss the crossing by up to tol.
func FindIntersections(edges []Edge, tol float64) []Intersection {
	var horizontal, vertical []Edge
	for _, e := range edges {
		if e.Orientation == Horizontal {
			horizontal = append(horizontal, e)
		} else {
			vertical = append(vertical, e)
		}
	}

	var out []Intersection
	for _, h := range horizontal {
		for _, v := range vertical {
			if v.X0 >= h.X0-tol && v.X0 <= h.X1+tol &&
				h.Top >= v.Top-tol && h.Top <= v.Bottom+tol {
				out = append(out, Intersection{
					Point:      Point{X: v.X0, Y: h.Top},
					Horizontal: h,
					Vertical:   v,
				})
			}
		}
	}
	return out
}

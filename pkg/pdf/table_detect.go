package pdf

import (
	"math"
	"sort"

	"github.com/jackburrus/ripdoc/pkg/geometry"
)

// cell is one detected grid cell.
type cell struct {
	box geometry.BBox
}

// FindTables detects tables on the page and returns them sorted by position.
func (p *Page) FindTables(opts ...TableOption) []*Table {
	settings := DefaultTableSettings()
	for _, opt := range opts {
		opt(&settings)
	}

	isRuling := func(s Strategy) bool {
		return s == StrategyLines || s == StrategyLinesStrict
	}
	cells := p.detectCells(settings)
	if len(cells) == 0 && (isRuling(settings.VerticalStrategy) || isRuling(settings.HorizontalStrategy)) {
		// ruling detection found nothing; fall back to text alignment
		fallback := settings
		fallback.VerticalStrategy = StrategyText
		fallback.HorizontalStrategy = StrategyText
		cells = p.detectCells(fallback)
	}
	if len(cells) == 0 {
		return []*Table{}
	}

	groups := groupCells(cells, settings.IntersectionTolerance)
	tables := make([]*Table, 0, len(groups))
	for _, g := range groups {
		if t := p.buildTable(g, settings); t != nil {
			tables = append(tables, t)
		}
	}
	sort.Slice(tables, func(i, j int) bool {
		if tables[i].BBox.Top != tables[j].BBox.Top {
			return tables[i].BBox.Top < tables[j].BBox.Top
		}
		return tables[i].BBox.X0 < tables[j].BBox.X0
	})
	return tables
}

// detectCells runs the edge pipeline: collect, filter, snap, merge,
// intersect, synthesize cells.
func (p *Page) detectCells(settings TableSettings) []cell {
	edges := append(
		p.axisEdges(geometry.Vertical, settings.VerticalStrategy, settings),
		p.axisEdges(geometry.Horizontal, settings.HorizontalStrategy, settings)...,
	)
	edges = geometry.FilterByLength(edges, settings.EdgeMinLength)
	if len(edges) == 0 {
		return nil
	}
	edges = geometry.SnapEdges(edges, settings.SnapTolerance)
	edges = geometry.MergeEdges(edges, settings.JoinTolerance)

	crossings := geometry.FindIntersections(edges, settings.IntersectionTolerance)
	if len(crossings) == 0 {
		return nil
	}
	return synthesizeCells(crossings, settings.IntersectionTolerance)
}

// axisEdges collects candidate edges for one orientation.
func (p *Page) axisEdges(orient geometry.Orientation, strategy Strategy, settings TableSettings) []geometry.Edge {
	switch strategy {
	case StrategyText:
		return p.textEdges(orient, settings)
	case StrategyExplicit:
		return p.explicitEdges(orient, settings)
	default:
		candidates := p.Edges()
		if strategy == StrategyLinesStrict {
			candidates = p.lineEdges()
		}
		var out []geometry.Edge
		for _, e := range candidates {
			if e.Orientation == orient {
				out = append(out, e)
			}
		}
		return out
	}
}

// textEdges infers rulings from word alignment: x positions where at least
// MinWordsVertical words start or end, and y bands holding at least
// MinWordsHorizontal words.
func (p *Page) textEdges(orient geometry.Orientation, settings TableSettings) []geometry.Edge {
	words := p.ExtractWords(WithXTolerance(settings.TextTolerance), WithYTolerance(settings.TextTolerance))
	if len(words) == 0 {
		return nil
	}
	sortWordsReadingOrder(words)

	minTop, maxBottom := words[0].Top, words[0].Bottom
	minX, maxX := words[0].X0, words[0].X1
	for _, w := range words[1:] {
		minTop = math.Min(minTop, w.Top)
		maxBottom = math.Max(maxBottom, w.Bottom)
		minX = math.Min(minX, w.X0)
		maxX = math.Max(maxX, w.X1)
	}

	if orient == geometry.Vertical {
		var positions []float64
		for _, w := range words {
			positions = append(positions, w.X0, w.X1)
		}
		var out []geometry.Edge
		for _, cluster := range geometry.ClusterValues(positions, settings.SnapTolerance) {
			if len(cluster) < settings.MinWordsVertical {
				continue
			}
			mean := 0.0
			for _, v := range cluster {
				mean += v
			}
			mean /= float64(len(cluster))
			out = append(out, geometry.VerticalEdge(mean, minTop, maxBottom))
		}
		return out
	}

	var tops []float64
	for _, w := range words {
		tops = append(tops, w.Top)
	}
	var out []geometry.Edge
	for _, cluster := range geometry.ClusterValues(tops, settings.TextTolerance) {
		if len(cluster) < settings.MinWordsHorizontal {
			continue
		}
		out = append(out, geometry.HorizontalEdge(minX, maxX, cluster[0]))
	}
	// close the bottom of the last row
	out = append(out, geometry.HorizontalEdge(minX, maxX, maxBottom))
	return out
}

func (p *Page) explicitEdges(orient geometry.Orientation, settings TableSettings) []geometry.Edge {
	box := p.BBox()
	var out []geometry.Edge
	if orient == geometry.Vertical {
		for _, x := range settings.ExplicitVerticalLines {
			out = append(out, geometry.VerticalEdge(x, box.Top, box.Bottom))
		}
	} else {
		for _, y := range settings.ExplicitHorizontalLines {
			out = append(out, geometry.HorizontalEdge(box.X0, box.X1, y))
		}
	}
	return out
}

// synthesizeCells builds the smallest rectangles whose four corners are
// intersection points and whose top and bottom (or left and right) sides
// are covered by rulings.
func synthesizeCells(crossings []geometry.Intersection, tol float64) []cell {
	type key struct{ x, y float64 }
	points := make(map[key]geometry.Intersection, len(crossings))
	var xs, ys []float64
	for _, c := range crossings {
		k := key{round3(c.Point.X), round3(c.Point.Y)}
		if _, seen := points[k]; !seen {
			xs = append(xs, k.x)
			ys = append(ys, k.y)
		}
		points[k] = c
	}
	xs = dedupSorted(xs)
	ys = dedupSorted(ys)

	hasPoint := func(x, y float64) bool {
		_, ok := points[key{x, y}]
		return ok
	}
	hSpan := func(x0, x1, y float64) bool {
		a, aok := points[key{x0, y}]
		b, bok := points[key{x1, y}]
		if !aok || !bok {
			return false
		}
		return a.Horizontal.X0 <= x0+tol && a.Horizontal.X1 >= x1-tol &&
			b.Horizontal.X0 <= x0+tol && b.Horizontal.X1 >= x1-tol
	}
	vSpan := func(x, y0, y1 float64) bool {
		a, aok := points[key{x, y0}]
		b, bok := points[key{x, y1}]
		if !aok || !bok {
			return false
		}
		return a.Vertical.Top <= y0+tol && a.Vertical.Bottom >= y1-tol &&
			b.Vertical.Top <= y0+tol && b.Vertical.Bottom >= y1-tol
	}

	var cells []cell
	for yi, y0 := range ys {
		for xi, x0 := range xs {
			if !hasPoint(x0, y0) {
				continue
			}
			// smallest rectangle with all four corners present and a
			// covered edge pair; a candidate whose spans are broken keeps
			// the scan widening instead of abandoning the corner
			found := false
			for _, y1 := range ys[yi+1:] {
				for _, x1 := range xs[xi+1:] {
					if !hasPoint(x1, y0) || !hasPoint(x0, y1) || !hasPoint(x1, y1) {
						continue
					}
					horizontal := hSpan(x0, x1, y0) && hSpan(x0, x1, y1)
					vertical := vSpan(x0, y0, y1) && vSpan(x1, y0, y1)
					if horizontal || vertical {
						cells = append(cells, cell{box: geometry.BBox{X0: x0, Top: y0, X1: x1, Bottom: y1}})
						found = true
						break
					}
				}
				if found {
					break
				}
			}
		}
	}
	return cells
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

func dedupSorted(vals []float64) []float64 {
	sort.Float64s(vals)
	out := vals[:0]
	for i, v := range vals {
		if i == 0 || v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}

// groupCells unions cells that touch or overlap into table groups.
func groupCells(cells []cell, tol float64) [][]cell {
	parent := make([]int, len(cells))
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		if parent[i] != i {
			parent[i] = find(parent[i])
		}
		return parent[i]
	}
	union := func(a, b int) {
		ra, rb := find(a), find(b)
		if ra != rb {
			parent[ra] = rb
		}
	}

	for i := 0; i < len(cells); i++ {
		for j := i + 1; j < len(cells); j++ {
			if cells[i].box.Expand(tol).Intersects(cells[j].box) {
				union(i, j)
			}
		}
	}

	byRoot := make(map[int][]cell)
	for i, c := range cells {
		root := find(i)
		byRoot[root] = append(byRoot[root], c)
	}
	groups := make([][]cell, 0, len(byRoot))
	for _, g := range byRoot {
		groups = append(groups, g)
	}
	return groups
}

// buildTable lays a cell group out on its row and column boundaries and
// fills cell text from chars whose centers fall inside.
func (p *Page) buildTable(cells []cell, settings TableSettings) *Table {
	if len(cells) == 0 {
		return nil
	}
	var xs, ys []float64
	box := cells[0].box
	for _, c := range cells {
		xs = append(xs, round3(c.box.X0), round3(c.box.X1))
		ys = append(ys, round3(c.box.Top), round3(c.box.Bottom))
		box = box.Union(c.box)
	}
	xs = dedupSorted(xs)
	ys = dedupSorted(ys)
	rows, cols := len(ys)-1, len(xs)-1
	if rows < 1 || cols < 1 {
		return nil
	}

	colIndex := indexOf(xs)
	rowIndex := indexOf(ys)

	grid := make([][]*string, rows)
	for r := range grid {
		grid[r] = make([]*string, cols)
	}
	for _, c := range cells {
		r0, okR := rowIndex[round3(c.box.Top)]
		c0, okC := colIndex[round3(c.box.X0)]
		if !okR || !okC {
			continue
		}
		text := p.cellText(c.box, settings)
		grid[r0][c0] = &text
	}

	return &Table{
		BBox:  box,
		Cells: grid,
		page:  p,
	}
}

func indexOf(vals []float64) map[float64]int {
	m := make(map[float64]int, len(vals))
	for i, v := range vals {
		m[v] = i
	}
	return m
}

// cellText extracts the text of one cell: chars whose bbox center lies
// inside the cell, clustered into words and joined in reading order.
func (p *Page) cellText(box geometry.BBox, settings TableSettings) string {
	inside := p.Filter(func(c Char) bool {
		return box.ContainsPoint(c.BBox().CenterX(), c.BBox().CenterY())
	})
	return inside.extractTextPlain(
		newTextConfig([]TextOption{WithYTolerance(settings.TextTolerance)}),
		[]TextOption{WithXTolerance(settings.TextTolerance), WithYTolerance(settings.TextTolerance)},
	)
}

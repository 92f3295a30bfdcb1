package pdf

// Strategy selects how table edges are found along one axis.
type Strategy string

const (
	// StrategyLines derives edges from drawn rulings, including the four
	// borders of every painted rectangle.
	StrategyLines Strategy = "lines"
	// StrategyLinesStrict only accepts explicitly stroked lines; rect
	// borders do not count as rulings.
	StrategyLinesStrict Strategy = "lines_strict"
	// StrategyText infers edges from word alignment.
	StrategyText Strategy = "text"
	// StrategyExplicit uses caller-provided positions.
	StrategyExplicit Strategy = "explicit"
)

// TableSettings controls table detection.
type TableSettings struct {
	VerticalStrategy   Strategy
	HorizontalStrategy Strategy

	SnapTolerance         float64
	JoinTolerance         float64
	IntersectionTolerance float64
	TextTolerance         float64
	EdgeMinLength         float64

	// MinWordsVertical is how many rows must share an alignment before a
	// text-derived vertical edge is accepted.
	MinWordsVertical int
	// MinWordsHorizontal is the corresponding threshold for rows.
	MinWordsHorizontal int

	// ExplicitVerticalLines and ExplicitHorizontalLines feed the explicit
	// strategy with x and y positions.
	ExplicitVerticalLines   []float64
	ExplicitHorizontalLines []float64
}

// DefaultTableSettings returns the detection defaults: ruling-based on both
// axes with 3pt tolerances.
func DefaultTableSettings() TableSettings {
	return TableSettings{
		VerticalStrategy:      StrategyLines,
		HorizontalStrategy:    StrategyLines,
		SnapTolerance:         3.0,
		JoinTolerance:         3.0,
		IntersectionTolerance: 3.0,
		TextTolerance:         3.0,
		EdgeMinLength:         3.0,
		MinWordsVertical:      3,
		MinWordsHorizontal:    1,
	}
}

// TableOption mutates TableSettings.
type TableOption func(*TableSettings)

// WithVerticalStrategy selects the vertical edge source.
func WithVerticalStrategy(s Strategy) TableOption {
	return func(t *TableSettings) { t.VerticalStrategy = s }
}

// WithHorizontalStrategy selects the horizontal edge source.
func WithHorizontalStrategy(s Strategy) TableOption {
	return func(t *TableSettings) { t.HorizontalStrategy = s }
}

// WithSnapTolerance sets how far apart rulings may sit and still be snapped
// together.
func WithSnapTolerance(tol float64) TableOption {
	return func(t *TableSettings) { t.SnapTolerance = tol }
}

// WithJoinTolerance sets the gap across which collinear rulings merge.
func WithJoinTolerance(tol float64) TableOption {
	return func(t *TableSettings) { t.JoinTolerance = tol }
}

// WithIntersectionTolerance sets how closely rulings must cross.
func WithIntersectionTolerance(tol float64) TableOption {
	return func(t *TableSettings) { t.IntersectionTolerance = tol }
}

// WithTextTolerance sets the clustering tolerance of the text strategy.
func WithTextTolerance(tol float64) TableOption {
	return func(t *TableSettings) { t.TextTolerance = tol }
}

// WithEdgeMinLength drops rulings shorter than the given length.
func WithEdgeMinLength(l float64) TableOption {
	return func(t *TableSettings) { t.EdgeMinLength = l }
}

// WithMinWordsVertical sets the corroboration threshold for text-derived
// vertical edges.
func WithMinWordsVertical(n int) TableOption {
	return func(t *TableSettings) { t.MinWordsVertical = n }
}

// WithMinWordsHorizontal sets the corroboration threshold for text-derived
// horizontal edges.
func WithMinWordsHorizontal(n int) TableOption {
	return func(t *TableSettings) { t.MinWordsHorizontal = n }
}

// WithExplicitVerticalLines provides x positions for the explicit strategy.
func WithExplicitVerticalLines(xs []float64) TableOption {
	return func(t *TableSettings) { t.ExplicitVerticalLines = xs }
}

// WithExplicitHorizontalLines provides y positions for the explicit
// strategy.
func WithExplicitHorizontalLines(ys []float64) TableOption {
	return func(t *TableSettings) { t.ExplicitHorizontalLines = ys }
}

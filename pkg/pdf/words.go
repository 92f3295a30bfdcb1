package pdf

import (
	"math"
	"sort"
	"strings"
)

const (
	defaultXTolerance = 3.0
	defaultYTolerance = 3.0
	defaultXDensity   = 7.25
	defaultYDensity   = 13.0
)

// TextOption configures word and text extraction.
type TextOption func(*textConfig)

type textConfig struct {
	layout         bool
	xTolerance     float64
	yTolerance     float64
	xDensity       float64
	yDensity       float64
	keepBlankChars bool
}

func newTextConfig(opts []TextOption) textConfig {
	cfg := textConfig{
		xTolerance: defaultXTolerance,
		yTolerance: defaultYTolerance,
		xDensity:   defaultXDensity,
		yDensity:   defaultYDensity,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithLayout switches ExtractText to the monospaced-grid rendition.
func WithLayout(enabled bool) TextOption {
	return func(c *textConfig) { c.layout = enabled }
}

// WithXTolerance sets the maximum horizontal gap between chars of one word.
func WithXTolerance(tol float64) TextOption {
	return func(c *textConfig) { c.xTolerance = tol }
}

// WithYTolerance sets the vertical tolerance for grouping chars into lines.
func WithYTolerance(tol float64) TextOption {
	return func(c *textConfig) { c.yTolerance = tol }
}

// WithXDensity sets the points-per-column scale of layout mode.
func WithXDensity(d float64) TextOption {
	return func(c *textConfig) { c.xDensity = d }
}

// WithYDensity sets the points-per-row scale of layout mode.
func WithYDensity(d float64) TextOption {
	return func(c *textConfig) { c.yDensity = d }
}

// WithKeepBlankChars keeps space chars inside words instead of splitting on
// them.
func WithKeepBlankChars(keep bool) TextOption {
	return func(c *textConfig) { c.keepBlankChars = keep }
}

func sortChars(chars []Char) {
	sort.SliceStable(chars, func(i, j int) bool {
		if chars[i].Top != chars[j].Top {
			return chars[i].Top < chars[j].Top
		}
		return chars[i].X0 < chars[j].X0
	})
}

// ExtractWords clusters the page's chars into words. Chars belong to the
// same word while they sit on the same line within the y tolerance, the
// horizontal gap to the previous char stays within the x tolerance, and the
// font does not change. Whitespace terminates a word and is dropped unless
// keepBlankChars is set. The result is a pure function of the primitives
// and the tolerances.
func (p *Page) ExtractWords(opts ...TextOption) []Word {
	cfg := newTextConfig(opts)
	words := []Word{}
	for _, line := range p.charLines(cfg.yTolerance) {
		sort.SliceStable(line, func(i, j int) bool { return line[i].X0 < line[j].X0 })

		var current []Char
		flush := func() {
			if len(current) > 0 {
				words = append(words, buildWord(current))
				current = nil
			}
		}
		for _, c := range line {
			if isBlankChar(c) && !cfg.keepBlankChars {
				flush()
				continue
			}
			if len(current) > 0 {
				prev := current[len(current)-1]
				gap := c.X0 - prev.X1
				if gap > cfg.xTolerance || breaksFont(prev, c) {
					flush()
				}
			}
			current = append(current, c)
		}
		flush()
	}
	return words
}

func isBlankChar(c Char) bool {
	return strings.TrimSpace(c.Text) == ""
}

// breaksFont reports a change of face or a size jump large enough to start
// a new word.
func breaksFont(a, b Char) bool {
	return a.Fontname != b.Fontname || math.Abs(a.Size-b.Size) > 0.5
}

func buildWord(chars []Char) Word {
	w := Word{
		Text:     "",
		X0:       chars[0].X0,
		X1:       chars[0].X1,
		Top:      chars[0].Top,
		Bottom:   chars[0].Bottom,
		Doctop:   chars[0].Doctop,
		Upright:  chars[0].Upright,
		Fontname: chars[0].Fontname,
		Size:     chars[0].Size,
		Chars:    chars,
	}
	var sb strings.Builder
	for _, c := range chars {
		sb.WriteString(c.Text)
		w.X0 = math.Min(w.X0, c.X0)
		w.X1 = math.Max(w.X1, c.X1)
		w.Top = math.Min(w.Top, c.Top)
		w.Bottom = math.Max(w.Bottom, c.Bottom)
		w.Doctop = math.Min(w.Doctop, c.Doctop)
	}
	w.Text = sb.String()
	return w
}

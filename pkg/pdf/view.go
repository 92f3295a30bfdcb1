package pdf

import (
	"strings"

	"github.com/jackburrus/ripdoc/pkg/geometry"
)

// Crop returns an independent view limited to box. Chars are kept when at
// least half of their area lies inside; lines and rects are clipped to the
// intersection. The parent page is never modified.
func (p *Page) Crop(box geometry.BBox) *Page {
	st := p.store()
	var out primitives
	out.fault = st.fault

	for _, c := range st.chars {
		inter, ok := c.BBox().Intersection(box)
		if !ok {
			continue
		}
		area := c.BBox().Area()
		if area <= 0 || inter.Area() >= area/2 {
			out.chars = append(out.chars, c)
		}
	}
	for _, l := range st.lines {
		inter, ok := l.BBox().Intersection(box)
		if !ok {
			continue
		}
		clipped := l
		clipped.X0, clipped.Top = inter.X0, inter.Top
		clipped.X1, clipped.Bottom = inter.X1, inter.Bottom
		clipped.Doctop = p.doctop + inter.Top
		out.lines = append(out.lines, clipped)
	}
	for _, r := range st.rects {
		inter, ok := r.BBox().Intersection(box)
		if !ok {
			continue
		}
		clipped := r
		clipped.X0, clipped.Top = inter.X0, inter.Top
		clipped.X1, clipped.Bottom = inter.X1, inter.Bottom
		clipped.Doctop = p.doctop + inter.Top
		out.rects = append(out.rects, clipped)
	}
	for _, c := range st.curves {
		if c.BBox().Intersects(box) {
			out.curves = append(out.curves, c)
		}
	}
	return p.derived(out, box)
}

// WithinBBox is Crop under its pdfplumber-compatible name.
func (p *Page) WithinBBox(box geometry.BBox) *Page {
	return p.Crop(box)
}

// Filter returns a view keeping only the chars the predicate accepts.
// Non-char primitives are carried through unchanged.
func (p *Page) Filter(keep func(Char) bool) *Page {
	st := p.store()
	var out primitives
	out.fault = st.fault
	for _, c := range st.chars {
		if keep(c) {
			out.chars = append(out.chars, c)
		}
	}
	out.lines = append(out.lines, st.lines...)
	out.rects = append(out.rects, st.rects...)
	out.curves = append(out.curves, st.curves...)
	return p.derived(out, p.BBox())
}

// SearchOption configures Search.
type SearchOption func(*searchConfig)

type searchConfig struct {
	ignoreCase bool
}

// WithIgnoreCase makes Search match case-insensitively.
func WithIgnoreCase() SearchOption {
	return func(c *searchConfig) { c.ignoreCase = true }
}

// Search finds non-overlapping literal occurrences of query in the page's
// reading-order text. Matches never cross line boundaries. The bounding box
// of a match is the union of its chars' boxes. An empty query or a query
// absent from the page yields an empty slice.
func (p *Page) Search(query string, opts ...SearchOption) []Match {
	var cfg searchConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if query == "" {
		return []Match{}
	}

	needle := query
	if cfg.ignoreCase {
		needle = strings.ToLower(needle)
	}

	matches := []Match{}
	for _, lineChars := range p.charLines(defaultYTolerance) {
		var sb strings.Builder
		// spans maps byte offsets in the built string to char indexes. Case
		// folding happens per char here, before offsets are recorded, since
		// folding can change a char's byte length.
		var spans []int
		for i, c := range lineChars {
			text := c.Text
			if cfg.ignoreCase {
				text = strings.ToLower(text)
			}
			for range []byte(text) {
				spans = append(spans, i)
			}
			sb.WriteString(text)
		}
		haystack := sb.String()

		from := 0
		for {
			idx := strings.Index(haystack[from:], needle)
			if idx < 0 {
				break
			}
			start := from + idx
			end := start + len(needle)
			first := lineChars[spans[start]]
			box := first.BBox()
			var text strings.Builder
			last := -1
			for b := start; b < end && b < len(spans); b++ {
				ci := spans[b]
				if ci == last {
					continue
				}
				last = ci
				box = box.Union(lineChars[ci].BBox())
				text.WriteString(lineChars[ci].Text)
			}
			matches = append(matches, Match{
				Text:       text.String(),
				BBox:       box,
				PageNumber: p.Number,
			})
			from = end
		}
	}
	return matches
}

// charLines groups chars into reading-order lines by top position.
func (p *Page) charLines(yTol float64) [][]Char {
	chars := p.Chars()
	if len(chars) == 0 {
		return nil
	}
	sorted := make([]Char, len(chars))
	copy(sorted, chars)
	sortChars(sorted)

	var lines [][]Char
	current := []Char{sorted[0]}
	for _, c := range sorted[1:] {
		if c.Top-current[len(current)-1].Top <= yTol {
			current = append(current, c)
		} else {
			lines = append(lines, current)
			current = []Char{c}
		}
	}
	lines = append(lines, current)
	return lines
}

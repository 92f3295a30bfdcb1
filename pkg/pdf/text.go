package pdf

import (
	"math"
	"sort"
	"strings"

	"github.com/mattn/go-runewidth"
)

// ExtractText renders the page's text. The default rendition joins words
// with single spaces and lines with newlines. WithLayout(true) instead
// places chars on a monospaced grid that mirrors their positions on the
// page.
func (p *Page) ExtractText(opts ...TextOption) string {
	cfg := newTextConfig(opts)
	if cfg.layout {
		return p.extractTextLayout(cfg)
	}
	return p.extractTextPlain(cfg, opts)
}

func (p *Page) extractTextPlain(cfg textConfig, opts []TextOption) string {
	words := p.ExtractWords(opts...)
	if len(words) == 0 {
		return ""
	}

	var lines []string
	for _, block := range orderBlocks(words) {
		sortWordsReadingOrder(block)
		var current []Word
		flush := func() {
			if len(current) == 0 {
				return
			}
			parts := make([]string, len(current))
			for i, w := range current {
				parts[i] = w.Text
			}
			lines = append(lines, strings.TrimRight(strings.Join(parts, " "), " "))
			current = nil
		}
		for _, w := range block {
			if len(current) > 0 && w.Top-current[len(current)-1].Top > cfg.yTolerance {
				flush()
			}
			current = append(current, w)
		}
		flush()
	}
	return strings.Join(lines, "\n")
}

// blockGapThreshold is the width of the whitespace band that separates
// layout blocks: columns standing side by side, or sections stacked with a
// large vertical gap.
const blockGapThreshold = 10.0

// orderBlocks applies recursive XY cuts to the words: split on horizontal
// whitespace bands first, then on vertical gaps separating columns, until no
// cut remains. Blocks come back in reading order, so a two-column page reads
// left column top to bottom before the right one.
func orderBlocks(words []Word) [][]Word {
	if len(words) == 0 {
		return nil
	}
	for _, vertical := range []bool{false, true} {
		groups := cutWords(words, vertical)
		if len(groups) < 2 {
			continue
		}
		var out [][]Word
		for _, g := range groups {
			out = append(out, orderBlocks(g)...)
		}
		return out
	}
	return [][]Word{words}
}

// cutWords splits words at gaps of at least blockGapThreshold in their
// projection onto one axis: y by default, x when vertical.
func cutWords(words []Word, vertical bool) [][]Word {
	start := func(w Word) float64 {
		if vertical {
			return w.X0
		}
		return w.Top
	}
	end := func(w Word) float64 {
		if vertical {
			return w.X1
		}
		return w.Bottom
	}

	sorted := make([]Word, len(words))
	copy(sorted, words)
	sort.SliceStable(sorted, func(i, j int) bool { return start(sorted[i]) < start(sorted[j]) })

	var groups [][]Word
	current := []Word{sorted[0]}
	reach := end(sorted[0])
	for _, w := range sorted[1:] {
		if start(w)-reach >= blockGapThreshold {
			groups = append(groups, current)
			current = nil
		}
		current = append(current, w)
		reach = math.Max(reach, end(w))
	}
	return append(groups, current)
}

// extractTextLayout paints chars onto a rune grid scaled by the densities.
// When two chars land on the same cell the earlier-painted one stays. Wide
// runes occupy two cells.
func (p *Page) extractTextLayout(cfg textConfig) string {
	chars := p.Chars()
	if len(chars) == 0 {
		return ""
	}

	box := p.BBox()
	cols := int(math.Ceil(box.Width()/cfg.xDensity)) + 1
	if cols < 1 {
		cols = 1
	}

	// group chars into rows by top position, preserving paint order inside
	// a row
	rows := make(map[int][]Char)
	maxRow := 0
	for _, c := range chars {
		row := int(math.Round((c.Top - box.Top) / cfg.yDensity))
		if row < 0 {
			row = 0
		}
		rows[row] = append(rows[row], c)
		if row > maxRow {
			maxRow = row
		}
	}

	grid := make([][]rune, maxRow+1)
	for i := range grid {
		grid[i] = make([]rune, cols)
	}

	for row := 0; row <= maxRow; row++ {
		for _, c := range rows[row] {
			col := int(math.Round((c.X0 - box.X0) / cfg.xDensity))
			if col < 0 {
				col = 0
			}
			for _, r := range c.Text {
				if col >= cols {
					break
				}
				if grid[row][col] == 0 {
					grid[row][col] = r
					if runewidth.RuneWidth(r) > 1 && col+1 < cols && grid[row][col+1] == 0 {
						grid[row][col+1] = -1 // continuation cell of a wide rune
					}
				}
				col += runewidth.RuneWidth(r)
			}
		}
	}

	var out []string
	for _, rowRunes := range grid {
		var sb strings.Builder
		for _, r := range rowRunes {
			switch r {
			case 0:
				sb.WriteRune(' ')
			case -1:
				// covered by the preceding wide rune
			default:
				sb.WriteRune(r)
			}
		}
		out = append(out, strings.TrimRight(sb.String(), " "))
	}
	// drop trailing blank lines
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return strings.Join(out, "\n")
}

// sortWordsReadingOrder orders words top-to-bottom then left-to-right.
func sortWordsReadingOrder(words []Word) {
	sort.SliceStable(words, func(i, j int) bool {
		if words[i].Top != words[j].Top {
			return words[i].Top < words[j].Top
		}
		return words[i].X0 < words[j].X0
	})
}

package pdf

import (
	"testing"

	"github.com/jackburrus/ripdoc/pkg/geometry"
)

func TestCropHalfAreaRule(t *testing.T) {
	inside := mkChar("a", 10, 10, 6)    // fully inside
	straddle := mkChar("b", 47, 10, 6)  // more than half inside
	mostlyOut := mkChar("c", 49, 10, 6) // less than half inside
	outside := mkChar("d", 80, 10, 6)
	p := pageWith(primitives{chars: []Char{inside, straddle, mostlyOut, outside}})

	crop := p.Crop(geometry.BBox{X0: 0, Top: 0, X1: 51, Bottom: 50})
	got := crop.Chars()
	if len(got) != 2 {
		t.Fatalf("got %d chars, want 2", len(got))
	}
	if got[0].Text != "a" || got[1].Text != "b" {
		t.Errorf("kept %q and %q", got[0].Text, got[1].Text)
	}
}

func TestCropClipsRulings(t *testing.T) {
	p := pageWith(primitives{
		lines: []Line{{X0: 0, Top: 20, X1: 100, Bottom: 20}},
		rects: []Rect{{X0: 10, Top: 10, X1: 90, Bottom: 60}},
	})
	crop := p.Crop(geometry.BBox{X0: 30, Top: 0, X1: 70, Bottom: 40})

	lines := crop.Lines()
	if len(lines) != 1 || lines[0].X0 != 30 || lines[0].X1 != 70 {
		t.Errorf("line not clipped: %+v", lines)
	}
	rects := crop.Rects()
	if len(rects) != 1 {
		t.Fatalf("rect dropped")
	}
	r := rects[0]
	if r.X0 != 30 || r.X1 != 70 || r.Top != 10 || r.Bottom != 40 {
		t.Errorf("rect not clipped to intersection: %+v", r)
	}
}

func TestCropDoesNotAliasParent(t *testing.T) {
	p := pageWith(primitives{chars: lineOfChars("abc", 10, 10, 6)})
	before := len(p.Chars())
	crop := p.Crop(geometry.BBox{X0: 0, Top: 0, X1: 12, Bottom: 30})
	if len(p.Chars()) != before {
		t.Error("crop mutated the parent page")
	}
	if len(crop.Chars()) >= before {
		t.Error("crop kept everything")
	}
	if crop.BBox() == p.BBox() {
		t.Error("crop bbox not narrowed")
	}
}

func TestWithinBBoxMatchesCrop(t *testing.T) {
	p := pageWith(primitives{chars: lineOfChars("abc", 10, 10, 6)})
	box := geometry.BBox{X0: 0, Top: 0, X1: 14, Bottom: 30}
	a := p.Crop(box).ExtractText()
	b := p.WithinBBox(box).ExtractText()
	if a != b {
		t.Errorf("Crop %q != WithinBBox %q", a, b)
	}
}

func TestFilterChars(t *testing.T) {
	chars := lineOfChars("ab", 10, 10, 6)
	bold := mkChar("c", 30, 10, 6)
	bold.Fontname = "Helvetica-Bold"
	p := pageWith(primitives{chars: append(chars, bold)})

	onlyBold := p.Filter(func(c Char) bool { return c.Fontname == "Helvetica-Bold" })
	if got := onlyBold.ExtractText(); got != "c" {
		t.Errorf("filtered text = %q, want c", got)
	}
}

func TestSearchLiteral(t *testing.T) {
	p := pageWith(primitives{chars: lineOfChars("the cat sat on the mat", 10, 10, 6)})

	matches := p.Search("the")
	if len(matches) != 2 {
		t.Fatalf("got %d matches, want 2", len(matches))
	}
	first := matches[0]
	if first.Text != "the" || first.PageNumber != 1 {
		t.Errorf("match = %+v", first)
	}
	if first.BBox.X0 != 10 || first.BBox.X1 != 28 {
		t.Errorf("match bbox x = %v..%v, want 10..28", first.BBox.X0, first.BBox.X1)
	}
	if matches[1].BBox.X0 <= first.BBox.X0 {
		t.Error("matches not in reading order")
	}
}

func TestSearchCaseSensitivity(t *testing.T) {
	p := pageWith(primitives{chars: lineOfChars("Hello HELLO hello", 10, 10, 6)})

	if got := len(p.Search("hello")); got != 1 {
		t.Errorf("case-sensitive search found %d, want 1", got)
	}
	if got := len(p.Search("hello", WithIgnoreCase())); got != 3 {
		t.Errorf("case-insensitive search found %d, want 3", got)
	}
}

func TestSearchNonOverlapping(t *testing.T) {
	p := pageWith(primitives{chars: lineOfChars("aaaa", 10, 10, 6)})
	if got := len(p.Search("aa")); got != 2 {
		t.Errorf("got %d matches, want 2 non-overlapping", got)
	}
}

func TestSearchMisses(t *testing.T) {
	p := pageWith(primitives{chars: lineOfChars("nothing here", 10, 10, 6)})
	if got := p.Search("absent"); got == nil || len(got) != 0 {
		t.Errorf("miss should be an empty slice, got %v", got)
	}
	if got := p.Search(""); got == nil || len(got) != 0 {
		t.Errorf("empty query should be an empty slice, got %v", got)
	}
}

func TestSearchFoldedGrowingWidths(t *testing.T) {
	// Ⱥ lowercases to ⱥ, which is a byte longer in UTF-8; offsets into the
	// folded haystack must still land on the right chars
	p := pageWith(primitives{chars: lineOfChars("ȺȺȺa", 10, 10, 6)})
	matches := p.Search("a", WithIgnoreCase())
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(matches))
	}
	m := matches[0]
	if m.Text != "a" {
		t.Errorf("matched %q, want a", m.Text)
	}
	if m.BBox.X0 != 28 || m.BBox.X1 != 34 {
		t.Errorf("match bbox x = %v..%v, want 28..34", m.BBox.X0, m.BBox.X1)
	}
}

func TestSearchFoldedShrinkingWidths(t *testing.T) {
	// İ lowercases to plain i, a byte shorter
	p := pageWith(primitives{chars: lineOfChars("İİİa", 10, 10, 6)})

	matches := p.Search("a", WithIgnoreCase())
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(matches))
	}
	if m := matches[0]; m.Text != "a" || m.BBox.X0 != 28 {
		t.Errorf("match = %q at x0=%v, want a at 28", m.Text, m.BBox.X0)
	}

	dots := p.Search("i", WithIgnoreCase())
	if len(dots) != 3 {
		t.Fatalf("got %d matches for i, want 3", len(dots))
	}
	if dots[0].Text != "İ" || dots[0].BBox.X0 != 10 {
		t.Errorf("first match = %q at x0=%v, want İ at 10", dots[0].Text, dots[0].BBox.X0)
	}
}

func TestSearchStaysWithinLine(t *testing.T) {
	chars := append(lineOfChars("ab", 10, 10, 6), lineOfChars("cd", 10, 40, 6)...)
	p := pageWith(primitives{chars: chars})
	if got := len(p.Search("bc")); got != 0 {
		t.Errorf("match crossed a line boundary: %d", got)
	}
}

package pdf

import (
	"strings"
	"testing"
)

func TestExtractTextPlain(t *testing.T) {
	chars := append(lineOfChars("Hello world", 10, 100, 6),
		lineOfChars("second line", 10, 120, 6)...)
	p := pageWith(primitives{chars: chars})

	got := p.ExtractText()
	want := "Hello world\nsecond line"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestExtractTextTwoColumns(t *testing.T) {
	// side-by-side columns read column by column, not interleaved by band
	var chars []Char
	chars = append(chars, lineOfChars("one", 10, 10, 6)...)
	chars = append(chars, lineOfChars("two", 10, 25, 6)...)
	chars = append(chars, lineOfChars("three", 200, 10, 6)...)
	chars = append(chars, lineOfChars("four", 200, 25, 6)...)
	p := pageWith(primitives{chars: chars})

	got := p.ExtractText()
	want := "one\ntwo\nthree\nfour"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestExtractTextEmptyPage(t *testing.T) {
	p := pageWith(primitives{})
	if got := p.ExtractText(); got != "" {
		t.Errorf("empty page produced %q", got)
	}
}

func TestExtractTextLayoutPositions(t *testing.T) {
	// two columns roughly 145pt apart: 20 grid cells at the default
	// density
	chars := append(lineOfChars("left", 0, 0, 7.25), lineOfChars("right", 145, 0, 7.25)...)
	p := pageWith(primitives{chars: chars})

	got := p.ExtractText(WithLayout(true))
	if !strings.HasPrefix(got, "left") {
		t.Errorf("line start = %q", got)
	}
	idx := strings.Index(got, "right")
	if idx != 20 {
		t.Errorf("right column at index %d, want 20: %q", idx, got)
	}
}

func TestExtractTextLayoutRows(t *testing.T) {
	chars := append(lineOfChars("top", 0, 0, 7.25), lineOfChars("bottom", 0, 39, 7.25)...)
	p := pageWith(primitives{chars: chars})

	lines := strings.Split(p.ExtractText(WithLayout(true)), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4 (two blank between): %q", len(lines), lines)
	}
	if lines[0] != "top" || lines[3] != "bottom" {
		t.Errorf("rows wrong: %q", lines)
	}
	if lines[1] != "" || lines[2] != "" {
		t.Errorf("gap rows not blank: %q", lines)
	}
}

func TestExtractTextLayoutEarliestCharWins(t *testing.T) {
	first := mkChar("A", 0, 0, 6)
	second := mkChar("B", 1, 0, 6) // same grid cell as A
	p := pageWith(primitives{chars: []Char{first, second}})

	got := p.ExtractText(WithLayout(true))
	if got != "A" {
		t.Errorf("got %q, want the earlier-painted A to win", got)
	}
}

func TestExtractTextLayoutTrimsTrailing(t *testing.T) {
	p := pageWith(primitives{chars: lineOfChars("x", 0, 0, 6)})
	got := p.ExtractText(WithLayout(true))
	if got != "x" {
		t.Errorf("got %q, want no trailing whitespace or blank lines", got)
	}
}

func TestExtractTextLayoutWideRunes(t *testing.T) {
	chars := []Char{mkChar("漢", 0, 0, 12), mkChar("A", 14.5, 0, 6)}
	p := pageWith(primitives{chars: chars})

	got := p.ExtractText(WithLayout(true))
	// the wide rune covers two cells, so A lands at cell 2 with no gap
	if got != "漢A" {
		t.Errorf("got %q, want \"漢A\"", got)
	}
}

func TestExtractTextCustomDensity(t *testing.T) {
	chars := append(lineOfChars("a", 0, 0, 6), lineOfChars("b", 29, 0, 6)...)
	p := pageWith(primitives{chars: chars})

	got := p.ExtractText(WithLayout(true), WithXDensity(14.5))
	if got != "a b" {
		t.Errorf("got %q, want \"a b\" at half resolution", got)
	}
}

func TestExtractAllTextOrdering(t *testing.T) {
	d := &Document{pages: []*Page{
		pageWith(primitives{chars: lineOfChars("one", 10, 10, 6)}),
		pageWith(primitives{chars: lineOfChars("two", 10, 10, 6)}),
		pageWith(primitives{chars: lineOfChars("three", 10, 10, 6)}),
	}}
	texts, err := d.ExtractAllText(4)
	if err != nil {
		t.Fatalf("ExtractAllText: %v", err)
	}
	if len(texts) != 3 || texts[0] != "one" || texts[1] != "two" || texts[2] != "three" {
		t.Errorf("texts out of order: %q", texts)
	}
}

package pdf

import (
	"reflect"
	"testing"

	"github.com/jackburrus/ripdoc/pkg/geometry"
)

// pageWith builds a standalone page over fixed primitives.
func pageWith(prims primitives) *Page {
	box := geometry.BBox{X1: 612, Bottom: 792}
	return &Page{
		Number:  1,
		Width:   612,
		Height:  792,
		fixed:   &prims,
		cropBox: &box,
	}
}

// mkChar places a glyph at (x0, top) with the given width, 10pt tall.
func mkChar(text string, x0, top, width float64) Char {
	return Char{
		Text:     text,
		Fontname: "Helvetica",
		Size:     10,
		X0:       x0,
		X1:       x0 + width,
		Top:      top,
		Bottom:   top + 10,
		Doctop:   top,
		Width:    width,
		Height:   10,
		Upright:  true,
	}
}

// lineOfChars lays out the runes of s left to right starting at (x0, top).
func lineOfChars(s string, x0, top, width float64) []Char {
	var chars []Char
	x := x0
	for _, r := range s {
		chars = append(chars, mkChar(string(r), x, top, width))
		x += width
	}
	return chars
}

func wordTexts(words []Word) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = w.Text
	}
	return out
}

func TestExtractWordsBasic(t *testing.T) {
	p := pageWith(primitives{chars: lineOfChars("Hello world", 10, 100, 6)})
	words := p.ExtractWords()
	if got := wordTexts(words); !reflect.DeepEqual(got, []string{"Hello", "world"}) {
		t.Errorf("words = %v", got)
	}

	w := words[0]
	if w.X0 != 10 || w.X1 != 40 {
		t.Errorf("word bbox x = %v..%v, want 10..40", w.X0, w.X1)
	}
	if w.Top != 100 || w.Bottom != 110 {
		t.Errorf("word bbox y = %v..%v, want 100..110", w.Top, w.Bottom)
	}
}

func TestExtractWordsGapSplits(t *testing.T) {
	chars := append(lineOfChars("ab", 10, 100, 6), lineOfChars("cd", 40, 100, 6)...)
	p := pageWith(primitives{chars: chars})

	got := wordTexts(p.ExtractWords())
	if !reflect.DeepEqual(got, []string{"ab", "cd"}) {
		t.Errorf("gap over tolerance did not split: %v", got)
	}

	// widen the tolerance and the gap closes
	got = wordTexts(p.ExtractWords(WithXTolerance(20)))
	if !reflect.DeepEqual(got, []string{"abcd"}) {
		t.Errorf("widened tolerance: %v", got)
	}
}

func TestExtractWordsLineGrouping(t *testing.T) {
	chars := append(lineOfChars("up", 10, 100, 6), lineOfChars("down", 10, 120, 6)...)
	p := pageWith(primitives{chars: chars})
	got := wordTexts(p.ExtractWords())
	if !reflect.DeepEqual(got, []string{"up", "down"}) {
		t.Errorf("lines merged: %v", got)
	}

	// slight vertical jitter within tolerance stays one line
	jitter := lineOfChars("a", 10, 100, 6)
	jitter = append(jitter, mkChar("b", 16, 101.5, 6))
	p = pageWith(primitives{chars: jitter})
	got = wordTexts(p.ExtractWords())
	if !reflect.DeepEqual(got, []string{"ab"}) {
		t.Errorf("jitter split the word: %v", got)
	}
}

func TestExtractWordsFontChangeSplits(t *testing.T) {
	chars := lineOfChars("ab", 10, 100, 6)
	bold := mkChar("c", 22, 100, 6)
	bold.Fontname = "Helvetica-Bold"
	chars = append(chars, bold)
	p := pageWith(primitives{chars: chars})

	got := wordTexts(p.ExtractWords())
	if !reflect.DeepEqual(got, []string{"ab", "c"}) {
		t.Errorf("font change did not split: %v", got)
	}
}

func TestExtractWordsSizeJumpSplits(t *testing.T) {
	chars := lineOfChars("ab", 10, 100, 6)
	big := mkChar("c", 22, 100, 6)
	big.Size = 14
	chars = append(chars, big)
	p := pageWith(primitives{chars: chars})

	got := wordTexts(p.ExtractWords())
	if !reflect.DeepEqual(got, []string{"ab", "c"}) {
		t.Errorf("size jump did not split: %v", got)
	}
}

func TestExtractWordsKeepBlankChars(t *testing.T) {
	p := pageWith(primitives{chars: lineOfChars("a b", 10, 100, 6)})
	got := wordTexts(p.ExtractWords(WithKeepBlankChars(true)))
	if !reflect.DeepEqual(got, []string{"a b"}) {
		t.Errorf("blank chars dropped: %v", got)
	}
}

func TestExtractWordsIdempotent(t *testing.T) {
	p := pageWith(primitives{chars: lineOfChars("same thing twice", 10, 100, 6)})
	first := p.ExtractWords()
	second := p.ExtractWords()
	if !reflect.DeepEqual(first, second) {
		t.Error("repeated extraction differs")
	}
}

func TestExtractWordsEmptyPage(t *testing.T) {
	p := pageWith(primitives{})
	if words := p.ExtractWords(); len(words) != 0 {
		t.Errorf("empty page produced %d words", len(words))
	}
}

func BenchmarkExtractWords(b *testing.B) {
	var chars []Char
	for row := 0; row < 40; row++ {
		chars = append(chars, lineOfChars("lorem ipsum dolor sit amet consectetur", 20, float64(40+row*15), 6)...)
	}
	p := pageWith(primitives{chars: chars})
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p.ExtractWords()
	}
}

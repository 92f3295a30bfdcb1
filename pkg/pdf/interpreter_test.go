package pdf

import (
	"math"
	"strings"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// runContent interprets a content stream against an empty resource set, so
// text falls back to the built-in Helvetica metrics.
func runContent(src string, pageHeight float64) primitives {
	in := newInterpreter(nil, 1, pageHeight, 0, nil)
	return in.run([]byte(src))
}

func almost(a, b float64) bool {
	return math.Abs(a-b) < 0.01
}

func TestInterpreterSimpleText(t *testing.T) {
	prims := runContent("BT /F1 10 Tf 10 80 Td (AB) Tj ET", 100)
	if len(prims.chars) != 2 {
		t.Fatalf("got %d chars, want 2", len(prims.chars))
	}

	a := prims.chars[0]
	if a.Text != "A" {
		t.Errorf("text = %q, want A", a.Text)
	}
	if !almost(a.X0, 10) {
		t.Errorf("x0 = %v, want 10", a.X0)
	}
	// Helvetica A is 667/1000 at 10pt
	if !almost(a.X1, 16.67) {
		t.Errorf("x1 = %v, want 16.67", a.X1)
	}
	// baseline at y=80 on a 100pt page, 10pt glyph
	if !almost(a.Top, 10) || !almost(a.Bottom, 20) {
		t.Errorf("top/bottom = %v/%v, want 10/20", a.Top, a.Bottom)
	}
	if a.Size != 10 || !a.Upright {
		t.Errorf("size=%v upright=%v", a.Size, a.Upright)
	}
	if a.Fontname != "Helvetica" {
		t.Errorf("fontname = %q", a.Fontname)
	}

	b := prims.chars[1]
	if !almost(b.X0, 16.67) {
		t.Errorf("second char x0 = %v, want 16.67", b.X0)
	}
}

func TestInterpreterTJAdjustment(t *testing.T) {
	prims := runContent("BT /F1 10 Tf 0 0 Td [(A) -500 (B)] TJ ET", 100)
	if len(prims.chars) != 2 {
		t.Fatalf("got %d chars, want 2", len(prims.chars))
	}
	// -500 thousandths at 10pt pushes B 5pt further right
	wantX := 6.67 + 5
	if !almost(prims.chars[1].X0, wantX) {
		t.Errorf("B x0 = %v, want %v", prims.chars[1].X0, wantX)
	}
}

func TestInterpreterCharAndWordSpacing(t *testing.T) {
	prims := runContent("BT /F1 10 Tf 2 Tc 4 Tw 0 0 Td (a b) Tj ET", 100)
	if len(prims.chars) != 3 {
		t.Fatalf("got %d chars, want 3", len(prims.chars))
	}
	// a: 556/1000*10 + Tc 2 = 7.56
	if !almost(prims.chars[1].X0, 7.56) {
		t.Errorf("space x0 = %v, want 7.56", prims.chars[1].X0)
	}
	// space: 278/1000*10 + Tc 2 + Tw 4 = 8.78
	if !almost(prims.chars[2].X0, 7.56+8.78) {
		t.Errorf("b x0 = %v, want %v", prims.chars[2].X0, 7.56+8.78)
	}
}

func TestInterpreterHorizontalScaling(t *testing.T) {
	prims := runContent("BT /F1 10 Tf 200 Tz 0 0 Td (AA) Tj ET", 100)
	if len(prims.chars) != 2 {
		t.Fatalf("got %d chars, want 2", len(prims.chars))
	}
	if !almost(prims.chars[1].X0, 13.34) {
		t.Errorf("scaled advance: second x0 = %v, want 13.34", prims.chars[1].X0)
	}
}

func TestInterpreterRotatedTextNotUpright(t *testing.T) {
	prims := runContent("BT /F1 10 Tf 0 1 -1 0 50 50 Tm (A) Tj ET", 100)
	if len(prims.chars) != 1 {
		t.Fatalf("got %d chars, want 1", len(prims.chars))
	}
	c := prims.chars[0]
	if c.Upright {
		t.Error("rotated char reported upright")
	}
	if !almost(c.Size, 10) {
		t.Errorf("rotated effective size = %v, want 10", c.Size)
	}
}

func TestInterpreterTextLeading(t *testing.T) {
	prims := runContent("BT /F1 10 Tf 14 TL 0 80 Td (A) Tj T* (B) Tj ET", 100)
	if len(prims.chars) != 2 {
		t.Fatalf("got %d chars, want 2", len(prims.chars))
	}
	if !almost(prims.chars[1].Top-prims.chars[0].Top, 14) {
		t.Errorf("leading moved %v, want 14", prims.chars[1].Top-prims.chars[0].Top)
	}
	if !almost(prims.chars[1].X0, 0) {
		t.Errorf("T* reset x to %v, want 0", prims.chars[1].X0)
	}
}

func TestInterpreterRect(t *testing.T) {
	prims := runContent("10 20 30 40 re f", 100)
	if len(prims.rects) != 1 {
		t.Fatalf("got %d rects, want 1", len(prims.rects))
	}
	r := prims.rects[0]
	if r.X0 != 10 || r.X1 != 40 {
		t.Errorf("x0/x1 = %v/%v, want 10/40", r.X0, r.X1)
	}
	if r.Top != 40 || r.Bottom != 80 {
		t.Errorf("top/bottom = %v/%v, want 40/80", r.Top, r.Bottom)
	}
	if !r.Fill || r.Stroke {
		t.Errorf("fill=%v stroke=%v, want fill only", r.Fill, r.Stroke)
	}
}

func TestInterpreterLine(t *testing.T) {
	prims := runContent("1 0 0 RG 0 10 m 50 10 l S", 100)
	if len(prims.lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(prims.lines))
	}
	l := prims.lines[0]
	if l.X0 != 0 || l.X1 != 50 || l.Top != 90 || l.Bottom != 90 {
		t.Errorf("line = %+v", l)
	}
	if l.StrokingColor.Space != "DeviceRGB" {
		t.Errorf("color space = %q", l.StrokingColor.Space)
	}
}

func TestInterpreterDiagonalBecomesCurve(t *testing.T) {
	prims := runContent("0 0 m 30 40 l S", 100)
	if len(prims.lines) != 0 {
		t.Errorf("diagonal emitted as line")
	}
	if len(prims.curves) != 1 {
		t.Fatalf("got %d curves, want 1", len(prims.curves))
	}
}

func TestInterpreterBezierFlattening(t *testing.T) {
	prims := runContent("0 0 m 10 20 20 20 30 0 c S", 100)
	if len(prims.curves) != 1 {
		t.Fatalf("got %d curves, want 1", len(prims.curves))
	}
	c := prims.curves[0]
	if len(c.Points) < bezierSegments {
		t.Errorf("only %d flattened points", len(c.Points))
	}
	if c.X0 != 0 || !almost(c.X1, 30) {
		t.Errorf("curve bbox x = %v..%v", c.X0, c.X1)
	}
}

func TestInterpreterGraphicsStack(t *testing.T) {
	prims := runContent("q 2 0 0 2 0 0 cm 10 10 m 20 10 l S Q 10 10 m 20 10 l S", 100)
	if len(prims.lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(prims.lines))
	}
	scaled, plain := prims.lines[0], prims.lines[1]
	if scaled.X0 != 20 || scaled.X1 != 40 || scaled.Top != 80 {
		t.Errorf("scaled line = %+v", scaled)
	}
	if plain.X0 != 10 || plain.X1 != 20 || plain.Top != 90 {
		t.Errorf("restored line = %+v", plain)
	}
}

func TestInterpreterDepthLimit(t *testing.T) {
	src := "10 20 m 30 20 l S " + strings.Repeat("q ", maxGraphicsDepth+10)
	prims := runContent(src, 100)
	if prims.fault == nil {
		t.Fatal("expected a fault for runaway nesting")
	}
	if len(prims.lines) != 1 {
		t.Errorf("primitives before the fault lost: %d lines", len(prims.lines))
	}
}

func TestInterpreterMalformedStreamKeepsPartial(t *testing.T) {
	prims := runContent("BT /F1 10 Tf 10 20 Td (AB) Tj ET (never closed", 100)
	if prims.fault == nil {
		t.Fatal("expected a fault for the unterminated string")
	}
	if len(prims.chars) != 2 {
		t.Errorf("chars before the fault lost: got %d", len(prims.chars))
	}
}

func TestInterpreterInlineImageSkipped(t *testing.T) {
	prims := runContent("BI /W 1 /H 1 ID \x01\x02 EI 0 10 m 50 10 l S", 100)
	if prims.fault != nil {
		t.Fatalf("inline image faulted: %v", prims.fault)
	}
	if len(prims.lines) != 1 {
		t.Errorf("content after inline image not interpreted: %d lines", len(prims.lines))
	}
}

func TestInterpreterRenderMode3Emits(t *testing.T) {
	// invisible text still yields chars; OCR layers are drawn with Tr 3
	prims := runContent("BT /F1 10 Tf 3 Tr 0 0 Td (A) Tj ET", 100)
	if len(prims.chars) != 1 {
		t.Fatalf("invisible text emitted %d chars, want 1", len(prims.chars))
	}
	if prims.chars[0].Text != "A" {
		t.Errorf("text = %q", prims.chars[0].Text)
	}
}

func TestInterpreterQuoteOperators(t *testing.T) {
	prims := runContent("BT /F1 10 Tf 12 TL 0 50 Td (A) Tj (B) ' ET", 100)
	if len(prims.chars) != 2 {
		t.Fatalf("got %d chars, want 2", len(prims.chars))
	}
	if !almost(prims.chars[1].Top-prims.chars[0].Top, 12) {
		t.Errorf("' did not advance a line: %v", prims.chars[1].Top-prims.chars[0].Top)
	}
}

func TestFontKeyScopedToResources(t *testing.T) {
	pageRes := types.Dict{}
	formRes := types.Dict{}

	if fontKey("F1", pageRes, nil) == fontKey("F1", formRes, nil) {
		t.Error("direct font dicts from different resources share a cache key")
	}
	a := types.IndirectRef{ObjectNumber: 12, GenerationNumber: 0}
	b := types.IndirectRef{ObjectNumber: 30, GenerationNumber: 0}
	if fontKey("F1", pageRes, a) == fontKey("F1", formRes, b) {
		t.Error("distinct font objects share a cache key")
	}
	if fontKey("F1", pageRes, a) != fontKey("F2", formRes, a) {
		t.Error("one font object should share its cache entry across names")
	}
	if fontKey("F1", pageRes, a) != fontKey("F1", pageRes, &a) {
		t.Error("pointer and value refs to one object should agree")
	}
}

func BenchmarkInterpreterText(b *testing.B) {
	var sb strings.Builder
	sb.WriteString("BT /F1 10 Tf 12 TL 10 700 Td ")
	for i := 0; i < 40; i++ {
		sb.WriteString("(The quick brown fox jumps over the lazy dog) Tj T* ")
	}
	sb.WriteString("ET")
	src := sb.String()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		runContent(src, 792)
	}
}

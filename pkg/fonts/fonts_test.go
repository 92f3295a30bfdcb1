package fonts

import "testing"

const sampleCMap = `/CIDInit /ProcSet findresource begin
12 dict begin
begincmap
1 begincodespacerange
<0000> <FFFF>
endcodespacerange
2 beginbfchar
<0041> <0048>
<0042> <D83DDE00>
endbfchar
1 beginbfrange
<0061> <0063> <0077>
endbfrange
endcmap
CMapName currentdict /CMap defineresource pop
end
end`

func TestParseToUnicodeCMapBFChar(t *testing.T) {
	cm := ParseToUnicodeCMap([]byte(sampleCMap))
	got, ok := cm.Lookup(0x41)
	if !ok || got != "H" {
		t.Errorf("Lookup(0x41) = %q, %v; want \"H\", true", got, ok)
	}
	// surrogate pair destination
	got, ok = cm.Lookup(0x42)
	if !ok || got != "😀" {
		t.Errorf("Lookup(0x42) = %q, %v; want emoji, true", got, ok)
	}
}

func TestParseToUnicodeCMapBFRange(t *testing.T) {
	cm := ParseToUnicodeCMap([]byte(sampleCMap))
	for i, want := range []string{"w", "x", "y"} {
		got, ok := cm.Lookup(uint32(0x61 + i))
		if !ok || got != want {
			t.Errorf("Lookup(%#x) = %q, %v; want %q", 0x61+i, got, ok, want)
		}
	}
	if _, ok := cm.Lookup(0x64); ok {
		t.Error("code past range end resolved")
	}
}

func TestParseToUnicodeCMapArrayRange(t *testing.T) {
	data := `1 beginbfrange
<01> <03> [<0058> <0059> <005A>]
endbfrange`
	cm := ParseToUnicodeCMap([]byte(data))
	for i, want := range []string{"X", "Y", "Z"} {
		got, ok := cm.Lookup(uint32(1 + i))
		if !ok || got != want {
			t.Errorf("Lookup(%d) = %q, %v; want %q", 1+i, got, ok, want)
		}
	}
}

func TestParseToUnicodeCMapGarbage(t *testing.T) {
	cm := ParseToUnicodeCMap([]byte("not a cmap at all"))
	if cm.Len() != 0 {
		t.Errorf("garbage produced %d mappings", cm.Len())
	}
}

func TestEncodingDecodeByte(t *testing.T) {
	tests := []struct {
		name string
		enc  Encoding
		b    byte
		want rune
	}{
		{"winansi ascii", EncodingWinAnsi, 'A', 'A'},
		{"winansi euro", EncodingWinAnsi, 0x80, '€'},
		{"winansi emdash", EncodingWinAnsi, 0x97, '—'},
		{"macroman adieresis", EncodingMacRoman, 0x8a, 'ä'},
		{"macroman bullet", EncodingMacRoman, 0xa5, '•'},
		{"standard quoteright", EncodingStandard, 0x27, '’'},
		{"standard fi", EncodingStandard, 0xae, 'ﬁ'},
		{"pdfdoc breve", EncodingPDFDoc, 0x18, '˘'},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.enc.DecodeByte(tc.b); got != tc.want {
				t.Errorf("DecodeByte(%#x) = %q, want %q", tc.b, got, tc.want)
			}
		})
	}
}

func TestGlyphNameToRune(t *testing.T) {
	tests := []struct {
		name string
		want rune
	}{
		{"space", ' '},
		{"seven", '7'},
		{"emdash", '—'},
		{"fi", 'ﬁ'},
		{"uni0041", 'A'},
		{"u1F600", '😀'},
	}
	for _, tc := range tests {
		got, ok := GlyphNameToRune(tc.name)
		if !ok || got != tc.want {
			t.Errorf("GlyphNameToRune(%q) = %q, %v; want %q", tc.name, got, ok, tc.want)
		}
	}
	if _, ok := GlyphNameToRune("definitelynotaglyph"); ok {
		t.Error("unknown glyph name resolved")
	}
}

func TestStandardWidth(t *testing.T) {
	tests := []struct {
		font string
		r    rune
		want float64
	}{
		{"Helvetica", 'A', 667},
		{"Helvetica", 'i', 222},
		{"Helvetica", ' ', 278},
		{"Helvetica-Bold", 'i', 278},
		{"ABCDEF+Helvetica-Bold", 'i', 278},
		{"Times-Roman", 'W', 944},
		{"Times-BoldItalic", 'W', 889},
		{"Courier", 'W', 600},
		{"Courier-BoldOblique", 'i', 600},
		// outside 0x20..0x7e the space width stands in
		{"Helvetica", '\n', 278},
		{"Times-Roman", '€', 250},
		{"Symbol", 'A', 500},
	}
	for _, tc := range tests {
		if got := StandardWidth(tc.font, tc.r); got != tc.want {
			t.Errorf("StandardWidth(%q, %q) = %v, want %v", tc.font, tc.r, got, tc.want)
		}
	}
}

func TestNormalizeBaseFont(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Helvetica", "Helvetica"},
		{"XYZABC+TimesNewRomanPS-BoldMT", "Times-Bold"},
		{"Arial-ItalicMT", "Helvetica"},
		{"CourierNewPSMT", "Courier"},
	}
	for _, tc := range tests {
		if got := normalizeBaseFont(tc.in); got != tc.want {
			t.Errorf("normalizeBaseFont(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFontDecodePriority(t *testing.T) {
	f := NewFont("F1")
	f.Encoding = EncodingWinAnsi
	f.ToUnicode = ParseToUnicodeCMap([]byte("1 beginbfchar <41> <0051> endbfchar"))

	chars := f.Decode([]byte("AB"))
	if len(chars) != 2 {
		t.Fatalf("got %d chars, want 2", len(chars))
	}
	// ToUnicode wins over the encoding for A
	if chars[0].Text != "Q" {
		t.Errorf("code 0x41 decoded %q, want \"Q\" via ToUnicode", chars[0].Text)
	}
	// B has no CMap entry and falls through to the encoding
	if chars[1].Text != "B" {
		t.Errorf("code 0x42 decoded %q, want \"B\" via encoding", chars[1].Text)
	}
}

func TestFontDecodeDifferences(t *testing.T) {
	f := NewFont("F1")
	f.Differences = map[byte]rune{0x42: '€'}
	chars := f.Decode([]byte{0x42})
	if chars[0].Text != "€" {
		t.Errorf("differences override not applied: %q", chars[0].Text)
	}
}

func TestFontDecodeCID(t *testing.T) {
	f := NewFont("F1")
	f.CID = true
	f.ToUnicode = ParseToUnicodeCMap([]byte("1 beginbfchar <0102> <0041> endbfchar"))
	chars := f.Decode([]byte{0x01, 0x02, 0x01, 0x03})
	if len(chars) != 2 {
		t.Fatalf("got %d chars, want 2 from 2-byte codes", len(chars))
	}
	if chars[0].Code != 0x0102 || chars[0].Text != "A" {
		t.Errorf("first = %+v, want code 0x0102 text A", chars[0])
	}
	if chars[1].Text != "�" {
		t.Errorf("unmapped CID decoded %q, want replacement", chars[1].Text)
	}
}

func TestCharWidthFallbacks(t *testing.T) {
	f := NewFont("F1")
	f.BaseFont = "Helvetica"
	f.Widths[0x41] = 600

	if got := f.CharWidth(0x41); got != 600 {
		t.Errorf("explicit width = %v, want 600", got)
	}
	// missing entry falls back to the standard table
	if got := f.CharWidth(0x42); got != 667 {
		t.Errorf("fallback width for B = %v, want 667", got)
	}

	cid := NewFont("F2")
	cid.CID = true
	cid.DefaultWidth = 1000
	if got := cid.CharWidth(0x4e2d); got != 1000 {
		t.Errorf("CID default width = %v, want 1000", got)
	}
}

func TestCacheRoundTrip(t *testing.T) {
	c := NewCache()
	if _, ok := c.Get("F1"); ok {
		t.Fatal("empty cache returned a font")
	}
	f := NewFont("F1")
	c.Put("F1", f)
	got, ok := c.Get("F1")
	if !ok || got != f {
		t.Error("cache did not return the stored font")
	}
}

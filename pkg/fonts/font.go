// Package fonts models the font information needed to turn content-stream
// string operands into Unicode text with per-glyph advance widths.
package fonts

import "sync"

// Font carries the decoded pieces of a font dictionary.
type Font struct {
	// Name is the resource name the content stream selects with Tf.
	Name string
	// BaseFont is the /BaseFont value, e.g. "ABCDEF+Helvetica-Bold".
	BaseFont string
	// Subtype is the /Subtype value ("Type1", "TrueType", "Type0", ...).
	Subtype string
	// ToUnicode maps codes to text when the font carried a /ToUnicode CMap.
	ToUnicode *ToUnicodeCMap
	// Encoding applies when ToUnicode has no entry for a code.
	Encoding Encoding
	// Differences overrides individual codes of the base encoding.
	Differences map[byte]rune
	// Widths holds per-code advances in 1/1000 units from /Widths or /W.
	Widths map[uint32]float64
	// DefaultWidth is the /DW value for codes absent from Widths.
	DefaultWidth float64
	// FirstChar is the /FirstChar offset of a simple font's /Widths array.
	FirstChar int
	// CID marks composite fonts whose codes are two bytes wide.
	CID bool
}

// DecodedChar is one character code with its Unicode text.
type DecodedChar struct {
	Code uint32
	Text string
}

// NewFont returns a font with usable fallbacks for every field.
func NewFont(name string) *Font {
	return &Font{
		Name:         name,
		BaseFont:     "Helvetica",
		Subtype:      "Type1",
		Encoding:     EncodingStandard,
		Widths:       make(map[uint32]float64),
		DefaultWidth: defaultStandardWidth,
	}
}

// Decode splits a string operand into character codes and resolves each to
// text. Resolution order: ToUnicode, Differences, base encoding, printable
// ASCII, U+FFFD. Decoding never fails; unmapped codes degrade to the
// replacement character.
func (f *Font) Decode(raw []byte) []DecodedChar {
	step := 1
	if f.CID {
		step = 2
	}
	out := make([]DecodedChar, 0, len(raw)/step)
	for i := 0; i < len(raw); i += step {
		var code uint32
		if step == 2 {
			if i+1 < len(raw) {
				code = uint32(raw[i])<<8 | uint32(raw[i+1])
			} else {
				code = uint32(raw[i])
			}
		} else {
			code = uint32(raw[i])
		}
		out = append(out, DecodedChar{Code: code, Text: f.decodeCode(code)})
	}
	return out
}

func (f *Font) decodeCode(code uint32) string {
	if f.ToUnicode != nil {
		if s, ok := f.ToUnicode.Lookup(code); ok {
			return s
		}
	}
	if code <= 0xff {
		b := byte(code)
		if f.Differences != nil {
			if r, ok := f.Differences[b]; ok && r != 0 {
				return string(r)
			}
		}
		if r := f.Encoding.DecodeByte(b); r != 0 {
			return string(r)
		}
	}
	if code >= 0x20 && code < 0x7f {
		return string(rune(code))
	}
	return "�"
}

// CharWidth returns the advance for a code in 1/1000 text-space units. Codes
// outside the width table fall back to /DW and then to the standard metrics
// of the base font, so a missing or partial table never fails a glyph.
func (f *Font) CharWidth(code uint32) float64 {
	if w, ok := f.Widths[code]; ok {
		return w
	}
	if f.DefaultWidth > 0 && f.CID {
		return f.DefaultWidth
	}
	r := rune(code)
	if s := f.decodeCode(code); s != "" && s != "�" {
		r = []rune(s)[0]
	}
	return StandardWidth(f.BaseFont, r)
}

// Cache stores fonts per resource name. Loading happens under the lock once
// per name; lookups after load are read-mostly.
type Cache struct {
	mu    sync.RWMutex
	fonts map[string]*Font
}

// NewCache returns an empty font cache.
func NewCache() *Cache {
	return &Cache{fonts: make(map[string]*Font)}
}

// Get returns the cached font for a resource name.
func (c *Cache) Get(name string) (*Font, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	f, ok := c.fonts[name]
	return f, ok
}

// Put stores a font under its resource name.
func (c *Cache) Put(name string, f *Font) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fonts[name] = f
}

package fonts

import (
	"strconv"
	"strings"
)

// Encoding identifies a simple-font byte encoding.
type Encoding int

const (
	EncodingStandard Encoding = iota
	EncodingWinAnsi
	EncodingMacRoman
	EncodingPDFDoc
	EncodingIdentity
)

// EncodingByName maps a /BaseEncoding name to an Encoding. Unknown names
// fall back to StandardEncoding.
func EncodingByName(name string) Encoding {
	switch name {
	case "WinAnsiEncoding":
		return EncodingWinAnsi
	case "MacRomanEncoding":
		return EncodingMacRoman
	case "PDFDocEncoding":
		return EncodingPDFDoc
	case "Identity-H", "Identity-V":
		return EncodingIdentity
	default:
		return EncodingStandard
	}
}

// DecodeByte maps a single byte through the encoding. Returns 0 when the
// code has no assignment.
func (e Encoding) DecodeByte(b byte) rune {
	switch e {
	case EncodingWinAnsi:
		if b < 0x80 {
			return rune(b)
		}
		return winAnsiHigh[b-0x80]
	case EncodingMacRoman:
		if b < 0x80 {
			return rune(b)
		}
		return macRomanHigh[b-0x80]
	case EncodingPDFDoc:
		if r, ok := pdfDocOverrides[b]; ok {
			return r
		}
		if b < 0x80 {
			return rune(b)
		}
		return winAnsiHigh[b-0x80]
	case EncodingIdentity:
		return rune(b)
	default:
		if r, ok := standardOverrides[b]; ok {
			return r
		}
		if b >= 0x20 && b < 0x7f {
			return rune(b)
		}
		return 0
	}
}

// winAnsiHigh covers codes 0x80..0xFF of WinAnsiEncoding (CP1252 with the
// PDF-specified gaps mapped to 0).
var winAnsiHigh = [128]rune{
	'€', 0, '‚', 'ƒ', '„', '…', '†', '‡',
	'ˆ', '‰', 'Š', '‹', 'Œ', 0, 'Ž', 0,
	0, '‘', '’', '“', '”', '•', '–', '—',
	'˜', '™', 'š', '›', 'œ', 0, 'ž', 'Ÿ',
	' ', '¡', '¢', '£', '¤', '¥', '¦', '§',
	'¨', '©', 'ª', '«', '¬', '­', '®', '¯',
	'°', '±', '²', '³', '´', 'µ', '¶', '·',
	'¸', '¹', 'º', '»', '¼', '½', '¾', '¿',
	'À', 'Á', 'Â', 'Ã', 'Ä', 'Å', 'Æ', 'Ç',
	'È', 'É', 'Ê', 'Ë', 'Ì', 'Í', 'Î', 'Ï',
	'Ð', 'Ñ', 'Ò', 'Ó', 'Ô', 'Õ', 'Ö', '×',
	'Ø', 'Ù', 'Ú', 'Û', 'Ü', 'Ý', 'Þ', 'ß',
	'à', 'á', 'â', 'ã', 'ä', 'å', 'æ', 'ç',
	'è', 'é', 'ê', 'ë', 'ì', 'í', 'î', 'ï',
	'ð', 'ñ', 'ò', 'ó', 'ô', 'õ', 'ö', '÷',
	'ø', 'ù', 'ú', 'û', 'ü', 'ý', 'þ', 'ÿ',
}

// macRomanHigh covers codes 0x80..0xFF of MacRomanEncoding.
var macRomanHigh = [128]rune{
	'Ä', 'Å', 'Ç', 'É', 'Ñ', 'Ö', 'Ü', 'á',
	'à', 'â', 'ä', 'ã', 'å', 'ç', 'é', 'è',
	'ê', 'ë', 'í', 'ì', 'î', 'ï', 'ñ', 'ó',
	'ò', 'ô', 'ö', 'õ', 'ú', 'ù', 'û', 'ü',
	'†', '°', '¢', '£', '§', '•', '¶', 'ß',
	'®', '©', '™', '´', '¨', '≠', 'Æ', 'Ø',
	'∞', '±', '≤', '≥', '¥', 'µ', '∂', '∑',
	'∏', 'π', '∫', 'ª', 'º', 'Ω', 'æ', 'ø',
	'¿', '¡', '¬', '√', 'ƒ', '≈', '∆', '«',
	'»', '…', ' ', 'À', 'Ã', 'Õ', 'Œ', 'œ',
	'–', '—', '“', '”', '‘', '’', '÷', '◊',
	'ÿ', 'Ÿ', '⁄', '€', '‹', '›', 'ﬁ', 'ﬂ',
	'‡', '·', '‚', '„', '‰', 'Â', 'Ê', 'Á',
	'Ë', 'È', 'Í', 'Î', 'Ï', 'Ì', 'Ó', 'Ô',
	'', 'Ò', 'Ú', 'Û', 'Ù', 'ı', 'ˆ', '˜',
	'¯', '˘', '˙', '˚', '¸', '˝', '˛', 'ˇ',
}

// standardOverrides lists where Adobe StandardEncoding departs from ASCII,
// plus its assigned high codes.
var standardOverrides = map[byte]rune{
	0x27: '’', // quoteright
	0x60: '‘', // quoteleft
	0xa1: '¡',
	0xa2: '¢',
	0xa3: '£',
	0xa4: '⁄',
	0xa5: '¥',
	0xa6: 'ƒ',
	0xa7: '§',
	0xa8: '¤',
	0xa9: '\'',
	0xaa: '“',
	0xab: '«',
	0xac: '‹',
	0xad: '›',
	0xae: 'ﬁ',
	0xaf: 'ﬂ',
	0xb1: '–',
	0xb2: '†',
	0xb3: '‡',
	0xb4: '·',
	0xb6: '¶',
	0xb7: '•',
	0xb8: '‚',
	0xb9: '„',
	0xba: '”',
	0xbb: '»',
	0xbc: '…',
	0xbd: '‰',
	0xbf: '¿',
	0xc1: '`',
	0xc2: '´',
	0xc3: 'ˆ',
	0xc4: '˜',
	0xc5: '¯',
	0xc6: '˘',
	0xc7: '˙',
	0xc8: '¨',
	0xca: '˚',
	0xcb: '¸',
	0xcd: '˝',
	0xce: '˛',
	0xcf: 'ˇ',
	0xd0: '—',
	0xe1: 'Æ',
	0xe3: 'ª',
	0xe8: 'Ł',
	0xe9: 'Ø',
	0xea: 'Œ',
	0xeb: 'º',
	0xf1: 'æ',
	0xf5: 'ı',
	0xf8: 'ł',
	0xf9: 'ø',
	0xfa: 'œ',
	0xfb: 'ß',
}

// pdfDocOverrides covers the control-range assignments PDFDocEncoding adds
// on top of its WinAnsi-like layout.
var pdfDocOverrides = map[byte]rune{
	0x18: '˘',
	0x19: 'ˇ',
	0x1a: 'ˆ',
	0x1b: '˙',
	0x1c: '˝',
	0x1d: '˛',
	0x1e: '˚',
	0x1f: '˜',
	0xa0: '€',
	0xad: 0,
}

// GlyphNameToRune resolves an Adobe glyph name from a /Differences array.
// Handles uniXXXX and uXXXX[XX] forms plus the common named glyphs.
func GlyphNameToRune(name string) (rune, bool) {
	if r, ok := commonGlyphNames[name]; ok {
		return r, true
	}
	if len(name) == 1 {
		return rune(name[0]), true
	}
	if strings.HasPrefix(name, "uni") && len(name) >= 7 {
		if v, err := strconv.ParseUint(name[3:7], 16, 32); err == nil {
			return rune(v), true
		}
	}
	if strings.HasPrefix(name, "u") && len(name) >= 5 && len(name) <= 7 {
		if v, err := strconv.ParseUint(name[1:], 16, 32); err == nil {
			return rune(v), true
		}
	}
	return 0, false
}

var commonGlyphNames = map[string]rune{
	"space": ' ', "exclam": '!', "quotedbl": '"', "numbersign": '#',
	"dollar": '$', "percent": '%', "ampersand": '&', "quotesingle": '\'',
	"parenleft": '(', "parenright": ')', "asterisk": '*', "plus": '+',
	"comma": ',', "hyphen": '-', "period": '.', "slash": '/',
	"zero": '0', "one": '1', "two": '2', "three": '3', "four": '4',
	"five": '5', "six": '6', "seven": '7', "eight": '8', "nine": '9',
	"colon": ':', "semicolon": ';', "less": '<', "equal": '=', "greater": '>',
	"question": '?', "at": '@', "bracketleft": '[', "backslash": '\\',
	"bracketright": ']', "asciicircum": '^', "underscore": '_',
	"grave": '`', "braceleft": '{', "bar": '|', "braceright": '}',
	"asciitilde": '~',
	"quoteleft":  '‘', "quoteright": '’',
	"quotedblleft": '“', "quotedblright": '”',
	"quotesinglbase": '‚', "quotedblbase": '„',
	"endash": '–', "emdash": '—',
	"bullet": '•', "ellipsis": '…',
	"dagger": '†', "daggerdbl": '‡',
	"fi": 'ﬁ', "fl": 'ﬂ',
	"florin": 'ƒ', "fraction": '⁄',
	"guillemotleft": '«', "guillemotright": '»',
	"guilsinglleft": '‹', "guilsinglright": '›',
	"cent": '¢', "sterling": '£', "yen": '¥',
	"currency": '¤', "Euro": '€',
	"section": '§', "paragraph": '¶',
	"copyright": '©', "registered": '®', "trademark": '™',
	"degree": '°', "plusminus": '±', "multiply": '×',
	"divide": '÷', "minus": '−',
	"periodcentered": '·', "middot": '·',
	"nbspace": ' ', "exclamdown": '¡', "questiondown": '¿',
	"germandbls": 'ß', "ae": 'æ', "AE": 'Æ',
	"oslash": 'ø', "Oslash": 'Ø', "oe": 'œ', "OE": 'Œ',
	"dotlessi": 'ı', "Lslash": 'Ł', "lslash": 'ł',
	"circumflex": 'ˆ', "caron": 'ˇ', "breve": '˘',
	"dotaccent": '˙', "ring": '˚', "ogonek": '˛',
	"tilde": '˜', "hungarumlaut": '˝',
	"acute": '´', "cedilla": '¸', "dieresis": '¨',
	"macron": '¯',
}

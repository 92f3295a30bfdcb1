package fonts

import (
	"encoding/hex"
	"regexp"
	"strings"
	"unicode/utf16"
)

// ToUnicodeCMap maps character codes to Unicode text, parsed from a font's
// /ToUnicode stream.
type ToUnicodeCMap struct {
	direct map[uint32]string
	ranges []bfRange
}

type bfRange struct {
	low, high uint32
	startDst  rune
	// dstArray holds per-code destinations when the range maps through an
	// array instead of a contiguous offset.
	dstArray []string
}

var (
	bfCharSectionRe  = regexp.MustCompile(`beginbfchar\s*((?:<[0-9A-Fa-f]+>\s*<[0-9A-Fa-f]+>\s*)+)endbfchar`)
	bfCharPairRe     = regexp.MustCompile(`<([0-9A-Fa-f]+)>\s*<([0-9A-Fa-f]+)>`)
	bfRangeSectionRe = regexp.MustCompile(`beginbfrange\s*((?:<[0-9A-Fa-f]+>\s*<[0-9A-Fa-f]+>\s*(?:<[0-9A-Fa-f]+>|\[[^\]]*\])\s*)+)endbfrange`)
	bfRangeEntryRe   = regexp.MustCompile(`<([0-9A-Fa-f]+)>\s*<([0-9A-Fa-f]+)>\s*(<[0-9A-Fa-f]+>|\[[^\]]*\])`)
	hexTokenRe       = regexp.MustCompile(`<([0-9A-Fa-f]+)>`)
)

// ParseToUnicodeCMap parses the decoded bytes of a /ToUnicode stream.
// Unparseable entries are skipped rather than failing the whole map.
func ParseToUnicodeCMap(data []byte) *ToUnicodeCMap {
	cm := &ToUnicodeCMap{direct: make(map[uint32]string)}
	content := string(data)

	for _, section := range bfCharSectionRe.FindAllStringSubmatch(content, -1) {
		for _, pair := range bfCharPairRe.FindAllStringSubmatch(section[1], -1) {
			code, ok := parseHexCode(pair[1])
			if !ok {
				continue
			}
			if dst := hexToText(pair[2]); dst != "" {
				cm.direct[code] = dst
			}
		}
	}

	for _, section := range bfRangeSectionRe.FindAllStringSubmatch(content, -1) {
		for _, entry := range bfRangeEntryRe.FindAllStringSubmatch(section[1], -1) {
			low, ok1 := parseHexCode(entry[1])
			high, ok2 := parseHexCode(entry[2])
			if !ok1 || !ok2 || high < low {
				continue
			}
			dst := entry[3]
			if strings.HasPrefix(dst, "<") {
				text := hexToText(strings.Trim(dst, "<>"))
				runes := []rune(text)
				if len(runes) == 0 {
					continue
				}
				cm.ranges = append(cm.ranges, bfRange{low: low, high: high, startDst: runes[0]})
			} else {
				var arr []string
				for _, tok := range hexTokenRe.FindAllStringSubmatch(dst, -1) {
					arr = append(arr, hexToText(tok[1]))
				}
				if len(arr) == 0 {
					continue
				}
				cm.ranges = append(cm.ranges, bfRange{low: low, high: high, dstArray: arr})
			}
		}
	}
	return cm
}

func parseHexCode(s string) (uint32, bool) {
	b, err := hex.DecodeString(s)
	if err != nil || len(b) == 0 || len(b) > 4 {
		return 0, false
	}
	var v uint32
	for _, c := range b {
		v = v<<8 | uint32(c)
	}
	return v, true
}

// hexToText decodes a hex destination token as UTF-16BE, handling surrogate
// pairs.
func hexToText(s string) string {
	b, err := hex.DecodeString(s)
	if err != nil || len(b) == 0 {
		return ""
	}
	if len(b) == 1 {
		return string(rune(b[0]))
	}
	units := make([]uint16, 0, len(b)/2)
	for i := 0; i+1 < len(b); i += 2 {
		units = append(units, uint16(b[i])<<8|uint16(b[i+1]))
	}
	return string(utf16.Decode(units))
}

// Lookup returns the Unicode text for a character code.
func (cm *ToUnicodeCMap) Lookup(code uint32) (string, bool) {
	if s, ok := cm.direct[code]; ok {
		return s, true
	}
	for _, r := range cm.ranges {
		if code < r.low || code > r.high {
			continue
		}
		off := code - r.low
		if r.dstArray != nil {
			if int(off) < len(r.dstArray) {
				return r.dstArray[off], true
			}
			continue
		}
		return string(r.startDst + rune(off)), true
	}
	return "", false
}

// Len reports the number of directly mapped codes plus range entries.
func (cm *ToUnicodeCMap) Len() int {
	n := len(cm.direct)
	for _, r := range cm.ranges {
		n += int(r.high-r.low) + 1
	}
	return n
}

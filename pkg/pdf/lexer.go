package pdf

import (
	"fmt"
	"strconv"
)

// Token kinds produced by the content lexer.
type tokenKind int

const (
	tokNumber tokenKind = iota
	tokString
	tokName
	tokArrayStart
	tokArrayEnd
	tokDictStart
	tokDictEnd
	tokOperator
	tokBool
	tokNull
	tokEOF
)

type token struct {
	kind tokenKind
	num  float64
	str  []byte
	name string
	op   string
	b    bool
	pos  int
}

// contentLexer walks a decoded content stream and yields tokens. Errors
// report the byte offset so interpretation can stop there and keep what was
// already emitted.
type contentLexer struct {
	data []byte
	pos  int
}

func newContentLexer(data []byte) *contentLexer {
	return &contentLexer{data: data}
}

func isWhitespace(b byte) bool {
	switch b {
	case 0x00, 0x09, 0x0a, 0x0c, 0x0d, 0x20:
		return true
	}
	return false
}

func isDelimiter(b byte) bool {
	switch b {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

func (l *contentLexer) skipSpaceAndComments() {
	for l.pos < len(l.data) {
		b := l.data[l.pos]
		if isWhitespace(b) {
			l.pos++
			continue
		}
		if b == '%' {
			for l.pos < len(l.data) && l.data[l.pos] != '\n' && l.data[l.pos] != '\r' {
				l.pos++
			}
			continue
		}
		return
	}
}

// next returns the next token.
func (l *contentLexer) next() (token, error) {
	l.skipSpaceAndComments()
	if l.pos >= len(l.data) {
		return token{kind: tokEOF, pos: l.pos}, nil
	}
	start := l.pos
	b := l.data[l.pos]
	switch {
	case b == '(':
		s, err := l.readStringLiteral()
		if err != nil {
			return token{}, err
		}
		return token{kind: tokString, str: s, pos: start}, nil
	case b == '<':
		if l.pos+1 < len(l.data) && l.data[l.pos+1] == '<' {
			l.pos += 2
			return token{kind: tokDictStart, pos: start}, nil
		}
		s, err := l.readHexString()
		if err != nil {
			return token{}, err
		}
		return token{kind: tokString, str: s, pos: start}, nil
	case b == '>':
		if l.pos+1 < len(l.data) && l.data[l.pos+1] == '>' {
			l.pos += 2
			return token{kind: tokDictEnd, pos: start}, nil
		}
		return token{}, fmt.Errorf("stray '>' at %d", start)
	case b == '[':
		l.pos++
		return token{kind: tokArrayStart, pos: start}, nil
	case b == ']':
		l.pos++
		return token{kind: tokArrayEnd, pos: start}, nil
	case b == '/':
		return token{kind: tokName, name: l.readName(), pos: start}, nil
	case b == '+' || b == '-' || b == '.' || (b >= '0' && b <= '9'):
		n, err := l.readNumber()
		if err != nil {
			return token{}, err
		}
		return token{kind: tokNumber, num: n, pos: start}, nil
	case b == '{' || b == '}':
		// Type 4 function braces have no meaning in page content.
		l.pos++
		return l.next()
	default:
		word := l.readRegular()
		switch word {
		case "true":
			return token{kind: tokBool, b: true, pos: start}, nil
		case "false":
			return token{kind: tokBool, pos: start}, nil
		case "null":
			return token{kind: tokNull, pos: start}, nil
		case "":
			return token{}, fmt.Errorf("unexpected byte %#x at %d", b, start)
		}
		return token{kind: tokOperator, op: word, pos: start}, nil
	}
}

func (l *contentLexer) readRegular() string {
	start := l.pos
	for l.pos < len(l.data) && !isWhitespace(l.data[l.pos]) && !isDelimiter(l.data[l.pos]) {
		l.pos++
	}
	return string(l.data[start:l.pos])
}

func (l *contentLexer) readName() string {
	l.pos++ // consume '/'
	start := l.pos
	for l.pos < len(l.data) && !isWhitespace(l.data[l.pos]) && !isDelimiter(l.data[l.pos]) {
		l.pos++
	}
	name := string(l.data[start:l.pos])
	// #xx escapes inside names
	if idx := indexByte(name, '#'); idx >= 0 {
		out := make([]byte, 0, len(name))
		for i := 0; i < len(name); i++ {
			if name[i] == '#' && i+2 < len(name) {
				if v, err := strconv.ParseUint(name[i+1:i+3], 16, 8); err == nil {
					out = append(out, byte(v))
					i += 2
					continue
				}
			}
			out = append(out, name[i])
		}
		name = string(out)
	}
	return name
}

func indexByte(s string, c byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == c {
			return i
		}
	}
	return -1
}

func (l *contentLexer) readNumber() (float64, error) {
	start := l.pos
	if l.data[l.pos] == '+' || l.data[l.pos] == '-' {
		l.pos++
	}
	for l.pos < len(l.data) {
		b := l.data[l.pos]
		if (b >= '0' && b <= '9') || b == '.' {
			l.pos++
		} else {
			break
		}
	}
	n, err := strconv.ParseFloat(string(l.data[start:l.pos]), 64)
	if err != nil {
		return 0, fmt.Errorf("bad number at %d: %w", start, err)
	}
	return n, nil
}

// readStringLiteral reads a (...) string, handling nested parens, escapes
// and octal codes.
func (l *contentLexer) readStringLiteral() ([]byte, error) {
	start := l.pos
	l.pos++ // consume '('
	var out []byte
	depth := 1
	for l.pos < len(l.data) {
		b := l.data[l.pos]
		switch b {
		case '\\':
			l.pos++
			if l.pos >= len(l.data) {
				return nil, fmt.Errorf("unterminated string at %d", start)
			}
			e := l.data[l.pos]
			switch e {
			case 'n':
				out = append(out, '\n')
			case 'r':
				out = append(out, '\r')
			case 't':
				out = append(out, '\t')
			case 'b':
				out = append(out, '\b')
			case 'f':
				out = append(out, '\f')
			case '(', ')', '\\':
				out = append(out, e)
			case '\r':
				// line continuation; swallow an LF after CR
				if l.pos+1 < len(l.data) && l.data[l.pos+1] == '\n' {
					l.pos++
				}
			case '\n':
				// line continuation
			default:
				if e >= '0' && e <= '7' {
					v := int(e - '0')
					for k := 0; k < 2 && l.pos+1 < len(l.data); k++ {
						nb := l.data[l.pos+1]
						if nb < '0' || nb > '7' {
							break
						}
						v = v*8 + int(nb-'0')
						l.pos++
					}
					out = append(out, byte(v))
				} else {
					out = append(out, e)
				}
			}
			l.pos++
		case '(':
			depth++
			out = append(out, b)
			l.pos++
		case ')':
			depth--
			l.pos++
			if depth == 0 {
				return out, nil
			}
			out = append(out, b)
		default:
			out = append(out, b)
			l.pos++
		}
	}
	return nil, fmt.Errorf("unterminated string at %d", start)
}

// readHexString reads a <...> string. An odd trailing digit is padded with 0.
func (l *contentLexer) readHexString() ([]byte, error) {
	start := l.pos
	l.pos++ // consume '<'
	var digits []byte
	for l.pos < len(l.data) {
		b := l.data[l.pos]
		if b == '>' {
			l.pos++
			if len(digits)%2 == 1 {
				digits = append(digits, '0')
			}
			out := make([]byte, len(digits)/2)
			for i := 0; i < len(out); i++ {
				v, err := strconv.ParseUint(string(digits[i*2:i*2+2]), 16, 8)
				if err != nil {
					return nil, fmt.Errorf("bad hex string at %d: %w", start, err)
				}
				out[i] = byte(v)
			}
			return out, nil
		}
		if isHexDigit(b) {
			digits = append(digits, b)
		} else if !isWhitespace(b) {
			return nil, fmt.Errorf("bad hex digit %#x at %d", b, l.pos)
		}
		l.pos++
	}
	return nil, fmt.Errorf("unterminated hex string at %d", start)
}

func isHexDigit(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

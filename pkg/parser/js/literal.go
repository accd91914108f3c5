package js

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// cookString resolves escape sequences in the body of a string literal.
// Malformed escapes are kept verbatim.
func cookString(body string) string {
	if !strings.Contains(body, `\`) {
		return body
	}

	var out strings.Builder
	out.Grow(len(body))
	for idx := 0; idx < len(body); idx++ {
		c := body[idx]
		if c != '\\' || idx+1 >= len(body) {
			out.WriteByte(c)
			continue
		}
		idx++
		switch esc := body[idx]; esc {
		case 'n':
			out.WriteByte('\n')
		case 't':
			out.WriteByte('\t')
		case 'r':
			out.WriteByte('\r')
		case 'b':
			out.WriteByte('\b')
		case 'f':
			out.WriteByte('\f')
		case 'v':
			out.WriteByte('\v')
		case '0':
			out.WriteByte(0)
		case '\r':
			// Line continuation; swallow an optional "\n".
			if idx+1 < len(body) && body[idx+1] == '\n' {
				idx++
			}
		case '\n':
		case 'x':
			if r, ok := parseHex(body, idx+1, 2); ok {
				out.WriteRune(r)
				idx += 2
			} else {
				out.WriteString(`\x`)
			}
		case 'u':
			r, width := parseUnicodeEscape(body[idx+1:])
			if width == 0 {
				out.WriteString(`\u`)
				break
			}
			out.WriteRune(r)
			idx += width
		default:
			if esc >= utf8.RuneSelf {
				r, size := utf8.DecodeRuneInString(body[idx:])
				if r != 0x2028 && r != 0x2029 {
					out.WriteRune(r)
				}
				idx += size - 1
				break
			}
			out.WriteByte(esc)
		}
	}
	return out.String()
}

func parseHex(s string, start, width int) (rune, bool) {
	if start+width > len(s) {
		return 0, false
	}
	v, err := strconv.ParseUint(s[start:start+width], 16, 32)
	if err != nil {
		return 0, false
	}
	return rune(v), true
}

// parseUnicodeEscape decodes the part after "\u": either four hex digits or
// a braced code point. It returns the rune and the bytes consumed.
func parseUnicodeEscape(rest string) (rune, int) {
	if strings.HasPrefix(rest, "{") {
		closing := strings.IndexByte(rest, '}')
		if closing < 2 {
			return 0, 0
		}
		v, err := strconv.ParseUint(rest[1:closing], 16, 32)
		if err != nil || v > utf8.MaxRune {
			return 0, 0
		}
		return rune(v), closing + 1
	}
	if r, ok := parseHex(rest, 0, 4); ok {
		return r, 4
	}
	return 0, 0
}

package escape

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidEscape is returned by Unescape for unknown or truncated escapes.
var ErrInvalidEscape = errors.New("invalid escape sequence")

const hexDigits = "0123456789abcdef"

// Escape returns s with every non-printable or non-ASCII code point escaped.
func Escape(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '\\':
			sb.WriteString(`\\`)
		case r == '\t':
			sb.WriteString(`\t`)
		case r == '\n':
			sb.WriteString(`\n`)
		case r == '\r':
			sb.WriteString(`\r`)
		case r >= 0x20 && r < 0x7f:
			sb.WriteRune(r)
		case r < 0x100:
			sb.WriteString(`\x`)
			writeHex(&sb, r, 2)
		case r < 0x10000:
			sb.WriteString(`\u`)
			writeHex(&sb, r, 4)
		default:
			sb.WriteString(`\U`)
			writeHex(&sb, r, 8)
		}
	}
	return sb.String()
}

// writeHex writes r as exactly width lowercase hex digits.
func writeHex(sb *strings.Builder, r rune, width int) {
	for shift := (width - 1) * 4; shift >= 0; shift -= 4 {
		sb.WriteByte(hexDigits[(r>>uint(shift))&0xf])
	}
}

// NeedsEscape reports whether Escape would change s.
func NeedsEscape(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\\' || c < 0x20 || c >= 0x7f {
			return true
		}
	}
	return false
}

// Unescape decodes the notation produced by Escape.
// Characters that are not part of an escape are copied through unchanged.
func Unescape(s string) (string, error) {
	if !strings.Contains(s, `\`) {
		return s, nil
	}

	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			sb.WriteByte(c)
			continue
		}
		if i+1 >= len(s) {
			return "", fmt.Errorf("%w: trailing backslash", ErrInvalidEscape)
		}
		i++
		var width int
		switch s[i] {
		case '\\':
			sb.WriteByte('\\')
			continue
		case 't':
			sb.WriteByte('\t')
			continue
		case 'n':
			sb.WriteByte('\n')
			continue
		case 'r':
			sb.WriteByte('\r')
			continue
		case 'x':
			width = 2
		case 'u':
			width = 4
		case 'U':
			width = 8
		default:
			return "", fmt.Errorf("%w: \\%c", ErrInvalidEscape, s[i])
		}
		if i+1+width > len(s) {
			return "", fmt.Errorf("%w: truncated \\%c", ErrInvalidEscape, s[i])
		}
		digits := s[i+1 : i+1+width]
		v, err := strconv.ParseUint(digits, 16, 32)
		if err != nil || v > 0x10ffff {
			return "", fmt.Errorf("%w: \\%c%s", ErrInvalidEscape, s[i], digits)
		}
		sb.WriteRune(rune(v))
		i += width
	}
	return sb.String(), nil
}

package inspect

import (
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// repairCharsets are the single-byte encodings UTF-8 is most often
// mistaken for, in the order they are tried.
var repairCharsets = []*charmap.Charmap{
	charmap.Windows1252,
	charmap.ISO8859_1,
}

// RepairHint guesses what s looked like before UTF-8 bytes were decoded as
// a single-byte charset. It re-encodes s with each candidate charset and
// returns the result when those bytes are valid UTF-8 and differ from s.
// It returns "" when no candidate gives such a reading.
func RepairHint(s string) string {
	for _, cs := range repairCharsets {
		if hint, ok := reencode(cs, s); ok {
			return hint
		}
	}
	return ""
}

func reencode(cs encoding.Encoding, s string) (string, bool) {
	raw, err := cs.NewEncoder().String(s)
	if err != nil {
		return "", false
	}
	if raw == s || !utf8.ValidString(raw) {
		return "", false
	}
	return raw, true
}

package inspect

import (
	"strings"
	"unicode/utf8"

	"github.com/nao1215/htmlmend/internal/document"
	"github.com/nao1215/htmlmend/internal/model"
)

// FindContext locates the first occurrence of probe in text.
// The surrounding text is limited to width code points on each side and
// never crosses a line break. ok is false when probe does not occur.
func FindContext(text, probe string, width int) (model.ContextMatch, bool) {
	if probe == "" {
		return model.ContextMatch{}, false
	}
	idx := strings.Index(text, probe)
	if idx < 0 {
		return model.ContextMatch{}, false
	}

	end := idx + len(probe)
	return model.ContextMatch{
		Probe:  probe,
		Offset: idx,
		Line:   strings.Count(text[:idx], "\n") + 1,
		Before: before(text[:idx], width),
		After:  after(text[end:], width),
	}, true
}

// FindContexts runs FindContext for every probe, in order.
// Probes that do not occur are left out of the result.
func FindContexts(text string, probes []string, width int) []model.ContextMatch {
	matches := make([]model.ContextMatch, 0, len(probes))
	for _, p := range probes {
		if m, ok := FindContext(text, p, width); ok {
			matches = append(matches, m)
		}
	}
	return matches
}

// BuildContextReport searches text for probes and wraps the result in a report.
// Line endings are normalized to "\n" first, so a lone "\r" also ends the
// context window. Offsets refer to the normalized text.
func BuildContextReport(file, text string, probes []string, width int) *model.ContextReport {
	report := model.NewContextReport(file, width, len(probes))
	report.Matches = FindContexts(document.NormalizeNewlines(text), probes, width)
	return report
}

// before returns up to n trailing code points of s that follow its last newline.
func before(s string, n int) string {
	i := len(s)
	for count := 0; count < n && i > 0; count++ {
		r, size := utf8.DecodeLastRuneInString(s[:i])
		if r == '\n' {
			break
		}
		i -= size
	}
	return s[i:]
}

// after returns up to n leading code points of s that precede its first newline.
func after(s string, n int) string {
	i := 0
	for count := 0; count < n && i < len(s); count++ {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == '\n' {
			break
		}
		i += size
	}
	return s[:i]
}

package inspect

import (
	"sort"

	"github.com/nao1215/htmlmend/internal/document"
	"github.com/nao1215/htmlmend/internal/escape"
	"github.com/nao1215/htmlmend/internal/model"
)

// PairTable is a frequency table of two-character windows.
type PairTable struct {
	counts map[string]int
	// order keeps first-seen order so ties rank stably.
	order []string
	total int
}

// NewPairTable returns an empty table.
func NewPairTable() *PairTable {
	return &PairTable{counts: make(map[string]int)}
}

// Add records one occurrence of pair.
func (t *PairTable) Add(pair string) {
	if _, ok := t.counts[pair]; !ok {
		t.order = append(t.order, pair)
	}
	t.counts[pair]++
	t.total++
}

// Count returns the number of occurrences of pair.
func (t *PairTable) Count(pair string) int {
	return t.counts[pair]
}

// Distinct returns the number of distinct pairs.
func (t *PairTable) Distinct() int {
	return len(t.counts)
}

// Total returns the number of recorded windows including repeats.
func (t *PairTable) Total() int {
	return t.total
}

// PairCount is a pair and its number of occurrences.
type PairCount struct {
	Pair  string
	Count int
}

// MostCommon returns the n most frequent pairs, most frequent first.
// Pairs with equal counts keep the order in which they were first seen.
// A non-positive n returns every pair.
func (t *PairTable) MostCommon(n int) []PairCount {
	all := make([]PairCount, 0, len(t.order))
	for _, p := range t.order {
		all = append(all, PairCount{Pair: p, Count: t.counts[p]})
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Count > all[j].Count
	})
	if n > 0 && n < len(all) {
		all = all[:n]
	}
	return all
}

// CountPairs tallies every window text[i:i+2] (in code points) whose first
// character is above U+007F. Windows overlap, so "éé!" yields "éé" and "é!".
func CountPairs(text string) *PairTable {
	table := NewPairTable()
	runes := []rune(text)
	for i := 0; i+1 < len(runes); i++ {
		if runes[i] > 127 {
			table.Add(string(runes[i : i+2]))
		}
	}
	return table
}

// BuildPairReport counts the pairs of text and keeps the top entries.
// Line endings are normalized to "\n" first, so "é\r\n" tallies "é\n".
func BuildPairReport(file, text string, top int) *model.PairReport {
	table := CountPairs(document.NormalizeNewlines(text))

	report := model.NewPairReport(file)
	report.Distinct = table.Distinct()
	report.Total = table.Total()
	for _, pc := range table.MostCommon(top) {
		report.Entries = append(report.Entries, model.PairEntry{
			Pair:    pc.Pair,
			Escaped: escape.Escape(pc.Pair),
			Count:   pc.Count,
			Repair:  RepairHint(pc.Pair),
		})
	}
	return report
}

package model

import (
	"sort"
	"time"
)

// Direction values for PairComparison.
const (
	DirectionImproved  = "improved"
	DirectionWorsened  = "worsened"
	DirectionUnchanged = "unchanged"
)

// PairComparison is the difference between two pair reports of the same file.
type PairComparison struct {
	// File is the compared document.
	File string `json:"file"`

	// PreviousAt is when the older report was generated.
	PreviousAt time.Time `json:"previous_at"`

	// CurrentAt is when the newer report was generated.
	CurrentAt time.Time `json:"current_at"`

	// PreviousDistinct is the distinct pair count of the older report.
	PreviousDistinct int `json:"previous_distinct"`

	// CurrentDistinct is the distinct pair count of the newer report.
	CurrentDistinct int `json:"current_distinct"`

	// Direction is improved, worsened or unchanged.
	Direction string `json:"direction"`

	// Changes lists the pairs whose count differs, largest change first.
	Changes []PairDelta `json:"changes"`
}

// PairDelta is the count change of a single pair.
type PairDelta struct {
	Pair     string `json:"pair"`
	Escaped  string `json:"escaped"`
	Previous int    `json:"previous"`
	Current  int    `json:"current"`
}

// Delta returns Current - Previous.
func (d PairDelta) Delta() int {
	return d.Current - d.Previous
}

// ComparePairReports diffs previous against current.
// Only the entries stored in each report take part in the per-pair diff.
func ComparePairReports(previous, current *PairReport) *PairComparison {
	cmp := &PairComparison{
		File:             current.File,
		PreviousAt:       previous.GeneratedAt,
		CurrentAt:        current.GeneratedAt,
		PreviousDistinct: previous.Distinct,
		CurrentDistinct:  current.Distinct,
		Changes:          []PairDelta{},
	}

	switch {
	case current.Total < previous.Total:
		cmp.Direction = DirectionImproved
	case current.Total > previous.Total:
		cmp.Direction = DirectionWorsened
	default:
		cmp.Direction = DirectionUnchanged
	}

	deltas := make(map[string]*PairDelta)
	for _, e := range previous.Entries {
		deltas[e.Pair] = &PairDelta{Pair: e.Pair, Escaped: e.Escaped, Previous: e.Count}
	}
	for _, e := range current.Entries {
		d, ok := deltas[e.Pair]
		if !ok {
			d = &PairDelta{Pair: e.Pair, Escaped: e.Escaped}
			deltas[e.Pair] = d
		}
		d.Current = e.Count
	}

	for _, d := range deltas {
		if d.Delta() != 0 {
			cmp.Changes = append(cmp.Changes, *d)
		}
	}

	sort.Slice(cmp.Changes, func(i, j int) bool {
		ai, aj := abs(cmp.Changes[i].Delta()), abs(cmp.Changes[j].Delta())
		if ai != aj {
			return ai > aj
		}
		return cmp.Changes[i].Escaped < cmp.Changes[j].Escaped
	})

	return cmp
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

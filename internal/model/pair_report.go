package model

import "time"

// PairReport summarizes adjacent non-ASCII pairs found in a document.
// A high number of distinct pairs usually means the document was decoded
// with the wrong character set at some point.
type PairReport struct {
	// File is the document the pairs were counted in.
	File string `json:"file"`

	// GeneratedAt is when the report was produced.
	GeneratedAt time.Time `json:"generated_at"`

	// Distinct is the number of distinct pairs found.
	Distinct int `json:"distinct"`

	// Total is the number of pair windows tallied, counting repeats.
	Total int `json:"total"`

	// Entries holds the most frequent pairs, most frequent first.
	Entries []PairEntry `json:"entries"`
}

// PairEntry is one row of a PairReport.
type PairEntry struct {
	// Pair is the two-character window as it appears in the text.
	Pair string `json:"pair"`

	// Escaped is Pair in unicode-escape notation.
	Escaped string `json:"escaped"`

	// Count is the number of occurrences.
	Count int `json:"count"`

	// Repair is the text the pair decodes to when it is treated as
	// UTF-8 that was mis-read as Windows-1252. Empty when no such reading exists.
	Repair string `json:"repair,omitempty"`
}

// NewPairReport creates an empty report for file.
func NewPairReport(file string) *PairReport {
	return &PairReport{
		File:        file,
		GeneratedAt: time.Now(),
		Entries:     []PairEntry{},
	}
}

// IsClean reports whether the document contained no non-ASCII pairs.
func (r *PairReport) IsClean() bool {
	return r.Distinct == 0
}

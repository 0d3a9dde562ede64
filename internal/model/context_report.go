package model

import "time"

// ContextReport lists the surroundings of probe sequences in a document.
type ContextReport struct {
	// File is the document that was searched.
	File string `json:"file"`

	// GeneratedAt is when the report was produced.
	GeneratedAt time.Time `json:"generated_at"`

	// Width is the maximum number of characters shown on each side.
	Width int `json:"width"`

	// Probes is the number of probe sequences searched for.
	Probes int `json:"probes"`

	// Matches holds one entry per probe that was found, in probe order.
	Matches []ContextMatch `json:"matches"`
}

// ContextMatch is the first occurrence of a probe and the text around it.
type ContextMatch struct {
	// Probe is the searched sequence.
	Probe string `json:"probe"`

	// Offset is the byte offset of the occurrence in the document.
	Offset int `json:"offset"`

	// Line is the 1-based line number of the occurrence.
	Line int `json:"line"`

	// Before is the text immediately preceding the occurrence.
	Before string `json:"before"`

	// After is the text immediately following the occurrence.
	After string `json:"after"`
}

// Window returns the probe with its surrounding text.
func (m ContextMatch) Window() string {
	return m.Before + m.Probe + m.After
}

// NewContextReport creates an empty report for file.
func NewContextReport(file string, width, probes int) *ContextReport {
	return &ContextReport{
		File:        file,
		GeneratedAt: time.Now(),
		Width:       width,
		Probes:      probes,
		Matches:     []ContextMatch{},
	}
}

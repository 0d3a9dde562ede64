package model

// StripResult describes a marker-bounded deletion.
type StripResult struct {
	// File is the document that was edited.
	File string `json:"file"`

	// Start is the byte offset where the removed region began.
	Start int `json:"start"`

	// End is the byte offset where the removed region ended (exclusive).
	End int `json:"end"`

	// RemovedBytes is End - Start.
	RemovedBytes int `json:"removed_bytes"`

	// Removed is the deleted text.
	Removed string `json:"removed"`

	// DryRun is true when the file was not written.
	DryRun bool `json:"dry_run"`
}

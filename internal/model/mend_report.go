package model

// MendReport collects the results of a mend run over one document.
// Sections are nil when their step did not run or failed.
type MendReport struct {
	// File is the document path.
	File string `json:"file"`

	// Strip is the result of the marker-bounded deletion.
	Strip *StripResult `json:"strip,omitempty"`

	// Pairs is the pair report of the document after stripping.
	Pairs *PairReport `json:"pairs,omitempty"`

	// Contexts is the sequence search report of the document after stripping.
	Contexts *ContextReport `json:"contexts,omitempty"`

	// SavedReportID is the history ID of the saved pair report, 0 if not saved.
	SavedReportID int64 `json:"saved_report_id,omitempty"`

	// Performed lists the steps that ran, in order.
	Performed []string `json:"performed"`

	// Failures lists the steps that returned an error.
	Failures []StepFailure `json:"failures,omitempty"`
}

// StepFailure records a failed step.
type StepFailure struct {
	Step    string `json:"step"`
	Message string `json:"message"`
}

// NewMendReport creates an empty report for file.
func NewMendReport(file string) *MendReport {
	return &MendReport{
		File:      file,
		Performed: []string{},
	}
}

// Failed reports whether any step failed.
func (r *MendReport) Failed() bool {
	return len(r.Failures) > 0
}

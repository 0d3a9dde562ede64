package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nao1215/htmlmend/internal/database"
	"github.com/nao1215/htmlmend/internal/document"
	"github.com/nao1215/htmlmend/internal/inspect"
	"github.com/nao1215/htmlmend/internal/strip"
)

// StripStep removes the marker-bounded block and rewrites the document.
type StripStep struct {
	markers strip.Markers

	// dryRun updates the job text without writing the file.
	dryRun bool

	logger *slog.Logger
}

// StripStepOption configures a StripStep.
type StripStepOption func(*StripStep)

// WithDryRun leaves the file on disk untouched.
func WithDryRun(dryRun bool) StripStepOption {
	return func(s *StripStep) {
		s.dryRun = dryRun
	}
}

// WithStripLogger sets a custom logger for the strip step.
func WithStripLogger(logger *slog.Logger) StripStepOption {
	return func(s *StripStep) {
		s.logger = logger
	}
}

// NewStripStep creates a strip step for markers.
func NewStripStep(markers strip.Markers, opts ...StripStepOption) *StripStep {
	s := &StripStep{
		markers: markers,
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *StripStep) Name() string {
	return "strip"
}

// Do executes the strip step.
func (s *StripStep) Do(_ context.Context, job *Job) error {
	text, span, err := strip.Strip(job.Text, s.markers)
	if err != nil {
		return fmt.Errorf("%s: %w", job.Doc.Path, err)
	}

	if !s.dryRun {
		if err := document.Save(job.Doc, text); err != nil {
			return err
		}
		s.logger.Info("removed region", "file", job.Doc.Path, "bytes", span.Len())
	}

	job.Report.Strip = strip.NewResult(job.Doc.Path, job.Text, span, s.dryRun)
	job.Text = text
	return nil
}

// PairsStep builds the non-ASCII pair report of the current text.
type PairsStep struct {
	// top limits the listed entries; 0 lists all.
	top int
}

// NewPairsStep creates a pairs step listing the top most frequent pairs.
func NewPairsStep(top int) *PairsStep {
	return &PairsStep{top: top}
}

// Name returns the step name.
func (s *PairsStep) Name() string {
	return "pairs"
}

// Do executes the pairs step.
func (s *PairsStep) Do(_ context.Context, job *Job) error {
	job.Report.Pairs = inspect.BuildPairReport(job.Doc.Path, job.Text, s.top)
	return nil
}

// SeqStep searches the current text for probe sequences.
type SeqStep struct {
	probes []string
	width  int
}

// NewSeqStep creates a sequence search step. Probes are decoded text,
// not unicode-escape notation.
func NewSeqStep(probes []string, width int) *SeqStep {
	return &SeqStep{probes: probes, width: width}
}

// Name returns the step name.
func (s *SeqStep) Name() string {
	return "seq"
}

// Do executes the sequence search step.
func (s *SeqStep) Do(_ context.Context, job *Job) error {
	job.Report.Contexts = inspect.BuildContextReport(job.Doc.Path, job.Text, s.probes, s.width)
	return nil
}

// SaveStep stores the full pair report of the current text in the history database.
type SaveStep struct {
	db *database.HistoryDB
}

// NewSaveStep creates a step saving to db.
func NewSaveStep(db *database.HistoryDB) *SaveStep {
	return &SaveStep{db: db}
}

// Name returns the step name.
func (s *SaveStep) Name() string {
	return "save"
}

// Do executes the save step.
func (s *SaveStep) Do(ctx context.Context, job *Job) error {
	full := inspect.BuildPairReport(job.Doc.Path, job.Text, 0)
	id, err := s.db.SavePairReport(ctx, full)
	if err != nil {
		return err
	}
	job.Report.SavedReportID = id
	return nil
}

package strip

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/nao1215/htmlmend/internal/document"
	"github.com/nao1215/htmlmend/internal/model"
)

// Markers are the literal boundaries of the region to delete.
type Markers struct {
	// Start marks the beginning of the region.
	Start string

	// End marks the end of the region. It is kept in the output.
	End string

	// KeepStart keeps the start marker and deletes only what follows it.
	KeepStart bool
}

// Span is a half-open byte range [Start, End) of the original text.
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes in the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// Locate finds the region that Strip would remove.
func Locate(text string, m Markers) (Span, error) {
	start := strings.Index(text, m.Start)
	if start < 0 {
		return Span{}, ErrStartMarkerNotFound
	}
	if m.KeepStart {
		start += len(m.Start)
	}

	end := strings.Index(text, m.End)
	if end < 0 {
		return Span{}, ErrEndMarkerNotFound
	}

	if end <= start {
		return Span{}, fmt.Errorf("%w (start=%d, end=%d)", ErrMarkersMisordered, start, end)
	}

	return Span{Start: start, End: end}, nil
}

// Strip returns text with the marker-bounded region removed.
func Strip(text string, m Markers) (string, Span, error) {
	span, err := Locate(text, m)
	if err != nil {
		return "", Span{}, err
	}
	return text[:span.Start] + text[span.End:], span, nil
}

// NewResult describes the removal of span from the original text of path.
func NewResult(path, original string, span Span, dryRun bool) *model.StripResult {
	return &model.StripResult{
		File:         path,
		Start:        span.Start,
		End:          span.End,
		RemovedBytes: span.Len(),
		Removed:      original[span.Start:span.End],
		DryRun:       dryRun,
	}
}

// Options controls how Run reads and writes the document.
type Options struct {
	// Decoding is used when loading the document.
	Decoding document.Decoding

	// DryRun reports what would be removed without writing the file.
	DryRun bool

	// Logger receives progress messages. Defaults to slog.Default().
	Logger *slog.Logger
}

// Run strips the document at path in place.
// The file is only rewritten when the markers were located successfully.
func Run(path string, m Markers, opts Options) (*model.StripResult, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	doc, err := document.Load(path, opts.Decoding)
	if err != nil {
		return nil, err
	}
	if doc.Dropped > 0 {
		logger.Warn("dropped malformed bytes while reading",
			"file", path,
			"bytes", doc.Dropped,
		)
	}

	text, span, err := Strip(doc.Text, m)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	result := NewResult(path, doc.Text, span, opts.DryRun)

	logger.Debug("located region",
		"file", path,
		"start", span.Start,
		"end", span.End,
		"keep_start", m.KeepStart,
	)

	if opts.DryRun {
		return result, nil
	}

	if err := document.Save(doc, text); err != nil {
		return nil, err
	}

	logger.Info("removed region", "file", path, "bytes", span.Len())
	return result, nil
}

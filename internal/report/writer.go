package report

import (
	"io"

	"github.com/nao1215/htmlmend/internal/model"
)

// Writer defines the interface for report output.
// Each method returns the number of bytes written and any error encountered.
type Writer interface {
	// WritePairs outputs a non-ASCII pair report.
	WritePairs(report *model.PairReport) (int, error)

	// WriteContexts outputs a sequence search report.
	WriteContexts(report *model.ContextReport) (int, error)

	// WriteStrip outputs the result of a strip.
	WriteStrip(result *model.StripResult) (int, error)

	// WriteComparison outputs the difference between two pair reports.
	WriteComparison(cmp *model.PairComparison) (int, error)

	// WriteMend outputs the combined result of a mend run.
	WriteMend(report *model.MendReport) (int, error)
}

// MultiWriter writes to multiple Writers in turn.
// It stops on the first error.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// WritePairs outputs the report to all configured Writers.
func (m *MultiWriter) WritePairs(report *model.PairReport) (int, error) {
	return m.each(func(w Writer) (int, error) { return w.WritePairs(report) })
}

// WriteContexts outputs the report to all configured Writers.
func (m *MultiWriter) WriteContexts(report *model.ContextReport) (int, error) {
	return m.each(func(w Writer) (int, error) { return w.WriteContexts(report) })
}

// WriteStrip outputs the result to all configured Writers.
func (m *MultiWriter) WriteStrip(result *model.StripResult) (int, error) {
	return m.each(func(w Writer) (int, error) { return w.WriteStrip(result) })
}

// WriteComparison outputs the comparison to all configured Writers.
func (m *MultiWriter) WriteComparison(cmp *model.PairComparison) (int, error) {
	return m.each(func(w Writer) (int, error) { return w.WriteComparison(cmp) })
}

// WriteMend outputs the mend report to all configured Writers.
func (m *MultiWriter) WriteMend(report *model.MendReport) (int, error) {
	return m.each(func(w Writer) (int, error) { return w.WriteMend(report) })
}

func (m *MultiWriter) each(fn func(Writer) (int, error)) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := fn(w)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// writeString writes s to the output.
func (b baseWriter) writeString(s string) (int, error) {
	return io.WriteString(b.output, s)
}

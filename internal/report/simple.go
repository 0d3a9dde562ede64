package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/htmlmend/internal/escape"
	"github.com/nao1215/htmlmend/internal/model"
)

// SimpleWriter outputs plain text.
// Without verbose output a pairs report is the distinct count followed by
// "pair count" lines, and a seq report is one "probe -> window" line per
// match, both in unicode-escape notation.
type SimpleWriter struct {
	baseWriter

	// verbose adds repair hints, line numbers and removed text.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// WritePairs prints the distinct count followed by one "pair count" line per entry.
func (w *SimpleWriter) WritePairs(report *model.PairReport) (int, error) {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%d\n", report.Distinct)
	for _, e := range report.Entries {
		fmt.Fprintf(&sb, "%s %d", e.Escaped, e.Count)
		if w.verbose && e.Repair != "" {
			fmt.Fprintf(&sb, " (likely %q)", e.Repair)
		}
		sb.WriteByte('\n')
	}

	return w.writeString(sb.String())
}

// WriteContexts prints one "probe -> window" line per match.
func (w *SimpleWriter) WriteContexts(report *model.ContextReport) (int, error) {
	var sb strings.Builder

	for _, m := range report.Matches {
		fmt.Fprintf(&sb, "%s -> %s", escape.Escape(m.Probe), escape.Escape(m.Window()))
		if w.verbose {
			fmt.Fprintf(&sb, " (line %d, offset %d)", m.Line, m.Offset)
		}
		sb.WriteByte('\n')
	}

	return w.writeString(sb.String())
}

// WriteStrip prints a one-line summary of the deletion.
func (w *SimpleWriter) WriteStrip(result *model.StripResult) (int, error) {
	var sb strings.Builder

	verb := "removed"
	if result.DryRun {
		verb = "would remove"
	}
	fmt.Fprintf(&sb, "%s %d bytes from %s (offsets %d-%d)\n",
		verb, result.RemovedBytes, result.File, result.Start, result.End)

	if w.verbose {
		sb.WriteString("--- removed text ---\n")
		sb.WriteString(result.Removed)
		if !strings.HasSuffix(result.Removed, "\n") {
			sb.WriteByte('\n')
		}
		sb.WriteString("--- end ---\n")
	}

	return w.writeString(sb.String())
}

// WriteComparison prints the distinct count change and per-pair deltas.
func (w *SimpleWriter) WriteComparison(cmp *model.PairComparison) (int, error) {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s: %s\n", cmp.File, cmp.Direction)
	fmt.Fprintf(&sb, "distinct pairs: %d -> %d\n", cmp.PreviousDistinct, cmp.CurrentDistinct)
	fmt.Fprintf(&sb, "previous: %s\n", cmp.PreviousAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&sb, "current:  %s\n", cmp.CurrentAt.Format("2006-01-02 15:04:05"))

	if len(cmp.Changes) == 0 {
		sb.WriteString("no pair count changes\n")
		return w.writeString(sb.String())
	}

	for _, d := range cmp.Changes {
		fmt.Fprintf(&sb, "%s %d -> %d (%+d)\n", d.Escaped, d.Previous, d.Current, d.Delta())
	}

	return w.writeString(sb.String())
}

// WriteMend prints each section under a "[step]" heading, then the failures.
func (w *SimpleWriter) WriteMend(report *model.MendReport) (int, error) {
	var total int
	section := func(name string, write func() (int, error)) error {
		n, err := w.writeString("[" + name + "]\n")
		total += n
		if err != nil {
			return err
		}
		n, err = write()
		total += n
		return err
	}

	if report.Strip != nil {
		if err := section("strip", func() (int, error) { return w.WriteStrip(report.Strip) }); err != nil {
			return total, err
		}
	}
	if report.Pairs != nil {
		if err := section("pairs", func() (int, error) { return w.WritePairs(report.Pairs) }); err != nil {
			return total, err
		}
	}
	if report.Contexts != nil {
		if err := section("seq", func() (int, error) { return w.WriteContexts(report.Contexts) }); err != nil {
			return total, err
		}
	}
	if report.SavedReportID != 0 {
		n, err := w.writeString(fmt.Sprintf("[save]\nsaved pair report #%d\n", report.SavedReportID))
		total += n
		if err != nil {
			return total, err
		}
	}

	for _, f := range report.Failures {
		n, err := w.writeString(fmt.Sprintf("[%s] failed: %s\n", f.Step, f.Message))
		total += n
		if err != nil {
			return total, err
		}
	}

	return total, nil
}

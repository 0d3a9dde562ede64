package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/htmlmend/internal/escape"
	"github.com/nao1215/htmlmend/internal/model"
	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
)

// pieChartSlices is the number of most frequent pairs shown in the pie chart.
const pieChartSlices = 8

// MarkdownWriter outputs reports in GitHub Flavored Markdown.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// WritePairs outputs the pair report as Markdown.
func (w *MarkdownWriter) WritePairs(report *model.PairReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Non-ASCII Pair Report")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"File", code(report.File)},
			{"Generated", report.GeneratedAt.Format("2006-01-02 15:04:05 MST")},
			{"Distinct Pairs", strconv.Itoa(report.Distinct)},
			{"Total Windows", strconv.Itoa(report.Total)},
		},
	})
	md.PlainText("")

	if report.IsClean() {
		md.Tip("No non-ASCII pairs found. The document looks clean.")
		md.PlainText("")
		w.writeFooter(md)
		return len(md.String()), md.Build()
	}

	md.Warningf("%d distinct non-ASCII pair(s) found. Frequent pairs usually point at mis-decoded text.", report.Distinct)
	md.PlainText("")

	md.H2("Most Frequent Pairs")
	md.PlainText("")
	rows := make([][]string, len(report.Entries))
	for i, e := range report.Entries {
		repair := "-"
		if e.Repair != "" {
			repair = code(e.Repair)
		}
		rows[i] = []string{strconv.Itoa(i + 1), code(e.Escaped), strconv.Itoa(e.Count), repair}
	}
	md.Table(markdown.TableSet{
		Header: []string{"#", "Pair", "Count", "Likely Original"},
		Rows:   rows,
	})
	md.PlainText("")

	w.writePieChart(md, report)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writePieChart writes a mermaid pie chart of the most frequent pairs.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, report *model.PairReport) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Pair Distribution"),
		piechart.WithShowData(true),
	)

	for i, e := range report.Entries {
		if i == pieChartSlices {
			break
		}
		chart.LabelAndIntValue(strings.ReplaceAll(e.Escaped, `"`, `'`), uint64(e.Count)) //nolint:gosec // counts are positive
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// WriteContexts outputs the sequence search report as Markdown.
func (w *MarkdownWriter) WriteContexts(report *model.ContextReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Sequence Context Report")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"File", code(report.File)},
			{"Generated", report.GeneratedAt.Format("2006-01-02 15:04:05 MST")},
			{"Probes", strconv.Itoa(report.Probes)},
			{"Found", strconv.Itoa(len(report.Matches))},
			{"Context Width", strconv.Itoa(report.Width)},
		},
	})
	md.PlainText("")

	if len(report.Matches) == 0 {
		md.Tip("None of the probe sequences occur in the document.")
		md.PlainText("")
		w.writeFooter(md)
		return len(md.String()), md.Build()
	}

	rows := make([][]string, len(report.Matches))
	for i, m := range report.Matches {
		rows[i] = []string{
			code(escape.Escape(m.Probe)),
			strconv.Itoa(m.Line),
			code(escape.Escape(m.Window())),
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Probe", "Line", "Context"},
		Rows:   rows,
	})
	md.PlainText("")

	w.writeFooter(md)
	return len(md.String()), md.Build()
}

// WriteStrip outputs the strip result as Markdown.
func (w *MarkdownWriter) WriteStrip(result *model.StripResult) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Strip Result")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"File", code(result.File)},
			{"Start Offset", strconv.Itoa(result.Start)},
			{"End Offset", strconv.Itoa(result.End)},
			{"Removed Bytes", strconv.Itoa(result.RemovedBytes)},
			{"Dry Run", strconv.FormatBool(result.DryRun)},
		},
	})
	md.PlainText("")

	if result.DryRun {
		md.Note("Dry run: the file was not modified.")
		md.PlainText("")
	}

	md.H2("Removed Text")
	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightText, result.Removed)
	md.PlainText("")

	w.writeFooter(md)
	return len(md.String()), md.Build()
}

// WriteComparison outputs the comparison as Markdown.
func (w *MarkdownWriter) WriteComparison(cmp *model.PairComparison) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Pair Report Comparison")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Previous", "Current"},
		Rows: [][]string{
			{"Generated", cmp.PreviousAt.Format("2006-01-02 15:04:05"), cmp.CurrentAt.Format("2006-01-02 15:04:05")},
			{"Distinct Pairs", strconv.Itoa(cmp.PreviousDistinct), strconv.Itoa(cmp.CurrentDistinct)},
		},
	})
	md.PlainText("")

	switch cmp.Direction {
	case model.DirectionImproved:
		md.Tip(fmt.Sprintf("%s improved since the previous report.", cmp.File))
	case model.DirectionWorsened:
		md.Warningf("%s got worse since the previous report.", cmp.File)
	default:
		md.Note(fmt.Sprintf("%s is unchanged since the previous report.", cmp.File))
	}
	md.PlainText("")

	if len(cmp.Changes) > 0 {
		rows := make([][]string, len(cmp.Changes))
		for i, d := range cmp.Changes {
			rows[i] = []string{
				code(d.Escaped),
				strconv.Itoa(d.Previous),
				strconv.Itoa(d.Current),
				fmt.Sprintf("%+d", d.Delta()),
			}
		}
		md.H2("Changed Pairs")
		md.PlainText("")
		md.Table(markdown.TableSet{
			Header: []string{"Pair", "Previous", "Current", "Delta"},
			Rows:   rows,
		})
		md.PlainText("")
	}

	w.writeFooter(md)
	return len(md.String()), md.Build()
}

// WriteMend outputs the mend report as one Markdown document per section,
// preceded by a summary of the run.
func (w *MarkdownWriter) WriteMend(report *model.MendReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Mend Summary")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"File", code(report.File)},
			{"Steps", strings.Join(report.Performed, ", ")},
		},
	})
	md.PlainText("")

	if report.Failed() {
		for _, f := range report.Failures {
			md.Cautionf("Step %s failed: %s", f.Step, f.Message)
			md.PlainText("")
		}
	} else {
		md.Tip("All steps completed.")
		md.PlainText("")
	}
	if report.SavedReportID != 0 {
		md.Note(fmt.Sprintf("Pair report saved as #%d.", report.SavedReportID))
		md.PlainText("")
	}

	if err := md.Build(); err != nil {
		return 0, err
	}
	total := len(md.String())

	parts := []func() (int, error){}
	if report.Strip != nil {
		parts = append(parts, func() (int, error) { return w.WriteStrip(report.Strip) })
	}
	if report.Pairs != nil {
		parts = append(parts, func() (int, error) { return w.WritePairs(report.Pairs) })
	}
	if report.Contexts != nil {
		parts = append(parts, func() (int, error) { return w.WriteContexts(report.Contexts) })
	}
	for _, part := range parts {
		n, err := part()
		total += n
		if err != nil {
			return total, err
		}
	}

	return total, nil
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [htmlmend](https://github.com/nao1215/htmlmend)*")
}

// code formats s as inline code, keeping table cells intact.
func code(s string) string {
	return "`" + strings.ReplaceAll(s, "|", `\|`) + "`"
}

package report

import (
	"encoding/json"
	"io"

	"github.com/nao1215/htmlmend/internal/model"
)

// JSONWriter outputs reports in JSON format.
// This format is designed for tool integration and programmatic processing.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	indent bool

	// indentPrefix is the prefix for each line in indented output.
	indentPrefix string

	// indentString is the indentation string (typically "  " or "\t").
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with default indentation.
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// WritePairs outputs the pair report as JSON.
func (w *JSONWriter) WritePairs(report *model.PairReport) (int, error) {
	return w.writeJSON(report)
}

// WriteContexts outputs the sequence search report as JSON.
func (w *JSONWriter) WriteContexts(report *model.ContextReport) (int, error) {
	return w.writeJSON(report)
}

// WriteStrip outputs the strip result as JSON.
func (w *JSONWriter) WriteStrip(result *model.StripResult) (int, error) {
	return w.writeJSON(result)
}

// WriteComparison outputs the comparison as JSON.
func (w *JSONWriter) WriteComparison(cmp *model.PairComparison) (int, error) {
	return w.writeJSON(cmp)
}

// WriteMend outputs the mend report as a single JSON document.
func (w *JSONWriter) WriteMend(report *model.MendReport) (int, error) {
	return w.writeJSON(report)
}

// writeJSON encodes v to the output followed by a newline.
func (w *JSONWriter) writeJSON(v any) (int, error) {
	var (
		data []byte
		err  error
	)
	if w.indent {
		data, err = json.MarshalIndent(v, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return 0, err
	}

	data = append(data, '\n')
	return w.output.Write(data)
}

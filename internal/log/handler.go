package log

import (
	"context"
	"io"
	"log/slog"

	"github.com/nao1215/htmlmend/internal/escape"
)

// EscapingHandler wraps an slog.Handler and escapes string attribute values.
// Keys and messages are left alone; they are chosen by the program, values
// often come from the document.
type EscapingHandler struct {
	// handler is the underlying slog handler that receives escaped records.
	handler slog.Handler
}

// NewEscapingHandler creates a new EscapingHandler wrapping the given handler.
// If handler is nil, slog.Default().Handler() is used.
func NewEscapingHandler(handler slog.Handler) *EscapingHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &EscapingHandler{handler: handler}
}

// Enabled delegates to the underlying handler.
func (h *EscapingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle escapes the record's attributes and passes it on.
func (h *EscapingHandler) Handle(ctx context.Context, r slog.Record) error {
	escaped := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)

	r.Attrs(func(a slog.Attr) bool {
		escaped.AddAttrs(escapeAttr(a))
		return true
	})

	return h.handler.Handle(ctx, escaped)
}

// WithAttrs returns a new handler with the given attributes escaped and added.
func (h *EscapingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	escaped := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		escaped[i] = escapeAttr(a)
	}
	return &EscapingHandler{handler: h.handler.WithAttrs(escaped)}
}

// WithGroup returns a new handler with the given group name.
func (h *EscapingHandler) WithGroup(name string) slog.Handler {
	return &EscapingHandler{handler: h.handler.WithGroup(name)}
}

// escapeAttr escapes a single attribute, recursing into groups.
func escapeAttr(a slog.Attr) slog.Attr {
	v := a.Value.Resolve()
	switch v.Kind() {
	case slog.KindGroup:
		attrs := v.Group()
		escaped := make([]slog.Attr, len(attrs))
		for i, ga := range attrs {
			escaped[i] = escapeAttr(ga)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(escaped...)}
	case slog.KindString:
		s := v.String()
		if escape.NeedsEscape(s) {
			return slog.String(a.Key, escape.Escape(s))
		}
	}
	return slog.Attr{Key: a.Key, Value: v}
}

// NewLogger creates a text logger with escaping.
// verbose selects slog.LevelDebug, otherwise only warnings and errors are logged.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	return slog.New(NewEscapingHandler(slog.NewTextHandler(w, handlerOptions(verbose))))
}

// NewJSONLogger creates a JSON logger with escaping.
func NewJSONLogger(w io.Writer, verbose bool) *slog.Logger {
	return slog.New(NewEscapingHandler(slog.NewJSONHandler(w, handlerOptions(verbose))))
}

func handlerOptions(verbose bool) *slog.HandlerOptions {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return &slog.HandlerOptions{Level: level}
}

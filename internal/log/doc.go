// Package log provides htmlmend's logger, built on top of the standard
// slog package.
//
// The EscapingHandler rewrites string attribute values that contain control
// or non-ASCII characters into unicode-escape notation before they reach the
// underlying handler. Log lines therefore stay readable even when they quote
// fragments of a document whose encoding is broken, which is exactly the
// kind of document htmlmend is pointed at.
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, verbose)
//	slog.SetDefault(logger)
//
//	logger.Debug("probe found", "probe", "Ôö") // probe=\xd4\xf6
package log

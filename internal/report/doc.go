// Package report provides report generation and output functionality.
//
// This package contains writers for different output formats:
//   - SimpleWriter: terse plain text, one line per pair or match
//   - JSONWriter: structured JSON output for tool integration
//   - MarkdownWriter: GitHub Flavored Markdown for sharing
//
// Report data structures live in the model package; this package only
// renders them. Writers implement the Writer interface so commands can pick
// a format without caring which one it is.
package report

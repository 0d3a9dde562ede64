package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() so that callers can use
// errors.Is() while still showing a readable message.
var (
	// ErrNoFile is returned when no document path is configured.
	ErrNoFile = errors.New("no document specified")

	// ErrEmptyStartMarker is returned when the strip start marker is empty.
	// An empty marker would match at offset zero and remove the head of the file.
	ErrEmptyStartMarker = errors.New("invalid strip configuration: start marker is empty")

	// ErrEmptyEndMarker is returned when the strip end marker is empty.
	ErrEmptyEndMarker = errors.New("invalid strip configuration: end marker is empty")

	// ErrInvalidWidth is returned when the context width is not positive.
	ErrInvalidWidth = errors.New("invalid context width: must be positive")

	// ErrInvalidTop is returned when the number of reported pairs is negative.
	// Use 0 to report every pair.
	ErrInvalidTop = errors.New("invalid top: must be non-negative")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrTeeWithoutOutput is returned when --tee is given without --output.
	// Without a report file the plain text would be printed twice.
	ErrTeeWithoutOutput = errors.New("--tee requires --output")

	// ErrInvalidLogFormat is returned for a log format other than text or json.
	ErrInvalidLogFormat = errors.New("invalid log format: must be text or json")
)

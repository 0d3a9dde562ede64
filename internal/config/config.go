package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// DefaultFile is the document every command works on unless told otherwise.
	DefaultFile = "index.html"

	// DefaultStartMarker opens the obsolete success handler body that strip removes.
	DefaultStartMarker = "function marquerLivraisonReussie() {\n  ouvrirModalLivraisonEncaissement();\n}\n"

	// DefaultEndMarker is the declaration that follows the removed block.
	DefaultEndMarker = "async function marquerLivraisonEchouee()"

	// DefaultTop is the number of pairs listed by the pairs report.
	DefaultTop = 50

	// DefaultWidth is the number of characters shown on each side of a probe.
	DefaultWidth = 20

	// LogFormatText selects slog's key=value text output.
	LogFormatText = "text"

	// LogFormatJSON selects one JSON object per log record.
	LogFormatJSON = "json"

	// AppName is the application name used for XDG directory paths.
	AppName = "htmlmend"
)

// DefaultProbes are the sequences searched by seq, in unicode-escape notation.
var DefaultProbes = []string{
	`\xd4\xf6`, `\xd4\xc7`, `\xd4\xe5`,
	`\xd4\xa3`, `\xd4\xd7`, `\xd4\xe2`,
	`\xd4\xfb`, `\xd4\xeb`, `\xd4\xdc`,
}

// Config holds all configuration options for htmlmend.
// It is populated from defaults, the optional config file and CLI flags,
// in that order, and passed explicitly to every command.
type Config struct {
	// File is the HTML document to read and, for strip, rewrite.
	File string

	// Lenient drops malformed UTF-8 sequences instead of failing.
	// When false, a document that is not valid UTF-8 is rejected.
	Lenient bool

	// StartMarker is the literal text where the stripped region begins.
	StartMarker string

	// EndMarker is the literal text where the stripped region ends.
	// It is never removed.
	EndMarker string

	// KeepStart keeps the start marker and removes only what follows it.
	KeepStart bool

	// DryRun reports what strip would remove without writing the file.
	DryRun bool

	// ContinueOnError runs the remaining mend steps after a failure.
	ContinueOnError bool

	// Top is the number of pairs listed. 0 lists every pair.
	Top int

	// Width is the number of characters shown on each side of a probe.
	Width int

	// Probes are the sequences searched for, in unicode-escape notation.
	Probes []string

	// Verbose enables debug logging.
	Verbose bool

	// LogFormat is LogFormatText or LogFormatJSON.
	LogFormat string

	// ConfigFilePath is the path to the configuration file.
	// If empty, FindConfigFile searches the default locations.
	ConfigFilePath string

	// JSONReport enables JSON output. Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown output. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the report.
	// When set, the report is written to this file instead of stdout.
	ReportFile string

	// Tee also prints the plain text report to stdout when ReportFile is set.
	Tee bool

	// DBDir is the directory holding the pair report history database.
	DBDir string

	// SaveToDB stores pair reports in the history database.
	SaveToDB bool
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		File:        DefaultFile,
		StartMarker: DefaultStartMarker,
		EndMarker:   DefaultEndMarker,
		Top:         DefaultTop,
		Width:       DefaultWidth,
		LogFormat:   LogFormatText,
		Probes:      append([]string(nil), DefaultProbes...),
		DBDir:       XDGDataDir(),
	}
}

// XDGDataDir returns the XDG data directory for htmlmend.
// On Linux: ~/.local/share/htmlmend
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for htmlmend.
// On Linux: ~/.config/htmlmend
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns the first problem found.
func (c *Config) Validate() error {
	if c.File == "" {
		return ErrNoFile
	}
	if c.StartMarker == "" {
		return ErrEmptyStartMarker
	}
	if c.EndMarker == "" {
		return ErrEmptyEndMarker
	}
	if c.Width <= 0 {
		return ErrInvalidWidth
	}
	if c.Top < 0 {
		return ErrInvalidTop
	}
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}
	if c.Tee && c.ReportFile == "" {
		return ErrTeeWithoutOutput
	}
	if c.LogFormat != LogFormatText && c.LogFormat != LogFormatJSON {
		return ErrInvalidLogFormat
	}
	return nil
}

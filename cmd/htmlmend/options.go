package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/nao1215/htmlmend/internal/config"
	"github.com/nao1215/htmlmend/internal/document"
	applog "github.com/nao1215/htmlmend/internal/log"
	"github.com/nao1215/htmlmend/internal/report"
	"github.com/spf13/cobra"
)

// addReportFlags registers the output format flags shared by report commands.
func addReportFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
	cmd.Flags().Bool("tee", false,
		"With --output, also print the plain text report to stdout")
}

// addDBFlag registers the history database directory flag.
func addDBFlag(cmd *cobra.Command) {
	cmd.Flags().String("db-dir", "",
		"Directory of the report history database (default: XDG data directory)")
}

// flagChanged reports whether the flag exists on cmd and was set by the user.
// Commands built on their own in tests lack the root's persistent flags.
func flagChanged(cmd *cobra.Command, name string) bool {
	f := cmd.Flags().Lookup(name)
	return f != nil && f.Changed
}

// buildConfig creates a Config from defaults, the config file and cobra flags,
// in increasing order of precedence.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	if flagChanged(cmd, "config") {
		path, err := cmd.Flags().GetString("config")
		if err != nil {
			return nil, err
		}
		cfg.ConfigFilePath = path
	}

	// If the user explicitly specified a config file path, error if not found.
	// If no path was specified, silently use defaults when no file is found.
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	switch {
	case configPath != "":
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		file.Apply(cfg)
	case cfg.ConfigFilePath != "":
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	}

	if len(args) > 0 {
		cfg.File = args[0]
	}

	if err := applyFlags(cmd, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyFlags copies every flag the user set onto cfg.
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	var err error
	flags := cmd.Flags()

	if flags.Lookup("verbose") != nil {
		if cfg.Verbose, err = flags.GetBool("verbose"); err != nil {
			return err
		}
	}

	boolFlags := map[string]*bool{
		"lenient":    &cfg.Lenient,
		"keep-start": &cfg.KeepStart,
		"dry-run":    &cfg.DryRun,
		"json":       &cfg.JSONReport,
		"markdown":   &cfg.MarkdownReport,
		"save":       &cfg.SaveToDB,
		"continue":   &cfg.ContinueOnError,
		"tee":        &cfg.Tee,
	}
	for name, dst := range boolFlags {
		if flagChanged(cmd, name) {
			if *dst, err = flags.GetBool(name); err != nil {
				return err
			}
		}
	}

	stringFlags := map[string]*string{
		"start":      &cfg.StartMarker,
		"end":        &cfg.EndMarker,
		"output":     &cfg.ReportFile,
		"db-dir":     &cfg.DBDir,
		"log-format": &cfg.LogFormat,
	}
	for name, dst := range stringFlags {
		if flagChanged(cmd, name) {
			if *dst, err = flags.GetString(name); err != nil {
				return err
			}
		}
	}

	intFlags := map[string]*int{
		"top":   &cfg.Top,
		"width": &cfg.Width,
	}
	for name, dst := range intFlags {
		if flagChanged(cmd, name) {
			if *dst, err = flags.GetInt(name); err != nil {
				return err
			}
		}
	}

	if flagChanged(cmd, "probe") {
		if cfg.Probes, err = flags.GetStringArray("probe"); err != nil {
			return err
		}
	}

	return nil
}

// loadConfig builds and validates the configuration and installs the logger.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, *slog.Logger, error) {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("configuration error: %w", err)
	}

	logger := newLogger(cmd, cfg)
	slog.SetDefault(logger)

	return cfg, logger, nil
}

// newLogger returns the stderr logger in the format selected by cfg.
func newLogger(cmd *cobra.Command, cfg *config.Config) *slog.Logger {
	if cfg.LogFormat == config.LogFormatJSON {
		return applog.NewJSONLogger(cmd.ErrOrStderr(), cfg.Verbose)
	}
	return applog.NewLogger(cmd.ErrOrStderr(), cfg.Verbose)
}

// decoding returns the document decoding selected by cfg.
func decoding(cfg *config.Config) document.Decoding {
	if cfg.Lenient {
		return document.DecodeLenient
	}
	return document.DecodeStrict
}

// loadDocument reads cfg.File and warns about dropped bytes.
func loadDocument(cfg *config.Config, logger *slog.Logger) (*document.Document, error) {
	doc, err := document.Load(cfg.File, decoding(cfg))
	if err != nil {
		return nil, err
	}
	if doc.Dropped > 0 {
		logger.Warn("dropped malformed bytes while reading", "file", cfg.File, "bytes", doc.Dropped)
	}
	logger.Debug("loaded document", "file", cfg.File, "bytes", len(doc.Text), "decoding", decoding(cfg).String())
	return doc, nil
}

// openReportOutput returns where the report goes and a function that finishes writing it.
func openReportOutput(cmd *cobra.Command, cfg *config.Config) (io.Writer, func() error, error) {
	if cfg.ReportFile == "" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}

	dir := filepath.Dir(cfg.ReportFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	f, err := os.Create(cfg.ReportFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create report file: %w", err)
	}
	return f, f.Close, nil
}

// newReportWriter returns the report writer selected by cfg.
func newReportWriter(cfg *config.Config, out io.Writer) report.Writer {
	switch {
	case cfg.JSONReport:
		return report.NewJSONWriter(out, report.WithPrettyPrint())
	case cfg.MarkdownReport:
		return report.NewMarkdownWriter(out)
	default:
		return report.NewSimpleWriter(out, report.WithVerbose(cfg.Verbose))
	}
}

// writeReport opens the configured output, calls write and closes the output.
func writeReport(cmd *cobra.Command, cfg *config.Config, logger *slog.Logger, write func(report.Writer) (int, error)) (err error) {
	out, finish, err := openReportOutput(cmd, cfg)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, finish())
	}()

	w := newReportWriter(cfg, out)
	if cfg.Tee {
		w = report.NewMultiWriter(w, report.NewSimpleWriter(cmd.OutOrStdout(), report.WithVerbose(cfg.Verbose)))
	}
	if _, err := write(w); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	if cfg.ReportFile != "" {
		logger.Info("report written", "path", cfg.ReportFile)
	}
	return nil
}

package main

import (
	"github.com/nao1215/htmlmend/internal/config"
	"github.com/nao1215/htmlmend/internal/report"
	"github.com/nao1215/htmlmend/internal/strip"
	"github.com/spf13/cobra"
)

// NewStripCmd creates the strip command.
func NewStripCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "strip [file]",
		Short: "Remove the block of text between two markers",
		Long: `Strip deletes the text from the start marker up to, but not including,
the end marker, and rewrites the document in place.

If either marker is missing, or the end marker does not come after the
start marker, nothing is written and the command fails. Running strip a
second time on its own output therefore always fails.

Examples:
  # Remove the default block from index.html
  htmlmend strip

  # Show what would be removed without touching the file
  htmlmend strip --dry-run -v

  # Use custom markers and keep the start marker
  htmlmend strip --start "<!-- legacy -->" --end "<!-- /legacy -->" --keep-start page.html`,
		Args: cobra.MaximumNArgs(1),
		RunE: runStripCmd,
	}

	cmd.Flags().String("start", config.DefaultStartMarker,
		"Literal start marker")
	cmd.Flags().String("end", config.DefaultEndMarker,
		"Literal end marker (never removed)")
	cmd.Flags().BoolP("keep-start", "k", false,
		"Keep the start marker and remove only what follows it")
	cmd.Flags().BoolP("dry-run", "n", false,
		"Report what would be removed without writing the file")
	addReportFlags(cmd)

	return cmd
}

// runStripCmd executes the strip command.
func runStripCmd(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}

	markers := strip.Markers{
		Start:     cfg.StartMarker,
		End:       cfg.EndMarker,
		KeepStart: cfg.KeepStart,
	}

	result, err := strip.Run(cfg.File, markers, strip.Options{
		Decoding: decoding(cfg),
		DryRun:   cfg.DryRun,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	return writeReport(cmd, cfg, logger, func(w report.Writer) (int, error) {
		return w.WriteStrip(result)
	})
}


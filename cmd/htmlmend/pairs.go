package main

import (
	"fmt"

	"github.com/nao1215/htmlmend/internal/config"
	"github.com/nao1215/htmlmend/internal/database"
	"github.com/nao1215/htmlmend/internal/inspect"
	"github.com/nao1215/htmlmend/internal/report"
	"github.com/spf13/cobra"
)

// NewPairsCmd creates the pairs command.
func NewPairsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pairs [file]",
		Short: "Count adjacent non-ASCII character pairs",
		Long: `Pairs scans every two-character window of the document whose first
character is outside ASCII and counts how often each window occurs.

The first output line is the number of distinct pairs; the following lines
list the most frequent pairs in unicode-escape notation with their counts.
Mis-decoded UTF-8 shows up as a few very frequent pairs.

Examples:
  # Top 50 pairs of index.html
  htmlmend pairs

  # Every pair, with likely original characters
  htmlmend pairs --top 0 -v

  # Save the report to compare it after a fix
  htmlmend pairs --save`,
		Args: cobra.MaximumNArgs(1),
		RunE: runPairsCmd,
	}

	cmd.Flags().IntP("top", "t", config.DefaultTop,
		"Number of most frequent pairs to list (0 lists all)")
	cmd.Flags().BoolP("save", "s", false,
		"Save the report in the history database for 'htmlmend compare'")
	addDBFlag(cmd)
	addReportFlags(cmd)

	return cmd
}

// runPairsCmd executes the pairs command.
func runPairsCmd(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}

	doc, err := loadDocument(cfg, logger)
	if err != nil {
		return err
	}

	result := inspect.BuildPairReport(cfg.File, doc.Text, cfg.Top)
	logger.Debug("counted pairs", "file", cfg.File, "distinct", result.Distinct, "total", result.Total)

	if err := writeReport(cmd, cfg, logger, func(w report.Writer) (int, error) {
		return w.WritePairs(result)
	}); err != nil {
		return err
	}

	if !cfg.SaveToDB {
		return nil
	}

	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		return err
	}
	defer db.Close()

	// Store every pair so later comparisons see counts outside the top list.
	full := result
	if cfg.Top != 0 {
		full = inspect.BuildPairReport(cfg.File, doc.Text, 0)
		full.GeneratedAt = result.GeneratedAt
	}

	id, err := db.SavePairReport(cmd.Context(), full)
	if err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	logger.Info("saved pair report", "id", id, "db", db.Path())

	return nil
}

package main

import (
	"fmt"

	"github.com/nao1215/htmlmend/internal/config"
	"github.com/nao1215/htmlmend/internal/database"
	"github.com/nao1215/htmlmend/internal/pipeline"
	"github.com/nao1215/htmlmend/internal/report"
	"github.com/nao1215/htmlmend/internal/strip"
	"github.com/spf13/cobra"
)

// NewMendCmd creates the mend command.
func NewMendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mend [file]",
		Short: "Strip the document and report what is left",
		Long: `Mend runs strip, pairs and seq on the document one after another.
The pair report and the sequence search describe the text after the block
was removed. With --save the full pair report is stored for 'htmlmend compare'.

By default the run stops at the first failing step. With --continue a
failed strip still leaves the diagnostics of the unchanged document.

Examples:
  # Strip index.html and report the remaining corruption
  htmlmend mend

  # Preview the result as Markdown without touching the file
  htmlmend mend --dry-run --markdown -o mend.md

  # Diagnose even when the block was already removed
  htmlmend mend --continue --save`,
		Args: cobra.MaximumNArgs(1),
		RunE: runMendCmd,
	}

	cmd.Flags().String("start", config.DefaultStartMarker, "Literal start marker")
	cmd.Flags().String("end", config.DefaultEndMarker, "Literal end marker (never removed)")
	cmd.Flags().BoolP("keep-start", "k", false,
		"Keep the start marker and remove only what follows it")
	cmd.Flags().BoolP("dry-run", "n", false,
		"Report what would be removed without writing the file")
	cmd.Flags().IntP("top", "t", config.DefaultTop,
		"Number of most frequent pairs to list (0 lists all)")
	cmd.Flags().StringArrayP("probe", "p", nil,
		"Probe sequence in unicode-escape notation (repeatable, default: built-in list)")
	cmd.Flags().IntP("width", "w", config.DefaultWidth,
		"Maximum number of characters shown on each side")
	cmd.Flags().BoolP("save", "s", false,
		"Save the pair report in the history database")
	cmd.Flags().Bool("continue", false,
		"Run the remaining steps after a failure")
	addDBFlag(cmd)
	addReportFlags(cmd)

	return cmd
}

// runMendCmd executes the mend command.
func runMendCmd(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}

	probes, err := decodeProbes(cfg.Probes)
	if err != nil {
		return err
	}

	doc, err := loadDocument(cfg, logger)
	if err != nil {
		return err
	}

	p := pipeline.New(
		pipeline.WithLogger(logger),
		pipeline.WithContinueOnError(cfg.ContinueOnError),
	)
	p.AddSteps(
		pipeline.NewStripStep(
			strip.Markers{Start: cfg.StartMarker, End: cfg.EndMarker, KeepStart: cfg.KeepStart},
			pipeline.WithDryRun(cfg.DryRun),
			pipeline.WithStripLogger(logger),
		),
		pipeline.NewPairsStep(cfg.Top),
		pipeline.NewSeqStep(probes, cfg.Width),
	)

	if cfg.SaveToDB {
		db, err := database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return err
		}
		defer db.Close()
		p.AddStep(pipeline.NewSaveStep(db))
	}

	logger.Debug("running mend", "file", cfg.File, "steps", p.StepNames())

	job := pipeline.NewJob(doc)
	execErr := p.Execute(cmd.Context(), job)

	if err := writeReport(cmd, cfg, logger, func(w report.Writer) (int, error) {
		return w.WriteMend(job.Report)
	}); err != nil {
		return err
	}

	if execErr != nil {
		return execErr
	}
	if job.Report.Failed() {
		return fmt.Errorf("%d of %d step(s) failed", len(job.Report.Failures), p.StepCount())
	}
	return nil
}

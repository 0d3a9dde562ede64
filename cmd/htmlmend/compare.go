package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/nao1215/htmlmend/internal/database"
	"github.com/nao1215/htmlmend/internal/model"
	"github.com/nao1215/htmlmend/internal/report"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var (
	// errNotEnoughReports is returned when a comparison lacks a second report.
	errNotEnoughReports = errors.New("not enough saved reports to compare")

	// errReportOfOtherFile is returned when --with-id names a report of another document.
	errReportOfOtherFile = errors.New("report belongs to another document")
)

// NewCompareCmd creates the compare command.
// This command compares pair reports stored by 'htmlmend pairs --save'.
func NewCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [file]",
		Short: "Compare saved pair reports of a document",
		Long: `Compare shows how the non-ASCII pair counts of a document changed
between two saved reports. By default the two most recent reports are used.

Reports are saved with 'htmlmend pairs --save'.

Examples:
  # Compare the latest two reports of index.html
  htmlmend compare

  # List the saved reports of a document
  htmlmend compare --list page.html

  # Compare the latest report with report #3
  htmlmend compare --with-id 3

  # List every document with saved reports
  htmlmend compare --list-files`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCompareCmd,
	}

	cmd.Flags().BoolP("list", "l", false,
		"List saved reports for the document")
	cmd.Flags().BoolP("list-files", "L", false,
		"List every document with saved reports")
	cmd.Flags().Int64P("with-id", "i", 0,
		"Compare the latest report with the report of this ID (see --list)")
	addDBFlag(cmd)
	addReportFlags(cmd)

	return cmd
}

// runCompareCmd executes the compare command.
func runCompareCmd(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}

	listHistory, err := cmd.Flags().GetBool("list")
	if err != nil {
		return err
	}
	listFiles, err := cmd.Flags().GetBool("list-files")
	if err != nil {
		return err
	}
	withID, err := cmd.Flags().GetInt64("with-id")
	if err != nil {
		return err
	}

	db, err := database.Open(cfg.DBDir, database.Options{CreateIfNotExists: false, EnableWAL: true})
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	switch {
	case listFiles:
		files, err := db.ListFiles(ctx)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			fmt.Fprintln(out, "No saved reports.")
			return nil
		}
		for _, f := range files {
			fmt.Fprintln(out, f)
		}
		return nil

	case listHistory:
		history, err := db.GetHistory(ctx, cfg.File)
		if err != nil {
			return err
		}
		if len(history) == 0 {
			fmt.Fprintf(out, "No saved reports for %s.\n", cfg.File)
			return nil
		}
		table := tablewriter.NewWriter(out)
		table.Header([]string{"ID", "Generated", "Distinct", "Total"})
		for _, h := range history {
			if err := table.Append([]string{
				strconv.FormatInt(h.ID, 10),
				h.GeneratedAt.Local().Format("2006-01-02 15:04:05"),
				strconv.Itoa(h.Distinct),
				strconv.Itoa(h.Total),
			}); err != nil {
				return err
			}
		}
		return table.Render()
	}

	previous, current, err := selectReports(cmd, db, cfg.File, withID)
	if err != nil {
		return err
	}

	cmp := model.ComparePairReports(previous, current)
	return writeReport(cmd, cfg, logger, func(w report.Writer) (int, error) {
		return w.WriteComparison(cmp)
	})
}

// selectReports returns the older and newer report to compare.
func selectReports(cmd *cobra.Command, db *database.HistoryDB, file string, withID int64) (*model.PairReport, *model.PairReport, error) {
	ctx := cmd.Context()

	if withID != 0 {
		latest, err := db.GetLatestPairReports(ctx, file, 1)
		if err != nil {
			return nil, nil, err
		}
		if len(latest) == 0 {
			return nil, nil, fmt.Errorf("%w: no reports for %s", errNotEnoughReports, file)
		}
		key, err := db.ReportKey(ctx, withID)
		if err != nil {
			return nil, nil, err
		}
		if key == "" {
			return nil, nil, fmt.Errorf("report %d not found", withID)
		}
		if key != database.HistoryKey(file) {
			return nil, nil, fmt.Errorf("%w: report %d is for %s, not %s", errReportOfOtherFile, withID, key, file)
		}
		previous, err := db.GetPairReportByID(ctx, withID)
		if err != nil {
			return nil, nil, err
		}
		if previous == nil {
			return nil, nil, fmt.Errorf("report %d not found", withID)
		}
		return previous, latest[0], nil
	}

	reports, err := db.GetLatestPairReports(ctx, file, 2)
	if err != nil {
		return nil, nil, err
	}
	if len(reports) < 2 {
		return nil, nil, fmt.Errorf("%w: %s has %d saved report(s), run 'htmlmend pairs --save' again after a change",
			errNotEnoughReports, file, len(reports))
	}
	return reports[1], reports[0], nil
}

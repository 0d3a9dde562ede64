package main

import (
	"fmt"

	"github.com/nao1215/htmlmend/internal/config"
	"github.com/nao1215/htmlmend/internal/escape"
	"github.com/nao1215/htmlmend/internal/inspect"
	"github.com/nao1215/htmlmend/internal/report"
	"github.com/spf13/cobra"
)

// NewSeqCmd creates the seq command.
func NewSeqCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seq [file]",
		Short: "Show the context of suspicious character sequences",
		Long: `Seq searches the document for each probe sequence and prints the first
occurrence with up to --width characters on each side. Context never
crosses a line break. Probes that do not occur print nothing.

Probes use unicode-escape notation, where \xhh is the code point U+00hh.

Examples:
  # Search the default probes
  htmlmend seq

  # Search for "Ã©" with 40 characters of context
  htmlmend seq -p '\xc3\xa9' -w 40`,
		Args: cobra.MaximumNArgs(1),
		RunE: runSeqCmd,
	}

	cmd.Flags().StringArrayP("probe", "p", nil,
		"Probe sequence in unicode-escape notation (repeatable, default: built-in list)")
	cmd.Flags().IntP("width", "w", config.DefaultWidth,
		"Maximum number of characters shown on each side")
	addReportFlags(cmd)

	return cmd
}

// runSeqCmd executes the seq command.
func runSeqCmd(cmd *cobra.Command, args []string) error {
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

	result := inspect.BuildContextReport(cfg.File, doc.Text, probes, cfg.Width)
	logger.Debug("searched probes", "file", cfg.File, "probes", len(probes), "found", len(result.Matches))

	return writeReport(cmd, cfg, logger, func(w report.Writer) (int, error) {
		return w.WriteContexts(result)
	})
}

// decodeProbes converts probes from unicode-escape notation.
func decodeProbes(raw []string) ([]string, error) {
	probes := make([]string, 0, len(raw))
	for _, p := range raw {
		decoded, err := escape.Unescape(p)
		if err != nil {
			return nil, fmt.Errorf("invalid probe %q: %w", p, err)
		}
		probes = append(probes, decoded)
	}
	return probes, nil
}

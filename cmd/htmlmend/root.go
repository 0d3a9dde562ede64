package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nao1215/htmlmend/internal/config"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for htmlmend.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "htmlmend",
		Short: "Repair and diagnose a static HTML document",
		Long: `htmlmend works on a single HTML document (index.html by default).

It removes an obsolete block of script text delimited by two literal
markers, and reports traces of encoding corruption: frequent non-ASCII
character pairs and the context around known mis-decoded sequences.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging and output")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: .htmlmend in current or home directory)")
	cmd.PersistentFlags().Bool("lenient", false,
		"Drop malformed UTF-8 instead of failing")
	cmd.PersistentFlags().String("log-format", config.LogFormatText,
		"Log format on stderr: text or json")

	cmd.AddCommand(NewStripCmd())
	cmd.AddCommand(NewPairsCmd())
	cmd.AddCommand(NewSeqCmd())
	cmd.AddCommand(NewMendCmd())
	cmd.AddCommand(NewCompareCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := NewRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

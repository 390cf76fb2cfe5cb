package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lumen-lang/lumen/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	DB    string // SQLite path of the report log
	Unit  string // filter by unit name
	RunID string // show one full report instead of the run list
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List stored analysis runs",
		Long: `History reads the report log written by analyze --trace-db and lists
stored runs, newest first. With --run it prints one full report.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DB, "db", "", "SQLite database path (required)")
	cmd.Flags().StringVar(&opts.Unit, "unit", "", "only show runs for this unit")
	cmd.Flags().StringVar(&opts.RunID, "run", "", "show the full report for one run ID")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	s, err := store.Open(opts.DB)
	if err != nil {
		_ = formatter.Error("E001", err.Error(), nil)
		return WrapExitError(ExitCommandError, "opening report database", err)
	}
	defer s.Close()

	if opts.RunID != "" {
		return historyReport(formatter, s, cmd, opts.RunID)
	}
	return historyList(formatter, s, cmd, opts.Unit)
}

func historyReport(formatter *OutputFormatter, s *store.Store, cmd *cobra.Command, runID string) error {
	r, err := s.GetReport(cmd.Context(), runID)
	if err != nil {
		_ = formatter.Error("E001", err.Error(), nil)
		return WrapExitError(ExitCommandError, "reading report", err)
	}
	if r == nil {
		msg := fmt.Sprintf("no report for run %s", runID)
		_ = formatter.Error("E002", msg, nil)
		return NewExitError(ExitCommandError, msg)
	}

	if formatter.Format != "text" {
		return formatter.Success(r)
	}

	fmt.Fprintf(formatter.Writer, "run %s (unit %s)\n", r.RunID, r.Unit)
	for _, name := range r.Ordered {
		fmt.Fprintf(formatter.Writer, "  %s\n", name)
	}
	for _, c := range r.Cycles {
		fmt.Fprintf(formatter.Writer, "  %s\n", c.Message)
	}
	return nil
}

func historyList(formatter *OutputFormatter, s *store.Store, cmd *cobra.Command, unit string) error {
	rows, err := s.ListRows(cmd.Context(), unit)
	if err != nil {
		_ = formatter.Error("E001", err.Error(), nil)
		return WrapExitError(ExitCommandError, "listing reports", err)
	}

	if formatter.Format != "text" {
		return formatter.Success(rows)
	}

	if len(rows) == 0 {
		fmt.Fprintln(formatter.Writer, "no stored runs")
		return nil
	}
	for _, row := range rows {
		fmt.Fprintf(formatter.Writer, "%s  %s  %s  %d ordered, %d cycle(s)\n",
			row.CreatedAt, row.RunID, row.Unit, row.OrderedCount, row.CycleCount)
	}
	return nil
}

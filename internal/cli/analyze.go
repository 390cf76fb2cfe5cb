package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/lumen-lang/lumen/internal/constdep"
	"github.com/lumen-lang/lumen/internal/fixture"
	"github.com/lumen-lang/lumen/internal/store"
)

// AnalyzeOptions holds flags for the analyze command.
type AnalyzeOptions struct {
	*RootOptions
	TraceDB string // SQLite path for the report log
}

// NewAnalyzeCommand creates the analyze command.
func NewAnalyzeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AnalyzeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "analyze <units-dir>",
		Short: "Analyze constant dependencies in Lumen units",
		Long: `Analyze loads every unit fixture in a directory, discovers the positions
that require compile-time constants, extracts their dependencies, and
schedules them for evaluation.

Circular constant references are reported per cycle group and make the
command exit with status 1.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Errors get our own formatting
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.TraceDB, "trace-db", "", "append reports to this SQLite database")

	return cmd
}

func runAnalyze(opts *AnalyzeOptions, unitsDir string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	units, err := fixture.LoadDir(unitsDir)
	if err != nil {
		return outputAnalyzeError(formatter, err)
	}
	slog.Debug("loaded units", "dir", unitsDir, "count", len(units))

	reports := make([]*constdep.Report, 0, len(units))
	cycleCount := 0
	for _, unit := range units {
		analysis, err := constdep.Analyze(unit)
		if err != nil {
			return outputAnalyzeError(formatter, err)
		}
		slog.Debug("analyzed unit",
			"unit", analysis.Unit,
			"run_id", analysis.RunID,
			"ordered", len(analysis.Ordered),
			"cycles", len(analysis.Cycles))
		cycleCount += len(analysis.Cycles)
		reports = append(reports, analysis.Report())
	}

	if opts.TraceDB != "" {
		if err := writeReports(cmd, opts.TraceDB, reports); err != nil {
			return outputAnalyzeError(formatter, err)
		}
	}

	if err := outputReports(formatter, reports); err != nil {
		return err
	}

	if cycleCount > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("found %d circular constant reference(s)", cycleCount))
	}
	return nil
}

func writeReports(cmd *cobra.Command, path string, reports []*constdep.Report) error {
	s, err := store.Open(path)
	if err != nil {
		return err
	}
	defer s.Close()

	for _, r := range reports {
		if err := s.WriteReport(cmd.Context(), r); err != nil {
			return err
		}
	}
	return nil
}

func outputReports(formatter *OutputFormatter, reports []*constdep.Report) error {
	if formatter.Format != "text" {
		return formatter.Success(reports)
	}

	for _, r := range reports {
		if len(r.Cycles) == 0 {
			fmt.Fprintf(formatter.Writer, "✓ %s: %d constant(s) ordered\n", r.Unit, len(r.Ordered))
		} else {
			fmt.Fprintf(formatter.Writer, "✗ %s: %d constant(s) ordered, %d cycle(s)\n",
				r.Unit, len(r.Ordered), len(r.Cycles))
			for _, c := range r.Cycles {
				fmt.Fprintf(formatter.Writer, "  %s\n", c.Message)
			}
		}
		if formatter.Verbose {
			for _, name := range r.Ordered {
				fmt.Fprintf(formatter.Writer, "  %s\n", name)
			}
		}
	}
	return nil
}

// outputAnalyzeError reports a load or analysis error. Both are
// command-level errors (exit code 2).
func outputAnalyzeError(formatter *OutputFormatter, err error) error {
	code, message := analyzeErrorCode(err)
	_ = formatter.Error(code, message, nil)
	return WrapExitError(ExitCommandError, fmt.Sprintf("%s: %s", code, message), nil)
}

// analyzeErrorCode extracts a stable error code and message.
func analyzeErrorCode(err error) (string, string) {
	var loadErr *fixture.LoadError
	if errors.As(err, &loadErr) {
		return loadErr.Code, loadErr.Message
	}
	var inconsistency *constdep.InconsistencyError
	if errors.As(err, &inconsistency) {
		msg := inconsistency.Message
		if inconsistency.Pos.IsValid() {
			msg = fmt.Sprintf("%s: %s", inconsistency.Pos, inconsistency.Message)
		}
		return inconsistency.Code, msg
	}
	return "E001", err.Error()
}

package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/jarx/after15/internal/cli/formatter"
	"github.com/jarx/after15/internal/config"
	"github.com/jarx/after15/internal/domain"
	"github.com/jarx/after15/internal/service"
)

// App holds the wired service and resolved configuration used by CLI
// commands.
type App struct {
	Overtime service.OvertimeService
	Config   config.Config
	Schedule domain.Schedule
	Loc      *time.Location
	Now      func() time.Time
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now().In(a.Loc)
	}
	return time.Now().In(a.Loc)
}

// NewRootCmd creates the top-level "after15" command and registers all
// subcommands against the provided App. Running the root with no
// subcommand prints the full report.
func NewRootCmd(app *App) *cobra.Command {
	var debug bool
	var noColor bool

	root := &cobra.Command{
		Use:           "after15",
		Short:         "Overtime tracker for coding session logs",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if debug {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

			if noColor || !isatty.IsTerminal(os.Stdout.Fd()) {
				formatter.DisableColor()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, app, "")
		},
	}

	root.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	root.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	root.AddCommand(
		newReportCmd(app),
		newStatuslineCmd(app),
		newExplainCmd(app),
		newResyncCmd(app),
		newPdfCmd(app),
	)

	return root
}

func newReportCmd(app *App) *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show the full overtime report",
		RunE: func(cmd *cobra.Command, args []string) error {
			if month != "" {
				if _, err := time.Parse("2006-01", month); err != nil {
					return fmt.Errorf("invalid month %q, expected YYYY-MM", month)
				}
			}
			return runReport(cmd, app, month)
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "Limit the report to one month (YYYY-MM)")

	return cmd
}

func runReport(cmd *cobra.Command, app *App, month string) error {
	totals, err := app.Overtime.Overview(30)
	// Overview returns valid totals even when the ledger write failed.
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
	}

	fmt.Fprint(cmd.OutOrStdout(), formatter.FormatReport(totals, app.Config, app.Schedule, month, app.now()))
	return nil
}

func newStatuslineCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "statusline",
		Short: "Print a compact today/month overtime line",
		RunE: func(cmd *cobra.Command, args []string) error {
			totals, err := app.Overtime.Overview(7)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatStatusline(totals, app.Schedule, app.now()))
			return nil
		},
	}
}

func newExplainCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "explain <date>",
		Short: "Break down one day session by session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := time.ParseInLocation("2006-01-02", args[0], app.Loc)
			if err != nil {
				return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", args[0])
			}

			exp, err := app.Overtime.ExplainDate(date)
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatExplanation(exp, app.Config.Projects.TrackedPath))
			return nil
		},
	}
}

func newPdfCmd(app *App) *cobra.Command {
	var month string
	var output string

	cmd := &cobra.Command{
		Use:   "pdf",
		Short: "Write one month's project overtime and pay as a PDF",
		RunE: func(cmd *cobra.Command, args []string) error {
			if month != "" {
				if _, err := time.Parse("2006-01", month); err != nil {
					return fmt.Errorf("invalid month %q, expected YYYY-MM", month)
				}
			} else {
				month = app.now().Format("2006-01")
			}

			if output == "" {
				home, err := os.UserHomeDir()
				if err != nil {
					return fmt.Errorf("finding home directory: %w", err)
				}
				output = filepath.Join(home, fmt.Sprintf("overtime_%s.pdf", month))
			}

			totals, err := app.Overtime.Overview(30)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
			}

			if err := formatter.WritePDF(output, totals, app.Config, month, app.now()); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "Month to report (YYYY-MM), default current")
	cmd.Flags().StringVar(&output, "output", "", "Output file (default ~/overtime_<month>.pdf)")

	return cmd
}

func newResyncCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "resync",
		Short: "Rebuild the ledger from all logs, discarding stored days",
		RunE: func(cmd *cobra.Command, args []string) error {
			days, err := app.Overtime.Resync()
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Resynced %d day(s) from logs.\n", days)
			return nil
		},
	}
}

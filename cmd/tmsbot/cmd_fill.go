package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tmsbot/internal/browser"
	"tmsbot/internal/config"
	"tmsbot/internal/csvio"
	"tmsbot/internal/netcheck"
	"tmsbot/internal/orchestrator"
	"tmsbot/internal/weeks"
)

var (
	fillCSV         string
	fillWeeks       string
	fillYear        int
	fillHeadless    bool
	fillAutoSubmit  bool
	fillNoOverwrite bool
	fillDryRun      bool
	fillStrict      bool
)

var fillCmd = &cobra.Command{
	Use:   "fill",
	Short: "Fill the timesheet from CSV data across one or more weeks",
	Long: `Fills the TMS timesheet from a CSV file.

The week range accepts single weeks ("48"), inclusive ranges ("48-50") and
comma-separated combinations ("48-50,52"). Navigation is bounded to -20/+10
weeks around the week displayed after login.`,
	RunE: runFill,
}

func init() {
	fillCmd.Flags().StringVar(&fillCSV, "csv", "", "path to CSV file with timesheet data (required)")
	fillCmd.Flags().StringVar(&fillWeeks, "weeks", "", "target week range, e.g. \"48\" or \"48-50,52\" (default: current week)")
	fillCmd.Flags().IntVar(&fillYear, "year", 0, "year of the target weeks (default: baseline year)")
	fillCmd.Flags().BoolVar(&fillHeadless, "headless", false, "run the browser without a visible window")
	fillCmd.Flags().BoolVar(&fillAutoSubmit, "auto-submit", false, "click the save control after each filled week")
	fillCmd.Flags().BoolVar(&fillNoOverwrite, "no-overwrite", false, "skip fields that already have values")
	fillCmd.Flags().BoolVar(&fillDryRun, "dry-run", false, "validate CSV and week range without opening a browser")
	fillCmd.Flags().BoolVar(&fillStrict, "strict", false, "abort the run when a week records any cell error")
	_ = fillCmd.MarkFlagRequired("csv")
}

func buildFillConfig() (config.Config, error) {
	cfg := config.Default()
	if configPath != "" {
		if err := cfg.LoadFile(configPath); err != nil {
			return cfg, err
		}
	}
	cfg.CSVPath = fillCSV
	cfg.Year = fillYear
	cfg.Headless = fillHeadless
	cfg.AutoSubmit = fillAutoSubmit
	cfg.NoOverwrite = fillNoOverwrite
	cfg.DryRun = fillDryRun
	cfg.Strict = fillStrict
	cfg.Verbose = verbose

	if fillWeeks != "" {
		nums, err := weeks.ParseRange(fillWeeks)
		if err != nil {
			return cfg, err
		}
		cfg.Weeks = nums
	}
	if len(cfg.Weeks) == 0 {
		// No explicit range: fill the week currently displayed.
		_, isoWeek := nowISOWeek()
		cfg.Weeks = []int{isoWeek}
	}
	return cfg, cfg.Validate()
}

func runFill(cmd *cobra.Command, args []string) error {
	cfg, err := buildFillConfig()
	if err != nil {
		return err
	}

	rows, err := csvio.Load(cfg.CSVPath)
	if err != nil {
		return err
	}
	logger.Info("CSV loaded", zap.String("path", cfg.CSVPath), zap.Int("rows", len(rows)))
	for i, row := range rows {
		logger.Info("project to fill",
			zap.Int("index", i+1),
			zap.String("project", row.ProjectNumber),
			zap.Int("days", row.DaysWithValues()),
			zap.Float64("hours", row.TotalHours()))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := orchestrator.Options{
		Overwrite:    !cfg.NoOverwrite,
		AutoSubmit:   cfg.AutoSubmit,
		Strict:       cfg.Strict,
		DryRun:       cfg.DryRun,
		TableTimeout: cfg.ElementTimeout,
	}

	if cfg.DryRun {
		orch := orchestrator.New(orchestrator.Deps{}, opts, logger)
		if _, err := orch.Run(ctx, rows, cfg.Weeks, cfg.Year); err != nil {
			return err
		}
		fmt.Println("\nDry run complete. No browser operations performed.")
		return nil
	}

	if err := netcheck.Check(ctx, cfg.TMSURL, cfg.PageLoadTimeout); err != nil {
		fmt.Fprintln(os.Stderr, netcheck.Hint(cfg.TMSURL, err))
		return err
	}

	session := browser.NewSession(browser.Config{
		URL:               cfg.TMSURL,
		Headless:          cfg.Headless,
		NavigationTimeout: cfg.NavigationTimeout,
		ElementTimeout:    cfg.ElementTimeout,
		SettleDelay:       cfg.SettleDelay,
	}, logger)
	if err := session.Start(ctx); err != nil {
		return err
	}
	defer session.Close()

	deps := orchestrator.Deps{
		Gate:      stdinGate{session: session},
		Navigator: browser.NewNavigator(session, logger),
		Table:     browser.NewTable(session, logger),
	}

	summary, err := orchestrator.New(deps, opts, logger).Run(ctx, rows, cfg.Weeks, cfg.Year)
	if summary != nil {
		fmt.Print(summary.Format())
	}
	if err != nil {
		return err
	}
	if summary.HasFailures() {
		return fmt.Errorf("operation completed with %d error(s)", summary.TotalErrors())
	}
	logger.Info("operation completed successfully")
	return nil
}

// stdinGate adapts the session's manual login prompt to the orchestrator's
// LoginGate.
type stdinGate struct {
	session *browser.Session
}

func (g stdinGate) AwaitLogin() error {
	return g.session.AwaitLogin(os.Stdin, os.Stdout)
}

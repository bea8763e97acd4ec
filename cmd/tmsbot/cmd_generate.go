package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tmsbot/internal/browser"
	"tmsbot/internal/config"
	"tmsbot/internal/csvio"
	"tmsbot/internal/extract"
	"tmsbot/internal/netcheck"
	"tmsbot/internal/timesheet"
)

var (
	genOut      string
	genForce    bool
	genXLSX     bool
	genFromHTML string
	genHeadless bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a zero-filled CSV template from the timesheet table",
	Long: `Reverses the rendered timesheet table into a CSV template: one row per
project, weekday columns zero-filled. By default this opens a browser and
waits for manual login; with --from-html it reads a saved page snapshot
instead and needs no session at all.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&genOut, "out", "timesheet_template.csv", "output path for the template")
	generateCmd.Flags().BoolVar(&genForce, "force", false, "overwrite the output file if it exists")
	generateCmd.Flags().BoolVar(&genXLSX, "xlsx", false, "also write an .xlsx workbook next to the CSV")
	generateCmd.Flags().StringVar(&genFromHTML, "from-html", "", "extract from a saved page snapshot instead of a live session")
	generateCmd.Flags().BoolVar(&genHeadless, "headless", false, "run the browser without a visible window")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	rows, err := captureRows()
	if err != nil {
		return err
	}

	projects, err := extract.New(logger).Projects(rows)
	if err != nil {
		return err
	}
	logger.Info("projects extracted", zap.Int("count", len(projects)))

	if err := writeTemplates(projects); err != nil {
		return err
	}
	fmt.Printf("Template written to %s (%d projects)\n", genOut, len(projects))
	return nil
}

func captureRows() ([]extract.RowData, error) {
	if genFromHTML != "" {
		f, err := os.Open(genFromHTML)
		if err != nil {
			return nil, fmt.Errorf("%w: open snapshot: %v", timesheet.ErrConfiguration, err)
		}
		defer f.Close()
		logger.Info("extracting from saved snapshot", zap.String("path", genFromHTML))
		return extract.FromHTML(f)
	}

	cfg := config.Default()
	if configPath != "" {
		if err := cfg.LoadFile(configPath); err != nil {
			return nil, err
		}
	}
	cfg.Headless = genHeadless

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := netcheck.Check(ctx, cfg.TMSURL, cfg.PageLoadTimeout); err != nil {
		fmt.Fprintln(os.Stderr, netcheck.Hint(cfg.TMSURL, err))
		return nil, err
	}

	session := browser.NewSession(browser.Config{
		URL:               cfg.TMSURL,
		Headless:          cfg.Headless,
		NavigationTimeout: cfg.NavigationTimeout,
		ElementTimeout:    cfg.ElementTimeout,
		SettleDelay:       cfg.SettleDelay,
	}, logger)
	if err := session.Start(ctx); err != nil {
		return nil, err
	}
	defer session.Close()

	if err := session.AwaitLogin(os.Stdin, os.Stdout); err != nil {
		return nil, err
	}

	table := browser.NewTable(session, logger)
	if err := table.WaitForTable(cfg.ElementTimeout); err != nil {
		return nil, err
	}
	// Give late-rendering cells a moment before the one-shot capture.
	time.Sleep(cfg.SettleDelay)
	return table.CaptureRows()
}

func writeTemplates(projects []timesheet.ExtractedProject) error {
	f, err := csvio.TemplateFile(genOut, genForce)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := csvio.WriteTemplate(f, projects); err != nil {
		return err
	}

	if genXLSX {
		xlsxPath := strings.TrimSuffix(genOut, ".csv") + ".xlsx"
		if err := csvio.WriteTemplateXLSX(xlsxPath, projects); err != nil {
			return err
		}
		logger.Info("workbook written", zap.String("path", xlsxPath))
	}
	return nil
}

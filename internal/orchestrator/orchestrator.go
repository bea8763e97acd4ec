// Package orchestrator drives a multi-week fill run: manual login gate,
// baseline detection, bounded week navigation, per-week cell filling and
// the final summary. Error policy is two-tier: navigation-class errors
// abort the remaining run immediately, cell/row errors accumulate into the
// week's result.
package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tmsbot/internal/browser"
	"tmsbot/internal/timesheet"
	"tmsbot/internal/weeks"
)

// LoginGate blocks until a human signals that login is complete.
type LoginGate interface {
	AwaitLogin() error
}

// WeekNavigator detects the baseline and moves the UI between weeks.
type WeekNavigator interface {
	DetectBaseline() (weeks.NavigationState, error)
	NavigateTo(state weeks.NavigationState, target weeks.Stamp) (weeks.NavigationState, error)
}

// TableDriver matches rows and saves the week once filling is done.
type TableDriver interface {
	WaitForTable(timeout time.Duration) error
	FindRow(projectNumber string) (browser.RowHandle, error)
	Save() error
}

// Options are the run flags the orchestrator consumes. Overwrite is the
// inversion of the CLI's --no-overwrite.
type Options struct {
	Overwrite    bool
	AutoSubmit   bool
	Strict       bool
	DryRun       bool
	TableTimeout time.Duration
}

// Deps are the collaborators for one run. In tests they are fakes; in
// production they are the browser-backed implementations.
type Deps struct {
	Gate      LoginGate
	Navigator WeekNavigator
	Table     TableDriver
}

// Orchestrator owns the loop over target weeks.
type Orchestrator struct {
	deps Deps
	opts Options
	log  *zap.Logger
}

// New builds an Orchestrator.
func New(deps Deps, opts Options, log *zap.Logger) *Orchestrator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Orchestrator{deps: deps, opts: opts, log: log}
}

// Run executes the whole fill operation. The returned summary is always
// usable, even when err is non-nil: a partial run reports the weeks it
// completed plus the abort reason so the user can resume manually.
//
// year may be zero, in which case targets resolve against the baseline's
// year. weekNums must already be parsed (1..53 each).
func (o *Orchestrator) Run(ctx context.Context, rows []timesheet.TimesheetRow, weekNums []int, year int) (*timesheet.RunSummary, error) {
	runID := uuid.NewString()
	log := o.log.With(zap.String("run", runID))

	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no timesheet rows to fill", timesheet.ErrConfiguration)
	}
	if len(weekNums) == 0 {
		return nil, fmt.Errorf("%w: no target weeks", timesheet.ErrConfiguration)
	}

	if o.opts.DryRun {
		// Validation only: CSV and week range are already parsed, so a
		// dry run stops before the browser is ever touched.
		log.Info("dry run: inputs validated, no browser operations performed",
			zap.Int("rows", len(rows)), zap.Ints("weeks", weekNums))
		return timesheet.NewRunSummary(runID, len(weekNums), rows), nil
	}

	if err := o.deps.Gate.AwaitLogin(); err != nil {
		return nil, fmt.Errorf("login gate: %w", err)
	}

	state, err := o.deps.Navigator.DetectBaseline()
	if err != nil {
		return nil, err
	}

	targets, err := weeks.Resolve(weekNums, year, state.Baseline)
	if err != nil {
		// Out-of-range targets are rejected here, before any navigation.
		return nil, err
	}

	summary := timesheet.NewRunSummary(runID, len(targets), rows)

	for _, target := range targets {
		if err := ctx.Err(); err != nil {
			summary.Abort(err.Error())
			return summary, err
		}

		state, err = o.deps.Navigator.NavigateTo(state, target)
		if err != nil {
			summary.Abort(err.Error())
			return summary, err
		}

		if err := o.deps.Table.WaitForTable(o.opts.TableTimeout); err != nil {
			summary.Abort(err.Error())
			return summary, err
		}

		result := o.fillWeek(log, rows, target)

		if o.opts.AutoSubmit {
			if err := o.deps.Table.Save(); err != nil {
				summary.AddWeek(result)
				summary.Abort(err.Error())
				return summary, err
			}
		}

		summary.AddWeek(result)
		log.Info("week done",
			zap.Int("week", target.Week),
			zap.Int("filled", result.Filled),
			zap.Int("skipped", result.Skipped),
			zap.Int("errors", len(result.Errors)))

		if o.opts.Strict && len(result.Errors) > 0 {
			err := fmt.Errorf("strict mode: week %d recorded %d error(s)", target.Week, len(result.Errors))
			summary.Abort(err.Error())
			return summary, err
		}
	}

	return summary, nil
}

// fillWeek attempts every CSV row against the displayed week, in CSV row
// order then weekday order. Row and cell failures are recorded, never
// thrown: a project missing from the table must not cost the rest of the
// week.
func (o *Orchestrator) fillWeek(log *zap.Logger, rows []timesheet.TimesheetRow, target weeks.Stamp) timesheet.FillResult {
	result := timesheet.FillResult{Week: target.Week, Year: target.Year}

	for i, row := range rows {
		log.Debug("processing project",
			zap.Int("index", i+1), zap.Int("total", len(rows)),
			zap.String("project", row.ProjectNumber))

		handle, err := o.deps.Table.FindRow(row.ProjectNumber)
		if err != nil {
			result.RecordRowError(row.ProjectNumber, err.Error())
			log.Warn("project row not matched",
				zap.String("project", row.ProjectNumber), zap.Error(err))
			continue
		}

		for _, day := range timesheet.Weekdays {
			hour, ok := row.Hour(day)
			if !ok {
				continue
			}
			out, err := handle.FillCell(day, hour, o.opts.Overwrite)
			if err != nil {
				out = timesheet.CellOutcome{Status: timesheet.CellErrored, Reason: err.Error()}
			}
			result.RecordOutcome(row.ProjectNumber, day, out)
		}
	}

	return result
}

package timesheet

import (
	"fmt"
	"strings"
)

// RunSummary aggregates the per-week FillResults of one invocation. It is
// always produced, even when the run aborts partway, so the user can resume
// manually from the failure point.
type RunSummary struct {
	RunID        string
	Weeks        []FillResult
	DailyTotals  map[Weekday]float64
	Aborted      bool
	AbortReason  string
	WeeksPlanned int
}

// NewRunSummary seeds a summary with the planned week count and the
// per-day totals computed from the input rows.
func NewRunSummary(runID string, planned int, rows []TimesheetRow) *RunSummary {
	totals := make(map[Weekday]float64, len(Weekdays))
	for _, day := range Weekdays {
		totals[day] = 0
	}
	for _, row := range rows {
		for day, h := range row.Hours {
			totals[day] += h.Value
		}
	}
	return &RunSummary{RunID: runID, DailyTotals: totals, WeeksPlanned: planned}
}

// AddWeek appends a completed (or partially completed) week result.
func (s *RunSummary) AddWeek(r FillResult) { s.Weeks = append(s.Weeks, r) }

// Abort marks the run as aborted with the fatal reason.
func (s *RunSummary) Abort(reason string) {
	s.Aborted = true
	s.AbortReason = reason
}

// TotalFilled returns the filled-cell count across all weeks.
func (s *RunSummary) TotalFilled() int {
	var n int
	for _, w := range s.Weeks {
		n += w.Filled
	}
	return n
}

// TotalSkipped returns the skipped-cell count across all weeks.
func (s *RunSummary) TotalSkipped() int {
	var n int
	for _, w := range s.Weeks {
		n += w.Skipped
	}
	return n
}

// TotalErrors returns the error count across all weeks.
func (s *RunSummary) TotalErrors() int {
	var n int
	for _, w := range s.Weeks {
		n += len(w.Errors)
	}
	return n
}

// HasFailures reports whether any week recorded an error or the run aborted.
func (s *RunSummary) HasFailures() bool { return s.Aborted || s.TotalErrors() > 0 }

// Format renders the human-readable end-of-run report.
func (s *RunSummary) Format() string {
	var b strings.Builder
	sep := strings.Repeat("=", 60)
	fmt.Fprintf(&b, "\n%s\nFILL OPERATION SUMMARY  (run %s)\n%s\n", sep, s.RunID, sep)
	fmt.Fprintf(&b, "\nWeeks: %d attempted of %d planned\n", len(s.Weeks), s.WeeksPlanned)

	for _, w := range s.Weeks {
		fmt.Fprintf(&b, "\nWeek %d, %d:\n", w.Week, w.Year)
		fmt.Fprintf(&b, "  Filled:  %d\n", w.Filled)
		fmt.Fprintf(&b, "  Skipped: %d\n", w.Skipped)
		fmt.Fprintf(&b, "  Errors:  %d\n", len(w.Errors))
		for _, e := range w.Errors {
			fmt.Fprintf(&b, "    - %s\n", e)
		}
	}

	fmt.Fprintf(&b, "\nTotals: filled=%d skipped=%d errors=%d\n",
		s.TotalFilled(), s.TotalSkipped(), s.TotalErrors())

	fmt.Fprintf(&b, "\nDaily totals (per week, from CSV):\n")
	for _, day := range Weekdays {
		name := strings.ToUpper(string(day[0])) + string(day[1:])
		fmt.Fprintf(&b, "  %-10s %.2f hours\n", name+":", s.DailyTotals[day])
	}

	if s.Aborted {
		fmt.Fprintf(&b, "\nRUN ABORTED: %s\n", s.AbortReason)
	}
	b.WriteString(sep + "\n")
	return b.String()
}

// Package timesheet defines the data model shared by the CSV layer, the
// browser automation layer, and the fill orchestrator: timesheet rows,
// per-cell outcomes, per-week results, and the run summary.
package timesheet

import (
	"fmt"
	"strconv"
	"strings"
)

// Weekday is a lowercase weekday name as it appears in both the CSV header
// and the input field name attributes of the timesheet table.
type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
	Sunday    Weekday = "sunday"
)

// Weekdays lists all weekdays in fill order. Cell fills for a row are
// applied in exactly this order.
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// Hour is a non-negative decimal hours value. The raw CSV text is kept so
// the value can be written into the form field with exactly the precision
// the user supplied ("7.40" stays "7.40", not "7.4").
type Hour struct {
	Raw   string
	Value float64
}

// ParseHour parses a CSV cell into an Hour. Returns ok=false for blank
// cells, which mean "do not touch this field".
func ParseHour(s string) (Hour, bool, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Hour{}, false, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Hour{}, false, fmt.Errorf("invalid hours value %q: %w", s, err)
	}
	if v < 0 {
		return Hour{}, false, fmt.Errorf("negative hours value %q", s)
	}
	return Hour{Raw: s, Value: v}, true, nil
}

// String returns the value as it will be typed into the input field.
func (h Hour) String() string { return h.Raw }

// NormalizeDecimal strips trailing zeros (and a trailing dot) from a decimal
// string so that "7.40", "7.4" and "7.400" compare equal. Used for write
// verification round-trips.
func NormalizeDecimal(s string) string {
	s = strings.TrimSpace(s)
	// The TMS renders decimals with a dot; tolerate a comma just in case
	// the deployment uses a European locale.
	s = strings.ReplaceAll(s, ",", ".")
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "" || s == "-" {
		return "0"
	}
	return s
}

// TimesheetRow is one parsed CSV row. ProjectNumber is the exact-match key
// against the table's project column; name and task are informational only.
// A weekday absent from Hours is left untouched in the UI.
type TimesheetRow struct {
	ProjectNumber string
	ProjectName   string
	ProjectTask   string
	Hours         map[Weekday]Hour
}

// Hour returns the hours for a weekday, with ok=false when the CSV left the
// cell blank.
func (r TimesheetRow) Hour(day Weekday) (Hour, bool) {
	h, ok := r.Hours[day]
	return h, ok
}

// TotalHours sums all present weekday values.
func (r TimesheetRow) TotalHours() float64 {
	var total float64
	for _, h := range r.Hours {
		total += h.Value
	}
	return total
}

// DaysWithValues counts weekdays that carry a value.
func (r TimesheetRow) DaysWithValues() int { return len(r.Hours) }

// ExtractedProject is one table row as inferred by the extraction
// heuristics. It only carries structure; the weekday columns of the
// generated template are always zero-filled.
type ExtractedProject struct {
	ProjectNumber string
	ProjectName   string
	ProjectTask   string
}

// CellStatus classifies the outcome of a single cell fill attempt.
type CellStatus int

const (
	CellFilled CellStatus = iota
	CellSkipped
	CellErrored
)

// CellOutcome is the result of one fill_cell invocation.
type CellOutcome struct {
	Status CellStatus
	Reason string // skip or error reason, empty when filled
}

// CellError identifies a failed or unmatched cell in a week's result.
type CellError struct {
	ProjectNumber string
	Weekday       Weekday // empty for row-level errors (project not found)
	Reason        string
}

func (e CellError) String() string {
	if e.Weekday == "" {
		return fmt.Sprintf("%s: %s", e.ProjectNumber, e.Reason)
	}
	return fmt.Sprintf("%s/%s: %s", e.ProjectNumber, e.Weekday, e.Reason)
}

// FillResult aggregates one week's fill attempt. Immutable once the week
// completes; Errors preserves encounter order.
type FillResult struct {
	Week    int
	Year    int
	Filled  int
	Skipped int
	Errors  []CellError
}

// RecordOutcome folds a cell outcome into the week's counters.
func (r *FillResult) RecordOutcome(project string, day Weekday, out CellOutcome) {
	switch out.Status {
	case CellFilled:
		r.Filled++
	case CellSkipped:
		r.Skipped++
	case CellErrored:
		r.Errors = append(r.Errors, CellError{ProjectNumber: project, Weekday: day, Reason: out.Reason})
	}
}

// RecordRowError records a row-level failure such as a project row missing
// from the table.
func (r *FillResult) RecordRowError(project, reason string) {
	r.Errors = append(r.Errors, CellError{ProjectNumber: project, Reason: reason})
}

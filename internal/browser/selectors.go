// Package browser drives the TMS web UI through a Chrome DevTools session.
// It owns the single page for the whole run: week navigation, table
// readiness, row matching, cell filling and the save action all go through
// this package.
package browser

import "fmt"

// DOM contract of the TMS (an Angular Material application). If the
// upstream deployment changes its structure, this file is the one to touch.
const (
	// SelTable matches the timesheet table.
	SelTable = "table[mat-table]"

	// SelRows matches the project data rows, skipping header/footer rows.
	SelRows = "tr[mat-row]"

	// SelProjectCell matches the project identifier cell within a row.
	SelProjectCell = "td.cdk-column-Project"

	// SelWeekDisplay matches the week indicator text element.
	SelWeekDisplay = `.week-display, .week-selector, [class*="week"], h1, h2, h3`

	// SelWeekBack and SelWeekForward match the week navigation arrows.
	SelWeekBack    = `button [class*="arrow-left"], button [class*="prev"], a [class*="arrow-left"], a [class*="prev"], [class*="arrow-left"], [class*="prev"]`
	SelWeekForward = `button [class*="arrow-right"], button [class*="next"], a [class*="arrow-right"], a [class*="next"], [class*="arrow-right"], [class*="next"]`
)

// WeekdayInputSelector returns the input field selector for a weekday,
// relative to its project row.
func WeekdayInputSelector(weekday string) string {
	return fmt.Sprintf(`input[name=%q].dayField`, weekday)
}

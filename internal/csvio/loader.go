// Package csvio loads timesheet CSV files and writes extraction templates.
// The canonical header is
// project_number,project_name,project_task,monday..sunday; the legacy
// headers project_text and task are accepted and mapped.
package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"tmsbot/internal/timesheet"
)

// CanonicalHeaders is the single source of truth for column order.
var CanonicalHeaders = []string{
	"project_number", "project_name", "project_task",
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

// legacyAliases maps old generator headers to canonical names.
var legacyAliases = map[string]string{
	"project_text": "project_name",
	"task":         "project_task",
}

func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	if canonical, ok := legacyAliases[h]; ok {
		return canonical
	}
	return h
}

// Load reads and validates a timesheet CSV file.
func Load(path string) ([]timesheet.TimesheetRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open CSV: %v", timesheet.ErrConfiguration, err)
	}
	defer f.Close()
	return Read(f)
}

// Read parses timesheet rows from an already-open CSV stream.
func Read(r io.Reader) ([]timesheet.TimesheetRow, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: read CSV header: %v", timesheet.ErrConfiguration, err)
	}

	colIdx := make(map[string]int, len(header))
	for i, h := range header {
		colIdx[normalizeHeader(h)] = i
	}
	var missing []string
	for _, want := range CanonicalHeaders {
		if _, ok := colIdx[want]; !ok {
			missing = append(missing, want)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: CSV missing required headers: %s (legacy headers project_text/task are accepted)",
			timesheet.ErrConfiguration, strings.Join(missing, ", "))
	}

	var rows []timesheet.TimesheetRow
	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("%w: CSV line %d: %v", timesheet.ErrConfiguration, line, err)
		}

		field := func(name string) string {
			i := colIdx[name]
			if i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		projectNumber := field("project_number")
		if projectNumber == "" {
			// Blank project numbers are padding rows in exported sheets.
			continue
		}

		row := timesheet.TimesheetRow{
			ProjectNumber: projectNumber,
			ProjectName:   field("project_name"),
			ProjectTask:   field("project_task"),
			Hours:         make(map[timesheet.Weekday]timesheet.Hour),
		}
		for _, day := range timesheet.Weekdays {
			h, ok, err := timesheet.ParseHour(field(string(day)))
			if err != nil {
				return nil, fmt.Errorf("%w: CSV line %d, column %s: %v", timesheet.ErrConfiguration, line, day, err)
			}
			if ok {
				row.Hours[day] = h
			}
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: CSV contains no data rows", timesheet.ErrConfiguration)
	}
	return rows, nil
}

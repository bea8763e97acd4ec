package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"tmsbot/internal/timesheet"
)

// WriteTemplate writes a zero-filled timesheet template: one row per
// extracted project, canonical header, weekday columns all "0", in table
// order.
func WriteTemplate(w io.Writer, projects []timesheet.ExtractedProject) error {
	if len(projects) == 0 {
		return fmt.Errorf("%w: no projects to write", timesheet.ErrExtraction)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(CanonicalHeaders); err != nil {
		return fmt.Errorf("write template header: %w", err)
	}
	for _, p := range projects {
		record := []string{p.ProjectNumber, p.ProjectName, p.ProjectTask, "0", "0", "0", "0", "0", "0", "0"}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write template row %s: %w", p.ProjectNumber, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// TemplateFile creates the output file, refusing to clobber an existing
// one unless force is set.
func TemplateFile(path string, force bool) (*os.File, error) {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return nil, fmt.Errorf("%w: output file %s already exists (use --force to overwrite)", timesheet.ErrConfiguration, path)
		}
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create output directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create output file: %w", err)
	}
	return f, nil
}

// WriteTemplateXLSX writes the same template as an .xlsx workbook for users
// who maintain their hours in a spreadsheet before exporting to CSV.
func WriteTemplateXLSX(path string, projects []timesheet.ExtractedProject) error {
	if len(projects) == 0 {
		return fmt.Errorf("%w: no projects to write", timesheet.ErrExtraction)
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"
	for col, h := range CanonicalHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("template header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("write header %s: %w", h, err)
		}
	}

	for i, p := range projects {
		values := []interface{}{p.ProjectNumber, p.ProjectName, p.ProjectTask, 0, 0, 0, 0, 0, 0, 0}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return fmt.Errorf("template cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("write row %s: %w", p.ProjectNumber, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

// Package extract reverses a rendered timesheet table into project rows
// for CSV template generation. Field identification runs through an ordered
// chain of heuristics so that new strategies can be appended without
// touching existing ones; unresolved name/task fields degrade to logged
// anomalies instead of failing the extraction.
package extract

import (
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"tmsbot/internal/timesheet"
)

// RowData is one captured table row: header names aligned with cell texts.
// Produced either from the live DOM or from a saved HTML snapshot.
type RowData struct {
	Headers []string
	Cells   []string
}

// cell returns the text under the given header, with ok=false when the
// header is absent from this row.
func (r RowData) cell(header string) (string, bool) {
	for i, h := range r.Headers {
		if h == header && i < len(r.Cells) {
			return strings.TrimSpace(r.Cells[i]), true
		}
	}
	return "", false
}

// projectColumn is the fixed column role carrying the project identifier.
const projectColumn = "Project"

// nameHeaders are the known labels of the descriptive-name column, tried
// exact-match first, then case-insensitively.
var nameHeaders = []string{"ProjectText", "ProjectName", "Description"}

// taskPattern matches the numeric-prefix task convention, e.g.
// "01 - Unspecified" or "65 - Absence".
var taskPattern = regexp.MustCompile(`^\d{2}\s*-\s*.+`)

// strategy tries to infer one field from a row; empty string means the
// strategy does not apply.
type strategy func(RowData) string

// nameStrategies is the ordered chain for the descriptive name.
var nameStrategies = []strategy{
	nameByHeaderExact,
	nameByHeaderFold,
	nameByTextShape,
}

func nameByHeaderExact(row RowData) string {
	for _, h := range nameHeaders {
		if v, ok := row.cell(h); ok && v != "" {
			return v
		}
	}
	return ""
}

func nameByHeaderFold(row RowData) string {
	for i, h := range row.Headers {
		for _, want := range nameHeaders {
			if strings.EqualFold(h, want) && i < len(row.Cells) {
				if v := strings.TrimSpace(row.Cells[i]); v != "" {
					return v
				}
			}
		}
	}
	return ""
}

// nameByTextShape scans the remaining cells for the first that looks like a
// descriptive identifier: contains an underscore or is longer than 10
// characters. Short codes, dates and hour values fall through.
func nameByTextShape(row RowData) string {
	for i, raw := range row.Cells {
		if i < len(row.Headers) && row.Headers[i] == projectColumn {
			continue
		}
		v := strings.TrimSpace(raw)
		if v == "" || taskPattern.MatchString(v) {
			continue
		}
		if strings.Contains(v, "_") || len(v) > 10 {
			return v
		}
	}
	return ""
}

// taskStrategies is the ordered chain for the task description.
var taskStrategies = []strategy{taskByPattern}

func taskByPattern(row RowData) string {
	for _, raw := range row.Cells {
		v := strings.TrimSpace(raw)
		if taskPattern.MatchString(v) {
			return v
		}
	}
	return ""
}

func runChain(chain []strategy, row RowData) string {
	for _, s := range chain {
		if v := s(row); v != "" {
			return v
		}
	}
	return ""
}

// Extractor infers ExtractedProjects from captured rows.
type Extractor struct {
	log *zap.Logger
}

// New returns an Extractor. A nil logger is replaced with a no-op one.
func New(log *zap.Logger) *Extractor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Extractor{log: log}
}

// Projects converts captured rows into one ExtractedProject each, in table
// order. The project identifier column is a hard dependency; a row without
// it fails the whole extraction. Name and task gaps are anomalies only.
func (e *Extractor) Projects(rows []RowData) ([]timesheet.ExtractedProject, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: table has no rows", timesheet.ErrExtraction)
	}

	out := make([]timesheet.ExtractedProject, 0, len(rows))
	for i, row := range rows {
		number, ok := row.cell(projectColumn)
		if !ok {
			return nil, fmt.Errorf("%w: row %d has no %q column", timesheet.ErrExtraction, i+1, projectColumn)
		}
		if number == "" {
			e.log.Warn("skipping row with empty project identifier", zap.Int("row", i+1))
			continue
		}

		p := timesheet.ExtractedProject{
			ProjectNumber: number,
			ProjectName:   runChain(nameStrategies, row),
			ProjectTask:   runChain(taskStrategies, row),
		}
		if p.ProjectName == "" {
			e.log.Warn("anomaly: no strategy resolved a project name",
				zap.Int("row", i+1), zap.String("project", number))
		}
		if p.ProjectTask == "" {
			e.log.Warn("anomaly: no cell matched the task pattern",
				zap.Int("row", i+1), zap.String("project", number))
		}
		out = append(out, p)
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no rows with a project identifier", timesheet.ErrExtraction)
	}
	return out, nil
}

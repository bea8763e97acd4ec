package browser

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"

	"tmsbot/internal/extract"
	"tmsbot/internal/timesheet"
)

// Table wraps readiness waits, row matching and the save action on the
// live timesheet table.
type Table struct {
	page    *rod.Page
	timeout time.Duration
	log     *zap.Logger
}

// NewTable builds a Table on a live session.
func NewTable(s *Session, log *zap.Logger) *Table {
	if log == nil {
		log = zap.NewNop()
	}
	return &Table{page: s.Page(), timeout: s.cfg.ElementTimeout, log: log}
}

// WaitForTable blocks until project rows are present, up to timeout.
func (t *Table) WaitForTable(timeout time.Duration) error {
	if timeout <= 0 {
		timeout = t.timeout
	}
	t.log.Debug("waiting for timesheet table", zap.Duration("timeout", timeout))
	if _, err := t.page.Timeout(timeout).Element(SelRows); err != nil {
		return fmt.Errorf("%w: no rows after %s: %v", timesheet.ErrTableNotFound, timeout, err)
	}
	return nil
}

// FindRow locates the project row by exact, case-sensitive match against
// the project-identifier column. When several rows match, the first in
// document order wins and the ambiguity is recorded as a warning; this is
// known-risky but matches the upstream behavior users rely on.
func (t *Table) FindRow(projectNumber string) (RowHandle, error) {
	rows, err := t.page.Timeout(t.timeout).Elements(SelRows)
	if err != nil {
		return nil, fmt.Errorf("%w: list rows: %v", timesheet.ErrProjectNotFound, err)
	}

	var matches []*rod.Element
	for _, row := range rows {
		cell, err := row.Element(SelProjectCell)
		if err != nil {
			continue
		}
		text, err := cell.Text()
		if err != nil {
			continue
		}
		if strings.TrimSpace(text) == projectNumber {
			matches = append(matches, row)
		}
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: %s", timesheet.ErrProjectNotFound, projectNumber)
	case 1:
	default:
		t.log.Warn("ambiguous project match, using first row in document order",
			zap.String("project", projectNumber), zap.Int("matches", len(matches)))
	}
	return &rodRow{row: matches[0], timeout: t.timeout, log: t.log}, nil
}

// Save clicks the save control, which only becomes actionable after edits.
// Failures here are fatal to the run.
func (t *Table) Save() error {
	el, err := t.page.Timeout(t.timeout).ElementR("button, a", "/^\\s*Save\\s*$/")
	if err != nil {
		return fmt.Errorf("%w: save control not found: %v", timesheet.ErrSave, err)
	}
	if err := el.Timeout(t.timeout).WaitEnabled(); err != nil {
		return fmt.Errorf("%w: save control not actionable: %v", timesheet.ErrSave, err)
	}
	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("%w: click save: %v", timesheet.ErrSave, err)
	}
	t.log.Info("save triggered")
	return nil
}

// CaptureRows reads header roles and cell texts for every visible project
// row in one evaluation, for template extraction.
func (t *Table) CaptureRows() ([]extract.RowData, error) {
	res, err := t.page.Timeout(t.timeout).Evaluate(&rod.EvalOptions{
		JS: `
		() => {
			const table = document.querySelector('table[mat-table]');
			if (!table) return null;
			const headers = Array.from(table.querySelectorAll('th')).map(th => {
				const cls = Array.from(th.classList).find(c => c.startsWith('cdk-column-'));
				return cls ? cls.slice('cdk-column-'.length) : (th.innerText || '').trim();
			});
			return Array.from(table.querySelectorAll('tr[mat-row]')).map(tr => ({
				headers,
				cells: Array.from(tr.querySelectorAll('td')).map(td => (td.innerText || '').trim()),
			}));
		}
		`,
		ByValue: true,
	})
	if err != nil || res == nil {
		return nil, fmt.Errorf("%w: capture rows: %v", timesheet.ErrExtraction, err)
	}
	if res.Value.Nil() {
		return nil, fmt.Errorf("%w: timesheet table not present", timesheet.ErrExtraction)
	}

	raw, err := res.Value.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("%w: marshal captured rows: %v", timesheet.ErrExtraction, err)
	}
	var captured []struct {
		Headers []string `json:"headers"`
		Cells   []string `json:"cells"`
	}
	if err := json.Unmarshal(raw, &captured); err != nil {
		return nil, fmt.Errorf("%w: decode captured rows: %v", timesheet.ErrExtraction, err)
	}

	rows := make([]extract.RowData, 0, len(captured))
	for _, c := range captured {
		rows = append(rows, extract.RowData{Headers: c.Headers, Cells: c.Cells})
	}
	return rows, nil
}

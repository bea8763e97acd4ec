package browser

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"go.uber.org/zap"

	"tmsbot/internal/timesheet"
)

// RowHandle is a matched project row that cells can be written into.
type RowHandle interface {
	FillCell(day timesheet.Weekday, hour timesheet.Hour, overwrite bool) (timesheet.CellOutcome, error)
}

// inputField is one weekday input. Interface so the fill/verify logic can
// be unit-tested against a fake field.
type inputField interface {
	Value() (string, error)
	Clear() error
	Write(s string) error
}

// fillField writes an hours value into a field, honoring the overwrite
// policy and verifying that the value round-trips. Values are written with
// exactly the precision the CSV supplied; verification compares after
// trailing-zero normalization, because the TMS may re-render "7.4" as
// "7.40".
func fillField(f inputField, hour timesheet.Hour, overwrite bool) (timesheet.CellOutcome, error) {
	if strings.TrimSpace(hour.Raw) == "" {
		return timesheet.CellOutcome{Status: timesheet.CellSkipped, Reason: "no value in CSV"}, nil
	}

	current, err := f.Value()
	if err != nil {
		return timesheet.CellOutcome{Status: timesheet.CellErrored, Reason: "read current value: " + err.Error()}, nil
	}
	if strings.TrimSpace(current) != "" {
		if !overwrite {
			return timesheet.CellOutcome{
				Status: timesheet.CellSkipped,
				Reason: fmt.Sprintf("existing value %q", strings.TrimSpace(current)),
			}, nil
		}
		if err := f.Clear(); err != nil {
			return timesheet.CellOutcome{Status: timesheet.CellErrored, Reason: "clear field: " + err.Error()}, nil
		}
	}

	if err := f.Write(hour.Raw); err != nil {
		return timesheet.CellOutcome{Status: timesheet.CellErrored, Reason: "write value: " + err.Error()}, nil
	}

	readBack, err := f.Value()
	if err != nil {
		return timesheet.CellOutcome{Status: timesheet.CellErrored, Reason: "verify read-back: " + err.Error()}, nil
	}
	if timesheet.NormalizeDecimal(readBack) != timesheet.NormalizeDecimal(hour.Raw) {
		return timesheet.CellOutcome{
			Status: timesheet.CellErrored,
			Reason: fmt.Sprintf("%v: wrote %q, field shows %q", timesheet.ErrCellWrite, hour.Raw, readBack),
		}, nil
	}
	return timesheet.CellOutcome{Status: timesheet.CellFilled}, nil
}

// rodRow is the live-page RowHandle.
type rodRow struct {
	row     *rod.Element
	timeout time.Duration
	log     *zap.Logger
}

// FillCell locates the weekday input within this row and applies the fill
// policy. A missing input field is a cell error, not a crash: some
// deployments render read-only cells for locked days.
func (r *rodRow) FillCell(day timesheet.Weekday, hour timesheet.Hour, overwrite bool) (timesheet.CellOutcome, error) {
	el, err := r.row.Timeout(r.timeout).Element(WeekdayInputSelector(string(day)))
	if err != nil {
		return timesheet.CellOutcome{
			Status: timesheet.CellErrored,
			Reason: fmt.Sprintf("input field for %s not found", day),
		}, nil
	}
	out, err := fillField(&rodField{el: el}, hour, overwrite)
	if err != nil {
		return out, err
	}
	r.log.Debug("cell processed",
		zap.String("weekday", string(day)),
		zap.String("value", hour.Raw),
		zap.Int("status", int(out.Status)),
		zap.String("reason", out.Reason))
	return out, nil
}

// rodField adapts a rod input element to inputField.
type rodField struct {
	el *rod.Element
}

func (f *rodField) Value() (string, error) {
	v, err := f.el.Property("value")
	if err != nil {
		return "", err
	}
	return v.Str(), nil
}

func (f *rodField) Clear() error {
	if err := f.el.SelectAllText(); err != nil {
		return err
	}
	return f.el.Input("")
}

func (f *rodField) Write(s string) error {
	return f.el.Input(s)
}

package timesheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHour(t *testing.T) {
	t.Run("blank means absent", func(t *testing.T) {
		_, ok, err := ParseHour("")
		require.NoError(t, err)
		assert.False(t, ok)

		_, ok, err = ParseHour("   ")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("preserves raw precision", func(t *testing.T) {
		h, ok, err := ParseHour("7.40")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "7.40", h.String())
		assert.InDelta(t, 7.4, h.Value, 1e-9)
	})

	t.Run("rejects negatives", func(t *testing.T) {
		_, _, err := ParseHour("-1")
		assert.Error(t, err)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, _, err := ParseHour("seven")
		assert.Error(t, err)
	})
}

func TestNormalizeDecimal(t *testing.T) {
	tests := []struct{ in, want string }{
		{"7.40", "7.4"},
		{"7.4", "7.4"},
		{"7.400", "7.4"},
		{"7.0", "7"},
		{"7", "7"},
		{"0.30", "0.3"},
		{"7,40", "7.4"},
		{" 7.40 ", "7.4"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeDecimal(tt.in), "input %q", tt.in)
	}
}

func TestFillResultRecording(t *testing.T) {
	var r FillResult
	r.RecordOutcome("8-1", Monday, CellOutcome{Status: CellFilled})
	r.RecordOutcome("8-1", Tuesday, CellOutcome{Status: CellSkipped, Reason: `existing value "7.4"`})
	r.RecordOutcome("8-1", Friday, CellOutcome{Status: CellErrored, Reason: "write verification failed"})
	r.RecordRowError("8-9", "project not found in table")

	assert.Equal(t, 1, r.Filled)
	assert.Equal(t, 1, r.Skipped)
	require.Len(t, r.Errors, 2)
	assert.Equal(t, "8-1/friday: write verification failed", r.Errors[0].String())
	assert.Equal(t, "8-9: project not found in table", r.Errors[1].String())
}

func TestRunSummaryTotals(t *testing.T) {
	rows := []TimesheetRow{
		{ProjectNumber: "8-1", Hours: map[Weekday]Hour{Monday: {Raw: "7.4", Value: 7.4}}},
		{ProjectNumber: "8-2", Hours: map[Weekday]Hour{Friday: {Raw: "0.3", Value: 0.3}}},
	}
	s := NewRunSummary("test-run", 2, rows)
	s.AddWeek(FillResult{Week: 48, Year: 2025, Filled: 2})
	s.AddWeek(FillResult{Week: 49, Year: 2025, Filled: 2, Errors: []CellError{{ProjectNumber: "8-9", Reason: "x"}}})

	assert.Equal(t, 4, s.TotalFilled())
	assert.Equal(t, 0, s.TotalSkipped())
	assert.Equal(t, 1, s.TotalErrors())
	assert.True(t, s.HasFailures())
	assert.InDelta(t, 7.4, s.DailyTotals[Monday], 1e-9)
	assert.InDelta(t, 0.3, s.DailyTotals[Friday], 1e-9)
	assert.Zero(t, s.DailyTotals[Sunday])

	out := s.Format()
	assert.Contains(t, out, "Week 48, 2025")
	assert.Contains(t, out, "filled=4")
	assert.Contains(t, out, "8-9: x")
}

func TestIsRunFatal(t *testing.T) {
	fatal := []error{ErrNavigation, ErrOutOfRange, ErrNavigationMismatch, ErrTableNotFound, ErrSave}
	for _, err := range fatal {
		assert.True(t, IsRunFatal(err), "%v should be run-fatal", err)
	}
	assert.False(t, IsRunFatal(ErrProjectNotFound))
	assert.False(t, IsRunFatal(ErrCellWrite))
	assert.False(t, IsRunFatal(ErrExtraction))
}

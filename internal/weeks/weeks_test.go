package weeks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tmsbot/internal/timesheet"
)

func TestParseRange(t *testing.T) {
	tests := []struct {
		name string
		spec string
		want []int
	}{
		{"single week", "48", []int{48}},
		{"comma separated", "48,49,50", []int{48, 49, 50}},
		{"range", "48-50", []int{48, 49, 50}},
		{"combined", "48-50,52", []int{48, 49, 50, 52}},
		{"duplicates collapse", "48,48-49", []int{48, 49}},
		{"unsorted input sorts", "50,48", []int{48, 50}},
		{"whitespace tolerated", " 48 , 50 ", []int{48, 50}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRange(tt.spec)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRangeErrors(t *testing.T) {
	tests := []struct {
		name string
		spec string
	}{
		{"empty", ""},
		{"blank", "   "},
		{"empty part", "48,,50"},
		{"reversed range", "50-48"},
		{"week zero", "0"},
		{"week 54", "54"},
		{"range above bound", "50-54"},
		{"garbage", "next week"},
		{"negative", "-3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRange(tt.spec)
			require.Error(t, err)
			assert.ErrorIs(t, err, timesheet.ErrConfiguration)
		})
	}
}

func TestParseDisplay(t *testing.T) {
	tests := []struct {
		text string
		want Stamp
	}{
		{"Week 48, 2025", Stamp{2025, 48}},
		{"Week 48 2025", Stamp{2025, 48}},
		{"week 5, 2026", Stamp{2026, 5}},
		{"W48 2025", Stamp{2025, 48}},
		{"48, 2025", Stamp{2025, 48}},
		{"Timesheet – Week 2, 2026", Stamp{2026, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, err := ParseDisplay(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDisplayErrors(t *testing.T) {
	for _, text := range []string{"", "Timesheet", "Week 99, 2025", "Week 48, 1925"} {
		t.Run(text, func(t *testing.T) {
			_, err := ParseDisplay(text)
			require.Error(t, err)
			assert.ErrorIs(t, err, timesheet.ErrNavigation)
		})
	}
}

func TestIndexCrossYear(t *testing.T) {
	// Delta across a year boundary must be plain index subtraction:
	// week 52 of 2025 -> week 2 of 2026 is +3 with the 53-week base.
	from := Stamp{Year: 2025, Week: 52}
	to := Stamp{Year: 2026, Week: 2}
	assert.Equal(t, to.Index()-from.Index(), from.DeltaTo(to))
	assert.Equal(t, 3, from.DeltaTo(to))
	assert.Equal(t, -3, to.DeltaTo(from))
}

func TestValidateOffset(t *testing.T) {
	assert.NoError(t, ValidateOffset(0))
	assert.NoError(t, ValidateOffset(10))
	assert.NoError(t, ValidateOffset(-20))

	err := ValidateOffset(11)
	require.Error(t, err)
	assert.ErrorIs(t, err, timesheet.ErrOutOfRange)

	err = ValidateOffset(-21)
	require.Error(t, err)
	assert.ErrorIs(t, err, timesheet.ErrOutOfRange)

	// 25 weeks forward is the canonical rejected case.
	assert.ErrorIs(t, ValidateOffset(25), timesheet.ErrOutOfRange)
}

func TestResolve(t *testing.T) {
	baseline := Stamp{Year: 2025, Week: 47}

	t.Run("defaults to baseline year", func(t *testing.T) {
		targets, err := Resolve([]int{48, 49}, 0, baseline)
		require.NoError(t, err)
		assert.Equal(t, []Stamp{{2025, 48}, {2025, 49}}, targets)
	})

	t.Run("explicit year", func(t *testing.T) {
		targets, err := Resolve([]int{1}, 2026, Stamp{Year: 2025, Week: 52})
		require.NoError(t, err)
		assert.Equal(t, []Stamp{{2026, 1}}, targets)
	})

	t.Run("rejects out-of-range before navigation", func(t *testing.T) {
		_, err := Resolve([]int{19}, 0, Stamp{Year: 2025, Week: 47})
		// 47 -> 19 backwards is -28, outside the window.
		require.Error(t, err)
		assert.ErrorIs(t, err, timesheet.ErrOutOfRange)
	})

	t.Run("rejects bad year", func(t *testing.T) {
		_, err := Resolve([]int{48}, 1999, baseline)
		require.Error(t, err)
		assert.ErrorIs(t, err, timesheet.ErrConfiguration)
	})
}

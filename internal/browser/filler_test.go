package browser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tmsbot/internal/timesheet"
)

// fakeField is an in-memory weekday input.
type fakeField struct {
	value    string
	rendered string // value the field shows after a write, if different
	valueErr error
	clearErr error
	writeErr error
	clears   int
	writes   []string
}

func (f *fakeField) Value() (string, error) {
	if f.valueErr != nil {
		return "", f.valueErr
	}
	return f.value, nil
}

func (f *fakeField) Clear() error {
	if f.clearErr != nil {
		return f.clearErr
	}
	f.clears++
	f.value = ""
	return nil
}

func (f *fakeField) Write(s string) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.writes = append(f.writes, s)
	if f.rendered != "" {
		f.value = f.rendered
	} else {
		f.value = s
	}
	return nil
}

func hour(raw string) timesheet.Hour {
	h, ok, err := timesheet.ParseHour(raw)
	if err != nil || !ok {
		return timesheet.Hour{Raw: raw}
	}
	return h
}

func TestFillFieldWritesIntoEmpty(t *testing.T) {
	f := &fakeField{}
	out, err := fillField(f, hour("7.4"), false)
	require.NoError(t, err)
	assert.Equal(t, timesheet.CellFilled, out.Status)
	assert.Equal(t, []string{"7.4"}, f.writes)
	assert.Zero(t, f.clears, "empty field needs no clearing")
}

func TestFillFieldBlankHourSkips(t *testing.T) {
	f := &fakeField{value: "3.0"}
	out, err := fillField(f, hour(""), true)
	require.NoError(t, err)
	assert.Equal(t, timesheet.CellSkipped, out.Status)
	assert.Equal(t, "no value in CSV", out.Reason)
	assert.Empty(t, f.writes, "blank CSV cell must not touch the field")
}

func TestFillFieldPreservesExistingWithoutOverwrite(t *testing.T) {
	f := &fakeField{value: "3.5"}
	out, err := fillField(f, hour("7.4"), false)
	require.NoError(t, err)
	assert.Equal(t, timesheet.CellSkipped, out.Status)
	assert.Equal(t, `existing value "3.5"`, out.Reason)
	assert.Empty(t, f.writes)
	assert.Equal(t, "3.5", f.value, "existing value must survive")
}

func TestFillFieldOverwriteClearsFirst(t *testing.T) {
	f := &fakeField{value: "3.5"}
	out, err := fillField(f, hour("7.4"), true)
	require.NoError(t, err)
	assert.Equal(t, timesheet.CellFilled, out.Status)
	assert.Equal(t, 1, f.clears)
	assert.Equal(t, []string{"7.4"}, f.writes)
}

func TestFillFieldVerifyToleratesTrailingZeros(t *testing.T) {
	// The TMS re-renders "7.4" as "7.40"; that is still a successful write.
	f := &fakeField{rendered: "7.40"}
	out, err := fillField(f, hour("7.4"), false)
	require.NoError(t, err)
	assert.Equal(t, timesheet.CellFilled, out.Status)
}

func TestFillFieldVerifyMismatch(t *testing.T) {
	f := &fakeField{rendered: "0"}
	out, err := fillField(f, hour("7.4"), false)
	require.NoError(t, err)
	assert.Equal(t, timesheet.CellErrored, out.Status)
	assert.Contains(t, out.Reason, `wrote "7.4"`)
	assert.Contains(t, out.Reason, `field shows "0"`)
}

func TestFillFieldErrorsStayCellLevel(t *testing.T) {
	tests := []struct {
		name  string
		field *fakeField
	}{
		{"read failure", &fakeField{valueErr: errors.New("detached")}},
		{"clear failure", &fakeField{value: "1", clearErr: errors.New("detached")}},
		{"write failure", &fakeField{writeErr: errors.New("detached")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := fillField(tt.field, hour("7.4"), true)
			require.NoError(t, err, "field failures are outcomes, not run errors")
			assert.Equal(t, timesheet.CellErrored, out.Status)
			assert.NotEmpty(t, out.Reason)
		})
	}
}

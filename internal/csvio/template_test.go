package csvio

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tmsbot/internal/timesheet"
)

func TestWriteTemplate(t *testing.T) {
	projects := []timesheet.ExtractedProject{
		{ProjectNumber: "8-26214-10-42", ProjectName: "TD_Academy_Simulator", ProjectTask: "01 - Unspecified"},
		{ProjectNumber: "8-26214-30-01", ProjectName: "PR_Engine", ProjectTask: "65 - Absence"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteTemplate(&buf, projects))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, strings.Join(CanonicalHeaders, ","), lines[0])
	assert.Equal(t, "8-26214-10-42,TD_Academy_Simulator,01 - Unspecified,0,0,0,0,0,0,0", lines[1])
	assert.Equal(t, "8-26214-30-01,PR_Engine,65 - Absence,0,0,0,0,0,0,0", lines[2])
}

func TestWriteTemplateRoundTrips(t *testing.T) {
	projects := []timesheet.ExtractedProject{
		{ProjectNumber: "8-1", ProjectName: "A_Project", ProjectTask: "01 - Unspecified"},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteTemplate(&buf, projects))

	rows, err := Read(&buf)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "8-1", rows[0].ProjectNumber)
	// Zero-filled means every day carries an explicit "0", not a blank.
	assert.Equal(t, 7, rows[0].DaysWithValues())
}

func TestWriteTemplateEmpty(t *testing.T) {
	var buf bytes.Buffer
	err := WriteTemplate(&buf, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, timesheet.ErrExtraction)
}

func TestTemplateFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "template.csv")

	f, err := TemplateFile(path, false)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	_, err = TemplateFile(path, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, timesheet.ErrConfiguration)

	f, err = TemplateFile(path, true)
	require.NoError(t, err)
	require.NoError(t, f.Close())
}

func TestTemplateFileCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "nested", "template.csv")
	f, err := TemplateFile(path, false)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

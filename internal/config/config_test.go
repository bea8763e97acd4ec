package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tmsbot/internal/timesheet"
)

func validConfig(t *testing.T) Config {
	t.Helper()
	csvPath := filepath.Join(t.TempDir(), "hours.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("x"), 0o644))

	c := Default()
	c.CSVPath = csvPath
	c.Weeks = []int{48}
	return c
}

func TestDefaults(t *testing.T) {
	c := Default()
	assert.Equal(t, "https://tms.md-man.biz/home", c.TMSURL)
	assert.Equal(t, 30*time.Second, c.PageLoadTimeout)
	assert.Equal(t, 10*time.Second, c.ElementTimeout)
	assert.Equal(t, 30*time.Second, c.NavigationTimeout)
	assert.False(t, c.Headless, "visible browser is the default: login is manual")
	assert.False(t, c.AutoSubmit, "submitting is opt-in")
}

func TestLoadFileOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"tms_url: https://tms.example.test/home\nelement_timeout: 5s\nstrict: true\n",
	), 0o644))

	c := Default()
	require.NoError(t, c.LoadFile(path))
	assert.Equal(t, "https://tms.example.test/home", c.TMSURL)
	assert.Equal(t, 5*time.Second, c.ElementTimeout)
	assert.True(t, c.Strict)
	// Keys absent from the file keep their defaults.
	assert.Equal(t, 30*time.Second, c.PageLoadTimeout)
}

func TestLoadFileErrors(t *testing.T) {
	c := Default()

	err := c.LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, timesheet.ErrConfiguration)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("{not yaml"), 0o644))
	err = c.LoadFile(bad)
	assert.ErrorIs(t, err, timesheet.ErrConfiguration)
}

func TestValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		c := validConfig(t)
		assert.NoError(t, c.Validate())
	})

	t.Run("dry run with auto submit", func(t *testing.T) {
		c := validConfig(t)
		c.DryRun = true
		c.AutoSubmit = true
		assert.ErrorIs(t, c.Validate(), timesheet.ErrConfiguration)
	})

	t.Run("missing csv path", func(t *testing.T) {
		c := validConfig(t)
		c.CSVPath = ""
		assert.ErrorIs(t, c.Validate(), timesheet.ErrConfiguration)
	})

	t.Run("csv file does not exist", func(t *testing.T) {
		c := validConfig(t)
		c.CSVPath = filepath.Join(t.TempDir(), "nope.csv")
		assert.ErrorIs(t, c.Validate(), timesheet.ErrConfiguration)
	})

	t.Run("year bounds", func(t *testing.T) {
		c := validConfig(t)
		c.Year = 1999
		assert.ErrorIs(t, c.Validate(), timesheet.ErrConfiguration)
		c.Year = 2101
		assert.ErrorIs(t, c.Validate(), timesheet.ErrConfiguration)
		c.Year = 2026
		assert.NoError(t, c.Validate())
		c.Year = 0 // zero means "use the baseline year"
		assert.NoError(t, c.Validate())
	})

	t.Run("week bounds", func(t *testing.T) {
		c := validConfig(t)
		c.Weeks = nil
		assert.ErrorIs(t, c.Validate(), timesheet.ErrConfiguration)
		c.Weeks = []int{0}
		assert.ErrorIs(t, c.Validate(), timesheet.ErrConfiguration)
		c.Weeks = []int{54}
		assert.ErrorIs(t, c.Validate(), timesheet.ErrConfiguration)
		c.Weeks = []int{1, 53}
		assert.NoError(t, c.Validate())
	})
}

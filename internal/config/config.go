// Package config centralizes run configuration: TMS endpoint, timeouts and
// run flags, with defaults, an optional YAML overlay and validation.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"tmsbot/internal/timesheet"
)

// Config is the application configuration for one invocation.
type Config struct {
	// Endpoint and timing.
	TMSURL            string        `yaml:"tms_url"`
	PageLoadTimeout   time.Duration `yaml:"page_load_timeout"`
	ElementTimeout    time.Duration `yaml:"element_timeout"`
	NavigationTimeout time.Duration `yaml:"navigation_timeout"`
	SettleDelay       time.Duration `yaml:"settle_delay"`

	// Run flags.
	Headless    bool `yaml:"headless"`
	AutoSubmit  bool `yaml:"auto_submit"`
	NoOverwrite bool `yaml:"no_overwrite"`
	DryRun      bool `yaml:"dry_run"`
	Strict      bool `yaml:"strict"`
	Verbose     bool `yaml:"verbose"`

	// Data options.
	CSVPath string `yaml:"csv_path"`
	Weeks   []int  `yaml:"weeks"`
	Year    int    `yaml:"year"`
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		TMSURL:            "https://tms.md-man.biz/home",
		PageLoadTimeout:   30 * time.Second,
		ElementTimeout:    10 * time.Second,
		NavigationTimeout: 30 * time.Second,
		SettleDelay:       1500 * time.Millisecond,
	}
}

// LoadFile overlays YAML settings from path onto c. Missing keys keep
// their current values.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: read config file: %v", timesheet.ErrConfiguration, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("%w: parse config file %s: %v", timesheet.ErrConfiguration, path, err)
	}
	return nil
}

// Validate checks flag combinations and ranges. All failures are
// configuration-tier: the run never starts.
func (c *Config) Validate() error {
	if c.DryRun && c.AutoSubmit {
		return fmt.Errorf("%w: --auto-submit cannot be combined with --dry-run", timesheet.ErrConfiguration)
	}
	if c.CSVPath == "" {
		return fmt.Errorf("%w: CSV path is required", timesheet.ErrConfiguration)
	}
	if _, err := os.Stat(c.CSVPath); err != nil {
		return fmt.Errorf("%w: CSV file not found: %s", timesheet.ErrConfiguration, c.CSVPath)
	}
	if c.Year != 0 && (c.Year < 2000 || c.Year > 2100) {
		return fmt.Errorf("%w: year %d out of range (must be 2000-2100)", timesheet.ErrConfiguration, c.Year)
	}
	if len(c.Weeks) == 0 {
		return fmt.Errorf("%w: at least one target week is required", timesheet.ErrConfiguration)
	}
	for _, w := range c.Weeks {
		if w < 1 || w > 53 {
			return fmt.Errorf("%w: week %d out of range (must be 1-53)", timesheet.ErrConfiguration, w)
		}
	}
	return nil
}

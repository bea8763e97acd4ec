package timesheet

import "errors"

// Error taxonomy. The orchestrator applies a two-tier policy: run-fatal
// errors abort all remaining weeks, cell/row-scoped errors accumulate into
// the week's FillResult.
var (
	// ErrConfiguration covers bad week ranges, missing files and flag
	// conflicts. Surfaced before the run starts.
	ErrConfiguration = errors.New("configuration error")

	// ErrNavigation means the week indicator could not be read or parsed.
	ErrNavigation = errors.New("navigation error")

	// ErrOutOfRange means a target week lies outside the allowed offset
	// window relative to the baseline. Raised before any UI interaction.
	ErrOutOfRange = errors.New("week offset out of range")

	// ErrNavigationMismatch means the UI settled on a different week than
	// requested. Always run-fatal: filling the wrong week silently is the
	// one failure mode this tool must never have.
	ErrNavigationMismatch = errors.New("navigation mismatch")

	// ErrTableNotFound means the timesheet table did not appear within the
	// readiness timeout.
	ErrTableNotFound = errors.New("timesheet table not found")

	// ErrSave means the save control was missing or not actionable.
	ErrSave = errors.New("save failed")

	// ErrProjectNotFound is row-scoped: the project number matched no row.
	ErrProjectNotFound = errors.New("project not found in table")

	// ErrCellWrite is cell-scoped: the written value did not round-trip.
	ErrCellWrite = errors.New("cell write verification failed")

	// ErrExtraction means the project identifier column is absent, which
	// makes every row useless. Other extraction gaps degrade to anomalies.
	ErrExtraction = errors.New("table extraction failed")
)

// IsRunFatal reports whether err must abort all remaining weeks.
func IsRunFatal(err error) bool {
	return errors.Is(err, ErrNavigation) ||
		errors.Is(err, ErrOutOfRange) ||
		errors.Is(err, ErrNavigationMismatch) ||
		errors.Is(err, ErrTableNotFound) ||
		errors.Is(err, ErrSave)
}

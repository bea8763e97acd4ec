package main

import "time"

// nowISOWeek returns the current ISO year and week, used as the default
// target when no --weeks range is given.
func nowISOWeek() (year, week int) {
	return time.Now().ISOWeek()
}

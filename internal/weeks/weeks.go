// Package weeks handles week-range parsing and the cross-year week index
// used for navigation arithmetic.
package weeks

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"tmsbot/internal/timesheet"
)

// Navigation bounds relative to the baseline week. Anything outside this
// window is rejected before the UI is touched.
const (
	MaxForward  = 10
	MaxBackward = 20
)

// weeksPerYear is the index base. 53 keeps the encoding collision-free for
// ISO years that actually have a week 53.
const weeksPerYear = 53

// Stamp is an absolute (year, week) pair.
type Stamp struct {
	Year int
	Week int
}

func (s Stamp) String() string { return fmt.Sprintf("week %d, %d", s.Week, s.Year) }

// Index returns a monotonically increasing week count so that deltas are
// plain integer subtraction even across year boundaries.
func (s Stamp) Index() int { return s.Year*weeksPerYear + s.Week }

// DeltaTo returns the signed number of weeks from s to target.
func (s Stamp) DeltaTo(target Stamp) int { return target.Index() - s.Index() }

// ValidateOffset checks a navigation delta against the allowed window.
func ValidateOffset(delta int) error {
	if delta > MaxForward {
		return fmt.Errorf("%w: offset %+d exceeds forward limit +%d", timesheet.ErrOutOfRange, delta, MaxForward)
	}
	if delta < -MaxBackward {
		return fmt.Errorf("%w: offset %+d exceeds backward limit -%d", timesheet.ErrOutOfRange, delta, MaxBackward)
	}
	return nil
}

var (
	rangePart  = regexp.MustCompile(`^(\d+)-(\d+)$`)
	singlePart = regexp.MustCompile(`^\d+$`)
)

// ParseRange parses a week-range expression into a sorted list of unique
// week numbers. Accepted forms: "48", "48,50", "48-50", "48-50,52".
func ParseRange(spec string) ([]int, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, fmt.Errorf("%w: week specification cannot be empty", timesheet.ErrConfiguration)
	}

	seen := make(map[int]bool)
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, fmt.Errorf("%w: empty part in week specification %q", timesheet.ErrConfiguration, spec)
		}

		if m := rangePart.FindStringSubmatch(part); m != nil {
			start, _ := strconv.Atoi(m[1])
			end, _ := strconv.Atoi(m[2])
			if start > end {
				return nil, fmt.Errorf("%w: range %q starts after it ends", timesheet.ErrConfiguration, part)
			}
			for w := start; w <= end; w++ {
				if err := checkWeek(w); err != nil {
					return nil, err
				}
				seen[w] = true
			}
			continue
		}

		if !singlePart.MatchString(part) {
			return nil, fmt.Errorf("%w: invalid week number %q", timesheet.ErrConfiguration, part)
		}
		w, _ := strconv.Atoi(part)
		if err := checkWeek(w); err != nil {
			return nil, err
		}
		seen[w] = true
	}

	out := make([]int, 0, len(seen))
	for w := range seen {
		out = append(out, w)
	}
	sort.Ints(out)
	return out, nil
}

func checkWeek(w int) error {
	if w < 1 || w > 53 {
		return fmt.Errorf("%w: week number %d out of range (must be 1-53)", timesheet.ErrConfiguration, w)
	}
	return nil
}

func checkYear(y int) error {
	if y < 2000 || y > 2100 {
		return fmt.Errorf("%w: year %d out of range (must be 2000-2100)", timesheet.ErrConfiguration, y)
	}
	return nil
}

// displayPatterns match the week indicator text rendered by the TMS.
// Tried in order; the first match wins.
var displayPatterns = []*regexp.Regexp{
	regexp.MustCompile(`[Ww]eek\s*(\d+)[,\s]+(\d{4})`), // "Week 48, 2025"
	regexp.MustCompile(`[Ww](\d+)\s+(\d{4})`),          // "W48 2025"
	regexp.MustCompile(`(\d+)[,\s]+(\d{4})`),           // "48, 2025"
}

// ParseDisplay extracts (year, week) from the week indicator text. Fails
// with ErrNavigation when the text matches no known format.
func ParseDisplay(text string) (Stamp, error) {
	for _, pat := range displayPatterns {
		m := pat.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		week, _ := strconv.Atoi(m[1])
		year, _ := strconv.Atoi(m[2])
		if week < 1 || week > 53 {
			return Stamp{}, fmt.Errorf("%w: week %d in indicator %q out of range", timesheet.ErrNavigation, week, text)
		}
		if year < 2000 || year > 2100 {
			return Stamp{}, fmt.Errorf("%w: year %d in indicator %q out of range", timesheet.ErrNavigation, year, text)
		}
		return Stamp{Year: year, Week: week}, nil
	}
	return Stamp{}, fmt.Errorf("%w: cannot parse week indicator text %q", timesheet.ErrNavigation, text)
}

// Resolve turns parsed week numbers into absolute Stamps. When year is
// zero, the baseline's year is assumed; targets are still bounds-checked
// against the baseline before any navigation happens.
func Resolve(weekNums []int, year int, baseline Stamp) ([]Stamp, error) {
	if year != 0 {
		if err := checkYear(year); err != nil {
			return nil, err
		}
	}
	targets := make([]Stamp, 0, len(weekNums))
	for _, w := range weekNums {
		if err := checkWeek(w); err != nil {
			return nil, err
		}
		y := year
		if y == 0 {
			y = baseline.Year
		}
		target := Stamp{Year: y, Week: w}
		if err := ValidateOffset(baseline.DeltaTo(target)); err != nil {
			return nil, err
		}
		targets = append(targets, target)
	}
	return targets, nil
}

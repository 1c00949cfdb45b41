package calendar

import (
	"fmt"
	"strings"
	"time"
)

// TimeOfDay is a wall-clock time expressed as minutes since local midnight.
type TimeOfDay int

// ParseTimeOfDay converts "HH:MM" to a TimeOfDay.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	return TimeOfDay(t.Hour()*60 + t.Minute()), nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// Window is a half-open [Start, End) wall-clock window within a single day.
type Window struct {
	Start TimeOfDay
	End   TimeOfDay
}

// ParseWindow converts "HH:MM-HH:MM" to a Window.
func ParseWindow(s string) (Window, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 2 {
		return Window{}, fmt.Errorf("invalid window %q: expected HH:MM-HH:MM", s)
	}
	start, err := ParseTimeOfDay(strings.TrimSpace(parts[0]))
	if err != nil {
		return Window{}, err
	}
	end, err := ParseTimeOfDay(strings.TrimSpace(parts[1]))
	if err != nil {
		return Window{}, err
	}
	return Window{Start: start, End: end}, nil
}

// Calendar describes the workshop operating hours used to clip raw time spans
// into effective business time. A Calendar is immutable after construction and
// all of its methods are safe for concurrent use.
type Calendar struct {
	location  *time.Location
	operating Window
	breaks    []Window
}

// New validates the configuration and builds a Calendar. A misconfigured
// calendar (inverted operating window, break outside the operating window,
// overlapping breaks) is rejected here once, so the clipping functions never
// have to re-validate per call.
func New(timezone string, operating Window, breaks []Window) (*Calendar, error) {
	location, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("could not load location for timezone %s: %w", timezone, err)
	}
	if operating.Start >= operating.End {
		return nil, fmt.Errorf("operating window start %s must be before end %s", operating.Start, operating.End)
	}
	for i, b := range breaks {
		if b.Start >= b.End {
			return nil, fmt.Errorf("break window start %s must be before end %s", b.Start, b.End)
		}
		if b.Start < operating.Start || b.End > operating.End {
			return nil, fmt.Errorf("break window %s-%s lies outside the operating window", b.Start, b.End)
		}
		for _, other := range breaks[:i] {
			if b.Start < other.End && other.Start < b.End {
				return nil, fmt.Errorf("break windows %s-%s and %s-%s overlap", other.Start, other.End, b.Start, b.End)
			}
		}
	}
	return &Calendar{location: location, operating: operating, breaks: breaks}, nil
}

// FromConfig builds a Calendar from the string form used in configuration.
func FromConfig(timezone, operatingStart, operatingEnd string, breaks []string) (*Calendar, error) {
	start, err := ParseTimeOfDay(operatingStart)
	if err != nil {
		return nil, err
	}
	end, err := ParseTimeOfDay(operatingEnd)
	if err != nil {
		return nil, err
	}
	windows := make([]Window, 0, len(breaks))
	for _, b := range breaks {
		w, err := ParseWindow(b)
		if err != nil {
			return nil, err
		}
		windows = append(windows, w)
	}
	return New(timezone, Window{Start: start, End: end}, windows)
}

// Location returns the local display timezone all calendar math uses.
func (c *Calendar) Location() *time.Location {
	return c.location
}

// EffectiveDuration computes how much of [start, end] falls inside the
// operating window and outside break windows, walking calendar days in the
// calendar's local timezone. Returns zero when end is not after start.
func (c *Calendar) EffectiveDuration(start, end time.Time) time.Duration {
	if !end.After(start) {
		return 0
	}

	localStart := start.In(c.location)
	localEnd := end.In(c.location)

	total := time.Duration(0)
	for day := startOfDay(localStart); !day.After(localEnd); day = day.AddDate(0, 0, 1) {
		dayOpen := day.Add(time.Duration(c.operating.Start) * time.Minute)
		dayClose := day.Add(time.Duration(c.operating.End) * time.Minute)

		// Bound the first and last day by the span itself, intermediate
		// days by the full operating window.
		from := maxTime(dayOpen, localStart)
		to := minTime(dayClose, localEnd)
		if !to.After(from) {
			continue
		}

		total += to.Sub(from)
		for _, b := range c.breaks {
			breakStart := day.Add(time.Duration(b.Start) * time.Minute)
			breakEnd := day.Add(time.Duration(b.End) * time.Minute)
			total -= overlap(from, to, breakStart, breakEnd)
		}
	}
	return total
}

// SameLocalDay reports whether a and b fall on the same local calendar date.
func (c *Calendar) SameLocalDay(a, b time.Time) bool {
	yearA, monthA, dayA := a.In(c.location).Date()
	yearB, monthB, dayB := b.In(c.location).Date()
	return yearA == yearB && monthA == monthB && dayA == dayB
}

// overlap returns the length of the intersection of [fromA, toA] and [fromB, toB].
func overlap(fromA, toA, fromB, toB time.Time) time.Duration {
	from := maxTime(fromA, fromB)
	to := minTime(toA, toB)
	if !to.After(from) {
		return 0
	}
	return to.Sub(from)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}

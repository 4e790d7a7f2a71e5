package taikin

import (
	"fmt"
	"strconv"
	"strings"
)

// Clock is a wall-clock time of day in minutes since midnight.
//
// A Clock may exceed 24:00 when it is a computed departure; arrival and
// break times are always within a single day.
type Clock int

const (
	minutesPerHour = 60
	minutesPerDay  = 24 * minutesPerHour
)

const emptyClockStr = "--:--"

func NewClock(hour, minute int) Clock {
	return Clock(hour*minutesPerHour + minute)
}

// ParseClock parses an "HH:MM" time of day. Hours must be 0-23.
func ParseClock(s string) (Clock, error) {
	c, err := parseClock(s)
	if err != nil {
		return 0, err
	}
	if !c.IsTimeOfDay() {
		return 0, validationError("parse clock", fmt.Sprintf("time of day out of range: %q", s))
	}
	return c, nil
}

// parseClock accepts any non-negative hour so that departures past
// midnight ("25:30") survive a round trip through storage.
func parseClock(s string) (Clock, error) {
	hs, ms, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || len(hs) < 1 || len(hs) > 2 || len(ms) != 2 || !isDigits(hs) || !isDigits(ms) {
		return 0, validationError("parse clock", fmt.Sprintf("invalid time format %q, want HH:MM", s))
	}
	h, err := strconv.Atoi(hs)
	if err != nil {
		return 0, validationError("parse clock", fmt.Sprintf("invalid hour in %q", s))
	}
	m, err := strconv.Atoi(ms)
	if err != nil || m >= minutesPerHour {
		return 0, validationError("parse clock", fmt.Sprintf("invalid minute in %q", s))
	}
	return NewClock(h, m), nil
}

// isDigits reports whether s is made of ASCII digits only.
func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func (c Clock) Hour() int   { return int(c) / minutesPerHour }
func (c Clock) Minute() int { return int(c) % minutesPerHour }

// IsTimeOfDay reports whether c lies within [00:00, 24:00).
func (c Clock) IsTimeOfDay() bool {
	return c >= 0 && c < minutesPerDay
}

func (c Clock) String() string {
	if c < 0 {
		return emptyClockStr
	}
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

func (c Clock) MarshalText() ([]byte, error) {
	if c < 0 {
		return nil, validationError("marshal clock", fmt.Sprintf("negative clock %d", int(c)))
	}
	return []byte(c.String()), nil
}

func (c *Clock) UnmarshalText(b []byte) error {
	v, err := parseClock(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// ClockString formats an optional clock, using "--:--" for no data.
func ClockString(c *Clock) string {
	if c == nil {
		return emptyClockStr
	}
	return c.String()
}

package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidTime marks a malformed completion-time string. Callers treat it
// as a validation failure and reject the habit.
var ErrInvalidTime = fmt.Errorf("invalid completion time")

// ParseClock parses a 12-hour clock string like "8:30AM" or "12:05 pm" into
// a 24-hour (hour, minute) pair. 12AM maps to hour 0 and 12PM stays 12.
func ParseClock(s string) (hour, minute int, err error) {
	raw := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))

	var meridiem string
	switch {
	case strings.HasSuffix(raw, "AM"):
		meridiem = "AM"
	case strings.HasSuffix(raw, "PM"):
		meridiem = "PM"
	default:
		return 0, 0, fmt.Errorf("%w: %q is missing AM/PM", ErrInvalidTime, s)
	}
	raw = strings.TrimSuffix(raw, meridiem)

	parts := strings.Split(raw, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: %q is not HH:MM", ErrInvalidTime, s)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: bad hour in %q", ErrInvalidTime, s)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: bad minute in %q", ErrInvalidTime, s)
	}
	if hour < 1 || hour > 12 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("%w: %q out of range", ErrInvalidTime, s)
	}

	if meridiem == "AM" {
		if hour == 12 {
			hour = 0
		}
	} else if hour != 12 {
		hour += 12
	}
	return hour, minute, nil
}

// NormalizeDue composes a completion-time string with today's date in loc,
// seconds truncated. The result is due-for-today even when the clock time has
// already passed; callers wanting "next occurrence" must roll forward
// themselves.
func NormalizeDue(s string, loc *time.Location, now time.Time) (time.Time, error) {
	hour, minute, err := ParseClock(s)
	if err != nil {
		return time.Time{}, err
	}
	local := now.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), hour, minute, 0, 0, loc), nil
}

// StartOfDay truncates t to midnight in loc. HabitLog rows are keyed by this.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

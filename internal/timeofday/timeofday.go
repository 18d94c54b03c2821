// Package timeofday parses 12-hour "H:MM" inputs and does the session
// duration arithmetic on minute-of-day values.
package timeofday

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const minutesPerDay = 24 * 60

var twelveHourRegex = regexp.MustCompile(`^(0?[1-9]|1[0-2]):([0-5][0-9])$`)

type Period string

const (
	AM Period = "AM"
	PM Period = "PM"
)

func ParsePeriod(s string) (Period, error) {
	switch Period(strings.ToUpper(strings.TrimSpace(s))) {
	case AM:
		return AM, nil
	case PM:
		return PM, nil
	default:
		return "", fmt.Errorf("invalid period: %q", s)
	}
}

func (p Period) IsValid() bool {
	return p == AM || p == PM
}

// TimeOfDay is a 24-hour minute-of-day value.
type TimeOfDay struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
}

func (t TimeOfDay) TotalMinutes() int {
	return t.Hours*60 + t.Minutes
}

// String returns "HH:MM".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hours, t.Minutes)
}

// Clock returns "HH:MM:SS", the form sessions are stored in.
func (t TimeOfDay) Clock() string {
	return t.String() + ":00"
}

// Format12 returns the 12-hour text ("9:05") and its period.
func (t TimeOfDay) Format12() (string, Period) {
	period := AM
	if t.Hours >= 12 {
		period = PM
	}
	hour := t.Hours % 12
	if hour == 0 {
		hour = 12
	}
	return fmt.Sprintf("%d:%02d", hour, t.Minutes), period
}

// Validate reports whether text is a 12-hour H:MM value. Leading zero
// on the hour is optional, minutes must be two digits.
func Validate(text string) bool {
	return twelveHourRegex.MatchString(text)
}

// To24Hour converts a 12-hour value to "HH:MM". Returns "" if text is
// not valid; callers check Validate first.
func To24Hour(text string, period Period) string {
	t, ok := Parse(text, period)
	if !ok {
		return ""
	}
	return t.String()
}

func Parse(text string, period Period) (TimeOfDay, bool) {
	match := twelveHourRegex.FindStringSubmatch(text)
	if match == nil {
		return TimeOfDay{}, false
	}

	hours, _ := strconv.Atoi(match[1])
	minutes, _ := strconv.Atoi(match[2])

	switch {
	case period == PM && hours != 12:
		hours += 12
	case period == AM && hours == 12:
		hours = 0
	}

	return TimeOfDay{Hours: hours, Minutes: minutes}, true
}

// Duration returns the minutes from start to end. An end at or before the
// start is taken to be after midnight, so a negative difference gets a
// full day added. Equal times give 0; rejecting that is up to the caller.
func Duration(startText string, startPeriod Period, endText string, endPeriod Period) (int, bool) {
	start, ok := Parse(startText, startPeriod)
	if !ok {
		return 0, false
	}
	end, ok := Parse(endText, endPeriod)
	if !ok {
		return 0, false
	}

	duration := end.TotalMinutes() - start.TotalMinutes()
	if duration < 0 {
		duration += minutesPerDay
	}
	return duration, true
}

// EndTimeFromDuration adds durationMinutes to a "HH:MM" start and returns
// "HH:MM:SS". Hours are not wrapped at 24.
func EndTimeFromDuration(startHHMM string, durationMinutes int) (string, error) {
	if durationMinutes < 0 {
		return "", fmt.Errorf("negative duration: %d minutes", durationMinutes)
	}
	start, err := ParseClock(startHHMM)
	if err != nil {
		return "", err
	}

	total := start.TotalMinutes() + durationMinutes
	return fmt.Sprintf("%02d:%02d:00", total/60, total%60), nil
}

// ParseClock parses a 24-hour "HH:MM" or "HH:MM:SS" value.
func ParseClock(s string) (TimeOfDay, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return TimeOfDay{}, fmt.Errorf("invalid clock value: %q", s)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 23 {
		return TimeOfDay{}, fmt.Errorf("invalid hours in %q", s)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return TimeOfDay{}, fmt.Errorf("invalid minutes in %q", s)
	}

	return TimeOfDay{Hours: hours, Minutes: minutes}, nil
}

// Display12 renders a stored "HH:MM:SS" as "9:00 AM".
func Display12(clock string) (string, error) {
	t, err := ParseClock(clock)
	if err != nil {
		return "", err
	}
	text, period := t.Format12()
	return text + " " + string(period), nil
}

// Package calendar builds the month grid shown on the schedule screen.
package calendar

import (
	"fmt"
	"iter"
	"time"
)

const DateKeyLayout = "2006-01-02"

var WeekdayNames = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// SessionsMap maps a date key (YYYY-MM-DD) to the number of sessions on that day.
type SessionsMap map[string]int

func BuildSessionsMap(dateKeys []string) SessionsMap {
	m := make(SessionsMap, len(dateKeys))
	for _, k := range dateKeys {
		m[k]++
	}
	return m
}

type Highlight string

const (
	HighlightNone     Highlight = "none"
	HighlightSelected Highlight = "selected"
	HighlightToday    Highlight = "today"
	HighlightSessions Highlight = "sessions"
)

type Day struct {
	Day         int    `json:"day"`
	DateKey     string `json:"dateKey"`
	IsToday     bool   `json:"isToday"`
	IsSelected  bool   `json:"isSelected"`
	HasSessions bool   `json:"hasSessions"`
}

// Highlight picks the day styling. Selected wins over today, and the
// sessions marker only shows on days that are neither.
func (d Day) Highlight() Highlight {
	switch {
	case d.IsSelected:
		return HighlightSelected
	case d.IsToday:
		return HighlightToday
	case d.HasSessions:
		return HighlightSessions
	default:
		return HighlightNone
	}
}

type Grid struct {
	Year          int        `json:"year"`
	Month         time.Month `json:"month"`
	Title         string     `json:"title"`
	LeadingBlanks int        `json:"leadingBlanks"`
	Days          []Day      `json:"days"`
}

// NewGrid lays out the given month. Only the calendar dates of selected
// and today are compared; their clock and location are ignored.
func NewGrid(year int, month time.Month, selected, today time.Time, sessions SessionsMap) Grid {
	year, month = Normalize(year, int(month))

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := DaysIn(year, month)

	g := Grid{
		Year:          year,
		Month:         month,
		Title:         MonthTitle(year, month),
		LeadingBlanks: int(first.Weekday()),
		Days:          make([]Day, 0, daysInMonth),
	}

	for day := 1; day <= daysInMonth; day++ {
		key := FormatDateKey(year, month, day)
		g.Days = append(g.Days, Day{
			Day:         day,
			DateKey:     key,
			IsToday:     sameDate(today, year, month, day),
			IsSelected:  sameDate(selected, year, month, day),
			HasSessions: sessions[key] > 0,
		})
	}

	return g
}

// Cells is the number of grid cells, blanks included.
func (g Grid) Cells() int {
	return g.LeadingBlanks + len(g.Days)
}

// All yields the days in order. The sequence can be ranged over again.
func (g Grid) All() iter.Seq[Day] {
	return func(yield func(Day) bool) {
		for _, d := range g.Days {
			if !yield(d) {
				return
			}
		}
	}
}

func DaysIn(year int, month time.Month) int {
	// day 0 of the next month is the last day of this one
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Normalize applies date rollover to an out-of-range month,
// e.g. (2025, 13) -> (2026, January), (2026, 0) -> (2025, December).
func Normalize(year, month int) (int, time.Month) {
	t := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return t.Year(), t.Month()
}

func PrevMonth(year int, month time.Month) (int, time.Month) {
	return Normalize(year, int(month)-1)
}

func NextMonth(year int, month time.Month) (int, time.Month) {
	return Normalize(year, int(month)+1)
}

func MonthTitle(year int, month time.Month) string {
	return fmt.Sprintf("%s %d", month, year)
}

func FormatDateKey(year int, month time.Month, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, int(month), day)
}

// DateKey is the calendar date of t in its own location.
func DateKey(t time.Time) string {
	return t.Format(DateKeyLayout)
}

func ParseDateKey(key string) (time.Time, error) {
	return time.Parse(DateKeyLayout, key)
}

// MonthRange returns the first and last date of the month as date keys.
func MonthRange(year int, month time.Month) (from, to string) {
	return FormatDateKey(year, month, 1), FormatDateKey(year, month, DaysIn(year, month))
}

func sameDate(t time.Time, year int, month time.Month, day int) bool {
	if t.IsZero() {
		return false
	}
	y, m, d := t.Date()
	return y == year && m == month && d == day
}

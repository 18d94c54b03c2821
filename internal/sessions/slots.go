package sessions

import (
	"slices"

	"github.com/2beens/liftly/internal/timeofday"
)

// BusinessHours are the bookable slot start times of a day.
var BusinessHours = []string{
	"09:00:00", "10:00:00", "11:00:00", "14:00:00",
	"15:00:00", "16:00:00", "17:00:00", "18:00:00",
}

func IsBusinessHour(clock string) bool {
	return slices.Contains(BusinessHours, clock)
}

type Slot struct {
	Time      string   `json:"time"`
	Display   string   `json:"display"`
	Available bool     `json:"available"`
	Session   *Session `json:"session,omitempty"`
}

// DaySlots marks each business hour as booked when one of the day's
// sessions starts exactly at it. Sessions starting off the hour do not
// block a slot.
func DaySlots(daySessions []Session) []Slot {
	slots := make([]Slot, 0, len(BusinessHours))
	for _, t := range BusinessHours {
		slot := Slot{Time: t, Display: displayTime(t), Available: true}
		for i := range daySessions {
			if daySessions[i].StartTime == t {
				s := daySessions[i]
				slot.Available = false
				slot.Session = &s
				break
			}
		}
		slots = append(slots, slot)
	}
	return slots
}

func displayTime(clock string) string {
	d, err := timeofday.Display12(clock)
	if err != nil {
		return clock
	}
	return d
}

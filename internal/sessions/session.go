package sessions

import (
	"strings"
	"time"

	"github.com/2beens/liftly/internal/apperr"
	"github.com/2beens/liftly/internal/calendar"
	"github.com/2beens/liftly/internal/timeofday"
)

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// SlotDurationMinutes is the length of a session booked from a day slot.
const SlotDurationMinutes = 60

const (
	msgStartFormat = "Invalid format. Use H:MM (e.g., 9:00)"
	msgEndFormat   = "Invalid format. Use H:MM (e.g., 6:30)"
	msgEndBefore   = "End time must be after start time"
)

// Session is a scheduled trainer and client meeting. Start and end times are
// stored as "HH:MM:SS"; the end hour is not wrapped, so a session running past
// midnight ends at e.g. "25:00:00".
type Session struct {
	ID                int       `json:"id"`
	TrainerID         int       `json:"trainerId"`
	ClientID          int       `json:"clientId"`
	Name              string    `json:"name"`
	Date              string    `json:"date"`
	StartTime         string    `json:"startTime"`
	EndTime           string    `json:"endTime"`
	DurationMinutes   int       `json:"durationMinutes"`
	Location          string    `json:"location"`
	Status            Status    `json:"status"`
	WorkoutTemplateID *int      `json:"workoutTemplateId,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
}

// Draft is the new session form as typed in, with 12-hour times.
type Draft struct {
	ClientID          int    `json:"clientId"`
	Name              string `json:"name"`
	Date              string `json:"date"`
	StartTime         string `json:"startTime"`
	StartPeriod       string `json:"startPeriod"`
	EndTime           string `json:"endTime"`
	EndPeriod         string `json:"endPeriod"`
	Location          string `json:"location"`
	WorkoutTemplateID *int   `json:"workoutTemplateId,omitempty"`
}

// Prepared is a validated session, ready to be stored.
type Prepared struct {
	ClientID          int
	Name              string
	Date              string
	StartTime         string
	EndTime           string
	DurationMinutes   int
	Location          string
	WorkoutTemplateID *int
}

// Validate checks the form and derives the stored times and duration.
// An end time at or before the start wraps past midnight; only a zero
// length session is rejected.
func (d Draft) Validate() (Prepared, error) {
	const op = "sessions.validate"

	startPeriod, err := timeofday.ParsePeriod(d.StartPeriod)
	if err != nil {
		return Prepared{}, apperr.Validation(op, "startPeriod", "Please select AM or PM")
	}
	endPeriod, err := timeofday.ParsePeriod(d.EndPeriod)
	if err != nil {
		return Prepared{}, apperr.Validation(op, "endPeriod", "Please select AM or PM")
	}
	startText := strings.TrimSpace(d.StartTime)
	if !timeofday.Validate(startText) {
		return Prepared{}, apperr.Validation(op, "startTime", msgStartFormat)
	}
	endText := strings.TrimSpace(d.EndTime)
	if !timeofday.Validate(endText) {
		return Prepared{}, apperr.Validation(op, "endTime", msgEndFormat)
	}
	if d.ClientID <= 0 {
		return Prepared{}, apperr.Validation(op, "clientId", "Please select a client")
	}
	location := strings.TrimSpace(d.Location)
	if location == "" {
		return Prepared{}, apperr.Validation(op, "location", "Please enter a location")
	}
	if _, err := calendar.ParseDateKey(d.Date); err != nil {
		return Prepared{}, apperr.Validation(op, "date", "Invalid date. Use YYYY-MM-DD")
	}

	duration, ok := timeofday.Duration(startText, startPeriod, endText, endPeriod)
	if !ok || duration <= 0 {
		return Prepared{}, apperr.Validation(op, "endTime", msgEndBefore)
	}

	start24 := timeofday.To24Hour(startText, startPeriod)
	endClock, err := timeofday.EndTimeFromDuration(start24, duration)
	if err != nil {
		return Prepared{}, apperr.Validation(op, "startTime", msgStartFormat)
	}

	return Prepared{
		ClientID:          d.ClientID,
		Name:              strings.TrimSpace(d.Name),
		Date:              d.Date,
		StartTime:         start24 + ":00",
		EndTime:           endClock,
		DurationMinutes:   duration,
		Location:          location,
		WorkoutTemplateID: d.WorkoutTemplateID,
	}, nil
}

// SlotBooking books one of the fixed day slots for an hour.
type SlotBooking struct {
	ClientID int    `json:"clientId"`
	Name     string `json:"name"`
	Date     string `json:"date"`
	SlotTime string `json:"slotTime"`
	Location string `json:"location"`
}

func (b SlotBooking) Validate() (Prepared, error) {
	const op = "sessions.book"
	if !IsBusinessHour(b.SlotTime) {
		return Prepared{}, apperr.Validation(op, "slotTime", "Please pick one of the available slots")
	}
	if b.ClientID <= 0 {
		return Prepared{}, apperr.Validation(op, "clientId", "Please select a client")
	}
	location := strings.TrimSpace(b.Location)
	if location == "" {
		return Prepared{}, apperr.Validation(op, "location", "Please enter a location")
	}
	if _, err := calendar.ParseDateKey(b.Date); err != nil {
		return Prepared{}, apperr.Validation(op, "date", "Invalid date. Use YYYY-MM-DD")
	}

	end, err := timeofday.EndTimeFromDuration(b.SlotTime, SlotDurationMinutes)
	if err != nil {
		return Prepared{}, apperr.Validation(op, "slotTime", "Please pick one of the available slots")
	}
	return Prepared{
		ClientID:        b.ClientID,
		Name:            strings.TrimSpace(b.Name),
		Date:            b.Date,
		StartTime:       b.SlotTime,
		EndTime:         end,
		DurationMinutes: SlotDurationMinutes,
		Location:        location,
	}, nil
}

// DefaultName is used when a session is saved without a name.
func DefaultName(clientName string) string {
	return "Session with " + clientName
}

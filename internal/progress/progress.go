package progress

import (
	"math"
	"slices"
	"strings"
	"time"

	"github.com/2beens/liftly/internal/apperr"
	"github.com/2beens/liftly/internal/calendar"
)

const (
	DefaultMeasurement1Label = "Waist"
	DefaultMeasurement2Label = "Hips"
)

var (
	RecordTypes = []string{"1RM", "3RM", "5RM", "10RM", "Max Reps", "Distance", "Time"}
	Units       = []string{"lbs", "kg", "reps", "miles", "km", "meters", "minutes", "seconds"}
)

// Measurement is one body check-in. Nil values were not taken.
type Measurement struct {
	ID                int       `json:"id"`
	ClientID          int       `json:"clientId"`
	Date              string    `json:"date"`
	Weight            *float64  `json:"weight"`
	Measurement1      *float64  `json:"measurement1"`
	Measurement1Label string    `json:"measurement1Label"`
	Measurement2      *float64  `json:"measurement2"`
	Measurement2Label string    `json:"measurement2Label"`
	Notes             string    `json:"notes"`
	CreatedAt         time.Time `json:"createdAt"`
}

type NewMeasurement struct {
	Date              string   `json:"date"`
	Weight            *float64 `json:"weight"`
	Measurement1      *float64 `json:"measurement1"`
	Measurement1Label string   `json:"measurement1Label"`
	Measurement2      *float64 `json:"measurement2"`
	Measurement2Label string   `json:"measurement2Label"`
	Notes             string   `json:"notes"`
}

// Prepare validates a measurement. An empty date means today.
func (m NewMeasurement) Prepare(today time.Time) (NewMeasurement, error) {
	const op = "progress.add_measurement"
	if m.Weight == nil && m.Measurement1 == nil && m.Measurement2 == nil {
		return m, apperr.Validation(op, "weight", "Please enter a weight or at least one measurement")
	}
	for _, v := range []*float64{m.Weight, m.Measurement1, m.Measurement2} {
		if v != nil && *v < 0 {
			return m, apperr.Validation(op, "weight", "Values cannot be negative")
		}
	}

	date, err := prepareDate(op, m.Date, today)
	if err != nil {
		return m, err
	}
	m.Date = date

	m.Measurement1Label = strings.TrimSpace(m.Measurement1Label)
	if m.Measurement1Label == "" {
		m.Measurement1Label = DefaultMeasurement1Label
	}
	m.Measurement2Label = strings.TrimSpace(m.Measurement2Label)
	if m.Measurement2Label == "" {
		m.Measurement2Label = DefaultMeasurement2Label
	}
	m.Notes = strings.TrimSpace(m.Notes)
	return m, nil
}

type PersonalRecord struct {
	ID            int       `json:"id"`
	ClientID      int       `json:"clientId"`
	ExerciseName  string    `json:"exerciseName"`
	RecordType    string    `json:"recordType"`
	Value         float64   `json:"value"`
	Unit          string    `json:"unit"`
	AchievedDate  string    `json:"achievedDate"`
	PreviousValue *float64  `json:"previousValue"`
	Notes         string    `json:"notes"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Improvement is the gain over the previous record, if one was given.
func (pr PersonalRecord) Improvement() *float64 {
	if pr.PreviousValue == nil {
		return nil
	}
	d := pr.Value - *pr.PreviousValue
	return &d
}

type NewPersonalRecord struct {
	ExerciseName  string   `json:"exerciseName"`
	RecordType    string   `json:"recordType"`
	Value         *float64 `json:"value"`
	Unit          string   `json:"unit"`
	AchievedDate  string   `json:"achievedDate"`
	PreviousValue *float64 `json:"previousValue"`
	Notes         string   `json:"notes"`
}

// Prepare validates a personal record. Record type and unit default to
// 1RM in lbs, an empty date means today.
func (pr NewPersonalRecord) Prepare(today time.Time) (NewPersonalRecord, error) {
	const op = "progress.add_personal_record"
	pr.ExerciseName = strings.TrimSpace(pr.ExerciseName)
	if pr.ExerciseName == "" {
		return pr, apperr.Validation(op, "exerciseName", "Please enter an exercise name")
	}
	if pr.Value == nil {
		return pr, apperr.Validation(op, "value", "Please enter a value")
	}

	if pr.RecordType == "" {
		pr.RecordType = RecordTypes[0]
	}
	if !slices.Contains(RecordTypes, pr.RecordType) {
		return pr, apperr.Validation(op, "recordType", "Unknown record type: "+pr.RecordType)
	}
	if pr.Unit == "" {
		pr.Unit = Units[0]
	}
	if !slices.Contains(Units, pr.Unit) {
		return pr, apperr.Validation(op, "unit", "Unknown unit: "+pr.Unit)
	}

	date, err := prepareDate(op, pr.AchievedDate, today)
	if err != nil {
		return pr, err
	}
	pr.AchievedDate = date
	pr.Notes = strings.TrimSpace(pr.Notes)
	return pr, nil
}

func prepareDate(op, date string, today time.Time) (string, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return calendar.DateKey(today), nil
	}
	if _, err := calendar.ParseDateKey(date); err != nil {
		return "", apperr.Validation(op, "date", "Invalid date. Use YYYY-MM-DD")
	}
	return date, nil
}

type Point struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// Trend summarizes a series for the chart header.
type Trend struct {
	Points        []Point `json:"points"`
	Latest        float64 `json:"latest"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
}

// NewTrend computes the trend of points ordered oldest first. With a single
// point the change is 0, a previous value of 0 gives a 0 percent change.
// The percentage is rounded to one decimal.
func NewTrend(points []Point) (Trend, bool) {
	if len(points) == 0 {
		return Trend{}, false
	}
	latest := points[len(points)-1].Value
	previous := latest
	if len(points) > 1 {
		previous = points[len(points)-2].Value
	}

	t := Trend{
		Points: points,
		Latest: latest,
		Change: latest - previous,
	}
	if previous != 0 {
		t.ChangePercent = math.Round(t.Change/previous*1000) / 10
	}
	return t, true
}

// Series picks one value out of the measurements and returns the points
// ordered by date, oldest first. Measurements without that value are skipped.
func Series(measurements []Measurement, value func(Measurement) *float64) []Point {
	points := make([]Point, 0, len(measurements))
	for _, m := range measurements {
		if v := value(m); v != nil {
			points = append(points, Point{Date: m.Date, Value: *v})
		}
	}
	slices.SortStableFunc(points, func(a, b Point) int {
		return strings.Compare(a.Date, b.Date)
	})
	return points
}

func Weight(m Measurement) *float64       { return m.Weight }
func Measurement1(m Measurement) *float64 { return m.Measurement1 }
func Measurement2(m Measurement) *float64 { return m.Measurement2 }

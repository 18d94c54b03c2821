package workouts

import (
	"strings"
	"time"

	"github.com/2beens/liftly/internal/apperr"
	"github.com/2beens/liftly/internal/calendar"
)

type Workout struct {
	ID        int       `json:"id"`
	ClientID  int       `json:"clientId"`
	SessionID *int      `json:"sessionId,omitempty"`
	Name      string    `json:"name"`
	Date      string    `json:"date"` // YYYY-MM-DD
	Notes     string    `json:"notes"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewWorkout describes the workout row backing a draft or a one-shot log.
type NewWorkout struct {
	ClientID  int    `json:"clientId"`
	SessionID *int   `json:"sessionId,omitempty"`
	Name      string `json:"name"`
	Date      string `json:"date"`
	Notes     string `json:"notes"`
}

type Exercise struct {
	ID         int     `json:"id"`
	WorkoutID  int     `json:"workoutId"`
	Name       string  `json:"name"`
	Sets       int     `json:"sets"`
	Reps       int     `json:"reps"`
	Weight     float64 `json:"weight"`
	Notes      string  `json:"notes"`
	OrderIndex int     `json:"orderIndex"`
}

// SessionSet is one performed set on the current workout screen of a session.
type SessionSet struct {
	ExerciseName  string  `json:"exerciseName"`
	SetNumber     int     `json:"setNumber"`
	RepsCompleted int     `json:"repsCompleted"`
	WeightUsed    float64 `json:"weightUsed"`
	Completed     bool    `json:"completed"`
	OrderIndex    int     `json:"orderIndex"`
}

type CompletionStats struct {
	TotalSets     int `json:"totalSets"`
	CompletedSets int `json:"completedSets"`
}

func Completion(sets []SessionSet) CompletionStats {
	stats := CompletionStats{TotalSets: len(sets)}
	for _, s := range sets {
		if s.Completed {
			stats.CompletedSets++
		}
	}
	return stats
}

type LogWorkoutRequest struct {
	ClientID  int             `json:"clientId"`
	Date      string          `json:"date"`
	Name      string          `json:"name"`
	Notes     string          `json:"notes"`
	Exercises []ExerciseDraft `json:"exercises"`
}

// PrepareLog validates a one-shot workout log. Exercises without a name are
// dropped, a log with no named exercise left is rejected.
func PrepareLog(req LogWorkoutRequest) (NewWorkout, []ExerciseDraft, error) {
	const op = "workouts.log"
	if req.ClientID <= 0 {
		return NewWorkout{}, nil, apperr.Validation(op, "clientId", "Please select a client")
	}
	if _, err := calendar.ParseDateKey(req.Date); err != nil {
		return NewWorkout{}, nil, apperr.Validation(op, "date", "Invalid date. Use YYYY-MM-DD")
	}

	var exercises []ExerciseDraft
	for _, e := range req.Exercises {
		e.Name = strings.TrimSpace(e.Name)
		if e.Name == "" {
			continue
		}
		if err := e.validate(op); err != nil {
			return NewWorkout{}, nil, err
		}
		e.OrderIndex = len(exercises)
		exercises = append(exercises, e)
	}
	if len(exercises) == 0 {
		return NewWorkout{}, nil, apperr.Validation(op, "exercises", "Please add at least one exercise")
	}

	return NewWorkout{
		ClientID: req.ClientID,
		Name:     strings.TrimSpace(req.Name),
		Date:     req.Date,
		Notes:    strings.TrimSpace(req.Notes),
	}, exercises, nil
}

// PrepareSessionSets drops sets without an exercise name and validates the rest.
func PrepareSessionSets(sets []SessionSet) ([]SessionSet, error) {
	const op = "workouts.sessionsets"
	prepared := make([]SessionSet, 0, len(sets))
	for _, s := range sets {
		s.ExerciseName = strings.TrimSpace(s.ExerciseName)
		if s.ExerciseName == "" {
			continue
		}
		switch {
		case s.SetNumber < 1:
			return nil, apperr.Validation(op, "setNumber", "Set number must be at least 1")
		case s.RepsCompleted < 0:
			return nil, apperr.Validation(op, "repsCompleted", "Reps cannot be negative")
		case s.WeightUsed < 0:
			return nil, apperr.Validation(op, "weightUsed", "Weight cannot be negative")
		}
		prepared = append(prepared, s)
	}
	return prepared, nil
}

package templates

import (
	"slices"
	"strings"
	"time"

	"github.com/2beens/liftly/internal/apperr"
	"github.com/2beens/liftly/internal/search"
)

type Section string

const (
	SectionWarmUp   Section = "warm-up"
	SectionMain     Section = "main"
	SectionCooldown Section = "cooldown"
)

var Sections = []Section{SectionWarmUp, SectionMain, SectionCooldown}

func (s Section) IsValid() bool {
	return slices.Contains(Sections, s)
}

const (
	DefaultSets        = 3
	DefaultReps        = "10"
	DefaultRestSeconds = 60
)

type Template struct {
	ID          int       `json:"id"`
	TrainerID   int       `json:"trainerId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Exercise is one line of a template. Reps is free text ("8-12", "AMRAP").
type Exercise struct {
	ExerciseName string  `json:"exerciseName"`
	Sets         int     `json:"sets"`
	Reps         string  `json:"reps"`
	RestSeconds  int     `json:"restSeconds"`
	Weight       float64 `json:"weight"`
	Notes        string  `json:"notes"`
	Section      Section `json:"section"`
	OrderIndex   int     `json:"orderIndex"`
}

// NewExercise returns a blank exercise with the builder defaults.
func NewExercise(section Section) Exercise {
	return Exercise{
		Sets:        DefaultSets,
		Reps:        DefaultReps,
		RestSeconds: DefaultRestSeconds,
		Section:     section,
	}
}

type Summary struct {
	Template
	ExerciseCount int `json:"exerciseCount"`
	AssignedCount int `json:"assignedCount"`
}

type Detail struct {
	Template
	Exercises         []Exercise `json:"exercises"`
	AssignedClientIDs []int      `json:"assignedClientIds"`
}

// BySection returns the exercises of one section, in order.
func (d Detail) BySection(section Section) []Exercise {
	var out []Exercise
	for _, e := range d.Exercises {
		if e.Section == section {
			out = append(out, e)
		}
	}
	return out
}

type SaveRequest struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Exercises   []Exercise `json:"exercises"`
}

// Prepare validates a template save. Unnamed exercises are dropped, the
// rest get order indices by position and defaults for missing fields.
func (r SaveRequest) Prepare() (SaveRequest, error) {
	const op = "templates.save"
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
	if r.Name == "" {
		return r, apperr.Validation(op, "name", "Please enter a template name")
	}

	exercises := make([]Exercise, 0, len(r.Exercises))
	for _, e := range r.Exercises {
		e.ExerciseName = strings.TrimSpace(e.ExerciseName)
		if e.ExerciseName == "" {
			continue
		}
		if e.Section == "" {
			e.Section = SectionMain
		}
		switch {
		case !e.Section.IsValid():
			return r, apperr.Validation(op, "section", "Unknown section: "+string(e.Section))
		case e.Sets < 0:
			return r, apperr.Validation(op, "sets", "Sets cannot be negative")
		case e.RestSeconds < 0:
			return r, apperr.Validation(op, "restSeconds", "Rest cannot be negative")
		case e.Weight < 0:
			return r, apperr.Validation(op, "weight", "Weight cannot be negative")
		}
		e.Reps = strings.TrimSpace(e.Reps)
		if e.Reps == "" {
			e.Reps = DefaultReps
		}
		e.OrderIndex = len(exercises)
		exercises = append(exercises, e)
	}
	r.Exercises = exercises
	return r, nil
}

// AssignmentDiff compares the assigned clients with the selected ones.
// Both results keep the order of their input.
func AssignmentDiff(assigned, selected []int) (add, remove []int) {
	for _, id := range selected {
		if !slices.Contains(assigned, id) && !slices.Contains(add, id) {
			add = append(add, id)
		}
	}
	for _, id := range assigned {
		if !slices.Contains(selected, id) {
			remove = append(remove, id)
		}
	}
	return add, remove
}

var searchFields = []search.Field[Summary]{
	search.Value(func(s Summary) string { return s.Name }),
	func(s Summary) *string {
		if s.Description == "" {
			return nil
		}
		return &s.Description
	},
}

// Search keeps the templates whose name or description contains query.
func Search(templates []Summary, query string) []Summary {
	return search.Filter(templates, query, searchFields...)
}

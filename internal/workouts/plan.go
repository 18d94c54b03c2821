package workouts

import (
	"context"
	"strconv"
	"strings"

	"github.com/2beens/liftly/internal/telemetry/tracing"

	"go.opentelemetry.io/otel/attribute"
)

const fallbackPlanReps = 10

// TemplateExercise is a template row as the current workout screen needs it.
type TemplateExercise struct {
	ExerciseName string
	Sets         int
	Reps         string
	Weight       float64
	Notes        string
	Section      string
	OrderIndex   int
}

type PlannedExercise struct {
	ExerciseName  string       `json:"exerciseName"`
	Section       string       `json:"section"`
	Notes         string       `json:"notes"`
	TotalSets     int          `json:"totalSets"`
	DefaultReps   int          `json:"defaultReps"`
	DefaultWeight float64      `json:"defaultWeight"`
	OrderIndex    int          `json:"orderIndex"`
	Sets          []SessionSet `json:"sets"`
}

// SessionPlan is the set plan of a session: one row per template set, filled
// from the sets already recorded for the session.
type SessionPlan struct {
	TemplateID *int              `json:"templateId,omitempty"`
	Exercises  []PlannedExercise `json:"exercises"`
	Stats      CompletionStats   `json:"stats"`
}

// DefaultReps turns a template reps text into the reps prefilled for a set.
// "8-12" gives the lower bound 8, "12" or "12 each side" give 12, anything
// unreadable gives 10. A plain 0 also falls back to 10, a range starting at 0
// does not.
func DefaultReps(reps string) int {
	reps = strings.TrimSpace(reps)
	if lower, _, isRange := strings.Cut(reps, "-"); isRange {
		if n, ok := leadingInt(lower); ok {
			return n
		}
		return fallbackPlanReps
	}
	if n, ok := leadingInt(reps); ok && n != 0 {
		return n
	}
	return fallbackPlanReps
}

// leadingInt reads the integer at the start of s, ignoring what follows.
func leadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

type setKey struct {
	name       string
	setNumber  int
	orderIndex int
}

// BuildSessionPlan expands every template exercise into sets 1..Sets. A set
// already recorded for the session (same exercise name, set number and order
// index) keeps its values, the others get the template defaults.
func BuildSessionPlan(templateID *int, exercises []TemplateExercise, recorded []SessionSet) SessionPlan {
	byKey := make(map[setKey]SessionSet, len(recorded))
	for _, s := range recorded {
		byKey[setKey{s.ExerciseName, s.SetNumber, s.OrderIndex}] = s
	}

	plan := SessionPlan{TemplateID: templateID, Exercises: make([]PlannedExercise, 0, len(exercises))}
	var all []SessionSet
	for _, ex := range exercises {
		planned := PlannedExercise{
			ExerciseName:  ex.ExerciseName,
			Section:       ex.Section,
			Notes:         ex.Notes,
			TotalSets:     ex.Sets,
			DefaultReps:   DefaultReps(ex.Reps),
			DefaultWeight: ex.Weight,
			OrderIndex:    ex.OrderIndex,
			Sets:          make([]SessionSet, 0, max(ex.Sets, 0)),
		}
		for n := 1; n <= ex.Sets; n++ {
			set, ok := byKey[setKey{ex.ExerciseName, n, ex.OrderIndex}]
			if !ok {
				set = SessionSet{
					ExerciseName:  ex.ExerciseName,
					SetNumber:     n,
					RepsCompleted: planned.DefaultReps,
					WeightUsed:    planned.DefaultWeight,
					OrderIndex:    ex.OrderIndex,
				}
			}
			planned.Sets = append(planned.Sets, set)
		}
		all = append(all, planned.Sets...)
		plan.Exercises = append(plan.Exercises, planned)
	}
	plan.Stats = Completion(all)
	return plan
}

type planRepo interface {
	SessionTemplateID(ctx context.Context, sessionID int) (*int, error)
	TemplateExercises(ctx context.Context, templateID int) ([]TemplateExercise, error)
	ListSessionSets(ctx context.Context, sessionID int) ([]SessionSet, error)
}

type Planner struct {
	repo planRepo
}

func NewPlanner(repo planRepo) *Planner {
	return &Planner{repo: repo}
}

// SessionPlan loads the plan of a session. Sessions without a template get
// an empty plan.
func (p *Planner) SessionPlan(ctx context.Context, sessionID int) (_ *SessionPlan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "workouts.plan.session")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("session.id", sessionID))

	templateID, err := p.repo.SessionTemplateID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if templateID == nil {
		plan := BuildSessionPlan(nil, nil, nil)
		return &plan, nil
	}
	span.SetAttributes(attribute.Int("template.id", *templateID))

	exercises, err := p.repo.TemplateExercises(ctx, *templateID)
	if err != nil {
		return nil, err
	}
	recorded, err := p.repo.ListSessionSets(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	plan := BuildSessionPlan(templateID, exercises, recorded)
	return &plan, nil
}

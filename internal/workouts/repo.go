package workouts

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/liftly/internal/calendar"
	"github.com/2beens/liftly/internal/telemetry/tracing"
	"github.com/2beens/liftly/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var (
	ErrWorkoutNotFound = errors.New("workout not found")
	ErrClientNotFound  = errors.New("client not found")
	ErrSessionNotFound = errors.New("session not found")
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) CreateWorkout(ctx context.Context, w NewWorkout) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("client.id", w.ClientID))

	workout, err := createWorkout(ctx, r.db, w)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("workout.id", workout.ID))
	return workout, nil
}

// querier is satisfied by both the pool and a transaction.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func createWorkout(ctx context.Context, q querier, w NewWorkout) (*Workout, error) {
	date, err := calendar.ParseDateKey(w.Date)
	if err != nil {
		return nil, fmt.Errorf("parse workout date: %w", err)
	}

	workout := &Workout{
		ClientID:  w.ClientID,
		SessionID: w.SessionID,
		Name:      w.Name,
		Date:      w.Date,
		Notes:     w.Notes,
	}
	err = q.QueryRow(
		ctx,
		`INSERT INTO workout (client_id, session_id, name, date, notes)
				VALUES ($1, $2, $3, $4, $5)
			RETURNING id, created_at;`,
		w.ClientID, w.SessionID, w.Name, date, w.Notes,
	).Scan(&workout.ID, &workout.CreatedAt)
	if err != nil {
		if pkg.IsForeignKeyViolationError(err) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("insert workout: %w", err)
	}
	return workout, nil
}

// ReplaceExercises replaces all exercises of a workout with the given list,
// in a single transaction. Order index is the position in the list.
func (r *Repo) ReplaceExercises(ctx context.Context, workoutID int, exercises []ExerciseDraft) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.exercises.replace")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.Int("workout.id", workoutID),
		attribute.Int("exercises.count", len(exercises)),
	)

	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		var exists bool
		if err := tx.QueryRow(
			ctx,
			`SELECT EXISTS (SELECT 1 FROM workout WHERE id = $1);`,
			workoutID,
		).Scan(&exists); err != nil {
			return fmt.Errorf("check workout: %w", err)
		}
		if !exists {
			return ErrWorkoutNotFound
		}

		if _, err := tx.Exec(ctx, `DELETE FROM workout_exercise WHERE workout_id = $1;`, workoutID); err != nil {
			return fmt.Errorf("delete exercises: %w", err)
		}
		return copyExercises(ctx, tx, workoutID, exercises)
	})
}

func copyExercises(ctx context.Context, tx pgx.Tx, workoutID int, exercises []ExerciseDraft) error {
	if len(exercises) == 0 {
		return nil
	}
	rows := make([][]any, 0, len(exercises))
	for i, e := range exercises {
		rows = append(rows, []any{workoutID, e.Name, e.Sets, e.Reps, e.Weight, e.Notes, i})
	}
	_, err := tx.CopyFrom(
		ctx,
		pgx.Identifier{"workout_exercise"},
		[]string{"workout_id", "name", "sets", "reps", "weight", "notes", "order_index"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("copy exercises: %w", err)
	}
	return nil
}

// LogWorkout creates a workout together with its exercises in one go.
func (r *Repo) LogWorkout(ctx context.Context, w NewWorkout, exercises []ExerciseDraft) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.log")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("client.id", w.ClientID))

	var workout *Workout
	err = pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		var err error
		workout, err = createWorkout(ctx, tx, w)
		if err != nil {
			return err
		}
		return copyExercises(ctx, tx, workout.ID, exercises)
	})
	if err != nil {
		return nil, err
	}
	return workout, nil
}

const workoutColumns = `id, client_id, session_id, name, to_char(date, 'YYYY-MM-DD'), notes, completed, created_at`

func scanWorkout(row pgx.Row) (*Workout, error) {
	var w Workout
	if err := row.Scan(
		&w.ID, &w.ClientID, &w.SessionID, &w.Name, &w.Date, &w.Notes, &w.Completed, &w.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *Repo) GetWorkout(ctx context.Context, id int) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	w, err := scanWorkout(r.db.QueryRow(ctx, `SELECT `+workoutColumns+` FROM workout WHERE id = $1;`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	return w, nil
}

// ListWorkouts returns the workouts of a client, newest first.
func (r *Repo) ListWorkouts(ctx context.Context, clientID int) (_ []Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("client.id", clientID))

	rows, err := r.db.Query(
		ctx,
		`SELECT `+workoutColumns+` FROM workout WHERE client_id = $1 ORDER BY date DESC, id DESC;`,
		clientID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var workouts []Workout
	for rows.Next() {
		w, err := scanWorkout(rows)
		if err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		workouts = append(workouts, *w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return workouts, nil
}

func (r *Repo) ListExercises(ctx context.Context, workoutID int) (_ []Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.exercises.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("workout.id", workoutID))

	rows, err := r.db.Query(
		ctx,
		`SELECT id, workout_id, name, sets, reps, weight, notes, order_index
			FROM workout_exercise WHERE workout_id = $1 ORDER BY order_index;`,
		workoutID,
	)
	if err != nil {
		return nil, err
	}

	exercises, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Exercise, error) {
		var e Exercise
		err := row.Scan(&e.ID, &e.WorkoutID, &e.Name, &e.Sets, &e.Reps, &e.Weight, &e.Notes, &e.OrderIndex)
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("collect exercises: %w", err)
	}
	return exercises, nil
}

func (r *Repo) DeleteWorkout(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	tag, err := r.db.Exec(ctx, `DELETE FROM workout WHERE id = $1;`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrWorkoutNotFound
	}
	return nil
}

// ClientTrainerID returns the trainer the client belongs to.
func (r *Repo) ClientTrainerID(ctx context.Context, clientID int) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.client.trainer")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var trainerID int
	err = r.db.QueryRow(ctx, `SELECT trainer_id FROM client WHERE id = $1;`, clientID).Scan(&trainerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrClientNotFound
		}
		return 0, err
	}
	return trainerID, nil
}

// ReplaceSessionSets replaces the performed sets of a training session.
func (r *Repo) ReplaceSessionSets(ctx context.Context, sessionID int, sets []SessionSet) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.sessionsets.replace")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.Int("session.id", sessionID),
		attribute.Int("sets.count", len(sets)),
	)

	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM session_exercise_set WHERE session_id = $1;`, sessionID); err != nil {
			return fmt.Errorf("delete session sets: %w", err)
		}
		if len(sets) == 0 {
			return nil
		}
		rows := make([][]any, 0, len(sets))
		for _, s := range sets {
			rows = append(rows, []any{
				sessionID, s.ExerciseName, s.SetNumber, s.RepsCompleted, s.WeightUsed, s.Completed, s.OrderIndex,
			})
		}
		_, err := tx.CopyFrom(
			ctx,
			pgx.Identifier{"session_exercise_set"},
			[]string{"session_id", "exercise_name", "set_number", "reps_completed", "weight_used", "completed", "order_index"},
			pgx.CopyFromRows(rows),
		)
		if err != nil {
			if pkg.IsForeignKeyViolationError(err) {
				return ErrSessionNotFound
			}
			return fmt.Errorf("copy session sets: %w", err)
		}
		return nil
	})
}

func (r *Repo) ListSessionSets(ctx context.Context, sessionID int) (_ []SessionSet, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.sessionsets.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("session.id", sessionID))

	rows, err := r.db.Query(
		ctx,
		`SELECT exercise_name, set_number, reps_completed, weight_used, completed, order_index
			FROM session_exercise_set WHERE session_id = $1 ORDER BY order_index, set_number;`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}

	sets, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (SessionSet, error) {
		var s SessionSet
		err := row.Scan(&s.ExerciseName, &s.SetNumber, &s.RepsCompleted, &s.WeightUsed, &s.Completed, &s.OrderIndex)
		return s, err
	})
	if err != nil {
		return nil, fmt.Errorf("collect session sets: %w", err)
	}
	return sets, nil
}

// SessionOwner returns the trainer and the client of a training session.
func (r *Repo) SessionOwner(ctx context.Context, sessionID int) (trainerID, clientID int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.session.owner")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	err = r.db.QueryRow(
		ctx,
		`SELECT trainer_id, client_id FROM session WHERE id = $1;`,
		sessionID,
	).Scan(&trainerID, &clientID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, 0, ErrSessionNotFound
		}
		return 0, 0, err
	}
	return trainerID, clientID, nil
}

// SessionTemplateID returns the workout template linked to a session, nil when
// the session has none.
func (r *Repo) SessionTemplateID(ctx context.Context, sessionID int) (_ *int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.session.template")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("session.id", sessionID))

	var templateID *int
	err = r.db.QueryRow(
		ctx,
		`SELECT workout_template_id FROM session WHERE id = $1;`,
		sessionID,
	).Scan(&templateID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return templateID, nil
}

func (r *Repo) TemplateExercises(ctx context.Context, templateID int) (_ []TemplateExercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.template.exercises")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("template.id", templateID))

	rows, err := r.db.Query(
		ctx,
		`SELECT exercise_name, sets, reps, weight, COALESCE(notes, ''), section, order_index
			FROM template_exercise WHERE template_id = $1 ORDER BY order_index;`,
		templateID,
	)
	if err != nil {
		return nil, err
	}

	exercises, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (TemplateExercise, error) {
		var e TemplateExercise
		err := row.Scan(&e.ExerciseName, &e.Sets, &e.Reps, &e.Weight, &e.Notes, &e.Section, &e.OrderIndex)
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("collect template exercises: %w", err)
	}
	return exercises, nil
}

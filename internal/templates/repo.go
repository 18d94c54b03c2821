package templates

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/liftly/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var (
	ErrTemplateNotFound = errors.New("workout template not found")
	ErrClientNotFound   = errors.New("client not found")
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

const templateColumns = `id, trainer_id, name, COALESCE(description, ''), created_at, updated_at`

func scanTemplate(row pgx.Row) (*Template, error) {
	var t Template
	if err := row.Scan(&t.ID, &t.TrainerID, &t.Name, &t.Description, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

// Save inserts a new template when id is 0, otherwise updates the trainer's
// template. Either way the exercise list is fully replaced.
func (r *Repo) Save(ctx context.Context, trainerID, id int, req SaveRequest) (_ *Template, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.templates.save")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.Int("trainer.id", trainerID),
		attribute.Int("id", id),
		attribute.Int("exercises.count", len(req.Exercises)),
	)

	var template *Template
	err = pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		var err error
		if id == 0 {
			template, err = scanTemplate(tx.QueryRow(
				ctx,
				`INSERT INTO workout_template (trainer_id, name, description)
						VALUES ($1, $2, NULLIF($3, ''))
					RETURNING `+templateColumns+`;`,
				trainerID, req.Name, req.Description,
			))
			if err != nil {
				return fmt.Errorf("insert template: %w", err)
			}
		} else {
			template, err = scanTemplate(tx.QueryRow(
				ctx,
				`UPDATE workout_template SET name = $3, description = NULLIF($4, ''), updated_at = now()
					WHERE id = $1 AND trainer_id = $2
					RETURNING `+templateColumns+`;`,
				id, trainerID, req.Name, req.Description,
			))
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return ErrTemplateNotFound
				}
				return fmt.Errorf("update template: %w", err)
			}
			if _, err := tx.Exec(ctx, `DELETE FROM template_exercise WHERE template_id = $1;`, id); err != nil {
				return fmt.Errorf("delete template exercises: %w", err)
			}
		}

		if len(req.Exercises) == 0 {
			return nil
		}
		rows := make([][]any, 0, len(req.Exercises))
		for _, e := range req.Exercises {
			rows = append(rows, []any{
				template.ID, e.ExerciseName, e.Sets, e.Reps, e.RestSeconds, e.Weight, e.Notes, string(e.Section), e.OrderIndex,
			})
		}
		if _, err := tx.CopyFrom(
			ctx,
			pgx.Identifier{"template_exercise"},
			[]string{"template_id", "exercise_name", "sets", "reps", "rest_seconds", "weight", "notes", "section", "order_index"},
			pgx.CopyFromRows(rows),
		); err != nil {
			return fmt.Errorf("copy template exercises: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return template, nil
}

func (r *Repo) Get(ctx context.Context, id int) (_ *Template, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.templates.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	t, err := scanTemplate(r.db.QueryRow(ctx, `SELECT `+templateColumns+` FROM workout_template WHERE id = $1;`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *Repo) Exercises(ctx context.Context, templateID int) (_ []Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.templates.exercises")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("template.id", templateID))

	rows, err := r.db.Query(
		ctx,
		`SELECT exercise_name, sets, reps, rest_seconds, weight, COALESCE(notes, ''), section, order_index
			FROM template_exercise WHERE template_id = $1 ORDER BY order_index;`,
		templateID,
	)
	if err != nil {
		return nil, err
	}

	exercises, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Exercise, error) {
		var e Exercise
		err := row.Scan(&e.ExerciseName, &e.Sets, &e.Reps, &e.RestSeconds, &e.Weight, &e.Notes, &e.Section, &e.OrderIndex)
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("collect template exercises: %w", err)
	}
	return exercises, nil
}

func (r *Repo) AssignedClientIDs(ctx context.Context, templateID int) (_ []int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.templates.assigned")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("template.id", templateID))

	rows, err := r.db.Query(
		ctx,
		`SELECT client_id FROM template_assignment WHERE template_id = $1 ORDER BY client_id;`,
		templateID,
	)
	if err != nil {
		return nil, err
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[int])
	if err != nil {
		return nil, fmt.Errorf("collect assigned clients: %w", err)
	}
	return ids, nil
}

// List returns the trainer's templates by name, with exercise and
// assignment counts.
func (r *Repo) List(ctx context.Context, trainerID int) (_ []Summary, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.templates.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("trainer.id", trainerID))

	rows, err := r.db.Query(
		ctx,
		`SELECT t.id, t.trainer_id, t.name, COALESCE(t.description, ''), t.created_at, t.updated_at,
				(SELECT count(*) FROM template_exercise e WHERE e.template_id = t.id),
				(SELECT count(*) FROM template_assignment a WHERE a.template_id = t.id)
			FROM workout_template t
			WHERE t.trainer_id = $1
			ORDER BY t.name, t.id;`,
		trainerID,
	)
	if err != nil {
		return nil, err
	}

	summaries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Summary, error) {
		var s Summary
		err := row.Scan(
			&s.ID, &s.TrainerID, &s.Name, &s.Description, &s.CreatedAt, &s.UpdatedAt,
			&s.ExerciseCount, &s.AssignedCount,
		)
		return s, err
	})
	if err != nil {
		return nil, fmt.Errorf("collect templates: %w", err)
	}
	return summaries, nil
}

func (r *Repo) Delete(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.templates.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	tag, err := r.db.Exec(ctx, `DELETE FROM workout_template WHERE id = $1;`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrTemplateNotFound
	}
	return nil
}

// UpdateAssignments removes and adds template assignments in one
// transaction. Added clients must belong to trainerID.
func (r *Repo) UpdateAssignments(ctx context.Context, trainerID, templateID int, add, remove []int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.templates.assign")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.Int("template.id", templateID),
		attribute.IntSlice("add", add),
		attribute.IntSlice("remove", remove),
	)

	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		if len(remove) > 0 {
			if _, err := tx.Exec(
				ctx,
				`DELETE FROM template_assignment WHERE template_id = $1 AND client_id = ANY($2);`,
				templateID, remove,
			); err != nil {
				return fmt.Errorf("delete assignments: %w", err)
			}
		}
		if len(add) == 0 {
			return nil
		}

		tag, err := tx.Exec(
			ctx,
			`INSERT INTO template_assignment (template_id, client_id)
				SELECT $1, c.id FROM client c WHERE c.id = ANY($2) AND c.trainer_id = $3;`,
			templateID, add, trainerID,
		)
		if err != nil {
			return fmt.Errorf("insert assignments: %w", err)
		}
		if int(tag.RowsAffected()) != len(add) {
			return ErrClientNotFound
		}
		return nil
	})
}

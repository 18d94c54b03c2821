package sessions

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/liftly/internal/telemetry/tracing"
	"github.com/2beens/liftly/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrClientNotFound   = errors.New("client not found")
	ErrTemplateNotFound = errors.New("workout template not found")
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

const sessionColumns = `id, trainer_id, client_id, name, to_char(date, 'YYYY-MM-DD'), start_time, end_time,
	duration_minutes, location, status, workout_template_id, created_at`

func scanSession(row pgx.Row) (*Session, error) {
	var s Session
	if err := row.Scan(
		&s.ID, &s.TrainerID, &s.ClientID, &s.Name, &s.Date, &s.StartTime, &s.EndTime,
		&s.DurationMinutes, &s.Location, &s.Status, &s.WorkoutTemplateID, &s.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &s, nil
}

// Add stores a scheduled session for one of the trainer's clients. A blank
// name defaults to "Session with <client name>".
func (r *Repo) Add(ctx context.Context, trainerID int, p Prepared) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.Int("trainer.id", trainerID),
		attribute.Int("client.id", p.ClientID),
	)

	var session *Session
	err = pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		var clientName string
		if err := tx.QueryRow(
			ctx,
			`SELECT name FROM client WHERE id = $1 AND trainer_id = $2;`,
			p.ClientID, trainerID,
		).Scan(&clientName); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrClientNotFound
			}
			return fmt.Errorf("get client: %w", err)
		}

		name := p.Name
		if name == "" {
			name = DefaultName(clientName)
		}

		var err error
		session, err = scanSession(tx.QueryRow(
			ctx,
			`INSERT INTO session (trainer_id, client_id, name, date, start_time, end_time,
					duration_minutes, location, status, workout_template_id)
				VALUES ($1, $2, $3, $4::date, $5, $6, $7, $8, $9, $10)
			RETURNING `+sessionColumns+`;`,
			trainerID, p.ClientID, name, p.Date, p.StartTime, p.EndTime,
			p.DurationMinutes, p.Location, StatusScheduled, p.WorkoutTemplateID,
		))
		if err != nil {
			if pkg.IsForeignKeyViolationError(err) {
				return ErrTemplateNotFound
			}
			return fmt.Errorf("insert session: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("session.id", session.ID))
	return session, nil
}

func (r *Repo) Get(ctx context.Context, id int) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	s, err := scanSession(r.db.QueryRow(ctx, `SELECT `+sessionColumns+` FROM session WHERE id = $1;`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return s, nil
}

// ListScheduled returns the scheduled sessions of a trainer between two
// date keys, both inclusive, ordered by date and start time.
func (r *Repo) ListScheduled(ctx context.Context, trainerID int, from, to string) (_ []Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.Int("trainer.id", trainerID),
		attribute.String("from", from),
		attribute.String("to", to),
	)

	rows, err := r.db.Query(
		ctx,
		`SELECT `+sessionColumns+` FROM session
			WHERE trainer_id = $1 AND status = $2 AND date BETWEEN $3::date AND $4::date
			ORDER BY date, start_time, id;`,
		trainerID, StatusScheduled, from, to,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		sessions = append(sessions, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sessions, nil
}

// ScheduledDates returns one date key per scheduled session in the range,
// the input for a calendar sessions map.
func (r *Repo) ScheduledDates(ctx context.Context, trainerID int, from, to string) (_ []string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.dates")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("trainer.id", trainerID))

	rows, err := r.db.Query(
		ctx,
		`SELECT to_char(date, 'YYYY-MM-DD') FROM session
			WHERE trainer_id = $1 AND status = $2 AND date BETWEEN $3::date AND $4::date;`,
		trainerID, StatusScheduled, from, to,
	)
	if err != nil {
		return nil, err
	}

	dates, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("collect dates: %w", err)
	}
	return dates, nil
}

// Cancel marks the session cancelled. Cancelled sessions are kept.
func (r *Repo) Cancel(ctx context.Context, id int) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.cancel")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	s, err := scanSession(r.db.QueryRow(
		ctx,
		`UPDATE session SET status = $2 WHERE id = $1 RETURNING `+sessionColumns+`;`,
		id, StatusCancelled,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("cancel session: %w", err)
	}
	return s, nil
}

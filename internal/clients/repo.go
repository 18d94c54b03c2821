package clients

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/liftly/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var ErrClientNotFound = errors.New("client not found")

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

const clientColumns = `id, trainer_id, name, COALESCE(email, ''), COALESCE(phone, ''),
	COALESCE(timezone, ''), COALESCE(goals_notes, ''), created_at, updated_at`

func scanClient(row pgx.Row) (*Client, error) {
	var c Client
	if err := row.Scan(
		&c.ID, &c.TrainerID, &c.Name, &c.Email, &c.Phone, &c.Timezone, &c.GoalsNotes, &c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Repo) Add(ctx context.Context, trainerID int, req NewClientRequest) (_ *Client, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.clients.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("trainer.id", trainerID))

	c, err := scanClient(r.db.QueryRow(
		ctx,
		`INSERT INTO client (trainer_id, name, email, phone)
				VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''))
			RETURNING `+clientColumns+`;`,
		trainerID, req.Name, req.Email, req.Phone,
	))
	if err != nil {
		return nil, fmt.Errorf("insert client: %w", err)
	}
	return c, nil
}

func (r *Repo) Get(ctx context.Context, id int) (_ *Client, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.clients.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	c, err := scanClient(r.db.QueryRow(ctx, `SELECT `+clientColumns+` FROM client WHERE id = $1;`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}
	return c, nil
}

// List returns the clients of a trainer, ordered by name.
func (r *Repo) List(ctx context.Context, trainerID int) (_ []Client, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.clients.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("trainer.id", trainerID))

	rows, err := r.db.Query(
		ctx,
		`SELECT `+clientColumns+` FROM client WHERE trainer_id = $1 ORDER BY name, id;`,
		trainerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clients []Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		clients = append(clients, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return clients, nil
}

func (r *Repo) Update(ctx context.Context, id int, req UpdateClientRequest) (_ *Client, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.clients.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	c, err := scanClient(r.db.QueryRow(
		ctx,
		`UPDATE client
			SET name = $2, email = NULLIF($3, ''), phone = NULLIF($4, ''),
				timezone = NULLIF($5, ''), goals_notes = NULLIF($6, ''), updated_at = now()
			WHERE id = $1
			RETURNING `+clientColumns+`;`,
		id, req.Name, req.Email, req.Phone, req.Timezone, req.GoalsNotes,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("update client: %w", err)
	}
	return c, nil
}

func (r *Repo) Delete(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.clients.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	tag, err := r.db.Exec(ctx, `DELETE FROM client WHERE id = $1;`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrClientNotFound
	}
	return nil
}

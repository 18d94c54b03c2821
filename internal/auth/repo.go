package auth

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
	ErrAccountNotFound = errors.New("account not found")
	ErrTrainerNotFound = errors.New("trainer not found")
	ErrEmailTaken      = errors.New("email already registered")
	ErrCodeTaken       = errors.New("trainer code already taken")
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

const accountColumns = `id, email, password_hash, role, trainer_id, client_id, created_at`

func (r *Repo) CreateTrainer(ctx context.Context, t newTrainer) (_ *Account, _ *Trainer, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.auth.trainer.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	trainer := &Trainer{
		Name:        t.Name,
		Email:       t.Email,
		TrainerCode: t.TrainerCode,
	}
	err = tx.QueryRow(
		ctx,
		`INSERT INTO trainer (name, email, trainer_code) VALUES ($1, $2, $3)
			RETURNING id, created_at;`,
		t.Name, t.Email, t.TrainerCode,
	).Scan(&trainer.ID, &trainer.CreatedAt)
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			if pkg.ConstraintName(err) == "trainer_trainer_code_key" {
				return nil, nil, ErrCodeTaken
			}
			return nil, nil, ErrEmailTaken
		}
		return nil, nil, fmt.Errorf("insert trainer: %w", err)
	}

	account := &Account{
		Email:        t.Email,
		PasswordHash: t.PasswordHash,
		Role:         RoleTrainer,
		TrainerID:    &trainer.ID,
	}
	err = tx.QueryRow(
		ctx,
		`INSERT INTO account (email, password_hash, role, trainer_id) VALUES ($1, $2, $3, $4)
			RETURNING id, created_at;`,
		t.Email, t.PasswordHash, RoleTrainer, trainer.ID,
	).Scan(&account.ID, &account.CreatedAt)
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			return nil, nil, ErrEmailTaken
		}
		return nil, nil, fmt.Errorf("insert account: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, nil, fmt.Errorf("commit: %w", err)
	}

	span.SetAttributes(attribute.Int("trainer.id", trainer.ID))
	return account, trainer, nil
}

func (r *Repo) CreateClientAccount(ctx context.Context, c newClient) (_ *Account, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.auth.client.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("trainer.id", c.TrainerID))

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	var clientID int
	err = tx.QueryRow(
		ctx,
		`INSERT INTO client (trainer_id, name, email, phone) VALUES ($1, $2, $3, $4)
			RETURNING id;`,
		c.TrainerID, c.Name, c.Email, c.Phone,
	).Scan(&clientID)
	if err != nil {
		if pkg.IsForeignKeyViolationError(err) {
			return nil, ErrTrainerNotFound
		}
		return nil, fmt.Errorf("insert client: %w", err)
	}

	account := &Account{
		Email:        c.Email,
		PasswordHash: c.PasswordHash,
		Role:         RoleClient,
		TrainerID:    &c.TrainerID,
		ClientID:     &clientID,
	}
	err = tx.QueryRow(
		ctx,
		`INSERT INTO account (email, password_hash, role, trainer_id, client_id) VALUES ($1, $2, $3, $4, $5)
			RETURNING id, created_at;`,
		c.Email, c.PasswordHash, RoleClient, c.TrainerID, clientID,
	).Scan(&account.ID, &account.CreatedAt)
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("insert account: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	return account, nil
}

func (r *Repo) GetByEmail(ctx context.Context, email string) (_ *Account, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.auth.account.getbyemail")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return r.getAccount(ctx, `SELECT `+accountColumns+` FROM account WHERE lower(email) = lower($1);`, email)
}

func (r *Repo) GetByID(ctx context.Context, id int) (_ *Account, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.auth.account.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	return r.getAccount(ctx, `SELECT `+accountColumns+` FROM account WHERE id = $1;`, id)
}

func (r *Repo) getAccount(ctx context.Context, query string, arg any) (*Account, error) {
	var a Account
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&a.ID, &a.Email, &a.PasswordHash, &a.Role, &a.TrainerID, &a.ClientID, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *Repo) TrainerByCode(ctx context.Context, code string) (_ *Trainer, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.auth.trainer.bycode")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var t Trainer
	err = r.db.QueryRow(
		ctx,
		`SELECT id, name, email, trainer_code, created_at FROM trainer WHERE trainer_code = $1;`,
		code,
	).Scan(&t.ID, &t.Name, &t.Email, &t.TrainerCode, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTrainerNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *Repo) TrainerByID(ctx context.Context, id int) (_ *Trainer, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.auth.trainer.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	var t Trainer
	err = r.db.QueryRow(
		ctx,
		`SELECT id, name, email, trainer_code, created_at FROM trainer WHERE id = $1;`,
		id,
	).Scan(&t.ID, &t.Name, &t.Email, &t.TrainerCode, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTrainerNotFound
		}
		return nil, err
	}
	return &t, nil
}

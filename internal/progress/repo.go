package progress

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
	ErrClientNotFound = errors.New("client not found")
	ErrRecordNotFound = errors.New("personal record not found")
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

const measurementColumns = `id, client_id, to_char(date, 'YYYY-MM-DD'), weight,
	measurement_1, COALESCE(measurement_1_label, ''), measurement_2, COALESCE(measurement_2_label, ''),
	COALESCE(notes, ''), created_at`

func scanMeasurement(row pgx.Row) (Measurement, error) {
	var m Measurement
	err := row.Scan(
		&m.ID, &m.ClientID, &m.Date, &m.Weight,
		&m.Measurement1, &m.Measurement1Label, &m.Measurement2, &m.Measurement2Label,
		&m.Notes, &m.CreatedAt,
	)
	return m, err
}

const recordColumns = `id, client_id, exercise_name, record_type, value, unit,
	to_char(achieved_date, 'YYYY-MM-DD'), previous_value, COALESCE(notes, ''), created_at`

func scanRecord(row pgx.Row) (PersonalRecord, error) {
	var pr PersonalRecord
	err := row.Scan(
		&pr.ID, &pr.ClientID, &pr.ExerciseName, &pr.RecordType, &pr.Value, &pr.Unit,
		&pr.AchievedDate, &pr.PreviousValue, &pr.Notes, &pr.CreatedAt,
	)
	return pr, err
}

func (r *Repo) AddMeasurement(ctx context.Context, clientID int, m NewMeasurement) (_ *Measurement, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.progress.measurement.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("client.id", clientID))

	added, err := scanMeasurement(r.db.QueryRow(
		ctx,
		`INSERT INTO progress_measurement
				(client_id, date, weight, measurement_1, measurement_1_label, measurement_2, measurement_2_label, notes)
				VALUES ($1, $2::date, $3, $4, $5, $6, $7, NULLIF($8, ''))
			RETURNING `+measurementColumns+`;`,
		clientID, m.Date, m.Weight, m.Measurement1, m.Measurement1Label, m.Measurement2, m.Measurement2Label, m.Notes,
	))
	if err != nil {
		if pkg.IsForeignKeyViolationError(err) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("insert measurement: %w", err)
	}
	return &added, nil
}

// ListMeasurements returns the client's measurements, newest first.
func (r *Repo) ListMeasurements(ctx context.Context, clientID int) (_ []Measurement, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.progress.measurement.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("client.id", clientID))

	rows, err := r.db.Query(
		ctx,
		`SELECT `+measurementColumns+` FROM progress_measurement
			WHERE client_id = $1
			ORDER BY date DESC, id DESC;`,
		clientID,
	)
	if err != nil {
		return nil, err
	}

	measurements, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Measurement, error) {
		return scanMeasurement(row)
	})
	if err != nil {
		return nil, fmt.Errorf("collect measurements: %w", err)
	}
	return measurements, nil
}

func (r *Repo) AddPersonalRecord(ctx context.Context, clientID int, pr NewPersonalRecord) (_ *PersonalRecord, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.progress.record.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("client.id", clientID))

	added, err := scanRecord(r.db.QueryRow(
		ctx,
		`INSERT INTO personal_record
				(client_id, exercise_name, record_type, value, unit, achieved_date, previous_value, notes)
				VALUES ($1, $2, $3, $4, $5, $6::date, $7, NULLIF($8, ''))
			RETURNING `+recordColumns+`;`,
		clientID, pr.ExerciseName, pr.RecordType, *pr.Value, pr.Unit, pr.AchievedDate, pr.PreviousValue, pr.Notes,
	))
	if err != nil {
		if pkg.IsForeignKeyViolationError(err) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("insert personal record: %w", err)
	}
	return &added, nil
}

// ListPersonalRecords returns the client's records, most recent first.
func (r *Repo) ListPersonalRecords(ctx context.Context, clientID int) (_ []PersonalRecord, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.progress.record.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("client.id", clientID))

	rows, err := r.db.Query(
		ctx,
		`SELECT `+recordColumns+` FROM personal_record
			WHERE client_id = $1
			ORDER BY achieved_date DESC, id DESC;`,
		clientID,
	)
	if err != nil {
		return nil, err
	}

	records, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (PersonalRecord, error) {
		return scanRecord(row)
	})
	if err != nil {
		return nil, fmt.Errorf("collect personal records: %w", err)
	}
	return records, nil
}

// DeletePersonalRecord removes a record of the given client.
func (r *Repo) DeletePersonalRecord(ctx context.Context, clientID, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.progress.record.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	tag, err := r.db.Exec(ctx, `DELETE FROM personal_record WHERE id = $1 AND client_id = $2;`, id, clientID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// ClientTrainerID returns the trainer the client belongs to.
func (r *Repo) ClientTrainerID(ctx context.Context, clientID int) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.progress.client.trainer")
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

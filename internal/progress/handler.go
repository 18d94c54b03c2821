package progress

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/2beens/liftly/internal/apperr"
	"github.com/2beens/liftly/internal/auth"
	"github.com/2beens/liftly/internal/telemetry/tracing"
	"github.com/2beens/liftly/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=progress

type progressRepo interface {
	AddMeasurement(ctx context.Context, clientID int, measurement NewMeasurement) (*Measurement, error)
	ListMeasurements(ctx context.Context, clientID int) ([]Measurement, error)
	AddPersonalRecord(ctx context.Context, clientID int, pr NewPersonalRecord) (*PersonalRecord, error)
	ListPersonalRecords(ctx context.Context, clientID int) ([]PersonalRecord, error)
	DeletePersonalRecord(ctx context.Context, clientID, id int) error
	ClientTrainerID(ctx context.Context, clientID int) (int, error)
}

type Handler struct {
	repo progressRepo
	now  func() time.Time
}

func NewHandler(repo progressRepo) *Handler {
	return &Handler{
		repo: repo,
		now:  time.Now,
	}
}

type LabeledTrend struct {
	Label string `json:"label"`
	Unit  string `json:"unit"`
	Trend
}

type ProgressResponse struct {
	Measurements    []Measurement    `json:"measurements"`
	PersonalRecords []PersonalRecord `json:"personalRecords"`
	Trends          []LabeledTrend   `json:"trends"`
}

func decodeJSON(r *http.Request, v any) error {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), pkg.ContentType.JSON) {
		return apperr.Validation("decode", "", "invalid content type")
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperr.Validation("decode", "", "invalid request body")
	}
	return nil
}

func intVar(r *http.Request, name string) (int, error) {
	v, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil || v <= 0 {
		return 0, apperr.Validation("path", name, "invalid "+name)
	}
	return v, nil
}

func respond(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, ErrClientNotFound):
		err = apperr.NotFoundErr(op, "client")
	case errors.Is(err, ErrRecordNotFound):
		err = apperr.NotFoundErr(op, "personal record")
	}
	apperr.Respond(w, err)
}

// client resolves the {clientId} path var and checks the caller may see it:
// trainers their own clients, clients only themselves.
func (h *Handler) client(w http.ResponseWriter, r *http.Request, op string) (int, bool) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return 0, false
	}
	clientID, err := intVar(r, "clientId")
	if err != nil {
		apperr.Respond(w, err)
		return 0, false
	}

	switch claims.Role {
	case auth.RoleClient:
		if claims.ClientID == nil || *claims.ClientID != clientID {
			respond(w, op, ErrClientNotFound)
			return 0, false
		}
	default:
		if claims.TrainerID == nil {
			http.Error(w, "no can do", http.StatusUnauthorized)
			return 0, false
		}
		trainerID, err := h.repo.ClientTrainerID(r.Context(), clientID)
		if err != nil {
			respond(w, op, err)
			return 0, false
		}
		if trainerID != *claims.TrainerID {
			respond(w, op, ErrClientNotFound)
			return 0, false
		}
	}
	return clientID, true
}

// Trends builds the chart series of the measurements. Measurement labels
// come from the most recent measurement.
func Trends(measurements []Measurement) []LabeledTrend {
	label1, label2 := DefaultMeasurement1Label, DefaultMeasurement2Label
	if len(measurements) > 0 {
		label1, label2 = measurements[0].Measurement1Label, measurements[0].Measurement2Label
	}

	trends := []LabeledTrend{}
	series := []struct {
		label, unit string
		value       func(Measurement) *float64
	}{
		{"Weight", "lbs", Weight},
		{label1, "in", Measurement1},
		{label2, "in", Measurement2},
	}
	for _, s := range series {
		if t, ok := NewTrend(Series(measurements, s.value)); ok {
			trends = append(trends, LabeledTrend{Label: s.label, Unit: s.unit, Trend: t})
		}
	}
	return trends
}

func (h *Handler) HandleGetProgress(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.get")
	defer span.End()

	const op = "progress.get"
	clientID, ok := h.client(w, r, op)
	if !ok {
		return
	}
	span.SetAttributes(attribute.Int("client.id", clientID))

	measurements, err := h.repo.ListMeasurements(ctx, clientID)
	if err != nil {
		respond(w, op, err)
		return
	}
	records, err := h.repo.ListPersonalRecords(ctx, clientID)
	if err != nil {
		respond(w, op, err)
		return
	}
	if measurements == nil {
		measurements = []Measurement{}
	}
	if records == nil {
		records = []PersonalRecord{}
	}

	pkg.WriteJSON(w, ProgressResponse{
		Measurements:    measurements,
		PersonalRecords: records,
		Trends:          Trends(measurements),
	}, http.StatusOK)
}

func (h *Handler) HandleAddMeasurement(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.measurement.add")
	defer span.End()

	const op = "progress.add_measurement"
	clientID, ok := h.client(w, r, op)
	if !ok {
		return
	}

	var req NewMeasurement
	if err := decodeJSON(r, &req); err != nil {
		apperr.Respond(w, err)
		return
	}
	req, err := req.Prepare(h.now())
	if err != nil {
		apperr.Respond(w, err)
		return
	}

	m, err := h.repo.AddMeasurement(ctx, clientID, req)
	if err != nil {
		respond(w, op, err)
		return
	}
	log.Debugf("measurement %d added for client %d", m.ID, clientID)
	pkg.WriteJSON(w, m, http.StatusCreated)
}

func (h *Handler) HandleAddPersonalRecord(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.record.add")
	defer span.End()

	const op = "progress.add_personal_record"
	clientID, ok := h.client(w, r, op)
	if !ok {
		return
	}

	var req NewPersonalRecord
	if err := decodeJSON(r, &req); err != nil {
		apperr.Respond(w, err)
		return
	}
	req, err := req.Prepare(h.now())
	if err != nil {
		apperr.Respond(w, err)
		return
	}

	pr, err := h.repo.AddPersonalRecord(ctx, clientID, req)
	if err != nil {
		respond(w, op, err)
		return
	}
	log.Debugf("personal record %d (%s %s) added for client %d", pr.ID, pr.ExerciseName, pr.RecordType, clientID)
	pkg.WriteJSON(w, pr, http.StatusCreated)
}

func (h *Handler) HandleDeletePersonalRecord(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.record.delete")
	defer span.End()

	const op = "progress.delete_personal_record"
	clientID, ok := h.client(w, r, op)
	if !ok {
		return
	}
	id, err := intVar(r, "id")
	if err != nil {
		apperr.Respond(w, err)
		return
	}

	if err := h.repo.DeletePersonalRecord(ctx, clientID, id); err != nil {
		respond(w, op, err)
		return
	}
	pkg.WriteTextResponseOK(w, "deleted")
}

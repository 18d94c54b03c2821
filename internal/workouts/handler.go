package workouts

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/2beens/liftly/internal/apperr"
	"github.com/2beens/liftly/internal/auth"
	"github.com/2beens/liftly/internal/telemetry/metrics"
	"github.com/2beens/liftly/internal/telemetry/tracing"
	"github.com/2beens/liftly/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=workouts

type workoutsRepo interface {
	LogWorkout(ctx context.Context, w NewWorkout, exercises []ExerciseDraft) (*Workout, error)
	GetWorkout(ctx context.Context, id int) (*Workout, error)
	ListWorkouts(ctx context.Context, clientID int) ([]Workout, error)
	ListExercises(ctx context.Context, workoutID int) ([]Exercise, error)
	DeleteWorkout(ctx context.Context, id int) error
	ClientTrainerID(ctx context.Context, clientID int) (int, error)
	SessionOwner(ctx context.Context, sessionID int) (trainerID, clientID int, err error)
	ReplaceSessionSets(ctx context.Context, sessionID int, sets []SessionSet) error
	ListSessionSets(ctx context.Context, sessionID int) ([]SessionSet, error)
	SessionTemplateID(ctx context.Context, sessionID int) (*int, error)
	TemplateExercises(ctx context.Context, templateID int) ([]TemplateExercise, error)
}

type Handler struct {
	repo           workoutsRepo
	planner        *Planner
	drafts         *DraftManager
	metricsManager *metrics.Manager
}

func NewHandler(repo workoutsRepo, drafts *DraftManager, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		repo:           repo,
		planner:        NewPlanner(repo),
		drafts:         drafts,
		metricsManager: metricsManager,
	}
}

type OpenDraftRequest struct {
	ClientID  int             `json:"clientId"`
	SessionID *int            `json:"sessionId,omitempty"`
	Name      string          `json:"name"`
	Date      string          `json:"date"`
	Notes     string          `json:"notes"`
	Exercises []ExerciseDraft `json:"exercises"`
}

type DraftResponse struct {
	ID     string `json:"id"`
	Status Status `json:"status"`
}

type SaveDraftResponse struct {
	ID     string      `json:"id"`
	Result FlushResult `json:"result"`
	Status Status      `json:"status"`
}

type SessionSetsResponse struct {
	Sets  []SessionSet    `json:"sets"`
	Stats CompletionStats `json:"stats"`
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

// respond turns repo sentinels into api errors.
func respond(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, ErrWorkoutNotFound):
		err = apperr.NotFoundErr(op, "workout")
	case errors.Is(err, ErrClientNotFound):
		err = apperr.NotFoundErr(op, "client")
	case errors.Is(err, ErrSessionNotFound):
		err = apperr.NotFoundErr(op, "session")
	case errors.Is(err, ErrDraftNotFound), errors.Is(err, ErrDraftClosed):
		err = apperr.NotFoundErr(op, "workout draft")
	}
	apperr.Respond(w, err)
}

// checkClientAccess allows trainers to reach their own clients, and clients
// to reach themselves. Anything else looks like a missing client.
func (h *Handler) checkClientAccess(ctx context.Context, claims *auth.Claims, clientID int) error {
	if claims.Role == auth.RoleClient {
		if claims.ClientID == nil || *claims.ClientID != clientID {
			return ErrClientNotFound
		}
		return nil
	}
	if claims.TrainerID == nil {
		return ErrClientNotFound
	}
	trainerID, err := h.repo.ClientTrainerID(ctx, clientID)
	if err != nil {
		return err
	}
	if trainerID != *claims.TrainerID {
		return ErrClientNotFound
	}
	return nil
}

func (h *Handler) checkSessionAccess(ctx context.Context, claims *auth.Claims, sessionID int) error {
	trainerID, clientID, err := h.repo.SessionOwner(ctx, sessionID)
	if err != nil {
		return err
	}
	switch {
	case claims.Role == auth.RoleTrainer && claims.TrainerID != nil && *claims.TrainerID == trainerID:
		return nil
	case claims.Role == auth.RoleClient && claims.ClientID != nil && *claims.ClientID == clientID:
		return nil
	}
	return ErrSessionNotFound
}

func trainerID(w http.ResponseWriter, r *http.Request) (int, bool) {
	claims, ok := auth.FromContext(r.Context())
	if !ok || claims.TrainerID == nil {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return 0, false
	}
	return *claims.TrainerID, true
}

func (h *Handler) HandleOpenDraft(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.draft.open")
	defer span.End()

	const op = "workouts.draft.open"
	claims, ok := auth.FromContext(ctx)
	if !ok || claims.TrainerID == nil {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	var req OpenDraftRequest
	if err := decodeJSON(r, &req); err != nil {
		apperr.Respond(w, err)
		return
	}
	if req.ClientID > 0 {
		if err := h.checkClientAccess(ctx, claims, req.ClientID); err != nil {
			respond(w, op, err)
			return
		}
	}

	id, saver, err := h.drafts.Open(*claims.TrainerID, NewWorkout{
		ClientID:  req.ClientID,
		SessionID: req.SessionID,
		Name:      strings.TrimSpace(req.Name),
		Date:      req.Date,
		Notes:     req.Notes,
	}, req.Exercises)
	if err != nil {
		respond(w, op, err)
		return
	}

	span.SetAttributes(attribute.String("draft.id", id))
	pkg.WriteJSON(w, DraftResponse{ID: id, Status: saver.Status()}, http.StatusCreated)
}

func (h *Handler) draft(w http.ResponseWriter, r *http.Request, op string) (string, *AutoSaver, bool) {
	tid, ok := trainerID(w, r)
	if !ok {
		return "", nil, false
	}
	id := mux.Vars(r)["id"]
	saver, err := h.drafts.Get(id, tid)
	if err != nil {
		respond(w, op, err)
		return "", nil, false
	}
	return id, saver, true
}

func (h *Handler) HandleGetDraft(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.draft.get")
	defer span.End()

	id, saver, ok := h.draft(w, r, "workouts.draft.get")
	if !ok {
		return
	}
	pkg.WriteJSON(w, DraftResponse{ID: id, Status: saver.Status()}, http.StatusOK)
}

func (h *Handler) HandleAddDraftExercise(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.draft.exercise.add")
	defer span.End()

	const op = "workouts.draft.add"
	id, saver, ok := h.draft(w, r, op)
	if !ok {
		return
	}

	var exercise ExerciseDraft
	if err := decodeJSON(r, &exercise); err != nil {
		apperr.Respond(w, err)
		return
	}
	if err := saver.Edit(func(l *DraftList) error {
		_, err := l.Add(exercise)
		return err
	}); err != nil {
		respond(w, op, err)
		return
	}

	pkg.WriteJSON(w, DraftResponse{ID: id, Status: saver.Status()}, http.StatusOK)
}

func (h *Handler) HandleUpdateDraftExercise(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.draft.exercise.update")
	defer span.End()

	const op = "workouts.draft.update"
	id, saver, ok := h.draft(w, r, op)
	if !ok {
		return
	}
	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		apperr.Respond(w, apperr.Validation(op, "index", "invalid index"))
		return
	}

	var patch ExercisePatch
	if err := decodeJSON(r, &patch); err != nil {
		apperr.Respond(w, err)
		return
	}
	if err := saver.Edit(func(l *DraftList) error {
		return l.Update(index, patch)
	}); err != nil {
		respond(w, op, err)
		return
	}

	pkg.WriteJSON(w, DraftResponse{ID: id, Status: saver.Status()}, http.StatusOK)
}

func (h *Handler) HandleRemoveDraftExercise(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.draft.exercise.remove")
	defer span.End()

	const op = "workouts.draft.remove"
	id, saver, ok := h.draft(w, r, op)
	if !ok {
		return
	}
	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		apperr.Respond(w, apperr.Validation(op, "index", "invalid index"))
		return
	}

	if err := saver.Edit(func(l *DraftList) error {
		return l.Remove(index)
	}); err != nil {
		respond(w, op, err)
		return
	}

	pkg.WriteJSON(w, DraftResponse{ID: id, Status: saver.Status()}, http.StatusOK)
}

func (h *Handler) HandleSaveDraft(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.draft.save")
	defer span.End()

	const op = "workouts.draft.save"
	id, saver, ok := h.draft(w, r, op)
	if !ok {
		return
	}

	result, err := saver.Save(ctx)
	if err != nil {
		respond(w, op, apperr.Remote(op, err))
		return
	}
	if result == FlushSaved {
		h.metricsManager.CounterWorkoutsLogged.Inc()
	}

	pkg.WriteJSON(w, SaveDraftResponse{ID: id, Result: result, Status: saver.Status()}, http.StatusOK)
}

func (h *Handler) HandleCloseDraft(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.draft.close")
	defer span.End()

	tid, ok := trainerID(w, r)
	if !ok {
		return
	}
	if err := h.drafts.Close(mux.Vars(r)["id"], tid); err != nil {
		respond(w, "workouts.draft.close", err)
		return
	}
	pkg.WriteTextResponseOK(w, "closed")
}

func (h *Handler) HandleLogWorkout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.log")
	defer span.End()

	const op = "workouts.log"
	claims, ok := auth.FromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	var req LogWorkoutRequest
	if err := decodeJSON(r, &req); err != nil {
		apperr.Respond(w, err)
		return
	}
	newWorkout, exercises, err := PrepareLog(req)
	if err != nil {
		apperr.Respond(w, err)
		return
	}
	if err := h.checkClientAccess(ctx, claims, newWorkout.ClientID); err != nil {
		respond(w, op, err)
		return
	}

	workout, err := h.repo.LogWorkout(ctx, newWorkout, exercises)
	if err != nil {
		respond(w, op, err)
		return
	}

	log.Debugf("workout %d logged for client %d", workout.ID, workout.ClientID)
	h.metricsManager.CounterWorkoutsLogged.Inc()
	pkg.WriteJSON(w, workout, http.StatusCreated)
}

func (h *Handler) HandleListClientWorkouts(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.list")
	defer span.End()

	const op = "workouts.list"
	claims, ok := auth.FromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}
	clientID, err := intVar(r, "clientId")
	if err != nil {
		apperr.Respond(w, err)
		return
	}
	if err := h.checkClientAccess(ctx, claims, clientID); err != nil {
		respond(w, op, err)
		return
	}

	workouts, err := h.repo.ListWorkouts(ctx, clientID)
	if err != nil {
		respond(w, op, err)
		return
	}
	if workouts == nil {
		workouts = []Workout{}
	}
	pkg.WriteJSON(w, workouts, http.StatusOK)
}

// workout loads the workout behind the {id} path var and checks access to it.
func (h *Handler) workout(ctx context.Context, w http.ResponseWriter, r *http.Request, op string) (*Workout, bool) {
	claims, ok := auth.FromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return nil, false
	}
	id, err := intVar(r, "id")
	if err != nil {
		apperr.Respond(w, err)
		return nil, false
	}
	workout, err := h.repo.GetWorkout(ctx, id)
	if err != nil {
		respond(w, op, err)
		return nil, false
	}
	if err := h.checkClientAccess(ctx, claims, workout.ClientID); err != nil {
		respond(w, op, ErrWorkoutNotFound)
		return nil, false
	}
	return workout, true
}

func (h *Handler) HandleListExercises(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.exercises.list")
	defer span.End()

	const op = "workouts.exercises.list"
	workout, ok := h.workout(ctx, w, r, op)
	if !ok {
		return
	}

	exercises, err := h.repo.ListExercises(ctx, workout.ID)
	if err != nil {
		respond(w, op, err)
		return
	}
	if exercises == nil {
		exercises = []Exercise{}
	}
	pkg.WriteJSON(w, exercises, http.StatusOK)
}

func (h *Handler) HandleDeleteWorkout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.delete")
	defer span.End()

	const op = "workouts.delete"
	workout, ok := h.workout(ctx, w, r, op)
	if !ok {
		return
	}
	if err := h.repo.DeleteWorkout(ctx, workout.ID); err != nil {
		respond(w, op, err)
		return
	}
	pkg.WriteTextResponseOK(w, "deleted")
}

func (h *Handler) HandleGetSessionSets(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.sessionsets.get")
	defer span.End()

	const op = "workouts.sessionsets.get"
	claims, ok := auth.FromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}
	sessionID, err := intVar(r, "id")
	if err != nil {
		apperr.Respond(w, err)
		return
	}
	if err := h.checkSessionAccess(ctx, claims, sessionID); err != nil {
		respond(w, op, err)
		return
	}

	sets, err := h.repo.ListSessionSets(ctx, sessionID)
	if err != nil {
		respond(w, op, err)
		return
	}
	if sets == nil {
		sets = []SessionSet{}
	}
	pkg.WriteJSON(w, SessionSetsResponse{Sets: sets, Stats: Completion(sets)}, http.StatusOK)
}

func (h *Handler) HandleReplaceSessionSets(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.sessionsets.replace")
	defer span.End()

	const op = "workouts.sessionsets.replace"
	claims, ok := auth.FromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}
	sessionID, err := intVar(r, "id")
	if err != nil {
		apperr.Respond(w, err)
		return
	}

	var sets []SessionSet
	if err := decodeJSON(r, &sets); err != nil {
		apperr.Respond(w, err)
		return
	}
	sets, err = PrepareSessionSets(sets)
	if err != nil {
		apperr.Respond(w, err)
		return
	}
	if err := h.checkSessionAccess(ctx, claims, sessionID); err != nil {
		respond(w, op, err)
		return
	}

	if err := h.repo.ReplaceSessionSets(ctx, sessionID, sets); err != nil {
		respond(w, op, err)
		return
	}
	pkg.WriteJSON(w, SessionSetsResponse{Sets: sets, Stats: Completion(sets)}, http.StatusOK)
}

func (h *Handler) HandleGetSessionPlan(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.sessionplan.get")
	defer span.End()

	const op = "workouts.sessionplan.get"
	claims, ok := auth.FromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}
	sessionID, err := intVar(r, "id")
	if err != nil {
		apperr.Respond(w, err)
		return
	}
	if err := h.checkSessionAccess(ctx, claims, sessionID); err != nil {
		respond(w, op, err)
		return
	}

	plan, err := h.planner.SessionPlan(ctx, sessionID)
	if err != nil {
		respond(w, op, err)
		return
	}
	pkg.WriteJSON(w, plan, http.StatusOK)
}

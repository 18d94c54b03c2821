package templates

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/2beens/liftly/internal/apperr"
	"github.com/2beens/liftly/internal/auth"
	"github.com/2beens/liftly/internal/telemetry/tracing"
	"github.com/2beens/liftly/pkg"

	"github.com/gorilla/mux"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service: service,
	}
}

type AssignRequest struct {
	ClientIDs []int `json:"clientIds"`
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

func trainerID(w http.ResponseWriter, r *http.Request) (int, bool) {
	claims, ok := auth.FromContext(r.Context())
	if !ok || claims.TrainerID == nil {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return 0, false
	}
	return *claims.TrainerID, true
}

func templateID(r *http.Request) (int, error) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		return 0, apperr.Validation("path", "id", "invalid id")
	}
	return id, nil
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.templates.list")
	defer span.End()

	tid, ok := trainerID(w, r)
	if !ok {
		return
	}

	summaries, err := h.service.List(ctx, tid, r.URL.Query().Get("q"))
	if err != nil {
		apperr.Respond(w, err)
		return
	}
	if summaries == nil {
		summaries = []Summary{}
	}
	pkg.WriteJSON(w, summaries, http.StatusOK)
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.templates.create")
	defer span.End()

	tid, ok := trainerID(w, r)
	if !ok {
		return
	}

	var req SaveRequest
	if err := decodeJSON(r, &req); err != nil {
		apperr.Respond(w, err)
		return
	}

	detail, err := h.service.Save(ctx, tid, 0, req)
	if err != nil {
		apperr.Respond(w, err)
		return
	}
	pkg.WriteJSON(w, detail, http.StatusCreated)
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.templates.update")
	defer span.End()

	tid, ok := trainerID(w, r)
	if !ok {
		return
	}
	id, err := templateID(r)
	if err != nil {
		apperr.Respond(w, err)
		return
	}

	var req SaveRequest
	if err := decodeJSON(r, &req); err != nil {
		apperr.Respond(w, err)
		return
	}

	detail, err := h.service.Save(ctx, tid, id, req)
	if err != nil {
		apperr.Respond(w, err)
		return
	}
	pkg.WriteJSON(w, detail, http.StatusOK)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.templates.get")
	defer span.End()

	tid, ok := trainerID(w, r)
	if !ok {
		return
	}
	id, err := templateID(r)
	if err != nil {
		apperr.Respond(w, err)
		return
	}

	detail, err := h.service.Get(ctx, tid, id)
	if err != nil {
		apperr.Respond(w, err)
		return
	}
	pkg.WriteJSON(w, detail, http.StatusOK)
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.templates.delete")
	defer span.End()

	tid, ok := trainerID(w, r)
	if !ok {
		return
	}
	id, err := templateID(r)
	if err != nil {
		apperr.Respond(w, err)
		return
	}

	if err := h.service.Delete(ctx, tid, id); err != nil {
		apperr.Respond(w, err)
		return
	}
	pkg.WriteTextResponseOK(w, "deleted")
}

func (h *Handler) HandleAssign(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.templates.assign")
	defer span.End()

	tid, ok := trainerID(w, r)
	if !ok {
		return
	}
	id, err := templateID(r)
	if err != nil {
		apperr.Respond(w, err)
		return
	}

	var req AssignRequest
	if err := decodeJSON(r, &req); err != nil {
		apperr.Respond(w, err)
		return
	}

	result, err := h.service.Assign(ctx, tid, id, req.ClientIDs)
	if err != nil {
		apperr.Respond(w, err)
		return
	}
	pkg.WriteJSON(w, result, http.StatusOK)
}

package clients

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/2beens/liftly/internal/apperr"
	"github.com/2beens/liftly/internal/auth"
	"github.com/2beens/liftly/internal/telemetry/tracing"
	"github.com/2beens/liftly/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=clients

type clientsRepo interface {
	Add(ctx context.Context, trainerID int, req NewClientRequest) (*Client, error)
	Get(ctx context.Context, id int) (*Client, error)
	List(ctx context.Context, trainerID int) ([]Client, error)
	Update(ctx context.Context, id int, req UpdateClientRequest) (*Client, error)
	Delete(ctx context.Context, id int) error
}

type Handler struct {
	repo clientsRepo
}

func NewHandler(repo clientsRepo) *Handler {
	return &Handler{
		repo: repo,
	}
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

func respond(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, ErrClientNotFound) {
		err = apperr.NotFoundErr(op, "client")
	}
	apperr.Respond(w, err)
}

func trainerID(w http.ResponseWriter, r *http.Request) (int, bool) {
	claims, ok := auth.FromContext(r.Context())
	if !ok || claims.TrainerID == nil {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return 0, false
	}
	return *claims.TrainerID, true
}

// ownedClient loads the {id} client, which must belong to trainerID.
func (h *Handler) ownedClient(ctx context.Context, r *http.Request, trainerID int) (*Client, error) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		return nil, apperr.Validation("path", "id", "invalid id")
	}
	c, err := h.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.TrainerID != trainerID {
		return nil, ErrClientNotFound
	}
	return c, nil
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.clients.list")
	defer span.End()

	tid, ok := trainerID(w, r)
	if !ok {
		return
	}

	clients, err := h.repo.List(ctx, tid)
	if err != nil {
		respond(w, "clients.list", err)
		return
	}
	clients = Search(clients, r.URL.Query().Get("q"))
	if clients == nil {
		clients = []Client{}
	}

	pkg.WriteJSON(w, clients, http.StatusOK)
}

func (h *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.clients.add")
	defer span.End()

	tid, ok := trainerID(w, r)
	if !ok {
		return
	}

	var req NewClientRequest
	if err := decodeJSON(r, &req); err != nil {
		apperr.Respond(w, err)
		return
	}
	req, err := req.normalize()
	if err != nil {
		apperr.Respond(w, err)
		return
	}

	c, err := h.repo.Add(ctx, tid, req)
	if err != nil {
		respond(w, "clients.add", err)
		return
	}

	log.Debugf("trainer %d added client %d", tid, c.ID)
	pkg.WriteJSON(w, c, http.StatusCreated)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.clients.get")
	defer span.End()

	tid, ok := trainerID(w, r)
	if !ok {
		return
	}

	c, err := h.ownedClient(ctx, r, tid)
	if err != nil {
		respond(w, "clients.get", err)
		return
	}
	pkg.WriteJSON(w, c, http.StatusOK)
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.clients.update")
	defer span.End()

	const op = "clients.update"
	tid, ok := trainerID(w, r)
	if !ok {
		return
	}

	var req UpdateClientRequest
	if err := decodeJSON(r, &req); err != nil {
		apperr.Respond(w, err)
		return
	}
	req, err := req.normalize()
	if err != nil {
		apperr.Respond(w, err)
		return
	}

	c, err := h.ownedClient(ctx, r, tid)
	if err != nil {
		respond(w, op, err)
		return
	}
	updated, err := h.repo.Update(ctx, c.ID, req)
	if err != nil {
		respond(w, op, err)
		return
	}
	pkg.WriteJSON(w, updated, http.StatusOK)
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.clients.delete")
	defer span.End()

	const op = "clients.delete"
	tid, ok := trainerID(w, r)
	if !ok {
		return
	}

	c, err := h.ownedClient(ctx, r, tid)
	if err != nil {
		respond(w, op, err)
		return
	}
	if err := h.repo.Delete(ctx, c.ID); err != nil {
		respond(w, op, err)
		return
	}

	log.Debugf("trainer %d deleted client %d", tid, c.ID)
	pkg.WriteTextResponseOK(w, "deleted")
}

package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/2beens/liftly/internal/apperr"
	"github.com/2beens/liftly/internal/telemetry/metrics"
	"github.com/2beens/liftly/internal/telemetry/tracing"
	"github.com/2beens/liftly/pkg"

	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=auth

type authService interface {
	SignUpTrainer(ctx context.Context, req SignUpTrainerRequest) (*SignInResponse, error)
	SignUpClient(ctx context.Context, req SignUpClientRequest) (*SignInResponse, error)
	SignIn(ctx context.Context, req SignInRequest) (*SignInResponse, error)
	SignOut(ctx context.Context, token string) (bool, error)
	Account(ctx context.Context, id int) (*Account, error)
}

type Handler struct {
	service        authService
	metricsManager *metrics.Manager
}

func NewHandler(service authService, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		service:        service,
		metricsManager: metricsManager,
	}
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" header.
func BearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found {
		return ""
	}
	return strings.TrimSpace(token)
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

func (h *Handler) HandleSignUpTrainer(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.signup.trainer")
	defer span.End()

	var req SignUpTrainerRequest
	if err := decodeJSON(r, &req); err != nil {
		apperr.Respond(w, err)
		return
	}

	resp, err := h.service.SignUpTrainer(ctx, req)
	if err != nil {
		apperr.Respond(w, err)
		return
	}

	log.Infof("new trainer signed up: account %d", resp.Account.ID)
	h.metricsManager.CounterSignUps.WithLabelValues(string(RoleTrainer)).Inc()
	pkg.WriteJSON(w, resp, http.StatusCreated)
}

func (h *Handler) HandleSignUpClient(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.signup.client")
	defer span.End()

	var req SignUpClientRequest
	if err := decodeJSON(r, &req); err != nil {
		apperr.Respond(w, err)
		return
	}

	resp, err := h.service.SignUpClient(ctx, req)
	if err != nil {
		apperr.Respond(w, err)
		return
	}

	log.Infof("new client signed up: account %d", resp.Account.ID)
	h.metricsManager.CounterSignUps.WithLabelValues(string(RoleClient)).Inc()
	pkg.WriteJSON(w, resp, http.StatusCreated)
}

func (h *Handler) HandleSignIn(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.signin")
	defer span.End()

	var req SignInRequest
	if err := decodeJSON(r, &req); err != nil {
		apperr.Respond(w, err)
		return
	}

	resp, err := h.service.SignIn(ctx, req)
	if err != nil {
		apperr.Respond(w, err)
		return
	}

	pkg.WriteJSON(w, resp, http.StatusOK)
}

func (h *Handler) HandleSignOut(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.signout")
	defer span.End()

	token := BearerToken(r)
	if token == "" {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	removed, err := h.service.SignOut(ctx, token)
	if err != nil {
		log.Errorf("sign out: %s", err)
		http.Error(w, "sign out failed", http.StatusInternalServerError)
		return
	}
	if !removed {
		log.Debugln("sign out: session already gone")
	}

	pkg.WriteTextResponseOK(w, "signed out")
}

func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.me")
	defer span.End()

	claims, ok := FromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	account, err := h.service.Account(ctx, claims.AccountID)
	if err != nil {
		apperr.Respond(w, err)
		return
	}

	pkg.WriteJSON(w, account, http.StatusOK)
}

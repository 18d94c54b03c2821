package sessions

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/2beens/liftly/internal/apperr"
	"github.com/2beens/liftly/internal/auth"
	"github.com/2beens/liftly/internal/calendar"
	"github.com/2beens/liftly/internal/telemetry/metrics"
	"github.com/2beens/liftly/internal/telemetry/tracing"
	"github.com/2beens/liftly/pkg"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/otel/attribute"
)

type Handler struct {
	service        *Service
	metricsManager *metrics.Manager
}

func NewHandler(service *Service, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		service:        service,
		metricsManager: metricsManager,
	}
}

type MonthRef struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

type CalendarResponse struct {
	Grid     calendar.Grid        `json:"grid"`
	Sessions calendar.SessionsMap `json:"sessions"`
	Weekdays []string             `json:"weekdays"`
	Prev     MonthRef             `json:"prev"`
	Next     MonthRef             `json:"next"`
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

func sessionID(r *http.Request) (int, error) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		return 0, apperr.Validation("path", "id", "invalid id")
	}
	return id, nil
}

func (h *Handler) HandleSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.schedule")
	defer span.End()

	tid, ok := trainerID(w, r)
	if !ok {
		return
	}

	var draft Draft
	if err := decodeJSON(r, &draft); err != nil {
		apperr.Respond(w, err)
		return
	}

	session, err := h.service.Schedule(ctx, tid, draft)
	if err != nil {
		apperr.Respond(w, err)
		return
	}

	span.SetAttributes(attribute.Int("session.id", session.ID))
	h.metricsManager.CounterSessionsScheduled.Inc()
	pkg.WriteJSON(w, session, http.StatusCreated)
}

func (h *Handler) HandleBook(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.book")
	defer span.End()

	tid, ok := trainerID(w, r)
	if !ok {
		return
	}

	var booking SlotBooking
	if err := decodeJSON(r, &booking); err != nil {
		apperr.Respond(w, err)
		return
	}

	session, err := h.service.Book(ctx, tid, booking)
	if err != nil {
		apperr.Respond(w, err)
		return
	}

	h.metricsManager.CounterSessionsScheduled.Inc()
	pkg.WriteJSON(w, session, http.StatusCreated)
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.list")
	defer span.End()

	tid, ok := trainerID(w, r)
	if !ok {
		return
	}

	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	if to == "" {
		to = from
	}
	sessions, err := h.service.List(ctx, tid, from, to)
	if err != nil {
		apperr.Respond(w, err)
		return
	}
	if sessions == nil {
		sessions = []Session{}
	}
	pkg.WriteJSON(w, sessions, http.StatusOK)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.get")
	defer span.End()

	tid, ok := trainerID(w, r)
	if !ok {
		return
	}
	id, err := sessionID(r)
	if err != nil {
		apperr.Respond(w, err)
		return
	}

	session, err := h.service.Get(ctx, tid, id)
	if err != nil {
		apperr.Respond(w, err)
		return
	}
	pkg.WriteJSON(w, session, http.StatusOK)
}

func (h *Handler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.cancel")
	defer span.End()

	tid, ok := trainerID(w, r)
	if !ok {
		return
	}
	id, err := sessionID(r)
	if err != nil {
		apperr.Respond(w, err)
		return
	}

	session, err := h.service.Cancel(ctx, tid, id)
	if err != nil {
		apperr.Respond(w, err)
		return
	}
	pkg.WriteJSON(w, session, http.StatusOK)
}

// HandleCalendar serves the month grid. Year and month default to the
// current month; selected is an optional date key.
func (h *Handler) HandleCalendar(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.calendar")
	defer span.End()

	const op = "sessions.calendar"
	tid, ok := trainerID(w, r)
	if !ok {
		return
	}

	now := h.service.now()
	year, month := now.Year(), now.Month()
	query := r.URL.Query()
	if v := query.Get("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil {
			apperr.Respond(w, apperr.Validation(op, "year", "invalid year"))
			return
		}
		year = y
	}
	if v := query.Get("month"); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil {
			apperr.Respond(w, apperr.Validation(op, "month", "invalid month"))
			return
		}
		year, month = calendar.Normalize(year, m)
	}
	var selected time.Time
	if v := query.Get("selected"); v != "" {
		s, err := calendar.ParseDateKey(v)
		if err != nil {
			apperr.Respond(w, apperr.Validation(op, "selected", "Invalid date. Use YYYY-MM-DD"))
			return
		}
		selected = s
	}

	grid, err := h.service.Calendar(ctx, tid, year, month, selected)
	if err != nil {
		apperr.Respond(w, err)
		return
	}
	counts, err := h.service.MonthCounts(ctx, tid, grid.Year, grid.Month)
	if err != nil {
		apperr.Respond(w, err)
		return
	}

	prevYear, prevMonth := calendar.PrevMonth(grid.Year, grid.Month)
	nextYear, nextMonth := calendar.NextMonth(grid.Year, grid.Month)
	pkg.WriteJSON(w, CalendarResponse{
		Grid:     grid,
		Sessions: counts,
		Weekdays: calendar.WeekdayNames,
		Prev:     MonthRef{Year: prevYear, Month: prevMonth},
		Next:     MonthRef{Year: nextYear, Month: nextMonth},
	}, http.StatusOK)
}

func (h *Handler) HandleDaySlots(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.slots")
	defer span.End()

	tid, ok := trainerID(w, r)
	if !ok {
		return
	}

	slots, err := h.service.DaySlots(ctx, tid, r.URL.Query().Get("date"))
	if err != nil {
		apperr.Respond(w, err)
		return
	}
	pkg.WriteJSON(w, slots, http.StatusOK)
}

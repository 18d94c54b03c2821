package sessions

import (
	"context"
	"errors"
	"time"

	"github.com/2beens/liftly/internal/apperr"
	"github.com/2beens/liftly/internal/calendar"

	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=sessions

type sessionsRepo interface {
	Add(ctx context.Context, trainerID int, p Prepared) (*Session, error)
	Get(ctx context.Context, id int) (*Session, error)
	ListScheduled(ctx context.Context, trainerID int, from, to string) ([]Session, error)
	ScheduledDates(ctx context.Context, trainerID int, from, to string) ([]string, error)
	Cancel(ctx context.Context, id int) (*Session, error)
}

type Service struct {
	repo  sessionsRepo
	cache *CountsCache

	// ability to inject the current time (for unit tests)
	now func() time.Time
}

func NewService(repo sessionsRepo, cache *CountsCache) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		now:   time.Now,
	}
}

func toAppErr(op string, err error) error {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		return apperr.NotFoundErr(op, "session")
	case errors.Is(err, ErrClientNotFound):
		return apperr.NotFoundErr(op, "client")
	case errors.Is(err, ErrTemplateNotFound):
		return apperr.NotFoundErr(op, "workout template")
	}
	return err
}

// Schedule validates the new session form and stores it.
func (s *Service) Schedule(ctx context.Context, trainerID int, draft Draft) (*Session, error) {
	prepared, err := draft.Validate()
	if err != nil {
		return nil, err
	}
	return s.add(ctx, "sessions.schedule", trainerID, prepared)
}

// Book stores an hour long session in a free business hour slot.
func (s *Service) Book(ctx context.Context, trainerID int, booking SlotBooking) (*Session, error) {
	const op = "sessions.book"
	prepared, err := booking.Validate()
	if err != nil {
		return nil, err
	}

	daySessions, err := s.repo.ListScheduled(ctx, trainerID, prepared.Date, prepared.Date)
	if err != nil {
		return nil, err
	}
	for _, slot := range DaySlots(daySessions) {
		if slot.Time == prepared.StartTime && !slot.Available {
			return nil, apperr.Validation(op, "slotTime", "This slot is already booked")
		}
	}

	return s.add(ctx, op, trainerID, prepared)
}

func (s *Service) add(ctx context.Context, op string, trainerID int, p Prepared) (*Session, error) {
	session, err := s.repo.Add(ctx, trainerID, p)
	if err != nil {
		return nil, toAppErr(op, err)
	}
	s.cache.Invalidate(trainerID, session.Date)
	log.Debugf("trainer %d scheduled session %d on %s %s", trainerID, session.ID, session.Date, session.StartTime)
	return session, nil
}

// Get returns a session of the trainer. Other trainers' sessions look missing.
func (s *Service) Get(ctx context.Context, trainerID, id int) (*Session, error) {
	const op = "sessions.get"
	session, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, toAppErr(op, err)
	}
	if session.TrainerID != trainerID {
		return nil, toAppErr(op, ErrSessionNotFound)
	}
	return session, nil
}

func (s *Service) Cancel(ctx context.Context, trainerID, id int) (*Session, error) {
	const op = "sessions.cancel"
	if _, err := s.Get(ctx, trainerID, id); err != nil {
		return nil, err
	}
	session, err := s.repo.Cancel(ctx, id)
	if err != nil {
		return nil, toAppErr(op, err)
	}
	s.cache.Invalidate(trainerID, session.Date)
	return session, nil
}

func (s *Service) List(ctx context.Context, trainerID int, from, to string) ([]Session, error) {
	const op = "sessions.list"
	fromDate, err := calendar.ParseDateKey(from)
	if err != nil {
		return nil, apperr.Validation(op, "from", "Invalid date. Use YYYY-MM-DD")
	}
	toDate, err := calendar.ParseDateKey(to)
	if err != nil {
		return nil, apperr.Validation(op, "to", "Invalid date. Use YYYY-MM-DD")
	}
	if toDate.Before(fromDate) {
		return nil, apperr.Validation(op, "to", "End date must not be before start date")
	}
	return s.repo.ListScheduled(ctx, trainerID, from, to)
}

// MonthCounts returns the number of scheduled sessions per day of the month.
func (s *Service) MonthCounts(ctx context.Context, trainerID, year int, month time.Month) (calendar.SessionsMap, error) {
	year, month = calendar.Normalize(year, int(month))
	if counts, ok := s.cache.Get(trainerID, year, month); ok {
		return counts, nil
	}

	from, to := calendar.MonthRange(year, month)
	dates, err := s.repo.ScheduledDates(ctx, trainerID, from, to)
	if err != nil {
		return nil, err
	}
	counts := calendar.BuildSessionsMap(dates)
	s.cache.Set(trainerID, year, month, counts)
	return counts, nil
}

// Calendar lays out the month grid with session markers. A zero selected
// date selects nothing.
func (s *Service) Calendar(ctx context.Context, trainerID, year int, month time.Month, selected time.Time) (calendar.Grid, error) {
	counts, err := s.MonthCounts(ctx, trainerID, year, month)
	if err != nil {
		return calendar.Grid{}, err
	}
	return calendar.NewGrid(year, month, selected, s.now(), counts), nil
}

// DaySlots returns the business hour slots of the date with their bookings.
func (s *Service) DaySlots(ctx context.Context, trainerID int, date string) ([]Slot, error) {
	if _, err := calendar.ParseDateKey(date); err != nil {
		return nil, apperr.Validation("sessions.slots", "date", "Invalid date. Use YYYY-MM-DD")
	}
	daySessions, err := s.repo.ListScheduled(ctx, trainerID, date, date)
	if err != nil {
		return nil, err
	}
	return DaySlots(daySessions), nil
}

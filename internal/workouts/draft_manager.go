package workouts

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/2beens/liftly/internal/apperr"
	"github.com/2beens/liftly/internal/calendar"
	"github.com/2beens/liftly/pkg"

	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

var (
	ErrDraftNotFound = errors.New("workout draft not found")
	ErrDraftClosed   = errors.New("workout draft closed")
)

// DraftManager keeps the open workout drafts of this process, one per
// editing screen.
type DraftManager struct {
	store   draftStore
	options AutoSaverOptions

	mu     sync.Mutex
	drafts map[string]*openDraft

	// ability to inject id generator and clock (for unit tests)
	newID func() (string, error)
	now   func() time.Time
}

type openDraft struct {
	saver      *AutoSaver
	trainerID  int
	lastAccess time.Time
}

func NewDraftManager(store draftStore, options AutoSaverOptions) *DraftManager {
	return &DraftManager{
		store:   store,
		options: options,
		drafts:  map[string]*openDraft{},
		newID: func() (string, error) {
			return pkg.GenerateRandomString(12)
		},
		now: time.Now,
	}
}

// Open starts a new draft for the given workout. The backing workout row is
// created lazily, on the first successful flush.
func (m *DraftManager) Open(trainerID int, target NewWorkout, initial []ExerciseDraft) (string, *AutoSaver, error) {
	const op = "workouts.draft.open"
	if target.ClientID <= 0 {
		return "", nil, apperr.Validation(op, "clientId", "Please select a client")
	}
	if _, err := calendar.ParseDateKey(target.Date); err != nil {
		return "", nil, apperr.Validation(op, "date", "Invalid date. Use YYYY-MM-DD")
	}
	for i, d := range initial {
		if err := d.validate(op); err != nil {
			var appErr *apperr.Error
			if errors.As(err, &appErr) {
				appErr.Field = fmt.Sprintf("exercises[%d].%s", i, appErr.Field)
			}
			return "", nil, err
		}
	}

	id, err := m.newID()
	if err != nil {
		return "", nil, err
	}

	saver := NewAutoSaver(m.store, target, initial, m.options)

	m.mu.Lock()
	m.drafts[id] = &openDraft{saver: saver, trainerID: trainerID, lastAccess: m.now()}
	count := len(m.drafts)
	m.mu.Unlock()

	m.setGauge(count)
	log.Debugf("workout draft %s opened for client %d", id, target.ClientID)
	return id, saver, nil
}

// Get returns the draft with id, provided it was opened by trainerID.
func (m *DraftManager) Get(id string, trainerID int) (*AutoSaver, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.drafts[id]
	if !ok || d.trainerID != trainerID {
		return nil, ErrDraftNotFound
	}
	d.lastAccess = m.now()
	return d.saver, nil
}

// Close drops the draft. Pending edits are NOT flushed.
func (m *DraftManager) Close(id string, trainerID int) error {
	m.mu.Lock()
	d, ok := m.drafts[id]
	if !ok || d.trainerID != trainerID {
		m.mu.Unlock()
		return ErrDraftNotFound
	}
	delete(m.drafts, id)
	count := len(m.drafts)
	m.mu.Unlock()

	d.saver.Close()
	m.setGauge(count)
	return nil
}

// CloseIdle closes drafts nobody touched for longer than maxIdle. Like Close,
// it does not flush: a screen left without Save keeps only what autosave
// already persisted.
func (m *DraftManager) CloseIdle(maxIdle time.Duration) int {
	cutoff := m.now().Add(-maxIdle)

	m.mu.Lock()
	var idle []*openDraft
	for id, d := range m.drafts {
		if d.lastAccess.Before(cutoff) {
			idle = append(idle, d)
			delete(m.drafts, id)
			log.Debugf("workout draft %s idle since %s, closing", id, d.lastAccess.Format(time.RFC3339))
		}
	}
	count := len(m.drafts)
	m.mu.Unlock()

	for _, d := range idle {
		d.saver.Close()
	}
	if len(idle) > 0 {
		m.setGauge(count)
	}
	return len(idle)
}

func (m *DraftManager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.drafts)
}

// Shutdown flushes drafts with pending edits and closes all of them.
// Used on process shutdown, where there is no later Save to wait for.
func (m *DraftManager) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	drafts := m.drafts
	m.drafts = map[string]*openDraft{}
	m.mu.Unlock()

	var errs error
	for id, d := range drafts {
		flushed, err := d.saver.FlushPending(ctx)
		if err != nil {
			errs = multierr.Append(errs, err)
		} else if flushed {
			log.Debugf("workout draft %s flushed on shutdown", id)
		}
		d.saver.Close()
	}
	m.setGauge(0)
	return errs
}

func (m *DraftManager) setGauge(count int) {
	if m.options.MetricsManager != nil {
		m.options.MetricsManager.GaugeActiveAutosaves.Set(float64(count))
	}
}

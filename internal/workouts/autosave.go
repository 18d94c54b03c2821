package workouts

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/2beens/liftly/internal/telemetry/metrics"
	"github.com/2beens/liftly/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const (
	DefaultQuietWindow = time.Second
	flushTimeout       = 30 * time.Second
)

// Clock schedules the quiet window timers. Tests swap in a fake one.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type Timer interface {
	Stop() bool
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

type State int

const (
	StateIdle State = iota
	StatePending
)

func (s State) String() string {
	if s == StatePending {
		return "pending"
	}
	return "idle"
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *State) UnmarshalText(text []byte) error {
	switch string(text) {
	case "idle":
		*s = StateIdle
	case "pending":
		*s = StatePending
	default:
		return fmt.Errorf("unknown draft state: %s", text)
	}
	return nil
}

type FlushResult int

const (
	FlushSaved FlushResult = iota
	// FlushSkipped means the list still had an unnamed exercise and nothing was written.
	FlushSkipped
	FlushFailed
)

func (r FlushResult) String() string {
	switch r {
	case FlushSaved:
		return "saved"
	case FlushSkipped:
		return "skipped"
	default:
		return "failed"
	}
}

func (r FlushResult) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *FlushResult) UnmarshalText(text []byte) error {
	switch string(text) {
	case "saved":
		*r = FlushSaved
	case "skipped":
		*r = FlushSkipped
	case "failed":
		*r = FlushFailed
	default:
		return fmt.Errorf("unknown flush result: %s", text)
	}
	return nil
}

type draftStore interface {
	CreateWorkout(ctx context.Context, w NewWorkout) (*Workout, error)
	ReplaceExercises(ctx context.Context, workoutID int, exercises []ExerciseDraft) error
}

type AutoSaverOptions struct {
	Clock       Clock
	QuietWindow time.Duration
	// BaseContext is used for flushes started by the timer.
	BaseContext    context.Context
	MetricsManager *metrics.Manager
}

// Status is a point in time view of an AutoSaver.
type Status struct {
	State      State           `json:"state"`
	WorkoutID  int             `json:"workoutId,omitempty"`
	Exercises  []ExerciseDraft `json:"exercises"`
	LastResult *FlushResult    `json:"lastResult,omitempty"`
	LastError  string          `json:"lastError,omitempty"`
}

// AutoSaver coalesces bursts of exercise edits into one persist call per
// quiet window. Every Edit restarts the window, the timer firing without an
// intervening Edit flushes the list. Flushes never overlap: a timer flush
// and an explicit Save are serialized on flushMu.
type AutoSaver struct {
	store   draftStore
	target  NewWorkout
	clock   Clock
	quiet   time.Duration
	baseCtx context.Context
	metrics *metrics.Manager

	flushMu sync.Mutex

	mu         sync.Mutex // guards the fields below
	list       DraftList
	state      State
	timer      Timer
	generation uint64
	workoutID  int
	closed     bool
	lastResult *FlushResult
	lastErr    error
}

func NewAutoSaver(store draftStore, target NewWorkout, initial []ExerciseDraft, opts AutoSaverOptions) *AutoSaver {
	if opts.Clock == nil {
		opts.Clock = realClock{}
	}
	if opts.QuietWindow <= 0 {
		opts.QuietWindow = DefaultQuietWindow
	}
	if opts.BaseContext == nil {
		opts.BaseContext = context.Background()
	}
	return &AutoSaver{
		store:   store,
		target:  target,
		clock:   opts.Clock,
		quiet:   opts.QuietWindow,
		baseCtx: opts.BaseContext,
		metrics: opts.MetricsManager,
		list:    NewDraftList(initial),
	}
}

// Edit applies mutate to the in-memory list and restarts the quiet window.
// A failed mutation leaves both the list and the timer untouched.
func (s *AutoSaver) Edit(mutate func(l *DraftList) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrDraftClosed
	}
	if err := mutate(&s.list); err != nil {
		return err
	}

	if s.timer != nil {
		s.timer.Stop()
	}
	s.generation++
	gen := s.generation
	s.state = StatePending
	s.timer = s.clock.AfterFunc(s.quiet, func() {
		s.onTimer(gen)
	})
	return nil
}

func (s *AutoSaver) onTimer(gen uint64) {
	s.flushMu.Lock()
	defer s.flushMu.Unlock()

	s.mu.Lock()
	// a later Edit, Save or Close superseded this timer
	if s.closed || gen != s.generation || s.state != StatePending {
		s.mu.Unlock()
		return
	}
	s.state = StateIdle
	s.timer = nil
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(s.baseCtx, flushTimeout)
	defer cancel()
	if _, err := s.flushLocked(ctx); err != nil {
		log.Errorf("autosave client %d, date %s: %s", s.target.ClientID, s.target.Date, err)
		// the edits are still unsaved, keep them for the next Save or FlushPending
		s.mu.Lock()
		if !s.closed && gen == s.generation {
			s.state = StatePending
		}
		s.mu.Unlock()
	}
}

// Save is the explicit "Save" action: it cancels a pending timer and
// flushes right away.
func (s *AutoSaver) Save(ctx context.Context) (FlushResult, error) {
	s.flushMu.Lock()
	defer s.flushMu.Unlock()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return FlushFailed, ErrDraftClosed
	}
	s.stopTimerLocked()
	s.mu.Unlock()

	return s.flushLocked(ctx)
}

// Close cancels any pending timer WITHOUT flushing. Edits made within the
// last quiet window are lost unless Save was called first.
func (s *AutoSaver) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopTimerLocked()
	s.closed = true
}

// FlushPending flushes only if there are edits not yet persisted: either
// still waiting for their quiet window or left over from a failed timer flush.
// An in-flight timer flush is waited for first.
func (s *AutoSaver) FlushPending(ctx context.Context) (bool, error) {
	s.flushMu.Lock()
	defer s.flushMu.Unlock()

	s.mu.Lock()
	pending := !s.closed && s.state == StatePending
	if pending {
		s.stopTimerLocked()
	}
	s.mu.Unlock()

	if !pending {
		return false, nil
	}
	_, err := s.flushLocked(ctx)
	return true, err
}

func (s *AutoSaver) stopTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.generation++
	s.state = StateIdle
}

func (s *AutoSaver) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := Status{
		State:      s.state,
		WorkoutID:  s.workoutID,
		Exercises:  s.list.Snapshot(),
		LastResult: s.lastResult,
	}
	if s.lastErr != nil {
		st.LastError = s.lastErr.Error()
	}
	return st
}

// flushLocked persists the current list. Callers hold flushMu.
func (s *AutoSaver) flushLocked(ctx context.Context) (result FlushResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "workouts.autosave.flush")
	defer func() {
		span.SetAttributes(attribute.String("result", result.String()))
		tracing.EndSpanWithErrCheck(span, err)
		s.record(result, err)
	}()
	begin := time.Now()

	s.mu.Lock()
	hasEmptyName := s.list.HasEmptyName()
	snapshot := s.list.Snapshot()
	workoutID := s.workoutID
	s.mu.Unlock()

	if hasEmptyName {
		return FlushSkipped, nil
	}

	if workoutID == 0 {
		w, err := s.store.CreateWorkout(ctx, s.target)
		if err != nil {
			return FlushFailed, fmt.Errorf("create workout: %w", err)
		}
		workoutID = w.ID
		s.mu.Lock()
		s.workoutID = workoutID
		s.mu.Unlock()
	}
	span.SetAttributes(attribute.Int("workout.id", workoutID))

	for i := range snapshot {
		snapshot[i].OrderIndex = i
	}
	if err := s.store.ReplaceExercises(ctx, workoutID, snapshot); err != nil {
		return FlushFailed, fmt.Errorf("replace exercises: %w", err)
	}

	if s.metrics != nil {
		s.metrics.HistAutosaveDuration.Observe(time.Since(begin).Seconds())
	}
	return FlushSaved, nil
}

func (s *AutoSaver) record(result FlushResult, err error) {
	s.mu.Lock()
	s.lastResult = &result
	s.lastErr = err
	s.mu.Unlock()
	if s.metrics != nil {
		s.metrics.CounterAutosaveFlushes.WithLabelValues(result.String()).Inc()
	}
}

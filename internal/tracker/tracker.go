package tracker

import (
	"sync"

	"github.com/sirupsen/logrus"

	"daytrack/internal/model"
	"daytrack/internal/query"
	"daytrack/internal/state"
	"daytrack/internal/stats"
	"daytrack/internal/store"
)

// Tracker is the explicit owner of the single AppState: it loads the
// snapshot once, funnels every mutation through the reducer, and
// persists the full state after each applied command. Derived views are
// recomputed from the current state on every read.
type Tracker struct {
	mu    sync.Mutex
	st    model.AppState
	store *store.Store
	clock Clock
	log   *logrus.Logger
}

type Options struct {
	Store  *store.Store
	Clock  Clock
	Logger *logrus.Logger
}

func New(opts Options) *Tracker {
	if opts.Clock == nil {
		opts.Clock = RealClock{}
	}
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	return &Tracker{
		st:    opts.Store.Load(),
		store: opts.Store,
		clock: opts.Clock,
		log:   opts.Logger,
	}
}

// Dispatch runs one command to completion. When the command matched and
// the snapshot write failed, the mutation is rolled back so memory and
// disk never drift apart; the error is surfaced to the caller instead
// of being swallowed.
func (t *Tracker) Dispatch(cmd state.Command) (model.AppState, bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	next, ok := state.Apply(t.st, cmd, t.clock.Now())
	if !ok {
		return t.st.Clone(), false, nil
	}
	if err := t.store.Save(next); err != nil {
		t.log.WithError(err).Error("state snapshot write failed, mutation dropped")
		return t.st.Clone(), true, err
	}
	t.st = next
	return next.Clone(), true, nil
}

// Snapshot returns a deep copy of the current state.
func (t *Tracker) Snapshot() model.AppState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.st.Clone()
}

func (t *Tracker) Visible(mode query.Mode, q string) []model.Task {
	t.mu.Lock()
	defer t.mu.Unlock()
	return query.Visible(t.st.Clone().Tasks, mode, q)
}

// History returns the most recent entries, capped at limit when
// limit > 0.
func (t *Tracker) History(limit int) []model.HistoryEntry {
	t.mu.Lock()
	defer t.mu.Unlock()

	h := t.st.Clone().History
	if limit > 0 && len(h) > limit {
		h = h[:limit]
	}
	return h
}

func (t *Tracker) DailyHistogram(windowDays int) []stats.Bucket {
	t.mu.Lock()
	defer t.mu.Unlock()
	return stats.DailyHistogram(t.st.History, windowDays, t.clock.Now(), t.st.Location())
}

func (t *Tracker) Completions() []stats.TaskCount {
	t.mu.Lock()
	defer t.mu.Unlock()
	return stats.CompletionsPerTask(t.st.History, t.st.Tasks)
}

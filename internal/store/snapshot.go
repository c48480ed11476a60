package store

import (
	"encoding/json"

	"github.com/sirupsen/logrus"

	"daytrack/internal/model"
)

// Store serializes the whole AppState to a single KV entry. Missing or
// malformed snapshots degrade to a fresh state, never an error.
type Store struct {
	kv  KV
	log *logrus.Logger
}

func New(kv KV, log *logrus.Logger) *Store {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Store{kv: kv, log: log}
}

// Load reads the persisted snapshot. Corrupt or unreadable data is
// logged at warn level and treated as absence.
func (s *Store) Load() model.AppState {
	raw, ok, err := s.kv.Get(StateKey)
	if err != nil {
		s.log.WithError(err).Warn("state snapshot unreadable, starting fresh")
		return model.NewAppState()
	}
	if !ok {
		return model.NewAppState()
	}

	var st model.AppState
	if err := json.Unmarshal([]byte(raw), &st); err != nil {
		s.log.WithError(err).Warn("state snapshot malformed, starting fresh")
		return model.NewAppState()
	}
	normalize(&st)
	return st
}

// Save overwrites the full snapshot. There are no deltas and no
// versioning; the last writer wins.
func (s *Store) Save(st model.AppState) error {
	b, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	return s.kv.Set(StateKey, string(b))
}

// Older snapshots may predate fields or carry null collections; keep
// the in-memory shape uniform.
func normalize(st *model.AppState) {
	if st.Tasks == nil {
		st.Tasks = []model.Task{}
	}
	if st.History == nil {
		st.History = []model.HistoryEntry{}
	}
	for i := range st.Tasks {
		if st.Tasks[i].Recurrence == "" {
			st.Tasks[i].Recurrence = model.RecurNone
		}
	}
}

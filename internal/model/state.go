package model

import "time"

type Settings struct {
	Timezone string `json:"timezone"`
}

// AppState is the aggregate root and the unit of persistence.
// Tasks are ordered most-recently-added first, History most-recent-first.
type AppState struct {
	Tasks    []Task         `json:"tasks"`
	History  []HistoryEntry `json:"history"`
	Settings Settings       `json:"settings"`
}

// NewAppState returns a fresh state with the timezone captured from the
// environment. Used on first run and as the corrupt-storage fallback.
func NewAppState() AppState {
	return AppState{
		Tasks:    []Task{},
		History:  []HistoryEntry{},
		Settings: Settings{Timezone: time.Now().Location().String()},
	}
}

// Location resolves the captured timezone, falling back to local time
// when the stored name no longer resolves.
func (s AppState) Location() *time.Location {
	if s.Settings.Timezone != "" {
		if loc, err := time.LoadLocation(s.Settings.Timezone); err == nil {
			return loc
		}
	}
	return time.Local
}

// FindTask returns the index of the task with the given id, or -1.
func (s AppState) FindTask(id TaskID) int {
	for i := range s.Tasks {
		if s.Tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// Clone deep-copies the state so reducer outputs never share pointer
// fields with their inputs.
func (s AppState) Clone() AppState {
	out := AppState{
		Tasks:    make([]Task, len(s.Tasks)),
		History:  make([]HistoryEntry, len(s.History)),
		Settings: s.Settings,
	}
	for i, t := range s.Tasks {
		out.Tasks[i] = t.clone()
	}
	copy(out.History, s.History)
	return out
}

func (t Task) clone() Task {
	c := t
	if t.Due != nil {
		d := *t.Due
		c.Due = &d
	}
	if t.NextDue != nil {
		d := *t.NextDue
		c.NextDue = &d
	}
	return c
}

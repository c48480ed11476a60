package model

import (
	"time"

	"github.com/google/uuid"
)

type EntryID string

// HistoryEntry is an immutable completion record. Title is a snapshot
// taken at completion time; TaskID is a weak reference that may dangle
// after the task is deleted.
type HistoryEntry struct {
	ID     EntryID   `json:"id"`
	TaskID TaskID    `json:"taskId"`
	Title  string    `json:"title"`
	At     time.Time `json:"at"`
}

func NewHistoryEntry(t Task, at time.Time) HistoryEntry {
	return HistoryEntry{
		ID:     EntryID(uuid.NewString()),
		TaskID: t.ID,
		Title:  t.Title,
		At:     at,
	}
}

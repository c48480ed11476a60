// Package query is the transient filter/search layer: its selections
// are UI state, never persisted.
package query

import (
	"strings"

	"daytrack/internal/model"
)

type Mode string

const (
	ModeAll       Mode = "all"
	ModeActive    Mode = "active"
	ModeCompleted Mode = "completed"
	ModeArchived  Mode = "archived"
)

// ParseMode falls back to "all" for unknown input.
func ParseMode(s string) Mode {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeActive:
		return ModeActive
	case ModeCompleted:
		return ModeCompleted
	case ModeArchived:
		return ModeArchived
	default:
		return ModeAll
	}
}

// Visible applies the mode subset first, then a case-insensitive
// substring match on title. Task order is preserved, never re-sorted.
func Visible(tasks []model.Task, mode Mode, q string) []model.Task {
	q = strings.ToLower(strings.TrimSpace(q))

	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if !matchesMode(t, mode) {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(t.Title), q) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func matchesMode(t model.Task, mode Mode) bool {
	switch mode {
	case ModeActive:
		return !t.Completed && !t.Archived
	case ModeCompleted:
		return t.Completed && !t.Archived
	case ModeArchived:
		return t.Archived
	default:
		return !t.Archived
	}
}

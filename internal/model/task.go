package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type TaskID string

type Recurrence string

const (
	RecurNone    Recurrence = "none"
	RecurDaily   Recurrence = "daily"
	RecurWeekly  Recurrence = "weekly"
	RecurMonthly Recurrence = "monthly"
)

// DefaultTitle is used when a task is created with a blank title.
const DefaultTitle = "Untitled"

// ParseRecurrence normalizes user input; anything unrecognized is "none".
func ParseRecurrence(s string) Recurrence {
	switch Recurrence(strings.ToLower(strings.TrimSpace(s))) {
	case RecurDaily:
		return RecurDaily
	case RecurWeekly:
		return RecurWeekly
	case RecurMonthly:
		return RecurMonthly
	default:
		return RecurNone
	}
}

type Task struct {
	ID         TaskID     `json:"id"`
	Title      string     `json:"title"`
	Notes      string     `json:"notes"`
	CreatedAt  time.Time  `json:"createdAt"`
	Due        *time.Time `json:"due,omitempty"`
	Recurrence Recurrence `json:"recurrence"`
	Completed  bool       `json:"completed"`
	NextDue    *time.Time `json:"nextDue,omitempty"`
	Archived   bool       `json:"archived"`
}

func NewTask(title, notes string, due *time.Time, recur Recurrence, now time.Time) Task {
	title = strings.TrimSpace(title)
	if title == "" {
		title = DefaultTitle
	}
	if recur == "" {
		recur = RecurNone
	}

	t := Task{
		ID:         TaskID(uuid.NewString()),
		Title:      title,
		Notes:      notes,
		CreatedAt:  now,
		Recurrence: recur,
	}
	if due != nil {
		d := *due
		t.Due = &d
		// NextDue starts out equal to Due; for recurring tasks it is
		// advanced on completion, so it must not alias Due.
		nd := d
		t.NextDue = &nd
	}
	return t
}

func (t *Task) IsRecurring() bool {
	return t.Recurrence != "" && t.Recurrence != RecurNone
}

// ComputeNextDue advances base by one recurrence interval, preserving
// time-of-day. Monthly uses AddDate normalization: Jan 31 + 1 month rolls
// over into early March rather than clamping to the end of February.
// Callers guard against RecurNone.
func ComputeNextDue(base time.Time, r Recurrence) time.Time {
	switch r {
	case RecurDaily:
		return base.AddDate(0, 0, 1)
	case RecurWeekly:
		return base.AddDate(0, 0, 7)
	case RecurMonthly:
		return base.AddDate(0, 1, 0)
	default:
		return base
	}
}

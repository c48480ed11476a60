package state

import (
	"time"

	"daytrack/internal/model"
)

// Apply is the single reducer over AppState. It is pure: the input state
// is never mutated, and the caller is responsible for persisting the
// result. The bool reports whether the command matched a target; unknown
// ids return the input state unchanged.
func Apply(s model.AppState, cmd Command, now time.Time) (model.AppState, bool) {
	switch c := cmd.(type) {
	case AddTask:
		return applyAdd(s, c, now), true
	case EditTask:
		return applyEdit(s, c.ID, c.Patch)
	case ToggleComplete:
		return applyToggle(s, c.ID)
	case CompleteNow:
		return applyComplete(s, c.ID, now)
	case DeleteTask:
		return applyDelete(s, c.ID)
	case ArchiveTask:
		archived := true
		return applyEdit(s, c.ID, Patch{Archived: &archived})
	}
	return s, false
}

func applyAdd(s model.AppState, c AddTask, now time.Time) model.AppState {
	next := s.Clone()
	t := model.NewTask(c.Title, c.Notes, c.Due, c.Recurrence, now)
	next.Tasks = append([]model.Task{t}, next.Tasks...)
	return next
}

func applyEdit(s model.AppState, id model.TaskID, p Patch) (model.AppState, bool) {
	idx := s.FindTask(id)
	if idx < 0 {
		return s, false
	}
	next := s.Clone()
	applyPatch(&next.Tasks[idx], p)
	return next, true
}

func applyPatch(t *model.Task, p Patch) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Notes != nil {
		t.Notes = *p.Notes
	}
	if p.Due != nil {
		d := *p.Due
		t.Due = &d
	}
	if p.Recurrence != nil {
		t.Recurrence = *p.Recurrence
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	if p.Archived != nil {
		t.Archived = *p.Archived
	}
}

func applyToggle(s model.AppState, id model.TaskID) (model.AppState, bool) {
	idx := s.FindTask(id)
	if idx < 0 {
		return s, false
	}
	next := s.Clone()
	next.Tasks[idx].Completed = !next.Tasks[idx].Completed
	return next, true
}

func applyComplete(s model.AppState, id model.TaskID, now time.Time) (model.AppState, bool) {
	idx := s.FindTask(id)
	if idx < 0 {
		return s, false
	}

	next := s.Clone()
	t := &next.Tasks[idx]

	entry := model.NewHistoryEntry(*t, now)
	next.History = append([]model.HistoryEntry{entry}, next.History...)

	t.Completed = true
	if t.IsRecurring() {
		base := now
		if t.NextDue != nil {
			base = *t.NextDue
		}
		nd := model.ComputeNextDue(base, t.Recurrence)
		t.NextDue = &nd
		// The task resets for its next occurrence right away; there is
		// no "pending until next due" state.
		t.Completed = false
	}
	return next, true
}

func applyDelete(s model.AppState, id model.TaskID) (model.AppState, bool) {
	idx := s.FindTask(id)
	if idx < 0 {
		return s, false
	}
	next := s.Clone()
	next.Tasks = append(next.Tasks[:idx], next.Tasks[idx+1:]...)
	return next, true
}

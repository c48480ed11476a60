package state

import (
	"time"

	"daytrack/internal/model"
)

// Command is the closed set of state transitions. Every mutation of
// AppState goes through Apply with one of these.
type Command interface {
	isCommand()
}

type AddTask struct {
	Title      string
	Notes      string
	Due        *time.Time
	Recurrence model.Recurrence
}

type EditTask struct {
	ID    model.TaskID
	Patch Patch
}

type ToggleComplete struct {
	ID model.TaskID
}

// CompleteNow records a completion: it appends a history entry and, for
// recurring tasks, advances NextDue and immediately resets Completed.
type CompleteNow struct {
	ID model.TaskID
}

type DeleteTask struct {
	ID model.TaskID
}

type ArchiveTask struct {
	ID model.TaskID
}

func (AddTask) isCommand()        {}
func (EditTask) isCommand()       {}
func (ToggleComplete) isCommand() {}
func (CompleteNow) isCommand()    {}
func (DeleteTask) isCommand()     {}
func (ArchiveTask) isCommand()    {}

// Patch is a partial task update. nil pointer => "no change".
// Editing Due or Recurrence deliberately leaves NextDue untouched;
// only completion events advance it.
type Patch struct {
	Title      *string           `json:"title,omitempty"`
	Notes      *string           `json:"notes,omitempty"`
	Due        *time.Time        `json:"due,omitempty"`
	Recurrence *model.Recurrence `json:"recurrence,omitempty"`
	Completed  *bool             `json:"completed,omitempty"`
	Archived   *bool             `json:"archived,omitempty"`
}

// Package stats derives the chart-ready views from tasks and history.
// Everything here is pure and recomputed on demand; nothing is cached
// or persisted.
package stats

import (
	"time"

	"daytrack/internal/model"
)

const DefaultWindowDays = 14

const dayKey = "2006-01-02"

// Bucket is one calendar day of the completion histogram.
type Bucket struct {
	Date  string `json:"date"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// DailyHistogram buckets history entries by local calendar day over the
// last windowDays days ending at ref, oldest first. Entries outside the
// window are ignored; membership is decided by date-key comparison, not
// by instant arithmetic.
func DailyHistogram(history []model.HistoryEntry, windowDays int, ref time.Time, loc *time.Location) []Bucket {
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}
	if loc == nil {
		loc = time.Local
	}

	ref = ref.In(loc)
	buckets := make([]Bucket, windowDays)
	index := make(map[string]int, windowDays)
	for i := range buckets {
		day := ref.AddDate(0, 0, -(windowDays - 1 - i))
		key := day.Format(dayKey)
		buckets[i] = Bucket{Date: key, Label: day.Format("Jan 2")}
		index[key] = i
	}

	for _, e := range history {
		if i, ok := index[e.At.In(loc).Format(dayKey)]; ok {
			buckets[i].Count++
		}
	}
	return buckets
}

// TaskCount pairs a live task with its completion total.
type TaskCount struct {
	TaskID model.TaskID `json:"taskId"`
	Title  string       `json:"title"`
	Count  int          `json:"count"`
}

// CompletionsPerTask counts history entries per task currently in
// tasks, preserving task order. Tasks never completed appear with a
// zero count; history of deleted tasks is excluded because only live
// tasks are iterated.
func CompletionsPerTask(history []model.HistoryEntry, tasks []model.Task) []TaskCount {
	byTask := make(map[model.TaskID]int, len(tasks))
	for _, e := range history {
		byTask[e.TaskID]++
	}

	out := make([]TaskCount, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, TaskCount{
			TaskID: t.ID,
			Title:  t.Title,
			Count:  byTask[t.ID],
		})
	}
	return out
}

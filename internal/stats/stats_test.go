package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"daytrack/internal/model"
)

func entryAt(taskID model.TaskID, at time.Time) model.HistoryEntry {
	return model.HistoryEntry{ID: model.EntryID("e-" + at.Format(time.RFC3339)), TaskID: taskID, Title: "t", At: at}
}

func TestDailyHistogram_OneEntryPerDay(t *testing.T) {
	ref := time.Date(2026, 6, 20, 15, 0, 0, 0, time.UTC)

	history := []model.HistoryEntry{}
	for d := 0; d < 14; d++ {
		history = append(history, entryAt("t1", ref.AddDate(0, 0, -d)))
	}
	// Outside the window entirely; must be silently dropped.
	history = append(history, entryAt("t1", ref.AddDate(0, 0, -20)))

	buckets := DailyHistogram(history, 14, ref, time.UTC)

	require.Len(t, buckets, 14)
	for i, b := range buckets {
		assert.Equal(t, 1, b.Count, "bucket %d (%s)", i, b.Date)
	}
	assert.Equal(t, ref.AddDate(0, 0, -13).Format("2006-01-02"), buckets[0].Date, "oldest first")
	assert.Equal(t, ref.Format("2006-01-02"), buckets[13].Date)
}

func TestDailyHistogram_EmptyDaysStayZero(t *testing.T) {
	ref := time.Date(2026, 6, 20, 9, 0, 0, 0, time.UTC)
	history := []model.HistoryEntry{
		entryAt("t1", ref),
		entryAt("t1", ref.Add(-2*time.Hour)),
	}

	buckets := DailyHistogram(history, 14, ref, time.UTC)

	require.Len(t, buckets, 14)
	assert.Equal(t, 2, buckets[13].Count, "both entries fall on the reference day")
	for i := 0; i < 13; i++ {
		assert.Equal(t, 0, buckets[i].Count)
	}
}

func TestDailyHistogram_BucketsByLocalDay(t *testing.T) {
	// 23:30 UTC on June 19 is already June 20 in UTC+2, so the entry
	// belongs to the newest bucket when aggregated in that zone.
	loc := time.FixedZone("UTC+2", 2*3600)
	ref := time.Date(2026, 6, 20, 12, 0, 0, 0, loc)
	history := []model.HistoryEntry{
		entryAt("t1", time.Date(2026, 6, 19, 23, 30, 0, 0, time.UTC)),
	}

	buckets := DailyHistogram(history, 14, ref, loc)
	assert.Equal(t, 1, buckets[13].Count)
	assert.Equal(t, 0, buckets[12].Count)
}

func TestDailyHistogram_WindowDefaults(t *testing.T) {
	buckets := DailyHistogram(nil, 0, time.Now(), nil)
	assert.Len(t, buckets, DefaultWindowDays)
}

func TestCompletionsPerTask(t *testing.T) {
	now := time.Now()
	tasks := []model.Task{
		{ID: "b", Title: "second"},
		{ID: "a", Title: "first"},
	}
	history := []model.HistoryEntry{
		entryAt("a", now),
		entryAt("a", now.Add(-time.Hour)),
		entryAt("deleted-task", now),
	}

	counts := CompletionsPerTask(history, tasks)

	require.Len(t, counts, 2)
	assert.Equal(t, model.TaskID("b"), counts[0].TaskID, "task order preserved")
	assert.Equal(t, 0, counts[0].Count, "never-completed tasks still listed")
	assert.Equal(t, 2, counts[1].Count)
}

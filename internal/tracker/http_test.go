package tracker

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"daytrack/internal/model"
	"daytrack/internal/store"
)

func newAPIForTests(t *testing.T) (*Handler, *Tracker, *FakeClock) {
	t.Helper()
	kv, err := store.NewFileKV(t.TempDir())
	require.NoError(t, err)

	clock := NewFakeClock(time.Date(2026, 7, 10, 8, 0, 0, 0, time.UTC))
	tr := New(Options{Store: store.New(kv, nil), Clock: clock})
	return NewHandler(tr, 20, 14), tr, clock
}

func jsonReq(method, path string, body any) *http.Request {
	var b []byte
	if body != nil {
		b, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func createTask(t *testing.T, h *Handler, body map[string]any) model.Task {
	t.Helper()
	rec := httptest.NewRecorder()
	h.TasksRoot(rec, jsonReq(http.MethodPost, "/api/tasks", body))
	require.Equal(t, 201, rec.Code, rec.Body.String())

	var created model.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	return created
}

func TestTasksRoot_CreateDefaults(t *testing.T) {
	h, _, _ := newAPIForTests(t)

	created := createTask(t, h, map[string]any{"title": "  "})
	assert.Equal(t, model.DefaultTitle, created.Title)
	assert.Equal(t, model.RecurNone, created.Recurrence)
	assert.NotEmpty(t, created.ID)
}

func TestTasksRoot_CreateWithDue(t *testing.T) {
	h, _, _ := newAPIForTests(t)

	created := createTask(t, h, map[string]any{
		"title":      "water plants",
		"due":        "2026-07-12T09:00:00Z",
		"recurrence": "weekly",
	})
	require.NotNil(t, created.Due)
	assert.True(t, created.Due.Equal(time.Date(2026, 7, 12, 9, 0, 0, 0, time.UTC)))
	require.NotNil(t, created.NextDue)
	assert.True(t, created.NextDue.Equal(*created.Due))
}

func TestTasksRoot_BadDueRejected(t *testing.T) {
	h, _, _ := newAPIForTests(t)

	rec := httptest.NewRecorder()
	h.TasksRoot(rec, jsonReq(http.MethodPost, "/api/tasks", map[string]any{
		"title": "x",
		"due":   "next tuesday",
	}))
	assert.Equal(t, 400, rec.Code)
}

func TestTasksRoot_ListFilterAndQuery(t *testing.T) {
	h, tr, _ := newAPIForTests(t)

	milk := createTask(t, h, map[string]any{"title": "Buy milk"})
	rent := createTask(t, h, map[string]any{"title": "Pay rent"})
	old := createTask(t, h, map[string]any{"title": "Old"})

	rec := httptest.NewRecorder()
	h.TasksSub(rec, jsonReq(http.MethodPost, "/api/tasks/"+string(rent.ID)+"/toggle", nil))
	require.Equal(t, 200, rec.Code)

	rec = httptest.NewRecorder()
	h.TasksSub(rec, jsonReq(http.MethodPost, "/api/tasks/"+string(old.ID)+"/archive", nil))
	require.Equal(t, 200, rec.Code)

	var got []model.Task

	rec = httptest.NewRecorder()
	h.TasksRoot(rec, jsonReq(http.MethodGet, "/api/tasks?filter=active", nil))
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, milk.ID, got[0].ID)

	rec = httptest.NewRecorder()
	h.TasksRoot(rec, jsonReq(http.MethodGet, "/api/tasks?q=pay", nil))
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, rent.ID, got[0].ID)

	require.Len(t, tr.Snapshot().Tasks, 3, "filtering never removes tasks")
}

func TestTasksSub_PatchEditsTask(t *testing.T) {
	h, _, _ := newAPIForTests(t)

	created := createTask(t, h, map[string]any{"title": "draft email"})

	rec := httptest.NewRecorder()
	h.TasksSub(rec, jsonReq(http.MethodPatch, "/api/tasks/"+string(created.ID), map[string]any{
		"title": "send email",
		"notes": "cc the team",
	}))
	require.Equal(t, 200, rec.Code)

	var got model.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "send email", got.Title)
	assert.Equal(t, "cc the team", got.Notes)
}

func TestTasksSub_CompleteRecurringResets(t *testing.T) {
	h, _, _ := newAPIForTests(t)

	created := createTask(t, h, map[string]any{
		"title":      "standup",
		"due":        "2026-07-11T09:30:00Z",
		"recurrence": "daily",
	})

	rec := httptest.NewRecorder()
	h.TasksSub(rec, jsonReq(http.MethodPost, "/api/tasks/"+string(created.ID)+"/complete", nil))
	require.Equal(t, 200, rec.Code)

	var got model.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.False(t, got.Completed)
	require.NotNil(t, got.NextDue)
	assert.True(t, got.NextDue.Equal(time.Date(2026, 7, 12, 9, 30, 0, 0, time.UTC)))
}

func TestTasksSub_UnknownID(t *testing.T) {
	h, _, _ := newAPIForTests(t)

	for _, req := range []*http.Request{
		jsonReq(http.MethodGet, "/api/tasks/nope", nil),
		jsonReq(http.MethodPatch, "/api/tasks/nope", map[string]any{"title": "x"}),
		jsonReq(http.MethodDelete, "/api/tasks/nope", nil),
		jsonReq(http.MethodPost, "/api/tasks/nope/complete", nil),
	} {
		rec := httptest.NewRecorder()
		h.TasksSub(rec, req)
		assert.Equal(t, 404, rec.Code, "%s %s", req.Method, req.URL.Path)
	}
}

func TestTasksSub_DeleteKeepsHistoryVisible(t *testing.T) {
	h, _, _ := newAPIForTests(t)

	created := createTask(t, h, map[string]any{"title": "one shot"})

	rec := httptest.NewRecorder()
	h.TasksSub(rec, jsonReq(http.MethodPost, "/api/tasks/"+string(created.ID)+"/complete", nil))
	require.Equal(t, 200, rec.Code)

	rec = httptest.NewRecorder()
	h.TasksSub(rec, jsonReq(http.MethodDelete, "/api/tasks/"+string(created.ID), nil))
	require.Equal(t, 204, rec.Code)

	rec = httptest.NewRecorder()
	h.History(rec, jsonReq(http.MethodGet, "/api/history", nil))
	require.Equal(t, 200, rec.Code)

	var entries []model.HistoryEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, created.ID, entries[0].TaskID, "dangling reference survives deletion")
}

func TestHistory_CappedForDisplay(t *testing.T) {
	h, _, clock := newAPIForTests(t)

	created := createTask(t, h, map[string]any{"title": "rep", "recurrence": "daily"})
	for i := 0; i < 25; i++ {
		clock.Advance(24 * time.Hour)
		rec := httptest.NewRecorder()
		h.TasksSub(rec, jsonReq(http.MethodPost, "/api/tasks/"+string(created.ID)+"/complete", nil))
		require.Equal(t, 200, rec.Code)
	}

	rec := httptest.NewRecorder()
	h.History(rec, jsonReq(http.MethodGet, "/api/history", nil))

	var entries []model.HistoryEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	assert.Len(t, entries, 20)
}

func TestStatsEndpoints(t *testing.T) {
	h, _, _ := newAPIForTests(t)

	created := createTask(t, h, map[string]any{"title": "exercise"})
	rec := httptest.NewRecorder()
	h.TasksSub(rec, jsonReq(http.MethodPost, "/api/tasks/"+string(created.ID)+"/complete", nil))
	require.Equal(t, 200, rec.Code)

	rec = httptest.NewRecorder()
	h.StatsDaily(rec, jsonReq(http.MethodGet, "/api/stats/daily", nil))
	require.Equal(t, 200, rec.Code)

	var buckets []struct {
		Date  string `json:"date"`
		Count int    `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &buckets))
	require.Len(t, buckets, 14)
	assert.Equal(t, 1, buckets[13].Count)

	rec = httptest.NewRecorder()
	h.StatsTasks(rec, jsonReq(http.MethodGet, "/api/stats/tasks", nil))
	require.Equal(t, 200, rec.Code)

	var counts []struct {
		TaskID string `json:"taskId"`
		Count  int    `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &counts))
	require.Len(t, counts, 1)
	assert.Equal(t, 1, counts[0].Count)
}

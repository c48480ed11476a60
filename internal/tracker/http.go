package tracker

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"daytrack/internal/model"
	"daytrack/internal/query"
	"daytrack/internal/state"
	"daytrack/internal/stats"
)

// Handler exposes the tracker over a JSON API. The browser front-end
// consuming it is a separate concern; nothing here renders anything.
type Handler struct {
	tr           *Tracker
	historyLimit int
	windowDays   int
}

func NewHandler(tr *Tracker, historyLimit, windowDays int) *Handler {
	if historyLimit <= 0 {
		historyLimit = 20
	}
	if windowDays <= 0 {
		windowDays = stats.DefaultWindowDays
	}
	return &Handler{tr: tr, historyLimit: historyLimit, windowDays: windowDays}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}

func decodeJSON(r *http.Request, out any) error {
	return json.NewDecoder(r.Body).Decode(out)
}

type taskInput struct {
	Title      string  `json:"title"`
	Notes      string  `json:"notes"`
	Due        *string `json:"due,omitempty"`
	Recurrence string  `json:"recurrence,omitempty"`
}

func parseDue(s *string) (*time.Time, bool) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, true
	}
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(*s))
	if err != nil {
		return nil, false
	}
	return &t, true
}

// /api/tasks  (collection)
func (h *Handler) TasksRoot(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		q := r.URL.Query()
		tasks := h.tr.Visible(query.ParseMode(q.Get("filter")), q.Get("q"))
		writeJSON(w, 200, tasks)
		return

	case http.MethodPost:
		var in taskInput
		if err := decodeJSON(r, &in); err != nil {
			writeErr(w, 400, "bad json")
			return
		}
		due, ok := parseDue(in.Due)
		if !ok {
			writeErr(w, 400, "due must be RFC 3339")
			return
		}

		st, _, err := h.tr.Dispatch(state.AddTask{
			Title:      in.Title,
			Notes:      in.Notes,
			Due:        due,
			Recurrence: model.ParseRecurrence(in.Recurrence),
		})
		if err != nil {
			writeErr(w, 500, "failed to persist state")
			return
		}
		writeJSON(w, 201, st.Tasks[0])
		return

	default:
		writeErr(w, 405, "method not allowed")
		return
	}
}

// /api/tasks/{id} and /api/tasks/{id}/{action}
func (h *Handler) TasksSub(w http.ResponseWriter, r *http.Request) {
	tail := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/tasks/"), "/")
	if tail == "" {
		writeErr(w, 404, "not found")
		return
	}

	parts := strings.Split(tail, "/")
	id := model.TaskID(parts[0])

	if len(parts) == 1 {
		switch r.Method {
		case http.MethodGet:
			st := h.tr.Snapshot()
			if idx := st.FindTask(id); idx >= 0 {
				writeJSON(w, 200, st.Tasks[idx])
				return
			}
			writeErr(w, 404, "not found")
			return

		case http.MethodPatch:
			var p state.Patch
			if err := decodeJSON(r, &p); err != nil {
				writeErr(w, 400, "bad json")
				return
			}
			if p.Recurrence != nil {
				norm := model.ParseRecurrence(string(*p.Recurrence))
				p.Recurrence = &norm
			}
			h.dispatchOnTask(w, state.EditTask{ID: id, Patch: p}, id)
			return

		case http.MethodDelete:
			_, ok, err := h.tr.Dispatch(state.DeleteTask{ID: id})
			if err != nil {
				writeErr(w, 500, "failed to persist state")
				return
			}
			if !ok {
				writeErr(w, 404, "not found")
				return
			}
			w.WriteHeader(204)
			return

		default:
			writeErr(w, 405, "method not allowed")
			return
		}
	}

	if len(parts) == 2 && r.Method == http.MethodPost {
		switch parts[1] {
		case "complete":
			h.dispatchOnTask(w, state.CompleteNow{ID: id}, id)
		case "toggle":
			h.dispatchOnTask(w, state.ToggleComplete{ID: id}, id)
		case "archive":
			h.dispatchOnTask(w, state.ArchiveTask{ID: id}, id)
		default:
			writeErr(w, 404, "not found")
		}
		return
	}

	writeErr(w, 405, "method not allowed")
}

func (h *Handler) dispatchOnTask(w http.ResponseWriter, cmd state.Command, id model.TaskID) {
	st, ok, err := h.tr.Dispatch(cmd)
	if err != nil {
		writeErr(w, 500, "failed to persist state")
		return
	}
	if !ok {
		writeErr(w, 404, "not found")
		return
	}
	if idx := st.FindTask(id); idx >= 0 {
		writeJSON(w, 200, st.Tasks[idx])
		return
	}
	writeJSON(w, 200, map[string]any{"id": id})
}

// /api/history
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, 405, "method not allowed")
		return
	}
	limit := h.historyLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n < limit {
			limit = n
		}
	}
	writeJSON(w, 200, h.tr.History(limit))
}

// /api/stats/daily
func (h *Handler) StatsDaily(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, 405, "method not allowed")
		return
	}
	days := h.windowDays
	if v := r.URL.Query().Get("days"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			days = n
		}
	}
	writeJSON(w, 200, h.tr.DailyHistogram(days))
}

// /api/stats/tasks
func (h *Handler) StatsTasks(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, 405, "method not allowed")
		return
	}
	writeJSON(w, 200, h.tr.Completions())
}

// /api/state  (full snapshot, handy for export and debugging)
func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, 405, "method not allowed")
		return
	}
	writeJSON(w, 200, h.tr.Snapshot())
}

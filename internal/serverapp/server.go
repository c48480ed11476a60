package serverapp

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"daytrack/internal/config"
	"daytrack/internal/httpmw"
	"daytrack/internal/store"
	"daytrack/internal/tracker"
)

type Options struct {
	Config *config.Config
	Logger *logrus.Logger
	Clock  tracker.Clock
}

// NewHandler wires the durable store, the state container, and the JSON
// API into one http.Handler.
func NewHandler(opts Options) (http.Handler, error) {
	if opts.Config == nil {
		return nil, errors.New("config is required")
	}
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}

	kv, err := OpenKV(opts.Config.Storage)
	if err != nil {
		return nil, err
	}

	tr := tracker.New(tracker.Options{
		Store:  store.New(kv, opts.Logger),
		Clock:  opts.Clock,
		Logger: opts.Logger,
	})
	api := tracker.NewHandler(tr, opts.Config.History.DisplayLimit, opts.Config.Stats.WindowDays)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		fmt.Fprintf(w, `{"ok":true,"service":"daytrack","time":%q}`, time.Now().UTC().Format(time.RFC3339))
	})

	mux.HandleFunc("/api/tasks", api.TasksRoot)
	mux.HandleFunc("/api/tasks/", api.TasksSub)
	mux.HandleFunc("/api/history", api.History)
	mux.HandleFunc("/api/stats/daily", api.StatsDaily)
	mux.HandleFunc("/api/stats/tasks", api.StatsTasks)
	mux.HandleFunc("/api/state", api.State)

	return httpmw.Chain(mux,
		httpmw.WithRequestID,
		httpmw.WithRecover(opts.Logger),
		httpmw.WithAccessLog(opts.Logger),
	), nil
}

// OpenKV picks the durable-store backend from config.
func OpenKV(s config.Storage) (store.KV, error) {
	switch s.Backend {
	case "", "file":
		return store.NewFileKV(s.DataDir)
	case "sqlite":
		return store.OpenSQLiteKV(filepath.Join(s.DataDir, "daytrack.db"))
	default:
		return nil, fmt.Errorf("unknown storage backend %q", s.Backend)
	}
}

// daytrack is the command-line companion to the server: the same state
// container over the same durable store, driven from a terminal.
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"daytrack/internal/config"
	"daytrack/internal/logging"
	"daytrack/internal/model"
	"daytrack/internal/query"
	"daytrack/internal/serverapp"
	"daytrack/internal/state"
	"daytrack/internal/store"
	"daytrack/internal/tracker"
)

var Version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:     "daytrack",
		Short:   "daytrack - personal task tracker",
		Version: Version,
	}

	rootCmd.PersistentFlags().String("data-dir", "data", "data directory")
	rootCmd.PersistentFlags().String("backend", "file", "storage backend (file, sqlite)")

	rootCmd.AddCommand(addCmd())
	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(doneCmd())
	rootCmd.AddCommand(toggleCmd())
	rootCmd.AddCommand(archiveCmd())
	rootCmd.AddCommand(rmCmd())
	rootCmd.AddCommand(historyCmd())
	rootCmd.AddCommand(statsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func openTracker(cmd *cobra.Command) (*tracker.Tracker, error) {
	dataDir, _ := cmd.Flags().GetString("data-dir")
	backend, _ := cmd.Flags().GetString("backend")

	kv, err := serverapp.OpenKV(config.Storage{Backend: backend, DataDir: dataDir})
	if err != nil {
		return nil, err
	}
	log := logging.New("daytrack-cli", "warn")
	return tracker.New(tracker.Options{Store: store.New(kv, log), Logger: log}), nil
}

func addCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tr, err := openTracker(cmd)
			if err != nil {
				return err
			}

			notes, _ := cmd.Flags().GetString("notes")
			recur, _ := cmd.Flags().GetString("recur")
			dueFlag, _ := cmd.Flags().GetString("due")

			var due *time.Time
			if dueFlag != "" {
				t, err := time.Parse(time.RFC3339, dueFlag)
				if err != nil {
					return fmt.Errorf("due must be RFC 3339 (e.g. 2026-09-01T09:00:00Z): %w", err)
				}
				due = &t
			}

			st, _, err := tr.Dispatch(state.AddTask{
				Title:      strings.Join(args, " "),
				Notes:      notes,
				Due:        due,
				Recurrence: model.ParseRecurrence(recur),
			})
			if err != nil {
				return err
			}
			fmt.Printf("added %s  %s\n", st.Tasks[0].ID, st.Tasks[0].Title)
			return nil
		},
	}

	cmd.Flags().StringP("notes", "n", "", "free-form notes")
	cmd.Flags().StringP("due", "d", "", "due timestamp (RFC 3339)")
	cmd.Flags().StringP("recur", "r", "none", "recurrence (none, daily, weekly, monthly)")
	return cmd
}

func listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List visible tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			tr, err := openTracker(cmd)
			if err != nil {
				return err
			}

			filter, _ := cmd.Flags().GetString("filter")
			q, _ := cmd.Flags().GetString("query")

			tasks := tr.Visible(query.ParseMode(filter), q)
			if len(tasks) == 0 {
				fmt.Println("no tasks")
				return nil
			}
			for _, t := range tasks {
				fmt.Println(formatTask(t))
			}
			return nil
		},
	}

	cmd.Flags().StringP("filter", "f", "all", "filter mode (all, active, completed, archived)")
	cmd.Flags().StringP("query", "q", "", "title substring (case-insensitive)")
	return cmd
}

func doneCmd() *cobra.Command {
	return taskCmd("done [id]", "Complete a task (records history; recurring tasks reset)", func(id model.TaskID) state.Command {
		return state.CompleteNow{ID: id}
	})
}

func toggleCmd() *cobra.Command {
	return taskCmd("toggle [id]", "Flip the completed flag without touching history", func(id model.TaskID) state.Command {
		return state.ToggleComplete{ID: id}
	})
}

func archiveCmd() *cobra.Command {
	return taskCmd("archive [id]", "Archive a task (kept in storage, hidden from views)", func(id model.TaskID) state.Command {
		return state.ArchiveTask{ID: id}
	})
}

func rmCmd() *cobra.Command {
	return taskCmd("rm [id]", "Delete a task (its history entries remain)", func(id model.TaskID) state.Command {
		return state.DeleteTask{ID: id}
	})
}

func taskCmd(use, short string, build func(model.TaskID) state.Command) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tr, err := openTracker(cmd)
			if err != nil {
				return err
			}
			id := model.TaskID(args[0])
			st, ok, err := tr.Dispatch(build(id))
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("no task with id %s", id)
			}
			if idx := st.FindTask(id); idx >= 0 {
				fmt.Println(formatTask(st.Tasks[idx]))
			} else {
				fmt.Println("removed", id)
			}
			return nil
		},
	}
}

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent completions",
		RunE: func(cmd *cobra.Command, args []string) error {
			tr, err := openTracker(cmd)
			if err != nil {
				return err
			}
			limit, _ := cmd.Flags().GetInt("limit")
			for _, e := range tr.History(limit) {
				fmt.Printf("%s  %s  %s\n", e.At.Local().Format("2006-01-02 15:04"), e.TaskID, e.Title)
			}
			return nil
		},
	}
	cmd.Flags().IntP("limit", "l", 20, "max entries to show")
	return cmd
}

func statsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show completion statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			tr, err := openTracker(cmd)
			if err != nil {
				return err
			}
			days, _ := cmd.Flags().GetInt("days")

			fmt.Println("Completions per day:")
			for _, b := range tr.DailyHistogram(days) {
				fmt.Printf("  %s  %s %s\n", b.Label, strings.Repeat("#", b.Count), countSuffix(b.Count))
			}

			fmt.Println("\nCompletions per task:")
			for _, c := range tr.Completions() {
				fmt.Printf("  %3d  %s\n", c.Count, c.Title)
			}
			return nil
		},
	}
	cmd.Flags().IntP("days", "d", 14, "histogram window in days")
	return cmd
}

func countSuffix(n int) string {
	if n == 0 {
		return "-"
	}
	return fmt.Sprintf("(%d)", n)
}

func formatTask(t model.Task) string {
	mark := " "
	if t.Completed {
		mark = "x"
	}
	line := fmt.Sprintf("[%s] %s  %s", mark, t.ID, t.Title)
	if t.NextDue != nil {
		line += "  due " + t.NextDue.Local().Format("2006-01-02 15:04")
	}
	if t.Recurrence != model.RecurNone {
		line += "  (" + string(t.Recurrence) + ")"
	}
	if t.Archived {
		line += "  [archived]"
	}
	return line
}

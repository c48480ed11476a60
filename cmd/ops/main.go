package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"daytrack/internal/ops"
	"daytrack/internal/store"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "backup":
		if err := cmdBackup(os.Args[2:]); err != nil {
			fmt.Fprintln(os.Stderr, "backup failed:", err)
			os.Exit(1)
		}
	case "restore":
		if err := cmdRestore(os.Args[2:]); err != nil {
			fmt.Fprintln(os.Stderr, "restore failed:", err)
			os.Exit(1)
		}
	case "drill":
		if err := cmdDrill(os.Args[2:]); err != nil {
			fmt.Fprintln(os.Stderr, "drill failed:", err)
			os.Exit(1)
		}
	default:
		printUsage()
		os.Exit(2)
	}
}

func cmdBackup(args []string) error {
	fs := flag.NewFlagSet("backup", flag.ContinueOnError)
	dataDir := fs.String("data-dir", "data", "path to data directory")
	out := fs.String("out", "", "output archive path (.tar.gz)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *out == "" {
		ts := time.Now().UTC().Format("20060102T150405Z")
		*out = filepath.Join("backups", "daytrack-"+ts+".tar.gz")
	}
	if err := ops.Backup(*dataDir, *out); err != nil {
		return err
	}
	fmt.Println(*out)
	return nil
}

func cmdRestore(args []string) error {
	fs := flag.NewFlagSet("restore", flag.ContinueOnError)
	archive := fs.String("archive", "", "input backup archive (.tar.gz)")
	target := fs.String("target-dir", "data-restored", "restore target directory")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *archive == "" {
		return fmt.Errorf("archive is required")
	}
	return ops.Restore(*archive, *target)
}

// drill backs up, restores into a scratch dir, and checks the restored
// snapshot still loads and carries the same record counts.
func cmdDrill(args []string) error {
	fs := flag.NewFlagSet("drill", flag.ContinueOnError)
	dataDir := fs.String("data-dir", "data", "path to data directory")
	workDir := fs.String("work-dir", os.TempDir(), "workspace for drill artifacts")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := os.MkdirAll(*workDir, 0o755); err != nil {
		return err
	}
	ts := time.Now().UTC().Format("20060102T150405Z")
	archive := filepath.Join(*workDir, "daytrack-drill-"+ts+".tar.gz")
	restoreDir := filepath.Join(*workDir, "daytrack-drill-restore-"+ts)

	if err := ops.Backup(*dataDir, archive); err != nil {
		return err
	}
	if err := ops.Restore(archive, restoreDir); err != nil {
		return err
	}

	srcTasks, srcHistory, err := stateCounts(*dataDir)
	if err != nil {
		return err
	}
	resTasks, resHistory, err := stateCounts(restoreDir)
	if err != nil {
		return err
	}
	if srcTasks != resTasks || srcHistory != resHistory {
		return fmt.Errorf("restored state mismatch: %d/%d tasks, %d/%d history entries",
			resTasks, srcTasks, resHistory, srcHistory)
	}

	fmt.Println("backup:", archive)
	fmt.Println("restored:", restoreDir)
	fmt.Printf("verified: %d tasks, %d history entries\n", srcTasks, srcHistory)
	return nil
}

func stateCounts(dataDir string) (tasks, history int, err error) {
	kv, err := store.NewFileKV(dataDir)
	if err != nil {
		return 0, 0, err
	}
	s := store.New(kv, nil).Load()
	return len(s.Tasks), len(s.History), nil
}

func printUsage() {
	fmt.Println("usage:")
	fmt.Println("  daytrack-ops backup  --data-dir data --out backups/daytrack.tar.gz")
	fmt.Println("  daytrack-ops restore --archive backups/daytrack.tar.gz --target-dir data-restored")
	fmt.Println("  daytrack-ops drill   --data-dir data --work-dir /tmp")
}

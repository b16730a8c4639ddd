// Package cmd implements the CLI command structure for the tracker.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/jaydenyuan326/todo/internal/config"
	"github.com/jaydenyuan326/todo/internal/logging"
	"github.com/jaydenyuan326/todo/internal/notify"
	"github.com/jaydenyuan326/todo/internal/reward"
	"github.com/jaydenyuan326/todo/internal/store"
	"github.com/jaydenyuan326/todo/internal/task"
	"github.com/jaydenyuan326/todo/internal/tasklist"
	"github.com/jaydenyuan326/todo/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Run executes the todo CLI.
func Run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("todo", flag.ContinueOnError)
	fs.Usage = func() {
		printUsage(fs, os.Stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	cfg, err := config.Load(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, os.Stdout)
		return nil
	}
	if *showVersion {
		fmt.Printf("todo %s\n", Version)
		return nil
	}

	logger := logging.New(os.Stderr, logging.Options{
		Level:      cfg.LogLevel,
		Format:     cfg.LogFormat,
		Timestamps: cfg.LogTimestamps,
	})

	// Default to the board when no subcommand is given.
	subcommand := "board"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 && !strings.HasPrefix(remainingArgs[0], "-") {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	switch subcommand {
	case "board":
		return boardCommand(ctx, cfg, logger)
	case "ls":
		return lsCommand(cfg)
	case "add":
		return addCommand(cfg, logger, remainingArgs)
	case "version":
		fmt.Printf("todo %s\n", Version)
		return nil
	default:
		printUsage(fs, os.Stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// boardCommand loads the saved board, runs the TUI with the deadline
// scanner in the background, and persists everything on exit.
func boardCommand(ctx context.Context, cfg *config.Config, logger *log.Logger) error {
	st := store.New(cfg.DataFile)
	firstRun := !st.Exists()

	list, totalXP, err := loadOrFallback(st, logger)
	if err != nil {
		return err
	}
	ledger := reward.NewLedger(totalXP, cfg.LevelThreshold)

	if firstRun && cfg.SeedTasks && list.Len() == 0 {
		seedTasks(list)
		logger.Debug("seeded example tasks", "count", list.Len())
	}

	scanCtx, cancelScan := context.WithCancel(ctx)
	defer cancelScan()
	scanner := notify.New(cfg.ScanInterval(), logger)
	go scanner.Run(scanCtx)

	uiErr := ui.Run(ctx, cfg, list, &ledger, scanner, logger)
	cancelScan()

	// Persist even when the TUI exits with an error; losing edits is
	// worse than saving from a failed session.
	if err := st.Save(list.Snapshot(), ledger.TotalXP); err != nil {
		if uiErr != nil {
			return errors.Join(uiErr, err)
		}
		return err
	}
	logger.Debug("data saved", "file", cfg.DataFile, "tasks", list.Len(), "xp", ledger.TotalXP)
	return uiErr
}

// loadOrFallback loads the data file, falling back to an empty board
// when the contents are malformed. Corruption is reported, not fatal.
func loadOrFallback(st *store.Store, logger *log.Logger) (*tasklist.List, int, error) {
	list, totalXP, err := st.Load()
	if err != nil {
		var malformed *store.MalformedDataError
		if errors.As(err, &malformed) {
			logger.Warn("data file is corrupt, starting empty", "err", malformed)
			return tasklist.New(), 0, nil
		}
		return nil, 0, err
	}
	return list, totalXP, nil
}

// seedTasks fills a brand-new board with a few example tasks.
func seedTasks(list *tasklist.List) {
	due := time.Now().AddDate(0, 0, 14)
	seed := due.Truncate(24 * time.Hour)
	list.Append(task.New("Finish data structures project", task.PriorityHigh, &seed))
	list.Append(task.New("Buy groceries", task.PriorityLow, nil))
	list.Append(task.New("Read documentation", task.PriorityMedium, nil))
}

// lsCommand prints the saved tasks in order.
func lsCommand(cfg *config.Config) error {
	st := store.New(cfg.DataFile)
	list, totalXP, err := st.Load()
	if err != nil {
		return err
	}

	ledger := reward.NewLedger(totalXP, cfg.LevelThreshold)
	fmt.Printf("Level %d | XP %d\n\n", ledger.Level(), ledger.TotalXP)
	if list.Len() == 0 {
		fmt.Println("No tasks.")
		return nil
	}

	for _, rec := range list.Snapshot() {
		mark := " "
		if rec.Column == task.ColumnDone {
			mark = "x"
		}
		fmt.Printf("[%s] %-8s %-12s %s\n", mark, rec.Priority, rec.DueString(), rec.Description)
	}
	return nil
}

// addCommand appends one task from the command line and saves.
func addCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("todo add", flag.ContinueOnError)
	priority := fs.String("priority", "medium", "Task priority (high, medium, low)")
	dueStr := fs.String("due", "", "Due date (YYYY-MM-DD)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("usage: todo add [-priority P] [-due YYYY-MM-DD] <description>")
	}
	description := strings.Join(fs.Args(), " ")

	pri, err := task.ParsePriority(*priority)
	if err != nil {
		return err
	}
	due, err := task.ParseDueDate(*dueStr)
	if err != nil {
		return err
	}

	st := store.New(cfg.DataFile)
	list, totalXP, err := st.Load()
	if err != nil {
		return err
	}
	list.Append(task.New(description, pri, due))
	if err := st.Save(list.Snapshot(), totalXP); err != nil {
		return err
	}
	logger.Info("task added", "task", description, "priority", pri)
	return nil
}

func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintf(w, "todo - kanban task tracker with XP rewards\n\n")
	fmt.Fprintf(w, "Usage:\n")
	fmt.Fprintf(w, "  todo [flags] [command]\n\n")
	fmt.Fprintf(w, "Commands:\n")
	fmt.Fprintf(w, "  board     Open the kanban board (default)\n")
	fmt.Fprintf(w, "  ls        List saved tasks\n")
	fmt.Fprintf(w, "  add       Add a task from the command line\n")
	fmt.Fprintf(w, "  version   Print the version\n\n")
	fmt.Fprintf(w, "Flags:\n")
	fs.SetOutput(w)
	fs.PrintDefaults()
}

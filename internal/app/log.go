package app

import (
	"fmt"
	"time"

	"github.com/blackwell-systems/habitwatch/internal/engine"
	"github.com/blackwell-systems/habitwatch/internal/habit"
	"github.com/blackwell-systems/habitwatch/internal/output"
	"github.com/spf13/cobra"
)

var (
	logDate  string
	logClear bool
)

var logCmd = &cobra.Command{
	Use:   "log <habit> [completed|partial|skipped]",
	Short: "Mark a habit for today (or another date)",
	Long: `Record a check-in for a habit. The status defaults to completed.

Examples:
  habitwatch log meditation
  habitwatch log gym partial
  habitwatch log gym skipped --date 2026-08-20
  habitwatch log gym --clear --date 2026-08-20`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runLog,
}

func init() {
	logCmd.Flags().StringVar(&logDate, "date", "", "Date to mark (YYYY-MM-DD, default today)")
	logCmd.Flags().BoolVar(&logClear, "clear", false, "Remove the mark for the date instead of setting one")
	rootCmd.AddCommand(logCmd)
}

// parseStatus maps a command argument to a check-in status.
func parseStatus(s string) (habit.Status, error) {
	switch s {
	case "", "completed", "done":
		return habit.StatusCompleted, nil
	case "partial", "half":
		return habit.StatusPartial, nil
	case "skipped", "skip":
		return habit.StatusSkipped, nil
	default:
		return "", fmt.Errorf("unknown status %q (want completed, partial, or skipped)", s)
	}
}

func runLog(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	now := time.Now()
	day := now
	if logDate != "" {
		day, err = habit.ParseDateKey(logDate)
		if err != nil {
			return fmt.Errorf("invalid date %q: %w", logDate, err)
		}
		if day.After(habit.Midnight(now)) {
			return fmt.Errorf("cannot mark a future date (%s)", logDate)
		}
	}

	var status habit.Status
	if !logClear {
		arg := ""
		if len(args) > 1 {
			arg = args[1]
		}
		status, err = parseStatus(arg)
		if err != nil {
			return err
		}
	}

	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	h, err := findHabit(db, args[0], now)
	if err != nil {
		return err
	}

	if logClear {
		h.ClearStatus(day)
	} else {
		h.SetStatus(day, status)
	}

	// The cached streak must never go stale: recompute before every save.
	h.Streak = engine.Streak(h, now)
	if err := db.SaveHabit(h); err != nil {
		return fmt.Errorf("saving habit: %w", err)
	}

	if flagJSON {
		return printJSON(map[string]any{
			"id":     h.ID,
			"title":  h.Title,
			"date":   habit.DateKey(day),
			"status": string(status),
			"streak": h.Streak,
		})
	}

	if logClear {
		fmt.Printf("Cleared %s on %s\n", h.Title, habit.DateKey(day))
	} else {
		fmt.Printf("%s %s %s on %s  %s\n",
			statusGlyph(status), h.Title, status, habit.DateKey(day), output.Streak(h.Streak))
	}
	return nil
}

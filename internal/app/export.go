package app

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/blackwell-systems/habitwatch/internal/engine"
	"github.com/blackwell-systems/habitwatch/internal/habit"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var exportDir string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export habits and history to JSON and CSV",
	Long: `Write two files into the export directory: habits.json with the full
habit definitions and histories, and history.csv with one row per
check-in for spreadsheet analysis.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportDir, "dir", ".", "Directory to write export files into")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	now := time.Now()
	habits, err := db.LoadHabits(now)
	if err != nil {
		return fmt.Errorf("loading habits: %w", err)
	}

	if err := os.MkdirAll(exportDir, 0o755); err != nil {
		return fmt.Errorf("creating export dir: %w", err)
	}

	jsonPath := filepath.Join(exportDir, "habits.json")
	csvPath := filepath.Join(exportDir, "history.csv")

	g, ctx := errgroup.WithContext(cmd.Context())
	g.Go(func() error { return exportJSON(ctx, jsonPath, habits, now) })
	g.Go(func() error { return exportCSV(ctx, csvPath, habits) })
	if err := g.Wait(); err != nil {
		return err
	}

	fmt.Printf("Exported %d habit(s) to %s and %s\n", len(habits), jsonPath, csvPath)
	return nil
}

// exportJSON writes the full habit definitions, current streaks included.
func exportJSON(ctx context.Context, path string, habits []*habit.Habit, now time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	engine.Recompute(habits, now)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(map[string]any{
		"exported_at": now.Format(time.RFC3339),
		"habits":      habits,
	}); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

// exportCSV writes one row per check-in, sorted by habit and date.
func exportCSV(ctx context.Context, path string, habits []*habit.Habit) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"habit_id", "title", "category", "date", "status"}); err != nil {
		return err
	}
	for _, h := range habits {
		for _, key := range habit.SortedKeys(h.History) {
			row := []string{h.ID, h.Title, h.Category, key, string(h.History[key])}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

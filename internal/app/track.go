package app

import (
	"fmt"
	"time"

	"github.com/blackwell-systems/habitwatch/internal/engine"
	"github.com/blackwell-systems/habitwatch/internal/habit"
	"github.com/blackwell-systems/habitwatch/internal/output"
	"github.com/blackwell-systems/habitwatch/internal/store"
	"github.com/spf13/cobra"
)

var trackCompare int

var trackCmd = &cobra.Command{
	Use:   "track",
	Short: "Snapshot adherence metrics and compare over time",
	Long: `Compute the current adherence metrics, store them as a snapshot, and
compare against the most recent previous snapshot to show deltas with
trend arrows.`,
	RunE: runTrack,
}

func init() {
	trackCmd.Flags().IntVar(&trackCompare, "compare", 1, "Compare against Nth previous snapshot (1 = most recent)")
	rootCmd.AddCommand(trackCmd)
}

// metricDirection maps metric names to whether higher values are better.
// Everything tracked here improves upward.
var metricDirection = map[string]bool{
	"overall_rate":      true,
	"perfect_streak":    true,
	"habit_count":       true,
	"due_today":         true,
	"done_today":        true,
	"total_completions": true,
	"best_streak":       true,
}

// metricDisplayOrder defines the order metrics appear in output.
var metricDisplayOrder = []string{
	"overall_rate",
	"perfect_streak",
	"best_streak",
	"total_completions",
	"habit_count",
	"due_today",
	"done_today",
}

// metricShortName returns a compact label for display.
func metricShortName(name string) string {
	short := map[string]string{
		"overall_rate":      "Overall Rate %",
		"perfect_streak":    "Perfect Days",
		"best_streak":       "Best Streak",
		"total_completions": "Completions",
		"habit_count":       "Habits",
		"due_today":         "Due Today",
		"done_today":        "Done Today",
	}
	if s, ok := short[name]; ok {
		return s
	}
	return name
}

// collectMetrics computes the collection-level metric map for a snapshot.
func collectMetrics(habits []*habit.Habit, rateDays int, now time.Time) map[string]float64 {
	window := habit.LastNDays(rateDays, now)

	due, done, completions, best := 0, 0, 0, 0
	for _, h := range habits {
		completions += h.CompletedCount()
		if s := engine.Streak(h, now); s > best {
			best = s
		}
		if habit.IsDue(h, now) {
			due++
			if _, ok := h.StatusOn(now); ok {
				done++
			}
		}
	}

	return map[string]float64{
		"overall_rate":      float64(engine.CompletionRate(habits, window)),
		"perfect_streak":    float64(engine.PerfectDayStreak(habits, now)),
		"best_streak":       float64(best),
		"total_completions": float64(completions),
		"habit_count":       float64(len(habits)),
		"due_today":         float64(due),
		"done_today":        float64(done),
	}
}

func runTrack(cmd *cobra.Command, args []string) error {
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

	// The previous snapshot must be resolved before the new one is inserted.
	prev, err := db.GetSnapshotN(trackCompare)
	if err != nil {
		return fmt.Errorf("loading previous snapshot: %w", err)
	}

	snapshotID, err := db.CreateSnapshot("track", appVersion)
	if err != nil {
		return fmt.Errorf("creating snapshot: %w", err)
	}

	metrics := collectMetrics(habits, cfg.Stats.RateDays, now)
	for name, value := range metrics {
		if err := db.InsertHabitMetric(snapshotID, "", name, value); err != nil {
			return fmt.Errorf("inserting metric %s: %w", name, err)
		}
	}

	// Per-habit metrics for later inspection.
	window := habit.LastNDays(cfg.Stats.RateDays, now)
	for _, h := range habits {
		if err := db.InsertHabitMetric(snapshotID, h.ID, "rate", float64(engine.HabitRate(h, window))); err != nil {
			return fmt.Errorf("inserting habit metric: %w", err)
		}
		if err := db.InsertHabitMetric(snapshotID, h.ID, "streak", float64(engine.Streak(h, now))); err != nil {
			return fmt.Errorf("inserting habit metric: %w", err)
		}
	}

	var prevMetrics map[string]float64
	if prev != nil {
		rows, err := db.GetHabitMetrics(prev.ID)
		if err != nil {
			return fmt.Errorf("loading previous metrics: %w", err)
		}
		prevMetrics = make(map[string]float64)
		for _, m := range rows {
			if m.HabitID == "" {
				prevMetrics[m.MetricName] = m.MetricValue
			}
		}
	}

	if flagJSON {
		result := map[string]any{
			"snapshot_id": snapshotID,
			"taken_at":    now.Format(time.RFC3339),
			"metrics":     metrics,
		}
		if prev != nil {
			result["previous"] = map[string]any{
				"snapshot_id": prev.ID,
				"taken_at":    prev.TakenAt.Format(time.RFC3339),
				"metrics":     prevMetrics,
			}
		}
		return printJSON(result)
	}

	renderTrackOutput(snapshotID, now, prev, metrics, prevMetrics)
	return nil
}

func renderTrackOutput(snapshotID int64, now time.Time, prev *store.Snapshot, curr, prevMetrics map[string]float64) {
	fmt.Println(output.Section("Track: Snapshot Comparison"))
	fmt.Println()
	fmt.Printf(" Snapshot #%d taken at %s\n\n", snapshotID, now.Format("2006-01-02 15:04:05"))

	if prev == nil {
		fmt.Println(" First snapshot recorded. Run 'habitwatch track' again later to see trends.")
		return
	}

	fmt.Printf(" Comparing against snapshot #%d (%s)\n\n",
		prev.ID, prev.TakenAt.Local().Format("2006-01-02 15:04:05"))

	tbl := output.NewTable("Metric", "Previous", "Current", "Delta", "Trend")
	for _, name := range metricDisplayOrder {
		currVal := curr[name]
		prevVal := prevMetrics[name]
		delta := currVal - prevVal

		higherIsBetter, known := metricDirection[name]
		if !known {
			higherIsBetter = true
		}

		tbl.AddRow(
			metricShortName(name),
			fmt.Sprintf("%.0f", prevVal),
			fmt.Sprintf("%.0f", currVal),
			fmt.Sprintf("%+.0f", delta),
			output.TrendArrow(delta, higherIsBetter),
		)
	}
	tbl.Print()
}

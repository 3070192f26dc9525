// Package app contains the Cobra command tree for habitwatch.
package app

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/blackwell-systems/habitwatch/internal/config"
	"github.com/blackwell-systems/habitwatch/internal/engine"
	"github.com/blackwell-systems/habitwatch/internal/habit"
	"github.com/blackwell-systems/habitwatch/internal/output"
	"github.com/blackwell-systems/habitwatch/internal/store"
	"github.com/blackwell-systems/habitwatch/internal/theme"
	"github.com/spf13/cobra"
)

var appVersion = "dev"

// SetVersion sets the application version (called from main with ldflags value).
func SetVersion(v string) {
	appVersion = v
	rootCmd.Version = v
}

var (
	flagNoColor bool
	flagJSON    bool
	flagVerbose bool
	flagConfig  string
	flagTheme   string
)

var rootCmd = &cobra.Command{
	Use:   "habitwatch",
	Short: "Habit tracking and adherence metrics in your terminal",
	Long: `habitwatch tracks daily, weekly, and custom-schedule habits, computing
streaks, completion rates, and adherence trends from your check-in history.

Run 'habitwatch' with no arguments to see today's dashboard.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runDashboard,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/habitwatch/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose output")
	rootCmd.Flags().StringVar(&flagTheme, "theme", "garden", "Progression theme for the dashboard (garden, mountain, ocean)")
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// loadConfig loads configuration and applies the output color mode.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	output.AutoColor(cfg.Output.Color && !flagNoColor)
	return cfg, nil
}

// findHabit resolves a habit reference (ID or title prefix) to a habit,
// erroring when nothing matches.
func findHabit(db *store.DB, ref string, now time.Time) (*habit.Habit, error) {
	h, err := db.GetHabit(ref, now)
	if err != nil {
		return nil, err
	}
	if h == nil {
		return nil, fmt.Errorf("no habit matches %q (try 'habitwatch list')", ref)
	}
	return h, nil
}

// openStore opens the database, seeding starter habits on first run.
func openStore(cfg *config.Config) (*store.DB, error) {
	db, err := store.Open(cfg.DBPath())
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if cfg.Seed {
		if err := db.EnsureSeed(time.Now()); err != nil {
			db.Close()
			return nil, fmt.Errorf("seeding database: %w", err)
		}
	}
	return db, nil
}

func runDashboard(cmd *cobra.Command, args []string) error {
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

	if flagJSON {
		return printJSON(dashboardJSON(habits, now))
	}

	renderDashboard(habits, now)
	return nil
}

// dashboardJSON builds the machine-readable dashboard payload.
func dashboardJSON(habits []*habit.Habit, now time.Time) map[string]any {
	due := 0
	done := 0
	type entry struct {
		ID       string `json:"id"`
		Title    string `json:"title"`
		Category string `json:"category"`
		Due      bool   `json:"due"`
		Status   string `json:"status,omitempty"`
		Streak   int    `json:"streak"`
	}
	entries := make([]entry, 0, len(habits))
	for _, h := range habits {
		e := entry{
			ID:       h.ID,
			Title:    h.Title,
			Category: h.Category,
			Due:      habit.IsDue(h, now),
			Streak:   engine.Streak(h, now),
		}
		if s, ok := h.StatusOn(now); ok {
			e.Status = string(s)
		}
		if e.Due {
			due++
			if e.Status != "" {
				done++
			}
		}
		entries = append(entries, e)
	}
	return map[string]any{
		"date":           habit.DateKey(now),
		"due":            due,
		"done":           done,
		"perfect_streak": engine.PerfectDayStreak(habits, now),
		"habits":         entries,
	}
}

func renderDashboard(habits []*habit.Habit, now time.Time) {
	fmt.Println(output.Section(fmt.Sprintf("Today: %s", now.Format("Monday, Jan 2"))))
	fmt.Println()

	if len(habits) == 0 {
		fmt.Println(" No habits yet. Add one with 'habitwatch add'.")
		return
	}

	tbl := output.NewTable("", "Habit", "Category", "Streak")
	due, done := 0, 0
	for _, h := range habits {
		if !habit.IsDue(h, now) {
			continue
		}
		due++
		mark := output.StyleMuted.Render("○")
		if s, ok := h.StatusOn(now); ok {
			done++
			mark = statusGlyph(s)
		}
		tbl.AddRow(mark, h.Title, output.StyleMuted.Render(h.Category), output.Streak(engine.Streak(h, now)))
	}
	tbl.Print()

	fmt.Println()
	if due > 0 {
		pct := float64(done) / float64(due) * 100
		fmt.Printf(" %s %s\n", output.ScoreBar(pct, 20), output.StyleMuted.Render(fmt.Sprintf("%d of %d due habits marked", done, due)))
	} else {
		fmt.Println(output.StyleMuted.Render(" Nothing due today."))
	}

	skin, ok := theme.ByID(flagTheme)
	if !ok {
		skin = theme.Garden
	}
	perfect := engine.PerfectDayStreak(habits, now)
	if stage := skin.StageFor(perfect); stage != nil {
		line := fmt.Sprintf(" Perfect days: %d (%s: %s)", perfect, skin.Name, stage.Name)
		if next := skin.Next(perfect); next != nil {
			line += output.StyleMuted.Render(fmt.Sprintf("  next: %s at %d", next.Name, next.MinDays))
		}
		fmt.Println(line)
	}
}

// statusGlyph renders a check-in status as a colored marker.
func statusGlyph(s habit.Status) string {
	switch s {
	case habit.StatusCompleted:
		return output.StyleSuccess.Render("●")
	case habit.StatusPartial:
		return output.StyleWarning.Render("◐")
	case habit.StatusSkipped:
		return output.StyleMuted.Render("–")
	default:
		return " "
	}
}

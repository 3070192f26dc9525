package app

import (
	"fmt"
	"strconv"
	"time"

	"github.com/blackwell-systems/habitwatch/internal/engine"
	"github.com/blackwell-systems/habitwatch/internal/habit"
	"github.com/blackwell-systems/habitwatch/internal/output"
	"github.com/spf13/cobra"
)

var statsDays int

var statsCmd = &cobra.Command{
	Use:   "stats [habit]",
	Short: "Show completion rates, momentum, and weekday patterns",
	Long: `Show adherence statistics. Without arguments, summarizes every habit.
With a habit ID or title prefix, shows a detailed breakdown including
per-weekday completion rates over the last four weeks.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStats,
}

func init() {
	statsCmd.Flags().IntVar(&statsDays, "days", 0, "Completion-rate window in days (default from config)")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	days := cfg.Stats.RateDays
	if statsDays > 0 {
		days = statsDays
	}

	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	now := time.Now()

	if len(args) == 1 {
		h, err := findHabit(db, args[0], now)
		if err != nil {
			return err
		}
		return statsForHabit(h, days, now)
	}

	habits, err := db.LoadHabits(now)
	if err != nil {
		return fmt.Errorf("loading habits: %w", err)
	}
	return statsForAll(habits, days, now)
}

func statsForAll(habits []*habit.Habit, days int, now time.Time) error {
	window := habit.LastNDays(days, now)
	overall := engine.CompletionRate(habits, window)
	perfect := engine.PerfectDayStreak(habits, now)

	if flagJSON {
		type row struct {
			ID       string `json:"id"`
			Title    string `json:"title"`
			Rate     int    `json:"rate"`
			Streak   int    `json:"streak"`
			Momentum int    `json:"momentum"`
		}
		rows := make([]row, 0, len(habits))
		for _, h := range habits {
			rows = append(rows, row{
				ID:       h.ID,
				Title:    h.Title,
				Rate:     engine.HabitRate(h, window),
				Streak:   engine.Streak(h, now),
				Momentum: engine.Momentum(h, now),
			})
		}
		return printJSON(map[string]any{
			"window_days":    days,
			"overall_rate":   overall,
			"perfect_streak": perfect,
			"habits":         rows,
		})
	}

	fmt.Println(output.Section(fmt.Sprintf("Stats: last %d days", days)))
	fmt.Println()

	if len(habits) == 0 {
		fmt.Println(" No habits yet.")
		return nil
	}

	fmt.Printf(" Overall  %s\n", output.ScoreBar(float64(overall), 20))
	fmt.Printf(" Perfect days in a row: %d\n\n", perfect)

	tbl := output.NewTable("Habit", "Rate", "Streak", "Momentum")
	for _, h := range habits {
		tbl.AddRow(
			h.Title,
			fmt.Sprintf("%d%%", engine.HabitRate(h, window)),
			output.Streak(engine.Streak(h, now)),
			output.TrendArrowPercent(float64(engine.Momentum(h, now)), true),
		)
	}
	tbl.Print()
	return nil
}

func statsForHabit(h *habit.Habit, days int, now time.Time) error {
	window := habit.LastNDays(days, now)
	rate := engine.HabitRate(h, window)
	streak := engine.Streak(h, now)
	momentum := engine.Momentum(h, now)
	weekdays := engine.AnalyzeWeekdays(h, now)

	if flagJSON {
		return printJSON(map[string]any{
			"id":          h.ID,
			"title":       h.Title,
			"window_days": days,
			"rate":        rate,
			"streak":      streak,
			"momentum":    momentum,
			"weekdays":    weekdays,
		})
	}

	fmt.Println(output.Section(h.Title))
	fmt.Println()
	fmt.Printf(" %s%s\n", output.StyleLabel.Render("Schedule"), describeFrequency(h.Frequency))
	fmt.Printf(" %s%s\n", output.StyleLabel.Render(fmt.Sprintf("Rate (%dd)", days)), output.ScoreBar(float64(rate), 20))
	fmt.Printf(" %s%s\n", output.StyleLabel.Render("Streak"), output.Streak(streak))
	fmt.Printf(" %s%s\n", output.StyleLabel.Render("Momentum"), output.TrendArrowPercent(float64(momentum), true))
	fmt.Printf(" %s%d\n", output.StyleLabel.Render("Total completions"), h.CompletedCount())
	fmt.Println()

	fmt.Println(output.StyleBold.Render(" By weekday (last 4 weeks)"))
	tbl := output.NewTable("Day", "Done", "Rate", "")
	for _, b := range weekdays.Buckets {
		note := ""
		if b.Weekday == weekdays.BestDay {
			note = output.StyleSuccess.Render("best")
		} else if b.Weekday == weekdays.DangerDay {
			note = output.StyleError.Render("danger")
		}
		tbl.AddRow(
			b.Weekday.String()[:3],
			fmt.Sprintf("%d/%d", b.Completed, b.Total),
			strconv.Itoa(b.Rate)+"%",
			note,
		)
	}
	tbl.Print()
	return nil
}

package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/blackwell-systems/habitwatch/internal/engine"
	"github.com/blackwell-systems/habitwatch/internal/habit"
	"github.com/blackwell-systems/habitwatch/internal/output"
	"github.com/spf13/cobra"
)

var heatmapCmd = &cobra.Command{
	Use:   "heatmap",
	Short: "Render a year-at-a-glance completion heatmap",
	Long: `Render a calendar heatmap of this year's daily completion intensity,
one row per weekday. Intensity averages all habits active on a day.`,
	RunE: runHeatmap,
}

func init() {
	rootCmd.AddCommand(heatmapCmd)
}

func runHeatmap(cmd *cobra.Command, args []string) error {
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

	cells := engine.YearHeatmap(habits, now)

	if flagJSON {
		return printJSON(map[string]any{
			"year":  now.Year(),
			"cells": cells,
		})
	}

	renderHeatmap(habits, cells, now)
	return nil
}

// anyActive reports whether any habit existed on the given day.
func anyActive(habits []*habit.Habit, day time.Time) bool {
	for _, h := range habits {
		if !h.CreatedOn().After(day) {
			return true
		}
	}
	return false
}

func renderHeatmap(habits []*habit.Habit, cells []engine.DayIntensity, now time.Time) {
	fmt.Println(output.Section(fmt.Sprintf("Heatmap %d", now.Year())))
	fmt.Println()

	start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.Local)
	today := habit.Midnight(now)

	// Column index of a day: weeks since the Sunday on or before Jan 1.
	lead := int(start.Weekday())
	columns := (lead + len(cells) + 6) / 7

	// grid[weekday][column]
	grid := make([][]string, 7)
	for wd := range grid {
		grid[wd] = make([]string, columns)
		for c := range grid[wd] {
			grid[wd][c] = "  "
		}
	}

	for i, cell := range cells {
		day := start.AddDate(0, 0, i)
		col := (lead + i) / 7
		active := anyActive(habits, day) && !day.After(today)
		grid[int(day.Weekday())][col] = output.HeatCell(cell.Intensity, active)
	}

	// Month labels across the top.
	labels := make([]string, columns)
	for m := time.January; m <= time.December; m++ {
		first := time.Date(now.Year(), m, 1, 0, 0, 0, 0, time.Local)
		col := (lead + first.YearDay() - 1) / 7
		if col < columns {
			labels[col] = first.Format("Jan")
		}
	}
	var header strings.Builder
	header.WriteString("     ")
	for c := 0; c < columns; c++ {
		if labels[c] != "" {
			header.WriteString(labels[c][:2])
		} else {
			header.WriteString("  ")
		}
	}
	fmt.Println(output.StyleMuted.Render(header.String()))

	dayLabels := []string{"", "Mon", "", "Wed", "", "Fri", ""}
	for wd := 0; wd < 7; wd++ {
		fmt.Printf(" %s %s\n", output.StyleMuted.Render(fmt.Sprintf("%-3s", dayLabels[wd])), strings.Join(grid[wd], ""))
	}

	fmt.Println()
	fmt.Printf(" %s %s%s%s%s%s %s\n",
		output.StyleMuted.Render("less"),
		output.HeatCell(0, true), output.HeatCell(0.25, true), output.HeatCell(0.5, true),
		output.HeatCell(0.75, true), output.HeatCell(1, true),
		output.StyleMuted.Render("more"))
}

package app

import (
	"fmt"
	"time"

	"github.com/blackwell-systems/habitwatch/internal/engine"
	"github.com/blackwell-systems/habitwatch/internal/output"
	"github.com/spf13/cobra"
)

var monthCmd = &cobra.Command{
	Use:   "month [YYYY-MM]",
	Short: "Show week-by-week adherence for a calendar month",
	Long: `Break a month into Sunday-aligned week rows and show each week's
completions against its due opportunities. Defaults to the current month.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMonth,
}

func init() {
	rootCmd.AddCommand(monthCmd)
}

func runMonth(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	now := time.Now()
	year, month := now.Year(), now.Month()
	if len(args) == 1 {
		t, err := time.ParseInLocation("2006-01", args[0], time.Local)
		if err != nil {
			return fmt.Errorf("invalid month %q (want YYYY-MM): %w", args[0], err)
		}
		year, month = t.Year(), t.Month()
	}

	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	habits, err := db.LoadHabits(now)
	if err != nil {
		return fmt.Errorf("loading habits: %w", err)
	}

	rows := engine.MonthWeeks(habits, year, month, now)

	if flagJSON {
		return printJSON(map[string]any{
			"year":  year,
			"month": int(month),
			"weeks": rows,
		})
	}

	fmt.Println(output.Section(fmt.Sprintf("%s %d", month, year)))
	fmt.Println()

	tbl := output.NewTable("Week of", "Done", "Partial", "Rate", "")
	for _, r := range rows {
		bar := ""
		if r.HasPassed {
			bar = output.ScoreBar(float64(r.Rate), 10)
		} else {
			bar = output.StyleMuted.Render("upcoming")
		}
		tbl.AddRow(
			r.Start.Format("Jan 02"),
			fmt.Sprintf("%d/%d", r.Completed, r.Opportunities),
			fmt.Sprintf("%d", r.Partial),
			fmt.Sprintf("%d%%", r.Rate),
			bar,
		)
	}
	tbl.Print()
	return nil
}

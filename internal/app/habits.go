package app

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/blackwell-systems/habitwatch/internal/engine"
	"github.com/blackwell-systems/habitwatch/internal/habit"
	"github.com/blackwell-systems/habitwatch/internal/output"
	"github.com/blackwell-systems/habitwatch/internal/store"
	"github.com/spf13/cobra"
)

var (
	addCategory string
	addFreq     string
	addDays     string
	addTarget   int

	removeYes bool
)

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a new habit",
	Long: `Add a habit to track. The schedule defaults to daily.

Examples:
  habitwatch add "Morning Meditation"
  habitwatch add "Gym" --freq custom --days mon,wed,fri
  habitwatch add "Deep Work" --freq weekly --target 3`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all habits with their schedules and streaks",
	RunE:  runList,
}

var removeCmd = &cobra.Command{
	Use:   "remove <habit>",
	Short: "Remove a habit and its history",
	Long:  `Remove a habit by ID or title prefix. The check-in history is deleted with it.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runRemove,
}

func init() {
	addCmd.Flags().StringVar(&addCategory, "category", "General", "Category label for grouping")
	addCmd.Flags().StringVar(&addFreq, "freq", "daily", "Schedule: daily, weekly, or custom")
	addCmd.Flags().StringVar(&addDays, "days", "", "Due weekdays for custom schedules (e.g. mon,wed,fri or 1,3,5)")
	addCmd.Flags().IntVar(&addTarget, "target", 1, "Completions per week for weekly schedules")
	removeCmd.Flags().BoolVar(&removeYes, "yes", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(removeCmd)
}

// weekdayNames maps day-name prefixes to time.Weekday values.
var weekdayNames = map[string]int{
	"sun": 0, "mon": 1, "tue": 2, "wed": 3, "thu": 4, "fri": 5, "sat": 6,
}

// parseDays parses a comma-separated weekday list. Accepts numeric values
// (0 = Sunday) and English day-name prefixes.
func parseDays(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("custom schedules need --days")
	}

	seen := make(map[int]bool)
	var days []int
	for _, part := range strings.Split(s, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		d, err := strconv.Atoi(part)
		if err != nil {
			name := part
			if len(name) > 3 {
				name = name[:3]
			}
			var ok bool
			d, ok = weekdayNames[name]
			if !ok {
				return nil, fmt.Errorf("unknown weekday %q", part)
			}
		}
		if d < 0 || d > 6 {
			return nil, fmt.Errorf("weekday %d out of range (0 = Sunday .. 6 = Saturday)", d)
		}
		if !seen[d] {
			seen[d] = true
			days = append(days, d)
		}
	}
	if len(days) == 0 {
		return nil, fmt.Errorf("custom schedules need at least one weekday")
	}
	sort.Ints(days)
	return days, nil
}

// parseFrequency builds a Frequency from the add command's flags.
func parseFrequency(freq, days string, target int) (habit.Frequency, error) {
	switch freq {
	case "daily":
		return habit.Frequency{Type: habit.FrequencyDaily}, nil
	case "weekly":
		if target < 1 {
			return habit.Frequency{}, fmt.Errorf("weekly target must be at least 1, got %d", target)
		}
		return habit.Frequency{Type: habit.FrequencyWeekly, RepeatTarget: target}, nil
	case "custom":
		parsed, err := parseDays(days)
		if err != nil {
			return habit.Frequency{}, err
		}
		return habit.Frequency{Type: habit.FrequencyCustom, Days: parsed}, nil
	default:
		return habit.Frequency{}, fmt.Errorf("unknown frequency %q (want daily, weekly, or custom)", freq)
	}
}

func runAdd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	freq, err := parseFrequency(addFreq, addDays, addTarget)
	if err != nil {
		return err
	}

	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	h := habit.New(args[0], addCategory, freq, time.Now())
	if err := db.SaveHabit(h); err != nil {
		return fmt.Errorf("saving habit: %w", err)
	}
	if _, err := db.BumpCounter(store.CounterHabitsCreated, 1); err != nil {
		return fmt.Errorf("updating counters: %w", err)
	}

	if flagJSON {
		return printJSON(h)
	}
	fmt.Printf("Added %s (%s)\n", output.StyleBold.Render(h.Title), describeFrequency(h.Frequency))
	return nil
}

// describeFrequency renders a schedule in human terms.
func describeFrequency(f habit.Frequency) string {
	switch f.Type {
	case habit.FrequencyDaily:
		return "daily"
	case habit.FrequencyWeekly:
		return fmt.Sprintf("%dx per week", f.RepeatTarget)
	case habit.FrequencyCustom:
		names := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
		var parts []string
		for _, d := range f.Days {
			if d >= 0 && d < len(names) {
				parts = append(parts, names[d])
			}
		}
		return strings.Join(parts, "/")
	default:
		return string(f.Type)
	}
}

func runList(cmd *cobra.Command, args []string) error {
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
		return printJSON(habits)
	}

	if len(habits) == 0 {
		fmt.Println("No habits yet. Add one with 'habitwatch add'.")
		return nil
	}

	tbl := output.NewTable("Habit", "Category", "Schedule", "Streak", "Completions", "Since")
	for _, h := range habits {
		tbl.AddRow(
			h.Title,
			h.Category,
			describeFrequency(h.Frequency),
			output.Streak(engine.Streak(h, now)),
			strconv.Itoa(h.CompletedCount()),
			h.CreatedOn().Format("2006-01-02"),
		)
	}
	tbl.Print()
	return nil
}

func runRemove(cmd *cobra.Command, args []string) error {
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
	h, err := findHabit(db, args[0], now)
	if err != nil {
		return err
	}

	if !removeYes {
		fmt.Printf("Remove %s and its %d history entries? [y/N] ", h.Title, len(h.History))
		var answer string
		fmt.Scanln(&answer)
		if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := db.DeleteHabit(h.ID); err != nil {
		return fmt.Errorf("removing habit: %w", err)
	}
	fmt.Printf("Removed %s\n", h.Title)
	return nil
}

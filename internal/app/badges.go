package app

import (
	"fmt"
	"time"

	"github.com/blackwell-systems/habitwatch/internal/badge"
	"github.com/blackwell-systems/habitwatch/internal/output"
	"github.com/blackwell-systems/habitwatch/internal/store"
	"github.com/spf13/cobra"
)

var badgesCmd = &cobra.Command{
	Use:   "badges",
	Short: "Show achievement badges and progress",
	Long: `Evaluate every badge against the current habit data. Unlocks are
persisted, so a badge once earned stays earned even if the data that
unlocked it later changes.`,
	RunE: runBadges,
}

func init() {
	rootCmd.AddCommand(badgesCmd)
}

func runBadges(cmd *cobra.Command, args []string) error {
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

	totalCreated, err := db.GetCounter(store.CounterHabitsCreated)
	if err != nil {
		return fmt.Errorf("reading counters: %w", err)
	}

	unlocks, err := db.GetBadgeUnlocks()
	if err != nil {
		return fmt.Errorf("loading unlocks: %w", err)
	}
	already := make(map[string]bool, len(unlocks))
	for id := range unlocks {
		already[id] = true
	}

	progress := badge.Evaluate(habits, totalCreated, now)
	fresh := badge.NewlyUnlocked(progress, already)
	for _, p := range fresh {
		if err := db.RecordBadgeUnlock(p.Badge.ID, now, p.Progress); err != nil {
			return fmt.Errorf("recording unlock: %w", err)
		}
	}

	if flagJSON {
		return printJSON(map[string]any{
			"badges":         progress,
			"newly_unlocked": fresh,
		})
	}

	for _, p := range fresh {
		fmt.Printf("%s Unlocked: %s! %s\n", p.Badge.Icon, output.StyleBold.Render(p.Badge.Name), p.Badge.Description)
	}
	if len(fresh) > 0 {
		fmt.Println()
	}

	fmt.Println(output.Section("Badges"))
	fmt.Println()

	tbl := output.NewTable("", "Badge", "Progress", "")
	for _, p := range progress {
		status := output.StyleMuted.Render(fmt.Sprintf("%d/%d", p.Progress, p.Badge.Requirement))
		note := ""
		if p.Unlocked || already[p.Badge.ID] {
			note = output.StyleSuccess.Render("earned")
			if u, ok := unlocks[p.Badge.ID]; ok {
				note += output.StyleMuted.Render(" " + u.UnlockedAt.Format("2006-01-02"))
			}
		}
		tbl.AddRow(p.Badge.Icon, p.Badge.Name, status, note)
	}
	tbl.Print()
	return nil
}

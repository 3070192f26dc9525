package app

import (
	"fmt"
	"time"

	"github.com/blackwell-systems/habitwatch/internal/output"
	"github.com/blackwell-systems/habitwatch/internal/tips"
	"github.com/spf13/cobra"
)

var tipsCmd = &cobra.Command{
	Use:   "tips",
	Short: "Show coaching tips based on your recent adherence",
	RunE:  runTips,
}

func init() {
	rootCmd.AddCommand(tipsCmd)
}

func runTips(cmd *cobra.Command, args []string) error {
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

	all := tips.Build(habits, now)

	if flagJSON {
		return printJSON(map[string]any{"tips": all})
	}

	fmt.Println(output.Section("Tips"))
	fmt.Println()

	if len(all) == 0 {
		fmt.Println(" Nothing to flag. Keep going.")
		return nil
	}

	for _, tip := range all {
		marker := output.StyleMuted.Render("·")
		switch tip.Priority {
		case tips.PriorityHigh:
			marker = output.StyleError.Render("!")
		case tips.PriorityMedium:
			marker = output.StyleWarning.Render("~")
		}
		fmt.Printf(" %s %s\n   %s\n", marker, output.StyleBold.Render(tip.Title), tip.Message)
	}
	return nil
}

// Package badge evaluates achievement unlocks against the habit collection.
// Badges are pure consumers of the engine: streak badges read the
// perfect-day streak and never reimplement streak logic.
package badge

import (
	"time"

	"github.com/blackwell-systems/habitwatch/internal/engine"
	"github.com/blackwell-systems/habitwatch/internal/habit"
)

// Category groups badges by what they reward.
type Category string

const (
	CategoryStreak     Category = "streak"
	CategoryCollection Category = "collection"
	CategorySpecial    Category = "special"
)

// Badge is a single unlockable achievement.
type Badge struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Icon        string   `json:"icon"`
	Category    Category `json:"category"`

	// Requirement is the threshold value for unlocking.
	Requirement int `json:"requirement"`
}

// All is the full badge roster.
var All = []Badge{
	{ID: "first-steps", Name: "First Steps", Description: "Complete your first habit", Icon: "🔥", Category: CategorySpecial, Requirement: 1},
	{ID: "week-warrior", Name: "Week Warrior", Description: "Achieve a 7-day streak", Icon: "🏃", Category: CategoryStreak, Requirement: 7},
	{ID: "consistency-king", Name: "Consistency King", Description: "Achieve a 30-day streak", Icon: "💪", Category: CategoryStreak, Requirement: 30},
	{ID: "century-club", Name: "Century Club", Description: "Achieve a 100-day streak", Icon: "👑", Category: CategoryStreak, Requirement: 100},
	{ID: "unstoppable", Name: "Unstoppable", Description: "Achieve a 365-day streak", Icon: "🌟", Category: CategoryStreak, Requirement: 365},
	{ID: "getting-started", Name: "Getting Started", Description: "Create your first habit", Icon: "🌱", Category: CategoryCollection, Requirement: 1},
	{ID: "habit-collector", Name: "Habit Collector", Description: "Create 5 different habits", Icon: "📚", Category: CategoryCollection, Requirement: 5},
	{ID: "habit-master", Name: "Habit Master", Description: "Create 10 different habits", Icon: "🏆", Category: CategoryCollection, Requirement: 10},
	{ID: "variety-enthusiast", Name: "Variety Enthusiast", Description: "Have habits in 6 categories", Icon: "🎨", Category: CategorySpecial, Requirement: 6},
	{ID: "century-completions", Name: "Century Completions", Description: "Complete habits 100 times total", Icon: "🎊", Category: CategorySpecial, Requirement: 100},
}

// Progress is a badge's current state for display and persistence.
type Progress struct {
	Badge    Badge `json:"badge"`
	Unlocked bool  `json:"unlocked"`
	Progress int   `json:"progress"`
}

// Evaluate computes the progress value and unlock state for every badge.
// totalCreated is the monotonic count of habits ever created; collection
// badges use it instead of the live habit count so deleting and re-adding
// habits cannot re-earn progress.
func Evaluate(habits []*habit.Habit, totalCreated int, now time.Time) []Progress {
	perfectStreak := engine.PerfectDayStreak(habits, now)

	results := make([]Progress, 0, len(All))
	for _, b := range All {
		p := Progress{Badge: b, Progress: progressFor(b, habits, totalCreated, perfectStreak)}
		p.Unlocked = p.Progress >= b.Requirement
		results = append(results, p)
	}
	return results
}

// NewlyUnlocked filters Evaluate's output down to badges that are unlocked
// now but absent from the already-unlocked set.
func NewlyUnlocked(progress []Progress, already map[string]bool) []Progress {
	var fresh []Progress
	for _, p := range progress {
		if p.Unlocked && !already[p.Badge.ID] {
			fresh = append(fresh, p)
		}
	}
	return fresh
}

func progressFor(b Badge, habits []*habit.Habit, totalCreated, perfectStreak int) int {
	switch b.Category {
	case CategoryStreak:
		return perfectStreak
	case CategoryCollection:
		return totalCreated
	}

	switch b.ID {
	case "first-steps":
		for _, h := range habits {
			if h.CompletedCount() > 0 {
				return 1
			}
		}
		return 0
	case "variety-enthusiast":
		categories := make(map[string]bool)
		for _, h := range habits {
			categories[h.Category] = true
		}
		return len(categories)
	case "century-completions":
		total := 0
		for _, h := range habits {
			total += h.CompletedCount()
		}
		return total
	}
	return 0
}

// Package tips generates rule-based coaching tips from engine metrics. It
// is a pure consumer: every number it reads comes from the engine, and it
// never reimplements streak or rate logic.
package tips

import (
	"fmt"
	"sort"
	"time"

	"github.com/blackwell-systems/habitwatch/internal/engine"
	"github.com/blackwell-systems/habitwatch/internal/habit"
)

// Priority levels for tips.
const (
	PriorityHigh   = 1
	PriorityMedium = 2
	PriorityLow    = 3
)

// Tip is one actionable coaching recommendation.
type Tip struct {
	Category string `json:"category"`
	Priority int    `json:"priority"`
	Title    string `json:"title"`
	Message  string `json:"message"`
}

// Build runs every rule over the habit collection and returns tips ranked
// by priority (high first), stable within a level.
func Build(habits []*habit.Habit, now time.Time) []Tip {
	var tipsOut []Tip
	tipsOut = append(tipsOut, unfinishedToday(habits, now)...)
	tipsOut = append(tipsOut, slowingMomentum(habits, now)...)
	tipsOut = append(tipsOut, dangerDayAhead(habits, now)...)
	tipsOut = append(tipsOut, streakMilestone(habits, now)...)

	sort.SliceStable(tipsOut, func(i, j int) bool {
		return tipsOut[i].Priority < tipsOut[j].Priority
	})
	return tipsOut
}

// unfinishedToday flags habits due today that have no status yet. The grace
// period keeps the streak alive, but only until midnight.
func unfinishedToday(habits []*habit.Habit, now time.Time) []Tip {
	var open []string
	for _, h := range habits {
		if !habit.IsDue(h, now) {
			continue
		}
		if _, ok := h.StatusOn(now); !ok {
			open = append(open, h.Title)
		}
	}
	if len(open) == 0 {
		return nil
	}

	return []Tip{{
		Category: "today",
		Priority: PriorityHigh,
		Title:    fmt.Sprintf("%d habit(s) still open today", len(open)),
		Message:  fmt.Sprintf("Start with %q: an unmarked due day breaks the streak at midnight.", open[0]),
	}}
}

// slowingMomentum flags habits whose 7-day rate dropped versus the prior
// week.
func slowingMomentum(habits []*habit.Habit, now time.Time) []Tip {
	var out []Tip
	for _, h := range habits {
		delta := engine.Momentum(h, now)
		if delta <= -20 {
			out = append(out, Tip{
				Category: "momentum",
				Priority: PriorityMedium,
				Title:    fmt.Sprintf("%s is slowing down", h.Title),
				Message:  fmt.Sprintf("Completion rate fell %d points versus the previous week. Shrink the habit to its smallest version to keep the chain alive.", -delta),
			})
		}
	}
	return out
}

// dangerDayAhead warns when tomorrow is a habit's historically weakest
// weekday.
func dangerDayAhead(habits []*habit.Habit, now time.Time) []Tip {
	tomorrow := habit.Midnight(now).AddDate(0, 0, 1)
	var out []Tip
	for _, h := range habits {
		if !habit.IsDue(h, tomorrow) {
			continue
		}
		stats := engine.AnalyzeWeekdays(h, now)
		danger := stats.Buckets[int(stats.DangerDay)]
		best := stats.Buckets[int(stats.BestDay)]
		if stats.DangerDay == tomorrow.Weekday() && best.Rate > danger.Rate {
			out = append(out, Tip{
				Category: "planning",
				Priority: PriorityMedium,
				Title:    fmt.Sprintf("Tomorrow is a weak day for %s", h.Title),
				Message:  fmt.Sprintf("%ss run at %d%% over the last four weeks. Schedule it right after an existing anchor habit.", tomorrow.Weekday(), danger.Rate),
			})
		}
	}
	return out
}

// streakMilestone celebrates habits approaching a round-number streak.
func streakMilestone(habits []*habit.Habit, now time.Time) []Tip {
	milestones := []int{7, 30, 100, 365}
	var out []Tip
	for _, h := range habits {
		streak := engine.Streak(h, now)
		for _, m := range milestones {
			if streak > 0 && m-streak > 0 && m-streak <= 2 {
				out = append(out, Tip{
					Category: "milestone",
					Priority: PriorityLow,
					Title:    fmt.Sprintf("%s is %d day(s) from a %d-day streak", h.Title, m-streak, m),
					Message:  "Protect the next few days; the milestone is closer than it feels.",
				})
				break
			}
		}
	}
	return out
}

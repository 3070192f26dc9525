// Package engine computes habit adherence metrics: streaks, rolling
// completion rates, weekday and momentum breakdowns, and calendar-aligned
// weekly aggregates. Every function is a pure transformation of
// (habits, now); "now" is always an explicit parameter so results are
// deterministic and testable.
package engine

import (
	"time"

	"github.com/blackwell-systems/habitwatch/internal/habit"
)

const (
	// maxDailyWalk caps the daily streak's backward walk at two years.
	maxDailyWalk = 730

	// maxWeeklyWalk caps the weekly streak's backward walk.
	maxWeeklyWalk = 100

	// perfectWindow is the lookback window for the perfect-day streak.
	perfectWindow = 365
)

// Streak computes the current streak for a single habit, selecting the
// weekly-target or daily/custom algorithm by frequency type.
func Streak(h *habit.Habit, now time.Time) int {
	if h.Frequency.Type == habit.FrequencyWeekly {
		return weeklyStreak(h, now)
	}
	return dailyStreak(h, now)
}

// dailyStreak walks backward day-by-day from today. Non-due days are
// transparent. Completed days count; skipped and partial are neutral. A due
// past day with no status is a hard break. Today with no status is a grace
// period: the day in progress never kills a streak.
func dailyStreak(h *habit.Habit, now time.Time) int {
	today := habit.Midnight(now)
	day := today
	streak := 0

	for i := 0; i < maxDailyWalk; i++ {
		if !habit.IsDue(h, day) {
			day = day.AddDate(0, 0, -1)
			continue
		}

		status, ok := h.StatusOn(day)
		switch {
		case !ok:
			if !day.Equal(today) {
				return streak
			}
			// Grace period: keep checking yesterday.
		case status == habit.StatusCompleted:
			streak++
		case status == habit.StatusSkipped, status == habit.StatusPartial:
			// Neutral: neither counts nor breaks.
		}

		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// weeklyStreak counts consecutive calendar weeks, ending at the current
// week, whose completion count meets the habit's weekly target. The current
// week contributes immediately if it already meets target, rewarding early
// completion of the quota; being below target mid-week does not break the
// chain. The first past week below target ends the walk.
//
// The week containing the habit's creation date uses the full target, not a
// prorated one.
func weeklyStreak(h *habit.Habit, now time.Time) int {
	target := h.Frequency.RepeatTarget
	if target < 1 {
		return 0
	}

	counts := completionsByWeek(h)
	streak := 0

	if counts[habit.WeekKey(now)] >= target {
		streak++
	}

	cursor := habit.Midnight(now).AddDate(0, 0, -7)
	for i := 0; i < maxWeeklyWalk; i++ {
		if counts[habit.WeekKey(cursor)] < target {
			break
		}
		streak++
		cursor = cursor.AddDate(0, 0, -7)
	}
	return streak
}

// completionsByWeek buckets a habit's completed dates by ISO week key.
func completionsByWeek(h *habit.Habit) map[string]int {
	counts := make(map[string]int)
	for key, status := range h.History {
		if status != habit.StatusCompleted {
			continue
		}
		day, err := habit.ParseDateKey(key)
		if err != nil {
			continue
		}
		counts[habit.WeekKey(day)]++
	}
	return counts
}

// PerfectDayStreak returns the best run of consecutive "perfect" days across
// a habit collection within the last 365 days. A day is perfect when no
// habits were due, or when every due habit was completed or skipped.
// Skipped counts as adherence here, unlike the per-habit streak rule.
//
// Frequency types other than daily and custom are treated as due in this
// aggregate.
func PerfectDayStreak(habits []*habit.Habit, now time.Time) int {
	if len(habits) == 0 {
		return 0
	}

	today := habit.Midnight(now)
	maxStreak := 0
	current := 0

	for i := 0; i < perfectWindow; i++ {
		day := today.AddDate(0, 0, -i)
		if perfectDay(habits, day) {
			current++
			if current > maxStreak {
				maxStreak = current
			}
		} else {
			current = 0
		}
	}
	return maxStreak
}

// perfectDay reports whether every habit due on the given day adhered.
func perfectDay(habits []*habit.Habit, day time.Time) bool {
	for _, h := range habits {
		if h.Frequency.Type == habit.FrequencyCustom && !h.Frequency.DueOn(day.Weekday()) {
			continue
		}
		status, ok := h.StatusOn(day)
		if !ok || (status != habit.StatusCompleted && status != habit.StatusSkipped) {
			return false
		}
	}
	return true
}

// Recompute overwrites each habit's cached streak from its current history.
// Any code path that mutates history must call this (or Streak directly)
// before the habit is considered consistent.
func Recompute(habits []*habit.Habit, now time.Time) {
	for _, h := range habits {
		h.Streak = Streak(h, now)
	}
}

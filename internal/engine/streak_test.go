package engine

import (
	"testing"
	"time"

	"github.com/blackwell-systems/habitwatch/internal/habit"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func dailyHabit(created time.Time, history map[string]habit.Status) *habit.Habit {
	return &habit.Habit{
		ID:        "h1",
		Title:     "Test",
		Frequency: habit.Frequency{Type: habit.FrequencyDaily},
		History:   history,
		CreatedAt: created,
	}
}

func TestDailyStreak_SkipNeutral(t *testing.T) {
	// Skip on the 3rd is neutral; all due days accounted for, today completed.
	h := dailyHabit(day(2024, time.January, 1), map[string]habit.Status{
		"2024-01-01": habit.StatusCompleted,
		"2024-01-02": habit.StatusCompleted,
		"2024-01-03": habit.StatusSkipped,
		"2024-01-04": habit.StatusCompleted,
	})

	if got := Streak(h, day(2024, time.January, 4)); got != 3 {
		t.Errorf("streak = %d, want 3", got)
	}
}

func TestDailyStreak_GracePeriodThenBreak(t *testing.T) {
	// Today (01-04) unmarked: grace, keep walking. 01-03 completed. 01-02
	// was due, unmarked, in the past: hard break.
	h := dailyHabit(day(2024, time.January, 1), map[string]habit.Status{
		"2024-01-01": habit.StatusCompleted,
		"2024-01-03": habit.StatusCompleted,
	})

	if got := Streak(h, day(2024, time.January, 4)); got != 1 {
		t.Errorf("streak = %d, want 1", got)
	}
}

func TestDailyStreak_GraceDoesNotZero(t *testing.T) {
	// Yesterday completed, today unmarked: streak must not be zero.
	h := dailyHabit(day(2024, time.January, 1), map[string]habit.Status{
		"2024-01-01": habit.StatusCompleted,
		"2024-01-02": habit.StatusCompleted,
		"2024-01-03": habit.StatusCompleted,
	})

	if got := Streak(h, day(2024, time.January, 4)); got != 3 {
		t.Errorf("streak = %d, want 3", got)
	}
}

func TestDailyStreak_Monotonic(t *testing.T) {
	history := map[string]habit.Status{
		"2024-01-02": habit.StatusCompleted,
		"2024-01-03": habit.StatusCompleted,
	}
	h := dailyHabit(day(2024, time.January, 1), history)
	now := day(2024, time.January, 4)

	before := Streak(h, now)
	h.SetStatus(now, habit.StatusCompleted)
	after := Streak(h, now)

	if after != before+1 {
		t.Errorf("marking today completed: streak went %d -> %d, want +1", before, after)
	}
}

func TestDailyStreak_HardBreakDiscardsOlderRuns(t *testing.T) {
	h := dailyHabit(day(2024, time.January, 1), map[string]habit.Status{
		"2024-01-01": habit.StatusCompleted,
		"2024-01-02": habit.StatusCompleted,
		// 01-03 due, unmarked: break.
		"2024-01-04": habit.StatusCompleted,
		"2024-01-05": habit.StatusCompleted,
	})

	if got := Streak(h, day(2024, time.January, 5)); got != 2 {
		t.Errorf("streak = %d, want 2 (older run beyond the break must not count)", got)
	}
}

func TestDailyStreak_EmptyHistory(t *testing.T) {
	h := dailyHabit(day(2024, time.January, 1), map[string]habit.Status{})
	if got := Streak(h, day(2024, time.March, 1)); got != 0 {
		t.Errorf("streak = %d, want 0", got)
	}
}

func TestCustomStreak_NonDueDaysTransparent(t *testing.T) {
	// Due Mondays only. 2024-03-04, 03-11, 03-18 are Mondays.
	h := &habit.Habit{
		Frequency: habit.Frequency{Type: habit.FrequencyCustom, Days: []int{1}},
		History: map[string]habit.Status{
			"2024-03-04": habit.StatusCompleted,
			"2024-03-11": habit.StatusCompleted,
			"2024-03-18": habit.StatusCompleted,
		},
		CreatedAt: day(2024, time.March, 1),
	}

	// Saturday 03-23: the Tue-Sat gap has no entries but none were due.
	if got := Streak(h, day(2024, time.March, 23)); got != 3 {
		t.Errorf("streak = %d, want 3 (non-due days must be transparent)", got)
	}
}

func TestCustomStreak_MissedDueDayBreaks(t *testing.T) {
	h := &habit.Habit{
		Frequency: habit.Frequency{Type: habit.FrequencyCustom, Days: []int{1}},
		History: map[string]habit.Status{
			"2024-03-04": habit.StatusCompleted,
			// Monday 03-11 missed.
			"2024-03-18": habit.StatusCompleted,
		},
		CreatedAt: day(2024, time.March, 1),
	}

	if got := Streak(h, day(2024, time.March, 23)); got != 1 {
		t.Errorf("streak = %d, want 1", got)
	}
}

func weeklyHabit(target int, history map[string]habit.Status) *habit.Habit {
	return &habit.Habit{
		Frequency: habit.Frequency{Type: habit.FrequencyWeekly, RepeatTarget: target},
		History:   history,
		CreatedAt: day(2024, time.January, 1),
	}
}

func TestWeeklyStreak_EarlyCredit(t *testing.T) {
	// Current week (Mon 03-18 .. Sun 03-24) already has 3 completions on
	// Wednesday; the week is not over but the quota is met.
	h := weeklyHabit(3, map[string]habit.Status{
		"2024-03-18": habit.StatusCompleted,
		"2024-03-19": habit.StatusCompleted,
		"2024-03-20": habit.StatusCompleted,
	})

	if got := Streak(h, day(2024, time.March, 20)); got < 1 {
		t.Errorf("streak = %d, want >= 1 (early completion of the weekly quota)", got)
	}
}

func TestWeeklyStreak_ConsecutiveWeeks(t *testing.T) {
	h := weeklyHabit(2, map[string]habit.Status{
		// Week of 03-04.
		"2024-03-04": habit.StatusCompleted,
		"2024-03-06": habit.StatusCompleted,
		// Week of 03-11.
		"2024-03-12": habit.StatusCompleted,
		"2024-03-14": habit.StatusCompleted,
		// Current week of 03-18.
		"2024-03-18": habit.StatusCompleted,
		"2024-03-19": habit.StatusCompleted,
	})

	if got := Streak(h, day(2024, time.March, 20)); got != 3 {
		t.Errorf("streak = %d, want 3", got)
	}
}

func TestWeeklyStreak_BreakAtFailingWeek(t *testing.T) {
	// Last week 2 completions against a target of 4; the week before met
	// target. The break does not extend past the failing week.
	h := weeklyHabit(4, map[string]habit.Status{
		// Week of 03-04: 4 completions.
		"2024-03-04": habit.StatusCompleted,
		"2024-03-05": habit.StatusCompleted,
		"2024-03-06": habit.StatusCompleted,
		"2024-03-07": habit.StatusCompleted,
		// Week of 03-11: only 2.
		"2024-03-11": habit.StatusCompleted,
		"2024-03-12": habit.StatusCompleted,
	})

	if got := Streak(h, day(2024, time.March, 20)); got != 0 {
		t.Errorf("streak = %d, want 0", got)
	}
}

func TestWeeklyStreak_CurrentWeekBelowTargetIsNotABreak(t *testing.T) {
	// The in-progress week has 1 of 2; last week met target. The current
	// week must not break the chain.
	h := weeklyHabit(2, map[string]habit.Status{
		"2024-03-11": habit.StatusCompleted,
		"2024-03-13": habit.StatusCompleted,
		"2024-03-18": habit.StatusCompleted,
	})

	if got := Streak(h, day(2024, time.March, 19)); got != 1 {
		t.Errorf("streak = %d, want 1", got)
	}
}

func TestWeeklyStreak_ZeroTarget(t *testing.T) {
	h := weeklyHabit(0, map[string]habit.Status{"2024-03-18": habit.StatusCompleted})
	if got := Streak(h, day(2024, time.March, 19)); got != 0 {
		t.Errorf("streak = %d, want 0 for a non-positive target", got)
	}
}

func TestWeeklyStreak_OnlyCompletedCounts(t *testing.T) {
	h := weeklyHabit(2, map[string]habit.Status{
		"2024-03-18": habit.StatusCompleted,
		"2024-03-19": habit.StatusPartial,
		"2024-03-20": habit.StatusSkipped,
	})
	if got := Streak(h, day(2024, time.March, 20)); got != 0 {
		t.Errorf("streak = %d, want 0 (partial and skipped do not satisfy the quota)", got)
	}
}

func TestPerfectDayStreak_VacuousTruth(t *testing.T) {
	// A lone Monday-only habit, completed every Monday of the window: every
	// non-Monday is vacuously perfect, so the whole window is a streak.
	h := &habit.Habit{
		Frequency: habit.Frequency{Type: habit.FrequencyCustom, Days: []int{1}},
		History:   map[string]habit.Status{},
		CreatedAt: day(2020, time.January, 1),
	}
	now := day(2024, time.June, 1)
	for d := habit.Midnight(now).AddDate(0, 0, -370); !d.After(now); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Monday {
			h.History[habit.DateKey(d)] = habit.StatusCompleted
		}
	}

	if got := PerfectDayStreak([]*habit.Habit{h}, now); got != 365 {
		t.Errorf("perfect-day streak = %d, want 365", got)
	}
}

func TestPerfectDayStreak_SkippedCountsAsAdherence(t *testing.T) {
	h := dailyHabit(day(2020, time.January, 1), map[string]habit.Status{
		"2024-05-30": habit.StatusCompleted,
		"2024-05-31": habit.StatusSkipped,
		"2024-06-01": habit.StatusCompleted,
	})

	got := PerfectDayStreak([]*habit.Habit{h}, day(2024, time.June, 1))
	if got != 3 {
		t.Errorf("perfect-day streak = %d, want 3 (skipped adheres in this aggregate)", got)
	}
}

func TestPerfectDayStreak_PartialIsNotPerfect(t *testing.T) {
	h := dailyHabit(day(2020, time.January, 1), map[string]habit.Status{
		"2024-05-31": habit.StatusCompleted,
		"2024-06-01": habit.StatusPartial,
	})

	got := PerfectDayStreak([]*habit.Habit{h}, day(2024, time.June, 1))
	if got != 1 {
		t.Errorf("perfect-day streak = %d, want 1", got)
	}
}

func TestPerfectDayStreak_EmptyCollection(t *testing.T) {
	if got := PerfectDayStreak(nil, day(2024, time.June, 1)); got != 0 {
		t.Errorf("perfect-day streak = %d, want 0", got)
	}
}

func TestRecompute_OverwritesCache(t *testing.T) {
	h := dailyHabit(day(2024, time.January, 1), map[string]habit.Status{
		"2024-01-03": habit.StatusCompleted,
		"2024-01-04": habit.StatusCompleted,
	})
	h.Streak = 99 // stale cache, never trusted

	Recompute([]*habit.Habit{h}, day(2024, time.January, 4))

	if h.Streak != 2 {
		t.Errorf("recomputed streak = %d, want 2", h.Streak)
	}
}

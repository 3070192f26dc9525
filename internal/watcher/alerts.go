package watcher

import "fmt"

// streakMilestones are the streak lengths worth announcing.
var streakMilestones = []int{7, 30, 100, 365}

// Compare detects notable changes between two watch states and returns alerts.
// It checks for critical, warning, and info-level changes.
func Compare(prev, curr *WatchState) []Alert {
	var alerts []Alert

	alerts = append(alerts, compareCritical(prev, curr)...)
	alerts = append(alerts, compareWarning(prev, curr)...)
	alerts = append(alerts, compareInfo(prev, curr)...)

	return alerts
}

// compareCritical detects critical-level changes.
func compareCritical(prev, curr *WatchState) []Alert {
	var alerts []Alert
	now := curr.Timestamp

	// A streak of a week or more collapsed to zero.
	for id, prevStreak := range prev.streaks {
		currStreak, exists := curr.streaks[id]
		if !exists {
			continue
		}
		if prevStreak >= 7 && currStreak == 0 {
			alerts = append(alerts, Alert{
				Level:   "critical",
				Title:   fmt.Sprintf("Streak broken: %s", curr.titles[id]),
				Message: fmt.Sprintf("A %d-day streak ended", prevStreak),
				Time:    now,
			})
		}
	}

	return alerts
}

// compareWarning detects warning-level changes.
func compareWarning(prev, curr *WatchState) []Alert {
	var alerts []Alert
	now := curr.Timestamp

	// A shorter streak was lost.
	for id, prevStreak := range prev.streaks {
		currStreak, exists := curr.streaks[id]
		if !exists {
			continue
		}
		if prevStreak >= 3 && prevStreak < 7 && currStreak == 0 {
			alerts = append(alerts, Alert{
				Level:   "warning",
				Title:   fmt.Sprintf("Streak lost: %s", curr.titles[id]),
				Message: fmt.Sprintf("A %d-day streak ended", prevStreak),
				Time:    now,
			})
		}
	}

	// The perfect-day run ended.
	if prev.perfectDays >= 3 && curr.perfectDays == 0 {
		alerts = append(alerts, Alert{
			Level:   "warning",
			Title:   "Perfect-day run ended",
			Message: fmt.Sprintf("A %d-day run of completing everything due ended", prev.perfectDays),
			Time:    now,
		})
	}

	return alerts
}

// compareInfo detects informational changes.
func compareInfo(prev, curr *WatchState) []Alert {
	var alerts []Alert
	now := curr.Timestamp

	// A habit was marked since the last check.
	for id, status := range curr.todayStatus {
		if _, had := prev.todayStatus[id]; had {
			continue
		}
		if _, existed := prev.streaks[id]; !existed {
			// Brand-new habit, announced below.
			continue
		}
		alerts = append(alerts, Alert{
			Level:   "info",
			Title:   fmt.Sprintf("Marked %s: %s", status, curr.titles[id]),
			Message: fmt.Sprintf("Current streak: %d day(s)", curr.streaks[id]),
			Time:    now,
		})
	}

	// A streak crossed a milestone.
	for id, currStreak := range curr.streaks {
		prevStreak, exists := prev.streaks[id]
		if !exists {
			continue
		}
		for _, m := range streakMilestones {
			if prevStreak < m && currStreak >= m {
				alerts = append(alerts, Alert{
					Level:   "info",
					Title:   fmt.Sprintf("Milestone: %s", curr.titles[id]),
					Message: fmt.Sprintf("Streak reached %d days", m),
					Time:    now,
				})
			}
		}
	}

	// New habit added.
	for id, title := range curr.titles {
		if _, existed := prev.titles[id]; !existed {
			alerts = append(alerts, Alert{
				Level:   "info",
				Title:   fmt.Sprintf("New habit: %s", title),
				Message: "Now being tracked",
				Time:    now,
			})
		}
	}

	// Everything due today is now done.
	if curr.DueCount > 0 && curr.DoneCount == curr.DueCount &&
		(prev.DoneCount < prev.DueCount || prev.DueCount == 0) {
		alerts = append(alerts, Alert{
			Level:   "info",
			Title:   "All done for today",
			Message: fmt.Sprintf("All %d due habit(s) are marked", curr.DueCount),
			Time:    now,
		})
	}

	return alerts
}

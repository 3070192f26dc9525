package habit

import "time"

// IsDue decides whether the habit is due on the given calendar day. It is
// the single source of truth for "was this day an obligation", consulted by
// both the streak engine and the rolling aggregator.
//
// A habit is never due before the local date of its creation. Daily habits
// are due every day. Custom habits are due on their weekday set. Weekly
// habits present an opportunity every day; the target is evaluated at week
// granularity by the streak engine.
func IsDue(h *Habit, day time.Time) bool {
	if Midnight(day).Before(h.CreatedOn()) {
		return false
	}
	switch h.Frequency.Type {
	case FrequencyDaily:
		return true
	case FrequencyCustom:
		return h.Frequency.DueOn(day.Weekday())
	case FrequencyWeekly:
		return true
	}
	return false
}

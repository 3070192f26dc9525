package store

import "time"

// Snapshot represents a point-in-time capture of all metrics.
type Snapshot struct {
	ID      int64     `json:"id"`
	TakenAt time.Time `json:"taken_at"`
	Command string    `json:"command"`
	Version string    `json:"version"`
}

// HabitMetric is a named metric value within a snapshot. HabitID is empty
// for collection-level metrics.
type HabitMetric struct {
	ID          int64   `json:"id"`
	SnapshotID  int64   `json:"snapshot_id"`
	HabitID     string  `json:"habit_id,omitempty"`
	MetricName  string  `json:"metric_name"`
	MetricValue float64 `json:"metric_value"`
}

// BadgeUnlock records a permanently earned badge.
type BadgeUnlock struct {
	BadgeID    string    `json:"badge_id"`
	UnlockedAt time.Time `json:"unlocked_at"`
	Progress   int       `json:"progress"`
}

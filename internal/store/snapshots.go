package store

import (
	"database/sql"
	"time"
)

// CreateSnapshot inserts a new snapshot and returns its ID.
func (db *DB) CreateSnapshot(command, version string) (int64, error) {
	result, err := db.conn.Exec(
		"INSERT INTO snapshots (taken_at, command, version) VALUES (?, ?, ?)",
		time.Now().UTC().Format(time.RFC3339), command, version,
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// GetLatestSnapshot returns the most recent snapshot, or nil if none exist.
func (db *DB) GetLatestSnapshot() (*Snapshot, error) {
	row := db.conn.QueryRow("SELECT id, taken_at, command, version FROM snapshots ORDER BY id DESC LIMIT 1")
	return scanSnapshot(row)
}

// GetSnapshotN returns the Nth most recent snapshot (1 = latest, 2 = previous, etc.).
func (db *DB) GetSnapshotN(n int) (*Snapshot, error) {
	row := db.conn.QueryRow(
		"SELECT id, taken_at, command, version FROM snapshots ORDER BY id DESC LIMIT 1 OFFSET ?",
		n-1,
	)
	return scanSnapshot(row)
}

func scanSnapshot(row *sql.Row) (*Snapshot, error) {
	var s Snapshot
	var takenAt string
	err := row.Scan(&s.ID, &takenAt, &s.Command, &s.Version)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	s.TakenAt, _ = time.Parse(time.RFC3339, takenAt)
	return &s, nil
}

// InsertHabitMetric inserts a metric value for a snapshot. Pass an empty
// habitID for collection-level metrics.
func (db *DB) InsertHabitMetric(snapshotID int64, habitID, name string, value float64) error {
	_, err := db.conn.Exec(
		"INSERT INTO habit_metrics (snapshot_id, habit_id, metric_name, metric_value) VALUES (?, ?, ?, ?)",
		snapshotID, habitID, name, value,
	)
	return err
}

// GetHabitMetrics returns all metrics recorded for a snapshot.
func (db *DB) GetHabitMetrics(snapshotID int64) ([]HabitMetric, error) {
	rows, err := db.conn.Query(
		"SELECT id, snapshot_id, habit_id, metric_name, metric_value FROM habit_metrics WHERE snapshot_id = ?",
		snapshotID,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var metrics []HabitMetric
	for rows.Next() {
		var m HabitMetric
		if err := rows.Scan(&m.ID, &m.SnapshotID, &m.HabitID, &m.MetricName, &m.MetricValue); err != nil {
			return nil, err
		}
		metrics = append(metrics, m)
	}
	return metrics, rows.Err()
}

// RecordBadgeUnlock persists a badge unlock. Already-unlocked badges keep
// their original unlock time.
func (db *DB) RecordBadgeUnlock(badgeID string, unlockedAt time.Time, progress int) error {
	_, err := db.conn.Exec(
		`INSERT INTO badge_unlocks (badge_id, unlocked_at, progress) VALUES (?, ?, ?)
		 ON CONFLICT(badge_id) DO UPDATE SET progress = excluded.progress`,
		badgeID, unlockedAt.UTC().Format(time.RFC3339), progress,
	)
	return err
}

// GetBadgeUnlocks returns all recorded badge unlocks keyed by badge ID.
func (db *DB) GetBadgeUnlocks() (map[string]BadgeUnlock, error) {
	rows, err := db.conn.Query("SELECT badge_id, unlocked_at, progress FROM badge_unlocks")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	unlocks := make(map[string]BadgeUnlock)
	for rows.Next() {
		var u BadgeUnlock
		var at string
		if err := rows.Scan(&u.BadgeID, &at, &u.Progress); err != nil {
			return nil, err
		}
		u.UnlockedAt, _ = time.Parse(time.RFC3339, at)
		unlocks[u.BadgeID] = u
	}
	return unlocks, rows.Err()
}

// CounterHabitsCreated tracks how many habits have ever been created.
// Deleting a habit never decrements it, so collection badges cannot be
// re-earned by deleting and re-adding.
const CounterHabitsCreated = "habits_created"

// BumpCounter increments a named counter by delta and returns the new
// value. Counters track monotonic totals such as habits ever created.
func (db *DB) BumpCounter(name string, delta int) (int, error) {
	_, err := db.conn.Exec(
		`INSERT INTO counters (name, value) VALUES (?, ?)
		 ON CONFLICT(name) DO UPDATE SET value = value + excluded.value`,
		name, delta,
	)
	if err != nil {
		return 0, err
	}
	return db.GetCounter(name)
}

// GetCounter returns a named counter's value, zero if unset.
func (db *DB) GetCounter(name string) (int, error) {
	var v int
	err := db.conn.QueryRow("SELECT value FROM counters WHERE name = ?", name).Scan(&v)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	return v, err
}

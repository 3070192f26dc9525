package store

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/blackwell-systems/habitwatch/internal/habit"
)

// LoadHabits reads all habits, passing each raw history blob through the
// sanitizer. Rows whose payloads cannot be decoded are logged and skipped
// so corruption never reaches the engine.
func (db *DB) LoadHabits(now time.Time) ([]*habit.Habit, error) {
	rows, err := db.conn.Query(`
		SELECT id, title, category, frequency_type, frequency_days,
		       repeat_target, created_at, streak, history
		FROM habits ORDER BY position, title`)
	if err != nil {
		return nil, fmt.Errorf("querying habits: %w", err)
	}
	defer rows.Close()

	var habits []*habit.Habit
	for rows.Next() {
		var (
			h                             habit.Habit
			freqType, daysJSON, createdAt string
			historyJSON                   string
		)
		if err := rows.Scan(&h.ID, &h.Title, &h.Category, &freqType, &daysJSON,
			&h.Frequency.RepeatTarget, &createdAt, &h.Streak, &historyJSON); err != nil {
			return nil, fmt.Errorf("scanning habit row: %w", err)
		}

		h.Frequency.Type = habit.FrequencyType(freqType)
		if err := json.Unmarshal([]byte(daysJSON), &h.Frequency.Days); err != nil {
			log.Printf("habit %s: bad frequency days %q, treating as empty", h.ID, daysJSON)
			h.Frequency.Days = nil
		}

		history, err := decodeHistory([]byte(historyJSON))
		if err != nil {
			log.Printf("habit %s: unreadable history, treating as empty: %v", h.ID, err)
			history = map[string]habit.Status{}
		}
		h.History = history

		if t, err := time.ParseInLocation(time.RFC3339, createdAt, time.Local); err == nil {
			h.CreatedAt = t
		}
		h.Normalize(now)

		habits = append(habits, &h)
	}
	return habits, rows.Err()
}

// decodeHistory decodes a stored history blob. The canonical shape is a
// map of date key to status; the legacy shape is a bare array of completed
// dates.
func decodeHistory(data []byte) (map[string]habit.Status, error) {
	var m map[string]habit.Status
	if err := json.Unmarshal(data, &m); err == nil {
		return m, nil
	}

	var legacy []string
	if err := json.Unmarshal(data, &legacy); err == nil {
		return habit.HistoryFromCompletedDates(legacy), nil
	}

	return nil, fmt.Errorf("history blob is neither a status map nor a date array")
}

// GetHabit loads a single habit by ID, or by unique title prefix if no ID
// matches. Returns nil when nothing matches.
func (db *DB) GetHabit(ref string, now time.Time) (*habit.Habit, error) {
	habits, err := db.LoadHabits(now)
	if err != nil {
		return nil, err
	}

	for _, h := range habits {
		if h.ID == ref {
			return h, nil
		}
	}

	var match *habit.Habit
	for _, h := range habits {
		if ref != "" && len(h.Title) >= len(ref) && strings.EqualFold(h.Title[:len(ref)], ref) {
			if match != nil {
				return nil, fmt.Errorf("habit reference %q is ambiguous", ref)
			}
			match = h
		}
	}
	return match, nil
}

// SaveHabit upserts a habit, persisting the cached streak verbatim. Callers
// must have recomputed the streak after any history mutation.
func (db *DB) SaveHabit(h *habit.Habit) error {
	daysJSON, err := json.Marshal(h.Frequency.Days)
	if err != nil {
		return fmt.Errorf("encoding frequency days: %w", err)
	}
	if h.Frequency.Days == nil {
		daysJSON = []byte("[]")
	}
	historyJSON, err := json.Marshal(h.History)
	if err != nil {
		return fmt.Errorf("encoding history: %w", err)
	}

	_, err = db.conn.Exec(`
		INSERT INTO habits (id, title, category, frequency_type, frequency_days,
		                    repeat_target, created_at, streak, history)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			category = excluded.category,
			frequency_type = excluded.frequency_type,
			frequency_days = excluded.frequency_days,
			repeat_target = excluded.repeat_target,
			created_at = excluded.created_at,
			streak = excluded.streak,
			history = excluded.history`,
		h.ID, h.Title, h.Category, string(h.Frequency.Type), string(daysJSON),
		h.Frequency.RepeatTarget, h.CreatedAt.Format(time.RFC3339), h.Streak,
		string(historyJSON),
	)
	if err != nil {
		return fmt.Errorf("saving habit %s: %w", h.ID, err)
	}
	return nil
}

// DeleteHabit removes a habit wholesale. There is no soft delete.
func (db *DB) DeleteHabit(id string) error {
	res, err := db.conn.Exec("DELETE FROM habits WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting habit %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("no habit with id %s", id)
	}
	return nil
}

// CountHabits returns the number of stored habits.
func (db *DB) CountHabits() (int, error) {
	var n int
	err := db.conn.QueryRow("SELECT COUNT(*) FROM habits").Scan(&n)
	return n, err
}

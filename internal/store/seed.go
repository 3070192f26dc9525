package store

import (
	"time"

	"github.com/blackwell-systems/habitwatch/internal/habit"
)

// EnsureSeed populates a fresh database with the two starter habits. A
// database that already contains any habit is left untouched.
func (db *DB) EnsureSeed(now time.Time) error {
	n, err := db.CountHabits()
	if err != nil || n > 0 {
		return err
	}

	seeds := []*habit.Habit{
		habit.New("Morning Meditation", "Mindfulness", habit.Frequency{Type: habit.FrequencyDaily}, now),
		habit.New("Gym (Mon/Wed/Fri)", "Health", habit.Frequency{Type: habit.FrequencyCustom, Days: []int{1, 3, 5}}, now),
	}
	for _, h := range seeds {
		if err := db.SaveHabit(h); err != nil {
			return err
		}
	}
	_, err = db.BumpCounter(CounterHabitsCreated, len(seeds))
	return err
}

// Package watcher provides background monitoring of habit data, reminding
// about unfinished due habits and emitting alerts on streak changes.
package watcher

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/blackwell-systems/habitwatch/internal/engine"
	"github.com/blackwell-systems/habitwatch/internal/habit"
	"github.com/blackwell-systems/habitwatch/internal/store"
)

// WatchState captures a point-in-time snapshot of the habit database.
type WatchState struct {
	Timestamp  time.Time
	HabitCount int
	DueCount   int
	DoneCount  int
	Unfinished []string // titles of due habits with no status today

	// Internal: keep richer data for comparison.
	streaks     map[string]int          // habit ID -> current streak
	titles      map[string]string       // habit ID -> title
	todayStatus map[string]habit.Status // habit ID -> today's mark
	perfectDays int
}

// Alert represents a notable event detected by the watcher.
type Alert struct {
	Level   string // "info", "warning", "critical"
	Title   string
	Message string
	Time    time.Time
}

// Watcher polls the habit store at a regular interval and emits alerts when
// notable changes are detected.
type Watcher struct {
	db            *store.DB
	interval      time.Duration
	previous      *WatchState
	alertFn       func(Alert)     // callback for emitting alerts
	lastAlertKeys map[string]bool // dedup: suppress repeated identical alerts

	// RemindAfterHour is the local hour (0-23) after which unfinished due
	// habits trigger a reminder. Negative disables reminders.
	RemindAfterHour int
}

// New creates a Watcher that monitors the given habit store.
func New(db *store.DB, interval time.Duration, alertFn func(Alert)) *Watcher {
	return &Watcher{
		db:              db,
		interval:        interval,
		alertFn:         alertFn,
		lastAlertKeys:   make(map[string]bool),
		RemindAfterHour: 18,
	}
}

// Run starts the watch loop. It takes an initial snapshot, then checks at
// every interval. Blocks until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	// Take the initial snapshot.
	initial, err := w.Snapshot(time.Now())
	if err != nil {
		return fmt.Errorf("initial snapshot: %w", err)
	}
	w.previous = initial

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			alerts := w.Check(time.Now())
			for _, a := range alerts {
				if w.alertFn != nil {
					w.alertFn(a)
				}
			}
		}
	}
}

// Check performs a single check cycle: takes a new snapshot, compares against
// the previous state, updates the previous state, and returns any alerts.
// Identical alerts are suppressed until the underlying data changes.
func (w *Watcher) Check(now time.Time) []Alert {
	curr, err := w.Snapshot(now)
	if err != nil {
		return []Alert{{
			Level:   "warning",
			Title:   "Snapshot failed",
			Message: fmt.Sprintf("Could not read habit data: %v", err),
			Time:    now,
		}}
	}

	var raw []Alert
	if w.previous != nil {
		raw = Compare(w.previous, curr)
	}

	// Evening reminder: fires when due habits are still unmarked late in the day.
	if w.RemindAfterHour >= 0 && now.Hour() >= w.RemindAfterHour && len(curr.Unfinished) > 0 {
		raw = append(raw, Alert{
			Level:   "warning",
			Title:   fmt.Sprintf("%d habit(s) still due today", len(curr.Unfinished)),
			Message: strings.Join(curr.Unfinished, ", "),
			Time:    now,
		})
	}

	// Deduplicate: suppress alerts with the same title+message as last cycle.
	currentKeys := make(map[string]bool, len(raw))
	var alerts []Alert
	for _, a := range raw {
		key := a.Level + ":" + a.Title + ":" + a.Message
		currentKeys[key] = true
		if !w.lastAlertKeys[key] {
			alerts = append(alerts, a)
		}
	}
	w.lastAlertKeys = currentKeys

	w.previous = curr
	return alerts
}

// Snapshot captures the current state of the habit store: per-habit streaks,
// today's marks, and which due habits remain unfinished.
func (w *Watcher) Snapshot(now time.Time) (*WatchState, error) {
	habits, err := w.db.LoadHabits(now)
	if err != nil {
		return nil, fmt.Errorf("loading habits: %w", err)
	}
	return StateOf(habits, now), nil
}

// StateOf builds a WatchState from an in-memory habit list.
func StateOf(habits []*habit.Habit, now time.Time) *WatchState {
	state := &WatchState{
		Timestamp:   now,
		HabitCount:  len(habits),
		streaks:     make(map[string]int, len(habits)),
		titles:      make(map[string]string, len(habits)),
		todayStatus: make(map[string]habit.Status, len(habits)),
	}

	for _, h := range habits {
		state.titles[h.ID] = h.Title
		state.streaks[h.ID] = engine.Streak(h, now)

		status, marked := h.StatusOn(now)
		if marked {
			state.todayStatus[h.ID] = status
		}

		if !habit.IsDue(h, now) {
			continue
		}
		state.DueCount++
		if marked {
			state.DoneCount++
		} else {
			state.Unfinished = append(state.Unfinished, h.Title)
		}
	}
	sort.Strings(state.Unfinished)

	state.perfectDays = engine.PerfectDayStreak(habits, now)
	return state
}

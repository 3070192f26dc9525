// Package habit defines the habit data model, canonical date keys, the
// history sanitizer, and the due-ness oracle. Everything downstream (streak
// engine, aggregator, badges) works on the types in this package.
package habit

import (
	"time"

	"github.com/google/uuid"
)

// Status is the recorded outcome for a habit on a single calendar day.
// Absence of an entry means "no status", which is distinct from every
// explicit value.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusPartial   Status = "partial"
	StatusSkipped   Status = "skipped"
)

// Valid reports whether s is one of the three known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusCompleted, StatusPartial, StatusSkipped:
		return true
	}
	return false
}

// FrequencyType selects the schedule variant for a habit.
type FrequencyType string

const (
	// FrequencyDaily habits are due every day.
	FrequencyDaily FrequencyType = "daily"

	// FrequencyCustom habits are due on a fixed set of weekdays.
	FrequencyCustom FrequencyType = "custom"

	// FrequencyWeekly habits present an opportunity every day; the target
	// is evaluated per calendar week, not per day.
	FrequencyWeekly FrequencyType = "weekly"
)

// Frequency is a habit's schedule rule.
type Frequency struct {
	Type FrequencyType `json:"type"`

	// Days holds weekday indices (0=Sunday..6=Saturday) for custom habits.
	// An empty set means the habit is never due.
	Days []int `json:"days,omitempty"`

	// RepeatTarget is the completion count required within a calendar week
	// for weekly habits.
	RepeatTarget int `json:"repeat_target,omitempty"`
}

// DueOn reports whether the weekday set contains the given weekday.
func (f Frequency) DueOn(weekday time.Weekday) bool {
	for _, d := range f.Days {
		if d == int(weekday) {
			return true
		}
	}
	return false
}

// Habit is one tracked behavior.
type Habit struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Category string `json:"category"`

	Frequency Frequency `json:"frequency"`

	// History maps canonical date keys (YYYY-MM-DD, local calendar day) to
	// the status recorded for that day.
	History map[string]Status `json:"history"`

	// CreatedAt marks the first day the habit is eligible to be due. No
	// due-ness decision is ever made for a day before its local date.
	CreatedAt time.Time `json:"created_at"`

	// Streak is a derived cache, overwritten by the engine on every history
	// mutation. Never trusted as a source of truth.
	Streak int `json:"streak"`
}

// New creates a habit with an empty history, created now.
func New(title, category string, freq Frequency, now time.Time) *Habit {
	return &Habit{
		ID:        uuid.NewString(),
		Title:     title,
		Category:  category,
		Frequency: freq,
		History:   make(map[string]Status),
		CreatedAt: now,
	}
}

// CreatedOn returns the local calendar day of the habit's creation time.
func (h *Habit) CreatedOn() time.Time {
	return Midnight(h.CreatedAt)
}

// SetStatus records a status for the given day, creating the history map if
// needed. The caller is responsible for recomputing the cached streak.
func (h *Habit) SetStatus(day time.Time, s Status) {
	if h.History == nil {
		h.History = make(map[string]Status)
	}
	h.History[DateKey(day)] = s
}

// ClearStatus removes any entry for the given day, including entries stored
// under legacy padding variants of the key.
func (h *Habit) ClearStatus(day time.Time) {
	for _, k := range keyVariants(day) {
		delete(h.History, k)
	}
}

// CompletedCount returns the total number of completed entries in history.
func (h *Habit) CompletedCount() int {
	n := 0
	for _, s := range h.History {
		if s == StatusCompleted {
			n++
		}
	}
	return n
}

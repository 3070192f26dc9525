package engine

import (
	"math"
	"time"

	"github.com/blackwell-systems/habitwatch/internal/habit"
)

// dayScore converts a status into its completion credit: full for
// completed, half for partial, none otherwise. A missing status scores the
// same as "not completed".
func dayScore(s habit.Status, ok bool) float64 {
	if !ok {
		return 0
	}
	switch s {
	case habit.StatusCompleted:
		return 1.0
	case habit.StatusPartial:
		return 0.5
	}
	return 0
}

// CompletionRate computes the collection's completion rate over the given
// calendar days as a rounded percentage. The denominator counts due
// opportunities only, so a habit never contributes before its creation date
// or on days its schedule does not cover.
func CompletionRate(habits []*habit.Habit, days []time.Time) int {
	var score float64
	opportunities := 0

	for _, day := range days {
		for _, h := range habits {
			if !habit.IsDue(h, day) {
				continue
			}
			opportunities++
			s, ok := h.StatusOn(day)
			score += dayScore(s, ok)
		}
	}

	if opportunities == 0 {
		return 0
	}
	return roundPercent(score / float64(opportunities))
}

// HabitRate computes a single habit's completion rate over the given days.
func HabitRate(h *habit.Habit, days []time.Time) int {
	return CompletionRate([]*habit.Habit{h}, days)
}

// WeekdayBucket tallies one weekday's completions within a trailing window.
type WeekdayBucket struct {
	Weekday   time.Weekday `json:"weekday"`
	Completed int          `json:"completed"`
	Total     int          `json:"total"`
	Rate      int          `json:"rate"`
}

// WeekdayStats breaks a habit's trailing-window completions down by weekday.
type WeekdayStats struct {
	Buckets [7]WeekdayBucket `json:"buckets"`

	// BestDay is the weekday with the highest completion rate; DangerDay
	// the lowest. Ties resolve to the first weekday in Sunday..Saturday
	// order.
	BestDay   time.Weekday `json:"best_day"`
	DangerDay time.Weekday `json:"danger_day"`
}

// weekdayWindow is the trailing window for weekday bucketing: four full
// weeks, so every weekday occurs the same number of times.
const weekdayWindow = 28

// AnalyzeWeekdays buckets the habit's last 28 days by weekday and marks the
// strongest and weakest day.
func AnalyzeWeekdays(h *habit.Habit, now time.Time) WeekdayStats {
	var stats WeekdayStats
	for i := range stats.Buckets {
		stats.Buckets[i].Weekday = time.Weekday(i)
	}

	for _, day := range habit.LastNDays(weekdayWindow, now) {
		b := &stats.Buckets[int(day.Weekday())]
		b.Total++
		if s, ok := h.StatusOn(day); ok && s == habit.StatusCompleted {
			b.Completed++
		}
	}

	best, worst := 0, 0
	for i := range stats.Buckets {
		b := &stats.Buckets[i]
		if b.Total > 0 {
			b.Rate = roundPercent(float64(b.Completed) / float64(b.Total))
		}
		if b.Rate > stats.Buckets[best].Rate {
			best = i
		}
		if b.Rate < stats.Buckets[worst].Rate {
			worst = i
		}
	}
	stats.BestDay = time.Weekday(best)
	stats.DangerDay = time.Weekday(worst)
	return stats
}

// Momentum compares the habit's completion rate in the 7-day window ending
// today against the window ending 7 days earlier, returning the signed
// percentage-point delta.
func Momentum(h *habit.Habit, now time.Time) int {
	current := HabitRate(h, habit.LastNDays(7, now))
	previous := HabitRate(h, habit.LastNDays(7, habit.Midnight(now).AddDate(0, 0, -7)))
	return current - previous
}

// WeekRow is one Sunday-aligned week row of a calendar month.
type WeekRow struct {
	Start         time.Time `json:"start"`
	Opportunities int       `json:"opportunities"`
	Completed     int       `json:"completed"`
	Partial       int       `json:"partial"`
	Rate          int       `json:"rate"`

	// HasPassed marks rows whose start date is on or before now.
	HasPassed bool `json:"has_passed"`
}

// maxMonthRows caps a month at six week rows.
const maxMonthRows = 6

// MonthWeeks partitions a calendar month into Sunday-aligned week rows and
// scores each row across the habit collection. The first row starts on the
// Sunday on or before the 1st; partial credit counts half.
func MonthWeeks(habits []*habit.Habit, year int, month time.Month, now time.Time) []WeekRow {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	last := first.AddDate(0, 1, -1)
	start := first.AddDate(0, 0, -int(first.Weekday()))
	today := habit.Midnight(now)

	var rows []WeekRow
	for !start.After(last) && len(rows) < maxMonthRows {
		row := WeekRow{Start: start, HasPassed: !start.After(today)}

		for i := 0; i < 7; i++ {
			day := start.AddDate(0, 0, i)
			for _, h := range habits {
				if !habit.IsDue(h, day) {
					continue
				}
				row.Opportunities++
				switch s, ok := h.StatusOn(day); {
				case ok && s == habit.StatusCompleted:
					row.Completed++
				case ok && s == habit.StatusPartial:
					row.Partial++
				}
			}
		}

		if row.Opportunities > 0 {
			credit := float64(row.Completed) + 0.5*float64(row.Partial)
			row.Rate = roundPercent(credit / float64(row.Opportunities))
		}
		rows = append(rows, row)
		start = start.AddDate(0, 0, 7)
	}
	return rows
}

// DayIntensity is one heatmap cell: a calendar day and its completion
// intensity in [0, 1].
type DayIntensity struct {
	Date      string  `json:"date"`
	Intensity float64 `json:"intensity"`
}

// YearHeatmap computes per-day completion intensities for every day of
// now's calendar year. Intensity is the summed day score divided by the
// number of habits already created on that day; zero before any habit
// existed.
func YearHeatmap(habits []*habit.Habit, now time.Time) []DayIntensity {
	year := now.Year()
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.Local)
	end := time.Date(year, time.December, 31, 0, 0, 0, 0, time.Local)

	var cells []DayIntensity
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		active := 0
		var score float64
		for _, h := range habits {
			if h.CreatedOn().After(day) {
				continue
			}
			active++
			s, ok := h.StatusOn(day)
			score += dayScore(s, ok)
		}

		cell := DayIntensity{Date: habit.DateKey(day)}
		if active > 0 {
			cell.Intensity = score / float64(active)
		}
		cells = append(cells, cell)
	}
	return cells
}

// roundPercent converts a 0..1 fraction into a rounded 0..100 percentage.
func roundPercent(fraction float64) int {
	return int(math.Round(fraction * 100))
}

package habit

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateKey formats a time as its local calendar day, YYYY-MM-DD, zero-padded.
// The time-of-day component is ignored, so any two times on the same local
// day produce the same key.
func DateKey(t time.Time) string {
	y, m, d := t.Date()
	return fmt.Sprintf("%04d-%02d-%02d", y, int(m), d)
}

// ParseDateKey parses a YYYY-MM-DD key into a local-midnight time. It
// round-trips with DateKey for any valid key. Unpadded month or day segments
// are accepted.
func ParseDateKey(key string) (time.Time, error) {
	parts := strings.Split(key, "-")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("invalid date key %q", key)
	}
	y, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid year in date key %q", key)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month in date key %q", key)
	}
	d, err := strconv.Atoi(parts[2])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day in date key %q", key)
	}
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.Local), nil
}

// Midnight truncates a time to local midnight of its calendar day.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// WeekKey returns the ISO-8601 week identifier for a date, YYYY-Wnn. The
// date is shifted to the Thursday of its week (Sunday counts as weekday 7),
// which anchors week boundaries to Monday-start ISO weeks: week 1 is the
// week containing the year's first Thursday.
func WeekKey(t time.Time) string {
	day := Midnight(t)
	wd := int(day.Weekday())
	if wd == 0 {
		wd = 7
	}
	thursday := day.AddDate(0, 0, 4-wd)
	week := (thursday.YearDay() + 6) / 7
	return fmt.Sprintf("%d-W%02d", thursday.Year(), week)
}

// LastNDays returns the last n local calendar days ending at now, oldest
// first.
func LastNDays(n int, now time.Time) []time.Time {
	days := make([]time.Time, 0, n)
	today := Midnight(now)
	for i := n - 1; i >= 0; i-- {
		days = append(days, today.AddDate(0, 0, -i))
	}
	return days
}

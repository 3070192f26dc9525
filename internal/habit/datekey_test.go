package habit

import (
	"fmt"
	"testing"
	"time"
)

func TestDateKey_Padding(t *testing.T) {
	d := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.Local)
	if got := DateKey(d); got != "2024-03-05" {
		t.Errorf("DateKey = %q, want 2024-03-05", got)
	}
}

func TestDateKey_IgnoresTimeOfDay(t *testing.T) {
	morning := time.Date(2024, time.July, 9, 0, 0, 1, 0, time.Local)
	night := time.Date(2024, time.July, 9, 23, 59, 59, 0, time.Local)
	if DateKey(morning) != DateKey(night) {
		t.Errorf("same calendar day produced different keys: %q vs %q", DateKey(morning), DateKey(night))
	}
}

func TestParseDateKey_RoundTrip(t *testing.T) {
	keys := []string{"2024-01-01", "2023-12-31", "2024-02-29", "1999-06-15"}
	for _, key := range keys {
		d, err := ParseDateKey(key)
		if err != nil {
			t.Fatalf("ParseDateKey(%q): %v", key, err)
		}
		if got := DateKey(d); got != key {
			t.Errorf("round trip of %q = %q", key, got)
		}
	}
}

func TestParseDateKey_AcceptsUnpadded(t *testing.T) {
	d, err := ParseDateKey("2024-1-5")
	if err != nil {
		t.Fatalf("ParseDateKey: %v", err)
	}
	if got := DateKey(d); got != "2024-01-05" {
		t.Errorf("DateKey = %q, want 2024-01-05", got)
	}
}

func TestParseDateKey_Invalid(t *testing.T) {
	for _, key := range []string{"", "2024", "2024-01", "not-a-date-x", "a-b-c"} {
		if _, err := ParseDateKey(key); err == nil {
			t.Errorf("ParseDateKey(%q): expected error", key)
		}
	}
}

func TestWeekKey_ISOBoundaries(t *testing.T) {
	tests := []struct {
		date time.Time
		want string
	}{
		// Jan 1 2024 is a Monday: week 1.
		{time.Date(2024, time.January, 1, 0, 0, 0, 0, time.Local), "2024-W01"},
		// Sunday Jan 7 2024 belongs to the Monday-start week of Jan 1.
		{time.Date(2024, time.January, 7, 0, 0, 0, 0, time.Local), "2024-W01"},
		{time.Date(2024, time.January, 8, 0, 0, 0, 0, time.Local), "2024-W02"},
		// Dec 31 2024 is a Tuesday whose Thursday falls in 2025: week 1 of 2025.
		{time.Date(2024, time.December, 31, 0, 0, 0, 0, time.Local), "2025-W01"},
		// Jan 1 2023 is a Sunday, part of 2022's last week.
		{time.Date(2023, time.January, 1, 0, 0, 0, 0, time.Local), "2022-W52"},
	}
	for _, tt := range tests {
		if got := WeekKey(tt.date); got != tt.want {
			t.Errorf("WeekKey(%s) = %q, want %q", tt.date.Format("2006-01-02"), got, tt.want)
		}
	}
}

func TestWeekKey_AgreesWithISOWeek(t *testing.T) {
	// Walk a full year of days and check against the standard library.
	day := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.Local)
	for i := 0; i < 366; i++ {
		y, w := day.ISOWeek()
		want := fmt.Sprintf("%d-W%02d", y, w)
		if got := WeekKey(day); got != want {
			t.Fatalf("WeekKey(%s) = %q, ISOWeek says %q", day.Format("2006-01-02"), got, want)
		}
		day = day.AddDate(0, 0, 1)
	}
}

func TestLastNDays(t *testing.T) {
	now := time.Date(2024, time.May, 10, 15, 30, 0, 0, time.Local)
	days := LastNDays(3, now)
	if len(days) != 3 {
		t.Fatalf("expected 3 days, got %d", len(days))
	}
	want := []string{"2024-05-08", "2024-05-09", "2024-05-10"}
	for i, d := range days {
		if DateKey(d) != want[i] {
			t.Errorf("day %d = %s, want %s", i, DateKey(d), want[i])
		}
	}
}

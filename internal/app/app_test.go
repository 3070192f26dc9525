package app

import (
	"reflect"
	"testing"

	"github.com/blackwell-systems/habitwatch/internal/habit"
)

func TestParseDays(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []int
		wantErr bool
	}{
		{"numeric", "1,3,5", []int{1, 3, 5}, false},
		{"names", "mon,wed,fri", []int{1, 3, 5}, false},
		{"full names", "Monday,Saturday", []int{1, 6}, false},
		{"mixed and unsorted", "fri,1", []int{1, 5}, false},
		{"duplicates collapse", "mon,mon,1", []int{1}, false},
		{"empty", "", nil, true},
		{"out of range", "7", nil, true},
		{"garbage", "moonday", nil, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseDays(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("parseDays(%q) expected error, got %v", tc.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseDays(%q) unexpected error: %v", tc.input, err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("parseDays(%q) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}

func TestParseFrequency(t *testing.T) {
	f, err := parseFrequency("daily", "", 1)
	if err != nil || f.Type != habit.FrequencyDaily {
		t.Errorf("daily: got %+v, %v", f, err)
	}

	f, err = parseFrequency("weekly", "", 3)
	if err != nil || f.Type != habit.FrequencyWeekly || f.RepeatTarget != 3 {
		t.Errorf("weekly: got %+v, %v", f, err)
	}

	if _, err := parseFrequency("weekly", "", 0); err == nil {
		t.Error("weekly with zero target should fail")
	}

	f, err = parseFrequency("custom", "mon,wed", 1)
	if err != nil || f.Type != habit.FrequencyCustom || !reflect.DeepEqual(f.Days, []int{1, 3}) {
		t.Errorf("custom: got %+v, %v", f, err)
	}

	if _, err := parseFrequency("custom", "", 1); err == nil {
		t.Error("custom without days should fail")
	}

	if _, err := parseFrequency("sometimes", "", 1); err == nil {
		t.Error("unknown frequency should fail")
	}
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		input   string
		want    habit.Status
		wantErr bool
	}{
		{"", habit.StatusCompleted, false},
		{"completed", habit.StatusCompleted, false},
		{"done", habit.StatusCompleted, false},
		{"partial", habit.StatusPartial, false},
		{"half", habit.StatusPartial, false},
		{"skipped", habit.StatusSkipped, false},
		{"skip", habit.StatusSkipped, false},
		{"banana", "", true},
	}

	for _, tc := range tests {
		got, err := parseStatus(tc.input)
		if tc.wantErr {
			if err == nil {
				t.Errorf("parseStatus(%q) expected error", tc.input)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Errorf("parseStatus(%q) = %v, %v; want %v", tc.input, got, err, tc.want)
		}
	}
}

func TestDescribeFrequency(t *testing.T) {
	tests := []struct {
		freq habit.Frequency
		want string
	}{
		{habit.Frequency{Type: habit.FrequencyDaily}, "daily"},
		{habit.Frequency{Type: habit.FrequencyWeekly, RepeatTarget: 3}, "3x per week"},
		{habit.Frequency{Type: habit.FrequencyCustom, Days: []int{1, 3, 5}}, "Mon/Wed/Fri"},
	}

	for _, tc := range tests {
		if got := describeFrequency(tc.freq); got != tc.want {
			t.Errorf("describeFrequency(%+v) = %q, want %q", tc.freq, got, tc.want)
		}
	}
}

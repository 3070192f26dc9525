package habit

import (
	"testing"
	"time"
)

func TestStatusOn_CanonicalKey(t *testing.T) {
	h := &Habit{History: map[string]Status{"2024-01-05": StatusCompleted}}

	s, ok := h.StatusOn(localDay(2024, time.January, 5))
	if !ok || s != StatusCompleted {
		t.Errorf("StatusOn = %q, %v; want completed, true", s, ok)
	}
}

func TestStatusOn_PaddingVariants(t *testing.T) {
	// Legacy data may have been written under any padding combination.
	tests := []string{"2024-1-05", "2024-01-5", "2024-1-5"}
	for _, key := range tests {
		h := &Habit{History: map[string]Status{key: StatusPartial}}
		s, ok := h.StatusOn(localDay(2024, time.January, 5))
		if !ok || s != StatusPartial {
			t.Errorf("key %q: StatusOn = %q, %v; want partial, true", key, s, ok)
		}
	}
}

func TestStatusOn_PrefersCanonical(t *testing.T) {
	h := &Habit{History: map[string]Status{
		"2024-01-05": StatusCompleted,
		"2024-1-5":   StatusSkipped,
	}}
	s, _ := h.StatusOn(localDay(2024, time.January, 5))
	if s != StatusCompleted {
		t.Errorf("canonical key should win, got %q", s)
	}
}

func TestStatusOn_Missing(t *testing.T) {
	h := &Habit{History: map[string]Status{"2024-01-05": StatusCompleted}}
	if _, ok := h.StatusOn(localDay(2024, time.January, 6)); ok {
		t.Error("expected no status for an unrecorded day")
	}
}

func TestClearStatus_RemovesVariants(t *testing.T) {
	h := &Habit{History: map[string]Status{
		"2024-01-05": StatusCompleted,
		"2024-1-5":   StatusCompleted,
	}}
	h.ClearStatus(localDay(2024, time.January, 5))
	if len(h.History) != 0 {
		t.Errorf("expected empty history after clear, got %v", h.History)
	}
}

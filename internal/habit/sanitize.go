package habit

import (
	"sort"
	"strings"
	"time"
	"unicode"
)

// SanitizeHistory repairs a raw history map into canonical form. Keys are
// stripped of all whitespace (a historical corruption left stray spaces
// inside keys, e.g. "2024 -01 -13 "); values are kept verbatim. The result
// is a fresh map, and sanitizing already-clean input yields an identical
// map.
func SanitizeHistory(raw map[string]Status) map[string]Status {
	clean := make(map[string]Status, len(raw))
	for k, v := range raw {
		clean[stripWhitespace(k)] = v
	}
	return clean
}

// HistoryFromCompletedDates converts the legacy completed-dates array form
// into a canonical history map: every listed date is treated as completed.
func HistoryFromCompletedDates(dates []string) map[string]Status {
	history := make(map[string]Status, len(dates))
	for _, d := range dates {
		history[stripWhitespace(d)] = StatusCompleted
	}
	return history
}

// EarliestKey returns the lexicographically smallest key in a history map,
// which for YYYY-MM-DD keys is the chronologically earliest. Returns ""
// for an empty map.
func EarliestKey(history map[string]Status) string {
	earliest := ""
	for k := range history {
		if earliest == "" || k < earliest {
			earliest = k
		}
	}
	return earliest
}

// Normalize sanitizes the habit's history and repairs a missing creation
// date: the earliest history date if any, otherwise now. Due-ness decisions
// require a creation date, so it is never left zero.
func (h *Habit) Normalize(now time.Time) {
	h.History = SanitizeHistory(h.History)
	if !h.CreatedAt.IsZero() {
		return
	}
	if k := EarliestKey(h.History); k != "" {
		if t, err := ParseDateKey(k); err == nil {
			h.CreatedAt = t
			return
		}
	}
	h.CreatedAt = now
}

// stripWhitespace removes every whitespace rune from a key.
func stripWhitespace(k string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, k)
}

// SortedKeys returns the history keys in chronological (lexicographic)
// order.
func SortedKeys(history map[string]Status) []string {
	keys := make([]string, 0, len(history))
	for k := range history {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

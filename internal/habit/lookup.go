package habit

import (
	"fmt"
	"time"
)

// keyVariants returns the four padding variants of a day's date key:
// fully padded, unpadded month, unpadded day, and both unpadded. Legacy
// data written before keys were canonicalized may use any of them.
func keyVariants(day time.Time) [4]string {
	y, m, d := day.Date()
	return [4]string{
		fmt.Sprintf("%04d-%02d-%02d", y, int(m), d),
		fmt.Sprintf("%04d-%d-%02d", y, int(m), d),
		fmt.Sprintf("%04d-%02d-%d", y, int(m), d),
		fmt.Sprintf("%04d-%d-%d", y, int(m), d),
	}
}

// StatusOn resolves the status recorded for the given day. It prefers the
// canonical key and falls back to the alternate padding variants, since
// sanitization is not guaranteed to have run on every read path.
func (h *Habit) StatusOn(day time.Time) (Status, bool) {
	for _, k := range keyVariants(day) {
		if s, ok := h.History[k]; ok {
			return s, true
		}
	}
	return "", false
}

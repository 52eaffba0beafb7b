package projection

import (
	"fmt"
	"time"
)

// chunk thresholds mirror the calendar approximations commonly used for
// human-relative output: 365-day years, 30-day months, 7-day weeks.
var chunks = []struct {
	unit     time.Duration
	singular string
	plural   string
}{
	{365 * 24 * time.Hour, "any", "anys"},
	{30 * 24 * time.Hour, "mes", "mesos"},
	{7 * 24 * time.Hour, "setmana", "setmanes"},
	{24 * time.Hour, "dia", "dies"},
	{time.Hour, "hora", "hores"},
	{time.Minute, "minut", "minuts"},
}

// TimeSince renders the elapsed time between from and now in Catalan,
// prefixed with "fa" ("fa 5 minuts"). Sub-minute elapses render as
// "fa 0 minuts"; a clock running behind the stored timestamp is clamped
// to zero rather than producing a negative count.
func TimeSince(from, now time.Time) string {
	elapsed := now.Sub(from)
	if elapsed < 0 {
		elapsed = 0
	}

	for _, c := range chunks[:len(chunks)-1] {
		if elapsed >= c.unit {
			n := int64(elapsed / c.unit)
			if n == 1 {
				return fmt.Sprintf("fa 1 %s", c.singular)
			}
			return fmt.Sprintf("fa %d %s", n, c.plural)
		}
	}

	minutes := int64(elapsed / time.Minute)
	if minutes == 1 {
		return "fa 1 minut"
	}
	return fmt.Sprintf("fa %d minuts", minutes)
}

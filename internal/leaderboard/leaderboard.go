package leaderboard

import "sort"

// Entry is one participant's ranked view.
type Entry struct {
	ID            string
	Points        int64
	Level         int
	AgeDays       float64
	Currency      int64
	ResourceLevel float64
}

// Rank orders entries by descending points, then descending age, then
// ascending ID. The final ID key makes the order fully deterministic
// under equal scores. The result is truncated to limit entries; a
// non-positive limit returns everything.
func Rank(entries []Entry, limit int) []Entry {
	ranked := make([]Entry, len(entries))
	copy(ranked, entries)

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Points != ranked[j].Points {
			return ranked[i].Points > ranked[j].Points
		}
		if ranked[i].AgeDays != ranked[j].AgeDays {
			return ranked[i].AgeDays > ranked[j].AgeDays
		}
		return ranked[i].ID < ranked[j].ID
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// Progress maps value against max onto [0, 1] for rendering a relative
// bar. A non-positive max counts as 1 so an empty board never divides
// by zero.
func Progress(value, max float64) float64 {
	if max <= 0 {
		max = 1
	}
	p := value / max
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

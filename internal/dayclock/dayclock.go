package dayclock

import (
	"fmt"
	"time"
)

// Stamp is a calendar date rendered as "2006-01-02" in a fixed zone.
// Daily counters are only valid for the stamp they were written under.
type Stamp string

// IsZero reports whether the stamp has never been set.
func (s Stamp) IsZero() bool { return s == "" }

// Clock resolves wall-clock time to calendar days in one time zone.
// The engine keeps two of these: one for survival/activity tracking
// (local zone) and one for transfer/claim/refresh windows (ledger zone).
type Clock struct {
	loc *time.Location
}

// New creates a Clock for the given IANA time zone name. An empty name
// means UTC.
func New(tz string) (*Clock, error) {
	if tz == "" {
		return &Clock{loc: time.UTC}, nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("load time zone %q: %w", tz, err)
	}
	return &Clock{loc: loc}, nil
}

// Location returns the clock's time zone.
func (c *Clock) Location() *time.Location { return c.loc }

// Today returns the calendar day containing now.
func (c *Clock) Today(now time.Time) Stamp {
	return Stamp(now.In(c.loc).Format("2006-01-02"))
}

// Yesterday returns the calendar day before the one containing now.
func (c *Clock) Yesterday(now time.Time) Stamp {
	return Stamp(now.In(c.loc).AddDate(0, 0, -1).Format("2006-01-02"))
}

// Normalize resets a day-scoped counter whose marker is stale. It must
// run before every read and every write of the counter, so a read on a
// fresh day never sees yesterday's total. Returns true if a reset
// happened.
func Normalize(marker *Stamp, count *int64, today Stamp) bool {
	if *marker == today {
		return false
	}
	*marker = today
	*count = 0
	return true
}

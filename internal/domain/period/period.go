// Package period turns named reporting windows and explicit date ranges into
// inclusive time bounds.
package period

import (
	"errors"
	"strings"
	"time"
)

type Name string

const (
	Week   Name = "week"
	Month  Name = "month"
	Year   Name = "year"
	Custom Name = "custom"
)

var ErrInvalidName = errors.New("period must be one of: week, month, year")

// Period is a closed interval: both Start and End are included.
type Period struct {
	Name  Name
	Start time.Time
	End   time.Time
}

// Contains reports whether Start <= t <= End.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && !t.After(p.End)
}

// Resolve returns the rolling window ending at now. Unknown names resolve to
// Month. Start keeps now's time of day, so a date-only entry (stored at 00:00)
// dated exactly 7 days or one month back falls outside the window unless now
// is itself midnight. Use an explicit from/to Query for whole calendar days.
func Resolve(name Name, now time.Time) Period {
	switch name {
	case Week:
		return Period{Name: Week, Start: now.AddDate(0, 0, -7), End: now}
	case Year:
		return Period{Name: Year, Start: shiftMonths(now, -12), End: now}
	default:
		return Period{Name: Month, Start: shiftMonths(now, -1), End: now}
	}
}

// ParseName validates a user-supplied name. The empty string means Month.
func ParseName(s string) (Name, error) {
	switch n := Name(strings.ToLower(strings.TrimSpace(s))); n {
	case "":
		return Month, nil
	case Week, Month, Year:
		return n, nil
	default:
		return "", ErrInvalidName
	}
}

// shiftMonths moves t by n calendar months, clamping the day to the length
// of the target month (Mar 31 - 1 month = Feb 28/29).
func shiftMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, t.Location())
	ty, tm, _ := first.Date()
	if last := daysIn(ty, tm, t.Location()); d > last {
		d = last
	}
	return time.Date(ty, tm, d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysIn(y int, m time.Month, loc *time.Location) int {
	return time.Date(y, m+1, 0, 0, 0, 0, 0, loc).Day()
}

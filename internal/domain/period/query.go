package period

import (
	"time"

	"github.com/cmlabs-hris/agency-earnings-go/internal/pkg/validator"
)

// Query is the raw window selection taken from a request: either a named
// period or an explicit from/to pair.
type Query struct {
	Name string
	From string
	To   string
}

// Resolve validates q and returns the matching window relative to now.
// A date-only To covers the whole day.
func (q Query) Resolve(now time.Time) (Period, error) {
	var errs validator.ValidationErrors

	if q.From == "" && q.To == "" {
		name, err := ParseName(q.Name)
		if err != nil {
			errs.Add("period", err.Error())
			return Period{}, errs
		}
		return Resolve(name, now), nil
	}

	if q.Name != "" {
		errs.Add("period", "cannot be combined with from/to")
	}

	start, ok := parseBound(q.From, false)
	if !ok {
		errs.Add("from", "must be YYYY-MM-DD or an RFC3339 timestamp")
	}
	end, ok := parseBound(q.To, true)
	if !ok {
		errs.Add("to", "must be YYYY-MM-DD or an RFC3339 timestamp")
	}
	if len(errs) > 0 {
		return Period{}, errs
	}

	if start.After(end) {
		errs.Add("from", "must not be after to")
		return Period{}, errs
	}

	return Period{Name: Custom, Start: start, End: end}, nil
}

func parseBound(s string, endOfDay bool) (time.Time, bool) {
	if d, ok := validator.IsValidDate(s); ok {
		if endOfDay {
			return d.AddDate(0, 0, 1).Add(-time.Nanosecond), true
		}
		return d, true
	}
	return validator.IsValidDateTime(s)
}

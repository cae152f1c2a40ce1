package timeentry

import "context"

// TimeEntryRepository persists time entries together with their creator sales.
// All methods include agencyID to prevent cross-agency data access.
type TimeEntryRepository interface {
	ListTimeEntries(ctx context.Context, agencyID string, filter Filter) ([]TimeEntry, error)
	GetTimeEntryByID(ctx context.Context, id string, agencyID string) (TimeEntry, error)
	CreateTimeEntry(ctx context.Context, entry TimeEntry) (TimeEntry, error)
	UpdateTimeEntry(ctx context.Context, entry TimeEntry) (TimeEntry, error)
	DeleteTimeEntry(ctx context.Context, id string, agencyID string) error
}

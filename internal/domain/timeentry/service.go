package timeentry

import (
	"context"

	"github.com/cmlabs-hris/agency-earnings-go/internal/domain/auth"
)

type TimeEntryService interface {
	List(ctx context.Context, session auth.Session, req ListTimeEntriesRequest) ([]TimeEntryResponse, error)
	Get(ctx context.Context, session auth.Session, id string) (TimeEntryResponse, error)
	Create(ctx context.Context, session auth.Session, req CreateTimeEntryRequest) (TimeEntryResponse, error)
	Update(ctx context.Context, session auth.Session, req UpdateTimeEntryRequest) (TimeEntryResponse, error)
	Delete(ctx context.Context, session auth.Session, id string) error
}

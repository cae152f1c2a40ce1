package earnings

import (
	"context"

	"github.com/cmlabs-hris/agency-earnings-go/internal/domain/auth"
	"github.com/cmlabs-hris/agency-earnings-go/internal/domain/period"
)

type EarningsService interface {
	Reconcile(ctx context.Context, session auth.Session, req ReconciliationRequest) (ReconciliationResponse, error)
	EmployeeEarnings(ctx context.Context, session auth.Session, employeeID string, query period.Query) (EmployeeEarningsResponse, error)
	ListSnapshots(ctx context.Context, session auth.Session, req ListSnapshotsRequest) ([]SnapshotResponse, error)

	// CaptureSnapshots stores a month-window reconciliation for every agency
	// and returns how many were written.
	CaptureSnapshots(ctx context.Context) (int, error)
}

package earnings

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/agency-earnings-go/internal/domain/auth"
	"github.com/cmlabs-hris/agency-earnings-go/internal/domain/bonus"
	"github.com/cmlabs-hris/agency-earnings-go/internal/domain/earnings"
	"github.com/cmlabs-hris/agency-earnings-go/internal/domain/employee"
	"github.com/cmlabs-hris/agency-earnings-go/internal/domain/payment"
	"github.com/cmlabs-hris/agency-earnings-go/internal/domain/period"
	"github.com/cmlabs-hris/agency-earnings-go/internal/domain/timeentry"
	"github.com/cmlabs-hris/agency-earnings-go/internal/pkg/validator"
	"golang.org/x/sync/errgroup"
)

type EarningsServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	entryRepo    timeentry.TimeEntryRepository
	paymentRepo  payment.PaymentRepository
	ruleRepo     bonus.BonusRuleRepository
	snapshotRepo earnings.SnapshotRepository
	now          func() time.Time
}

func NewEarningsService(
	employeeRepo employee.EmployeeRepository,
	entryRepo timeentry.TimeEntryRepository,
	paymentRepo payment.PaymentRepository,
	ruleRepo bonus.BonusRuleRepository,
	snapshotRepo earnings.SnapshotRepository,
) earnings.EarningsService {
	return &EarningsServiceImpl{
		employeeRepo: employeeRepo,
		entryRepo:    entryRepo,
		paymentRepo:  paymentRepo,
		ruleRepo:     ruleRepo,
		snapshotRepo: snapshotRepo,
		now:          time.Now,
	}
}

// ========== RECONCILIATION ==========

func (s *EarningsServiceImpl) Reconcile(ctx context.Context, session auth.Session, req earnings.ReconciliationRequest) (earnings.ReconciliationResponse, error) {
	if err := session.Require(auth.PermissionEarningsView); err != nil {
		return earnings.ReconciliationResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return earnings.ReconciliationResponse{}, err
	}
	p, err := req.Period.Resolve(s.now())
	if err != nil {
		return earnings.ReconciliationResponse{}, err
	}

	filter := req.Filter()
	rec, err := s.reconcile(ctx, session.AgencyID, filter, p)
	if err != nil {
		return earnings.ReconciliationResponse{}, err
	}
	return earnings.ToReconciliationResponse(filter, rec), nil
}

// EmployeeEarnings differs from Reconcile with a single id in that an unknown
// employee is an error rather than an empty result.
func (s *EarningsServiceImpl) EmployeeEarnings(ctx context.Context, session auth.Session, employeeID string, query period.Query) (earnings.EmployeeEarningsResponse, error) {
	if err := session.Require(auth.PermissionEarningsView); err != nil {
		return earnings.EmployeeEarningsResponse{}, err
	}
	if !validator.IsValidUUID(employeeID) {
		var errs validator.ValidationErrors
		errs.Add("id", "must be a valid UUID")
		return earnings.EmployeeEarningsResponse{}, errs
	}
	p, err := query.Resolve(s.now())
	if err != nil {
		return earnings.EmployeeEarningsResponse{}, err
	}

	rec, err := s.reconcile(ctx, session.AgencyID, employeeID, p)
	if err != nil {
		return earnings.EmployeeEarningsResponse{}, err
	}
	if len(rec.Lines) == 0 {
		return earnings.EmployeeEarningsResponse{}, employee.ErrEmployeeNotFound
	}

	return earnings.EmployeeEarningsResponse{
		Period:       earnings.NewPeriodResponse(rec.Period),
		LineResponse: earnings.ToLineResponse(rec.Lines[0]),
	}, nil
}

// reconcile loads the four collections concurrently; the first failed fetch
// cancels the others.
func (s *EarningsServiceImpl) reconcile(ctx context.Context, agencyID, filter string, p period.Period) (earnings.Reconciliation, error) {
	var (
		employees []employee.Employee
		entries   []timeentry.TimeEntry
		payments  []payment.Payment
		rules     []bonus.BonusRule
	)

	var empFilter employee.Filter
	entryFilter := timeentry.Filter{Period: &p}
	paymentFilter := payment.Filter{Period: &p}
	var ruleFilter bonus.Filter
	if filter != earnings.AllEmployees {
		empFilter.IDs = []string{filter}
		entryFilter.EmployeeID = &filter
		paymentFilter.EmployeeID = &filter
		ruleFilter.EmployeeID = &filter
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		employees, err = s.employeeRepo.ListEmployees(gctx, agencyID, empFilter)
		return err
	})
	g.Go(func() error {
		var err error
		entries, err = s.entryRepo.ListTimeEntries(gctx, agencyID, entryFilter)
		return err
	})
	g.Go(func() error {
		var err error
		payments, err = s.paymentRepo.ListPayments(gctx, agencyID, paymentFilter)
		return err
	})
	g.Go(func() error {
		var err error
		rules, err = s.ruleRepo.ListBonusRules(gctx, agencyID, ruleFilter)
		return err
	})
	if err := g.Wait(); err != nil {
		return earnings.Reconciliation{}, fmt.Errorf("failed to load reconciliation data: %w", err)
	}

	return earnings.Reconcile(filter, employees, entries, payments, rules, p), nil
}

// ========== SNAPSHOTS ==========

func (s *EarningsServiceImpl) ListSnapshots(ctx context.Context, session auth.Session, req earnings.ListSnapshotsRequest) ([]earnings.SnapshotResponse, error) {
	if err := session.Require(auth.PermissionSnapshotView); err != nil {
		return nil, err
	}
	limit, err := req.ParseLimit()
	if err != nil {
		return nil, err
	}

	snapshots, err := s.snapshotRepo.ListSnapshots(ctx, session.AgencyID, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]earnings.SnapshotResponse, 0, len(snapshots))
	for _, snap := range snapshots {
		responses = append(responses, earnings.ToSnapshotResponse(snap))
	}
	return responses, nil
}

// CaptureSnapshots keeps going when one agency fails; the failures are
// joined into the returned error.
func (s *EarningsServiceImpl) CaptureSnapshots(ctx context.Context) (int, error) {
	agencyIDs, err := s.employeeRepo.ListAgencyIDs(ctx)
	if err != nil {
		return 0, err
	}

	p := period.Resolve(period.Month, s.now())
	written := 0
	var errs []error

	for _, agencyID := range agencyIDs {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		rec, err := s.reconcile(ctx, agencyID, earnings.AllEmployees, p)
		if err != nil {
			slog.Error("Failed to reconcile agency for snapshot", "agency_id", agencyID, "error", err)
			errs = append(errs, fmt.Errorf("agency %s: %w", agencyID, err))
			continue
		}

		if _, err := s.snapshotRepo.CreateSnapshot(ctx, earnings.NewSnapshot(agencyID, rec)); err != nil {
			slog.Error("Failed to store snapshot", "agency_id", agencyID, "error", err)
			errs = append(errs, fmt.Errorf("agency %s: %w", agencyID, err))
			continue
		}
		written++
	}

	return written, errors.Join(errs...)
}

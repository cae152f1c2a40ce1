package earnings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/agency-earnings-go/internal/domain/auth"
	"github.com/cmlabs-hris/agency-earnings-go/internal/domain/bonus"
	"github.com/cmlabs-hris/agency-earnings-go/internal/domain/earnings"
	"github.com/cmlabs-hris/agency-earnings-go/internal/domain/employee"
	"github.com/cmlabs-hris/agency-earnings-go/internal/domain/payment"
	"github.com/cmlabs-hris/agency-earnings-go/internal/domain/period"
	"github.com/cmlabs-hris/agency-earnings-go/internal/domain/timeentry"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	agencyID  = "0190a5e2-0000-7000-8000-00000000000a"
	brokenID  = "0190a5e2-0000-7000-8000-00000000000b"
	adaID     = "0190a5e2-0000-7000-8000-0000000000e1"
	brunoID   = "0190a5e2-0000-7000-8000-0000000000e2"
	missingID = "0190a5e2-0000-7000-8000-0000000000ff"
)

var (
	fixedAt = time.Date(2024, time.May, 20, 12, 0, 0, 0, time.UTC)
	viewer  = auth.Session{UserID: "u-1", AgencyID: agencyID, Role: auth.RoleViewer}
	manager = auth.Session{UserID: "u-2", AgencyID: agencyID, Role: auth.RoleManager}
	errDown = errors.New("connection refused")
)

// ===== FAKES =====

type fakeEmployees struct{ agencies []string }

func (f fakeEmployees) ListEmployees(_ context.Context, agency string, filter employee.Filter) ([]employee.Employee, error) {
	all := []employee.Employee{
		{ID: adaID, AgencyID: agencyID, Name: "Ada", HourlyRate: decimal.NewFromInt(20), Status: employee.StatusActive},
		{ID: brunoID, AgencyID: agencyID, Name: "Bruno", HourlyRate: decimal.NewFromInt(10), Status: employee.StatusActive},
	}
	out := make([]employee.Employee, 0)
	for _, e := range all {
		if e.AgencyID != agency {
			continue
		}
		if len(filter.IDs) > 0 && e.ID != filter.IDs[0] {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (f fakeEmployees) GetEmployeeByID(context.Context, string, string) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f fakeEmployees) ListAgencyIDs(context.Context) ([]string, error) { return f.agencies, nil }

type fakeEntries struct{}

func (fakeEntries) ListTimeEntries(_ context.Context, agency string, _ timeentry.Filter) ([]timeentry.TimeEntry, error) {
	if agency != agencyID {
		return nil, nil
	}
	return []timeentry.TimeEntry{
		{ID: "t1", AgencyID: agencyID, EmployeeID: adaID, Date: fixedAt.AddDate(0, 0, -3), Hours: decimal.NewFromInt(10),
			CreatorSales: []timeentry.CreatorSale{{CreatorID: "c1", Amount: decimal.NewFromInt(50)}}},
		{ID: "t2", AgencyID: agencyID, EmployeeID: adaID, Date: fixedAt.AddDate(0, 0, -2), Hours: decimal.NewFromInt(5)},
		{ID: "t3", AgencyID: agencyID, EmployeeID: brunoID, Date: fixedAt.AddDate(0, 0, -1), Hours: decimal.NewFromInt(4)},
	}, nil
}

func (fakeEntries) GetTimeEntryByID(context.Context, string, string) (timeentry.TimeEntry, error) {
	return timeentry.TimeEntry{}, timeentry.ErrTimeEntryNotFound
}

func (fakeEntries) CreateTimeEntry(_ context.Context, e timeentry.TimeEntry) (timeentry.TimeEntry, error) {
	return e, nil
}

func (fakeEntries) UpdateTimeEntry(_ context.Context, e timeentry.TimeEntry) (timeentry.TimeEntry, error) {
	return e, nil
}

func (fakeEntries) DeleteTimeEntry(context.Context, string, string) error { return nil }

type fakePayments struct{ failFor string }

func (f fakePayments) ListPayments(_ context.Context, agency string, _ payment.Filter) ([]payment.Payment, error) {
	if agency == f.failFor {
		return nil, errDown
	}
	if agency != agencyID {
		return nil, nil
	}
	return []payment.Payment{
		{ID: "p1", AgencyID: agencyID, EmployeeID: adaID, Date: fixedAt.AddDate(0, 0, -1), Amount: decimal.NewFromInt(100), Method: payment.MethodCash},
	}, nil
}

func (fakePayments) CreatePayment(_ context.Context, p payment.Payment) (payment.Payment, error) {
	return p, nil
}

type fakeRules struct{}

func (fakeRules) ListBonusRules(_ context.Context, agency string, _ bonus.Filter) ([]bonus.BonusRule, error) {
	if agency != agencyID {
		return nil, nil
	}
	return []bonus.BonusRule{
		{ID: "r1", AgencyID: agencyID, Name: "Target", ThresholdAmount: decimal.NewFromInt(300), BonusAmount: decimal.NewFromInt(50), BonusType: bonus.TypeFixed},
	}, nil
}

func (fakeRules) GetBonusRuleByID(context.Context, string, string) (bonus.BonusRule, error) {
	return bonus.BonusRule{}, bonus.ErrBonusRuleNotFound
}

func (fakeRules) CreateBonusRule(_ context.Context, r bonus.BonusRule) (bonus.BonusRule, error) {
	return r, nil
}

func (fakeRules) UpdateBonusRule(_ context.Context, r bonus.BonusRule) (bonus.BonusRule, error) {
	return r, nil
}

func (fakeRules) DeleteBonusRule(context.Context, string, string) error { return nil }

type fakeSnapshots struct {
	created   []earnings.Snapshot
	lastLimit int
}

func (f *fakeSnapshots) CreateSnapshot(_ context.Context, s earnings.Snapshot) (earnings.Snapshot, error) {
	s.ID = "snap"
	f.created = append(f.created, s)
	return s, nil
}

func (f *fakeSnapshots) ListSnapshots(_ context.Context, _ string, limit int) ([]earnings.Snapshot, error) {
	f.lastLimit = limit
	return f.created, nil
}

func newTestService(payments fakePayments, snapshots *fakeSnapshots, agencies ...string) *EarningsServiceImpl {
	svc := NewEarningsService(fakeEmployees{agencies: agencies}, fakeEntries{}, payments, fakeRules{}, snapshots).(*EarningsServiceImpl)
	svc.now = func() time.Time { return fixedAt }
	return svc
}

// ===== RECONCILE =====

func TestEarningsService_Reconcile_SingleEmployee(t *testing.T) {
	svc := newTestService(fakePayments{}, &fakeSnapshots{})

	got, err := svc.Reconcile(context.Background(), viewer, earnings.ReconciliationRequest{EmployeeID: adaID})

	require.NoError(t, err)
	assert.Equal(t, "$350.00", got.Owed.Display)
	assert.Equal(t, "$100.00", got.Paid.Display)
	assert.Equal(t, "$50.00", got.BonusTotal.Display)
	assert.Equal(t, "$300.00", got.Outstanding.Display)
	require.Len(t, got.Employees, 1)
	require.Len(t, got.Employees[0].Bonuses, 1)
	assert.Equal(t, "Target", got.Employees[0].Bonuses[0].RuleName)
	assert.Equal(t, period.Month, got.Period.Name)
}

func TestEarningsService_Reconcile_AllEmployees(t *testing.T) {
	svc := newTestService(fakePayments{}, &fakeSnapshots{})

	got, err := svc.Reconcile(context.Background(), viewer, earnings.ReconciliationRequest{
		Period: period.Query{Name: "week"},
	})

	require.NoError(t, err)
	assert.Equal(t, earnings.AllEmployees, got.EmployeeID)
	assert.True(t, got.Owed.Amount.Equal(decimal.NewFromInt(390)))
	assert.True(t, got.Paid.Amount.Equal(decimal.NewFromInt(100)))
	assert.Len(t, got.Employees, 2)
}

func TestEarningsService_Reconcile_UnknownEmployeeIsZero(t *testing.T) {
	svc := newTestService(fakePayments{}, &fakeSnapshots{})

	got, err := svc.Reconcile(context.Background(), viewer, earnings.ReconciliationRequest{EmployeeID: missingID})

	require.NoError(t, err)
	assert.True(t, got.Owed.Amount.IsZero())
	assert.True(t, got.Paid.Amount.IsZero())
	assert.Equal(t, "$0.00", got.Outstanding.Display)
	assert.Empty(t, got.Employees)
}

func TestEarningsService_Reconcile_FetchFailureIsReturned(t *testing.T) {
	svc := newTestService(fakePayments{failFor: agencyID}, &fakeSnapshots{})

	_, err := svc.Reconcile(context.Background(), viewer, earnings.ReconciliationRequest{})

	assert.ErrorIs(t, err, errDown)
}

func TestEarningsService_Reconcile_InvalidPeriod(t *testing.T) {
	svc := newTestService(fakePayments{}, &fakeSnapshots{})

	_, err := svc.Reconcile(context.Background(), viewer, earnings.ReconciliationRequest{
		Period: period.Query{From: "2024-05-10", To: "2024-05-01"},
	})

	assert.Error(t, err)
}

// ===== EMPLOYEE EARNINGS =====

func TestEarningsService_EmployeeEarnings(t *testing.T) {
	svc := newTestService(fakePayments{}, &fakeSnapshots{})

	got, err := svc.EmployeeEarnings(context.Background(), viewer, brunoID, period.Query{})

	require.NoError(t, err)
	assert.Equal(t, "Bruno", got.EmployeeName)
	assert.Equal(t, "$40.00", got.Owed.Display)
	assert.Empty(t, got.Bonuses)
	assert.Equal(t, 1, got.EntryCount)
}

func TestEarningsService_EmployeeEarnings_NotFound(t *testing.T) {
	svc := newTestService(fakePayments{}, &fakeSnapshots{})

	_, err := svc.EmployeeEarnings(context.Background(), viewer, missingID, period.Query{})

	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

// ===== SNAPSHOTS =====

func TestEarningsService_CaptureSnapshots_ContinuesPastFailures(t *testing.T) {
	snaps := &fakeSnapshots{}
	svc := newTestService(fakePayments{failFor: brokenID}, snaps, agencyID, brokenID)

	n, err := svc.CaptureSnapshots(context.Background())

	assert.Equal(t, 1, n)
	assert.ErrorIs(t, err, errDown)
	require.Len(t, snaps.created, 1)
	assert.Equal(t, agencyID, snaps.created[0].AgencyID)
	assert.Equal(t, period.Month, snaps.created[0].PeriodName)
	assert.True(t, snaps.created[0].Outstanding.Equal(decimal.NewFromInt(340)))
	assert.Equal(t, 2, snaps.created[0].EmployeeCount)
}

func TestEarningsService_ListSnapshots(t *testing.T) {
	snaps := &fakeSnapshots{}
	svc := newTestService(fakePayments{}, snaps)

	_, err := svc.ListSnapshots(context.Background(), viewer, earnings.ListSnapshotsRequest{})
	assert.ErrorIs(t, err, auth.ErrInsufficientPermission)

	_, err = svc.ListSnapshots(context.Background(), manager, earnings.ListSnapshotsRequest{})
	require.NoError(t, err)
	assert.Equal(t, earnings.DefaultSnapshotLimit, snaps.lastLimit)
}

package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/agency-earnings-go/internal/domain/auth"
	"github.com/cmlabs-hris/agency-earnings-go/internal/domain/bonus"
	"github.com/cmlabs-hris/agency-earnings-go/internal/domain/earnings"
	"github.com/cmlabs-hris/agency-earnings-go/internal/domain/employee"
	"github.com/cmlabs-hris/agency-earnings-go/internal/domain/payment"
	"github.com/cmlabs-hris/agency-earnings-go/internal/domain/period"
	"github.com/cmlabs-hris/agency-earnings-go/internal/domain/timeentry"
	"github.com/cmlabs-hris/agency-earnings-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/agency-earnings-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	handlerTestSecret = "test-secret-key-for-jwt"
	testAgencyID      = "0190a5e2-0000-7000-8000-00000000000a"
	testEmployeeID    = "0190a5e2-0000-7000-8000-0000000000e1"
)

// ===== STUBS =====

type stubPinger struct{ err error }

func (s stubPinger) Ping(context.Context) error { return s.err }

type stubEmployeeService struct{}

func (stubEmployeeService) List(context.Context, auth.Session, employee.ListEmployeesRequest) ([]employee.EmployeeResponse, error) {
	return []employee.EmployeeResponse{}, nil
}

func (stubEmployeeService) Get(_ context.Context, _ auth.Session, id string) (employee.EmployeeResponse, error) {
	return employee.EmployeeResponse{}, employee.ErrEmployeeNotFound
}

type stubTimeEntryService struct{ lastSession auth.Session }

func (s *stubTimeEntryService) List(context.Context, auth.Session, timeentry.ListTimeEntriesRequest) ([]timeentry.TimeEntryResponse, error) {
	return []timeentry.TimeEntryResponse{}, nil
}

func (s *stubTimeEntryService) Get(context.Context, auth.Session, string) (timeentry.TimeEntryResponse, error) {
	return timeentry.TimeEntryResponse{}, timeentry.ErrTimeEntryNotFound
}

func (s *stubTimeEntryService) Create(_ context.Context, session auth.Session, req timeentry.CreateTimeEntryRequest) (timeentry.TimeEntryResponse, error) {
	s.lastSession = session
	if err := req.Validate(); err != nil {
		return timeentry.TimeEntryResponse{}, err
	}
	return timeentry.TimeEntryResponse{ID: "entry-1", EmployeeID: req.EmployeeID, Hours: req.Hours}, nil
}

func (s *stubTimeEntryService) Update(context.Context, auth.Session, timeentry.UpdateTimeEntryRequest) (timeentry.TimeEntryResponse, error) {
	return timeentry.TimeEntryResponse{}, nil
}

func (s *stubTimeEntryService) Delete(context.Context, auth.Session, string) error { return nil }

type stubPaymentService struct{ created bool }

func (s *stubPaymentService) List(context.Context, auth.Session, payment.ListPaymentsRequest) ([]payment.PaymentResponse, error) {
	return []payment.PaymentResponse{}, nil
}

func (s *stubPaymentService) Create(context.Context, auth.Session, payment.CreatePaymentRequest) (payment.PaymentResponse, error) {
	s.created = true
	return payment.PaymentResponse{ID: "pay-1"}, nil
}

type stubBonusRuleService struct{}

func (stubBonusRuleService) List(context.Context, auth.Session, bonus.ListBonusRulesRequest) ([]bonus.BonusRuleResponse, error) {
	return []bonus.BonusRuleResponse{}, nil
}

func (stubBonusRuleService) Get(context.Context, auth.Session, string) (bonus.BonusRuleResponse, error) {
	return bonus.BonusRuleResponse{}, nil
}

func (stubBonusRuleService) Create(context.Context, auth.Session, bonus.CreateBonusRuleRequest) (bonus.BonusRuleResponse, error) {
	return bonus.BonusRuleResponse{}, bonus.ErrBonusRuleNameExists
}

func (stubBonusRuleService) Update(context.Context, auth.Session, bonus.UpdateBonusRuleRequest) (bonus.BonusRuleResponse, error) {
	return bonus.BonusRuleResponse{}, nil
}

func (stubBonusRuleService) Delete(context.Context, auth.Session, string) error { return nil }

type stubEarningsService struct{ lastRequest earnings.ReconciliationRequest }

func (s *stubEarningsService) Reconcile(_ context.Context, _ auth.Session, req earnings.ReconciliationRequest) (earnings.ReconciliationResponse, error) {
	s.lastRequest = req
	if req.Period.Name == "fortnight" {
		var errs validator.ValidationErrors
		errs.Add("period", period.ErrInvalidName.Error())
		return earnings.ReconciliationResponse{}, errs
	}
	if req.Period.Name == "broken" {
		return earnings.ReconciliationResponse{}, errors.New("connection reset")
	}
	return earnings.ToReconciliationResponse(req.Filter(), earnings.Reconciliation{
		Owed:        decimal.NewFromInt(350),
		BonusTotal:  decimal.NewFromInt(50),
		Paid:        decimal.NewFromInt(100),
		Outstanding: decimal.NewFromInt(300),
	}), nil
}

func (s *stubEarningsService) EmployeeEarnings(context.Context, auth.Session, string, period.Query) (earnings.EmployeeEarningsResponse, error) {
	return earnings.EmployeeEarningsResponse{}, employee.ErrEmployeeNotFound
}

func (s *stubEarningsService) ListSnapshots(context.Context, auth.Session, earnings.ListSnapshotsRequest) ([]earnings.SnapshotResponse, error) {
	return []earnings.SnapshotResponse{}, nil
}

func (s *stubEarningsService) CaptureSnapshots(context.Context) (int, error) { return 0, nil }

// ===== HARNESS =====

type testServer struct {
	handler  http.Handler
	jwt      jwt.Service
	entries  *stubTimeEntryService
	payments *stubPaymentService
	earnings *stubEarningsService
}

func newTestServer(pingErr error) *testServer {
	ts := &testServer{
		jwt:      jwt.NewJWTService(handlerTestSecret, "1h"),
		entries:  &stubTimeEntryService{},
		payments: &stubPaymentService{},
		earnings: &stubEarningsService{},
	}
	ts.handler = NewRouter(
		RouterOptions{AllowedOrigins: []string{"http://localhost:3000"}},
		ts.jwt,
		NewHealthHandler(stubPinger{err: pingErr}),
		NewEmployeeHandler(stubEmployeeService{}),
		NewTimeEntryHandler(ts.entries),
		NewPaymentHandler(ts.payments),
		NewBonusRuleHandler(stubBonusRuleService{}),
		NewEarningsHandler(ts.earnings),
	)
	return ts
}

func (ts *testServer) token(t *testing.T, role auth.Role) string {
	t.Helper()
	token, _, err := ts.jwt.GenerateAccessToken("user-1", testAgencyID, role)
	require.NoError(t, err)
	return token
}

func (ts *testServer) do(t *testing.T, method, path, token string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)

	var payload map[string]interface{}
	_ = json.Unmarshal(rec.Body.Bytes(), &payload)
	return rec, payload
}

func errorCode(payload map[string]interface{}) string {
	detail, _ := payload["error"].(map[string]interface{})
	code, _ := detail["code"].(string)
	return code
}

// ===== AUTH =====

func TestRouter_MissingTokenIsUnauthorized(t *testing.T) {
	ts := newTestServer(nil)

	rec, _ := ts.do(t, http.MethodGet, "/api/v1/employees", "", nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_ForgedTokenIsUnauthorized(t *testing.T) {
	ts := newTestServer(nil)
	other := jwt.NewJWTService("another-secret", "1h")
	token, _, err := other.GenerateAccessToken("user-1", testAgencyID, auth.RoleOwner)
	require.NoError(t, err)

	rec, _ := ts.do(t, http.MethodGet, "/api/v1/employees", token, nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_ViewerCannotRecordPayment(t *testing.T) {
	ts := newTestServer(nil)

	rec, payload := ts.do(t, http.MethodPost, "/api/v1/payments", ts.token(t, auth.RoleViewer), map[string]string{})

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "FORBIDDEN", errorCode(payload))
	assert.False(t, ts.payments.created)
}

func TestRouter_ViewerCannotListSnapshots(t *testing.T) {
	ts := newTestServer(nil)

	rec, _ := ts.do(t, http.MethodGet, "/api/v1/earnings/snapshots", ts.token(t, auth.RoleViewer), nil)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

// ===== TIME ENTRIES =====

func TestRouter_CreateTimeEntry_PassesSession(t *testing.T) {
	ts := newTestServer(nil)

	rec, payload := ts.do(t, http.MethodPost, "/api/v1/time-entries", ts.token(t, auth.RoleManager), map[string]interface{}{
		"employee_id": testEmployeeID,
		"date":        "2024-05-18",
		"hours":       "7.5",
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, true, payload["success"])
	assert.Equal(t, auth.Session{UserID: "user-1", AgencyID: testAgencyID, Role: auth.RoleManager}, ts.entries.lastSession)
}

func TestRouter_CreateTimeEntry_ValidationError(t *testing.T) {
	ts := newTestServer(nil)

	rec, payload := ts.do(t, http.MethodPost, "/api/v1/time-entries", ts.token(t, auth.RoleOwner), map[string]interface{}{
		"employee_id": "not-a-uuid",
		"date":        "18/05/2024",
		"hours":       "-1",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(payload))
}

func TestRouter_CreateTimeEntry_MalformedBody(t *testing.T) {
	ts := newTestServer(nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/time-entries", bytes.NewBufferString("{"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+ts.token(t, auth.RoleOwner))
	rec := httptest.NewRecorder()

	ts.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_GetTimeEntry_InvalidID(t *testing.T) {
	ts := newTestServer(nil)

	rec, _ := ts.do(t, http.MethodGet, "/api/v1/time-entries/123", ts.token(t, auth.RoleViewer), nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_GetTimeEntry_NotFound(t *testing.T) {
	ts := newTestServer(nil)

	rec, payload := ts.do(t, http.MethodGet, "/api/v1/time-entries/"+testEmployeeID, ts.token(t, auth.RoleViewer), nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", errorCode(payload))
}

// ===== BONUS RULES =====

func TestRouter_CreateBonusRule_Conflict(t *testing.T) {
	ts := newTestServer(nil)

	rec, payload := ts.do(t, http.MethodPost, "/api/v1/bonus-rules", ts.token(t, auth.RoleOwner), map[string]string{"name": "Target"})

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "CONFLICT", errorCode(payload))
}

// ===== EARNINGS =====

func TestRouter_Reconciliation(t *testing.T) {
	ts := newTestServer(nil)

	rec, payload := ts.do(t, http.MethodGet, "/api/v1/earnings/reconciliation?employee_id=all&period=week", ts.token(t, auth.RoleViewer), nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "week", ts.earnings.lastRequest.Period.Name)
	data, _ := payload["data"].(map[string]interface{})
	outstanding, _ := data["outstanding"].(map[string]interface{})
	assert.Equal(t, "$300.00", outstanding["display"])
	assert.Equal(t, "all", data["employee_id"])
}

func TestRouter_Reconciliation_UnknownPeriod(t *testing.T) {
	ts := newTestServer(nil)

	rec, _ := ts.do(t, http.MethodGet, "/api/v1/earnings/reconciliation?period=fortnight", ts.token(t, auth.RoleViewer), nil)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestRouter_Reconciliation_InternalErrorIsGeneric(t *testing.T) {
	ts := newTestServer(nil)

	rec, payload := ts.do(t, http.MethodGet, "/api/v1/earnings/reconciliation?period=broken", ts.token(t, auth.RoleViewer), nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection reset")
	assert.Equal(t, "INTERNAL_SERVER_ERROR", errorCode(payload))
}

func TestRouter_EmployeeEarnings_NotFound(t *testing.T) {
	ts := newTestServer(nil)

	rec, _ := ts.do(t, http.MethodGet, "/api/v1/earnings/employees/"+testEmployeeID, ts.token(t, auth.RoleViewer), nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// ===== HEALTH =====

func TestRouter_Health(t *testing.T) {
	ok := newTestServer(nil)
	down := newTestServer(errors.New("dial tcp: refused"))

	rec, _ := ok.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = ok.do(t, http.MethodGet, "/readyz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = down.do(t, http.MethodGet, "/readyz", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

package timeentry

import (
	"context"
	"strings"
	"time"

	"github.com/cmlabs-hris/agency-earnings-go/internal/domain/auth"
	"github.com/cmlabs-hris/agency-earnings-go/internal/domain/employee"
	"github.com/cmlabs-hris/agency-earnings-go/internal/domain/period"
	"github.com/cmlabs-hris/agency-earnings-go/internal/domain/timeentry"
	"github.com/cmlabs-hris/agency-earnings-go/internal/pkg/collection"
	"github.com/cmlabs-hris/agency-earnings-go/internal/pkg/database"
	"github.com/cmlabs-hris/agency-earnings-go/internal/repository/postgresql"
)

type TimeEntryServiceImpl struct {
	db           *database.DB
	entryRepo    timeentry.TimeEntryRepository
	employeeRepo employee.EmployeeRepository
	now          func() time.Time
}

func NewTimeEntryService(
	db *database.DB,
	entryRepo timeentry.TimeEntryRepository,
	employeeRepo employee.EmployeeRepository,
) timeentry.TimeEntryService {
	return &TimeEntryServiceImpl{
		db:           db,
		entryRepo:    entryRepo,
		employeeRepo: employeeRepo,
		now:          time.Now,
	}
}

// ========== QUERIES ==========

// List returns every entry of the agency when no period is given.
func (s *TimeEntryServiceImpl) List(ctx context.Context, session auth.Session, req timeentry.ListTimeEntriesRequest) ([]timeentry.TimeEntryResponse, error) {
	if err := session.Require(auth.PermissionTimeEntryView); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var filter timeentry.Filter
	if req.EmployeeID != "" {
		filter.EmployeeID = &req.EmployeeID
	}
	if req.Period != (period.Query{}) {
		p, err := req.Period.Resolve(s.now())
		if err != nil {
			return nil, err
		}
		filter.Period = &p
	}

	entries, err := s.entryRepo.ListTimeEntries(ctx, session.AgencyID, filter)
	if err != nil {
		return nil, err
	}
	entries = sortEntries(entries, req.SortBy, req.SortOrder)

	responses := make([]timeentry.TimeEntryResponse, 0, len(entries))
	for _, e := range entries {
		responses = append(responses, timeentry.ToResponse(e))
	}
	return responses, nil
}

func (s *TimeEntryServiceImpl) Get(ctx context.Context, session auth.Session, id string) (timeentry.TimeEntryResponse, error) {
	if err := session.Require(auth.PermissionTimeEntryView); err != nil {
		return timeentry.TimeEntryResponse{}, err
	}

	e, err := s.entryRepo.GetTimeEntryByID(ctx, id, session.AgencyID)
	if err != nil {
		return timeentry.TimeEntryResponse{}, err
	}
	return timeentry.ToResponse(e), nil
}

// ========== COMMANDS ==========

func (s *TimeEntryServiceImpl) Create(ctx context.Context, session auth.Session, req timeentry.CreateTimeEntryRequest) (timeentry.TimeEntryResponse, error) {
	if err := session.Require(auth.PermissionTimeEntryManage); err != nil {
		return timeentry.TimeEntryResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return timeentry.TimeEntryResponse{}, err
	}

	entry := req.ToEntity(session.AgencyID)

	var created timeentry.TimeEntry
	err := postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		// The foreign key alone does not stop an entry for another agency's employee.
		if _, err := s.employeeRepo.GetEmployeeByID(txCtx, entry.EmployeeID, session.AgencyID); err != nil {
			return err
		}

		var err error
		created, err = s.entryRepo.CreateTimeEntry(txCtx, entry)
		return err
	})
	if err != nil {
		return timeentry.TimeEntryResponse{}, err
	}

	return timeentry.ToResponse(created), nil
}

func (s *TimeEntryServiceImpl) Update(ctx context.Context, session auth.Session, req timeentry.UpdateTimeEntryRequest) (timeentry.TimeEntryResponse, error) {
	if err := session.Require(auth.PermissionTimeEntryManage); err != nil {
		return timeentry.TimeEntryResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return timeentry.TimeEntryResponse{}, err
	}

	var updated timeentry.TimeEntry
	err := postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		existing, err := s.entryRepo.GetTimeEntryByID(txCtx, req.ID, session.AgencyID)
		if err != nil {
			return err
		}

		patched := req.Apply(existing)
		if patched.EmployeeID != existing.EmployeeID {
			if _, err := s.employeeRepo.GetEmployeeByID(txCtx, patched.EmployeeID, session.AgencyID); err != nil {
				return err
			}
		}

		updated, err = s.entryRepo.UpdateTimeEntry(txCtx, patched)
		return err
	})
	if err != nil {
		return timeentry.TimeEntryResponse{}, err
	}

	return timeentry.ToResponse(updated), nil
}

func (s *TimeEntryServiceImpl) Delete(ctx context.Context, session auth.Session, id string) error {
	if err := session.Require(auth.PermissionTimeEntryManage); err != nil {
		return err
	}
	return s.entryRepo.DeleteTimeEntry(ctx, id, session.AgencyID)
}

func sortEntries(entries []timeentry.TimeEntry, sortBy, sortOrder string) []timeentry.TimeEntry {
	var less func(a, b timeentry.TimeEntry) bool
	switch sortBy {
	case "date":
		less = func(a, b timeentry.TimeEntry) bool { return a.Date.Before(b.Date) }
	case "hours":
		less = func(a, b timeentry.TimeEntry) bool { return a.Hours.LessThan(b.Hours) }
	case "created_at":
		less = func(a, b timeentry.TimeEntry) bool { return a.CreatedAt.Before(b.CreatedAt) }
	default:
		return entries
	}
	if strings.EqualFold(sortOrder, "desc") {
		less = collection.Descending(less)
	}
	return collection.SortBy(entries, less)
}

package employee

import (
	"context"
	"strings"

	"github.com/cmlabs-hris/agency-earnings-go/internal/domain/auth"
	"github.com/cmlabs-hris/agency-earnings-go/internal/domain/employee"
	"github.com/cmlabs-hris/agency-earnings-go/internal/pkg/collection"
)

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository) employee.EmployeeService {
	return &EmployeeServiceImpl{employeeRepo: employeeRepo}
}

func (s *EmployeeServiceImpl) List(ctx context.Context, session auth.Session, req employee.ListEmployeesRequest) ([]employee.EmployeeResponse, error) {
	if err := session.Require(auth.PermissionEmployeeView); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	employees, err := s.employeeRepo.ListEmployees(ctx, session.AgencyID, req.ToFilter())
	if err != nil {
		return nil, err
	}

	if search := strings.ToLower(strings.TrimSpace(req.Search)); search != "" {
		employees = collection.FilterBy(employees, func(e employee.Employee) bool {
			return strings.Contains(strings.ToLower(e.Name), search)
		})
	}
	employees = sortEmployees(employees, req.SortBy, req.SortOrder)

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		responses = append(responses, employee.ToResponse(e))
	}
	return responses, nil
}

func (s *EmployeeServiceImpl) Get(ctx context.Context, session auth.Session, id string) (employee.EmployeeResponse, error) {
	if err := session.Require(auth.PermissionEmployeeView); err != nil {
		return employee.EmployeeResponse{}, err
	}

	e, err := s.employeeRepo.GetEmployeeByID(ctx, id, session.AgencyID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.ToResponse(e), nil
}

// sortEmployees keeps the repository order (name, id) when sortBy is empty.
func sortEmployees(employees []employee.Employee, sortBy, sortOrder string) []employee.Employee {
	var less func(a, b employee.Employee) bool
	switch sortBy {
	case "name":
		less = func(a, b employee.Employee) bool { return strings.ToLower(a.Name) < strings.ToLower(b.Name) }
	case "hourly_rate":
		less = func(a, b employee.Employee) bool { return a.HourlyRate.LessThan(b.HourlyRate) }
	case "created_at":
		less = func(a, b employee.Employee) bool { return a.CreatedAt.Before(b.CreatedAt) }
	default:
		return employees
	}
	if strings.EqualFold(sortOrder, "desc") {
		less = collection.Descending(less)
	}
	return collection.SortBy(employees, less)
}

package employee

import "context"

// EmployeeRepository is read-only: employees are managed outside this service.
// Every method is scoped by agencyID.
type EmployeeRepository interface {
	ListEmployees(ctx context.Context, agencyID string, filter Filter) ([]Employee, error)
	GetEmployeeByID(ctx context.Context, id string, agencyID string) (Employee, error)
	ListAgencyIDs(ctx context.Context) ([]string, error)
}

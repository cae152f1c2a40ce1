package employee

import (
	"context"

	"github.com/cmlabs-hris/agency-earnings-go/internal/domain/auth"
)

type EmployeeService interface {
	List(ctx context.Context, session auth.Session, req ListEmployeesRequest) ([]EmployeeResponse, error)
	Get(ctx context.Context, session auth.Session, id string) (EmployeeResponse, error)
}

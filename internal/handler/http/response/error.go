package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/agency-earnings-go/internal/domain/auth"
	"github.com/cmlabs-hris/agency-earnings-go/internal/domain/bonus"
	"github.com/cmlabs-hris/agency-earnings-go/internal/domain/employee"
	"github.com/cmlabs-hris/agency-earnings-go/internal/domain/timeentry"
	"github.com/cmlabs-hris/agency-earnings-go/internal/pkg/validator"
)

type errorMapping struct {
	target  error
	status  int
	message string
}

// Checked in order with errors.Is.
var domainErrors = []errorMapping{
	{auth.ErrInvalidToken, http.StatusUnauthorized, "Invalid or expired token"},
	{auth.ErrSessionMissing, http.StatusUnauthorized, "Authentication required"},
	{auth.ErrAgencyRequired, http.StatusForbidden, "Token is not bound to an agency"},
	{auth.ErrInsufficientPermission, http.StatusForbidden, "Insufficient permissions"},
	{employee.ErrEmployeeNotFound, http.StatusNotFound, "Employee not found"},
	{timeentry.ErrTimeEntryNotFound, http.StatusNotFound, "Time entry not found"},
	{bonus.ErrBonusRuleNotFound, http.StatusNotFound, "Bonus rule not found"},
	{bonus.ErrBonusRuleNameExists, http.StatusConflict, "A bonus rule with this name already exists"},
}

// HandleError maps domain errors to HTTP responses. Anything unknown is
// logged and reported as a generic 500.
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	for _, m := range domainErrors {
		if errors.Is(err, m.target) {
			Fail(w, m.status, m.message, nil)
			return
		}
	}

	slog.Error("Unhandled error", "error", err)
	Fail(w, http.StatusInternalServerError, "An unexpected error occurred", nil)
}

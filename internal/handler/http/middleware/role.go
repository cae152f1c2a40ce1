package middleware

import (
	"fmt"
	"net/http"

	"github.com/cmlabs-hris/agency-earnings-go/internal/domain/auth"
	"github.com/cmlabs-hris/agency-earnings-go/internal/handler/http/response"
)

// RequirePermission checks if the session's role grants permission.
// Services check again; this rejects early with a clearer message.
func RequirePermission(permission auth.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := auth.SessionFromContext(r.Context())
			if err != nil {
				response.HandleError(w, err)
				return
			}

			if !session.Can(permission) {
				response.Forbidden(w, fmt.Sprintf("Insufficient permissions: required '%s', but user role is '%s'", permission, session.Role))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

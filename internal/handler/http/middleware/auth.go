package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/agency-earnings-go/internal/domain/auth"
	"github.com/cmlabs-hris/agency-earnings-go/internal/handler/http/response"
	"github.com/cmlabs-hris/agency-earnings-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

// AuthRequired runs after jwtauth.Verifier. It turns the verified claims
// into an auth.Session that handlers pass to services.
func AuthRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())
		if err != nil || token == nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		session, err := jwt.SessionFromClaims(claims)
		if err != nil {
			response.HandleError(w, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(auth.WithSession(r.Context(), session)))
	})
}

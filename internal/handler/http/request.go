package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/agency-earnings-go/internal/domain/auth"
	"github.com/cmlabs-hris/agency-earnings-go/internal/domain/period"
	"github.com/cmlabs-hris/agency-earnings-go/internal/handler/http/response"
	"github.com/cmlabs-hris/agency-earnings-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

// sessionFrom writes the error response itself and reports false when the
// request carries no session.
func sessionFrom(w http.ResponseWriter, r *http.Request) (auth.Session, bool) {
	session, err := auth.SessionFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return auth.Session{}, false
	}
	return session, true
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return false
	}
	return true
}

// idParam returns the {id} path parameter after checking it is a UUID.
func idParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "id")
	if !validator.IsValidUUID(id) {
		response.BadRequest(w, "Invalid ID", map[string]string{"id": "must be a valid UUID"})
		return "", false
	}
	return id, true
}

func periodQuery(r *http.Request) period.Query {
	q := r.URL.Query()
	return period.Query{
		Name: q.Get("period"),
		From: q.Get("from"),
		To:   q.Get("to"),
	}
}

package auth

import "context"

// Session identifies who is acting and on behalf of which agency.
// Services receive it as an explicit argument.
type Session struct {
	UserID   string
	AgencyID string
	Role     Role
}

func (s Session) Validate() error {
	if s.AgencyID == "" {
		return ErrAgencyRequired
	}
	return nil
}

func (s Session) Can(p Permission) bool {
	return HasPermission(s.Role, p)
}

// Require checks that the session is bound to an agency and holds p.
func (s Session) Require(p Permission) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if !s.Can(p) {
		return ErrInsufficientPermission
	}
	return nil
}

type sessionContextKey struct{}

func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, s)
}

func SessionFromContext(ctx context.Context) (Session, error) {
	s, ok := ctx.Value(sessionContextKey{}).(Session)
	if !ok {
		return Session{}, ErrSessionMissing
	}
	return s, nil
}

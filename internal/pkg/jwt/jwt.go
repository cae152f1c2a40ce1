package jwt

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/agency-earnings-go/internal/domain/auth"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const (
	ClaimUserID   = "user_id"
	ClaimAgencyID = "agency_id"
	ClaimRole     = "role"
	ClaimType     = "type"

	TokenTypeAccess = "access"
)

// Service signs and verifies access tokens. Tokens are issued by the
// identity service; GenerateAccessToken exists for tooling and tests.
type Service interface {
	GenerateAccessToken(userID string, agencyID string, role auth.Role) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	accessTokenExpirationTime string
	tokenAuth                 *jwtauth.JWTAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) Service {
	return &JWTService{
		accessTokenExpirationTime: accessTokenExpirationTime,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) GenerateAccessToken(userID string, agencyID string, role auth.Role) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, fmt.Errorf("invalid access token expiration: %w", err)
	}
	expiresAt = time.Now().Add(expDuration).Unix()

	claims := map[string]interface{}{
		ClaimUserID:   userID,
		ClaimAgencyID: agencyID,
		ClaimRole:     string(role),
		ClaimType:     TokenTypeAccess,
		"exp":         expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

// SessionFromClaims builds a Session from access token claims.
func SessionFromClaims(claims map[string]interface{}) (auth.Session, error) {
	if tokenType, _ := claims[ClaimType].(string); tokenType != TokenTypeAccess {
		return auth.Session{}, auth.ErrInvalidToken
	}

	userID, _ := claims[ClaimUserID].(string)
	agencyID, _ := claims[ClaimAgencyID].(string)
	role, _ := claims[ClaimRole].(string)
	if userID == "" || !auth.Role(role).IsValid() {
		return auth.Session{}, auth.ErrInvalidToken
	}

	session := auth.Session{UserID: userID, AgencyID: agencyID, Role: auth.Role(role)}
	if err := session.Validate(); err != nil {
		return auth.Session{}, err
	}
	return session, nil
}

package jwt

import (
	"testing"

	"github.com/cmlabs-hris/agency-earnings-go/internal/domain/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccessToken_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret-key-for-jwt", "1h")

	token, expiresAt, err := svc.GenerateAccessToken("user-1", "agency-1", auth.RoleManager)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Positive(t, expiresAt)

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)
	claims := decoded.PrivateClaims()

	session, err := SessionFromClaims(claims)
	require.NoError(t, err)
	assert.Equal(t, auth.Session{UserID: "user-1", AgencyID: "agency-1", Role: auth.RoleManager}, session)
}

func TestGenerateAccessToken_BadExpiration(t *testing.T) {
	svc := NewJWTService("secret", "forever")

	_, _, err := svc.GenerateAccessToken("user-1", "agency-1", auth.RoleOwner)
	assert.Error(t, err)
}

func TestSessionFromClaims(t *testing.T) {
	tests := []struct {
		name    string
		claims  map[string]interface{}
		wantErr error
	}{
		{
			name:    "refresh token is rejected",
			claims:  map[string]interface{}{"type": "refresh", "user_id": "u", "agency_id": "a", "role": "owner"},
			wantErr: auth.ErrInvalidToken,
		},
		{
			name:    "unknown role",
			claims:  map[string]interface{}{"type": "access", "user_id": "u", "agency_id": "a", "role": "admin"},
			wantErr: auth.ErrInvalidToken,
		},
		{
			name:    "no agency",
			claims:  map[string]interface{}{"type": "access", "user_id": "u", "role": "viewer"},
			wantErr: auth.ErrAgencyRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SessionFromClaims(tt.claims)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

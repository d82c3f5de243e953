package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pukaist/internal/config"
	"pukaist/internal/domain"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		Secret:      "test-secret",
		TokenExpiry: time.Hour,
		Issuer:      "pukaist",
	}
}

func TestIssueAndValidateToken(t *testing.T) {
	svc := NewAuthService(testAuthConfig())
	userID := uuid.New()

	token, err := svc.IssueToken(userID, "local", domain.RoleMember)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "local", claims.TenantID)
	assert.Equal(t, domain.RoleMember, claims.Role)
	assert.Equal(t, "pukaist", claims.Issuer)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	issuer := NewAuthService(testAuthConfig())
	token, err := issuer.IssueToken(uuid.New(), "local", domain.RoleMember)
	require.NoError(t, err)

	other := NewAuthService(config.AuthConfig{Secret: "different", TokenExpiry: time.Hour})
	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestValidateToken_Garbage(t *testing.T) {
	svc := NewAuthService(testAuthConfig())
	_, err := svc.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestValidateToken_Expired(t *testing.T) {
	cfg := testAuthConfig()
	cfg.TokenExpiry = -time.Minute
	svc := NewAuthService(cfg)

	token, err := svc.IssueToken(uuid.New(), "local", domain.RoleAdmin)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
